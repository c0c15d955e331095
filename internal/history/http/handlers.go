package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/namelime/namelime-backend/internal/auth"
	"github.com/namelime/namelime-backend/internal/history/service"
)

type Handler struct {
	history *service.HistoryService
}

func NewHandler(history *service.HistoryService) *Handler {
	return &Handler{history: history}
}

// List returns the caller's history, newest first.
func (h *Handler) List(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	records, err := h.history.List(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": records})
}

// Delete soft-deletes a record; the response carries an undo token valid
// for a few seconds.
func (h *Handler) Delete(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	id := c.Param("id")

	token, err := h.history.Delete(c.Request.Context(), uid, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "history record not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"undoToken":     token,
		"undoExpiresIn": service.UndoWindow.Seconds(),
	})
}

// Restore undoes a recent delete, re-creating the record verbatim.
func (h *Handler) Restore(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)

	var body struct {
		UndoToken string `json:"undoToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "undoToken is required"})
		return
	}

	record, err := h.history.Undo(c.Request.Context(), uid, body.UndoToken)
	if err != nil {
		if errors.Is(err, service.ErrUndoExpired) {
			c.JSON(http.StatusGone, gin.H{"error": "undo window has expired"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to restore record"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/history", h.List)
	r.DELETE("/history/:id", h.Delete)
	r.POST("/history/:id/restore", h.Restore)
}
