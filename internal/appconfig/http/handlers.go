package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/namelime/namelime-backend/internal/appconfig"
)

type Handler struct {
	config *appconfig.Service
}

func NewHandler(config *appconfig.Service) *Handler {
	return &Handler{config: config}
}

// GetConfig serves the merged app configuration. Always 200: failures
// upstream degrade to compiled-in defaults.
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.config.Get(c.Request.Context()))
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/config", h.GetConfig)
}
