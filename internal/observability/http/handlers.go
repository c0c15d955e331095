package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/namelime/namelime-backend/internal/auth"
	"github.com/namelime/namelime-backend/internal/observability"
	usersservice "github.com/namelime/namelime-backend/internal/users/service"
)

// Handler exposes the in-memory log buffer to admin users.
type Handler struct {
	ring     *observability.LogRing
	profiles *usersservice.ProfileService
	log      zerolog.Logger
}

func NewHandler(ring *observability.LogRing, profiles *usersservice.ProfileService, log zerolog.Logger) *Handler {
	return &Handler{ring: ring, profiles: profiles, log: log}
}

// Logs returns the buffered log lines, oldest first. Only profiles with
// the admin role may read them.
func (h *Handler) Logs(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	profile, err := h.profiles.EnsureProfile(c.Request.Context(), usersservice.AuthUser{
		UID:         uid,
		Email:       auth.UserEmail(c),
		DisplayName: auth.UserDisplayName(c),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	if !profile.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}

	lines := h.ring.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"lines": lines,
		"count": len(lines),
	})
}

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/admin/logs", h.Logs)
}
