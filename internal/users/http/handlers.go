package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/namelime/namelime-backend/internal/auth"
	"github.com/namelime/namelime-backend/internal/users/service"
)

type Handler struct {
	profiles *service.ProfileService
}

func NewHandler(profiles *service.ProfileService) *Handler {
	return &Handler{profiles: profiles}
}

// Me returns the caller's profile, creating the remote record on first
// sign-in. The response is already plan-expiry normalized.
func (h *Handler) Me(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.profiles.EnsureProfile(c.Request.Context(), service.AuthUser{
		UID:         uid,
		DisplayName: auth.UserDisplayName(c),
		Email:       auth.UserEmail(c),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/me", h.Me)
}
