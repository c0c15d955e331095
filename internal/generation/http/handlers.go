package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/namelime/namelime-backend/internal/auth"
	"github.com/namelime/namelime-backend/internal/generation/domain"
	"github.com/namelime/namelime-backend/internal/generation/service"
	usersdomain "github.com/namelime/namelime-backend/internal/users/domain"
	usersservice "github.com/namelime/namelime-backend/internal/users/service"
)

const quotaMessage = "Daily limit reached! Free users can generate 3 times per day. Upgrade to Founder Pro for unlimited access!"

type Handler struct {
	orchestrator *service.Orchestrator
	profiles     *usersservice.ProfileService
	log          zerolog.Logger
}

func NewHandler(orchestrator *service.Orchestrator, profiles *usersservice.ProfileService, log zerolog.Logger) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		profiles:     profiles,
		log:          log.With().Str("component", "generation_http").Logger(),
	}
}

// Generate runs one orchestration for the submitted request. Anonymous
// callers are served without quota, exclusions or persistence.
func (h *Handler) Generate(c *gin.Context) {
	var req domain.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A failed profile hydration degrades to an anonymous run, matching
	// the client's behavior when its session fetch fails.
	var profile *usersdomain.Profile
	if uid := auth.UserFirebaseUID(c); uid != "" {
		p, err := h.profiles.EnsureProfile(c.Request.Context(), usersservice.AuthUser{
			UID:         uid,
			DisplayName: auth.UserDisplayName(c),
			Email:       auth.UserEmail(c),
		})
		if err != nil {
			h.log.Warn().Err(err).Str("uid", uid).Msg("profile hydration failed, treating run as anonymous")
		} else {
			profile = p
		}
	}

	result, err := h.orchestrator.RunGeneration(c.Request.Context(), profile, req)
	if err != nil {
		switch {
		case domain.IsQuotaExceeded(err):
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": quotaMessage,
				"upgrade": gin.H{
					"action": "pricing",
					"label":  "Upgrade to Pro",
				},
			})
		case errors.Is(err, domain.ErrEmptyDescription):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrGenerationFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": "name generation failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "generation run failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) Register(r gin.IRouter) {
	r.POST("/generate", h.Generate)
}
