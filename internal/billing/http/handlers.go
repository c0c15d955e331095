package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/namelime/namelime-backend/internal/auth"
	"github.com/namelime/namelime-backend/internal/billing/service"
)

type Handler struct {
	checkout *service.CheckoutService
	webhook  *service.WebhookService
	log      zerolog.Logger
}

func NewHandler(checkout *service.CheckoutService, webhook *service.WebhookService, log zerolog.Logger) *Handler {
	return &Handler{checkout: checkout, webhook: webhook, log: log}
}

type checkoutRequest struct {
	PriceID  string `json:"priceId" binding:"required"`
	PlanName string `json:"planName"`
}

// CreateCheckout starts a Stripe checkout session for the caller.
func (h *Handler) CreateCheckout(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "priceId is required"})
		return
	}

	sess, err := h.checkout.CreateCheckoutSession(uid, req.PriceID, req.PlanName)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, sess)
}

// StripeWebhook receives billing events from Stripe. Signature
// verification happens inside the service; anything that fails it gets
// a 400 so Stripe retries.
func (h *Handler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, 65536))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read payload"})
		return
	}

	if err := h.webhook.HandleEvent(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		h.log.Error().Err(err).Msg("stripe webhook rejected")
		c.JSON(http.StatusBadRequest, gin.H{"error": "webhook handling failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// Register mounts authenticated billing routes.
func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/billing/checkout", h.CreateCheckout)
}

// RegisterWebhook mounts the public webhook route.
func (h *Handler) RegisterWebhook(r gin.IRoutes) {
	r.POST("/webhooks/stripe", h.StripeWebhook)
}
