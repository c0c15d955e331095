package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	usersdomain "github.com/namelime/namelime-backend/internal/users/domain"
)

// Upgrader applies a paid upgrade to a user profile.
type Upgrader interface {
	ApplyUpgrade(ctx context.Context, uid string, interval usersdomain.PlanInterval, expiresAt time.Time) error
}

// WebhookService verifies incoming Stripe events and fulfills completed
// checkouts.
type WebhookService struct {
	signingSecret string
	upgrader      Upgrader
	log           zerolog.Logger
	now           func() time.Time
}

func NewWebhookService(signingSecret string, upgrader Upgrader, log zerolog.Logger) *WebhookService {
	return &WebhookService{
		signingSecret: signingSecret,
		upgrader:      upgrader,
		log:           log.With().Str("component", "billing").Logger(),
		now:           time.Now,
	}
}

// HandleEvent verifies the payload signature and processes the event.
// Unrecognized event types are acknowledged without action.
func (s *WebhookService) HandleEvent(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.signingSecret)
	if err != nil {
		return fmt.Errorf("webhook signature verification failed: %w", err)
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("parsing checkout session: %w", err)
		}
		return s.fulfillCheckout(ctx, &sess)
	default:
		s.log.Debug().Str("type", string(event.Type)).Msg("ignoring stripe event")
		return nil
	}
}

func (s *WebhookService) fulfillCheckout(ctx context.Context, sess *stripe.CheckoutSession) error {
	uid := sess.Metadata["userId"]
	if uid == "" {
		s.log.Error().Str("session_id", sess.ID).Msg("checkout session missing userId metadata")
		return nil
	}

	interval := usersdomain.IntervalMonthly
	if sess.Metadata["interval"] == "year" {
		interval = usersdomain.IntervalYearly
	}

	// One day of buffer past the billing period so renewals processed
	// slightly late do not flap the plan.
	expiry := s.now().AddDate(0, 1, 1)
	if interval == usersdomain.IntervalYearly {
		expiry = s.now().AddDate(1, 0, 1)
	}

	if err := s.upgrader.ApplyUpgrade(ctx, uid, interval, expiry); err != nil {
		s.log.Error().Err(err).Str("user_id", uid).Msg("applying upgrade failed")
		return err
	}

	s.log.Info().Str("user_id", uid).Str("interval", string(interval)).Time("expires_at", expiry).Msg("pro upgrade applied")
	return nil
}
