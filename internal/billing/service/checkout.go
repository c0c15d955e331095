package service

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

const (
	PriceMonthly = "price_monthly"
	PriceYearly  = "price_yearly"

	// Amounts in cents, kept in line with the pricing config plans:
	// $15/month, $144/year (12 x $12).
	amountMonthly = 1500
	amountYearly  = 14400
)

// CheckoutSession is what a client needs to hand off to Stripe.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CheckoutService creates Stripe subscription checkout sessions for the
// pro upgrade.
type CheckoutService struct {
	appURL string
	log    zerolog.Logger
}

func NewCheckoutService(secretKey, appURL string, log zerolog.Logger) *CheckoutService {
	stripe.Key = secretKey
	return &CheckoutService{
		appURL: appURL,
		log:    log.With().Str("component", "billing").Logger(),
	}
}

// CreateCheckoutSession builds a subscription checkout for the given price
// id. The user id and billing interval ride along as metadata so the
// webhook can apply the upgrade to the right profile.
func (s *CheckoutService) CreateCheckoutSession(userID, priceID, planName string) (*CheckoutSession, error) {
	interval := "month"
	amount := int64(amountMonthly)
	if priceID == PriceYearly {
		interval = "year"
		amount = int64(amountYearly)
	}
	if planName == "" {
		planName = "Founder Pro Plan"
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("usd"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(planName),
					},
					UnitAmount: stripe.Int64(amount),
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval: stripe.String(interval),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(fmt.Sprintf("%s/payment-status?status=success&interval=%s", s.appURL, interval)),
		CancelURL:  stripe.String(fmt.Sprintf("%s/payment-status?status=cancel", s.appURL)),
	}
	params.AddMetadata("userId", userID)
	params.AddMetadata("interval", interval)

	sess, err := session.New(params)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("checkout session creation failed")
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Str("interval", interval).Msg("checkout session created")
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}
