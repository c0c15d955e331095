package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/namelime/namelime-backend/internal/users/domain"
)

// profileStore is the slice of the repository the session controller needs.
type profileStore interface {
	Get(ctx context.Context, uid string) (*domain.Profile, bool, error)
	Create(ctx context.Context, p *domain.Profile) error
	SetPlanExpiry(ctx context.Context, uid string, expiresAt time.Time) error
	Downgrade(ctx context.Context, uid string) error
	TouchLogin(ctx context.Context, uid string) error
}

// AuthUser carries the identity fields issued by the identity provider.
type AuthUser struct {
	UID         string
	DisplayName string
	Email       string
	PhotoURL    string
}

// ProfileService is the session/profile controller: it hydrates or lazily
// creates the remote profile on sign-in and applies the plan-expiry
// normalization invariant before anyone makes a quota decision.
type ProfileService struct {
	repo profileStore
	log  zerolog.Logger
	now  func() time.Time
}

func NewProfileService(repo profileStore, log zerolog.Logger) *ProfileService {
	return &ProfileService{
		repo: repo,
		log:  log.With().Str("component", "profile_service").Logger(),
		now:  time.Now,
	}
}

// EnsureProfile returns the profile for the signed-in user, creating the
// remote record with signup defaults when it does not exist yet.
func (s *ProfileService) EnsureProfile(ctx context.Context, u AuthUser) (*domain.Profile, error) {
	profile, exists, err := s.repo.Get(ctx, u.UID)
	if err != nil {
		return nil, err
	}

	if !exists {
		s.log.Warn().Str("uid", u.UID).Msg("user record missing, creating new record")
		fresh := &domain.Profile{
			ID:        u.UID,
			Name:      displayNameOr(u.DisplayName),
			Email:     u.Email,
			Plan:      domain.PlanFree,
			Credits:   domain.DefaultCredits,
			Role:      "user",
			AvatarURL: u.PhotoURL,
		}
		if err := s.repo.Create(ctx, fresh); err != nil {
			return nil, err
		}
		return fresh, nil
	}

	// Identity fields come from the provider, not the stored record.
	if u.DisplayName != "" {
		profile.Name = u.DisplayName
	}
	if u.Email != "" {
		profile.Email = u.Email
	}

	now := s.now()

	// Backfill: a pro profile without an expiry gets one 30 days out.
	if profile.Plan == domain.PlanPro && profile.PlanExpiresAt == "" {
		expiry := now.AddDate(0, 0, 30)
		profile.PlanExpiresAt = expiry.UTC().Format(time.RFC3339)
		if err := s.repo.SetPlanExpiry(ctx, u.UID, expiry); err != nil {
			s.log.Error().Err(err).Str("uid", u.UID).Msg("plan expiry backfill failed")
		}
	}

	// Expiry guard: downgrade before the profile reaches any quota gate.
	normalized, downgraded := profile.Normalized(now)
	if downgraded {
		s.log.Info().Str("uid", u.UID).Msg("subscription expired, reverting to free")
		if err := s.repo.Downgrade(ctx, u.UID); err != nil {
			s.log.Error().Err(err).Str("uid", u.UID).Msg("downgrade write failed")
		}
	}

	if err := s.repo.TouchLogin(ctx, u.UID); err != nil {
		s.log.Debug().Err(err).Str("uid", u.UID).Msg("last-login touch failed")
	}

	return &normalized, nil
}

func displayNameOr(name string) string {
	if name == "" {
		return "User"
	}
	return name
}
