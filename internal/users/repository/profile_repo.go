package repository

import (
	"context"
	"time"

	"github.com/namelime/namelime-backend/internal/store"
	"github.com/namelime/namelime-backend/internal/users/domain"
)

const usersCollection = "users"

// ProfileRepository persists user profiles in users/{uid} documents.
type ProfileRepository struct {
	store store.Store
}

func NewProfileRepository(s store.Store) *ProfileRepository {
	return &ProfileRepository{store: s}
}

func (r *ProfileRepository) docPath(uid string) string {
	return usersCollection + "/" + uid
}

// Get fetches the profile for uid. The bool reports whether the remote
// record exists.
func (r *ProfileRepository) Get(ctx context.Context, uid string) (*domain.Profile, bool, error) {
	doc, exists, err := r.store.Get(ctx, r.docPath(uid))
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, nil
	}
	p := decodeProfile(uid, doc.Data)
	return &p, true, nil
}

// Create writes a brand-new profile record with signup defaults.
func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	data := map[string]any{
		"email":                 p.Email,
		"name":                  p.Name,
		"photoURL":              p.AvatarURL,
		"role":                  "user",
		"plan":                  string(domain.PlanFree),
		"credits":               domain.DefaultCredits,
		"generationsTodayCount": 0,
		"lastGenerationDate":    "",
		"createdAt":             store.ServerTimestamp,
		"lastLoginAt":           store.ServerTimestamp,
	}
	return r.store.Set(ctx, r.docPath(p.ID), data, false)
}

// UpdateStats merge-writes the usage fields after a successful generation,
// together with a server-assigned update timestamp.
func (r *ProfileRepository) UpdateStats(ctx context.Context, uid string, count int, date string, credits int) error {
	data := map[string]any{
		"generationsTodayCount": count,
		"lastGenerationDate":    date,
		"credits":               credits,
		"lastUpdated":           store.ServerTimestamp,
	}
	return r.store.Set(ctx, r.docPath(uid), data, true)
}

// SetPlanExpiry backfills a missing pro expiry date.
func (r *ProfileRepository) SetPlanExpiry(ctx context.Context, uid string, expiresAt time.Time) error {
	return r.store.Update(ctx, r.docPath(uid), map[string]any{
		"planExpiresAt": expiresAt.UTC().Format(time.RFC3339),
	})
}

// Downgrade reverts an expired pro profile to the free plan.
func (r *ProfileRepository) Downgrade(ctx context.Context, uid string) error {
	return r.store.Update(ctx, r.docPath(uid), map[string]any{
		"plan":         string(domain.PlanFree),
		"isPlanActive": false,
	})
}

// ApplyUpgrade marks the profile pro after a completed checkout.
func (r *ProfileRepository) ApplyUpgrade(ctx context.Context, uid string, interval domain.PlanInterval, expiresAt time.Time) error {
	data := map[string]any{
		"plan":          string(domain.PlanPro),
		"credits":       domain.ProCreditsSentinel,
		"planInterval":  string(interval),
		"planExpiresAt": expiresAt.UTC().Format(time.RFC3339),
		"isPlanActive":  true,
	}
	return r.store.Set(ctx, r.docPath(uid), data, true)
}

// TouchLogin refreshes the last-login timestamp.
func (r *ProfileRepository) TouchLogin(ctx context.Context, uid string) error {
	return r.store.Set(ctx, r.docPath(uid), map[string]any{
		"lastLoginAt": store.ServerTimestamp,
	}, true)
}

func decodeProfile(uid string, data map[string]any) domain.Profile {
	p := domain.Profile{
		ID:                    uid,
		Name:                  strField(data, "name"),
		Email:                 strField(data, "email"),
		Plan:                  domain.Plan(strField(data, "plan")),
		PlanInterval:          domain.PlanInterval(strField(data, "planInterval")),
		PlanExpiresAt:         strField(data, "planExpiresAt"),
		Credits:               intField(data, "credits", domain.DefaultCredits),
		GenerationsTodayCount: intField(data, "generationsTodayCount", 0),
		LastGenerationDate:    strField(data, "lastGenerationDate"),
		Role:                  strField(data, "role"),
		AvatarURL:             strField(data, "photoURL"),
	}
	if p.Plan == "" {
		p.Plan = domain.PlanFree
	}
	if p.Role == "" {
		p.Role = "user"
	}
	if v, ok := data["isPlanActive"].(bool); ok {
		p.IsPlanActive = v
	} else {
		p.IsPlanActive = p.Plan == domain.PlanPro
	}
	return p
}

func strField(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

// intField tolerates the numeric types the store may hand back.
func intField(data map[string]any, key string, def int) int {
	switch v := data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}
