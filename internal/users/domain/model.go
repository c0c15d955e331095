package domain

import (
	"time"
)

type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

type PlanInterval string

const (
	IntervalMonthly PlanInterval = "monthly"
	IntervalYearly  PlanInterval = "yearly"
)

const (
	// FreeDailyLimit is the number of generations a free profile gets per
	// calendar day.
	FreeDailyLimit = 3

	// DefaultCredits is the legacy display counter assigned at signup.
	DefaultCredits = 5

	// ProCreditsSentinel is the constant shown to pro profiles instead of
	// a real balance.
	ProCreditsSentinel = 9999

	// DateLayout is the calendar-date form used by lastGenerationDate.
	DateLayout = "2006-01-02"
)

// Profile is the user record held in the users/{uid} document.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	Plan         Plan         `json:"plan"`
	PlanInterval PlanInterval `json:"planInterval,omitempty"`
	// PlanExpiresAt is an RFC 3339 timestamp; empty means no expiry set.
	PlanExpiresAt string `json:"planExpiresAt,omitempty"`
	IsPlanActive  bool   `json:"isPlanActive"`

	Credits               int    `json:"credits"`
	GenerationsTodayCount int    `json:"generationsTodayCount"`
	LastGenerationDate    string `json:"lastGenerationDate"`

	Role      string `json:"role,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Today formats now as a calendar date for comparison against
// LastGenerationDate.
func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}

// EffectiveGenerationsToday returns the usage count that quota decisions
// must use. The stored counter is only valid while LastGenerationDate is
// still today; otherwise it has lazily rolled over to zero.
func (p *Profile) EffectiveGenerationsToday(now time.Time) int {
	if p.LastGenerationDate == Today(now) {
		return p.GenerationsTodayCount
	}
	return 0
}

// PlanExpired reports whether a pro plan has passed its expiry.
func (p *Profile) PlanExpired(now time.Time) bool {
	if p.Plan != PlanPro || p.PlanExpiresAt == "" {
		return false
	}
	expiry, err := time.Parse(time.RFC3339, p.PlanExpiresAt)
	if err != nil {
		return false
	}
	return now.After(expiry)
}

// Normalized returns a copy of the profile with an expired pro plan
// downgraded to free. This must run before any quota decision; the second
// return reports whether a downgrade happened so callers can persist it.
func (p *Profile) Normalized(now time.Time) (Profile, bool) {
	out := *p
	if p.PlanExpired(now) {
		out.Plan = PlanFree
		out.IsPlanActive = false
		return out, true
	}
	return out, false
}

// IsAdmin reports whether the profile carries the admin role.
func (p *Profile) IsAdmin() bool {
	return p.Role == "admin"
}
