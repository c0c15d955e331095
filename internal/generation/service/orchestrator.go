package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/namelime/namelime-backend/internal/generation/domain"
	usersdomain "github.com/namelime/namelime-backend/internal/users/domain"
)

// Generator produces ordered name candidates for a request. Failures may
// surface as an error or as a degraded fallback list; only an error is
// fatal to the run.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest, premium bool, exclude []string) ([]domain.GeneratedName, error)
}

// Reserver filters candidates for global uniqueness, reserving survivors.
type Reserver interface {
	ReserveUnique(ctx context.Context, candidates []domain.GeneratedName, userID, originalDescription string) []domain.GeneratedName
}

type historyStore interface {
	ListNames(ctx context.Context, uid string) ([]string, error)
	Add(ctx context.Context, uid string, req domain.GenerationRequest, results []domain.GeneratedName) (string, error)
}

type statsStore interface {
	UpdateStats(ctx context.Context, uid string, count int, date string, credits int) error
}

// OrchestrationResult is the outcome of one generation run. Persistence is
// reported separately from the delivered names: a failed history or stats
// write never invalidates the result.
type OrchestrationResult struct {
	Names []domain.GeneratedName `json:"names"`
	// Profile is the optimistically updated in-memory profile; nil for
	// anonymous runs.
	Profile     *usersdomain.Profile     `json:"profile,omitempty"`
	Persistence domain.PersistenceStatus `json:"persistence"`
}

// Orchestrator drives one generation request from submission to persisted
// result: quota enforcement, exclusion gathering, candidate generation,
// uniqueness filtering, usage accounting and best-effort persistence.
type Orchestrator struct {
	generator Generator
	reserver  Reserver
	history   historyStore
	stats     statsStore
	log       zerolog.Logger
	now       func() time.Time
}

func NewOrchestrator(generator Generator, reserver Reserver, history historyStore, stats statsStore, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		generator: generator,
		reserver:  reserver,
		history:   history,
		stats:     stats,
		log:       log.With().Str("component", "orchestrator").Logger(),
		now:       time.Now,
	}
}

// RunGeneration executes one orchestration run. A nil profile is an
// anonymous run: no quota gate, no exclusion gathering, no accounting and
// no persistence.
//
// Fatal conditions are a quota violation (before any network call) and a
// generator error (no quota consumed). Everything downstream of a
// delivered candidate list is best effort.
func (o *Orchestrator) RunGeneration(ctx context.Context, profile *usersdomain.Profile, req domain.GenerationRequest) (*OrchestrationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := o.now()

	// Expired pro plans are downgraded in the same run that detects the
	// expiry, before the quota gate sees the plan.
	var effectiveCount int
	if profile != nil {
		normalized, _ := profile.Normalized(now)
		profile = &normalized
		effectiveCount = profile.EffectiveGenerationsToday(now)

		if profile.Plan == usersdomain.PlanFree && effectiveCount >= usersdomain.FreeDailyLimit {
			return nil, &domain.QuotaExceededError{
				Limit:         usersdomain.FreeDailyLimit,
				UpgradeAction: "pricing",
			}
		}
	}

	// Prior results feed the exclusion set; losing them is not worth
	// failing the run over.
	var exclude []string
	if profile != nil {
		names, err := o.history.ListNames(ctx, profile.ID)
		if err != nil {
			o.log.Warn().Err(err).Str("uid", profile.ID).Msg("history fetch failed, proceeding without exclusions")
		} else {
			exclude = names
		}
	}

	premium := profile != nil && profile.Plan == usersdomain.PlanPro
	candidates, err := o.generator.Generate(ctx, req, premium, exclude)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	userID := ""
	if profile != nil {
		userID = profile.ID
	}

	// Global uniqueness is a best-effort enhancement, never a blocker:
	// zero survivors means the engine could not do its job, so the user
	// gets the unfiltered batch rather than an empty screen.
	final := candidates
	if unique := o.reserver.ReserveUnique(ctx, candidates, userID, req.Description); len(unique) > 0 {
		final = unique
	}

	result := &OrchestrationResult{Names: final}
	if profile == nil {
		return result, nil
	}

	// Optimistic local update first, so callers can reflect the new state
	// regardless of how the writes below fare.
	today := usersdomain.Today(now)
	newCount := effectiveCount + 1
	updated := *profile
	updated.GenerationsTodayCount = newCount
	updated.LastGenerationDate = today
	if updated.Plan == usersdomain.PlanFree {
		updated.Credits = usersdomain.FreeDailyLimit - newCount
	} else {
		updated.Credits = usersdomain.ProCreditsSentinel
	}
	result.Profile = &updated

	if _, err := o.history.Add(ctx, profile.ID, req, final); err != nil {
		o.log.Error().Err(err).Str("uid", profile.ID).Msg("history save failed")
		result.Persistence.HistoryError = err.Error()
	} else {
		result.Persistence.HistorySaved = true
	}

	if err := o.stats.UpdateStats(ctx, profile.ID, newCount, today, updated.Credits); err != nil {
		o.log.Error().Err(err).Str("uid", profile.ID).Msg("stats update failed")
		result.Persistence.StatsError = err.Error()
	} else {
		result.Persistence.StatsSaved = true
	}

	return result, nil
}
