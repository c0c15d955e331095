package reservation

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/namelime/namelime-backend/internal/generation/domain"
	"github.com/namelime/namelime-backend/internal/store"
)

const (
	// takenNamesCollection holds one reservation per normalized name key.
	takenNamesCollection = "taken_names"

	// AnonymousUserID marks reservations made by unauthenticated runs.
	AnonymousUserID = "anonymous"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// NormalizeKey maps a display name to its reservation key: lowercase,
// trimmed, stripped of everything outside [a-z0-9]. Idempotent.
func NormalizeKey(name string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "")
}

// Engine filters candidates against the global reservation collection and
// claims the survivors. Uniqueness is best effort: the engine fails open
// whenever the store cannot be consulted, because blocking the user is
// worse than an unreserved duplicate.
type Engine struct {
	store store.Store
	log   zerolog.Logger
}

func NewEngine(s store.Store, log zerolog.Logger) *Engine {
	return &Engine{
		store: s,
		log:   log.With().Str("component", "reservation").Logger(),
	}
}

// ReserveUnique processes candidates strictly in input order (earlier
// candidates get first claim) and returns the subset considered globally
// unique, reserving each survivor as a side effect.
//
// Per-candidate policy:
//   - reservation already exists            -> drop
//   - existence check fails                 -> keep (cannot verify)
//   - claim write denied by permissions     -> keep (known misconfiguration)
//   - claim write fails any other way       -> drop (uniqueness uncertain)
//
// With no store at all the engine returns nil; the orchestrator falls back
// to the unfiltered candidate list.
func (e *Engine) ReserveUnique(ctx context.Context, candidates []domain.GeneratedName, userID, originalDescription string) []domain.GeneratedName {
	if e.store == nil {
		e.log.Error().Msg("reservation store unavailable, skipping uniqueness pass")
		return nil
	}

	reservedBy := userID
	if reservedBy == "" {
		reservedBy = AnonymousUserID
	}

	out := make([]domain.GeneratedName, 0, len(candidates))
	for _, candidate := range candidates {
		key := NormalizeKey(candidate.Name)
		if key == "" {
			// No addressable key; nothing to check against.
			e.log.Debug().Str("name", candidate.Name).Msg("candidate has no normalizable key")
			out = append(out, candidate)
			continue
		}
		path := takenNamesCollection + "/" + key

		_, exists, err := e.store.Get(ctx, path)
		if err != nil {
			// Fail open: the user should not be blocked because the check
			// itself failed.
			e.log.Warn().Err(err).Str("key", key).Msg("global uniqueness check failed")
			out = append(out, candidate)
			continue
		}
		if exists {
			e.log.Info().Str("name", candidate.Name).Msg("skipped, already taken by another user")
			continue
		}

		err = e.store.Create(ctx, path, map[string]any{
			"name":          candidate.Name,
			"reservedBy":    reservedBy,
			"reservedAt":    store.ServerTimestamp,
			"originalQuery": originalDescription,
		})
		switch {
		case err == nil:
			out = append(out, candidate)
		case store.IsPermissionDenied(err):
			// Known condition (misconfigured backend rules): proceed without
			// a reservation rather than block the user.
			e.log.Warn().Str("key", key).Msg("reservation skipped: permission denied")
			out = append(out, candidate)
		default:
			// Includes a lost create race. The reservation state is
			// uncertain, so do not promise uniqueness that wasn't established.
			e.log.Error().Err(err).Str("key", key).Msg("global reservation failed")
		}
	}

	return out
}
