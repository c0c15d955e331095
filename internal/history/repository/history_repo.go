package repository

import (
	"context"
	"time"

	"github.com/namelime/namelime-backend/internal/generation/domain"
	"github.com/namelime/namelime-backend/internal/store"
)

// Record is one persisted orchestration run: the originating request and
// the final candidate list, exactly as delivered.
type Record struct {
	ID        string                   `json:"id"`
	Request   domain.GenerationRequest `json:"request"`
	Results   []domain.GeneratedName   `json:"results"`
	Timestamp time.Time                `json:"timestamp"`
}

// HistoryRepository persists history records under users/{uid}/history.
type HistoryRepository struct {
	store store.Store
}

func NewHistoryRepository(s store.Store) *HistoryRepository {
	return &HistoryRepository{store: s}
}

func historyCollection(uid string) string {
	return "users/" + uid + "/history"
}

// List returns the user's records ordered by recency.
func (r *HistoryRepository) List(ctx context.Context, uid string) ([]Record, error) {
	docs, err := r.store.List(ctx, historyCollection(uid), "timestamp", true)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, decodeRecord(doc.ID, doc.Data))
	}
	return records, nil
}

// ListNames flattens every candidate name the user has already been shown,
// for use as a generation exclusion set.
func (r *HistoryRepository) ListNames(ctx context.Context, uid string) ([]string, error) {
	records, err := r.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, rec := range records {
		for _, result := range rec.Results {
			if result.Name != "" {
				names = append(names, result.Name)
			}
		}
	}
	return names, nil
}

// Get fetches one record by id.
func (r *HistoryRepository) Get(ctx context.Context, uid, id string) (*Record, bool, error) {
	doc, exists, err := r.store.Get(ctx, historyCollection(uid)+"/"+id)
	if err != nil || !exists {
		return nil, false, err
	}
	rec := decodeRecord(id, doc.Data)
	return &rec, true, nil
}

// Add creates a new record with a server-assigned timestamp and returns
// its id.
func (r *HistoryRepository) Add(ctx context.Context, uid string, req domain.GenerationRequest, results []domain.GeneratedName) (string, error) {
	data := map[string]any{
		"request":   encodeRequest(req),
		"results":   encodeResults(results),
		"timestamp": store.ServerTimestamp,
	}
	return r.store.Add(ctx, historyCollection(uid), data)
}

// Delete removes a record.
func (r *HistoryRepository) Delete(ctx context.Context, uid, id string) error {
	return r.store.Delete(ctx, historyCollection(uid)+"/"+id)
}

// Restore re-creates a deleted record verbatim, keeping its original id
// and timestamp.
func (r *HistoryRepository) Restore(ctx context.Context, uid string, rec Record) error {
	data := map[string]any{
		"request":   encodeRequest(rec.Request),
		"results":   encodeResults(rec.Results),
		"timestamp": rec.Timestamp,
	}
	return r.store.Set(ctx, historyCollection(uid)+"/"+rec.ID, data, false)
}

func encodeRequest(req domain.GenerationRequest) map[string]any {
	return map[string]any{
		"description": req.Description,
		"keywords":    req.Keywords,
		"style":       string(req.Style),
		"tone":        string(req.Tone),
		"industry":    req.Industry,
		"audience":    req.Audience,
		"target":      req.Target,
		"vibe":        req.Vibe,
		"wordCount":   string(req.WordCount),
	}
}

func encodeResults(results []domain.GeneratedName) []any {
	out := make([]any, 0, len(results))
	for _, result := range results {
		domains := make([]any, 0, len(result.Domains))
		for _, d := range result.Domains {
			domains = append(domains, map[string]any{
				"tld":       d.TLD,
				"available": d.Available,
				"premium":   d.Premium,
			})
		}
		out = append(out, map[string]any{
			"id":        result.ID,
			"name":      result.Name,
			"archetype": string(result.Archetype),
			"reasoning": result.Reasoning,
			"domains":   domains,
		})
	}
	return out
}

func decodeRecord(id string, data map[string]any) Record {
	rec := Record{ID: id}

	if m, ok := data["request"].(map[string]any); ok {
		rec.Request = domain.GenerationRequest{
			Description: strField(m, "description"),
			Keywords:    strField(m, "keywords"),
			Style:       domain.NamingStyle(strField(m, "style")),
			Tone:        domain.Tone(strField(m, "tone")),
			Industry:    strField(m, "industry"),
			Audience:    strField(m, "audience"),
			Target:      strField(m, "target"),
			Vibe:        strField(m, "vibe"),
			WordCount:   domain.WordCountPreference(strField(m, "wordCount")),
		}
	}

	if list, ok := data["results"].([]any); ok {
		for _, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			name := domain.GeneratedName{
				ID:        strField(m, "id"),
				Name:      strField(m, "name"),
				Archetype: domain.NamingStyle(strField(m, "archetype")),
				Reasoning: strField(m, "reasoning"),
			}
			if domains, ok := m["domains"].([]any); ok {
				for _, dm := range domains {
					d, ok := dm.(map[string]any)
					if !ok {
						continue
					}
					name.Domains = append(name.Domains, domain.DomainOption{
						TLD:       strField(d, "tld"),
						Available: boolField(d, "available"),
						Premium:   boolField(d, "premium"),
					})
				}
			}
			rec.Results = append(rec.Results, name)
		}
	}

	if t, ok := data["timestamp"].(time.Time); ok {
		rec.Timestamp = t
	}

	return rec
}

func strField(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

func boolField(data map[string]any, key string) bool {
	if v, ok := data[key].(bool); ok {
		return v
	}
	return false
}
