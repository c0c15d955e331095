package service

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namelime/namelime-backend/internal/history/repository"
	"github.com/namelime/namelime-backend/internal/store"
)

// memStore is an in-memory document store keyed by full path.
type memStore struct {
	docs map[string]map[string]any
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[string]map[string]any)}
}

func (m *memStore) Get(_ context.Context, path string) (*store.Document, bool, error) {
	data, ok := m.docs[path]
	if !ok {
		return nil, false, nil
	}
	return &store.Document{ID: lastSegment(path), Data: data}, true, nil
}

func (m *memStore) Set(_ context.Context, path string, data map[string]any, _ bool) error {
	m.docs[path] = data
	return nil
}

func (m *memStore) Create(_ context.Context, path string, data map[string]any) error {
	m.docs[path] = data
	return nil
}

func (m *memStore) Update(_ context.Context, path string, data map[string]any) error {
	for k, v := range data {
		m.docs[path][k] = v
	}
	return nil
}

func (m *memStore) Delete(_ context.Context, path string) error {
	delete(m.docs, path)
	return nil
}

func (m *memStore) Add(_ context.Context, collection string, data map[string]any) (string, error) {
	id := "doc-" + time.Now().Format("150405.000000000")
	m.docs[collection+"/"+id] = data
	return id, nil
}

func (m *memStore) List(_ context.Context, collection, _ string, _ bool) ([]store.Document, error) {
	var out []store.Document
	for path, data := range m.docs {
		if strings.HasPrefix(path, collection+"/") && !strings.Contains(strings.TrimPrefix(path, collection+"/"), "/") {
			out = append(out, store.Document{ID: lastSegment(path), Data: data})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func lastSegment(path string) string {
	parts := strings.Split(path, "/")
	return parts[len(parts)-1]
}

func seedRecord(ms *memStore, uid, id, name string) {
	ms.docs["users/"+uid+"/history/"+id] = map[string]any{
		"request": map[string]any{"description": "an app"},
		"results": []any{
			map[string]any{"id": "gen-1", "name": name},
		},
		"timestamp": time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
	}
}

func newTestHistoryService(ms *memStore) *HistoryService {
	s := NewHistoryService(repository.NewHistoryRepository(ms), zerolog.Nop())
	s.window = 100 * time.Millisecond
	return s
}

func TestDeleteReturnsUndoTokenAndRemovesRecord(t *testing.T) {
	ms := newMemStore()
	seedRecord(ms, "user-1", "h1", "Velocify")
	s := newTestHistoryService(ms)

	token, err := s.Delete(context.Background(), "user-1", "h1")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	_, exists := ms.docs["users/user-1/history/h1"]
	assert.False(t, exists)
}

func TestUndoRestoresRecordVerbatim(t *testing.T) {
	ms := newMemStore()
	seedRecord(ms, "user-1", "h1", "Velocify")
	s := newTestHistoryService(ms)

	token, err := s.Delete(context.Background(), "user-1", "h1")
	require.NoError(t, err)

	rec, err := s.Undo(context.Background(), "user-1", token)
	require.NoError(t, err)
	assert.Equal(t, "h1", rec.ID)
	assert.Equal(t, time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), rec.Timestamp)

	restored, ok := ms.docs["users/user-1/history/h1"]
	require.True(t, ok)
	// Original timestamp survives the round trip.
	assert.Equal(t, time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), restored["timestamp"])
}

func TestUndoAfterWindowExpires(t *testing.T) {
	ms := newMemStore()
	seedRecord(ms, "user-1", "h1", "Velocify")
	s := newTestHistoryService(ms)

	token, err := s.Delete(context.Background(), "user-1", "h1")
	require.NoError(t, err)

	time.Sleep(150 * time.Millisecond)

	_, err = s.Undo(context.Background(), "user-1", token)
	assert.ErrorIs(t, err, ErrUndoExpired)
}

func TestUndoTokenIsSingleUse(t *testing.T) {
	ms := newMemStore()
	seedRecord(ms, "user-1", "h1", "Velocify")
	s := newTestHistoryService(ms)

	token, err := s.Delete(context.Background(), "user-1", "h1")
	require.NoError(t, err)

	_, err = s.Undo(context.Background(), "user-1", token)
	require.NoError(t, err)

	_, err = s.Undo(context.Background(), "user-1", token)
	assert.ErrorIs(t, err, ErrUndoExpired)
}

func TestUndoRejectsWrongUser(t *testing.T) {
	ms := newMemStore()
	seedRecord(ms, "user-1", "h1", "Velocify")
	s := newTestHistoryService(ms)

	token, err := s.Delete(context.Background(), "user-1", "h1")
	require.NoError(t, err)

	_, err = s.Undo(context.Background(), "user-2", token)
	assert.ErrorIs(t, err, ErrUndoExpired)
}

func TestDeleteMissingRecord(t *testing.T) {
	s := newTestHistoryService(newMemStore())

	_, err := s.Delete(context.Background(), "user-1", "nope")
	assert.Error(t, err)
}
