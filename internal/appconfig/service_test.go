package appconfig

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namelime/namelime-backend/internal/store"
)

type fakeStore struct {
	data   map[string]any
	exists bool
	err    error
}

func (f *fakeStore) Get(context.Context, string) (*store.Document, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	if !f.exists {
		return nil, false, nil
	}
	return &store.Document{ID: "global", Data: f.data}, true, nil
}

func (f *fakeStore) Set(context.Context, string, map[string]any, bool) error { return nil }
func (f *fakeStore) Create(context.Context, string, map[string]any) error    { return nil }
func (f *fakeStore) Update(context.Context, string, map[string]any) error    { return nil }
func (f *fakeStore) Delete(context.Context, string) error                    { return nil }
func (f *fakeStore) Add(context.Context, string, map[string]any) (string, error) {
	return "", nil
}
func (f *fakeStore) List(context.Context, string, string, bool) ([]store.Document, error) {
	return nil, nil
}

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestGetServesDefaultsWhenDocumentMissing(t *testing.T) {
	s := NewService(&fakeStore{exists: false}, testRedis(t), zerolog.Nop())

	cfg := s.Get(context.Background())

	assert.Equal(t, "Name your", cfg.Headline.Main)
	assert.Len(t, cfg.FeaturedStyles, 7)
	assert.Equal(t, 15, cfg.Pricing.Plans.Founder.MonthlyPrice)
}

func TestGetServesDefaultsOnStoreError(t *testing.T) {
	s := NewService(&fakeStore{err: errors.New("unavailable")}, nil, zerolog.Nop())

	cfg := s.Get(context.Background())

	assert.Equal(t, "next big thing.", cfg.Headline.Accent)
}

func TestRefreshDeepMergesRemoteOverlay(t *testing.T) {
	remote := map[string]any{
		"headline": map[string]any{"main": "Brand your"},
		"banners": []any{
			map[string]any{"enabled": true, "title": "Launch week", "type": "promo"},
		},
	}
	s := NewService(&fakeStore{data: remote, exists: true}, nil, zerolog.Nop())

	cfg := s.Refresh(context.Background())

	// Overridden field.
	assert.Equal(t, "Brand your", cfg.Headline.Main)
	// Untouched sibling keeps its default.
	assert.Equal(t, "next big thing.", cfg.Headline.Accent)
	require.Len(t, cfg.Banners, 1)
	assert.Equal(t, "Launch week", cfg.Banners[0].Title)
	assert.Len(t, cfg.QuickPrompts, 4)
}

func TestGetPrefersCache(t *testing.T) {
	rdb := testRedis(t)
	cached := Defaults()
	cached.Headline.Main = "From cache"
	raw, err := json.Marshal(cached)
	require.NoError(t, err)
	require.NoError(t, rdb.Set(context.Background(), cacheKey, raw, 0).Err())

	// A store error would surface if Get ever hit it.
	s := NewService(&fakeStore{err: errors.New("must not be called")}, rdb, zerolog.Nop())

	cfg := s.Get(context.Background())

	assert.Equal(t, "From cache", cfg.Headline.Main)
}

func TestRefreshPopulatesCache(t *testing.T) {
	rdb := testRedis(t)
	s := NewService(&fakeStore{exists: false}, rdb, zerolog.Nop())

	s.Refresh(context.Background())

	raw, err := rdb.Get(context.Background(), cacheKey).Result()
	require.NoError(t, err)
	var cfg AppConfig
	require.NoError(t, json.Unmarshal([]byte(raw), &cfg))
	assert.Equal(t, "Name your", cfg.Headline.Main)
}
