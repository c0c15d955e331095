package appconfig

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/namelime/namelime-backend/internal/store"
)

const (
	// configDocPath is the remotely managed configuration document.
	configDocPath = "app_config/global"

	cacheKey = "appconfig:global"
	cacheTTL = 10 * time.Minute
)

// Service serves the app configuration: compiled-in defaults, deep-merged
// with the remote document, cached in Redis and refreshed periodically.
type Service struct {
	store store.Store
	redis *redis.Client
	log   zerolog.Logger
	cron  *cron.Cron
}

func NewService(s store.Store, rdb *redis.Client, log zerolog.Logger) *Service {
	return &Service{
		store: s,
		redis: rdb,
		log:   log.With().Str("component", "appconfig").Logger(),
	}
}

// Get returns the current configuration, preferring the cache. Any failure
// along the way degrades to defaults; configuration is never a reason to
// fail a request.
func (s *Service) Get(ctx context.Context) AppConfig {
	if s.redis != nil {
		if raw, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var cfg AppConfig
			if err := json.Unmarshal([]byte(raw), &cfg); err == nil {
				return cfg
			}
			s.log.Warn().Err(err).Msg("cached config unreadable, refetching")
		}
	}
	return s.Refresh(ctx)
}

// Refresh fetches the remote document, merges it over the defaults and
// repopulates the cache.
func (s *Service) Refresh(ctx context.Context) AppConfig {
	cfg := Defaults()

	doc, exists, err := s.store.Get(ctx, configDocPath)
	switch {
	case err != nil:
		s.log.Error().Err(err).Msg("remote config fetch failed, serving defaults")
		return cfg
	case !exists:
		s.log.Warn().Str("path", configDocPath).Msg("remote config document missing, serving defaults")
	default:
		// json.Unmarshal over a prefilled struct only touches fields the
		// remote document actually sets, which gives the deep merge the
		// client performed by hand.
		raw, err := json.Marshal(doc.Data)
		if err == nil {
			err = json.Unmarshal(raw, &cfg)
		}
		if err != nil {
			s.log.Error().Err(err).Msg("remote config unreadable, serving defaults")
			return Defaults()
		}
	}

	if s.redis != nil {
		if raw, err := json.Marshal(cfg); err == nil {
			if err := s.redis.Set(ctx, cacheKey, raw, cacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Msg("config cache write failed")
			}
		}
	}

	return cfg
}

// StartRefresher schedules a periodic cache refresh so edits to the remote
// document propagate without waiting for the TTL.
func (s *Service) StartRefresher() {
	c := cron.New()
	_, err := c.AddFunc("@every 5m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.Refresh(ctx)
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to schedule config refresher")
		return
	}
	c.Start()
	s.cron = c
	s.log.Info().Msg("config refresher started (every 5m)")
}

// StopRefresher stops the periodic refresh.
func (s *Service) StopRefresher() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
