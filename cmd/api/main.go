package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/namelime/namelime-backend/config"
	"github.com/namelime/namelime-backend/internal/auth"
	"github.com/namelime/namelime-backend/internal/bootstrap"
	"github.com/namelime/namelime-backend/internal/observability"
)

const serviceName = "namelime-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	ring := observability.NewLogRing(1000)
	log := observability.NewLogger(observability.LoggerConfig{
		Level:  cfg.App.LogLevel,
		Format: cfg.App.LogFormat,
	}, ring)

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	firebase, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize firebase")
	}
	defer firebase.Firestore.Close()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, continuing without cache")
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	router, configSvc := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Config:      cfg,
		Log:         log,
		LogRing:     ring,
		Firebase:    firebase,
		Redis:       rdb,
	})

	configSvc.StartRefresher()
	defer configSvc.StopRefresher()

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("env", cfg.App.Environment).Msg("api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown server")
	}
	log.Info().Msg("server stopped")
}
