package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/namelime/namelime-backend/config"
	httpapi "github.com/namelime/namelime-backend/internal/api/http"
	apimiddleware "github.com/namelime/namelime-backend/internal/api/http/middleware"
	"github.com/namelime/namelime-backend/internal/appconfig"
	appconfighttp "github.com/namelime/namelime-backend/internal/appconfig/http"
	"github.com/namelime/namelime-backend/internal/auth"
	authmiddleware "github.com/namelime/namelime-backend/internal/auth/middleware"
	billinghttp "github.com/namelime/namelime-backend/internal/billing/http"
	billingservice "github.com/namelime/namelime-backend/internal/billing/service"
	generationhttp "github.com/namelime/namelime-backend/internal/generation/http"
	"github.com/namelime/namelime-backend/internal/generation/reservation"
	generationservice "github.com/namelime/namelime-backend/internal/generation/service"
	historyhttp "github.com/namelime/namelime-backend/internal/history/http"
	historyrepo "github.com/namelime/namelime-backend/internal/history/repository"
	historyservice "github.com/namelime/namelime-backend/internal/history/service"
	"github.com/namelime/namelime-backend/internal/namegen"
	"github.com/namelime/namelime-backend/internal/observability"
	observabilityhttp "github.com/namelime/namelime-backend/internal/observability/http"
	"github.com/namelime/namelime-backend/internal/store"
	usershttp "github.com/namelime/namelime-backend/internal/users/http"
	usersrepo "github.com/namelime/namelime-backend/internal/users/repository"
	usersservice "github.com/namelime/namelime-backend/internal/users/service"
)

type RouterDeps struct {
	ServiceName string
	Config      *config.Config
	Log         zerolog.Logger
	LogRing     *observability.LogRing
	Firebase    *auth.Clients
	Redis       *redis.Client
}

// BuildRouter wires every feature into one gin engine. AppConfig returns
// alongside it so the caller can start and stop the config refresher.
func BuildRouter(dep RouterDeps) (*gin.Engine, *appconfig.Service) {
	cfg := dep.Config
	log := dep.Log

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg.App.AppURL))
	r.Use(apimiddleware.RequestIDMiddleware(log))

	docStore := store.NewFirestoreStore(dep.Firebase.Firestore)

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, cfg.App.Version, dep.Firebase.Firestore, dep.Redis)
	healthHandler.RegisterRoutes(r)

	profileRepo := usersrepo.NewProfileRepository(docStore)
	profileSvc := usersservice.NewProfileService(profileRepo, log)

	generator := namegen.NewClient(cfg.Gemini, log)
	engine := reservation.NewEngine(docStore, log)
	histRepo := historyrepo.NewHistoryRepository(docStore)
	orchestrator := generationservice.NewOrchestrator(generator, engine, histRepo, profileRepo, log)
	histSvc := historyservice.NewHistoryService(histRepo, log)

	configSvc := appconfig.NewService(docStore, dep.Redis, log)

	checkoutSvc := billingservice.NewCheckoutService(cfg.Stripe.SecretKey, cfg.App.AppURL, log)
	webhookSvc := billingservice.NewWebhookService(cfg.Stripe.WebhookSecret, profileRepo, log)

	api := r.Group("/api/v1")

	// Public surface: config read and the Stripe webhook (Stripe cannot
	// carry a Firebase token; the payload signature is the auth).
	appconfighttp.NewHandler(configSvc).Register(api)
	billingHandler := billinghttp.NewHandler(checkoutSvc, webhookSvc, log)
	billingHandler.RegisterWebhook(api)

	// Generation accepts anonymous callers; quota and persistence only
	// apply when a verified uid is present.
	generate := api.Group("")
	generate.Use(authmiddleware.OptionalAuth(dep.Firebase.Auth))
	generate.Use(apimiddleware.RateLimit(2, 5))
	generationhttp.NewHandler(orchestrator, profileSvc, log).Register(generate)

	authed := api.Group("")
	authed.Use(authmiddleware.FirebaseAuthMiddleware(dep.Firebase.Auth))
	usershttp.NewHandler(profileSvc).Register(authed)
	historyhttp.NewHandler(histSvc).Register(authed)
	billingHandler.Register(authed)
	observabilityhttp.NewHandler(dep.LogRing, profileSvc, log).Register(authed)

	return r, configSvc
}

func corsMiddleware(appURL string) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	if appURL != "" {
		corsCfg.AllowOrigins = []string{appURL}
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-Id", "Stripe-Signature")
	return cors.New(corsCfg)
}
