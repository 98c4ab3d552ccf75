package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/feedbacker/internal/adapters/cache"
	"github.com/zatekoja/feedbacker/internal/adapters/database"
	"github.com/zatekoja/feedbacker/internal/adapters/events"
	"github.com/zatekoja/feedbacker/internal/adapters/search"
	"github.com/zatekoja/feedbacker/internal/api/handlers"
	"github.com/zatekoja/feedbacker/internal/api/routes"
	"github.com/zatekoja/feedbacker/internal/application/services"
	"github.com/zatekoja/feedbacker/internal/domain/providers"
	"github.com/zatekoja/feedbacker/internal/infrastructure/clients/redis"
	"github.com/zatekoja/feedbacker/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/feedbacker/internal/infrastructure/metrics"
	"github.com/zatekoja/feedbacker/internal/infrastructure/observability"
	"github.com/zatekoja/feedbacker/internal/infrastructure/store"
	"github.com/zatekoja/feedbacker/pkg/config"
	"github.com/zatekoja/feedbacker/pkg/secrets"
)

func main() {
	if _, err := secrets.ApplyVaultSecrets(context.Background(), secrets.VaultConfigFromEnv()); err != nil {
		log.Fatal().Err(err).Msg("Failed to load secrets from Vault")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.App.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	otelMetrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}
	metrics.MustRegister(prometheus.DefaultRegisterer)

	// Feedback store
	repo, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("Failed to open feedback store")
	}
	defer closeStore()

	// Redis: list cache and live event bus
	var eventBus providers.EventBus
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, continuing without cache and live feed")
		} else {
			defer redisClient.Close()

			repo = database.NewCachedFeedbackAdapter(repo, cache.NewRedisAdapter(redisClient), cfg.Redis.CacheTTLSeconds, otelMetrics)
			eventBus = events.NewRedisEventBus(redisClient)
			log.Info().Int("cache_ttl_seconds", cfg.Redis.CacheTTLSeconds).Msg("Redis cache and event bus enabled")
		}
	}

	feedbackService := services.NewFeedbackService(repo)
	feedbackService.SetMetrics(otelMetrics)

	var sseHandler *handlers.SSEHandler
	if eventBus != nil {
		feedbackService.SetEventBus(eventBus)
		sseHandler = handlers.NewSSEHandler(eventBus)
	}

	// Typesense: full-text search
	if cfg.Typesense.SearchEnabled() {
		tsClient, err := typesense.Open(ctx, &cfg.Typesense)
		if err != nil {
			log.Warn().Err(err).Msg("Typesense unavailable, search disabled")
		} else {
			feedbackService.SetSearchIndex(search.NewTypesenseAdapter(tsClient))
			log.Info().Msg("Typesense search enabled")
		}
	}

	router := routes.NewRouter(
		handlers.NewFeedbackHandler(feedbackService),
		sseHandler,
		cfg.CORS.AllowedOrigins,
		otelMetrics,
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("store", cfg.Store.Driver).Msg("Starting feedback API server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := gracefulShutdown(shutdownCtx, server, eventBus); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// gracefulShutdown closes the event bus first, which ends open live-feed
// streams, then drains the server.
func gracefulShutdown(ctx context.Context, server *http.Server, eventBus providers.EventBus) error {
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing event bus")
		}
	}
	return server.Shutdown(ctx)
}
