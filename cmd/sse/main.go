package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/feedbacker/internal/adapters/events"
	"github.com/zatekoja/feedbacker/internal/api/handlers"
	"github.com/zatekoja/feedbacker/internal/api/middleware"
	"github.com/zatekoja/feedbacker/internal/infrastructure/clients/redis"
	"github.com/zatekoja/feedbacker/internal/infrastructure/observability"
	"github.com/zatekoja/feedbacker/pkg/config"
)

// Standalone live-feed server. It only needs Redis, so the store settings are not validated.
func main() {
	cfg := config.FromEnv()
	observability.InitLogger(cfg.OTEL.ServiceName+"-sse", cfg.App.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient, err := redis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Redis client")
	}
	defer redisClient.Close()

	eventBus := events.NewRedisEventBus(redisClient)
	sseHandler := handlers.NewSSEHandler(eventBus)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.HandleFunc("GET /api/feedback/stream", sseHandler.StreamFeedback)
	mux.HandleFunc("GET /api/stream/stats", sseHandler.Stats)

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(handler)
	handler = chimiddleware.Recoverer(handler)
	handler = chimiddleware.RequestID(handler)
	handler = middleware.CORSMiddleware(cfg.CORS.AllowedOrigins)(handler)

	server := &http.Server{
		Addr:        cfg.Server.Addr(),
		Handler:     handler,
		ReadTimeout: 30 * time.Second,
		// No write timeout: every response here is a long-lived stream.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("SSE server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("SSE server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("SSE server shutting down")

	// Closing the bus first ends every open stream so Shutdown does not wait on them.
	if err := eventBus.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing event bus")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("SSE server stopped")
}
