package routes

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/zatekoja/feedbacker/internal/api/handlers"
	"github.com/zatekoja/feedbacker/internal/api/middleware"
	"github.com/zatekoja/feedbacker/internal/infrastructure/metrics"
	"github.com/zatekoja/feedbacker/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	feedbackHandler *handlers.FeedbackHandler
	sseHandler      *handlers.SSEHandler

	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router. sseHandler may be nil when no event bus is configured.
func NewRouter(
	feedbackHandler *handlers.FeedbackHandler,
	sseHandler *handlers.SSEHandler,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		feedbackHandler: feedbackHandler,
		sseHandler:      sseHandler,
		allowedOrigins:  allowedOrigins,
		metrics:         metrics,
	}
}

// SetupRoutes configures all routes and returns the wrapped handler
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	r.mux.Handle("GET /metrics", metrics.Handler())

	// Feedback endpoints
	r.mux.HandleFunc("POST /api/feedback", r.feedbackHandler.CreateFeedback)
	r.mux.HandleFunc("POST /api/feedback/{$}", r.feedbackHandler.CreateFeedback)
	r.mux.HandleFunc("GET /api/feedback", r.feedbackHandler.ListFeedback)
	r.mux.HandleFunc("GET /api/feedback/{$}", r.feedbackHandler.ListFeedback)
	r.mux.HandleFunc("DELETE /api/feedback/{id}", r.feedbackHandler.DeleteFeedback)

	if r.feedbackHandler.SearchEnabled() {
		r.mux.HandleFunc("GET /api/feedback/search", r.feedbackHandler.SearchFeedback)
	}

	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/feedback/stream", r.sseHandler.StreamFeedback)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	// Observability must wrap the mux directly to read the matched pattern
	var handler http.Handler = r.mux
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.Compression(handler)
	handler = chimiddleware.Recoverer(handler)
	handler = chimiddleware.RequestID(handler)

	// CORS wraps everything so preflights never reach the handlers
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
