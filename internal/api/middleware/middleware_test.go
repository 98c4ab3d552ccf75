package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	t.Run("wildcard", func(t *testing.T) {
		handler := CORSMiddleware(nil)(next)
		req := httptest.NewRequest(http.MethodGet, "/api/feedback", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
	})

	t.Run("explicit origins", func(t *testing.T) {
		handler := CORSMiddleware([]string{"https://feedback.example.com"})(next)

		req := httptest.NewRequest(http.MethodGet, "/api/feedback", nil)
		req.Header.Set("Origin", "https://feedback.example.com")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, "https://feedback.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Origin", w.Header().Get("Vary"))

		req = httptest.NewRequest(http.MethodGet, "/api/feedback", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w = httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		handler := CORSMiddleware(nil)(next)
		req := httptest.NewRequest(http.MethodOptions, "/api/feedback/abc", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestLoggingMiddleware_LogsWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	original := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = original }()

	var ctxLoggerSeen bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLoggerSeen = zerolog.Ctx(r.Context()).GetLevel() != zerolog.Disabled
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"message is required"}`))
	})

	handler := chimiddleware.RequestID(LoggingMiddleware(next))
	req := httptest.NewRequest(http.MethodPost, "/api/feedback", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.True(t, ctxLoggerSeen)
	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"request_id":"req-42"`)
	assert.Contains(t, out, `"status":400`)
	assert.Contains(t, out, `"path":"/api/feedback"`)
}

func TestObservabilityMiddleware_NilMetrics(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/feedback", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := ObservabilityMiddleware(nil)(mux)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/feedback", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResponseWriters_Unwrap(t *testing.T) {
	rec := httptest.NewRecorder()

	assert.Equal(t, rec, (&loggingResponseWriter{ResponseWriter: rec}).Unwrap())
	assert.Equal(t, rec, (&responseWriter{ResponseWriter: rec}).Unwrap())
	assert.Equal(t, rec, (&gzipResponseWriter{ResponseWriter: rec}).Unwrap())
}

func TestCompression(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"message":"hi"}]`))
	})
	handler := Compression(next)

	t.Run("gzip when accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/feedback", nil)
		req.Header.Set("Accept-Encoding", "gzip, deflate")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
		gz, err := gzip.NewReader(w.Body)
		require.NoError(t, err)
		body, err := io.ReadAll(gz)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"message":"hi"}]`, string(body))
	})

	t.Run("plain otherwise", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/feedback", nil))

		assert.Empty(t, w.Header().Get("Content-Encoding"))
		assert.JSONEq(t, `[{"message":"hi"}]`, w.Body.String())
	})

	t.Run("event streams untouched", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/feedback/stream", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		req.Header.Set("Accept", "text/event-stream")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Content-Encoding"))
	})
}
