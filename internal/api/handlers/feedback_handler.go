package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/feedbacker/internal/domain/entities"
)

const maxFeedbackBodyBytes = 16 << 10

// FeedbackService defines the feedback operations used by the handler.
type FeedbackService interface {
	Create(ctx context.Context, draft entities.FeedbackDraft) (*entities.Feedback, error)
	List(ctx context.Context) ([]*entities.Feedback, error)
	Delete(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, query string, limit int) ([]*entities.Feedback, error)
}

// FeedbackHandler serves the /api/feedback resource.
type FeedbackHandler struct {
	service FeedbackService
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(service FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// SearchEnabled reports whether the service has a search index behind it.
func (h *FeedbackHandler) SearchEnabled() bool {
	s, ok := h.service.(interface{ SearchEnabled() bool })
	return ok && s.SearchEnabled()
}

// CreateFeedback handles POST /api/feedback
func (h *FeedbackHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFeedbackBodyBytes)

	var draft entities.FeedbackDraft
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&draft); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	feedback, err := h.service.Create(r.Context(), draft)
	if err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("Feedback create failed")
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, feedback)
}

// ListFeedback handles GET /api/feedback
func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.service.List(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Feedback list failed")
		respondWithAppError(w, err)
		return
	}
	if feedback == nil {
		feedback = []*entities.Feedback{}
	}

	respondWithJSON(w, http.StatusOK, feedback)
}

// DeleteFeedback handles DELETE /api/feedback/{id}
func (h *FeedbackHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "feedback ID is required")
		return
	}

	if _, err := h.service.Delete(r.Context(), id); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("feedback_id", id).Msg("Feedback delete failed")
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Deleted",
	})
}

// SearchFeedback handles GET /api/feedback/search?q=&limit=
func (h *FeedbackHandler) SearchFeedback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := strings.TrimSpace(query.Get("q"))
	if q == "" {
		respondWithError(w, http.StatusBadRequest, "q is required")
		return
	}

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondWithError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = parsed
	}

	results, err := h.service.Search(r.Context(), q, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if results == nil {
		results = []*entities.Feedback{}
	}

	respondWithJSON(w, http.StatusOK, results)
}
