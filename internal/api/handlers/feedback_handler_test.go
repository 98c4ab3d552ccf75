package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/feedbacker/internal/api/handlers"
	"github.com/zatekoja/feedbacker/internal/domain/entities"
	apperrors "github.com/zatekoja/feedbacker/pkg/errors"
)

type stubFeedbackService struct {
	drafts    []entities.FeedbackDraft
	deleted   []string
	list      []*entities.Feedback
	createErr error
	listErr   error
	deleteErr error
	searchErr error
	lastLimit int
}

func (s *stubFeedbackService) Create(ctx context.Context, draft entities.FeedbackDraft) (*entities.Feedback, error) {
	s.drafts = append(s.drafts, draft)
	if s.createErr != nil {
		return nil, s.createErr
	}
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &entities.Feedback{
		ID:        "65f1c0ffee0000000000abcd",
		Name:      draft.Name,
		Message:   draft.Message,
		CreatedAt: created,
		UpdatedAt: created,
	}, nil
}

func (s *stubFeedbackService) List(ctx context.Context) ([]*entities.Feedback, error) {
	return s.list, s.listErr
}

func (s *stubFeedbackService) Delete(ctx context.Context, id string) (bool, error) {
	s.deleted = append(s.deleted, id)
	return false, s.deleteErr
}

func (s *stubFeedbackService) Search(ctx context.Context, query string, limit int) ([]*entities.Feedback, error) {
	s.lastLimit = limit
	return s.list, s.searchErr
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body["error"]
}

func TestFeedbackHandler_CreateFeedback_Success(t *testing.T) {
	service := &stubFeedbackService{}
	handler := handlers.NewFeedbackHandler(service)

	req := httptest.NewRequest(http.MethodPost, "/api/feedback", strings.NewReader("{\"message\":\"hi\"}\n"))
	w := httptest.NewRecorder()
	handler.CreateFeedback(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.Len(t, service.drafts, 1)
	assert.Equal(t, "hi", service.drafts[0].Message)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "65f1c0ffee0000000000abcd", body["_id"])
	assert.Equal(t, "hi", body["message"])
	assert.Equal(t, "", body["name"])
	assert.Equal(t, "2026-03-01T12:00:00Z", body["createdAt"])
}

func TestFeedbackHandler_CreateFeedback_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantError  string
	}{
		{
			name:       "malformed json",
			body:       `{"message":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request payload",
		},
		{
			name:       "trailing garbage",
			body:       `{"message":"a"} xyz`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request payload",
		},
		{
			name:       "second json value",
			body:       `{"message":"a"}{"message":"b"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request payload",
		},
		{
			name:       "service validation",
			body:       `{"message":"   "}`,
			serviceErr: apperrors.NewValidationError("message is required"),
			wantStatus: http.StatusBadRequest,
			wantError:  "message is required",
		},
		{
			name:       "store validation",
			body:       `{"message":"hi"}`,
			serviceErr: apperrors.NewStoreValidationError("document failed validation", errors.New("code 121")),
			wantStatus: http.StatusBadRequest,
			wantError:  "document failed validation: code 121",
		},
		{
			name:       "store fault",
			body:       `{"message":"hi"}`,
			serviceErr: apperrors.NewInternalError("failed to insert feedback", errors.New("no reachable servers")),
			wantStatus: http.StatusInternalServerError,
			wantError:  "failed to insert feedback: no reachable servers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := handlers.NewFeedbackHandler(&stubFeedbackService{createErr: tt.serviceErr})

			req := httptest.NewRequest(http.MethodPost, "/api/feedback", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.CreateFeedback(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantError, decodeError(t, w))
		})
	}
}

func TestFeedbackHandler_ListFeedback(t *testing.T) {
	t.Run("empty list is an array", func(t *testing.T) {
		handler := handlers.NewFeedbackHandler(&stubFeedbackService{})

		w := httptest.NewRecorder()
		handler.ListFeedback(w, httptest.NewRequest(http.MethodGet, "/api/feedback", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("store fault", func(t *testing.T) {
		handler := handlers.NewFeedbackHandler(&stubFeedbackService{
			listErr: apperrors.NewInternalError("failed to list feedback", errors.New("timeout")),
		})

		w := httptest.NewRecorder()
		handler.ListFeedback(w, httptest.NewRequest(http.MethodGet, "/api/feedback", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "failed to list feedback: timeout", decodeError(t, w))
	})
}

func TestFeedbackHandler_DeleteFeedback(t *testing.T) {
	t.Run("always reports deleted", func(t *testing.T) {
		service := &stubFeedbackService{}
		handler := handlers.NewFeedbackHandler(service)

		req := httptest.NewRequest(http.MethodDelete, "/api/feedback/unknown", nil)
		req.SetPathValue("id", "unknown")
		w := httptest.NewRecorder()
		handler.DeleteFeedback(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Deleted"}`, w.Body.String())
		assert.Equal(t, []string{"unknown"}, service.deleted)
	})

	t.Run("store fault", func(t *testing.T) {
		handler := handlers.NewFeedbackHandler(&stubFeedbackService{
			deleteErr: errors.New("connection refused"),
		})

		req := httptest.NewRequest(http.MethodDelete, "/api/feedback/abc", nil)
		req.SetPathValue("id", "abc")
		w := httptest.NewRecorder()
		handler.DeleteFeedback(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "connection refused", decodeError(t, w))
	})
}

func TestFeedbackHandler_SearchFeedback(t *testing.T) {
	t.Run("requires q", func(t *testing.T) {
		handler := handlers.NewFeedbackHandler(&stubFeedbackService{})

		w := httptest.NewRecorder()
		handler.SearchFeedback(w, httptest.NewRequest(http.MethodGet, "/api/feedback/search", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "q is required", decodeError(t, w))
	})

	t.Run("invalid limit", func(t *testing.T) {
		handler := handlers.NewFeedbackHandler(&stubFeedbackService{})

		w := httptest.NewRecorder()
		handler.SearchFeedback(w, httptest.NewRequest(http.MethodGet, "/api/feedback/search?q=x&limit=abc", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("passes limit through", func(t *testing.T) {
		service := &stubFeedbackService{list: []*entities.Feedback{{ID: "1", Message: "great talk"}}}
		handler := handlers.NewFeedbackHandler(service)

		w := httptest.NewRecorder()
		handler.SearchFeedback(w, httptest.NewRequest(http.MethodGet, "/api/feedback/search?q=talk&limit=5", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 5, service.lastLimit)

		var results []entities.Feedback
		require.NoError(t, json.NewDecoder(w.Body).Decode(&results))
		require.Len(t, results, 1)
		assert.Equal(t, "great talk", results[0].Message)
	})

	t.Run("backend failure", func(t *testing.T) {
		handler := handlers.NewFeedbackHandler(&stubFeedbackService{
			searchErr: apperrors.NewExternalError("search failed", errors.New("503")),
		})

		w := httptest.NewRecorder()
		handler.SearchFeedback(w, httptest.NewRequest(http.MethodGet, "/api/feedback/search?q=talk", nil))

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}
