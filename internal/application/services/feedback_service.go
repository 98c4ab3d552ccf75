package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/feedbacker/internal/domain/entities"
	"github.com/zatekoja/feedbacker/internal/domain/providers"
	"github.com/zatekoja/feedbacker/internal/domain/repositories"
	"github.com/zatekoja/feedbacker/internal/infrastructure/metrics"
	"github.com/zatekoja/feedbacker/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/feedbacker/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// Validation messages returned to clients.
const (
	ErrMessageRequired = "message is required"
)

var ErrMessageTooLong = fmt.Sprintf("message must be at most %d characters", entities.MaxMessageLength)

// Search limits.
const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// FeedbackService handles feedback submissions, listing and deletion.
type FeedbackService struct {
	repo     repositories.FeedbackRepository
	search   repositories.FeedbackSearchRepository
	eventBus providers.EventBus
	metrics  *observability.Metrics

	clockMu sync.Mutex
	now     func() time.Time
	last    time.Time
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(repo repositories.FeedbackRepository) *FeedbackService {
	return &FeedbackService{
		repo: repo,
		now:  time.Now,
	}
}

// SetEventBus enables feedback.created / feedback.deleted events.
func (s *FeedbackService) SetEventBus(bus providers.EventBus) {
	s.eventBus = bus
}

// SetSearchIndex enables full-text search and keeps the index in step with writes.
func (s *FeedbackService) SetSearchIndex(search repositories.FeedbackSearchRepository) {
	s.search = search
}

// SetMetrics enables otel store timings.
func (s *FeedbackService) SetMetrics(m *observability.Metrics) {
	s.metrics = m
}

// SetClock replaces the time source used for createdAt.
func (s *FeedbackService) SetClock(now func() time.Time) {
	s.clockMu.Lock()
	defer s.clockMu.Unlock()
	s.now = now
}

// SearchEnabled reports whether a search index is configured.
func (s *FeedbackService) SearchEnabled() bool {
	return s.search != nil
}

// Create validates the draft, stamps it and stores it.
func (s *FeedbackService) Create(ctx context.Context, draft entities.FeedbackDraft) (*entities.Feedback, error) {
	ctx, span := observability.StartSpan(ctx, "FeedbackService.Create")
	defer span.End()

	draft = draft.Normalize()
	if draft.Message == "" {
		metrics.FeedbackRejected.WithLabelValues("empty").Inc()
		return nil, apperrors.NewValidationError(ErrMessageRequired)
	}
	if draft.MessageLength() > entities.MaxMessageLength {
		metrics.FeedbackRejected.WithLabelValues("too_long").Inc()
		return nil, apperrors.NewValidationError(ErrMessageTooLong)
	}

	createdAt := s.timestamp()
	feedback := &entities.Feedback{
		Name:      draft.Name,
		Message:   draft.Message,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	start := time.Now()
	err := s.repo.Create(ctx, feedback)
	observability.RecordStoreMetric(ctx, s.metrics, "create", time.Since(start), err)
	if err != nil {
		observability.RecordError(span, err)
		if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			metrics.StoreErrors.WithLabelValues("create").Inc()
		}
		return nil, err
	}

	metrics.FeedbackCreated.Inc()
	observability.SetSpanAttributes(span, attribute.String("feedback.id", feedback.ID))
	log.Info().Str("feedback_id", feedback.ID).Bool("anonymous", feedback.Name == "").Msg("Feedback created")

	if s.search != nil {
		if err := s.search.Index(ctx, feedback); err != nil {
			log.Warn().Err(err).Str("feedback_id", feedback.ID).Msg("Failed to index feedback")
		}
	}
	s.publish(ctx, entities.NewFeedbackCreatedEvent(feedback))

	return feedback, nil
}

// List returns all feedback, newest first.
func (s *FeedbackService) List(ctx context.Context) ([]*entities.Feedback, error) {
	ctx, span := observability.StartSpan(ctx, "FeedbackService.List")
	defer span.End()

	start := time.Now()
	feedback, err := s.repo.ListByRecency(ctx)
	observability.RecordStoreMetric(ctx, s.metrics, "list", time.Since(start), err)
	if err != nil {
		observability.RecordError(span, err)
		metrics.StoreErrors.WithLabelValues("list").Inc()
		return nil, err
	}
	if feedback == nil {
		feedback = make([]*entities.Feedback, 0)
	}

	observability.SetSpanAttributes(span, attribute.Int("feedback.count", len(feedback)))
	return feedback, nil
}

// Delete removes feedback by id and reports whether a record existed.
// Deleting a missing id is not an error.
func (s *FeedbackService) Delete(ctx context.Context, id string) (bool, error) {
	ctx, span := observability.StartSpan(ctx, "FeedbackService.Delete")
	defer span.End()
	observability.SetSpanAttributes(span, attribute.String("feedback.id", id))

	start := time.Now()
	existed, err := s.repo.DeleteByID(ctx, id)
	observability.RecordStoreMetric(ctx, s.metrics, "delete", time.Since(start), err)
	if err != nil {
		observability.RecordError(span, err)
		metrics.StoreErrors.WithLabelValues("delete").Inc()
		return false, err
	}

	if !existed {
		metrics.FeedbackDeleted.WithLabelValues("missing").Inc()
		log.Debug().Str("feedback_id", id).Msg("Delete requested for unknown feedback")
		return false, nil
	}

	metrics.FeedbackDeleted.WithLabelValues("removed").Inc()
	log.Info().Str("feedback_id", id).Msg("Feedback deleted")

	if s.search != nil {
		if err := s.search.Delete(ctx, id); err != nil {
			log.Warn().Err(err).Str("feedback_id", id).Msg("Failed to remove feedback from index")
		}
	}
	s.publish(ctx, entities.NewFeedbackDeletedEvent(id))

	return true, nil
}

// Search queries the full-text index. limit <= 0 selects the default.
func (s *FeedbackService) Search(ctx context.Context, query string, limit int) ([]*entities.Feedback, error) {
	if s.search == nil {
		return nil, apperrors.NewNotFoundError("search is not enabled")
	}
	if query == "" {
		return nil, apperrors.NewValidationError("q is required")
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	ctx, span := observability.StartSpan(ctx, "FeedbackService.Search")
	defer span.End()

	results, err := s.search.Search(ctx, query, limit)
	if err != nil {
		observability.RecordError(span, err)
		return nil, apperrors.NewExternalError("search failed", err)
	}
	return results, nil
}

// timestamp returns the current UTC time, never earlier than the previous one
// handed out by this instance.
func (s *FeedbackService) timestamp() time.Time {
	s.clockMu.Lock()
	defer s.clockMu.Unlock()

	now := s.now().UTC()
	if now.Before(s.last) {
		now = s.last
	}
	s.last = now
	return now
}

func (s *FeedbackService) publish(ctx context.Context, event *entities.FeedbackEvent) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, providers.EventChannelFeedback, event); err != nil {
		log.Warn().Err(err).Str("event_type", string(event.Type)).Str("feedback_id", event.FeedbackID).Msg("Failed to publish feedback event")
	}
}
