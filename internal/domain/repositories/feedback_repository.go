package repositories

import (
	"context"

	"github.com/zatekoja/feedbacker/internal/domain/entities"
)

// FeedbackRepository is the store gateway for Feedback records.
type FeedbackRepository interface {
	// Create persists feedback, assigning an ID when it has none.
	Create(ctx context.Context, feedback *entities.Feedback) error

	// ListByRecency returns every record, newest CreatedAt first.
	ListByRecency(ctx context.Context) ([]*entities.Feedback, error)

	// DeleteByID removes the record and reports whether it existed.
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// FeedbackSearchRepository is a full-text index over feedback messages.
type FeedbackSearchRepository interface {
	Index(ctx context.Context, feedback *entities.Feedback) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string, limit int) ([]*entities.Feedback, error)
}
