package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/zatekoja/feedbacker/internal/domain/entities"
	"github.com/zatekoja/feedbacker/internal/domain/repositories"
	"github.com/zatekoja/feedbacker/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/feedbacker/pkg/errors"
)

const feedbackTable = "feedback"

// integrityConstraintViolation is the SQLSTATE class for NOT NULL/CHECK/UNIQUE failures.
const integrityConstraintViolation pq.ErrorClass = "23"

const feedbackSchema = `
CREATE TABLE IF NOT EXISTS feedback (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	message    TEXT NOT NULL CHECK (btrim(message) <> ''),
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS feedback_created_at_idx ON feedback (created_at DESC, id DESC);
`

// FeedbackAdapter implements feedback persistence in Postgres.
type FeedbackAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.FeedbackRepository = (*FeedbackAdapter)(nil)

// NewFeedbackAdapter creates a new feedback adapter.
func NewFeedbackAdapter(client *postgres.Client) *FeedbackAdapter {
	return &FeedbackAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// EnsureSchema creates the feedback table when missing.
func (a *FeedbackAdapter) EnsureSchema(ctx context.Context) error {
	if _, err := a.client.DB().ExecContext(ctx, feedbackSchema); err != nil {
		return apperrors.NewInternalError("failed to create feedback schema", err)
	}
	return nil
}

// Create inserts a feedback record. An empty ID gets a fresh UUID.
func (a *FeedbackAdapter) Create(ctx context.Context, feedback *entities.Feedback) error {
	if feedback == nil {
		return apperrors.NewInternalError("feedback is nil", fmt.Errorf("feedback is nil"))
	}
	if feedback.ID == "" {
		feedback.ID = uuid.NewString()
	}

	record := goqu.Record{
		"id":         feedback.ID,
		"name":       feedback.Name,
		"message":    feedback.Message,
		"created_at": feedback.CreatedAt,
		"updated_at": feedback.UpdatedAt,
	}

	query, args, err := a.db.Insert(feedbackTable).Rows(record).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build feedback insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if isIntegrityViolation(err) {
			return apperrors.NewStoreValidationError("feedback failed validation", err)
		}
		return apperrors.NewInternalError("failed to create feedback", err)
	}

	return nil
}

// ListByRecency returns all feedback, newest first.
func (a *FeedbackAdapter) ListByRecency(ctx context.Context) ([]*entities.Feedback, error) {
	query, args, err := a.db.From(feedbackTable).
		Select("id", "name", "message", "created_at", "updated_at").
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build feedback list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list feedback", err)
	}
	defer rows.Close()

	feedback := make([]*entities.Feedback, 0)
	for rows.Next() {
		f := &entities.Feedback{}
		var name sql.NullString
		if err := rows.Scan(&f.ID, &name, &f.Message, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan feedback", err)
		}
		f.Name = name.String
		f.CreatedAt = f.CreatedAt.UTC()
		f.UpdatedAt = f.UpdatedAt.UTC()
		feedback = append(feedback, f)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate feedback", err)
	}

	return feedback, nil
}

// DeleteByID removes a record. A value that is not a UUID cannot match a row
// and reports false without querying.
func (a *FeedbackAdapter) DeleteByID(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	query, args, err := a.db.Delete(feedbackTable).
		Where(goqu.Ex{"id": id}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build feedback delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return false, apperrors.NewInternalError("failed to delete feedback", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.NewInternalError("failed to get rows affected", err)
	}

	return rowsAffected > 0, nil
}

func isIntegrityViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Class() == integrityConstraintViolation
}
