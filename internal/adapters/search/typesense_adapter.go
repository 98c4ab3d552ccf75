package search

import (
	"context"
	"fmt"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
	"github.com/zatekoja/feedbacker/internal/domain/entities"
	"github.com/zatekoja/feedbacker/internal/domain/repositories"
	tsclient "github.com/zatekoja/feedbacker/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements feedback search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ repositories.FeedbackSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// Index upserts a feedback document
func (a *TypesenseAdapter) Index(ctx context.Context, feedback *entities.Feedback) error {
	_, err := a.client.Client().Collection(tsclient.FeedbackCollection).Documents().Upsert(ctx, feedbackToDocument(feedback))
	if err != nil {
		return fmt.Errorf("failed to index feedback: %w", err)
	}
	return nil
}

// Delete removes a feedback document from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(tsclient.FeedbackCollection).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete feedback from index: %w", err)
	}
	return nil
}

// Search runs a full-text query over message and name, newest first
func (a *TypesenseAdapter) Search(ctx context.Context, query string, limit int) ([]*entities.Feedback, error) {
	params := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("message,name"),
		SortBy:  pointer.String("_text_match:desc,created_at:desc"),
		Page:    pointer.Int(1),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.FeedbackCollection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to search feedback: %w", err)
	}

	feedback := make([]*entities.Feedback, 0)
	if result.Hits == nil {
		return feedback, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		if f, ok := documentToFeedback(*hit.Document); ok {
			feedback = append(feedback, f)
		}
	}
	return feedback, nil
}

func feedbackToDocument(f *entities.Feedback) map[string]interface{} {
	return map[string]interface{}{
		"id":         f.ID,
		"name":       f.Name,
		"message":    f.Message,
		"created_at": f.CreatedAt.UnixMilli(),
	}
}

// documentToFeedback rebuilds a Feedback from a search hit. Typesense returns
// numbers as float64 after JSON decoding.
func documentToFeedback(doc map[string]interface{}) (*entities.Feedback, bool) {
	id, ok := doc["id"].(string)
	if !ok || id == "" {
		return nil, false
	}
	message, _ := doc["message"].(string)
	name, _ := doc["name"].(string)

	var createdAt time.Time
	switch v := doc["created_at"].(type) {
	case float64:
		createdAt = time.UnixMilli(int64(v)).UTC()
	case int64:
		createdAt = time.UnixMilli(v).UTC()
	}

	return &entities.Feedback{
		ID:        id,
		Name:      name,
		Message:   message,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, true
}
