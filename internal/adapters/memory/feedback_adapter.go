// Package memory keeps feedback in process memory, for local runs without a store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/zatekoja/feedbacker/internal/domain/entities"
	"github.com/zatekoja/feedbacker/internal/domain/repositories"
)

// FeedbackAdapter is an in-memory feedback gateway
type FeedbackAdapter struct {
	mu    sync.RWMutex
	items map[string]*entities.Feedback
	seq   map[string]uint64
	next  uint64
}

var _ repositories.FeedbackRepository = (*FeedbackAdapter)(nil)

// NewFeedbackAdapter creates an empty store
func NewFeedbackAdapter() *FeedbackAdapter {
	return &FeedbackAdapter{
		items: make(map[string]*entities.Feedback),
		seq:   make(map[string]uint64),
	}
}

// Create stores a copy of feedback
func (a *FeedbackAdapter) Create(ctx context.Context, feedback *entities.Feedback) error {
	if feedback.ID == "" {
		feedback.ID = uuid.NewString()
	}
	stored := *feedback

	a.mu.Lock()
	defer a.mu.Unlock()
	a.next++
	a.items[stored.ID] = &stored
	a.seq[stored.ID] = a.next
	return nil
}

// ListByRecency returns copies ordered by CreatedAt desc, later inserts first on ties
func (a *FeedbackAdapter) ListByRecency(ctx context.Context) ([]*entities.Feedback, error) {
	a.mu.RLock()
	out := make([]*entities.Feedback, 0, len(a.items))
	for _, f := range a.items {
		c := *f
		out = append(out, &c)
	}
	seq := make(map[string]uint64, len(a.seq))
	for k, v := range a.seq {
		seq[k] = v
	}
	a.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return seq[out[i].ID] > seq[out[j].ID]
	})
	return out, nil
}

// DeleteByID removes a record if present
func (a *FeedbackAdapter) DeleteByID(ctx context.Context, id string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.items[id]; !ok {
		return false, nil
	}
	delete(a.items, id)
	delete(a.seq, id)
	return true, nil
}
