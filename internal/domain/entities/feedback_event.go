package entities

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackEventType represents the kind of change published on the event bus
type FeedbackEventType string

const (
	FeedbackEventTypeCreated FeedbackEventType = "feedback.created"
	FeedbackEventTypeDeleted FeedbackEventType = "feedback.deleted"
)

// FeedbackEvent announces a committed change to the feedback collection
type FeedbackEvent struct {
	ID         string            `json:"id"`
	Type       FeedbackEventType `json:"type"`
	FeedbackID string            `json:"feedback_id"`
	Feedback   *Feedback         `json:"feedback,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// NewFeedbackCreatedEvent builds the event published after a successful create.
func NewFeedbackCreatedEvent(feedback *Feedback) *FeedbackEvent {
	return &FeedbackEvent{
		ID:         uuid.NewString(),
		Type:       FeedbackEventTypeCreated,
		FeedbackID: feedback.ID,
		Feedback:   feedback,
		Timestamp:  time.Now().UTC(),
	}
}

// NewFeedbackDeletedEvent builds the event published after a record was removed.
func NewFeedbackDeletedEvent(id string) *FeedbackEvent {
	return &FeedbackEvent{
		ID:         uuid.NewString(),
		Type:       FeedbackEventTypeDeleted,
		FeedbackID: id,
		Timestamp:  time.Now().UTC(),
	}
}
