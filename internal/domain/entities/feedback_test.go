package entities

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackDraft_Normalize(t *testing.T) {
	d := FeedbackDraft{Name: "  Ada ", Message: "\n great talk \t"}.Normalize()
	assert.Equal(t, "Ada", d.Name)
	assert.Equal(t, "great talk", d.Message)
}

func TestFeedbackDraft_MessageLengthCountsRunes(t *testing.T) {
	d := FeedbackDraft{Message: strings.Repeat("é", MaxMessageLength)}
	assert.Equal(t, MaxMessageLength, d.MessageLength())
	assert.Greater(t, len(d.Message), MaxMessageLength)
}

func TestFeedback_DisplayName(t *testing.T) {
	assert.Equal(t, "Anonymous", (&Feedback{}).DisplayName())
	assert.Equal(t, "Anonymous", (&Feedback{Name: "   "}).DisplayName())
	assert.Equal(t, "Grace", (&Feedback{Name: "Grace"}).DisplayName())
}

func TestFeedback_JSONShape(t *testing.T) {
	ts := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	data, err := json.Marshal(&Feedback{ID: "abc", Message: "hi", CreatedAt: ts, UpdatedAt: ts})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "abc", raw["_id"])
	assert.Equal(t, "", raw["name"])
	assert.Equal(t, "hi", raw["message"])
	assert.Equal(t, "2026-10-19T09:30:00Z", raw["createdAt"])
	assert.Contains(t, raw, "updatedAt")
}

func TestNewFeedbackEvents(t *testing.T) {
	fb := &Feedback{ID: "abc", Message: "hi"}

	created := NewFeedbackCreatedEvent(fb)
	assert.Equal(t, FeedbackEventTypeCreated, created.Type)
	assert.Equal(t, "abc", created.FeedbackID)
	assert.Same(t, fb, created.Feedback)
	assert.NotEmpty(t, created.ID)

	deleted := NewFeedbackDeletedEvent("abc")
	assert.Equal(t, FeedbackEventTypeDeleted, deleted.Type)
	assert.Nil(t, deleted.Feedback)
	assert.NotEqual(t, created.ID, deleted.ID)
}
