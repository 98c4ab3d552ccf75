package entities

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxMessageLength is the longest message accepted, counted in characters.
const MaxMessageLength = 250

// Feedback is one anonymously submitted message.
type Feedback struct {
	ID        string    `json:"_id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// FeedbackDraft is the client-supplied part of a Feedback.
type FeedbackDraft struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Normalize trims surrounding whitespace from both fields.
func (d FeedbackDraft) Normalize() FeedbackDraft {
	return FeedbackDraft{
		Name:    strings.TrimSpace(d.Name),
		Message: strings.TrimSpace(d.Message),
	}
}

// MessageLength returns the message length in characters.
func (d FeedbackDraft) MessageLength() int {
	return utf8.RuneCountInString(d.Message)
}

// DisplayName is the name consumers show, "Anonymous" when none was given.
func (f *Feedback) DisplayName() string {
	if strings.TrimSpace(f.Name) == "" {
		return "Anonymous"
	}
	return f.Name
}
