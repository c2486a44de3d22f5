package models

import (
	"time"

	"github.com/google/uuid"
)

// Auth event types published to the audit topic.
const (
	EventUserRegistered = "user.registered"
	EventUserLogin      = "user.login"
	EventUserLogout     = "user.logout"
	EventUserUpdated    = "user.updated"
	EventUserDeleted    = "user.deleted"
)

// AuthEvent represents an account lifecycle event published to the audit topic.
type AuthEvent struct {
	EventID    string    `json:"event_id"`           // EventID is a unique identifier for the event.
	Type       string    `json:"type"`               // Type is one of the EventUser* constants.
	UserID     uuid.UUID `json:"user_id"`            // UserID is the subject of the event.
	Username   string    `json:"username,omitempty"` // Username at the time of the event.
	Email      string    `json:"email,omitempty"`    // Email at the time of the event.
	OccurredAt time.Time `json:"occurred_at"`        // OccurredAt is when the event happened.
}
