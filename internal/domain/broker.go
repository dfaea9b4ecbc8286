package domain

import (
	"context"
	"time"
)

// SessionChangeType mirrors the auth state changes clients subscribe to.
type SessionChangeType string

// Session change notifications.
const (
	SessionSignedUp  SessionChangeType = "SIGNED_UP"
	SessionSignedIn  SessionChangeType = "SIGNED_IN"
	SessionSignedOut SessionChangeType = "SIGNED_OUT"
)

// SessionChange is published whenever a user's auth state changes.
type SessionChange struct {
	Type   SessionChangeType `json:"type"`
	UserID string            `json:"user_id"`
	Email  string            `json:"email"`
	At     time.Time         `json:"at"`
}

// Notifier publishes domain notifications to subscribers (e.g. a message broker).
type Notifier interface {
	SessionChanged(ctx context.Context, change SessionChange) error
	EventCreated(ctx context.Context, event *Event) error
	ProfileSaved(ctx context.Context, profile *Profile) error
	Close() error
}
