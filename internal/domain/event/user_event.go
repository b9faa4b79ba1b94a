// Package event defines the notifications emitted after a user use case
// commits.
package event

import (
	"context"
	"time"
)

type Type string

const (
	UserCreated         Type = "user.created"
	UserUpdated         Type = "user.updated"
	UserPasswordChanged Type = "user.password_changed"
	UserActivated       Type = "user.activated"
	UserDeactivated     Type = "user.deactivated"
	UserBlocked         Type = "user.blocked"
	UserDeleted         Type = "user.deleted"
)

// UserEvent is the payload published for every committed change.
type UserEvent struct {
	Type       Type      `json:"type"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email,omitempty"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher delivers user events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, evt UserEvent) error
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, UserEvent) error { return nil }
