package store

import (
	"context"
	"time"
)

// Notification is one inbox entry for a user.
type Notification struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipient_id"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

type NotificationStore interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	// ListByRecipient returns the inbox, newest first.
	ListByRecipient(ctx context.Context, recipientID string) ([]Notification, error)
	// MarkRead is recipient-scoped: a notification owned by someone else
	// reports ErrNotFound rather than ErrForbidden.
	MarkRead(ctx context.Context, id, recipientID string) error
	UnreadCount(ctx context.Context, recipientID string) (int, error)
}
