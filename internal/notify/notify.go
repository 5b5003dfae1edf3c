// Package notify carries comment notifications to their recipient's inbox.
// Delivery is best-effort: a failed notification never fails the operation
// that produced it.
package notify

import (
	"context"
	"time"
)

// Sink accepts a notification for a recipient.
type Sink interface {
	Notify(ctx context.Context, recipientID, message string) error
}

// Event is the envelope published to the notifications subject.
type Event struct {
	EventID     string    `json:"event_id"`
	RecipientID string    `json:"recipient_id"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

// Subject for created notifications.
const SubjectCreated = "community.notifications.created"
