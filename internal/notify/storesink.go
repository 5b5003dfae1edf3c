package notify

import (
	"context"

	"github.com/example/community-platform/internal/store"
)

// StoreSink writes notifications straight into the inbox store. Used when
// the service runs without NATS, and in tests.
type StoreSink struct {
	Store store.NotificationStore
}

func (s StoreSink) Notify(ctx context.Context, recipientID, message string) error {
	_, err := s.Store.Create(ctx, store.Notification{RecipientID: recipientID, Message: message})
	return err
}
