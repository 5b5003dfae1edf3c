package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/example/community-platform/internal/store"
)

// StartConsumer drains the notifications subject into the inbox store.
// It returns once ctx is cancelled. Malformed events are acked and dropped;
// store failures nak so the event is redelivered.
func StartConsumer(ctx context.Context, nc *nats.Conn, inbox store.NotificationStore, log *zap.Logger) {
	js, err := nc.JetStream()
	if err != nil {
		log.Error("notifications consumer: jetstream", zap.Error(err))
		return
	}

	sub, err := js.PullSubscribe(SubjectCreated, "community_notifications")
	if err != nil {
		log.Error("notifications consumer: subscribe", zap.Error(err))
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msgs, err := sub.Fetch(100, nats.MaxWait(2*time.Second))
		if err != nil {
			if err == nats.ErrTimeout {
				continue
			}
			log.Warn("notifications consumer: fetch", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		for _, m := range msgs {
			var ev Event
			if err := json.Unmarshal(m.Data, &ev); err != nil {
				log.Warn("notifications consumer: malformed event", zap.Error(err))
				_ = m.Ack()
				continue
			}
			_, err := inbox.Create(ctx, store.Notification{
				RecipientID: ev.RecipientID,
				Message:     ev.Message,
			})
			if err != nil {
				log.Warn("notifications consumer: store", zap.String("event_id", ev.EventID), zap.Error(err))
				_ = m.Nak()
				continue
			}
			_ = m.Ack()
		}
	}
}
