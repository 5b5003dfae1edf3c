package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const streamName = "COMMUNITY_NOTIFICATIONS"

// Publisher sends notification events to NATS JetStream. A consumer drains
// the subject into the inbox store, decoupling comment writes from inbox
// writes. The zero value and a nil pointer are both safe no-op stubs.
type Publisher struct {
	js  nats.JetStreamContext
	log *zap.Logger
}

// NewPublisher wraps an existing NATS connection and ensures the stream
// exists. Pass nc=nil to get a no-op stub.
func NewPublisher(nc *nats.Conn, log *zap.Logger) (*Publisher, error) {
	if nc == nil {
		return &Publisher{log: log}, nil
	}
	js, err := nc.JetStream()
	if err != nil {
		return nil, err
	}
	if err := ensureStream(js); err != nil {
		return nil, err
	}
	return &Publisher{js: js, log: log}, nil
}

func ensureStream(js nats.JetStreamContext) error {
	_, err := js.StreamInfo(streamName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return err
	}
	_, err = js.AddStream(&nats.StreamConfig{
		Name:     streamName,
		Subjects: []string{"community.notifications.>"},
		Storage:  nats.FileStorage,
		MaxAge:   7 * 24 * time.Hour,
	})
	return err
}

// Notify publishes the event. Failures are logged and reported to the
// caller, which is expected to treat them as non-fatal.
func (p *Publisher) Notify(_ context.Context, recipientID, message string) error {
	if p == nil || p.js == nil {
		return nil
	}
	ev := Event{
		EventID:     uuid.NewString(),
		RecipientID: recipientID,
		Message:     message,
		CreatedAt:   time.Now().UTC(),
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := p.js.Publish(SubjectCreated, data); err != nil {
		if p.log != nil {
			p.log.Warn("notification publish failed", zap.String("recipient_id", recipientID), zap.Error(err))
		}
		return err
	}
	return nil
}
