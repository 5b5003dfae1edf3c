// Package natsconn dials the NATS server backing the notification stream.
// The notification path is JetStream-only, so the dial verifies JetStream is
// actually enabled before handing the connection out.
package natsconn

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Options configures the connection. Zero values get sensible defaults.
type Options struct {
	URL           string
	Name          string // connection name shown in server monitoring
	MaxReconnects int
	ReconnectWait time.Duration
}

// Connect establishes a NATS connection and confirms JetStream availability.
// Failures return immediately so the caller can fall back to the direct
// inbox sink instead of discovering the problem at the first publish.
func Connect(opts Options) (*nats.Conn, error) {
	if opts.URL == "" {
		opts.URL = nats.DefaultURL
	}
	if opts.Name == "" {
		opts.Name = "community-platform"
	}
	if opts.MaxReconnects == 0 {
		opts.MaxReconnects = 5
	}
	if opts.ReconnectWait == 0 {
		opts.ReconnectWait = 2 * time.Second
	}

	nc, err := nats.Connect(opts.URL,
		nats.Name(opts.Name),
		nats.MaxReconnects(opts.MaxReconnects),
		nats.ReconnectWait(opts.ReconnectWait),
		nats.RetryOnFailedConnect(false),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", opts.URL, err)
	}

	js, err := nc.JetStream()
	if err == nil {
		_, err = js.AccountInfo()
	}
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("nats %s: jetstream unavailable: %w", opts.URL, err)
	}
	return nc, nil
}
