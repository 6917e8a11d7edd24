// Package sink forwards verified webhook events to a message broker so
// downstream consumers can process them without talking to Paddle directly.
package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/ledgerline-systems/paddlehook/pkg/paddle/events"
)

// Config holds NATS sink configuration.
type Config struct {
	// URL is the NATS server URL (e.g., "nats://localhost:4222").
	URL string

	// SubjectPrefix is prepended to the event category to form the publish
	// subject, e.g. "paddle.events" publishes customer events on
	// "paddle.events.customer".
	SubjectPrefix string

	// Name is the client name for connection identification.
	Name string

	// MaxReconnects is the maximum number of reconnection attempts.
	// Use -1 for infinite reconnects.
	MaxReconnects int

	// ReconnectWait is the time to wait between reconnection attempts.
	ReconnectWait time.Duration

	// Timeout is the connection timeout.
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		URL:           nats.DefaultURL,
		SubjectPrefix: "paddle.events",
		Name:          "paddlehook-sink",
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
		Timeout:       5 * time.Second,
	}
}

// NATSSink publishes raw event JSON to NATS, one subject per category.
type NATSSink struct {
	conn   *nats.Conn
	prefix string
}

// NewNATSSink connects to NATS with the given configuration.
func NewNATSSink(cfg Config) (*NATSSink, error) {
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = "paddle.events"
	}
	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.Timeout),
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSSink{conn: conn, prefix: cfg.SubjectPrefix}, nil
}

// Publish sends the raw event body on "<prefix>.<category>" with the event ID
// carried as a header for consumer-side dedup.
func (s *NATSSink) Publish(_ context.Context, category events.Category, eventID string, raw []byte) error {
	msg := nats.NewMsg(s.prefix + "." + string(category))
	msg.Header.Set("Paddle-Event-Id", eventID)
	msg.Data = raw

	if err := s.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish event %s: %w", eventID, err)
	}
	return nil
}

// Close flushes pending publishes and drops the connection.
func (s *NATSSink) Close() error {
	if s.conn == nil {
		return nil
	}
	if err := s.conn.Flush(); err != nil {
		s.conn.Close()
		return err
	}
	s.conn.Close()
	return nil
}
