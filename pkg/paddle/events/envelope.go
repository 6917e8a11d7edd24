package events

import (
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
)

// Event is the outer structure common to webhook deliveries and replayed
// history events. T is the payload type carried in "data"; the generic
// Envelope form keeps the payload opaque until a handler is chosen.
// NotificationID is set only on the push-delivery flavor.
type Event[T any] struct {
	EventID        string    `json:"event_id"`
	EventType      EventType `json:"event_type"`
	OccurredAt     time.Time `json:"occurred_at"`
	NotificationID string    `json:"notification_id,omitempty"`
	Data           T         `json:"data"`
}

// Envelope is an event with its payload left undecoded.
type Envelope = Event[go_json.RawMessage]

// ParseEnvelope decodes the raw body of a delivery into an Envelope.
// An unknown event_type is a decode failure.
func ParseEnvelope(raw []byte) (Envelope, error) {
	var env Envelope
	if err := go_json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode event envelope: %w", err)
	}
	return env, nil
}

// ParsePayload decodes the envelope's opaque payload into T, carrying the
// envelope fields over unchanged.
func ParsePayload[T any](env Envelope) (Event[T], error) {
	evt := Event[T]{
		EventID:        env.EventID,
		EventType:      env.EventType,
		OccurredAt:     env.OccurredAt,
		NotificationID: env.NotificationID,
	}
	if len(env.Data) > 0 {
		if err := go_json.Unmarshal(env.Data, &evt.Data); err != nil {
			return Event[T]{}, fmt.Errorf("decode %s payload: %w", env.EventType, err)
		}
	}
	return evt, nil
}

func unmarshalString(data []byte, s *string) error {
	return go_json.Unmarshal(data, s)
}
