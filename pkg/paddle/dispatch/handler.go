package dispatch

import (
	"context"
	"log/slog"

	"github.com/ledgerline-systems/paddlehook/pkg/paddle/events"
)

// Callback handles one typed event for a specific action within a category.
// A nil callback means the deployment does not care about that action: the
// event is logged and ignored.
type Callback[T any] func(ctx context.Context, evt events.Event[T]) (Result, error)

func call[T any](ctx context.Context, fn Callback[T], evt events.Event[T]) (Result, error) {
	if fn == nil {
		return eventIgnored(evt), nil
	}
	return fn(ctx, evt)
}

func eventIgnored[T any](evt events.Event[T]) Result {
	attrs := []any{
		slog.String("event_id", evt.EventID),
		slog.String("event_type", evt.EventType.String()),
		slog.Time("occurred_at", evt.OccurredAt),
	}
	if evt.NotificationID != "" {
		attrs = append(attrs, slog.String("notification_id", evt.NotificationID))
	}
	slog.Info("Event ignored", attrs...)
	return Result{Status: StatusIgnored, Reason: "Event ignored"}
}

func notImplemented(t events.EventType) Result {
	slog.Info("Event handling not implemented", slog.String("event_type", t.String()))
	return Result{Status: StatusIgnored, Reason: "Event handling not implemented for event type: " + t.String()}
}

func logHandling[T any](evt events.Event[T]) {
	slog.Info("Handling event",
		slog.String("event_type", evt.EventType.String()),
		slog.String("event_id", evt.EventID),
	)
}
