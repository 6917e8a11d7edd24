package dispatch

import (
	"context"

	go_json "github.com/goccy/go-json"

	"github.com/ledgerline-systems/paddlehook/pkg/paddle/events"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/types"
)

// PaymentMethodHandler routes payment method events to per-action callbacks.
type PaymentMethodHandler struct {
	OnSaved   Callback[types.PaymentMethod]
	OnDeleted Callback[types.PaymentMethod]
}

func (h *PaymentMethodHandler) HandleEvent(ctx context.Context, _ go_json.RawMessage, evt events.Event[types.PaymentMethod]) (Result, error) {
	logHandling(evt)
	switch evt.EventType {
	case events.PaymentMethodSaved:
		return call(ctx, h.OnSaved, evt)
	case events.PaymentMethodDeleted:
		return call(ctx, h.OnDeleted, evt)
	}
	return notImplemented(evt.EventType), nil
}
