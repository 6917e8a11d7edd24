package dispatch

import (
	"context"

	go_json "github.com/goccy/go-json"

	"github.com/ledgerline-systems/paddlehook/pkg/paddle/events"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/types"
)

// CustomerHandler routes customer events to per-action callbacks.
type CustomerHandler struct {
	OnCreated  Callback[types.Customer]
	OnImported Callback[types.Customer]
	OnUpdated  Callback[types.Customer]
}

func (h *CustomerHandler) HandleEvent(ctx context.Context, _ go_json.RawMessage, evt events.Event[types.Customer]) (Result, error) {
	logHandling(evt)
	switch evt.EventType {
	case events.CustomerCreated:
		return call(ctx, h.OnCreated, evt)
	case events.CustomerImported:
		return call(ctx, h.OnImported, evt)
	case events.CustomerUpdated:
		return call(ctx, h.OnUpdated, evt)
	}
	return notImplemented(evt.EventType), nil
}
