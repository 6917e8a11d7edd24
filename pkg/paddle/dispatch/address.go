package dispatch

import (
	"context"

	go_json "github.com/goccy/go-json"

	"github.com/ledgerline-systems/paddlehook/pkg/paddle/events"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/types"
)

// AddressHandler routes address events to per-action callbacks.
type AddressHandler struct {
	OnCreated  Callback[types.Address]
	OnImported Callback[types.Address]
	OnUpdated  Callback[types.Address]
}

func (h *AddressHandler) HandleEvent(ctx context.Context, _ go_json.RawMessage, evt events.Event[types.Address]) (Result, error) {
	logHandling(evt)
	switch evt.EventType {
	case events.AddressCreated:
		return call(ctx, h.OnCreated, evt)
	case events.AddressImported:
		return call(ctx, h.OnImported, evt)
	case events.AddressUpdated:
		return call(ctx, h.OnUpdated, evt)
	}
	return notImplemented(evt.EventType), nil
}
