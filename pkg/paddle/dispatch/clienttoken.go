package dispatch

import (
	"context"

	go_json "github.com/goccy/go-json"

	"github.com/ledgerline-systems/paddlehook/pkg/paddle/events"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/types"
)

// ClientTokenHandler routes client token events to per-action callbacks.
type ClientTokenHandler struct {
	OnCreated Callback[types.ClientToken]
	OnRevoked Callback[types.ClientToken]
	OnUpdated Callback[types.ClientToken]
}

func (h *ClientTokenHandler) HandleEvent(ctx context.Context, _ go_json.RawMessage, evt events.Event[types.ClientToken]) (Result, error) {
	logHandling(evt)
	switch evt.EventType {
	case events.ClientTokenCreated:
		return call(ctx, h.OnCreated, evt)
	case events.ClientTokenRevoked:
		return call(ctx, h.OnRevoked, evt)
	case events.ClientTokenUpdated:
		return call(ctx, h.OnUpdated, evt)
	}
	return notImplemented(evt.EventType), nil
}
