package dispatch

import (
	"context"

	go_json "github.com/goccy/go-json"

	"github.com/ledgerline-systems/paddlehook/pkg/paddle/events"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/types"
)

// APIKeyHandler routes API key lifecycle events to per-action callbacks.
type APIKeyHandler struct {
	OnCreated  Callback[types.APIKey]
	OnExpired  Callback[types.APIKey]
	OnExpiring Callback[types.APIKey]
	OnRevoked  Callback[types.APIKey]
	OnUpdated  Callback[types.APIKey]
}

func (h *APIKeyHandler) HandleEvent(ctx context.Context, _ go_json.RawMessage, evt events.Event[types.APIKey]) (Result, error) {
	logHandling(evt)
	switch evt.EventType {
	case events.APIKeyCreated:
		return call(ctx, h.OnCreated, evt)
	case events.APIKeyExpired:
		return call(ctx, h.OnExpired, evt)
	case events.APIKeyExpiring:
		return call(ctx, h.OnExpiring, evt)
	case events.APIKeyRevoked:
		return call(ctx, h.OnRevoked, evt)
	case events.APIKeyUpdated:
		return call(ctx, h.OnUpdated, evt)
	}
	return notImplemented(evt.EventType), nil
}
