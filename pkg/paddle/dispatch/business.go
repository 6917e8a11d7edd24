package dispatch

import (
	"context"

	go_json "github.com/goccy/go-json"

	"github.com/ledgerline-systems/paddlehook/pkg/paddle/events"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/types"
)

// BusinessHandler routes business events to per-action callbacks.
type BusinessHandler struct {
	OnCreated  Callback[types.Business]
	OnImported Callback[types.Business]
	OnUpdated  Callback[types.Business]
}

func (h *BusinessHandler) HandleEvent(ctx context.Context, _ go_json.RawMessage, evt events.Event[types.Business]) (Result, error) {
	logHandling(evt)
	switch evt.EventType {
	case events.BusinessCreated:
		return call(ctx, h.OnCreated, evt)
	case events.BusinessImported:
		return call(ctx, h.OnImported, evt)
	case events.BusinessUpdated:
		return call(ctx, h.OnUpdated, evt)
	}
	return notImplemented(evt.EventType), nil
}
