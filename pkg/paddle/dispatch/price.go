package dispatch

import (
	"context"

	go_json "github.com/goccy/go-json"

	"github.com/ledgerline-systems/paddlehook/pkg/paddle/events"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/types"
)

// PriceCacheSink receives incremental price updates driven by webhook events.
type PriceCacheSink interface {
	AddPrice(p types.Price)
	UpdatePrice(p types.Price)
}

// PriceHandler routes price events to per-action callbacks. Configured cache
// sinks are written before the callback runs and are not rolled back if the
// callback fails: the caches track vendor state, not local handler outcomes.
type PriceHandler struct {
	Caches []PriceCacheSink

	OnCreated  Callback[types.Price]
	OnImported Callback[types.Price]
	OnUpdated  Callback[types.Price]
}

func (h *PriceHandler) HandleEvent(ctx context.Context, _ go_json.RawMessage, evt events.Event[types.Price]) (Result, error) {
	logHandling(evt)
	switch evt.EventType {
	case events.PriceCreated:
		h.addToCaches(evt.Data)
		return call(ctx, h.OnCreated, evt)
	case events.PriceImported:
		h.addToCaches(evt.Data)
		return call(ctx, h.OnImported, evt)
	case events.PriceUpdated:
		h.updateCaches(evt.Data)
		return call(ctx, h.OnUpdated, evt)
	}
	return notImplemented(evt.EventType), nil
}

func (h *PriceHandler) addToCaches(p types.Price) {
	for _, c := range h.Caches {
		if c != nil {
			c.AddPrice(p)
		}
	}
}

func (h *PriceHandler) updateCaches(p types.Price) {
	for _, c := range h.Caches {
		if c != nil {
			c.UpdatePrice(p)
		}
	}
}
