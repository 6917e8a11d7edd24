package dispatch

import (
	"context"

	go_json "github.com/goccy/go-json"

	"github.com/ledgerline-systems/paddlehook/pkg/paddle/events"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/types"
)

// ProductCacheSink receives incremental product updates driven by webhook
// events.
type ProductCacheSink interface {
	AddProduct(p types.Product)
	UpdateProduct(p types.Product)
}

// ProductHandler routes product events to per-action callbacks. Cache sinks
// are written before the callback runs, same as PriceHandler.
type ProductHandler struct {
	Caches []ProductCacheSink

	OnCreated  Callback[types.Product]
	OnImported Callback[types.Product]
	OnUpdated  Callback[types.Product]
}

func (h *ProductHandler) HandleEvent(ctx context.Context, _ go_json.RawMessage, evt events.Event[types.Product]) (Result, error) {
	logHandling(evt)
	switch evt.EventType {
	case events.ProductCreated:
		h.addToCaches(evt.Data)
		return call(ctx, h.OnCreated, evt)
	case events.ProductImported:
		h.addToCaches(evt.Data)
		return call(ctx, h.OnImported, evt)
	case events.ProductUpdated:
		h.updateCaches(evt.Data)
		return call(ctx, h.OnUpdated, evt)
	}
	return notImplemented(evt.EventType), nil
}

func (h *ProductHandler) addToCaches(p types.Product) {
	for _, c := range h.Caches {
		if c != nil {
			c.AddProduct(p)
		}
	}
}

func (h *ProductHandler) updateCaches(p types.Product) {
	for _, c := range h.Caches {
		if c != nil {
			c.UpdateProduct(p)
		}
	}
}
