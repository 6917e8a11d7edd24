package dispatch

import (
	"context"

	go_json "github.com/goccy/go-json"

	"github.com/ledgerline-systems/paddlehook/pkg/paddle/events"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/types"
)

// TransactionHandler routes transaction events to per-action callbacks.
type TransactionHandler struct {
	OnBilled        Callback[types.Transaction]
	OnCanceled      Callback[types.Transaction]
	OnCompleted     Callback[types.Transaction]
	OnCreated       Callback[types.Transaction]
	OnPaid          Callback[types.Transaction]
	OnPastDue       Callback[types.Transaction]
	OnPaymentFailed Callback[types.Transaction]
	OnReady         Callback[types.Transaction]
	OnRevised       Callback[types.Transaction]
	OnUpdated       Callback[types.Transaction]
}

func (h *TransactionHandler) HandleEvent(ctx context.Context, _ go_json.RawMessage, evt events.Event[types.Transaction]) (Result, error) {
	logHandling(evt)
	switch evt.EventType {
	case events.TransactionBilled:
		return call(ctx, h.OnBilled, evt)
	case events.TransactionCanceled:
		return call(ctx, h.OnCanceled, evt)
	case events.TransactionCompleted:
		return call(ctx, h.OnCompleted, evt)
	case events.TransactionCreated:
		return call(ctx, h.OnCreated, evt)
	case events.TransactionPaid:
		return call(ctx, h.OnPaid, evt)
	case events.TransactionPastDue:
		return call(ctx, h.OnPastDue, evt)
	case events.TransactionPaymentFailed:
		return call(ctx, h.OnPaymentFailed, evt)
	case events.TransactionReady:
		return call(ctx, h.OnReady, evt)
	case events.TransactionRevised:
		return call(ctx, h.OnRevised, evt)
	case events.TransactionUpdated:
		return call(ctx, h.OnUpdated, evt)
	}
	return notImplemented(evt.EventType), nil
}
