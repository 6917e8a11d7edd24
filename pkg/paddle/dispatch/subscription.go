package dispatch

import (
	"context"
	"fmt"

	go_json "github.com/goccy/go-json"

	"github.com/ledgerline-systems/paddlehook/pkg/paddle/events"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/types"
)

// SubscriptionHandler routes subscription lifecycle events to per-action
// callbacks. The created action additionally receives the transaction ID the
// vendor nests under data.transaction_id, outside the subscription payload
// proper; it is read straight from the raw delivery.
type SubscriptionHandler struct {
	OnActivated Callback[types.Subscription]
	OnCanceled  Callback[types.Subscription]
	OnCreated   func(ctx context.Context, transactionID string, evt events.Event[types.Subscription]) (Result, error)
	OnImported  Callback[types.Subscription]
	OnPastDue   Callback[types.Subscription]
	OnPaused    Callback[types.Subscription]
	OnResumed   Callback[types.Subscription]
	OnUpdated   Callback[types.Subscription]
	OnTrialing  Callback[types.Subscription]
}

func (h *SubscriptionHandler) HandleEvent(ctx context.Context, raw go_json.RawMessage, evt events.Event[types.Subscription]) (Result, error) {
	logHandling(evt)
	switch evt.EventType {
	case events.SubscriptionActivated:
		return call(ctx, h.OnActivated, evt)
	case events.SubscriptionCanceled:
		return call(ctx, h.OnCanceled, evt)
	case events.SubscriptionCreated:
		if h.OnCreated == nil {
			return eventIgnored(evt), nil
		}
		transactionID, err := subscriptionTransactionID(raw)
		if err != nil {
			return Result{}, err
		}
		return h.OnCreated(ctx, transactionID, evt)
	case events.SubscriptionImported:
		return call(ctx, h.OnImported, evt)
	case events.SubscriptionPastDue:
		return call(ctx, h.OnPastDue, evt)
	case events.SubscriptionPaused:
		return call(ctx, h.OnPaused, evt)
	case events.SubscriptionResumed:
		return call(ctx, h.OnResumed, evt)
	case events.SubscriptionUpdated:
		return call(ctx, h.OnUpdated, evt)
	case events.SubscriptionTrialing:
		return call(ctx, h.OnTrialing, evt)
	}
	return notImplemented(evt.EventType), nil
}

func subscriptionTransactionID(raw go_json.RawMessage) (string, error) {
	var probe struct {
		Data struct {
			TransactionID string `json:"transaction_id"`
		} `json:"data"`
	}
	if err := go_json.Unmarshal(raw, &probe); err != nil {
		return "", fmt.Errorf("extract transaction_id: %w", err)
	}
	return probe.Data.TransactionID, nil
}
