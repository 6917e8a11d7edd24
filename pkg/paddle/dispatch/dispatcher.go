package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	go_json "github.com/goccy/go-json"

	"github.com/ledgerline-systems/paddlehook/pkg/paddle/events"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/types"
)

// Handlers is the per-category handler registry. It is wired once at startup
// and never mutated afterwards; a nil slot is the valid "no handler
// configured" state. Five categories (adjustment, discount, discount group,
// payout, report) have no handler type at all and always take the
// unconfigured path.
type Handlers struct {
	Address       *AddressHandler
	APIKey        *APIKeyHandler
	Business      *BusinessHandler
	ClientToken   *ClientTokenHandler
	Customer      *CustomerHandler
	PaymentMethod *PaymentMethodHandler
	Price         *PriceHandler
	Product       *ProductHandler
	Subscription  *SubscriptionHandler
	Transaction   *TransactionHandler
}

// Empty reports whether no handler is configured at all.
func (h Handlers) Empty() bool {
	return h.Address == nil && h.APIKey == nil && h.Business == nil &&
		h.ClientToken == nil && h.Customer == nil && h.PaymentMethod == nil &&
		h.Price == nil && h.Product == nil && h.Subscription == nil &&
		h.Transaction == nil
}

// ResultCallback receives the outcome of one dispatched event. In background
// mode it fires from the background task, after Dispatch has returned.
type ResultCallback func(eventType events.EventType, eventID string, res Result)

// Options configures a Dispatcher.
type Options struct {
	// RunInBackground detaches payload decoding and handler execution from
	// the caller; Close drains outstanding work.
	RunInBackground bool

	// AllowIgnoredEvents lists event types the operator has decided are safe
	// to acknowledge without a handler: "no handler configured" and handler
	// Ignored outcomes are reported as Handled for these types.
	AllowIgnoredEvents []events.EventType
}

// Dispatcher routes raw events to the registered category handlers. It is
// immutable after construction and safe for concurrent use; no ordering is
// guaranteed across events.
type Dispatcher struct {
	handlers     Handlers
	background   bool
	allowIgnored map[events.EventType]struct{}

	tasks sync.WaitGroup
}

// New builds a Dispatcher over a fixed handler registry.
func New(handlers Handlers, opts Options) *Dispatcher {
	allow := make(map[events.EventType]struct{}, len(opts.AllowIgnoredEvents))
	for _, t := range opts.AllowIgnoredEvents {
		allow[t] = struct{}{}
	}
	return &Dispatcher{
		handlers:     handlers,
		background:   opts.RunInBackground,
		allowIgnored: allow,
	}
}

// Dispatch classifies the event, decodes the payload for its category, and
// invokes the registered handler. The raw bytes must be the full event JSON
// (webhook body or history API item). Decode failures and handler errors and
// panics are reported through cb as StatusError; nothing escapes. In
// background mode Dispatch returns immediately and cb fires later from the
// detached task.
func (d *Dispatcher) Dispatch(ctx context.Context, eventType events.EventType, eventID string, raw []byte, cb ResultCallback) {
	slog.Info("Dispatching event",
		slog.String("event_type", eventType.String()),
		slog.String("event_id", eventID),
	)
	switch events.CategoryOf(eventType) {
	case events.CategoryTransaction:
		if h := d.handlers.Transaction; h != nil {
			dispatchTo(d, ctx, eventType, eventID, raw, h.HandleEvent, cb)
			return
		}
	case events.CategorySubscription:
		if h := d.handlers.Subscription; h != nil {
			dispatchTo(d, ctx, eventType, eventID, raw, h.HandleEvent, cb)
			return
		}
	case events.CategoryCustomer:
		if h := d.handlers.Customer; h != nil {
			dispatchTo(d, ctx, eventType, eventID, raw, h.HandleEvent, cb)
			return
		}
	case events.CategoryPaymentMethod:
		if h := d.handlers.PaymentMethod; h != nil {
			dispatchTo(d, ctx, eventType, eventID, raw, h.HandleEvent, cb)
			return
		}
	case events.CategoryPrice:
		if h := d.handlers.Price; h != nil {
			dispatchTo(d, ctx, eventType, eventID, raw, h.HandleEvent, cb)
			return
		}
	case events.CategoryProduct:
		if h := d.handlers.Product; h != nil {
			dispatchTo(d, ctx, eventType, eventID, raw, h.HandleEvent, cb)
			return
		}
	case events.CategoryAddress:
		if h := d.handlers.Address; h != nil {
			dispatchTo(d, ctx, eventType, eventID, raw, h.HandleEvent, cb)
			return
		}
	case events.CategoryBusiness:
		if h := d.handlers.Business; h != nil {
			dispatchTo(d, ctx, eventType, eventID, raw, h.HandleEvent, cb)
			return
		}
	case events.CategoryAPIKey:
		if h := d.handlers.APIKey; h != nil {
			dispatchTo(d, ctx, eventType, eventID, raw, h.HandleEvent, cb)
			return
		}
	case events.CategoryClientToken:
		if h := d.handlers.ClientToken; h != nil {
			dispatchTo(d, ctx, eventType, eventID, raw, h.HandleEvent, cb)
			return
		}
	}
	// Category has no handler type, or the slot is empty. No payload parsing
	// happens on this path.
	d.reportUnhandled(eventType, eventID, cb)
}

// Close blocks until all outstanding background tasks finish. Must be called
// before tearing down anything the handlers capture (caches, connections).
func (d *Dispatcher) Close() {
	d.tasks.Wait()
}

func (d *Dispatcher) allowed(t events.EventType) bool {
	_, ok := d.allowIgnored[t]
	return ok
}

func (d *Dispatcher) reportUnhandled(eventType events.EventType, eventID string, cb ResultCallback) {
	if d.allowed(eventType) {
		report(cb, eventType, eventID, Result{Status: StatusHandled})
		return
	}
	slog.Warn("No event handler configured",
		slog.String("category", string(events.CategoryOf(eventType))),
		slog.String("event_type", eventType.String()),
	)
	report(cb, eventType, eventID, Result{Status: StatusIgnored, Reason: "no handler configured"})
}

type handleFunc[T any] func(ctx context.Context, raw go_json.RawMessage, evt events.Event[T]) (Result, error)

func dispatchTo[T any](d *Dispatcher, ctx context.Context, eventType events.EventType, eventID string, raw []byte, handle handleFunc[T], cb ResultCallback) {
	if d.background {
		// Detached from the request lifetime; Close join-waits on it.
		bgCtx := context.WithoutCancel(ctx)
		d.tasks.Add(1)
		go func() {
			defer d.tasks.Done()
			runEvent(d, bgCtx, eventType, eventID, raw, handle, cb)
		}()
		return
	}
	runEvent(d, ctx, eventType, eventID, raw, handle, cb)
}

func runEvent[T any](d *Dispatcher, ctx context.Context, eventType events.EventType, eventID string, raw []byte, handle handleFunc[T], cb ResultCallback) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Panic while handling event",
				slog.String("event_type", eventType.String()),
				slog.String("event_id", eventID),
				slog.Any("panic", r),
			)
			report(cb, eventType, eventID, Result{Status: StatusError, Reason: fmt.Sprint(r)})
		}
	}()

	var evt events.Event[T]
	if err := go_json.Unmarshal(raw, &evt); err != nil {
		slog.Error("Failed to decode event payload",
			slog.String("event_type", eventType.String()),
			slog.String("event_id", eventID),
			slog.String("error", err.Error()),
		)
		report(cb, eventType, eventID, Result{Status: StatusError, Reason: err.Error()})
		return
	}

	res, err := handle(ctx, go_json.RawMessage(raw), evt)
	if err != nil {
		slog.Error("Error handling event",
			slog.String("event_type", eventType.String()),
			slog.String("event_id", eventID),
			slog.String("error", err.Error()),
		)
		report(cb, eventType, eventID, Result{Status: StatusError, Reason: err.Error()})
		return
	}
	if res.Status == StatusIgnored && d.allowed(eventType) {
		res.Status = StatusHandled
	}
	report(cb, eventType, eventID, res)
}

func report(cb ResultCallback, eventType events.EventType, eventID string, res Result) {
	if cb != nil {
		cb(eventType, eventID, res)
	}
}

// Compile-time checks that every handler satisfies the shared shape.
var (
	_ handleFunc[types.Address]       = (&AddressHandler{}).HandleEvent
	_ handleFunc[types.APIKey]        = (&APIKeyHandler{}).HandleEvent
	_ handleFunc[types.Business]      = (&BusinessHandler{}).HandleEvent
	_ handleFunc[types.ClientToken]   = (&ClientTokenHandler{}).HandleEvent
	_ handleFunc[types.Customer]      = (&CustomerHandler{}).HandleEvent
	_ handleFunc[types.PaymentMethod] = (&PaymentMethodHandler{}).HandleEvent
	_ handleFunc[types.Price]         = (&PriceHandler{}).HandleEvent
	_ handleFunc[types.Product]       = (&ProductHandler{}).HandleEvent
	_ handleFunc[types.Subscription]  = (&SubscriptionHandler{}).HandleEvent
	_ handleFunc[types.Transaction]   = (&TransactionHandler{}).HandleEvent
)
