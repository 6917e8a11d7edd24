// Package events defines the Paddle webhook event taxonomy: the closed set of
// event type names, their coarse categories, and the envelope shared by
// webhook deliveries and the event history API.
package events

import "fmt"

// EventType is a dotted Paddle event type name, e.g. "subscription.created".
// The set of valid values is closed; decoding an unrecognized name fails.
type EventType string

const (
	AddressCreated  EventType = "address.created"
	AddressImported EventType = "address.imported"
	AddressUpdated  EventType = "address.updated"

	AdjustmentCreated EventType = "adjustment.created"
	AdjustmentUpdated EventType = "adjustment.updated"

	APIKeyCreated  EventType = "api_key.created"
	APIKeyExpired  EventType = "api_key.expired"
	APIKeyExpiring EventType = "api_key.expiring"
	APIKeyRevoked  EventType = "api_key.revoked"
	APIKeyUpdated  EventType = "api_key.updated"

	ClientTokenCreated EventType = "client_token.created"
	ClientTokenRevoked EventType = "client_token.revoked"
	ClientTokenUpdated EventType = "client_token.updated"

	BusinessCreated  EventType = "business.created"
	BusinessImported EventType = "business.imported"
	BusinessUpdated  EventType = "business.updated"

	CustomerCreated  EventType = "customer.created"
	CustomerImported EventType = "customer.imported"
	CustomerUpdated  EventType = "customer.updated"

	DiscountCreated  EventType = "discount.created"
	DiscountImported EventType = "discount.imported"
	DiscountUpdated  EventType = "discount.updated"

	DiscountGroupCreated EventType = "discount_group.created"
	DiscountGroupUpdated EventType = "discount_group.updated"

	PaymentMethodSaved   EventType = "payment_method.saved"
	PaymentMethodDeleted EventType = "payment_method.deleted"

	PayoutCreated EventType = "payout.created"
	PayoutPaid    EventType = "payout.paid"

	PriceCreated  EventType = "price.created"
	PriceImported EventType = "price.imported"
	PriceUpdated  EventType = "price.updated"

	ProductCreated  EventType = "product.created"
	ProductImported EventType = "product.imported"
	ProductUpdated  EventType = "product.updated"

	ReportCreated EventType = "report.created"
	ReportUpdated EventType = "report.updated"

	SubscriptionActivated EventType = "subscription.activated"
	SubscriptionCanceled  EventType = "subscription.canceled"
	SubscriptionCreated   EventType = "subscription.created"
	SubscriptionImported  EventType = "subscription.imported"
	SubscriptionPastDue   EventType = "subscription.past_due"
	SubscriptionPaused    EventType = "subscription.paused"
	SubscriptionResumed   EventType = "subscription.resumed"
	SubscriptionUpdated   EventType = "subscription.updated"
	SubscriptionTrialing  EventType = "subscription.trialing"

	TransactionBilled        EventType = "transaction.billed"
	TransactionCanceled      EventType = "transaction.canceled"
	TransactionCompleted     EventType = "transaction.completed"
	TransactionCreated       EventType = "transaction.created"
	TransactionPaid          EventType = "transaction.paid"
	TransactionPastDue       EventType = "transaction.past_due"
	TransactionPaymentFailed EventType = "transaction.payment_failed"
	TransactionReady         EventType = "transaction.ready"
	TransactionRevised       EventType = "transaction.revised"
	TransactionUpdated       EventType = "transaction.updated"
)

// Category is a coarse event grouping used to route events to a handler.
type Category string

const (
	CategoryAddress       Category = "address"
	CategoryAdjustment    Category = "adjustment"
	CategoryAPIKey        Category = "api_key"
	CategoryClientToken   Category = "client_token"
	CategoryBusiness      Category = "business"
	CategoryCustomer      Category = "customer"
	CategoryDiscount      Category = "discount"
	CategoryDiscountGroup Category = "discount_group"
	CategoryPaymentMethod Category = "payment_method"
	CategoryPayout        Category = "payout"
	CategoryPrice         Category = "price"
	CategoryProduct       Category = "product"
	CategoryReport        Category = "report"
	CategorySubscription  Category = "subscription"
	CategoryTransaction   Category = "transaction"
	CategoryUnknown       Category = "unknown"
)

// categories maps every known event type to exactly one category. The
// totality of this table over All is enforced by a test; a new event type
// without a category entry fails that test, never silently classifies as
// unknown.
var categories = map[EventType]Category{
	AddressCreated:  CategoryAddress,
	AddressImported: CategoryAddress,
	AddressUpdated:  CategoryAddress,

	AdjustmentCreated: CategoryAdjustment,
	AdjustmentUpdated: CategoryAdjustment,

	APIKeyCreated:  CategoryAPIKey,
	APIKeyExpired:  CategoryAPIKey,
	APIKeyExpiring: CategoryAPIKey,
	APIKeyRevoked:  CategoryAPIKey,
	APIKeyUpdated:  CategoryAPIKey,

	ClientTokenCreated: CategoryClientToken,
	ClientTokenRevoked: CategoryClientToken,
	ClientTokenUpdated: CategoryClientToken,

	BusinessCreated:  CategoryBusiness,
	BusinessImported: CategoryBusiness,
	BusinessUpdated:  CategoryBusiness,

	CustomerCreated:  CategoryCustomer,
	CustomerImported: CategoryCustomer,
	CustomerUpdated:  CategoryCustomer,

	DiscountCreated:  CategoryDiscount,
	DiscountImported: CategoryDiscount,
	DiscountUpdated:  CategoryDiscount,

	DiscountGroupCreated: CategoryDiscountGroup,
	DiscountGroupUpdated: CategoryDiscountGroup,

	PaymentMethodSaved:   CategoryPaymentMethod,
	PaymentMethodDeleted: CategoryPaymentMethod,

	PayoutCreated: CategoryPayout,
	PayoutPaid:    CategoryPayout,

	PriceCreated:  CategoryPrice,
	PriceImported: CategoryPrice,
	PriceUpdated:  CategoryPrice,

	ProductCreated:  CategoryProduct,
	ProductImported: CategoryProduct,
	ProductUpdated:  CategoryProduct,

	ReportCreated: CategoryReport,
	ReportUpdated: CategoryReport,

	SubscriptionActivated: CategorySubscription,
	SubscriptionCanceled:  CategorySubscription,
	SubscriptionCreated:   CategorySubscription,
	SubscriptionImported:  CategorySubscription,
	SubscriptionPastDue:   CategorySubscription,
	SubscriptionPaused:    CategorySubscription,
	SubscriptionResumed:   CategorySubscription,
	SubscriptionUpdated:   CategorySubscription,
	SubscriptionTrialing:  CategorySubscription,

	TransactionBilled:        CategoryTransaction,
	TransactionCanceled:      CategoryTransaction,
	TransactionCompleted:     CategoryTransaction,
	TransactionCreated:       CategoryTransaction,
	TransactionPaid:          CategoryTransaction,
	TransactionPastDue:       CategoryTransaction,
	TransactionPaymentFailed: CategoryTransaction,
	TransactionReady:         CategoryTransaction,
	TransactionRevised:       CategoryTransaction,
	TransactionUpdated:       CategoryTransaction,
}

// All enumerates every known event type.
var All = func() []EventType {
	types := make([]EventType, 0, len(categories))
	for t := range categories {
		types = append(types, t)
	}
	return types
}()

// CategoryOf returns the category for a known event type, or CategoryUnknown
// for anything outside the closed set.
func CategoryOf(t EventType) Category {
	if c, ok := categories[t]; ok {
		return c
	}
	return CategoryUnknown
}

// Valid reports whether t belongs to the known event type set.
func (t EventType) Valid() bool {
	_, ok := categories[t]
	return ok
}

func (t EventType) String() string {
	return string(t)
}

// UnmarshalJSON decodes an event type name and rejects anything outside the
// known set. Unknown names are a hard decode failure, not a silent pass.
func (t *EventType) UnmarshalJSON(data []byte) error {
	var s string
	if err := unmarshalString(data, &s); err != nil {
		return fmt.Errorf("event_type: %w", err)
	}
	candidate := EventType(s)
	if !candidate.Valid() {
		return fmt.Errorf("event_type %q is not supported", s)
	}
	*t = candidate
	return nil
}
