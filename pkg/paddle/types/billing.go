package types

import (
	"time"

	go_json "github.com/goccy/go-json"
)

type SubscriptionItem struct {
	Status             string     `json:"status"`
	Price              *Price     `json:"price,omitempty"`
	Quantity           int        `json:"quantity"`
	Recurring          bool       `json:"recurring"`
	PreviouslyBilledAt *time.Time `json:"previously_billed_at"`
	NextBilledAt       *time.Time `json:"next_billed_at"`
}

type Subscription struct {
	ID             string             `json:"id"`
	Status         string             `json:"status"`
	CustomerID     string             `json:"customer_id"`
	AddressID      string             `json:"address_id"`
	BusinessID     *string            `json:"business_id"`
	CurrencyCode   string             `json:"currency_code"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	StartedAt      *time.Time         `json:"started_at"`
	FirstBilledAt  *time.Time         `json:"first_billed_at"`
	NextBilledAt   *time.Time         `json:"next_billed_at"`
	PausedAt       *time.Time         `json:"paused_at"`
	CanceledAt     *time.Time         `json:"canceled_at"`
	CollectionMode string             `json:"collection_mode"`
	Items          []SubscriptionItem `json:"items"`
	CustomData     go_json.RawMessage `json:"custom_data,omitempty"`
}

type TransactionItem struct {
	PriceID  string `json:"price_id"`
	Quantity int    `json:"quantity"`
}

type TransactionTotals struct {
	Subtotal     string `json:"subtotal"`
	Tax          string `json:"tax"`
	Total        string `json:"total"`
	GrandTotal   string `json:"grand_total"`
	Balance      string `json:"balance"`
	CurrencyCode string `json:"currency_code"`
}

type TransactionDetails struct {
	Totals TransactionTotals `json:"totals"`
}

type Transaction struct {
	ID             string             `json:"id"`
	Status         string             `json:"status"`
	CustomerID     *string            `json:"customer_id"`
	AddressID      *string            `json:"address_id"`
	BusinessID     *string            `json:"business_id"`
	SubscriptionID *string            `json:"subscription_id"`
	InvoiceNumber  *string            `json:"invoice_number"`
	CurrencyCode   string             `json:"currency_code"`
	Origin         string             `json:"origin"`
	CollectionMode string             `json:"collection_mode"`
	Items          []TransactionItem  `json:"items"`
	Details        TransactionDetails `json:"details"`
	CustomData     go_json.RawMessage `json:"custom_data,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	BilledAt       *time.Time         `json:"billed_at"`
}
