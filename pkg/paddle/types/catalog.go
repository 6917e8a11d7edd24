// Package types holds the Paddle entity shapes the pipeline and caches touch.
// These are intentionally narrow cuts of the vendor data model: only the
// fields our handlers, caches, and tests read.
package types

import (
	"time"

	go_json "github.com/goccy/go-json"
)

// Money is a vendor money amount: a stringified minor-unit amount plus a
// currency code.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currency_code"`
}

type Product struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description *string            `json:"description"`
	TaxCategory *string            `json:"tax_category"`
	ImageURL    *string            `json:"image_url"`
	Status      string             `json:"status"`
	CustomData  go_json.RawMessage `json:"custom_data,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type PriceQuantity struct {
	Minimum int `json:"minimum"`
	Maximum int `json:"maximum"`
}

type Price struct {
	ID          string             `json:"id"`
	ProductID   string             `json:"product_id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Type        string             `json:"type"`
	TaxMode     string             `json:"tax_mode"`
	UnitPrice   Money              `json:"unit_price"`
	Quantity    PriceQuantity      `json:"quantity"`
	Status      string             `json:"status"`
	CustomData  go_json.RawMessage `json:"custom_data,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}
