package types

import (
	"time"

	go_json "github.com/goccy/go-json"
)

type Customer struct {
	ID               string             `json:"id"`
	Name             *string            `json:"name"`
	Email            string             `json:"email"`
	MarketingConsent bool               `json:"marketing_consent"`
	Status           string             `json:"status"`
	Locale           string             `json:"locale"`
	CustomData       go_json.RawMessage `json:"custom_data,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

type Address struct {
	ID          string             `json:"id"`
	CustomerID  string             `json:"customer_id"`
	Description *string            `json:"description"`
	FirstLine   *string            `json:"first_line"`
	SecondLine  *string            `json:"second_line"`
	City        *string            `json:"city"`
	PostalCode  *string            `json:"postal_code"`
	Region      *string            `json:"region"`
	CountryCode string             `json:"country_code"`
	Status      string             `json:"status"`
	CustomData  go_json.RawMessage `json:"custom_data,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type BusinessContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Business struct {
	ID            string             `json:"id"`
	CustomerID    string             `json:"customer_id"`
	Name          string             `json:"name"`
	CompanyNumber *string            `json:"company_number"`
	TaxIdentifier *string            `json:"tax_identifier"`
	Status        string             `json:"status"`
	Contacts      []BusinessContact  `json:"contacts"`
	CustomData    go_json.RawMessage `json:"custom_data,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}
