package types

import "time"

type APIKey struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Key         string     `json:"key"`
	Status      string     `json:"status"`
	Permissions []string   `json:"permissions"`
	ExpiresAt   *time.Time `json:"expires_at"`
	LastUsedAt  *time.Time `json:"last_used_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ClientToken struct {
	ID          string     `json:"id"`
	Token       string     `json:"token"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	RevokedAt   *time.Time `json:"revoked_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type PaymentMethodCard struct {
	Type           string `json:"type"`
	Last4          string `json:"last4"`
	ExpiryMonth    int    `json:"expiry_month"`
	ExpiryYear     int    `json:"expiry_year"`
	CardholderName string `json:"cardholder_name"`
}

type PaymentMethod struct {
	ID             string             `json:"id"`
	CustomerID     string             `json:"customer_id"`
	AddressID      string             `json:"address_id"`
	Type           string             `json:"type"`
	Origin         string             `json:"origin"`
	Card           *PaymentMethodCard `json:"card,omitempty"`
	DeletionReason *string            `json:"deletion_reason,omitempty"`
	SavedAt        time.Time          `json:"saved_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}
