package domain

import "time"

// Currency represents a named unit of value (e.g. "USD").
// Names are case-sensitive and unique; a currency is never mutated once created.
type Currency struct {
	CurrencyID string    `json:"currencyID"` // Primary Key (UUID)
	Name       string    `json:"name"`       // Unique, e.g. "USD"
	CreatedAt  time.Time `json:"createdAt"`
}
