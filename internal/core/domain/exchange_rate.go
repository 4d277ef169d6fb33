package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a directed, append-only rate: one unit of BaseCurrency is
// worth Rate units of the quote currency (CurrencyID) from DateEffective on.
// At most one row exists per (CurrencyID, BaseCurrencyID, DateEffective).
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"` // Primary Key (UUID)
	CurrencyID     string          `json:"currencyID"`     // Quote currency
	BaseCurrencyID string          `json:"baseCurrencyID"` // Reference currency
	Rate           decimal.Decimal `json:"rate"`
	DateEffective  time.Time       `json:"dateEffective"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// RateQuote is a rate as delivered by a feed, with currencies still named.
type RateQuote struct {
	QuoteCurrency string          `json:"quoteCurrency" validate:"required,max=32,nefield=BaseCurrency"`
	BaseCurrency  string          `json:"baseCurrency" validate:"required,max=32"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate time.Time       `json:"effectiveDate" validate:"required"`
}

// RateFactor is the answer of the rate table for one currency at one point
// in time: Factor units of the currency per unit of ReferenceCurrencyID.
type RateFactor struct {
	CurrencyID          string
	Factor              decimal.Decimal
	ReferenceCurrencyID string
	EffectiveAt         time.Time
}

// Conversion records the inputs and result of one currency conversion.
type Conversion struct {
	SourceCurrencyID string
	DestCurrencyID   string
	Amount           decimal.Decimal
	ConvertedAmount  decimal.Decimal
	SourceFactor     decimal.Decimal
	DestFactor       decimal.Decimal
	AsOf             time.Time
}

// RateFilter narrows rate listings. Nil fields are not applied.
type RateFilter struct {
	CurrencyID     *string
	BaseCurrencyID *string
	Before         *time.Time
	Limit          int
}
