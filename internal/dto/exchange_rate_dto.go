package dto

import (
	"time"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	"github.com/SscSPs/money_transfer_service/internal/utils"
	"github.com/shopspring/decimal"
)

// IngestRateRequest defines the structure for pushing a single rate.
type IngestRateRequest struct {
	QuoteCurrency string          `json:"quoteCurrency" binding:"required,max=32"`
	BaseCurrency  string          `json:"baseCurrency" binding:"required,max=32"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate time.Time       `json:"effectiveDate" binding:"required"`
}

// ToRateQuote converts the request into the domain quote the service ingests.
func (r IngestRateRequest) ToRateQuote() domain.RateQuote {
	return domain.RateQuote{
		QuoteCurrency: r.QuoteCurrency,
		BaseCurrency:  r.BaseCurrency,
		Rate:          r.Rate,
		EffectiveDate: r.EffectiveDate,
	}
}

// IngestRateResponse reports whether the rate was stored or skipped as a duplicate.
type IngestRateResponse struct {
	Ingested bool `json:"ingested"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	CurrencyID     string          `json:"currencyID"`
	BaseCurrencyID string          `json:"baseCurrencyID"`
	Rate           decimal.Decimal `json:"rate"`
	DateEffective  time.Time       `json:"dateEffective"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		CurrencyID:     rate.CurrencyID,
		BaseCurrencyID: rate.BaseCurrencyID,
		Rate:           rate.Rate,
		DateEffective:  rate.DateEffective,
		CreatedAt:      rate.CreatedAt,
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to a slice of ExchangeRateResponse DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}

// ListRatesParams defines query parameters for listing rates.
type ListRatesParams struct {
	Currency     string     `form:"currency"`
	BaseCurrency string     `form:"base"`
	Before       *time.Time `form:"before" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit        int        `form:"limit,default=100" binding:"min=1,max=1000"`
}

// ConvertParams defines query parameters for a conversion quote.
type ConvertParams struct {
	From   string     `form:"from" binding:"required"`
	To     string     `form:"to" binding:"required"`
	Amount string     `form:"amount" binding:"required"`
	AsOf   *time.Time `form:"asOf" time_format:"2006-01-02T15:04:05Z07:00"`
}

// ConversionResponse is the result of a conversion quote.
type ConversionResponse struct {
	From            string    `json:"from"`
	To              string    `json:"to"`
	Amount          string    `json:"amount"`
	ConvertedAmount string    `json:"convertedAmount"`
	AsOf            time.Time `json:"asOf"`
}

// ToConversionResponse converts a domain.Conversion into its response DTO.
func ToConversionResponse(from, to string, c domain.Conversion) ConversionResponse {
	return ConversionResponse{
		From:            from,
		To:              to,
		Amount:          utils.FormatAmount(c.Amount),
		ConvertedAmount: utils.FormatAmount(c.ConvertedAmount),
		AsOf:            c.AsOf,
	}
}
