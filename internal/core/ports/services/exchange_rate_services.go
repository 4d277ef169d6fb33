package services

import (
	"context"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IngestSummary counts the outcome of a batch ingestion.
type IngestSummary struct {
	Received int
	Ingested int
	Skipped  int
	Rejected int
}

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// ListRates lists stored rates, newest first.
	ListRates(ctx context.Context, filter domain.RateFilter) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// IngestRate appends one rate. A rate for an existing (quote, base, date)
	// triple is skipped silently and reported as not ingested.
	IngestRate(ctx context.Context, quote domain.RateQuote) (bool, error)

	// IngestRates ingests a batch. Invalid quotes are rejected one by one;
	// only a storage failure aborts the batch.
	IngestRates(ctx context.Context, quotes []domain.RateQuote) (IngestSummary, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}

// RateTableSvc answers point-in-time rate lookups.
type RateTableSvc interface {
	// Resolve returns the factor for currencyID from rates effective strictly before asOf.
	Resolve(ctx context.Context, currencyID string, asOf time.Time) (domain.RateFactor, error)
}

// ConverterSvc converts amounts between currencies.
type ConverterSvc interface {
	// Convert converts amount from source to dest using rates known before asOf.
	Convert(ctx context.Context, sourceCurrencyID, destCurrencyID string, amount decimal.Decimal, asOf time.Time) (domain.Conversion, error)

	// ConvertByName resolves currency names first, then converts.
	ConvertByName(ctx context.Context, sourceName, destName string, amount decimal.Decimal, asOf time.Time) (domain.Conversion, error)
}
