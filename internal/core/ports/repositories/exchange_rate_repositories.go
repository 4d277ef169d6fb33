package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data.
// Both lookups only consider rates effective strictly before asOf.
type ExchangeRateReader interface {
	// FindLatestQuoteBefore returns the most recent rate quoting currencyID.
	FindLatestQuoteBefore(ctx context.Context, currencyID string, asOf time.Time) (*domain.ExchangeRate, error)

	// FindLatestBaseBefore returns the most recent rate using currencyID as its base.
	FindLatestBaseBefore(ctx context.Context, currencyID string, asOf time.Time) (*domain.ExchangeRate, error)

	// ListExchangeRates lists rates newest first.
	ListExchangeRates(ctx context.Context, filter domain.RateFilter) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRateIfAbsent appends a rate. It reports false, without error,
	// when a rate for the same (currency, base, date) already exists.
	SaveExchangeRateIfAbsent(ctx context.Context, rate domain.ExchangeRate) (bool, error)
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
