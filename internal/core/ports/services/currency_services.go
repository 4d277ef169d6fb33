package services

import (
	"context"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByName retrieves a currency by its name. Unknown names fail
	// with apperrors.ErrCurrencyNotFound.
	GetCurrencyByName(ctx context.Context, name string) (*domain.Currency, error)

	// GetCurrencyByID retrieves a currency by its identifier.
	GetCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// EnsureCurrency returns the currency with this name, creating it on first reference.
	EnsureCurrency(ctx context.Context, name string) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
