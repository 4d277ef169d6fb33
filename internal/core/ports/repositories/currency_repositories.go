package repositories

import (
	"context"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByName retrieves a currency by its case-sensitive name.
	FindCurrencyByName(ctx context.Context, name string) (*domain.Currency, error)

	// FindCurrencyByID retrieves a currency by its identifier.
	FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error)

	// ListCurrencies retrieves all known currencies ordered by name.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrencyIfAbsent stores the currency unless one with the same name
	// exists, and returns whichever row is stored.
	SaveCurrencyIfAbsent(ctx context.Context, currency domain.Currency) (*domain.Currency, error)
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
