package services

import (
	"context"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	"github.com/SscSPs/money_transfer_service/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount retrieves an account by ID.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountBalance returns the current balance of an account, for display.
	GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// ListAccountsForUser retrieves every account owned by userID.
	ListAccountsForUser(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount opens an account for userID in the requested currency.
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
