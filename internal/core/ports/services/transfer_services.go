package services

import (
	"context"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerSvc applies priced postings to account balances.
type LedgerSvc interface {
	// Post debits the sender and credits the receiver and records the transfer,
	// all in one atomic unit.
	Post(ctx context.Context, posting domain.Posting) (*domain.Transfer, error)
}

// TransferWriterSvc defines the transfer operation.
type TransferWriterSvc interface {
	// ExecuteTransfer validates, prices and applies a transfer requested by userID.
	ExecuteTransfer(ctx context.Context, userID, senderAccountID, receiverAccountID string, amount decimal.Decimal) (*domain.Transfer, error)
}

// TransferReaderSvc defines read operations for transfer records.
type TransferReaderSvc interface {
	// GetTransfer returns a transfer visible to userID (owner of either side).
	GetTransfer(ctx context.Context, userID, transferID string) (*domain.Transfer, error)

	// ListTransfersForUser lists transfers sent by userID's accounts using token-based pagination.
	// It returns the transfers, a token for the next page, and an error.
	ListTransfersForUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transfer, *string, error)
}

// TransferSvcFacade combines all transfer-related service interfaces
type TransferSvcFacade interface {
	TransferWriterSvc
	TransferReaderSvc
}
