package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
)

// TransferCursor points just past the last transfer of a page.
type TransferCursor struct {
	CreatedAt  time.Time
	TransferID string
}

// TransferReader defines read operations for transfer records
type TransferReader interface {
	// FindTransferByID retrieves a transfer by its identifier.
	FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error)

	// ListTransfersBySenderUser lists transfers sent from any account of userID,
	// newest first, starting after the cursor when one is given.
	ListTransfersBySenderUser(ctx context.Context, userID string, limit int, after *TransferCursor) ([]domain.Transfer, error)
}

// LedgerRepository is the storage the transfer engine needs: transfer reads
// plus the atomic ledger unit that writes balances and transfers together.
type LedgerRepository interface {
	TransferReader
	TransactionManager
}
