package repositories

import (
	"context"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LockedAccounts is the view of account rows held under lock for the
// duration of a ledger unit, keyed by account ID.
type LockedAccounts map[string]domain.Account

// LedgerMutation is what a ledger unit commits: signed balance deltas per
// account and the transfer record that explains them.
type LedgerMutation struct {
	BalanceChanges map[string]decimal.Decimal
	Transfer       domain.Transfer
}

// LedgerUnitFunc inspects locked accounts and returns the mutation to commit.
// Returning an error aborts the unit with no state change.
type LedgerUnitFunc func(ctx context.Context, locked LockedAccounts) (*LedgerMutation, error)

// TransactionManager runs ledger units atomically.
type TransactionManager interface {
	// WithLockedAccounts locks the given accounts in ascending ID order, calls fn
	// with their current state, and commits the returned mutation as one unit.
	// Missing accounts are simply absent from the locked map.
	WithLockedAccounts(ctx context.Context, accountIDs []string, fn LedgerUnitFunc) error
}
