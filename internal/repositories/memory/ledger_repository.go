package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portsrepo "github.com/SscSPs/money_transfer_service/internal/core/ports/repositories"
	"github.com/SscSPs/money_transfer_service/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type ledgerRepository struct {
	*Store
}

var _ portsrepo.LedgerRepository = (*ledgerRepository)(nil)

// WithLockedAccounts holds the per-account locks for the whole unit, so two
// units touching a common account run one after the other while disjoint
// pairs proceed in parallel.
func (r *ledgerRepository) WithLockedAccounts(ctx context.Context, accountIDs []string, fn portsrepo.LedgerUnitFunc) error {
	unlock := r.lockAccounts(accountIDs)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	locked := make(portsrepo.LockedAccounts, len(accountIDs))
	r.mu.RLock()
	for _, id := range accountIDs {
		if acc, ok := r.accounts[id]; ok {
			locked[id] = acc
		}
	}
	r.mu.RUnlock()

	mutation, err := fn(ctx, locked)
	if err != nil {
		return err
	}
	if mutation == nil {
		return nil
	}

	for id := range mutation.BalanceChanges {
		if _, ok := locked[id]; !ok {
			return fmt.Errorf("ledger unit changed account %s without locking it", id)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := make(map[string]decimal.Decimal, len(mutation.BalanceChanges))
	for id, delta := range mutation.BalanceChanges {
		balance, err := accounting.ApplyDelta(r.accounts[id].Balance, delta)
		if err != nil {
			return fmt.Errorf("%w: account %s: %v", apperrors.ErrInsufficientBalance, id, err)
		}
		next[id] = balance
	}
	if mutation.Transfer.TransferID != "" {
		if _, ok := r.transferByID[mutation.Transfer.TransferID]; ok {
			return fmt.Errorf("%w: transfer %s", apperrors.ErrDuplicate, mutation.Transfer.TransferID)
		}
	}

	for id, balance := range next {
		acc := r.accounts[id]
		acc.Balance = balance
		r.accounts[id] = acc
	}
	if mutation.Transfer.TransferID != "" {
		r.transferByID[mutation.Transfer.TransferID] = len(r.transfers)
		r.transfers = append(r.transfers, mutation.Transfer)
	}
	return nil
}

func (r *ledgerRepository) FindTransferByID(_ context.Context, transferID string) (*domain.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.transferByID[transferID]
	if !ok {
		return nil, apperrors.ErrTransferNotFound
	}
	t := r.transfers[idx]
	return &t, nil
}

func (r *ledgerRepository) ListTransfersBySenderUser(_ context.Context, userID string, limit int, after *portsrepo.TransferCursor) ([]domain.Transfer, error) {
	r.mu.RLock()
	var out []domain.Transfer
	for _, t := range r.transfers {
		sender, ok := r.accounts[t.SenderAccountID]
		if !ok || sender.UserID != userID {
			continue
		}
		if after != nil && !transferBefore(t, after) {
			continue
		}
		out = append(out, t)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return transferBefore(out[j], &portsrepo.TransferCursor{CreatedAt: out[i].CreatedAt, TransferID: out[i].TransferID})
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// transferBefore reports whether t sorts after the cursor in newest-first order.
func transferBefore(t domain.Transfer, c *portsrepo.TransferCursor) bool {
	if t.CreatedAt.Equal(c.CreatedAt) {
		return t.TransferID < c.TransferID
	}
	return t.CreatedAt.Before(c.CreatedAt)
}
