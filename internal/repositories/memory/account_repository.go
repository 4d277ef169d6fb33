package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portsrepo "github.com/SscSPs/money_transfer_service/internal/core/ports/repositories"
)

type accountRepository struct {
	*Store
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

func userCurrencyKey(userID, currencyID string) string {
	return userID + "|" + currencyID
}

func (r *accountRepository) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return &acc, nil
}

func (r *accountRepository) FindAccountByUserAndCurrency(_ context.Context, userID, currencyID string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.accountByUserCurr[userCurrencyKey(userID, currencyID)]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	acc := r.accounts[id]
	return &acc, nil
}

func (r *accountRepository) ListAccountsByUser(_ context.Context, userID string) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Account
	for _, acc := range r.accounts {
		if acc.UserID == userID {
			out = append(out, acc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].AccountID < out[j].AccountID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *accountRepository) SaveAccount(_ context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.currencies[account.CurrencyID]; !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrCurrencyNotFound, account.CurrencyID)
	}
	if account.Balance.IsNegative() {
		return apperrors.ErrInvalidAmount
	}
	key := userCurrencyKey(account.UserID, account.CurrencyID)
	if _, ok := r.accountByUserCurr[key]; ok {
		return apperrors.ErrDuplicateAccount
	}
	if _, ok := r.accounts[account.AccountID]; ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
	}
	r.accounts[account.AccountID] = account
	r.accountByUserCurr[key] = account.AccountID
	return nil
}
