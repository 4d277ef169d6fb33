package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portsrepo "github.com/SscSPs/money_transfer_service/internal/core/ports/repositories"
)

type currencyRepository struct {
	*Store
}

var _ portsrepo.CurrencyRepositoryFacade = (*currencyRepository)(nil)

func (r *currencyRepository) FindCurrencyByName(_ context.Context, name string) (*domain.Currency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.currencyByName[name]
	if !ok {
		return nil, apperrors.ErrCurrencyNotFound
	}
	c := r.currencies[id]
	return &c, nil
}

func (r *currencyRepository) FindCurrencyByID(_ context.Context, currencyID string) (*domain.Currency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.currencies[currencyID]
	if !ok {
		return nil, apperrors.ErrCurrencyNotFound
	}
	return &c, nil
}

func (r *currencyRepository) ListCurrencies(_ context.Context) ([]domain.Currency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Currency, 0, len(r.currencies))
	for _, c := range r.currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *currencyRepository) SaveCurrencyIfAbsent(_ context.Context, currency domain.Currency) (*domain.Currency, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.currencyByName[currency.Name]; ok {
		existing := r.currencies[id]
		return &existing, nil
	}
	r.currencies[currency.CurrencyID] = currency
	r.currencyByName[currency.Name] = currency.CurrencyID
	return &currency, nil
}
