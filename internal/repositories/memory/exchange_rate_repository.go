package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portsrepo "github.com/SscSPs/money_transfer_service/internal/core/ports/repositories"
)

type exchangeRateRepository struct {
	*Store
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*exchangeRateRepository)(nil)

// latestBefore scans for the newest rate matching pick and effective strictly
// before asOf. Later inserts win ties, like created_at DESC in SQL.
func (r *exchangeRateRepository) latestBefore(asOf time.Time, pick func(domain.ExchangeRate) bool) (*domain.ExchangeRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var best *domain.ExchangeRate
	for i := range r.rates {
		rate := r.rates[i]
		if !pick(rate) || !rate.DateEffective.Before(asOf) {
			continue
		}
		if best == nil || !rate.DateEffective.Before(best.DateEffective) {
			best = &rate
		}
	}
	if best == nil {
		return nil, apperrors.ErrRateNotFound
	}
	return best, nil
}

func (r *exchangeRateRepository) FindLatestQuoteBefore(_ context.Context, currencyID string, asOf time.Time) (*domain.ExchangeRate, error) {
	return r.latestBefore(asOf, func(rate domain.ExchangeRate) bool { return rate.CurrencyID == currencyID })
}

func (r *exchangeRateRepository) FindLatestBaseBefore(_ context.Context, currencyID string, asOf time.Time) (*domain.ExchangeRate, error) {
	return r.latestBefore(asOf, func(rate domain.ExchangeRate) bool { return rate.BaseCurrencyID == currencyID })
}

func (r *exchangeRateRepository) ListExchangeRates(_ context.Context, filter domain.RateFilter) ([]domain.ExchangeRate, error) {
	r.mu.RLock()
	out := make([]domain.ExchangeRate, 0)
	for i, rate := range r.rates {
		if filter.CurrencyID != nil && rate.CurrencyID != *filter.CurrencyID {
			continue
		}
		if filter.BaseCurrencyID != nil && rate.BaseCurrencyID != *filter.BaseCurrencyID {
			continue
		}
		if filter.Before != nil && !rate.DateEffective.Before(*filter.Before) {
			continue
		}
		out = append(out, r.rates[i])
	}
	r.mu.RUnlock()

	// Newest first; among equal dates the later insert comes first.
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateEffective.Before(out[j].DateEffective) })
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *exchangeRateRepository) SaveExchangeRateIfAbsent(_ context.Context, rate domain.ExchangeRate) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := rateKey{rate.CurrencyID, rate.BaseCurrencyID, rate.DateEffective.Unix(), rate.DateEffective.Nanosecond()}
	if _, ok := r.rateKeys[key]; ok {
		return false, nil
	}
	r.rateKeys[key] = struct{}{}
	r.rates = append(r.rates, rate)
	return true, nil
}
