package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portsrepo "github.com/SscSPs/money_transfer_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_transfer_service/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type rateTableService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateReader
}

// NewRateTableService creates the point-in-time rate lookup.
func NewRateTableService(rateRepo portsrepo.ExchangeRateReader) portssvc.RateTableSvc {
	return &rateTableService{rateRepo: rateRepo}
}

var _ portssvc.RateTableSvc = (*rateTableService)(nil)

// Resolve answers with the newest rate quoting currencyID effective strictly
// before asOf. A currency that is only ever used as a base resolves to 1
// against itself, dated by its newest base rate.
func (s *rateTableService) Resolve(ctx context.Context, currencyID string, asOf time.Time) (domain.RateFactor, error) {
	quote, err := s.rateRepo.FindLatestQuoteBefore(ctx, currencyID, asOf)
	if err == nil {
		return domain.RateFactor{
			CurrencyID:          currencyID,
			Factor:              quote.Rate,
			ReferenceCurrencyID: quote.BaseCurrencyID,
			EffectiveAt:         quote.DateEffective,
		}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to read quote rate", slog.String("currency_id", currencyID))
		return domain.RateFactor{}, fmt.Errorf("failed to resolve rate for %s: %w", currencyID, err)
	}

	base, err := s.rateRepo.FindLatestBaseBefore(ctx, currencyID, asOf)
	if err == nil {
		return domain.RateFactor{
			CurrencyID:          currencyID,
			Factor:              decimal.NewFromInt(1),
			ReferenceCurrencyID: currencyID,
			EffectiveAt:         base.DateEffective,
		}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to read base rate", slog.String("currency_id", currencyID))
		return domain.RateFactor{}, fmt.Errorf("failed to resolve rate for %s: %w", currencyID, err)
	}

	return domain.RateFactor{}, fmt.Errorf("%w: currency %s before %s", apperrors.ErrRateNotFound, currencyID, asOf.UTC().Format(time.RFC3339))
}
