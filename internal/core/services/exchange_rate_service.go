package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portsrepo "github.com/SscSPs/money_transfer_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_transfer_service/internal/core/ports/services"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	defaultRateListLimit = 100
	maxRateListLimit     = 1000
)

type exchangeRateService struct {
	BaseService
	rateRepo        portsrepo.ExchangeRateRepositoryFacade
	currencyService portssvc.CurrencyWriterSvc
	validate        *validator.Validate
}

// NewExchangeRateService creates the rate ingestion and listing service.
// Currencies named by ingested quotes are created on first sight.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyService portssvc.CurrencyWriterSvc) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{
		rateRepo:        rateRepo,
		currencyService: currencyService,
		validate:        validator.New(validator.WithRequiredStructEnabled()),
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// IngestRate stores the quote unless its (quote, base, date) triple is
// already known. Rates are stored at domain.MoneyScale.
func (s *exchangeRateService) IngestRate(ctx context.Context, quote domain.RateQuote) (bool, error) {
	quote.QuoteCurrency = strings.TrimSpace(quote.QuoteCurrency)
	quote.BaseCurrency = strings.TrimSpace(quote.BaseCurrency)

	if err := s.validate.StructCtx(ctx, quote); err != nil {
		s.LogWarn(ctx, err, "Rejected rate quote", quoteAttrs(quote)...)
		return false, apperrors.NewValidationError(fmt.Sprintf("invalid rate quote: %v", err))
	}
	if quote.EffectiveDate.IsZero() {
		return false, apperrors.NewValidationError("invalid rate quote: effective date is required")
	}

	rate := quote.Rate.Round(domain.MoneyScale)
	if !rate.IsPositive() {
		s.LogWarn(ctx, apperrors.ErrValidation, "Rejected rate quote", quoteAttrs(quote)...)
		return false, apperrors.NewValidationError(fmt.Sprintf("rate must be positive at %d decimal places", domain.MoneyScale))
	}

	quoteCurrency, err := s.currencyService.EnsureCurrency(ctx, quote.QuoteCurrency)
	if err != nil {
		return false, err
	}
	baseCurrency, err := s.currencyService.EnsureCurrency(ctx, quote.BaseCurrency)
	if err != nil {
		return false, err
	}

	stored, err := s.rateRepo.SaveExchangeRateIfAbsent(ctx, domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		CurrencyID:     quoteCurrency.CurrencyID,
		BaseCurrencyID: baseCurrency.CurrencyID,
		Rate:           rate,
		DateEffective:  quote.EffectiveDate.UTC(),
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save exchange rate", quoteAttrs(quote)...)
		return false, fmt.Errorf("failed to save exchange rate in service: %w", err)
	}

	if stored {
		s.LogDebug(ctx, "Exchange rate ingested", quoteAttrs(quote)...)
	} else {
		s.LogDebug(ctx, "Exchange rate already present, skipped", quoteAttrs(quote)...)
	}
	return stored, nil
}

// IngestRates ingests each quote on its own. Invalid quotes are counted as
// rejected and the batch continues; a storage failure aborts it.
func (s *exchangeRateService) IngestRates(ctx context.Context, quotes []domain.RateQuote) (portssvc.IngestSummary, error) {
	summary := portssvc.IngestSummary{Received: len(quotes)}
	for _, quote := range quotes {
		stored, err := s.IngestRate(ctx, quote)
		if errors.Is(err, apperrors.ErrValidation) {
			summary.Rejected++
			continue
		}
		if err != nil {
			return summary, err
		}
		if stored {
			summary.Ingested++
		} else {
			summary.Skipped++
		}
	}
	return summary, nil
}

func (s *exchangeRateService) ListRates(ctx context.Context, filter domain.RateFilter) ([]domain.ExchangeRate, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultRateListLimit
	}
	if filter.Limit > maxRateListLimit {
		filter.Limit = maxRateListLimit
	}

	rates, err := s.rateRepo.ListExchangeRates(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list exchange rates")
		return nil, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}

func quoteAttrs(q domain.RateQuote) []any {
	return []any{
		slog.String("quote_currency", q.QuoteCurrency),
		slog.String("base_currency", q.BaseCurrency),
		slog.String("rate", q.Rate.String()),
		slog.Time("effective_date", q.EffectiveDate),
	}
}
