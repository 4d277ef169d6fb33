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
	"github.com/google/uuid"
)

// maxCurrencyNameLength matches currencies.name VARCHAR(32).
const maxCurrencyNameLength = 32

type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a currency service backed by the given repository.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) EnsureCurrency(ctx context.Context, name string) (*domain.Currency, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxCurrencyNameLength {
		return nil, apperrors.NewValidationError(fmt.Sprintf("currency name must be 1-%d characters", maxCurrencyNameLength))
	}

	existing, err := s.currencyRepo.FindCurrencyByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up currency", slog.String("currency_name", name))
		return nil, fmt.Errorf("failed to look up currency %s: %w", name, err)
	}

	// Two ingestions may race here; the repository keeps whichever row landed first.
	stored, err := s.currencyRepo.SaveCurrencyIfAbsent(ctx, domain.Currency{
		CurrencyID: uuid.NewString(),
		Name:       name,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create currency", slog.String("currency_name", name))
		return nil, fmt.Errorf("failed to create currency %s: %w", name, err)
	}

	s.LogDebug(ctx, "Currency ensured", slog.String("currency_id", stored.CurrencyID), slog.String("currency_name", name))
	return stored, nil
}

func (s *currencyService) GetCurrencyByName(ctx context.Context, name string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrCurrencyNotFound, name)
		}
		s.LogError(ctx, err, "Failed to get currency by name", slog.String("currency_name", name))
		return nil, fmt.Errorf("failed to get currency by name in service: %w", err)
	}
	return currency, nil
}

func (s *currencyService) GetCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrCurrencyNotFound, currencyID)
		}
		s.LogError(ctx, err, "Failed to get currency by id", slog.String("currency_id", currencyID))
		return nil, fmt.Errorf("failed to get currency by id in service: %w", err)
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	// Return empty slice if no currencies found, not nil
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}
