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
	"github.com/SscSPs/money_transfer_service/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type accountService struct {
	BaseService
	accountRepo    portsrepo.AccountRepositoryFacade
	currencyReader portssvc.CurrencyReaderSvc
}

// NewAccountService creates an account service. Currency names in requests
// are resolved through currencyReader.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, currencyReader portssvc.CurrencyReaderSvc) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:    accountRepo,
		currencyReader: currencyReader,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}
	if req.InitialBalance.IsNegative() || !domain.HasMoneyScale(req.InitialBalance) {
		s.LogWarn(ctx, apperrors.ErrInvalidAmount, "Rejected account creation",
			slog.String("user_id", userID),
			slog.String("balance", req.InitialBalance.String()))
		return nil, apperrors.ErrInvalidAmount
	}

	currency, err := s.currencyReader.GetCurrencyByName(ctx, req.CurrencyName)
	if err != nil {
		return nil, err
	}

	account := domain.Account{
		AccountID:  uuid.NewString(),
		UserID:     userID,
		CurrencyID: currency.CurrencyID,
		Balance:    req.InitialBalance,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save account",
			slog.String("user_id", userID),
			slog.String("currency_id", currency.CurrencyID))
		return nil, fmt.Errorf("failed to create account in service: %w", err)
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("user_id", userID),
		slog.String("currency", currency.Name))
	return &account, nil
}

func (s *accountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
		}
		s.LogError(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to get account in service: %w", err)
	}
	return account, nil
}

func (s *accountService) GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

func (s *accountService) ListAccountsForUser(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list accounts in service: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}
