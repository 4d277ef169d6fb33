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
	"github.com/SscSPs/money_transfer_service/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultTransferPageSize = 20
	maxTransferPageSize     = 100
)

// TransferServiceOption is a function that configures a transferService
type TransferServiceOption func(*transferService)

// WithClock overrides the time source used to price and stamp transfers.
func WithClock(now func() time.Time) TransferServiceOption {
	return func(s *transferService) {
		s.now = now
	}
}

type transferService struct {
	BaseService
	accountReader  portsrepo.AccountReader
	transferReader portsrepo.TransferReader
	converter      portssvc.ConverterSvc
	ledger         portssvc.LedgerSvc
	now            func() time.Time
}

// NewTransferService creates the transfer engine.
func NewTransferService(
	accountReader portsrepo.AccountReader,
	transferReader portsrepo.TransferReader,
	converter portssvc.ConverterSvc,
	ledger portssvc.LedgerSvc,
	options ...TransferServiceOption,
) portssvc.TransferSvcFacade {
	s := &transferService{
		accountReader:  accountReader,
		transferReader: transferReader,
		converter:      converter,
		ledger:         ledger,
		now:            time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// ExecuteTransfer checks the request in a fixed order against a snapshot of
// both accounts, prices it at a single instant, then hands it to the ledger,
// which re-checks the balance under lock. A rejected transfer changes nothing.
func (s *transferService) ExecuteTransfer(ctx context.Context, userID, senderAccountID, receiverAccountID string, amount decimal.Decimal) (*domain.Transfer, error) {
	logAttrs := []any{
		slog.String("user_id", userID),
		slog.String("sender_account_id", senderAccountID),
		slog.String("receiver_account_id", receiverAccountID),
		slog.String("amount", amount.String()),
	}

	sender, err := s.accountReader.FindAccountByID(ctx, senderAccountID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to load sender account", logAttrs...)
		return nil, fmt.Errorf("failed to load sender account: %w", err)
	}
	// An unknown sender is not among the requester's accounts either.
	if sender == nil || !sender.IsOwnedBy(userID) {
		return nil, s.reject(ctx, apperrors.ErrNotOwner, logAttrs)
	}

	if senderAccountID == receiverAccountID {
		return nil, s.reject(ctx, apperrors.ErrSameAccount, logAttrs)
	}

	receiver, err := s.accountReader.FindAccountByID(ctx, receiverAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, s.reject(ctx, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, receiverAccountID), logAttrs)
		}
		s.LogError(ctx, err, "Failed to load receiver account", logAttrs...)
		return nil, fmt.Errorf("failed to load receiver account: %w", err)
	}

	if !domain.IsValidTransferAmount(amount) {
		return nil, s.reject(ctx, apperrors.ErrInvalidAmount, logAttrs)
	}

	if sender.Balance.LessThan(amount) {
		return nil, s.reject(ctx, apperrors.ErrInsufficientBalance, logAttrs)
	}

	now := s.now().UTC()
	conversion, err := s.converter.Convert(ctx, sender.CurrencyID, receiver.CurrencyID, amount, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrRateNotFound) {
			return nil, s.reject(ctx, err, logAttrs)
		}
		s.LogError(ctx, err, "Failed to price transfer", logAttrs...)
		return nil, fmt.Errorf("failed to price transfer: %w", err)
	}

	transfer, err := s.ledger.Post(ctx, domain.Posting{
		TransferID:        uuid.NewString(),
		SenderAccountID:   sender.AccountID,
		ReceiverAccountID: receiver.AccountID,
		Debit:             amount,
		Credit:            conversion.ConvertedAmount,
		At:                now,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientBalance) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, s.reject(ctx, err, logAttrs)
		}
		s.LogError(ctx, err, "Failed to post transfer", logAttrs...)
		return nil, fmt.Errorf("failed to post transfer: %w", err)
	}

	s.LogInfo(ctx, "Transfer completed", append(logAttrs,
		slog.String("transfer_id", transfer.TransferID),
		slog.String("converted_amount", transfer.ConvertedAmount.String()))...)
	return transfer, nil
}

func (s *transferService) reject(ctx context.Context, err error, logAttrs []any) error {
	s.LogWarn(ctx, err, "Transfer rejected", logAttrs...)
	return err
}

// GetTransfer returns the transfer if userID owns either of its accounts.
func (s *transferService) GetTransfer(ctx context.Context, userID, transferID string) (*domain.Transfer, error) {
	transfer, err := s.transferReader.FindTransferByID(ctx, transferID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrTransferNotFound, transferID)
		}
		s.LogError(ctx, err, "Failed to get transfer", slog.String("transfer_id", transferID))
		return nil, fmt.Errorf("failed to get transfer in service: %w", err)
	}

	for _, accountID := range []string{transfer.SenderAccountID, transfer.ReceiverAccountID} {
		account, err := s.accountReader.FindAccountByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			s.LogError(ctx, err, "Failed to load transfer account", slog.String("account_id", accountID))
			return nil, fmt.Errorf("failed to load transfer account: %w", err)
		}
		if account.IsOwnedBy(userID) {
			return transfer, nil
		}
	}
	return nil, apperrors.ErrNotOwner
}

// ListTransfersForUser pages through transfers sent from userID's accounts,
// newest first. The returned token is nil on the last page.
func (s *transferService) ListTransfersForUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transfer, *string, error) {
	if limit <= 0 {
		limit = defaultTransferPageSize
	}
	if limit > maxTransferPageSize {
		limit = maxTransferPageSize
	}

	var after *portsrepo.TransferCursor
	if nextToken != nil && *nextToken != "" {
		createdAt, transferID, err := pagination.DecodeCursorToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError(err.Error())
		}
		after = &portsrepo.TransferCursor{CreatedAt: createdAt, TransferID: transferID}
	}

	// Fetch one extra row to learn whether another page exists.
	transfers, err := s.transferReader.ListTransfersBySenderUser(ctx, userID, limit+1, after)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transfers", slog.String("user_id", userID))
		return nil, nil, fmt.Errorf("failed to list transfers in service: %w", err)
	}

	var next *string
	if len(transfers) > limit {
		transfers = transfers[:limit]
		last := transfers[limit-1]
		token := pagination.EncodeCursorToken(last.CreatedAt, last.TransferID)
		next = &token
	}
	if transfers == nil {
		transfers = []domain.Transfer{}
	}
	return transfers, next, nil
}
