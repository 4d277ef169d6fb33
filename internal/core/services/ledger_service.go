package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portsrepo "github.com/SscSPs/money_transfer_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_transfer_service/internal/core/ports/services"
	"github.com/SscSPs/money_transfer_service/internal/utils/accounting"
)

type ledgerService struct {
	BaseService
	txManager portsrepo.TransactionManager
}

// NewLedgerService creates the ledger over a transaction manager that can lock accounts.
func NewLedgerService(txManager portsrepo.TransactionManager) portssvc.LedgerSvc {
	return &ledgerService{txManager: txManager}
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

// Post applies the posting against the locked account rows. The balance
// checks made here are authoritative; anything the caller checked before
// taking the locks may be stale.
func (s *ledgerService) Post(ctx context.Context, posting domain.Posting) (*domain.Transfer, error) {
	changes, err := accounting.BalanceChanges(posting)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	var posted *domain.Transfer
	ids := []string{posting.SenderAccountID, posting.ReceiverAccountID}

	err = s.txManager.WithLockedAccounts(ctx, ids, func(ctx context.Context, locked portsrepo.LockedAccounts) (*portsrepo.LedgerMutation, error) {
		sender, ok := locked[posting.SenderAccountID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, posting.SenderAccountID)
		}
		receiver, ok := locked[posting.ReceiverAccountID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, posting.ReceiverAccountID)
		}

		// Debit and Credit run on copies; the repository persists the deltas.
		if err := sender.Debit(posting.Debit); err != nil {
			return nil, err
		}
		if err := receiver.Credit(posting.Credit); err != nil {
			return nil, err
		}

		transfer := domain.Transfer{
			TransferID:        posting.TransferID,
			SenderAccountID:   posting.SenderAccountID,
			ReceiverAccountID: posting.ReceiverAccountID,
			Amount:            posting.Debit,
			ConvertedAmount:   posting.Credit,
			CreatedAt:         posting.At,
		}
		posted = &transfer

		return &portsrepo.LedgerMutation{BalanceChanges: changes, Transfer: transfer}, nil
	})
	if err != nil {
		s.LogDebug(ctx, "Ledger unit aborted",
			slog.String("transfer_id", posting.TransferID),
			slog.String("error", err.Error()))
		return nil, err
	}

	return posted, nil
}
