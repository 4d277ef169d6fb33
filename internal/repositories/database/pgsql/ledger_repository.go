package pgsql

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portsrepo "github.com/SscSPs/money_transfer_service/internal/core/ports/repositories"
	"github.com/SscSPs/money_transfer_service/internal/middleware"
	"github.com/SscSPs/money_transfer_service/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transferColumns = `t.transfer_id::text AS transfer_id, t.sender_account_id::text AS sender_account_id,
	t.receiver_account_id::text AS receiver_account_id, t.amount, t.converted_amount, t.created_at`

type PgxLedgerRepository struct {
	BaseRepository
	accountRepo *PgxAccountRepository
}

// newPgxLedgerRepository creates the transfer store and ledger unit runner.
func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo *PgxAccountRepository) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}, accountRepo: accountRepo}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

func toDomainTransfer(m models.Transfer) domain.Transfer {
	return domain.Transfer{
		TransferID:        m.TransferID,
		SenderAccountID:   m.SenderAccountID,
		ReceiverAccountID: m.ReceiverAccountID,
		Amount:            m.Amount,
		ConvertedAmount:   m.ConvertedAmount,
		CreatedAt:         m.CreatedAt,
	}
}

// WithLockedAccounts runs fn inside one transaction holding row locks on the
// accounts, then writes the balance deltas and the transfer before a single commit.
func (r *PgxLedgerRepository) WithLockedAccounts(ctx context.Context, accountIDs []string, fn portsrepo.LedgerUnitFunc) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := r.Rollback(ctx, tx); rbErr != nil {
				middleware.GetLoggerFromCtx(ctx).Error("Failed to roll back ledger unit", slog.String("error", rbErr.Error()))
			}
		}
	}()

	ids := append([]string(nil), accountIDs...)
	sort.Strings(ids)

	locked, err := r.accountRepo.findAccountsByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return err
	}

	mutation, err := fn(ctx, locked)
	if err != nil {
		return err
	}
	if mutation != nil {
		for id := range mutation.BalanceChanges {
			if _, ok := locked[id]; !ok {
				return fmt.Errorf("ledger unit changed account %s without locking it", id)
			}
		}
		if err = updateAccountBalancesInTx(ctx, tx, mutation.BalanceChanges); err != nil {
			return err
		}
		if mutation.Transfer.TransferID != "" {
			if err = insertTransferInTx(ctx, tx, mutation.Transfer); err != nil {
				return err
			}
		}
	}

	return r.Commit(ctx, tx)
}

// updateAccountBalancesInTx applies signed deltas in one batch. The WHERE
// guard makes a row that would go negative match nothing.
func updateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal) error {
	query := `
		UPDATE accounts
		SET balance = balance + $2
		WHERE account_id = $1 AND balance + $2 >= 0;
	`

	batch := &pgx.Batch{}
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID, delta := range balanceChanges {
		if !delta.IsZero() { // Only queue updates if there's a change
			batch.Queue(query, accountID, delta)
			accountIDs = append(accountIDs, accountID)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update balance for account %s: %w", accountIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 && batchErr == nil {
			batchErr = fmt.Errorf("%w: account %s", apperrors.ErrInsufficientBalance, accountIDs[i])
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", err)
	}
	return batchErr
}

func insertTransferInTx(ctx context.Context, tx pgx.Tx, t domain.Transfer) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO transfers (transfer_id, sender_account_id, receiver_account_id, amount, converted_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`, t.TransferID, t.SenderAccountID, t.ReceiverAccountID, t.Amount, t.ConvertedAmount, t.CreatedAt)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return fmt.Errorf("%w: transfer %s", apperrors.ErrDuplicate, t.TransferID)
		case pgCheckViolation:
			return fmt.Errorf("%w: transfer %s violates a table constraint", apperrors.ErrValidation, t.TransferID)
		}
		return fmt.Errorf("failed to insert transfer %s: %w", t.TransferID, err)
	}
	return nil
}

// FindTransferByID retrieves a transfer by its identifier.
func (r *PgxLedgerRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+transferColumns+` FROM transfers t WHERE t.transfer_id = $1`, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transfer %s: %w", transferID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Transfer])
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrTransferNotFound
		}
		return nil, fmt.Errorf("failed to find transfer %s: %w", transferID, err)
	}
	t := toDomainTransfer(m)
	return &t, nil
}

// ListTransfersBySenderUser lists transfers sent from userID's accounts,
// newest first, using keyset pagination on (created_at, transfer_id).
func (r *PgxLedgerRepository) ListTransfersBySenderUser(ctx context.Context, userID string, limit int, after *portsrepo.TransferCursor) ([]domain.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers t
		JOIN accounts a ON a.account_id = t.sender_account_id
		WHERE a.user_id = $1
	`
	args := []any{userID}
	if after != nil {
		query += ` AND (t.created_at, t.transfer_id) < ($2, $3::uuid)`
		args = append(args, after.CreatedAt, after.TransferID)
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY t.created_at DESC, t.transfer_id DESC LIMIT $%d`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers for user %s: %w", userID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transfer])
	if err != nil {
		return nil, fmt.Errorf("failed to scan transfers for user %s: %w", userID, err)
	}
	out := make([]domain.Transfer, len(ms))
	for i := range ms {
		out[i] = toDomainTransfer(ms[i])
	}
	return out, nil
}
