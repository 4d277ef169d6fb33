package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portsrepo "github.com/SscSPs/money_transfer_service/internal/core/ports/repositories"
	"github.com/SscSPs/money_transfer_service/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id::text AS account_id, user_id, currency_id::text AS currency_id, balance, created_at`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// Helper to convert models.Account from DB to domain.Account
func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:  m.AccountID,
		UserID:     m.UserID,
		CurrencyID: m.CurrencyID,
		Balance:    m.Balance,
		CreatedAt:  m.CreatedAt,
	}
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, err
	}
	out := make([]domain.Account, len(ms))
	for i := range ms {
		out[i] = toDomainAccount(ms[i])
	}
	return out, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (account_id, user_id, currency_id, balance, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.UserID,
		account.CurrencyID,
		account.Balance,
		account.CreatedAt,
	)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return fmt.Errorf("%w (user %s)", apperrors.ErrDuplicateAccount, account.UserID)
		case pgForeignKeyViolation, pgInvalidTextRepr:
			return fmt.Errorf("%w: %s", apperrors.ErrCurrencyNotFound, account.CurrencyID)
		case pgCheckViolation:
			return apperrors.ErrInvalidAmount
		}
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = $1`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	acc := toDomainAccount(m)
	return &acc, nil
}

// FindAccountByUserAndCurrency retrieves the account a user holds in a currency.
func (r *PgxAccountRepository) FindAccountByUserAndCurrency(ctx context.Context, userID, currencyID string) (*domain.Account, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE user_id = $1 AND currency_id = $2`, userID, currencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account for user %s: %w", userID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account for user %s: %w", userID, err)
	}
	acc := toDomainAccount(m)
	return &acc, nil
}

// ListAccountsByUser retrieves all accounts owned by a user, oldest first.
func (r *PgxAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE user_id = $1 ORDER BY created_at, account_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for user %s: %w", userID, err)
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts for user %s: %w", userID, err)
	}
	return accounts, nil
}

// findAccountsByIDsForUpdate locks the given rows in ascending ID order.
// Must be called within a transaction. Missing IDs are absent from the result.
func (r *PgxAccountRepository) findAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (portsrepo.LockedAccounts, error) {
	locked := make(portsrepo.LockedAccounts, len(accountIDs))
	if len(accountIDs) == 0 {
		return locked, nil
	}

	// ORDER BY fixes the lock acquisition order so opposite-direction
	// transfers between the same pair cannot deadlock.
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1::uuid[])
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs for update: %w", err)
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan locked account rows: %w", err)
	}
	for _, acc := range accounts {
		locked[acc.AccountID] = acc
	}
	return locked, nil
}
