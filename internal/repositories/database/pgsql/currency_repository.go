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

const currencyColumns = `currency_id::text AS currency_id, name, created_at`

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) *PgxCurrencyRepository {
	return &PgxCurrencyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

func toDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyID: m.CurrencyID,
		Name:       m.Name,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *PgxCurrencyRepository) findOne(ctx context.Context, where string, arg any) (*domain.Currency, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+currencyColumns+` FROM currencies WHERE `+where, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query currency: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Currency])
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrCurrencyNotFound
		}
		return nil, fmt.Errorf("failed to scan currency: %w", err)
	}
	c := toDomainCurrency(m)
	return &c, nil
}

// FindCurrencyByName retrieves a currency by its case-sensitive name.
func (r *PgxCurrencyRepository) FindCurrencyByName(ctx context.Context, name string) (*domain.Currency, error) {
	return r.findOne(ctx, `name = $1`, name)
}

// FindCurrencyByID retrieves a currency by its identifier.
func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	return r.findOne(ctx, `currency_id = $1`, currencyID)
}

// ListCurrencies retrieves all currencies ordered by name.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+currencyColumns+` FROM currencies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Currency])
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}
	out := make([]domain.Currency, len(ms))
	for i := range ms {
		out[i] = toDomainCurrency(ms[i])
	}
	return out, nil
}

// SaveCurrencyIfAbsent inserts the currency unless its name is taken and
// returns the stored row either way.
func (r *PgxCurrencyRepository) SaveCurrencyIfAbsent(ctx context.Context, currency domain.Currency) (*domain.Currency, error) {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO currencies (currency_id, name, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO NOTHING;
	`, currency.CurrencyID, currency.Name, currency.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save currency %s: %w", currency.Name, err)
	}
	return r.FindCurrencyByName(ctx, currency.Name)
}
