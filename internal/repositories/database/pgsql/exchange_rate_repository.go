package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portsrepo "github.com/SscSPs/money_transfer_service/internal/core/ports/repositories"
	"github.com/SscSPs/money_transfer_service/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const exchangeRateColumns = `exchange_rate_id::text AS exchange_rate_id, currency_id::text AS currency_id,
	base_currency_id::text AS base_currency_id, rate, date_effective, created_at`

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rate data.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

func toDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID: m.ExchangeRateID,
		CurrencyID:     m.CurrencyID,
		BaseCurrencyID: m.BaseCurrencyID,
		Rate:           m.Rate,
		DateEffective:  m.DateEffective,
		CreatedAt:      m.CreatedAt,
	}
}

// SaveExchangeRateIfAbsent appends a rate; an existing (currency, base, date)
// triple makes it a no-op that reports false.
func (r *PgxExchangeRateRepository) SaveExchangeRateIfAbsent(ctx context.Context, rate domain.ExchangeRate) (bool, error) {
	query := `
		INSERT INTO exchange_rates (exchange_rate_id, currency_id, base_currency_id, rate, date_effective, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (currency_id, base_currency_id, date_effective) DO NOTHING;
	`
	tag, err := r.Pool.Exec(ctx, query,
		rate.ExchangeRateID,
		rate.CurrencyID,
		rate.BaseCurrencyID,
		rate.Rate,
		rate.DateEffective,
		rate.CreatedAt,
	)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return false, fmt.Errorf("%w: rate references an unknown currency", apperrors.ErrCurrencyNotFound)
		}
		return false, fmt.Errorf("failed to save exchange rate: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PgxExchangeRateRepository) latestBefore(ctx context.Context, column, currencyID string, asOf time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE ` + column + ` = $1 AND date_effective < $2
		ORDER BY date_effective DESC, created_at DESC
		LIMIT 1;
	`
	rows, err := r.Pool.Query(ctx, query, currencyID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rate: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.ExchangeRate])
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrRateNotFound
		}
		return nil, fmt.Errorf("failed to scan exchange rate: %w", err)
	}
	rate := toDomainExchangeRate(m)
	return &rate, nil
}

// FindLatestQuoteBefore returns the newest rate quoting currencyID effective before asOf.
func (r *PgxExchangeRateRepository) FindLatestQuoteBefore(ctx context.Context, currencyID string, asOf time.Time) (*domain.ExchangeRate, error) {
	return r.latestBefore(ctx, "currency_id", currencyID, asOf)
}

// FindLatestBaseBefore returns the newest rate based on currencyID effective before asOf.
func (r *PgxExchangeRateRepository) FindLatestBaseBefore(ctx context.Context, currencyID string, asOf time.Time) (*domain.ExchangeRate, error) {
	return r.latestBefore(ctx, "base_currency_id", currencyID, asOf)
}

// ListExchangeRates lists rates newest first, narrowed by the filter.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, filter domain.RateFilter) ([]domain.ExchangeRate, error) {
	conditions := []string{"TRUE"}
	args := []any{}
	if filter.CurrencyID != nil {
		args = append(args, *filter.CurrencyID)
		conditions = append(conditions, fmt.Sprintf("currency_id = $%d", len(args)))
	}
	if filter.BaseCurrencyID != nil {
		args = append(args, *filter.BaseCurrencyID)
		conditions = append(conditions, fmt.Sprintf("base_currency_id = $%d", len(args)))
	}
	if filter.Before != nil {
		args = append(args, *filter.Before)
		conditions = append(conditions, fmt.Sprintf("date_effective < $%d", len(args)))
	}
	args = append(args, filter.Limit)

	query := fmt.Sprintf(`
		SELECT %s
		FROM exchange_rates
		WHERE %s
		ORDER BY date_effective DESC, created_at DESC
		LIMIT $%d;
	`, exchangeRateColumns, strings.Join(conditions, " AND "), len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ExchangeRate])
	if err != nil {
		if pgErrorCode(err) == pgInvalidTextRepr {
			return []domain.ExchangeRate{}, nil
		}
		return nil, fmt.Errorf("failed to scan exchange rates: %w", err)
	}
	out := make([]domain.ExchangeRate, len(ms))
	for i := range ms {
		out[i] = toDomainExchangeRate(ms[i])
	}
	return out, nil
}
