// Package models holds the row shapes of the PostgreSQL tables. Column names
// in the db tags are what pgx.RowToStructByName matches on.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is a row of currencies.
type Currency struct {
	CurrencyID string    `db:"currency_id"`
	Name       string    `db:"name"`
	CreatedAt  time.Time `db:"created_at"`
}

// Account is a row of accounts. Balance is NUMERIC(18,4), never negative.
type Account struct {
	AccountID  string          `db:"account_id"`
	UserID     string          `db:"user_id"`
	CurrencyID string          `db:"currency_id"`
	Balance    decimal.Decimal `db:"balance"`
	CreatedAt  time.Time       `db:"created_at"`
}

// ExchangeRate is a row of exchange_rates: one unit of base_currency_id is
// worth rate units of currency_id from date_effective on.
type ExchangeRate struct {
	ExchangeRateID string          `db:"exchange_rate_id"`
	CurrencyID     string          `db:"currency_id"`
	BaseCurrencyID string          `db:"base_currency_id"`
	Rate           decimal.Decimal `db:"rate"`
	DateEffective  time.Time       `db:"date_effective"`
	CreatedAt      time.Time       `db:"created_at"`
}

// Transfer is a row of transfers. Rows are only ever inserted.
type Transfer struct {
	TransferID        string          `db:"transfer_id"`
	SenderAccountID   string          `db:"sender_account_id"`
	ReceiverAccountID string          `db:"receiver_account_id"`
	Amount            decimal.Decimal `db:"amount"`
	ConvertedAmount   decimal.Decimal `db:"converted_amount"`
	CreatedAt         time.Time       `db:"created_at"`
}
