package domain

import (
	"time"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Account holds one user's balance in one currency.
type Account struct {
	AccountID  string          `json:"accountID"`  // Primary Key (UUID)
	UserID     string          `json:"userID"`     // Owner, issued by the identity provider
	CurrencyID string          `json:"currencyID"` // FK -> currencies.currency_id
	Balance    decimal.Decimal `json:"balance"`    // Never negative
	CreatedAt  time.Time       `json:"createdAt"`
}

// IsOwnedBy reports whether userID owns the account.
func (a *Account) IsOwnedBy(userID string) bool {
	return a.UserID != "" && a.UserID == userID
}

// Debit decreases the balance by amount. The balance is left untouched when
// the debit would make it negative.
func (a *Account) Debit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return apperrors.ErrInvalidAmount
	}
	if a.Balance.LessThan(amount) {
		return apperrors.ErrInsufficientBalance
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

// Credit increases the balance by amount. There is no upper bound.
func (a *Account) Credit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return apperrors.ErrInvalidAmount
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}
