package accounting

import (
	"fmt"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceChanges returns the signed balance delta a posting applies to each
// account: the debit leaves the sender, the credit lands on the receiver.
// The same function feeds every storage backend so they agree on signs.
func BalanceChanges(p domain.Posting) (map[string]decimal.Decimal, error) {
	if p.SenderAccountID == p.ReceiverAccountID {
		return nil, fmt.Errorf("posting %s: sender and receiver are the same account", p.TransferID)
	}
	if p.Debit.IsNegative() || p.Credit.IsNegative() {
		return nil, fmt.Errorf("posting %s: debit and credit must be non-negative", p.TransferID)
	}
	return map[string]decimal.Decimal{
		p.SenderAccountID:   p.Debit.Neg(),
		p.ReceiverAccountID: p.Credit,
	}, nil
}

// ApplyDelta adds delta to balance and rejects results below zero.
func ApplyDelta(balance, delta decimal.Decimal) (decimal.Decimal, error) {
	next := balance.Add(delta)
	if next.IsNegative() {
		return balance, fmt.Errorf("balance %s cannot absorb delta %s", balance, delta)
	}
	return next, nil
}
