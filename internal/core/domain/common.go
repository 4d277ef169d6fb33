package domain

import (
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits every stored amount, balance
// and rate carries. It matches the NUMERIC(18,4) columns.
const MoneyScale int32 = 4

// HasMoneyScale reports whether d can be stored without losing digits.
func HasMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}

// IsValidTransferAmount reports whether amount is strictly positive and fits MoneyScale.
func IsValidTransferAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && HasMoneyScale(amount)
}
