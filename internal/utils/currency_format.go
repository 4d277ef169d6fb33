package utils

import (
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount at the ledger scale.
// Example: 12.3 returns "12.3000"
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(domain.MoneyScale)
}

