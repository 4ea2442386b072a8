package utils

import (
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount with the minor-unit precision of its currency.
// Example: 125.5 SAR returns "125.50", -40 USD returns "-40.00".
func FormatAmount(amount decimal.Decimal, currency domain.Currency) string {
	return amount.StringFixed(currency.Precision())
}
