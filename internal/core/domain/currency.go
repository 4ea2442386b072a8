package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// maxAmount bounds amounts well inside the NUMERIC(19,4) money columns.
var maxAmount = decimal.New(1, 15)

// Currency is one of the ISO 4217 codes the ledger settles in.
type Currency string

const (
	CurrencySAR Currency = "SAR"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// SupportedCurrencies lists every currency an entry, intent or debt request may carry.
var SupportedCurrencies = []Currency{CurrencySAR, CurrencyUSD, CurrencyEUR}

// IsSupported reports whether c is part of the supported set.
func (c Currency) IsSupported() bool {
	switch c {
	case CurrencySAR, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}

// Precision is the number of minor-unit digits amounts in c are shown with.
func (c Currency) Precision() int32 {
	return 2
}

// ValidateAmount accepts strictly positive amounts below 10^15 with no more
// fractional digits than the currency's minor unit.
func (c Currency) ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.NewValidationError("amount must be greater than zero")
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return apperrors.NewValidationError(fmt.Sprintf("amount must be less than %s", maxAmount.String()))
	}
	if !amount.Equal(amount.Truncate(c.Precision())) {
		return apperrors.NewValidationError(fmt.Sprintf("amount has more than %d decimal places", c.Precision()))
	}
	return nil
}

// ParseCurrency normalises a code and rejects anything outside the supported set.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if !c.IsSupported() {
		return "", apperrors.NewValidationError(fmt.Sprintf("unsupported currency %q", code))
	}
	return c, nil
}
