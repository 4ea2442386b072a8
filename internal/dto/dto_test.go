package dto_test

import (
	"testing"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/SscSPs/settlement_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCreatePaymentIntentRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreatePaymentIntentRequest
		wantErr bool
	}{
		{"valid", dto.CreatePaymentIntentRequest{BusinessID: "b", Amount: decimal.RequireFromString("125.50"), Currency: domain.CurrencySAR}, false},
		{"zero amount", dto.CreatePaymentIntentRequest{BusinessID: "b", Amount: decimal.Zero, Currency: domain.CurrencySAR}, true},
		{"negative amount", dto.CreatePaymentIntentRequest{BusinessID: "b", Amount: decimal.NewFromInt(-1), Currency: domain.CurrencyUSD}, true},
		{"unsupported currency", dto.CreatePaymentIntentRequest{BusinessID: "b", Amount: decimal.NewFromInt(1), Currency: "GBP"}, true},
		{"trailing zeros beyond minor unit", dto.CreatePaymentIntentRequest{BusinessID: "b", Amount: decimal.RequireFromString("10.000"), Currency: domain.CurrencySAR}, false},
		{"sub-cent amount", dto.CreatePaymentIntentRequest{BusinessID: "b", Amount: decimal.RequireFromString("10.005"), Currency: domain.CurrencySAR}, true},
		{"rounds to zero", dto.CreatePaymentIntentRequest{BusinessID: "b", Amount: decimal.RequireFromString("0.00001"), Currency: domain.CurrencySAR}, true},
		{"largest accepted", dto.CreatePaymentIntentRequest{BusinessID: "b", Amount: decimal.RequireFromString("999999999999999.99"), Currency: domain.CurrencyEUR}, false},
		{"overflows money column", dto.CreatePaymentIntentRequest{BusinessID: "b", Amount: decimal.RequireFromString("1e20"), Currency: domain.CurrencySAR}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateDebtRequestRequest_Validate(t *testing.T) {
	ok := dto.CreateDebtRequestRequest{BusinessID: "b", CustomerID: "c", Amount: decimal.NewFromInt(50), Currency: domain.CurrencyUSD}
	assert.NoError(t, ok.Validate())

	for _, amount := range []string{"0", "10.005", "0.00001", "1000000000000000"} {
		bad := ok
		bad.Amount = decimal.RequireFromString(amount)
		assert.ErrorIs(t, bad.Validate(), apperrors.ErrValidation, "amount %s", amount)
	}
}

func TestToBalanceSummaryResponsesNeverNil(t *testing.T) {
	res := dto.ToBalanceSummaryResponses(nil)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}
