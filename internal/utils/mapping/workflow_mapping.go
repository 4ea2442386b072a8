package mapping

import (
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/SscSPs/settlement_ledger/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelPaymentIntent converts a domain PaymentIntent to a model PaymentIntent
func ToModelPaymentIntent(d domain.PaymentIntent) models.PaymentIntent {
	return models.PaymentIntent{
		ID:               d.ID,
		BusinessID:       d.BusinessID,
		CreatedByStaffID: d.CreatedByStaffID,
		Amount:           d.Amount,
		Currency:         string(d.Currency),
		InvoiceReference: d.InvoiceReference,
		ExpiresAt:        d.ExpiresAt,
		Status:           string(d.Status),
		LedgerEntryID:    d.LedgerEntryID,
		UsedAt:           d.UsedAt,
		CreatedAt:        d.CreatedAt,
	}
}

// ToDomainPaymentIntent converts a model PaymentIntent to a domain PaymentIntent
func ToDomainPaymentIntent(m models.PaymentIntent) domain.PaymentIntent {
	return domain.PaymentIntent{
		ID:               m.ID,
		BusinessID:       m.BusinessID,
		CreatedByStaffID: m.CreatedByStaffID,
		Amount:           m.Amount,
		Currency:         domain.Currency(m.Currency),
		InvoiceReference: m.InvoiceReference,
		ExpiresAt:        m.ExpiresAt,
		Status:           domain.IntentStatus(m.Status),
		LedgerEntryID:    m.LedgerEntryID,
		UsedAt:           m.UsedAt,
		CreatedAt:        m.CreatedAt,
	}
}

// ToModelDebtRequest converts a domain DebtRequest to a model DebtRequest
func ToModelDebtRequest(d domain.DebtRequest) models.DebtRequest {
	snapshot := decimal.NullDecimal{}
	if d.CreditLimitSnapshot != nil {
		snapshot = decimal.NewNullDecimal(*d.CreditLimitSnapshot)
	}
	return models.DebtRequest{
		ID:                  d.ID,
		BusinessID:          d.BusinessID,
		CustomerID:          d.CustomerID,
		CreatedByStaffID:    d.CreatedByStaffID,
		Amount:              d.Amount,
		Currency:            string(d.Currency),
		CreditLimitSnapshot: snapshot,
		DueDate:             d.DueDate,
		Notes:               d.Notes,
		Status:              string(d.Status),
		MerchantConfirmedAt: d.MerchantConfirmedAt,
		CustomerConfirmedAt: d.CustomerConfirmedAt,
		RejectionReason:     d.RejectionReason,
		LedgerEntryID:       d.LedgerEntryID,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

// ToDomainDebtRequest converts a model DebtRequest to a domain DebtRequest
func ToDomainDebtRequest(m models.DebtRequest) domain.DebtRequest {
	var snapshot *decimal.Decimal
	if m.CreditLimitSnapshot.Valid {
		v := m.CreditLimitSnapshot.Decimal
		snapshot = &v
	}
	return domain.DebtRequest{
		ID:                  m.ID,
		BusinessID:          m.BusinessID,
		CustomerID:          m.CustomerID,
		CreatedByStaffID:    m.CreatedByStaffID,
		Amount:              m.Amount,
		Currency:            domain.Currency(m.Currency),
		CreditLimitSnapshot: snapshot,
		DueDate:             m.DueDate,
		Notes:               m.Notes,
		Status:              domain.DebtRequestStatus(m.Status),
		MerchantConfirmedAt: m.MerchantConfirmedAt,
		CustomerConfirmedAt: m.CustomerConfirmedAt,
		RejectionReason:     m.RejectionReason,
		LedgerEntryID:       m.LedgerEntryID,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
