package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentIntentRequest defines the data a POS needs to open a payment intent.
type CreatePaymentIntentRequest struct {
	BusinessID       string          `json:"businessId" binding:"required"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         domain.Currency `json:"currency" binding:"required,currency"`
	InvoiceReference *string         `json:"invoiceReference" binding:"omitempty,max=255"`
}

// Validate checks the rules struct tags cannot express.
func (r CreatePaymentIntentRequest) Validate() error {
	if !r.Currency.IsSupported() {
		return apperrors.NewValidationError(fmt.Sprintf("unsupported currency %q", r.Currency))
	}
	return r.Currency.ValidateAmount(r.Amount)
}

// CreatePaymentIntentResponse is returned once the intent is stored.
type CreatePaymentIntentResponse struct {
	IntentID  string    `json:"intentId"`
	QRURL     string    `json:"qrUrl"`
	QRCodePNG string    `json:"qrCodePng,omitempty"` // base64 PNG
	ExpiresAt time.Time `json:"expiresAt"`
}

// ConfirmPaymentIntentRequest is sent by the customer after scanning the QR code.
type ConfirmPaymentIntentRequest struct {
	IntentID   string  `json:"intentId" binding:"required"`
	BusinessID *string `json:"businessId"`
}

// PaymentIntentResponse mirrors domain.PaymentIntent.
type PaymentIntentResponse struct {
	ID               string              `json:"id"`
	BusinessID       string              `json:"businessId"`
	CreatedByStaffID string              `json:"createdByStaffId"`
	Amount           decimal.Decimal     `json:"amount"`
	Currency         domain.Currency     `json:"currency"`
	InvoiceReference *string             `json:"invoiceReference,omitempty"`
	Status           domain.IntentStatus `json:"status"`
	ExpiresAt        time.Time           `json:"expiresAt"`
	LedgerEntryID    *string             `json:"ledgerEntryId,omitempty"`
	UsedAt           *time.Time          `json:"usedAt,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
}

// ToPaymentIntentResponse converts a domain.PaymentIntent to its response DTO
func ToPaymentIntentResponse(p *domain.PaymentIntent) PaymentIntentResponse {
	return PaymentIntentResponse{
		ID:               p.ID,
		BusinessID:       p.BusinessID,
		CreatedByStaffID: p.CreatedByStaffID,
		Amount:           p.Amount,
		Currency:         p.Currency,
		InvoiceReference: p.InvoiceReference,
		Status:           p.Status,
		ExpiresAt:        p.ExpiresAt,
		LedgerEntryID:    p.LedgerEntryID,
		UsedAt:           p.UsedAt,
		CreatedAt:        p.CreatedAt,
	}
}
