package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IntentStatus is the lifecycle state of a payment intent.
type IntentStatus string

const (
	IntentStatusCreated IntentStatus = "created"
	IntentStatusUsed    IntentStatus = "used"
	IntentStatusExpired IntentStatus = "expired"
)

// CanTransitionTo reports whether an intent may move from s to next.
func (s IntentStatus) CanTransitionTo(next IntentStatus) bool {
	switch s {
	case IntentStatusCreated:
		return next == IntentStatusUsed || next == IntentStatusExpired
	case IntentStatusUsed, IntentStatusExpired:
		return false
	default:
		return false
	}
}

// PaymentIntent is a short-lived, merchant-issued request for payment, usually shown as a QR code.
type PaymentIntent struct {
	ID               string          `json:"id"`
	BusinessID       string          `json:"businessId"`
	CreatedByStaffID string          `json:"createdByStaffId"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         Currency        `json:"currency"`
	InvoiceReference *string         `json:"invoiceReference,omitempty"`
	ExpiresAt        time.Time       `json:"expiresAt"`
	Status           IntentStatus    `json:"status"`
	LedgerEntryID    *string         `json:"ledgerEntryId,omitempty"`
	UsedAt           *time.Time      `json:"usedAt,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// IsExpired reports whether the confirmation window has lapsed at now.
func (p PaymentIntent) IsExpired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
