package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentIntent mirrors a payment_intents row.
type PaymentIntent struct {
	ID               string
	BusinessID       string
	CreatedByStaffID string
	Amount           decimal.Decimal
	Currency         string
	InvoiceReference *string
	ExpiresAt        time.Time
	Status           string
	LedgerEntryID    *string
	UsedAt           *time.Time
	CreatedAt        time.Time
}

// DebtRequest mirrors a debt_requests row.
type DebtRequest struct {
	ID                  string
	BusinessID          string
	CustomerID          string
	CreatedByStaffID    string
	Amount              decimal.Decimal
	Currency            string
	CreditLimitSnapshot decimal.NullDecimal
	DueDate             *time.Time
	Notes               *string
	Status              string
	MerchantConfirmedAt *time.Time
	CustomerConfirmedAt *time.Time
	RejectionReason     *string
	LedgerEntryID       *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
