package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DebtRequestStatus is the lifecycle state of a debt request.
type DebtRequestStatus string

const (
	DebtRequestRequested DebtRequestStatus = "requested"
	DebtRequestApproved  DebtRequestStatus = "approved"
	DebtRequestRejected  DebtRequestStatus = "rejected"
)

// CanTransitionTo reports whether a debt request may move from s to next.
func (s DebtRequestStatus) CanTransitionTo(next DebtRequestStatus) bool {
	switch s {
	case DebtRequestRequested:
		return next == DebtRequestApproved || next == DebtRequestRejected
	case DebtRequestApproved, DebtRequestRejected:
		return false
	default:
		return false
	}
}

// ParseDebtRequestStatus validates a status filter.
func ParseDebtRequestStatus(v string) (DebtRequestStatus, error) {
	switch s := DebtRequestStatus(v); s {
	case DebtRequestRequested, DebtRequestApproved, DebtRequestRejected:
		return s, nil
	}
	return "", apperrors.NewValidationError(fmt.Sprintf("unknown debt request status %q", v))
}

// DebtRequest is a merchant-issued claim that becomes a debt entry once the customer accepts it.
type DebtRequest struct {
	ID                  string            `json:"id"`
	BusinessID          string            `json:"businessId"`
	CustomerID          string            `json:"customerId"`
	CreatedByStaffID    string            `json:"createdByStaffId"`
	Amount              decimal.Decimal   `json:"amount"`
	Currency            Currency          `json:"currency"`
	CreditLimitSnapshot *decimal.Decimal  `json:"creditLimitSnapshot,omitempty"`
	DueDate             *time.Time        `json:"dueDate,omitempty"`
	Notes               *string           `json:"notes,omitempty"`
	Status              DebtRequestStatus `json:"status"`
	MerchantConfirmedAt *time.Time        `json:"merchantConfirmedAt,omitempty"`
	CustomerConfirmedAt *time.Time        `json:"customerConfirmedAt,omitempty"`
	RejectionReason     *string           `json:"rejectionReason,omitempty"`
	LedgerEntryID       *string           `json:"ledgerEntryId,omitempty"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

// DebtRequestFilter narrows a debt request listing.
type DebtRequestFilter struct {
	BusinessID string
	CustomerID *string
	Status     *DebtRequestStatus
	Limit      int
	Offset     int
}
