package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// EntryType tells which workflow produced a ledger entry.
type EntryType string

const (
	EntryTypePayment EntryType = "payment"
	EntryTypeDebt    EntryType = "debt"
)

// SignedAmount applies the sign convention for the entry type to an amount.
// Payments increase the customer's credit, debts always debit the customer.
func (t EntryType) SignedAmount(amount decimal.Decimal) decimal.Decimal {
	switch t {
	case EntryTypeDebt:
		return amount.Abs().Neg()
	default:
		return amount.Abs()
	}
}

// EntryStatus is the lifecycle state of a ledger entry.
type EntryStatus string

const (
	EntryStatusPending   EntryStatus = "pending"
	EntryStatusFinalized EntryStatus = "finalized"
	EntryStatusCompleted EntryStatus = "completed"
	// EntryStatusDisputed and EntryStatusCancelled are reserved; no workflow writes them yet.
	EntryStatusDisputed  EntryStatus = "disputed"
	EntryStatusCancelled EntryStatus = "cancelled"
)

// CanTransitionTo reports whether moving from s to next is a legal transition.
// Only pending entries can move, and every other state is terminal.
func (s EntryStatus) CanTransitionTo(next EntryStatus) bool {
	switch s {
	case EntryStatusPending:
		switch next {
		case EntryStatusFinalized, EntryStatusCompleted, EntryStatusDisputed, EntryStatusCancelled:
			return true
		}
		return false
	case EntryStatusFinalized, EntryStatusCompleted, EntryStatusDisputed, EntryStatusCancelled:
		return false
	default:
		return false
	}
}

// IsSettled reports whether the entry counts towards balances.
func (s EntryStatus) IsSettled() bool {
	return s == EntryStatusFinalized || s == EntryStatusCompleted
}

// IsTerminal reports whether no further transition is defined.
func (s EntryStatus) IsTerminal() bool {
	return s != EntryStatusPending
}

// ParseEntryStatus validates a status coming from a query string.
func ParseEntryStatus(v string) (EntryStatus, error) {
	switch s := EntryStatus(v); s {
	case EntryStatusPending, EntryStatusFinalized, EntryStatusCompleted, EntryStatusDisputed, EntryStatusCancelled:
		return s, nil
	}
	return "", apperrors.NewValidationError(fmt.Sprintf("unknown entry status %q", v))
}

// LedgerEntry is a signed monetary record scoped to one business/customer pair.
// Once it leaves pending, amount, currency and scope never change.
type LedgerEntry struct {
	ID                  string          `json:"id"`
	BusinessID          string          `json:"businessId"`
	CustomerID          string          `json:"customerId"`
	PaymentIntentID     *string         `json:"paymentIntentId,omitempty"`
	DebtRequestID       *string         `json:"debtRequestId,omitempty"`
	Amount              decimal.Decimal `json:"amount"`
	Currency            Currency        `json:"currency"`
	EntryType           EntryType       `json:"entryType"`
	Status              EntryStatus     `json:"status"`
	FinalizesAt         *time.Time      `json:"finalizesAt,omitempty"`
	MerchantConfirmedAt *time.Time      `json:"merchantConfirmedAt,omitempty"`
	CustomerConfirmedAt *time.Time      `json:"customerConfirmedAt,omitempty"`
	Reference           *string         `json:"reference,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	FinalizedAt         *time.Time      `json:"finalizedAt,omitempty"`
}

// IsConsented is true only when both merchant and customer confirmed the entry.
func (e LedgerEntry) IsConsented() bool {
	return e.MerchantConfirmedAt != nil && e.CustomerConfirmedAt != nil
}

// IsDue reports whether the finalization window has elapsed for a pending entry.
func (e LedgerEntry) IsDue(asOf time.Time) bool {
	return e.Status == EntryStatusPending && e.FinalizesAt != nil && !e.FinalizesAt.After(asOf)
}

// NewPendingEntryParams carries what a workflow knows when it records consent.
type NewPendingEntryParams struct {
	ID                  string
	BusinessID          string
	CustomerID          string
	PaymentIntentID     *string
	DebtRequestID       *string
	Amount              decimal.Decimal
	Currency            Currency
	EntryType           EntryType
	MerchantConfirmedAt time.Time
	Reference           *string
	Now                 time.Time
	Window              time.Duration
}

// NewPendingEntry builds a consented, pending entry with the sign forced by its type.
func NewPendingEntry(p NewPendingEntryParams) LedgerEntry {
	return LedgerEntry{
		ID:                  p.ID,
		BusinessID:          p.BusinessID,
		CustomerID:          p.CustomerID,
		PaymentIntentID:     p.PaymentIntentID,
		DebtRequestID:       p.DebtRequestID,
		Amount:              p.EntryType.SignedAmount(p.Amount),
		Currency:            p.Currency,
		EntryType:           p.EntryType,
		Status:              EntryStatusPending,
		FinalizesAt:         timePtr(p.Now.Add(p.Window)),
		MerchantConfirmedAt: timePtr(p.MerchantConfirmedAt),
		CustomerConfirmedAt: timePtr(p.Now),
		Reference:           p.Reference,
		CreatedAt:           p.Now,
	}
}

// LedgerEntryFilter narrows a ledger listing. CustomerID nil means the whole business.
type LedgerEntryFilter struct {
	BusinessID string
	CustomerID *string
	Status     *EntryStatus
	// StartAfter resumes a newest-first listing after the given row. Offset is ignored when set.
	StartAfter *EntryCursor
	Limit      int
	Offset     int
}

// EntryCursor identifies a row in the (created_at DESC, id DESC) listing order.
type EntryCursor struct {
	CreatedAt time.Time
	ID        string
}
