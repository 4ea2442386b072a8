package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry mirrors a ledger_entries row.
type LedgerEntry struct {
	ID                  string
	BusinessID          string
	CustomerID          string
	PaymentIntentID     *string
	DebtRequestID       *string
	Amount              decimal.Decimal
	Currency            string
	EntryType           string
	Status              string
	FinalizesAt         *time.Time
	MerchantConfirmedAt *time.Time
	CustomerConfirmedAt *time.Time
	Reference           *string
	CreatedAt           time.Time
	FinalizedAt         *time.Time
}

// LedgerEvent mirrors a ledger_events row. Metadata is the raw JSONB document.
type LedgerEvent struct {
	ID            string
	LedgerEntryID string
	ActorUserID   *string
	Action        string
	Metadata      []byte
	CreatedAt     time.Time
}
