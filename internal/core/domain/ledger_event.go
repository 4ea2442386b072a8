package domain

import "time"

// LedgerAction names an audited action against a ledger entry.
type LedgerAction string

const (
	ActionCustomerConfirmed     LedgerAction = "customer_confirmed"
	ActionCustomerConfirmedDebt LedgerAction = "customer_confirmed_debt"
	ActionAutoFinalized         LedgerAction = "auto_finalized"
)

// LedgerEvent is an append-only audit row. ActorUserID is nil for automated actions.
type LedgerEvent struct {
	ID            string         `json:"id"`
	LedgerEntryID string         `json:"ledgerEntryId"`
	ActorUserID   *string        `json:"actorUserId,omitempty"`
	Action        LedgerAction   `json:"action"`
	Metadata      map[string]any `json:"metadata"`
	CreatedAt     time.Time      `json:"createdAt"`
}
