package dto

import (
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerEntryResponse mirrors domain.LedgerEntry.
type LedgerEntryResponse struct {
	ID                  string             `json:"id"`
	BusinessID          string             `json:"businessId"`
	CustomerID          string             `json:"customerId"`
	PaymentIntentID     *string            `json:"paymentIntentId,omitempty"`
	DebtRequestID       *string            `json:"debtRequestId,omitempty"`
	Amount              decimal.Decimal    `json:"amount"`
	Currency            domain.Currency    `json:"currency"`
	EntryType           domain.EntryType   `json:"entryType"`
	Status              domain.EntryStatus `json:"status"`
	FinalizesAt         *time.Time         `json:"finalizesAt,omitempty"`
	MerchantConfirmedAt *time.Time         `json:"merchantConfirmedAt,omitempty"`
	CustomerConfirmedAt *time.Time         `json:"customerConfirmedAt,omitempty"`
	Reference           *string            `json:"reference,omitempty"`
	CreatedAt           time.Time          `json:"createdAt"`
	FinalizedAt         *time.Time         `json:"finalizedAt,omitempty"`
}

// LedgerEventResponse mirrors domain.LedgerEvent.
type LedgerEventResponse struct {
	ID          string              `json:"id"`
	ActorUserID *string             `json:"actorUserId,omitempty"`
	Action      domain.LedgerAction `json:"action"`
	Metadata    map[string]any      `json:"metadata"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// LedgerEntryDetailResponse is an entry with its audit trail.
type LedgerEntryDetailResponse struct {
	Entry  LedgerEntryResponse   `json:"entry"`
	Events []LedgerEventResponse `json:"events"`
}

// ListLedgerEntriesParams defines query parameters for listing ledger entries.
type ListLedgerEntriesParams struct {
	BusinessID string  `form:"businessId" binding:"required"`
	CustomerID *string `form:"customerId"`
	Status     *string `form:"status" binding:"omitempty,oneof=pending finalized completed disputed cancelled"`
	PageToken  *string `form:"pageToken"`
	Limit      int     `form:"limit,default=20" binding:"min=1,max=100"`
	Offset     int     `form:"offset,default=0" binding:"min=0"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its response DTO
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:                  e.ID,
		BusinessID:          e.BusinessID,
		CustomerID:          e.CustomerID,
		PaymentIntentID:     e.PaymentIntentID,
		DebtRequestID:       e.DebtRequestID,
		Amount:              e.Amount,
		Currency:            e.Currency,
		EntryType:           e.EntryType,
		Status:              e.Status,
		FinalizesAt:         e.FinalizesAt,
		MerchantConfirmedAt: e.MerchantConfirmedAt,
		CustomerConfirmedAt: e.CustomerConfirmedAt,
		Reference:           e.Reference,
		CreatedAt:           e.CreatedAt,
		FinalizedAt:         e.FinalizedAt,
	}
}

// ToListLedgerEntryResponse converts a slice of domain.LedgerEntry to response DTOs
func ToListLedgerEntryResponse(entries []domain.LedgerEntry) []LedgerEntryResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToLedgerEntryResponse(&entries[i])
	}
	return res
}

// ToLedgerEventResponses converts audit events to response DTOs
func ToLedgerEventResponses(events []domain.LedgerEvent) []LedgerEventResponse {
	res := make([]LedgerEventResponse, len(events))
	for i, ev := range events {
		res[i] = LedgerEventResponse{
			ID:          ev.ID,
			ActorUserID: ev.ActorUserID,
			Action:      ev.Action,
			Metadata:    ev.Metadata,
			CreatedAt:   ev.CreatedAt,
		}
	}
	return res
}
