package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/SscSPs/settlement_ledger/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		ID:                  d.ID,
		BusinessID:          d.BusinessID,
		CustomerID:          d.CustomerID,
		PaymentIntentID:     d.PaymentIntentID,
		DebtRequestID:       d.DebtRequestID,
		Amount:              d.Amount,
		Currency:            string(d.Currency),
		EntryType:           string(d.EntryType),
		Status:              string(d.Status),
		FinalizesAt:         d.FinalizesAt,
		MerchantConfirmedAt: d.MerchantConfirmedAt,
		CustomerConfirmedAt: d.CustomerConfirmedAt,
		Reference:           d.Reference,
		CreatedAt:           d.CreatedAt,
		FinalizedAt:         d.FinalizedAt,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		ID:                  m.ID,
		BusinessID:          m.BusinessID,
		CustomerID:          m.CustomerID,
		PaymentIntentID:     m.PaymentIntentID,
		DebtRequestID:       m.DebtRequestID,
		Amount:              m.Amount,
		Currency:            domain.Currency(m.Currency),
		EntryType:           domain.EntryType(m.EntryType),
		Status:              domain.EntryStatus(m.Status),
		FinalizesAt:         m.FinalizesAt,
		MerchantConfirmedAt: m.MerchantConfirmedAt,
		CustomerConfirmedAt: m.CustomerConfirmedAt,
		Reference:           m.Reference,
		CreatedAt:           m.CreatedAt,
		FinalizedAt:         m.FinalizedAt,
	}
}

// ToModelLedgerEvent converts a domain LedgerEvent to a model LedgerEvent, encoding its metadata.
func ToModelLedgerEvent(d domain.LedgerEvent) (models.LedgerEvent, error) {
	metadata := d.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return models.LedgerEvent{}, fmt.Errorf("failed to encode metadata for event %s: %w", d.ID, err)
	}
	return models.LedgerEvent{
		ID:            d.ID,
		LedgerEntryID: d.LedgerEntryID,
		ActorUserID:   d.ActorUserID,
		Action:        string(d.Action),
		Metadata:      raw,
		CreatedAt:     d.CreatedAt,
	}, nil
}

// ToDomainLedgerEvent converts a model LedgerEvent to a domain LedgerEvent, decoding its metadata.
func ToDomainLedgerEvent(m models.LedgerEvent) (domain.LedgerEvent, error) {
	metadata := map[string]any{}
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &metadata); err != nil {
			return domain.LedgerEvent{}, fmt.Errorf("failed to decode metadata for event %s: %w", m.ID, err)
		}
	}
	return domain.LedgerEvent{
		ID:            m.ID,
		LedgerEntryID: m.LedgerEntryID,
		ActorUserID:   m.ActorUserID,
		Action:        domain.LedgerAction(m.Action),
		Metadata:      metadata,
		CreatedAt:     m.CreatedAt,
	}, nil
}
