package services

import (
	"context"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/SscSPs/settlement_ledger/internal/dto"
)

// LedgerReaderSvc reads entries in the caller's scope
type LedgerReaderSvc interface {
	ListEntries(ctx context.Context, callerID string, params dto.ListLedgerEntriesParams) ([]domain.LedgerEntry, error)

	// GetEntry returns an entry with its audit trail.
	GetEntry(ctx context.Context, callerID, entryID string) (*domain.LedgerEntry, []domain.LedgerEvent, error)
}

// BalanceSvc is the read-only balance aggregator
type BalanceSvc interface {
	Summarize(ctx context.Context, callerID, businessID string, customerID *string) ([]domain.BalanceSummary, error)
	SummarizeAcrossBusinesses(ctx context.Context, callerID string) (summaries []domain.BalanceSummary, totals []domain.BalanceSummary, err error)
}

// FinalizationSvc promotes due pending entries. It is the only writer of pending -> finalized.
type FinalizationSvc interface {
	RunFinalization(ctx context.Context) (*domain.FinalizationResult, error)
}
