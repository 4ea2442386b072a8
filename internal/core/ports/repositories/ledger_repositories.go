package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LedgerReader defines read operations for ledger entries
type LedgerReader interface {
	// FindEntryByID retrieves a single entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntries retrieves entries for a business, newest first.
	ListEntries(ctx context.Context, filter domain.LedgerEntryFilter) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines transactional write operations for ledger entries
type LedgerWriter interface {
	// InsertEntry persists a new pending entry. A second entry for the same
	// payment intent or debt request fails with apperrors.ErrAlreadyProcessed.
	InsertEntry(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error

	// LockDueEntries selects pending entries whose window ended at or before asOf,
	// oldest first, holding a row lock until tx ends.
	LockDueEntries(ctx context.Context, tx pgx.Tx, asOf time.Time) ([]domain.LedgerEntry, error)

	// FinalizeEntries promotes the given entries to finalized, re-checking that they are
	// still pending and due. It returns the rows actually updated.
	FinalizeEntries(ctx context.Context, tx pgx.Tx, entryIDs []string, asOf time.Time) ([]domain.LedgerEntry, error)
}

// LedgerEventReader defines read operations for the audit trail
type LedgerEventReader interface {
	// ListEventsByEntry retrieves the audit trail of an entry, oldest first.
	ListEventsByEntry(ctx context.Context, entryID string) ([]domain.LedgerEvent, error)
}

// LedgerEventWriter appends audit events. Events are never updated or deleted.
type LedgerEventWriter interface {
	AppendEvent(ctx context.Context, tx pgx.Tx, event domain.LedgerEvent) error
	AppendEvents(ctx context.Context, tx pgx.Tx, events []domain.LedgerEvent) error
}

// LedgerRepositoryFacade combines entry and audit access
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
	LedgerEventReader
	LedgerEventWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
