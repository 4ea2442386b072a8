package pgsql

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/settlement_ledger/internal/models"
	"github.com/SscSPs/settlement_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const ledgerEntryColumns = `id, business_id, customer_id, payment_intent_id, debt_request_id, amount, currency,
	entry_type, status, finalizes_at, merchant_confirmed_at, customer_confirmed_at, reference, created_at, finalized_at`

// PgxLedgerRepository stores ledger entries and their audit trail.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool Querier) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

func scanLedgerEntry(row rowScanner) (domain.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.ID, &m.BusinessID, &m.CustomerID, &m.PaymentIntentID, &m.DebtRequestID, &m.Amount, &m.Currency,
		&m.EntryType, &m.Status, &m.FinalizesAt, &m.MerchantConfirmedAt, &m.CustomerConfirmedAt, &m.Reference,
		&m.CreatedAt, &m.FinalizedAt,
	)
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	return mapping.ToDomainLedgerEntry(m), nil
}

func collectLedgerEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	defer rows.Close()
	entries := []domain.LedgerEntry{}
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}
	return entries, nil
}

// InsertEntry persists a new entry inside tx.
func (r *PgxLedgerRepository) InsertEntry(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		INSERT INTO ledger_entries (` + ledgerEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		m.ID, m.BusinessID, m.CustomerID, m.PaymentIntentID, m.DebtRequestID, m.Amount, m.Currency,
		m.EntryType, m.Status, m.FinalizesAt, m.MerchantConfirmedAt, m.CustomerConfirmedAt, m.Reference,
		m.CreatedAt, m.FinalizedAt,
	)
	return translateError(err, "failed to insert ledger entry "+m.ID)
}

// FindEntryByID retrieves a single entry.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE id = $1;`
	entry, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		return nil, translateError(err, "failed to find ledger entry "+entryID)
	}
	return &entry, nil
}

// ListEntries retrieves entries for a business, newest first.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, filter domain.LedgerEntryFilter) ([]domain.LedgerEntry, error) {
	conditions := []string{"business_id = $1"}
	args := []any{filter.BusinessID}

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	offset := filter.Offset
	if filter.StartAfter != nil {
		args = append(args, filter.StartAfter.CreatedAt, filter.StartAfter.ID)
		conditions = append(conditions, fmt.Sprintf("(created_at, id) < ($%d, $%d)", len(args)-1, len(args)))
		offset = 0
	}
	args = append(args, filter.Limit, offset)

	query := fmt.Sprintf(`
		SELECT %s FROM ledger_entries
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d;
	`, ledgerEntryColumns, strings.Join(conditions, " AND "), len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying ledger entries for business %s: %w", filter.BusinessID, err)
	}
	return collectLedgerEntries(rows)
}

// LockDueEntries selects due pending entries, oldest first, and locks them until tx ends.
func (r *PgxLedgerRepository) LockDueEntries(ctx context.Context, tx pgx.Tx, asOf time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE status = 'pending' AND finalizes_at <= $1
		ORDER BY finalizes_at ASC, id ASC
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("error locking due ledger entries: %w", err)
	}
	return collectLedgerEntries(rows)
}

// FinalizeEntries promotes the given entries, re-asserting that they are still pending and due.
// Only status and finalized_at are written.
func (r *PgxLedgerRepository) FinalizeEntries(ctx context.Context, tx pgx.Tx, entryIDs []string, asOf time.Time) ([]domain.LedgerEntry, error) {
	if len(entryIDs) == 0 {
		return []domain.LedgerEntry{}, nil
	}
	query := `
		UPDATE ledger_entries
		SET status = 'finalized', finalized_at = $2
		WHERE id = ANY($1) AND status = 'pending' AND finalizes_at <= $2
		RETURNING ` + ledgerEntryColumns + `;
	`
	rows, err := tx.Query(ctx, query, entryIDs, asOf)
	if err != nil {
		return nil, fmt.Errorf("error finalizing ledger entries: %w", err)
	}
	entries, err := collectLedgerEntries(rows)
	if err != nil {
		return nil, err
	}

	// RETURNING has no defined order; keep the oldest-first audit order.
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].FinalizesAt, entries[j].FinalizesAt
		if !a.Equal(*b) {
			return a.Before(*b)
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}
