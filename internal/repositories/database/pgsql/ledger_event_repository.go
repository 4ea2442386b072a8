package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/SscSPs/settlement_ledger/internal/models"
	"github.com/SscSPs/settlement_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const insertLedgerEventQuery = `
	INSERT INTO ledger_events (id, ledger_entry_id, actor_user_id, action, metadata, created_at)
	VALUES ($1, $2, $3, $4, $5, $6);
`

// AppendEvent writes one audit event inside the caller's transaction.
func (r *PgxLedgerRepository) AppendEvent(ctx context.Context, tx pgx.Tx, event domain.LedgerEvent) error {
	m, err := mapping.ToModelLedgerEvent(event)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, insertLedgerEventQuery, m.ID, m.LedgerEntryID, m.ActorUserID, m.Action, m.Metadata, m.CreatedAt)
	return translateError(err, "failed to append ledger event for entry "+m.LedgerEntryID)
}

// AppendEvents writes many audit events in one round trip.
func (r *PgxLedgerRepository) AppendEvents(ctx context.Context, tx pgx.Tx, events []domain.LedgerEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, event := range events {
		m, err := mapping.ToModelLedgerEvent(event)
		if err != nil {
			return err
		}
		batch.Queue(insertLedgerEventQuery, m.ID, m.LedgerEntryID, m.ActorUserID, m.Action, m.Metadata, m.CreatedAt)
	}

	br := tx.SendBatch(ctx, batch)
	for _, event := range events {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return translateError(err, "failed to append ledger event for entry "+event.LedgerEntryID)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close ledger event batch: %w", err)
	}
	return nil
}

// ListEventsByEntry retrieves the audit trail of an entry, oldest first.
func (r *PgxLedgerRepository) ListEventsByEntry(ctx context.Context, entryID string) ([]domain.LedgerEvent, error) {
	query := `
		SELECT id, ledger_entry_id, actor_user_id, action, metadata, created_at
		FROM ledger_events
		WHERE ledger_entry_id = $1
		ORDER BY created_at ASC, id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("error querying ledger events for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	events := []domain.LedgerEvent{}
	for rows.Next() {
		var m models.LedgerEvent
		if err := rows.Scan(&m.ID, &m.LedgerEntryID, &m.ActorUserID, &m.Action, &m.Metadata, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger event row: %w", err)
		}
		event, err := mapping.ToDomainLedgerEvent(m)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger event rows: %w", err)
	}
	return events, nil
}
