package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/settlement_ledger/internal/models"
	"github.com/SscSPs/settlement_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const paymentIntentColumns = `id, business_id, created_by_staff_id, amount, currency, invoice_reference,
	expires_at, status, ledger_entry_id, used_at, created_at`

// PgxPaymentIntentRepository persists payment intents.
type PgxPaymentIntentRepository struct {
	BaseRepository
}

func newPgxPaymentIntentRepository(pool Querier) *PgxPaymentIntentRepository {
	return &PgxPaymentIntentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentIntentRepositoryFacade = (*PgxPaymentIntentRepository)(nil)

func scanPaymentIntent(row rowScanner) (*domain.PaymentIntent, error) {
	var m models.PaymentIntent
	err := row.Scan(
		&m.ID, &m.BusinessID, &m.CreatedByStaffID, &m.Amount, &m.Currency, &m.InvoiceReference,
		&m.ExpiresAt, &m.Status, &m.LedgerEntryID, &m.UsedAt, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	intent := mapping.ToDomainPaymentIntent(m)
	return &intent, nil
}

func (r *PgxPaymentIntentRepository) SaveIntent(ctx context.Context, intent domain.PaymentIntent) error {
	m := mapping.ToModelPaymentIntent(intent)
	query := `
		INSERT INTO payment_intents (` + paymentIntentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ID, m.BusinessID, m.CreatedByStaffID, m.Amount, m.Currency, m.InvoiceReference,
		m.ExpiresAt, m.Status, m.LedgerEntryID, m.UsedAt, m.CreatedAt,
	)
	return translateError(err, "failed to save payment intent "+m.ID)
}

func (r *PgxPaymentIntentRepository) FindIntentByID(ctx context.Context, intentID string) (*domain.PaymentIntent, error) {
	query := `SELECT ` + paymentIntentColumns + ` FROM payment_intents WHERE id = $1;`
	intent, err := scanPaymentIntent(r.Pool.QueryRow(ctx, query, intentID))
	if err != nil {
		return nil, translateError(err, "failed to find payment intent "+intentID)
	}
	return intent, nil
}

// FindIntentByIDForUpdate loads the intent and locks its row until tx ends.
func (r *PgxPaymentIntentRepository) FindIntentByIDForUpdate(ctx context.Context, tx pgx.Tx, intentID string) (*domain.PaymentIntent, error) {
	query := `SELECT ` + paymentIntentColumns + ` FROM payment_intents WHERE id = $1 FOR UPDATE;`
	intent, err := scanPaymentIntent(tx.QueryRow(ctx, query, intentID))
	if err != nil {
		return nil, translateError(err, "failed to lock payment intent "+intentID)
	}
	return intent, nil
}

func (r *PgxPaymentIntentRepository) MarkIntentUsed(ctx context.Context, tx pgx.Tx, intentID, ledgerEntryID string, usedAt time.Time) error {
	query := `
		UPDATE payment_intents
		SET status = 'used', ledger_entry_id = $2, used_at = $3
		WHERE id = $1 AND status = 'created';
	`
	cmdTag, err := tx.Exec(ctx, query, intentID, ledgerEntryID, usedAt)
	if err != nil {
		return fmt.Errorf("failed to mark payment intent %s used: %w", intentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("payment intent %s is no longer open: %w", intentID, apperrors.ErrInvalidStatus)
	}
	return nil
}

func (r *PgxPaymentIntentRepository) MarkIntentExpired(ctx context.Context, tx pgx.Tx, intentID string) error {
	query := `UPDATE payment_intents SET status = 'expired' WHERE id = $1 AND status = 'created';`
	cmdTag, err := tx.Exec(ctx, query, intentID)
	if err != nil {
		return fmt.Errorf("failed to mark payment intent %s expired: %w", intentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("payment intent %s is no longer open: %w", intentID, apperrors.ErrInvalidStatus)
	}
	return nil
}
