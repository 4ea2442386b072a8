package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/settlement_ledger/internal/models"
	"github.com/SscSPs/settlement_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const debtRequestColumns = `id, business_id, customer_id, created_by_staff_id, amount, currency,
	credit_limit_snapshot, due_date, notes, status, merchant_confirmed_at, customer_confirmed_at,
	rejection_reason, ledger_entry_id, created_at, updated_at`

// PgxDebtRequestRepository persists debt requests.
type PgxDebtRequestRepository struct {
	BaseRepository
}

func newPgxDebtRequestRepository(pool Querier) *PgxDebtRequestRepository {
	return &PgxDebtRequestRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DebtRequestRepositoryFacade = (*PgxDebtRequestRepository)(nil)

func scanDebtRequest(row rowScanner) (*domain.DebtRequest, error) {
	var m models.DebtRequest
	err := row.Scan(
		&m.ID, &m.BusinessID, &m.CustomerID, &m.CreatedByStaffID, &m.Amount, &m.Currency,
		&m.CreditLimitSnapshot, &m.DueDate, &m.Notes, &m.Status, &m.MerchantConfirmedAt, &m.CustomerConfirmedAt,
		&m.RejectionReason, &m.LedgerEntryID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	req := mapping.ToDomainDebtRequest(m)
	return &req, nil
}

// guardedTransition maps "no row returned" from a status-guarded UPDATE to ErrInvalidStatus.
func guardedTransition(err error, debtRequestID string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("debt request %s is not awaiting a decision: %w", debtRequestID, apperrors.ErrInvalidStatus)
	}
	return translateError(err, "failed to update debt request "+debtRequestID)
}

func (r *PgxDebtRequestRepository) SaveDebtRequest(ctx context.Context, req domain.DebtRequest) error {
	m := mapping.ToModelDebtRequest(req)
	query := `
		INSERT INTO debt_requests (` + debtRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ID, m.BusinessID, m.CustomerID, m.CreatedByStaffID, m.Amount, m.Currency,
		m.CreditLimitSnapshot, m.DueDate, m.Notes, m.Status, m.MerchantConfirmedAt, m.CustomerConfirmedAt,
		m.RejectionReason, m.LedgerEntryID, m.CreatedAt, m.UpdatedAt,
	)
	return translateError(err, "failed to save debt request "+m.ID)
}

func (r *PgxDebtRequestRepository) FindDebtRequestByID(ctx context.Context, debtRequestID string) (*domain.DebtRequest, error) {
	query := `SELECT ` + debtRequestColumns + ` FROM debt_requests WHERE id = $1;`
	req, err := scanDebtRequest(r.Pool.QueryRow(ctx, query, debtRequestID))
	if err != nil {
		return nil, translateError(err, "failed to find debt request "+debtRequestID)
	}
	return req, nil
}

func (r *PgxDebtRequestRepository) FindDebtRequestByIDForUpdate(ctx context.Context, tx pgx.Tx, debtRequestID string) (*domain.DebtRequest, error) {
	query := `SELECT ` + debtRequestColumns + ` FROM debt_requests WHERE id = $1 FOR UPDATE;`
	req, err := scanDebtRequest(tx.QueryRow(ctx, query, debtRequestID))
	if err != nil {
		return nil, translateError(err, "failed to lock debt request "+debtRequestID)
	}
	return req, nil
}

func (r *PgxDebtRequestRepository) ListDebtRequests(ctx context.Context, filter domain.DebtRequestFilter) ([]domain.DebtRequest, error) {
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
	args = append(args, filter.Limit, filter.Offset)

	query := fmt.Sprintf(`
		SELECT %s FROM debt_requests
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d;
	`, debtRequestColumns, strings.Join(conditions, " AND "), len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying debt requests for business %s: %w", filter.BusinessID, err)
	}
	defer rows.Close()

	requests := []domain.DebtRequest{}
	for rows.Next() {
		req, err := scanDebtRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt request row: %w", err)
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debt request rows: %w", err)
	}
	return requests, nil
}

func (r *PgxDebtRequestRepository) ApproveDebtRequest(ctx context.Context, tx pgx.Tx, debtRequestID, ledgerEntryID string, confirmedAt time.Time) (*domain.DebtRequest, error) {
	query := `
		UPDATE debt_requests
		SET status = 'approved', customer_confirmed_at = $2, ledger_entry_id = $3, updated_at = $2
		WHERE id = $1 AND status = 'requested'
		RETURNING ` + debtRequestColumns + `;
	`
	req, err := scanDebtRequest(tx.QueryRow(ctx, query, debtRequestID, confirmedAt, ledgerEntryID))
	if err != nil {
		return nil, guardedTransition(err, debtRequestID)
	}
	return req, nil
}

// RejectDebtRequest needs no explicit transaction; the status guard makes the single statement safe.
func (r *PgxDebtRequestRepository) RejectDebtRequest(ctx context.Context, debtRequestID string, reason *string, rejectedAt time.Time) (*domain.DebtRequest, error) {
	query := `
		UPDATE debt_requests
		SET status = 'rejected', rejection_reason = $2, updated_at = $3
		WHERE id = $1 AND status = 'requested'
		RETURNING ` + debtRequestColumns + `;
	`
	req, err := scanDebtRequest(r.Pool.QueryRow(ctx, query, debtRequestID, reason, rejectedAt))
	if err != nil {
		return nil, guardedTransition(err, debtRequestID)
	}
	return req, nil
}
