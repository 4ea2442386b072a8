package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// DebtRequestReader defines read operations for debt requests
type DebtRequestReader interface {
	FindDebtRequestByID(ctx context.Context, debtRequestID string) (*domain.DebtRequest, error)

	// FindDebtRequestByIDForUpdate loads the request and locks its row until tx ends.
	FindDebtRequestByIDForUpdate(ctx context.Context, tx pgx.Tx, debtRequestID string) (*domain.DebtRequest, error)

	ListDebtRequests(ctx context.Context, filter domain.DebtRequestFilter) ([]domain.DebtRequest, error)
}

// DebtRequestWriter defines write operations for debt requests
type DebtRequestWriter interface {
	SaveDebtRequest(ctx context.Context, req domain.DebtRequest) error

	// ApproveDebtRequest moves a requested debt request to approved inside tx.
	ApproveDebtRequest(ctx context.Context, tx pgx.Tx, debtRequestID, ledgerEntryID string, confirmedAt time.Time) (*domain.DebtRequest, error)

	// RejectDebtRequest runs a single UPDATE guarded by status='requested'.
	// Zero affected rows is apperrors.ErrInvalidStatus.
	RejectDebtRequest(ctx context.Context, debtRequestID string, reason *string, rejectedAt time.Time) (*domain.DebtRequest, error)
}

// DebtRequestRepositoryFacade combines all debt request repository interfaces
type DebtRequestRepositoryFacade interface {
	DebtRequestReader
	DebtRequestWriter
}
