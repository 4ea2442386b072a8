package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// PgxBalanceRepository aggregates settled ledger entries.
type PgxBalanceRepository struct {
	BaseRepository
}

func newPgxBalanceRepository(pool Querier) *PgxBalanceRepository {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceRepository = (*PgxBalanceRepository)(nil)

// SummarizeBalances sums settled entries per currency for a business, optionally for one customer.
func (r *PgxBalanceRepository) SummarizeBalances(ctx context.Context, businessID string, customerID *string) ([]domain.BalanceSummary, error) {
	query := `
		SELECT '' AS business_id, currency, COALESCE(SUM(amount), 0), COUNT(*)
		FROM ledger_entries
		WHERE business_id = $1
		  AND ($2::text IS NULL OR customer_id = $2)
		  AND status IN ('finalized', 'completed')
		GROUP BY currency
		ORDER BY currency;
	`
	rows, err := r.Pool.Query(ctx, query, businessID, customerID)
	if err != nil {
		return nil, fmt.Errorf("error summarizing balances for business %s: %w", businessID, err)
	}
	return collectBalanceRows(rows)
}

// SummarizeBalancesForUser sums settled entries per business and currency across the user's customer records.
func (r *PgxBalanceRepository) SummarizeBalancesForUser(ctx context.Context, userID string) ([]domain.BalanceSummary, error) {
	query := `
		SELECT le.business_id, le.currency, COALESCE(SUM(le.amount), 0), COUNT(*)
		FROM ledger_entries le
		JOIN customers c ON c.id = le.customer_id AND c.business_id = le.business_id
		WHERE c.user_id = $1
		  AND le.status IN ('finalized', 'completed')
		GROUP BY le.business_id, le.currency
		ORDER BY le.business_id, le.currency;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error summarizing balances for user %s: %w", userID, err)
	}
	return collectBalanceRows(rows)
}

func collectBalanceRows(rows pgx.Rows) ([]domain.BalanceSummary, error) {
	defer rows.Close()
	summaries := []domain.BalanceSummary{}
	for rows.Next() {
		var s domain.BalanceSummary
		var currency string
		if err := rows.Scan(&s.BusinessID, &currency, &s.Balance, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		s.Currency = domain.Currency(currency)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance rows: %w", err)
	}
	return summaries, nil
}
