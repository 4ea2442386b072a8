package repositories

import (
	"context"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
)

// BalanceRepository aggregates settled entries
type BalanceRepository interface {
	// SummarizeBalances sums finalized and completed entries per currency for a business,
	// optionally narrowed to one customer.
	SummarizeBalances(ctx context.Context, businessID string, customerID *string) ([]domain.BalanceSummary, error)

	// SummarizeBalancesForUser sums settled entries per business and currency across
	// every customer record the user holds.
	SummarizeBalancesForUser(ctx context.Context, userID string) ([]domain.BalanceSummary, error)
}
