package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
)

type balanceService struct {
	BaseService
	balanceRepo portsrepo.BalanceRepository
}

// NewBalanceService creates the read-only balance aggregator
func NewBalanceService(balanceRepo portsrepo.BalanceRepository, options ...ServiceOption) portssvc.BalanceSvc {
	svc := &balanceService{balanceRepo: balanceRepo}
	svc.apply(options)
	return svc
}

var _ portssvc.BalanceSvc = (*balanceService)(nil)

// Summarize sums settled entries per currency. Customers only ever see their own balance,
// whatever customerID they pass.
func (s *balanceService) Summarize(ctx context.Context, callerID, businessID string, customerID *string) ([]domain.BalanceSummary, error) {
	scope, err := s.ResolveScope(ctx, callerID, businessID)
	if err != nil {
		return nil, err
	}

	switch {
	case scope.Merchant:
	case scope.Customer != nil:
		customerID = &scope.Customer.ID
	default:
		return []domain.BalanceSummary{}, nil
	}

	summaries, err := s.balanceRepo.SummarizeBalances(ctx, businessID, customerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize balances", slog.String("business_id", businessID))
		return nil, err
	}
	return summaries, nil
}

// SummarizeAcrossBusinesses returns per-business rows and per-currency totals.
// Currencies are never converted.
func (s *balanceService) SummarizeAcrossBusinesses(ctx context.Context, callerID string) ([]domain.BalanceSummary, []domain.BalanceSummary, error) {
	summaries, err := s.balanceRepo.SummarizeBalancesForUser(ctx, callerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize balances across businesses", slog.String("user_id", callerID))
		return nil, nil, err
	}
	if summaries == nil {
		summaries = []domain.BalanceSummary{}
	}
	return summaries, domain.TotalsByCurrency(summaries), nil
}
