package dto

import (
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryParams defines query parameters for a business-scoped balance summary.
type SummaryParams struct {
	BusinessID string  `form:"businessId" binding:"required"`
	CustomerID *string `form:"customerId"`
}

// BalanceSummaryResponse is one currency row of a balance summary.
type BalanceSummaryResponse struct {
	BusinessID string          `json:"businessId,omitempty"`
	Currency   domain.Currency `json:"currency"`
	Balance    decimal.Decimal `json:"balance"`
	Count      int64           `json:"count"`
}

// CrossBusinessSummaryResponse holds per-business rows and per-currency totals.
type CrossBusinessSummaryResponse struct {
	Summaries []BalanceSummaryResponse `json:"summaries"`
	Total     []BalanceSummaryResponse `json:"total"`
}

// FinalizationRunResponse is returned by the cron trigger.
type FinalizationRunResponse struct {
	FinalizedCount int       `json:"finalizedCount"`
	Timestamp      time.Time `json:"timestamp"`
}

// ToBalanceSummaryResponses converts summaries to response DTOs. It never returns nil.
func ToBalanceSummaryResponses(rows []domain.BalanceSummary) []BalanceSummaryResponse {
	res := make([]BalanceSummaryResponse, len(rows))
	for i, row := range rows {
		res[i] = BalanceSummaryResponse{
			BusinessID: row.BusinessID,
			Currency:   row.Currency,
			Balance:    row.Balance,
			Count:      row.Count,
		}
	}
	return res
}
