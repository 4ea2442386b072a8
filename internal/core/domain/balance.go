package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSummary is the settled balance for one currency within a scope.
type BalanceSummary struct {
	BusinessID string          `json:"businessId,omitempty"`
	Currency   Currency        `json:"currency"`
	Balance    decimal.Decimal `json:"balance"`
	Count      int64           `json:"count"`
}

// TotalsByCurrency folds per-business rows into one row per currency, ordered by currency.
func TotalsByCurrency(rows []BalanceSummary) []BalanceSummary {
	byCurrency := make(map[Currency]*BalanceSummary)
	for _, row := range rows {
		total, ok := byCurrency[row.Currency]
		if !ok {
			total = &BalanceSummary{Currency: row.Currency, Balance: decimal.Zero}
			byCurrency[row.Currency] = total
		}
		total.Balance = total.Balance.Add(row.Balance)
		total.Count += row.Count
	}

	totals := make([]BalanceSummary, 0, len(byCurrency))
	for _, total := range byCurrency {
		totals = append(totals, *total)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Currency < totals[j].Currency })
	return totals
}

// FinalizationResult reports one run of the finalization engine.
type FinalizationResult struct {
	FinalizedCount int           `json:"finalizedCount"`
	Entries        []LedgerEntry `json:"entries"`
	RanAt          time.Time     `json:"ranAt"`
}
