package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/platform/analytics"
	"github.com/SscSPs/settlement_ledger/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// systemActor is the analytics identity for unattended runs.
const systemActor = "system:finalizer"

type finalizationService struct {
	BaseService
	txManager  portsrepo.TransactionManager
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewFinalizationService creates the finalization engine
func NewFinalizationService(txManager portsrepo.TransactionManager, ledgerRepo portsrepo.LedgerRepositoryFacade, options ...ServiceOption) portssvc.FinalizationSvc {
	svc := &finalizationService{txManager: txManager, ledgerRepo: ledgerRepo}
	svc.apply(options)
	return svc
}

var _ portssvc.FinalizationSvc = (*finalizationService)(nil)

// RunFinalization promotes every due pending entry in one transaction and writes one
// auto_finalized event per entry. Either the whole batch lands or none of it does.
func (s *finalizationService) RunFinalization(ctx context.Context) (*domain.FinalizationResult, error) {
	runAt := s.now()
	result := &domain.FinalizationResult{RanAt: runAt, Entries: []domain.LedgerEntry{}}

	err := s.withTx(ctx, s.txManager, func(tx pgx.Tx) error {
		due, err := s.ledgerRepo.LockDueEntries(ctx, tx, runAt)
		if err != nil {
			return err
		}
		if len(due) == 0 {
			return nil
		}

		ids := make([]string, 0, len(due))
		originalDeadline := make(map[string]*time.Time, len(due))
		for _, entry := range due {
			ids = append(ids, entry.ID)
			originalDeadline[entry.ID] = entry.FinalizesAt
		}

		finalized, err := s.ledgerRepo.FinalizeEntries(ctx, tx, ids, runAt)
		if err != nil {
			return err
		}

		events := make([]domain.LedgerEvent, 0, len(finalized))
		for _, entry := range finalized {
			metadata := map[string]any{
				"amount":     utils.FormatAmount(entry.Amount, entry.Currency),
				"currency":   string(entry.Currency),
				"entry_type": string(entry.EntryType),
				"run_at":     runAt.Format(time.RFC3339Nano),
			}
			if deadline := originalDeadline[entry.ID]; deadline != nil {
				metadata["original_finalizes_at"] = deadline.UTC().Format(time.RFC3339Nano)
			}
			events = append(events, domain.LedgerEvent{
				ID:            uuid.NewString(),
				LedgerEntryID: entry.ID,
				Action:        domain.ActionAutoFinalized,
				Metadata:      metadata,
				CreatedAt:     runAt,
			})
		}
		if err := s.ledgerRepo.AppendEvents(ctx, tx, events); err != nil {
			return err
		}

		result.Entries = finalized
		result.FinalizedCount = len(finalized)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Finalization run failed, batch rolled back", slog.Time("run_at", runAt))
		return nil, err
	}

	if result.FinalizedCount > 0 {
		s.LogInfo(ctx, "Finalization run completed",
			slog.Int("finalized_count", result.FinalizedCount),
			slog.Time("run_at", runAt))
		s.track(systemActor, analytics.EventLedgerFinalized, map[string]any{
			"finalized_count": result.FinalizedCount,
		})
	} else {
		s.LogDebug(ctx, "Finalization run found nothing due", slog.Time("run_at", runAt))
	}
	return result, nil
}
