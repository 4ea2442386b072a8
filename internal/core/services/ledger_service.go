package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/dto"
	"github.com/SscSPs/settlement_ledger/internal/utils/pagination"
)

type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewLedgerService creates the read side of the ledger store
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, options ...ServiceOption) portssvc.LedgerReaderSvc {
	svc := &ledgerService{ledgerRepo: ledgerRepo}
	svc.apply(options)
	return svc
}

var _ portssvc.LedgerReaderSvc = (*ledgerService)(nil)

func (s *ledgerService) ListEntries(ctx context.Context, callerID string, params dto.ListLedgerEntriesParams) ([]domain.LedgerEntry, error) {
	filter := domain.LedgerEntryFilter{BusinessID: params.BusinessID}
	filter.Limit, filter.Offset = pageBounds(params.Limit, params.Offset)
	if params.Status != nil {
		status, err := domain.ParseEntryStatus(*params.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}
	if params.PageToken != nil && *params.PageToken != "" {
		createdAt, id, err := pagination.DecodeToken(*params.PageToken)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid pageToken")
		}
		filter.StartAfter = &domain.EntryCursor{CreatedAt: createdAt, ID: id}
	}

	scope, err := s.ResolveScope(ctx, callerID, params.BusinessID)
	if err != nil {
		return nil, err
	}
	switch {
	case scope.Merchant:
		filter.CustomerID = params.CustomerID
	case scope.Customer != nil:
		filter.CustomerID = &scope.Customer.ID
	default:
		return []domain.LedgerEntry{}, nil
	}

	entries, err := s.ledgerRepo.ListEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries", slog.String("business_id", params.BusinessID))
		return nil, err
	}
	return entries, nil
}

// GetEntry hides entries outside the caller's scope behind NOT_FOUND.
func (s *ledgerService) GetEntry(ctx context.Context, callerID, entryID string) (*domain.LedgerEntry, []domain.LedgerEvent, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.NewNotFoundError("ledger entry")
		}
		s.LogError(ctx, err, "Failed to load ledger entry", slog.String("entry_id", entryID))
		return nil, nil, err
	}

	scope, err := s.ResolveScope(ctx, callerID, entry.BusinessID)
	if err != nil {
		return nil, nil, err
	}
	if !scope.Merchant && (scope.Customer == nil || scope.Customer.ID != entry.CustomerID) {
		return nil, nil, apperrors.NewNotFoundError("ledger entry")
	}

	events, err := s.ledgerRepo.ListEventsByEntry(ctx, entry.ID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load audit trail", slog.String("entry_id", entryID))
		return nil, nil, err
	}
	return entry, events, nil
}
