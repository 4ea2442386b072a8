package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/dto"
	"github.com/SscSPs/settlement_ledger/internal/platform/analytics"
	"github.com/SscSPs/settlement_ledger/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type debtRequestService struct {
	BaseService
	txManager          portsrepo.TransactionManager
	debtRepo           portsrepo.DebtRequestRepositoryFacade
	ledgerRepo         portsrepo.LedgerRepositoryFacade
	businessRepo       portsrepo.BusinessRepositoryFacade
	finalizationWindow time.Duration
}

// NewDebtRequestService creates the debt request workflow
func NewDebtRequestService(
	txManager portsrepo.TransactionManager,
	debtRepo portsrepo.DebtRequestRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	businessRepo portsrepo.BusinessRepositoryFacade,
	finalizationWindow time.Duration,
	options ...ServiceOption,
) portssvc.DebtRequestSvcFacade {
	svc := &debtRequestService{
		txManager:          txManager,
		debtRepo:           debtRepo,
		ledgerRepo:         ledgerRepo,
		businessRepo:       businessRepo,
		finalizationWindow: finalizationWindow,
	}
	svc.apply(options)
	return svc
}

var _ portssvc.DebtRequestSvcFacade = (*debtRequestService)(nil)

func (s *debtRequestService) CreateDebtRequest(ctx context.Context, staffID string, req dto.CreateDebtRequestRequest) (*domain.DebtRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.AuthorizeStaff(ctx, staffID, req.BusinessID, domain.RoleManager); err != nil {
		s.LogError(ctx, err, "User not authorized to create debt request",
			slog.String("user_id", staffID),
			slog.String("business_id", req.BusinessID))
		return nil, err
	}

	customer, err := s.businessRepo.FindCustomerByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("customer")
		}
		s.LogError(ctx, err, "Failed to load customer", slog.String("customer_id", req.CustomerID))
		return nil, err
	}
	if customer.BusinessID != req.BusinessID {
		return nil, apperrors.NewNotFoundError("customer")
	}

	now := s.now()
	creditLimit := customer.CreditLimit
	debt := domain.DebtRequest{
		ID:                  uuid.NewString(),
		BusinessID:          req.BusinessID,
		CustomerID:          customer.ID,
		CreatedByStaffID:    staffID,
		Amount:              req.Amount,
		Currency:            req.Currency,
		CreditLimitSnapshot: &creditLimit,
		DueDate:             req.DueDate,
		Notes:               req.Notes,
		Status:              domain.DebtRequestRequested,
		MerchantConfirmedAt: &now,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.debtRepo.SaveDebtRequest(ctx, debt); err != nil {
		s.LogError(ctx, err, "Failed to save debt request", slog.String("business_id", req.BusinessID))
		return nil, fmt.Errorf("failed to create debt request: %w", err)
	}

	s.LogInfo(ctx, "Debt request created",
		slog.String("debt_request_id", debt.ID),
		slog.String("business_id", debt.BusinessID),
		slog.String("customer_id", debt.CustomerID))
	return &debt, nil
}

func (s *debtRequestService) ListDebtRequests(ctx context.Context, callerID string, params dto.ListDebtRequestsParams) ([]domain.DebtRequest, error) {
	filter := domain.DebtRequestFilter{BusinessID: params.BusinessID}
	filter.Limit, filter.Offset = pageBounds(params.Limit, params.Offset)
	if params.Status != nil {
		status, err := domain.ParseDebtRequestStatus(*params.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
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
		return []domain.DebtRequest{}, nil
	}

	requests, err := s.debtRepo.ListDebtRequests(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list debt requests", slog.String("business_id", params.BusinessID))
		return nil, err
	}
	return requests, nil
}

// checkDecisionRights enforces business scope and that only the addressed customer decides.
func (s *debtRequestService) checkDecisionRights(ctx context.Context, debt *domain.DebtRequest, customerUserID string, businessID *string) error {
	if businessID != nil && *businessID != debt.BusinessID {
		return apperrors.ErrBusinessMismatch
	}
	if !debt.Status.CanTransitionTo(domain.DebtRequestApproved) {
		return fmt.Errorf("debt request is %s: %w", debt.Status, apperrors.ErrInvalidStatus)
	}

	customer, err := s.businessRepo.FindCustomerByID(ctx, debt.CustomerID)
	if err != nil {
		return err
	}
	if customer.UserID != customerUserID {
		return apperrors.NewForbiddenError("debt request is addressed to another customer")
	}
	return nil
}

func (s *debtRequestService) ConfirmDebtRequest(ctx context.Context, customerUserID, debtRequestID string, req dto.ConfirmDebtRequestRequest) (*domain.LedgerEntry, *domain.DebtRequest, error) {
	var (
		entry    domain.LedgerEntry
		approved *domain.DebtRequest
	)

	err := s.withTx(ctx, s.txManager, func(tx pgx.Tx) error {
		debt, err := s.debtRepo.FindDebtRequestByIDForUpdate(ctx, tx, debtRequestID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("debt request")
			}
			return err
		}
		if err := s.checkDecisionRights(ctx, debt, customerUserID, req.BusinessID); err != nil {
			return err
		}

		now := s.now()
		merchantConfirmedAt := debt.CreatedAt
		if debt.MerchantConfirmedAt != nil {
			merchantConfirmedAt = *debt.MerchantConfirmedAt
		}
		entry = domain.NewPendingEntry(domain.NewPendingEntryParams{
			ID:                  uuid.NewString(),
			BusinessID:          debt.BusinessID,
			CustomerID:          debt.CustomerID,
			DebtRequestID:       &debt.ID,
			Amount:              debt.Amount,
			Currency:            debt.Currency,
			EntryType:           domain.EntryTypeDebt,
			MerchantConfirmedAt: merchantConfirmedAt,
			Reference:           debt.Notes,
			Now:                 now,
			Window:              s.finalizationWindow,
		})
		if err := s.ledgerRepo.InsertEntry(ctx, tx, entry); err != nil {
			return err
		}

		approved, err = s.debtRepo.ApproveDebtRequest(ctx, tx, debt.ID, entry.ID, now)
		if err != nil {
			return err
		}

		actor := customerUserID
		return s.ledgerRepo.AppendEvent(ctx, tx, domain.LedgerEvent{
			ID:            uuid.NewString(),
			LedgerEntryID: entry.ID,
			ActorUserID:   &actor,
			Action:        domain.ActionCustomerConfirmedDebt,
			Metadata: map[string]any{
				"debt_request_id": debt.ID,
				"amount":          utils.FormatAmount(entry.Amount, entry.Currency),
				"currency":        string(entry.Currency),
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		if apperrors.HTTPStatus(err) >= 500 {
			s.LogError(ctx, err, "Failed to confirm debt request", slog.String("debt_request_id", debtRequestID))
		}
		return nil, nil, err
	}

	s.LogInfo(ctx, "Debt request confirmed",
		slog.String("debt_request_id", debtRequestID),
		slog.String("entry_id", entry.ID))
	s.track(customerUserID, analytics.EventDebtRequestConfirmed, map[string]any{
		"business_id": entry.BusinessID,
		"currency":    string(entry.Currency),
		"amount":      utils.FormatAmount(entry.Amount, entry.Currency),
	})
	return &entry, approved, nil
}

// RejectDebtRequest closes a request without touching the ledger.
func (s *debtRequestService) RejectDebtRequest(ctx context.Context, customerUserID, debtRequestID string, req dto.RejectDebtRequestRequest) (*domain.DebtRequest, error) {
	debt, err := s.debtRepo.FindDebtRequestByID(ctx, debtRequestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("debt request")
		}
		s.LogError(ctx, err, "Failed to load debt request", slog.String("debt_request_id", debtRequestID))
		return nil, err
	}
	if err := s.checkDecisionRights(ctx, debt, customerUserID, req.BusinessID); err != nil {
		return nil, err
	}

	rejected, err := s.debtRepo.RejectDebtRequest(ctx, debtRequestID, req.RejectionReason, s.now())
	if err != nil {
		if apperrors.HTTPStatus(err) >= 500 {
			s.LogError(ctx, err, "Failed to reject debt request", slog.String("debt_request_id", debtRequestID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Debt request rejected", slog.String("debt_request_id", debtRequestID))
	s.track(customerUserID, analytics.EventDebtRequestRejected, map[string]any{
		"business_id": rejected.BusinessID,
	})
	return rejected, nil
}
