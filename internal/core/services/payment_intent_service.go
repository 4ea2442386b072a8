package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/dto"
	"github.com/SscSPs/settlement_ledger/internal/platform/analytics"
	"github.com/SscSPs/settlement_ledger/internal/utils"
	"github.com/google/uuid"
)

// PaymentIntentSettings are the tunables of the QR payment flow.
type PaymentIntentSettings struct {
	TTL                time.Duration
	FinalizationWindow time.Duration
	QRBaseURL          string
	// QR is optional. Without it the response carries only the URL.
	QR QRRenderer
}

type paymentIntentService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	intentRepo   portsrepo.PaymentIntentRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	businessRepo portsrepo.BusinessRepositoryFacade
	settings     PaymentIntentSettings
}

// NewPaymentIntentService creates the payment intent manager
func NewPaymentIntentService(
	txManager portsrepo.TransactionManager,
	intentRepo portsrepo.PaymentIntentRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	businessRepo portsrepo.BusinessRepositoryFacade,
	settings PaymentIntentSettings,
	options ...ServiceOption,
) portssvc.PaymentIntentSvcFacade {
	svc := &paymentIntentService{
		txManager:    txManager,
		intentRepo:   intentRepo,
		ledgerRepo:   ledgerRepo,
		businessRepo: businessRepo,
		settings:     settings,
	}
	svc.apply(options)
	return svc
}

var _ portssvc.PaymentIntentSvcFacade = (*paymentIntentService)(nil)

func (s *paymentIntentService) CreateIntent(ctx context.Context, staffID string, req dto.CreatePaymentIntentRequest) (*dto.CreatePaymentIntentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.AuthorizeStaff(ctx, staffID, req.BusinessID, domain.RoleCashier); err != nil {
		s.LogError(ctx, err, "User not authorized to create payment intent",
			slog.String("user_id", staffID),
			slog.String("business_id", req.BusinessID))
		return nil, err
	}

	now := s.now()
	intent := domain.PaymentIntent{
		ID:               uuid.NewString(),
		BusinessID:       req.BusinessID,
		CreatedByStaffID: staffID,
		Amount:           req.Amount,
		Currency:         req.Currency,
		InvoiceReference: req.InvoiceReference,
		ExpiresAt:        now.Add(s.settings.TTL),
		Status:           domain.IntentStatusCreated,
		CreatedAt:        now,
	}
	if err := s.intentRepo.SaveIntent(ctx, intent); err != nil {
		s.LogError(ctx, err, "Failed to save payment intent",
			slog.String("business_id", req.BusinessID))
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	resp := &dto.CreatePaymentIntentResponse{
		IntentID:  intent.ID,
		QRURL:     s.settings.QRBaseURL + "/" + intent.ID,
		ExpiresAt: intent.ExpiresAt,
	}
	if s.settings.QR != nil {
		png, err := s.settings.QR.RenderBase64PNG(resp.QRURL)
		if err != nil {
			s.LogError(ctx, err, "Failed to render QR code, returning URL only",
				slog.String("intent_id", intent.ID))
		} else {
			resp.QRCodePNG = png
		}
	}

	s.LogInfo(ctx, "Payment intent created",
		slog.String("intent_id", intent.ID),
		slog.String("business_id", intent.BusinessID),
		slog.Time("expires_at", intent.ExpiresAt))
	return resp, nil
}

func (s *paymentIntentService) GetIntent(ctx context.Context, staffID, intentID string) (*domain.PaymentIntent, error) {
	intent, err := s.intentRepo.FindIntentByID(ctx, intentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("payment intent")
		}
		s.LogError(ctx, err, "Failed to load payment intent", slog.String("intent_id", intentID))
		return nil, err
	}
	if err := s.AuthorizeStaff(ctx, staffID, intent.BusinessID, domain.RoleCashier); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("payment intent")
		}
		return nil, err
	}
	return intent, nil
}

// ConfirmIntent records the customer's consent. The intent row stays locked for the whole
// transaction, so at most one confirmation can produce an entry.
func (s *paymentIntentService) ConfirmIntent(ctx context.Context, customerUserID string, req dto.ConfirmPaymentIntentRequest) (*domain.LedgerEntry, error) {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rbErr := s.txManager.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back payment confirmation")
		}
	}()

	intent, err := s.intentRepo.FindIntentByIDForUpdate(ctx, tx, req.IntentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("payment intent")
		}
		s.LogError(ctx, err, "Failed to lock payment intent", slog.String("intent_id", req.IntentID))
		return nil, err
	}

	if req.BusinessID != nil && *req.BusinessID != intent.BusinessID {
		return nil, apperrors.ErrBusinessMismatch
	}
	if !intent.Status.CanTransitionTo(domain.IntentStatusUsed) {
		return nil, fmt.Errorf("payment intent is %s: %w", intent.Status, apperrors.ErrInvalidStatus)
	}

	now := s.now()
	if intent.IsExpired(now) {
		// The expiry is a real state change and must survive the failed confirmation.
		if err := s.intentRepo.MarkIntentExpired(ctx, tx, intent.ID); err != nil {
			s.LogError(ctx, err, "Failed to mark payment intent expired", slog.String("intent_id", intent.ID))
			return nil, err
		}
		if err := s.txManager.Commit(ctx, tx); err != nil {
			return nil, err
		}
		s.LogInfo(ctx, "Payment intent expired on confirmation attempt", slog.String("intent_id", intent.ID))
		return nil, apperrors.NewAppError(http.StatusGone, "payment intent has expired", nil)
	}

	customer, err := s.businessRepo.ResolveOrCreateCustomer(ctx, tx, intent.BusinessID, customerUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve customer",
			slog.String("business_id", intent.BusinessID),
			slog.String("user_id", customerUserID))
		return nil, err
	}

	entry := domain.NewPendingEntry(domain.NewPendingEntryParams{
		ID:                  uuid.NewString(),
		BusinessID:          intent.BusinessID,
		CustomerID:          customer.ID,
		PaymentIntentID:     &intent.ID,
		Amount:              intent.Amount,
		Currency:            intent.Currency,
		EntryType:           domain.EntryTypePayment,
		MerchantConfirmedAt: intent.CreatedAt,
		Reference:           intent.InvoiceReference,
		Now:                 now,
		Window:              s.settings.FinalizationWindow,
	})
	if err := s.ledgerRepo.InsertEntry(ctx, tx, entry); err != nil {
		s.LogError(ctx, err, "Failed to insert payment entry", slog.String("intent_id", intent.ID))
		return nil, err
	}
	if err := s.intentRepo.MarkIntentUsed(ctx, tx, intent.ID, entry.ID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark payment intent used", slog.String("intent_id", intent.ID))
		return nil, err
	}

	actor := customerUserID
	event := domain.LedgerEvent{
		ID:            uuid.NewString(),
		LedgerEntryID: entry.ID,
		ActorUserID:   &actor,
		Action:        domain.ActionCustomerConfirmed,
		Metadata: map[string]any{
			"payment_intent_id": intent.ID,
			"amount":            utils.FormatAmount(entry.Amount, entry.Currency),
			"currency":          string(entry.Currency),
		},
		CreatedAt: now,
	}
	if err := s.ledgerRepo.AppendEvent(ctx, tx, event); err != nil {
		s.LogError(ctx, err, "Failed to append audit event", slog.String("entry_id", entry.ID))
		return nil, err
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Payment intent confirmed",
		slog.String("intent_id", intent.ID),
		slog.String("entry_id", entry.ID),
		slog.String("customer_id", customer.ID))
	s.track(customerUserID, analytics.EventPaymentIntentConfirmed, map[string]any{
		"business_id": entry.BusinessID,
		"currency":    string(entry.Currency),
		"amount":      utils.FormatAmount(entry.Amount, entry.Currency),
	})
	return &entry, nil
}
