package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/core/services"
	"github.com/SscSPs/settlement_ledger/internal/dto"
	"github.com/SscSPs/settlement_ledger/internal/platform/analytics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PaymentIntentServiceTestSuite struct {
	suite.Suite
	txManager    *MockTxManager
	intentRepo   *MockPaymentIntentRepository
	ledgerRepo   *MockLedgerRepository
	businessRepo *MockBusinessRepository
	authorizer   *MockBusinessAuthorizer
	tracker      *MockTracker
	qr           *MockQRRenderer
	service      portssvc.PaymentIntentSvcFacade
	now          time.Time
	businessID   string
	staffID      string
	customerUser string
}

func (suite *PaymentIntentServiceTestSuite) SetupTest() {
	suite.txManager = new(MockTxManager)
	suite.intentRepo = new(MockPaymentIntentRepository)
	suite.ledgerRepo = new(MockLedgerRepository)
	suite.businessRepo = new(MockBusinessRepository)
	suite.authorizer = new(MockBusinessAuthorizer)
	suite.tracker = new(MockTracker)
	suite.qr = new(MockQRRenderer)

	suite.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	suite.businessID = uuid.NewString()
	suite.staffID = uuid.NewString()
	suite.customerUser = uuid.NewString()

	suite.tracker.On("Enabled").Return(true).Maybe()
	suite.tracker.On("Enqueue", mock.Anything, mock.Anything, mock.Anything).Return().Maybe()

	suite.service = services.NewPaymentIntentService(
		suite.txManager,
		suite.intentRepo,
		suite.ledgerRepo,
		suite.businessRepo,
		services.PaymentIntentSettings{
			TTL:                15 * time.Minute,
			FinalizationWindow: 24 * time.Hour,
			QRBaseURL:          "https://pay.test/pay",
			QR:                 suite.qr,
		},
		services.WithBusinessAuthorizer(suite.authorizer),
		services.WithClock(fixedClock(suite.now)),
		services.WithAnalytics(suite.tracker),
	)
}

func (suite *PaymentIntentServiceTestSuite) openIntent() *domain.PaymentIntent {
	ref := "INV-1001"
	return &domain.PaymentIntent{
		ID:               uuid.NewString(),
		BusinessID:       suite.businessID,
		CreatedByStaffID: suite.staffID,
		Amount:           decimal.RequireFromString("125.50"),
		Currency:         domain.CurrencySAR,
		InvoiceReference: &ref,
		ExpiresAt:        suite.now.Add(10 * time.Minute),
		Status:           domain.IntentStatusCreated,
		CreatedAt:        suite.now.Add(-5 * time.Minute),
	}
}

func (suite *PaymentIntentServiceTestSuite) TestCreateIntent_Success() {
	ctx := context.Background()
	req := dto.CreatePaymentIntentRequest{
		BusinessID: suite.businessID,
		Amount:     decimal.RequireFromString("125.50"),
		Currency:   domain.CurrencySAR,
	}

	suite.authorizer.On("AuthorizeStaff", ctx, suite.staffID, suite.businessID, domain.RoleCashier).Return(nil).Once()
	suite.intentRepo.On("SaveIntent", ctx, mock.MatchedBy(func(p domain.PaymentIntent) bool {
		return p.Status == domain.IntentStatusCreated &&
			p.ExpiresAt.Equal(suite.now.Add(15*time.Minute)) &&
			p.Amount.Equal(req.Amount) &&
			p.CreatedByStaffID == suite.staffID
	})).Return(nil).Once()
	suite.qr.On("RenderBase64PNG", mock.AnythingOfType("string")).Return("cG5n", nil).Once()

	resp, err := suite.service.CreateIntent(ctx, suite.staffID, req)

	suite.Require().NoError(err)
	suite.NotEmpty(resp.IntentID)
	suite.Equal("https://pay.test/pay/"+resp.IntentID, resp.QRURL)
	suite.Equal("cG5n", resp.QRCodePNG)
	suite.Equal(suite.now.Add(15*time.Minute), resp.ExpiresAt)
	suite.intentRepo.AssertExpectations(suite.T())
	suite.ledgerRepo.AssertNotCalled(suite.T(), "InsertEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentIntentServiceTestSuite) TestCreateIntent_QRFailureStillReturnsURL() {
	ctx := context.Background()
	req := dto.CreatePaymentIntentRequest{BusinessID: suite.businessID, Amount: decimal.NewFromInt(10), Currency: domain.CurrencyUSD}

	suite.authorizer.On("AuthorizeStaff", ctx, suite.staffID, suite.businessID, domain.RoleCashier).Return(nil).Once()
	suite.intentRepo.On("SaveIntent", ctx, mock.AnythingOfType("domain.PaymentIntent")).Return(nil).Once()
	suite.qr.On("RenderBase64PNG", mock.Anything).Return("", assert.AnError).Once()

	resp, err := suite.service.CreateIntent(ctx, suite.staffID, req)

	suite.Require().NoError(err)
	suite.NotEmpty(resp.QRURL)
	suite.Empty(resp.QRCodePNG)
}

func (suite *PaymentIntentServiceTestSuite) TestCreateIntent_RejectsNonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreatePaymentIntentRequest{BusinessID: suite.businessID, Amount: decimal.Zero, Currency: domain.CurrencySAR}

	_, err := suite.service.CreateIntent(ctx, suite.staffID, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.authorizer.AssertNotCalled(suite.T(), "AuthorizeStaff", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.intentRepo.AssertNotCalled(suite.T(), "SaveIntent", mock.Anything, mock.Anything)
}

func (suite *PaymentIntentServiceTestSuite) TestCreateIntent_Forbidden() {
	ctx := context.Background()
	req := dto.CreatePaymentIntentRequest{BusinessID: suite.businessID, Amount: decimal.NewFromInt(10), Currency: domain.CurrencySAR}
	suite.authorizer.On("AuthorizeStaff", ctx, suite.staffID, suite.businessID, domain.RoleCashier).
		Return(apperrors.NewForbiddenError("role CASHIER or higher is required")).Once()

	_, err := suite.service.CreateIntent(ctx, suite.staffID, req)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.intentRepo.AssertNotCalled(suite.T(), "SaveIntent", mock.Anything, mock.Anything)
}

func (suite *PaymentIntentServiceTestSuite) TestConfirmIntent_Success() {
	ctx := context.Background()
	intent := suite.openIntent()
	customer := &domain.Customer{ID: uuid.NewString(), BusinessID: suite.businessID, UserID: suite.customerUser}

	expectTx(suite.txManager, true)
	suite.intentRepo.On("FindIntentByIDForUpdate", ctx, mock.Anything, intent.ID).Return(intent, nil).Once()
	suite.businessRepo.On("ResolveOrCreateCustomer", ctx, mock.Anything, suite.businessID, suite.customerUser).Return(customer, nil).Once()
	suite.ledgerRepo.On("InsertEntry", ctx, mock.Anything, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.EntryType == domain.EntryTypePayment &&
			e.Status == domain.EntryStatusPending &&
			e.Amount.Equal(decimal.RequireFromString("125.50")) &&
			e.CustomerID == customer.ID &&
			*e.PaymentIntentID == intent.ID &&
			e.FinalizesAt.Equal(suite.now.Add(24*time.Hour)) &&
			e.MerchantConfirmedAt.Equal(intent.CreatedAt) &&
			e.CustomerConfirmedAt.Equal(suite.now) &&
			*e.Reference == "INV-1001"
	})).Return(nil).Once()
	suite.intentRepo.On("MarkIntentUsed", ctx, mock.Anything, intent.ID, mock.AnythingOfType("string"), suite.now).Return(nil).Once()
	suite.ledgerRepo.On("AppendEvent", ctx, mock.Anything, mock.MatchedBy(func(ev domain.LedgerEvent) bool {
		return ev.Action == domain.ActionCustomerConfirmed && *ev.ActorUserID == suite.customerUser
	})).Return(nil).Once()

	entry, err := suite.service.ConfirmIntent(ctx, suite.customerUser, dto.ConfirmPaymentIntentRequest{IntentID: intent.ID})

	suite.Require().NoError(err)
	suite.Equal(domain.EntryStatusPending, entry.Status)
	suite.True(entry.IsConsented())
	suite.txManager.AssertExpectations(suite.T())
	suite.intentRepo.AssertExpectations(suite.T())
	suite.ledgerRepo.AssertExpectations(suite.T())
	suite.tracker.AssertCalled(suite.T(), "Enqueue", suite.customerUser, analytics.EventPaymentIntentConfirmed, mock.Anything)
}

func (suite *PaymentIntentServiceTestSuite) TestConfirmIntent_NotFound() {
	ctx := context.Background()
	expectTx(suite.txManager, false)
	suite.intentRepo.On("FindIntentByIDForUpdate", ctx, mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ConfirmIntent(ctx, suite.customerUser, dto.ConfirmPaymentIntentRequest{IntentID: "missing"})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Equal(apperrors.CodeNotFound, apperrors.CodeOf(err))
	suite.txManager.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *PaymentIntentServiceTestSuite) TestConfirmIntent_BusinessMismatch() {
	ctx := context.Background()
	intent := suite.openIntent()
	other := uuid.NewString()
	expectTx(suite.txManager, false)
	suite.intentRepo.On("FindIntentByIDForUpdate", ctx, mock.Anything, intent.ID).Return(intent, nil).Once()

	_, err := suite.service.ConfirmIntent(ctx, suite.customerUser, dto.ConfirmPaymentIntentRequest{IntentID: intent.ID, BusinessID: &other})

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Equal(apperrors.CodeBusinessMismatch, apperrors.CodeOf(err))
	suite.ledgerRepo.AssertNotCalled(suite.T(), "InsertEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentIntentServiceTestSuite) TestConfirmIntent_AlreadyUsed() {
	ctx := context.Background()
	intent := suite.openIntent()
	intent.Status = domain.IntentStatusUsed
	expectTx(suite.txManager, false)
	suite.intentRepo.On("FindIntentByIDForUpdate", ctx, mock.Anything, intent.ID).Return(intent, nil).Once()

	_, err := suite.service.ConfirmIntent(ctx, suite.customerUser, dto.ConfirmPaymentIntentRequest{IntentID: intent.ID})

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Equal(apperrors.CodeInvalidStatus, apperrors.CodeOf(err))
	suite.ledgerRepo.AssertNotCalled(suite.T(), "InsertEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentIntentServiceTestSuite) TestConfirmIntent_ExpiredCommitsTransition() {
	ctx := context.Background()
	intent := suite.openIntent()
	intent.ExpiresAt = suite.now.Add(-time.Second)

	expectTx(suite.txManager, true)
	suite.intentRepo.On("FindIntentByIDForUpdate", ctx, mock.Anything, intent.ID).Return(intent, nil).Once()
	suite.intentRepo.On("MarkIntentExpired", ctx, mock.Anything, intent.ID).Return(nil).Once()

	_, err := suite.service.ConfirmIntent(ctx, suite.customerUser, dto.ConfirmPaymentIntentRequest{IntentID: intent.ID})

	suite.ErrorIs(err, apperrors.ErrExpired)
	suite.Equal(apperrors.CodeExpired, apperrors.CodeOf(err))
	suite.txManager.AssertCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.ledgerRepo.AssertNotCalled(suite.T(), "InsertEntry", mock.Anything, mock.Anything, mock.Anything)
	suite.businessRepo.AssertNotCalled(suite.T(), "ResolveOrCreateCustomer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentIntentServiceTestSuite) TestConfirmIntent_AtExactExpiryStillAccepted() {
	ctx := context.Background()
	intent := suite.openIntent()
	intent.ExpiresAt = suite.now
	customer := &domain.Customer{ID: uuid.NewString(), BusinessID: suite.businessID, UserID: suite.customerUser}

	expectTx(suite.txManager, true)
	suite.intentRepo.On("FindIntentByIDForUpdate", ctx, mock.Anything, intent.ID).Return(intent, nil).Once()
	suite.businessRepo.On("ResolveOrCreateCustomer", ctx, mock.Anything, suite.businessID, suite.customerUser).Return(customer, nil).Once()
	suite.ledgerRepo.On("InsertEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.intentRepo.On("MarkIntentUsed", ctx, mock.Anything, intent.ID, mock.Anything, suite.now).Return(nil).Once()
	suite.ledgerRepo.On("AppendEvent", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := suite.service.ConfirmIntent(ctx, suite.customerUser, dto.ConfirmPaymentIntentRequest{IntentID: intent.ID})

	suite.NoError(err)
}

func (suite *PaymentIntentServiceTestSuite) TestConfirmIntent_DuplicateEntryIsAlreadyProcessed() {
	ctx := context.Background()
	intent := suite.openIntent()
	customer := &domain.Customer{ID: uuid.NewString(), BusinessID: suite.businessID, UserID: suite.customerUser}

	expectTx(suite.txManager, false)
	suite.intentRepo.On("FindIntentByIDForUpdate", ctx, mock.Anything, intent.ID).Return(intent, nil).Once()
	suite.businessRepo.On("ResolveOrCreateCustomer", ctx, mock.Anything, suite.businessID, suite.customerUser).Return(customer, nil).Once()
	suite.ledgerRepo.On("InsertEntry", ctx, mock.Anything, mock.Anything).Return(apperrors.ErrAlreadyProcessed).Once()

	_, err := suite.service.ConfirmIntent(ctx, suite.customerUser, dto.ConfirmPaymentIntentRequest{IntentID: intent.ID})

	suite.Equal(apperrors.CodeAlreadyProcessed, apperrors.CodeOf(err))
	suite.txManager.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.txManager.AssertCalled(suite.T(), "Rollback", mock.Anything, mock.Anything)
	suite.intentRepo.AssertNotCalled(suite.T(), "MarkIntentUsed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentIntentServiceTestSuite) TestGetIntent_HiddenFromNonStaff() {
	ctx := context.Background()
	intent := suite.openIntent()
	suite.intentRepo.On("FindIntentByID", ctx, intent.ID).Return(intent, nil).Once()
	suite.authorizer.On("AuthorizeStaff", ctx, "stranger", suite.businessID, domain.RoleCashier).
		Return(apperrors.NewNotFoundError("business")).Once()

	_, err := suite.service.GetIntent(ctx, "stranger", intent.ID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestPaymentIntentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentIntentServiceTestSuite))
}
