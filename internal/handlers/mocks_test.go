package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/SscSPs/settlement_ledger/internal/dto"
)

// --- Mock PaymentIntentService ---
type MockPaymentIntentService struct {
	mock.Mock
}

func (m *MockPaymentIntentService) CreateIntent(ctx context.Context, staffID string, req dto.CreatePaymentIntentRequest) (*dto.CreatePaymentIntentResponse, error) {
	args := m.Called(ctx, staffID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CreatePaymentIntentResponse), args.Error(1)
}

func (m *MockPaymentIntentService) GetIntent(ctx context.Context, staffID, intentID string) (*domain.PaymentIntent, error) {
	args := m.Called(ctx, staffID, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentIntent), args.Error(1)
}

func (m *MockPaymentIntentService) ConfirmIntent(ctx context.Context, customerUserID string, req dto.ConfirmPaymentIntentRequest) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, customerUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

// --- Mock DebtRequestService ---
type MockDebtRequestService struct {
	mock.Mock
}

func (m *MockDebtRequestService) CreateDebtRequest(ctx context.Context, staffID string, req dto.CreateDebtRequestRequest) (*domain.DebtRequest, error) {
	args := m.Called(ctx, staffID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtRequest), args.Error(1)
}

func (m *MockDebtRequestService) ListDebtRequests(ctx context.Context, callerID string, params dto.ListDebtRequestsParams) ([]domain.DebtRequest, error) {
	args := m.Called(ctx, callerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DebtRequest), args.Error(1)
}

func (m *MockDebtRequestService) ConfirmDebtRequest(ctx context.Context, customerUserID, debtRequestID string, req dto.ConfirmDebtRequestRequest) (*domain.LedgerEntry, *domain.DebtRequest, error) {
	args := m.Called(ctx, customerUserID, debtRequestID, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Get(1).(*domain.DebtRequest), args.Error(2)
}

func (m *MockDebtRequestService) RejectDebtRequest(ctx context.Context, customerUserID, debtRequestID string, req dto.RejectDebtRequestRequest) (*domain.DebtRequest, error) {
	args := m.Called(ctx, customerUserID, debtRequestID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtRequest), args.Error(1)
}

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) ListEntries(ctx context.Context, callerID string, params dto.ListLedgerEntriesParams) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, callerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) GetEntry(ctx context.Context, callerID, entryID string) (*domain.LedgerEntry, []domain.LedgerEvent, error) {
	args := m.Called(ctx, callerID, entryID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Get(1).([]domain.LedgerEvent), args.Error(2)
}

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) Summarize(ctx context.Context, callerID, businessID string, customerID *string) ([]domain.BalanceSummary, error) {
	args := m.Called(ctx, callerID, businessID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceSummary), args.Error(1)
}

func (m *MockBalanceService) SummarizeAcrossBusinesses(ctx context.Context, callerID string) ([]domain.BalanceSummary, []domain.BalanceSummary, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.BalanceSummary), args.Get(1).([]domain.BalanceSummary), args.Error(2)
}

// --- Mock FinalizationService ---
type MockFinalizationService struct {
	mock.Mock
}

func (m *MockFinalizationService) RunFinalization(ctx context.Context) (*domain.FinalizationResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinalizationResult), args.Error(1)
}
