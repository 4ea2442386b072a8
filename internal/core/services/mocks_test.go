package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/platform/analytics"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionManager ---
type MockTxManager struct {
	mock.Mock
}

var _ portsrepo.TransactionManager = (*MockTxManager)(nil)

func (m *MockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, filter domain.LedgerEntryFilter) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) InsertEntry(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) LockDueEntries(ctx context.Context, tx pgx.Tx, asOf time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FinalizeEntries(ctx context.Context, tx pgx.Tx, entryIDs []string, asOf time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, entryIDs, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEventsByEntry(ctx context.Context, entryID string) ([]domain.LedgerEvent, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEvent), args.Error(1)
}

func (m *MockLedgerRepository) AppendEvent(ctx context.Context, tx pgx.Tx, event domain.LedgerEvent) error {
	args := m.Called(ctx, tx, event)
	return args.Error(0)
}

func (m *MockLedgerRepository) AppendEvents(ctx context.Context, tx pgx.Tx, events []domain.LedgerEvent) error {
	args := m.Called(ctx, tx, events)
	return args.Error(0)
}

// --- Mock PaymentIntentRepository ---
type MockPaymentIntentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentIntentRepositoryFacade = (*MockPaymentIntentRepository)(nil)

func (m *MockPaymentIntentRepository) FindIntentByID(ctx context.Context, intentID string) (*domain.PaymentIntent, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentIntent), args.Error(1)
}

func (m *MockPaymentIntentRepository) FindIntentByIDForUpdate(ctx context.Context, tx pgx.Tx, intentID string) (*domain.PaymentIntent, error) {
	args := m.Called(ctx, tx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentIntent), args.Error(1)
}

func (m *MockPaymentIntentRepository) SaveIntent(ctx context.Context, intent domain.PaymentIntent) error {
	args := m.Called(ctx, intent)
	return args.Error(0)
}

func (m *MockPaymentIntentRepository) MarkIntentUsed(ctx context.Context, tx pgx.Tx, intentID, ledgerEntryID string, usedAt time.Time) error {
	args := m.Called(ctx, tx, intentID, ledgerEntryID, usedAt)
	return args.Error(0)
}

func (m *MockPaymentIntentRepository) MarkIntentExpired(ctx context.Context, tx pgx.Tx, intentID string) error {
	args := m.Called(ctx, tx, intentID)
	return args.Error(0)
}

// --- Mock DebtRequestRepository ---
type MockDebtRequestRepository struct {
	mock.Mock
}

var _ portsrepo.DebtRequestRepositoryFacade = (*MockDebtRequestRepository)(nil)

func (m *MockDebtRequestRepository) FindDebtRequestByID(ctx context.Context, debtRequestID string) (*domain.DebtRequest, error) {
	args := m.Called(ctx, debtRequestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtRequest), args.Error(1)
}

func (m *MockDebtRequestRepository) FindDebtRequestByIDForUpdate(ctx context.Context, tx pgx.Tx, debtRequestID string) (*domain.DebtRequest, error) {
	args := m.Called(ctx, tx, debtRequestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtRequest), args.Error(1)
}

func (m *MockDebtRequestRepository) ListDebtRequests(ctx context.Context, filter domain.DebtRequestFilter) ([]domain.DebtRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DebtRequest), args.Error(1)
}

func (m *MockDebtRequestRepository) SaveDebtRequest(ctx context.Context, req domain.DebtRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockDebtRequestRepository) ApproveDebtRequest(ctx context.Context, tx pgx.Tx, debtRequestID, ledgerEntryID string, confirmedAt time.Time) (*domain.DebtRequest, error) {
	args := m.Called(ctx, tx, debtRequestID, ledgerEntryID, confirmedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtRequest), args.Error(1)
}

func (m *MockDebtRequestRepository) RejectDebtRequest(ctx context.Context, debtRequestID string, reason *string, rejectedAt time.Time) (*domain.DebtRequest, error) {
	args := m.Called(ctx, debtRequestID, reason, rejectedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtRequest), args.Error(1)
}

// --- Mock BusinessRepository ---
type MockBusinessRepository struct {
	mock.Mock
}

var _ portsrepo.BusinessRepositoryFacade = (*MockBusinessRepository)(nil)

func (m *MockBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *MockBusinessRepository) FindMemberRole(ctx context.Context, userID, businessID string) (*domain.BusinessMember, error) {
	args := m.Called(ctx, userID, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessMember), args.Error(1)
}

func (m *MockBusinessRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockBusinessRepository) FindCustomerByUser(ctx context.Context, businessID, userID string) (*domain.Customer, error) {
	args := m.Called(ctx, businessID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockBusinessRepository) ListCustomersByUser(ctx context.Context, userID string) ([]domain.Customer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockBusinessRepository) ResolveOrCreateCustomer(ctx context.Context, tx pgx.Tx, businessID, userID string) (*domain.Customer, error) {
	args := m.Called(ctx, tx, businessID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

// --- Mock BalanceRepository ---
type MockBalanceRepository struct {
	mock.Mock
}

var _ portsrepo.BalanceRepository = (*MockBalanceRepository)(nil)

func (m *MockBalanceRepository) SummarizeBalances(ctx context.Context, businessID string, customerID *string) ([]domain.BalanceSummary, error) {
	args := m.Called(ctx, businessID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceSummary), args.Error(1)
}

func (m *MockBalanceRepository) SummarizeBalancesForUser(ctx context.Context, userID string) ([]domain.BalanceSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceSummary), args.Error(1)
}

// --- Mock BusinessAuthorizer ---
type MockBusinessAuthorizer struct {
	mock.Mock
}

var _ portssvc.BusinessAuthorizerSvc = (*MockBusinessAuthorizer)(nil)

func (m *MockBusinessAuthorizer) AuthorizeStaff(ctx context.Context, userID, businessID string, required domain.StaffRole) error {
	args := m.Called(ctx, userID, businessID, required)
	return args.Error(0)
}

func (m *MockBusinessAuthorizer) ResolveScope(ctx context.Context, userID, businessID string) (*portssvc.Scope, error) {
	args := m.Called(ctx, userID, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.Scope), args.Error(1)
}

// --- Mock analytics Tracker ---
type MockTracker struct {
	mock.Mock
}

var _ analytics.Tracker = (*MockTracker)(nil)

func (m *MockTracker) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *MockTracker) Enqueue(distinctID, event string, properties map[string]any) {
	m.Called(distinctID, event, properties)
}

func (m *MockTracker) Close() {
	m.Called()
}

// --- Mock QR renderer ---
type MockQRRenderer struct {
	mock.Mock
}

func (m *MockQRRenderer) RenderBase64PNG(content string) (string, error) {
	args := m.Called(content)
	return args.String(0), args.Error(1)
}

// expectTx sets up a transaction that is always rolled back on exit and optionally committed.
func expectTx(tm *MockTxManager, commit bool) {
	tm.On("Begin", mock.Anything).Return(nil, nil).Once()
	if commit {
		tm.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
	}
	tm.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
