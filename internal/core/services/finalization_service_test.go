package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/core/services"
	"github.com/SscSPs/settlement_ledger/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type FinalizationServiceTestSuite struct {
	suite.Suite
	txManager  *MockTxManager
	ledgerRepo *MockLedgerRepository
	service    portssvc.FinalizationSvc
	now        time.Time
}

func (suite *FinalizationServiceTestSuite) SetupTest() {
	suite.txManager = new(MockTxManager)
	suite.ledgerRepo = new(MockLedgerRepository)
	suite.now = time.Date(2026, 3, 3, 0, 5, 0, 0, time.UTC)
	suite.service = services.NewFinalizationService(suite.txManager, suite.ledgerRepo, services.WithClock(fixedClock(suite.now)))
}

func (suite *FinalizationServiceTestSuite) dueEntry(age time.Duration, amount int64, entryType domain.EntryType) domain.LedgerEntry {
	finalizesAt := suite.now.Add(-age)
	confirmedAt := finalizesAt.Add(-24 * time.Hour)
	return domain.LedgerEntry{
		ID:                  uuid.NewString(),
		BusinessID:          "biz",
		CustomerID:          "cust",
		Amount:              entryType.SignedAmount(decimal.NewFromInt(amount)),
		Currency:            domain.CurrencySAR,
		EntryType:           entryType,
		Status:              domain.EntryStatusPending,
		FinalizesAt:         &finalizesAt,
		MerchantConfirmedAt: &confirmedAt,
		CustomerConfirmedAt: &confirmedAt,
	}
}

func (suite *FinalizationServiceTestSuite) TestRunFinalization_NothingDue() {
	ctx := context.Background()
	expectTx(suite.txManager, true)
	suite.ledgerRepo.On("LockDueEntries", ctx, mock.Anything, suite.now).Return([]domain.LedgerEntry{}, nil).Once()

	result, err := suite.service.RunFinalization(ctx)

	suite.Require().NoError(err)
	suite.Equal(0, result.FinalizedCount)
	suite.NotNil(result.Entries)
	suite.Equal(suite.now, result.RanAt)
	suite.ledgerRepo.AssertNotCalled(suite.T(), "FinalizeEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.ledgerRepo.AssertNotCalled(suite.T(), "AppendEvents", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FinalizationServiceTestSuite) TestRunFinalization_OneEventPerEntry() {
	ctx := context.Background()
	older := suite.dueEntry(2*time.Hour, 100, domain.EntryTypePayment)
	newer := suite.dueEntry(time.Minute, 40, domain.EntryTypeDebt)
	due := []domain.LedgerEntry{older, newer}

	finalized := make([]domain.LedgerEntry, len(due))
	for i, e := range due {
		e.Status = domain.EntryStatusFinalized
		e.FinalizedAt = &suite.now
		finalized[i] = e
	}

	expectTx(suite.txManager, true)
	suite.ledgerRepo.On("LockDueEntries", ctx, mock.Anything, suite.now).Return(due, nil).Once()
	suite.ledgerRepo.On("FinalizeEntries", ctx, mock.Anything, []string{older.ID, newer.ID}, suite.now).Return(finalized, nil).Once()

	var written []domain.LedgerEvent
	suite.ledgerRepo.On("AppendEvents", ctx, mock.Anything, mock.AnythingOfType("[]domain.LedgerEvent")).
		Run(func(args mock.Arguments) { written = args.Get(2).([]domain.LedgerEvent) }).
		Return(nil).Once()

	result, err := suite.service.RunFinalization(ctx)

	suite.Require().NoError(err)
	suite.Equal(2, result.FinalizedCount)
	suite.Require().Len(written, 2)
	for i, ev := range written {
		suite.Equal(domain.ActionAutoFinalized, ev.Action)
		suite.Nil(ev.ActorUserID)
		suite.Equal(due[i].ID, ev.LedgerEntryID)
		suite.Equal(due[i].FinalizesAt.Format(time.RFC3339Nano), ev.Metadata["original_finalizes_at"])
		suite.Equal(utils.FormatAmount(due[i].Amount, due[i].Currency), ev.Metadata["amount"])
		suite.Equal(string(due[i].EntryType), ev.Metadata["entry_type"])
		suite.Equal("SAR", ev.Metadata["currency"])
		suite.Equal(suite.now.Format(time.RFC3339Nano), ev.Metadata["run_at"])
	}
	suite.txManager.AssertExpectations(suite.T())
}

func (suite *FinalizationServiceTestSuite) TestRunFinalization_AuditFailureRollsBackBatch() {
	ctx := context.Background()
	entry := suite.dueEntry(time.Hour, 10, domain.EntryTypePayment)
	finalizedEntry := entry
	finalizedEntry.Status = domain.EntryStatusFinalized

	expectTx(suite.txManager, false)
	suite.ledgerRepo.On("LockDueEntries", ctx, mock.Anything, suite.now).Return([]domain.LedgerEntry{entry}, nil).Once()
	suite.ledgerRepo.On("FinalizeEntries", ctx, mock.Anything, []string{entry.ID}, suite.now).Return([]domain.LedgerEntry{finalizedEntry}, nil).Once()
	suite.ledgerRepo.On("AppendEvents", ctx, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	result, err := suite.service.RunFinalization(ctx)

	suite.ErrorIs(err, assert.AnError)
	suite.Nil(result)
	suite.txManager.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.txManager.AssertCalled(suite.T(), "Rollback", mock.Anything, mock.Anything)
}

func (suite *FinalizationServiceTestSuite) TestRunFinalization_BeginFails() {
	ctx := context.Background()
	suite.txManager.On("Begin", mock.Anything).Return(nil, assert.AnError).Once()

	_, err := suite.service.RunFinalization(ctx)

	suite.ErrorIs(err, assert.AnError)
	suite.ledgerRepo.AssertNotCalled(suite.T(), "LockDueEntries", mock.Anything, mock.Anything, mock.Anything)
}

func TestFinalizationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FinalizationServiceTestSuite))
}
