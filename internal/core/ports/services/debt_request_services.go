package services

import (
	"context"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/SscSPs/settlement_ledger/internal/dto"
)

// DebtRequestWriterSvc defines the merchant side of debt requests
type DebtRequestWriterSvc interface {
	CreateDebtRequest(ctx context.Context, staffID string, req dto.CreateDebtRequestRequest) (*domain.DebtRequest, error)
}

// DebtRequestReaderSvc lists debt requests in the caller's scope
type DebtRequestReaderSvc interface {
	ListDebtRequests(ctx context.Context, callerID string, params dto.ListDebtRequestsParams) ([]domain.DebtRequest, error)
}

// DebtRequestDecisionSvc defines the customer's accept/reject decision
type DebtRequestDecisionSvc interface {
	ConfirmDebtRequest(ctx context.Context, customerUserID, debtRequestID string, req dto.ConfirmDebtRequestRequest) (*domain.LedgerEntry, *domain.DebtRequest, error)
	RejectDebtRequest(ctx context.Context, customerUserID, debtRequestID string, req dto.RejectDebtRequestRequest) (*domain.DebtRequest, error)
}

// DebtRequestSvcFacade combines all debt request service interfaces
type DebtRequestSvcFacade interface {
	DebtRequestWriterSvc
	DebtRequestReaderSvc
	DebtRequestDecisionSvc
}
