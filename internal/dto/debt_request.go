package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDebtRequestRequest defines the data a merchant needs to raise a debt claim.
type CreateDebtRequestRequest struct {
	BusinessID string          `json:"businessId" binding:"required"`
	CustomerID string          `json:"customerId" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   domain.Currency `json:"currency" binding:"required,currency"`
	Notes      *string         `json:"notes" binding:"omitempty,max=1000"`
	DueDate    *time.Time      `json:"dueDate"`
}

// Validate checks the rules struct tags cannot express.
func (r CreateDebtRequestRequest) Validate() error {
	if !r.Currency.IsSupported() {
		return apperrors.NewValidationError(fmt.Sprintf("unsupported currency %q", r.Currency))
	}
	return r.Currency.ValidateAmount(r.Amount)
}

// ConfirmDebtRequestRequest is the customer's acceptance of a debt request.
type ConfirmDebtRequestRequest struct {
	BusinessID *string `json:"businessId"`
}

// RejectDebtRequestRequest is the customer's refusal of a debt request.
type RejectDebtRequestRequest struct {
	BusinessID      *string `json:"businessId"`
	RejectionReason *string `json:"rejectionReason" binding:"omitempty,max=500"`
}

// ListDebtRequestsParams defines query parameters for listing debt requests.
type ListDebtRequestsParams struct {
	BusinessID string  `form:"businessId" binding:"required"`
	CustomerID *string `form:"customerId"`
	Status     *string `form:"status" binding:"omitempty,oneof=requested approved rejected"`
	Limit      int     `form:"limit,default=20" binding:"min=1,max=100"`
	Offset     int     `form:"offset,default=0" binding:"min=0"`
}

// DebtRequestResponse mirrors domain.DebtRequest.
type DebtRequestResponse struct {
	ID                  string                   `json:"id"`
	BusinessID          string                   `json:"businessId"`
	CustomerID          string                   `json:"customerId"`
	CreatedByStaffID    string                   `json:"createdByStaffId"`
	Amount              decimal.Decimal          `json:"amount"`
	Currency            domain.Currency          `json:"currency"`
	CreditLimitSnapshot *decimal.Decimal         `json:"creditLimitSnapshot,omitempty"`
	DueDate             *time.Time               `json:"dueDate,omitempty"`
	Notes               *string                  `json:"notes,omitempty"`
	Status              domain.DebtRequestStatus `json:"status"`
	MerchantConfirmedAt *time.Time               `json:"merchantConfirmedAt,omitempty"`
	CustomerConfirmedAt *time.Time               `json:"customerConfirmedAt,omitempty"`
	RejectionReason     *string                  `json:"rejectionReason,omitempty"`
	LedgerEntryID       *string                  `json:"ledgerEntryId,omitempty"`
	CreatedAt           time.Time                `json:"createdAt"`
	UpdatedAt           time.Time                `json:"updatedAt"`
}

// ConfirmDebtRequestResponse pairs the new ledger entry with the approved request.
type ConfirmDebtRequestResponse struct {
	LedgerEntry LedgerEntryResponse `json:"ledgerEntry"`
	DebtRequest DebtRequestResponse `json:"debtRequest"`
}

// ToDebtRequestResponse converts a domain.DebtRequest to its response DTO
func ToDebtRequestResponse(d *domain.DebtRequest) DebtRequestResponse {
	return DebtRequestResponse{
		ID:                  d.ID,
		BusinessID:          d.BusinessID,
		CustomerID:          d.CustomerID,
		CreatedByStaffID:    d.CreatedByStaffID,
		Amount:              d.Amount,
		Currency:            d.Currency,
		CreditLimitSnapshot: d.CreditLimitSnapshot,
		DueDate:             d.DueDate,
		Notes:               d.Notes,
		Status:              d.Status,
		MerchantConfirmedAt: d.MerchantConfirmedAt,
		CustomerConfirmedAt: d.CustomerConfirmedAt,
		RejectionReason:     d.RejectionReason,
		LedgerEntryID:       d.LedgerEntryID,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

// ToListDebtRequestResponse converts a slice of domain.DebtRequest to response DTOs
func ToListDebtRequestResponse(reqs []domain.DebtRequest) []DebtRequestResponse {
	res := make([]DebtRequestResponse, len(reqs))
	for i := range reqs {
		res[i] = ToDebtRequestResponse(&reqs[i])
	}
	return res
}
