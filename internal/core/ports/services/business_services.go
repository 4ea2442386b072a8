package services

import (
	"context"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
)

// Scope is who the caller is relative to a business.
type Scope struct {
	// Merchant is true for staff holding at least the manager role.
	Merchant bool
	// Customer is the caller's own customer row. Nil when the caller has none.
	Customer *domain.Customer
}

// BusinessAuthorizerSvc answers ownership and scope questions for the workflows
type BusinessAuthorizerSvc interface {
	// AuthorizeStaff returns apperrors.ErrNotFound when the user is not staff of the business
	// and apperrors.ErrForbidden when the role is insufficient.
	AuthorizeStaff(ctx context.Context, userID, businessID string, required domain.StaffRole) error

	// ResolveScope decides whether the caller sees the whole business or only their own customer row.
	ResolveScope(ctx context.Context, userID, businessID string) (*Scope, error)
}
