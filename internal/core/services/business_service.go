package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
)

// businessService answers staff-role and scope questions
type businessService struct {
	BaseService
	businessRepo portsrepo.BusinessRepositoryFacade
}

// NewBusinessService creates a new business authorizer
func NewBusinessService(businessRepo portsrepo.BusinessRepositoryFacade) portssvc.BusinessAuthorizerSvc {
	return &businessService{businessRepo: businessRepo}
}

var _ portssvc.BusinessAuthorizerSvc = (*businessService)(nil)

// AuthorizeStaff checks that userID holds at least the required role on businessID.
// Non-members get NOT_FOUND so the business's existence is not leaked.
func (s *businessService) AuthorizeStaff(ctx context.Context, userID, businessID string, required domain.StaffRole) error {
	member, err := s.businessRepo.FindMemberRole(ctx, userID, businessID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User is not staff of business",
				slog.String("user_id", userID),
				slog.String("business_id", businessID))
			return apperrors.NewNotFoundError("business")
		}
		s.LogError(ctx, err, "Failed to look up staff role",
			slog.String("user_id", userID),
			slog.String("business_id", businessID))
		return err
	}

	if !member.Role.Satisfies(required) {
		s.LogDebug(ctx, "Staff role insufficient",
			slog.String("user_id", userID),
			slog.String("business_id", businessID),
			slog.String("role", string(member.Role)),
			slog.String("required_role", string(required)))
		return apperrors.NewForbiddenError(fmt.Sprintf("role %s or higher is required", required))
	}
	return nil
}

// ResolveScope returns merchant scope for managers and owners, and otherwise the caller's
// own customer row. A caller with neither gets an empty scope.
func (s *businessService) ResolveScope(ctx context.Context, userID, businessID string) (*portssvc.Scope, error) {
	member, err := s.businessRepo.FindMemberRole(ctx, userID, businessID)
	switch {
	case err == nil && member.Role.Satisfies(domain.RoleManager):
		return &portssvc.Scope{Merchant: true}, nil
	case err != nil && !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to look up staff role",
			slog.String("user_id", userID),
			slog.String("business_id", businessID))
		return nil, err
	}

	customer, err := s.businessRepo.FindCustomerByUser(ctx, businessID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &portssvc.Scope{}, nil
		}
		s.LogError(ctx, err, "Failed to look up customer record",
			slog.String("user_id", userID),
			slog.String("business_id", businessID))
		return nil, err
	}
	return &portssvc.Scope{Customer: customer}, nil
}
