package repositories

import (
	"context"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// BusinessReader defines read operations for businesses and their staff
type BusinessReader interface {
	FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)

	// FindMemberRole returns the caller's membership. The business owner is always reported as OWNER.
	FindMemberRole(ctx context.Context, userID, businessID string) (*domain.BusinessMember, error)
}

// CustomerReader defines read operations for per-business customer records
type CustomerReader interface {
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	FindCustomerByUser(ctx context.Context, businessID, userID string) (*domain.Customer, error)
	ListCustomersByUser(ctx context.Context, userID string) ([]domain.Customer, error)
}

// CustomerWriter defines write operations for customers
type CustomerWriter interface {
	// ResolveOrCreateCustomer returns the customer for (business, user), creating it inside tx when absent.
	ResolveOrCreateCustomer(ctx context.Context, tx pgx.Tx, businessID, userID string) (*domain.Customer, error)
}

// BusinessRepositoryFacade combines business and customer access
type BusinessRepositoryFacade interface {
	BusinessReader
	CustomerReader
	CustomerWriter
}
