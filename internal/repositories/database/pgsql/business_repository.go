package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const customerColumns = `id, business_id, user_id, credit_limit, created_at`

// PgxBusinessRepository reads businesses, staff membership and customers.
type PgxBusinessRepository struct {
	BaseRepository
}

func newPgxBusinessRepository(pool Querier) *PgxBusinessRepository {
	return &PgxBusinessRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BusinessRepositoryFacade = (*PgxBusinessRepository)(nil)

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var c domain.Customer
	if err := row.Scan(&c.ID, &c.BusinessID, &c.UserID, &c.CreditLimit, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgxBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	query := `SELECT id, name, owner_id, created_at FROM businesses WHERE id = $1;`
	var b domain.Business
	err := r.Pool.QueryRow(ctx, query, businessID).Scan(&b.ID, &b.Name, &b.OwnerID, &b.CreatedAt)
	if err != nil {
		return nil, translateError(err, "failed to find business "+businessID)
	}
	return &b, nil
}

// FindMemberRole returns the caller's membership. The owner is reported as OWNER even without a member row.
func (r *PgxBusinessRepository) FindMemberRole(ctx context.Context, userID, businessID string) (*domain.BusinessMember, error) {
	query := `
		SELECT b.id,
		       CASE WHEN b.owner_id = $1 THEN 'OWNER' ELSE m.role END,
		       COALESCE(m.joined_at, b.created_at)
		FROM businesses b
		LEFT JOIN business_members m ON m.business_id = b.id AND m.user_id = $1
		WHERE b.id = $2 AND (b.owner_id = $1 OR m.user_id IS NOT NULL);
	`
	member := domain.BusinessMember{UserID: userID}
	var role string
	err := r.Pool.QueryRow(ctx, query, userID, businessID).Scan(&member.BusinessID, &role, &member.JoinedAt)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("failed to find membership of user %s in business %s", userID, businessID))
	}
	member.Role = domain.StaffRole(role)
	return &member, nil
}

func (r *PgxBusinessRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1;`
	c, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		return nil, translateError(err, "failed to find customer "+customerID)
	}
	return c, nil
}

func (r *PgxBusinessRepository) FindCustomerByUser(ctx context.Context, businessID, userID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE business_id = $1 AND user_id = $2;`
	c, err := scanCustomer(r.Pool.QueryRow(ctx, query, businessID, userID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("failed to find customer for user %s in business %s", userID, businessID))
	}
	return c, nil
}

func (r *PgxBusinessRepository) ListCustomersByUser(ctx context.Context, userID string) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE user_id = $1 ORDER BY business_id;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying customers for user %s: %w", userID, err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", err)
	}
	return customers, nil
}

// ResolveOrCreateCustomer returns the customer for (business, user), creating it with a zero
// credit limit when absent. Concurrent callers converge on the same row.
func (r *PgxBusinessRepository) ResolveOrCreateCustomer(ctx context.Context, tx pgx.Tx, businessID, userID string) (*domain.Customer, error) {
	insert := `
		INSERT INTO customers (id, business_id, user_id, credit_limit, created_at)
		VALUES ($1, $2, $3, 0, $4)
		ON CONFLICT (business_id, user_id) DO NOTHING;
	`
	if _, err := tx.Exec(ctx, insert, uuid.NewString(), businessID, userID, time.Now().UTC()); err != nil {
		return nil, translateError(err, fmt.Sprintf("failed to create customer for user %s in business %s", userID, businessID))
	}

	query := `SELECT ` + customerColumns + ` FROM customers WHERE business_id = $1 AND user_id = $2;`
	c, err := scanCustomer(tx.QueryRow(ctx, query, businessID, userID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("failed to resolve customer for user %s in business %s", userID, businessID))
	}
	return c, nil
}
