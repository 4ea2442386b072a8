package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Business is the merchant side of every ledger entry.
type Business struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// StaffRole is a user's role inside a business.
type StaffRole string

const (
	RoleOwner   StaffRole = "OWNER"
	RoleManager StaffRole = "MANAGER"
	RoleCashier StaffRole = "CASHIER" // point-of-sale staff
)

func (r StaffRole) rank() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleManager:
		return 2
	case RoleCashier:
		return 1
	default:
		return 0
	}
}

// Satisfies reports whether r grants at least the required role.
func (r StaffRole) Satisfies(required StaffRole) bool {
	return r.rank() > 0 && r.rank() >= required.rank()
}

// BusinessMember links a user to a business with a role.
type BusinessMember struct {
	BusinessID string    `json:"businessId"`
	UserID     string    `json:"userId"`
	Role       StaffRole `json:"role"`
	JoinedAt   time.Time `json:"joinedAt"`
}

// Customer is the per-business record of an authenticated user.
type Customer struct {
	ID          string          `json:"id"`
	BusinessID  string          `json:"businessId"`
	UserID      string          `json:"userId"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
	CreatedAt   time.Time       `json:"createdAt"`
}
