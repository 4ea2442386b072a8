package pgsql

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNumericOutOfRange   = "22003"
)

// idempotencyConstraints are the unique keys that mean "this request already settled".
var idempotencyConstraints = map[string]bool{
	"uq_ledger_entries_payment_intent": true,
	"uq_ledger_entries_debt_request":   true,
}

// translateError maps driver errors onto the application taxonomy.
// what names the operation for the wrapped message.
func translateError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if idempotencyConstraints[pgErr.ConstraintName] {
				return fmt.Errorf("%s: %w", what, apperrors.ErrAlreadyProcessed)
			}
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, what)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: referenced record missing: %w", what, apperrors.ErrNotFound)
		case pgCheckViolation:
			return apperrors.NewAppError(http.StatusBadRequest, "request violates a ledger constraint",
				fmt.Errorf("%s violates %s", what, pgErr.ConstraintName))
		case pgNumericOutOfRange:
			return apperrors.NewAppError(http.StatusBadRequest, "amount is out of range",
				fmt.Errorf("%s: %s", what, pgErr.Message))
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}
