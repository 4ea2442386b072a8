package pgsql

import (
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx repository over one shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	ledgerRepo := newPgxLedgerRepository(pool)
	return portsrepo.RepositoryProvider{
		TxManager:         ledgerRepo,
		LedgerRepo:        ledgerRepo,
		PaymentIntentRepo: newPgxPaymentIntentRepository(pool),
		DebtRequestRepo:   newPgxDebtRequestRepository(pool),
		BusinessRepo:      newPgxBusinessRepository(pool),
		BalanceRepo:       newPgxBalanceRepository(pool),
	}
}
