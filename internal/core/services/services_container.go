package services

import (
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/platform/analytics"
	"github.com/SscSPs/settlement_ledger/internal/platform/config"
)

// qrImageSize is the edge length in pixels of generated payment QR codes.
const qrImageSize = 256

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, tracker analytics.Tracker) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The authorizer comes first since every workflow depends on it
	container.Business = NewBusinessService(repos.BusinessRepo)

	shared := []ServiceOption{
		WithBusinessAuthorizer(container.Business),
		WithAnalytics(tracker),
	}

	container.PaymentIntent = NewPaymentIntentService(
		repos.TxManager,
		repos.PaymentIntentRepo,
		repos.LedgerRepo,
		repos.BusinessRepo,
		PaymentIntentSettings{
			TTL:                cfg.PaymentIntentTTL,
			FinalizationWindow: cfg.FinalizationWindow,
			QRBaseURL:          cfg.QRBaseURL,
			QR:                 NewQRCodeRenderer(qrImageSize),
		},
		shared...,
	)
	container.DebtRequest = NewDebtRequestService(
		repos.TxManager,
		repos.DebtRequestRepo,
		repos.LedgerRepo,
		repos.BusinessRepo,
		cfg.FinalizationWindow,
		shared...,
	)
	container.Ledger = NewLedgerService(repos.LedgerRepo, shared...)
	container.Balance = NewBalanceService(repos.BalanceRepo, shared...)
	container.Finalization = NewFinalizationService(repos.TxManager, repos.LedgerRepo, shared...)

	return container
}
