package services

import (
	"context"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/SscSPs/settlement_ledger/internal/dto"
)

// PaymentIntentWriterSvc defines the merchant side of payment intents
type PaymentIntentWriterSvc interface {
	// CreateIntent stores a new intent and renders its QR code. It has no ledger side effect.
	CreateIntent(ctx context.Context, staffID string, req dto.CreatePaymentIntentRequest) (*dto.CreatePaymentIntentResponse, error)
}

// PaymentIntentReaderSvc lets staff poll an intent
type PaymentIntentReaderSvc interface {
	GetIntent(ctx context.Context, staffID, intentID string) (*domain.PaymentIntent, error)
}

// PaymentIntentConfirmerSvc defines the customer side of payment intents
type PaymentIntentConfirmerSvc interface {
	// ConfirmIntent turns the intent into a pending payment entry exactly once.
	ConfirmIntent(ctx context.Context, customerUserID string, req dto.ConfirmPaymentIntentRequest) (*domain.LedgerEntry, error)
}

// PaymentIntentSvcFacade combines all payment intent service interfaces
type PaymentIntentSvcFacade interface {
	PaymentIntentWriterSvc
	PaymentIntentReaderSvc
	PaymentIntentConfirmerSvc
}
