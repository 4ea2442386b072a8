package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PaymentIntentReader defines read operations for payment intents
type PaymentIntentReader interface {
	FindIntentByID(ctx context.Context, intentID string) (*domain.PaymentIntent, error)

	// FindIntentByIDForUpdate loads the intent and locks its row until tx ends.
	FindIntentByIDForUpdate(ctx context.Context, tx pgx.Tx, intentID string) (*domain.PaymentIntent, error)
}

// PaymentIntentWriter defines write operations for payment intents
type PaymentIntentWriter interface {
	SaveIntent(ctx context.Context, intent domain.PaymentIntent) error

	// MarkIntentUsed moves a created intent to used. Zero affected rows is apperrors.ErrInvalidStatus.
	MarkIntentUsed(ctx context.Context, tx pgx.Tx, intentID, ledgerEntryID string, usedAt time.Time) error

	// MarkIntentExpired moves a created intent to expired.
	MarkIntentExpired(ctx context.Context, tx pgx.Tx, intentID string) error
}

// PaymentIntentRepositoryFacade combines all payment intent repository interfaces
type PaymentIntentRepositoryFacade interface {
	PaymentIntentReader
	PaymentIntentWriter
}
