package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/middleware"
	"github.com/SscSPs/settlement_ledger/internal/platform/analytics"
	"github.com/jackc/pgx/v5"
)

// BaseService provides common functionality for all services
type BaseService struct {
	BusinessAuthorizer portssvc.BusinessAuthorizerSvc
	Clock              domain.Clock
	Analytics          analytics.Tracker
}

// ServiceOption is a functional option shared by the workflow services
type ServiceOption func(*BaseService)

// WithBusinessAuthorizer adds the ownership and scope dependency
func WithBusinessAuthorizer(authorizer portssvc.BusinessAuthorizerSvc) ServiceOption {
	return func(s *BaseService) {
		s.BusinessAuthorizer = authorizer
	}
}

// WithClock overrides the wall clock
func WithClock(clock domain.Clock) ServiceOption {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

// WithAnalytics adds a product analytics sink
func WithAnalytics(tracker analytics.Tracker) ServiceOption {
	return func(s *BaseService) {
		s.Analytics = tracker
	}
}

func (s *BaseService) apply(options []ServiceOption) {
	for _, option := range options {
		option(s)
	}
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// now returns the service clock in UTC.
func (s *BaseService) now() time.Time {
	if s.Clock == nil {
		return domain.UTCNow()
	}
	return s.Clock().UTC()
}

func (s *BaseService) track(distinctID, event string, properties map[string]any) {
	if s.Analytics == nil || !s.Analytics.Enabled() {
		return
	}
	s.Analytics.Enqueue(distinctID, event, properties)
}

// AuthorizeStaff fails closed when no authorizer was wired.
func (s *BaseService) AuthorizeStaff(ctx context.Context, userID, businessID string, required domain.StaffRole) error {
	if s.BusinessAuthorizer == nil {
		return fmt.Errorf("%w: business authorizer not configured", apperrors.ErrConfiguration)
	}
	return s.BusinessAuthorizer.AuthorizeStaff(ctx, userID, businessID, required)
}

// ResolveScope fails closed when no authorizer was wired.
func (s *BaseService) ResolveScope(ctx context.Context, userID, businessID string) (*portssvc.Scope, error) {
	if s.BusinessAuthorizer == nil {
		return nil, fmt.Errorf("%w: business authorizer not configured", apperrors.ErrConfiguration)
	}
	return s.BusinessAuthorizer.ResolveScope(ctx, userID, businessID)
}

// withTx runs fn in a transaction. Any error from fn rolls everything back.
func (s *BaseService) withTx(ctx context.Context, txManager portsrepo.TransactionManager, fn func(tx pgx.Tx) error) error {
	tx, err := txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := txManager.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back transaction")
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return txManager.Commit(ctx, tx)
}

// pageBounds clamps listing limits to 1..100 with a default of 20.
func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
