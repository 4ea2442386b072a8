// Package analytics sends product events to PostHog. Without an API key every call is a no-op.
package analytics

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// Settlement events emitted by the workflows.
const (
	EventPaymentIntentConfirmed = "payment_intent_confirmed"
	EventDebtRequestConfirmed   = "debt_request_confirmed"
	EventDebtRequestRejected    = "debt_request_rejected"
	EventLedgerFinalized        = "ledger_batch_finalized"
)

// Tracker is the narrow surface the rest of the app depends on.
type Tracker interface {
	Enabled() bool
	Enqueue(distinctID, event string, properties map[string]any)
	Close()
}

// PosthogTracker wraps posthog.Client so callers never need a nil check.
type PosthogTracker struct {
	client posthog.Client
	logger *slog.Logger
}

var _ Tracker = (*PosthogTracker)(nil)

// NewPosthogTracker returns a disabled tracker when apiKey is empty.
func NewPosthogTracker(apiKey, endpoint string, logger *slog.Logger) *PosthogTracker {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, analytics disabled")
		return &PosthogTracker{}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to initialize posthog client, analytics disabled", slog.String("error", err.Error()))
		return &PosthogTracker{}
	}
	logger.Info("Posthog analytics enabled", slog.String("endpoint", endpoint))
	return &PosthogTracker{client: client, logger: logger}
}

func (t *PosthogTracker) Enabled() bool {
	return t != nil && t.client != nil
}

func (t *PosthogTracker) Enqueue(distinctID, event string, properties map[string]any) {
	if !t.Enabled() {
		return
	}
	err := t.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil {
		t.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

func (t *PosthogTracker) Close() {
	if !t.Enabled() {
		return
	}
	if err := t.client.Close(); err != nil {
		t.logger.Warn("Failed to flush analytics", slog.String("error", err.Error()))
	}
}
