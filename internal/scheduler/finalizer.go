// Package scheduler runs the ledger finalization engine on a fixed interval inside the server process.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/middleware"
)

// Finalizer periodically calls FinalizationSvc.RunFinalization. Overlapping runs are
// harmless because the engine locks the rows it promotes.
type Finalizer struct {
	svc      portssvc.FinalizationSvc
	interval time.Duration
	logger   *slog.Logger

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewFinalizer creates a stopped worker.
func NewFinalizer(svc portssvc.FinalizationSvc, interval time.Duration, logger *slog.Logger) *Finalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Finalizer{
		svc:      svc,
		interval: interval,
		logger:   logger.With(slog.String("component", "finalizer")),
		stopChan: make(chan struct{}),
	}
}

// Start launches the worker. It runs once immediately, then on every tick until
// ctx is cancelled or Stop is called.
func (f *Finalizer) Start(ctx context.Context) {
	f.wg.Add(1)
	go f.loop(ctx)
	f.logger.Info("Finalizer started", slog.Duration("interval", f.interval))
}

// Stop signals the worker and waits for an in-flight run to finish.
func (f *Finalizer) Stop() {
	f.stopOnce.Do(func() { close(f.stopChan) })
	f.wg.Wait()
	f.logger.Info("Finalizer stopped")
}

func (f *Finalizer) loop(ctx context.Context) {
	defer f.wg.Done()

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	f.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-f.stopChan:
			return
		case <-ticker.C:
			f.runOnce(ctx)
		}
	}
}

func (f *Finalizer) runOnce(ctx context.Context) {
	runCtx := middleware.WithLogger(ctx, f.logger)
	start := time.Now()

	result, err := f.svc.RunFinalization(runCtx)
	if err != nil {
		// The batch was rolled back; the next tick retries the same entries.
		f.logger.Error("Finalization run failed", slog.String("error", err.Error()))
		return
	}
	if result.FinalizedCount > 0 {
		f.logger.Info("Finalization run finished",
			slog.Int("finalized_count", result.FinalizedCount),
			slog.Duration("elapsed", time.Since(start)))
	}
}
