package scheduler_test

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/SscSPs/settlement_ledger/internal/scheduler"
	"github.com/stretchr/testify/assert"
)

type countingFinalizer struct {
	calls atomic.Int32
	err   error
}

func (c *countingFinalizer) RunFinalization(ctx context.Context) (*domain.FinalizationResult, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return &domain.FinalizationResult{FinalizedCount: 1, RanAt: time.Now()}, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFinalizer_RunsImmediatelyAndOnTick(t *testing.T) {
	svc := &countingFinalizer{}
	f := scheduler.NewFinalizer(svc, 10*time.Millisecond, quietLogger())

	f.Start(context.Background())
	assert.Eventually(t, func() bool { return svc.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	f.Stop()

	stoppedAt := svc.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stoppedAt, svc.calls.Load(), "no runs after Stop")
}

func TestFinalizer_StopsOnContextCancel(t *testing.T) {
	svc := &countingFinalizer{}
	f := scheduler.NewFinalizer(svc, time.Hour, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())

	f.Start(ctx)
	assert.Eventually(t, func() bool { return svc.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		f.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("finalizer did not stop after context cancel")
	}
}

func TestFinalizer_KeepsRunningAfterFailure(t *testing.T) {
	svc := &countingFinalizer{err: assert.AnError}
	f := scheduler.NewFinalizer(svc, 10*time.Millisecond, quietLogger())

	f.Start(context.Background())
	assert.Eventually(t, func() bool { return svc.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	f.Stop()
}
