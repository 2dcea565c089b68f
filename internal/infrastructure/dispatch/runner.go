package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	appcheckout "github.com/tindahan/backend/internal/application/checkout"
)

// DetachedRunner executes background tasks on their own goroutines, detached
// from the request that spawned them. Each task gets a fresh context with the
// configured timeout, a recover guard, and its outcome logged.
type DetachedRunner struct {
	logger  *zap.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDetachedRunner creates a runner whose tasks are bounded by timeout
func NewDetachedRunner(logger *zap.Logger, timeout time.Duration) *DetachedRunner {
	return &DetachedRunner{
		logger:  logger,
		timeout: timeout,
	}
}

// Detach runs fn on its own goroutine. The caller returns immediately; the
// task's error or panic is logged, never propagated.
func (r *DetachedRunner) Detach(name string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		start := time.Now()
		err := r.run(ctx, fn)
		if err != nil {
			r.logger.Warn("Detached task failed",
				zap.String("task", name),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err),
			)
			return
		}
		r.logger.Debug("Detached task completed",
			zap.String("task", name),
			zap.Duration("elapsed", time.Since(start)),
		)
	}()
}

// run invokes fn, converting a panic into an error
func (r *DetachedRunner) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("task panicked: %v", rec)
		}
	}()
	return fn(ctx)
}

// Wait blocks until all detached tasks have finished. Intended for graceful
// shutdown and tests.
func (r *DetachedRunner) Wait() {
	r.wg.Wait()
}

var _ appcheckout.TaskRunner = (*DetachedRunner)(nil)
