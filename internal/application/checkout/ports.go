package checkout

import (
	"context"

	"github.com/tindahan/backend/internal/domain/checkout"
)

// OrderLog records a composed order on the background channel. It is a
// best-effort side channel: the orchestrator initiates delivery on a
// detached task and discards any error.
type OrderLog interface {
	Record(ctx context.Context, endpoint string, payload checkout.OrderPayload) error
}

// TaskRunner launches detached background work. Implementations must
// survive a panicking task and must not let the task's lifetime block the
// caller.
type TaskRunner interface {
	Detach(name string, fn func(ctx context.Context) error)
}

// Metrics observes dispatch outcomes. Implementations must be safe for
// concurrent use.
type Metrics interface {
	DispatchSucceeded(ctx context.Context)
	DispatchRejected(ctx context.Context, reason string)
	OrderLogFailed(ctx context.Context)
}

// NopMetrics discards all observations
type NopMetrics struct{}

func (NopMetrics) DispatchSucceeded(context.Context)        {}
func (NopMetrics) DispatchRejected(context.Context, string) {}
func (NopMetrics) OrderLogFailed(context.Context)           {}
