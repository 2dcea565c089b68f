package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	appcheckout "github.com/tindahan/backend/internal/application/checkout"
)

// DispatchMetrics tracks checkout dispatch outcomes. It implements the
// checkout orchestrator's metrics port on top of OpenTelemetry counters.
type DispatchMetrics struct {
	logger *zap.Logger

	dispatchSucceededTotal metric.Int64Counter
	dispatchRejectedTotal  metric.Int64Counter
	orderLogFailedTotal    metric.Int64Counter
}

// NewDispatchMetrics creates dispatch metrics on the given meter
func NewDispatchMetrics(meter metric.Meter, logger *zap.Logger) (*DispatchMetrics, error) {
	succeeded, err := meter.Int64Counter(
		"storefront_dispatch_succeeded_total",
		metric.WithDescription("Total number of orders dispatched to the interactive channel"),
		metric.WithUnit("{orders}"),
	)
	if err != nil {
		return nil, err
	}

	rejected, err := meter.Int64Counter(
		"storefront_dispatch_rejected_total",
		metric.WithDescription("Total number of checkout attempts rejected before dispatch"),
		metric.WithUnit("{attempts}"),
	)
	if err != nil {
		return nil, err
	}

	logFailed, err := meter.Int64Counter(
		"storefront_order_log_failed_total",
		metric.WithDescription("Total number of failed background order log deliveries"),
		metric.WithUnit("{requests}"),
	)
	if err != nil {
		return nil, err
	}

	return &DispatchMetrics{
		logger:                 logger,
		dispatchSucceededTotal: succeeded,
		dispatchRejectedTotal:  rejected,
		orderLogFailedTotal:    logFailed,
	}, nil
}

// DispatchSucceeded records a successful dispatch
func (m *DispatchMetrics) DispatchSucceeded(ctx context.Context) {
	m.dispatchSucceededTotal.Add(ctx, 1)
}

// DispatchRejected records a rejected checkout attempt with its reason
func (m *DispatchMetrics) DispatchRejected(ctx context.Context, reason string) {
	m.dispatchRejectedTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("reason", reason)))
}

// OrderLogFailed records a failed background order log delivery
func (m *DispatchMetrics) OrderLogFailed(ctx context.Context) {
	m.orderLogFailedTotal.Add(ctx, 1)
}

var _ appcheckout.Metrics = (*DispatchMetrics)(nil)
