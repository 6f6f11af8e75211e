package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsObserver is an Observer implementation backed by Prometheus.
// It records a counter of operations by component/operation/status and a
// histogram of operation durations.
//
// All collectors are registered on the registry passed to
// NewMetricsObserver, so each service keeps its own isolated registry.
type MetricsObserver struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	operationSize     *prometheus.HistogramVec
}

// NewMetricsObserver creates a MetricsObserver and registers its collectors
// on the given registry.
//
// Example:
//
//	registry := prometheus.NewRegistry()
//	observer := observability.NewMetricsObserver(registry)
//	client = client.WithObserver(observer)
func NewMetricsObserver(registry prometheus.Registerer) *MetricsObserver {
	o := &MetricsObserver{
		operationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "client_operations_total",
				Help: "Total number of client operations by component, operation and status",
			},
			[]string{"component", "operation", "status"},
		),
		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "client_operation_duration_seconds",
				Help:    "Duration of client operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"component", "operation"},
		),
		operationSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "client_operation_size_bytes",
				Help:    "Payload size of client operations in bytes",
				Buckets: prometheus.ExponentialBuckets(64, 4, 8),
			},
			[]string{"component", "operation"},
		),
	}

	registry.MustRegister(o.operationsTotal, o.operationDuration, o.operationSize)
	return o
}

// ObserveOperation implements the Observer interface.
func (o *MetricsObserver) ObserveOperation(ctx OperationContext) {
	status := "success"
	if ctx.Error != nil {
		status = "error"
	}

	o.operationsTotal.WithLabelValues(ctx.Component, ctx.Operation, status).Inc()
	o.operationDuration.WithLabelValues(ctx.Component, ctx.Operation).Observe(ctx.Duration.Seconds())
	if ctx.Size > 0 {
		o.operationSize.WithLabelValues(ctx.Component, ctx.Operation).Observe(float64(ctx.Size))
	}
}
