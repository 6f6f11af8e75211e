// Package metrics provides Prometheus-based monitoring and metrics collection
// functionality for applications using the InfluxDB client.
//
// The metrics package exposes a configurable /metrics HTTP endpoint and owns
// the operation observer that the client packages report into, so database
// operations, Go runtime metrics and process metrics are all scraped from
// one place.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: Defines the contract for metrics operations
//   - Metrics struct: Concrete implementation of the MetricsCollector interface
//   - NewMetrics constructor: Returns *Metrics (concrete type)
//   - FX module: Provides *Metrics and the observability.Observer for
//     dependency injection
//
// Core Features:
//   - Exposes a configurable /metrics endpoint for Prometheus scraping
//   - Integration with go.uber.org/fx for automatic lifecycle management
//   - Automatic registration of Go runtime and process-level metrics
//   - Per-operation counters and latency histograms for database clients
//   - Support for custom metric registration (counters, gauges, histograms)
//   - Service name labelling for multi-service observability
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create metrics directly:
//
//	import "github.com/asphalt-framework/asphalt-influxdb/v1/metrics"
//
//	cfg := metrics.Config{
//		Address:                 ":9090",
//		ServiceName:             "ingest-worker",
//		EnableDefaultCollectors: true,
//	}
//
//	m := metrics.NewMetrics(cfg)
//	go m.Server.ListenAndServe()
//
//	// Report client operations into the registry
//	client = client.WithObserver(m.Observer())
//
// # FX Module Integration
//
// For production applications using Uber's fx, use the FXModule. It provides
// the observability.Observer, so the InfluxDB client module picks it up
// through its optional observer dependency:
//
//	import (
//		"go.uber.org/fx"
//		"github.com/asphalt-framework/asphalt-influxdb/v1/influxdb"
//		"github.com/asphalt-framework/asphalt-influxdb/v1/metrics"
//	)
//
//	app := fx.New(
//		metrics.FXModule,
//		influxdb.FXModule,
//		fx.Provide(func() metrics.Config {
//			return metrics.Config{
//				Address:                 ":9090",
//				ServiceName:             "ingest-worker",
//				EnableDefaultCollectors: true,
//			}
//		}),
//	)
//	app.Run()
//
// # Custom Metrics
//
// Applications can register additional Prometheus metrics using the exposed
// factories or the Registry directly. For example:
//
//	batchSize := m.CreateHistogram(
//	    "ingest_batch_points",
//	    "Number of points per ingested batch.",
//	    []string{"source"},
//	    prometheus.ExponentialBuckets(1, 4, 8),
//	)
//	batchSize.WithLabelValues("sensors").Observe(float64(len(points)))
//
// # Thread Safety
//
// All methods on the Metrics struct and Prometheus collectors are safe for
// concurrent use by multiple goroutines.
package metrics
