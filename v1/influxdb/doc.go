// Package influxdb provides a managed client for the InfluxDB HTTP API.
//
// The influxdb package offers point writing over the line protocol, query
// execution with typed result decoding, and connection lifecycle management
// with a focus on safe concurrent use from many goroutines.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - Client interface: Defines the contract for InfluxDB operations
//   - InfluxDBClient struct: Concrete implementation of the Client interface
//   - NewClient constructor: Returns *InfluxDBClient (concrete type)
//   - FX module: Provides the client and manages its lifecycle for dependency injection
//
// Core Features:
//   - Single pooled HTTP session shared safely by all concurrent callers
//   - Concurrency capped by a configurable connection limit
//   - Automatic single retry of idempotent requests on transient failures
//   - Cluster support with failover across multiple server addresses
//   - Line protocol encoding with deterministic, sorted tag output
//   - Typed decoding of query result sets with strict precision handling
//   - Runtime validation of values crossing the API boundary
//   - TLS/SSL support for secure connections
//
// # Lifecycle
//
// A client moves through three states: Uninitialized -> Started -> Closed.
// Operations are only permitted in the Started state; Start and Close each
// happen exactly once, and Close is idempotent. The host application owns
// the lifecycle: it creates the client once, shares it across concurrent
// callers, and closes it during its own shutdown sequence.
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create a client directly:
//
//	import (
//		"context"
//		"time"
//
//		"github.com/asphalt-framework/asphalt-influxdb/v1/influxdb"
//	)
//
//	client, err := influxdb.NewClient(influxdb.Config{
//		Host:     "localhost",
//		Port:     8086,
//		Database: "metrics",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := client.Start(context.Background()); err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Write a point
//	err = client.WritePoint(ctx, "cpu",
//		map[string]string{"host": "a", "region": "us"},
//		map[string]interface{}{"value": 0.64},
//		time.Now())
//
//	// Query
//	result, err := client.Query(ctx, influxdb.Query{
//		Statement: "SELECT value FROM cpu WHERE host = $host",
//		Params:    map[string]interface{}{"host": "a"},
//	})
//
// # FX Module Integration
//
// For production applications using Uber's fx, use the FXModule which wires
// construction, startup ping and shutdown into the application lifecycle:
//
//	app := fx.New(
//	    influxdb.FXModule,
//	    fx.Provide(func() influxdb.Config {
//	        return loadInfluxDBConfig()
//	    }),
//	)
//	app.Run()
//
// # Query Builder
//
// SELECT statements can be composed programmatically:
//
//	result, err := client.Select("mean(value)").
//		From("cpu").
//		Where("time > now() - 1h").
//		GroupBy("host").
//		Execute(ctx)
//
// # Error Handling
//
// Failures carry structured detail: TypeMismatchError and EncodingError
// are detected before anything is sent; ConnectionError wraps transport
// failures after the retry policy is exhausted; QueryExecutionError carries
// the server's message verbatim and is never retried. Lifecycle misuse
// surfaces as ErrNotStarted or ErrClientClosed.
//
// # Thread Safety
//
// A single client instance is safe for concurrent use. No operation blocks
// another except for backpressure when all connection slots are in use.
// Callers needing write ordering must serialize their own calls or use
// explicit timestamps.
package influxdb
