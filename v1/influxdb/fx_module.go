package influxdb

import (
	"context"
	"log"

	"github.com/asphalt-framework/asphalt-influxdb/v1/observability"
	"go.uber.org/fx"
)

// FXModule is an fx.Module that provides and configures the InfluxDB client.
// This module registers the client with the Fx dependency injection framework,
// making it available to other components in the application.
//
// The module:
// 1. Provides the InfluxDB client factory function
// 2. Invokes the lifecycle registration to manage the client's lifecycle
//
// Usage:
//
//	app := fx.New(
//	    influxdb.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("influxdb",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterInfluxDBLifecycle),
)

// InfluxDBParams groups the dependencies needed to create an InfluxDB client
type InfluxDBParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"` // Optional logger from v1/logger
	Observer observability.Observer `optional:"true"` // Optional operation observer
}

// NewClientWithDI creates a new InfluxDB client using dependency injection.
// This function is designed to be used with Uber's fx dependency injection
// framework where dependencies are automatically provided via the
// InfluxDBParams struct.
//
// Parameters:
//   - params: An InfluxDBParams struct that contains the Config instance
//     and optionally a Logger and an Observer. This struct embeds fx.In to
//     enable automatic injection of these dependencies.
//
// Returns:
//   - *InfluxDBClient: A fully constructed client, still in the
//     Uninitialized state; the lifecycle hook starts it.
//
// Example usage with fx:
//
//	app := fx.New(
//	    influxdb.FXModule,
//	    logger.FXModule, // Optional: provides logger
//	    fx.Provide(
//	        func() influxdb.Config {
//	            return loadInfluxDBConfig() // Your config loading function
//	        },
//	    ),
//	)
func NewClientWithDI(params InfluxDBParams) (*InfluxDBClient, error) {
	// Inject the logger into the config if provided
	if params.Logger != nil {
		params.Config.Logger = params.Logger
	}

	client, err := NewClient(params.Config)
	if err != nil {
		return nil, err
	}
	if params.Observer != nil {
		client = client.WithObserver(params.Observer)
	}
	return client, nil
}

// InfluxDBLifecycleParams groups the dependencies needed for lifecycle management
type InfluxDBLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *InfluxDBClient
}

// RegisterInfluxDBLifecycle registers the InfluxDB client with the fx
// lifecycle system. This function sets up proper initialization and
// graceful shutdown of the client.
//
// The function:
//  1. On application start: Starts the client and pings the server to
//     ensure the connection is healthy
//  2. On application stop: Closes the client, releasing all pooled
//     connections. Close is called exactly once by the host.
//
// This ensures that the client remains available throughout the
// application's lifetime and is properly cleaned up during shutdown.
func RegisterInfluxDBLifecycle(params InfluxDBLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := params.Client.Start(ctx); err != nil {
				return err
			}
			version, err := params.Client.Ping(ctx)
			if err != nil {
				log.Printf("WARN: Failed to ping InfluxDB on startup: %v", err)
				return err
			}
			log.Printf("INFO: InfluxDB client started (server version %s)", version)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("INFO: Shutting down InfluxDB client")
			return params.Client.Close()
		},
	})
}
