package influxdb

import (
	"context"
	"time"
)

// Client provides a high-level interface for interacting with InfluxDB.
// It covers the managed client lifecycle, point writing over the line
// protocol, and query execution with typed result decoding.
//
// This interface is implemented by the concrete *InfluxDBClient type.
type Client interface {
	// Connection and lifecycle
	Start(ctx context.Context) error
	Ping(ctx context.Context) (string, error)
	Close() error

	// Write operations
	WritePoint(ctx context.Context, measurement string, tags map[string]string,
		fields map[string]interface{}, timestamp time.Time, opts ...WriteOption) error
	WritePoints(ctx context.Context, points []*Point, opts ...WriteOption) error

	// Query operations
	Query(ctx context.Context, q Query) (*ResultSet, error)
	RawQuery(ctx context.Context, statement string) (*ResultSet, error)
	Select(keys ...string) *SelectBuilder
}
