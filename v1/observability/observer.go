package observability

import "time"

// OperationContext carries the details of a single client operation as
// reported to an Observer. Every client package in this library emits one
// OperationContext per public operation, whether it succeeded or failed.
type OperationContext struct {
	// Component is the name of the client package emitting the event
	// (e.g. "influxdb")
	Component string

	// Operation is the name of the operation performed (e.g. "write", "query")
	Operation string

	// Resource is the primary resource the operation acted on
	// (e.g. a database name or measurement)
	Resource string

	// SubResource is additional context such as a retention policy
	SubResource string

	// Duration is the wall-clock time the operation took, including retries
	Duration time.Duration

	// Error is the error returned by the operation, nil on success
	Error error

	// Size is an operation-specific payload size (bytes written, rows read)
	Size int64

	// Metadata carries optional operation-specific key/value details
	Metadata map[string]interface{}
}

// Observer receives operation events from client packages.
// Implementations must be safe for concurrent use; clients call
// ObserveOperation from every goroutine performing operations.
//
// A nil Observer is always acceptable; clients skip reporting in that case.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}
