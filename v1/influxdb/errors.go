package influxdb

import (
	"errors"
	"fmt"
	"strings"
)

// Common InfluxDB client errors
var (
	// ErrNotStarted is returned when an operation is attempted before Start.
	ErrNotStarted = errors.New("influxdb: client not started")

	// ErrAlreadyStarted is returned when Start is called more than once.
	ErrAlreadyStarted = errors.New("influxdb: client already started")

	// ErrClientClosed is returned when an operation is attempted after Close.
	ErrClientClosed = errors.New("influxdb: client is closed")

	// ErrNoServersReachable is returned when none of the configured
	// server addresses could be reached.
	ErrNoServersReachable = errors.New("influxdb: no servers could be reached")
)

// TypeMismatchError is returned when a value passed to a public operation
// does not match its declared type. It is detected before any network I/O.
type TypeMismatchError struct {
	// Param is the name of the offending parameter
	Param string

	// Expected describes the type domain the parameter accepts
	Expected string

	// Actual describes the type that was actually supplied
	Actual string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("influxdb: type mismatch for %q: expected %s, got %s",
		e.Param, e.Expected, e.Actual)
}

// EncodingError is returned when a point cannot be serialized to the
// line protocol.
type EncodingError struct {
	Reason string
}

func (e *EncodingError) Error() string {
	return "influxdb: encoding error: " + e.Reason
}

// QueryBuildError is returned when the set of placeholders in a query
// statement does not match the set of bound parameter names.
type QueryBuildError struct {
	// Missing lists placeholders present in the statement with no bound value
	Missing []string

	// Unused lists bound parameter names with no placeholder in the statement
	Unused []string
}

func (e *QueryBuildError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "unbound placeholders: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unused) > 0 {
		parts = append(parts, "unused parameters: "+strings.Join(e.Unused, ", "))
	}
	return "influxdb: query build error: " + strings.Join(parts, "; ")
}

// ConnectionError is returned when a request fails at the transport level
// after any applicable retry. The wrapped cause never contains credentials.
type ConnectionError struct {
	// Op is the operation that failed (e.g. "write", "query", "ping")
	Op string

	// Err is the underlying transport error
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("influxdb: connection error during %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// QueryExecutionError is returned when the server rejects or fails a
// query or write. The message is the server-provided error verbatim.
// It is never retried automatically.
type QueryExecutionError struct {
	Message string
}

func (e *QueryExecutionError) Error() string {
	return "influxdb: server error: " + e.Message
}

// IsClosedError checks if the error indicates the client has been closed.
func IsClosedError(err error) bool {
	return errors.Is(err, ErrClientClosed)
}

// IsConnectionError checks if the error is a transport-level failure.
func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr) || errors.Is(err, ErrNoServersReachable)
}

// IsServerError checks if the error carries a server-reported failure.
func IsServerError(err error) bool {
	var execErr *QueryExecutionError
	return errors.As(err, &execErr)
}
