package logger

// Level represents the minimum severity of log entries that will be emitted.
type Level int

const (
	// Debug enables all log output including verbose diagnostics
	Debug Level = iota

	// Info enables informational messages and above (default)
	Info

	// Warning enables warnings and errors only
	Warning

	// Error enables error output only
	Error
)

// Config defines the configuration for the logger.
type Config struct {
	// Level is the minimum log level to emit
	// Default: Info
	Level Level

	// ServiceName is added as a constant "service" field to every log entry
	ServiceName string
}
