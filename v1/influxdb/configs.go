package influxdb

import "time"

// Config defines the top-level configuration structure for the InfluxDB client.
// It contains all the necessary configuration sections for establishing
// connections, setting default write/query parameters, and configuring TLS/SSL.
//
// Config is read once at construction and never mutated afterwards.
type Config struct {
	// Host is the InfluxDB server hostname or IP address
	// Default: "localhost"
	Host string

	// Port is the InfluxDB HTTP API port
	// Default: 8086
	Port int

	// Addresses is an optional list of base URLs for an InfluxEnterprise
	// cluster (e.g. []string{"http://node1:8086", "http://node2:8086"}).
	// When set, Host and Port are ignored. The client rotates to the next
	// address when one cannot be reached and remembers the last known-good
	// address for subsequent requests.
	Addresses []string

	// Username is the user name for per-request HTTP basic authentication
	// Leave empty for no authentication
	Username string

	// Password is the password for per-request HTTP basic authentication
	// Leave empty for no authentication
	Password string

	// Database is the default database for writes and queries
	Database string

	// RetentionPolicy is the default retention policy name for writes
	// Leave empty to use the database's default retention policy
	RetentionPolicy string

	// Consistency is the default write consistency level for
	// InfluxEnterprise clusters - one of "any", "one", "quorum", "all"
	// Leave empty for the server default
	Consistency string

	// Precision is the default timestamp precision for writes - one of
	// "n", "u", "ms", "s", "m", "h"
	// Leave empty for nanosecond precision
	Precision string

	// Epoch is the default timestamp precision for query results - one of
	// "n", "u", "ms", "s", "m", "h"
	// Leave empty to receive RFC3339 timestamp strings
	Epoch string

	// Timeout is the timeout for a single HTTP request, including the
	// retry performed on transient connection failures
	// Default: 60 seconds
	Timeout time.Duration

	// MaxConnections is the maximum number of concurrent in-flight
	// requests allowed; callers beyond the limit block until a slot frees up
	// Default: 10
	MaxConnections int

	// RetryDelay is the delay before the single retry performed when an
	// idempotent request fails with a transient connection error
	// Default: 500 milliseconds
	RetryDelay time.Duration

	// TLS contains TLS/SSL configuration
	TLS TLSConfig

	// Logger is an optional logger from v1/logger package
	// If provided, it will be used for error and lifecycle logging
	Logger Logger
}

// TLSConfig contains TLS/SSL configuration parameters.
type TLSConfig struct {
	// Enabled determines whether to use TLS/SSL for the connection
	Enabled bool

	// CACertPath is the file path to the CA certificate for verifying the server
	CACertPath string

	// ClientCertPath is the file path to the client certificate
	ClientCertPath string

	// ClientKeyPath is the file path to the client certificate's private key
	ClientKeyPath string

	// InsecureSkipVerify controls whether to skip verification of the server's certificate
	// WARNING: Setting this to true is insecure and should only be used in testing
	InsecureSkipVerify bool

	// ServerName is used to verify the hostname on the returned certificates
	// If empty, the Host from the main config is used
	ServerName string
}

// Logger is an interface that matches the v1/logger.Logger
type Logger interface {
	Error(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}

// Default values for configuration
const (
	DefaultHost           = "localhost"
	DefaultPort           = 8086
	DefaultTimeout        = 60 * time.Second
	DefaultMaxConnections = 10
	DefaultRetryDelay     = 500 * time.Millisecond
)
