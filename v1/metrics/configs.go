package metrics

// Config defines the configuration for the metrics endpoint.
type Config struct {
	// Address is the listen address for the /metrics HTTP endpoint,
	// e.g. ":9090"
	Address string

	// ServiceName is applied as a constant "service" label to all metrics
	// registered through this package
	ServiceName string

	// EnableDefaultCollectors registers the Go runtime, process and build
	// info collectors alongside the client operation metrics
	EnableDefaultCollectors bool
}
