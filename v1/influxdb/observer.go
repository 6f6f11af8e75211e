package influxdb

import (
	"time"

	"github.com/asphalt-framework/asphalt-influxdb/v1/observability"
)

// observeOperation notifies the observer about an operation if one is configured.
// This is used internally to track write, query and ping operations for
// metrics and tracing.
//
// Notes:
//   - resource: the database the operation targeted
//   - subResource: additional context like the retention policy
//   - size: points written or rows returned
func (c *InfluxDBClient) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if c == nil || c.observer == nil {
		return
	}

	c.observer.ObserveOperation(observability.OperationContext{
		Component:   "influxdb",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    metadata,
	})
}
