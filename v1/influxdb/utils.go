package influxdb

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// writeParams holds the resolved request parameters for a write.
type writeParams struct {
	database        string
	retentionPolicy string
	precision       string
	consistency     string
}

// WriteOption overrides a default write parameter for a single call.
type WriteOption func(*writeParams)

// WithDatabase overrides the target database for this write.
func WithDatabase(db string) WriteOption {
	return func(p *writeParams) { p.database = db }
}

// WithRetentionPolicy overrides the retention policy for this write.
func WithRetentionPolicy(rp string) WriteOption {
	return func(p *writeParams) { p.retentionPolicy = rp }
}

// WithPrecision overrides the timestamp precision for this write -
// one of "n", "u", "ms", "s", "m", "h".
func WithPrecision(precision string) WriteOption {
	return func(p *writeParams) { p.precision = precision }
}

// WithConsistency overrides the write consistency level for this write -
// one of "any", "one", "quorum", "all".
func WithConsistency(consistency string) WriteOption {
	return func(p *writeParams) { p.consistency = consistency }
}

// Ping checks connectivity to the server and returns the version
// reported in the X-Influxdb-Version response header.
func (c *InfluxDBClient) Ping(ctx context.Context) (string, error) {
	start := time.Now()

	resp, err := c.do(ctx, "ping", http.MethodGet, "/ping", nil, nil, true)
	if err == nil && resp.status != http.StatusNoContent {
		err = decodeErrorBody(newBodyReader(resp), resp.status)
	}

	var version string
	if err == nil {
		version = resp.header.Get("X-Influxdb-Version")
	}
	c.observeOperation("ping", "", "", time.Since(start), err, 0, nil)
	return version, err
}

// WritePoint writes a single data point to the database.
//
// This is a shortcut for constructing a Point and passing it to
// WritePoints. A zero timestamp means the server assigns the time.
func (c *InfluxDBClient) WritePoint(ctx context.Context, measurement string,
	tags map[string]string, fields map[string]interface{},
	timestamp time.Time, opts ...WriteOption) error {

	point := &Point{
		Measurement: measurement,
		Tags:        tags,
		Fields:      fields,
		Timestamp:   timestamp,
	}
	return c.WritePoints(ctx, []*Point{point}, opts...)
}

// WritePoints writes a batch of points to the database in a single
// request. Points are validated and encoded before anything is sent,
// so a malformed point fails the whole batch locally.
//
// A batch rejected by the server surfaces as one QueryExecutionError;
// there is no per-point retry. Transient connection failures are
// retried once, but only when every point in the batch carries an
// explicit timestamp (otherwise a retry could duplicate data under
// server-assigned timestamps).
func (c *InfluxDBClient) WritePoints(ctx context.Context, points []*Point, opts ...WriteOption) error {
	start := time.Now()

	params := writeParams{
		database:        c.cfg.Database,
		retentionPolicy: c.cfg.RetentionPolicy,
		precision:       c.cfg.Precision,
		consistency:     c.cfg.Consistency,
	}
	for _, opt := range opts {
		opt(&params)
	}

	err := c.writePoints(ctx, points, params)
	c.observeOperation("write", params.database, params.retentionPolicy,
		time.Since(start), err, int64(len(points)), nil)
	return err
}

func (c *InfluxDBClient) writePoints(ctx context.Context, points []*Point, params writeParams) error {
	if err := validatePoints("points", points); err != nil {
		return err
	}

	body, retryable, err := encodeBatch(points, params.precision)
	if err != nil {
		return err
	}

	values := url.Values{}
	if params.database != "" {
		values.Set("db", params.database)
	}
	if params.retentionPolicy != "" {
		values.Set("rp", params.retentionPolicy)
	}
	if params.precision != "" {
		values.Set("precision", params.precision)
	}
	if params.consistency != "" {
		values.Set("consistency", params.consistency)
	}

	resp, err := c.do(ctx, "write", http.MethodPost, "/write", values, []byte(body), retryable)
	if err != nil {
		return err
	}
	if resp.status == http.StatusNoContent {
		return nil
	}
	return decodeErrorBody(newBodyReader(resp), resp.status)
}

// Query executes a query and decodes the result envelope into a typed
// ResultSet. Bind parameters are substituted into the statement before
// the request is built; see Query for the strict matching rules.
func (c *InfluxDBClient) Query(ctx context.Context, q Query) (*ResultSet, error) {
	start := time.Now()

	result, err := c.runQuery(ctx, q)
	rows := int64(0)
	if result != nil {
		for i := range result.Series {
			rows += int64(len(result.Series[i].Values))
		}
	}
	c.observeOperation("query", firstNonEmpty(q.Database, c.cfg.Database), "",
		time.Since(start), err, rows, nil)
	return result, err
}

func (c *InfluxDBClient) runQuery(ctx context.Context, q Query) (*ResultSet, error) {
	if err := validateQueryParams("params", q.Params); err != nil {
		return nil, err
	}

	bound, err := bindParams(q.Statement, q.Params)
	if err != nil {
		return nil, err
	}

	values := q.queryValues(bound, c.cfg)
	resp, err := c.do(ctx, "query", queryMethod(bound), "/query", values, nil, true)
	if err != nil {
		return nil, err
	}

	switch resp.status {
	case http.StatusOK:
		return decodeResults(newBodyReader(resp))
	default:
		return nil, decodeErrorBody(newBodyReader(resp), resp.status)
	}
}

// RawQuery executes a plain statement with no bind parameters against
// the client's default database.
func (c *InfluxDBClient) RawQuery(ctx context.Context, statement string) (*ResultSet, error) {
	return c.Query(ctx, Query{Statement: statement})
}

// Execute runs the built SELECT statement on the server.
func (b *SelectBuilder) Execute(ctx context.Context) (*ResultSet, error) {
	return b.client.Query(ctx, Query{
		Statement: b.String(),
		Database:  b.database,
		Epoch:     b.epoch,
	})
}
