package influxdb

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Series is one series in a query result: the measurement name, the tag
// values identifying the group (for GROUP BY queries), the column names
// and the rows, each row aligned with Columns.
type Series struct {
	// Name is the measurement name the series came from
	Name string

	// Tags identifies the group for GROUP BY tag queries, nil otherwise
	Tags map[string]string

	// Columns holds the column names in result order
	Columns []string

	// Values holds the rows; each row has one value per column, decoded
	// as int64, float64, string, bool or nil
	Values [][]interface{}
}

// ResultSet is the decoded outcome of a query: the ordered series of
// every statement in the request.
type ResultSet struct {
	Series []Series
}

// Row provides keyed access to a single result row.
type Row struct {
	series *Series
	index  int
}

// Len returns the number of rows in the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Row returns keyed access to row i.
func (s *Series) Row(i int) Row {
	return Row{series: s, index: i}
}

// Get returns the value of the named column in this row. The second
// return value is false when the series has no such column.
func (r Row) Get(column string) (interface{}, bool) {
	for i, name := range r.series.Columns {
		if name == column {
			return r.series.Values[r.index][i], true
		}
	}
	return nil, false
}

// Time converts the row's "time" column into a time.Time using the
// epoch requested at query time. The precision is never inferred from
// the payload: integer timestamps are interpreted strictly per the
// epoch argument, and RFC3339 strings (returned when no epoch was
// requested) are parsed as such.
func (r Row) Time(epoch string) (time.Time, error) {
	raw, ok := r.Get("time")
	if !ok {
		return time.Time{}, fmt.Errorf("influxdb: series has no time column")
	}

	switch v := raw.(type) {
	case int64:
		return timeFromEpoch(v, epoch), nil
	case float64:
		return timeFromEpoch(int64(v), epoch), nil
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("influxdb: malformed timestamp %q: %w", v, err)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("influxdb: unexpected timestamp type %T", raw)
	}
}

func timeFromEpoch(value int64, epoch string) time.Time {
	switch epoch {
	case "", "n":
		return time.Unix(0, value).UTC()
	case "u":
		return time.Unix(0, value*int64(time.Microsecond)).UTC()
	case "ms":
		return time.Unix(0, value*int64(time.Millisecond)).UTC()
	case "s":
		return time.Unix(value, 0).UTC()
	case "m":
		return time.Unix(value*60, 0).UTC()
	case "h":
		return time.Unix(value*3600, 0).UTC()
	default:
		return time.Unix(0, value).UTC()
	}
}

// Wire shapes of the /query JSON envelope.
type queryEnvelope struct {
	Results []statementResult `json:"results"`
	Error   string            `json:"error"`
}

type statementResult struct {
	Series []seriesResult `json:"series"`
	Error  string         `json:"error"`
}

type seriesResult struct {
	Name    string            `json:"name"`
	Tags    map[string]string `json:"tags"`
	Columns []string          `json:"columns"`
	Values  [][]interface{}   `json:"values"`
}

// decodeResults parses the JSON envelope returned by the query endpoint
// into a ResultSet. Decoding is all-or-nothing: a top-level or
// per-statement error yields a *QueryExecutionError and no partial
// result.
func decodeResults(body io.Reader) (*ResultSet, error) {
	decoder := json.NewDecoder(body)
	decoder.UseNumber()

	var envelope queryEnvelope
	if err := decoder.Decode(&envelope); err != nil {
		return nil, &QueryExecutionError{Message: "malformed response body: " + err.Error()}
	}
	if envelope.Error != "" {
		return nil, &QueryExecutionError{Message: envelope.Error}
	}

	resultSet := &ResultSet{}
	for _, result := range envelope.Results {
		if result.Error != "" {
			return nil, &QueryExecutionError{Message: result.Error}
		}
		for _, raw := range result.Series {
			series := Series{
				Name:    raw.Name,
				Tags:    raw.Tags,
				Columns: raw.Columns,
				Values:  make([][]interface{}, len(raw.Values)),
			}
			for i, row := range raw.Values {
				decoded := make([]interface{}, len(row))
				for j, value := range row {
					decoded[j] = coerceValue(value)
				}
				series.Values[i] = decoded
			}
			resultSet.Series = append(resultSet.Series, series)
		}
	}

	return resultSet, nil
}

// decodeErrorBody extracts the server message from a structured error
// response ({"error": "..."}).
func decodeErrorBody(body io.Reader, status int) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil || payload.Error == "" {
		return &QueryExecutionError{
			Message: fmt.Sprintf("unexpected HTTP status code: %d", status),
		}
	}
	return &QueryExecutionError{Message: payload.Error}
}

// coerceValue maps a raw JSON value into the field type domain: numbers
// with no fractional part become int64, all other numbers float64;
// strings, booleans and nulls pass through unchanged.
func coerceValue(value interface{}) interface{} {
	number, ok := value.(json.Number)
	if !ok {
		return value
	}
	if i, err := number.Int64(); err == nil {
		return i
	}
	if f, err := number.Float64(); err == nil {
		return f
	}
	return number.String()
}
