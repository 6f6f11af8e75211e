package influxdb

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Point represents a single data point to be written to the database.
//
// Measurement and at least one field are required. Tags are optional.
// A zero Timestamp means the server assigns the ingestion time; writes
// containing such points are not retried on transient failures because
// a retry could insert the point twice with different server timestamps.
type Point struct {
	// Measurement is the name of the measurement
	Measurement string

	// Tags is a mapping of tag names to values
	Tags map[string]string

	// Fields is a mapping of field names to values; values must be one of
	// int/int64 (and smaller integer types), float32/float64, string or bool
	Fields map[string]interface{}

	// Timestamp is the time stamp for the point; the zero value means
	// the server assigns the time at ingestion
	Timestamp time.Time
}

// NewPoint creates a point without an explicit timestamp.
func NewPoint(measurement string, tags map[string]string, fields map[string]interface{}) *Point {
	return &Point{
		Measurement: measurement,
		Tags:        tags,
		Fields:      fields,
	}
}

// NewPointWithTimestamp creates a point with an explicit timestamp.
func NewPointWithTimestamp(measurement string, tags map[string]string,
	fields map[string]interface{}, timestamp time.Time) *Point {
	return &Point{
		Measurement: measurement,
		Tags:        tags,
		Fields:      fields,
		Timestamp:   timestamp,
	}
}

// Line serializes the point into the line protocol wire format with a
// nanosecond timestamp.
//
// Tags are emitted in lexicographically sorted key order so that encoding
// the same point always yields byte-identical output regardless of map
// iteration order.
func (p *Point) Line() (string, error) {
	return p.line("")
}

// line serializes the point, converting the timestamp to the given
// precision ("" and "n" mean nanoseconds).
func (p *Point) line(precision string) (string, error) {
	if p.Measurement == "" {
		return "", &EncodingError{Reason: "measurement name is required"}
	}
	if len(p.Fields) == 0 {
		return "", &EncodingError{Reason: "at least one field is required"}
	}

	var sb strings.Builder
	sb.WriteString(escapeMeasurement(p.Measurement))

	for _, key := range sortedKeys(p.Tags) {
		sb.WriteByte(',')
		sb.WriteString(escapeTag(key))
		sb.WriteByte('=')
		sb.WriteString(escapeTag(p.Tags[key]))
	}

	sb.WriteByte(' ')
	fieldKeys := make([]string, 0, len(p.Fields))
	for key := range p.Fields {
		fieldKeys = append(fieldKeys, key)
	}
	sort.Strings(fieldKeys)

	for i, key := range fieldKeys {
		if i > 0 {
			sb.WriteByte(',')
		}
		formatted, err := formatFieldValue(key, p.Fields[key])
		if err != nil {
			return "", err
		}
		sb.WriteString(escapeTag(key))
		sb.WriteByte('=')
		sb.WriteString(formatted)
	}

	if !p.Timestamp.IsZero() {
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatInt(convertTimestamp(p.Timestamp, precision), 10))
	}

	return sb.String(), nil
}

// encodeBatch joins the encoded points with newlines for a single request
// body. The returned bool reports whether every point carries an explicit
// timestamp, which makes the whole batch safe to retry.
func encodeBatch(points []*Point, precision string) (string, bool, error) {
	if len(points) == 0 {
		return "", false, &EncodingError{Reason: "no points to write"}
	}

	lines := make([]string, len(points))
	retryable := true
	for i, point := range points {
		line, err := point.line(precision)
		if err != nil {
			return "", false, err
		}
		lines[i] = line
		if point.Timestamp.IsZero() {
			retryable = false
		}
	}

	return strings.Join(lines, "\n"), retryable, nil
}

// formatFieldValue renders a field value with its line protocol type marker:
// integers get an "i" suffix, floats are plain decimal or exponential,
// booleans are true/false and strings are double-quoted with backslash
// escaping.
func formatFieldValue(key string, value interface{}) (string, error) {
	switch v := value.(type) {
	case int:
		return strconv.FormatInt(int64(v), 10) + "i", nil
	case int8:
		return strconv.FormatInt(int64(v), 10) + "i", nil
	case int16:
		return strconv.FormatInt(int64(v), 10) + "i", nil
	case int32:
		return strconv.FormatInt(int64(v), 10) + "i", nil
	case int64:
		return strconv.FormatInt(v, 10) + "i", nil
	case uint:
		return strconv.FormatUint(uint64(v), 10) + "i", nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10) + "i", nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10) + "i", nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10) + "i", nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case string:
		return quoteString(v), nil
	default:
		return "", &EncodingError{
			Reason: fmt.Sprintf("unsupported type %T for field %q", value, key),
		}
	}
}

// convertTimestamp converts a time to an integer count of the given
// precision unit. The empty precision means nanoseconds.
func convertTimestamp(t time.Time, precision string) int64 {
	ns := t.UnixNano()
	switch precision {
	case "", "n":
		return ns
	case "u":
		return ns / int64(time.Microsecond)
	case "ms":
		return ns / int64(time.Millisecond)
	case "s":
		return ns / int64(time.Second)
	case "m":
		return ns / int64(time.Minute)
	case "h":
		return ns / int64(time.Hour)
	default:
		return ns
	}
}

// quoteString wraps a string field value in double quotes, escaping
// backslashes and embedded quotes.
func quoteString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// escapeMeasurement escapes commas and spaces in a measurement name.
func escapeMeasurement(s string) string {
	s = strings.ReplaceAll(s, `,`, `\,`)
	s = strings.ReplaceAll(s, ` `, `\ `)
	return s
}

// escapeTag escapes commas, spaces and equals signs in tag keys, tag
// values and field keys.
func escapeTag(s string) string {
	s = strings.ReplaceAll(s, `,`, `\,`)
	s = strings.ReplaceAll(s, ` `, `\ `)
	s = strings.ReplaceAll(s, `=`, `\=`)
	return s
}

// sortedKeys returns the map's keys in lexicographic order.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
