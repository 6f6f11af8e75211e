package influxdb

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Query describes a single query against the database.
//
// Statement is opaque to the client except for bind parameter
// substitution: every $name placeholder must have a value in Params and
// every Params entry must appear in the statement, otherwise the query
// fails before anything is sent.
type Query struct {
	// Statement is the InfluxQL query text, possibly containing $name
	// placeholders
	Statement string

	// Params maps placeholder names to their bound values
	Params map[string]interface{}

	// Database overrides the client's default database when non-empty
	Database string

	// RetentionPolicy overrides the client's default retention policy
	RetentionPolicy string

	// Epoch overrides the client's default result timestamp precision -
	// one of "n", "u", "ms", "s", "m", "h"
	Epoch string
}

var placeholderPattern = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)

// bindParams substitutes $name placeholders in the statement with their
// bound values. Matching is strict in both directions: a placeholder
// without a value and a value without a placeholder both fail with a
// *QueryBuildError, so a typo never silently corrupts the query.
func bindParams(statement string, params map[string]interface{}) (string, error) {
	found := make(map[string]bool)
	for _, match := range placeholderPattern.FindAllStringSubmatch(statement, -1) {
		found[match[1]] = true
	}

	var missing, unused []string
	for name := range found {
		if _, ok := params[name]; !ok {
			missing = append(missing, name)
		}
	}
	for name := range params {
		if !found[name] {
			unused = append(unused, name)
		}
	}
	if len(missing) > 0 || len(unused) > 0 {
		sort.Strings(missing)
		sort.Strings(unused)
		return "", &QueryBuildError{Missing: missing, Unused: unused}
	}

	bound := placeholderPattern.ReplaceAllStringFunc(statement, func(match string) string {
		return formatParamValue(params[match[1:]])
	})
	return bound, nil
}

// formatParamValue stringifies a bind parameter for inclusion in the
// query text: numbers literally, strings single-quoted and escaped,
// booleans as TRUE/FALSE.
func formatParamValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return "'" + strings.ReplaceAll(v, "'", `\'`) + "'"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%d", value)
	}
}

// queryMethod picks the HTTP verb for a statement. SELECT and SHOW
// queries go over GET; everything else, including SELECT ... INTO,
// mutates server state and goes over POST.
func queryMethod(statement string) string {
	upper := strings.ToUpper(statement)
	if strings.HasPrefix(upper, "SHOW ") {
		return "GET"
	}
	if strings.HasPrefix(upper, "SELECT ") && !selectIntoPattern.MatchString(upper) {
		return "GET"
	}
	return "POST"
}

var selectIntoPattern = regexp.MustCompile(`\bINTO\b`)

// queryValues assembles the request parameters for the /query endpoint.
func (q Query) queryValues(bound string, defaults Config) url.Values {
	values := url.Values{}
	values.Set("q", bound)

	if db := firstNonEmpty(q.Database, defaults.Database); db != "" {
		values.Set("db", db)
	}
	if rp := firstNonEmpty(q.RetentionPolicy, defaults.RetentionPolicy); rp != "" {
		values.Set("rp", rp)
	}
	if epoch := firstNonEmpty(q.Epoch, defaults.Epoch); epoch != "" {
		values.Set("epoch", epoch)
	}

	return values
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// quoteIdentifier wraps an identifier in double quotes for use in FROM
// and INTO clauses, escaping embedded quotes.
func quoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// SelectBuilder builds SELECT statements programmatically. Builders are
// immutable: every method returns a copy with the clause replaced, so a
// partially built query can be reused as a template.
//
//	rows, err := client.Select("mean(value)").
//		From("cpu").
//		Where("time > now() - 1h").
//		GroupBy("host").
//		Execute(ctx)
type SelectBuilder struct {
	client       *InfluxDBClient
	keys         []string
	measurements []string
	into         string
	where        string
	groupBy      string
	orderBy      string
	database     string
	epoch        string
}

// Select creates a query builder bound to this client.
func (c *InfluxDBClient) Select(keys ...string) *SelectBuilder {
	return &SelectBuilder{client: c, keys: keys}
}

// From sets or replaces the measurements selected from.
func (b *SelectBuilder) From(measurements ...string) *SelectBuilder {
	clone := *b
	clone.measurements = measurements
	return &clone
}

// Into sets or replaces the INTO expression in the query.
func (b *SelectBuilder) Into(measurement string) *SelectBuilder {
	clone := *b
	clone.into = measurement
	return &clone
}

// Where sets or replaces the WHERE clause in the query.
func (b *SelectBuilder) Where(expression string) *SelectBuilder {
	clone := *b
	clone.where = expression
	return &clone
}

// GroupBy sets or replaces the GROUP BY expression in the query.
func (b *SelectBuilder) GroupBy(expressions ...string) *SelectBuilder {
	clone := *b
	clone.groupBy = strings.Join(expressions, ",")
	return &clone
}

// OrderBy sets or replaces the ORDER BY expression in the query.
func (b *SelectBuilder) OrderBy(expressions ...string) *SelectBuilder {
	clone := *b
	clone.orderBy = strings.Join(expressions, ",")
	return &clone
}

// Database sets the target database for this query, overriding the
// client default.
func (b *SelectBuilder) Database(db string) *SelectBuilder {
	clone := *b
	clone.database = db
	return &clone
}

// Epoch sets the result timestamp precision for this query.
func (b *SelectBuilder) Epoch(epoch string) *SelectBuilder {
	clone := *b
	clone.epoch = epoch
	return &clone
}

// String renders the builder into an InfluxQL statement.
func (b *SelectBuilder) String() string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(b.keys, ","))

	if b.into != "" {
		sb.WriteString(" INTO ")
		sb.WriteString(quoteIdentifier(b.into))
	}

	quoted := make([]string, len(b.measurements))
	for i, m := range b.measurements {
		quoted[i] = quoteIdentifier(m)
	}
	sb.WriteString(" FROM ")
	sb.WriteString(strings.Join(quoted, ","))

	if b.where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(b.where)
	}
	if b.groupBy != "" {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(b.groupBy)
	}
	if b.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderBy)
	}

	return sb.String()
}
