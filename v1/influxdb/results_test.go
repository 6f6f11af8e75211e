package influxdb

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResults(t *testing.T) {
	t.Run("single series with typed values", func(t *testing.T) {
		body := `{"results":[{"series":[{"name":"cpu","columns":["time","value"],"values":[[0,0.64]]}]}]}`

		result, err := decodeResults(strings.NewReader(body))
		require.NoError(t, err)
		require.Len(t, result.Series, 1)

		series := result.Series[0]
		assert.Equal(t, "cpu", series.Name)
		assert.Equal(t, []string{"time", "value"}, series.Columns)
		require.Equal(t, 1, series.Len())

		// Integer timestamps stay integers, fractional values become floats.
		assert.Equal(t, []interface{}{int64(0), 0.64}, series.Values[0])
	})

	t.Run("tagged series from group by", func(t *testing.T) {
		body := `{"results":[{"series":[
			{"name":"cpu","tags":{"host":"a"},"columns":["time","mean"],"values":[[1000,1.5]]},
			{"name":"cpu","tags":{"host":"b"},"columns":["time","mean"],"values":[[1000,2.5]]}
		]}]}`

		result, err := decodeResults(strings.NewReader(body))
		require.NoError(t, err)
		require.Len(t, result.Series, 2)
		assert.Equal(t, map[string]string{"host": "a"}, result.Series[0].Tags)
		assert.Equal(t, map[string]string{"host": "b"}, result.Series[1].Tags)
	})

	t.Run("mixed column types", func(t *testing.T) {
		body := `{"results":[{"series":[{"name":"m","columns":["time","i","f","s","b","n"],
			"values":[[7,3,3.5,"x",true,null]]}]}]}`

		result, err := decodeResults(strings.NewReader(body))
		require.NoError(t, err)
		row := result.Series[0].Values[0]
		assert.Equal(t, []interface{}{int64(7), int64(3), 3.5, "x", true, nil}, row)
	})

	t.Run("top-level error is all-or-nothing", func(t *testing.T) {
		body := `{"error":"authorization failed"}`

		result, err := decodeResults(strings.NewReader(body))
		assert.Nil(t, result)

		var execErr *QueryExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, "authorization failed", execErr.Message)
	})

	t.Run("per-statement error is all-or-nothing", func(t *testing.T) {
		body := `{"results":[{"error":"database not found"}]}`

		result, err := decodeResults(strings.NewReader(body))
		assert.Nil(t, result)

		var execErr *QueryExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, "database not found", execErr.Message)
	})

	t.Run("error after a good statement discards everything", func(t *testing.T) {
		body := `{"results":[
			{"series":[{"name":"cpu","columns":["time","value"],"values":[[0,1]]}]},
			{"error":"measurement not found"}
		]}`

		result, err := decodeResults(strings.NewReader(body))
		assert.Nil(t, result)
		assert.True(t, IsServerError(err))
	})

	t.Run("malformed body", func(t *testing.T) {
		result, err := decodeResults(strings.NewReader("not json"))
		assert.Nil(t, result)

		var execErr *QueryExecutionError
		require.ErrorAs(t, err, &execErr)
	})

	t.Run("empty results", func(t *testing.T) {
		result, err := decodeResults(strings.NewReader(`{"results":[{}]}`))
		require.NoError(t, err)
		assert.Empty(t, result.Series)
	})
}

func TestRowAccess(t *testing.T) {
	body := `{"results":[{"series":[{"name":"cpu","columns":["time","value","host"],
		"values":[[1465839830,0.64,"a"],[1465839831,0.72,"b"]]}]}]}`

	result, err := decodeResults(strings.NewReader(body))
	require.NoError(t, err)
	series := &result.Series[0]

	t.Run("get by column name", func(t *testing.T) {
		value, ok := series.Row(0).Get("value")
		require.True(t, ok)
		assert.Equal(t, 0.64, value)

		host, ok := series.Row(1).Get("host")
		require.True(t, ok)
		assert.Equal(t, "b", host)
	})

	t.Run("missing column", func(t *testing.T) {
		_, ok := series.Row(0).Get("nope")
		assert.False(t, ok)
	})
}

func TestRowTime(t *testing.T) {
	t.Run("integer timestamp honors requested epoch", func(t *testing.T) {
		body := `{"results":[{"series":[{"name":"cpu","columns":["time","value"],"values":[[1465839830,0.64]]}]}]}`
		result, err := decodeResults(strings.NewReader(body))
		require.NoError(t, err)

		// The same raw value means different instants at different epochs;
		// the conversion must use exactly the epoch the caller requested.
		asSeconds, err := result.Series[0].Row(0).Time("s")
		require.NoError(t, err)
		assert.Equal(t, time.Unix(1465839830, 0).UTC(), asSeconds)

		asMillis, err := result.Series[0].Row(0).Time("ms")
		require.NoError(t, err)
		assert.Equal(t, time.Unix(0, 1465839830*int64(time.Millisecond)).UTC(), asMillis)
	})

	t.Run("rfc3339 string timestamp", func(t *testing.T) {
		body := `{"results":[{"series":[{"name":"cpu","columns":["time","value"],
			"values":[["2016-12-03T19:26:51.053212Z",0.64]]}]}]}`
		result, err := decodeResults(strings.NewReader(body))
		require.NoError(t, err)

		parsed, err := result.Series[0].Row(0).Time("")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2016, 12, 3, 19, 26, 51, 53212000, time.UTC), parsed)
	})

	t.Run("series without time column", func(t *testing.T) {
		body := `{"results":[{"series":[{"name":"cpu","columns":["value"],"values":[[1.0]]}]}]}`
		result, err := decodeResults(strings.NewReader(body))
		require.NoError(t, err)

		_, err = result.Series[0].Row(0).Time("s")
		assert.Error(t, err)
	})
}

func TestDecodeErrorBody(t *testing.T) {
	t.Run("structured error body", func(t *testing.T) {
		err := decodeErrorBody(strings.NewReader(`{"error":"database not found: \"nope\""}`), 404)

		var execErr *QueryExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, `database not found: "nope"`, execErr.Message)
	})

	t.Run("unstructured body falls back to status code", func(t *testing.T) {
		err := decodeErrorBody(strings.NewReader("<html>bad gateway</html>"), 502)

		var execErr *QueryExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, "unexpected HTTP status code: 502", execErr.Message)
	})
}
