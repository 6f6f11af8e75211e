package influxdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindParams(t *testing.T) {
	t.Run("substitutes typed values", func(t *testing.T) {
		bound, err := bindParams(
			"SELECT value FROM cpu WHERE host = $host AND value > $min AND up = $up AND n = $n",
			map[string]interface{}{
				"host": "server-1",
				"min":  0.5,
				"up":   true,
				"n":    3,
			})
		require.NoError(t, err)
		assert.Equal(t,
			"SELECT value FROM cpu WHERE host = 'server-1' AND value > 0.5 AND up = TRUE AND n = 3",
			bound)
	})

	t.Run("escapes quotes in string values", func(t *testing.T) {
		bound, err := bindParams("SELECT * FROM m WHERE name = $name",
			map[string]interface{}{"name": "o'brien"})
		require.NoError(t, err)
		assert.Equal(t, `SELECT * FROM m WHERE name = 'o\'brien'`, bound)
	})

	t.Run("no placeholders and no params passes through", func(t *testing.T) {
		bound, err := bindParams("SELECT * FROM cpu", nil)
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM cpu", bound)
	})

	t.Run("unbound placeholder fails", func(t *testing.T) {
		_, err := bindParams("SELECT * FROM cpu WHERE host = $host", nil)

		var buildErr *QueryBuildError
		require.ErrorAs(t, err, &buildErr)
		assert.Equal(t, []string{"host"}, buildErr.Missing)
		assert.Empty(t, buildErr.Unused)
	})

	t.Run("unused parameter fails", func(t *testing.T) {
		_, err := bindParams("SELECT * FROM cpu",
			map[string]interface{}{"host": "a"})

		var buildErr *QueryBuildError
		require.ErrorAs(t, err, &buildErr)
		assert.Empty(t, buildErr.Missing)
		assert.Equal(t, []string{"host"}, buildErr.Unused)
	})

	t.Run("both directions reported together", func(t *testing.T) {
		_, err := bindParams("SELECT * FROM cpu WHERE a = $a AND b = $b",
			map[string]interface{}{"b": 1, "c": 2, "d": 3})

		var buildErr *QueryBuildError
		require.ErrorAs(t, err, &buildErr)
		assert.Equal(t, []string{"a"}, buildErr.Missing)
		assert.Equal(t, []string{"c", "d"}, buildErr.Unused)
	})

	t.Run("repeated placeholder needs one binding", func(t *testing.T) {
		bound, err := bindParams("SELECT * FROM cpu WHERE a = $x OR b = $x",
			map[string]interface{}{"x": 1})
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM cpu WHERE a = 1 OR b = 1", bound)
	})
}

func TestQueryMethod(t *testing.T) {
	assert.Equal(t, "GET", queryMethod("SELECT * FROM cpu"))
	assert.Equal(t, "GET", queryMethod("select * from cpu"))
	assert.Equal(t, "GET", queryMethod("SHOW DATABASES"))
	assert.Equal(t, "POST", queryMethod("CREATE DATABASE metrics"))
	assert.Equal(t, "POST", queryMethod("DROP MEASUREMENT cpu"))
	assert.Equal(t, "POST", queryMethod(`SELECT * INTO "dest" FROM cpu`))
}

func TestQueryValues(t *testing.T) {
	defaults := Config{Database: "defaultdb", Epoch: "ms"}

	t.Run("uses defaults", func(t *testing.T) {
		values := Query{}.queryValues("SELECT 1", defaults)
		assert.Equal(t, "SELECT 1", values.Get("q"))
		assert.Equal(t, "defaultdb", values.Get("db"))
		assert.Equal(t, "ms", values.Get("epoch"))
		assert.Empty(t, values.Get("rp"))
	})

	t.Run("query overrides win", func(t *testing.T) {
		q := Query{Database: "other", Epoch: "s", RetentionPolicy: "weekly"}
		values := q.queryValues("SELECT 1", defaults)
		assert.Equal(t, "other", values.Get("db"))
		assert.Equal(t, "s", values.Get("epoch"))
		assert.Equal(t, "weekly", values.Get("rp"))
	})
}

func TestSelectBuilder(t *testing.T) {
	client := &InfluxDBClient{}

	t.Run("renders all clauses", func(t *testing.T) {
		statement := client.Select("f1", "f2").
			From("m1").
			Where("f1 > 5.5").
			GroupBy("tag1", "tag2").
			OrderBy("time DESC").
			String()
		assert.Equal(t,
			`SELECT f1,f2 FROM "m1" WHERE f1 > 5.5 GROUP BY tag1,tag2 ORDER BY time DESC`,
			statement)
	})

	t.Run("into clause", func(t *testing.T) {
		statement := client.Select("*").From("m1").Into("dest").String()
		assert.Equal(t, `SELECT * INTO "dest" FROM "m1"`, statement)
	})

	t.Run("multiple measurements quoted", func(t *testing.T) {
		statement := client.Select("value").From("m1", "m2").String()
		assert.Equal(t, `SELECT value FROM "m1","m2"`, statement)
	})

	t.Run("builders are immutable", func(t *testing.T) {
		base := client.Select("value").From("cpu")
		withWhere := base.Where("host = 'a'")

		assert.Equal(t, `SELECT value FROM "cpu"`, base.String())
		assert.Equal(t, `SELECT value FROM "cpu" WHERE host = 'a'`, withWhere.String())
	})
}
