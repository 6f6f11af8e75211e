package influxdb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointLine(t *testing.T) {
	t.Run("full point with timestamp", func(t *testing.T) {
		point := NewPointWithTimestamp("cpu",
			map[string]string{"host": "a", "region": "us"},
			map[string]interface{}{"value": 0.64},
			time.Unix(0, 1465839830100400200))

		line, err := point.Line()
		require.NoError(t, err)
		assert.Equal(t, "cpu,host=a,region=us value=0.64 1465839830100400200", line)
	})

	t.Run("no timestamp omits the last section", func(t *testing.T) {
		point := NewPoint("cpu", map[string]string{"host": "a"},
			map[string]interface{}{"value": 0.64})

		line, err := point.Line()
		require.NoError(t, err)
		assert.Equal(t, "cpu,host=a value=0.64", line)
	})

	t.Run("no tags", func(t *testing.T) {
		point := NewPoint("cpu", nil, map[string]interface{}{"value": int64(2)})

		line, err := point.Line()
		require.NoError(t, err)
		assert.Equal(t, "cpu value=2i", line)
	})

	t.Run("field type markers", func(t *testing.T) {
		point := NewPointWithTimestamp("m1",
			map[string]string{"tag1": "abc", "tag2": "6"},
			map[string]interface{}{"field1": 5.5, "field2": 7, "field3": "x"},
			time.Unix(0, 1480793211053212000))

		line, err := point.line("u")
		require.NoError(t, err)
		assert.Equal(t, `m1,tag1=abc,tag2=6 field1=5.5,field2=7i,field3="x" 1480793211053212`, line)
	})

	t.Run("boolean fields", func(t *testing.T) {
		point := NewPoint("status", nil, map[string]interface{}{"up": true, "degraded": false})

		line, err := point.Line()
		require.NoError(t, err)
		assert.Equal(t, "status degraded=false,up=true", line)
	})

	t.Run("string fields escape quotes and backslashes", func(t *testing.T) {
		point := NewPoint("log", nil, map[string]interface{}{"msg": `say "hi"\now`})

		line, err := point.Line()
		require.NoError(t, err)
		assert.Equal(t, `log msg="say \"hi\"\\now"`, line)
	})

	t.Run("escapes protocol characters in names and tags", func(t *testing.T) {
		point := NewPoint("my measurement,x",
			map[string]string{"tag one": "a=b,c"},
			map[string]interface{}{"field key": int64(1)})

		line, err := point.Line()
		require.NoError(t, err)
		assert.Equal(t, `my\ measurement\,x,tag\ one=a\=b\,c field\ key=1i`, line)
	})
}

func TestPointLineDeterministicTagOrder(t *testing.T) {
	// Same tags supplied through differently built maps must yield
	// byte-identical output.
	makePoint := func(tags map[string]string) *Point {
		return NewPointWithTimestamp("cpu", tags,
			map[string]interface{}{"value": 1.0}, time.Unix(10, 0))
	}

	reference, err := makePoint(map[string]string{
		"a": "1", "b": "2", "c": "3", "d": "4", "e": "5",
	}).Line()
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		tags := map[string]string{}
		for key, value := range map[string]string{
			"e": "5", "d": "4", "c": "3", "b": "2", "a": "1",
		} {
			tags[key] = value
		}
		line, err := makePoint(tags).Line()
		require.NoError(t, err)
		assert.Equal(t, reference, line)
	}
}

func TestPointLineErrors(t *testing.T) {
	t.Run("empty fields", func(t *testing.T) {
		point := NewPoint("cpu", nil, nil)

		_, err := point.Line()
		var encErr *EncodingError
		require.ErrorAs(t, err, &encErr)
		assert.Contains(t, encErr.Error(), "at least one field is required")
	})

	t.Run("empty measurement", func(t *testing.T) {
		point := NewPoint("", nil, map[string]interface{}{"v": 1.0})

		_, err := point.Line()
		var encErr *EncodingError
		require.ErrorAs(t, err, &encErr)
	})

	t.Run("unsupported field type", func(t *testing.T) {
		point := NewPoint("cpu", nil, map[string]interface{}{"v": []int{1, 2}})

		_, err := point.Line()
		var encErr *EncodingError
		require.ErrorAs(t, err, &encErr)
		assert.Contains(t, encErr.Error(), `field "v"`)
	})
}

func TestEncodeBatch(t *testing.T) {
	t.Run("joins lines with newlines", func(t *testing.T) {
		points := []*Point{
			NewPointWithTimestamp("cpu", map[string]string{"host": "a"},
				map[string]interface{}{"value": 1.0}, time.Unix(1, 0)),
			NewPointWithTimestamp("cpu", map[string]string{"host": "b"},
				map[string]interface{}{"value": 2.0}, time.Unix(2, 0)),
		}

		body, retryable, err := encodeBatch(points, "")
		require.NoError(t, err)
		assert.True(t, retryable)
		assert.Equal(t, "cpu,host=a value=1 1000000000\ncpu,host=b value=2 2000000000", body)
	})

	t.Run("missing timestamp disables retry", func(t *testing.T) {
		points := []*Point{
			NewPointWithTimestamp("cpu", nil, map[string]interface{}{"value": 1.0}, time.Unix(1, 0)),
			NewPoint("cpu", nil, map[string]interface{}{"value": 2.0}),
		}

		_, retryable, err := encodeBatch(points, "")
		require.NoError(t, err)
		assert.False(t, retryable)
	})

	t.Run("empty batch", func(t *testing.T) {
		_, _, err := encodeBatch(nil, "")
		var encErr *EncodingError
		require.ErrorAs(t, err, &encErr)
	})

	t.Run("precision converts timestamps", func(t *testing.T) {
		points := []*Point{
			NewPointWithTimestamp("cpu", nil, map[string]interface{}{"value": 1.0},
				time.Unix(0, 1480793211053212000)),
		}

		body, _, err := encodeBatch(points, "s")
		require.NoError(t, err)
		assert.Equal(t, "cpu value=1 1480793211", body)
	})
}
