package schema

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inferOne(t *testing.T, key string, values ...any) Column {
	t.Helper()
	records := make([]map[string]any, 0, len(values))
	for _, v := range values {
		records = append(records, map[string]any{key: v})
	}
	s, err := Infer(records)
	require.NoError(t, err)
	col, ok := s.Column(key)
	require.True(t, ok)
	return col
}

func TestClassifyPrecedence(t *testing.T) {
	t.Run("empty column is string", func(t *testing.T) {
		col := inferOne(t, "notes", nil, nil)
		assert.Equal(t, KindString, col.Kind)
		assert.True(t, col.Optional)
		require.NotNil(t, col.Filter)
		assert.Equal(t, FilterInput, col.Filter.Kind)
	})

	t.Run("iso date strings", func(t *testing.T) {
		col := inferOne(t, "created_at", "2024-01-01", "2024-06-15T10:30:00Z")
		assert.Equal(t, KindTimestamp, col.Kind)
		require.NotNil(t, col.Filter)
		assert.Equal(t, FilterTimerange, col.Filter.Kind)
	})

	t.Run("iso shaped but invalid falls through", func(t *testing.T) {
		// "2024-13-40" matches the date shape but is not a real date, so
		// it classifies as a low-cardinality string, not a timestamp.
		col := inferOne(t, "batch", "2024-13-40", "2024-13-41")
		assert.Equal(t, KindEnum, col.Kind)
	})

	t.Run("unix millisecond timestamps", func(t *testing.T) {
		col := inferOne(t, "ts", 1700000000000.0, 1700000500000.0)
		assert.Equal(t, KindTimestamp, col.Kind)
	})

	t.Run("twelve digit numbers are not timestamps", func(t *testing.T) {
		col := inferOne(t, "n", 999999999999.0, 1000.0)
		assert.Equal(t, KindNumber, col.Kind)
	})

	t.Run("booleans", func(t *testing.T) {
		col := inferOne(t, "active", true, false, true)
		assert.Equal(t, KindBoolean, col.Kind)
		require.NotNil(t, col.Filter)
		assert.Equal(t, FilterCheckbox, col.Filter.Kind)
	})

	t.Run("spread numbers get a slider with sampled bounds", func(t *testing.T) {
		col := inferOne(t, "latency", 12.0, 480.0, 97.0)
		assert.Equal(t, KindNumber, col.Kind)
		require.NotNil(t, col.Filter)
		assert.Equal(t, FilterSlider, col.Filter.Kind)
		require.NotNil(t, col.Filter.Min)
		require.NotNil(t, col.Filter.Max)
		assert.Equal(t, 12.0, *col.Filter.Min)
		assert.Equal(t, 480.0, *col.Filter.Max)
	})

	t.Run("constant numbers get an input filter", func(t *testing.T) {
		col := inferOne(t, "version", 3.0, 3.0, 3.0)
		assert.Equal(t, KindNumber, col.Kind)
		require.NotNil(t, col.Filter)
		assert.Equal(t, FilterInput, col.Filter.Kind)
	})

	t.Run("integer samples from hand-built records", func(t *testing.T) {
		col := inferOne(t, "count", 1, 9, 4)
		assert.Equal(t, KindNumber, col.Kind)
		require.NotNil(t, col.Filter)
		assert.Equal(t, FilterSlider, col.Filter.Kind)
	})

	t.Run("arrays of few distinct strings become array of enum", func(t *testing.T) {
		col := inferOne(t, "regions", []any{"eu", "us"}, []any{"us", "ap"})
		assert.Equal(t, KindArray, col.Kind)
		require.NotNil(t, col.ArrayItem)
		assert.Equal(t, KindEnum, col.ArrayItem.Kind)
		assert.Equal(t, []string{"eu", "us", "ap"}, col.ArrayItem.EnumValues)
		require.NotNil(t, col.Filter)
		assert.Equal(t, []string{"eu", "us", "ap"}, col.Filter.Options)
	})

	t.Run("arrays of many strings become array of string", func(t *testing.T) {
		items := make([]any, 11)
		for i := range items {
			items[i] = fmt.Sprintf("tag-%d", i)
		}
		col := inferOne(t, "tags", items)
		assert.Equal(t, KindArray, col.Kind)
		require.NotNil(t, col.ArrayItem)
		assert.Equal(t, KindString, col.ArrayItem.Kind)
		assert.Nil(t, col.Filter)
	})

	t.Run("objects become records", func(t *testing.T) {
		col := inferOne(t, "payload", map[string]any{"a": 1.0}, map[string]any{"b": 2.0})
		assert.Equal(t, KindRecord, col.Kind)
		assert.Nil(t, col.Filter)
		assert.False(t, col.Sortable)
	})

	t.Run("enum threshold", func(t *testing.T) {
		values := func(n int) []any {
			out := make([]any, 0, n)
			for i := 0; i < n; i++ {
				out = append(out, fmt.Sprintf("v%d", i))
			}
			return out
		}

		ten := inferOne(t, "status", values(10)...)
		assert.Equal(t, KindEnum, ten.Kind)
		assert.Len(t, ten.EnumValues, 10)

		eleven := inferOne(t, "status", values(11)...)
		assert.Equal(t, KindString, eleven.Kind)
	})

	t.Run("mixed types fall back to string", func(t *testing.T) {
		col := inferOne(t, "mixed", "a", 1.0, true)
		assert.Equal(t, KindString, col.Kind)
	})
}

func TestInferOptionalAndLabels(t *testing.T) {
	s, err := Infer([]map[string]any{
		{"userName": "ada", "retry_count": 2.0},
		{"userName": nil, "retry_count": 5.0},
		{"userName": "bob"}, // retry_count absent counts as null
	})
	require.NoError(t, err)

	user, _ := s.Column("userName")
	assert.Equal(t, "User Name", user.Label)
	assert.True(t, user.Optional)

	retries, _ := s.Column("retry_count")
	assert.Equal(t, "Retry Count", retries.Label)
	assert.True(t, retries.Optional)
}

func TestInferFromJSONKeyOrder(t *testing.T) {
	data := []byte(`[
	  {"zulu": 1, "alpha": "x"},
	  {"alpha": "y", "mike": true}
	]`)

	s, err := InferFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"zulu", "alpha", "mike"}, s.Keys())

	// Inference over the same bytes is idempotent.
	again, err := InferFromJSON(data)
	require.NoError(t, err)
	first, err := s.JSON()
	require.NoError(t, err)
	second, err := again.JSON()
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestInferFromJSONMalformed(t *testing.T) {
	_, err := InferFromJSON([]byte(`{"not": "an array"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode sample records")
}

func TestInferredSchemaSerializes(t *testing.T) {
	data := []byte(`[
	  {"name": "api-1", "level": "info", "latency": 12, "active": true,
	   "created_at": "2024-01-01T00:00:00Z", "tags": ["eu"], "meta": {"v": 1}},
	  {"name": "api-2", "level": "error", "latency": 480, "active": false,
	   "created_at": "2024-02-01T00:00:00Z", "tags": ["us"], "meta": {"v": 2}}
	]`)

	s, err := InferFromJSON(data)
	require.NoError(t, err)

	out, err := s.JSON()
	require.NoError(t, err)

	restored, err := FromJSON(out)
	require.NoError(t, err)
	assert.Equal(t, s.Keys(), restored.Keys())
}

func TestLabelize(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"name", "Name"},
		{"user_name", "User Name"},
		{"userName", "User Name"},
		{"created.at", "Created At"},
		{"retry_count_total", "Retry Count Total"},
		{"a", "A"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, Labelize(tt.key))
		})
	}
}
