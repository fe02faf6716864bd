package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMissingLabel(t *testing.T) {
	_, err := New(Fields{
		{Key: "name", Column: String().Label("Name")},
		{Key: "status", Column: String()},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"status"`)
	assert.Contains(t, err.Error(), `"Status"`) // suggested label

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Key)
}

func TestValidateFirstViolationWins(t *testing.T) {
	_, err := New(Fields{
		{Key: "alpha", Column: String()},
		{Key: "beta", Column: String()},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"alpha"`)
	assert.NotContains(t, err.Error(), `"beta"`)
}

func TestValidateSliderBounds(t *testing.T) {
	slider := func(min, max float64) ColumnBuilder {
		return WithSliderFilter(Number().Label("Latency"), min, max)
	}

	t.Run("min greater than max", func(t *testing.T) {
		_, err := New(Fields{{Key: "latency", Column: slider(10, 5)}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "min (10) must be less than max (5)")
		assert.Contains(t, err.Error(), `"latency"`)
	})

	t.Run("min equal to max succeeds", func(t *testing.T) {
		s, err := New(Fields{{Key: "latency", Column: slider(5, 5)}})
		require.NoError(t, err)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("missing bounds", func(t *testing.T) {
		// A slider without bounds is only constructible through the
		// dynamic path, e.g. a hand-written document.
		col := Number().Label("Latency").Column()
		col.Filter = &Filter{Kind: FilterSlider}
		_, err := New(Fields{{Key: "latency", Column: rawColumn{col}}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires both min and max")
	})

	t.Run("fractional bounds in message", func(t *testing.T) {
		_, err := New(Fields{{Key: "ratio", Column: slider(0.75, 0.25)}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "min (0.75) must be less than max (0.25)")
	})
}

func TestValidateDuplicateKey(t *testing.T) {
	_, err := New(Fields{
		{Key: "name", Column: String().Label("Name")},
		{Key: "name", Column: String().Label("Name")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate column key "name"`)
}

func TestSchemaAccessors(t *testing.T) {
	s, err := New(Fields{
		{Key: "name", Column: String().Label("Name")},
		{Key: "level", Column: Enum("info", "error").Label("Level")},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "level"}, s.Keys())

	col, ok := s.Column("level")
	require.True(t, ok)
	assert.Equal(t, KindEnum, col.Kind)

	// Mutating the returned column must not leak into the schema.
	col.EnumValues[0] = "mutated"
	again, _ := s.Column("level")
	assert.Equal(t, []string{"info", "error"}, again.EnumValues)

	_, ok = s.Column("missing")
	assert.False(t, ok)
}
