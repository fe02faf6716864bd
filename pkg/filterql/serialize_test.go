package filterql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSerialize(t *testing.T) {
	fields := []Field{
		{Key: "q", Kind: KindInput},
		{Key: "level", Kind: KindCheckbox},
		{Key: "latency", Kind: KindSlider},
		{Key: "date", Kind: KindTimerange},
		{Key: "internal", Kind: KindInput, Excluded: true},
	}

	tests := []struct {
		name    string
		entries []Entry
		want    string
	}{
		{
			"input scalar",
			[]Entry{{Key: "q", Value: "hello"}},
			"q:hello ",
		},
		{
			"checkbox list",
			[]Entry{{Key: "level", Value: []string{"error", "warn"}}},
			"level:error;warn ",
		},
		{
			"slider bounds",
			[]Entry{{Key: "latency", Value: []float64{0, 500}}},
			"latency:0~500 ",
		},
		{
			"time range",
			[]Entry{{Key: "date", Value: []time.Time{
				time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			}}},
			"date:2024-01-01_2024-01-31 ",
		},
		{
			"excluded field skipped",
			[]Entry{{Key: "internal", Value: "secret"}},
			"",
		},
		{
			"unknown key skipped",
			[]Entry{{Key: "bogus", Value: "x"}},
			"",
		},
		{
			"entries render in input order",
			[]Entry{
				{Key: "q", Value: "api"},
				{Key: "level", Value: []string{"error"}},
				{Key: "latency", Value: []float64{10, 20}},
			},
			"q:api level:error latency:10~20 ",
		},
		{
			"no entries",
			nil,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Serialize(tt.entries, fields))
		})
	}
}

func TestSerializeScalarFormats(t *testing.T) {
	fields := []Field{{Key: "v", Kind: KindInput}}

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"float drops trailing zeros", 2.50, "v:2.5 "},
		{"integer float stays integral", 500.0, "v:500 "},
		{"int", 42, "v:42 "},
		{"bool", true, "v:true "},
		{"midnight renders date only", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "v:2024-06-01 "},
		{"timestamp with time renders rfc3339", time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC), "v:2024-06-01T10:30:00Z "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Serialize([]Entry{{Key: "v", Value: tt.value}}, fields))
		})
	}
}

func TestRoundTripThroughParse(t *testing.T) {
	fields := []Field{
		{Key: "level", Kind: KindCheckbox},
		{Key: "latency", Kind: KindSlider},
	}
	spec := Spec{
		{Key: "level", Type: TypeStringList, Values: []string{"info", "warn", "error"}},
		{Key: "latency", Type: TypeNumberRange},
	}

	query := Serialize([]Entry{
		{Key: "level", Value: []string{"error", "warn"}},
		{Key: "latency", Value: []float64{0, 500}},
	}, fields)

	r := Parse(query, spec)
	assert.True(t, r.Ok())
	assert.Equal(t, []string{"error", "warn"}, r.Values["level"])
	assert.Equal(t, []float64{0, 500}, r.Values["latency"])
}
