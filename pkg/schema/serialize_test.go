package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := New(Fields{
		{Key: "name", Column: String().Label("Name").Size(150)},
		{Key: "level", Column: Enum("debug", "info", "error").Label("Level").DefaultOpen()},
		{Key: "latency", Column: WithSliderFilter(Number().Label("Latency").Unit("ms"), 0, 5000)},
		{Key: "active", Column: Boolean().Label("Active").Hidden()},
		{Key: "created_at", Column: Timestamp().Label("Created At")},
		{Key: "tags", Column: Array(Enum("eu", "us")).Label("Tags")},
		{Key: "payload", Column: Record().Label("Payload").Sortable(false)},
	})
	require.NoError(t, err)
	return s
}

func TestDocumentShape(t *testing.T) {
	doc := testSchema(t).Document()
	require.Len(t, doc.Columns, 7)

	keys := make([]string, 0, len(doc.Columns))
	for _, c := range doc.Columns {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"name", "level", "latency", "active", "created_at", "tags", "payload"}, keys)

	latency := doc.Columns[2]
	assert.Equal(t, KindNumber, latency.DataType)
	assert.Equal(t, "ms", latency.Display.Unit)
	require.NotNil(t, latency.Filter)
	assert.Equal(t, FilterSlider, latency.Filter.Type)
	require.NotNil(t, latency.Filter.Min)
	assert.Equal(t, 0.0, *latency.Filter.Min)
	require.NotNil(t, latency.Filter.Max)
	assert.Equal(t, 5000.0, *latency.Filter.Max)

	level := doc.Columns[1]
	assert.Equal(t, []string{"debug", "info", "error"}, level.EnumValues)
	require.NotNil(t, level.Filter)
	assert.True(t, level.Filter.DefaultOpen)

	tags := doc.Columns[5]
	assert.Equal(t, KindArray, tags.DataType)
	require.NotNil(t, tags.ArrayItemType)
	assert.Equal(t, KindEnum, tags.ArrayItemType.DataType)
	assert.Equal(t, []string{"eu", "us"}, tags.ArrayItemType.EnumValues)

	payload := doc.Columns[6]
	assert.Nil(t, payload.Filter)
	assert.False(t, payload.Sortable)
}

func TestJSONFieldPresence(t *testing.T) {
	data, err := testSchema(t).JSON()
	require.NoError(t, err)

	var raw struct {
		Columns []map[string]any `json:"columns"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw.Columns, 7)

	name := raw.Columns[0]
	// Unit unset: the display object must carry only the type.
	display, ok := name["display"].(map[string]any)
	require.True(t, ok)
	_, hasUnit := display["unit"]
	assert.False(t, hasUnit)
	// Size set: present as a number.
	assert.Equal(t, 150.0, name["size"])

	// Record column: filter is an explicit null, not omitted.
	payload := raw.Columns[6]
	filter, present := payload["filter"]
	assert.True(t, present)
	assert.Nil(t, filter)

	// Optional fields absent rather than empty.
	_, hasDesc := name["description"]
	assert.False(t, hasDesc)
	_, hasEnum := name["enumValues"]
	assert.False(t, hasEnum)
}

func TestSerializeStripsCallbacks(t *testing.T) {
	s, err := New(Fields{
		{Key: "status", Column: Enum("ok", "fail").Label("Status").
			Renderer(func(v any) string { return "!" }).
			CheckboxRenderer(func(o string) string { return o }).
			Sheet(Sheet{
				Label:     "Status Detail",
				Component: func(v any) string { return "" },
				Condition: func(row map[string]any) bool { return true },
			})},
	})
	require.NoError(t, err)

	d := s.Document().Columns[0]
	assert.Equal(t, DisplayCustom, d.Display.Type)
	require.NotNil(t, d.Filter)
	assert.True(t, d.Filter.Component)
	require.NotNil(t, d.Sheet)
	assert.True(t, d.Sheet.Component)
	assert.Equal(t, "Status Detail", d.Sheet.Label)

	// The document itself must be JSON-encodable despite the callbacks
	// on the source schema.
	_, err = s.JSON()
	assert.NoError(t, err)
}

func TestRoundTrip(t *testing.T) {
	// For built-in (non-custom) configurations:
	// serialize(deserialize(serialize(d))) == serialize(d).
	first, err := testSchema(t).JSON()
	require.NoError(t, err)

	restored, err := FromJSON(first)
	require.NoError(t, err)

	second, err := restored.JSON()
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	// And once more for good measure: the fixed point holds.
	again, err := FromJSON(second)
	require.NoError(t, err)
	third, err := again.JSON()
	require.NoError(t, err)
	assert.Equal(t, string(second), string(third))
}
