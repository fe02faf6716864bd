package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSONRebuildsColumns(t *testing.T) {
	data := []byte(`{
	  "columns": [
	    {
	      "key": "level",
	      "dataType": "enum",
	      "enumValues": ["info", "error"],
	      "label": "Level",
	      "display": {"type": "badge"},
	      "sortable": true,
	      "filter": {"type": "checkbox", "options": ["info", "error"]},
	      "sheet": null
	    },
	    {
	      "key": "regions",
	      "dataType": "array",
	      "arrayItemType": {"dataType": "enum", "enumValues": ["eu", "us"]},
	      "label": "Regions",
	      "display": {"type": "badge"},
	      "sortable": true,
	      "filter": {"type": "checkbox", "options": ["eu", "us"]},
	      "sheet": null
	    },
	    {
	      "key": "payload",
	      "dataType": "record",
	      "label": "Payload",
	      "display": {"type": "code"},
	      "sortable": false,
	      "filter": null,
	      "sheet": {"label": "Raw Payload", "className": "font-mono"}
	    }
	  ]
	}`)

	s, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"level", "regions", "payload"}, s.Keys())

	level, _ := s.Column("level")
	assert.Equal(t, KindEnum, level.Kind)
	assert.Equal(t, []string{"info", "error"}, level.EnumValues)
	require.NotNil(t, level.Filter)
	assert.Equal(t, FilterCheckbox, level.Filter.Kind)

	regions, _ := s.Column("regions")
	assert.Equal(t, KindArray, regions.Kind)
	require.NotNil(t, regions.ArrayItem)
	assert.Equal(t, KindEnum, regions.ArrayItem.Kind)
	assert.Equal(t, []string{"eu", "us"}, regions.ArrayItem.EnumValues)

	payload, _ := s.Column("payload")
	assert.Equal(t, KindRecord, payload.Kind)
	assert.Nil(t, payload.Filter)
	require.NotNil(t, payload.Sheet)
	assert.Equal(t, "Raw Payload", payload.Sheet.Label)
	assert.Equal(t, DisplayCode, payload.Display.Type)
}

func TestFromJSONCustomDisplayDegrades(t *testing.T) {
	data := []byte(`{
	  "columns": [
	    {
	      "key": "latency",
	      "dataType": "number",
	      "label": "Latency",
	      "display": {"type": "custom"},
	      "sortable": true,
	      "filter": {"type": "input"},
	      "sheet": null
	    }
	  ]
	}`)

	s, err := FromJSON(data)
	require.NoError(t, err)
	col, _ := s.Column("latency")
	// The renderer cannot be reconstructed; the kind's canonical default
	// display takes over.
	assert.Equal(t, DisplayNumber, col.Display.Type)
	assert.Nil(t, col.Display.Renderer)
}

func TestFromJSONUnknownDataTypeFailsClosed(t *testing.T) {
	data := []byte(`{
	  "columns": [
	    {
	      "key": "blob",
	      "dataType": "geometry",
	      "label": "Blob",
	      "display": {"type": "text"},
	      "sortable": true,
	      "filter": {"type": "input"},
	      "sheet": null
	    }
	  ]
	}`)

	s, err := FromJSON(data)
	require.NoError(t, err)
	col, _ := s.Column("blob")
	assert.Equal(t, KindString, col.Kind)
}

func TestFromJSONNullFilterMeansNotFilterable(t *testing.T) {
	data := []byte(`{
	  "columns": [
	    {"key": "name", "dataType": "string", "label": "Name",
	     "display": {"type": "text"}, "sortable": true, "filter": null, "sheet": null}
	  ]
	}`)

	s, err := FromJSON(data)
	require.NoError(t, err)
	col, _ := s.Column("name")
	assert.Nil(t, col.Filter)

	// NotFilterable was replayed: the dynamic path refuses new filters.
	_, err = applyFilter(col, FilterInput, Filter{})
	assert.Error(t, err)
}

func TestFromJSONValidates(t *testing.T) {
	t.Run("empty label", func(t *testing.T) {
		data := []byte(`{
		  "columns": [
		    {"key": "status", "dataType": "string", "label": "",
		     "display": {"type": "text"}, "sortable": true, "filter": null, "sheet": null}
		  ]
		}`)
		_, err := FromJSON(data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"status"`)
	})

	t.Run("illegal filter kind", func(t *testing.T) {
		data := []byte(`{
		  "columns": [
		    {"key": "name", "dataType": "string", "label": "Name",
		     "display": {"type": "text"}, "sortable": true,
		     "filter": {"type": "slider", "min": 0, "max": 1}, "sheet": null}
		  ]
		}`)
		_, err := FromJSON(data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `column "name"`)
		assert.Contains(t, err.Error(), "not allowed for string columns")
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := FromJSON([]byte(`{"columns": [`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode schema document")
	})
}
