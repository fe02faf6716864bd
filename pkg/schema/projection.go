package schema

import (
	"slices"

	"github.com/leapstack-labs/tablekit/pkg/filterql"
)

// The projections below are pure derivations of a schema and must be
// regenerated whenever the schema changes. They carry no state of their
// own.

// ColumnDef is a rendering column definition: everything the table layer
// needs to mount one column.
type ColumnDef struct {
	Key    string
	Header string

	// Cell names the cell-rendering strategy (a display type).
	Cell CellRendererRef

	// FilterFn names the filter predicate the rendering layer applies
	// for the column's filter kind; empty for non-filterable columns.
	FilterFn string

	Size     *int
	Hidden   bool
	Sortable bool
}

// CellRendererRef selects a cell widget by display type, optionally with
// a unit suffix or an attached custom renderer.
type CellRendererRef struct {
	Type     DisplayType
	Unit     string
	Renderer CellRenderer
}

// FilterField describes one filter control of the filter sidebar.
type FilterField struct {
	Key   string
	Label string
	Kind  FilterKind

	Options []string
	Min     *float64
	Max     *float64

	DefaultOpen     bool
	CommandDisabled bool
}

// SheetField describes one row of the detail view.
type SheetField struct {
	Key   string
	Label string
	Type  Kind

	ClassName         string
	SkeletonClassName string

	Component SheetRenderer
	Condition SheetCondition
}

// filterFns maps filter kinds to the predicate names the rendering layer
// understands.
var filterFns = map[FilterKind]string{
	FilterInput:     "includesString",
	FilterCheckbox:  "arrIncludesSome",
	FilterSlider:    "inNumberRange",
	FilterTimerange: "inDateRange",
}

// ColumnDefs derives one rendering column definition per schema key, in
// definition order.
func (s *Schema) ColumnDefs() []ColumnDef {
	defs := make([]ColumnDef, 0, len(s.keys))
	for _, key := range s.keys {
		col := s.column(key)
		def := ColumnDef{
			Key:    key,
			Header: col.Label,
			Cell: CellRendererRef{
				Type:     col.Display.Type,
				Unit:     col.Display.Unit,
				Renderer: col.Display.Renderer,
			},
			Hidden:   col.Hidden,
			Sortable: col.Sortable,
		}
		if col.Size != nil {
			size := *col.Size
			def.Size = &size
		}
		if col.Filter != nil {
			def.FilterFn = filterFns[col.Filter.Kind]
		}
		defs = append(defs, def)
	}
	return defs
}

// FilterFields derives a filter control descriptor for every filterable
// column, in definition order.
func (s *Schema) FilterFields() []FilterField {
	fields := make([]FilterField, 0, len(s.keys))
	for _, key := range s.keys {
		col := s.column(key)
		f := col.Filter
		if f == nil {
			continue
		}
		field := FilterField{
			Key:             key,
			Label:           col.Label,
			Kind:            f.Kind,
			Options:         slices.Clone(f.Options),
			DefaultOpen:     f.DefaultOpen,
			CommandDisabled: f.CommandDisabled,
		}
		if f.Min != nil {
			v := *f.Min
			field.Min = &v
		}
		if f.Max != nil {
			v := *f.Max
			field.Max = &v
		}
		fields = append(fields, field)
	}
	return fields
}

// SheetFields derives the detail-view field list. Columns without a
// sheet configuration still appear, under their column label.
func (s *Schema) SheetFields() []SheetField {
	fields := make([]SheetField, 0, len(s.keys))
	for _, key := range s.keys {
		col := s.column(key)
		field := SheetField{
			Key:   key,
			Label: col.Label,
			Type:  col.Kind,
		}
		if sh := col.Sheet; sh != nil {
			if sh.Label != "" {
				field.Label = sh.Label
			}
			field.ClassName = sh.ClassName
			field.SkeletonClassName = sh.SkeletonClassName
			field.Component = sh.Component
			field.Condition = sh.Condition
		}
		fields = append(fields, field)
	}
	return fields
}

// DefaultVisibility returns {key: false} for every hidden column,
// omitting visible ones.
func (s *Schema) DefaultVisibility() map[string]bool {
	vis := make(map[string]bool)
	for _, key := range s.keys {
		if s.column(key).Hidden {
			vis[key] = false
		}
	}
	return vis
}

// QueryFields derives the filterql field descriptors used to serialize a
// filter set into the query syntax. Filters disabled for the command
// palette are marked excluded.
func (s *Schema) QueryFields() []filterql.Field {
	fields := make([]filterql.Field, 0, len(s.keys))
	for _, key := range s.keys {
		col := s.column(key)
		if col.Filter == nil {
			continue
		}
		fields = append(fields, filterql.Field{
			Key:      key,
			Kind:     filterql.Kind(col.Filter.Kind),
			Excluded: col.Filter.CommandDisabled,
		})
	}
	return fields
}

// QuerySpec derives the typed validation spec used to parse the query
// syntax back into filter values.
func (s *Schema) QuerySpec() filterql.Spec {
	spec := make(filterql.Spec, 0, len(s.keys))
	for _, key := range s.keys {
		col := s.column(key)
		f := col.Filter
		if f == nil || f.CommandDisabled {
			continue
		}
		field := filterql.FieldSpec{Key: key, Type: queryType(col)}
		if len(f.Options) > 0 && (col.Kind == KindEnum || col.Kind == KindBoolean || arrayOfEnum(col)) {
			field.Values = slices.Clone(f.Options)
		}
		spec = append(spec, field)
	}
	return spec
}

func arrayOfEnum(col Column) bool {
	return col.Kind == KindArray && col.ArrayItem != nil && col.ArrayItem.Kind == KindEnum
}

func queryType(col Column) filterql.ValueType {
	switch col.Filter.Kind {
	case FilterCheckbox:
		return filterql.TypeStringList
	case FilterSlider:
		return filterql.TypeNumberRange
	case FilterTimerange:
		return filterql.TypeTimeRange
	default:
		if col.Kind == KindNumber {
			return filterql.TypeNumber
		}
		return filterql.TypeString
	}
}
