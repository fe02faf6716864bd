package schema

import (
	"slices"
	"time"
)

// Kind identifies the data kind of a column.
type Kind string

const (
	KindString    Kind = "string"
	KindNumber    Kind = "number"
	KindBoolean   Kind = "boolean"
	KindTimestamp Kind = "timestamp"
	KindEnum      Kind = "enum"
	KindArray     Kind = "array"
	KindRecord    Kind = "record"
)

// DisplayType selects the rendering strategy for a column's cells.
type DisplayType string

const (
	DisplayText      DisplayType = "text"
	DisplayCode      DisplayType = "code"
	DisplayBoolean   DisplayType = "boolean"
	DisplayBadge     DisplayType = "badge"
	DisplayTimestamp DisplayType = "timestamp"
	DisplayNumber    DisplayType = "number"
	DisplayCustom    DisplayType = "custom"
)

// FilterKind is the UI/semantic shape of a column's filter.
type FilterKind string

const (
	FilterInput     FilterKind = "input"
	FilterCheckbox  FilterKind = "checkbox"
	FilterSlider    FilterKind = "slider"
	FilterTimerange FilterKind = "timerange"
)

// CellRenderer turns a raw cell value into its rendered form. Attaching
// one switches the column to the custom display type. Renderers are not
// serializable and are dropped by the JSON codec.
type CellRenderer func(value any) string

// OptionRenderer customizes how a single checkbox option is presented.
// Not serializable.
type OptionRenderer func(option string) string

// SheetRenderer renders a value inside the detail sheet. Not serializable.
type SheetRenderer func(value any) string

// SheetCondition decides whether a sheet field is shown for a given row.
// Not serializable.
type SheetCondition func(row map[string]any) bool

// TimePreset is a named relative range offered by timerange filters.
// Presets are UI sugar and are not part of the wire format.
type TimePreset struct {
	Label    string
	Lookback time.Duration
}

// Display selects how cells of a column are rendered.
type Display struct {
	Type DisplayType

	// Unit is appended to rendered values for number displays ("ms", "%").
	Unit string

	// Renderer is set only when Type is DisplayCustom.
	Renderer CellRenderer
}

// Filter describes the filter attached to a column. A nil *Filter means
// the column is not filterable.
type Filter struct {
	Kind            FilterKind
	DefaultOpen     bool
	CommandDisabled bool

	// Options holds the selectable values of a checkbox filter.
	Options        []string
	OptionRenderer OptionRenderer

	// Min and Max bound a slider filter. Both must be set and ordered;
	// the validator enforces this.
	Min *float64
	Max *float64

	// Presets apply to timerange filters only.
	Presets []TimePreset
}

// Sheet configures how a column appears in the detail (row expansion)
// view.
type Sheet struct {
	Label             string
	Component         SheetRenderer
	Condition         SheetCondition
	ClassName         string
	SkeletonClassName string
}

// Column is the complete configuration of one declared column. Values
// are produced by builders or the JSON codec and never mutated afterwards.
type Column struct {
	Kind Kind

	// EnumValues is the ordered set of allowed literals; enum kind only.
	EnumValues []string

	// ArrayItem describes the element type; present iff Kind is array.
	ArrayItem *Column

	// Optional marks the underlying row field as possibly absent.
	Optional bool

	Label       string
	Description string

	Display Display

	// Size is a fixed pixel width, nil for automatic sizing.
	Size *int

	Hidden   bool
	Sortable bool

	Filter *Filter
	Sheet  *Sheet

	// notFilterable records an explicit NotFilterable call, which narrows
	// the runtime capability set to empty.
	notFilterable bool
}

// clone returns a structural copy. Builders rely on this for their
// copy-on-write semantics; no column is ever mutated in place.
func (c Column) clone() Column {
	out := c
	out.EnumValues = slices.Clone(c.EnumValues)
	if c.ArrayItem != nil {
		item := c.ArrayItem.clone()
		out.ArrayItem = &item
	}
	if c.Size != nil {
		size := *c.Size
		out.Size = &size
	}
	if c.Filter != nil {
		f := *c.Filter
		f.Options = slices.Clone(c.Filter.Options)
		f.Presets = slices.Clone(c.Filter.Presets)
		if c.Filter.Min != nil {
			v := *c.Filter.Min
			f.Min = &v
		}
		if c.Filter.Max != nil {
			v := *c.Filter.Max
			f.Max = &v
		}
		out.Filter = &f
	}
	if c.Sheet != nil {
		sheet := *c.Sheet
		out.Sheet = &sheet
	}
	return out
}

// Filterable reports whether the column carries a filter.
func (c Column) Filterable() bool {
	return c.Filter != nil
}
