package schema

import "slices"

// Builder is an immutable column configuration under construction. The
// type parameter is a capability marker recording which filter kinds are
// legal for the column's data kind; see the capability constraints in
// this package. Every mutator returns a new builder derived by structural
// copy, so builder values may be shared and reused across goroutines
// without synchronization.
type Builder[C any] struct {
	col Column
}

// ColumnBuilder is the untyped view of a Builder, used wherever builders
// of different capability sets are collected together (most notably in a
// Fields definition).
type ColumnBuilder interface {
	// Column materializes the configuration built so far.
	Column() Column
}

// Column materializes the configuration built so far. The returned value
// is a structural copy; further builder calls do not affect it.
func (b Builder[C]) Column() Column {
	return b.col.clone()
}

// String returns a builder for a free-text column. Defaults: text
// display, input filter, sortable.
func String() Builder[StringCaps] {
	return Builder[StringCaps]{col: Column{
		Kind:     KindString,
		Display:  Display{Type: DisplayText},
		Sortable: true,
		Filter:   &Filter{Kind: FilterInput},
	}}
}

// Number returns a builder for a numeric column. Defaults: number
// display, input filter, sortable. Attach a slider filter with
// WithSliderFilter when bounds are known.
func Number() Builder[NumberCaps] {
	return Builder[NumberCaps]{col: Column{
		Kind:     KindNumber,
		Display:  Display{Type: DisplayNumber},
		Sortable: true,
		Filter:   &Filter{Kind: FilterInput},
	}}
}

// Boolean returns a builder for a boolean column. Defaults: boolean
// display, checkbox filter over true/false, sortable.
func Boolean() Builder[BoolCaps] {
	return Builder[BoolCaps]{col: Column{
		Kind:     KindBoolean,
		Display:  Display{Type: DisplayBoolean},
		Sortable: true,
		Filter:   &Filter{Kind: FilterCheckbox, Options: []string{"true", "false"}},
	}}
}

// Timestamp returns a builder for a timestamp column. Defaults:
// timestamp display, timerange filter, sortable.
func Timestamp() Builder[TimeCaps] {
	return Builder[TimeCaps]{col: Column{
		Kind:     KindTimestamp,
		Display:  Display{Type: DisplayTimestamp},
		Sortable: true,
		Filter:   &Filter{Kind: FilterTimerange},
	}}
}

// Enum returns a builder for a column restricted to the given ordered set
// of literals. Defaults: badge display, checkbox filter over the values,
// sortable.
func Enum(values ...string) Builder[EnumCaps] {
	return Builder[EnumCaps]{col: Column{
		Kind:       KindEnum,
		EnumValues: slices.Clone(values),
		Display:    Display{Type: DisplayBadge},
		Sortable:   true,
		Filter:     &Filter{Kind: FilterCheckbox, Options: slices.Clone(values)},
	}}
}

// Array returns a builder for a column whose values are arrays of the
// given item type. Defaults: badge display; a checkbox filter over the
// item's enum values when the item is an enum, otherwise no filter.
func Array(item ColumnBuilder) Builder[ArrayCaps] {
	itemCol := item.Column()
	col := Column{
		Kind:      KindArray,
		ArrayItem: &itemCol,
		Display:   Display{Type: DisplayBadge},
		Sortable:  true,
	}
	if itemCol.Kind == KindEnum {
		col.Filter = &Filter{Kind: FilterCheckbox, Options: slices.Clone(itemCol.EnumValues)}
	}
	return Builder[ArrayCaps]{col: col}
}

// Record returns a builder for a nested-object column. Record columns
// are structurally non-filterable. Defaults: text display, not sortable.
func Record() Builder[NoFilter] {
	return Builder[NoFilter]{col: Column{
		Kind:    KindRecord,
		Display: Display{Type: DisplayText},
	}}
}

// with applies a single mutation to a structural copy of the column.
func (b Builder[C]) with(mut func(*Column)) Builder[C] {
	col := b.col.clone()
	mut(&col)
	return Builder[C]{col: col}
}

// Label sets the human-readable column title. A schema will not validate
// without one.
func (b Builder[C]) Label(label string) Builder[C] {
	return b.with(func(c *Column) { c.Label = label })
}

// Description attaches a free-text semantic annotation. Not rendered;
// consumed by downstream tooling.
func (b Builder[C]) Description(description string) Builder[C] {
	return b.with(func(c *Column) { c.Description = description })
}

// Display overrides the rendering strategy.
func (b Builder[C]) Display(t DisplayType) Builder[C] {
	return b.with(func(c *Column) {
		c.Display.Type = t
		if t != DisplayCustom {
			c.Display.Renderer = nil
		}
	})
}

// Unit sets the unit suffix for number displays.
func (b Builder[C]) Unit(unit string) Builder[C] {
	return b.with(func(c *Column) { c.Display.Unit = unit })
}

// Renderer attaches a custom cell renderer and switches the column to the
// custom display type. Renderers do not survive serialization.
func (b Builder[C]) Renderer(r CellRenderer) Builder[C] {
	return b.with(func(c *Column) {
		c.Display.Type = DisplayCustom
		c.Display.Renderer = r
	})
}

// Hidden excludes the column from the default visible set.
func (b Builder[C]) Hidden() Builder[C] {
	return b.with(func(c *Column) { c.Hidden = true })
}

// Sortable toggles sorting; columns are sortable by default.
func (b Builder[C]) Sortable(enabled bool) Builder[C] {
	return b.with(func(c *Column) { c.Sortable = enabled })
}

// Size fixes the column width in pixels.
func (b Builder[C]) Size(px int) Builder[C] {
	return b.with(func(c *Column) { c.Size = &px })
}

// Optional marks the underlying row field as possibly absent.
func (b Builder[C]) Optional() Builder[C] {
	return b.with(func(c *Column) { c.Optional = true })
}

// DefaultOpen expands the column's filter control by default. No effect
// on a column without a filter.
func (b Builder[C]) DefaultOpen() Builder[C] {
	return b.with(func(c *Column) {
		if c.Filter != nil {
			c.Filter.DefaultOpen = true
		}
	})
}

// CommandDisabled excludes the column's filter from the command palette
// query syntax. No effect on a column without a filter.
func (b Builder[C]) CommandDisabled() Builder[C] {
	return b.with(func(c *Column) {
		if c.Filter != nil {
			c.Filter.CommandDisabled = true
		}
	})
}

// CheckboxRenderer attaches a custom option renderer to the current
// checkbox filter. No effect on other filter kinds. Renderers do not
// survive serialization.
func (b Builder[C]) CheckboxRenderer(r OptionRenderer) Builder[C] {
	return b.with(func(c *Column) {
		if c.Filter != nil && c.Filter.Kind == FilterCheckbox {
			c.Filter.OptionRenderer = r
		}
	})
}

// Sheet configures the column's appearance in the detail view.
func (b Builder[C]) Sheet(s Sheet) Builder[C] {
	return b.with(func(c *Column) {
		sheet := s
		c.Sheet = &sheet
	})
}

// NotFilterable removes any attached filter and narrows the capability
// set to empty: no filter attachment function accepts the returned
// builder.
func (b Builder[C]) NotFilterable() Builder[NoFilter] {
	col := b.col.clone()
	col.Filter = nil
	col.notFilterable = true
	return Builder[NoFilter]{col: col}
}

// replaceFilter swaps the column's filter, carrying over the DefaultOpen
// and CommandDisabled flags of any previously attached filter so that
// chain order does not matter.
func replaceFilter(col Column, f Filter) Column {
	out := col.clone()
	if out.Filter != nil {
		f.DefaultOpen = f.DefaultOpen || out.Filter.DefaultOpen
		f.CommandDisabled = f.CommandDisabled || out.Filter.CommandDisabled
	}
	out.Filter = &f
	return out
}

// WithInputFilter attaches a free-text input filter. Compiles only for
// data kinds whose capability set includes input filters.
func WithInputFilter[C InputCapable](b Builder[C]) Builder[C] {
	return Builder[C]{col: replaceFilter(b.col, Filter{Kind: FilterInput})}
}

// WithCheckboxFilter attaches a checkbox filter over the given options.
// When no options are given, enum columns fall back to their literal set
// and boolean columns to true/false.
func WithCheckboxFilter[C CheckboxCapable](b Builder[C], options ...string) Builder[C] {
	opts := slices.Clone(options)
	if len(opts) == 0 {
		switch b.col.Kind {
		case KindEnum:
			opts = slices.Clone(b.col.EnumValues)
		case KindArray:
			if b.col.ArrayItem != nil {
				opts = slices.Clone(b.col.ArrayItem.EnumValues)
			}
		case KindBoolean:
			opts = []string{"true", "false"}
		}
	}
	return Builder[C]{col: replaceFilter(b.col, Filter{Kind: FilterCheckbox, Options: opts})}
}

// WithSliderFilter attaches a numeric slider filter with the given
// bounds. Compiles only for number columns. The validator rejects
// min > max.
func WithSliderFilter[C SliderCapable](b Builder[C], min, max float64) Builder[C] {
	return Builder[C]{col: replaceFilter(b.col, Filter{Kind: FilterSlider, Min: &min, Max: &max})}
}

// WithTimerangeFilter attaches a time range filter, optionally with named
// presets. Compiles only for timestamp columns. Presets do not survive
// serialization.
func WithTimerangeFilter[C TimerangeCapable](b Builder[C], presets ...TimePreset) Builder[C] {
	return Builder[C]{col: replaceFilter(b.col, Filter{Kind: FilterTimerange, Presets: slices.Clone(presets)})}
}
