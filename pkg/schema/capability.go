package schema

import (
	"fmt"
	"slices"
	"strings"
)

// Capability markers. A Builder carries one of these as its type
// parameter; the filter attachment functions constrain their parameter to
// the markers whose data kind supports that filter, so an illegal
// filter-kind/data-kind pairing is a compile error rather than a runtime
// surprise.
type (
	// StringCaps marks string columns: input and checkbox filters.
	StringCaps struct{}
	// NumberCaps marks number columns: input, slider and checkbox filters.
	NumberCaps struct{}
	// BoolCaps marks boolean columns: checkbox filters only.
	BoolCaps struct{}
	// TimeCaps marks timestamp columns: input and timerange filters.
	TimeCaps struct{}
	// EnumCaps marks enum columns: input and checkbox filters.
	EnumCaps struct{}
	// ArrayCaps marks array columns: checkbox filters only.
	ArrayCaps struct{}
	// NoFilter marks columns with an empty capability set: record columns
	// and any builder after NotFilterable.
	NoFilter struct{}
)

// InputCapable constrains filter attachment to kinds that accept a free
// text input filter.
type InputCapable interface {
	StringCaps | NumberCaps | TimeCaps | EnumCaps
}

// CheckboxCapable constrains filter attachment to kinds that accept a
// checkbox filter.
type CheckboxCapable interface {
	StringCaps | NumberCaps | BoolCaps | EnumCaps | ArrayCaps
}

// SliderCapable constrains filter attachment to kinds that accept a
// numeric slider filter.
type SliderCapable interface {
	NumberCaps
}

// TimerangeCapable constrains filter attachment to kinds that accept a
// time range filter.
type TimerangeCapable interface {
	TimeCaps
}

// kindCapabilities is the runtime mirror of the compile-time capability
// sets, used when replaying JSON descriptors through the dynamic path.
var kindCapabilities = map[Kind][]FilterKind{
	KindString:    {FilterInput, FilterCheckbox},
	KindNumber:    {FilterInput, FilterSlider, FilterCheckbox},
	KindBoolean:   {FilterCheckbox},
	KindTimestamp: {FilterInput, FilterTimerange},
	KindEnum:      {FilterInput, FilterCheckbox},
	KindArray:     {FilterCheckbox},
	KindRecord:    nil,
}

// applyFilter is the runtime analog of the typed filter attachment
// functions. It performs the same legality check the type system performs
// on the builder path and fails immediately at the call site on a
// violation.
func applyFilter(col Column, kind FilterKind, f Filter) (Column, error) {
	if col.notFilterable {
		return Column{}, fmt.Errorf("column was marked not filterable; filter %q is not allowed", kind)
	}
	allowed := kindCapabilities[col.Kind]
	if !slices.Contains(allowed, kind) {
		return Column{}, fmt.Errorf("filter kind %q is not allowed for %s columns (allowed: %s)",
			kind, col.Kind, formatKinds(allowed))
	}
	out := col.clone()
	filter := f
	filter.Kind = kind
	filter.Options = slices.Clone(f.Options)
	filter.Presets = slices.Clone(f.Presets)
	out.Filter = &filter
	return out, nil
}

func formatKinds(kinds []FilterKind) string {
	if len(kinds) == 0 {
		return "none"
	}
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}
