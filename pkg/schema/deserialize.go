package schema

import (
	"encoding/json"
	"fmt"
)

// FromJSON reconstructs a schema from its wire form. The reconstructed
// definition passes through the same validation as a native one, so a
// malformed document fails exactly the way a malformed definition fails
// construction.
func FromJSON(data []byte) (*Schema, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode schema document: %w", err)
	}
	return FromDocument(&doc)
}

// FromDocument rebuilds a schema from a decoded document. Custom display
// types degrade to the kind's default display since renderers cannot be
// reconstructed; this is a documented one-way loss, not an error.
// Unrecognized data types fail closed to the string kind.
func FromDocument(doc *Document) (*Schema, error) {
	fields := make(Fields, 0, len(doc.Columns))
	for _, d := range doc.Columns {
		col, err := rebuildColumn(d)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", d.Key, err)
		}
		fields = append(fields, Field{Key: d.Key, Column: rawColumn{col}})
	}
	return New(fields)
}

// rawColumn adapts an already-materialized column to the ColumnBuilder
// interface so deserialized columns flow through New like native ones.
type rawColumn struct {
	col Column
}

func (r rawColumn) Column() Column {
	return r.col.clone()
}

// rebuildColumn replays a descriptor through the factory for its data
// type and the dynamic filter path.
func rebuildColumn(d Descriptor) (Column, error) {
	col := factoryColumn(d)
	col.Label = d.Label
	col.Description = d.Description

	// A stored custom display cannot be reconstructed; fall back to the
	// kind's canonical default.
	if d.Display.Type == "" || d.Display.Type == DisplayCustom {
		col.Display = Display{Type: defaultDisplay(col.Kind)}
	} else {
		col.Display = Display{Type: d.Display.Type, Unit: d.Display.Unit}
	}

	if d.Filter == nil {
		col.Filter = nil
		col.notFilterable = true
	} else {
		replayed, err := applyFilter(col, d.Filter.Type, Filter{
			DefaultOpen:     d.Filter.DefaultOpen,
			CommandDisabled: d.Filter.CommandDisabled,
			Options:         d.Filter.Options,
			Min:             d.Filter.Min,
			Max:             d.Filter.Max,
		})
		if err != nil {
			return Column{}, err
		}
		col = replayed
	}

	col.Hidden = d.Hidden
	col.Sortable = d.Sortable
	col.Optional = d.Optional
	if d.Size != nil {
		size := *d.Size
		col.Size = &size
	}
	if d.Sheet != nil {
		col.Sheet = &Sheet{
			Label:             d.Sheet.Label,
			ClassName:         d.Sheet.ClassName,
			SkeletonClassName: d.Sheet.SkeletonClassName,
		}
	}
	return col, nil
}

// factoryColumn selects the builder factory matching the descriptor's
// data type, special-casing enums and arrays of enums which need their
// literal sets restored.
func factoryColumn(d Descriptor) Column {
	switch d.DataType {
	case KindNumber:
		return Number().Column()
	case KindBoolean:
		return Boolean().Column()
	case KindTimestamp:
		return Timestamp().Column()
	case KindEnum:
		return Enum(d.EnumValues...).Column()
	case KindArray:
		if d.ArrayItemType != nil && d.ArrayItemType.DataType == KindEnum {
			return Array(Enum(d.ArrayItemType.EnumValues...)).Column()
		}
		item := itemColumn(d.ArrayItemType)
		col := Array(rawColumn{item}).Column()
		return col
	case KindRecord:
		return Record().Column()
	case KindString:
		return String().Column()
	default:
		// Unknown data types fail closed to the string fallback rather
		// than producing an invalid kind.
		return String().Column()
	}
}

func itemColumn(item *ItemDescriptor) Column {
	if item == nil {
		return String().Column()
	}
	switch item.DataType {
	case KindNumber:
		return Number().Column()
	case KindBoolean:
		return Boolean().Column()
	case KindTimestamp:
		return Timestamp().Column()
	case KindEnum:
		return Enum(item.EnumValues...).Column()
	default:
		return String().Column()
	}
}

// defaultDisplay is the canonical display type per data kind, used both
// by inference and when degrading a custom display.
func defaultDisplay(kind Kind) DisplayType {
	switch kind {
	case KindEnum, KindArray:
		return DisplayBadge
	case KindBoolean:
		return DisplayBoolean
	case KindTimestamp:
		return DisplayTimestamp
	case KindNumber:
		return DisplayNumber
	default:
		return DisplayText
	}
}
