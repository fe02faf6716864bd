package schema

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Document is the JSON wire form of a schema: a plain, callback-free
// mirror of the column configurations, in definition order. Field
// presence is significant; optional fields are omitted entirely when
// absent. Filter and Sheet are the only explicitly nullable fields.
type Document struct {
	Columns []Descriptor `json:"columns"`
}

// Descriptor is the serializable mirror of one column's configuration.
// All function-valued fields are stripped; a custom display type and the
// filter/sheet component markers are the only signals that information
// was dropped.
type Descriptor struct {
	Key           string             `json:"key"`
	DataType      Kind               `json:"dataType"`
	EnumValues    []string           `json:"enumValues,omitempty"`
	ArrayItemType *ItemDescriptor    `json:"arrayItemType,omitempty"`
	Optional      bool               `json:"optional,omitempty"`
	Label         string             `json:"label"`
	Description   string             `json:"description,omitempty"`
	Display       DisplayDescriptor `json:"display"`
	Size          *int              `json:"size,omitempty"`
	Hidden        bool              `json:"hidden,omitempty"`
	Sortable      bool              `json:"sortable"`
	Filter        *FilterDescriptor `json:"filter"`
	Sheet         *SheetDescriptor  `json:"sheet"`
}

// ItemDescriptor describes the element type of an array column.
type ItemDescriptor struct {
	DataType   Kind     `json:"dataType"`
	EnumValues []string `json:"enumValues,omitempty"`
}

// DisplayDescriptor is the wire form of a display configuration. Unit is
// emitted only when set.
type DisplayDescriptor struct {
	Type DisplayType `json:"type"`
	Unit string      `json:"unit,omitempty"`
}

// FilterDescriptor is the wire form of a filter configuration. Component
// marks a dropped custom option renderer.
type FilterDescriptor struct {
	Type            FilterKind `json:"type"`
	DefaultOpen     bool       `json:"defaultOpen,omitempty"`
	CommandDisabled bool       `json:"commandDisabled,omitempty"`
	Options         []string   `json:"options,omitempty"`
	Min             *float64   `json:"min,omitempty"`
	Max             *float64   `json:"max,omitempty"`
	Component       bool       `json:"component,omitempty"`
}

// SheetDescriptor is the wire form of a sheet configuration. Component
// marks a dropped custom renderer; the visibility condition is dropped
// without a marker.
type SheetDescriptor struct {
	Label             string `json:"label,omitempty"`
	ClassName         string `json:"className,omitempty"`
	SkeletonClassName string `json:"skeletonClassName,omitempty"`
	Component         bool   `json:"component,omitempty"`
}

// Document produces the wire form of the schema, preserving column
// order. The result carries no callbacks and is safe to store and
// transmit.
func (s *Schema) Document() *Document {
	doc := &Document{Columns: make([]Descriptor, 0, len(s.keys))}
	for _, key := range s.keys {
		doc.Columns = append(doc.Columns, describeColumn(key, s.columns[key]))
	}
	return doc
}

// JSON renders the wire form as indented JSON.
func (s *Schema) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(s.Document(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema document: %w", err)
	}
	return data, nil
}

func describeColumn(key string, col Column) Descriptor {
	d := Descriptor{
		Key:         key,
		DataType:    col.Kind,
		EnumValues:  slices.Clone(col.EnumValues),
		Optional:    col.Optional,
		Label:       col.Label,
		Description: col.Description,
		Display:     DisplayDescriptor{Type: col.Display.Type, Unit: col.Display.Unit},
		Hidden:      col.Hidden,
		Sortable:    col.Sortable,
	}
	if col.ArrayItem != nil {
		d.ArrayItemType = &ItemDescriptor{
			DataType:   col.ArrayItem.Kind,
			EnumValues: slices.Clone(col.ArrayItem.EnumValues),
		}
	}
	if col.Size != nil {
		size := *col.Size
		d.Size = &size
	}
	if f := col.Filter; f != nil {
		fd := &FilterDescriptor{
			Type:            f.Kind,
			DefaultOpen:     f.DefaultOpen,
			CommandDisabled: f.CommandDisabled,
			Options:         slices.Clone(f.Options),
			Component:       f.OptionRenderer != nil,
		}
		if f.Min != nil {
			v := *f.Min
			fd.Min = &v
		}
		if f.Max != nil {
			v := *f.Max
			fd.Max = &v
		}
		d.Filter = fd
	}
	if sh := col.Sheet; sh != nil {
		d.Sheet = &SheetDescriptor{
			Label:             sh.Label,
			ClassName:         sh.ClassName,
			SkeletonClassName: sh.SkeletonClassName,
			Component:         sh.Component != nil,
		}
	}
	return d
}
