package schema

import (
	"fmt"
	"slices"
)

// Field pairs a column key with its builder. Dotted keys are allowed and
// denote nested or virtual row fields.
type Field struct {
	Key    string
	Column ColumnBuilder
}

// Fields is an ordered table schema definition. Order is significant: it
// determines serialization order, generated filter order and command
// palette ordering.
type Fields []Field

// Schema is a validated, immutable table schema. Construct one with New,
// FromDocument/FromJSON, or Infer.
type Schema struct {
	keys    []string
	columns map[string]Column
}

// New assembles and validates a schema from an ordered definition. Keys
// must be unique. Validation runs exactly once, here; a schema value in
// hand is always valid.
func New(fields Fields) (*Schema, error) {
	s := &Schema{
		keys:    make([]string, 0, len(fields)),
		columns: make(map[string]Column, len(fields)),
	}
	for _, f := range fields {
		if f.Column == nil {
			return nil, fmt.Errorf("column %q has no builder", f.Key)
		}
		if _, dup := s.columns[f.Key]; dup {
			return nil, fmt.Errorf("duplicate column key %q", f.Key)
		}
		s.keys = append(s.keys, f.Key)
		s.columns[f.Key] = f.Column.Column()
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	return len(s.keys)
}

// Keys returns the column keys in definition order.
func (s *Schema) Keys() []string {
	return slices.Clone(s.keys)
}

// Column returns the configuration of the named column.
func (s *Schema) Column(key string) (Column, bool) {
	col, ok := s.columns[key]
	if !ok {
		return Column{}, false
	}
	return col.clone(), true
}

// column returns the stored configuration without copying; callers must
// not retain or mutate it.
func (s *Schema) column(key string) Column {
	return s.columns[key]
}
