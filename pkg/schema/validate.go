package schema

import (
	"fmt"
	"strconv"
	"unicode"
)

// ValidationError reports the first invariant violation found in a
// definition. Key names the offending column.
type ValidationError struct {
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// validate checks the invariants the builder's constraint system cannot
// express. Columns are checked in definition order and the first
// violation wins. Both construction paths run it: native definitions via
// New and JSON documents via FromDocument.
func (s *Schema) validate() error {
	for _, key := range s.keys {
		col := s.columns[key]
		if col.Label == "" {
			return &ValidationError{
				Key: key,
				Message: fmt.Sprintf("column %q has no label; set one with Label(%q)",
					key, capitalizeFirst(key)),
			}
		}
		if f := col.Filter; f != nil && f.Kind == FilterSlider {
			if f.Min == nil || f.Max == nil {
				return &ValidationError{
					Key:     key,
					Message: fmt.Sprintf("column %q: slider filter requires both min and max", key),
				}
			}
			if *f.Min > *f.Max {
				return &ValidationError{
					Key: key,
					Message: fmt.Sprintf("column %q: slider min (%s) must be less than max (%s)",
						key, formatBound(*f.Min), formatBound(*f.Max)),
				}
			}
		}
	}
	return nil
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// capitalizeFirst upper-cases the first rune, used to suggest a label for
// an unlabeled column.
func capitalizeFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
