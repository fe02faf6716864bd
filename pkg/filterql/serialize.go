package filterql

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Entry is one (column key, filter value) pair to serialize.
type Entry struct {
	Key   string
	Value any
}

// Serialize renders filter entries into the query syntax, in input
// order. An entry is skipped when no field descriptor matches its key or
// when the matching descriptor is excluded; each surviving entry renders
// as "key:value " with a trailing space. A fully-skipped input yields an
// empty string.
func Serialize(entries []Entry, fields []Field) string {
	byKey := make(map[string]Field, len(fields))
	for _, f := range fields {
		byKey[f.Key] = f
	}

	var b strings.Builder
	for _, e := range entries {
		field, ok := byKey[e.Key]
		if !ok || field.Excluded {
			continue
		}
		b.WriteString(e.Key)
		b.WriteByte(':')
		b.WriteString(encodeValue(e.Value, field.Kind))
		b.WriteByte(' ')
	}
	return b.String()
}

// encodeValue applies the codec of the field's filter kind: checkbox
// items join with the array delimiter, slider bounds with the slider
// delimiter, time range endpoints with the range delimiter, and anything
// else renders as a plain scalar.
func encodeValue(v any, kind Kind) string {
	switch kind {
	case KindCheckbox:
		return strings.Join(scalars(v), ArrayDelimiter)
	case KindSlider:
		return strings.Join(scalars(v), SliderDelimiter)
	case KindTimerange:
		return strings.Join(scalars(v), RangeDelimiter)
	default:
		return formatScalar(v)
	}
}

// scalars flattens a slice or array value into rendered items; a scalar
// becomes a single item.
func scalars(v any) []string {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return []string{formatScalar(v)}
	}
	out := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out = append(out, formatScalar(rv.Index(i).Interface()))
	}
	return out
}

func formatScalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}
