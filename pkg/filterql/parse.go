package filterql

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Result is the outcome of a parse: either a typed, validated value map
// or the validation error. Parse never panics, so callers can treat an
// invalid query as "no change" without recovery machinery.
type Result struct {
	Values map[string]any
	Err    error
}

// Ok reports whether the parse succeeded.
func (r Result) Ok() bool {
	return r.Err == nil
}

// Parse decodes a query string against a spec. Malformed tokens (no
// colon, empty name, empty value) are dropped rather than failing the
// parse; the last occurrence of a repeated name wins. Only the final
// validation of the accumulated pairs can fail.
func Parse(input string, spec Spec) Result {
	pairs := make(map[string]string)
	for _, token := range strings.Fields(strings.TrimSpace(input)) {
		name, value, ok := strings.Cut(token, ":")
		if !ok || name == "" || value == "" {
			continue
		}
		pairs[name] = value
	}
	values, err := validate(pairs, spec)
	return Result{Values: values, Err: err}
}

// validate type-converts the surviving pairs. Pairs without a spec field
// are dropped; spec fields without a pair are an error only when
// required.
func validate(pairs map[string]string, spec Spec) (map[string]any, error) {
	values := make(map[string]any, len(pairs))
	for _, field := range spec {
		raw, ok := pairs[field.Key]
		if !ok {
			if field.Required {
				return nil, fmt.Errorf("field %q is required", field.Key)
			}
			continue
		}
		v, err := convert(raw, field)
		if err != nil {
			return nil, err
		}
		values[field.Key] = v
	}
	return values, nil
}

func convert(raw string, field FieldSpec) (any, error) {
	switch field.Type {
	case TypeString:
		if err := checkAllowed(raw, field); err != nil {
			return nil, err
		}
		return raw, nil

	case TypeNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("field %q: invalid number %q", field.Key, raw)
		}
		return n, nil

	case TypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: invalid boolean %q", field.Key, raw)
		}
		return b, nil

	case TypeTimestamp:
		t, err := parseTime(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: invalid timestamp %q", field.Key, raw)
		}
		return t, nil

	case TypeStringList:
		items := strings.Split(raw, ArrayDelimiter)
		for _, item := range items {
			if err := checkAllowed(item, field); err != nil {
				return nil, err
			}
		}
		return items, nil

	case TypeNumberRange:
		parts := strings.Split(raw, SliderDelimiter)
		if len(parts) > 2 {
			return nil, fmt.Errorf("field %q: range %q has more than two bounds", field.Key, raw)
		}
		bounds := make([]float64, 0, len(parts))
		for _, p := range parts {
			n, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return nil, fmt.Errorf("field %q: invalid number %q", field.Key, p)
			}
			bounds = append(bounds, n)
		}
		return bounds, nil

	case TypeTimeRange:
		parts := strings.Split(raw, RangeDelimiter)
		if len(parts) > 2 {
			return nil, fmt.Errorf("field %q: range %q has more than two endpoints", field.Key, raw)
		}
		endpoints := make([]time.Time, 0, len(parts))
		for _, p := range parts {
			t, err := parseTime(p)
			if err != nil {
				return nil, fmt.Errorf("field %q: invalid timestamp %q", field.Key, p)
			}
			endpoints = append(endpoints, t)
		}
		return endpoints, nil

	default:
		return nil, fmt.Errorf("field %q: unknown value type %q", field.Key, field.Type)
	}
}

func checkAllowed(value string, field FieldSpec) error {
	if len(field.Values) == 0 {
		return nil
	}
	for _, allowed := range field.Values {
		if value == allowed {
			return nil
		}
	}
	return fmt.Errorf("field %q: value %q is not one of %s", field.Key, value, strings.Join(field.Values, ", "))
}

var millisPattern = regexp.MustCompile(`^\d{13}$`)

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTime accepts ISO-8601 dates and 13-digit Unix millisecond
// timestamps, the two shapes shared links carry.
func parseTime(s string) (time.Time, error) {
	if millisPattern.MatchString(s) {
		ms, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return time.UnixMilli(ms).UTC(), nil
		}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}
