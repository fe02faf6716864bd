package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"time"
)

// Classification thresholds. These encode observed data shapes (Unix
// millisecond timestamps, "is this field actually categorical") and are
// part of the inference contract; do not tune them.
const (
	// enumThreshold is the maximum number of distinct string values that
	// still classifies a column as an enum.
	enumThreshold = 10

	// unixMilliMin..unixMilliMax is the 13-digit range of plausible Unix
	// millisecond timestamps.
	unixMilliMin = 1_000_000_000_000
	unixMilliMax = 9_999_999_999_999
)

// isoDatePattern matches the ISO-8601 shapes the inference engine
// recognizes: a date, optionally followed by a time and zone.
var isoDatePattern = regexp.MustCompile(
	`^\d{4}-\d{2}-\d{2}([T ]\d{2}:\d{2}(:\d{2}(\.\d+)?)?(Z|[+-]\d{2}:?\d{2})?)?$`)

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseISODate reports whether s is an ISO-8601 shaped string that also
// parses as a valid date. A value matching the shape but failing the
// parse ("2024-13-40") is deliberately excluded and falls through to
// later classification rules.
func parseISODate(s string) bool {
	if !isoDatePattern.MatchString(s) {
		return false
	}
	for _, layout := range isoLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// InferFromJSON infers a schema from a JSON array of records. Key order
// follows first appearance in the document, so inference over the same
// bytes is deterministic and idempotent.
func InferFromJSON(data []byte) (*Schema, error) {
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode sample records: %w", err)
	}
	keys, err := documentKeyOrder(data)
	if err != nil {
		return nil, err
	}
	return inferOrdered(keys, records)
}

// Infer infers a schema from already-decoded records. Go maps do not
// preserve key order, so keys are taken in sorted order here; use
// InferFromJSON to keep the sample's own ordering.
func Infer(records []map[string]any) (*Schema, error) {
	seen := make(map[string]struct{})
	var keys []string
	for _, rec := range records {
		for key := range rec {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				keys = append(keys, key)
			}
		}
	}
	sort.Strings(keys)
	return inferOrdered(keys, records)
}

// documentKeyOrder scans the raw JSON token stream and returns the union
// of top-level record keys in first-seen order.
func documentKeyOrder(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // opening [
		return nil, fmt.Errorf("failed to scan sample records: %w", err)
	}
	seen := make(map[string]struct{})
	var keys []string
	for dec.More() {
		tok, err := dec.Token() // opening { (or a null element)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sample records: %w", err)
		}
		if tok != json.Delim('{') {
			continue
		}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("failed to scan sample records: %w", err)
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("failed to scan sample records: unexpected token %v", keyTok)
			}
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				keys = append(keys, key)
			}
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("failed to scan sample records: %w", err)
			}
		}
		if _, err := dec.Token(); err != nil { // closing }
			return nil, fmt.Errorf("failed to scan sample records: %w", err)
		}
	}
	return keys, nil
}

func inferOrdered(keys []string, records []map[string]any) (*Schema, error) {
	fields := make(Fields, 0, len(keys))
	for _, key := range keys {
		values := make([]any, 0, len(records))
		for _, rec := range records {
			values = append(values, rec[key]) // nil when absent
		}
		fields = append(fields, Field{Key: key, Column: classify(key, values)})
	}
	return New(fields)
}

// classify applies the heuristic precedence rules to the values observed
// for one key. First match wins.
func classify(key string, values []any) ColumnBuilder {
	label := Labelize(key)
	nonNull := make([]any, 0, len(values))
	sawNull := false
	for _, v := range values {
		if v == nil {
			sawNull = true
			continue
		}
		nonNull = append(nonNull, v)
	}

	finish := func(b ColumnBuilder) ColumnBuilder {
		col := b.Column()
		col.Label = label
		col.Optional = sawNull
		return rawColumn{col}
	}

	// 1. Nothing observed: string with an input filter.
	if len(nonNull) == 0 {
		return finish(String())
	}

	// 2. ISO-8601 date strings.
	if allStrings(nonNull) && allMatch(nonNull, func(v any) bool { return parseISODate(v.(string)) }) {
		return finish(Timestamp())
	}

	// 3. Unix millisecond timestamps.
	if allNumbers(nonNull) && allMatch(nonNull, func(v any) bool {
		n, _ := asNumber(v)
		return n >= unixMilliMin && n <= unixMilliMax
	}) {
		return finish(Timestamp())
	}

	// 4. Booleans.
	if allMatch(nonNull, func(v any) bool { _, ok := v.(bool); return ok }) {
		return finish(Boolean())
	}

	// 5. Numbers: a constant column gets an input filter, a spread gets
	// a slider with the exact sampled bounds.
	if allNumbers(nonNull) {
		lo, hi := numericBounds(nonNull)
		if lo == hi {
			return finish(Number())
		}
		return finish(WithSliderFilter(Number(), lo, hi))
	}

	// 6. Arrays.
	if allMatch(nonNull, func(v any) bool { _, ok := v.([]any); return ok }) {
		items := flattenItems(nonNull)
		if len(items) > 0 && allStrings(items) {
			if distinct := distinctStrings(items); len(distinct) <= enumThreshold {
				return finish(Array(Enum(distinct...)))
			}
		}
		return finish(Array(String()))
	}

	// 7. Plain objects.
	if allMatch(nonNull, func(v any) bool { _, ok := v.(map[string]any); return ok }) {
		return finish(Record())
	}

	// 8. Low-cardinality strings are categorical.
	if allStrings(nonNull) {
		if distinct := distinctStrings(nonNull); len(distinct) <= enumThreshold {
			return finish(Enum(distinct...))
		}
	}

	// 9. Fallback.
	return finish(String())
}

func allMatch(values []any, pred func(any) bool) bool {
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}
	return true
}

func allStrings(values []any) bool {
	return allMatch(values, func(v any) bool { _, ok := v.(string); return ok })
}

// asNumber widens the numeric types a sample can plausibly carry. JSON
// decoding always yields float64; hand-built records may use ints.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}

func allNumbers(values []any) bool {
	return allMatch(values, func(v any) bool { _, ok := asNumber(v); return ok })
}

func numericBounds(values []any) (lo, hi float64) {
	lo, _ = asNumber(values[0])
	hi = lo
	for _, v := range values[1:] {
		n, _ := asNumber(v)
		if n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	return lo, hi
}

// flattenItems collects the non-null items of all sampled arrays.
func flattenItems(values []any) []any {
	var items []any
	for _, v := range values {
		for _, item := range v.([]any) {
			if item != nil {
				items = append(items, item)
			}
		}
	}
	return items
}

// distinctStrings returns the distinct values in first-seen order.
func distinctStrings(values []any) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, v := range values {
		s := v.(string)
		if _, dup := seen[s]; !dup {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
