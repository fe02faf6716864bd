// Package filterql implements the compact text syntax that encodes a set
// of column filters as a single line, used for command palette search and
// shareable URLs.
//
// # Syntax
//
// A query is a sequence of whitespace-separated tokens. Each token is a
// name:value pair split on the first colon:
//
//	level:error;warn latency:0~500 date:2024-01-01_2024-01-31 q:timeout
//
// Multi-valued state inside a single token uses three distinct fixed
// delimiters. They are part of the wire contract — shared URLs and
// palette commands embed them literally — and were chosen to avoid the
// characters typical filter values contain (commas, hyphens):
//
//	ArrayDelimiter  ";"  items of a checkbox filter
//	SliderDelimiter "~"  the two bounds of a numeric slider
//	RangeDelimiter  "_"  the two endpoints of a time range
//
// # Parsing
//
// Parse is forgiving about shape and strict about types: tokens without
// a colon, with an empty name, or with an empty value are silently
// dropped, and the last occurrence of a repeated name wins. The
// surviving pairs are then validated against a caller-supplied Spec,
// which is the only step that can fail the parse. Parse never panics;
// the outcome is a Result value, so callers handling live keystrokes can
// degrade gracefully.
//
// # Serialization
//
// Serialize renders an ordered list of filter entries back into the
// syntax, skipping entries without a matching field descriptor and
// entries whose descriptor is excluded from the syntax.
package filterql
