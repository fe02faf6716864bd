package filterql

// Token delimiters. Part of the wire contract; see the package
// documentation.
const (
	// ArrayDelimiter joins the items of a checkbox filter value.
	ArrayDelimiter = ";"

	// SliderDelimiter joins the two bounds of a numeric slider value.
	SliderDelimiter = "~"

	// RangeDelimiter joins the two endpoints of a time range value.
	RangeDelimiter = "_"
)

// Kind is the filter UI shape of a field, which selects the value codec
// used inside a token.
type Kind string

const (
	KindInput     Kind = "input"
	KindCheckbox  Kind = "checkbox"
	KindSlider    Kind = "slider"
	KindTimerange Kind = "timerange"
)

// ValueType is the wire type a field's value is validated and converted
// to during parsing.
type ValueType string

const (
	TypeString      ValueType = "string"
	TypeNumber      ValueType = "number"
	TypeBool        ValueType = "boolean"
	TypeTimestamp   ValueType = "timestamp"
	TypeStringList  ValueType = "string-list"
	TypeNumberRange ValueType = "number-range"
	TypeTimeRange   ValueType = "time-range"
)

// FieldSpec declares one field of the typed object a query parses into.
type FieldSpec struct {
	Key      string
	Type     ValueType
	Required bool

	// Values, when non-empty, restricts string and string-list members
	// to the listed literals.
	Values []string
}

// Spec is the typed schema a parsed query is validated against. Pairs
// whose name matches no spec field are dropped.
type Spec []FieldSpec

// Field describes one serializable filter field: its key, the codec its
// values use, and whether it is excluded from the query syntax.
type Field struct {
	Key      string
	Kind     Kind
	Excluded bool
}
