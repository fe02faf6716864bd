// Package schema describes the columns of a tabular dataset once, in a
// declarative form, and derives everything else from that single
// description: rendering column definitions, filter-field descriptors, a
// filter-parsing spec, a JSON wire representation, and (inversely) a
// schema reconstructed from JSON or inferred from raw sample records.
//
// # Building a schema
//
// Columns are assembled with immutable, chainable builders. Every mutator
// returns a new builder value, so partially configured builders can be
// shared and reused freely:
//
//	base := schema.String().Sortable(false)
//
//	s, err := schema.New(schema.Fields{
//	    {Key: "name", Column: base.Label("Name")},
//	    {Key: "level", Column: schema.Enum("debug", "info", "error").Label("Level")},
//	    {Key: "latency", Column: schema.WithSliderFilter(schema.Number().Label("Latency").Unit("ms"), 0, 5000)},
//	})
//
// Which filter kinds are legal for a column depends on its data kind and
// is enforced at compile time: filter attachment functions are generic
// over capability marker types, so attaching a slider filter to a string
// column does not compile. NotFilterable returns a builder on which no
// filter function is applicable.
//
// # Serialization
//
// Schema.Document produces a plain, callback-free JSON document
// ({"columns": [...]}) and FromJSON reconstructs a schema from one.
// Function-valued fields (custom cell renderers, checkbox option
// renderers, sheet renderers and conditions) are dropped on
// serialization; a custom display degrades to the kind's default display
// on deserialization. Consumers re-attach renderers after reconstruction.
//
// # Inference
//
// Infer and InferFromJSON derive a schema from untyped sample records by
// heuristic classification of the observed values per key. The result is
// a starting point, not a guarantee; callers customize from there.
package schema
