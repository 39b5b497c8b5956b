// Package ast holds the SystemVerilog syntax tree consumed by the lowering
// engine in internal/hir.
//
// Parsing happens elsewhere; the tree arrives in a Bundle (JSON or msgpack)
// together with the source files its spans point into. Every node carries a
// source.Span. Variant nodes use a Kind tag plus the fields of that kind;
// fields that do not belong to the kind stay nil.
//
// Enum tags encode as their source spelling ("module", "posedge", "+:"), so
// bundles stay readable and can be written by hand in tests.
package ast
