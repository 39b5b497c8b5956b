// Package diag defines the diagnostic model shared by the lowering engine,
// the driver and the CLI.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier with a stable string form (codes.go).
//     Lowering codes live in the LOW range, input errors in IO, timings in OBS.
//   - Message – short human oriented text.
//   - Primary span – the source.Span the finding is about.
//   - Notes – ordered secondary spans, each with an optional message
//     ("previous declaration was here:", "assuming this refers to argument #2").
//
// Records are immutable once reported.
//
// # Emitting diagnostics
//
// Producers talk to a Reporter only. The lowering context builds records with
// ReportError / ReportWarning, chains WithNote and calls Emit. BagReporter
// stores everything in a Bag; the driver keeps one Bag per compilation unit,
// merges them and restores source order with Bag.Sort, which is stable so
// records at the same position keep their emission order.
//
// Rendering lives in internal/diagfmt. FormatShortDiagnostics in this package
// is the one-line form shared by the CLI short output and tests.
package diag
