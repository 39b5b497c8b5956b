// Package trace records where a lowering run spends its time.
//
// Spans are opened with Begin and closed with End; spans nest through the
// parent argument. Scopes go from coarse to fine: ScopeDriver (the CLI run),
// ScopeUnit (one compilation unit: decode, cache lookup, lowering),
// ScopeModule (one module or package) and ScopeNode (one dispatched
// lowering). The Level decides which scopes reach the tracer:
//
//	phase   driver + unit
//	detail  + module
//	debug   + node
//
// Enable via command-line flags:
//
//	svlower lower --trace=- --trace-level=detail design.json
//
// StreamTracer writes as events happen, RingTracer keeps the last N events
// and writes them on Close, MultiTracer fans out to both.
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeUnit, "unit:top", nil)
//	defer span.End("")
package trace
