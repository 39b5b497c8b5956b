package diag

import (
	"svlower/internal/source"
)

// Note is a secondary annotation: a span with an optional message.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is an immutable finding produced by a phase.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// Spans returns the primary span followed by every note span, in order.
func (d Diagnostic) Spans() []source.Span {
	out := make([]source.Span, 0, 1+len(d.Notes))
	out = append(out, d.Primary)
	for _, n := range d.Notes {
		out = append(out, n.Span)
	}
	return out
}
