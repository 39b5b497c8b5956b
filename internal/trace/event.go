package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1 // span start
	KindSpanEnd                   // span end
	KindPoint                     // instant event
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity of the event.
// Lower numeric values are coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // whole CLI run
	ScopeUnit                    // one compilation unit (decode, lower, cache)
	ScopeModule                  // module / package lowering
	ScopeNode                    // single dispatched lowering
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopeUnit:
		return "unit"
	case ScopeModule:
		return "module"
	case ScopeNode:
		return "node"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer on emit
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	Depth    int    // nesting depth of the span, used for text indentation
	Name     string // "lower", "unit:top.sv#0", "lower:module"
	Detail   string
	Extra    map[string]string
}
