package trace

import (
	"sync/atomic"
	"time"
)

var spanIDs atomic.Uint64

// Span is an open begin/end pair. The zero-cost variant returned for
// filtered scopes has a nil tracer and ignores every call.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	depth   int
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
}

// Begin starts a new span under parent (nil for a root) and emits SpanBegin.
func Begin(t Tracer, scope Scope, name string, parent *Span) *Span {
	if t == nil || !t.Level().ShouldEmit(scope) {
		return &Span{}
	}
	s := &Span{
		tracer:  t,
		id:      spanIDs.Add(1),
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	if parent != nil && parent.tracer != nil {
		s.parent = parent.id
		s.depth = parent.depth + 1
	}
	t.Emit(&Event{
		Time:     s.started,
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Depth:    s.depth,
		Name:     name,
	})
	return s
}

// End emits SpanEnd and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	dur := time.Since(s.started)
	s.tracer.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Depth:    s.depth,
		Name:     s.name,
		Detail:   detail,
		Extra:    s.extra,
	})
	s.tracer = nil
	return dur
}

// WithExtra adds a key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// Point emits an instant event inside s.
func (s *Span) Point(name, detail string) {
	if s == nil || s.tracer == nil {
		return
	}
	s.tracer.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    s.scope,
		ParentID: s.id,
		Depth:    s.depth + 1,
		Name:     name,
		Detail:   detail,
	})
}

// ID returns the span ID, 0 for filtered spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}
