package hir

import (
	"errors"
	"fmt"

	"svlower/internal/diag"
	"svlower/internal/source"
	"svlower/internal/trace"
)

// ErrLowering is returned (wrapped) by Lower when a node could not be
// lowered. The reason has always been reported as a diagnostic first.
var ErrLowering = errors.New("lowering failed")

// Options tunes lowering behaviour.
type Options struct {
	// PairNonAnsiPorts matches non-ANSI header ports with their reconciled
	// body declarations. When false header ports are lowered as written.
	PairNonAnsiPorts bool
	// WarnDecimalXZ reports decimal literals with x/z digits, whose masks
	// are not tracked.
	WarnDecimalXZ bool
	// Files resolves spans to source text for diagnostics quoting code.
	Files  *source.FileSet
	Tracer trace.Tracer
	// TraceParent is the span per-node spans are attached to.
	TraceParent *trace.Span
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{
		PairNonAnsiPorts: true,
		WarnDecimalXZ:    true,
	}
}

type lowerState uint8

const (
	stateNew lowerState = iota
	stateInProgress
	stateDone
	stateFailed
)

type entry struct {
	ast    AstNode
	parent NodeID
	state  lowerState
	node   Node
	err    error
}

// Context owns the identity table and lowered nodes of one compilation
// unit. It is not safe for concurrent use.
type Context struct {
	reporter diag.Reporter
	opts     Options
	tracer   trace.Tracer
	entries  *Arena[entry]
	ids      map[AstNode]NodeID
	// span of the node being dispatched
	span *trace.Span
}

// NewContext creates an empty context. A nil reporter drops diagnostics.
func NewContext(reporter diag.Reporter, opts Options) *Context {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Context{
		reporter: reporter,
		opts:     opts,
		tracer:   tracer,
		entries:  NewArena[entry](64),
		ids:      make(map[AstNode]NodeID),
	}
}

// Options returns the options the context was created with.
func (cx *Context) Options() Options { return cx.opts }

// AllocRoot allocates an identity without a rib, for modules and packages.
func (cx *Context) AllocRoot(node AstNode) NodeID {
	return cx.Alloc(node, NoNodeID)
}

// Alloc returns the identity of node, allocating it with parent as rib on
// first sight. A repeated node keeps its first parent. Allocating under a
// parent that does not exist yet is a programming error and panics.
func (cx *Context) Alloc(node AstNode, parent NodeID) NodeID {
	if id, ok := cx.ids[node]; ok {
		return id
	}
	if parent != NoNodeID && uint32(parent) > cx.entries.Len() {
		panic(fmt.Sprintf("hir: parent %d of %s not allocated (have %d ids)", parent, node.Kind, cx.entries.Len()))
	}
	id := NodeID(cx.entries.Allocate(entry{ast: node, parent: parent}))
	cx.ids[node] = id
	return id
}

// Parent returns the rib of id, NoNodeID for roots.
func (cx *Context) Parent(id NodeID) NodeID {
	if e := cx.entries.Get(uint32(id)); e != nil {
		return e.parent
	}
	return NoNodeID
}

// AstOf returns the syntax node id was allocated for.
func (cx *Context) AstOf(id NodeID) (AstNode, bool) {
	if e := cx.entries.Get(uint32(id)); e != nil {
		return e.ast, true
	}
	return AstNode{}, false
}

// Lookup returns the identity already allocated for node.
func (cx *Context) Lookup(node AstNode) (NodeID, bool) {
	id, ok := cx.ids[node]
	return id, ok
}

// Len is the number of allocated identities; the largest valid NodeID.
func (cx *Context) Len() int { return int(cx.entries.Len()) }

// Node returns the lowered node of id if Lower already succeeded for it.
func (cx *Context) Node(id NodeID) Node {
	if e := cx.entries.Get(uint32(id)); e != nil && e.state == stateDone {
		return e.node
	}
	return nil
}

// Lower lowers the node behind id. Results are memoized, failures
// included: asking again returns the same value and reports nothing new.
func (cx *Context) Lower(id NodeID) (Node, error) {
	e := cx.entries.Get(uint32(id))
	if e == nil {
		panic(fmt.Sprintf("hir: lower of unknown id %d", id))
	}
	switch e.state {
	case stateDone:
		return e.node, nil
	case stateFailed:
		return nil, e.err
	case stateInProgress:
		panic(fmt.Sprintf("hir: recursive lowering of %d (%s)", id, e.ast.Kind))
	}
	e.state = stateInProgress
	n := e.ast

	span := trace.Begin(cx.tracer, spanScope(n.Kind), "lower:"+n.Kind.String(), cx.opts.TraceParent)
	cx.span = span
	node, err := cx.dispatch(id, n)
	cx.span = nil

	// dispatch allocates, e may be stale
	e = cx.entries.Get(uint32(id))
	if err != nil {
		e.state = stateFailed
		e.err = fmt.Errorf("%s %d: %w", n.Kind, id, err)
		span.End("failed")
		return nil, e.err
	}
	e.state = stateDone
	e.node = node
	span.End("")
	return node, nil
}

// LowerAll lowers every identity in allocation order, including the ones
// allocated along the way, and returns the number of failed nodes.
func (cx *Context) LowerAll() int {
	failed := 0
	for id := NodeID(1); uint32(id) <= cx.entries.Len(); id++ {
		if _, err := cx.Lower(id); err != nil {
			failed++
		}
	}
	return failed
}

func spanScope(k AstKind) trace.Scope {
	if k == AstModule || k == AstPackage {
		return trace.ScopeModule
	}
	return trace.ScopeNode
}

// ---- diagnostics ----

func (cx *Context) errorf(code diag.Code, sp source.Span, format string, args ...any) *diag.ReportBuilder {
	return diag.ReportError(cx.reporter, code, sp, fmt.Sprintf(format, args...))
}

func (cx *Context) warnf(code diag.Code, sp source.Span, format string, args ...any) *diag.ReportBuilder {
	return diag.ReportWarning(cx.reporter, code, sp, fmt.Sprintf(format, args...))
}

// fail emits b and returns the lowering error.
func fail(b *diag.ReportBuilder) error {
	b.Emit()
	return ErrLowering
}

// snippet returns the source text of sp, or fallback when unavailable.
func (cx *Context) snippet(sp source.Span, fallback string) string {
	if text, ok := cx.opts.Files.Snippet(sp); ok && text != "" {
		return text
	}
	return fallback
}

func (cx *Context) unimp(sp source.Span, what string) error {
	return fail(cx.errorf(diag.LowUnimplemented, sp, "lowering of %s is not implemented", what))
}
