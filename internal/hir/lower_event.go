package hir

import "svlower/internal/ast"

func (cx *Context) lowerEventExpr(id NodeID, e *ast.EventExpr) (Node, error) {
	var events []Event
	if err := cx.flattenEvent(e, id, &events, nil); err != nil {
		return nil, err
	}
	return &EventExpr{ID: id, Span: e.Span, Events: events}, nil
}

// flattenEvent appends the edge leaves of e to into. iff holds the
// conditions of the enclosing `iff` nodes; a condition covers only its
// own subtree.
func (cx *Context) flattenEvent(e *ast.EventExpr, rib NodeID, into *[]Event, iff []NodeID) error {
	switch e.Kind {
	case ast.EventEdge:
		*into = append(*into, Event{
			Span: e.Span,
			Edge: e.Edge,
			Expr: cx.Alloc(ExprNode(e.Value), rib),
			Iff:  append([]NodeID(nil), iff...),
		})
		return nil
	case ast.EventIff:
		cond := cx.Alloc(ExprNode(e.Cond), rib)
		return cx.flattenEvent(e.Inner, rib, into, append(iff[:len(iff):len(iff)], cond))
	case ast.EventOr:
		if err := cx.flattenEvent(e.Lhs, rib, into, iff); err != nil {
			return err
		}
		return cx.flattenEvent(e.Rhs, rib, into, iff)
	}
	return cx.unimp(e.Span, "event expression `"+e.Kind.String()+"`")
}
