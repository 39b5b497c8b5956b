package hir

import (
	"svlower/internal/ast"
	"svlower/internal/diag"
)

func (cx *Context) lowerStmt(id NodeID, s *ast.Stmt) (Node, error) {
	out := &Stmt{ID: id, Span: s.Span, Label: s.Label}
	switch s.Kind {
	case ast.StmtNull:
		out.Kind, out.Data = StmtNull, NullData{}

	case ast.StmtSeqBlock:
		// each statement sees the ones before it
		var data BlockData
		next := id
		for _, st := range s.Stmts {
			next = cx.Alloc(StmtNode(st), next)
			data.Stmts = append(data.Stmts, next)
		}
		out.Kind, out.Data = StmtBlock, data

	case ast.StmtBlockingAssign:
		out.Kind = StmtAssign
		out.Data = AssignData{
			Kind: AssignBlock,
			Op:   s.AssignOp,
			Lhs:  cx.Alloc(ExprNode(s.Lhs), id),
			Rhs:  cx.Alloc(ExprNode(s.Rhs), id),
		}

	case ast.StmtNonblockingAssign:
		data := AssignData{
			Kind: AssignNonblock,
			Lhs:  cx.Alloc(ExprNode(s.Lhs), id),
			Rhs:  cx.Alloc(ExprNode(s.Rhs), id),
		}
		if s.Delay != nil {
			data.Kind = AssignNonblockDelay
			data.Delay = cx.Alloc(ExprNode(s.Delay), id)
		}
		out.Kind, out.Data = StmtAssign, data

	case ast.StmtTimed:
		data, err := cx.lowerTimed(id, s)
		if err != nil {
			return nil, err
		}
		out.Kind, out.Data = StmtTimed, data

	case ast.StmtIf:
		out.Kind = StmtIf
		out.Data = IfData{
			Cond: cx.Alloc(ExprNode(s.Cond), id),
			Then: cx.allocStmt(s.Then, id),
			Else: cx.allocStmt(s.Else, id),
		}

	case ast.StmtExpr:
		out.Kind = StmtExpr
		out.Data = ExprStmtData{Expr: cx.Alloc(ExprNode(s.Expr), id)}

	case ast.StmtForever:
		out.Kind = StmtLoop
		out.Data = LoopData{Kind: LoopForever, Body: cx.allocStmt(s.Body, id)}

	case ast.StmtRepeat, ast.StmtWhile, ast.StmtDo:
		kind := LoopRepeat
		switch s.Kind {
		case ast.StmtWhile:
			kind = LoopWhile
		case ast.StmtDo:
			kind = LoopDo
		}
		out.Kind = StmtLoop
		out.Data = LoopData{
			Kind: kind,
			Cond: cx.Alloc(ExprNode(s.Cond), id),
			Body: cx.allocStmt(s.Body, id),
		}

	case ast.StmtFor:
		// condition, step and body see the loop variables of init
		init := cx.allocStmt(s.Init, id)
		rib := init
		if rib == NoNodeID {
			rib = id
		}
		out.Kind = StmtLoop
		out.Data = LoopData{
			Kind: LoopFor,
			Init: init,
			Cond: cx.allocExpr(s.Cond, rib),
			Step: cx.allocExpr(s.Step, rib),
			Body: cx.allocStmt(s.Body, rib),
		}

	case ast.StmtVarDecl:
		// declarations hang off the statement's parent, the group's rib
		// is what later statements are chained to
		var stmts []NodeID
		rib := cx.allocVarDecl(s.Decl, cx.Parent(id), &stmts)
		out.Kind, out.Data = StmtInlineGroup, InlineGroupData{Stmts: stmts, Rib: rib}

	case ast.StmtCase:
		if s.CaseMode != ast.CaseModeNormal {
			return nil, cx.unimp(s.Span, "case "+s.CaseMode.String()+" statement")
		}
		out.Kind, out.Data = StmtCase, cx.lowerCase(id, s)

	case ast.StmtAssertion:
		cx.warnf(diag.LowUnsupportedAssertion, s.Span, "ignoring unsupported assertion `%s`", cx.snippet(s.Span, "assert")).Emit()
		out.Kind, out.Data = StmtNull, NullData{}

	default:
		return nil, cx.unimp(s.Span, s.DescFull())
	}
	return out, nil
}

func (cx *Context) lowerTimed(id NodeID, s *ast.Stmt) (TimedData, error) {
	tc := s.Timing
	if tc == nil {
		return TimedData{}, cx.unimp(s.Span, "timed statement without timing control")
	}
	var data TimedData
	switch {
	case tc.Kind == ast.TimingDelay:
		data.Timing = TimingDelay
		data.Control = cx.Alloc(ExprNode(tc.Delay), id)
	case tc.Kind == ast.TimingEvent && tc.Implicit:
		data.Timing = TimingImplicitEvent
	case tc.Kind == ast.TimingEvent && tc.Event != nil:
		data.Timing = TimingExplicitEvent
		data.Control = cx.Alloc(EventNode(tc.Event), id)
	default:
		return TimedData{}, fail(cx.errorf(diag.LowUnsupportedTiming, tc.Span, "lowering of %s timing control is not implemented", tc.Kind))
	}
	data.Stmt = cx.allocStmt(s.Body, id)
	return data, nil
}

// lowerCase keeps the first default arm; later ones are reported and
// dropped.
func (cx *Context) lowerCase(id NodeID, s *ast.Stmt) CaseData {
	data := CaseData{Kind: s.CaseKind, Expr: cx.Alloc(ExprNode(s.Expr), id)}
	var firstDefault *ast.CaseItem
	for _, item := range s.Items {
		if item.Default {
			if firstDefault != nil {
				cx.errorf(diag.LowMultipleDefault, item.Span, "multiple default cases").
					WithNote(firstDefault.Span, "first default case was here:").
					Emit()
				continue
			}
			firstDefault = item
			data.Default = cx.allocStmt(item.Stmt, id)
			continue
		}
		way := CaseWay{}
		for _, x := range item.Exprs {
			way.Labels = append(way.Labels, cx.Alloc(ExprNode(x), id))
		}
		way.Stmt = cx.allocStmt(item.Stmt, id)
		data.Ways = append(data.Ways, way)
	}
	return data
}
