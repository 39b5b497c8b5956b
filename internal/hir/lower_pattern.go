package hir

import (
	"svlower/internal/ast"
	"svlower/internal/diag"
)

// lowerPattern lowers an assignment pattern. The first field decides
// whether the pattern is positional, repeat or named; fields that do not
// fit are reported and dropped.
func (cx *Context) lowerPattern(id NodeID, fields []*ast.PatternField) (ExprKind, ExprData) {
	if len(fields) == 0 {
		return ExprEmptyPattern, EmptyPatternData{}
	}
	first := fields[0]
	switch first.Kind {
	case ast.PatExpr:
		var data PositionalPatternData
		for _, f := range fields {
			if f.Kind != ast.PatExpr {
				cx.inconsistentField(f, first, "positional")
				continue
			}
			data.Fields = append(data.Fields, cx.Alloc(ExprNode(f.Expr), id))
		}
		return ExprPositionalPattern, data

	case ast.PatRepeat:
		for _, f := range fields[1:] {
			cx.errorf(diag.LowPatternAfterRepeat, f.Span, "`%s` after repeat pattern", cx.snippet(f.Span, f.Kind.String())).
				WithNote(f.Span, "repeat patterns must have the form `'{<expr>{...}}`").
				Emit()
		}
		data := RepeatPatternData{Count: cx.Alloc(ExprNode(first.Count), id)}
		for _, x := range first.Exprs {
			data.Exprs = append(data.Exprs, cx.Alloc(ExprNode(x), id))
		}
		return ExprRepeatPattern, data
	}

	var data NamedPatternData
	for _, f := range fields {
		key := PatternKey{Kind: f.Kind}
		switch f.Kind {
		case ast.PatType:
			key.Type = cx.Alloc(TypeNode(f.Type), id)
		case ast.PatMember:
			key.Expr = cx.Alloc(ExprNode(f.Member), id)
		case ast.PatDefault:
		default:
			cx.inconsistentField(f, first, "named")
			continue
		}
		key.Value = cx.Alloc(ExprNode(f.Expr), id)
		data.Fields = append(data.Fields, key)
	}
	return ExprNamedPattern, data
}

func (cx *Context) inconsistentField(f, first *ast.PatternField, style string) {
	cx.errorf(diag.LowPatternInconsistent, f.Span, "`%s` not a %s pattern", cx.snippet(f.Span, f.Kind.String()), style).
		WithNote(first.Span, "required because first field was a "+style+" pattern, and all fields must be the same:").
		Emit()
}
