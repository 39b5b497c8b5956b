package hir

import (
	"svlower/internal/ast"
	"svlower/internal/diag"
)

func (cx *Context) lowerExpr(id NodeID, e *ast.Expr) (Node, error) {
	out := &Expr{ID: id, Span: e.Span}
	var err error
	switch e.Kind {
	case ast.ExprLiteral:
		if e.Lit == nil {
			return nil, cx.unimp(e.Span, "literal without a token")
		}
		out.Kind, out.Data, err = cx.lowerLiteral(e.Span, e.Lit)
	case ast.ExprIdent:
		out.Kind = ExprIdent
		out.Data = IdentData{Name: *e.Ident}
	case ast.ExprUnary:
		op, err := cx.unaryOp(e)
		if err != nil {
			return nil, err
		}
		out.Kind = ExprUnary
		out.Data = UnaryData{Op: op, Operand: cx.Alloc(ExprNode(e.Operand), id)}
	case ast.ExprBinary:
		op, ok := binaryOps[e.Op]
		if !ok {
			return nil, fail(cx.errorf(diag.LowInvalidBinaryOp, e.Span, "`%s` is not a valid binary operator", e.Op))
		}
		out.Kind = ExprBinary
		out.Data = BinaryData{
			Op:  op,
			Lhs: cx.Alloc(ExprNode(e.Lhs), id),
			Rhs: cx.Alloc(ExprNode(e.Rhs), id),
		}
	case ast.ExprMember:
		out.Kind = ExprField
		out.Data = FieldData{Operand: cx.Alloc(ExprNode(e.Operand), id), Name: *e.Ident}
	case ast.ExprIndex:
		out.Kind = ExprIndex
		out.Data = cx.lowerIndex(id, e)
	case ast.ExprCall:
		out.Kind = ExprBuiltin
		out.Data, err = cx.lowerCall(id, e)
	case ast.ExprTernary:
		out.Kind = ExprTernary
		out.Data = TernaryData{
			Cond: cx.Alloc(ExprNode(e.Cond), id),
			Then: cx.Alloc(ExprNode(e.Lhs), id),
			Else: cx.Alloc(ExprNode(e.Rhs), id),
		}
	case ast.ExprScope:
		out.Kind = ExprScope
		out.Data = ScopeData{Operand: cx.Alloc(ExprNode(e.Operand), id), Name: *e.Ident}
	case ast.ExprPattern:
		out.Kind, out.Data = cx.lowerPattern(id, e.Fields)
	case ast.ExprConcat:
		data := ConcatData{Repeat: cx.allocExpr(e.Repeat, id)}
		for _, x := range e.Exprs {
			data.Exprs = append(data.Exprs, cx.Alloc(ExprNode(x), id))
		}
		out.Kind = ExprConcat
		out.Data = data
	case ast.ExprCast:
		out.Kind = ExprCast
		out.Data = CastData{
			Type:    cx.Alloc(TypeNode(e.Type), id),
			Operand: cx.Alloc(ExprNode(e.Operand), id),
		}
	case ast.ExprInside:
		data := InsideData{Operand: cx.Alloc(ExprNode(e.Operand), id)}
		for _, r := range e.Ranges {
			if r.Range {
				data.Ranges = append(data.Ranges, InsideRange{
					Range: true,
					Lo:    cx.Alloc(ExprNode(r.Lo), id),
					Hi:    cx.Alloc(ExprNode(r.Hi), id),
				})
				continue
			}
			data.Ranges = append(data.Ranges, InsideRange{Lo: cx.Alloc(ExprNode(r.Expr), id)})
		}
		out.Kind = ExprInside
		out.Data = data
	default:
		return nil, cx.unimp(e.Span, e.DescFull())
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

var binaryOps = map[ast.Op]BinaryOp{
	ast.OpAdd:      BinaryAdd,
	ast.OpSub:      BinarySub,
	ast.OpMul:      BinaryMul,
	ast.OpDiv:      BinaryDiv,
	ast.OpMod:      BinaryMod,
	ast.OpPow:      BinaryPow,
	ast.OpLogicEq:  BinaryEq,
	ast.OpLogicNeq: BinaryNeq,
	ast.OpLt:       BinaryLt,
	ast.OpLeq:      BinaryLeq,
	ast.OpGt:       BinaryGt,
	ast.OpGeq:      BinaryGeq,
	ast.OpLogicAnd: BinaryLogicAnd,
	ast.OpLogicOr:  BinaryLogicOr,
	ast.OpBitAnd:   BinaryBitAnd,
	ast.OpBitNand:  BinaryBitNand,
	ast.OpBitOr:    BinaryBitOr,
	ast.OpBitNor:   BinaryBitNor,
	ast.OpBitXor:   BinaryBitXor,
	ast.OpBitXnor:  BinaryBitXnor,
	ast.OpBitNxor:  BinaryBitXnor,
	ast.OpLogicShL: BinaryLogicShL,
	ast.OpLogicShR: BinaryLogicShR,
	ast.OpArithShL: BinaryArithShL,
	ast.OpArithShR: BinaryArithShR,
}

// prefix operators; ++ and -- are the only postfix ones
var prefixOps = map[ast.Op]UnaryOp{
	ast.OpAdd:      UnaryPos,
	ast.OpSub:      UnaryNeg,
	ast.OpBitNot:   UnaryBitNot,
	ast.OpLogicNot: UnaryLogicNot,
	ast.OpInc:      UnaryPreInc,
	ast.OpDec:      UnaryPreDec,
	ast.OpBitAnd:   UnaryRedAnd,
	ast.OpBitNand:  UnaryRedNand,
	ast.OpBitOr:    UnaryRedOr,
	ast.OpBitNor:   UnaryRedNor,
	ast.OpBitXor:   UnaryRedXor,
	ast.OpBitXnor:  UnaryRedXnor,
	ast.OpBitNxor:  UnaryRedXnor,
}

func (cx *Context) unaryOp(e *ast.Expr) (UnaryOp, error) {
	if e.Postfix {
		switch e.Op {
		case ast.OpInc:
			return UnaryPostInc, nil
		case ast.OpDec:
			return UnaryPostDec, nil
		}
		return 0, fail(cx.errorf(diag.LowInvalidUnaryOp, e.Span, "`%s` is not a valid postfix operator", e.Op))
	}
	if op, ok := prefixOps[e.Op]; ok {
		return op, nil
	}
	return 0, fail(cx.errorf(diag.LowInvalidUnaryOp, e.Span, "`%s` is not a valid prefix operator", e.Op))
}

func (cx *Context) lowerIndex(id NodeID, e *ast.Expr) IndexData {
	data := IndexData{Operand: cx.Alloc(ExprNode(e.Operand), id)}
	if ix := e.Index; ix != nil && ix.Kind == ast.ExprRange {
		data.Range = true
		data.Mode = ix.RangeMode
		data.Lhs = cx.Alloc(ExprNode(ix.Lhs), id)
		data.Rhs = cx.Alloc(ExprNode(ix.Rhs), id)
		return data
	}
	data.Lhs = cx.allocExpr(e.Index, id)
	return data
}

var builtinFuncs = map[string]BuiltinFunc{
	"clog2":    BuiltinClog2,
	"bits":     BuiltinBits,
	"signed":   BuiltinSigned,
	"unsigned": BuiltinUnsigned,
}

// lowerCall lowers a system function call. Only a few single-argument
// built-ins are understood; other system calls become BuiltinUnsupported.
func (cx *Context) lowerCall(id NodeID, e *ast.Expr) (BuiltinCallData, error) {
	callee := e.Operand
	if callee == nil || callee.Kind != ast.ExprSysIdent || callee.Ident == nil {
		what := "call"
		if callee != nil {
			what = "call to " + callee.DescFull()
		}
		return BuiltinCallData{}, cx.unimp(e.Span, what)
	}
	name := callee.Ident.Name
	fn, ok := builtinFuncs[name]
	if !ok {
		cx.warnf(diag.LowUnsupportedBuiltin, e.Span, "`$%s` not supported; ignored", name).Emit()
		return BuiltinCallData{Func: BuiltinUnsupported}, nil
	}
	if len(e.Args) != 1 || e.Args[0].Expr == nil {
		return BuiltinCallData{}, fail(cx.errorf(diag.LowBuiltinArity, e.Span, "`$%s` takes one argument", name))
	}
	return BuiltinCallData{Func: fn, Arg: cx.Alloc(ExprNode(e.Args[0].Expr), id)}, nil
}
