package hir

import (
	"svlower/internal/ast"
	"svlower/internal/diag"
)

func (cx *Context) lowerType(id NodeID, t *ast.Type) (Node, error) {
	ty := &Type{ID: id, Span: t.Span, Sign: t.Sign}
	switch t.Kind {
	case ast.TypeImplicit:
		ty.Kind = TypeImplicit
	case ast.TypeVoid, ast.TypeBit, ast.TypeLogic, ast.TypeByte, ast.TypeShortInt,
		ast.TypeInt, ast.TypeInteger, ast.TypeLongInt, ast.TypeString, ast.TypeTime:
		ty.Kind = TypeBuiltin
		ty.Data = BuiltinData{Builtin: t.Kind}
	case ast.TypeReg:
		// reg is logic
		ty.Kind = TypeBuiltin
		ty.Data = BuiltinData{Builtin: ast.TypeLogic}
	case ast.TypeNamed:
		if t.Name == nil {
			return nil, cx.unimp(t.Span, "unnamed named type")
		}
		ty.Kind = TypeNamed
		ty.Data = NamedTypeData{Name: *t.Name}
	case ast.TypeStruct:
		var members []NodeID
		next := id
		for _, m := range t.Members {
			next = cx.allocStructMember(m, next, &members)
		}
		ty.Kind = TypeStruct
		ty.Data = StructData{Packed: t.Packed, Members: members}
	case ast.TypeScoped:
		if t.Member || t.Inner == nil || t.Name == nil {
			return nil, cx.unimp(t.Span, "interface member types")
		}
		ty.Kind = TypeScope
		ty.Data = ScopeTypeData{
			Inner: cx.Alloc(TypeNode(t.Inner), id),
			Name:  *t.Name,
		}
	case ast.TypeEnum:
		data := EnumData{}
		next := id
		if t.Inner != nil {
			next = cx.Alloc(TypeNode(t.Inner), next)
			data.Repr = next
		}
		for i, v := range t.Variants {
			next = cx.Alloc(EnumVariantNode(v, id, i), next)
			data.Variants = append(data.Variants, next)
		}
		ty.Kind = TypeEnum
		ty.Data = data
	default:
		return nil, cx.unimp(t.Span, "type `"+t.Kind.String()+"`")
	}

	for _, d := range t.Dims {
		if d.Kind != ast.DimRange || d.Lhs == nil || d.Rhs == nil {
			return nil, fail(cx.errorf(diag.LowInvalidPackedDim, t.Span, "%s is not a valid packed dimension", d.DescFull()).
				WithNote(d.Span, "packed array dimensions can only be given as range, e.g. `[31:0]`"))
		}
		ty.Dims = append(ty.Dims, Dim{
			Span: d.Span,
			Lhs:  cx.Alloc(ExprNode(d.Lhs), id),
			Rhs:  cx.Alloc(ExprNode(d.Rhs), id),
		})
	}
	return ty, nil
}

// lowerUnpackedDims lowers `[a:b]` and `[N]` dimensions of a declared name.
func (cx *Context) lowerUnpackedDims(dims []*ast.TypeDim, rib NodeID) ([]Dim, error) {
	if len(dims) == 0 {
		return nil, nil
	}
	out := make([]Dim, 0, len(dims))
	for _, d := range dims {
		switch d.Kind {
		case ast.DimRange:
			out = append(out, Dim{Span: d.Span, Lhs: cx.allocExpr(d.Lhs, rib), Rhs: cx.allocExpr(d.Rhs, rib)})
		case ast.DimExpr:
			out = append(out, Dim{Span: d.Span, Lhs: cx.allocExpr(d.Lhs, rib)})
		default:
			return nil, cx.unimp(d.Span, d.DescFull())
		}
	}
	return out, nil
}
