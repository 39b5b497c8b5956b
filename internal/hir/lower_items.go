package hir

import (
	"strconv"

	"svlower/internal/ast"
	"svlower/internal/diag"
	"svlower/internal/source"
)

func (cx *Context) lowerVarDecl(id NodeID, name *ast.VarDeclName, declSpan source.Span, kind VarKind, ty, initRib NodeID, fill func(*VarDecl)) (Node, error) {
	dims, err := cx.lowerUnpackedDims(name.Dims, id)
	if err != nil {
		return nil, err
	}
	v := &VarDecl{
		ID:   id,
		Span: declSpan.Cover(name.Span),
		Name: name.Name,
		Kind: kind,
		Type: ty,
		Dims: dims,
		Init: cx.allocExpr(name.Init, initRib),
	}
	if fill != nil {
		fill(v)
	}
	return v, nil
}

// lowerTypedef lowers the aliased type under the typedef's own rib so the
// type cannot see the name it defines.
func (cx *Context) lowerTypedef(id NodeID, def *ast.Typedef) (Node, error) {
	if len(def.Dims) != 0 {
		return nil, cx.unimp(def.Dims[0].Span, "unpacked typedef dimensions")
	}
	return &Typedef{
		ID:   id,
		Span: def.Span,
		Name: def.Name,
		Type: cx.Alloc(TypeNode(def.Type), cx.Parent(id)),
	}, nil
}

func (cx *Context) lowerTypeParam(id NodeID, d *ast.ParamTypeDecl, p *ast.ParamDecl) (Node, error) {
	tp := &TypeParam{
		ID:    id,
		Span:  p.Span.Cover(d.Span),
		Name:  d.Name,
		Local: p.Local,
	}
	if d.Type != nil {
		tp.Default = cx.Alloc(TypeNode(d.Type), id)
	}
	return tp, nil
}

func (cx *Context) lowerValueParam(id NodeID, d *ast.ParamValueDecl, p *ast.ParamDecl) (Node, error) {
	if len(d.Dims) != 0 {
		return nil, cx.unimp(d.Dims[0].Span, "unpacked parameter dimensions")
	}
	return &ValueParam{
		ID:      id,
		Span:    p.Span.Cover(d.Span),
		Name:    d.Name,
		Local:   p.Local,
		Type:    cx.Alloc(TypeNode(d.Type), id),
		Default: cx.allocExpr(d.Expr, id),
	}, nil
}

// lowerInstTarget lowers the module name and parameter overrides of an
// instantiation. Positional parameters after named ones are accepted with
// a warning.
func (cx *Context) lowerInstTarget(id NodeID, inst *ast.Inst) (Node, error) {
	t := &InstTarget{ID: id, Span: inst.Span, Name: inst.Target}
	positional := true
	for _, p := range inst.Params {
		value := cx.Alloc(TypeOrExprNode(p.Expr), id)
		if p.Name != nil {
			positional = false
			t.NamedParams = append(t.NamedParams, NamedParam{Span: p.Span, Name: *p.Name, Value: value})
			continue
		}
		if !positional {
			cx.warnf(diag.LowPositionalAfterNamed, p.Span, "positional parameters must appear before named").
				WithNote(p.Span, fmtArgument(len(t.PosParams)+1)).
				Emit()
		}
		t.PosParams = append(t.PosParams, PosParam{Span: p.Span, Value: value})
	}
	return t, nil
}

// lowerInst lowers one instance name with its port connections. Implicit
// `.a` connections are kept by name and resolved downstream.
func (cx *Context) lowerInst(id NodeID, name *ast.InstName, target NodeID) (Node, error) {
	if len(name.Dims) != 0 {
		return nil, cx.unimp(name.Dims[0].Span, "instance arrays")
	}
	inst := &Inst{ID: id, Span: name.Span, Name: name.Name, Target: target}
	positional := true
	for _, c := range name.Conns {
		switch c.Kind {
		case ast.ConnAuto:
			inst.Wildcard = true
		case ast.ConnNamed:
			positional = false
			np := NamedPort{Span: c.Span, Name: c.Name, Mode: c.Mode}
			if c.Mode == ast.ModeConnected {
				np.Value = cx.allocExpr(c.Expr, id)
			}
			inst.NamedPorts = append(inst.NamedPorts, np)
		case ast.ConnPositional:
			if !positional {
				cx.warnf(diag.LowPositionalAfterNamed, c.Span, "positional port must appear before named").
					WithNote(c.Span, fmtArgument(len(inst.PosPorts)+1)).
					Emit()
			}
			inst.PosPorts = append(inst.PosPorts, PosPort{Span: c.Span, Value: cx.allocExpr(c.Expr, id)})
		}
	}
	return inst, nil
}

func fmtArgument(n int) string {
	return "assuming this refers to argument #" + strconv.Itoa(n)
}

func (cx *Context) lowerGenIf(id NodeID, g *ast.GenerateIf) (Node, error) {
	gen := &Gen{
		ID:   id,
		Span: g.Span,
		Kind: GenIf,
		Cond: cx.Alloc(ExprNode(g.Cond), id),
	}
	if g.Main != nil {
		gen.Main = cx.lowerModuleBlock(id, g.Main.Items)
	}
	if g.Else != nil {
		eb := cx.lowerModuleBlock(id, g.Else.Items)
		gen.Else = &eb
	}
	return gen, nil
}

// lowerGenFor chains the genvar initializer under the gen node; condition,
// step and body all hang off the last genvar.
func (cx *Context) lowerGenFor(id NodeID, g *ast.GenerateFor) (Node, error) {
	init, err := cx.allocGenvarInit(g.Init, id)
	if err != nil {
		return nil, err
	}
	rib := init[len(init)-1]
	gen := &Gen{
		ID:   id,
		Span: g.Span,
		Kind: GenFor,
		Init: init,
		Cond: cx.Alloc(ExprNode(g.Cond), rib),
		Step: cx.Alloc(ExprNode(g.Step), rib),
	}
	if g.Block != nil {
		gen.Main = cx.lowerModuleBlock(rib, g.Block.Items)
	}
	return gen, nil
}
