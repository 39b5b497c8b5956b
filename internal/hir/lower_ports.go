package hir

import (
	"svlower/internal/ast"
	"svlower/internal/diag"
	"svlower/internal/source"
	"svlower/internal/trace"
)

// partialPort gathers the fragments of one non-ANSI port: the body port
// declaration and at most one variable and one net declaration.
type partialPort struct {
	name     ast.Ident
	span     source.Span // whole `a [1:0] = x` fragment of the port declaration
	dir      ast.PortDir
	kind     ast.PortKind
	ty       *ast.Type
	sign     ast.TypeSign
	packed   []*ast.TypeDim
	unpacked []*ast.TypeDim
	def      *ast.Expr

	varDecl *fragment
	netDecl *fragment
	// merged is the type after merging; nil leaves ty as written.
	merged *ast.Type
}

type fragment struct {
	ty      *ast.Type
	name    *ast.VarDeclName
	netType ast.NetType
}

// isNonAnsi decides the port style from the first entry only.
func isNonAnsi(ports []*ast.Port) bool {
	if len(ports) == 0 {
		return false
	}
	first := ports[0]
	switch first.Form {
	case ast.PortExplicit:
		return first.Dir == ast.PortDirNone
	case ast.PortImplicit:
		return true
	case ast.PortNamed:
		return first.Dir == ast.PortDirNone &&
			!first.Kind.IsSet() &&
			len(first.Dims) == 0 &&
			first.Expr == nil &&
			first.Type.IsBare()
	}
	return false
}

// reconcilePorts returns the header ports as they should be lowered. For
// the non-ANSI style these are synthesized from the merged body
// declarations; for ANSI they carry the inherited direction, kind and type.
func (cx *Context) reconcilePorts(m *ast.ModuleDecl) (bool, []*ast.Port, error) {
	if len(m.Ports) == 0 {
		return false, nil, nil
	}
	span := trace.Begin(cx.tracer, trace.ScopeNode, "ports", cx.opts.TraceParent)
	defer span.End("")

	if !isNonAnsi(m.Ports) {
		span.WithExtra("style", "ansi")
		return false, inheritAnsi(m.Ports), nil
	}
	span.WithExtra("style", "non-ansi")
	order, decls := cx.collectPortDecls(m.Items)
	cx.collectPortFragments(m.Items, decls)
	for _, name := range order {
		cx.mergePort(decls[name])
	}
	if !cx.opts.PairNonAnsiPorts {
		return true, m.Ports, nil
	}
	ports, err := cx.pairPorts(m.Ports, order, decls)
	return true, ports, err
}

// inheritAnsi fills in omitted directions: the first port defaults to
// inout, later ones take the previous direction, and kind and type too
// when nothing but the name was written.
func inheritAnsi(ports []*ast.Port) []*ast.Port {
	out := make([]*ast.Port, len(ports))
	var prev *ast.Port
	for i, p := range ports {
		out[i] = p
		if p.Form != ast.PortNamed {
			prev = nil
			continue
		}
		if p.Dir == ast.PortDirNone {
			np := *p
			if prev == nil {
				np.Dir = ast.PortInout
			} else {
				np.Dir = prev.Dir
				if !p.Kind.IsSet() && p.Type.IsBare() {
					np.Kind = prev.Kind
					np.Type = prev.Type
				}
			}
			out[i] = &np
		}
		prev = out[i]
	}
	return out
}

// collectPortDecls reads the body port declarations. Later duplicates are
// reported and dropped.
func (cx *Context) collectPortDecls(items []*ast.Item) ([]string, map[string]*partialPort) {
	var order []string
	decls := make(map[string]*partialPort)
	for _, it := range items {
		if it.Kind != ast.ItemPortDecl || it.PortDecl == nil {
			continue
		}
		pd := it.PortDecl
		for _, name := range pd.Names {
			p := &partialPort{
				name:     name.Name,
				span:     name.Span,
				dir:      pd.Dir,
				kind:     pd.Kind,
				ty:       pd.Type,
				unpacked: name.Dims,
				def:      name.Init,
			}
			if pd.Type != nil {
				p.sign = pd.Type.Sign
				p.packed = pd.Type.Dims
			}
			if prev, ok := decls[name.Name.Name]; ok {
				cx.errorf(diag.LowPortDuplicate, name.Name.Span, "port `%s` declared multiple times", name.Name.Name).
					WithNote(prev.name.Span, "previous declaration was here:").
					Emit()
				continue
			}
			decls[name.Name.Name] = p
			order = append(order, name.Name.Name)
		}
	}
	return order, decls
}

// collectPortFragments attaches the variable and net declarations that
// further specify a declared port.
func (cx *Context) collectPortFragments(items []*ast.Item, decls map[string]*partialPort) {
	for _, it := range items {
		switch {
		case it.Kind == ast.ItemVarDecl && it.VarDecl != nil:
			for _, name := range it.VarDecl.Names {
				p, ok := decls[name.Name.Name]
				if !ok {
					continue
				}
				if p.varDecl != nil {
					cx.errorf(diag.LowPortVarDuplicate, name.Name.Span, "port variable `%s` declared multiple times", name.Name.Name).
						WithNote(p.varDecl.name.Name.Span, "previous declaration was here:").
						Emit()
					continue
				}
				p.varDecl = &fragment{ty: it.VarDecl.Type, name: name}
			}
		case it.Kind == ast.ItemNetDecl && it.NetDecl != nil:
			for _, name := range it.NetDecl.Names {
				p, ok := decls[name.Name.Name]
				if !ok {
					continue
				}
				if p.netDecl != nil {
					cx.errorf(diag.LowPortNetDuplicate, name.Name.Span, "port net `%s` declared multiple times", name.Name.Name).
						WithNote(p.netDecl.name.Name.Span, "previous declaration was here:").
						Emit()
					continue
				}
				p.netDecl = &fragment{ty: it.NetDecl.Type, name: name, netType: it.NetDecl.NetType}
			}
		}
	}
}

// mergePort folds the variable or net fragment into the port declaration.
func (cx *Context) mergePort(p *partialPort) {
	name := p.name.Name
	if p.kind.IsSet() || !p.ty.IsImplicit() {
		for _, f := range []*fragment{p.varDecl, p.netDecl} {
			if f == nil {
				continue
			}
			cx.errorf(diag.LowPortComplete, f.name.Span, "port `%s` is complete; additional declaration forbidden", name).
				WithNote(f.name.Span, "Port already has a net/variable type. Cannot declare an additional net/variable with the same name.").
				WithNote(p.span, "Port declaration was here:").
				Emit()
		}
		p.varDecl, p.netDecl = nil, nil
	}

	var f *fragment
	switch {
	case p.varDecl != nil && p.netDecl != nil:
		cx.errorf(diag.LowPortDoublyDeclared, p.varDecl.name.Span, "port `%s` doubly declared as variable and net", name).
			WithSpan(p.netDecl.name.Span).
			WithNote(p.span, "Port declaration was here:").
			Emit()
		return
	case p.varDecl != nil:
		f = p.varDecl
		if p.kind.IsSet() && p.kind.Tag != ast.PortKindVar {
			cx.errorf(diag.LowPortKindConflict, f.name.Span, "net port `%s` redeclared as variable", name).
				WithNote(p.span, "Port declaration was here:").
				Emit()
		}
		p.kind = ast.PortKind{Tag: ast.PortKindVar}
	case p.netDecl != nil:
		f = p.netDecl
		if p.kind.Tag == ast.PortKindVar {
			cx.errorf(diag.LowPortKindConflict, f.name.Span, "variable port `%s` redeclared as net", name).
				WithNote(p.span, "Port declaration was here:").
				Emit()
		}
		p.kind = ast.PortKind{Tag: ast.PortKindNet, Net: f.netType}
	default:
		return
	}

	var addSign ast.TypeSign
	var addPacked []*ast.TypeDim
	if f.ty != nil {
		addSign = f.ty.Sign
		addPacked = f.ty.Dims
	}
	sign, ok := mergeSign(p.sign, addSign)
	if !ok {
		cx.errorf(diag.LowPortSignConflict, p.span, "port `%s` has contradicting signs", name).
			WithSpan(f.name.Name.Span).
			Emit()
	}
	p.sign = sign

	merged := &ast.Type{Kind: ast.TypeImplicit, Span: p.name.Span}
	switch {
	case !p.ty.IsImplicit():
		*merged = *p.ty
	case f.ty != nil:
		*merged = *f.ty
	}
	merged.Sign = p.sign
	merged.Dims = p.packed
	if len(merged.Dims) == 0 {
		merged.Dims = addPacked
	}
	p.merged = merged
	if len(p.unpacked) == 0 {
		p.unpacked = f.name.Dims
	}
}

// mergeSign combines the sign of a port declaration with the sign of its
// variable or net declaration. On conflict the port's own sign wins and ok
// is false.
func mergeSign(port, add ast.TypeSign) (sign ast.TypeSign, ok bool) {
	switch {
	case port == add:
		return port, true
	case add == ast.SignNone:
		return port, true
	case port == ast.SignNone:
		return add, true
	}
	return port, false
}

// pairPorts matches header ports with reconciled body declarations by name.
// Ports lacking a declaration are reported and left out.
func (cx *Context) pairPorts(header []*ast.Port, order []string, decls map[string]*partialPort) ([]*ast.Port, error) {
	used := make(map[string]bool, len(header))
	out := make([]*ast.Port, 0, len(header))
	for _, hp := range header {
		external, internal, err := cx.headerPortNames(hp)
		if err != nil {
			return nil, err
		}
		used[internal.Name] = true
		p, ok := decls[internal.Name]
		if !ok {
			cx.errorf(diag.LowPortUndeclared, hp.Span, "port `%s` has no declaration in the module body", internal.Name).Emit()
			continue
		}
		ty := p.merged
		if ty == nil {
			ty = p.ty
		}
		out = append(out, &ast.Port{
			Form: ast.PortNamed,
			Span: hp.Span,
			Dir:  p.dir,
			Kind: p.kind,
			Type: ty,
			Name: external,
			Dims: p.unpacked,
			Expr: p.def,
		})
	}
	for _, name := range order {
		if !used[name] {
			p := decls[name]
			cx.errorf(diag.LowPortNotInList, p.name.Span, "`%s` is not in the port list", name).Emit()
		}
	}
	return out, nil
}

// headerPortNames returns the external name of a header port and the name
// of the body declaration it refers to.
func (cx *Context) headerPortNames(hp *ast.Port) (external, internal ast.Ident, err error) {
	switch hp.Form {
	case ast.PortNamed:
		return hp.Name, hp.Name, nil
	case ast.PortImplicit:
		if hp.Expr != nil && hp.Expr.Kind == ast.ExprIdent && hp.Expr.Ident != nil {
			return *hp.Expr.Ident, *hp.Expr.Ident, nil
		}
	case ast.PortExplicit:
		if hp.Expr != nil && hp.Expr.Kind == ast.ExprIdent && hp.Expr.Ident != nil {
			return hp.Name, *hp.Expr.Ident, nil
		}
	}
	return ast.Ident{}, ast.Ident{}, cx.unimp(hp.Span, "port expressions other than a plain name")
}

// lowerPort lowers the external view of a port. The type, unpacked dims
// and default are scoped to listRib, the rib in force before the port list:
// they see the module parameters, never other ports.
func (cx *Context) lowerPort(id NodeID, p *ast.Port, listRib NodeID) (Node, error) {
	if p.Dir == ast.PortDirNone {
		return nil, fail(cx.errorf(diag.LowPortMissingDirection, p.Span, "port missing direction"))
	}
	if p.Form != ast.PortNamed {
		return nil, cx.unimp(p.Span, p.Form.String()+" port")
	}
	parent := listRib
	ty := p.Type
	if ty == nil {
		ty = &ast.Type{Kind: ast.TypeImplicit, Span: p.Name.Span}
	}
	dims, err := cx.lowerUnpackedDims(p.Dims, parent)
	if err != nil {
		return nil, err
	}
	return &Port{
		ID:      id,
		Span:    p.Span,
		Name:    p.Name,
		Dir:     p.Dir,
		Kind:    p.Kind,
		Type:    cx.Alloc(TypeNode(ty), parent),
		Dims:    dims,
		Default: cx.allocExpr(p.Expr, parent),
	}, nil
}
