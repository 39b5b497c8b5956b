package hir

import (
	"fmt"

	"svlower/internal/ast"
	"svlower/internal/diag"
	"svlower/internal/source"
)

// dispatch lowers one node. Unknown kinds are fatal; the few constructs
// accepted with a warning are handled by their own routines.
func (cx *Context) dispatch(id NodeID, n AstNode) (Node, error) {
	switch n.Kind {
	case AstModule:
		return cx.lowerModule(id, n.Node.(*ast.ModuleDecl))
	case AstPackage:
		return cx.lowerPackage(id, n.Node.(*ast.PackageDecl))
	case AstPort:
		return cx.lowerPort(id, n.Node.(*ast.Port), n.Ref)
	case AstType:
		return cx.lowerType(id, n.Node.(*ast.Type))
	case AstTypeOrExpr:
		te := n.Node.(*ast.TypeOrExpr)
		switch {
		case te.Type != nil:
			return cx.lowerType(id, te.Type)
		case te.Expr != nil:
			return cx.lowerExpr(id, te.Expr)
		}
		return nil, cx.unimp(source.Span{}, "empty type or expression")
	case AstExpr:
		return cx.lowerExpr(id, n.Node.(*ast.Expr))
	case AstInstTarget:
		return cx.lowerInstTarget(id, n.Node.(*ast.Inst))
	case AstInst:
		return cx.lowerInst(id, n.Node.(*ast.InstName), n.Ref)
	case AstTypeParam:
		return cx.lowerTypeParam(id, n.Node.(*ast.ParamTypeDecl), n.Decl.(*ast.ParamDecl))
	case AstValueParam:
		return cx.lowerValueParam(id, n.Node.(*ast.ParamValueDecl), n.Decl.(*ast.ParamDecl))
	case AstVarDecl:
		decl := n.Decl.(*ast.VarDecl)
		name := n.Node.(*ast.VarDeclName)
		return cx.lowerVarDecl(id, name, decl.Span, VarVariable, n.Ref, id, func(v *VarDecl) {
			v.Const = decl.Const
		})
	case AstNetDecl:
		decl := n.Decl.(*ast.NetDecl)
		name := n.Node.(*ast.VarDeclName)
		return cx.lowerVarDecl(id, name, decl.Span, VarNet, n.Ref, id, func(v *VarDecl) {
			v.NetType = decl.NetType
		})
	case AstStructMember:
		member := n.Decl.(*ast.StructMember)
		name := n.Node.(*ast.VarDeclName)
		// member initializers are scoped to the struct type
		return cx.lowerVarDecl(id, name, member.Span, VarStructMember, n.Ref, n.Ref, nil)
	case AstProc:
		p := n.Node.(*ast.Procedure)
		return &Proc{
			ID:   id,
			Span: p.Span,
			Kind: p.Kind,
			Stmt: cx.Alloc(StmtNode(p.Stmt), id),
		}, nil
	case AstStmt:
		return cx.lowerStmt(id, n.Node.(*ast.Stmt))
	case AstEventExpr:
		return cx.lowerEventExpr(id, n.Node.(*ast.EventExpr))
	case AstGenIf:
		return cx.lowerGenIf(id, n.Node.(*ast.GenerateIf))
	case AstGenFor:
		return cx.lowerGenFor(id, n.Node.(*ast.GenerateFor))
	case AstGenvarDecl:
		g := n.Node.(*ast.GenvarDecl)
		return &GenvarDecl{
			ID:   id,
			Span: g.Span,
			Name: g.Name,
			Init: cx.allocExpr(g.Init, id),
		}, nil
	case AstTypedef:
		return cx.lowerTypedef(id, n.Node.(*ast.Typedef))
	case AstContAssign:
		pair := n.Node.(*ast.AssignPair)
		return &Assign{
			ID:   id,
			Span: pair.Lhs.Span.Cover(pair.Rhs.Span),
			Lhs:  cx.Alloc(ExprNode(pair.Lhs), id),
			Rhs:  cx.Alloc(ExprNode(pair.Rhs), id),
		}, nil
	case AstEnumVariant:
		name := n.Node.(*ast.EnumName)
		return &EnumVariant{
			ID:    id,
			Span:  name.Name.Span,
			Name:  name.Name,
			Enum:  n.Ref,
			Index: n.Index,
			Value: cx.allocExpr(name.Value, n.Ref),
		}, nil
	case AstImport:
		return cx.lowerImport(id, n.Node.(*ast.ImportItem))
	}
	return nil, cx.unimp(spanOf(n), n.Kind.String())
}

// allocExpr allocates e under parent, NoNodeID for a nil expression.
func (cx *Context) allocExpr(e *ast.Expr, parent NodeID) NodeID {
	if e == nil {
		return NoNodeID
	}
	return cx.Alloc(ExprNode(e), parent)
}

func (cx *Context) allocStmt(s *ast.Stmt, parent NodeID) NodeID {
	if s == nil {
		return NoNodeID
	}
	return cx.Alloc(StmtNode(s), parent)
}

// spanOf is a best-effort span for diagnostics about n.
func spanOf(n AstNode) source.Span {
	switch v := n.Node.(type) {
	case interface{ Span() source.Span }:
		return v.Span()
	case *ast.ModuleDecl:
		return v.Span
	case *ast.Port:
		return v.Span
	case *ast.Type:
		return v.Span
	case *ast.Expr:
		return v.Span
	case *ast.Stmt:
		return v.Span
	case *ast.EventExpr:
		return v.Span
	}
	return source.Span{}
}

// ---- module ----

func (cx *Context) lowerModule(id NodeID, m *ast.ModuleDecl) (Node, error) {
	next := id
	var params []NodeID
	for _, p := range m.Params {
		next = cx.allocParamDecl(p, next, &params)
	}

	nonAnsi, ports, err := cx.reconcilePorts(m)
	if err != nil {
		return nil, err
	}

	listRib := next
	portIDs := make([]NodeID, 0, len(ports))
	for _, p := range ports {
		pid := cx.Alloc(PortNode(p, listRib), next)
		next = pid
		portIDs = append(portIDs, pid)
	}

	return &Module{
		ID:      id,
		Span:    m.Span,
		Name:    m.Name,
		Ports:   portIDs,
		Params:  params,
		Block:   cx.lowerModuleBlock(next, m.Items),
		NonAnsi: nonAnsi,
	}, nil
}

// lowerModuleBlock allocates the items of a module body or generate block,
// threading one rib across all of them. Unsupported items are skipped with
// a warning.
func (cx *Context) lowerModuleBlock(rib NodeID, items []*ast.Item) ModuleBlock {
	var b ModuleBlock
	next := rib
	for _, it := range items {
		switch it.Kind {
		case ast.ItemInst:
			target := cx.Alloc(InstTargetNode(it.Inst), next)
			next = target
			for _, name := range it.Inst.Names {
				iid := cx.Alloc(InstNode(name, target), next)
				next = iid
				b.Insts = append(b.Insts, iid)
			}
		case ast.ItemVarDecl:
			next = cx.allocVarDecl(it.VarDecl, next, &b.Decls)
		case ast.ItemNetDecl:
			next = cx.allocNetDecl(it.NetDecl, next, &b.Decls)
		case ast.ItemProc:
			next = cx.Alloc(ProcNode(it.Proc), next)
			b.Procs = append(b.Procs, next)
		case ast.ItemGenIf:
			next = cx.Alloc(GenIfNode(it.GenIf), next)
			b.Gens = append(b.Gens, next)
		case ast.ItemGenFor:
			next = cx.Alloc(GenForNode(it.GenFor), next)
			b.Gens = append(b.Gens, next)
		case ast.ItemParam:
			next = cx.allocParamDecl(it.Param, next, &b.Params)
		case ast.ItemTypedef:
			next = cx.Alloc(TypedefNode(it.Typedef), next)
		case ast.ItemContAssign:
			for _, pair := range it.ContAssign.Assignments {
				next = cx.Alloc(ContAssignNode(pair, it.ContAssign), next)
				b.Assigns = append(b.Assigns, next)
			}
		case ast.ItemImport:
			for _, imp := range it.Import.Items {
				next = cx.Alloc(ImportNode(imp), next)
			}
		case ast.ItemPortDecl, ast.ItemDummy:
			// port declarations are consumed by port reconciliation
		default:
			cx.warnf(diag.LowUnsupportedItem, it.Span, "skipping unsupported %s", it.DescFull()).Emit()
			cx.span.Point("skip", it.Kind.String())
		}
	}
	return b
}

// ---- package ----

func (cx *Context) lowerPackage(id NodeID, p *ast.PackageDecl) (Node, error) {
	next := id
	pkg := &Package{ID: id, Span: p.Span, Name: p.Name}
	for _, it := range p.Items {
		switch it.Kind {
		case ast.ItemVarDecl:
			next = cx.allocVarDecl(it.VarDecl, next, &pkg.Decls)
		case ast.ItemParam:
			next = cx.allocParamDecl(it.Param, next, &pkg.Params)
		case ast.ItemTypedef:
			next = cx.Alloc(TypedefNode(it.Typedef), next)
			pkg.Names = append(pkg.Names, PackageName{Name: it.Typedef.Name, ID: next})
		case ast.ItemSubroutine:
			cx.warnf(diag.LowUnsupportedSubroutine, it.Span, "ignoring unsupported subroutine `%s`", it.Subroutine.Name.Name).Emit()
		default:
			return nil, fail(cx.errorf(diag.LowPackageItem, it.Span, "%s cannot appear in a package", it.DescFull()))
		}
	}
	pkg.LastRib = next
	return pkg, nil
}

// ---- allocation helpers ----

func (cx *Context) allocParamDecl(p *ast.ParamDecl, next NodeID, into *[]NodeID) NodeID {
	switch p.Kind {
	case ast.ParamType:
		for _, d := range p.TypeDecls {
			next = cx.Alloc(TypeParamNode(d, p), next)
			*into = append(*into, next)
		}
	case ast.ParamValue:
		for _, d := range p.ValueDecls {
			next = cx.Alloc(ValueParamNode(d, p), next)
			*into = append(*into, next)
		}
	}
	return next
}

// allocVarDecl allocates the declared type, then each name chained after it.
func (cx *Context) allocVarDecl(d *ast.VarDecl, next NodeID, into *[]NodeID) NodeID {
	ty := cx.Alloc(TypeNode(d.Type), next)
	next = ty
	for _, name := range d.Names {
		next = cx.Alloc(VarDeclNode(name, d, ty), next)
		*into = append(*into, next)
	}
	return next
}

func (cx *Context) allocNetDecl(d *ast.NetDecl, next NodeID, into *[]NodeID) NodeID {
	ty := cx.Alloc(TypeNode(d.Type), next)
	next = ty
	for _, name := range d.Names {
		next = cx.Alloc(NetDeclNode(name, d, ty), next)
		*into = append(*into, next)
	}
	return next
}

func (cx *Context) allocStructMember(m *ast.StructMember, next NodeID, into *[]NodeID) NodeID {
	ty := cx.Alloc(TypeNode(m.Type), next)
	next = ty
	for _, name := range m.Names {
		next = cx.Alloc(StructMemberNode(name, m, ty), next)
		*into = append(*into, next)
	}
	return next
}

// allocGenvarInit allocates the genvar declarations of a generate-for
// initializer as a chain under parent.
func (cx *Context) allocGenvarInit(init *ast.Stmt, parent NodeID) ([]NodeID, error) {
	if init == nil || init.Kind != ast.StmtGenvarDecl || len(init.Genvars) == 0 {
		var sp source.Span
		desc := "missing statement"
		if init != nil {
			sp, desc = init.Span, init.DescFull()
		}
		return nil, fail(cx.errorf(diag.LowInvalidGenvarInit, sp, "%s is not a valid genvar initialization", desc))
	}
	ids := make([]NodeID, 0, len(init.Genvars))
	for _, g := range init.Genvars {
		parent = cx.Alloc(GenvarNode(g), parent)
		ids = append(ids, parent)
	}
	return ids, nil
}

func (cx *Context) lowerImport(id NodeID, imp *ast.ImportItem) (Node, error) {
	name := "*"
	if imp.Name != nil {
		name = imp.Name.Name
	}
	reason := fmt.Sprintf("ignoring unsupported import `%s::%s`", imp.Pkg.Name, name)
	cx.warnf(diag.LowUnsupportedImport, imp.Span, "%s", reason).Emit()
	return &Inert{ID: id, Span: imp.Span, Reason: reason}, nil
}
