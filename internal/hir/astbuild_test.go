package hir_test

import (
	"errors"
	"strings"
	"testing"

	"svlower/internal/ast"
	"svlower/internal/diag"
	"svlower/internal/hir"
	"svlower/internal/source"
)

// Syntax tree builders. Spans are handed out sequentially so every node
// is distinct and diagnostics stay ordered by construction.

type builder struct {
	pos uint32
}

func (b *builder) span() source.Span {
	b.pos += 2
	return source.Span{Start: b.pos - 2, End: b.pos - 1}
}

func (b *builder) ident(name string) ast.Ident {
	return ast.Ident{Name: name, Span: b.span()}
}

func (b *builder) id(name string) *ast.Expr {
	n := b.ident(name)
	return &ast.Expr{Kind: ast.ExprIdent, Span: n.Span, Ident: &n}
}

func (b *builder) num(v string) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprLiteral, Span: b.span(), Lit: &ast.Literal{Kind: ast.LitNumber, Value: v}}
}

func (b *builder) based(size, base, value string) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprLiteral, Span: b.span(), Lit: &ast.Literal{
		Kind: ast.LitBasedInteger, Size: size, Base: base, Value: value,
	}}
}

func (b *builder) binary(op ast.Op, lhs, rhs *ast.Expr) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprBinary, Span: lhs.Span.Cover(rhs.Span), Op: op, Lhs: lhs, Rhs: rhs}
}

func (b *builder) call(name string, args ...*ast.Expr) *ast.Expr {
	n := b.ident(name)
	callee := &ast.Expr{Kind: ast.ExprSysIdent, Span: n.Span, Ident: &n}
	e := &ast.Expr{Kind: ast.ExprCall, Span: b.span(), Operand: callee}
	for _, a := range args {
		e.Args = append(e.Args, &ast.CallArg{Span: a.Span, Expr: a})
	}
	return e
}

func (b *builder) rng(hi, lo string) *ast.TypeDim {
	return &ast.TypeDim{Kind: ast.DimRange, Span: b.span(), Lhs: b.num(hi), Rhs: b.num(lo)}
}

func (b *builder) typ(kind ast.TypeKind, dims ...*ast.TypeDim) *ast.Type {
	return &ast.Type{Kind: kind, Span: b.span(), Dims: dims}
}

func (b *builder) implicit(dims ...*ast.TypeDim) *ast.Type {
	return b.typ(ast.TypeImplicit, dims...)
}

func (b *builder) name(n string) *ast.VarDeclName {
	id := b.ident(n)
	return &ast.VarDeclName{Span: id.Span, Name: id}
}

func (b *builder) names(ns ...string) []*ast.VarDeclName {
	out := make([]*ast.VarDeclName, len(ns))
	for i, n := range ns {
		out[i] = b.name(n)
	}
	return out
}

// implicitPort is a non-ANSI header entry `a`.
func (b *builder) implicitPort(n string) *ast.Port {
	e := b.id(n)
	return &ast.Port{Form: ast.PortImplicit, Span: e.Span, Expr: e}
}

func (b *builder) namedPort(dir ast.PortDir, ty *ast.Type, n string) *ast.Port {
	id := b.ident(n)
	return &ast.Port{Form: ast.PortNamed, Span: id.Span, Dir: dir, Type: ty, Name: id}
}

func (b *builder) portDecl(dir ast.PortDir, kind ast.PortKind, ty *ast.Type, ns ...string) *ast.Item {
	return &ast.Item{Kind: ast.ItemPortDecl, Span: b.span(), PortDecl: &ast.PortDecl{
		Span: b.span(), Dir: dir, Kind: kind, Type: ty, Names: b.names(ns...),
	}}
}

func (b *builder) varDecl(ty *ast.Type, ns ...string) *ast.Item {
	return &ast.Item{Kind: ast.ItemVarDecl, Span: b.span(), VarDecl: &ast.VarDecl{
		Span: b.span(), Type: ty, Names: b.names(ns...),
	}}
}

func (b *builder) netDecl(net ast.NetType, ty *ast.Type, ns ...string) *ast.Item {
	return &ast.Item{Kind: ast.ItemNetDecl, Span: b.span(), NetDecl: &ast.NetDecl{
		Span: b.span(), NetType: net, Type: ty, Names: b.names(ns...),
	}}
}

func (b *builder) proc(kind ast.ProcKind, s *ast.Stmt) *ast.Item {
	return &ast.Item{Kind: ast.ItemProc, Span: b.span(), Proc: &ast.Procedure{Span: b.span(), Kind: kind, Stmt: s}}
}

func (b *builder) module(n string, ports []*ast.Port, items ...*ast.Item) *ast.ModuleDecl {
	return &ast.ModuleDecl{Span: b.span(), Name: b.ident(n), Ports: ports, Items: items}
}

func (b *builder) stmt(kind ast.StmtKind) *ast.Stmt {
	return &ast.Stmt{Kind: kind, Span: b.span()}
}

func (b *builder) block(stmts ...*ast.Stmt) *ast.Stmt {
	s := b.stmt(ast.StmtSeqBlock)
	s.Stmts = stmts
	return s
}

func (b *builder) assign(lhs, rhs *ast.Expr) *ast.Stmt {
	s := b.stmt(ast.StmtBlockingAssign)
	s.Lhs, s.Rhs = lhs, rhs
	return s
}

func (b *builder) varDeclStmt(ty *ast.Type, ns ...string) *ast.Stmt {
	s := b.stmt(ast.StmtVarDecl)
	s.Decl = &ast.VarDecl{Span: s.Span, Type: ty, Names: b.names(ns...)}
	return s
}

// ---- lowering helpers ----

func newContext(t *testing.T) (*hir.Context, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(100)
	return hir.NewContext(diag.BagReporter{Bag: bag}, hir.DefaultOptions()), bag
}

func mustLower[T hir.Node](t *testing.T, cx *hir.Context, id hir.NodeID) T {
	t.Helper()
	n, err := cx.Lower(id)
	if err != nil {
		t.Fatalf("Lower(%d): %v", id, err)
	}
	v, ok := n.(T)
	if !ok {
		t.Fatalf("Lower(%d) = %T, want %T", id, n, *new(T))
	}
	return v
}

func mustFail(t *testing.T, cx *hir.Context, id hir.NodeID) {
	t.Helper()
	if _, err := cx.Lower(id); !errors.Is(err, hir.ErrLowering) {
		t.Fatalf("Lower(%d) error = %v, want ErrLowering", id, err)
	}
}

// lowerModule lowers m and every node reachable from it.
func lowerModule(t *testing.T, cx *hir.Context, m *ast.ModuleDecl) (*hir.Module, int) {
	t.Helper()
	id := cx.AllocRoot(hir.ModuleNode(m))
	mod := mustLower[*hir.Module](t, cx, id)
	return mod, cx.LowerAll()
}

func messages(bag *diag.Bag) []string {
	var out []string
	for _, d := range bag.Items() {
		out = append(out, d.Message)
	}
	return out
}

func countMessages(bag *diag.Bag, substr string) int {
	n := 0
	for _, m := range messages(bag) {
		if strings.Contains(m, substr) {
			n++
		}
	}
	return n
}

func wantMessages(t *testing.T, bag *diag.Bag, want ...string) {
	t.Helper()
	got := messages(bag)
	if len(got) != len(want) {
		t.Fatalf("got %d diagnostics %q, want %d %q", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("diagnostic %d = %q, want %q", i, got[i], want[i])
		}
	}
}
