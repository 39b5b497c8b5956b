package ast

import (
	"fmt"

	"svlower/internal/source"
)

// MalformedError reports a syntax node that lacks a payload its kind
// requires, for example a binary expression without `rhs`.
type MalformedError struct {
	Span  source.Span
	What  string
	Field string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s at %s lacks `%s`", e.What, e.Span, e.Field)
}

// Check walks the unit and returns the first node missing a required
// payload. Lowering relies on every checked field being present.
func (r *Root) Check() error {
	c := &checker{}
	c.items(r.Items)
	if c.err != nil {
		return c.err
	}
	return nil
}

// checker stops at the first error; every method is a no-op after it.
type checker struct {
	err *MalformedError
}

// need records a missing field unless ok holds.
func (c *checker) need(ok bool, sp source.Span, what, field string) bool {
	if c.err != nil {
		return false
	}
	if !ok {
		c.err = &MalformedError{Span: sp, What: what, Field: field}
		return false
	}
	return true
}

func (c *checker) items(items []*Item) {
	for _, it := range items {
		if c.err != nil {
			return
		}
		if !c.need(it != nil, source.Span{}, "item list", "item") {
			return
		}
		c.item(it)
	}
}

func (c *checker) item(it *Item) {
	what := it.Kind.Desc()
	switch it.Kind {
	case ItemModule:
		if c.need(it.Module != nil, it.Span, what, "module") {
			c.module(it.Module)
		}
	case ItemPackage:
		if c.need(it.Package != nil, it.Span, what, "package") {
			c.items(it.Package.Items)
		}
	case ItemPortDecl:
		if c.need(it.PortDecl != nil, it.Span, what, "port_decl") {
			c.typ(it.PortDecl.Type)
			c.names(it.PortDecl.Names, it.Span)
		}
	case ItemVarDecl:
		if c.need(it.VarDecl != nil, it.Span, what, "var_decl") {
			c.varDecl(it.VarDecl)
		}
	case ItemNetDecl:
		if c.need(it.NetDecl != nil, it.Span, what, "net_decl") {
			d := it.NetDecl
			if c.need(d.Type != nil, d.Span, what, "type") {
				c.typ(d.Type)
			}
			c.exprOpt(d.Delay)
			c.names(d.Names, d.Span)
		}
	case ItemInst:
		if c.need(it.Inst != nil, it.Span, what, "inst") {
			c.inst(it.Inst)
		}
	case ItemProc:
		if c.need(it.Proc != nil, it.Span, what, "proc") &&
			c.need(it.Proc.Stmt != nil, it.Proc.Span, "procedure", "stmt") {
			c.stmt(it.Proc.Stmt)
		}
	case ItemGenIf:
		if c.need(it.GenIf != nil, it.Span, what, "gen_if") {
			g := it.GenIf
			c.expr(g.Cond, g.Span, what, "cond")
			c.block(g.Main)
			c.block(g.Else)
		}
	case ItemGenFor:
		if c.need(it.GenFor != nil, it.Span, what, "gen_for") {
			g := it.GenFor
			c.stmtOpt(g.Init)
			c.expr(g.Cond, g.Span, what, "cond")
			c.expr(g.Step, g.Span, what, "step")
			c.block(g.Block)
		}
	case ItemParam:
		if c.need(it.Param != nil, it.Span, what, "param") {
			c.param(it.Param)
		}
	case ItemTypedef:
		if c.need(it.Typedef != nil, it.Span, what, "typedef") {
			d := it.Typedef
			if c.need(d.Type != nil, d.Span, what, "type") {
				c.typ(d.Type)
			}
			c.dims(d.Dims, d.Span)
		}
	case ItemContAssign:
		if c.need(it.ContAssign != nil, it.Span, what, "cont_assign") {
			for _, pair := range it.ContAssign.Assignments {
				if !c.need(pair != nil, it.Span, what, "assignment") {
					return
				}
				c.expr(pair.Lhs, it.Span, what, "lhs")
				c.expr(pair.Rhs, it.Span, what, "rhs")
			}
		}
	case ItemImport:
		if c.need(it.Import != nil, it.Span, what, "import") {
			for _, imp := range it.Import.Items {
				c.need(imp != nil, it.Span, what, "item")
			}
		}
	case ItemSubroutine:
		c.need(it.Subroutine != nil, it.Span, what, "subroutine")
	}
}

func (c *checker) module(m *ModuleDecl) {
	for _, p := range m.Params {
		if !c.need(p != nil, m.Span, "module", "param") {
			return
		}
		c.param(p)
	}
	for _, p := range m.Ports {
		if !c.need(p != nil, m.Span, "module", "port") {
			return
		}
		c.typ(p.Type)
		c.dims(p.Dims, p.Span)
		c.exprOpt(p.Expr)
	}
	c.items(m.Items)
}

func (c *checker) block(b *GenerateBlock) {
	if b != nil {
		c.items(b.Items)
	}
}

func (c *checker) param(p *ParamDecl) {
	for _, d := range p.TypeDecls {
		if !c.need(d != nil, p.Span, "type parameter", "type_decl") {
			return
		}
		c.typ(d.Type)
	}
	for _, d := range p.ValueDecls {
		if !c.need(d != nil, p.Span, "value parameter", "value_decl") {
			return
		}
		if c.need(d.Type != nil, d.Span, "value parameter", "type") {
			c.typ(d.Type)
		}
		c.dims(d.Dims, d.Span)
		c.exprOpt(d.Expr)
	}
}

func (c *checker) inst(inst *Inst) {
	for _, p := range inst.Params {
		if !c.need(p != nil, inst.Span, "instantiation", "param") ||
			!c.need(p.Expr != nil, p.Span, "parameter assignment", "expr") {
			return
		}
		c.typ(p.Expr.Type)
		c.exprOpt(p.Expr.Expr)
	}
	for _, n := range inst.Names {
		if !c.need(n != nil, inst.Span, "instantiation", "name") {
			return
		}
		c.dims(n.Dims, n.Span)
		for _, conn := range n.Conns {
			if !c.need(conn != nil, n.Span, "instance", "conn") {
				return
			}
			c.exprOpt(conn.Expr)
		}
	}
}

func (c *checker) varDecl(d *VarDecl) {
	if c.need(d.Type != nil, d.Span, "variable declaration", "type") {
		c.typ(d.Type)
	}
	c.names(d.Names, d.Span)
}

func (c *checker) names(names []*VarDeclName, sp source.Span) {
	for _, n := range names {
		if !c.need(n != nil, sp, "declaration", "name") {
			return
		}
		c.dims(n.Dims, n.Span)
		c.exprOpt(n.Init)
	}
}

func (c *checker) dims(dims []*TypeDim, sp source.Span) {
	for _, d := range dims {
		if !c.need(d != nil, sp, "dimension list", "dim") {
			return
		}
		c.exprOpt(d.Lhs)
		c.exprOpt(d.Rhs)
		c.typ(d.Type)
	}
}

// typ checks t when present; callers decide whether a type is required.
func (c *checker) typ(t *Type) {
	if t == nil || c.err != nil {
		return
	}
	c.dims(t.Dims, t.Span)
	c.typ(t.Inner)
	for _, m := range t.Members {
		if !c.need(m != nil, t.Span, "struct", "member") ||
			!c.need(m.Type != nil, m.Span, "struct member", "type") {
			return
		}
		c.typ(m.Type)
		c.names(m.Names, m.Span)
	}
	for _, v := range t.Variants {
		if !c.need(v != nil, t.Span, "enum", "variant") {
			return
		}
		c.exprOpt(v.Value)
	}
}

func (c *checker) stmtOpt(s *Stmt) {
	if s != nil {
		c.stmt(s)
	}
}

func (c *checker) stmt(s *Stmt) {
	if c.err != nil {
		return
	}
	what := s.Kind.Desc()
	switch s.Kind {
	case StmtSeqBlock, StmtParBlock:
		for _, st := range s.Stmts {
			if !c.need(st != nil, s.Span, what, "stmt") {
				return
			}
			c.stmt(st)
		}
	case StmtBlockingAssign, StmtNonblockingAssign:
		c.expr(s.Lhs, s.Span, what, "lhs")
		c.expr(s.Rhs, s.Span, what, "rhs")
		c.exprOpt(s.Delay)
	case StmtTimed:
		if tc := s.Timing; tc != nil {
			if tc.Kind == TimingDelay {
				c.expr(tc.Delay, tc.Span, "delay control", "delay")
			}
			if tc.Event != nil {
				c.event(tc.Event)
			}
		}
		c.stmtOpt(s.Body)
	case StmtIf:
		c.expr(s.Cond, s.Span, what, "cond")
		c.stmtOpt(s.Then)
		c.stmtOpt(s.Else)
	case StmtExpr:
		c.expr(s.Expr, s.Span, what, "expr")
	case StmtForever:
		c.stmtOpt(s.Body)
	case StmtRepeat, StmtWhile, StmtDo:
		c.expr(s.Cond, s.Span, what, "cond")
		c.stmtOpt(s.Body)
	case StmtFor:
		c.stmtOpt(s.Init)
		c.exprOpt(s.Cond)
		c.exprOpt(s.Step)
		c.stmtOpt(s.Body)
	case StmtVarDecl:
		if c.need(s.Decl != nil, s.Span, what, "decl") {
			c.varDecl(s.Decl)
		}
	case StmtGenvarDecl:
		for _, g := range s.Genvars {
			if !c.need(g != nil, s.Span, what, "genvar") {
				return
			}
			c.exprOpt(g.Init)
		}
	case StmtCase:
		c.expr(s.Expr, s.Span, what, "expr")
		for _, item := range s.Items {
			if !c.need(item != nil, s.Span, what, "item") {
				return
			}
			for _, x := range item.Exprs {
				c.expr(x, item.Span, "case item", "expr")
			}
			c.stmtOpt(item.Stmt)
		}
	}
}

func (c *checker) event(e *EventExpr) {
	if c.err != nil {
		return
	}
	switch e.Kind {
	case EventEdge:
		c.expr(e.Value, e.Span, "event", "value")
	case EventIff:
		c.expr(e.Cond, e.Span, "iff event", "cond")
		if c.need(e.Inner != nil, e.Span, "iff event", "inner") {
			c.event(e.Inner)
		}
	case EventOr:
		if c.need(e.Lhs != nil, e.Span, "or event", "lhs") &&
			c.need(e.Rhs != nil, e.Span, "or event", "rhs") {
			c.event(e.Lhs)
			c.event(e.Rhs)
		}
	}
}

// expr requires e, reporting it as field of the node at sp.
func (c *checker) expr(e *Expr, sp source.Span, what, field string) {
	if c.need(e != nil, sp, what, field) {
		c.exprBody(e)
	}
}

func (c *checker) exprOpt(e *Expr) {
	if e != nil {
		c.exprBody(e)
	}
}

func (c *checker) exprBody(e *Expr) {
	if c.err != nil {
		return
	}
	what := e.Kind.Desc()
	switch e.Kind {
	case ExprIdent, ExprSysIdent:
		c.need(e.Ident != nil, e.Span, what, "ident")
	case ExprUnary:
		c.expr(e.Operand, e.Span, what, "operand")
	case ExprBinary, ExprRange:
		c.expr(e.Lhs, e.Span, what, "lhs")
		c.expr(e.Rhs, e.Span, what, "rhs")
	case ExprMember, ExprScope:
		c.expr(e.Operand, e.Span, what, "operand")
		c.need(e.Ident != nil, e.Span, what, "ident")
	case ExprIndex:
		c.expr(e.Operand, e.Span, what, "operand")
		c.exprOpt(e.Index)
	case ExprCall:
		c.exprOpt(e.Operand)
		for _, a := range e.Args {
			if !c.need(a != nil, e.Span, what, "arg") {
				return
			}
			c.exprOpt(a.Expr)
		}
	case ExprTernary:
		c.expr(e.Cond, e.Span, what, "cond")
		c.expr(e.Lhs, e.Span, what, "lhs")
		c.expr(e.Rhs, e.Span, what, "rhs")
	case ExprPattern:
		for _, f := range e.Fields {
			if !c.need(f != nil, e.Span, what, "field") {
				return
			}
			c.patternField(f)
		}
	case ExprConcat:
		c.exprOpt(e.Repeat)
		for _, x := range e.Exprs {
			c.expr(x, e.Span, what, "exprs")
		}
	case ExprCast:
		if c.need(e.Type != nil, e.Span, what, "type") {
			c.typ(e.Type)
		}
		c.expr(e.Operand, e.Span, what, "operand")
	case ExprInside:
		c.expr(e.Operand, e.Span, what, "operand")
		for _, r := range e.Ranges {
			if !c.need(r != nil, e.Span, what, "range") {
				return
			}
			if r.Range {
				c.expr(r.Lo, r.Span, "inside range", "lo")
				c.expr(r.Hi, r.Span, "inside range", "hi")
				continue
			}
			c.expr(r.Expr, r.Span, "inside value", "expr")
		}
	}
}

func (c *checker) patternField(f *PatternField) {
	what := "pattern field"
	switch f.Kind {
	case PatRepeat:
		c.expr(f.Count, f.Span, what, "count")
		for _, x := range f.Exprs {
			c.expr(x, f.Span, what, "exprs")
		}
	case PatType:
		if c.need(f.Type != nil, f.Span, what, "type") {
			c.typ(f.Type)
		}
		c.expr(f.Expr, f.Span, what, "expr")
	case PatMember:
		c.expr(f.Member, f.Span, what, "member")
		c.expr(f.Expr, f.Span, what, "expr")
	default:
		c.expr(f.Expr, f.Span, what, "expr")
	}
}
