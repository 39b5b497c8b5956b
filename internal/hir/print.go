package hir

import (
	"fmt"
	"io"
	"strings"
)

// Printer dumps the identity table of a Context in allocation order.
type Printer struct {
	w   io.Writer
	cx  *Context
	err error
}

func NewPrinter(w io.Writer, cx *Context) *Printer {
	return &Printer{w: w, cx: cx}
}

// Dump writes one line per allocated identity: id, rib, syntax kind and
// the lowered payload. Identities that were never lowered or failed are
// marked as such.
func Dump(w io.Writer, cx *Context) error {
	return NewPrinter(w, cx).PrintAll()
}

func (p *Printer) PrintAll() error {
	for id := NodeID(1); int(id) <= p.cx.Len(); id++ {
		p.printNode(id)
	}
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) printNode(id NodeID) {
	e := p.cx.entries.Get(uint32(id))
	p.printf("#%d ^%d %s", id, e.parent, e.ast.Kind)
	switch e.state {
	case stateFailed:
		p.printf(" !failed\n")
		return
	case stateNew:
		p.printf(" -\n")
		return
	}
	p.printf(" %s\n", describe(e.node))
}

func ids(xs []NodeID) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprintf("#%d", x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func dims(ds []Dim) string {
	var sb strings.Builder
	for _, d := range ds {
		if d.Rhs == NoNodeID {
			fmt.Fprintf(&sb, "[#%d]", d.Lhs)
			continue
		}
		fmt.Fprintf(&sb, "[#%d:#%d]", d.Lhs, d.Rhs)
	}
	return sb.String()
}

func block(b *ModuleBlock) string {
	return fmt.Sprintf("insts=%s decls=%s procs=%s gens=%s params=%s assigns=%s",
		ids(b.Insts), ids(b.Decls), ids(b.Procs), ids(b.Gens), ids(b.Params), ids(b.Assigns))
}

func describe(n Node) string {
	switch n := n.(type) {
	case *Module:
		return fmt.Sprintf("Module %s ports=%s params=%s %s", n.Name.Name, ids(n.Ports), ids(n.Params), block(&n.Block))
	case *Package:
		return fmt.Sprintf("Package %s decls=%s params=%s last=#%d", n.Name.Name, ids(n.Decls), ids(n.Params), n.LastRib)
	case *Port:
		return strings.TrimSpace(fmt.Sprintf("Port %s %s %s type=#%d%s default=#%d", n.Dir, n.Kind, n.Name.Name, n.Type, dims(n.Dims), n.Default))
	case *Type:
		return describeType(n)
	case *Expr:
		return describeExpr(n)
	case *Stmt:
		return describeStmt(n)
	case *EventExpr:
		parts := make([]string, len(n.Events))
		for i, ev := range n.Events {
			s := fmt.Sprintf("%s #%d", ev.Edge, ev.Expr)
			if len(ev.Iff) > 0 {
				s += " iff " + ids(ev.Iff)
			}
			parts[i] = strings.TrimSpace(s)
		}
		return "EventExpr " + strings.Join(parts, ", ")
	case *Gen:
		if n.Kind == GenFor {
			return fmt.Sprintf("GenFor init=%s cond=#%d step=#%d %s", ids(n.Init), n.Cond, n.Step, block(&n.Main))
		}
		s := fmt.Sprintf("GenIf cond=#%d %s", n.Cond, block(&n.Main))
		if n.Else != nil {
			s += " else " + block(n.Else)
		}
		return s
	case *GenvarDecl:
		return fmt.Sprintf("GenvarDecl %s init=#%d", n.Name.Name, n.Init)
	case *Typedef:
		return fmt.Sprintf("Typedef %s type=#%d", n.Name.Name, n.Type)
	case *Assign:
		return fmt.Sprintf("Assign #%d = #%d", n.Lhs, n.Rhs)
	case *VarDecl:
		return fmt.Sprintf("VarDecl(%s) %s type=#%d%s init=#%d", n.Kind, n.Name.Name, n.Type, dims(n.Dims), n.Init)
	case *TypeParam:
		return fmt.Sprintf("TypeParam %s local=%t default=#%d", n.Name.Name, n.Local, n.Default)
	case *ValueParam:
		return fmt.Sprintf("ValueParam %s local=%t type=#%d default=#%d", n.Name.Name, n.Local, n.Type, n.Default)
	case *InstTarget:
		return fmt.Sprintf("InstTarget %s pos=%d named=%d", n.Name.Name, len(n.PosParams), len(n.NamedParams))
	case *Inst:
		return fmt.Sprintf("Inst %s target=#%d pos=%d named=%d wildcard=%t", n.Name.Name, n.Target, len(n.PosPorts), len(n.NamedPorts), n.Wildcard)
	case *EnumVariant:
		return fmt.Sprintf("EnumVariant %s enum=#%d index=%d value=#%d", n.Name.Name, n.Enum, n.Index, n.Value)
	case *Proc:
		return fmt.Sprintf("Proc %s stmt=#%d", n.Kind, n.Stmt)
	case *Inert:
		return "Inert " + n.Reason
	}
	return fmt.Sprintf("%T", n)
}

func describeType(t *Type) string {
	s := "Type " + t.Kind.String()
	switch d := t.Data.(type) {
	case BuiltinData:
		s += " " + d.Builtin.String()
	case NamedTypeData:
		s += " " + d.Name.Name
	case StructData:
		s += " members=" + ids(d.Members)
	case ScopeTypeData:
		s += fmt.Sprintf(" #%d::%s", d.Inner, d.Name.Name)
	case EnumData:
		s += fmt.Sprintf(" repr=#%d variants=%s", d.Repr, ids(d.Variants))
	}
	if t.Sign.String() != "" {
		s += " " + t.Sign.String()
	}
	return s + dims(t.Dims)
}

func describeExpr(e *Expr) string {
	s := e.Kind.String()
	switch d := e.Data.(type) {
	case IntConstData:
		s += fmt.Sprintf(" %d'%s signed=%t special=%s x=%s", d.Width, d.Value, d.Signed, d.SpecialBits, d.XBits)
	case UnsizedConstData:
		s += " '" + string(d.Char)
	case TimeConstData:
		s += " " + d.Value.RatString() + "s"
	case StringConstData:
		s += fmt.Sprintf(" %q", d.Value)
	case IdentData:
		s += " " + d.Name.Name
	case UnaryData:
		s += fmt.Sprintf(" %s #%d", d.Op, d.Operand)
	case BinaryData:
		s += fmt.Sprintf(" #%d %s #%d", d.Lhs, d.Op, d.Rhs)
	case FieldData:
		s += fmt.Sprintf(" #%d.%s", d.Operand, d.Name.Name)
	case IndexData:
		if d.Range {
			s += fmt.Sprintf(" #%d[#%d%s#%d]", d.Operand, d.Lhs, d.Mode, d.Rhs)
		} else {
			s += fmt.Sprintf(" #%d[#%d]", d.Operand, d.Lhs)
		}
	case BuiltinCallData:
		s += fmt.Sprintf(" %s(#%d)", d.Func, d.Arg)
	case TernaryData:
		s += fmt.Sprintf(" #%d ? #%d : #%d", d.Cond, d.Then, d.Else)
	case ScopeData:
		s += fmt.Sprintf(" #%d::%s", d.Operand, d.Name.Name)
	case PositionalPatternData:
		s += " " + ids(d.Fields)
	case NamedPatternData:
		parts := make([]string, len(d.Fields))
		for i, f := range d.Fields {
			key := "default"
			switch {
			case f.Type != NoNodeID:
				key = fmt.Sprintf("type #%d", f.Type)
			case f.Expr != NoNodeID:
				key = fmt.Sprintf("#%d", f.Expr)
			}
			parts[i] = fmt.Sprintf("%s: #%d", key, f.Value)
		}
		s += " {" + strings.Join(parts, ", ") + "}"
	case RepeatPatternData:
		s += fmt.Sprintf(" #%d%s", d.Count, ids(d.Exprs))
	case ConcatData:
		s += fmt.Sprintf(" repeat=#%d %s", d.Repeat, ids(d.Exprs))
	case CastData:
		s += fmt.Sprintf(" #%d'(#%d)", d.Type, d.Operand)
	case InsideData:
		parts := make([]string, len(d.Ranges))
		for i, r := range d.Ranges {
			if r.Range {
				parts[i] = fmt.Sprintf("[#%d:#%d]", r.Lo, r.Hi)
			} else {
				parts[i] = fmt.Sprintf("#%d", r.Lo)
			}
		}
		s += fmt.Sprintf(" #%d inside {%s}", d.Operand, strings.Join(parts, ", "))
	}
	return "Expr " + s
}

func describeStmt(st *Stmt) string {
	s := "Stmt " + st.Kind.String()
	if st.Label != nil {
		s += " " + st.Label.Name + ":"
	}
	switch d := st.Data.(type) {
	case BlockData:
		s += " " + ids(d.Stmts)
	case AssignData:
		switch d.Kind {
		case AssignBlock:
			s += fmt.Sprintf(" #%d %s #%d", d.Lhs, d.Op, d.Rhs)
		case AssignNonblock:
			s += fmt.Sprintf(" #%d <= #%d", d.Lhs, d.Rhs)
		case AssignNonblockDelay:
			s += fmt.Sprintf(" #%d <= ##%d #%d", d.Lhs, d.Delay, d.Rhs)
		}
	case TimedData:
		s += fmt.Sprintf(" %s #%d stmt=#%d", d.Timing, d.Control, d.Stmt)
	case IfData:
		s += fmt.Sprintf(" cond=#%d then=#%d else=#%d", d.Cond, d.Then, d.Else)
	case ExprStmtData:
		s += fmt.Sprintf(" #%d", d.Expr)
	case LoopData:
		s += fmt.Sprintf(" %s init=#%d cond=#%d step=#%d body=#%d", d.Kind, d.Init, d.Cond, d.Step, d.Body)
	case InlineGroupData:
		s += fmt.Sprintf(" %s rib=#%d", ids(d.Stmts), d.Rib)
	case CaseData:
		s += fmt.Sprintf(" %s #%d ways=%d default=#%d", d.Kind, d.Expr, len(d.Ways), d.Default)
	}
	return s
}
