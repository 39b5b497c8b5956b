package ast

import "svlower/internal/source"

// ExprKind enumerates expression forms.
type ExprKind uint8

const (
	ExprLiteral  ExprKind = iota // Lit
	ExprIdent                    // Ident
	ExprSysIdent                 // Ident, name without the `$`
	ExprThis                     // not lowered
	ExprDollar                   // not lowered
	ExprNull                     // not lowered
	ExprUnary                    // Op Postfix Operand
	ExprBinary                   // Lhs Op Rhs
	ExprMember                   // Operand.Ident
	ExprIndex                    // Operand[Index]
	ExprRange                    // Lhs RangeMode Rhs, only as an index
	ExprCall                     // Operand(Args)
	ExprTernary                  // Cond ? Lhs : Rhs
	ExprScope                    // Operand::Ident
	ExprPattern                  // '{Fields}
	ExprConcat                   // {Repeat{Exprs}}
	ExprCast                     // Type'(Operand)
	ExprInside                   // Operand inside {Ranges}
	ExprAssign                   // not lowered
	ExprStreamConcat             // not lowered
	ExprMinTypMax                // not lowered
)

var exprKindNames = enumNames{
	"literal", "ident", "sys_ident", "this", "dollar", "null", "unary", "binary",
	"member", "index", "range", "call", "ternary", "scope", "pattern", "concat",
	"cast", "inside", "assign", "stream_concat", "min_typ_max",
}

var exprKindDesc = []string{
	"literal", "identifier", "system identifier", "`this`", "`$`", "`null`",
	"unary expression", "binary expression", "member access", "index expression",
	"range expression", "call expression", "ternary expression", "scope expression",
	"pattern", "concatenation", "cast", "inside expression", "assignment expression",
	"streaming concatenation", "min:typ:max expression",
}

func (k ExprKind) String() string { return exprKindNames.name(uint8(k)) }

func (k ExprKind) Desc() string {
	if int(k) < len(exprKindDesc) {
		return exprKindDesc[k]
	}
	return k.String()
}

func (k ExprKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *ExprKind) UnmarshalText(text []byte) error {
	v, err := exprKindNames.parse(text, "expression kind")
	*k = ExprKind(v)
	return err
}

// RangeMode is the part-select operator, kept verbatim.
type RangeMode uint8

const (
	RangeAbsolute RangeMode = iota // [a:b]
	RangeRelUp                     // [a+:b]
	RangeRelDown                   // [a-:b]
)

var rangeModeNames = enumNames{":", "+:", "-:"}

func (m RangeMode) String() string               { return rangeModeNames.name(uint8(m)) }
func (m RangeMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }
func (m *RangeMode) UnmarshalText(text []byte) error {
	v, err := rangeModeNames.parse(text, "range mode")
	*m = RangeMode(v)
	return err
}

// Expr is a tagged expression; see ExprKind for the fields each kind uses.
type Expr struct {
	Kind ExprKind    `json:"kind"`
	Span source.Span `json:"span"`

	Lit       *Literal        `json:"lit,omitempty"`
	Ident     *Ident          `json:"ident,omitempty"`
	Op        Op              `json:"op,omitempty"`
	Postfix   bool            `json:"postfix,omitempty"`
	Operand   *Expr           `json:"operand,omitempty"`
	Lhs       *Expr           `json:"lhs,omitempty"`
	Rhs       *Expr           `json:"rhs,omitempty"`
	Index     *Expr           `json:"index,omitempty"`
	RangeMode RangeMode       `json:"range_mode,omitempty"`
	Args      []*CallArg      `json:"args,omitempty"`
	Cond      *Expr           `json:"cond,omitempty"`
	Fields    []*PatternField `json:"fields,omitempty"`
	Repeat    *Expr           `json:"repeat,omitempty"`
	Exprs     []*Expr         `json:"exprs,omitempty"`
	Type      *Type           `json:"type,omitempty"`
	Ranges    []*ValueRange   `json:"ranges,omitempty"`
}

// DescFull describes the expression for diagnostics.
func (e *Expr) DescFull() string {
	if e.Ident != nil && (e.Kind == ExprIdent || e.Kind == ExprSysIdent) {
		prefix := ""
		if e.Kind == ExprSysIdent {
			prefix = "$"
		}
		return e.Kind.Desc() + " `" + prefix + e.Ident.Name + "`"
	}
	return e.Kind.Desc()
}

// CallArg is one call argument; Expr is nil for an empty `f(,x)` slot.
type CallArg struct {
	Span source.Span `json:"span"`
	Name *Ident      `json:"name,omitempty"`
	Expr *Expr       `json:"expr,omitempty"`
}

// PatternKind enumerates assignment pattern fields.
type PatternKind uint8

const (
	PatExpr    PatternKind = iota // expr
	PatRepeat                     // count{exprs}
	PatType                       // type: expr
	PatMember                     // member: expr
	PatDefault                    // default: expr
)

var patternKindNames = enumNames{"expr", "repeat", "type", "member", "default"}

func (k PatternKind) String() string               { return patternKindNames.name(uint8(k)) }
func (k PatternKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *PatternKind) UnmarshalText(text []byte) error {
	v, err := patternKindNames.parse(text, "pattern field kind")
	*k = PatternKind(v)
	return err
}

type PatternField struct {
	Kind   PatternKind `json:"kind"`
	Span   source.Span `json:"span"`
	Expr   *Expr       `json:"expr,omitempty"`
	Count  *Expr       `json:"count,omitempty"`
	Exprs  []*Expr     `json:"exprs,omitempty"`
	Type   *Type       `json:"type,omitempty"`
	Member *Expr       `json:"member,omitempty"`
}

// ValueRange is one entry of an `inside` set: a value or `[Lo:Hi]`.
type ValueRange struct {
	Span  source.Span `json:"span"`
	Range bool        `json:"range,omitempty"`
	Expr  *Expr       `json:"expr,omitempty"`
	Lo    *Expr       `json:"lo,omitempty"`
	Hi    *Expr       `json:"hi,omitempty"`
}
