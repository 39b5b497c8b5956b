package hir

import (
	"math/big"

	"github.com/bits-and-blooms/bitset"

	"svlower/internal/ast"
	"svlower/internal/source"
)

// ExprKind enumerates HIR expression kinds.
type ExprKind uint8

const (
	// ExprIntConst is a sized or based integer with its x/z masks.
	ExprIntConst ExprKind = iota
	// ExprUnsizedConst is '0, '1, 'x or 'z.
	ExprUnsizedConst
	// ExprTimeConst is a time literal in seconds.
	ExprTimeConst
	ExprStringConst
	ExprIdent
	ExprUnary
	ExprBinary
	// ExprField is member access `a.b`.
	ExprField
	ExprIndex
	// ExprBuiltin is a system function call.
	ExprBuiltin
	ExprTernary
	// ExprScope is `a::b`.
	ExprScope
	ExprPositionalPattern
	ExprNamedPattern
	ExprRepeatPattern
	ExprEmptyPattern
	ExprConcat
	ExprCast
	ExprInside
)

func (k ExprKind) String() string {
	switch k {
	case ExprIntConst:
		return "IntConst"
	case ExprUnsizedConst:
		return "UnsizedConst"
	case ExprTimeConst:
		return "TimeConst"
	case ExprStringConst:
		return "StringConst"
	case ExprIdent:
		return "Ident"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprField:
		return "Field"
	case ExprIndex:
		return "Index"
	case ExprBuiltin:
		return "Builtin"
	case ExprTernary:
		return "Ternary"
	case ExprScope:
		return "Scope"
	case ExprPositionalPattern:
		return "PositionalPattern"
	case ExprNamedPattern:
		return "NamedPattern"
	case ExprRepeatPattern:
		return "RepeatPattern"
	case ExprEmptyPattern:
		return "EmptyPattern"
	case ExprConcat:
		return "Concat"
	case ExprCast:
		return "Cast"
	case ExprInside:
		return "Inside"
	default:
		return "Unknown"
	}
}

// Expr is a lowered expression.
type Expr struct {
	ID   NodeID
	Span source.Span
	Kind ExprKind
	Data ExprData
}

// ExprData is implemented by kind-specific payloads.
type ExprData interface {
	exprData()
}

// IntConstData is an integer constant. Bit i of SpecialBits (and XBits)
// is bit i of the value, counted from the least significant end; a set
// special bit is x, z or ?, a set x bit is x. Both masks are Width bits
// long for based literals and empty-valued 32-bit masks for decimals.
type IntConstData struct {
	Width       uint
	Value       *big.Int
	Signed      bool
	SpecialBits *bitset.BitSet
	XBits       *bitset.BitSet
}

type UnsizedConstData struct {
	Char byte // '0', '1', 'x' or 'z'
}

// TimeConstData holds the exact value in seconds.
type TimeConstData struct {
	Value *big.Rat
}

type StringConstData struct {
	Value string
}

type IdentData struct {
	Name ast.Ident
}

// UnaryOp enumerates prefix, postfix and reduction operators.
type UnaryOp uint8

const (
	UnaryPos UnaryOp = iota
	UnaryNeg
	UnaryBitNot
	UnaryLogicNot
	UnaryPreInc
	UnaryPreDec
	UnaryPostInc
	UnaryPostDec
	UnaryRedAnd
	UnaryRedNand
	UnaryRedOr
	UnaryRedNor
	UnaryRedXor
	UnaryRedXnor
)

var unaryOpNames = [...]string{"+", "-", "~", "!", "++x", "--x", "x++", "x--", "&", "~&", "|", "~|", "^", "~^"}

func (o UnaryOp) String() string {
	if int(o) < len(unaryOpNames) {
		return unaryOpNames[o]
	}
	return "?"
}

type UnaryData struct {
	Op      UnaryOp
	Operand NodeID
}

// BinaryOp enumerates binary operators.
type BinaryOp uint8

const (
	BinaryAdd BinaryOp = iota
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryMod
	BinaryPow
	BinaryEq
	BinaryNeq
	BinaryLt
	BinaryLeq
	BinaryGt
	BinaryGeq
	BinaryLogicAnd
	BinaryLogicOr
	BinaryBitAnd
	BinaryBitNand
	BinaryBitOr
	BinaryBitNor
	BinaryBitXor
	BinaryBitXnor
	BinaryLogicShL
	BinaryLogicShR
	BinaryArithShL
	BinaryArithShR
)

var binaryOpNames = [...]string{
	"+", "-", "*", "/", "%", "**", "==", "!=", "<", "<=", ">", ">=", "&&", "||",
	"&", "~&", "|", "~|", "^", "~^", "<<", ">>", "<<<", ">>>",
}

func (o BinaryOp) String() string {
	if int(o) < len(binaryOpNames) {
		return binaryOpNames[o]
	}
	return "?"
}

type BinaryData struct {
	Op  BinaryOp
	Lhs NodeID
	Rhs NodeID
}

type FieldData struct {
	Operand NodeID
	Name    ast.Ident
}

// IndexData is `a[i]` when Range is false, `a[Lhs Mode Rhs]` otherwise.
type IndexData struct {
	Operand NodeID
	Range   bool
	Mode    ast.RangeMode
	Lhs     NodeID
	Rhs     NodeID
}

// BuiltinFunc enumerates the system functions lowered specially.
type BuiltinFunc uint8

const (
	BuiltinClog2 BuiltinFunc = iota
	BuiltinBits
	BuiltinSigned
	BuiltinUnsigned
	// BuiltinUnsupported is any other system call; it was warned about.
	BuiltinUnsupported
)

var builtinNames = [...]string{"$clog2", "$bits", "$signed", "$unsigned", "unsupported"}

func (b BuiltinFunc) String() string {
	if int(b) < len(builtinNames) {
		return builtinNames[b]
	}
	return "?"
}

type BuiltinCallData struct {
	Func BuiltinFunc
	Arg  NodeID // NoNodeID for BuiltinUnsupported
}

type TernaryData struct {
	Cond NodeID
	Then NodeID
	Else NodeID
}

type ScopeData struct {
	Operand NodeID
	Name    ast.Ident
}

type PositionalPatternData struct {
	Fields []NodeID
}

// PatternKey is the key of one named pattern field.
type PatternKey struct {
	Kind  ast.PatternKind // PatType, PatMember or PatDefault
	Type  NodeID
	Expr  NodeID // member expression
	Value NodeID
}

type NamedPatternData struct {
	Fields []PatternKey
}

type RepeatPatternData struct {
	Count NodeID
	Exprs []NodeID
}

type EmptyPatternData struct{}

// ConcatData has Repeat NoNodeID for a plain concatenation.
type ConcatData struct {
	Repeat NodeID
	Exprs  []NodeID
}

type CastData struct {
	Type    NodeID
	Operand NodeID
}

// InsideRange is a value (Lo only) or a `[Lo:Hi]` range.
type InsideRange struct {
	Range bool
	Lo    NodeID
	Hi    NodeID
}

type InsideData struct {
	Operand NodeID
	Ranges  []InsideRange
}

func (IntConstData) exprData()          {}
func (UnsizedConstData) exprData()      {}
func (TimeConstData) exprData()         {}
func (StringConstData) exprData()       {}
func (IdentData) exprData()             {}
func (UnaryData) exprData()             {}
func (BinaryData) exprData()            {}
func (FieldData) exprData()             {}
func (IndexData) exprData()             {}
func (BuiltinCallData) exprData()       {}
func (TernaryData) exprData()           {}
func (ScopeData) exprData()             {}
func (PositionalPatternData) exprData() {}
func (NamedPatternData) exprData()      {}
func (RepeatPatternData) exprData()     {}
func (EmptyPatternData) exprData()      {}
func (ConcatData) exprData()            {}
func (CastData) exprData()              {}
func (InsideData) exprData()            {}

func (n *Expr) NodeID() NodeID        { return n.ID }
func (n *Expr) NodeSpan() source.Span { return n.Span }
func (*Expr) NodeKind() NodeKind      { return NodeExpr }
