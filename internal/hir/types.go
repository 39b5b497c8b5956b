package hir

import (
	"svlower/internal/ast"
	"svlower/internal/source"
)

// TypeKind enumerates HIR type kinds.
type TypeKind uint8

const (
	// TypeImplicit is a type that was not written, only sign and dims.
	TypeImplicit TypeKind = iota
	// TypeBuiltin is one of the keyword types (bit, logic, int, ...).
	TypeBuiltin
	// TypeNamed refers to a typedef or type parameter by name.
	TypeNamed
	// TypeStruct is an inline struct; members are VarDecl nodes.
	TypeStruct
	// TypeScope is `Inner::Name`.
	TypeScope
	// TypeEnum is an inline enum; variants are EnumVariant nodes.
	TypeEnum
)

func (k TypeKind) String() string {
	switch k {
	case TypeImplicit:
		return "Implicit"
	case TypeBuiltin:
		return "Builtin"
	case TypeNamed:
		return "Named"
	case TypeStruct:
		return "Struct"
	case TypeScope:
		return "Scope"
	case TypeEnum:
		return "Enum"
	default:
		return "Unknown"
	}
}

// Type is a lowered data type. Dims are packed dimensions, outermost
// first: `logic [3:0][7:0]` has Dims [3:0], [7:0].
type Type struct {
	ID   NodeID
	Span source.Span
	Kind TypeKind
	Data TypeData
	Sign ast.TypeSign
	Dims []Dim
}

// TypeData is implemented by kind-specific payloads.
type TypeData interface {
	typeData()
}

type BuiltinData struct {
	Builtin ast.TypeKind
}

type NamedTypeData struct {
	Name ast.Ident
}

type StructData struct {
	Packed  bool
	Members []NodeID
}

type ScopeTypeData struct {
	Inner NodeID
	Name  ast.Ident
}

// EnumData has Repr NoNodeID when no base type was given.
type EnumData struct {
	Repr     NodeID
	Variants []NodeID
}

func (BuiltinData) typeData()   {}
func (NamedTypeData) typeData() {}
func (StructData) typeData()    {}
func (ScopeTypeData) typeData() {}
func (EnumData) typeData()      {}

func (n *Type) NodeID() NodeID        { return n.ID }
func (n *Type) NodeSpan() source.Span { return n.Span }
func (*Type) NodeKind() NodeKind      { return NodeType }
