package ast

import "svlower/internal/source"

// TypeKind enumerates the data type forms of the syntax tree.
type TypeKind uint8

const (
	TypeImplicit TypeKind = iota // no type written, only sign and/or dims
	TypeVoid
	TypeBit
	TypeReg
	TypeLogic
	TypeByte
	TypeShortInt
	TypeInt
	TypeInteger
	TypeLongInt
	TypeString
	TypeTime
	TypeNamed  // Name
	TypeStruct // Members
	TypeScoped // Inner::Name, or Inner.Name when Member is set
	TypeEnum   // Inner is the optional base type, Variants the names
	// Parsed but not lowered.
	TypeUnion
	TypeReal
	TypeShortReal
	TypeRealTime
	TypeChandle
	TypeEvent
	TypeVirtualIntf
)

var typeKindNames = enumNames{
	"implicit", "void", "bit", "reg", "logic", "byte", "shortint", "int",
	"integer", "longint", "string", "time", "named", "struct", "scoped", "enum",
	"union", "real", "shortreal", "realtime", "chandle", "event", "virtual_interface",
}

func (k TypeKind) String() string               { return typeKindNames.name(uint8(k)) }
func (k TypeKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *TypeKind) UnmarshalText(text []byte) error {
	v, err := typeKindNames.parse(text, "type kind")
	*k = TypeKind(v)
	return err
}

// TypeSign is the optional signing keyword.
type TypeSign uint8

const (
	SignNone TypeSign = iota
	SignSigned
	SignUnsigned
)

var typeSignNames = enumNames{"", "signed", "unsigned"}

func (s TypeSign) String() string               { return typeSignNames.name(uint8(s)) }
func (s TypeSign) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
func (s *TypeSign) UnmarshalText(text []byte) error {
	v, err := typeSignNames.parse(text, "type sign")
	*s = TypeSign(v)
	return err
}

// Type is a data type with its sign and packed dimensions.
type Type struct {
	Span     source.Span     `json:"span"`
	Kind     TypeKind        `json:"kind"`
	Sign     TypeSign        `json:"sign,omitempty"`
	Dims     []*TypeDim      `json:"dims,omitempty"`
	Name     *Ident          `json:"name,omitempty"`
	Inner    *Type           `json:"inner,omitempty"`
	Member   bool            `json:"member,omitempty"`
	Packed   bool            `json:"packed,omitempty"`
	Members  []*StructMember `json:"members,omitempty"`
	Variants []*EnumName     `json:"variants,omitempty"`
}

// IsImplicit reports a type that names no data type at all.
func (t *Type) IsImplicit() bool {
	return t == nil || t.Kind == TypeImplicit
}

// IsBare reports an implicit type without sign and packed dimensions.
func (t *Type) IsBare() bool {
	return t.IsImplicit() && (t == nil || (t.Sign == SignNone && len(t.Dims) == 0))
}

// DimKind enumerates the dimension forms.
type DimKind uint8

const (
	DimExpr    DimKind = iota // [N]
	DimRange                  // [a:b]
	DimQueue                  // [$] or [$:N]
	DimUnsized                // []
	DimAssoc                  // [T] or [*]
)

var dimKindNames = enumNames{"expr", "range", "queue", "unsized", "assoc"}

func (k DimKind) String() string               { return dimKindNames.name(uint8(k)) }
func (k DimKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *DimKind) UnmarshalText(text []byte) error {
	v, err := dimKindNames.parse(text, "dimension kind")
	*k = DimKind(v)
	return err
}

// TypeDim is one packed or unpacked dimension.
type TypeDim struct {
	Span source.Span `json:"span"`
	Kind DimKind     `json:"kind"`
	Lhs  *Expr       `json:"lhs,omitempty"`
	Rhs  *Expr       `json:"rhs,omitempty"`
	Type *Type       `json:"type,omitempty"`
}

// DescFull describes the dimension for diagnostics.
func (d *TypeDim) DescFull() string {
	switch d.Kind {
	case DimExpr:
		return "dimension `[N]`"
	case DimQueue:
		return "queue dimension `[$]`"
	case DimUnsized:
		return "unsized dimension `[]`"
	case DimAssoc:
		return "associative dimension"
	}
	return "dimension"
}

// StructMember is `type a, b;` inside a struct body.
type StructMember struct {
	Span  source.Span    `json:"span"`
	Type  *Type          `json:"type"`
	Names []*VarDeclName `json:"names"`
}

// EnumName is one enum variant with its optional value.
type EnumName struct {
	Span  source.Span `json:"span"`
	Name  Ident       `json:"name"`
	Value *Expr       `json:"value,omitempty"`
}
