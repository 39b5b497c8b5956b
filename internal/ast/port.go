package ast

import "svlower/internal/source"

// PortDir is the direction keyword of a port; PortDirNone when omitted.
type PortDir uint8

const (
	PortDirNone PortDir = iota
	PortInput
	PortOutput
	PortInout
	PortRef
)

var portDirNames = enumNames{"", "input", "output", "inout", "ref"}

func (d PortDir) String() string               { return portDirNames.name(uint8(d)) }
func (d PortDir) MarshalText() ([]byte, error) { return []byte(d.String()), nil }
func (d *PortDir) UnmarshalText(text []byte) error {
	v, err := portDirNames.parse(text, "port direction")
	*d = PortDir(v)
	return err
}

// NetType is the net keyword of a net declaration or net port.
type NetType uint8

const (
	NetWire NetType = iota
	NetTri
	NetWand
	NetWor
	NetTriAnd
	NetTriOr
	NetTri0
	NetTri1
	NetTriReg
	NetSupply0
	NetSupply1
	NetUwire
)

var netTypeNames = enumNames{
	"wire", "tri", "wand", "wor", "triand", "trior", "tri0", "tri1", "trireg",
	"supply0", "supply1", "uwire",
}

func (n NetType) String() string               { return netTypeNames.name(uint8(n)) }
func (n NetType) MarshalText() ([]byte, error) { return []byte(n.String()), nil }
func (n *NetType) UnmarshalText(text []byte) error {
	v, err := netTypeNames.parse(text, "net type")
	*n = NetType(v)
	return err
}

// PortKindTag says whether a port was written as a variable or a net.
type PortKindTag uint8

const (
	PortKindNone PortKindTag = iota
	PortKindVar
	PortKindNet
)

var portKindTagNames = enumNames{"", "var", "net"}

func (k PortKindTag) String() string               { return portKindTagNames.name(uint8(k)) }
func (k PortKindTag) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *PortKindTag) UnmarshalText(text []byte) error {
	v, err := portKindTagNames.parse(text, "port kind")
	*k = PortKindTag(v)
	return err
}

// PortKind is the optional `var` / net-type keyword of a port.
type PortKind struct {
	Tag PortKindTag `json:"tag,omitempty"`
	Net NetType     `json:"net,omitempty"`
}

func (k PortKind) IsSet() bool { return k.Tag != PortKindNone }

func (k PortKind) String() string {
	switch k.Tag {
	case PortKindVar:
		return "var"
	case PortKindNet:
		return k.Net.String()
	}
	return ""
}

// PortForm is the syntactic shape of a port list entry.
type PortForm uint8

const (
	PortNamed    PortForm = iota // input logic [3:0] a = 0
	PortExplicit                 // .a(expr)
	PortImplicit                 // bare expression, e.g. `a` or `a[1:0]`
)

var portFormNames = enumNames{"named", "explicit", "implicit"}

func (f PortForm) String() string               { return portFormNames.name(uint8(f)) }
func (f PortForm) MarshalText() ([]byte, error) { return []byte(f.String()), nil }
func (f *PortForm) UnmarshalText(text []byte) error {
	v, err := portFormNames.parse(text, "port form")
	*f = PortForm(v)
	return err
}

// Port is one entry of a module header port list.
//
// Named: Dir, Kind, Type, Name, unpacked Dims, default Expr.
// Explicit: Dir, Name, connected Expr (may be nil).
// Implicit: Expr only.
type Port struct {
	Form PortForm    `json:"form"`
	Span source.Span `json:"span"`
	Dir  PortDir     `json:"dir,omitempty"`
	Kind PortKind    `json:"kind,omitzero"`
	Type *Type       `json:"type,omitempty"`
	Name Ident       `json:"name,omitzero"`
	Dims []*TypeDim  `json:"dims,omitempty"`
	Expr *Expr       `json:"expr,omitempty"`
}

// PortDecl is a body port declaration: `input wire [7:0] a, b;`.
type PortDecl struct {
	Span  source.Span    `json:"span"`
	Dir   PortDir        `json:"dir"`
	Kind  PortKind       `json:"kind,omitzero"`
	Type  *Type          `json:"type"`
	Names []*VarDeclName `json:"names"`
}

// VarDeclName is one declared name with its unpacked dimensions and
// optional initializer. Span covers the whole `a [3:0] = 1` fragment.
type VarDeclName struct {
	Span source.Span `json:"span"`
	Name Ident       `json:"name"`
	Dims []*TypeDim  `json:"dims,omitempty"`
	Init *Expr       `json:"init,omitempty"`
}

type VarDecl struct {
	Span  source.Span    `json:"span"`
	Const bool           `json:"const,omitempty"`
	Type  *Type          `json:"type"`
	Names []*VarDeclName `json:"names"`
}

type NetDecl struct {
	Span    source.Span    `json:"span"`
	NetType NetType        `json:"net_type"`
	Type    *Type          `json:"type"`
	Delay   *Expr          `json:"delay,omitempty"`
	Names   []*VarDeclName `json:"names"`
}
