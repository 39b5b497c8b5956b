package ast

import "svlower/internal/source"

// ItemKind enumerates hierarchy items: everything that may appear in a
// compilation unit, a module body, a package or a generate block.
type ItemKind uint8

const (
	ItemInvalid ItemKind = iota
	ItemModule
	ItemPackage
	ItemPortDecl
	ItemVarDecl
	ItemNetDecl
	ItemInst
	ItemProc
	ItemGenIf
	ItemGenFor
	ItemParam
	ItemTypedef
	ItemContAssign
	ItemImport
	ItemSubroutine
	// Items below are parsed but have no lowering.
	ItemInterface
	ItemProgram
	ItemClass
	ItemModport
	ItemGenvarDecl
	ItemGenCase
	ItemGenRegion
	ItemAssertion
	ItemDummy
)

var itemKindNames = enumNames{
	"invalid", "module", "package", "port_decl", "var_decl", "net_decl", "inst",
	"proc", "gen_if", "gen_for", "param", "typedef", "cont_assign", "import",
	"subroutine", "interface", "program", "class", "modport", "genvar_decl",
	"gen_case", "gen_region", "assertion", "dummy",
}

var itemKindDesc = []string{
	"invalid item", "module", "package", "port declaration", "variable declaration",
	"net declaration", "instantiation", "procedure", "if-generate", "for-generate",
	"parameter declaration", "typedef", "continuous assignment", "import declaration",
	"subroutine", "interface", "program", "class declaration", "modport",
	"genvar declaration", "case-generate", "generate region", "assertion", "empty item",
}

func (k ItemKind) String() string { return itemKindNames.name(uint8(k)) }

// Desc is the human readable name used in diagnostics.
func (k ItemKind) Desc() string {
	if int(k) < len(itemKindDesc) {
		return itemKindDesc[k]
	}
	return k.String()
}

func (k ItemKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *ItemKind) UnmarshalText(text []byte) error {
	v, err := itemKindNames.parse(text, "item kind")
	*k = ItemKind(v)
	return err
}

// Item is a tagged hierarchy item; exactly the field matching Kind is set.
type Item struct {
	Kind ItemKind    `json:"kind"`
	Span source.Span `json:"span"`
	// Name of unsupported items, used in diagnostics only.
	Name *Ident `json:"name,omitempty"`

	Module     *ModuleDecl     `json:"module,omitempty"`
	Package    *PackageDecl    `json:"package,omitempty"`
	PortDecl   *PortDecl       `json:"port_decl,omitempty"`
	VarDecl    *VarDecl        `json:"var_decl,omitempty"`
	NetDecl    *NetDecl        `json:"net_decl,omitempty"`
	Inst       *Inst           `json:"inst,omitempty"`
	Proc       *Procedure      `json:"proc,omitempty"`
	GenIf      *GenerateIf     `json:"gen_if,omitempty"`
	GenFor     *GenerateFor    `json:"gen_for,omitempty"`
	Param      *ParamDecl      `json:"param,omitempty"`
	Typedef    *Typedef        `json:"typedef,omitempty"`
	ContAssign *ContAssign     `json:"cont_assign,omitempty"`
	Import     *ImportDecl     `json:"import,omitempty"`
	Subroutine *SubroutineDecl `json:"subroutine,omitempty"`
}

// DescFull describes the item for diagnostics, e.g. "module `top`".
func (it *Item) DescFull() string {
	name := ""
	switch {
	case it.Name != nil:
		name = it.Name.Name
	case it.Module != nil:
		name = it.Module.Name.Name
	case it.Package != nil:
		name = it.Package.Name.Name
	case it.Typedef != nil:
		name = it.Typedef.Name.Name
	case it.Subroutine != nil:
		name = it.Subroutine.Name.Name
	case it.Inst != nil:
		name = it.Inst.Target.Name
	}
	if name == "" {
		return it.Kind.Desc()
	}
	return it.Kind.Desc() + " `" + name + "`"
}

// ModuleDecl is `module name #(params) (ports); items endmodule`.
type ModuleDecl struct {
	Span   source.Span  `json:"span"`
	Name   Ident        `json:"name"`
	Params []*ParamDecl `json:"params,omitempty"`
	Ports  []*Port      `json:"ports,omitempty"`
	Items  []*Item      `json:"items,omitempty"`
}

// PackageDecl is `package name; items endpackage`.
type PackageDecl struct {
	Span  source.Span `json:"span"`
	Name  Ident       `json:"name"`
	Items []*Item     `json:"items,omitempty"`
}

// Inst is `target #(params) name (conns), name2 (...);`.
type Inst struct {
	Span   source.Span        `json:"span"`
	Target Ident              `json:"target"`
	Params []*ParamAssignment `json:"params,omitempty"`
	Names  []*InstName        `json:"names"`
}

// ParamAssignment is one `#(...)` entry; Name is nil for positional ones.
type ParamAssignment struct {
	Span source.Span `json:"span"`
	Name *Ident      `json:"name,omitempty"`
	Expr *TypeOrExpr `json:"expr"`
}

// TypeOrExpr holds a syntactically ambiguous argument. Exactly one is set.
type TypeOrExpr struct {
	Type *Type `json:"type,omitempty"`
	Expr *Expr `json:"expr,omitempty"`
}

// Span of whichever alternative is set.
func (te *TypeOrExpr) Span() source.Span {
	if te.Type != nil {
		return te.Type.Span
	}
	if te.Expr != nil {
		return te.Expr.Span
	}
	return source.Span{}
}

type InstName struct {
	Span  source.Span `json:"span"`
	Name  Ident       `json:"name"`
	Dims  []*TypeDim  `json:"dims,omitempty"`
	Conns []*PortConn `json:"conns,omitempty"`
}

// PortConnKind distinguishes `.*`, `.name...` and positional connections.
type PortConnKind uint8

const (
	ConnAuto PortConnKind = iota // .*
	ConnNamed
	ConnPositional
)

var portConnKindNames = enumNames{"auto", "named", "positional"}

func (k PortConnKind) String() string               { return portConnKindNames.name(uint8(k)) }
func (k PortConnKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *PortConnKind) UnmarshalText(text []byte) error {
	v, err := portConnKindNames.parse(text, "port connection kind")
	*k = PortConnKind(v)
	return err
}

// PortConnMode is the form of a named connection.
type PortConnMode uint8

const (
	ModeImplicit    PortConnMode = iota // .a
	ModeUnconnected                     // .a()
	ModeConnected                       // .a(expr)
)

var portConnModeNames = enumNames{"implicit", "unconnected", "connected"}

func (m PortConnMode) String() string               { return portConnModeNames.name(uint8(m)) }
func (m PortConnMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }
func (m *PortConnMode) UnmarshalText(text []byte) error {
	v, err := portConnModeNames.parse(text, "port connection mode")
	*m = PortConnMode(v)
	return err
}

type PortConn struct {
	Span source.Span  `json:"span"`
	Kind PortConnKind `json:"kind"`
	Name Ident        `json:"name"`
	Mode PortConnMode `json:"mode"`
	Expr *Expr        `json:"expr,omitempty"`
}

// ProcKind is the keyword of a procedure.
type ProcKind uint8

const (
	ProcInitial ProcKind = iota
	ProcAlways
	ProcAlwaysComb
	ProcAlwaysLatch
	ProcAlwaysFF
	ProcFinal
)

var procKindNames = enumNames{"initial", "always", "always_comb", "always_latch", "always_ff", "final"}

func (k ProcKind) String() string               { return procKindNames.name(uint8(k)) }
func (k ProcKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *ProcKind) UnmarshalText(text []byte) error {
	v, err := procKindNames.parse(text, "procedure kind")
	*k = ProcKind(v)
	return err
}

type Procedure struct {
	Span source.Span `json:"span"`
	Kind ProcKind    `json:"kind"`
	Stmt *Stmt       `json:"stmt"`
}

type GenerateIf struct {
	Span source.Span    `json:"span"`
	Cond *Expr          `json:"cond"`
	Main *GenerateBlock `json:"main"`
	Else *GenerateBlock `json:"else,omitempty"`
}

type GenerateFor struct {
	Span  source.Span    `json:"span"`
	Init  *Stmt          `json:"init"`
	Cond  *Expr          `json:"cond"`
	Step  *Expr          `json:"step"`
	Block *GenerateBlock `json:"block"`
}

type GenerateBlock struct {
	Span  source.Span `json:"span"`
	Label *Ident      `json:"label,omitempty"`
	Items []*Item     `json:"items,omitempty"`
}

type GenvarDecl struct {
	Span source.Span `json:"span"`
	Name Ident       `json:"name"`
	Init *Expr       `json:"init,omitempty"`
}

// ParamKind separates `parameter type T = ...` from value parameters.
type ParamKind uint8

const (
	ParamValue ParamKind = iota
	ParamType
)

var paramKindNames = enumNames{"value", "type"}

func (k ParamKind) String() string               { return paramKindNames.name(uint8(k)) }
func (k ParamKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *ParamKind) UnmarshalText(text []byte) error {
	v, err := paramKindNames.parse(text, "parameter kind")
	*k = ParamKind(v)
	return err
}

// ParamDecl is one `parameter`/`localparam` declaration with its names.
type ParamDecl struct {
	Span       source.Span       `json:"span"`
	Local      bool              `json:"local,omitempty"`
	Kind       ParamKind         `json:"kind"`
	TypeDecls  []*ParamTypeDecl  `json:"type_decls,omitempty"`
	ValueDecls []*ParamValueDecl `json:"value_decls,omitempty"`
}

type ParamTypeDecl struct {
	Span source.Span `json:"span"`
	Name Ident       `json:"name"`
	Type *Type       `json:"type,omitempty"`
}

type ParamValueDecl struct {
	Span source.Span `json:"span"`
	Type *Type       `json:"type"`
	Name Ident       `json:"name"`
	Dims []*TypeDim  `json:"dims,omitempty"`
	Expr *Expr       `json:"expr,omitempty"`
}

type Typedef struct {
	Span source.Span `json:"span"`
	Name Ident       `json:"name"`
	Type *Type       `json:"type"`
	Dims []*TypeDim  `json:"dims,omitempty"`
}

type ContAssign struct {
	Span        source.Span   `json:"span"`
	Assignments []*AssignPair `json:"assignments"`
}

type AssignPair struct {
	Lhs *Expr `json:"lhs"`
	Rhs *Expr `json:"rhs"`
}

type ImportDecl struct {
	Span  source.Span   `json:"span"`
	Items []*ImportItem `json:"items"`
}

// ImportItem is `pkg::name` or `pkg::*` (Name nil).
type ImportItem struct {
	Span source.Span `json:"span"`
	Pkg  Ident       `json:"pkg"`
	Name *Ident      `json:"name,omitempty"`
}

type SubroutineDecl struct {
	Span source.Span `json:"span"`
	Task bool        `json:"task,omitempty"`
	Name Ident       `json:"name"`
}
