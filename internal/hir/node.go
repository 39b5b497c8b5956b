package hir

import (
	"svlower/internal/ast"
	"svlower/internal/source"
)

// NodeKind enumerates HIR node kinds.
type NodeKind uint8

const (
	NodeModule NodeKind = iota + 1
	NodePort
	NodeType
	NodeExpr
	NodeStmt
	NodeEventExpr
	NodeGen
	NodeGenvarDecl
	NodeTypedef
	NodeAssign
	NodeVarDecl
	NodeTypeParam
	NodeValueParam
	NodeInstTarget
	NodeInst
	NodePackage
	NodeEnumVariant
	NodeProc
	// NodeInert stands in for constructs accepted with a warning and not
	// lowered further (import items).
	NodeInert
)

var nodeKindNames = [...]string{
	"", "Module", "Port", "Type", "Expr", "Stmt", "EventExpr", "Gen", "GenvarDecl",
	"Typedef", "Assign", "VarDecl", "TypeParam", "ValueParam", "InstTarget", "Inst",
	"Package", "EnumVariant", "Proc", "Inert",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) && k != 0 {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// Node is implemented by every HIR node.
type Node interface {
	NodeID() NodeID
	NodeSpan() source.Span
	NodeKind() NodeKind
}

// ModuleBlock collects the items of a module body or generate block. All
// items share one rib chain regardless of collection.
type ModuleBlock struct {
	Insts   []NodeID
	Decls   []NodeID
	Procs   []NodeID
	Gens    []NodeID
	Params  []NodeID
	Assigns []NodeID
}

// Module is a lowered `module`.
type Module struct {
	ID     NodeID
	Span   source.Span
	Name   ast.Ident
	Ports  []NodeID
	Params []NodeID
	Block  ModuleBlock
	// NonAnsi is set when the port list uses the non-ANSI style.
	NonAnsi bool
}

// Package is a lowered `package`.
type Package struct {
	ID      NodeID
	Span    source.Span
	Name    ast.Ident
	Names   []PackageName // typedefs visible through the package scope
	Decls   []NodeID
	Params  []NodeID
	LastRib NodeID
}

type PackageName struct {
	Name ast.Ident
	ID   NodeID
}

// Dim is a lowered dimension: Lhs:Rhs for ranges, Lhs alone for `[N]`.
type Dim struct {
	Span source.Span
	Lhs  NodeID
	Rhs  NodeID
}

// Port is the external view of one module port.
type Port struct {
	ID      NodeID
	Span    source.Span
	Name    ast.Ident
	Dir     ast.PortDir
	Kind    ast.PortKind
	Type    NodeID
	Dims    []Dim // unpacked
	Default NodeID
}

// VarKind says where a VarDecl came from.
type VarKind uint8

const (
	VarVariable VarKind = iota
	VarNet
	VarStructMember
)

var varKindNames = [...]string{"var", "net", "member"}

func (k VarKind) String() string {
	if int(k) < len(varKindNames) {
		return varKindNames[k]
	}
	return "unknown"
}

// VarDecl is one declared variable, net or struct member.
type VarDecl struct {
	ID      NodeID
	Span    source.Span
	Name    ast.Ident
	Kind    VarKind
	NetType ast.NetType // VarNet only
	Const   bool
	Type    NodeID
	Dims    []Dim // unpacked
	Init    NodeID
}

type TypeParam struct {
	ID      NodeID
	Span    source.Span
	Name    ast.Ident
	Local   bool
	Default NodeID
}

type ValueParam struct {
	ID      NodeID
	Span    source.Span
	Name    ast.Ident
	Local   bool
	Type    NodeID
	Default NodeID
}

type PosParam struct {
	Span  source.Span
	Value NodeID
}

type NamedParam struct {
	Span  source.Span
	Name  ast.Ident
	Value NodeID
}

// InstTarget is the `target #(...)` part shared by the instances of one
// instantiation.
type InstTarget struct {
	ID          NodeID
	Span        source.Span
	Name        ast.Ident
	PosParams   []PosParam
	NamedParams []NamedParam
}

type PosPort struct {
	Span  source.Span
	Value NodeID
}

// NamedPort is `.a(e)`, `.a()` or `.a`. Value is NoNodeID unless Mode is
// ModeConnected; the implicit form is resolved by name downstream.
type NamedPort struct {
	Span  source.Span
	Name  ast.Ident
	Mode  ast.PortConnMode
	Value NodeID
}

type Inst struct {
	ID         NodeID
	Span       source.Span
	Name       ast.Ident
	Target     NodeID
	PosPorts   []PosPort
	NamedPorts []NamedPort
	Wildcard   bool
}

type Proc struct {
	ID   NodeID
	Span source.Span
	Kind ast.ProcKind
	Stmt NodeID
}

// GenKind separates generate-if from generate-for.
type GenKind uint8

const (
	GenIf GenKind = iota
	GenFor
)

// Gen is a lowered generate construct.
//
//	GenIf:  Cond, Main, Else (optional)
//	GenFor: Init (genvar chain), Cond, Step, Main (the body)
type Gen struct {
	ID   NodeID
	Span source.Span
	Kind GenKind
	Init []NodeID
	Cond NodeID
	Step NodeID
	Main ModuleBlock
	Else *ModuleBlock
}

type GenvarDecl struct {
	ID   NodeID
	Span source.Span
	Name ast.Ident
	Init NodeID
}

type Typedef struct {
	ID   NodeID
	Span source.Span
	Name ast.Ident
	Type NodeID
}

// Assign is one `lhs = rhs` of a continuous assignment.
type Assign struct {
	ID   NodeID
	Span source.Span
	Lhs  NodeID
	Rhs  NodeID
}

type EnumVariant struct {
	ID    NodeID
	Span  source.Span
	Name  ast.Ident
	Enum  NodeID
	Index int
	Value NodeID
}

// Inert marks a construct that was accepted with a warning.
type Inert struct {
	ID     NodeID
	Span   source.Span
	Reason string
}

func (n *Module) NodeID() NodeID      { return n.ID }
func (n *Package) NodeID() NodeID     { return n.ID }
func (n *Port) NodeID() NodeID        { return n.ID }
func (n *VarDecl) NodeID() NodeID     { return n.ID }
func (n *TypeParam) NodeID() NodeID   { return n.ID }
func (n *ValueParam) NodeID() NodeID  { return n.ID }
func (n *InstTarget) NodeID() NodeID  { return n.ID }
func (n *Inst) NodeID() NodeID        { return n.ID }
func (n *Proc) NodeID() NodeID        { return n.ID }
func (n *Gen) NodeID() NodeID         { return n.ID }
func (n *GenvarDecl) NodeID() NodeID  { return n.ID }
func (n *Typedef) NodeID() NodeID     { return n.ID }
func (n *Assign) NodeID() NodeID      { return n.ID }
func (n *EnumVariant) NodeID() NodeID { return n.ID }
func (n *Inert) NodeID() NodeID       { return n.ID }

func (n *Module) NodeSpan() source.Span      { return n.Span }
func (n *Package) NodeSpan() source.Span     { return n.Span }
func (n *Port) NodeSpan() source.Span        { return n.Span }
func (n *VarDecl) NodeSpan() source.Span     { return n.Span }
func (n *TypeParam) NodeSpan() source.Span   { return n.Span }
func (n *ValueParam) NodeSpan() source.Span  { return n.Span }
func (n *InstTarget) NodeSpan() source.Span  { return n.Span }
func (n *Inst) NodeSpan() source.Span        { return n.Span }
func (n *Proc) NodeSpan() source.Span        { return n.Span }
func (n *Gen) NodeSpan() source.Span         { return n.Span }
func (n *GenvarDecl) NodeSpan() source.Span  { return n.Span }
func (n *Typedef) NodeSpan() source.Span     { return n.Span }
func (n *Assign) NodeSpan() source.Span      { return n.Span }
func (n *EnumVariant) NodeSpan() source.Span { return n.Span }
func (n *Inert) NodeSpan() source.Span       { return n.Span }

func (*Module) NodeKind() NodeKind      { return NodeModule }
func (*Package) NodeKind() NodeKind     { return NodePackage }
func (*Port) NodeKind() NodeKind        { return NodePort }
func (*VarDecl) NodeKind() NodeKind     { return NodeVarDecl }
func (*TypeParam) NodeKind() NodeKind   { return NodeTypeParam }
func (*ValueParam) NodeKind() NodeKind  { return NodeValueParam }
func (*InstTarget) NodeKind() NodeKind  { return NodeInstTarget }
func (*Inst) NodeKind() NodeKind        { return NodeInst }
func (*Proc) NodeKind() NodeKind        { return NodeProc }
func (*Gen) NodeKind() NodeKind         { return NodeGen }
func (*GenvarDecl) NodeKind() NodeKind  { return NodeGenvarDecl }
func (*Typedef) NodeKind() NodeKind     { return NodeTypedef }
func (*Assign) NodeKind() NodeKind      { return NodeAssign }
func (*EnumVariant) NodeKind() NodeKind { return NodeEnumVariant }
func (*Inert) NodeKind() NodeKind       { return NodeInert }
