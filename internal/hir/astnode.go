package hir

import "svlower/internal/ast"

// AstKind is the dispatch key of an AstNode.
type AstKind uint8

const (
	AstInvalid AstKind = iota
	AstModule
	AstPort
	AstType
	AstTypeOrExpr
	AstExpr
	AstInstTarget
	AstInst
	AstTypeParam
	AstValueParam
	AstVarDecl
	AstNetDecl
	AstProc
	AstStmt
	AstEventExpr
	AstGenIf
	AstGenFor
	AstGenvarDecl
	AstTypedef
	AstContAssign
	AstStructMember
	AstPackage
	AstEnumVariant
	AstImport
)

var astKindNames = [...]string{
	"invalid", "module", "port", "type", "type_or_expr", "expr", "inst_target",
	"inst", "type_param", "value_param", "var_decl", "net_decl", "proc", "stmt",
	"event_expr", "gen_if", "gen_for", "genvar_decl", "typedef", "cont_assign",
	"struct_member", "package", "enum_variant", "import",
}

func (k AstKind) String() string {
	if int(k) < len(astKindNames) {
		return astKindNames[k]
	}
	return "unknown"
}

// AstNode is a syntax node together with the context it is lowered in.
// It is comparable and used as the identity key: the same syntax node in a
// different context (for example a declaration name under a different
// declared type) is a different AstNode.
//
// Node is the syntax pointer itself; Decl the owning declaration where the
// construct needs one; Ref an already allocated related identity (the
// list rib of a Port, the instantiation target of an Inst, the type of a VarDecl, the enum type of
// an EnumVariant); Index the position of an enum variant.
type AstNode struct {
	Kind  AstKind
	Node  any
	Decl  any
	Ref   NodeID
	Index int
}

func ModuleNode(m *ast.ModuleDecl) AstNode   { return AstNode{Kind: AstModule, Node: m} }
func PackageNode(p *ast.PackageDecl) AstNode { return AstNode{Kind: AstPackage, Node: p} }
func TypeNode(t *ast.Type) AstNode           { return AstNode{Kind: AstType, Node: t} }
func ExprNode(e *ast.Expr) AstNode           { return AstNode{Kind: AstExpr, Node: e} }
func StmtNode(s *ast.Stmt) AstNode           { return AstNode{Kind: AstStmt, Node: s} }
func ProcNode(p *ast.Procedure) AstNode      { return AstNode{Kind: AstProc, Node: p} }
func GenIfNode(g *ast.GenerateIf) AstNode    { return AstNode{Kind: AstGenIf, Node: g} }
func GenForNode(g *ast.GenerateFor) AstNode  { return AstNode{Kind: AstGenFor, Node: g} }
func GenvarNode(g *ast.GenvarDecl) AstNode   { return AstNode{Kind: AstGenvarDecl, Node: g} }
func TypedefNode(t *ast.Typedef) AstNode     { return AstNode{Kind: AstTypedef, Node: t} }
func ImportNode(i *ast.ImportItem) AstNode   { return AstNode{Kind: AstImport, Node: i} }
func EventNode(e *ast.EventExpr) AstNode     { return AstNode{Kind: AstEventExpr, Node: e} }

// PortNode keys a port by its syntax and the rib in force before the port
// list; the port's type and default are lowered under that rib.
func PortNode(p *ast.Port, listRib NodeID) AstNode {
	return AstNode{Kind: AstPort, Node: p, Ref: listRib}
}

func TypeOrExprNode(te *ast.TypeOrExpr) AstNode {
	return AstNode{Kind: AstTypeOrExpr, Node: te}
}

func InstTargetNode(inst *ast.Inst) AstNode {
	return AstNode{Kind: AstInstTarget, Node: inst}
}

func InstNode(name *ast.InstName, target NodeID) AstNode {
	return AstNode{Kind: AstInst, Node: name, Ref: target}
}

func TypeParamNode(decl *ast.ParamTypeDecl, param *ast.ParamDecl) AstNode {
	return AstNode{Kind: AstTypeParam, Node: decl, Decl: param}
}

func ValueParamNode(decl *ast.ParamValueDecl, param *ast.ParamDecl) AstNode {
	return AstNode{Kind: AstValueParam, Node: decl, Decl: param}
}

func VarDeclNode(name *ast.VarDeclName, decl *ast.VarDecl, ty NodeID) AstNode {
	return AstNode{Kind: AstVarDecl, Node: name, Decl: decl, Ref: ty}
}

func NetDeclNode(name *ast.VarDeclName, decl *ast.NetDecl, ty NodeID) AstNode {
	return AstNode{Kind: AstNetDecl, Node: name, Decl: decl, Ref: ty}
}

func StructMemberNode(name *ast.VarDeclName, member *ast.StructMember, ty NodeID) AstNode {
	return AstNode{Kind: AstStructMember, Node: name, Decl: member, Ref: ty}
}

func ContAssignNode(pair *ast.AssignPair, assign *ast.ContAssign) AstNode {
	return AstNode{Kind: AstContAssign, Node: pair, Decl: assign}
}

func EnumVariantNode(name *ast.EnumName, enum NodeID, index int) AstNode {
	return AstNode{Kind: AstEnumVariant, Node: name, Ref: enum, Index: index}
}
