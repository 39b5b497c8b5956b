package hir

import (
	"svlower/internal/ast"
	"svlower/internal/source"
)

// StmtKind enumerates HIR statement kinds.
type StmtKind uint8

const (
	StmtNull StmtKind = iota
	// StmtBlock is a sequential begin/end block.
	StmtBlock
	// StmtAssign covers blocking and nonblocking assignments.
	StmtAssign
	// StmtTimed is a statement behind a delay or event control.
	StmtTimed
	StmtIf
	StmtExpr
	// StmtLoop covers forever, repeat, while, do-while and for.
	StmtLoop
	// StmtInlineGroup is what a declaration statement lowers to.
	StmtInlineGroup
	StmtCase
)

func (k StmtKind) String() string {
	switch k {
	case StmtNull:
		return "Null"
	case StmtBlock:
		return "Block"
	case StmtAssign:
		return "Assign"
	case StmtTimed:
		return "Timed"
	case StmtIf:
		return "If"
	case StmtExpr:
		return "Expr"
	case StmtLoop:
		return "Loop"
	case StmtInlineGroup:
		return "InlineGroup"
	case StmtCase:
		return "Case"
	default:
		return "Unknown"
	}
}

// Stmt is a lowered procedural statement.
type Stmt struct {
	ID    NodeID
	Span  source.Span
	Label *ast.Ident
	Kind  StmtKind
	Data  StmtData
}

// StmtData is implemented by kind-specific payloads.
type StmtData interface {
	stmtData()
}

type NullData struct{}

type BlockData struct {
	Stmts []NodeID
}

// AssignKind separates `=`-style from `<=` assignments.
type AssignKind uint8

const (
	AssignBlock AssignKind = iota
	AssignNonblock
	AssignNonblockDelay
)

var assignKindNames = [...]string{"block", "nonblock", "nonblock_delay"}

func (k AssignKind) String() string {
	if int(k) < len(assignKindNames) {
		return assignKindNames[k]
	}
	return "?"
}

// AssignData: Op only for AssignBlock, Delay only for AssignNonblockDelay.
type AssignData struct {
	Kind  AssignKind
	Op    ast.AssignOp
	Lhs   NodeID
	Rhs   NodeID
	Delay NodeID
}

// TimingKind is the control in front of a timed statement.
type TimingKind uint8

const (
	TimingDelay TimingKind = iota
	TimingImplicitEvent
	TimingExplicitEvent
)

var timingKindNames = [...]string{"delay", "@*", "event"}

func (k TimingKind) String() string {
	if int(k) < len(timingKindNames) {
		return timingKindNames[k]
	}
	return "?"
}

// TimedData: Control is the delay Expr or the EventExpr, NoNodeID for @*.
type TimedData struct {
	Timing  TimingKind
	Control NodeID
	Stmt    NodeID
}

type IfData struct {
	Cond NodeID
	Then NodeID
	Else NodeID
}

type ExprStmtData struct {
	Expr NodeID
}

// LoopKind enumerates the loop statements.
type LoopKind uint8

const (
	LoopForever LoopKind = iota
	LoopRepeat
	LoopWhile
	LoopDo
	LoopFor
)

var loopKindNames = [...]string{"forever", "repeat", "while", "do", "for"}

func (k LoopKind) String() string {
	if int(k) < len(loopKindNames) {
		return loopKindNames[k]
	}
	return "?"
}

// LoopData: Cond is the count for repeat; Init and Step for `for` only.
type LoopData struct {
	Kind LoopKind
	Init NodeID
	Cond NodeID
	Step NodeID
	Body NodeID
}

// InlineGroupData holds the declarations of a declaration statement and
// the rib statements following it hang off.
type InlineGroupData struct {
	Stmts []NodeID
	Rib   NodeID
}

type CaseWay struct {
	Labels []NodeID
	Stmt   NodeID
}

type CaseData struct {
	Kind    ast.CaseKind
	Expr    NodeID
	Ways    []CaseWay
	Default NodeID
}

func (NullData) stmtData()        {}
func (BlockData) stmtData()       {}
func (AssignData) stmtData()      {}
func (TimedData) stmtData()       {}
func (IfData) stmtData()          {}
func (ExprStmtData) stmtData()    {}
func (LoopData) stmtData()        {}
func (InlineGroupData) stmtData() {}
func (CaseData) stmtData()        {}

func (n *Stmt) NodeID() NodeID        { return n.ID }
func (n *Stmt) NodeSpan() source.Span { return n.Span }
func (*Stmt) NodeKind() NodeKind      { return NodeStmt }

// Event is one flattened event leaf; Iff lists the enclosing `iff`
// conditions, outermost first.
type Event struct {
	Span source.Span
	Edge ast.EdgeIdent
	Expr NodeID
	Iff  []NodeID
}

// EventExpr is an `@(...)` expression flattened into its leaves.
type EventExpr struct {
	ID     NodeID
	Span   source.Span
	Events []Event
}

func (n *EventExpr) NodeID() NodeID        { return n.ID }
func (n *EventExpr) NodeSpan() source.Span { return n.Span }
func (*EventExpr) NodeKind() NodeKind      { return NodeEventExpr }
