package ast

import "svlower/internal/source"

// StmtKind enumerates procedural statements.
type StmtKind uint8

const (
	StmtNull StmtKind = iota
	StmtSeqBlock
	StmtParBlock
	StmtBlockingAssign
	StmtNonblockingAssign
	StmtTimed
	StmtIf
	StmtExpr
	StmtForever
	StmtRepeat
	StmtWhile
	StmtDo
	StmtFor
	StmtForeach
	StmtVarDecl
	StmtGenvarDecl
	StmtCase
	StmtAssertion
	StmtReturn
	StmtBreak
	StmtContinue
	StmtWait
	StmtDisable
)

var stmtKindNames = enumNames{
	"null", "seq_block", "par_block", "blocking_assign", "nonblocking_assign",
	"timed", "if", "expr", "forever", "repeat", "while", "do", "for", "foreach",
	"var_decl", "genvar_decl", "case", "assertion", "return", "break",
	"continue", "wait", "disable",
}

var stmtKindDesc = []string{
	"null statement", "sequential block", "parallel block", "blocking assignment",
	"nonblocking assignment", "timed statement", "if statement", "expression statement",
	"forever loop", "repeat loop", "while loop", "do-while loop", "for loop",
	"foreach loop", "variable declaration", "genvar declaration", "case statement",
	"assertion", "return statement", "break statement", "continue statement",
	"wait statement", "disable statement",
}

func (k StmtKind) String() string { return stmtKindNames.name(uint8(k)) }

func (k StmtKind) Desc() string {
	if int(k) < len(stmtKindDesc) {
		return stmtKindDesc[k]
	}
	return k.String()
}

func (k StmtKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *StmtKind) UnmarshalText(text []byte) error {
	v, err := stmtKindNames.parse(text, "statement kind")
	*k = StmtKind(v)
	return err
}

// AssignOp is the operator of a blocking assignment.
type AssignOp uint8

const (
	AssignIdentity AssignOp = iota // =
	AssignAdd                      // +=
	AssignSub                      // -=
	AssignMul                      // *=
	AssignDiv                      // /=
	AssignMod                      // %=
	AssignBitAnd                   // &=
	AssignBitOr                    // |=
	AssignBitXor                   // ^=
	AssignLogicShL                 // <<=
	AssignLogicShR                 // >>=
	AssignArithShL                 // <<<=
	AssignArithShR                 // >>>=
)

var assignOpNames = enumNames{"=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=", "<<<=", ">>>="}

func (o AssignOp) String() string               { return assignOpNames.name(uint8(o)) }
func (o AssignOp) MarshalText() ([]byte, error) { return []byte(o.String()), nil }
func (o *AssignOp) UnmarshalText(text []byte) error {
	v, err := assignOpNames.parse(text, "assignment operator")
	*o = AssignOp(v)
	return err
}

// CaseKind is the case keyword.
type CaseKind uint8

const (
	CaseNormal CaseKind = iota // case
	CaseDontCareZ              // casez
	CaseDontCareXZ             // casex
)

var caseKindNames = enumNames{"case", "casez", "casex"}

func (k CaseKind) String() string               { return caseKindNames.name(uint8(k)) }
func (k CaseKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *CaseKind) UnmarshalText(text []byte) error {
	v, err := caseKindNames.parse(text, "case kind")
	*k = CaseKind(v)
	return err
}

// CaseMode distinguishes `case (x)` from `case (x) inside` and `matches`.
type CaseMode uint8

const (
	CaseModeNormal CaseMode = iota
	CaseModeInside
	CaseModePattern
)

var caseModeNames = enumNames{"normal", "inside", "pattern"}

func (m CaseMode) String() string               { return caseModeNames.name(uint8(m)) }
func (m CaseMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }
func (m *CaseMode) UnmarshalText(text []byte) error {
	v, err := caseModeNames.parse(text, "case mode")
	*m = CaseMode(v)
	return err
}

// CaseItem is one arm; Default arms carry no expressions.
type CaseItem struct {
	Span    source.Span `json:"span"`
	Default bool        `json:"default,omitempty"`
	Exprs   []*Expr     `json:"exprs,omitempty"`
	Stmt    *Stmt       `json:"stmt"`
}

// TimingKind enumerates timing controls.
type TimingKind uint8

const (
	TimingDelay TimingKind = iota // #expr
	TimingEvent                   // @(...) or @*
	TimingCycle                   // ##expr
)

var timingKindNames = enumNames{"delay", "event", "cycle"}

func (k TimingKind) String() string               { return timingKindNames.name(uint8(k)) }
func (k TimingKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *TimingKind) UnmarshalText(text []byte) error {
	v, err := timingKindNames.parse(text, "timing kind")
	*k = TimingKind(v)
	return err
}

// TimingControl precedes a timed statement. Implicit marks `@*`.
type TimingControl struct {
	Span     source.Span `json:"span"`
	Kind     TimingKind  `json:"kind"`
	Delay    *Expr       `json:"delay,omitempty"`
	Implicit bool        `json:"implicit,omitempty"`
	Event    *EventExpr  `json:"event,omitempty"`
}

// Stmt is a tagged procedural statement.
//
//	SeqBlock, ParBlock     Stmts
//	BlockingAssign         Lhs AssignOp Rhs
//	NonblockingAssign      Lhs <= #Delay Rhs
//	Timed                  Timing Body
//	If                     Cond Then Else
//	Expr                   Expr
//	Forever                Body
//	Repeat, While, Do      Cond Body (Repeat: Cond is the count)
//	For                    Init Cond Step Body
//	VarDecl                Decl
//	GenvarDecl             Genvars
//	Case                   CaseKind CaseMode Expr Items
type Stmt struct {
	Kind  StmtKind    `json:"kind"`
	Span  source.Span `json:"span"`
	Label *Ident      `json:"label,omitempty"`

	Stmts    []*Stmt        `json:"stmts,omitempty"`
	Lhs      *Expr          `json:"lhs,omitempty"`
	Rhs      *Expr          `json:"rhs,omitempty"`
	AssignOp AssignOp       `json:"assign_op,omitempty"`
	Delay    *Expr          `json:"delay,omitempty"`
	Timing   *TimingControl `json:"timing,omitempty"`
	Body     *Stmt          `json:"body,omitempty"`
	Cond     *Expr          `json:"cond,omitempty"`
	Then     *Stmt          `json:"then,omitempty"`
	Else     *Stmt          `json:"else,omitempty"`
	Expr     *Expr          `json:"expr,omitempty"`
	Init     *Stmt          `json:"init,omitempty"`
	Step     *Expr          `json:"step,omitempty"`
	Decl     *VarDecl       `json:"decl,omitempty"`
	Genvars  []*GenvarDecl  `json:"genvars,omitempty"`
	CaseKind CaseKind       `json:"case_kind,omitempty"`
	CaseMode CaseMode       `json:"case_mode,omitempty"`
	Items    []*CaseItem    `json:"items,omitempty"`
}

// DescFull describes the statement for diagnostics.
func (s *Stmt) DescFull() string {
	return s.Kind.Desc()
}

// EdgeIdent is the edge keyword of an event leaf.
type EdgeIdent uint8

const (
	EdgeImplicit EdgeIdent = iota // plain expression, any change
	EdgeEdge
	EdgePosedge
	EdgeNegedge
)

var edgeIdentNames = enumNames{"", "edge", "posedge", "negedge"}

func (e EdgeIdent) String() string               { return edgeIdentNames.name(uint8(e)) }
func (e EdgeIdent) MarshalText() ([]byte, error) { return []byte(e.String()), nil }
func (e *EdgeIdent) UnmarshalText(text []byte) error {
	v, err := edgeIdentNames.parse(text, "edge")
	*e = EdgeIdent(v)
	return err
}

// EventKind enumerates event expression shapes.
type EventKind uint8

const (
	EventEdge EventKind = iota // Edge Value
	EventIff                   // Inner iff Cond
	EventOr                    // Lhs or Rhs
)

var eventKindNames = enumNames{"edge", "iff", "or"}

func (k EventKind) String() string               { return eventKindNames.name(uint8(k)) }
func (k EventKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *EventKind) UnmarshalText(text []byte) error {
	v, err := eventKindNames.parse(text, "event kind")
	*k = EventKind(v)
	return err
}

// EventExpr is the tree inside `@(...)`.
type EventExpr struct {
	Kind  EventKind   `json:"kind"`
	Span  source.Span `json:"span"`
	Edge  EdgeIdent   `json:"edge,omitempty"`
	Value *Expr       `json:"value,omitempty"`
	Inner *EventExpr  `json:"inner,omitempty"`
	Cond  *Expr       `json:"cond,omitempty"`
	Lhs   *EventExpr  `json:"lhs,omitempty"`
	Rhs   *EventExpr  `json:"rhs,omitempty"`
}
