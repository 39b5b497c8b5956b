package ast

// Op is an operator token as written in the source.
type Op uint8

const (
	OpNone Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpInc
	OpDec
	OpLogicEq
	OpLogicNeq
	OpCaseEq
	OpCaseNeq
	OpWildcardEq
	OpWildcardNeq
	OpLt
	OpLeq
	OpGt
	OpGeq
	OpLogicAnd
	OpLogicOr
	OpLogicImpl
	OpLogicEquiv
	OpLogicNot
	OpBitNot
	OpBitAnd
	OpBitNand
	OpBitOr
	OpBitNor
	OpBitXor
	OpBitXnor // ~^
	OpBitNxor // ^~
	OpLogicShL
	OpLogicShR
	OpArithShL
	OpArithShR
)

var opNames = enumNames{
	"", "+", "-", "*", "/", "%", "**", "++", "--", "==", "!=", "===", "!==",
	"==?", "!=?", "<", "<=", ">", ">=", "&&", "||", "->", "<->", "!", "~",
	"&", "~&", "|", "~|", "^", "~^", "^~", "<<", ">>", "<<<", ">>>",
}

func (o Op) String() string               { return opNames.name(uint8(o)) }
func (o Op) MarshalText() ([]byte, error) { return []byte(o.String()), nil }
func (o *Op) UnmarshalText(text []byte) error {
	v, err := opNames.parse(text, "operator")
	*o = Op(v)
	return err
}
