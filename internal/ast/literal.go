package ast

// LitKind enumerates literal tokens.
type LitKind uint8

const (
	LitNumber         LitKind = iota // 42, 1.5
	LitUnbasedUnsized                // '0 '1 'x 'z
	LitBasedInteger                  // 8'shFF
	LitTime                          // 1.5ns
	LitStr                           // "text"
	LitReal                          // 1e3, not lowered
)

var litKindNames = enumNames{"number", "unbased_unsized", "based_integer", "time", "str", "real"}

func (k LitKind) String() string               { return litKindNames.name(uint8(k)) }
func (k LitKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *LitKind) UnmarshalText(text []byte) error {
	v, err := litKindNames.parse(text, "literal kind")
	*k = LitKind(v)
	return err
}

// TimeUnit is the suffix of a time literal.
type TimeUnit uint8

const (
	UnitSecond TimeUnit = iota
	UnitMilliSecond
	UnitMicroSecond
	UnitNanoSecond
	UnitPicoSecond
	UnitFemtoSecond
)

var timeUnitNames = enumNames{"s", "ms", "us", "ns", "ps", "fs"}

func (u TimeUnit) String() string               { return timeUnitNames.name(uint8(u)) }
func (u TimeUnit) MarshalText() ([]byte, error) { return []byte(u.String()), nil }
func (u *TimeUnit) UnmarshalText(text []byte) error {
	v, err := timeUnitNames.parse(text, "time unit")
	*u = TimeUnit(v)
	return err
}

// Literal keeps the token text as written; interpretation happens during
// lowering.
//
//	Number          Value [. Frac]
//	UnbasedUnsized  Char ('0', '1', 'x', 'z')
//	BasedInteger    [Size] ' [s] Base Value
//	Time            Value [. Frac] Unit
//	Str             Value without quotes
type Literal struct {
	Kind   LitKind  `json:"kind"`
	Value  string   `json:"value,omitempty"`
	Frac   string   `json:"frac,omitempty"`
	Size   string   `json:"size,omitempty"`
	Signed bool     `json:"signed,omitempty"`
	Base   string   `json:"base,omitempty"`
	Char   string   `json:"char,omitempty"`
	Unit   TimeUnit `json:"unit,omitempty"`
}
