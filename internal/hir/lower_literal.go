package hir

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"svlower/internal/ast"
	"svlower/internal/diag"
	"svlower/internal/source"
)

// unsizedWidth is the width of a plain decimal number.
const unsizedWidth = 32

var thousand = big.NewRat(1000, 1)

func (cx *Context) lowerLiteral(sp source.Span, lit *ast.Literal) (ExprKind, ExprData, error) {
	switch lit.Kind {
	case ast.LitNumber:
		d, err := cx.lowerNumber(sp, lit)
		return ExprIntConst, d, err
	case ast.LitUnbasedUnsized:
		switch c := strings.ToLower(lit.Char); c {
		case "0", "1", "x", "z":
			return ExprUnsizedConst, UnsizedConstData{Char: c[0]}, nil
		}
		return 0, nil, fail(cx.errorf(diag.LowInvalidLiteral, sp, "`'%s` is not a valid unbased unsized literal", lit.Char))
	case ast.LitBasedInteger:
		d, err := cx.lowerBasedInteger(sp, lit)
		return ExprIntConst, d, err
	case ast.LitTime:
		d, err := cx.lowerTime(sp, lit)
		return ExprTimeConst, d, err
	case ast.LitStr:
		return ExprStringConst, StringConstData{Value: lit.Value}, nil
	}
	return 0, nil, cx.unimp(sp, lit.Kind.String()+" literal")
}

// lowerNumber lowers an unsized decimal: a signed 32-bit constant.
func (cx *Context) lowerNumber(sp source.Span, lit *ast.Literal) (IntConstData, error) {
	if lit.Frac != "" {
		return IntConstData{}, cx.unimp(sp, "real number literal `"+lit.Value+"."+lit.Frac+"`")
	}
	digits := stripUnderscores(lit.Value)
	v, ok := parseDigits(digits, 10)
	if !ok {
		return IntConstData{}, fail(cx.errorf(diag.LowInvalidLiteral, sp, "`%s` is not a valid integer literal", lit.Value))
	}
	return IntConstData{
		Width:       unsizedWidth,
		Value:       v,
		Signed:      true,
		SpecialBits: bitset.New(unsizedWidth),
		XBits:       bitset.New(unsizedWidth),
	}, nil
}

// bitsPerDigit is zero for decimal: decimal digits do not map onto bits,
// so decimal masks stay empty.
func baseInfo(base string) (radix int, bitsPerDigit uint, ok bool) {
	switch strings.ToLower(base) {
	case "h":
		return 16, 4, true
	case "o":
		return 8, 3, true
	case "b":
		return 2, 1, true
	case "d":
		return 10, 0, true
	}
	return 0, 0, false
}

func (cx *Context) lowerBasedInteger(sp source.Span, lit *ast.Literal) (IntConstData, error) {
	radix, bpd, ok := baseInfo(lit.Base)
	if !ok {
		return IntConstData{}, fail(cx.errorf(diag.LowInvalidBase, sp, "`%s` is not a valid integer base", lit.Base).
			WithNote(sp, "valid bases are `b`, `o`, `d`, and `h`"))
	}
	digits := stripUnderscores(lit.Value)
	cleaned := strings.Map(func(r rune) rune {
		if isUnknownDigit(r) {
			return '0'
		}
		return r
	}, digits)
	value, ok := parseDigits(cleaned, radix)
	if !ok {
		return IntConstData{}, fail(cx.errorf(diag.LowInvalidLiteral, sp, "`%s` is not a valid integer literal", lit.Value))
	}
	if bpd == 0 && cleaned != digits && cx.opts.WarnDecimalXZ {
		cx.warnf(diag.LowDecimalUnknownDigits, sp, "x/z digits in a decimal literal are not tracked").Emit()
	}

	needed := uint(value.BitLen())
	width := max(needed, 1)
	if lit.Size != "" {
		size, err := strconv.ParseUint(stripUnderscores(lit.Size), 10, 32)
		if err != nil || size == 0 {
			b := cx.errorf(diag.LowInvalidSize, sp, "`%s` is not a valid integer size", lit.Size)
			if err != nil {
				b.WithNote(sp, err.Error())
			}
			return IntConstData{}, fail(b)
		}
		width = uint(size)
		if needed > width {
			cx.warnf(diag.LowLiteralTooLarge, sp, "`%s` is too large", lit.Value).
				WithNote(sp, fmt.Sprintf("constant is %d bits wide, but the value `%s%s` needs %d bits to not be truncated",
					width, lit.Base, lit.Value, needed)).
				Emit()
			value = truncate(value, width)
		}
	}

	special, xbits := digitMasks(digits, bpd)
	return IntConstData{
		Width:       width,
		Value:       value,
		Signed:      lit.Signed,
		SpecialBits: special,
		XBits:       xbits,
	}, nil
}

// digitMasks marks the bits of unknown digits. The first digit written is
// the most significant, so it covers the highest bit indices.
func digitMasks(digits string, bpd uint) (special, xbits *bitset.BitSet) {
	n := uint(len(digits))
	special = bitset.New(n * bpd)
	xbits = bitset.New(n * bpd)
	if bpd == 0 {
		return special, xbits
	}
	for i, r := range digits {
		if !isUnknownDigit(r) {
			continue
		}
		lo := (n - 1 - uint(i)) * bpd
		for b := lo; b < lo+bpd; b++ {
			special.Set(b)
			if r == 'x' || r == 'X' {
				xbits.Set(b)
			}
		}
	}
	return special, xbits
}

// lowerTime computes the exact value of a time literal in seconds.
func (cx *Context) lowerTime(sp source.Span, lit *ast.Literal) (TimeConstData, error) {
	intPart := stripUnderscores(lit.Value)
	frac := stripUnderscores(lit.Frac)
	num, ok := parseDigits(intPart+frac, 10)
	if !ok || !isDecimal(intPart) || !isDecimal(frac) {
		text := lit.Value
		if lit.Frac != "" {
			text += "." + lit.Frac
		}
		return TimeConstData{}, fail(cx.errorf(diag.LowInvalidTimeLiteral, sp, "`%s` is not a number literal", text).
			WithNote(sp, "expected decimal digits"))
	}
	den := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(len(frac))), nil)
	value := new(big.Rat).SetFrac(num, den)
	for j := 0; j < int(lit.Unit); j++ {
		value.Quo(value, thousand)
	}
	return TimeConstData{Value: value}, nil
}

func isUnknownDigit(r rune) bool {
	switch r {
	case 'x', 'X', 'z', 'Z', '?':
		return true
	}
	return false
}

func isDecimal(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func stripUnderscores(s string) string {
	return strings.ReplaceAll(s, "_", "")
}

// parseDigits parses an unsigned magnitude; signs are not part of a literal.
func parseDigits(s string, radix int) (*big.Int, bool) {
	if s == "" || s[0] == '+' || s[0] == '-' {
		return nil, false
	}
	return new(big.Int).SetString(s, radix)
}

// truncate keeps the low width bits of v.
func truncate(v *big.Int, width uint) *big.Int {
	mask := new(big.Int).Lsh(big.NewInt(1), width)
	mask.Sub(mask, big.NewInt(1))
	return new(big.Int).And(v, mask)
}
