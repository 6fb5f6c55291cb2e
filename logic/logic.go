// Package logic implements the nine-valued std_logic domain and conversions
// between logic vectors and integers.
//
// Vectors are stored most significant bit first, the way they appear in a
// VHDL literal. Numeric conversions only accept vectors made of '0' and '1';
// any other element has no numeric value and the conversion reports failure.
package logic

import (
	"strconv"

	"github.com/wippyai/vhpi/abi"
	"github.com/wippyai/vhpi/errors"
	"github.com/wippyai/vhpi/internal/latin1"
)

// Val is one std_logic value. Native codes outside the nine defined values are
// kept as escape values so they survive a round trip.
type Val uint32

const (
	U        Val = Val(abi.LogicU)
	X        Val = Val(abi.LogicX)
	Zero     Val = Val(abi.Logic0)
	One      Val = Val(abi.Logic1)
	Z        Val = Val(abi.LogicZ)
	W        Val = Val(abi.LogicW)
	L        Val = Val(abi.LogicL)
	H        Val = Val(abi.LogicH)
	DontCare Val = Val(abi.LogicDontCare)
)

const escapeBit Val = 1 << 31

const symbols = "UX01ZWLH-"

// FromRaw maps a native logic code to a Val.
func FromRaw(raw uint32) Val {
	if raw <= uint32(abi.LogicDontCare) {
		return Val(raw)
	}
	return Escape(raw)
}

// Escape wraps a native code that is not one of the nine defined values.
// The top bit of raw is not kept.
func Escape(raw uint32) Val {
	return escapeBit | Val(raw)&^escapeBit
}

// IsEscape reports whether v carries an unrecognized native code.
func (v Val) IsEscape() bool {
	return v&escapeBit != 0
}

// Raw returns the native code for v.
func (v Val) Raw() uint32 {
	return uint32(v &^ escapeBit)
}

// IsBit reports whether v is exactly '0' or '1'.
func (v Val) IsBit() bool {
	return v == Zero || v == One
}

func (v Val) String() string {
	if v.IsEscape() || v > DontCare {
		return "?(" + strconv.FormatUint(uint64(v.Raw()), 10) + ")"
	}
	return symbols[v : v+1]
}

// Parse maps a character to a Val. Letters are accepted in either case and
// '-' is don't-care.
func Parse(c rune) (Val, error) {
	switch c {
	case 'U', 'u':
		return U, nil
	case 'X', 'x':
		return X, nil
	case '0':
		return Zero, nil
	case '1':
		return One, nil
	case 'Z', 'z':
		return Z, nil
	case 'W', 'w':
		return W, nil
	case 'L', 'l':
		return L, nil
	case 'H', 'h':
		return H, nil
	case '-':
		return DontCare, nil
	}
	return 0, errors.New(errors.PhaseConvert, errors.KindInvalidInput).
		GoType("logic.Val").
		Value(c).
		Detail("invalid logic character %q", c).
		Build()
}

// Vec is a logic vector, most significant bit first.
type Vec []Val

func (v Vec) String() string {
	b := make([]byte, 0, len(v))
	for _, x := range v {
		if x.IsEscape() || x > DontCare {
			b = append(b, x.String()...)
			continue
		}
		b = append(b, symbols[x])
	}
	return string(b)
}

// IsBinary reports whether every element is '0' or '1'.
func (v Vec) IsBinary() bool {
	for _, x := range v {
		if !x.IsBit() {
			return false
		}
	}
	return true
}

// ParseVec converts a string such as "01XZ" to a vector. Characters that are
// not logic symbols become escape values carrying the character's ISO-8859-1
// byte, or '?' when it has none, so parsing never fails.
func ParseVec(s string) Vec {
	out := make(Vec, 0, len(s))
	for _, c := range s {
		v, err := Parse(c)
		if err != nil {
			v = Escape(uint32(latin1.EncodeRune(c)))
		}
		out = append(out, v)
	}
	return out
}

// MaxWidth is the widest vector the machine-integer conversions handle.
const MaxWidth = 64

// FromUint returns the low width bits of value, most significant first.
// Width is capped at MaxWidth.
func FromUint(value uint64, width int) Vec {
	width = clampWidth(width)
	out := make(Vec, width)
	for i := width - 1; i >= 0; i-- {
		if value&1 != 0 {
			out[i] = One
		} else {
			out[i] = Zero
		}
		value >>= 1
	}
	return out
}

// FromInt returns the two's complement encoding of value in width bits.
func FromInt(value int64, width int) Vec {
	return FromUint(uint64(value), width)
}

func clampWidth(width int) int {
	if width < 0 {
		return 0
	}
	if width > MaxWidth {
		return MaxWidth
	}
	return width
}

// Uint interprets v as an unsigned number. It reports false when v is longer
// than MaxWidth or holds anything but '0' and '1'. An empty vector is 0.
func (v Vec) Uint() (uint64, bool) {
	if len(v) > MaxWidth {
		return 0, false
	}
	var u uint64
	for _, x := range v {
		switch x {
		case Zero:
			u <<= 1
		case One:
			u = u<<1 | 1
		default:
			return 0, false
		}
	}
	return u, true
}

// Int interprets v as a two's complement number under the same rules as Uint.
func (v Vec) Int() (int64, bool) {
	u, ok := v.Uint()
	if !ok {
		return 0, false
	}
	w := len(v)
	if w == 0 || w == MaxWidth || v[0] != One {
		return int64(u), true
	}
	return int64(u) - int64(1)<<w, true
}

// Resize returns v extended or truncated to width, keeping the least
// significant bits. Extension copies the sign bit when signed is set and uses
// '0' otherwise.
func (v Vec) Resize(width int, signed bool) Vec {
	if width < 0 {
		width = 0
	}
	out := make(Vec, width)
	fill := Zero
	if signed && len(v) > 0 {
		fill = v[0]
	}
	for i := range out {
		src := len(v) - width + i
		if src >= 0 {
			out[i] = v[src]
		} else {
			out[i] = fill
		}
	}
	return out
}
