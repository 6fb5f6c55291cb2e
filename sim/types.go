package sim

import (
	"math"
	"strconv"
	"strings"

	"github.com/wippyai/vhpi/abi"
	"github.com/wippyai/vhpi/errors"
	"github.com/wippyai/vhpi/internal/latin1"
	"github.com/wippyai/vhpi/logic"
	"github.com/wippyai/vhpi/simtime"
)

type typeKind uint8

const (
	enumType typeKind = iota + 1
	integerType
	realType
	physicalType
	arrayType
)

// typeDecl is an elaborated VHDL type. Scalar values of every kind are held
// as int64: enum positions, integers, femtoseconds, and IEEE bits for reals.
type typeDecl struct {
	name     string
	kind     typeKind
	literals []string
	logic    bool // std_ulogic and its subtypes
	bit      bool
	char     bool
	time     bool
	low      int64
	high     int64
	elem     *typeDecl
	obj      *object
}

func (t *typeDecl) classKind() abi.ClassKind {
	switch t.kind {
	case enumType:
		return abi.EnumTypeDeclK
	case integerType:
		return abi.IntTypeDeclK
	case realType:
		return abi.FloatTypeDeclK
	case physicalType:
		return abi.PhysTypeDeclK
	}
	return abi.ArrayTypeDeclK
}

func (t *typeDecl) scalar() bool {
	return t.kind != arrayType
}

// left is the default initial value of a scalar of type t, T'LEFT in VHDL.
func (t *typeDecl) left() int64 {
	switch t.kind {
	case enumType:
		return 0
	case realType:
		return int64(math.Float64bits(-math.MaxFloat64))
	}
	return t.low
}

// singleChar reports whether every literal of an enum type is one character,
// so arrays of it are written as strings.
func (t *typeDecl) singleChar() bool {
	return t.kind == enumType && (t.logic || t.bit || t.char)
}

func (t *typeDecl) nativeFormat() abi.Format {
	switch t.kind {
	case enumType:
		switch {
		case t.logic:
			return abi.LogicVal
		case t.char:
			return abi.CharVal
		case len(t.literals) <= 256:
			return abi.SmallEnumVal
		}
		return abi.EnumVal
	case integerType:
		if t.low >= math.MinInt32 && t.high <= math.MaxInt32 {
			return abi.IntVal
		}
		return abi.LongIntVal
	case realType:
		return abi.RealVal
	case physicalType:
		if t.time {
			return abi.TimeVal
		}
		return abi.PhysVal
	}

	switch e := t.elem; e.nativeFormat() {
	case abi.CharVal:
		return abi.StrVal
	case abi.LogicVal:
		return abi.LogicVecVal
	case abi.SmallEnumVal:
		return abi.SmallEnumVecVal
	case abi.EnumVal:
		return abi.EnumVecVal
	case abi.IntVal:
		return abi.IntVecVal
	case abi.LongIntVal:
		return abi.LongIntVecVal
	case abi.RealVal:
		return abi.RealVecVal
	case abi.TimeVal:
		return abi.TimeVecVal
	}
	return abi.PhysVecVal
}

// logicCode maps an enum position to a native logic code. Bit values map to
// '0' and '1'.
func (t *typeDecl) logicCode(pos int64) (uint8, bool) {
	switch {
	case t.logic:
		return uint8(pos), true
	case t.bit:
		return abi.Logic0 + uint8(pos), true
	}
	return 0, false
}

// fromLogicCode is the inverse of logicCode.
func (t *typeDecl) fromLogicCode(code uint32) (int64, bool) {
	switch {
	case t.logic:
		if code > uint32(abi.LogicDontCare) {
			return 0, false
		}
		return int64(code), true
	case t.bit:
		if code != uint32(abi.Logic0) && code != uint32(abi.Logic1) {
			return 0, false
		}
		return int64(code - uint32(abi.Logic0)), true
	}
	return 0, false
}

func (t *typeDecl) inRange(v int64) bool {
	switch t.kind {
	case enumType:
		return v >= 0 && v < int64(len(t.literals))
	case integerType, physicalType:
		return v >= t.low && v <= t.high
	}
	return true
}

// parseScalar reads a literal of scalar type t.
func (t *typeDecl) parseScalar(s string) (int64, error) {
	s = strings.TrimSpace(s)
	switch t.kind {
	case enumType:
		return t.parseLiteral(s)
	case integerType:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, errors.ParseFailed(t.name+" literal", err)
		}
		if !t.inRange(v) {
			return 0, errors.Overflow(errors.PhaseParse, v, t.name)
		}
		return v, nil
	case realType:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errors.ParseFailed(t.name+" literal", err)
		}
		return int64(math.Float64bits(f)), nil
	case physicalType:
		tm, err := simtime.Parse(s)
		if err != nil {
			return 0, err
		}
		return tm.Int64(), nil
	}
	return 0, errors.InvalidInput(errors.PhaseParse, t.name+" is not a scalar type")
}

func (t *typeDecl) parseLiteral(s string) (int64, error) {
	s = unquote(s)
	if t.logic {
		if r := []rune(s); len(r) == 1 {
			v, err := logic.Parse(r[0])
			if err != nil {
				return 0, err
			}
			return int64(v.Raw()), nil
		}
	}
	if t.char {
		if b := latin1.Encode(s); len(b) == 1 {
			return int64(b[0]), nil
		}
	}
	for i, lit := range t.literals {
		if lit == s {
			return int64(i), nil
		}
	}
	for i, lit := range t.literals {
		if len(lit) > 1 && strings.EqualFold(lit, s) {
			return int64(i), nil
		}
	}
	return 0, errors.NotFound(errors.PhaseParse, t.name+" literal", s)
}

// formatScalar renders one scalar the way it is written in VHDL source,
// without quotes.
func (t *typeDecl) formatScalar(v int64) string {
	switch t.kind {
	case enumType:
		if v >= 0 && v < int64(len(t.literals)) {
			return t.literals[v]
		}
		return "?"
	case realType:
		return strconv.FormatFloat(math.Float64frombits(uint64(v)), 'g', -1, 64)
	case physicalType:
		return simtime.FromInt64(v).String()
	}
	return strconv.FormatInt(v, 10)
}

// parseValue reads an initial or stimulus value for an object of type t with
// n elements. Arrays of character-like enums are written as strings, other
// arrays as comma separated lists.
func (t *typeDecl) parseValue(s string, n int) ([]int64, error) {
	if t.scalar() {
		v, err := t.parseScalar(s)
		if err != nil {
			return nil, err
		}
		return []int64{v}, nil
	}

	if t.elem.char {
		b := latin1.Encode(unquote(s))
		if len(b) != n {
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Value(s).
				Detail("%s value has %d characters, want %d", t.name, len(b), n).
				Build()
		}
		out := make([]int64, n)
		for i, c := range b {
			out[i] = int64(c)
		}
		return out, nil
	}

	var parts []string
	if t.elem.singleChar() {
		for _, r := range unquote(strings.TrimSpace(s)) {
			if r == '_' {
				continue
			}
			parts = append(parts, string(r))
		}
	} else {
		for p := range strings.SplitSeq(strings.Trim(strings.TrimSpace(s), "()"), ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
	}
	if len(parts) != n {
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Value(s).
			Detail("%s value has %d elements, want %d", t.name, len(parts), n).
			Build()
	}

	out := make([]int64, n)
	for i, p := range parts {
		v, err := t.elem.parseScalar(p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// formatValue renders a whole value for display.
func (t *typeDecl) formatValue(vals []int64) string {
	if t.scalar() {
		if len(vals) == 0 {
			return "?"
		}
		return t.formatScalar(vals[0])
	}
	var b strings.Builder
	if t.elem.singleChar() {
		for _, v := range vals {
			b.WriteString(t.elem.formatScalar(v))
		}
		return b.String()
	}
	b.WriteByte('(')
	for i, v := range vals {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.elem.formatScalar(v))
	}
	b.WriteByte(')')
	return b.String()
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// indexRange is the index constraint of an array object.
type indexRange struct {
	left  int64
	right int64
	up    bool
}

func (r indexRange) length() int {
	n := r.right - r.left
	if !r.up {
		n = -n
	}
	if n < 0 {
		return 0
	}
	return int(n + 1)
}

func (r indexRange) String() string {
	dir := " downto "
	if r.up {
		dir = " to "
	}
	return strconv.FormatInt(r.left, 10) + dir + strconv.FormatInt(r.right, 10)
}

// parseRange reads "7 downto 0" or "0 to 3".
func parseRange(s string) (indexRange, error) {
	f := strings.Fields(strings.ToLower(s))
	if len(f) != 3 || (f[1] != "to" && f[1] != "downto") {
		return indexRange{}, errors.InvalidInput(errors.PhaseParse, "range "+strconv.Quote(s)+" is not \"L to R\" or \"L downto R\"")
	}
	left, err := strconv.ParseInt(f[0], 10, 32)
	if err != nil {
		return indexRange{}, errors.ParseFailed("range bound", err)
	}
	right, err := strconv.ParseInt(f[2], 10, 32)
	if err != nil {
		return indexRange{}, errors.ParseFailed("range bound", err)
	}
	return indexRange{left: left, right: right, up: f[1] == "to"}, nil
}

var stdLogicLiterals = []string{"U", "X", "0", "1", "Z", "W", "L", "H", "-"}

// builtinTypes returns fresh declarations of the predefined and IEEE types
// a design may refer to.
func builtinTypes() map[string]*typeDecl {
	chars := make([]string, 256)
	for i := range chars {
		chars[i] = latin1.Decode([]byte{byte(i)})
	}

	stdULogic := &typeDecl{name: "STD_ULOGIC", kind: enumType, literals: stdLogicLiterals, logic: true}
	stdLogic := &typeDecl{name: "STD_LOGIC", kind: enumType, literals: stdLogicLiterals, logic: true}
	bit := &typeDecl{name: "BIT", kind: enumType, literals: []string{"0", "1"}, bit: true}
	boolean := &typeDecl{name: "BOOLEAN", kind: enumType, literals: []string{"FALSE", "TRUE"}}
	character := &typeDecl{name: "CHARACTER", kind: enumType, literals: chars, char: true}
	integer := &typeDecl{name: "INTEGER", kind: integerType, low: math.MinInt32, high: math.MaxInt32}
	natural := &typeDecl{name: "NATURAL", kind: integerType, low: 0, high: math.MaxInt32}
	real := &typeDecl{name: "REAL", kind: realType}
	tm := &typeDecl{name: "TIME", kind: physicalType, time: true, low: -math.MaxInt64, high: math.MaxInt64}

	all := []*typeDecl{
		stdULogic, stdLogic, bit, boolean, character, integer, natural, real, tm,
		{name: "STD_ULOGIC_VECTOR", kind: arrayType, elem: stdULogic},
		{name: "STD_LOGIC_VECTOR", kind: arrayType, elem: stdLogic},
		{name: "BIT_VECTOR", kind: arrayType, elem: bit},
		{name: "BOOLEAN_VECTOR", kind: arrayType, elem: boolean},
		{name: "STRING", kind: arrayType, elem: character},
		{name: "INTEGER_VECTOR", kind: arrayType, elem: integer},
		{name: "REAL_VECTOR", kind: arrayType, elem: real},
		{name: "TIME_VECTOR", kind: arrayType, elem: tm},
	}
	out := make(map[string]*typeDecl, len(all))
	for _, t := range all {
		out[t.name] = t
	}
	return out
}
