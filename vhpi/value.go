package vhpi

import (
	"strconv"
	"strings"

	"github.com/wippyai/vhpi/abi"
	"github.com/wippyai/vhpi/logic"
	"github.com/wippyai/vhpi/simtime"
)

// Value is a decoded native value. The concrete type determines the format
// used on the wire; Unknown stands for a format this package cannot decode.
type Value interface {
	Format() abi.Format
	String() string
	value()
}

type (
	// BinStr is a value in binary string form, e.g. "0101".
	BinStr string
	// OctStr is a value in octal string form.
	OctStr string
	// HexStr is a value in hexadecimal string form.
	HexStr string
	// DecStr is a value in decimal string form.
	DecStr string
	// Str is a character string value.
	Str string
	// Char is a single ISO-8859-1 character.
	Char rune

	Int          int32
	IntVec       []int32
	LongInt      int64
	LongIntVec   []int64
	Real         float64
	RealVec      []float64
	Enum         uint32
	EnumVec      []uint32
	SmallEnum    uint8
	SmallEnumVec []uint8
	Logic        logic.Val
	LogicVec     logic.Vec
	Time         simtime.Time
	TimeVec      []simtime.Time
	Phys         simtime.Physical
	PhysVec      []simtime.Physical
	SmallPhys    int32
	SmallPhysVec []int32
)

// Unknown is returned for a native format with no decoder.
type Unknown struct {
	Raw abi.Format
}

func (BinStr) Format() abi.Format       { return abi.BinStrVal }
func (OctStr) Format() abi.Format       { return abi.OctStrVal }
func (HexStr) Format() abi.Format       { return abi.HexStrVal }
func (DecStr) Format() abi.Format       { return abi.DecStrVal }
func (Str) Format() abi.Format          { return abi.StrVal }
func (Char) Format() abi.Format         { return abi.CharVal }
func (Int) Format() abi.Format          { return abi.IntVal }
func (IntVec) Format() abi.Format       { return abi.IntVecVal }
func (LongInt) Format() abi.Format      { return abi.LongIntVal }
func (LongIntVec) Format() abi.Format   { return abi.LongIntVecVal }
func (Real) Format() abi.Format         { return abi.RealVal }
func (RealVec) Format() abi.Format      { return abi.RealVecVal }
func (Enum) Format() abi.Format         { return abi.EnumVal }
func (EnumVec) Format() abi.Format      { return abi.EnumVecVal }
func (SmallEnum) Format() abi.Format    { return abi.SmallEnumVal }
func (SmallEnumVec) Format() abi.Format { return abi.SmallEnumVecVal }
func (Logic) Format() abi.Format        { return abi.LogicVal }
func (LogicVec) Format() abi.Format     { return abi.LogicVecVal }
func (Time) Format() abi.Format         { return abi.TimeVal }
func (TimeVec) Format() abi.Format      { return abi.TimeVecVal }
func (Phys) Format() abi.Format         { return abi.PhysVal }
func (PhysVec) Format() abi.Format      { return abi.PhysVecVal }
func (SmallPhys) Format() abi.Format    { return abi.SmallPhysVal }
func (SmallPhysVec) Format() abi.Format { return abi.SmallPhysVecVal }
func (u Unknown) Format() abi.Format    { return u.Raw }

func (BinStr) value()       {}
func (OctStr) value()       {}
func (HexStr) value()       {}
func (DecStr) value()       {}
func (Str) value()          {}
func (Char) value()         {}
func (Int) value()          {}
func (IntVec) value()       {}
func (LongInt) value()      {}
func (LongIntVec) value()   {}
func (Real) value()         {}
func (RealVec) value()      {}
func (Enum) value()         {}
func (EnumVec) value()      {}
func (SmallEnum) value()    {}
func (SmallEnumVec) value() {}
func (Logic) value()        {}
func (LogicVec) value()     {}
func (Time) value()         {}
func (TimeVec) value()      {}
func (Phys) value()         {}
func (PhysVec) value()      {}
func (SmallPhys) value()    {}
func (SmallPhysVec) value() {}
func (Unknown) value()      {}

func (v BinStr) String() string    { return string(v) }
func (v OctStr) String() string    { return string(v) }
func (v HexStr) String() string    { return string(v) }
func (v DecStr) String() string    { return string(v) }
func (v Str) String() string       { return string(v) }
func (v Char) String() string      { return string(rune(v)) }
func (v Int) String() string       { return strconv.FormatInt(int64(v), 10) }
func (v LongInt) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v Real) String() string      { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v Enum) String() string      { return strconv.FormatUint(uint64(v), 10) }
func (v SmallEnum) String() string { return strconv.FormatUint(uint64(v), 10) }
func (v Logic) String() string     { return logic.Val(v).String() }
func (v LogicVec) String() string  { return logic.Vec(v).String() }
func (v Time) String() string      { return simtime.Time(v).String() }
func (v Phys) String() string      { return simtime.Physical(v).String() }
func (v SmallPhys) String() string { return strconv.FormatInt(int64(v), 10) }
func (Unknown) String() string     { return "?" }

func (v IntVec) String() string {
	return joinVec(v, func(e int32) string { return strconv.FormatInt(int64(e), 10) })
}

func (v LongIntVec) String() string {
	return joinVec(v, func(e int64) string { return strconv.FormatInt(e, 10) })
}

func (v RealVec) String() string {
	return joinVec(v, func(e float64) string { return strconv.FormatFloat(e, 'g', -1, 64) })
}

func (v EnumVec) String() string {
	return joinVec(v, func(e uint32) string { return strconv.FormatUint(uint64(e), 10) })
}

func (v SmallEnumVec) String() string {
	return joinVec(v, func(e uint8) string { return strconv.FormatUint(uint64(e), 10) })
}

func (v TimeVec) String() string {
	return joinVec(v, simtime.Time.String)
}

func (v PhysVec) String() string {
	return joinVec(v, simtime.Physical.String)
}

func (v SmallPhysVec) String() string {
	return joinVec(v, func(e int32) string { return strconv.FormatInt(int64(e), 10) })
}

func joinVec[T any](elems []T, format func(T) string) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, e := range elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(format(e))
	}
	b.WriteByte(')')
	return b.String()
}
