package abi

import "strconv"

// Format selects which member of the value union is in use.
type Format uint32

const (
	BinStrVal       Format = 1
	OctStrVal       Format = 2
	DecStrVal       Format = 3
	HexStrVal       Format = 4
	EnumVal         Format = 5
	IntVal          Format = 6
	LogicVal        Format = 7
	RealVal         Format = 8
	StrVal          Format = 9
	CharVal         Format = 10
	TimeVal         Format = 11
	PhysVal         Format = 12
	ObjTypeVal      Format = 13
	PtrVal          Format = 14
	EnumVecVal      Format = 15
	IntVecVal       Format = 16
	LogicVecVal     Format = 17
	RealVecVal      Format = 18
	TimeVecVal      Format = 19
	PhysVecVal      Format = 20
	PtrVecVal       Format = 21
	RawDataVal      Format = 22
	SmallEnumVal    Format = 23
	SmallEnumVecVal Format = 24
	LongIntVal      Format = 25
	LongIntVecVal   Format = 26
	SmallPhysVal    Format = 27
	SmallPhysVecVal Format = 28
)

var formatNames = map[Format]string{
	BinStrVal:       "BinStrVal",
	OctStrVal:       "OctStrVal",
	DecStrVal:       "DecStrVal",
	HexStrVal:       "HexStrVal",
	EnumVal:         "EnumVal",
	IntVal:          "IntVal",
	LogicVal:        "LogicVal",
	RealVal:         "RealVal",
	StrVal:          "StrVal",
	CharVal:         "CharVal",
	TimeVal:         "TimeVal",
	PhysVal:         "PhysVal",
	ObjTypeVal:      "ObjTypeVal",
	PtrVal:          "PtrVal",
	EnumVecVal:      "EnumVecVal",
	IntVecVal:       "IntVecVal",
	LogicVecVal:     "LogicVecVal",
	RealVecVal:      "RealVecVal",
	TimeVecVal:      "TimeVecVal",
	PhysVecVal:      "PhysVecVal",
	PtrVecVal:       "PtrVecVal",
	RawDataVal:      "RawDataVal",
	SmallEnumVal:    "SmallEnumVal",
	SmallEnumVecVal: "SmallEnumVecVal",
	LongIntVal:      "LongIntVal",
	LongIntVecVal:   "LongIntVecVal",
	SmallPhysVal:    "SmallPhysVal",
	SmallPhysVecVal: "SmallPhysVecVal",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "Format(" + strconv.FormatUint(uint64(f), 10) + ")"
}

// Size of one buffer element for each buffered format, matching the C types
// vhpiCharT, vhpiEnumT, vhpiSmallEnumT, vhpiIntT, vhpiLongIntT, vhpiRealT,
// vhpiTimeT, vhpiPhysT and vhpiSmallPhysT.
const (
	SizeChar      = 1
	SizeEnum      = 4
	SizeSmallEnum = 1
	SizeInt       = 4
	SizeLongInt   = 8
	SizeReal      = 8
	SizeTime      = 8
	SizePhys      = 8
	SizeSmallPhys = 4
)

// ElemSize returns the byte size of one buffer element for f, or 0 when f is
// a scalar format carried inline in the union.
func ElemSize(f Format) int {
	switch f {
	case BinStrVal, OctStrVal, DecStrVal, HexStrVal, StrVal:
		return SizeChar
	case EnumVecVal, LogicVecVal:
		return SizeEnum
	case SmallEnumVecVal:
		return SizeSmallEnum
	case IntVecVal:
		return SizeInt
	case LongIntVecVal:
		return SizeLongInt
	case RealVecVal:
		return SizeReal
	case TimeVecVal:
		return SizeTime
	case PhysVecVal:
		return SizePhys
	case SmallPhysVecVal:
		return SizeSmallPhys
	}
	return 0
}

// Buffered reports whether values of format f live in a caller-supplied buffer.
func (f Format) Buffered() bool {
	return ElemSize(f) > 0
}

// Textual reports whether f is one of the NUL-terminated string formats.
func (f Format) Textual() bool {
	switch f {
	case BinStrVal, OctStrVal, DecStrVal, HexStrVal, StrVal:
		return true
	}
	return false
}
