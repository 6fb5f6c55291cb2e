package abi

import (
	"unsafe"

	"github.com/wippyai/vhpi/simtime"
)

// Ref is a raw native object reference. Zero is the null handle.
type Ref uintptr

// Value mirrors vhpiValueT. Only the member selected by Format is meaningful.
// Buffered formats use Ptr, BufSize and NumElems; scalar formats use the
// field of the matching C union member.
type Value struct {
	Format   Format
	BufSize  uintptr
	NumElems int32
	Unit     simtime.Physical

	Enum      uint32 // EnumVal, LogicVal
	SmallEnum uint8  // SmallEnumVal
	Int       int32  // IntVal, SmallPhysVal
	LongInt   int64  // LongIntVal
	Real      float64
	Char      byte
	Time      simtime.Time
	Phys      simtime.Physical

	// Ptr addresses BufSize bytes owned by the caller for the duration of
	// the call.
	Ptr unsafe.Pointer
}

// Bytes views the value buffer. It returns nil when no buffer is attached.
func (v *Value) Bytes() []byte {
	if v.Ptr == nil || v.BufSize == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(v.Ptr), v.BufSize)
}

// CbData mirrors vhpiCbDataT without the routine pointer: every registration
// goes through the single dispatcher bound to the backend.
type CbData struct {
	Reason   CbReason
	Obj      Ref
	Time     *simtime.Time
	Value    *Value
	UserData uintptr
}

// ErrorInfo mirrors vhpiErrorInfoT with C strings copied out as raw bytes.
type ErrorInfo struct {
	Severity int32
	Message  []byte
	Str      []byte
	File     []byte
	Line     int32
}
