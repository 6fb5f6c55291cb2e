package vhpi

import (
	"math"
	"strconv"
	"unsafe"

	"github.com/wippyai/vhpi/abi"
	"github.com/wippyai/vhpi/errors"
	"github.com/wippyai/vhpi/internal/latin1"
	"github.com/wippyai/vhpi/logic"
	"github.com/wippyai/vhpi/simtime"
)

// GetValue reads the current value of h. Pass abi.ObjTypeVal to let the
// simulator choose the format that matches the object's type.
//
// Strings and vectors are read in two calls: the first, with no buffer,
// reports how many elements are needed; the second fills a buffer of that
// size. The buffer is released once the result has been copied out.
func (rt *Runtime) GetValue(h *Handle, format abi.Format) (Value, error) {
	if h.IsNull() {
		return nil, errors.NullHandle(errors.PhaseRead, "get value")
	}

	v := abi.Value{Format: format}
	rc := rt.native.GetValue(h.ref, &v)
	if rc < 0 {
		return nil, rt.fail(errors.PhaseRead, "get value")
	}
	if rc == 0 {
		return decode(&v)
	}

	size := abi.ElemSize(v.Format)
	if size == 0 {
		return nil, errors.New(errors.PhaseRead, errors.KindContract).
			Format(v.Format.String()).
			Detail("simulator asked for a buffer of %d elements for a scalar format", rc).
			Build()
	}

	al := rt.newAllocationList()
	defer al.freeAndRelease()

	buf := al.alloc(int(rc) * size)
	v.Ptr = unsafe.Pointer(unsafe.SliceData(buf))
	v.BufSize = uintptr(len(buf))

	rc = rt.native.GetValue(h.ref, &v)
	switch {
	case rc < 0:
		return nil, rt.fail(errors.PhaseRead, "get value")
	case rc > 0:
		return nil, errors.New(errors.PhaseRead, errors.KindContract).
			Format(v.Format.String()).
			Detail("simulator still needs %d elements after sizing", rc).
			Build()
	}
	return decode(&v)
}

// decode copies a filled value record into a Value. Buffers referenced by v
// are not retained.
func decode(v *abi.Value) (Value, error) {
	switch v.Format {
	case abi.BinStrVal:
		return BinStr(latin1.DecodeCString(v.Bytes())), nil
	case abi.OctStrVal:
		return OctStr(latin1.DecodeCString(v.Bytes())), nil
	case abi.HexStrVal:
		return HexStr(latin1.DecodeCString(v.Bytes())), nil
	case abi.DecStrVal:
		return DecStr(latin1.DecodeCString(v.Bytes())), nil
	case abi.StrVal:
		return Str(latin1.DecodeCString(v.Bytes())), nil
	case abi.CharVal:
		return Char([]rune(latin1.Decode([]byte{v.Char}))[0]), nil
	case abi.IntVal:
		return Int(v.Int), nil
	case abi.LongIntVal:
		return LongInt(v.LongInt), nil
	case abi.RealVal:
		return Real(v.Real), nil
	case abi.EnumVal:
		return Enum(v.Enum), nil
	case abi.SmallEnumVal:
		return SmallEnum(v.SmallEnum), nil
	case abi.LogicVal:
		return Logic(logic.FromRaw(v.Enum)), nil
	case abi.TimeVal:
		return Time(v.Time), nil
	case abi.PhysVal:
		return Phys(v.Phys), nil
	case abi.SmallPhysVal:
		return SmallPhys(v.Int), nil

	case abi.LogicVecVal:
		raw, err := elems[uint32](v)
		if err != nil {
			return nil, err
		}
		out := make(LogicVec, len(raw))
		for i, e := range raw {
			out[i] = logic.FromRaw(e)
		}
		return out, nil
	case abi.EnumVecVal:
		return copyElems[uint32, EnumVec](v)
	case abi.SmallEnumVecVal:
		return copyElems[uint8, SmallEnumVec](v)
	case abi.IntVecVal:
		return copyElems[int32, IntVec](v)
	case abi.LongIntVecVal:
		return copyElems[int64, LongIntVec](v)
	case abi.RealVecVal:
		return copyElems[float64, RealVec](v)
	case abi.TimeVecVal:
		return copyElems[simtime.Time, TimeVec](v)
	case abi.PhysVecVal:
		return copyElems[simtime.Physical, PhysVec](v)
	case abi.SmallPhysVecVal:
		return copyElems[int32, SmallPhysVec](v)
	}
	return Unknown{Raw: v.Format}, nil
}

// elems views the NumElems elements of a vector record.
func elems[T any](v *abi.Value) ([]T, error) {
	n := int(v.NumElems)
	if n < 0 {
		return nil, errors.InvalidData(errors.PhaseRead, nil, "negative element count")
	}
	if n == 0 {
		return nil, nil
	}
	size := int(unsafe.Sizeof(*new(T)))
	if v.Ptr == nil || uintptr(n*size) > v.BufSize {
		return nil, errors.New(errors.PhaseRead, errors.KindInvalidData).
			Format(v.Format.String()).
			Detail("%d elements do not fit a %d byte buffer", n, v.BufSize).
			Build()
	}
	return unsafe.Slice((*T)(v.Ptr), n), nil
}

func copyElems[T any, V ~[]T](v *abi.Value) (Value, error) {
	src, err := elems[T](v)
	if err != nil {
		return nil, err
	}
	out := make(V, len(src))
	copy(out, src)
	return any(out).(Value), nil
}

// PutValue writes val to h using the given update mode. String and vector
// payloads are copied into buffers that stay valid for the duration of the
// native call and are reclaimed by this package afterwards; the simulator
// copies what it keeps.
func (rt *Runtime) PutValue(h *Handle, val Value, mode abi.PutMode) error {
	if h.IsNull() {
		return errors.NullHandle(errors.PhaseWrite, "put value")
	}
	if val == nil {
		return errors.InvalidInput(errors.PhaseWrite, "nil value")
	}

	al := rt.newAllocationList()
	defer al.freeAndRelease()

	var v abi.Value
	if err := encode(val, &v, al); err != nil {
		return err
	}
	if rc := rt.native.PutValue(h.ref, &v, mode); rc != 0 {
		return rt.fail(errors.PhaseWrite, "put value "+mode.String())
	}
	return nil
}

func encode(val Value, v *abi.Value, al *allocationList) error {
	v.Format = val.Format()
	switch x := val.(type) {
	case BinStr:
		return putString(v, al, string(x))
	case OctStr:
		return putString(v, al, string(x))
	case HexStr:
		return putString(v, al, string(x))
	case DecStr:
		return putString(v, al, string(x))
	case Str:
		return putString(v, al, string(x))
	case Char:
		if !latin1.Representable(string(rune(x))) {
			return errors.Encoding(errors.PhaseWrite, "character "+strconv.QuoteRune(rune(x))+" has no ISO-8859-1 byte", nil)
		}
		v.Char = latin1.EncodeRune(rune(x))
	case Int:
		v.Int = int32(x)
	case LongInt:
		v.LongInt = int64(x)
	case Real:
		v.Real = float64(x)
	case Enum:
		v.Enum = uint32(x)
	case SmallEnum:
		v.SmallEnum = uint8(x)
	case Logic:
		v.Enum = logic.Val(x).Raw()
	case Time:
		v.Time = simtime.Time(x)
	case Phys:
		v.Phys = simtime.Physical(x)
	case SmallPhys:
		v.Int = int32(x)

	case LogicVec:
		raw := make([]uint32, len(x))
		for i, e := range x {
			raw[i] = e.Raw()
		}
		return putElems(v, al, raw)
	case EnumVec:
		return putElems(v, al, []uint32(x))
	case SmallEnumVec:
		return putElems(v, al, []uint8(x))
	case IntVec:
		return putElems(v, al, []int32(x))
	case LongIntVec:
		return putElems(v, al, []int64(x))
	case RealVec:
		return putElems(v, al, []float64(x))
	case TimeVec:
		return putElems(v, al, []simtime.Time(x))
	case PhysVec:
		return putElems(v, al, []simtime.Physical(x))
	case SmallPhysVec:
		return putElems(v, al, []int32(x))

	default:
		return errors.UnsupportedFormat(errors.PhaseWrite, val.Format().String())
	}
	return nil
}

// putString attaches s as a NUL-terminated ISO-8859-1 buffer.
func putString(v *abi.Value, al *allocationList, s string) error {
	b := latin1.EncodeCString(s)
	if len(b)-1 > math.MaxInt32 {
		return errors.Overflow(errors.PhaseWrite, len(b)-1, "element count")
	}
	buf := al.alloc(len(b))
	copy(buf, b)
	v.Ptr = unsafe.Pointer(unsafe.SliceData(buf))
	v.BufSize = uintptr(len(buf))
	v.NumElems = int32(len(b) - 1)
	return nil
}

func putElems[T any](v *abi.Value, al *allocationList, src []T) error {
	if len(src) > math.MaxInt32 {
		return errors.Overflow(errors.PhaseWrite, len(src), "element count")
	}
	size := int(unsafe.Sizeof(*new(T)))
	buf := al.alloc(len(src) * size)
	ptr := unsafe.Pointer(unsafe.SliceData(buf))
	if len(src) > 0 {
		copy(unsafe.Slice((*T)(ptr), len(src)), src)
	}
	v.Ptr = ptr
	v.BufSize = uintptr(len(buf))
	v.NumElems = int32(len(src))
	return nil
}
