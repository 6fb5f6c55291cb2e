package sim

import (
	stderrors "errors"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/vhpi/abi"
	"github.com/wippyai/vhpi/errors"
	"github.com/wippyai/vhpi/internal/latin1"
	"github.com/wippyai/vhpi/logic"
	"github.com/wippyai/vhpi/simtime"
)

// vecElem maps each vector format to the scalar format of its elements.
var vecElem = map[abi.Format]abi.Format{
	abi.LogicVecVal:     abi.LogicVal,
	abi.EnumVecVal:      abi.EnumVal,
	abi.SmallEnumVecVal: abi.SmallEnumVal,
	abi.IntVecVal:       abi.IntVal,
	abi.LongIntVecVal:   abi.LongIntVal,
	abi.RealVecVal:      abi.RealVal,
	abi.TimeVecVal:      abi.TimeVal,
	abi.PhysVecVal:      abi.PhysVal,
	abi.SmallPhysVecVal: abi.SmallPhysVal,
}

// accepts reports whether scalar format f can carry values of scalar type t.
func accepts(f abi.Format, t *typeDecl) bool {
	fits32 := t.low >= math.MinInt32 && t.high <= math.MaxInt32
	switch f {
	case abi.LogicVal:
		return t.logic || t.bit
	case abi.EnumVal:
		return t.kind == enumType
	case abi.SmallEnumVal:
		return t.kind == enumType && len(t.literals) <= 256
	case abi.CharVal:
		return t.char
	case abi.IntVal:
		return t.kind == integerType && fits32
	case abi.LongIntVal:
		return t.kind == integerType
	case abi.RealVal:
		return t.kind == realType
	case abi.TimeVal:
		return t.kind == physicalType && t.time
	case abi.PhysVal:
		return t.kind == physicalType
	case abi.SmallPhysVal:
		return t.kind == physicalType && fits32
	}
	return false
}

func (s *Simulator) mismatch(op string, f abi.Format, o *object) int32 {
	s.fail(op, errors.SeverityError, "format %s does not match %s of type %s", f, o.upperName(), o.typ.name)
	return -1
}

// GetValue implements vhpi_get_value. Strings and vectors follow the sizing
// protocol: with a short buffer the required element count is returned, the
// terminating NUL included for strings.
func (s *Simulator) GetValue(h abi.Ref, v *abi.Value) int32 {
	const op = "vhpi_get_value"
	s.begin()
	if s.faulted(FaultGetValue) {
		return -1
	}
	if v == nil {
		s.fail(op, errors.SeverityError, "no value record")
		return -1
	}
	o := s.object(h, op)
	if o == nil {
		return -1
	}
	if !o.isSignal() {
		s.fail(op, errors.SeverityError, "%s has no value", o.kind)
		return -1
	}
	if v.Format == abi.ObjTypeVal {
		v.Format = o.typ.nativeFormat()
	}

	switch {
	case v.Format.Textual():
		str, err := render(o, v.Format)
		if err != nil {
			s.fail(op, errors.SeverityError, "%v", err)
			return -1
		}
		b := latin1.Encode(str)
		if v.Ptr == nil || int(v.BufSize) < len(b)+1 {
			return int32(len(b) + 1)
		}
		buf := v.Bytes()
		copy(buf, b)
		buf[len(b)] = 0
		v.NumElems = int32(len(b))
		return 0
	case v.Format.Buffered():
		return s.getVector(o, v, op)
	}
	return s.getScalar(o, v, op)
}

// getScalar fills the union member selected by v.Format.
func (s *Simulator) getScalar(o *object, v *abi.Value, op string) int32 {
	t := o.typ
	if v.Format == abi.ObjTypeVal {
		v.Format = t.nativeFormat()
	}
	if !t.scalar() || !accepts(v.Format, t) {
		return s.mismatch(op, v.Format, o)
	}

	x := o.value[0]
	switch v.Format {
	case abi.LogicVal:
		code, _ := t.logicCode(x)
		v.Enum = uint32(code)
	case abi.EnumVal:
		v.Enum = uint32(x)
	case abi.SmallEnumVal:
		v.SmallEnum = uint8(x)
	case abi.CharVal:
		v.Char = byte(x)
	case abi.IntVal, abi.SmallPhysVal:
		v.Int = int32(x)
	case abi.LongIntVal:
		v.LongInt = x
	case abi.RealVal:
		v.Real = math.Float64frombits(uint64(x))
	case abi.TimeVal:
		v.Time = simtime.FromInt64(x)
	case abi.PhysVal:
		v.Phys = simtime.PhysicalFromInt64(x)
	}
	return 0
}

func (s *Simulator) getVector(o *object, v *abi.Value, op string) int32 {
	t := o.typ
	ef, ok := vecElem[v.Format]
	if !ok || t.scalar() || !accepts(ef, t.elem) {
		return s.mismatch(op, v.Format, o)
	}

	n := len(o.value)
	if n == 0 {
		v.NumElems = 0
		return 0
	}
	size := abi.ElemSize(v.Format)
	if v.Ptr == nil || int(v.BufSize) < n*size {
		return int32(n)
	}

	switch v.Format {
	case abi.LogicVecVal:
		fill(v, o.value, func(x int64) uint32 {
			code, _ := t.elem.logicCode(x)
			return uint32(code)
		})
	case abi.EnumVecVal:
		fill(v, o.value, func(x int64) uint32 { return uint32(x) })
	case abi.SmallEnumVecVal:
		fill(v, o.value, func(x int64) uint8 { return uint8(x) })
	case abi.IntVecVal, abi.SmallPhysVecVal:
		fill(v, o.value, func(x int64) int32 { return int32(x) })
	case abi.LongIntVecVal:
		fill(v, o.value, func(x int64) int64 { return x })
	case abi.RealVecVal:
		fill(v, o.value, func(x int64) float64 { return math.Float64frombits(uint64(x)) })
	case abi.TimeVecVal:
		fill(v, o.value, simtime.FromInt64)
	case abi.PhysVecVal:
		fill(v, o.value, simtime.PhysicalFromInt64)
	}
	v.NumElems = int32(n)
	return 0
}

func fill[T any](v *abi.Value, vals []int64, conv func(int64) T) {
	dst := unsafe.Slice((*T)(v.Ptr), len(vals))
	for i, x := range vals {
		dst[i] = conv(x)
	}
}

// bitsOf returns the value of o as a logic vector: integers in two's
// complement, logic and bit objects element by element.
func bitsOf(o *object) (logic.Vec, bool) {
	t := o.typ
	switch {
	case t.kind == integerType:
		width := 32
		if t.nativeFormat() == abi.LongIntVal {
			width = 64
		}
		return logic.FromInt(o.value[0], width), true
	case t.scalar():
		code, ok := t.logicCode(o.value[0])
		if !ok {
			return nil, false
		}
		return logic.Vec{logic.FromRaw(uint32(code))}, true
	}
	out := make(logic.Vec, len(o.value))
	for i, x := range o.value {
		code, ok := t.elem.logicCode(x)
		if !ok {
			return nil, false
		}
		out[i] = logic.FromRaw(uint32(code))
	}
	return out, true
}

// render formats the value of o in one of the string formats.
func render(o *object, f abi.Format) (string, error) {
	t := o.typ
	switch f {
	case abi.StrVal:
		switch {
		case t.char:
			return t.formatScalar(o.value[0]), nil
		case !t.scalar() && t.elem.char:
			return t.formatValue(o.value), nil
		}
	case abi.BinStrVal, abi.OctStrVal, abi.HexStrVal:
		bits, ok := bitsOf(o)
		if !ok {
			break
		}
		switch f {
		case abi.OctStrVal:
			return groupDigits(bits, 3), nil
		case abi.HexStrVal:
			return groupDigits(bits, 4), nil
		}
		return bits.String(), nil
	case abi.DecStrVal:
		return renderDecimal(o)
	}
	return "", errors.New(errors.PhaseRead, errors.KindTypeMismatch).
		Path(o.path(true)...).
		Format(f.String()).
		Detail("type %s cannot be rendered", t.name).
		Build()
}

func renderDecimal(o *object) (string, error) {
	t := o.typ
	switch t.kind {
	case integerType, physicalType, enumType:
		return strconv.FormatInt(o.value[0], 10), nil
	case realType:
		return t.formatScalar(o.value[0]), nil
	}

	bits, ok := bitsOf(o)
	if !ok {
		return "", errors.UnsupportedFormat(errors.PhaseRead, abi.DecStrVal.String())
	}
	if u, ok := bits.Uint(); ok {
		return strconv.FormatUint(u, 10), nil
	}
	if conv, ok := logic.Wide(); ok && bits.IsBinary() {
		if x, ok := conv.Uint(bits); ok {
			return x.String(), nil
		}
	}
	return "", errors.New(errors.PhaseRead, errors.KindInvalidData).
		Format(abi.DecStrVal.String()).
		Value(bits.String()).
		Detail("value has no decimal form").
		Build()
}

// groupDigits renders bits in base 2^k from the least significant end. A
// group holding anything but '0' and '1' shows its common symbol, or X when
// the symbols differ.
func groupDigits(bits logic.Vec, k int) string {
	n := (len(bits) + k - 1) / k
	out := make([]byte, n)
	for d := range n {
		hi := len(bits) - d*k
		lo := max(hi-k, 0)
		out[n-1-d] = digit(bits[lo:hi])
	}
	return string(out)
}

func digit(g logic.Vec) byte {
	if u, ok := g.Uint(); ok {
		return "0123456789ABCDEF"[u]
	}
	for _, x := range g[1:] {
		if x != g[0] {
			return 'X'
		}
	}
	return g[0].String()[0]
}

// PutValue implements vhpi_put_value.
func (s *Simulator) PutValue(h abi.Ref, v *abi.Value, mode abi.PutMode) int32 {
	const op = "vhpi_put_value"
	s.begin()
	if s.faulted(FaultPutValue) {
		return 1
	}
	if v == nil {
		s.fail(op, errors.SeverityError, "no value record")
		return 1
	}
	o := s.object(h, op)
	if o == nil {
		return 1
	}
	if !o.isSignal() {
		s.fail(op, errors.SeverityError, "%s has no value", o.kind)
		return 1
	}

	switch mode {
	case abi.Release:
		if o.forced {
			o.forced = false
			s.schedule(&event{at: s.now, kind: evRelease, sig: o})
		}
		return 0
	case abi.Deposit, abi.DepositPropagate, abi.Force, abi.ForcePropagate:
	default:
		s.fail(op, errors.SeverityError, "update mode %s not supported", mode)
		return 1
	}

	vals, err := decodeValue(o, v)
	if err != nil {
		s.fail(op, errors.SeverityError, "%v", err)
		return 1
	}

	switch mode {
	case abi.Deposit:
		if !o.forced {
			o.value = append(o.value[:0], vals...)
		}
	case abi.DepositPropagate:
		s.schedule(&event{at: s.now, kind: evTransaction, sig: o, val: vals})
	case abi.Force:
		o.value = append(o.value[:0], vals...)
		o.forced = true
	case abi.ForcePropagate:
		o.forced = true
		s.schedule(&event{at: s.now, kind: evForce, sig: o, val: vals})
	}
	s.log.Debug("put value",
		zap.String("object", o.fullName(true)),
		zap.Stringer("mode", mode),
		zap.String("value", o.typ.formatValue(vals)))
	return 0
}

// decodeValue converts a value record into the element values of o.
func decodeValue(o *object, v *abi.Value) ([]int64, error) {
	t := o.typ
	switch {
	case v.Format.Textual():
		return parseText(o, v.Format, latin1.DecodeCString(v.Bytes()))
	case v.Format.Buffered():
		return decodeVector(o, v)
	}

	if !t.scalar() || !accepts(v.Format, t) {
		return nil, putMismatch(v.Format, o)
	}
	x, err := scalarFrom(v, t)
	if err != nil {
		return nil, err
	}
	return []int64{x}, nil
}

func putMismatch(f abi.Format, o *object) error {
	err := errors.TypeMismatch(errors.PhaseWrite, o.path(true), "", f.String())
	err.Detail = "cannot write type " + o.typ.name
	return err
}

// scalarFrom reads the union member selected by v.Format as a value of t.
func scalarFrom(v *abi.Value, t *typeDecl) (int64, error) {
	var x int64
	switch v.Format {
	case abi.LogicVal:
		var ok bool
		if x, ok = t.fromLogicCode(v.Enum); !ok {
			return 0, errors.New(errors.PhaseWrite, errors.KindInvalidData).
				Format(v.Format.String()).
				Value(v.Enum).
				Detail("logic code not valid for %s", t.name).
				Build()
		}
	case abi.EnumVal:
		x = int64(v.Enum)
	case abi.SmallEnumVal:
		x = int64(v.SmallEnum)
	case abi.CharVal:
		x = int64(v.Char)
	case abi.IntVal, abi.SmallPhysVal:
		x = int64(v.Int)
	case abi.LongIntVal:
		x = v.LongInt
	case abi.RealVal:
		x = int64(math.Float64bits(v.Real))
	case abi.TimeVal:
		x = v.Time.Int64()
	case abi.PhysVal:
		x = v.Phys.Int64()
	default:
		return 0, errors.UnsupportedFormat(errors.PhaseWrite, v.Format.String())
	}
	if !t.inRange(x) {
		return 0, errors.Overflow(errors.PhaseWrite, x, t.name)
	}
	return x, nil
}

func decodeVector(o *object, v *abi.Value) ([]int64, error) {
	t := o.typ
	ef, ok := vecElem[v.Format]
	if !ok || t.scalar() || !accepts(ef, t.elem) {
		return nil, putMismatch(v.Format, o)
	}
	n := len(o.value)
	if int(v.NumElems) != n {
		return nil, errors.New(errors.PhaseWrite, errors.KindInvalidInput).
			Format(v.Format.String()).
			Detail("%d elements written to %s of %d", v.NumElems, o.upperName(), n).
			Build()
	}
	size := abi.ElemSize(v.Format)
	if n > 0 && (v.Ptr == nil || int(v.BufSize) < n*size) {
		return nil, errors.InvalidData(errors.PhaseWrite, nil, "value buffer shorter than its element count")
	}

	out := make([]int64, n)
	for i := range out {
		p := unsafe.Add(v.Ptr, i*size)
		e := abi.Value{Format: ef}
		switch v.Format {
		case abi.LogicVecVal, abi.EnumVecVal:
			e.Enum = *(*uint32)(p)
		case abi.SmallEnumVecVal:
			e.SmallEnum = *(*uint8)(p)
		case abi.IntVecVal, abi.SmallPhysVecVal:
			e.Int = *(*int32)(p)
		case abi.LongIntVecVal:
			e.LongInt = *(*int64)(p)
		case abi.RealVecVal:
			e.Real = *(*float64)(p)
		case abi.TimeVecVal:
			e.Time = *(*simtime.Time)(p)
		case abi.PhysVecVal:
			e.Phys = *(*simtime.Physical)(p)
		}
		x, err := scalarFrom(&e, t.elem)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}

// parseText reads a string-format write. Octal, hex and decimal strings are
// limited to 64 bits unless the wide converter is built in.
func parseText(o *object, f abi.Format, str string) ([]int64, error) {
	t := o.typ
	n := len(o.value)
	if f != abi.StrVal {
		str = strings.ReplaceAll(strings.TrimSpace(str), "_", "")
	}

	switch f {
	case abi.StrVal:
		switch {
		case t.char:
			return t.parseValue(str, 1)
		case !t.scalar() && t.elem.char:
			b := latin1.Encode(str)
			if len(b) != n {
				return nil, errors.New(errors.PhaseWrite, errors.KindInvalidInput).
					Value(str).
					Detail("string of %d characters written to %s of %d", len(b), o.upperName(), n).
					Build()
			}
			out := make([]int64, n)
			for i, c := range b {
				out[i] = int64(c)
			}
			return out, nil
		}
	case abi.BinStrVal:
		if t.kind == integerType {
			vec := logic.ParseVec(str)
			u, ok := vec.Uint()
			if !ok {
				return nil, errors.InvalidData(errors.PhaseWrite, nil, "binary string "+strconv.Quote(str)+" is not a number")
			}
			x := int64(u)
			if len(vec) == 32 {
				x = int64(int32(uint32(u)))
			}
			return checked(t, x)
		}
		if t.logic || t.bit {
			return t.parseValue(str, 1)
		}
		if !t.scalar() && (t.elem.logic || t.elem.bit) {
			return t.parseValue(str, n)
		}
	case abi.OctStrVal, abi.HexStrVal, abi.DecStrVal:
		base := 10
		switch f {
		case abi.OctStrVal:
			base = 8
		case abi.HexStrVal:
			base = 16
		}
		return parseNumber(o, f, str, base)
	}
	return nil, putMismatch(f, o)
}

func checked(t *typeDecl, x int64) ([]int64, error) {
	if !t.inRange(x) {
		return nil, errors.Overflow(errors.PhaseWrite, x, t.name)
	}
	return []int64{x}, nil
}

func parseNumber(o *object, f abi.Format, str string, base int) ([]int64, error) {
	t := o.typ
	switch {
	case t.kind == integerType || t.kind == physicalType || (t.kind == enumType && base == 10):
		x, err := strconv.ParseInt(str, base, 64)
		if err != nil {
			return nil, errors.ParseFailed(f.String()+" value", err)
		}
		return checked(t, x)
	case t.kind == realType && base == 10:
		return t.parseValue(str, 1)
	case t.scalar() || !(t.elem.logic || t.elem.bit):
		return nil, putMismatch(f, o)
	}

	n := len(o.value)
	var vec logic.Vec
	u, err := strconv.ParseUint(str, base, 64)
	if stderrors.Is(err, strconv.ErrSyntax) {
		return nil, errors.ParseFailed(f.String()+" value", err)
	}
	if err == nil && n <= logic.MaxWidth {
		if n < logic.MaxWidth && u>>n != 0 {
			return nil, errors.Overflow(errors.PhaseWrite, str, o.typ.name)
		}
		vec = logic.FromUint(u, n)
	} else {
		conv, ok := logic.Wide()
		if !ok {
			return nil, errors.New(errors.PhaseWrite, errors.KindOverflow).
				Format(f.String()).
				Value(str).
				Detail("value wider than %d bits needs the wide converter", logic.MaxWidth).
				Build()
		}
		x, ok := new(big.Int).SetString(str, base)
		if !ok || x.Sign() < 0 || x.BitLen() > n {
			return nil, errors.Overflow(errors.PhaseWrite, str, o.typ.name)
		}
		vec = conv.FromBig(x, n)
	}

	out := make([]int64, n)
	for i, b := range vec {
		x, _ := t.elem.fromLogicCode(b.Raw())
		out[i] = x
	}
	return out, nil
}
