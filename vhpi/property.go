package vhpi

import (
	"iter"

	"github.com/wippyai/vhpi/abi"
	"github.com/wippyai/vhpi/errors"
	"github.com/wippyai/vhpi/internal/latin1"
	"github.com/wippyai/vhpi/simtime"
)

// Int reads an integer property. The native layer reports failure with
// vhpiUndefined, which is also a legal value for some properties, so the
// error channel decides.
func (h *Handle) Int(p abi.IntProperty) (int32, error) {
	if h.IsNull() {
		return 0, errors.NullHandle(errors.PhaseRead, "get property")
	}
	v := h.rt.native.Get(p, h.ref)
	if v == abi.Undefined {
		if diag := h.rt.CheckError(); diag != nil {
			return 0, errors.Native(errors.PhaseRead, "get property", diag)
		}
	}
	return v, nil
}

// Str reads a string property. ok is false when the object has no such
// property.
func (h *Handle) Str(p abi.StrProperty) (s string, ok bool) {
	if h.IsNull() {
		return "", false
	}
	b, ok := h.rt.native.GetStr(p, h.ref)
	if !ok {
		return "", false
	}
	return latin1.Decode(b), true
}

// Real reads a floating point property.
func (h *Handle) Real(p abi.RealProperty) (float64, error) {
	if h.IsNull() {
		return 0, errors.NullHandle(errors.PhaseRead, "get real property")
	}
	v := h.rt.native.GetReal(p, h.ref)
	if diag := h.rt.CheckError(); diag != nil {
		return 0, errors.Native(errors.PhaseRead, "get real property", diag)
	}
	return v, nil
}

// Phys reads a physical property such as a resolution limit.
func (h *Handle) Phys(p abi.PhysProperty) (simtime.Physical, error) {
	if h.IsNull() {
		return simtime.Physical{}, errors.NullHandle(errors.PhaseRead, "get physical property")
	}
	v := h.rt.native.GetPhys(p, h.ref)
	if diag := h.rt.CheckError(); diag != nil {
		return simtime.Physical{}, errors.Native(errors.PhaseRead, "get physical property", diag)
	}
	return v, nil
}

// Name returns the simple name, or "" when the object has none.
func (h *Handle) Name() string {
	s, _ := h.Str(abi.NameP)
	return s
}

// FullName returns the hierarchical path name.
func (h *Handle) FullName() string {
	s, _ := h.Str(abi.FullNameP)
	return s
}

// CaseName returns the name in its declared case.
func (h *Handle) CaseName() string {
	s, _ := h.Str(abi.CaseNameP)
	return s
}

// KindStr returns the simulator's name for the object's class.
func (h *Handle) KindStr() string {
	s, _ := h.Str(abi.KindStrP)
	return s
}

// Kind returns the object's class. ok is false for a code this package does
// not know; the raw code is still returned.
func (h *Handle) Kind() (kind abi.ClassKind, ok bool) {
	v, err := h.Int(abi.KindP)
	if err != nil {
		return 0, false
	}
	kind = abi.ClassKind(v)
	return kind, kind.Known()
}

// Size returns the number of scalar subelements of the object.
func (h *Handle) Size() (int32, error) {
	return h.Int(abi.SizeP)
}

// Range is a discrete index range.
type Range struct {
	Left  int32
	Right int32
	Up    bool
}

// Len returns the number of indices in r.
func (r Range) Len() int {
	var n int64
	if r.Up {
		n = int64(r.Right) - int64(r.Left) + 1
	} else {
		n = int64(r.Left) - int64(r.Right) + 1
	}
	if n < 0 {
		return 0
	}
	return int(n)
}

// Indices yields the indices from left to right.
func (r Range) Indices() iter.Seq[int32] {
	return func(yield func(int32) bool) {
		if r.Up {
			for i := int64(r.Left); i <= int64(r.Right); i++ {
				if !yield(int32(i)) {
					return
				}
			}
			return
		}
		for i := int64(r.Left); i >= int64(r.Right); i-- {
			if !yield(int32(i)) {
				return
			}
		}
	}
}

// IndexRange returns the first index constraint of an array object or type.
func (h *Handle) IndexRange() (Range, error) {
	it := h.Iterator(abi.Constraints)
	c, ok := it.Next()
	if err := it.Close(); err != nil {
		return Range{}, err
	}
	if !ok {
		return Range{}, errors.NotFound(errors.PhaseRead, "index constraint of", h.Name())
	}
	defer c.Release()

	up, err := c.Int(abi.IsUpP)
	if err != nil {
		return Range{}, err
	}
	left, err := c.Int(abi.LeftBoundP)
	if err != nil {
		return Range{}, err
	}
	right, err := c.Int(abi.RightBoundP)
	if err != nil {
		return Range{}, err
	}
	return Range{Left: left, Right: right, Up: up != 0}, nil
}

// EnumLiterals returns the literal names of an enumeration type declaration.
// ok is false when h is not an enumeration type.
func (h *Handle) EnumLiterals() (names []string, ok bool) {
	if kind, _ := h.Kind(); kind != abi.EnumTypeDeclK {
		return nil, false
	}
	for lit := range h.Each(abi.EnumLiterals) {
		name, ok := lit.Str(abi.NameP)
		_ = lit.Release()
		if !ok {
			return nil, false
		}
		names = append(names, name)
	}
	return names, true
}
