package vhpi

import (
	"iter"

	"go.uber.org/zap"

	"github.com/wippyai/vhpi/abi"
	"github.com/wippyai/vhpi/errors"
)

// Handle refers to one native object.
//
// A handle is either owned or borrowed. Owned handles come from queries and
// must be released exactly once with Release. Borrowed handles arrive in
// callback data; they are never released by this package and become null as
// soon as the callback returns.
//
// Handles are not released by the garbage collector: native calls are only
// legal on the simulator thread, which finalizers do not run on.
type Handle struct {
	rt       *Runtime
	ref      abi.Ref
	borrowed bool
}

// IsNull reports whether h refers to no object. A nil *Handle is null.
func (h *Handle) IsNull() bool {
	return h == nil || h.ref == 0
}

// Borrowed reports whether h was delivered by a callback or is a view of a
// handle owned by a Registration.
func (h *Handle) Borrowed() bool {
	return h != nil && h.borrowed
}

// Raw returns the native reference, or 0 for the null handle.
func (h *Handle) Raw() abi.Ref {
	return h.raw()
}

func (h *Handle) raw() abi.Ref {
	if h == nil {
		return 0
	}
	return h.ref
}

// Runtime returns the runtime h belongs to.
func (h *Handle) Runtime() *Runtime {
	if h == nil {
		return nil
	}
	return h.rt
}

// Release gives an owned handle back to the simulator and makes h null.
// Releasing a null or borrowed handle does nothing, so a second Release is
// harmless.
func (h *Handle) Release() error {
	if h.IsNull() {
		return nil
	}
	if h.borrowed {
		h.rt.log.Debug("release of borrowed handle ignored")
		return nil
	}
	ref := h.ref
	h.ref = 0
	if rc := h.rt.native.Release(ref); rc != 0 {
		return h.rt.fail(errors.PhaseHandle, "release handle")
	}
	return nil
}

// invalidate ends a borrowed handle's validity when its callback returns.
func (h *Handle) invalidate() {
	h.ref = 0
}

// Equal reports whether h and o refer to the same native object. Two
// wrappers around different references may still be equal; the simulator
// decides. Null handles are equal only to each other.
func (h *Handle) Equal(o *Handle) bool {
	if h.IsNull() || o.IsNull() {
		return h.IsNull() && o.IsNull()
	}
	return h.rt.native.Compare(h.ref, o.ref)
}

// Handle follows a one-to-one relation from h.
func (h *Handle) Handle(rel abi.OneToOne) *Handle {
	return h.rt.Handle(rel, h)
}

// ByName resolves name relative to h.
func (h *Handle) ByName(name string) *Handle {
	return h.rt.HandleByName(name, h)
}

// Iterator starts a one-to-many walk from h.
func (h *Handle) Iterator(rel abi.OneToMany) *Iterator {
	return h.rt.Iterator(rel, h)
}

// Each walks a one-to-many relation. Every range over the returned sequence
// opens a fresh native iterator, so the sequence can be walked repeatedly.
// Breaking out early releases the native iterator. The yielded handles are
// owned by the caller.
func (h *Handle) Each(rel abi.OneToMany) iter.Seq[*Handle] {
	return func(yield func(*Handle) bool) {
		it := h.rt.Iterator(rel, h)
		defer func() {
			if err := it.Close(); err != nil {
				h.rt.log.Debug("iterator close failed", zap.Error(err))
			}
		}()
		for {
			child, ok := it.Next()
			if !ok || !yield(child) {
				return
			}
		}
	}
}

// RegisterCb registers fn for reason with h as the callback object.
func (h *Handle) RegisterCb(reason abi.CbReason, fn Callback, opts ...CbOption) (*Registration, error) {
	return h.rt.RegisterCb(reason, fn, append([]CbOption{WithObject(h)}, opts...)...)
}

// GetValue reads the value of h in the given format. See Runtime.GetValue.
func (h *Handle) GetValue(format abi.Format) (Value, error) {
	return h.rt.GetValue(h, format)
}

// PutValue writes v to h. See Runtime.PutValue.
func (h *Handle) PutValue(v Value, mode abi.PutMode) error {
	return h.rt.PutValue(h, v, mode)
}
