package vhpi

import (
	"iter"

	"github.com/wippyai/vhpi/abi"
	"github.com/wippyai/vhpi/errors"
)

// Iterator is a single pass over a one-to-many relation.
type Iterator struct {
	rt  *Runtime
	ref abi.Ref
}

// Next returns the next element. It returns false once the relation is
// exhausted, at which point the simulator has already freed the iterator.
func (it *Iterator) Next() (*Handle, bool) {
	if it == nil || it.ref == 0 {
		return nil, false
	}
	next := it.rt.native.Scan(it.ref)
	if next == 0 {
		it.ref = 0
		return nil, false
	}
	return it.rt.wrap(next), true
}

// Done reports whether the iterator is exhausted or closed.
func (it *Iterator) Done() bool {
	return it == nil || it.ref == 0
}

// Close releases an iterator that was not run to exhaustion.
func (it *Iterator) Close() error {
	if it == nil || it.ref == 0 {
		return nil
	}
	ref := it.ref
	it.ref = 0
	if rc := it.rt.native.Release(ref); rc != 0 {
		return it.rt.fail(errors.PhaseHandle, "release iterator")
	}
	return nil
}

// All ranges over the remaining elements. Breaking out early closes the
// iterator.
func (it *Iterator) All() iter.Seq[*Handle] {
	return func(yield func(*Handle) bool) {
		for {
			h, ok := it.Next()
			if !ok {
				return
			}
			if !yield(h) {
				_ = it.Close()
				return
			}
		}
	}
}
