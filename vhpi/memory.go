package vhpi

import (
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"
)

const (
	// Pool limits to prevent memory bloat
	poolMaxWords         = 4096 // max uint64 words per pooled buffer
	poolInitWords        = 16
	maxPooledAllocations = 32
)

// Buffers are word slices so every element type the native layer reads
// through them is naturally aligned.
var wordPool = sync.Pool{
	New: func() any {
		buf := make([]uint64, 0, poolInitWords)
		return &buf
	},
}

func getWords(n int) *[]uint64 {
	buf := wordPool.Get().(*[]uint64)
	if cap(*buf) < n {
		*buf = make([]uint64, n)
		return buf
	}
	*buf = (*buf)[:n]
	clear(*buf)
	return buf
}

func putWords(buf *[]uint64) {
	if buf == nil || cap(*buf) > poolMaxWords {
		return // reject oversized
	}
	*buf = (*buf)[:0]
	wordPool.Put(buf)
}

// allocationList owns the buffers lent to the native layer for one call.
// Buffers stay pinned and reachable until freeAndRelease, which must run only
// after the native call has returned.
type allocationList struct {
	live   *atomic.Int64
	pinner runtime.Pinner
	bufs   []*[]uint64
}

var allocationListPool = sync.Pool{
	New: func() any {
		return &allocationList{bufs: make([]*[]uint64, 0, 4)}
	},
}

func (rt *Runtime) newAllocationList() *allocationList {
	al := allocationListPool.Get().(*allocationList)
	al.live = &rt.buffers
	return al
}

// alloc returns a zeroed, pinned buffer of size bytes. A zero size still
// yields a valid address.
func (al *allocationList) alloc(size int) []byte {
	words := (size + 7) / 8
	if words == 0 {
		words = 1
	}
	buf := getWords(words)
	first := &(*buf)[0]
	al.pinner.Pin(first)
	al.bufs = append(al.bufs, buf)
	al.live.Add(1)
	return unsafe.Slice((*byte)(unsafe.Pointer(first)), size)
}

// freeAndRelease unpins and recycles every buffer, then returns the list to
// its pool. The list must not be used afterwards.
func (al *allocationList) freeAndRelease() {
	al.pinner.Unpin()
	for i, buf := range al.bufs {
		putWords(buf)
		al.bufs[i] = nil
		al.live.Add(-1)
	}
	al.bufs = al.bufs[:0]
	al.live = nil
	if cap(al.bufs) > maxPooledAllocations {
		return
	}
	allocationListPool.Put(al)
}
