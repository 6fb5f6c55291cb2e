package resource

import (
	"errors"
	"sync"
)

var (
	ErrClosed = errors.New("resource backend closed")
	ErrFull   = errors.New("resource backend slot space exhausted")
)

// LocalBackend is an in-memory backend with borrow tracking.
type LocalBackend struct {
	entries  []entry
	freeList []uint32
	mu       sync.RWMutex
	closed   bool
}

type entry struct {
	value       any
	typeID      uint32
	borrowCount uint32
	gen         uint8
	valid       bool
	dropPending bool
}

// NewLocalBackend creates a new in-memory backend.
func NewLocalBackend() *LocalBackend {
	return &LocalBackend{
		entries:  make([]entry, 0, 64),
		freeList: make([]uint32, 0, 16),
	}
}

// Create stores a value and returns a token.
func (b *LocalBackend) Create(typeID uint32, value any) (Token, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, ErrClosed
	}

	if n := len(b.freeList); n > 0 {
		slot := b.freeList[n-1]
		b.freeList = b.freeList[:n-1]
		e := &b.entries[slot]
		e.gen++
		e.typeID = typeID
		e.value = value
		e.valid = true
		return makeToken(slot, e.gen), nil
	}

	if len(b.entries) >= slotMask {
		return 0, ErrFull
	}
	b.entries = append(b.entries, entry{
		typeID: typeID,
		value:  value,
		valid:  true,
	})
	return makeToken(uint32(len(b.entries)-1), 0), nil
}

// lookup returns the live entry for token. Caller holds the lock.
func (b *LocalBackend) lookup(token Token) *entry {
	if token == 0 {
		return nil
	}
	idx := token.slot()
	if idx < 0 || idx >= len(b.entries) {
		return nil
	}
	e := &b.entries[idx]
	if !e.valid || e.gen != token.gen() {
		return nil
	}
	return e
}

// Get retrieves a value by token. Entries marked for removal are not visible.
func (b *LocalBackend) Get(token Token) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e := b.lookup(token)
	if e == nil || e.dropPending {
		return nil, false
	}
	return e.value, true
}

// TypeID returns the type ID for a token.
func (b *LocalBackend) TypeID(token Token) (uint32, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e := b.lookup(token)
	if e == nil {
		return 0, false
	}
	return e.typeID, true
}

// Drop removes an entry, or marks it for removal while borrowed.
func (b *LocalBackend) Drop(token Token) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.lookup(token)
	if e == nil || e.dropPending {
		return nil, false
	}
	if e.borrowCount > 0 {
		e.dropPending = true
		return nil, false
	}
	return b.free(token), true
}

// free clears the slot for token. Caller holds the lock.
func (b *LocalBackend) free(token Token) any {
	e := &b.entries[token.slot()]
	value := e.value
	e.valid = false
	e.value = nil
	e.borrowCount = 0
	e.dropPending = false
	b.freeList = append(b.freeList, uint32(token.slot()))
	return value
}

// Pending reports whether a drop is waiting for borrows to be returned.
func (b *LocalBackend) Pending(token Token) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e := b.lookup(token)
	return e != nil && e.dropPending
}

// Borrow increments the borrow count for a token.
func (b *LocalBackend) Borrow(token Token) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.lookup(token)
	if e == nil || e.dropPending {
		return false
	}
	e.borrowCount++
	return true
}

// ReturnBorrow decrements the borrow count for a token and completes a
// deferred drop when the count reaches zero.
func (b *LocalBackend) ReturnBorrow(token Token) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.lookup(token)
	if e == nil || e.borrowCount == 0 {
		return nil, false
	}
	e.borrowCount--
	if e.borrowCount == 0 && e.dropPending {
		return b.free(token), true
	}
	return nil, false
}

// Close releases all entries.
func (b *LocalBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for i := range b.entries {
		if b.entries[i].valid {
			if d, ok := b.entries[i].value.(Dropper); ok {
				d.Drop()
			}
			b.entries[i].valid = false
			b.entries[i].value = nil
		}
	}

	b.entries = nil
	b.freeList = nil
	return nil
}

// Len returns the number of live entries, including ones pending removal.
func (b *LocalBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, e := range b.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// Each iterates over all visible entries.
func (b *LocalBackend) Each(fn func(Token, uint32, any) bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for i, e := range b.entries {
		if e.valid && !e.dropPending {
			if !fn(makeToken(uint32(i), e.gen), e.typeID, e.value) {
				break
			}
		}
	}
}
