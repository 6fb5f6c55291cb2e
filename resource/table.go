package resource

import (
	"sync"
)

// Table layers observers and destructor calls over a LocalBackend.
type Table struct {
	backend   *LocalBackend
	observers []Observer
	obsMu     sync.RWMutex
	closed    bool
	closeMu   sync.RWMutex
}

// NewTable creates a new table with a LocalBackend.
func NewTable() *Table {
	return &Table{
		backend: NewLocalBackend(),
	}
}

// Insert adds a value and returns its token, or 0 once the table is closed.
func (t *Table) Insert(typeID uint32, value any) Token {
	t.closeMu.RLock()
	if t.closed {
		t.closeMu.RUnlock()
		return 0
	}
	t.closeMu.RUnlock()

	token, err := t.backend.Create(typeID, value)
	if err != nil {
		return 0
	}

	t.notify(Event{
		Type:   EventCreated,
		Token:  token,
		TypeID: typeID,
		Value:  value,
	})

	return token
}

// Get retrieves a value by token.
func (t *Table) Get(token Token) (any, bool) {
	return t.backend.Get(token)
}

// GetTyped retrieves a value only if it matches the expected type.
func (t *Table) GetTyped(token Token, typeID uint32) (any, bool) {
	actualTypeID, ok := t.backend.TypeID(token)
	if !ok || actualTypeID != typeID {
		return nil, false
	}
	return t.backend.Get(token)
}

// Remove drops an entry and returns (value, true) if it was removed now.
// A borrowed entry is removed when its last borrow is returned.
func (t *Table) Remove(token Token) (any, bool) {
	typeID, _ := t.backend.TypeID(token)
	value, ok := t.backend.Drop(token)
	if !ok {
		if t.backend.Pending(token) {
			t.notify(Event{Type: EventDeferred, Token: token, TypeID: typeID})
		}
		return nil, false
	}
	t.dropped(token, typeID, value)
	return value, true
}

// Borrow pins an entry so a Remove during use is deferred.
func (t *Table) Borrow(token Token) (any, bool) {
	if !t.backend.Borrow(token) {
		return nil, false
	}
	value, _ := t.backend.Get(token)
	typeID, _ := t.backend.TypeID(token)
	t.notify(Event{Type: EventBorrowed, Token: token, TypeID: typeID, Value: value})
	return value, true
}

// ReturnBorrow unpins an entry. It reports whether a deferred removal completed.
func (t *Table) ReturnBorrow(token Token) bool {
	typeID, _ := t.backend.TypeID(token)
	value, removed := t.backend.ReturnBorrow(token)
	t.notify(Event{Type: EventBorrowReturned, Token: token, TypeID: typeID})
	if removed {
		t.dropped(token, typeID, value)
	}
	return removed
}

func (t *Table) dropped(token Token, typeID uint32, value any) {
	if d, ok := value.(Dropper); ok {
		d.Drop()
	}
	t.notify(Event{
		Type:   EventDropped,
		Token:  token,
		TypeID: typeID,
		Value:  value,
	})
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of live entries.
func (t *Table) Len() int {
	return t.backend.Len()
}

// Each iterates over all visible entries.
func (t *Table) Each(fn func(Token, uint32, any) bool) {
	t.backend.Each(fn)
}

// Clear drops all entries.
func (t *Table) Clear() {
	// Collect tokens first to avoid holding the lock during Remove
	var tokens []Token
	t.backend.Each(func(tok Token, _ uint32, _ any) bool {
		tokens = append(tokens, tok)
		return true
	})
	for _, tok := range tokens {
		t.Remove(tok)
	}
}

// Close releases all entries and stops accepting inserts.
func (t *Table) Close() error {
	t.closeMu.Lock()
	t.closed = true
	t.closeMu.Unlock()

	return t.backend.Close()
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}

// Typed provides type-safe access to entries of one Go type sharing a Table.
type Typed[T any] struct {
	table  *Table
	typeID uint32
}

// NewTyped binds typeID on table to values of type T.
func NewTyped[T any](table *Table, typeID uint32) *Typed[T] {
	return &Typed[T]{table: table, typeID: typeID}
}

// Insert adds a value and returns its token.
func (t *Typed[T]) Insert(value T) Token {
	return t.table.Insert(t.typeID, value)
}

// Get retrieves a value by token.
func (t *Typed[T]) Get(token Token) (T, bool) {
	v, ok := t.table.GetTyped(token, t.typeID)
	if !ok {
		var zero T
		return zero, false
	}
	tv, ok := v.(T)
	return tv, ok
}

// Remove drops an entry and returns (value, true) if it was removed now.
func (t *Typed[T]) Remove(token Token) (T, bool) {
	var zero T
	if _, ok := t.table.GetTyped(token, t.typeID); !ok {
		return zero, false
	}
	v, ok := t.table.Remove(token)
	if !ok {
		return zero, false
	}
	tv, ok := v.(T)
	return tv, ok
}

// Len returns the number of live entries of this type.
func (t *Typed[T]) Len() int {
	n := 0
	t.table.Each(func(_ Token, typeID uint32, _ any) bool {
		if typeID == t.typeID {
			n++
		}
		return true
	})
	return n
}

// Each iterates over visible entries of this type.
func (t *Typed[T]) Each(fn func(Token, T) bool) {
	t.table.Each(func(tok Token, typeID uint32, v any) bool {
		if typeID != t.typeID {
			return true
		}
		tv, ok := v.(T)
		if !ok {
			return true
		}
		return fn(tok, tv)
	})
}
