package resource

// Token is an opaque integer reference to a value held in a table.
// It is small enough to travel through a native user-data pointer.
// Token 0 is reserved and always invalid.
//
// The low 24 bits select the slot, the high 8 bits carry the slot
// generation so a token that outlived its entry never resolves to a
// later occupant of the same slot.
type Token uint32

const (
	slotBits = 24
	slotMask = 1<<slotBits - 1
	genMask  = 0xff
)

func makeToken(slot uint32, gen uint8) Token {
	return Token(uint32(gen)<<slotBits | (slot+1)&slotMask)
}

func (t Token) slot() int {
	return int(uint32(t)&slotMask) - 1
}

func (t Token) gen() uint8 {
	return uint8(uint32(t) >> slotBits & genMask)
}

// EventType enumerates table lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
	EventDeferred
	EventBorrowed
	EventBorrowReturned
)

func (e EventType) String() string {
	switch e {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	case EventDeferred:
		return "deferred"
	case EventBorrowed:
		return "borrowed"
	case EventBorrowReturned:
		return "borrow-returned"
	}
	return "unknown"
}

// Event represents a table lifecycle event.
type Event struct {
	Value  any
	Token  Token
	TypeID uint32
	Type   EventType
}

// Observer receives notifications about table lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) OnResourceEvent(e Event) { f(e) }

// Backend provides the underlying storage mechanism for table entries.
type Backend interface {
	// Create stores a value and returns a token.
	Create(typeID uint32, value any) (Token, error)

	// Get retrieves a value by token.
	Get(token Token) (any, bool)

	// Drop removes an entry and returns (value, true) if the destructor should run.
	// An entry with outstanding borrows is marked for removal instead and
	// (nil, false) is returned; the last ReturnBorrow completes the drop.
	Drop(token Token) (any, bool)

	// Borrow pins an entry for the duration of a dispatch.
	Borrow(token Token) bool

	// ReturnBorrow unpins an entry. When it was the last borrow of an entry
	// marked for removal, the entry is removed and (value, true) is returned.
	ReturnBorrow(token Token) (any, bool)

	// Close releases all entries held by the backend.
	Close() error
}

// Dropper is optionally implemented by values that need cleanup on removal.
type Dropper interface {
	Drop()
}
