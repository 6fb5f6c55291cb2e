// Package resource provides token tables for Go values that native code refers
// to by integer.
//
// Native callback registration accepts a single pointer-sized user-data word.
// Go pointers cannot be stored there, so the callback runtime keeps each
// registration in a Table and passes its Token instead. The trampoline turns the
// token back into the registration.
//
// # Lifecycle
//
//	table := resource.NewTable()
//
//	// Insert a value, get a token
//	tok := table.Insert(typeID, reg)
//
//	// Retrieve value by token
//	value, ok := table.Get(tok)
//
//	// Remove and get value
//	value, ok := table.Remove(tok)
//
// Tokens carry a slot generation. After Remove, the old token no longer resolves
// even once its slot is reused.
//
// # Borrowing
//
// An entry that is being dispatched is borrowed. A Remove issued while it is
// borrowed is deferred, and the entry disappears when the last borrow is returned:
//
//	reg, ok := table.Borrow(tok)
//	reg.fire()              // may call table.Remove(tok)
//	table.ReturnBorrow(tok) // completes the deferred removal
//
// # Type Safety
//
// Each kind of value gets a type ID, and Typed gives a generic view of one kind:
//
//	regs := resource.NewTyped[*Registration](table, 1)
//	tok := regs.Insert(reg)
//	reg, ok := regs.Get(tok)
//
// # Observers
//
// Observers see every lifecycle event:
//
//	table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    log.Printf("token %d %s", e.Token, e.Type)
//	}))
//
// Values implementing Dropper have Drop called when they leave the table.
package resource
