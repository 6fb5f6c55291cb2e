package abi

import "github.com/wippyai/vhpi/simtime"

// Dispatcher receives every callback the simulator fires. The CbData and any
// Time or Value it points to are only valid for the duration of the call.
type Dispatcher func(*CbData)

// Native is the raw procedural interface. Method names and return codes follow
// the vhpi_* functions they mirror: integer results below zero and zero Refs
// signal failure, and the details are read with CheckError before any other
// call is made.
//
// Strings cross this boundary as ISO-8859-1 bytes without the terminating NUL.
type Native interface {
	Handle(rel OneToOne, ref Ref) Ref
	HandleByName(name []byte, scope Ref) Ref
	Iterator(rel OneToMany, ref Ref) Ref
	// Scan returns the next element, or 0 when the iterator is exhausted.
	// An exhausted iterator has been released by the simulator.
	Scan(iter Ref) Ref
	// Release returns 0 on success.
	Release(ref Ref) int32
	Compare(a, b Ref) bool

	Get(p IntProperty, ref Ref) int32
	GetStr(p StrProperty, ref Ref) ([]byte, bool)
	GetReal(p RealProperty, ref Ref) float64
	GetPhys(p PhysProperty, ref Ref) simtime.Physical

	// GetValue fills v. ObjTypeVal is first replaced by the object's own
	// format. With a buffered format and too small a buffer it returns the
	// number of elements required and fills nothing else.
	// It returns 0 on success and -1 on failure.
	GetValue(ref Ref, v *Value) int32
	PutValue(ref Ref, v *Value, mode PutMode) int32

	// Bind installs the dispatcher for all registrations.
	Bind(d Dispatcher)
	RegisterCb(cb *CbData, flags RegisterFlags) Ref
	RemoveCb(cb Ref) int32
	DisableCb(cb Ref) int32
	EnableCb(cb Ref) int32

	// GetTime writes the current time and delta count; either may be nil.
	GetTime(t *simtime.Time, cycles *int64)
	// GetNextTime returns 0 when an event is scheduled and 1 when the
	// queue is empty.
	GetNextTime(t *simtime.Time) int32
	Control(cmd Control) int32

	// CheckError reports whether an error is pending and fills info.
	CheckError(info *ErrorInfo) bool
	Printf(msg []byte) int32
	Assert(severity int32, msg []byte) int32
}
