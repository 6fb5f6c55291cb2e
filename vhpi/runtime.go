package vhpi

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/vhpi/abi"
	"github.com/wippyai/vhpi/errors"
	"github.com/wippyai/vhpi/internal/latin1"
	"github.com/wippyai/vhpi/resource"
	"github.com/wippyai/vhpi/simtime"
)

const registrationType uint32 = 1

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger for a runtime. Without it the package Logger is
// used.
func WithLogger(l *zap.Logger) Option {
	return func(rt *Runtime) {
		rt.log = l
	}
}

// WithPanicHandler installs fn to observe panics recovered from callbacks.
// A panic never propagates into the simulator.
func WithPanicHandler(fn func(reason abi.CbReason, v any)) Option {
	return func(rt *Runtime) {
		rt.onPanic = fn
	}
}

// Runtime is the safe view of one native backend. All methods must be called
// from the simulator thread: at plugin startup or inside a callback.
type Runtime struct {
	native  abi.Native
	log     *zap.Logger
	table   *resource.Table
	regs    *resource.Typed[*Registration]
	onPanic func(abi.CbReason, any)
	buffers atomic.Int64
}

// New wraps a native backend and binds its callback dispatcher.
func New(native abi.Native, opts ...Option) *Runtime {
	rt := &Runtime{native: native}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.log == nil {
		rt.log = Logger()
	}

	rt.table = resource.NewTable()
	rt.table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
		rt.log.Debug("registration table",
			zap.Stringer("event", e.Type),
			zap.Uint32("token", uint32(e.Token)))
	}))
	rt.regs = resource.NewTyped[*Registration](rt.table, registrationType)

	native.Bind(rt.dispatch)
	return rt
}

// Native returns the wrapped backend.
func (rt *Runtime) Native() abi.Native {
	return rt.native
}

// LiveBuffers reports how many codec buffers are currently held for native
// calls. It is zero whenever no GetValue or PutValue is in progress.
func (rt *Runtime) LiveBuffers() int64 {
	return rt.buffers.Load()
}

// Registrations reports the number of callbacks whose closures are retained.
func (rt *Runtime) Registrations() int {
	return rt.regs.Len()
}

// CheckError reads the native diagnostic record left by the previous call.
// It returns nil when no error is pending. The record is overwritten by the
// next native call, so check before doing anything else.
func (rt *Runtime) CheckError() *errors.Diagnostic {
	var info abi.ErrorInfo
	if !rt.native.CheckError(&info) {
		return nil
	}
	return &errors.Diagnostic{
		Severity: errors.Severity(info.Severity),
		Message:  latin1.Decode(info.Message),
		Context:  latin1.Decode(info.Str),
		File:     latin1.Decode(info.File),
		Line:     info.Line,
	}
}

// fail builds the error for a native call that just reported failure.
func (rt *Runtime) fail(phase errors.Phase, op string) *errors.Error {
	return errors.Native(phase, op, rt.CheckError())
}

// Time returns the current simulation time.
func (rt *Runtime) Time() simtime.Time {
	var t simtime.Time
	rt.native.GetTime(&t, nil)
	return t
}

// Cycles returns the number of delta cycles executed so far.
func (rt *Runtime) Cycles() int64 {
	var n int64
	rt.native.GetTime(nil, &n)
	return n
}

// NextTime returns the time of the next scheduled event. ok is false when the
// event queue is empty.
func (rt *Runtime) NextTime() (t simtime.Time, ok bool, err error) {
	switch rc := rt.native.GetNextTime(&t); rc {
	case 0:
		return t, true, nil
	case 1:
		return simtime.Time{}, false, nil
	default:
		return simtime.Time{}, false, rt.fail(errors.PhaseControl, "get next time")
	}
}

// Control asks the simulator to stop, finish or reset.
func (rt *Runtime) Control(cmd abi.Control) error {
	if rc := rt.native.Control(cmd); rc != 0 {
		return rt.fail(errors.PhaseControl, "control "+cmd.String())
	}
	return nil
}

// Printf writes a formatted message to the simulator's output. Characters
// outside ISO-8859-1 are printed as '?'.
func (rt *Runtime) Printf(format string, args ...any) error {
	msg := latin1.Encode(fmt.Sprintf(format, args...))
	if rc := rt.native.Printf(msg); rc < 0 {
		return rt.fail(errors.PhaseControl, "printf")
	}
	return nil
}

// Assert raises a VHDL-style assertion with the given severity.
func (rt *Runtime) Assert(severity errors.Severity, msg string) error {
	if rc := rt.native.Assert(int32(severity), latin1.Encode(msg)); rc != 0 {
		return rt.fail(errors.PhaseControl, "assert")
	}
	return nil
}

// Null returns the null handle for this runtime.
func (rt *Runtime) Null() *Handle {
	return &Handle{rt: rt}
}

func (rt *Runtime) wrap(ref abi.Ref) *Handle {
	return &Handle{rt: rt, ref: ref}
}

// Handle follows a one-to-one relation from the given handle, or from the
// global scope when from is nil or null. The result is owned by the caller
// and is the null handle when the relation does not hold.
func (rt *Runtime) Handle(rel abi.OneToOne, from *Handle) *Handle {
	return rt.wrap(rt.native.Handle(rel, from.raw()))
}

// HandleByName resolves a hierarchical name relative to scope, or from the
// root when scope is nil. A name that does not resolve yields the null
// handle, not an error.
func (rt *Runtime) HandleByName(name string, scope *Handle) *Handle {
	if name == "" || !latin1.Representable(name) {
		return rt.Null()
	}
	return rt.wrap(rt.native.HandleByName(latin1.Encode(name), scope.raw()))
}

// Iterator starts a one-to-many walk from the given handle. Each element it
// yields is owned by the caller.
func (rt *Runtime) Iterator(rel abi.OneToMany, from *Handle) *Iterator {
	return &Iterator{rt: rt, ref: rt.native.Iterator(rel, from.raw())}
}

// Close cancels every live registration. The runtime accepts no further
// registrations afterwards.
func (rt *Runtime) Close() error {
	var live []*Registration
	rt.regs.Each(func(_ resource.Token, r *Registration) bool {
		live = append(live, r)
		return true
	})

	var err error
	for _, r := range live {
		err = multierr.Append(err, r.Cancel())
	}
	return multierr.Append(err, rt.table.Close())
}
