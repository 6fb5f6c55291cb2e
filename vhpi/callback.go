package vhpi

import (
	"go.uber.org/zap"

	"github.com/wippyai/vhpi/abi"
	"github.com/wippyai/vhpi/errors"
	"github.com/wippyai/vhpi/resource"
	"github.com/wippyai/vhpi/simtime"
)

// CbData is the event delivered to a callback. Obj is borrowed and becomes
// null when the callback returns; Release it never.
type CbData struct {
	Reason abi.CbReason
	Obj    *Handle
	Time   simtime.Time
	// Value is set for registrations made WithValueFormat.
	Value Value
}

// Callback handles one simulator event.
type Callback func(*CbData)

// CbOption configures a registration.
type CbOption func(*cbConfig)

type cbConfig struct {
	obj      *Handle
	time     *simtime.Time
	format   abi.Format
	disabled bool
}

// WithObject sets the object the callback is attached to, as required by
// value change and similar reasons.
func WithObject(h *Handle) CbOption {
	return func(c *cbConfig) {
		c.obj = h
	}
}

// WithTime sets the delay for AfterDelay and TimeOut reasons.
func WithTime(t simtime.Time) CbOption {
	return func(c *cbConfig) {
		c.time = &t
	}
}

// WithValueFormat asks the simulator to deliver the object's new value in
// the given scalar format.
func WithValueFormat(f abi.Format) CbOption {
	return func(c *cbConfig) {
		c.format = f
	}
}

// WithDisabled registers the callback in the disabled state.
func WithDisabled() CbOption {
	return func(c *cbConfig) {
		c.disabled = true
	}
}

// Registration is a registered callback. Persistent registrations stay live
// until Cancel. One-shot registrations retire themselves after firing.
type Registration struct {
	rt     *Runtime
	handle *Handle
	token  resource.Token
	reason abi.CbReason
	fn     Callback
	fired  int
	done   bool
}

// Reason returns the reason the callback was registered for.
func (r *Registration) Reason() abi.CbReason {
	return r.reason
}

// Handle returns a borrowed view of the native callback handle. The
// registration keeps ownership, so releasing the view does nothing; use
// Cancel. The view is null once the registration has been cancelled or a
// one-shot callback has fired.
func (r *Registration) Handle() *Handle {
	if r.handle.IsNull() {
		return r.rt.Null()
	}
	return &Handle{rt: r.rt, ref: r.handle.ref, borrowed: true}
}

// Fired reports how many times the callback has run.
func (r *Registration) Fired() int {
	return r.fired
}

// Active reports whether the callback can still fire.
func (r *Registration) Active() bool {
	return r != nil && !r.done
}

// Cancel removes the callback and frees its closure. It is safe to call from
// inside the callback itself and more than once.
func (r *Registration) Cancel() error {
	if r == nil || r.done {
		return nil
	}
	r.done = true
	r.rt.regs.Remove(r.token)

	// A successful remove frees the callback handle along with the callback.
	if rc := r.rt.native.RemoveCb(r.handle.ref); rc != 0 {
		err := r.rt.fail(errors.PhaseRegister, "remove callback")
		if rerr := r.handle.Release(); rerr != nil {
			r.rt.log.Debug("release after failed remove", zap.Error(rerr))
		}
		return err
	}
	r.handle.invalidate()
	return nil
}

// Disable stops the callback from firing until Enable.
func (r *Registration) Disable() error {
	if !r.Active() {
		return errors.Contract(errors.PhaseRegister, "disable of retired callback")
	}
	if rc := r.rt.native.DisableCb(r.handle.ref); rc != 0 {
		return r.rt.fail(errors.PhaseRegister, "disable callback")
	}
	return nil
}

// Enable re-enables a disabled callback.
func (r *Registration) Enable() error {
	if !r.Active() {
		return errors.Contract(errors.PhaseRegister, "enable of retired callback")
	}
	if rc := r.rt.native.EnableCb(r.handle.ref); rc != 0 {
		return r.rt.fail(errors.PhaseRegister, "enable callback")
	}
	return nil
}

// State reads the simulator's view of the callback.
func (r *Registration) State() (abi.CbState, error) {
	if !r.Active() {
		return abi.CbMature, nil
	}
	v, err := r.handle.Int(abi.StateP)
	return abi.CbState(v), err
}

// RegisterCb registers fn for reason. The closure is retained until the
// registration is cancelled, or until it fires for one-shot reasons.
func (rt *Runtime) RegisterCb(reason abi.CbReason, fn Callback, opts ...CbOption) (*Registration, error) {
	if fn == nil {
		return nil, errors.InvalidInput(errors.PhaseRegister, "nil callback")
	}
	var cfg cbConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if reason.NeedsObject() && cfg.obj.IsNull() {
		return nil, errors.NullHandle(errors.PhaseRegister, "register "+reason.String())
	}
	if reason.NeedsTime() && cfg.time == nil {
		return nil, errors.InvalidInput(errors.PhaseRegister, reason.String()+" needs a time")
	}
	if cfg.format.Buffered() {
		return nil, errors.UnsupportedFormat(errors.PhaseRegister, cfg.format.String())
	}

	reg := &Registration{rt: rt, reason: reason, fn: fn}
	tok := rt.regs.Insert(reg)
	if tok == 0 {
		return nil, errors.Contract(errors.PhaseRegister, "runtime closed")
	}
	reg.token = tok

	cb := abi.CbData{
		Reason:   reason,
		Obj:      cfg.obj.raw(),
		Time:     cfg.time,
		UserData: uintptr(tok),
	}
	if cfg.format != 0 {
		cb.Value = &abi.Value{Format: cfg.format}
	}
	flags := abi.ReturnCb
	if cfg.disabled {
		flags |= abi.DisableCb
	}

	ref := rt.native.RegisterCb(&cb, flags)
	if ref == 0 {
		var cause error
		if diag := rt.CheckError(); diag != nil {
			cause = diag
		}
		rt.regs.Remove(tok)
		err := errors.Registration(reason.String(), cause)
		rt.log.Warn("callback registration failed", zap.Stringer("reason", reason), zap.Error(err))
		return nil, err
	}
	reg.handle = rt.wrap(ref)
	return reg, nil
}

// RegisterAfterDelay registers a one-shot callback that fires delay after
// the current time.
func (rt *Runtime) RegisterAfterDelay(delay simtime.Time, fn Callback) (*Registration, error) {
	if delay.Int64() < 0 {
		return nil, errors.InvalidInput(errors.PhaseRegister, "negative delay "+delay.String())
	}
	return rt.RegisterCb(abi.CbAfterDelay, fn, WithTime(delay))
}

// dispatch is the single entry point for every callback the backend fires.
func (rt *Runtime) dispatch(data *abi.CbData) {
	if data == nil {
		rt.log.Error("callback fired without event data")
		return
	}

	tok := resource.Token(data.UserData)
	v, ok := rt.table.Borrow(tok)
	if !ok {
		rt.log.Error("callback for unknown registration",
			zap.Stringer("reason", data.Reason),
			zap.Uint32("token", uint32(tok)))
		return
	}
	reg := v.(*Registration)

	cb := &CbData{
		Reason: data.Reason,
		Obj:    &Handle{rt: rt, ref: data.Obj, borrowed: true},
	}
	if data.Time != nil {
		cb.Time = *data.Time
	}
	if data.Value != nil {
		val, err := decode(data.Value)
		if err != nil {
			rt.log.Error("callback value not decodable", zap.Stringer("reason", data.Reason), zap.Error(err))
		}
		cb.Value = val
	}

	reg.fired++
	rt.invoke(reg, cb)
	cb.Obj.invalidate()

	if reg.reason.OneShot() && !reg.done {
		reg.done = true
		rt.regs.Remove(tok)
		if err := reg.handle.Release(); err != nil {
			rt.log.Debug("release of matured callback failed", zap.Error(err))
		}
	}
	rt.table.ReturnBorrow(tok)
}

func (rt *Runtime) invoke(reg *Registration, cb *CbData) {
	defer func() {
		if r := recover(); r != nil {
			rt.log.Error("callback panicked", zap.Stringer("reason", cb.Reason), zap.Any("panic", r))
			if rt.onPanic != nil {
				rt.onPanic(cb.Reason, r)
			}
		}
	}()
	reg.fn(cb)
}
