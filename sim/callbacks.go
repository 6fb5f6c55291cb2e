package sim

import (
	"go.uber.org/zap"

	"github.com/wippyai/vhpi/abi"
	"github.com/wippyai/vhpi/errors"
	"github.com/wippyai/vhpi/simtime"
)

type callback struct {
	reason  abi.CbReason
	obj     *object
	delay   int64
	since   int64 // time of registration
	format  abi.Format
	user    uintptr
	state   abi.CbState
	removed bool
	fired   int
}

var supportedReasons = map[abi.CbReason]bool{
	abi.CbValueChange:       true,
	abi.CbForce:             true,
	abi.CbRelease:           true,
	abi.CbAfterDelay:        true,
	abi.CbRepAfterDelay:     true,
	abi.CbNextTimeStep:      true,
	abi.CbRepNextTimeStep:   true,
	abi.CbEndOfTimeStep:     true,
	abi.CbRepEndOfTimeStep:  true,
	abi.CbStartOfSimulation: true,
	abi.CbEndOfSimulation:   true,
}

// Bind implements abi.Native.
func (s *Simulator) Bind(d abi.Dispatcher) {
	s.dispatch = d
}

// RegisterCb implements vhpi_register_cb. The callback handle is returned
// only with abi.ReturnCb.
func (s *Simulator) RegisterCb(data *abi.CbData, flags abi.RegisterFlags) abi.Ref {
	const op = "vhpi_register_cb"
	s.begin()
	if s.faulted(FaultRegisterCb) {
		return 0
	}
	if data == nil {
		s.fail(op, errors.SeverityError, "no callback data")
		return 0
	}
	if !supportedReasons[data.Reason] {
		s.fail(op, errors.SeverityError, "callback reason %s not supported", data.Reason)
		return 0
	}

	c := &callback{
		reason: data.Reason,
		since:  s.now,
		user:   data.UserData,
		state:  abi.CbEnabled,
	}
	if flags&abi.DisableCb != 0 {
		c.state = abi.CbDisabled
	}

	if data.Reason.NeedsObject() {
		if data.Obj == 0 {
			s.fail(op, errors.SeverityError, "%s needs an object", data.Reason)
			return 0
		}
		o := s.object(data.Obj, op)
		if o == nil {
			return 0
		}
		if !o.isSignal() {
			s.fail(op, errors.SeverityError, "%s needs a signal, got %s", data.Reason, o.kind)
			return 0
		}
		c.obj = o
	}

	if data.Reason.NeedsTime() {
		if data.Time == nil {
			s.fail(op, errors.SeverityError, "%s needs a time", data.Reason)
			return 0
		}
		c.delay = data.Time.Int64()
		if c.delay < 0 || (c.delay == 0 && data.Reason == abi.CbRepAfterDelay) {
			s.fail(op, errors.SeverityError, "invalid delay %s", data.Time)
			return 0
		}
		s.schedule(&event{at: s.now + c.delay, kind: evCallback, cb: c})
	}

	if data.Value != nil {
		c.format = data.Value.Format
	}

	s.callbacks = append(s.callbacks, c)
	s.log.Debug("callback registered",
		zap.Stringer("reason", c.reason),
		zap.Stringer("time", simtime.FromInt64(s.now)))

	if flags&abi.ReturnCb == 0 {
		return 0
	}
	return s.newRef(&ref{kind: refCallback, cb: c})
}

func (s *Simulator) callback(h abi.Ref, op string) *callback {
	r := s.lookup(h, op)
	if r == nil {
		return nil
	}
	if r.kind != refCallback {
		s.fail(op, errors.SeverityError, "handle %#x is not a callback", uintptr(h))
		return nil
	}
	return r.cb
}

// RemoveCb implements vhpi_remove_cb. The callback handle is freed with the
// callback.
func (s *Simulator) RemoveCb(h abi.Ref) int32 {
	s.begin()
	if s.faulted(FaultRemoveCb) {
		return 1
	}
	c := s.callback(h, "vhpi_remove_cb")
	if c == nil {
		return 1
	}
	c.removed = true
	s.drop(h)
	s.prune()
	return 0
}

// DisableCb implements vhpi_disable_cb.
func (s *Simulator) DisableCb(h abi.Ref) int32 {
	return s.setState(h, "vhpi_disable_cb", abi.CbDisabled)
}

// EnableCb implements vhpi_enable_cb.
func (s *Simulator) EnableCb(h abi.Ref) int32 {
	return s.setState(h, "vhpi_enable_cb", abi.CbEnabled)
}

func (s *Simulator) setState(h abi.Ref, op string, state abi.CbState) int32 {
	s.begin()
	c := s.callback(h, op)
	if c == nil {
		return 1
	}
	if c.state == abi.CbMature {
		s.fail(op, errors.SeverityWarning, "callback has matured")
		return 1
	}
	c.state = state
	return 0
}

// prune drops removed and matured callbacks from the registration list.
// A matured callback stays reachable through its handle.
func (s *Simulator) prune() {
	kept := s.callbacks[:0]
	for _, c := range s.callbacks {
		if !c.removed && c.state != abi.CbMature {
			kept = append(kept, c)
		}
	}
	clear(s.callbacks[len(kept):])
	s.callbacks = kept
}

// snapshot copies the registration list so callbacks may register and
// remove callbacks while it is walked.
func (s *Simulator) snapshot() []*callback {
	out := make([]*callback, len(s.callbacks))
	copy(out, s.callbacks)
	return out
}

func (s *Simulator) fireReason(reason abi.CbReason, obj *object) {
	for _, c := range s.snapshot() {
		if c.reason == reason {
			s.fire(c, obj)
		}
	}
}

func (s *Simulator) fireObject(reason abi.CbReason, sig *object) {
	for _, c := range s.snapshot() {
		if c.reason == reason && c.obj == sig {
			s.fire(c, sig)
		}
	}
}

func (s *Simulator) fireDelayed(c *callback) {
	if c.removed {
		return
	}
	s.fire(c, nil)
	if c.reason == abi.CbRepAfterDelay && !c.removed {
		s.schedule(&event{at: s.now + c.delay, kind: evCallback, cb: c})
	}
}

// fire invokes the dispatcher for c. The object handle in the callback data
// is valid only during the call.
func (s *Simulator) fire(c *callback, obj *object) {
	if c.removed || c.state != abi.CbEnabled {
		return
	}
	if c.reason.OneShot() {
		c.state = abi.CbMature
	}
	c.fired++
	s.stats.Fired++

	if s.dispatch == nil {
		s.log.Warn("callback fired with no dispatcher bound", zap.Stringer("reason", c.reason))
		return
	}

	now := simtime.FromInt64(s.now)
	data := abi.CbData{Reason: c.reason, Time: &now, UserData: c.user}
	var borrowed abi.Ref
	if obj != nil {
		borrowed = s.newRef(&ref{kind: refObject, obj: obj, borrowed: true})
		data.Obj = borrowed
		if c.format != 0 {
			v := abi.Value{Format: c.format}
			if s.getScalar(obj, &v, "vhpi_register_cb") == 0 {
				data.Value = &v
			}
		}
	}

	s.dispatch(&data)

	if borrowed != 0 {
		s.drop(borrowed)
	}
}
