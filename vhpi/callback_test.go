package vhpi

import (
	"context"
	stderrors "errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/vhpi/abi"
	"github.com/wippyai/vhpi/errors"
	"github.com/wippyai/vhpi/logic"
	"github.com/wippyai/vhpi/sim"
	"github.com/wippyai/vhpi/simtime"
)

func TestRegisterAfterDelay(t *testing.T) {
	s := newSim(t)
	rt := newRuntime(t, s)
	ctx := context.Background()

	var got []simtime.Time
	reg, err := rt.RegisterAfterDelay(ns(15), func(d *CbData) {
		got = append(got, d.Time)
	})
	if err != nil {
		t.Fatalf("RegisterAfterDelay: %v", err)
	}
	if reg.Reason() != abi.CbAfterDelay || !reg.Active() || rt.Registrations() != 1 {
		t.Fatalf("registration = %+v", reg)
	}
	if st, err := reg.State(); err != nil || st != abi.CbEnabled {
		t.Errorf("state = %d, %v", st, err)
	}

	if err := s.RunUntil(ctx, ns(14)); err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("fired early at %v", got)
	}

	if err := s.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != ns(15) {
		t.Fatalf("fired at %v", got)
	}
	if reg.Fired() != 1 || reg.Active() || !reg.Handle().IsNull() {
		t.Errorf("after firing: fired=%d active=%v", reg.Fired(), reg.Active())
	}
	if rt.Registrations() != 0 {
		t.Errorf("Registrations = %d", rt.Registrations())
	}
	if st, err := reg.State(); err != nil || st != abi.CbMature {
		t.Errorf("state = %d, %v", st, err)
	}
	if err := reg.Cancel(); err != nil {
		t.Errorf("Cancel of a retired registration: %v", err)
	}

	st := s.Stats()
	if st.LiveHandles != 0 || st.DoubleReleases != 0 || st.BorrowedReleases != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestValueChange_BorrowedObject(t *testing.T) {
	s := newSim(t)
	rt := newRuntime(t, s)

	q := rt.HandleByName("q", nil)
	defer q.Release()

	var seen []Value
	var obj *Handle
	reg, err := q.RegisterCb(abi.CbValueChange, func(d *CbData) {
		if !d.Obj.Borrowed() || !d.Obj.Equal(q) {
			t.Errorf("callback object %v is not a borrowed q", d.Obj.Raw())
		}
		v, err := d.Obj.GetValue(abi.BinStrVal)
		if err != nil {
			t.Errorf("GetValue: %v", err)
		}
		seen = append(seen, v)
		if err := d.Obj.Release(); err != nil {
			t.Errorf("Release of borrowed handle: %v", err)
		}
		obj = d.Obj
	})
	if err != nil {
		t.Fatalf("RegisterCb: %v", err)
	}

	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 || seen[0] != BinStr("1010") {
		t.Fatalf("seen = %v", seen)
	}
	if obj == nil || !obj.IsNull() {
		t.Error("borrowed handle still valid after the callback returned")
	}
	if !reg.Active() {
		t.Error("value change registration retired after firing")
	}

	if err := reg.Cancel(); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if !reg.Handle().IsNull() || rt.Registrations() != 0 {
		t.Errorf("after Cancel: handle=%v registrations=%d", reg.Handle().Raw(), rt.Registrations())
	}

	st := s.Stats()
	if st.BorrowedReleases != 0 || st.DoubleReleases != 0 || st.ActiveCallbacks != 0 {
		t.Errorf("stats = %+v", st)
	}
	if st.LiveHandles != 1 {
		t.Errorf("LiveHandles = %d, want 1", st.LiveHandles)
	}
}

func TestValueChange_WithValueFormat(t *testing.T) {
	s := newSim(t)
	rt := newRuntime(t, s)

	en := rt.HandleByName("u1.en", nil)
	defer en.Release()

	var got []Value
	if _, err := en.RegisterCb(abi.CbValueChange, func(d *CbData) {
		got = append(got, d.Value)
	}, WithValueFormat(abi.LogicVal)); err != nil {
		t.Fatalf("RegisterCb: %v", err)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != Logic(logic.Zero) {
		t.Errorf("values = %v", got)
	}
}

func TestCancel_InsideCallback(t *testing.T) {
	s := newSim(t)
	rt := newRuntime(t, s)

	var reg *Registration
	var at []simtime.Time
	reg, err := rt.RegisterCb(abi.CbRepAfterDelay, func(d *CbData) {
		at = append(at, d.Time)
		if len(at) == 2 {
			if err := reg.Cancel(); err != nil {
				t.Errorf("Cancel: %v", err)
			}
			if rt.Registrations() != 0 {
				t.Errorf("cancelled registration still counted")
			}
		}
	}, WithTime(ns(5)))
	if err != nil {
		t.Fatalf("RegisterCb: %v", err)
	}

	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(at) != 2 || at[0] != ns(5) || at[1] != ns(10) {
		t.Errorf("fired at %v", at)
	}
	if reg.Active() || rt.Registrations() != 0 {
		t.Errorf("active=%v registrations=%d", reg.Active(), rt.Registrations())
	}
	if st := s.Stats(); st.LiveHandles != 0 || st.DoubleReleases != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestDispatch_PanicRecovered(t *testing.T) {
	s := newSim(t)
	var panics []any
	rt := newRuntime(t, s, WithPanicHandler(func(reason abi.CbReason, v any) {
		if reason != abi.CbStartOfSimulation {
			t.Errorf("reason = %s", reason)
		}
		panics = append(panics, v)
	}))

	if _, err := rt.RegisterCb(abi.CbStartOfSimulation, func(*CbData) {
		panic("boom")
	}); err != nil {
		t.Fatal(err)
	}
	second := 0
	if _, err := rt.RegisterCb(abi.CbStartOfSimulation, func(*CbData) {
		second++
	}); err != nil {
		t.Fatal(err)
	}

	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(panics) != 1 || panics[0] != "boom" {
		t.Errorf("panics = %v", panics)
	}
	if second != 1 {
		t.Errorf("second callback ran %d times", second)
	}
	if !s.Finished() {
		t.Error("simulation did not finish after a callback panicked")
	}
}

func TestRegisterCb_NativeFailure(t *testing.T) {
	s := newSim(t, func(c *sim.Config) { c.Faults = []sim.Fault{sim.FaultRegisterCb} })
	rt := newRuntime(t, s)

	_, err := rt.RegisterAfterDelay(ns(1), func(*CbData) {})
	if errKind(t, err) != errors.KindRegistration {
		t.Fatalf("err = %v", err)
	}
	var diag *errors.Diagnostic
	if !stderrors.As(err, &diag) || diag.Context != string(sim.FaultRegisterCb) {
		t.Errorf("cause = %v", err)
	}
	if rt.Registrations() != 0 {
		t.Errorf("Registrations = %d after a failed registration", rt.Registrations())
	}
}

func TestRegisterCb_Validation(t *testing.T) {
	s := newSim(t)
	rt := newRuntime(t, s)
	nop := func(*CbData) {}

	q := rt.HandleByName("q", nil)
	defer q.Release()

	tests := []struct {
		name string
		reg  func() (*Registration, error)
		kind errors.Kind
	}{
		{"nil callback", func() (*Registration, error) {
			return rt.RegisterCb(abi.CbStartOfSimulation, nil)
		}, errors.KindInvalidInput},
		{"missing object", func() (*Registration, error) {
			return rt.RegisterCb(abi.CbValueChange, nop)
		}, errors.KindNullHandle},
		{"missing time", func() (*Registration, error) {
			return rt.RegisterCb(abi.CbAfterDelay, nop)
		}, errors.KindInvalidInput},
		{"vector value format", func() (*Registration, error) {
			return q.RegisterCb(abi.CbValueChange, nop, WithValueFormat(abi.LogicVecVal))
		}, errors.KindUnsupported},
		{"negative delay", func() (*Registration, error) {
			return rt.RegisterAfterDelay(simtime.FromInt64(-1), nop)
		}, errors.KindInvalidInput},
		{"reason the simulator rejects", func() (*Registration, error) {
			return rt.RegisterCb(abi.CbEndOfProcesses, nop)
		}, errors.KindRegistration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := tt.reg()
			if err == nil {
				t.Fatalf("registered %v", reg.Reason())
			}
			if got := errKind(t, err); got != tt.kind {
				t.Errorf("kind = %s, want %s (%v)", got, tt.kind, err)
			}
		})
	}
	if rt.Registrations() != 0 {
		t.Errorf("Registrations = %d", rt.Registrations())
	}
}

func TestRegistration_DisableEnable(t *testing.T) {
	s := newSim(t)
	rt := newRuntime(t, s)

	q := rt.HandleByName("q", nil)
	defer q.Release()

	reg, err := q.RegisterCb(abi.CbValueChange, func(*CbData) {}, WithDisabled())
	if err != nil {
		t.Fatal(err)
	}
	if st, _ := reg.State(); st != abi.CbDisabled {
		t.Errorf("state = %d, want disabled", st)
	}
	if err := reg.Enable(); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	if st, _ := reg.State(); st != abi.CbEnabled {
		t.Errorf("state = %d, want enabled", st)
	}
	if err := reg.Disable(); err != nil {
		t.Fatalf("Disable: %v", err)
	}

	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if reg.Fired() != 0 {
		t.Errorf("disabled callback fired %d times", reg.Fired())
	}

	if err := reg.Cancel(); err != nil {
		t.Fatal(err)
	}
	if err := reg.Enable(); errKind(t, err) != errors.KindContract {
		t.Errorf("Enable after Cancel = %v", err)
	}
	if err := reg.Disable(); errKind(t, err) != errors.KindContract {
		t.Errorf("Disable after Cancel = %v", err)
	}
	if st, err := reg.State(); err != nil || st != abi.CbMature {
		t.Errorf("state = %d, %v", st, err)
	}
}

func TestRegistration_HandleIsBorrowed(t *testing.T) {
	s := newSim(t)
	rt := newRuntime(t, s)

	q := rt.HandleByName("q", nil)
	defer q.Release()

	fired := 0
	reg, err := q.RegisterCb(abi.CbValueChange, func(*CbData) { fired++ })
	if err != nil {
		t.Fatal(err)
	}

	view := reg.Handle()
	if view.IsNull() || !view.Borrowed() {
		t.Fatalf("Handle() = %v borrowed=%v", view.Raw(), view.Borrowed())
	}
	if err := view.Release(); err != nil {
		t.Fatalf("Release of the view: %v", err)
	}
	if !reg.Active() || reg.Handle().IsNull() {
		t.Fatal("releasing the view retired the registration")
	}
	if st, err := reg.State(); err != nil || st != abi.CbEnabled {
		t.Errorf("state = %d, %v", st, err)
	}

	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}

	if err := reg.Cancel(); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if !reg.Handle().IsNull() {
		t.Error("view not null after Cancel")
	}
	st := s.Stats()
	if st.ActiveCallbacks != 0 || st.DoubleReleases != 0 || st.BorrowedReleases != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestDispatch_Guards(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := newSim(t)
	rt := newRuntime(t, s, WithLogger(zap.New(core)))

	rt.dispatch(nil)
	rt.dispatch(&abi.CbData{Reason: abi.CbAfterDelay, UserData: 0xdead})

	for _, msg := range []string{
		"callback fired without event data",
		"callback for unknown registration",
	} {
		entries := logs.FilterMessage(msg).All()
		if len(entries) != 1 || entries[0].Level != zapcore.ErrorLevel {
			t.Errorf("%q logged %d times", msg, len(entries))
		}
	}
}

func TestClose_CancelsRegistrations(t *testing.T) {
	s := newSim(t)
	rt := New(s)

	q := rt.HandleByName("q", nil)
	defer q.Release()
	if _, err := q.RegisterCb(abi.CbValueChange, func(*CbData) {}); err != nil {
		t.Fatal(err)
	}
	if _, err := rt.RegisterCb(abi.CbEndOfSimulation, func(*CbData) {}); err != nil {
		t.Fatal(err)
	}
	late, err := rt.RegisterAfterDelay(ns(50), func(*CbData) {})
	if err != nil {
		t.Fatal(err)
	}

	if err := rt.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if late.Active() || rt.Registrations() != 0 {
		t.Errorf("active=%v registrations=%d", late.Active(), rt.Registrations())
	}
	if st := s.Stats(); st.ActiveCallbacks != 0 {
		t.Errorf("ActiveCallbacks = %d", st.ActiveCallbacks)
	}

	if _, err := rt.RegisterAfterDelay(ns(1), func(*CbData) {}); errKind(t, err) != errors.KindContract {
		t.Errorf("register after Close = %v", err)
	}
	if err := rt.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
