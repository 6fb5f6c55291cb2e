package sim

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"unsafe"

	"github.com/wippyai/vhpi/abi"
	"github.com/wippyai/vhpi/errors"
	"github.com/wippyai/vhpi/simtime"
)

func newSim(t *testing.T, src string, opts ...func(*Config)) *Simulator {
	t.Helper()
	d, err := LoadDesign(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadDesign: %v", err)
	}
	cfg := Config{Design: d}
	for _, opt := range opts {
		opt(&cfg)
	}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func mustHandle(t *testing.T, s *Simulator, name string) abi.Ref {
	t.Helper()
	h := s.HandleByName([]byte(name), 0)
	if h == 0 {
		t.Fatalf("handle %q not found", name)
	}
	return h
}

// readText runs both phases of a string read.
func readText(t *testing.T, s *Simulator, h abi.Ref, f abi.Format) string {
	t.Helper()
	v := abi.Value{Format: f}
	rc := s.GetValue(h, &v)
	if rc <= 0 {
		t.Fatalf("sizing call returned %d", rc)
	}
	buf := make([]byte, rc)
	v.Ptr = unsafe.Pointer(&buf[0])
	v.BufSize = uintptr(len(buf))
	if rc := s.GetValue(h, &v); rc != 0 {
		t.Fatalf("fill call returned %d", rc)
	}
	if buf[v.NumElems] != 0 {
		t.Fatal("string not NUL terminated")
	}
	return string(buf[:v.NumElems])
}

func ns(n int64) simtime.Time {
	return simtime.Of(n, simtime.Nanosecond)
}

func TestHandles(t *testing.T) {
	s := newSim(t, counterDesign)

	en := mustHandle(t, s, "top.u1.en")
	if got := s.Get(abi.KindP, en); got != int32(abi.SigDeclK) {
		t.Errorf("KindP = %d", got)
	}
	tests := []struct {
		prop abi.StrProperty
		want string
	}{
		{abi.NameP, "EN"},
		{abi.CaseNameP, "en"},
		{abi.FullNameP, ":TOP:U1:EN"},
		{abi.KindStrP, "vhpiSigDeclK"},
		{abi.FileNameP, "top.vhd"},
	}
	for _, tt := range tests {
		got, ok := s.GetStr(tt.prop, en)
		if !ok || string(got) != tt.want {
			t.Errorf("GetStr(%d) = %q, %v; want %q", tt.prop, got, ok, tt.want)
		}
	}

	parent := s.Handle(abi.Parent, en)
	if got, _ := s.GetStr(abi.NameP, parent); string(got) != "U1" {
		t.Errorf("parent = %q", got)
	}
	u1 := mustHandle(t, s, ":top:u1")
	if !s.Compare(parent, u1) {
		t.Error("parent and u1 should compare equal")
	}

	for _, h := range []abi.Ref{en, parent, u1} {
		if rc := s.Release(h); rc != 0 {
			t.Fatalf("Release = %d", rc)
		}
	}
	st := s.Stats()
	if st.LiveHandles != 0 || st.Releases != 3 {
		t.Errorf("stats = %+v", st)
	}

	if rc := s.Release(en); rc == 0 {
		t.Error("second release should fail")
	}
	if st := s.Stats(); st.DoubleReleases != 1 {
		t.Errorf("DoubleReleases = %d", st.DoubleReleases)
	}
}

func TestHandleByName_NotFound(t *testing.T) {
	s := newSim(t, counterDesign)
	if h := s.HandleByName([]byte("top.nope"), 0); h != 0 {
		t.Fatalf("got %#x", h)
	}
	var info abi.ErrorInfo
	if !s.CheckError(&info) {
		t.Fatal("no error recorded")
	}
	if !strings.Contains(string(info.Message), "not found") {
		t.Errorf("message = %q", info.Message)
	}

	// The next call clears the record.
	s.GetTime(nil, nil)
	if s.CheckError(&info) {
		t.Error("error record survived a later call")
	}
}

func TestIterator(t *testing.T) {
	s := newSim(t, counterDesign)
	root := s.Handle(abi.RootInst, 0)

	it := s.Iterator(abi.Decls, root)
	if it == 0 {
		t.Fatal("no iterator")
	}
	var names []string
	for h := s.Scan(it); h != 0; h = s.Scan(it) {
		n, _ := s.GetStr(abi.CaseNameP, h)
		names = append(names, string(n))
		s.Release(h)
	}
	if got := strings.Join(names, ","); got != "clk,q,state,count,msg,b" {
		t.Errorf("decls = %s", got)
	}

	// Exhaustion frees the iterator.
	if rc := s.Release(it); rc == 0 {
		t.Error("exhausted iterator still valid")
	}

	if it := s.Iterator(abi.SigDecls, mustHandle(t, s, "top.u1.en")); it != 0 {
		t.Error("signal has no declarations")
	}
}

func TestIterator_EnumLiterals(t *testing.T) {
	s := newSim(t, counterDesign)
	state := mustHandle(t, s, "state")
	typ := s.Handle(abi.Type, state)
	if got := s.Get(abi.NumLiteralsP, typ); got != 3 {
		t.Fatalf("NumLiteralsP = %d", got)
	}

	it := s.Iterator(abi.EnumLiterals, typ)
	var lits []string
	for h := s.Scan(it); h != 0; h = s.Scan(it) {
		n, _ := s.GetStr(abi.NameP, h)
		lits = append(lits, string(n))
		if pos := s.Get(abi.PositionP, h); int(pos) != len(lits)-1 {
			t.Errorf("position of %s = %d", n, pos)
		}
	}
	if got := strings.Join(lits, ","); got != "idle,run,done" {
		t.Errorf("literals = %s", got)
	}
}

func TestConstraints(t *testing.T) {
	s := newSim(t, counterDesign)
	q := mustHandle(t, s, "q")

	it := s.Iterator(abi.Constraints, q)
	rng := s.Scan(it)
	if rng == 0 {
		t.Fatal("no constraint")
	}
	if s.Get(abi.LeftBoundP, rng) != 3 || s.Get(abi.RightBoundP, rng) != 0 || s.Get(abi.IsUpP, rng) != 0 {
		t.Errorf("range = %d %d up=%d", s.Get(abi.LeftBoundP, rng), s.Get(abi.RightBoundP, rng), s.Get(abi.IsUpP, rng))
	}
	if s.Get(abi.SizeP, q) != 4 {
		t.Errorf("SizeP = %d", s.Get(abi.SizeP, q))
	}
}

func TestGetValue_Sizing(t *testing.T) {
	s := newSim(t, counterDesign)
	q := mustHandle(t, s, "q")

	v := abi.Value{Format: abi.ObjTypeVal}
	rc := s.GetValue(q, &v)
	if rc != 4 {
		t.Fatalf("sizing rc = %d, want 4", rc)
	}
	if v.Format != abi.LogicVecVal {
		t.Fatalf("resolved format = %s", v.Format)
	}

	buf := make([]uint32, rc)
	v.Ptr = unsafe.Pointer(&buf[0])
	v.BufSize = uintptr(len(buf) * 4)
	if rc := s.GetValue(q, &v); rc != 0 {
		t.Fatalf("fill rc = %d", rc)
	}
	if v.NumElems != 4 {
		t.Errorf("NumElems = %d", v.NumElems)
	}
	for i, code := range buf {
		if code != uint32(abi.LogicU) {
			t.Errorf("element %d = %d", i, code)
		}
	}

	// A buffer one element short is sized again.
	v.BufSize = 12
	if rc := s.GetValue(q, &v); rc != 4 {
		t.Errorf("short buffer rc = %d", rc)
	}
}

func TestGetValue_Text(t *testing.T) {
	s := newSim(t, counterDesign)

	tests := []struct {
		name   string
		format abi.Format
		want   string
	}{
		{"count", abi.BinStrVal, strings.Repeat("0", 29) + "101"},
		{"count", abi.HexStrVal, "00000005"},
		{"count", abi.OctStrVal, "00000000005"},
		{"count", abi.DecStrVal, "5"},
		{"q", abi.BinStrVal, "UUUU"},
		{"q", abi.HexStrVal, "U"},
		{"msg", abi.StrVal, "hello"},
		{"u1.en", abi.BinStrVal, "1"},
		{"state", abi.DecStrVal, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.format.String(), func(t *testing.T) {
			if got := readText(t, s, mustHandle(t, s, tt.name), tt.format); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetValue_Mismatch(t *testing.T) {
	s := newSim(t, counterDesign)
	tests := []struct {
		name   string
		format abi.Format
	}{
		{"q", abi.IntVal},
		{"q", abi.DecStrVal}, // 'U' has no decimal form
		{"msg", abi.BinStrVal},
		{"count", abi.RealVal},
		{"state", abi.LogicVal},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.format.String(), func(t *testing.T) {
			v := abi.Value{Format: tt.format}
			if rc := s.GetValue(mustHandle(t, s, tt.name), &v); rc != -1 {
				t.Fatalf("rc = %d", rc)
			}
			var info abi.ErrorInfo
			if !s.CheckError(&info) || info.Severity != int32(errors.SeverityError) {
				t.Errorf("error record = %+v", info)
			}
		})
	}
}

func TestPutValue(t *testing.T) {
	s := newSim(t, counterDesign)
	b := mustHandle(t, s, "b")

	if rc := s.PutValue(b, &abi.Value{Format: abi.IntVal, Int: 7}, abi.Deposit); rc != 0 {
		t.Fatalf("deposit rc = %d", rc)
	}
	v := abi.Value{Format: abi.IntVal}
	if s.GetValue(b, &v); v.Int != 7 {
		t.Errorf("b = %d", v.Int)
	}

	if rc := s.PutValue(b, &abi.Value{Format: abi.IntVal, Int: 300}, abi.Deposit); rc == 0 {
		t.Error("out of range deposit accepted")
	}

	q := mustHandle(t, s, "q")
	raw := []uint32{uint32(abi.Logic1), uint32(abi.Logic0), uint32(abi.LogicZ), uint32(abi.Logic1)}
	pv := abi.Value{
		Format:   abi.LogicVecVal,
		Ptr:      unsafe.Pointer(&raw[0]),
		BufSize:  16,
		NumElems: 4,
	}
	if rc := s.PutValue(q, &pv, abi.Deposit); rc != 0 {
		t.Fatalf("vector deposit rc = %d", rc)
	}
	// The simulator keeps its own copy.
	raw[0] = uint32(abi.LogicX)
	if got := readText(t, s, q, abi.BinStrVal); got != "10Z1" {
		t.Errorf("q = %q", got)
	}

	pv.NumElems = 3
	if rc := s.PutValue(q, &pv, abi.Deposit); rc == 0 {
		t.Error("short vector accepted")
	}

	text := append([]byte("1100"), 0)
	tv := abi.Value{Format: abi.BinStrVal, Ptr: unsafe.Pointer(&text[0]), BufSize: 5, NumElems: 4}
	if rc := s.PutValue(q, &tv, abi.Deposit); rc != 0 {
		t.Fatalf("text deposit rc = %d", rc)
	}
	if got := readText(t, s, q, abi.HexStrVal); got != "C" {
		t.Errorf("q = %q", got)
	}
}

func TestPutValue_MismatchNamesObject(t *testing.T) {
	s := newSim(t, counterDesign)
	en := mustHandle(t, s, "u1.en")

	if rc := s.PutValue(en, &abi.Value{Format: abi.RealVal, Real: 1.5}, abi.Deposit); rc == 0 {
		t.Fatal("real deposit into a bit signal succeeded")
	}
	var info abi.ErrorInfo
	if !s.CheckError(&info) {
		t.Fatal("no error record")
	}
	msg := string(info.Message)
	for _, want := range []string{"type_mismatch", "TOP:U1:EN", "RealVal"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q does not contain %q", msg, want)
		}
	}
}

func TestPutValue_ForceRelease(t *testing.T) {
	s := newSim(t, counterDesign)
	ctx := context.Background()
	count := mustHandle(t, s, "count")

	var forces, releases int
	s.Bind(func(d *abi.CbData) {
		switch d.Reason {
		case abi.CbForce:
			forces++
		case abi.CbRelease:
			releases++
		}
	})
	s.RegisterCb(&abi.CbData{Reason: abi.CbForce, Obj: count}, 0)
	s.RegisterCb(&abi.CbData{Reason: abi.CbRelease, Obj: count}, 0)

	if rc := s.PutValue(count, &abi.Value{Format: abi.IntVal, Int: 9}, abi.ForcePropagate); rc != 0 {
		t.Fatalf("force rc = %d", rc)
	}
	s.PutValue(count, &abi.Value{Format: abi.IntVal, Int: 3}, abi.DepositPropagate)
	if err := s.RunUntil(ctx, ns(1)); err != nil {
		t.Fatal(err)
	}

	v := abi.Value{Format: abi.IntVal}
	if s.GetValue(count, &v); v.Int != 9 {
		t.Errorf("forced value overwritten: %d", v.Int)
	}

	s.PutValue(count, &abi.Value{}, abi.Release)
	if err := s.RunUntil(ctx, ns(2)); err != nil {
		t.Fatal(err)
	}
	if forces != 1 || releases != 1 {
		t.Errorf("forces=%d releases=%d", forces, releases)
	}
}

func TestRun_Callbacks(t *testing.T) {
	s := newSim(t, counterDesign)
	q := mustHandle(t, s, "q")

	type fired struct {
		reason abi.CbReason
		at     simtime.Time
		obj    string
	}
	var log []fired
	s.Bind(func(d *abi.CbData) {
		f := fired{reason: d.Reason, at: *d.Time}
		if d.Obj != 0 {
			n, _ := s.GetStr(abi.NameP, d.Obj)
			f.obj = string(n)
		}
		log = append(log, f)
	})

	s.RegisterCb(&abi.CbData{Reason: abi.CbStartOfSimulation}, 0)
	s.RegisterCb(&abi.CbData{Reason: abi.CbValueChange, Obj: q}, 0)
	after := ns(15)
	delayed := s.RegisterCb(&abi.CbData{Reason: abi.CbAfterDelay, Time: &after}, abi.ReturnCb)
	s.RegisterCb(&abi.CbData{Reason: abi.CbNextTimeStep}, 0)
	s.RegisterCb(&abi.CbData{Reason: abi.CbEndOfSimulation}, 0)

	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !s.Finished() {
		t.Fatal("simulation not finished")
	}

	want := []fired{
		{abi.CbStartOfSimulation, ns(0), ""},
		{abi.CbNextTimeStep, ns(10), ""},
		{abi.CbValueChange, ns(10), "Q"},
		{abi.CbAfterDelay, ns(15), ""},
		{abi.CbEndOfSimulation, ns(20), ""},
	}
	if len(log) != len(want) {
		t.Fatalf("fired %+v", log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("callback %d = %+v, want %+v", i, log[i], want[i])
		}
	}

	if got := s.Get(abi.StateP, delayed); got != int32(abi.CbMature) {
		t.Errorf("one-shot state = %d", got)
	}
	if got := readText(t, s, q, abi.BinStrVal); got != "1010" {
		t.Errorf("q = %q", got)
	}

	st := s.Stats()
	// Phase and value change callbacks persist; the one-shots have matured.
	if st.ActiveCallbacks != 3 {
		t.Errorf("ActiveCallbacks = %d", st.ActiveCallbacks)
	}
	if st.Fired != 5 {
		t.Errorf("Fired = %d", st.Fired)
	}
}

func TestRun_BorrowedHandle(t *testing.T) {
	s := newSim(t, counterDesign)
	q := mustHandle(t, s, "q")

	var obj abi.Ref
	s.Bind(func(d *abi.CbData) {
		obj = d.Obj
		if rc := s.Release(d.Obj); rc == 0 {
			t.Error("release of callback handle accepted")
		}
	})
	s.RegisterCb(&abi.CbData{Reason: abi.CbValueChange, Obj: q}, 0)
	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if obj == 0 {
		t.Fatal("callback did not fire")
	}
	if _, ok := s.GetStr(abi.NameP, obj); ok {
		t.Error("callback handle valid after the callback returned")
	}
	st := s.Stats()
	if st.BorrowedReleases != 1 || st.LiveHandles != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestRun_ValueFormat(t *testing.T) {
	s := newSim(t, counterDesign)
	en := mustHandle(t, s, "u1.en")

	var got []uint32
	s.Bind(func(d *abi.CbData) {
		if d.Value == nil {
			t.Error("no value delivered")
			return
		}
		got = append(got, d.Value.Enum)
	})
	s.RegisterCb(&abi.CbData{Reason: abi.CbValueChange, Obj: en, Value: &abi.Value{Format: abi.LogicVal}}, 0)
	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != uint32(abi.Logic0) {
		t.Errorf("values = %v", got)
	}
}

func TestRemoveCb(t *testing.T) {
	s := newSim(t, counterDesign)
	q := mustHandle(t, s, "q")

	n := 0
	s.Bind(func(*abi.CbData) { n++ })
	cb := s.RegisterCb(&abi.CbData{Reason: abi.CbValueChange, Obj: q}, abi.ReturnCb)
	if cb == 0 {
		t.Fatal("no callback handle")
	}
	if rc := s.DisableCb(cb); rc != 0 {
		t.Fatalf("disable rc = %d", rc)
	}
	if got := s.Get(abi.StateP, cb); got != int32(abi.CbDisabled) {
		t.Errorf("state = %d", got)
	}
	if rc := s.RemoveCb(cb); rc != 0 {
		t.Fatalf("remove rc = %d", rc)
	}
	// Removal frees the handle.
	if rc := s.Release(cb); rc == 0 {
		t.Error("callback handle valid after removal")
	}

	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("removed callback fired %d times", n)
	}
}

func TestRegisterCb_Errors(t *testing.T) {
	s := newSim(t, counterDesign)
	u1 := mustHandle(t, s, "u1")
	neg := simtime.FromInt64(-1)

	tests := []struct {
		name string
		data *abi.CbData
	}{
		{"nil data", nil},
		{"unsupported reason", &abi.CbData{Reason: abi.CbStmt}},
		{"missing object", &abi.CbData{Reason: abi.CbValueChange}},
		{"region object", &abi.CbData{Reason: abi.CbValueChange, Obj: u1}},
		{"missing time", &abi.CbData{Reason: abi.CbAfterDelay}},
		{"negative delay", &abi.CbData{Reason: abi.CbAfterDelay, Time: &neg}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if h := s.RegisterCb(tt.data, abi.ReturnCb); h != 0 {
				t.Fatalf("got handle %#x", h)
			}
			var info abi.ErrorInfo
			if !s.CheckError(&info) {
				t.Fatal("no error recorded")
			}
		})
	}
}

func TestFaults(t *testing.T) {
	s := newSim(t, counterDesign, func(c *Config) {
		c.Faults = []Fault{FaultRegisterCb, FaultPrintf}
	})

	if h := s.RegisterCb(&abi.CbData{Reason: abi.CbStartOfSimulation}, abi.ReturnCb); h != 0 {
		t.Fatal("faulted registration succeeded")
	}
	var info abi.ErrorInfo
	if !s.CheckError(&info) {
		t.Fatal("no error recorded")
	}
	if string(info.Str) != string(FaultRegisterCb) || info.Severity != int32(errors.SeverityError) {
		t.Errorf("info = %+v", info)
	}
	if rc := s.Printf([]byte("x")); rc != -1 {
		t.Errorf("printf rc = %d", rc)
	}
}

func TestControl(t *testing.T) {
	src := "name: top\nsignals:\n  - {name: clk, type: bit}\nclocks:\n  - {signal: clk, period: 10 ns, until: 100 ns}\n"
	s := newSim(t, src)
	ctx := context.Background()

	stops := 0
	s.Bind(func(d *abi.CbData) {
		if d.Time.Int64() == ns(20).Int64() && stops == 0 {
			stops++
			s.Control(abi.Stop)
		}
	})
	s.RegisterCb(&abi.CbData{Reason: abi.CbRepEndOfTimeStep}, 0)

	if err := s.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !s.Stopped() || s.Finished() || s.Now() != ns(20) {
		t.Fatalf("stopped=%v finished=%v now=%s", s.Stopped(), s.Finished(), s.Now())
	}

	if err := s.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !s.Finished() || s.Now() != ns(100) {
		t.Fatalf("finished=%v now=%s", s.Finished(), s.Now())
	}

	if rc := s.Control(abi.Reset); rc == 0 {
		t.Error("reset should be unsupported")
	}
}

func TestRunUntil(t *testing.T) {
	s := newSim(t, counterDesign)
	ctx := context.Background()

	if err := s.RunUntil(ctx, ns(12)); err != nil {
		t.Fatal(err)
	}
	if s.Now() != ns(12) || s.Finished() {
		t.Fatalf("now=%s finished=%v", s.Now(), s.Finished())
	}
	var next simtime.Time
	if rc := s.GetNextTime(&next); rc != 0 || next != ns(20) {
		t.Errorf("next = %s rc=%d", next, rc)
	}

	if err := s.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if rc := s.GetNextTime(&next); rc != 1 {
		t.Errorf("empty queue rc = %d", rc)
	}
}

func TestPrintfAssert(t *testing.T) {
	var out bytes.Buffer
	s := newSim(t, counterDesign, func(c *Config) {
		c.Output = &out
		c.StopSeverity = errors.SeverityError
	})

	if rc := s.Printf([]byte("caf\xe9\n")); rc != 6 {
		t.Errorf("printf rc = %d", rc)
	}
	if rc := s.Assert(int32(errors.SeverityWarning), []byte("careful")); rc != 0 {
		t.Fatalf("assert rc = %d", rc)
	}
	if s.Stopped() {
		t.Error("warning stopped the simulation")
	}
	s.Assert(int32(errors.SeverityError), []byte("boom"))
	if !s.Stopped() {
		t.Error("error did not stop the simulation")
	}

	want := "café\nAssertion warning: careful\nAssertion error: boom\n"
	if out.String() != want {
		t.Errorf("output = %q", out.String())
	}
}

func TestToolHandle(t *testing.T) {
	s := newSim(t, counterDesign, func(c *Config) {
		c.Resolution = simtime.Of(1, simtime.Picosecond)
	})
	tool := s.Handle(abi.Tool, 0)
	if name, _ := s.GetStr(abi.NameP, tool); string(name) != strings.ToUpper(ToolName) {
		t.Errorf("tool name = %q", name)
	}
	if v, _ := s.GetStr(abi.ToolVersionP, tool); string(v) != ToolVersion {
		t.Errorf("version = %q", v)
	}
	if res := s.GetPhys(abi.ResolutionLimitP, tool); res.Int64() != 1000 {
		t.Errorf("resolution = %d", res.Int64())
	}
}
