package vhpi

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"unsafe"

	"github.com/wippyai/vhpi/abi"
	"github.com/wippyai/vhpi/errors"
	"github.com/wippyai/vhpi/logic"
)

func TestGetValue_Native(t *testing.T) {
	s := newSim(t)
	rt := newRuntime(t, s)

	tests := []struct {
		name   string
		format abi.Format
		want   Value
	}{
		{"q", abi.ObjTypeVal, LogicVec{logic.U, logic.U, logic.U, logic.U}},
		{"count", abi.ObjTypeVal, Int(5)},
		{"msg", abi.ObjTypeVal, Str("hello")},
		{"state", abi.ObjTypeVal, SmallEnum(0)},
		{"clk", abi.ObjTypeVal, Logic(logic.U)},
		{"u1.en", abi.ObjTypeVal, SmallEnum(1)},
		{"u1.en", abi.LogicVal, Logic(logic.One)},
		{"r", abi.ObjTypeVal, Real(2.5)},
		{"delay", abi.ObjTypeVal, Time(ns(5))},
		{"iv", abi.ObjTypeVal, IntVec{1, 2, 3}},
		{"count", abi.BinStrVal, BinStr(strings.Repeat("0", 29) + "101")},
		{"count", abi.HexStrVal, HexStr("00000005")},
		{"count", abi.DecStrVal, DecStr("5")},
		{"q", abi.HexStrVal, HexStr("U")},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.format.String(), func(t *testing.T) {
			h := rt.HandleByName(tt.name, nil)
			defer h.Release()

			got, err := h.GetValue(tt.format)
			if err != nil {
				t.Fatalf("GetValue: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
			if got.Format() != tt.want.Format() {
				t.Errorf("format = %s", got.Format())
			}
			if n := rt.LiveBuffers(); n != 0 {
				t.Errorf("LiveBuffers = %d after read", n)
			}
		})
	}
}

func TestGetValue_SizingMatchesLength(t *testing.T) {
	s := newSim(t)
	rt := newRuntime(t, s)

	q := rt.HandleByName("q", nil)
	defer q.Release()

	v := abi.Value{Format: abi.ObjTypeVal}
	rc := s.GetValue(q.Raw(), &v)
	if rc != 4 || v.Format != abi.LogicVecVal {
		t.Fatalf("sizing rc = %d format = %s", rc, v.Format)
	}
	got, err := q.GetValue(abi.ObjTypeVal)
	if err != nil {
		t.Fatal(err)
	}
	if vec := got.(LogicVec); len(vec) != int(rc) {
		t.Errorf("len = %d, want %d", len(vec), rc)
	}

	msg := rt.HandleByName("msg", nil)
	defer msg.Release()
	v = abi.Value{Format: abi.StrVal}
	if rc := s.GetValue(msg.Raw(), &v); rc != 6 {
		t.Errorf("string sizing rc = %d, want 6", rc)
	}
}

func TestGetValue_Errors(t *testing.T) {
	s := newSim(t)
	rt := newRuntime(t, s)

	if _, err := rt.Null().GetValue(abi.IntVal); errKind(t, err) != errors.KindNullHandle {
		t.Errorf("null err = %v", err)
	}

	q := rt.HandleByName("q", nil)
	defer q.Release()
	if _, err := q.GetValue(abi.RealVal); errKind(t, err) != errors.KindNative {
		t.Errorf("mismatch err = %v", err)
	}

	root := rt.Handle(abi.RootInst, nil)
	defer root.Release()
	if _, err := root.GetValue(abi.ObjTypeVal); errKind(t, err) != errors.KindNative {
		t.Errorf("region err = %v", err)
	}
	if n := rt.LiveBuffers(); n != 0 {
		t.Errorf("LiveBuffers = %d", n)
	}
}

func TestPutValue(t *testing.T) {
	s := newSim(t)
	rt := newRuntime(t, s)

	q := rt.HandleByName("q", nil)
	defer q.Release()
	if err := q.PutValue(LogicVec{logic.One, logic.Zero, logic.One, logic.One}, abi.Deposit); err != nil {
		t.Fatalf("PutValue: %v", err)
	}
	if got, err := q.GetValue(abi.BinStrVal); err != nil || got != BinStr("1011") {
		t.Errorf("q = %v, %v", got, err)
	}

	msg := rt.HandleByName("msg", nil)
	defer msg.Release()
	if err := msg.PutValue(Str("world"), abi.Deposit); err != nil {
		t.Fatalf("PutValue: %v", err)
	}
	if got, _ := msg.GetValue(abi.StrVal); got != Str("world") {
		t.Errorf("msg = %v", got)
	}

	count := rt.HandleByName("count", nil)
	defer count.Release()
	if err := count.PutValue(Int(42), abi.DepositPropagate); err != nil {
		t.Fatalf("PutValue: %v", err)
	}
	if got, _ := count.GetValue(abi.IntVal); got != Int(5) {
		t.Errorf("count before the delta cycle = %v", got)
	}
	if err := s.RunUntil(context.Background(), ns(1)); err != nil {
		t.Fatal(err)
	}
	if got, _ := count.GetValue(abi.IntVal); got != Int(42) {
		t.Errorf("count after the delta cycle = %v", got)
	}

	if n := rt.LiveBuffers(); n != 0 {
		t.Errorf("LiveBuffers = %d", n)
	}
}

func TestPutValue_Wide(t *testing.T) {
	s := newSim(t)
	rt := newRuntime(t, s)

	w := rt.HandleByName("w", nil)
	defer w.Release()

	const max80 = "1208925819614629174706175"
	if err := w.PutValue(DecStr(max80), abi.Deposit); err != nil {
		t.Fatalf("PutValue: %v", err)
	}
	if got, err := w.GetValue(abi.DecStrVal); err != nil || got != DecStr(max80) {
		t.Errorf("dec = %v, %v", got, err)
	}
	if got, err := w.GetValue(abi.HexStrVal); err != nil || got != HexStr(strings.Repeat("F", 20)) {
		t.Errorf("hex = %v, %v", got, err)
	}
}

func TestPutValue_Errors(t *testing.T) {
	s := newSim(t)
	rt := newRuntime(t, s)

	state := rt.HandleByName("state", nil)
	defer state.Release()
	q := rt.HandleByName("q", nil)
	defer q.Release()

	tests := []struct {
		name string
		h    *Handle
		val  Value
		kind errors.Kind
	}{
		{"null handle", rt.Null(), Int(1), errors.KindNullHandle},
		{"nil value", state, nil, errors.KindInvalidInput},
		{"enum out of range", state, SmallEnum(7), errors.KindNative},
		{"short vector", q, LogicVec{logic.One}, errors.KindNative},
		{"unsupported", q, Unknown{Raw: abi.PtrVal}, errors.KindUnsupported},
		{"char outside latin1", q, Char('€'), errors.KindEncoding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.h.PutValue(tt.val, abi.Deposit)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errKind(t, err); got != tt.kind {
				t.Errorf("kind = %s, want %s (%v)", got, tt.kind, err)
			}
		})
	}
	if got, _ := state.GetValue(abi.SmallEnumVal); got != SmallEnum(0) {
		t.Errorf("state changed to %v", got)
	}
	if n := rt.LiveBuffers(); n != 0 {
		t.Errorf("LiveBuffers = %d", n)
	}
}

func TestDecode(t *testing.T) {
	if got, err := decode(&abi.Value{Format: abi.PtrVal}); err != nil || got != (Unknown{Raw: abi.PtrVal}) {
		t.Errorf("PtrVal = %v, %v", got, err)
	}
	if got, err := decode(&abi.Value{Format: abi.IntVecVal}); err != nil || len(got.(IntVec)) != 0 {
		t.Errorf("empty vector = %v, %v", got, err)
	}

	buf := make([]int32, 1)
	short := abi.Value{
		Format:   abi.IntVecVal,
		Ptr:      unsafe.Pointer(&buf[0]),
		BufSize:  4,
		NumElems: 4,
	}
	if _, err := decode(&short); errKind(t, err) != errors.KindInvalidData {
		t.Errorf("short buffer err = %v", err)
	}
	if _, err := decode(&abi.Value{Format: abi.IntVecVal, NumElems: -1}); errKind(t, err) != errors.KindInvalidData {
		t.Errorf("negative count err = %v", err)
	}
}

func TestDecode_WideLogicCodes(t *testing.T) {
	got, err := decode(&abi.Value{Format: abi.LogicVal, Enum: 0x102})
	if err != nil {
		t.Fatal(err)
	}
	l := logic.Val(got.(Logic))
	if !l.IsEscape() || l.Raw() != 0x102 {
		t.Errorf("LogicVal 0x102 = %v, want escape of 0x102", l)
	}

	raw := []uint32{0x103, uint32(abi.Logic1), 0x1FF}
	vec := abi.Value{
		Format:   abi.LogicVecVal,
		Ptr:      unsafe.Pointer(&raw[0]),
		BufSize:  uintptr(len(raw) * 4),
		NumElems: int32(len(raw)),
	}
	got, err = decode(&vec)
	if err != nil {
		t.Fatal(err)
	}
	lv := got.(LogicVec)
	if len(lv) != 3 || lv[1] != logic.One {
		t.Fatalf("vector = %v", lv)
	}
	for _, i := range []int{0, 2} {
		if !lv[i].IsEscape() || lv[i].Raw() != raw[i] {
			t.Errorf("[%d] = %v, want escape of %#x", i, lv[i], raw[i])
		}
	}

	rt := newRuntime(t, newSim(t))
	var out abi.Value
	al := rt.newAllocationList()
	if err := encode(lv, &out, al); err != nil {
		t.Fatal(err)
	}
	back := unsafe.Slice((*uint32)(out.Ptr), out.NumElems)
	if !reflect.DeepEqual(back, raw) {
		t.Errorf("encoded = %v, want %v", back, raw)
	}
	al.freeAndRelease()
}
