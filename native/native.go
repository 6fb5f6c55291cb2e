//go:build cgo

package native

/*
#cgo darwin LDFLAGS: -undefined dynamic_lookup
#include <stdlib.h>
#include "vhpi.h"
*/
import "C"

import (
	"slices"
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/vhpi/abi"
	"github.com/wippyai/vhpi/simtime"
	"github.com/wippyai/vhpi/vhpi"
)

// Backend implements abi.Native on the simulator's vhpi_* entry points.
// There is one per process; see New.
type Backend struct {
	dispatch abi.Dispatcher
	// C records handed to vhpi_register_cb, kept until the callback is
	// removed or its handle released.
	cbMem map[abi.Ref]cbRecords
}

type cbRecords struct {
	time  *C.vhpiTimeT
	value *C.vhpiValueT
}

var _ abi.Native = (*Backend)(nil)

var (
	once    sync.Once
	backend *Backend

	startupMu sync.Mutex
	startups  []func(*vhpi.Runtime)
)

// New returns the process backend. Every call returns the same value, since
// the C trampoline has no way to tell backends apart.
func New() *Backend {
	once.Do(func() {
		backend = &Backend{cbMem: make(map[abi.Ref]cbRecords)}
	})
	return backend
}

// OnStartup adds fn to the functions run from vhpi_startup_routines when the
// simulator loads the plugin. Call it from an init function.
func OnStartup(fn func(*vhpi.Runtime)) {
	startupMu.Lock()
	defer startupMu.Unlock()
	startups = append(startups, fn)
}

//export vhpiGoStartup
func vhpiGoStartup() {
	startupMu.Lock()
	fns := slices.Clone(startups)
	startupMu.Unlock()

	rt := vhpi.New(New())
	for _, fn := range fns {
		runStartup(rt, fn)
	}
}

func runStartup(rt *vhpi.Runtime, fn func(*vhpi.Runtime)) {
	defer func() {
		if r := recover(); r != nil {
			vhpi.Logger().Error("startup routine panicked", zap.Any("panic", r))
		}
	}()
	fn(rt)
}

//export vhpiGoDispatch
func vhpiGoDispatch(cb *C.vhpiCbDataT) {
	b := backend
	if b == nil || b.dispatch == nil {
		return
	}
	if cb == nil {
		b.dispatch(nil)
		return
	}

	data := abi.CbData{
		Reason:   abi.CbReason(cb.reason),
		Obj:      abi.Ref(C.vhpi_go_cb_obj(cb)),
		UserData: uintptr(C.vhpi_go_cb_user(cb)),
	}
	if cb.time != nil {
		t := simtime.Time{High: int32(cb.time.high), Low: uint32(cb.time.low)}
		data.Time = &t
	}
	if cb.value != nil {
		var v abi.Value
		fromC(cb.value, &v)
		data.Value = &v
	}
	b.dispatch(&data)
}

func ref(r abi.Ref) C.uintptr_t {
	return C.uintptr_t(r)
}

// toC copies v into a C value record. Buffers are passed through, not
// copied; the caller keeps them pinned for the duration of the call.
func toC(v *abi.Value, cv *C.vhpiValueT) {
	cv.format = C.uint32_t(v.Format)
	cv.bufSize = C.size_t(v.BufSize)
	cv.numElems = C.int32_t(v.NumElems)
	cv.unit = C.vhpiPhysT{high: C.int32_t(v.Unit.High), low: C.uint32_t(v.Unit.Low)}
	if v.Format.Buffered() || v.Format.Textual() {
		C.vhpi_go_set_value_ptr(cv, v.Ptr)
		return
	}
	s := C.vhpi_go_scalar{
		enumv:      C.uint32_t(v.Enum),
		smallenumv: C.uint8_t(v.SmallEnum),
		intg:       C.int32_t(v.Int),
		longintg:   C.int64_t(v.LongInt),
		real:       C.double(v.Real),
		ch:         C.char(v.Char),
		time:       C.vhpiTimeT{high: C.int32_t(v.Time.High), low: C.uint32_t(v.Time.Low)},
		phys:       C.vhpiPhysT{high: C.int32_t(v.Phys.High), low: C.uint32_t(v.Phys.Low)},
	}
	C.vhpi_go_scalar_in(cv, &s)
}

// fromC copies what the simulator filled in back into v.
func fromC(cv *C.vhpiValueT, v *abi.Value) {
	v.Format = abi.Format(cv.format)
	v.NumElems = int32(cv.numElems)
	v.Unit = simtime.Physical{High: int32(cv.unit.high), Low: uint32(cv.unit.low)}
	if v.Format.Buffered() || v.Format.Textual() {
		if v.Ptr == nil {
			v.Ptr = C.vhpi_go_value_ptr(cv)
			v.BufSize = uintptr(cv.bufSize)
		}
		return
	}
	var s C.vhpi_go_scalar
	C.vhpi_go_scalar_out(cv, &s)
	v.Enum = uint32(s.enumv)
	v.SmallEnum = uint8(s.smallenumv)
	v.Int = int32(s.intg)
	v.LongInt = int64(s.longintg)
	v.Real = float64(s.real)
	v.Char = byte(s.ch)
	v.Time = simtime.Time{High: int32(s.time.high), Low: uint32(s.time.low)}
	v.Phys = simtime.Physical{High: int32(s.phys.high), Low: uint32(s.phys.low)}
}

func goBytes(p *C.char) []byte {
	if p == nil {
		return nil
	}
	return []byte(C.GoString(p))
}

func (b *Backend) Handle(rel abi.OneToOne, r abi.Ref) abi.Ref {
	return abi.Ref(C.vhpi_go_handle(C.int32_t(rel), ref(r)))
}

func (b *Backend) HandleByName(name []byte, scope abi.Ref) abi.Ref {
	cs := C.CString(string(name))
	defer C.free(unsafe.Pointer(cs))
	return abi.Ref(C.vhpi_go_handle_by_name(cs, ref(scope)))
}

func (b *Backend) Iterator(rel abi.OneToMany, r abi.Ref) abi.Ref {
	return abi.Ref(C.vhpi_go_iterator(C.int32_t(rel), ref(r)))
}

func (b *Backend) Scan(iter abi.Ref) abi.Ref {
	return abi.Ref(C.vhpi_go_scan(ref(iter)))
}

// Release frees the C records of a callback handle along with the handle.
func (b *Backend) Release(r abi.Ref) int32 {
	rc := int32(C.vhpi_go_release(ref(r)))
	if rc == 0 {
		b.freeCb(r)
	}
	return rc
}

func (b *Backend) Compare(x, y abi.Ref) bool {
	return C.vhpi_go_compare(ref(x), ref(y)) != 0
}

func (b *Backend) Get(p abi.IntProperty, r abi.Ref) int32 {
	return int32(C.vhpi_go_get(C.int32_t(p), ref(r)))
}

func (b *Backend) GetStr(p abi.StrProperty, r abi.Ref) ([]byte, bool) {
	s := C.vhpi_go_get_str(C.int32_t(p), ref(r))
	if s == nil {
		return nil, false
	}
	return goBytes(s), true
}

func (b *Backend) GetReal(p abi.RealProperty, r abi.Ref) float64 {
	return float64(C.vhpi_go_get_real(C.int32_t(p), ref(r)))
}

func (b *Backend) GetPhys(p abi.PhysProperty, r abi.Ref) simtime.Physical {
	v := C.vhpi_go_get_phys(C.int32_t(p), ref(r))
	return simtime.Physical{High: int32(v.high), Low: uint32(v.low)}
}

func (b *Backend) GetValue(r abi.Ref, v *abi.Value) int32 {
	var cv C.vhpiValueT
	toC(v, &cv)
	rc := C.vhpi_go_get_value(ref(r), &cv)
	fromC(&cv, v)
	return int32(rc)
}

func (b *Backend) PutValue(r abi.Ref, v *abi.Value, mode abi.PutMode) int32 {
	var cv C.vhpiValueT
	toC(v, &cv)
	return int32(C.vhpi_go_put_value(ref(r), &cv, C.int32_t(mode)))
}

func (b *Backend) Bind(d abi.Dispatcher) {
	b.dispatch = d
}

// RegisterCb routes every registration through the C trampoline. The time
// and value records live in C memory until the callback is removed.
func (b *Backend) RegisterCb(cb *abi.CbData, flags abi.RegisterFlags) abi.Ref {
	var mem cbRecords
	if cb.Time != nil {
		mem.time = (*C.vhpiTimeT)(C.calloc(1, C.sizeof_vhpiTimeT))
		mem.time.high = C.int32_t(cb.Time.High)
		mem.time.low = C.uint32_t(cb.Time.Low)
	}
	if cb.Value != nil {
		mem.value = (*C.vhpiValueT)(C.calloc(1, C.sizeof_vhpiValueT))
		mem.value.format = C.uint32_t(cb.Value.Format)
	}

	r := abi.Ref(C.vhpi_go_register_cb(
		C.int32_t(cb.Reason), ref(cb.Obj), mem.time, mem.value,
		C.uintptr_t(cb.UserData), C.int32_t(flags)))
	if r == 0 {
		mem.free()
		return 0
	}
	if mem.time != nil || mem.value != nil {
		b.cbMem[r] = mem
	}
	return r
}

func (b *Backend) RemoveCb(cb abi.Ref) int32 {
	rc := int32(C.vhpi_go_remove_cb(ref(cb)))
	if rc == 0 {
		b.freeCb(cb)
	}
	return rc
}

func (b *Backend) DisableCb(cb abi.Ref) int32 {
	return int32(C.vhpi_go_disable_cb(ref(cb)))
}

func (b *Backend) EnableCb(cb abi.Ref) int32 {
	return int32(C.vhpi_go_enable_cb(ref(cb)))
}

func (b *Backend) freeCb(r abi.Ref) {
	if mem, ok := b.cbMem[r]; ok {
		delete(b.cbMem, r)
		mem.free()
	}
}

func (m cbRecords) free() {
	if m.time != nil {
		C.free(unsafe.Pointer(m.time))
	}
	if m.value != nil {
		C.free(unsafe.Pointer(m.value))
	}
}

func (b *Backend) GetTime(t *simtime.Time, cycles *int64) {
	var ct C.vhpiTimeT
	var n C.long
	C.vhpi_get_time(&ct, &n)
	if t != nil {
		*t = simtime.Time{High: int32(ct.high), Low: uint32(ct.low)}
	}
	if cycles != nil {
		*cycles = int64(n)
	}
}

func (b *Backend) GetNextTime(t *simtime.Time) int32 {
	var ct C.vhpiTimeT
	rc := int32(C.vhpi_get_next_time(&ct))
	if rc == 0 && t != nil {
		*t = simtime.Time{High: int32(ct.high), Low: uint32(ct.low)}
	}
	return rc
}

func (b *Backend) Control(cmd abi.Control) int32 {
	return int32(C.vhpi_go_control(C.int32_t(cmd)))
}

func (b *Backend) CheckError(info *abi.ErrorInfo) bool {
	var ci C.vhpiErrorInfoT
	if C.vhpi_check_error(&ci) == 0 {
		return false
	}
	*info = abi.ErrorInfo{
		Severity: int32(ci.severity),
		Message:  goBytes(ci.message),
		Str:      goBytes(ci.str),
		File:     goBytes(ci.file),
		Line:     int32(ci.line),
	}
	return true
}

func (b *Backend) Printf(msg []byte) int32 {
	cs := C.CString(string(msg))
	defer C.free(unsafe.Pointer(cs))
	return int32(C.vhpi_go_printf(cs))
}

func (b *Backend) Assert(severity int32, msg []byte) int32 {
	cs := C.CString(string(msg))
	defer C.free(unsafe.Pointer(cs))
	return int32(C.vhpi_go_assert(C.int32_t(severity), cs))
}
