//go:build cgo && vhpistub

package native

/*
#include "stub.h"
*/
import "C"

import (
	"github.com/wippyai/vhpi/abi"
	"github.com/wippyai/vhpi/simtime"
)

// Controls of the in-process simulator compiled in with the vhpistub tag.
// Test files cannot use cgo, so they drive it through these.

func stubReset() {
	C.vhpi_stub_reset()
}

// stubAdvance moves simulation time to until, firing due callbacks.
func stubAdvance(until simtime.Time) {
	C.vhpi_stub_advance(C.int64_t(until.Int64()))
}

// stubStartup runs vhpi_startup_routines the way a simulator does on load.
func stubStartup() {
	C.vhpi_stub_startup()
}

func stubLiveHandles() int {
	return int(C.vhpi_stub_live_handles())
}

func stubActiveCallbacks() int {
	return int(C.vhpi_stub_active_callbacks())
}

func stubGetValueCalls() int {
	return int(C.vhpi_stub_get_value_calls())
}

func stubLastFlags() abi.RegisterFlags {
	return abi.RegisterFlags(C.vhpi_stub_last_flags())
}

func stubLastControl() abi.Control {
	return abi.Control(C.vhpi_stub_last_control())
}

func stubLastAssert() int32 {
	return int32(C.vhpi_stub_last_assert())
}

func stubOutput() string {
	return C.GoString(C.vhpi_stub_output())
}
