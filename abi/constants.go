package abi

// Logic codes used by LogicVal and LogicVecVal.
const (
	LogicU        uint8 = 0
	LogicX        uint8 = 1
	Logic0        uint8 = 2
	Logic1        uint8 = 3
	LogicZ        uint8 = 4
	LogicW        uint8 = 5
	LogicL        uint8 = 6
	LogicH        uint8 = 7
	LogicDontCare uint8 = 8
)

// PutMode selects how vhpi_put_value updates an object.
type PutMode int32

const (
	Deposit          PutMode = 0
	DepositPropagate PutMode = 1
	Force            PutMode = 2
	ForcePropagate   PutMode = 3
	Release          PutMode = 4
	SizeConstraint   PutMode = 5
)

func (m PutMode) String() string {
	switch m {
	case Deposit:
		return "deposit"
	case DepositPropagate:
		return "deposit-propagate"
	case Force:
		return "force"
	case ForcePropagate:
		return "force-propagate"
	case Release:
		return "release"
	case SizeConstraint:
		return "size-constraint"
	}
	return "unknown"
}

// Propagates reports whether the mode schedules the new value as an event.
func (m PutMode) Propagates() bool {
	return m == DepositPropagate || m == ForcePropagate
}

// Control is a vhpi_control command.
type Control int32

const (
	Stop   Control = 0
	Finish Control = 1
	Reset  Control = 2
)

func (c Control) String() string {
	switch c {
	case Stop:
		return "stop"
	case Finish:
		return "finish"
	case Reset:
		return "reset"
	}
	return "unknown"
}

// Capability bits reported by CapabilitiesP on the tool handle.
type Capability int32

const (
	ProvidesHierarchy            Capability = 1 << 0
	ProvidesStaticAccess         Capability = 1 << 1
	ProvidesConnectivity         Capability = 1 << 2
	ProvidesPostAnalysis         Capability = 1 << 3
	ProvidesForeignModel         Capability = 1 << 4
	ProvidesAdvancedForeignModel Capability = 1 << 5
	ProvidesSaveRestart          Capability = 1 << 6
	ProvidesReset                Capability = 1 << 7
	ProvidesDebugRuntime         Capability = 1 << 8
	ProvidesAdvancedDebugRuntime Capability = 1 << 9
	ProvidesDynamicElab          Capability = 1 << 10
)

// Has reports whether all bits of want are set in c.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}
