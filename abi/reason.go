package abi

import "strconv"

// CbReason names the simulation event a callback is registered for.
type CbReason int32

const (
	CbValueChange            CbReason = 1001
	CbForce                  CbReason = 1002
	CbRelease                CbReason = 1003
	CbTransaction            CbReason = 1004
	CbStmt                   CbReason = 1005
	CbResume                 CbReason = 1006
	CbSuspend                CbReason = 1007
	CbStartOfSubpCall        CbReason = 1008
	CbEndOfSubpCall          CbReason = 1009
	CbAfterDelay             CbReason = 1010
	CbRepAfterDelay          CbReason = 1011
	CbNextTimeStep           CbReason = 1012
	CbRepNextTimeStep        CbReason = 1013
	CbStartOfNextCycle       CbReason = 1014
	CbRepStartOfNextCycle    CbReason = 1015
	CbStartOfProcesses       CbReason = 1016
	CbRepStartOfProcesses    CbReason = 1017
	CbEndOfProcesses         CbReason = 1018
	CbRepEndOfProcesses      CbReason = 1019
	CbLastKnownDeltaCycle    CbReason = 1020
	CbRepLastKnownDeltaCycle CbReason = 1021
	CbStartOfPostponed       CbReason = 1022
	CbRepStartOfPostponed    CbReason = 1023
	CbEndOfTimeStep          CbReason = 1024
	CbRepEndOfTimeStep       CbReason = 1025
	CbStartOfTool            CbReason = 1026
	CbEndOfTool              CbReason = 1027
	CbStartOfAnalysis        CbReason = 1028
	CbEndOfAnalysis          CbReason = 1029
	CbStartOfElaboration     CbReason = 1030
	CbEndOfElaboration       CbReason = 1031
	CbStartOfInitialization  CbReason = 1032
	CbEndOfInitialization    CbReason = 1033
	CbStartOfSimulation      CbReason = 1034
	CbEndOfSimulation        CbReason = 1035
	CbQuiescense             CbReason = 1036
	CbPLIError               CbReason = 1037
	CbStartOfSave            CbReason = 1038
	CbEndOfSave              CbReason = 1039
	CbStartOfRestart         CbReason = 1040
	CbEndOfRestart           CbReason = 1041
	CbStartOfReset           CbReason = 1042
	CbEndOfReset             CbReason = 1043
	CbEnterInteractive       CbReason = 1044
	CbExitInteractive        CbReason = 1045
	CbSigInterrupt           CbReason = 1046
	CbTimeOut                CbReason = 1047
	CbRepTimeOut             CbReason = 1048
	CbSensitivity            CbReason = 1049
)

var reasonNames = [...]string{
	"ValueChange", "Force", "Release", "Transaction", "Stmt", "Resume", "Suspend",
	"StartOfSubpCall", "EndOfSubpCall", "AfterDelay", "RepAfterDelay",
	"NextTimeStep", "RepNextTimeStep", "StartOfNextCycle", "RepStartOfNextCycle",
	"StartOfProcesses", "RepStartOfProcesses", "EndOfProcesses", "RepEndOfProcesses",
	"LastKnownDeltaCycle", "RepLastKnownDeltaCycle", "StartOfPostponed",
	"RepStartOfPostponed", "EndOfTimeStep", "RepEndOfTimeStep", "StartOfTool",
	"EndOfTool", "StartOfAnalysis", "EndOfAnalysis", "StartOfElaboration",
	"EndOfElaboration", "StartOfInitialization", "EndOfInitialization",
	"StartOfSimulation", "EndOfSimulation", "Quiescense", "PLIError", "StartOfSave",
	"EndOfSave", "StartOfRestart", "EndOfRestart", "StartOfReset", "EndOfReset",
	"EnterInteractive", "ExitInteractive", "SigInterrupt", "TimeOut", "RepTimeOut",
	"Sensitivity",
}

// Known reports whether r is a defined callback reason.
func (r CbReason) Known() bool {
	return r >= CbValueChange && r <= CbSensitivity
}

func (r CbReason) String() string {
	if r.Known() {
		return reasonNames[r-CbValueChange]
	}
	return "CbReason(" + strconv.Itoa(int(r)) + ")"
}

// OneShot reports whether the simulator removes a registration for r after
// it fires once.
func (r CbReason) OneShot() bool {
	switch r {
	case CbAfterDelay, CbNextTimeStep, CbStartOfNextCycle, CbStartOfProcesses,
		CbEndOfProcesses, CbLastKnownDeltaCycle, CbStartOfPostponed,
		CbEndOfTimeStep, CbTimeOut:
		return true
	}
	return false
}

// NeedsObject reports whether registrations for r must name a target object.
func (r CbReason) NeedsObject() bool {
	switch r {
	case CbValueChange, CbForce, CbRelease, CbTransaction, CbStmt, CbResume,
		CbSuspend, CbStartOfSubpCall, CbEndOfSubpCall, CbSensitivity:
		return true
	}
	return false
}

// NeedsTime reports whether registrations for r carry a delay.
func (r CbReason) NeedsTime() bool {
	switch r {
	case CbAfterDelay, CbRepAfterDelay, CbTimeOut, CbRepTimeOut:
		return true
	}
	return false
}

// RegisterFlags modify vhpi_register_cb.
type RegisterFlags int32

const (
	ReturnCb  RegisterFlags = 0x01
	DisableCb RegisterFlags = 0x10
)

// CbState is the value of the StateP property of a callback handle.
type CbState int32

const (
	CbEnabled  CbState = 1
	CbDisabled CbState = 2
	CbMature   CbState = 3
)
