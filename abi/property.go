package abi

// IntProperty selects an integer property for vhpi_get.
type IntProperty int32

const (
	AccessP           IntProperty = 1001
	ArgcP             IntProperty = 1002
	AttrKindP         IntProperty = 1003
	BaseIndexP        IntProperty = 1004
	BeginLineNoP      IntProperty = 1005
	EndLineNoP        IntProperty = 1006
	EntityClassP      IntProperty = 1007
	ForeignKindP      IntProperty = 1008
	FrameLevelP       IntProperty = 1009
	GenerateIndexP    IntProperty = 1010
	IntValP           IntProperty = 1011
	IsAnonymousP      IntProperty = 1012
	IsBasicP          IntProperty = 1013
	IsCompositeP      IntProperty = 1014
	IsDefaultP        IntProperty = 1015
	IsDeferredP       IntProperty = 1016
	IsDiscreteP       IntProperty = 1017
	IsForcedP         IntProperty = 1018
	IsForeignP        IntProperty = 1019
	IsGuardedP        IntProperty = 1020
	IsImplicitDeclP   IntProperty = 1021
	IsLocalP          IntProperty = 1023
	IsNamedP          IntProperty = 1024
	IsNullP           IntProperty = 1025
	IsOpenP           IntProperty = 1026
	IsPLIP            IntProperty = 1027
	IsPassiveP        IntProperty = 1028
	IsPostponedP      IntProperty = 1029
	IsProtectedTypeP  IntProperty = 1030
	IsPureP           IntProperty = 1031
	IsResolvedP       IntProperty = 1032
	IsScalarP         IntProperty = 1033
	IsSeqStmtP        IntProperty = 1034
	IsSharedP         IntProperty = 1035
	IsTransportP      IntProperty = 1036
	IsUnaffectedP     IntProperty = 1037
	IsUnconstrainedP  IntProperty = 1038
	IsUninstantiatedP IntProperty = 1039
	IsUpP             IntProperty = 1040
	IsVitalP          IntProperty = 1041
	IteratorTypeP     IntProperty = 1042
	KindP             IntProperty = 1043
	LeftBoundP        IntProperty = 1044
	LineNoP           IntProperty = 1046
	LineOffsetP       IntProperty = 1047
	LoopIndexP        IntProperty = 1048
	ModeP             IntProperty = 1049
	NumDimensionsP    IntProperty = 1050
	NumGensP          IntProperty = 1052
	NumLiteralsP      IntProperty = 1053
	NumMembersP       IntProperty = 1054
	NumParamsP        IntProperty = 1055
	NumPortsP         IntProperty = 1056
	OpenModeP         IntProperty = 1057
	PhaseP            IntProperty = 1058
	PositionP         IntProperty = 1059
	PredefAttrP       IntProperty = 1060
	ReasonP           IntProperty = 1062
	RightBoundP       IntProperty = 1063
	SigKindP          IntProperty = 1064
	SizeP             IntProperty = 1065
	StartLineNoP      IntProperty = 1066
	StateP            IntProperty = 1067
	StaticnessP       IntProperty = 1068
	VHDLversionP      IntProperty = 1069
	IDP               IntProperty = 1070
	CapabilitiesP     IntProperty = 1071
)

// Undefined is returned by vhpi_get when a property does not apply.
const Undefined int32 = -1

// StrProperty selects a string property for vhpi_get_str.
type StrProperty int32

const (
	CaseNameP            StrProperty = 1301
	CompInstNameP        StrProperty = 1302
	CompNameP            StrProperty = 1303
	DefNameP             StrProperty = 1304
	FileNameP            StrProperty = 1305
	FullCaseNameP        StrProperty = 1306
	FullNameP            StrProperty = 1307
	KindStrP             StrProperty = 1308
	LabelNameP           StrProperty = 1309
	LibLogicalNameP      StrProperty = 1310
	LibPhysicalNameP     StrProperty = 1311
	LogicalNameP         StrProperty = 1312
	LoopLabelNameP       StrProperty = 1313
	NameP                StrProperty = 1314
	OpNameP              StrProperty = 1315
	StrValP              StrProperty = 1316
	ToolVersionP         StrProperty = 1317
	UnitNameP            StrProperty = 1318
	SaveRestartLocationP StrProperty = 1319
)

// RealProperty selects a floating point property for vhpi_get_real.
type RealProperty int32

const (
	FloatLeftBoundP  RealProperty = 1601
	FloatRightBoundP RealProperty = 1602
	RealValP         RealProperty = 1603
)

// PhysProperty selects a physical property for vhpi_get_phys.
type PhysProperty int32

const (
	PhysLeftBoundP   PhysProperty = 1651
	PhysPositionP    PhysProperty = 1652
	PhysRightBoundP  PhysProperty = 1653
	PhysValP         PhysProperty = 1654
	ResolutionLimitP PhysProperty = 1657
	TimeP            PhysProperty = 1658
)

// Mode is the value of ModeP for ports and parameters.
type Mode int32

const (
	InMode      Mode = 1001
	OutMode     Mode = 1002
	InoutMode   Mode = 1003
	BufferMode  Mode = 1004
	LinkageMode Mode = 1005
)

func (m Mode) String() string {
	switch m {
	case InMode:
		return "in"
	case OutMode:
		return "out"
	case InoutMode:
		return "inout"
	case BufferMode:
		return "buffer"
	case LinkageMode:
		return "linkage"
	}
	return "unknown"
}
