package abi

import "strconv"

// ClassKind is the value of KindP: the class of a design object.
type ClassKind int32

const (
	AccessTypeDeclK      ClassKind = 1001
	AggregateK           ClassKind = 1002
	AliasDeclK           ClassKind = 1003
	AllK                 ClassKind = 1004
	AllocatorK           ClassKind = 1005
	AnyCollectionK       ClassKind = 1006
	ArchBodyK            ClassKind = 1007
	ArgvK                ClassKind = 1008
	ArrayTypeDeclK       ClassKind = 1009
	AssertStmtK          ClassKind = 1010
	AssocElemK           ClassKind = 1011
	AttrDeclK            ClassKind = 1012
	AttrSpecK            ClassKind = 1013
	BitStringLiteralK    ClassKind = 1015
	BlockConfigK         ClassKind = 1016
	BlockStmtK           ClassKind = 1017
	BranchK              ClassKind = 1018
	CallbackK            ClassKind = 1019
	CaseStmtK            ClassKind = 1020
	CharLiteralK         ClassKind = 1021
	CompConfigK          ClassKind = 1022
	CompDeclK            ClassKind = 1023
	CompInstStmtK        ClassKind = 1024
	CondSigAssignStmtK   ClassKind = 1025
	CondWaveformK        ClassKind = 1026
	ConfigDeclK          ClassKind = 1027
	ConstDeclK           ClassKind = 1028
	ConstParamDeclK      ClassKind = 1029
	ConvFuncK            ClassKind = 1030
	DerefObjK            ClassKind = 1031
	DisconnectSpecK      ClassKind = 1032
	DriverK              ClassKind = 1033
	DriverCollectionK    ClassKind = 1034
	ElemAssocK           ClassKind = 1035
	ElemDeclK            ClassKind = 1036
	EntityClassEntryK    ClassKind = 1037
	EntityDeclK          ClassKind = 1038
	EnumLiteralK         ClassKind = 1039
	EnumRangeK           ClassKind = 1040
	EnumTypeDeclK        ClassKind = 1041
	ExitStmtK            ClassKind = 1042
	FileDeclK            ClassKind = 1043
	FileParamDeclK       ClassKind = 1044
	FileTypeDeclK        ClassKind = 1045
	FloatRangeK          ClassKind = 1046
	FloatTypeDeclK       ClassKind = 1047
	ForGenerateK         ClassKind = 1048
	ForLoopK             ClassKind = 1049
	ForeignfK            ClassKind = 1050
	FuncCallK            ClassKind = 1051
	FuncDeclK            ClassKind = 1052
	GenericDeclK         ClassKind = 1053
	GroupDeclK           ClassKind = 1054
	GroupTempDeclK       ClassKind = 1055
	IfGenerateK          ClassKind = 1056
	IfStmtK              ClassKind = 1057
	InPortK              ClassKind = 1058
	IndexedNameK         ClassKind = 1059
	IntLiteralK          ClassKind = 1060
	IntRangeK            ClassKind = 1061
	IntTypeDeclK         ClassKind = 1062
	IteratorK            ClassKind = 1063
	LibraryDeclK         ClassKind = 1064
	LoopStmtK            ClassKind = 1065
	NextStmtK            ClassKind = 1066
	NullLiteralK         ClassKind = 1067
	NullStmtK            ClassKind = 1068
	OperatorK            ClassKind = 1069
	OthersK              ClassKind = 1070
	OutPortK             ClassKind = 1071
	PackBodyK            ClassKind = 1072
	PackDeclK            ClassKind = 1073
	PackInstK            ClassKind = 1074
	ParamAttrNameK       ClassKind = 1075
	PhysLiteralK         ClassKind = 1076
	PhysRangeK           ClassKind = 1077
	PhysTypeDeclK        ClassKind = 1078
	PortDeclK            ClassKind = 1079
	ProcCallStmtK        ClassKind = 1080
	ProcDeclK            ClassKind = 1081
	ProcessStmtK         ClassKind = 1082
	ProtectedTypeK       ClassKind = 1083
	ProtectedTypeBodyK   ClassKind = 1084
	ProtectedTypeDeclK   ClassKind = 1085
	RealLiteralK         ClassKind = 1086
	RecordTypeDeclK      ClassKind = 1087
	ReportStmtK          ClassKind = 1088
	ReturnStmtK          ClassKind = 1089
	RootInstK            ClassKind = 1090
	SelectSigAssignStmtK ClassKind = 1091
	SelectWaveformK      ClassKind = 1092
	SelectedNameK        ClassKind = 1093
	SigDeclK             ClassKind = 1094
	SigParamDeclK        ClassKind = 1095
	SimpAttrNameK        ClassKind = 1096
	SimpleSigAssignStmtK ClassKind = 1097
	SliceNameK           ClassKind = 1098
	StringLiteralK       ClassKind = 1099
	SubpBodyK            ClassKind = 1100
	SubtypeDeclK         ClassKind = 1101
	ToolK                ClassKind = 1103
	TransactionK         ClassKind = 1104
	TypeConvK            ClassKind = 1105
	UnitDeclK            ClassKind = 1107
	UserAttrNameK        ClassKind = 1108
	VarAssignStmtK       ClassKind = 1109
	VarDeclK             ClassKind = 1110
	VarParamDeclK        ClassKind = 1111
	WaitStmtK            ClassKind = 1112
	WaveformElemK        ClassKind = 1113
	WhileLoopK           ClassKind = 1114
	QualifiedExprK       ClassKind = 1115
	UseClauseK           ClassKind = 1116
	ConcAssertStmtK      ClassKind = 1117
	ConcProcCallStmtK    ClassKind = 1118
	ForeverLoopK         ClassKind = 1119
	SeqAssertStmtK       ClassKind = 1120
	SeqProcCallStmtK     ClassKind = 1121
	SeqSigAssignStmtK    ClassKind = 1122
	ProtectedTypeInstK   ClassKind = 1123
)

var kindNames = map[ClassKind]string{
	AccessTypeDeclK: "AccessTypeDecl", AggregateK: "Aggregate", AliasDeclK: "AliasDecl",
	AllK: "All", AllocatorK: "Allocator", AnyCollectionK: "AnyCollection",
	ArchBodyK: "ArchBody", ArgvK: "Argv", ArrayTypeDeclK: "ArrayTypeDecl",
	AssertStmtK: "AssertStmt", AssocElemK: "AssocElem", AttrDeclK: "AttrDecl",
	AttrSpecK: "AttrSpec", BitStringLiteralK: "BitStringLiteral",
	BlockConfigK: "BlockConfig", BlockStmtK: "BlockStmt", BranchK: "Branch",
	CallbackK: "Callback", CaseStmtK: "CaseStmt", CharLiteralK: "CharLiteral",
	CompConfigK: "CompConfig", CompDeclK: "CompDecl", CompInstStmtK: "CompInstStmt",
	CondSigAssignStmtK: "CondSigAssignStmt", CondWaveformK: "CondWaveform",
	ConfigDeclK: "ConfigDecl", ConstDeclK: "ConstDecl", ConstParamDeclK: "ConstParamDecl",
	ConvFuncK: "ConvFunc", DerefObjK: "DerefObj", DisconnectSpecK: "DisconnectSpec",
	DriverK: "Driver", DriverCollectionK: "DriverCollection", ElemAssocK: "ElemAssoc",
	ElemDeclK: "ElemDecl", EntityClassEntryK: "EntityClassEntry",
	EntityDeclK: "EntityDecl", EnumLiteralK: "EnumLiteral", EnumRangeK: "EnumRange",
	EnumTypeDeclK: "EnumTypeDecl", ExitStmtK: "ExitStmt", FileDeclK: "FileDecl",
	FileParamDeclK: "FileParamDecl", FileTypeDeclK: "FileTypeDecl",
	FloatRangeK: "FloatRange", FloatTypeDeclK: "FloatTypeDecl",
	ForGenerateK: "ForGenerate", ForLoopK: "ForLoop", ForeignfK: "Foreignf",
	FuncCallK: "FuncCall", FuncDeclK: "FuncDecl", GenericDeclK: "GenericDecl",
	GroupDeclK: "GroupDecl", GroupTempDeclK: "GroupTempDecl",
	IfGenerateK: "IfGenerate", IfStmtK: "IfStmt", InPortK: "InPort",
	IndexedNameK: "IndexedName", IntLiteralK: "IntLiteral", IntRangeK: "IntRange",
	IntTypeDeclK: "IntTypeDecl", IteratorK: "Iterator", LibraryDeclK: "LibraryDecl",
	LoopStmtK: "LoopStmt", NextStmtK: "NextStmt", NullLiteralK: "NullLiteral",
	NullStmtK: "NullStmt", OperatorK: "Operator", OthersK: "Others",
	OutPortK: "OutPort", PackBodyK: "PackBody", PackDeclK: "PackDecl",
	PackInstK: "PackInst", ParamAttrNameK: "ParamAttrName",
	PhysLiteralK: "PhysLiteral", PhysRangeK: "PhysRange", PhysTypeDeclK: "PhysTypeDecl",
	PortDeclK: "PortDecl", ProcCallStmtK: "ProcCallStmt", ProcDeclK: "ProcDecl",
	ProcessStmtK: "ProcessStmt", ProtectedTypeK: "ProtectedType",
	ProtectedTypeBodyK: "ProtectedTypeBody", ProtectedTypeDeclK: "ProtectedTypeDecl",
	RealLiteralK: "RealLiteral", RecordTypeDeclK: "RecordTypeDecl",
	ReportStmtK: "ReportStmt", ReturnStmtK: "ReturnStmt", RootInstK: "RootInst",
	SelectSigAssignStmtK: "SelectSigAssignStmt", SelectWaveformK: "SelectWaveform",
	SelectedNameK: "SelectedName", SigDeclK: "SigDecl", SigParamDeclK: "SigParamDecl",
	SimpAttrNameK: "SimpAttrName", SimpleSigAssignStmtK: "SimpleSigAssignStmt",
	SliceNameK: "SliceName", StringLiteralK: "StringLiteral", SubpBodyK: "SubpBody",
	SubtypeDeclK: "SubtypeDecl", ToolK: "Tool", TransactionK: "Transaction",
	TypeConvK: "TypeConv", UnitDeclK: "UnitDecl", UserAttrNameK: "UserAttrName",
	VarAssignStmtK: "VarAssignStmt", VarDeclK: "VarDecl", VarParamDeclK: "VarParamDecl",
	WaitStmtK: "WaitStmt", WaveformElemK: "WaveformElem", WhileLoopK: "WhileLoop",
	QualifiedExprK: "QualifiedExpr", UseClauseK: "UseClause",
	ConcAssertStmtK: "ConcAssertStmt", ConcProcCallStmtK: "ConcProcCallStmt",
	ForeverLoopK: "ForeverLoop", SeqAssertStmtK: "SeqAssertStmt",
	SeqProcCallStmtK: "SeqProcCallStmt", SeqSigAssignStmtK: "SeqSigAssignStmt",
	ProtectedTypeInstK: "ProtectedTypeInst",
}

// Known reports whether k is a defined class kind.
func (k ClassKind) Known() bool {
	_, ok := kindNames[k]
	return ok
}

func (k ClassKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "ClassKind(" + strconv.Itoa(int(k)) + ")"
}
