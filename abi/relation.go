package abi

// OneToOne selects a single-valued relation for vhpi_handle.
type OneToOne int32

const (
	AbstractLiteral   OneToOne = 1301
	Actual            OneToOne = 1302
	All               OneToOne = 1303
	AttrDecl          OneToOne = 1304
	AttrSpec          OneToOne = 1305
	BaseType          OneToOne = 1306
	BaseUnit          OneToOne = 1307
	BlockConfig       OneToOne = 1309
	CaseExpr          OneToOne = 1310
	CondExpr          OneToOne = 1311
	ConfigDecl        OneToOne = 1312
	ConfigSpec        OneToOne = 1313
	Constraint        OneToOne = 1314
	Contributor       OneToOne = 1315
	CurCallback       OneToOne = 1316
	CurStackFrame     OneToOne = 1319
	DerefObj          OneToOne = 1320
	DesignUnit        OneToOne = 1321
	DownStack         OneToOne = 1322
	EntityAspect      OneToOne = 1324
	EntityDecl        OneToOne = 1325
	EqProcessStmt     OneToOne = 1326
	Expr              OneToOne = 1327
	Formal            OneToOne = 1328
	FuncDecl          OneToOne = 1329
	GroupTempDecl     OneToOne = 1330
	GuardExpr         OneToOne = 1331
	GuardSig          OneToOne = 1332
	ImmRegion         OneToOne = 1333
	InPort            OneToOne = 1334
	InitExpr          OneToOne = 1335
	LeftExpr          OneToOne = 1337
	LexicalScope      OneToOne = 1338
	LhsExpr           OneToOne = 1339
	Local             OneToOne = 1340
	LogicalExpr       OneToOne = 1341
	Others            OneToOne = 1344
	OutPort           OneToOne = 1345
	ParamDecl         OneToOne = 1346
	Parent            OneToOne = 1348
	PhysLiteral       OneToOne = 1349
	Prefix            OneToOne = 1350
	PrimaryUnit       OneToOne = 1351
	ProtectedTypeBody OneToOne = 1352
	ProtectedTypeDecl OneToOne = 1353
	RejectTime        OneToOne = 1354
	ReportExpr        OneToOne = 1355
	ResolFunc         OneToOne = 1356
	ReturnExpr        OneToOne = 1357
	RhsExpr           OneToOne = 1359
	RightExpr         OneToOne = 1360
	RootInst          OneToOne = 1361
	SelectExpr        OneToOne = 1362
	SeverityExpr      OneToOne = 1363
	SimpleName        OneToOne = 1364
	SubpBody          OneToOne = 1365
	SubpDecl          OneToOne = 1366
	Suffix            OneToOne = 1368
	TimeExpr          OneToOne = 1369
	TimeOutExpr       OneToOne = 1370
	Tool              OneToOne = 1371
	Type              OneToOne = 1372
	UnitDecl          OneToOne = 1374
	UpStack           OneToOne = 1375
	UpperRegion       OneToOne = 1376
	Use               OneToOne = 1377
	ValExpr           OneToOne = 1378
	ElemType          OneToOne = 1380
	FirstNamedType    OneToOne = 1381
	ReturnType        OneToOne = 1382
	ValType           OneToOne = 1383
	CurRegion         OneToOne = 1384
	Signal            OneToOne = 1385
	LibraryDecl       OneToOne = 1386
	SimNet            OneToOne = 1387
	AliasedName       OneToOne = 1388
	CompDecl          OneToOne = 1389
	ProtectedTypeInst OneToOne = 1390
	GenIndex          OneToOne = 1391
)

// OneToMany selects a multi-valued relation for vhpi_iterator.
type OneToMany int32

const (
	AliasDecls      OneToMany = 1501
	Argvs           OneToMany = 1502
	AttrDecls       OneToMany = 1503
	AttrSpecs       OneToMany = 1504
	BasicSignals    OneToMany = 1505
	BlockStmts      OneToMany = 1506
	Branchs         OneToMany = 1507
	Choices         OneToMany = 1509
	CompInstStmts   OneToMany = 1510
	CondWaveforms   OneToMany = 1512
	ConfigItems     OneToMany = 1513
	ConfigSpecs     OneToMany = 1514
	ConstDecls      OneToMany = 1515
	Constraints     OneToMany = 1516
	Decls           OneToMany = 1519
	DepUnits        OneToMany = 1520
	DesignUnits     OneToMany = 1521
	DrivenSigs      OneToMany = 1522
	Drivers         OneToMany = 1523
	ElemAssocs      OneToMany = 1524
	EnumLiterals    OneToMany = 1527
	Foreignfs       OneToMany = 1528
	GenericAssocs   OneToMany = 1529
	GenericDecls    OneToMany = 1530
	IndexExprs      OneToMany = 1531
	IndexedNames    OneToMany = 1532
	InternalRegions OneToMany = 1533
	Members         OneToMany = 1534
	PackInsts       OneToMany = 1535
	ParamAssocs     OneToMany = 1536
	ParamDecls      OneToMany = 1537
	PortAssocs      OneToMany = 1538
	PortDecls       OneToMany = 1539
	RecordElems     OneToMany = 1540
	SelectWaveforms OneToMany = 1541
	SelectedNames   OneToMany = 1542
	SeqStmts        OneToMany = 1544
	SigAttrs        OneToMany = 1545
	SigDecls        OneToMany = 1546
	SigNames        OneToMany = 1547
	Signals         OneToMany = 1548
	Specs           OneToMany = 1549
	Stmts           OneToMany = 1550
	Transactions    OneToMany = 1551
	UnitDecls       OneToMany = 1553
	Uses            OneToMany = 1554
	VarDecls        OneToMany = 1555
	WaveformElems   OneToMany = 1556
	LibraryDecls    OneToMany = 1557
	Sensitivities   OneToMany = 1569
)
