package sim

import (
	"fmt"
	"io"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/vhpi/abi"
	"github.com/wippyai/vhpi/errors"
	"github.com/wippyai/vhpi/internal/latin1"
	"github.com/wippyai/vhpi/simtime"
)

// ToolName and ToolVersion are reported through the tool handle.
const (
	ToolName    = "vhpisim"
	ToolVersion = "1.0"
)

// Fault names a native entry point that Config.Faults can make fail.
type Fault string

const (
	FaultRegisterCb Fault = "vhpi_register_cb"
	FaultRemoveCb   Fault = "vhpi_remove_cb"
	FaultGetValue   Fault = "vhpi_get_value"
	FaultPutValue   Fault = "vhpi_put_value"
	FaultRelease    Fault = "vhpi_release_handle"
	FaultControl    Fault = "vhpi_control"
	FaultPrintf     Fault = "vhpi_printf"
)

// Config configures a Simulator.
type Config struct {
	Design *Design
	// Output receives vhpi_printf text and assertion reports.
	Output io.Writer
	// Resolution is the simulator's time resolution. Defaults to 1 fs.
	Resolution simtime.Time
	// StopSeverity is the lowest assertion severity that stops the
	// simulation. Defaults to Failure.
	StopSeverity errors.Severity
	// Faults lists entry points that fail with an Error diagnostic.
	Faults []Fault
	Logger *zap.Logger
}

// Stats counts handle and callback bookkeeping so callers can check that a
// client honours the native ownership rules.
type Stats struct {
	LiveHandles      int // owned handles handed out and not yet released
	Releases         int
	DoubleReleases   int // releases of handles that were never valid or already released
	BorrowedReleases int // releases of handles owned by a callback
	ActiveCallbacks  int // registered, not removed and not matured
	Fired            int
}

type refKind uint8

const (
	refObject refKind = iota + 1
	refIterator
	refCallback
)

type ref struct {
	kind     refKind
	obj      *object
	iter     []*object
	pos      int
	cb       *callback
	borrowed bool
}

// Simulator is an in-process event driven simulator of a Design. It
// implements abi.Native, so the vhpi package can drive it exactly as it
// drives a real simulator. It is not safe for concurrent use.
type Simulator struct {
	cfg    Config
	log    *zap.Logger
	faults map[Fault]bool

	tool  *object
	root  *object
	types map[string]*typeDecl
	file  string

	refs    map[abi.Ref]*ref
	nextRef abi.Ref
	stats   Stats
	err     *abi.ErrorInfo

	dispatch  abi.Dispatcher
	callbacks []*callback

	now       int64
	cycles    int64
	queue     eventQueue
	seq       uint64
	started   bool
	stopped   bool
	finishing bool
	finished  bool
}

var _ abi.Native = (*Simulator)(nil)

// New elaborates cfg.Design and returns a simulator at time zero.
func New(cfg Config) (*Simulator, error) {
	if cfg.Design == nil {
		return nil, errors.Load("no design", nil)
	}
	if cfg.Output == nil {
		cfg.Output = io.Discard
	}
	if cfg.Resolution.IsZero() {
		cfg.Resolution = simtime.FromInt64(1)
	}
	if cfg.StopSeverity == 0 {
		cfg.StopSeverity = errors.SeverityFailure
	}

	s := &Simulator{
		cfg:     cfg,
		log:     cfg.Logger,
		faults:  make(map[Fault]bool, len(cfg.Faults)),
		refs:    make(map[abi.Ref]*ref),
		nextRef: 0x1000,
		file:    cfg.Design.File,
	}
	if s.log == nil {
		s.log = Logger()
	}
	for _, f := range cfg.Faults {
		s.faults[f] = true
	}

	e, err := cfg.Design.elaborate()
	if err != nil {
		return nil, err
	}
	s.tool = &object{kind: abi.ToolK, name: ToolName}
	s.root = e.root
	s.types = e.types
	for _, ev := range e.events {
		s.schedule(ev)
	}
	return s, nil
}

// Stats returns a snapshot of the bookkeeping counters.
func (s *Simulator) Stats() Stats {
	st := s.stats
	s.prune()
	for _, c := range s.callbacks {
		if !c.removed && c.state != abi.CbMature {
			st.ActiveCallbacks++
		}
	}
	return st
}

// Now returns the current simulation time.
func (s *Simulator) Now() simtime.Time {
	return simtime.FromInt64(s.now)
}

// Finished reports whether the end of simulation has been reached.
func (s *Simulator) Finished() bool {
	return s.finished
}

// Stopped reports whether the last run was paused by Control(Stop) or an
// assertion.
func (s *Simulator) Stopped() bool {
	return s.stopped
}

// begin clears the error record; every entry point except CheckError
// starts with it.
func (s *Simulator) begin() {
	s.err = nil
}

func (s *Simulator) fail(op string, sev errors.Severity, format string, args ...any) {
	s.err = &abi.ErrorInfo{
		Severity: int32(sev),
		Message:  latin1.Encode(fmt.Sprintf(format, args...)),
		Str:      []byte(op),
		File:     []byte(s.file),
	}
}

func (s *Simulator) faulted(f Fault) bool {
	if s.faults[f] {
		s.fail(string(f), errors.SeverityError, "injected fault")
		return true
	}
	return false
}

func (s *Simulator) newRef(r *ref) abi.Ref {
	s.nextRef++
	s.refs[s.nextRef] = r
	if !r.borrowed {
		s.stats.LiveHandles++
	}
	return s.nextRef
}

// drop forgets a handle the simulator frees itself.
func (s *Simulator) drop(h abi.Ref) {
	if r, ok := s.refs[h]; ok {
		delete(s.refs, h)
		if !r.borrowed {
			s.stats.LiveHandles--
		}
	}
}

func (s *Simulator) lookup(h abi.Ref, op string) *ref {
	r, ok := s.refs[h]
	if !ok {
		s.fail(op, errors.SeverityError, "invalid handle %#x", uintptr(h))
		return nil
	}
	return r
}

func (s *Simulator) object(h abi.Ref, op string) *object {
	r := s.lookup(h, op)
	if r == nil {
		return nil
	}
	if r.kind != refObject {
		s.fail(op, errors.SeverityError, "handle %#x is not a design object", uintptr(h))
		return nil
	}
	return r.obj
}

// Handle implements vhpi_handle.
func (s *Simulator) Handle(rel abi.OneToOne, h abi.Ref) abi.Ref {
	s.begin()
	var from *object
	if h != 0 {
		if from = s.object(h, "vhpi_handle"); from == nil {
			return 0
		}
	}

	var target *object
	switch rel {
	case abi.RootInst:
		target = s.root
	case abi.Tool:
		target = s.tool
	case abi.Parent, abi.UpperRegion:
		if from != nil && from.kind != abi.ToolK {
			target = from.parent
		}
	case abi.Type, abi.BaseType:
		if from != nil && from.typ != nil && from.isSignal() {
			target = typeObject(from.typ, s.root)
		}
	case abi.ElemType:
		if from != nil && from.kind == abi.ArrayTypeDeclK {
			target = typeObject(from.typ.elem, s.root)
		}
	}
	if target == nil {
		return 0
	}
	return s.newRef(&ref{kind: refObject, obj: target})
}

// HandleByName implements vhpi_handle_by_name.
func (s *Simulator) HandleByName(name []byte, scope abi.Ref) abi.Ref {
	s.begin()
	var from *object
	if scope != 0 {
		if from = s.object(scope, "vhpi_handle_by_name"); from == nil {
			return 0
		}
	}
	o := resolve(s.root, from, latin1.Decode(name))
	if o == nil {
		s.fail("vhpi_handle_by_name", errors.SeverityError, "name %q not found", latin1.Decode(name))
		return 0
	}
	return s.newRef(&ref{kind: refObject, obj: o})
}

// Iterator implements vhpi_iterator. An empty relation yields no iterator.
func (s *Simulator) Iterator(rel abi.OneToMany, h abi.Ref) abi.Ref {
	s.begin()
	from := s.root
	if h != 0 {
		if from = s.object(h, "vhpi_iterator"); from == nil {
			return 0
		}
	}

	var list []*object
	switch rel {
	case abi.Decls:
		if from.isRegion() {
			list = from.decls
		}
	case abi.SigDecls:
		list = from.declsOf(abi.SigDeclK)
	case abi.PortDecls:
		list = from.declsOf(abi.PortDeclK)
	case abi.InternalRegions:
		list = from.regions
	case abi.EnumLiterals:
		if from.kind == abi.EnumTypeDeclK {
			list = from.decls
		}
	case abi.Constraints:
		if from.isSignal() && !from.typ.scalar() {
			list = []*object{from.constraintObject()}
		}
	default:
		s.fail("vhpi_iterator", errors.SeverityWarning, "relation %d not supported", int32(rel))
		return 0
	}
	if len(list) == 0 {
		return 0
	}
	return s.newRef(&ref{kind: refIterator, iter: list})
}

// Scan implements vhpi_scan. The iterator is freed when it is exhausted.
func (s *Simulator) Scan(iter abi.Ref) abi.Ref {
	s.begin()
	r := s.lookup(iter, "vhpi_scan")
	if r == nil {
		return 0
	}
	if r.kind != refIterator {
		s.fail("vhpi_scan", errors.SeverityError, "handle %#x is not an iterator", uintptr(iter))
		return 0
	}
	if r.pos >= len(r.iter) {
		s.drop(iter)
		return 0
	}
	o := r.iter[r.pos]
	r.pos++
	return s.newRef(&ref{kind: refObject, obj: o})
}

// Release implements vhpi_release_handle.
func (s *Simulator) Release(h abi.Ref) int32 {
	s.begin()
	if s.faulted(FaultRelease) {
		return 1
	}
	r, ok := s.refs[h]
	if !ok {
		s.stats.DoubleReleases++
		s.log.Warn("release of invalid handle", zap.Uintptr("handle", uintptr(h)))
		s.fail("vhpi_release_handle", errors.SeverityError, "invalid handle %#x", uintptr(h))
		return 1
	}
	if r.borrowed {
		s.stats.BorrowedReleases++
		s.log.Warn("release of callback handle", zap.Uintptr("handle", uintptr(h)))
		s.fail("vhpi_release_handle", errors.SeverityError, "handle %#x belongs to a callback", uintptr(h))
		return 1
	}
	s.drop(h)
	s.stats.Releases++
	return 0
}

// Compare implements vhpi_compare_handles.
func (s *Simulator) Compare(a, b abi.Ref) bool {
	s.begin()
	ra, oka := s.refs[a]
	rb, okb := s.refs[b]
	if !oka || !okb || ra.kind != rb.kind {
		return false
	}
	switch ra.kind {
	case refObject:
		return ra.obj == rb.obj
	case refCallback:
		return ra.cb == rb.cb
	}
	return a == b
}

// Get implements vhpi_get.
func (s *Simulator) Get(p abi.IntProperty, h abi.Ref) int32 {
	s.begin()
	r := s.lookup(h, "vhpi_get")
	if r == nil {
		return abi.Undefined
	}
	switch r.kind {
	case refCallback:
		switch p {
		case abi.KindP:
			return int32(abi.CallbackK)
		case abi.StateP:
			return int32(r.cb.state)
		}
	case refIterator:
		if p == abi.KindP {
			return int32(abi.IteratorK)
		}
	case refObject:
		if v, ok := s.intProperty(p, r.obj); ok {
			return v
		}
	}
	s.fail("vhpi_get", errors.SeverityError, "property %d not defined for this object", int32(p))
	return abi.Undefined
}

func (s *Simulator) intProperty(p abi.IntProperty, o *object) (int32, bool) {
	switch p {
	case abi.KindP:
		return int32(o.kind), true
	case abi.LineNoP:
		return o.line, true
	case abi.CapabilitiesP:
		if o.kind == abi.ToolK {
			return int32(abi.ProvidesHierarchy | abi.ProvidesStaticAccess | abi.ProvidesDebugRuntime), true
		}
	case abi.SizeP:
		if o.isSignal() {
			return int32(len(o.value)), true
		}
	case abi.IsScalarP:
		if o.isSignal() {
			return boolProp(o.typ.scalar()), true
		}
	case abi.IsCompositeP:
		if o.isSignal() {
			return boolProp(!o.typ.scalar()), true
		}
	case abi.ModeP:
		if o.kind == abi.PortDeclK {
			return int32(o.mode), true
		}
	case abi.PositionP:
		if o.kind == abi.EnumLiteralK {
			return int32(o.pos), true
		}
	case abi.NumLiteralsP:
		if o.kind == abi.EnumTypeDeclK {
			return int32(len(o.typ.literals)), true
		}
	case abi.IsUpP, abi.LeftBoundP, abi.RightBoundP:
		return rangeProperty(p, o)
	}
	return 0, false
}

func rangeProperty(p abi.IntProperty, o *object) (int32, bool) {
	var left, right int64
	up := true
	switch {
	case o.kind == abi.IntRangeK:
		left, right, up = o.rng.left, o.rng.right, o.rng.up
	case o.kind == abi.IntTypeDeclK:
		left, right = o.typ.low, o.typ.high
	default:
		return 0, false
	}
	switch p {
	case abi.IsUpP:
		return boolProp(up), true
	case abi.LeftBoundP:
		return int32(left), true
	}
	return int32(right), true
}

func boolProp(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// GetStr implements vhpi_get_str.
func (s *Simulator) GetStr(p abi.StrProperty, h abi.Ref) ([]byte, bool) {
	s.begin()
	o := s.object(h, "vhpi_get_str")
	if o == nil {
		return nil, false
	}

	var str string
	switch {
	case p == abi.NameP && o.kind == abi.EnumLiteralK:
		str = o.name
	case p == abi.NameP:
		str = o.upperName()
	case p == abi.CaseNameP:
		str = o.name
	case p == abi.FullNameP && o.kind != abi.ToolK:
		str = o.fullName(true)
	case p == abi.FullCaseNameP && o.kind != abi.ToolK:
		str = o.fullName(false)
	case p == abi.KindStrP:
		str = "vhpi" + o.kind.String() + "K"
	case p == abi.FileNameP && s.file != "" && o.kind != abi.ToolK:
		str = s.file
	case p == abi.ToolVersionP && o.kind == abi.ToolK:
		str = ToolVersion
	default:
		s.fail("vhpi_get_str", errors.SeverityError, "string property %d not defined for this object", int32(p))
		return nil, false
	}
	return latin1.Encode(str), true
}

// GetReal implements vhpi_get_real.
func (s *Simulator) GetReal(p abi.RealProperty, h abi.Ref) float64 {
	s.begin()
	o := s.object(h, "vhpi_get_real")
	if o == nil {
		return 0
	}
	if o.kind == abi.FloatTypeDeclK {
		switch p {
		case abi.FloatLeftBoundP:
			return -math.MaxFloat64
		case abi.FloatRightBoundP:
			return math.MaxFloat64
		}
	}
	s.fail("vhpi_get_real", errors.SeverityError, "real property %d not defined for this object", int32(p))
	return 0
}

// GetPhys implements vhpi_get_phys.
func (s *Simulator) GetPhys(p abi.PhysProperty, h abi.Ref) simtime.Physical {
	s.begin()
	o := s.object(h, "vhpi_get_phys")
	if o == nil {
		return simtime.Physical{}
	}
	switch {
	case p == abi.ResolutionLimitP && o.kind == abi.ToolK:
		return s.cfg.Resolution.Physical()
	case p == abi.PhysLeftBoundP && o.kind == abi.PhysTypeDeclK:
		return simtime.PhysicalFromInt64(o.typ.low)
	case p == abi.PhysRightBoundP && o.kind == abi.PhysTypeDeclK:
		return simtime.PhysicalFromInt64(o.typ.high)
	}
	s.fail("vhpi_get_phys", errors.SeverityError, "physical property %d not defined for this object", int32(p))
	return simtime.Physical{}
}

// GetTime implements vhpi_get_time.
func (s *Simulator) GetTime(t *simtime.Time, cycles *int64) {
	s.begin()
	if t != nil {
		*t = simtime.FromInt64(s.now)
	}
	if cycles != nil {
		*cycles = s.cycles
	}
}

// GetNextTime implements vhpi_get_next_time.
func (s *Simulator) GetNextTime(t *simtime.Time) int32 {
	s.begin()
	if len(s.queue) == 0 {
		return 1
	}
	if t != nil {
		*t = simtime.FromInt64(s.queue[0].at)
	}
	return 0
}

// Control implements vhpi_control. Reset is not supported.
func (s *Simulator) Control(cmd abi.Control) int32 {
	s.begin()
	if s.faulted(FaultControl) {
		return 1
	}
	switch cmd {
	case abi.Stop:
		s.stopped = true
	case abi.Finish:
		s.finishing = true
	default:
		s.fail("vhpi_control", errors.SeverityError, "%s not supported", cmd)
		return 1
	}
	s.log.Debug("control", zap.Stringer("command", cmd))
	return 0
}

// CheckError implements vhpi_check_error. It reports the record left by the
// previous call and does not clear it.
func (s *Simulator) CheckError(info *abi.ErrorInfo) bool {
	if s.err == nil {
		return false
	}
	*info = *s.err
	return true
}

// Printf implements vhpi_printf. It returns the number of bytes written.
func (s *Simulator) Printf(msg []byte) int32 {
	s.begin()
	if s.faulted(FaultPrintf) {
		return -1
	}
	n, err := io.WriteString(s.cfg.Output, latin1.Decode(msg))
	if err != nil {
		s.fail("vhpi_printf", errors.SeveritySystem, "%v", err)
		return -1
	}
	return int32(n)
}

// Assert implements vhpi_assert. A severity at or above Config.StopSeverity
// stops the simulation.
func (s *Simulator) Assert(severity int32, msg []byte) int32 {
	s.begin()
	sev := errors.Severity(severity)
	line := fmt.Sprintf("Assertion %s: %s", strings.ToLower(sev.String()), latin1.Decode(msg))
	if _, err := fmt.Fprintln(s.cfg.Output, line); err != nil {
		s.fail("vhpi_assert", errors.SeveritySystem, "%v", err)
		return 1
	}
	if sev >= s.cfg.StopSeverity {
		s.stopped = true
	}
	return 0
}
