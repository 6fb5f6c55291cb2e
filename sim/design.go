package sim

import (
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/vhpi/abi"
	"github.com/wippyai/vhpi/errors"
	"github.com/wippyai/vhpi/simtime"
)

// Design is an elaborated-design description: the hierarchy, its signals and
// a stimulus list. It is usually loaded from YAML:
//
//	name: top
//	signals:
//	  - {name: clk, type: std_logic}
//	  - {name: count, type: std_logic_vector, range: 7 downto 0}
//	clocks:
//	  - {signal: clk, period: 10 ns, until: 100 ns}
//	stimulus:
//	  - {at: 25 ns, signal: count, value: "00000011"}
type Design struct {
	Name     string       `yaml:"name"`
	File     string       `yaml:"file,omitempty"`
	Types    []TypeSpec   `yaml:"types,omitempty"`
	Ports    []SignalSpec `yaml:"ports,omitempty"`
	Signals  []SignalSpec `yaml:"signals,omitempty"`
	Regions  []RegionSpec `yaml:"regions,omitempty"`
	Stimulus []Stimulus   `yaml:"stimulus,omitempty"`
	Clocks   []Clock      `yaml:"clocks,omitempty"`
}

// TypeSpec declares a user type. Kind is one of enum, integer, real,
// physical or array.
type TypeSpec struct {
	Name     string   `yaml:"name"`
	Kind     string   `yaml:"kind"`
	Literals []string `yaml:"literals,omitempty"`
	Low      *int64   `yaml:"low,omitempty"`
	High     *int64   `yaml:"high,omitempty"`
	Element  string   `yaml:"element,omitempty"`
}

// SignalSpec declares a signal, or a port when Mode is set or it appears in
// a ports list. Range is required for array types.
type SignalSpec struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Range string `yaml:"range,omitempty"`
	Mode  string `yaml:"mode,omitempty"`
	Init  string `yaml:"init,omitempty"`
	Line  int32  `yaml:"line,omitempty"`
}

// RegionSpec declares a component instance below the root.
type RegionSpec struct {
	Name    string       `yaml:"name"`
	Ports   []SignalSpec `yaml:"ports,omitempty"`
	Signals []SignalSpec `yaml:"signals,omitempty"`
	Regions []RegionSpec `yaml:"regions,omitempty"`
}

// Stimulus drives Signal to Value at time At. Signal is a hierarchical name
// relative to the root.
type Stimulus struct {
	At     simtime.Time `yaml:"at"`
	Signal string       `yaml:"signal"`
	Value  string       `yaml:"value"`
}

// Clock toggles a one-bit signal every half Period, starting low at zero.
type Clock struct {
	Signal string       `yaml:"signal"`
	Period simtime.Time `yaml:"period"`
	Until  simtime.Time `yaml:"until"`
}

// LoadDesign decodes a YAML design. Unknown fields are rejected.
func LoadDesign(r io.Reader) (*Design, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var d Design
	if err := dec.Decode(&d); err != nil {
		if err == io.EOF {
			return nil, errors.Load("empty design", nil)
		}
		return nil, errors.ParseFailed("design", err)
	}
	if d.Name == "" {
		return nil, errors.Load("design has no name", nil)
	}
	return &d, nil
}

// LoadDesignFile reads a design from path and records path as its source file.
func LoadDesignFile(path string) (*Design, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Load("open design", err)
	}
	defer f.Close()

	d, err := LoadDesign(f)
	if err != nil {
		return nil, err
	}
	if d.File == "" {
		d.File = path
	}
	return d, nil
}

type elaborated struct {
	root   *object
	types  map[string]*typeDecl
	events []*event
}

type elaborator struct {
	types  map[string]*typeDecl
	events []*event
}

func (d *Design) elaborate() (*elaborated, error) {
	e := &elaborator{types: builtinTypes()}
	for _, ts := range d.Types {
		if err := e.declareType(ts); err != nil {
			return nil, err
		}
	}

	root := &object{kind: abi.RootInstK, name: d.Name}
	if err := e.region(root, d.Ports, d.Signals, d.Regions); err != nil {
		return nil, err
	}
	for _, st := range d.Stimulus {
		if err := e.stimulus(root, st); err != nil {
			return nil, err
		}
	}
	for _, c := range d.Clocks {
		if err := e.clock(root, c); err != nil {
			return nil, err
		}
	}
	return &elaborated{root: root, types: e.types, events: e.events}, nil
}

func (e *elaborator) lookupType(name string) (*typeDecl, error) {
	t, ok := e.types[strings.ToUpper(name)]
	if !ok {
		return nil, errors.NotFound(errors.PhaseLoad, "type", name)
	}
	return t, nil
}

func (e *elaborator) declareType(ts TypeSpec) error {
	key := strings.ToUpper(ts.Name)
	if key == "" {
		return errors.Load("type has no name", nil)
	}
	if _, dup := e.types[key]; dup {
		return errors.Load("type "+ts.Name+" declared twice", nil)
	}

	t := &typeDecl{name: key}
	switch strings.ToLower(ts.Kind) {
	case "enum":
		if len(ts.Literals) == 0 {
			return errors.Load("enum type "+ts.Name+" has no literals", nil)
		}
		t.kind = enumType
		t.literals = ts.Literals
	case "integer", "physical":
		t.kind = integerType
		if strings.EqualFold(ts.Kind, "physical") {
			t.kind = physicalType
		}
		if ts.Low == nil || ts.High == nil || *ts.Low > *ts.High {
			return errors.Load("type "+ts.Name+" needs low <= high", nil)
		}
		t.low, t.high = *ts.Low, *ts.High
	case "real":
		t.kind = realType
	case "array":
		elem, err := e.lookupType(ts.Element)
		if err != nil {
			return err
		}
		if !elem.scalar() {
			return errors.Load("array type "+ts.Name+" needs a scalar element type", nil)
		}
		t.kind = arrayType
		t.elem = elem
	default:
		return errors.Load("type "+ts.Name+" has unknown kind "+ts.Kind, nil)
	}
	e.types[key] = t
	return nil
}

func (e *elaborator) region(r *object, ports, signals []SignalSpec, regions []RegionSpec) error {
	for _, p := range ports {
		if p.Mode == "" {
			p.Mode = "in"
		}
		if err := e.signal(r, p); err != nil {
			return err
		}
	}
	for _, s := range signals {
		if err := e.signal(r, s); err != nil {
			return err
		}
	}
	for _, rs := range regions {
		if rs.Name == "" {
			return errors.Load("region in "+r.fullName(true)+" has no name", nil)
		}
		if r.lookup(rs.Name) != nil {
			return errors.Load(r.fullName(true)+" declares "+rs.Name+" twice", nil)
		}
		sub := &object{kind: abi.CompInstStmtK, name: rs.Name, parent: r}
		r.regions = append(r.regions, sub)
		if err := e.region(sub, rs.Ports, rs.Signals, rs.Regions); err != nil {
			return err
		}
	}
	return nil
}

var modes = map[string]abi.Mode{
	"in":      abi.InMode,
	"out":     abi.OutMode,
	"inout":   abi.InoutMode,
	"buffer":  abi.BufferMode,
	"linkage": abi.LinkageMode,
}

func (e *elaborator) signal(r *object, spec SignalSpec) error {
	if spec.Name == "" {
		return errors.Load("signal in "+r.fullName(true)+" has no name", nil)
	}
	if r.lookup(spec.Name) != nil {
		return errors.Load(r.fullName(true)+" declares "+spec.Name+" twice", nil)
	}
	t, err := e.lookupType(spec.Type)
	if err != nil {
		return err
	}

	o := &object{kind: abi.SigDeclK, name: spec.Name, parent: r, typ: t, line: spec.Line}
	if spec.Mode != "" {
		m, ok := modes[strings.ToLower(spec.Mode)]
		if !ok {
			return errors.Load("port "+spec.Name+" has unknown mode "+spec.Mode, nil)
		}
		o.kind = abi.PortDeclK
		o.mode = m
	}

	n := 1
	if !t.scalar() {
		if spec.Range == "" {
			return errors.Load("array signal "+spec.Name+" needs a range", nil)
		}
		rng, err := parseRange(spec.Range)
		if err != nil {
			return err
		}
		o.rng = rng
		n = rng.length()
	}

	if spec.Init != "" {
		if o.value, err = t.parseValue(spec.Init, n); err != nil {
			return errors.Load("initial value of "+spec.Name, err)
		}
	} else {
		left := t.left()
		if !t.scalar() {
			left = t.elem.left()
		}
		o.value = make([]int64, n)
		for i := range o.value {
			o.value[i] = left
		}
	}

	r.decls = append(r.decls, o)
	return nil
}

func (e *elaborator) target(root *object, name string) (*object, error) {
	o := resolve(root, nil, name)
	if o == nil || !o.isSignal() {
		return nil, errors.NotFound(errors.PhaseLoad, "signal", name)
	}
	return o, nil
}

func (e *elaborator) stimulus(root *object, st Stimulus) error {
	o, err := e.target(root, st.Signal)
	if err != nil {
		return err
	}
	val, err := o.typ.parseValue(st.Value, len(o.value))
	if err != nil {
		return errors.Load("stimulus for "+st.Signal, err)
	}
	if st.At.Int64() < 0 {
		return errors.Load("stimulus for "+st.Signal+" has a negative time", nil)
	}
	e.events = append(e.events, &event{at: st.At.Int64(), kind: evTransaction, sig: o, val: val})
	return nil
}

func (e *elaborator) clock(root *object, c Clock) error {
	o, err := e.target(root, c.Signal)
	if err != nil {
		return err
	}
	half := c.Period.Int64() / 2
	if half <= 0 {
		return errors.Load("clock "+c.Signal+" needs a period of at least 2 units", nil)
	}
	if len(o.value) != 1 {
		return errors.Load("clock "+c.Signal+" is not a one-bit signal", nil)
	}
	low, err := o.typ.parseValue("0", 1)
	if err != nil {
		return errors.Load("clock "+c.Signal, err)
	}
	high, err := o.typ.parseValue("1", 1)
	if err != nil {
		return errors.Load("clock "+c.Signal, err)
	}

	until := c.Until.Int64()
	for i, at := 0, int64(0); at <= until; i, at = i+1, at+half {
		val := low
		if i%2 == 1 {
			val = high
		}
		e.events = append(e.events, &event{at: at, kind: evTransaction, sig: o, val: val})
	}
	return nil
}
