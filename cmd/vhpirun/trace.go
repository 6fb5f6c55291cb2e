package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/multierr"

	"github.com/wippyai/vhpi/abi"
	"github.com/wippyai/vhpi/vhpi"
)

var formats = map[string]abi.Format{
	"native": abi.ObjTypeVal,
	"bin":    abi.BinStrVal,
	"oct":    abi.OctStrVal,
	"hex":    abi.HexStrVal,
	"dec":    abi.DecStrVal,
	"str":    abi.StrVal,
}

func parseFormat(name string) (abi.Format, error) {
	f, ok := formats[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown value format %q (native, bin, oct, hex, dec, str)", name)
	}
	return f, nil
}

type traceStyles struct {
	time  lipgloss.Style
	name  lipgloss.Style
	value lipgloss.Style
}

func plainStyles() traceStyles {
	return traceStyles{
		time:  lipgloss.NewStyle(),
		name:  lipgloss.NewStyle(),
		value: lipgloss.NewStyle(),
	}
}

func colorStyles() traceStyles {
	return traceStyles{
		time:  lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		name:  lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
		value: lipgloss.NewStyle().Bold(true),
	}
}

// tracer prints the value of every signal and port in the design whenever
// it changes.
type tracer struct {
	rt     *vhpi.Runtime
	w      io.Writer
	format abi.Format
	styles traceStyles
	filter map[string]bool

	objs []*vhpi.Handle
	regs []*vhpi.Registration
}

func newTracer(rt *vhpi.Runtime, w io.Writer, format abi.Format, styles traceStyles, only []string) *tracer {
	t := &tracer{rt: rt, w: w, format: format, styles: styles}
	if len(only) > 0 {
		t.filter = make(map[string]bool, len(only))
		for _, n := range only {
			t.filter[strings.ToLower(n)] = true
		}
	}
	return t
}

// Attach walks the hierarchy from the root instance, prints the current
// value of each traced object and registers a value change callback on it.
func (t *tracer) Attach() error {
	root := t.rt.Handle(abi.RootInst, nil)
	if root.IsNull() {
		return fmt.Errorf("design has no root instance")
	}
	defer root.Release()
	return t.walk(root)
}

func (t *tracer) walk(region *vhpi.Handle) error {
	for d := range region.Each(abi.Decls) {
		if !t.traced(d) {
			d.Release()
			continue
		}
		t.print(d)
		reg, err := d.RegisterCb(abi.CbValueChange, func(cb *vhpi.CbData) {
			t.print(cb.Obj)
		})
		if err != nil {
			d.Release()
			return err
		}
		t.objs = append(t.objs, d)
		t.regs = append(t.regs, reg)
	}

	for sub := range region.Each(abi.InternalRegions) {
		err := t.walk(sub)
		sub.Release()
		if err != nil {
			return err
		}
	}
	return nil
}

func (t *tracer) traced(h *vhpi.Handle) bool {
	kind, ok := h.Kind()
	if !ok || (kind != abi.SigDeclK && kind != abi.PortDeclK) {
		return false
	}
	if t.filter == nil {
		return true
	}
	return t.filter[strings.ToLower(h.Name())] || t.filter[strings.ToLower(h.FullName())]
}

func (t *tracer) print(h *vhpi.Handle) {
	val := "?"
	if v, err := h.GetValue(t.format); err == nil {
		val = v.String()
	}
	fmt.Fprintf(t.w, "%s %s = %s\n",
		t.styles.time.Render(fmt.Sprintf("%12s", t.rt.Time())),
		t.styles.name.Render(h.FullName()),
		t.styles.value.Render(val))
}

// Detach cancels the value change callbacks and releases the traced objects.
func (t *tracer) Detach() error {
	var err error
	for _, r := range t.regs {
		if r.Active() {
			err = multierr.Append(err, r.Cancel())
		}
	}
	for _, h := range t.objs {
		err = multierr.Append(err, h.Release())
	}
	t.regs, t.objs = nil, nil
	return err
}
