package main

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/wippyai/vhpi/abi"
	"github.com/wippyai/vhpi/sim"
	"github.com/wippyai/vhpi/simtime"
	"github.com/wippyai/vhpi/vhpi"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	regionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	signalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const outputLines = 6

func newBrowseCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <design.yaml>",
		Short: "Walk the design hierarchy and step the simulation interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			out := &bytes.Buffer{}
			s, rt, err := load(args[0], root, sim.Config{Output: out})
			if err != nil {
				return err
			}
			m := newBrowseModel(cmd.Context(), args[0], s, rt, out)
			defer func() {
				err = multierr.Append(err, m.close())
			}()
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

type browseState int

const (
	stateList browseState = iota
	stateDeposit
)

type entry struct {
	h      *vhpi.Handle
	region bool
	value  string
}

type browseModel struct {
	ctx      context.Context
	filename string
	sim      *sim.Simulator
	rt       *vhpi.Runtime
	output   *bytes.Buffer

	path     []*vhpi.Handle
	entries  []entry
	selected int
	state    browseState
	input    textinput.Model
	status   string
	err      error
}

func newBrowseModel(ctx context.Context, filename string, s *sim.Simulator, rt *vhpi.Runtime, output *bytes.Buffer) *browseModel {
	m := &browseModel{
		ctx:      ctx,
		filename: filename,
		sim:      s,
		rt:       rt,
		output:   output,
	}
	root := rt.Handle(abi.RootInst, nil)
	if root.IsNull() {
		m.err = fmt.Errorf("design has no root instance")
		return m
	}
	m.path = []*vhpi.Handle{root}
	m.refresh()
	return m
}

func (m *browseModel) current() *vhpi.Handle {
	return m.path[len(m.path)-1]
}

// refresh re-reads the children of the current region.
func (m *browseModel) refresh() {
	m.releaseEntries()
	region := m.current()
	for sub := range region.Each(abi.InternalRegions) {
		m.entries = append(m.entries, entry{h: sub, region: true})
	}
	for d := range region.Each(abi.Decls) {
		kind, _ := d.Kind()
		if kind != abi.SigDeclK && kind != abi.PortDeclK {
			d.Release()
			continue
		}
		m.entries = append(m.entries, entry{h: d})
	}
	m.readValues()
	if m.selected >= len(m.entries) {
		m.selected = max(len(m.entries)-1, 0)
	}
}

func (m *browseModel) readValues() {
	for i := range m.entries {
		e := &m.entries[i]
		if e.region {
			continue
		}
		v, err := e.h.GetValue(abi.ObjTypeVal)
		if err != nil {
			e.value = "?"
			continue
		}
		e.value = v.String()
	}
}

func (m *browseModel) releaseEntries() {
	for _, e := range m.entries {
		e.h.Release()
	}
	m.entries = nil
}

func (m *browseModel) close() error {
	m.releaseEntries()
	var err error
	for _, h := range m.path {
		err = multierr.Append(err, h.Release())
	}
	m.path = nil
	return multierr.Append(err, m.rt.Close())
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.state == stateDeposit {
		return m.updateDeposit(key)
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(m.entries)-1 {
			m.selected++
		}

	case "enter", "right", "l":
		if m.selected < len(m.entries) && m.entries[m.selected].region {
			// The handle moves onto the path; drop it from the entries first.
			h := m.entries[m.selected].h
			m.entries = append(m.entries[:m.selected], m.entries[m.selected+1:]...)
			m.path = append(m.path, h)
			m.selected = 0
			m.refresh()
		}

	case "backspace", "left", "h":
		if len(m.path) > 1 {
			last := m.current()
			m.path = m.path[:len(m.path)-1]
			last.Release()
			m.selected = 0
			m.refresh()
		}

	case "n":
		m.step()

	case "d":
		if m.selected < len(m.entries) && !m.entries[m.selected].region {
			ti := textinput.New()
			ti.Prompt = m.entries[m.selected].h.Name() + " := "
			ti.Placeholder = m.entries[m.selected].value
			ti.Width = 40
			ti.Focus()
			m.input = ti
			m.state = stateDeposit
		}
	}
	return m, nil
}

func (m *browseModel) updateDeposit(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.state = stateList
		return m, nil
	case "enter":
		m.state = stateList
		m.deposit(m.entries[m.selected], m.input.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

// step advances to the next time with pending activity.
func (m *browseModel) step() {
	next, ok, err := m.rt.NextTime()
	switch {
	case err != nil:
		m.status, m.err = "", err
		return
	case !ok || m.sim.Finished():
		m.status = "simulation finished"
		return
	}
	if err := m.sim.RunUntil(m.ctx, next); err != nil {
		m.err = err
		return
	}
	m.status = "advanced to " + m.rt.Time().String()
	m.readValues()
}

func (m *browseModel) deposit(e entry, text string) {
	cur, err := e.h.GetValue(abi.ObjTypeVal)
	if err != nil {
		m.err = err
		return
	}
	val, err := parseDeposit(cur, text)
	if err != nil {
		m.err = err
		return
	}
	if err := e.h.PutValue(val, abi.DepositPropagate); err != nil {
		m.err = err
		return
	}
	if err := m.sim.RunUntil(m.ctx, m.rt.Time()); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = "deposited " + val.String() + " into " + e.h.Name()
	m.readValues()
}

// parseDeposit reads text as a value of the same kind as cur.
func parseDeposit(cur vhpi.Value, text string) (vhpi.Value, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty value")
	}
	switch cur.(type) {
	case vhpi.Logic, vhpi.LogicVec:
		return vhpi.BinStr(strings.Trim(text, `"'`)), nil
	case vhpi.Str:
		return vhpi.Str(strings.Trim(text, `"`)), nil
	case vhpi.Real:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid real %q", text)
		}
		return vhpi.Real(f), nil
	case vhpi.Time:
		t, err := simtime.Parse(text)
		if err != nil {
			return nil, err
		}
		return vhpi.Time(t), nil
	default:
		return vhpi.DecStr(text), nil
	}
}

func (m *browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("VHPI Browser"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	fmt.Fprintf(&b, "  @ %s (cycle %d)\n\n", m.rt.Time(), m.rt.Cycles())

	if len(m.path) > 0 {
		b.WriteString(regionStyle.Render(m.current().FullName()))
		b.WriteString("\n\n")
	}

	if len(m.entries) == 0 {
		b.WriteString("  (empty)\n")
	}
	for i, e := range m.entries {
		line := m.formatEntry(e)
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.state == stateDeposit {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter deposit • esc cancel"))
		return b.String()
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	if tail := lastLines(m.output.String(), outputLines); tail != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(tail))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • enter open • ⌫ up • n next time • d deposit • q quit"))
	return b.String()
}

func (m *browseModel) formatEntry(e entry) string {
	if e.region {
		return regionStyle.Render(e.h.Name() + "/")
	}
	return signalStyle.Render(e.h.Name()) + " = " + valueStyle.Render(e.value)
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
