// Package tui provides a live terminal view of an integration in
// progress, with pause, reset, and parameter tuning.
package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/odelab/internal/solver"
	"github.com/san-kum/odelab/internal/systems"
	"github.com/san-kum/odelab/internal/vec"
)

const historyCapacity = 600

var (
	chartStyle       = lipgloss.NewStyle().Padding(1, 2)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives one system forward in simulated time, one frame per
// tick, and renders the recent history of a chosen component.
type Model struct {
	sys        systems.System
	method     string
	opts       solver.Options
	state      vec.VecN
	t          float64
	frameSpan  float64
	speed      float64
	lastStep   float64
	totals     solver.Stats
	running    bool
	err        error
	component  int
	history    []float64
	energyHist []float64

	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int
	initialState  vec.VecN
}

// NewModel prepares a live run. frameSpan is the simulated time
// advanced per display frame, at speed 1.
func NewModel(sys systems.System, tab *solver.Tableau, method string, y0 vec.VecN, tol, frameSpan float64) Model {
	opts := solver.DefaultOptions()
	opts.Tableau = tab
	if tol > 0 {
		opts.Tol = tol
	}

	params := make(map[string]float64)
	initialParams := make(map[string]float64)
	for k, v := range sys.GetParams() {
		if v == 0 {
			// multiplicative tuning cannot move an exact zero
			v = 1e-6
			sys.SetParam(k, v)
		}
		params[k] = v
		initialParams[k] = v
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return Model{
		sys:           sys,
		method:        method,
		opts:          opts,
		state:         y0.Clone(),
		frameSpan:     frameSpan,
		speed:         1,
		running:       true,
		history:       make([]float64, 0, historyCapacity),
		energyHist:    make([]float64, 0, historyCapacity),
		params:        params,
		initialParams: initialParams,
		paramKeys:     keys,
		initialState:  y0.Clone(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles key events and steps the run on each tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.err == nil {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "c":
			m.component = (m.component + 1) % m.sys.Dim()
			m.history = m.history[:0]
		case "+", "=":
			if m.speed < 64 {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 1.0/64 {
				m.speed /= 2
			}
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// advance integrates one frame interval, continuing from the step
// size the previous frame ended on.
func (m *Model) advance() {
	opts := m.opts
	if m.lastStep > 0 {
		opts.InitialStep = m.lastStep
	}
	span := m.frameSpan * m.speed
	states, stats, err := solver.Integrate([]float64{m.t, m.t + span}, m.state, m.sys.Derive, opts)
	m.totals.Accepted += stats.Accepted
	m.totals.Rejected += stats.Rejected
	m.totals.Evals += stats.Evals
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.state = states[1]
	m.t += span
	m.lastStep = stats.LastStep

	m.history = append(m.history, m.state[m.component])
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
	if h, ok := m.sys.(systems.Hamiltonian); ok {
		m.energyHist = append(m.energyHist, h.Energy(m.state))
		if len(m.energyHist) > historyCapacity {
			m.energyHist = m.energyHist[1:]
		}
	}
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	val := m.params[key] * factor
	if err := m.sys.SetParam(key, val); err != nil {
		return
	}
	m.params[key] = val
}

// reset restores the initial state and parameters.
func (m *Model) reset() {
	m.t = 0
	m.state = m.initialState.Clone()
	m.lastStep = 0
	m.totals = solver.Stats{}
	m.err = nil
	m.running = true
	m.history = m.history[:0]
	m.energyHist = m.energyHist[:0]
	for k, v := range m.initialParams {
		m.params[k] = v
		m.sys.SetParam(k, v)
	}
}

// View renders the chart panel next to the stats panel.
func (m Model) View() string {
	var chart string
	if len(m.history) > 1 {
		chart = asciigraph.Plot(m.history,
			asciigraph.Height(14),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("x%d", m.component)),
		)
	} else {
		chart = "collecting samples..."
	}
	chartView := chartStyle.Render(chart)

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.sys.Name())) + "\n")
	switch {
	case m.err != nil:
		s.WriteString(errorStyle.Render("FAILED: "+m.err.Error()) + "\n\n")
	case m.running:
		s.WriteString("RUNNING\n\n")
	default:
		s.WriteString("PAUSED\n\n")
	}

	if len(m.energyHist) > 1 {
		mini := asciigraph.Plot(m.energyHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("energy"))
		s.WriteString(graphStyle.Render(mini) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3f", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Method") + valueStyle.Render(m.method) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%.3g", m.lastStep)) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("x%g", m.speed)) + "\n")
	s.WriteString(labelStyle.Render("Accepted") + valueStyle.Render(fmt.Sprintf("%d", m.totals.Accepted)) + "\n")
	s.WriteString(labelStyle.Render("Rejected") + valueStyle.Render(fmt.Sprintf("%d", m.totals.Rejected)) + "\n")
	s.WriteString(labelStyle.Render("Evals") + valueStyle.Render(fmt.Sprintf("%d", m.totals.Evals)) + "\n")

	s.WriteString("\nPARAMETERS\n")
	if len(m.paramKeys) > 0 {
		for i, k := range m.paramKeys {
			val, initial := m.params[k], m.initialParams[k]
			barWidth, ratio := 10, val/(2.0*initial)
			if ratio > 1 {
				ratio = 1
			} else if ratio < 0 {
				ratio = 0
			}
			filled := int(ratio * float64(barWidth))
			bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
			line := fmt.Sprintf("%-10s %s %.4g", k, bar, val)
			if i == m.selected {
				s.WriteString(activeParamStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + labelStyle.Render(line) + "\n")
			}
		}
	} else {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}

	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset Q:Quit C:Component\nTab:Select Up/Down:Tune +/-:Speed"))
	statsView := statsStyle.Render(s.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, chartView, statsView)
}

// Run starts the live view and blocks until the user quits.
func Run(m Model) error {
	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}
