package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/rubenzuurman/phase-transition-simulation/internal/metrics"
	"github.com/rubenzuurman/phase-transition-simulation/internal/sim"
)

const (
	historyCapacity = 600
	frameRate       = 60
	forceStep       = 1.05
)

type TickMsg time.Time

// Factory builds a fresh simulator. It is called once at start and again
// on every reset.
type Factory func() (*sim.Simulator, error)

// Model steps a simulator once per frame and renders its statistics.
type Model struct {
	factory  Factory
	sim      *sim.Simulator
	names    []string
	dt       float64
	running  bool
	selected int
	diffHist [][]float64
	msdHist  [][]float64
	showHelp bool
	err      error
}

// NewModel builds the first simulator and a monitor that advances it by
// dt on every frame.
func NewModel(factory Factory, dt float64) (Model, error) {
	m := Model{factory: factory, dt: dt, running: true}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "tab":
			m.selected = (m.selected + 1) % len(m.names)
		case "r":
			if err := m.reset(); err != nil {
				m.err = err
				m.running = false
			}
		case "up", "k":
			m.scaleForce(forceStep)
		case "down", "j":
			m.scaleForce(1 / forceStep)
		case "b":
			m.toggleBorders()
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

// step advances all ensembles by one tick and records their statistics.
func (m *Model) step() {
	m.sim.Step(m.dt)
	for i, e := range m.sim.Ensembles() {
		m.diffHist[i] = push(m.diffHist[i], e.DiffusionCoefficient())
		m.msdHist[i] = push(m.msdHist[i], e.MSD())
		if !e.Valid() {
			m.err = fmt.Errorf("ensemble %q: invalid state (NaN/Inf) at t=%.2f", m.names[i], m.sim.Time())
			m.running = false
		}
	}
}

func push(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// reset rebuilds the simulator and clears all history.
func (m *Model) reset() error {
	s, err := m.factory()
	if err != nil {
		return err
	}
	if s.Len() == 0 {
		return fmt.Errorf("viz: simulator has no ensembles")
	}
	m.sim = s
	m.names = s.Names()
	m.diffHist = make([][]float64, s.Len())
	m.msdHist = make([][]float64, s.Len())
	if m.selected >= s.Len() {
		m.selected = 0
	}
	m.err = nil
	return nil
}

func (m *Model) scaleForce(factor float64) {
	e := m.sim.Ensembles()[m.selected]
	if err := e.SetParam("force", e.Force()*factor); err != nil {
		m.err = err
	}
}

func (m *Model) toggleBorders() {
	e := m.sim.Ensembles()[m.selected]
	v := 1.0
	if e.Borders() {
		v = 0
	}
	if err := e.SetParam("borders", v); err != nil {
		m.err = err
	}
}

// View renders the statistics panel.
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle().Render("PHASESIM  random walk ensembles") + "\n")

	status := StatusRunning.Render("RUNNING")
	if m.err != nil {
		status = StatusError.Render("ERROR: " + m.err.Error())
	} else if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	fmt.Fprintf(&s, "%s  t=%.2fs  step %d  dt=%g\n\n", status, m.sim.Time(), m.sim.Steps(), m.dt)

	s.WriteString(m.table() + "\n")

	name := m.names[m.selected]
	if hist := m.diffHist[m.selected]; len(hist) > 1 {
		chart := asciigraph.Plot(hist,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("D(t) "+name))
		s.WriteString(graphStyle().Render(chart) + "\n")
		s.WriteString(Subtle.Render("MSD ") + SparklineChart(m.msdHist[m.selected], 60) + "\n")
	} else {
		s.WriteString(Subtle.Render("waiting for data...") + "\n")
	}

	s.WriteString("\n" + Separator(60) + "\n")
	s.WriteString(KeyHint.Render("SP:Pause TAB:Select R:Reset Q:Quit  ↑↓:Force B:Walls T:Theme ?:Help"))

	view := panelStyle().Render(s.String())
	if m.showHelp {
		return helpText + "\n" + view
	}
	return view
}

func (m Model) table() string {
	var s strings.Builder
	fmt.Fprintf(&s, "  %-12s %8s %10s %14s %12s %12s %6s\n", "ENSEMBLE", "N", "FORCE", "MSD", "D", "SPEED", "WALLS")

	for i, e := range m.sim.Ensembles() {
		speed := metrics.NewMeanSpeed()
		speed.Observe(e, m.sim.Time())

		walls := "on"
		if !e.Borders() {
			walls = "off"
		}
		line := fmt.Sprintf("%-12s %8d %10.1f %14.2f %12.3f %12.2f %6s",
			m.names[i], e.N(), e.Force(), e.MSD(), e.DiffusionCoefficient(), speed.Value(), walls)

		if i == m.selected {
			s.WriteString(selectedStyle().Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + rowStyle().Render(line) + "\n")
		}
	}
	return s.String()
}

// Selected returns the name of the ensemble shown in the chart.
func (m Model) Selected() string { return m.names[m.selected] }

// Simulator returns the simulator currently being stepped.
func (m Model) Simulator() *sim.Simulator { return m.sim }

// Running reports whether frames advance the simulation.
func (m Model) Running() bool { return m.running }

// Err returns the last error shown in the status line.
func (m Model) Err() error { return m.err }

var helpText = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899")).Render(`
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  Tab      - Select next ensemble     ║
║  Up/K     - Increase force (+5%)     ║
║  Down/J   - Decrease force (-5%)     ║
║  B        - Toggle walls             ║
║  R        - Rebuild all ensembles    ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`)

// Run starts the monitor in the alternate screen and blocks until quit.
func Run(factory Factory, dt float64) error {
	m, err := NewModel(factory, dt)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
