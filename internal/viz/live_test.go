package viz

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rubenzuurman/phase-transition-simulation/internal/config"
	"github.com/rubenzuurman/phase-transition-simulation/internal/experiment"
	"github.com/rubenzuurman/phase-transition-simulation/internal/sim"
)

func testFactory() (*sim.Simulator, error) {
	cfg := config.DefaultConfig()
	cfg.Ensembles = config.Row([]int{3, 6}, 100, 100, 300, true)
	return experiment.Build(cfg, experiment.NewRegistry())
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModelTicks(t *testing.T) {
	m, err := NewModel(testFactory, 0.01)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	if m.Init() == nil {
		t.Fatal("Init should schedule a tick")
	}

	for i := 0; i < 5; i++ {
		var cmd tea.Cmd
		m, cmd = update(t, m, TickMsg(time.Now()))
		if cmd == nil {
			t.Fatal("tick should schedule the next tick")
		}
	}
	if m.Simulator().Steps() != 5 {
		t.Errorf("expected 5 steps, got %d", m.Simulator().Steps())
	}

	m, _ = update(t, m, key(" "))
	if m.Running() {
		t.Fatal("space should pause")
	}
	m, _ = update(t, m, TickMsg(time.Now()))
	if m.Simulator().Steps() != 5 {
		t.Errorf("paused model advanced to step %d", m.Simulator().Steps())
	}
}

func TestModelKeys(t *testing.T) {
	m, err := NewModel(testFactory, 0.01)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	if m.Selected() != "n3" {
		t.Fatalf("initial selection %q", m.Selected())
	}
	m, _ = update(t, m, key("tab"))
	if m.Selected() != "n6" {
		t.Errorf("tab selected %q, want n6", m.Selected())
	}
	m, _ = update(t, m, key("tab"))
	if m.Selected() != "n3" {
		t.Errorf("tab should wrap, got %q", m.Selected())
	}

	e := m.Simulator().Ensembles()[0]
	m, _ = update(t, m, key("k"))
	if got := e.Force(); got <= 300 {
		t.Errorf("force after increase = %v", got)
	}
	m, _ = update(t, m, key("b"))
	if e.Borders() {
		t.Error("b should turn walls off")
	}

	m, _ = update(t, m, TickMsg(time.Now()))
	old := m.Simulator()
	m, _ = update(t, m, key("r"))
	if m.Simulator() == old || m.Simulator().Steps() != 0 {
		t.Error("r should rebuild the simulator")
	}

	_, cmd := update(t, m, key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModelView(t *testing.T) {
	m, err := NewModel(testFactory, 0.01)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	view := m.View()
	if !strings.Contains(view, "n3") || !strings.Contains(view, "n6") {
		t.Error("view should list every ensemble")
	}
	if !strings.Contains(view, "waiting for data") {
		t.Error("view should say it is waiting before the first ticks")
	}

	for i := 0; i < 3; i++ {
		m, _ = update(t, m, TickMsg(time.Now()))
	}
	if !strings.Contains(m.View(), "D(t) n3") {
		t.Error("view should chart the selected ensemble")
	}

	m, _ = update(t, m, key("?"))
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("? should show the help overlay")
	}
}

func TestNewModel_FactoryError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewModel(func() (*sim.Simulator, error) { return nil, boom }, 0.01)
	if !errors.Is(err, boom) {
		t.Errorf("expected factory error, got %v", err)
	}

	if _, err := NewModel(func() (*sim.Simulator, error) { return sim.New(), nil }, 0.01); err == nil {
		t.Error("expected error for an empty simulator")
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme(ThemeLattice.Name)

	SetTheme("ocean")
	if CurrentTheme.Name != "ocean" {
		t.Errorf("SetTheme failed: %s", CurrentTheme.Name)
	}
	NextTheme()
	if CurrentTheme.Name != "lattice" {
		t.Errorf("NextTheme should wrap to lattice, got %s", CurrentTheme.Name)
	}
	if GetTheme("missing").Name != "lattice" {
		t.Error("unknown theme should fall back to the default")
	}
}

func TestSparklineChart(t *testing.T) {
	if got := SparklineChart(nil, 5); got != "─────" {
		t.Errorf("empty sparkline = %q", got)
	}
	if got := SparklineChart([]float64{1, 2, 3}, 3); got == "" {
		t.Error("expected a sparkline")
	}
}
