package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/blockpi/internal/config"
	"github.com/san-kum/blockpi/internal/control"
	"github.com/san-kum/blockpi/internal/loop"
	"github.com/san-kum/blockpi/internal/sim"
	"github.com/sirupsen/logrus/hooks/test"
)

func newTestModel(t *testing.T) (Model, *loop.Driver) {
	t.Helper()
	cfg := config.DefaultConfig()
	s, err := sim.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	log, _ := test.NewNullLogger()
	masses := control.NewTextMass(cfg.MassA, cfg.MassB)
	speed := control.NewSlider(cfg.SpeedMin, cfg.SpeedMax, cfg.Speed)
	d := &loop.Driver{
		State:  sim.NewGuarded(s),
		Masses: masses,
		Speed:  speed,
		FPS:    cfg.FPS,
		Log:    log.WithField("test", t.Name()),
	}
	return NewModel(d, masses, speed), d
}

func press(m Model, key tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(key)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := press(m, runes("q"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModelEditsMasses(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(m, runes("0"))
	if got := m.masses.Text(control.FieldA); got != "100" {
		t.Errorf("field A = %q, want 100", got)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.masses.Active() != control.FieldB {
		t.Fatal("tab should select field B")
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = press(m, runes("."))
	m, _ = press(m, runes("5"))
	if got := m.masses.Text(control.FieldB); got != "10.5" {
		t.Errorf("field B = %q, want 10.5", got)
	}

	m, _ = press(m, runes("x"))
	if got := m.masses.Text(control.FieldB); got != "10.5" {
		t.Errorf("non-numeric key edited field B: %q", got)
	}
}

func TestModelPauseAndSpeed(t *testing.T) {
	m, d := newTestModel(t)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !d.Paused() {
		t.Error("space should pause the driver")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view should show PAUSED")
	}

	before := m.speed.Speed()
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.speed.Speed() <= before {
		t.Errorf("right should raise speed, %g -> %g", before, m.speed.Speed())
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.speed.Speed() >= before {
		t.Errorf("left should lower speed, %g -> %g", before, m.speed.Speed())
	}
}

func TestModelTickPullsSnapshot(t *testing.T) {
	m, d := newTestModel(t)

	for i := 0; i < 200; i++ {
		if err := d.Tick(); err != nil {
			t.Fatal(err)
		}
	}
	next, cmd := m.Update(TickMsg{})
	m = next.(Model)
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.snap.Ticks != 200 {
		t.Errorf("snapshot ticks = %d, want 200", m.snap.Ticks)
	}
	if m.snap.Collisions != 1 {
		t.Errorf("collisions = %d, want 1 after the first impact", m.snap.Collisions)
	}
	if !strings.Contains(m.View(), "collisions 1") {
		t.Error("view should show the collision count")
	}
}

func TestModelRestart(t *testing.T) {
	m, d := newTestModel(t)
	for i := 0; i < 10; i++ {
		_ = d.Tick()
	}

	m.masses.Set(control.FieldB, "")
	m, _ = press(m, runes("r"))
	if m.status == "" {
		t.Error("restart with empty mass should report an error")
	}
	if m.snap.Ticks != 10 {
		t.Errorf("rejected restart changed the scene: ticks = %d", m.snap.Ticks)
	}

	m.masses.Set(control.FieldB, "1000")
	m, _ = press(m, runes("r"))
	if m.status != "" {
		t.Errorf("unexpected status %q", m.status)
	}
	if m.snap.Ticks != 0 || m.snap.B.Mass != 1000 {
		t.Errorf("restart not applied: %+v", m.snap)
	}
}

func TestModelThemeCycle(t *testing.T) {
	m, _ := newTestModel(t)
	first := m.theme.Name
	for range Themes {
		m, _ = press(m, runes("t"))
	}
	if m.theme.Name != first {
		t.Errorf("theme after full cycle = %s, want %s", m.theme.Name, first)
	}
}

func TestDrawScene(t *testing.T) {
	m, _ := newTestModel(t)
	m.draw()

	cw, ch := m.canvas.Width*2, m.canvas.Height*4
	if !m.canvas.IsSet(0, ch-1) {
		t.Error("floor not drawn")
	}
	if !m.canvas.IsSet(cw-3, 0) {
		t.Error("wall not drawn")
	}

	// Block B is filled; sample its centre.
	scale := float64(cw-3) / m.snap.Wall
	bx := int((m.snap.B.Position + m.snap.B.Width/2) * scale)
	if !m.canvas.IsSet(bx, ch-3) {
		t.Error("block B not drawn")
	}
}

func TestDrawFarOffscreen(t *testing.T) {
	m, _ := newTestModel(t)
	m.snap.B.Position = -1e12
	m.draw()
	if m.canvas.IsSet(0, 0) {
		t.Error("offscreen block drawn")
	}
}
