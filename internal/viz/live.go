package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/blockpi/internal/control"
	"github.com/san-kum/blockpi/internal/loop"
	"github.com/san-kum/blockpi/internal/sim"
)

const (
	width           = 80
	height          = 16
	historyCapacity = 240
)

type TickMsg time.Time

// Model renders a scene that a loop.Driver advances on its own goroutine.
// Input goes to the mass and speed sources the driver reads, or to the
// driver itself for pause and restart.
type Model struct {
	driver *loop.Driver
	masses *control.TextMass
	speed  *control.Slider
	fps    int

	canvas    *Canvas
	snap      sim.Snapshot
	velA      []float64
	velB      []float64
	lastTicks int
	theme     Theme
	status    string
}

func NewModel(d *loop.Driver, masses *control.TextMass, speed *control.Slider) Model {
	fps := d.FPS
	if fps <= 0 {
		fps = 60
	}
	return Model{
		driver: d,
		masses: masses,
		speed:  speed,
		fps:    fps,
		canvas: NewCanvas(width, height),
		snap:   d.State.Snapshot(),
		velA:   make([]float64, 0, historyCapacity),
		velB:   make([]float64, 0, historyCapacity),
		theme:  Themes[0],
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and pulls the latest snapshot.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.driver.SetPaused(!m.driver.Paused())
		case "r":
			if err := m.driver.Restart(m.masses); err != nil {
				m.status = err.Error()
			} else {
				m.status = ""
				m.resetHistory()
			}
			m.snap = m.driver.State.Snapshot()
		case "left", "h":
			m.speed.Nudge(-1)
		case "right", "l":
			m.speed.Nudge(1)
		case "tab":
			m.masses.Toggle()
		case "backspace":
			m.masses.Backspace()
		case "t":
			m.theme = nextTheme(m.theme)
		default:
			if s := msg.String(); isMassInput(s) {
				m.masses.Type(s)
			}
		}
	case TickMsg:
		m.pull()
		return m, m.tick()
	}
	return m, nil
}

func isMassInput(s string) bool {
	if len(s) != 1 {
		return false
	}
	return s == "." || (s[0] >= '0' && s[0] <= '9')
}

func (m *Model) pull() {
	m.snap = m.driver.State.Snapshot()
	if m.snap.Ticks < m.lastTicks {
		m.resetHistory()
	}
	if m.snap.Ticks != m.lastTicks {
		m.velA = appendCapped(m.velA, m.snap.A.Velocity)
		m.velB = appendCapped(m.velB, m.snap.B.Velocity)
	}
	m.lastTicks = m.snap.Ticks
}

func appendCapped(s []float64, v float64) []float64 {
	if len(s) == historyCapacity {
		s = append(s[:0], s[1:]...)
	}
	return append(s, v)
}

func (m *Model) resetHistory() {
	m.velA = m.velA[:0]
	m.velB = m.velB[:0]
	m.lastTicks = 0
}

func (m *Model) draw() { DrawScene(m.canvas, m.snap) }

// DrawScene clears c and draws snap on it. World x in [0, wall] maps onto the
// canvas with the wall near the right edge and the floor along the bottom.
// Blocks are squares; B is filled, A is outlined.
func DrawScene(c *Canvas, snap sim.Snapshot) {
	c.Clear()
	cw, ch := c.Width*2, c.Height*4
	floor := ch - 1
	wallX := cw - 3
	scale := float64(wallX) / snap.Wall

	c.DrawLine(0, floor, wallX, floor)
	c.DrawLine(wallX, 0, wallX, floor)

	drawBlock := func(pos, w float64, filled bool) {
		x0 := int(math.Round(pos * scale))
		x1 := int(math.Round((pos + w) * scale))
		if x1 < 0 || x0 > cw {
			return
		}
		x0, x1 = max(x0, -1), min(x1, cw)
		size := max(x1-x0, 2)
		y0 := max(floor-size, 0)
		if filled {
			c.FillRect(x0, y0, x1, floor-1)
		} else {
			c.DrawRect(x0, y0, x1, floor-1)
		}
	}
	drawBlock(snap.B.Position, snap.B.Width, true)
	drawBlock(snap.A.Position, snap.A.Width, false)
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	th := m.theme
	canvasView := canvasStyle.Foreground(th.Scene).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Foreground(th.Title).Bold(true).Render("BLOCK PI") + "\n")
	status := "RUNNING"
	if m.driver.Paused() {
		status = "PAUSED"
	} else if m.snap.Settled() {
		status = "SETTLED"
	}
	s.WriteString(lipgloss.NewStyle().Foreground(th.Muted).Render(status) + "\n\n")

	s.WriteString(counterStyle.BorderForeground(th.Title).Foreground(th.Text).
		Render(fmt.Sprintf("collisions %d", m.snap.Collisions)) + "\n\n")

	value := lipgloss.NewStyle().Foreground(th.Text)
	s.WriteString(labelStyle.Render("Ticks") + value.Render(fmt.Sprintf("%d", m.snap.Ticks)) + "\n")
	s.WriteString(m.massLine(control.FieldA, m.snap.A.Mass, th.BlockA))
	s.WriteString(m.massLine(control.FieldB, m.snap.B.Mass, th.BlockB))
	s.WriteString(labelStyle.Render("Speed") +
		ProgressBar(m.speed.Fraction(), 12, th.Title) + value.Render(fmt.Sprintf(" %.2fx", m.speed.Speed())) + "\n")

	if len(m.velA) > 1 {
		chart := asciigraph.PlotMany([][]float64{m.velA, m.velB},
			asciigraph.Height(5), asciigraph.Width(26),
			asciigraph.SeriesColors(asciigraph.Magenta, asciigraph.Cyan),
			asciigraph.Caption("velocity A / B"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.status != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(th.Warn).Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause R:Restart Q:Quit T:Theme\n←→:Speed TAB:Field 0-9 . ⌫:Edit mass"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// massLine shows the text being edited next to the mass in effect.
func (m Model) massLine(f control.Field, current float64, color lipgloss.Color) string {
	text := m.masses.Text(f)
	label := "Mass " + f.String()
	if m.masses.Active() == f {
		text += "▏"
		label = "> " + label
	}
	style := lipgloss.NewStyle().Foreground(color)
	line := labelStyle.Render(label) + style.Render(fmt.Sprintf("%-12s", text))
	if control.ParseMass(m.masses.Text(f)) != current {
		line += lipgloss.NewStyle().Foreground(m.theme.Warn).Render(fmt.Sprintf(" (%g)", current))
	}
	return line + "\n"
}
