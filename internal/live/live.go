// Package live renders a tracking run as it happens: a transverse
// beam-position trail, an energy sparkline, and the engine state,
// updated at a fixed frame rate.
package live

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/nkoval/beamsim/internal/beam"
	"github.com/nkoval/beamsim/internal/tracker"
)

const (
	canvasWidth     = 61
	canvasHeight    = 21
	historyCapacity = 400
	framesPerSecond = 30
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	canvasStyle = lipgloss.NewStyle().Padding(0, 2)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps the engine between frames and draws the first particle's
// transverse trail.
type Model struct {
	engine        *tracker.Engine
	dt            float64
	stepsPerTick  int
	maxSteps      int
	stepsTaken    int
	running       bool
	err           error
	trail         []beam.Vec3
	energyHistory []float64
	scale         float64
}

func NewModel(engine *tracker.Engine, dt float64, maxSteps, stepsPerTick int) Model {
	if stepsPerTick < 1 {
		stepsPerTick = 1
	}
	return Model{
		engine:        engine,
		dt:            dt,
		stepsPerTick:  stepsPerTick,
		maxSteps:      maxSteps,
		running:       true,
		trail:         make([]beam.Vec3, 0, historyCapacity),
		energyHistory: make([]float64, 0, historyCapacity),
		scale:         1e-6,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/framesPerSecond, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.engine.ReverseDirection()
		}
	case TickMsg:
		if m.running && m.err == nil && m.stepsTaken < m.maxSteps {
			for i := 0; i < m.stepsPerTick && m.stepsTaken < m.maxSteps; i++ {
				if err := m.engine.Step(m.dt); err != nil {
					m.err = err
					break
				}
				m.stepsTaken++
				m.sample()
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) sample() {
	particles := m.engine.Particles()
	if len(particles) == 0 {
		return
	}
	p := particles[0]

	m.trail = append(m.trail, p.Position)
	if len(m.trail) > historyCapacity {
		m.trail = m.trail[1:]
	}
	m.energyHistory = append(m.energyHistory, p.Energy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}

	dev := math.Max(math.Abs(p.Position.X), math.Abs(p.Position.Y))
	if dev > m.scale {
		m.scale = dev
	}
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("BEAMSIM LIVE") + "\n")

	status := "RUNNING"
	switch {
	case m.err != nil:
		status = fmt.Sprintf("ERROR: %v", m.err)
	case m.stepsTaken >= m.maxSteps:
		status = "DONE"
	case !m.running:
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	s.WriteString(canvasStyle.Render(m.drawCanvas()) + "\n")

	if len(m.energyHistory) > 1 {
		graph := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(6),
			asciigraph.Width(canvasWidth),
			asciigraph.Caption("energy (GeV)"),
		)
		s.WriteString(graphStyle.Render(graph) + "\n")
	}

	s.WriteString(m.statsPanel())
	s.WriteString(helpStyle.Render("space pause · r reverse · q quit"))
	return s.String()
}

// drawCanvas plots the transverse (x, y) trail, autoscaled to the
// largest deviation seen so far.
func (m Model) drawCanvas() string {
	grid := make([][]rune, canvasHeight)
	for y := range grid {
		grid[y] = make([]rune, canvasWidth)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	// Axis cross through the beam center.
	cx, cy := canvasWidth/2, canvasHeight/2
	for x := 0; x < canvasWidth; x++ {
		grid[cy][x] = '·'
	}
	for y := 0; y < canvasHeight; y++ {
		grid[y][cx] = '·'
	}

	for i, pos := range m.trail {
		px := cx + int(math.Round(pos.X/m.scale*float64(cx-1)))
		py := cy - int(math.Round(pos.Y/m.scale*float64(cy-1)))
		if px < 0 || px >= canvasWidth || py < 0 || py >= canvasHeight {
			continue
		}
		c := '•'
		if i == len(m.trail)-1 {
			c = '@'
		}
		grid[py][px] = c
	}

	rows := make([]string, canvasHeight)
	for y := range grid {
		rows[y] = string(grid[y])
	}
	return strings.Join(rows, "\n")
}

func (m Model) statsPanel() string {
	var s strings.Builder
	particles := m.engine.Particles()

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}

	row("direction", m.engine.Direction().String())
	row("time", fmt.Sprintf("%.3e s", m.engine.Time()))
	row("steps", fmt.Sprintf("%d / %d", m.stepsTaken, m.maxSteps))
	if len(particles) > 0 {
		p := particles[0]
		row("energy", fmt.Sprintf("%.4f GeV", p.Energy()))
		row("position", fmt.Sprintf("[%.3e %.3e %.3e] m", p.Position.X, p.Position.Y, p.Position.Z))
	}
	row("scale", fmt.Sprintf("%.1e m/div", m.scale))
	return s.String()
}
