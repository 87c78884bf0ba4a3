// Package tui replays a recorded solve in the terminal: the solver runs to
// completion first, then the iteration trace is played back tick by tick so
// observation never perturbs the algorithm.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/bisect/internal/solver"
)

const (
	barWidth    = 60
	graphHeight = 8
	DefaultFPS  = 10
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	bracketStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	outcomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).MarginTop(1)
	statusRunning = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	statusPaused  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model plays back one solve. playHead indexes the trace; the outcome line
// appears once the head reaches the final iteration.
type Model struct {
	function    string
	left, right float64
	trace       []solver.Iteration
	outcome     solver.Outcome
	playHead    int
	running     bool
	fps         int
}

func NewModel(function string, left, right float64, trace []solver.Iteration, outcome solver.Outcome, fps int) Model {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return Model{
		function: function,
		left:     left,
		right:    right,
		trace:    trace,
		outcome:  outcome,
		playHead: 0,
		running:  true,
		fps:      fps,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
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
			m.playHead = 0
			m.running = true
		case "left":
			m.running = false
			if m.playHead > 0 {
				m.playHead--
			}
		case "right":
			m.running = false
			if m.playHead < len(m.trace)-1 {
				m.playHead++
			}
		}
		return m, nil

	case TickMsg:
		if m.running && m.playHead < len(m.trace)-1 {
			m.playHead++
		}
		return m, m.tick()
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("bisect  %s  [%g, %g]", m.function, m.left, m.right)))
	b.WriteString("\n")

	if len(m.trace) == 0 {
		// Solves rejected before the loop have nothing to replay.
		b.WriteString(outcomeStyle.Render(m.outcome.String()))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("q quit"))
		b.WriteString("\n")
		return b.String()
	}

	it := m.trace[m.playHead]

	b.WriteString(bracketStyle.Render(m.bracketBar(it)))
	b.WriteString("\n\n")

	status := statusRunning.Render("playing")
	if !m.running {
		status = statusPaused.Render("paused")
	}
	rows := []struct {
		label string
		value string
	}{
		{"status", status},
		{"iteration", fmt.Sprintf("%d / %d", it.Iter, len(m.trace))},
		{"bracket", fmt.Sprintf("[%.10g, %.10g]", it.Left, it.Right)},
		{"midpoint", fmt.Sprintf("%.10g", it.Mid)},
		{"f(mid)", fmt.Sprintf("%.3e", it.FMid)},
		{"width", fmt.Sprintf("%.3e", it.Width)},
	}
	for _, row := range rows {
		b.WriteString(labelStyle.Render(row.label))
		b.WriteString(valueStyle.Render(row.value))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.widthGraph())
	b.WriteString("\n")

	if m.playHead == len(m.trace)-1 {
		b.WriteString(outcomeStyle.Render(m.outcome.String()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause  ←/→ step  r restart  q quit"))
	b.WriteString("\n")

	return b.String()
}

// bracketBar draws the current bracket inside the original interval:
// '[' and ']' at the live bounds, '|' at the midpoint.
func (m Model) bracketBar(it solver.Iteration) string {
	bar := make([]rune, barWidth)
	for i := range bar {
		bar[i] = '·'
	}

	bar[m.pos(it.Left)] = '['
	bar[m.pos(it.Right)] = ']'
	bar[m.pos(it.Mid)] = '|'

	return string(bar)
}

func (m Model) pos(x float64) int {
	span := m.right - m.left
	if span <= 0 {
		return 0
	}
	p := int(math.Round((x - m.left) / span * float64(barWidth-1)))
	if p < 0 {
		p = 0
	}
	if p >= barWidth {
		p = barWidth - 1
	}
	return p
}

func (m Model) widthGraph() string {
	widths := make([]float64, 0, m.playHead+1)
	for i := 0; i <= m.playHead; i++ {
		if w := m.trace[i].Width; w > 0 {
			widths = append(widths, math.Log10(w))
		}
	}
	if len(widths) == 0 {
		return ""
	}
	if len(widths) < 2 {
		widths = append(widths, widths[0])
	}

	return asciigraph.Plot(widths,
		asciigraph.Height(graphHeight),
		asciigraph.Width(barWidth),
		asciigraph.Caption("log10 bracket width"),
	)
}

// Run solves with a trace observer and replays the result.
func Run(function string, f solver.Func, left, right float64, cfg solver.Config, fps int) error {
	trace := &solver.Trace{}
	outcome := solver.FindObserved(f, left, right, cfg, trace)

	p := tea.NewProgram(NewModel(function, left, right, trace.Iterations, outcome, fps))
	_, err := p.Run()
	return err
}
