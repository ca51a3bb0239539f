package viz

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/avalamontes/cepsim/internal/cycle"
	"github.com/avalamontes/cepsim/internal/metrics"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type cycleMsg struct {
	result *cycle.Result
	err    error
}

// Model drives cycles one at a time and displays results as they
// arrive.
type Model struct {
	driver    *cycle.Driver
	rng       *rand.Rand
	numCycles int
	results   []*cycle.Result
	err       error
	done      bool
}

func NewLive(cfg cycle.Config, numCycles int, seed int64) Model {
	return Model{
		driver:    cycle.New(cfg),
		rng:       rand.New(rand.NewSource(seed)),
		numCycles: numCycles,
		results:   make([]*cycle.Result, 0, numCycles),
	}
}

func (m Model) Init() tea.Cmd {
	return m.runNext()
}

func (m Model) runNext() tea.Cmd {
	return func() tea.Msg {
		res, err := m.driver.Run(context.Background(), m.rng)
		return cycleMsg{result: res, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case cycleMsg:
		if msg.err != nil {
			m.err = msg.err
			m.done = true
			return m, nil
		}
		m.results = append(m.results, msg.result)
		if len(m.results) < m.numCycles {
			return m, m.runNext()
		}
		m.done = true
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("chirality echo — cycle simulation"))
	b.WriteByte('\n')

	if m.err != nil {
		b.WriteString(errStyle.Render("error: " + m.err.Error()))
		b.WriteString(helpStyle.Render("\npress q to quit"))
		return b.String()
	}

	status := fmt.Sprintf("cycle %d/%d", len(m.results), m.numCycles)
	if !m.done {
		status += " — running"
	}
	b.WriteString(valueStyle.Render(status))
	b.WriteString("\n\n")

	if last := m.lastResult(); last != nil {
		b.WriteString(statsStyle.Render(renderStats(last)))
		b.WriteString("\n")
	}

	if len(m.results) > 1 {
		graph := asciigraph.Plot(cycle.Lambdas(m.results),
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("lambda per cycle"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	if m.done && len(m.results) > 0 {
		lambdas := cycle.Lambdas(m.results)
		b.WriteString(fmt.Sprintf("\nMean λ = %.4f ± %.4f\n",
			metrics.Mean(lambdas), metrics.Std(lambdas)))
	}

	b.WriteString(helpStyle.Render("q: quit"))
	return b.String()
}

func (m Model) lastResult() *cycle.Result {
	if len(m.results) == 0 {
		return nil
	}
	return m.results[len(m.results)-1]
}

func renderStats(res *cycle.Result) string {
	rows := []struct {
		label, value string
	}{
		{"lambda", fmt.Sprintf("%.4f", res.Lambda)},
		{"v_peak", fmt.Sprintf("%.0f km/s", res.VPeak)},
		{"helicity", res.Helicity},
		{"net L", fmt.Sprintf("%.1f", res.NetLPostReheat)},
		{"grid", fmt.Sprintf("%d³", res.Field.Side())},
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(labelStyle.Render(r.label))
		b.WriteString(valueStyle.Render(r.value))
		b.WriteByte('\n')
	}
	return b.String()
}
