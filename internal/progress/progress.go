// Package progress shows a live view of a benchmark run in the terminal.
// The runner stays on its own goroutine and reports through Observer,
// which forwards each event to the bubbletea program as a message.
package progress

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/ollabench/internal/benchmark"
	"github.com/mwiater/ollabench/internal/ollama"
	"github.com/mwiater/ollabench/internal/util"
)

// maxStatusRunes keeps a skipped model's error on one terminal line.
const maxStatusRunes = 80

type modelStartedMsg struct {
	index int
	total int
	model string
}

type modelSkippedMsg struct {
	model string
	err   error
}

type modelCompletedMsg struct {
	record benchmark.Record
}

// DoneMsg ends the program once the run has returned.
type DoneMsg struct {
	Err error
}

type line struct {
	model  string
	status string
	style  lipgloss.Style
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	timeoutStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the bubbletea model for a running benchmark.
type Model struct {
	spinner  spinner.Model
	current  string
	index    int
	total    int
	lines    []line
	done     bool
	err      error
	quitting bool
	cancel   func()
}

// New returns a progress model. cancel is invoked when the user quits early.
func New(cancel func()) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return &Model{spinner: s, cancel: cancel}
}

// Init starts the spinner.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles runner events, key presses, and spinner ticks.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case modelStartedMsg:
		m.current = msg.model
		m.index = msg.index
		m.total = msg.total
	case modelSkippedMsg:
		m.current = ""
		status := "skipped: " + util.TruncateRunes(msg.err.Error(), maxStatusRunes)
		style := failStyle
		if errors.Is(msg.err, ollama.ErrTimeout) {
			style, status = timeoutStyle, "timed out"
		}
		m.lines = append(m.lines, line{model: msg.model, status: status, style: style})
	case modelCompletedMsg:
		m.current = ""
		rec := msg.record
		m.lines = append(m.lines, line{
			model:  rec.ModelName,
			status: fmt.Sprintf("%.2f tokens/s, score %.2f, %s", rec.TokenRate, rec.Score, rec.Tier),
			style:  okStyle,
		})
	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders finished models and the one in flight.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("ollabench") + "\n\n")
	for _, l := range m.lines {
		b.WriteString(fmt.Sprintf("  %s %s\n", l.model, l.style.Render(l.status)))
	}
	if m.current != "" && !m.done {
		b.WriteString(fmt.Sprintf("\n  %s Benchmarking %s (%d/%d)...\n", m.spinner.View(), m.current, m.index, m.total))
	}
	if m.done {
		if m.err != nil {
			b.WriteString("\n" + failStyle.Render(fmt.Sprintf("  Run aborted: %v", m.err)) + "\n")
		} else {
			b.WriteString("\n" + okStyle.Render("  Run complete.") + "\n")
		}
	} else if !m.quitting {
		b.WriteString("\n" + hintStyle.Render("  q: abort") + "\n")
	}
	return b.String()
}

// Sender is the part of *tea.Program the observer needs.
type Sender interface {
	Send(msg tea.Msg)
}

// Observer forwards runner events to a bubbletea program.
type Observer struct {
	Program Sender
}

func (o Observer) ModelStarted(index, total int, model string) {
	o.Program.Send(modelStartedMsg{index: index, total: total, model: model})
}

func (o Observer) ModelSkipped(model string, err error) {
	o.Program.Send(modelSkippedMsg{model: model, err: err})
}

func (o Observer) ModelCompleted(rec benchmark.Record) {
	o.Program.Send(modelCompletedMsg{record: rec})
}
