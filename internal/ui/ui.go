// Package ui is the full-screen front end: a Bubble Tea model that shows the
// grid above an input line and feeds submitted lines into the session.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gridcalc/internal/session"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	gridStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type model struct {
	sess  *session.Session
	input textinput.Model
	done  bool
}

// NewModel wraps a session for tea.NewProgram.
func NewModel(s *session.Session) tea.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "A1=5, SUM(A1:B2), w/a/s/d, undo, q"
	in.Focus()
	return &model{sess: s, input: in}
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.Reset()
			if m.sess.HandleLine(line) {
				m.done = true
				return m, tea.Quit
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("gridcalc"))
	b.WriteString("\n\n")
	if grid, ok := m.sess.Grid(); ok {
		b.WriteString(gridStyle.Render(grid))
	} else {
		b.WriteString(mutedStyle.Render("output disabled"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.sess.Prompt())
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("enter submits, esc quits"))
	b.WriteString("\n")
	return b.String()
}
