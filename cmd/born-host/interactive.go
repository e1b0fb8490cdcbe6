package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// maxHistory bounds the transcript kept on screen.
const maxHistory = 20

type entry struct {
	line   string
	index  int
	result string
	err    error
}

type interactiveModel struct {
	s       *session
	input   textinput.Model
	history []entry
	lines   []string
	recall  int
}

func newInteractiveModel(s *session) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "sum $1, 0"
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()
	return &interactiveModel{s: s, input: ti}
}

type evalResultMsg struct {
	entry entry
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d":
			return m, tea.Quit

		case "enter":
			line := m.input.Value()
			m.input.SetValue("")
			if strings.TrimSpace(line) == "" {
				return m, nil
			}
			m.lines = append(m.lines, line)
			m.recall = len(m.lines)
			return m, m.evaluate(line)

		case "up":
			if m.recall > 0 {
				m.recall--
				m.input.SetValue(m.lines[m.recall])
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if m.recall < len(m.lines)-1 {
				m.recall++
				m.input.SetValue(m.lines[m.recall])
				m.input.CursorEnd()
			} else {
				m.recall = len(m.lines)
				m.input.SetValue("")
			}
			return m, nil
		}

	case evalResultMsg:
		m.history = append(m.history, msg.entry)
		if len(m.history) > maxHistory {
			m.history = m.history[len(m.history)-maxHistory:]
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// evaluate runs the line on the update goroutine, which keeps every call to
// the runtime on one goroutine.
func (m *interactiveModel) evaluate(line string) tea.Cmd {
	n, out, err := m.s.eval(line)
	return func() tea.Msg {
		return evalResultMsg{entry: entry{line: line, index: n, result: out, err: err}}
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("born-host"))
	b.WriteString(" ")
	b.WriteString(version)
	b.WriteString("\n\n")

	for _, e := range m.history {
		b.WriteString(helpStyle.Render("> " + e.line))
		b.WriteString("\n")
		if e.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", e.err)))
		} else {
			b.WriteString(indexStyle.Render(fmt.Sprintf("$%d = ", e.index)))
			b.WriteString(resultStyle.Render(e.result))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter evaluate • ↑/↓ history • ctrl+c quit • functions: " +
		funcStyle.Render(fmt.Sprint(len(m.s.rt.Functions())))))
	return b.String()
}

func runInteractive(s *session) error {
	p := tea.NewProgram(newInteractiveModel(s))
	_, err := p.Run()
	return err
}
