package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/gmsbind/descriptor"
	"github.com/wippyai/gmsbind/session"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#666666")).
			Padding(0, 1)
)

const listWidth = 36

// browser lists the functions of a built document and shows the XML entry
// of the selected one.
type browser struct {
	err      error
	target   session.Target
	funcs    []descriptor.Function
	visible  []int
	filter   textinput.Model
	view     viewport.Model
	selected int
}

func newBrowser(t session.Target, doc *descriptor.Document) *browser {
	ti := textinput.New()
	ti.Prompt = "filter: "
	ti.Placeholder = "function name"
	ti.Width = listWidth - len(ti.Prompt)
	ti.Focus()

	m := &browser{
		target: t,
		funcs:  doc.Files.File.Functions.Items,
		filter: ti,
		view:   viewport.New(60, 16),
	}
	m.applyFilter()
	return m
}

func (m *browser) Init() tea.Cmd {
	return textinput.Blink
}

func (m *browser) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = m.visible[:0]
	for i, fn := range m.funcs {
		if q == "" ||
			strings.Contains(strings.ToLower(fn.Name), q) ||
			strings.Contains(strings.ToLower(fn.ExternalName), q) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
	m.refresh()
}

func (m *browser) refresh() {
	if len(m.visible) == 0 {
		m.view.SetContent("no matching functions")
		return
	}
	text, err := descriptor.FunctionXML(m.funcs[m.visible[m.selected]])
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.view.SetContent(text)
	m.view.GotoTop()
}

func (m *browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.view.Width = max(msg.Width-listWidth-8, 20)
		m.view.Height = max(msg.Height-6, 5)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.filter.Value() == "" {
				return m, tea.Quit
			}
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil
		case "up", "ctrl+p":
			if m.selected > 0 {
				m.selected--
				m.refresh()
			}
			return m, nil
		case "down", "ctrl+n":
			if m.selected < len(m.visible)-1 {
				m.selected++
				m.refresh()
			}
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.view, cmd = m.view.Update(msg)
			return m, cmd
		}
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.selected = 0
		m.applyFilter()
	}
	return m, cmd
}

func (m *browser) View() string {
	var list strings.Builder
	list.WriteString(m.filter.View())
	list.WriteString("\n\n")
	for row, idx := range m.visible {
		line := m.funcs[idx].Name
		if row == m.selected {
			list.WriteString(selectedStyle.Render("> " + line))
		} else {
			list.WriteString("  " + line)
		}
		list.WriteString("\n")
	}

	left := paneStyle.Width(listWidth).Render(list.String())
	right := paneStyle.Render(m.view.View())

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.target.Name))
	b.WriteString(fmt.Sprintf(" %s  %d/%d functions\n", m.target.FileName, len(m.visible), len(m.funcs)))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("type to filter • ↑/↓ select • pgup/pgdown scroll • esc clear/quit"))
	return b.String()
}

func runInteractive(t session.Target, doc *descriptor.Document) error {
	p := tea.NewProgram(newBrowser(t, doc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
