package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fbkclanna/relgate/internal/release"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	optionStyle   = lipgloss.NewStyle().Faint(true)
	reasonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

type decideKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Abort   key.Binding
}

func (k decideKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Confirm, k.Abort}
}

func (k decideKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Left, k.Right}, {k.Confirm, k.Abort}}
}

var decideKeys = decideKeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
	Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous strategy")),
	Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next strategy")),
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
	Abort:   key.NewBinding(key.WithKeys("ctrl+c", "esc", "q"), key.WithHelp("q/esc", "abort")),
}

// decideModel is the bubbletea front end of a release.Session.
type decideModel struct {
	session   *release.Session
	keys      decideKeyMap
	help      help.Model
	confirmed bool
	aborted   bool
}

func newDecideModel(s *release.Session) decideModel {
	return decideModel{session: s, keys: decideKeys, help: help.New()}
}

func (m decideModel) Init() tea.Cmd {
	return nil
}

func (m decideModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Abort):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Confirm):
			m.confirmed = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.session.MoveCursor(-1)
		case key.Matches(msg, m.keys.Down):
			m.session.MoveCursor(1)
		case key.Matches(msg, m.keys.Left):
			m.session.CycleDecision(-1)
		case key.Matches(msg, m.keys.Right):
			m.session.CycleDecision(1)
		}
	}
	return m, nil
}

func (m decideModel) View() string {
	if m.confirmed || m.aborted {
		return ""
	}
	rows := m.session.Rows()
	width := 0
	for _, r := range rows {
		width = max(width, len(r.Workspace.Name))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Select a release strategy for each workspace") + "\n\n")
	for _, r := range rows {
		cursor := "  "
		if r.Workspace.Locator == m.session.Active() {
			cursor = cursorStyle.Render("> ")
		}
		b.WriteString(cursor + fmt.Sprintf("%-*s  ", width, r.Workspace.Name))
		for i, o := range r.Options {
			if i > 0 {
				b.WriteString("  ")
			}
			label := strategyLabel(r.Workspace.Version(), o)
			if o == r.Strategy {
				b.WriteString(selectedStyle.Render(label))
			} else {
				b.WriteString(optionStyle.Render(label))
			}
		}
		b.WriteString("\n")
		if len(r.DependsOn) > 0 {
			deps := strings.Join(workspaceNames(r.DependsOn), ", ")
			b.WriteString(reasonStyle.Render(fmt.Sprintf("    %*s depends on %s", width, "", deps)) + "\n")
		}
	}
	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}

// strategyLabel names s, with the version it leads to when that differs
// from current.
func strategyLabel(current string, s release.Strategy) string {
	switch s {
	case release.Undecided, release.Decline:
		return s.String()
	}
	target, err := release.TargetVersion(current, s)
	if err != nil {
		return s.String()
	}
	return fmt.Sprintf("%s (%s)", s, target)
}
