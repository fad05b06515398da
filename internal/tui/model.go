package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scopetheme/internal/color"
	"scopetheme/internal/display"
	"scopetheme/internal/domain"
	"scopetheme/internal/theme"
)

// ExplorerModel resolves a scope path as it is typed and lists the theme's
// rules with the winning one marked.
type ExplorerModel struct {
	resolver *theme.Resolver
	styles   *theme.Styles
	mode     color.Mode
	palette  color.Palette

	input    textinput.Model
	rules    []domain.StyleRule
	cursor   int
	ruleList viewport.Model
	help     help.Model
	keys     keyMap

	resolved domain.ResolvedStyle
	width    int
	height   int
	quitting bool
}

func NewExplorerModel(r *theme.Resolver, mode color.Mode, p color.Palette) ExplorerModel {
	ti := textinput.New()
	ti.Placeholder = "source.http keyword.control.http"
	ti.Prompt = "scope> "
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()

	m := ExplorerModel{
		resolver: r,
		styles:   theme.NewStyles(r, mode, p),
		mode:     mode,
		palette:  p,
		input:    ti,
		rules:    r.Rules(),
		ruleList: viewport.New(80, 10),
		help:     help.New(),
		keys:     explorerKeyMap(),
		resolved: r.Default(),
		width:    100,
		height:   30,
	}
	m.refreshRules()
	return m
}

// SetScope replaces the scope path and resolves it.
func (m *ExplorerModel) SetScope(scopePath string) {
	m.input.SetValue(scopePath)
	m.input.CursorEnd()
	m.resolve()
}

// Resolved returns the style for the current scope path.
func (m ExplorerModel) Resolved() domain.ResolvedStyle {
	return m.resolved
}

func (m *ExplorerModel) resolve() {
	m.resolved = m.resolver.Resolve(m.input.Value())
	m.refreshRules()
}

func (m ExplorerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 12
		m.ruleList.Width = msg.Width - 4
		m.ruleList.Height = max(msg.Height-16, 3)
		m.refreshRules()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.refreshRules()
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.rules)-1 {
				m.cursor++
				m.refreshRules()
			}
			return m, nil

		case key.Matches(msg, m.keys.Enter):
			if len(m.rules) > 0 {
				m.SetScope(m.rules[m.cursor].SampleScope())
			}
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			m.SetScope("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.resolve()
	return m, cmd
}

func (m *ExplorerModel) refreshRules() {
	var b strings.Builder
	for i, rule := range m.rules {
		marker := "  "
		if rule.Index == m.resolved.RuleIndex {
			marker = "● "
		}

		swatch := display.Swatch(m.resolver.Resolve(rule.SampleScope()), m.mode, m.palette)
		line := fmt.Sprintf("%s%2d %-22s %s", marker, rule.Index, display.Truncate(rule.Label(), 22), rule.Scope)

		if i == m.cursor {
			b.WriteString(swatch + " " + selectedLine(m.styles, m.ruleList.Width-6, line))
		} else {
			b.WriteString(swatch + " " + line)
		}
		b.WriteString("\n")
	}
	m.ruleList.SetContent(b.String())

	// keep the cursor on screen
	switch {
	case m.cursor < m.ruleList.YOffset:
		m.ruleList.SetYOffset(m.cursor)
	case m.cursor >= m.ruleList.YOffset+m.ruleList.Height:
		m.ruleList.SetYOffset(m.cursor - m.ruleList.Height + 1)
	}
}

func (m ExplorerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Scope Explorer: " + m.resolver.Name()))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderResult())
	b.WriteString("\n")
	b.WriteString(panel(m.styles, m.ruleList.Width, m.ruleList.Height).Render(m.ruleList.View()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m ExplorerModel) renderResult() string {
	s := m.resolved
	sample := theme.NewStyle(s, m.mode, m.palette).Render(" The quick brown fox ")

	rows := []string{
		fmt.Sprintf("%s %s", display.Swatch(s, m.mode, m.palette), sample),
		fmt.Sprintf("%s %s", m.styles.Label.Render("rule: "), display.FormatRuleLabel(s)),
		fmt.Sprintf("%s %s", m.styles.Label.Render("fg:   "), display.FormatColor(s.Foreground, m.palette)),
		fmt.Sprintf("%s %s", m.styles.Label.Render("font: "), display.GetFontStyleIcon(s.FontStyle)),
	}
	if !s.IsDefault() {
		rows = append(rows, fmt.Sprintf("%s %s", m.styles.Label.Render("match:"), m.styles.Muted.Render(s.Selector)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
