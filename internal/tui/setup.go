package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scopetheme/internal/color"
	"scopetheme/internal/config"
	"scopetheme/internal/display"
	"scopetheme/internal/theme"
)

// PickerModel lists the available themes and previews the highlighted one.
type PickerModel struct {
	ctx     context.Context
	manager *theme.Manager
	themes  []string
	cursor  int

	current *theme.Resolver
	mode    color.Mode
	palette color.Palette

	keys keyMap
	help help.Model
	save func(string) error

	width    int
	height   int
	err      error
	selected string
	quitting bool
}

// NewPickerModel creates a picker positioned on active. The choice is saved
// to the config file unless WithSave replaces that.
func NewPickerModel(ctx context.Context, manager *theme.Manager, themes []string, active string, mode color.Mode, p color.Palette) PickerModel {
	cursor := 0
	for i, name := range themes {
		if name == active {
			cursor = i
			break
		}
	}

	return PickerModel{
		ctx:     ctx,
		manager: manager,
		themes:  themes,
		cursor:  cursor,
		current: manager.Default(),
		mode:    mode,
		palette: p,
		keys:    defaultKeyMap(),
		help:    help.New(),
		save:    config.UpdateTheme,
		width:   100,
		height:  30,
	}
}

// WithSave sets the function used to persist the chosen theme.
func (m PickerModel) WithSave(save func(string) error) PickerModel {
	m.save = save
	return m
}

// Selected returns the saved theme, or "" if the picker was cancelled.
func (m PickerModel) Selected() string {
	return m.selected
}

func (m PickerModel) Init() tea.Cmd {
	if len(m.themes) == 0 {
		return nil
	}
	return loadThemeCmd(m.ctx, m.manager, m.themes[m.cursor])
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case themeLoadedMsg:
		// a slow load may finish after the cursor has moved on
		if len(m.themes) > 0 && msg.name == m.themes[m.cursor] {
			m.current = msg.resolver
			m.err = nil
		}
		return m, nil

	case themeSavedMsg:
		m.selected = msg.name
		m.quitting = true
		return m, tea.Quit

	case errMsg:
		m.err = msg.err
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
				return m, loadThemeCmd(m.ctx, m.manager, m.themes[m.cursor])
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.themes)-1 {
				m.cursor++
				return m, loadThemeCmd(m.ctx, m.manager, m.themes[m.cursor])
			}
			return m, nil

		case key.Matches(msg, m.keys.Enter):
			if len(m.themes) == 0 || m.err != nil {
				return m, nil
			}
			return m, saveThemeCmd(m.save, m.themes[m.cursor])
		}
	}

	return m, nil
}

func (m PickerModel) View() string {
	if m.quitting {
		if m.selected != "" {
			return ""
		}
		return "Theme selection cancelled.\n"
	}

	if m.width < 60 || m.height < 10 {
		return "Terminal too small. Please resize and try again.\n"
	}

	styles := theme.NewStyles(m.current, m.mode, m.palette)

	leftWidth := m.width / 3
	if leftWidth < 24 {
		leftWidth = 24
	}
	rightWidth := m.width - leftWidth - 6
	bodyHeight := m.height - 8

	left := panel(styles, leftWidth, bodyHeight).Render(m.renderThemeList(styles, leftWidth-2))
	right := panel(styles, rightWidth, bodyHeight).Render(m.renderPreview(styles))

	main := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	header := styles.Title.Render("Theme Picker")
	subtitle := styles.Subtitle.Render("Choose the theme used for scope resolution")

	footer := m.help.View(m.keys)
	if m.err != nil {
		footer = styles.Error.Render(m.err.Error()) + "\n" + footer
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n%s", header, subtitle, main, footer)
}

func (m PickerModel) renderThemeList(styles *theme.Styles, width int) string {
	var b strings.Builder

	b.WriteString(styles.Label.Render("Themes"))
	b.WriteString("\n\n")

	for i, name := range m.themes {
		suffix := ""
		if m.manager.IsBuiltin(name) {
			suffix = styles.Muted.Render(" (built-in)")
		}

		if i == m.cursor {
			b.WriteString(selectedLine(styles, width, "▶ "+name))
		} else {
			b.WriteString("  " + name + suffix)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m PickerModel) renderPreview(styles *theme.Styles) string {
	var b strings.Builder

	b.WriteString(styles.Label.Render("Preview: " + m.current.Name()))
	b.WriteString("\n\n")
	b.WriteString(display.RenderSegments(m.current, display.HTTPSample, m.mode, m.palette))
	b.WriteString("\n")

	return b.String()
}
