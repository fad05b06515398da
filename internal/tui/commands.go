package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"scopetheme/internal/theme"
)

// themeLoadedMsg is sent when a theme has been parsed
type themeLoadedMsg struct {
	name     string
	resolver *theme.Resolver
}

// themeSavedMsg is sent once the chosen theme is persisted
type themeSavedMsg struct {
	name string
}

// errMsg wraps errors from async operations
type errMsg struct {
	err error
}

func (e errMsg) Error() string {
	return e.err.Error()
}

// imported themes come from the library, so loading may block
func loadThemeCmd(ctx context.Context, manager *theme.Manager, name string) tea.Cmd {
	return func() tea.Msg {
		r, err := manager.Get(ctx, name)
		if err != nil {
			return errMsg{err}
		}
		return themeLoadedMsg{name: name, resolver: r}
	}
}

func saveThemeCmd(save func(string) error, name string) tea.Cmd {
	return func() tea.Msg {
		if err := save(name); err != nil {
			return errMsg{err}
		}
		return themeSavedMsg{name: name}
	}
}
