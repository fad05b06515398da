package tui

import (
	"github.com/charmbracelet/lipgloss"

	"scopetheme/internal/theme"
)

// panel draws a bordered box in the theme's border colour.
func panel(styles *theme.Styles, width, height int) lipgloss.Style {
	if width < 10 {
		width = 10
	}
	if height < 3 {
		height = 3
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderColor).
		Padding(0, 1)
}

func selectedLine(styles *theme.Styles, width int, text string) string {
	return styles.Selected.Width(width).Render(text)
}
