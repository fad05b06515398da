package theme

import (
	"github.com/charmbracelet/lipgloss"

	"scopetheme/internal/color"
	"scopetheme/internal/domain"
)

// NewStyle converts a resolved style into a lipgloss style.
func NewStyle(s domain.ResolvedStyle, mode color.Mode, p color.Palette) lipgloss.Style {
	style := lipgloss.NewStyle().
		Foreground(s.Foreground.Terminal(mode, p))

	if s.Background.Defined() {
		style = style.Background(s.Background.Terminal(mode, p))
	}

	return style.
		Bold(s.FontStyle.Has(domain.FontBold)).
		Italic(s.FontStyle.Has(domain.FontItalic)).
		Underline(s.FontStyle.Has(domain.FontUnderline)).
		Strikethrough(s.FontStyle.Has(domain.FontStrikethrough))
}

// scopes the UI chrome borrows its colours from
const (
	chromeTitleScope    = "entity.name.tag"
	chromeSuccessScope  = "keyword.control.http"
	chromeErrorScope    = "error"
	chromeInfoScope     = "keyword.other.name.jsonkv"
	chromeSubtitleScope = "keyword.reason.http"
	chromeMutedScope    = "meta.tag.sgml"
)

// Styles is the CLI and TUI chrome, derived from the active theme so the
// tool itself previews the theme it is showing.
type Styles struct {
	// cli
	Success  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Header   lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style

	// tui
	Help        lipgloss.Style
	Selected    lipgloss.Style
	BorderColor lipgloss.TerminalColor

	Mode    color.Mode
	Palette color.Palette
}

// creates all styles based on the given theme
func NewStyles(r *Resolver, mode color.Mode, p color.Palette) *Styles {
	fg := func(scope string) lipgloss.TerminalColor {
		return r.Resolve(scope).Foreground.Terminal(mode, p)
	}

	base := NewStyle(r.Default(), mode, p)

	return &Styles{
		Success: lipgloss.NewStyle().
			Foreground(fg(chromeSuccessScope)).
			Bold(true),

		Error: NewStyle(r.Resolve(chromeErrorScope), mode, p).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(fg(chromeInfoScope)),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg(chromeTitleScope)).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(fg(chromeSubtitleScope)).
			Italic(true),

		Header: base.
			Bold(true).
			Underline(true),

		Label: lipgloss.NewStyle().
			Foreground(fg(chromeInfoScope)).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(fg(chromeMutedScope)),

		Help: lipgloss.NewStyle().
			Foreground(fg(chromeMutedScope)).
			MarginTop(1),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Reverse(true),

		BorderColor: fg(chromeTitleScope),

		Mode:    mode,
		Palette: p,
	}
}

// Render styles text with the resolved style for scopePath.
func (s *Styles) Render(r *Resolver, scopePath, text string) string {
	return NewStyle(r.Resolve(scopePath), s.Mode, s.Palette).Render(text)
}
