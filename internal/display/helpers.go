package display

import (
	"fmt"
	"strings"

	"scopetheme/internal/color"
	"scopetheme/internal/domain"
	"scopetheme/internal/theme"
)

const swatchBlock = "████"

func GetFontStyleIcon(fs domain.FontStyle) string {
	if fs == 0 {
		return "-"
	}

	var b strings.Builder
	for _, f := range []struct {
		flag domain.FontStyle
		icon string
	}{
		{domain.FontBold, "B"},
		{domain.FontItalic, "I"},
		{domain.FontUnderline, "U"},
		{domain.FontStrikethrough, "S"},
	} {
		if fs.Has(f.flag) {
			b.WriteString(f.icon)
		}
	}
	return b.String()
}

// FormatColor describes a colour and, for palette references, the hex it
// maps to.
func FormatColor(c color.Color, p color.Palette) string {
	switch {
	case !c.Defined():
		return "none"
	case c.IsANSI():
		return fmt.Sprintf("%s (%s)", c.Describe(), c.Hex(p))
	default:
		return c.String()
	}
}

// Swatch renders a block in the resolved style's colours.
func Swatch(s domain.ResolvedStyle, mode color.Mode, p color.Palette) string {
	return theme.NewStyle(s, mode, p).
		Bold(false).
		Underline(false).
		Render(swatchBlock)
}

func FormatRuleLabel(s domain.ResolvedStyle) string {
	if s.IsDefault() {
		return "(default)"
	}
	if s.RuleName == "" {
		return fmt.Sprintf("#%d", s.RuleIndex)
	}
	return fmt.Sprintf("#%d %s", s.RuleIndex, s.RuleName)
}

func Truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
