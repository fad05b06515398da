package export

import (
	"fmt"
	"io"
	"strings"

	"scopetheme/internal/color"
	"scopetheme/internal/theme"
)

func WriteMarkdown(w io.Writer, r *theme.Resolver, p color.Palette) error {
	data := Build(r, p)

	fmt.Fprintf(w, "# %s\n\n", data.Name)
	if data.Author != "" {
		fmt.Fprintf(w, "Author: %s\n\n", data.Author)
	}

	fmt.Fprintf(w, "Default foreground: `%s`", data.Default.Foreground)
	if data.Default.Hex != "" {
		fmt.Fprintf(w, " (%s)", data.Default.Hex)
	}
	fmt.Fprint(w, "\n\n")

	fmt.Fprintln(w, "| # | Name | Scope | Foreground | Font style |")
	fmt.Fprintln(w, "|---|------|-------|------------|------------|")
	for _, rule := range data.Rules {
		fg := "-"
		if rule.Foreground != "" {
			fg = fmt.Sprintf("`%s` %s", rule.Foreground, rule.Hex)
		}
		fs := rule.FontStyle
		if fs == "" {
			fs = "-"
		}
		_, err := fmt.Fprintf(w, "| %d | %s | `%s` | %s | %s |\n",
			rule.Index, escapeCell(rule.Name), rule.Scope, fg, fs)
		if err != nil {
			return fmt.Errorf("failed to write markdown: %w", err)
		}
	}

	return nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
