package export

import (
	"fmt"
	"io"
	"strings"

	"scopetheme/internal/color"
	"scopetheme/internal/domain"
	"scopetheme/internal/theme"
)

const exportVersion = "1.0"

type ExportFormat string

const (
	FormatJSON     ExportFormat = "json"
	FormatYAML     ExportFormat = "yaml"
	FormatMarkdown ExportFormat = "markdown"
	FormatCSV      ExportFormat = "csv"
	FormatChroma   ExportFormat = "chroma"
)

var Formats = []ExportFormat{FormatJSON, FormatYAML, FormatMarkdown, FormatCSV, FormatChroma}

func ParseFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	case FormatJSON, FormatYAML, FormatMarkdown, FormatCSV, FormatChroma:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// RuleData is the flat, format-neutral view of one rule.
type RuleData struct {
	Index      int    `json:"index" yaml:"index"`
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	Scope      string `json:"scope,omitempty" yaml:"scope,omitempty"`
	Foreground string `json:"foreground,omitempty" yaml:"foreground,omitempty"`
	Hex        string `json:"hex,omitempty" yaml:"hex,omitempty"`
	Background string `json:"background,omitempty" yaml:"background,omitempty"`
	FontStyle  string `json:"font_style,omitempty" yaml:"font_style,omitempty"`
}

type ThemeExport struct {
	Version string     `json:"version" yaml:"version"`
	Name    string     `json:"name" yaml:"name"`
	UUID    string     `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	Author  string     `json:"author,omitempty" yaml:"author,omitempty"`
	Default RuleData   `json:"default" yaml:"default"`
	Rules   []RuleData `json:"rules" yaml:"rules"`
}

func convertRule(rule domain.StyleRule, p color.Palette) RuleData {
	return RuleData{
		Index:      rule.Index,
		Name:       rule.Name,
		Scope:      rule.Scope,
		Foreground: rule.Foreground.String(),
		Hex:        rule.Foreground.Hex(p),
		Background: rule.Background.String(),
		FontStyle:  rule.FontStyle.String(),
	}
}

// Build flattens a loaded theme.
func Build(r *theme.Resolver, p color.Palette) *ThemeExport {
	rules := r.Rules()
	out := &ThemeExport{
		Version: exportVersion,
		Name:    r.Name(),
		UUID:    r.UUID(),
		Author:  r.Author(),
		Default: convertRule(r.DefaultRule(), p),
		Rules:   make([]RuleData, 0, len(rules)),
	}
	for _, rule := range rules {
		out.Rules = append(out.Rules, convertRule(rule, p))
	}
	return out
}

// Write exports r to w in the given format.
func Write(w io.Writer, format ExportFormat, r *theme.Resolver, p color.Palette) error {
	switch format {
	case FormatJSON:
		return WriteVSCode(w, r, p)
	case FormatYAML:
		return WriteYAML(w, r, p)
	case FormatMarkdown:
		return WriteMarkdown(w, r, p)
	case FormatCSV:
		return WriteCSV(w, r, p)
	case FormatChroma:
		return WriteChroma(w, r, p)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
