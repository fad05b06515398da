package domain

import (
	"fmt"
	"strings"

	"scopetheme/internal/color"
)

// FontStyle is a set of font flags.
type FontStyle uint8

const (
	FontBold FontStyle = 1 << iota
	FontItalic
	FontUnderline
	FontStrikethrough
)

var fontStyleNames = []struct {
	flag FontStyle
	name string
}{
	{FontBold, "bold"},
	{FontItalic, "italic"},
	{FontUnderline, "underline"},
	{FontStrikethrough, "strikethrough"},
}

// ParseFontStyle parses a space-separated fontStyle value. Unknown words are
// returned separately so the caller can report them.
func ParseFontStyle(s string) (FontStyle, []string) {
	var (
		fs      FontStyle
		unknown []string
	)
	for _, word := range strings.Fields(strings.ToLower(s)) {
		matched := false
		for _, fn := range fontStyleNames {
			if word == fn.name {
				fs |= fn.flag
				matched = true
				break
			}
		}
		if !matched {
			unknown = append(unknown, word)
		}
	}
	return fs, unknown
}

func (f FontStyle) Has(flag FontStyle) bool {
	return f&flag != 0
}

func (f FontStyle) String() string {
	words := make([]string, 0, len(fontStyleNames))
	for _, fn := range fontStyleNames {
		if f.Has(fn.flag) {
			words = append(words, fn.name)
		}
	}
	return strings.Join(words, " ")
}

// StyleRule is one entry of a theme's settings array.
type StyleRule struct {
	// position in the source; later rules win specificity ties
	Index int

	Name string

	// Scope is the raw selector. It is empty for the default rule.
	Scope string

	// Default is set for the settings entry that carries no scope key.
	Default bool

	Foreground color.Color
	Background color.Color
	FontStyle  FontStyle
}

// Label is the rule name, or its selector when unnamed.
func (r StyleRule) Label() string {
	switch {
	case r.Name != "":
		return r.Name
	case r.Default:
		return "default"
	default:
		return r.Scope
	}
}

// SampleScope returns the rule's first selector alternative, a scope path
// the rule is expected to match.
func (r StyleRule) SampleScope() string {
	alt, _, _ := strings.Cut(r.Scope, ",")
	return strings.TrimSpace(alt)
}

// Diagnostic is a non-fatal problem found while loading a theme.
type Diagnostic struct {
	RuleIndex int
	RuleName  string
	Field     string
	Err       error
}

func (d Diagnostic) Error() string {
	if d.RuleName != "" {
		return fmt.Sprintf("rule %d (%s) %s: %v", d.RuleIndex, d.RuleName, d.Field, d.Err)
	}
	return fmt.Sprintf("rule %d %s: %v", d.RuleIndex, d.Field, d.Err)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// RuleSet is a decoded theme, before validation.
type RuleSet struct {
	Name        string
	UUID        string
	Author      string
	Rules       []StyleRule
	Diagnostics []Diagnostic
}

// ResolvedStyle is the outcome of resolving a scope against a theme.
type ResolvedStyle struct {
	Foreground color.Color
	Background color.Color
	FontStyle  FontStyle

	// winning rule; RuleIndex is -1 and Selector empty when the default applied
	RuleIndex int
	RuleName  string
	Selector  string
}

func (s ResolvedStyle) IsDefault() bool {
	return s.RuleIndex < 0
}
