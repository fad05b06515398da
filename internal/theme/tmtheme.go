package theme

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"howett.net/plist"

	"scopetheme/internal/color"
	"scopetheme/internal/domain"
)

// Decode reads a .tmTheme property list into a rule set. Structural problems
// are returned as *MalformedThemeError; bad colour values are recorded as
// diagnostics on the rule set.
func Decode(r io.ReadSeeker) (*domain.RuleSet, error) {
	var doc map[string]interface{}
	if err := plist.NewDecoder(r).Decode(&doc); err != nil {
		return nil, malformed("", -1, "not a property list dictionary", err)
	}

	rs := &domain.RuleSet{
		Name:   stringValue(doc, "name"),
		UUID:   stringValue(doc, "uuid"),
		Author: stringValue(doc, "author"),
	}

	raw, ok := doc["settings"]
	if !ok {
		return nil, malformed(rs.Name, -1, "missing settings array", nil)
	}
	entries, ok := raw.([]interface{})
	if !ok {
		return nil, malformed(rs.Name, -1, fmt.Sprintf("settings is %T, want array", raw), nil)
	}

	for i, entry := range entries {
		dict, ok := entry.(map[string]interface{})
		if !ok {
			return nil, malformed(rs.Name, i, fmt.Sprintf("settings entry is %T, want dictionary", entry), nil)
		}

		rule, err := decodeRule(rs, i, dict)
		if err != nil {
			return nil, err
		}
		rs.Rules = append(rs.Rules, rule)
	}

	return rs, nil
}

func decodeRule(rs *domain.RuleSet, i int, dict map[string]interface{}) (domain.StyleRule, error) {
	rule := domain.StyleRule{
		Index: i,
		Name:  stringValue(dict, "name"),
	}

	if scope, ok := dict["scope"]; ok {
		s, ok := scope.(string)
		if !ok {
			return rule, malformed(rs.Name, i, fmt.Sprintf("scope is %T, want string", scope), nil)
		}
		rule.Scope = s
	} else {
		rule.Default = true
	}

	raw, ok := dict["settings"]
	if !ok {
		return rule, malformed(rs.Name, i, "missing settings dictionary", nil)
	}
	settings, ok := raw.(map[string]interface{})
	if !ok {
		return rule, malformed(rs.Name, i, fmt.Sprintf("settings is %T, want dictionary", raw), nil)
	}

	rule.Foreground = decodeColor(rs, rule, "foreground", settings)
	rule.Background = decodeColor(rs, rule, "background", settings)

	if fs, ok := settings["fontStyle"].(string); ok {
		style, unknown := domain.ParseFontStyle(fs)
		rule.FontStyle = style
		if len(unknown) > 0 {
			rs.Diagnostics = append(rs.Diagnostics, domain.Diagnostic{
				RuleIndex: i,
				RuleName:  rule.Name,
				Field:     "fontStyle",
				Err:       fmt.Errorf("unknown font style %q", strings.Join(unknown, " ")),
			})
		}
	}

	return rule, nil
}

func decodeColor(rs *domain.RuleSet, rule domain.StyleRule, key string, settings map[string]interface{}) color.Color {
	raw, ok := settings[key]
	if !ok {
		return color.Undefined()
	}

	s, _ := raw.(string)
	c, err := color.Parse(s)
	if err != nil {
		rs.Diagnostics = append(rs.Diagnostics, domain.Diagnostic{
			RuleIndex: rule.Index,
			RuleName:  rule.Name,
			Field:     key,
			Err:       err,
		})
		return color.Undefined()
	}
	return c
}

func stringValue(dict map[string]interface{}, key string) string {
	s, _ := dict[key].(string)
	return s
}

// Parse decodes and loads a theme. name is used when the document carries
// none.
func Parse(name string, data []byte) (*Resolver, error) {
	rs, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, withThemeName(err, name)
	}
	if rs.Name == "" {
		rs.Name = name
	}

	r, err := Load(rs)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func withThemeName(err error, name string) error {
	var mt *MalformedThemeError
	if errors.As(err, &mt) && mt.Theme == "" {
		mt.Theme = name
	}
	return err
}
