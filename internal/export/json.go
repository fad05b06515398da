package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"scopetheme/internal/color"
	"scopetheme/internal/theme"
)

// VSCodeTheme is the editor colour theme shape with tokenColors.
type VSCodeTheme struct {
	Schema      string             `json:"$schema"`
	Name        string             `json:"name"`
	Type        string             `json:"type"`
	Colors      map[string]string  `json:"colors"`
	TokenColors []VSCodeTokenColor `json:"tokenColors"`
}

type VSCodeTokenColor struct {
	Name     string             `json:"name,omitempty"`
	Scope    []string           `json:"scope"`
	Settings VSCodeTokenSetting `json:"settings"`
}

type VSCodeTokenSetting struct {
	Foreground string `json:"foreground,omitempty"`
	Background string `json:"background,omitempty"`
	FontStyle  string `json:"fontStyle,omitempty"`
}

// BuildVSCode converts r to a VSCode theme. Palette references are expanded
// to hex, since VSCode has no ANSI sentinel.
func BuildVSCode(r *theme.Resolver, p color.Palette) *VSCodeTheme {
	def := r.Default()

	out := &VSCodeTheme{
		Schema: "vscode://schemas/color-theme",
		Name:   r.Name(),
		Type:   themeType(def.Foreground, p),
		Colors: map[string]string{
			"editor.foreground": def.Foreground.Hex(p),
		},
	}
	if bg := def.Background.Hex(p); bg != "" {
		out.Colors["editor.background"] = bg
	}

	for _, rule := range r.Rules() {
		scopes := make([]string, 0, 1)
		for _, alt := range strings.Split(rule.Scope, ",") {
			scopes = append(scopes, strings.TrimSpace(alt))
		}

		out.TokenColors = append(out.TokenColors, VSCodeTokenColor{
			Name:  rule.Name,
			Scope: scopes,
			Settings: VSCodeTokenSetting{
				Foreground: rule.Foreground.Hex(p),
				Background: rule.Background.Hex(p),
				FontStyle:  rule.FontStyle.String(),
			},
		})
	}

	return out
}

// light text implies a dark theme
func themeType(fg color.Color, p color.Palette) string {
	rgb, ok := fg.Resolve(p)
	if !ok {
		return "dark"
	}
	if l, _, _ := rgb.Lab(); l < 0.5 {
		return "light"
	}
	return "dark"
}

func WriteVSCode(w io.Writer, r *theme.Resolver, p color.Palette) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(BuildVSCode(r, p)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
