package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Mode selects how palette references are emitted.
type Mode int

const (
	// ModeANSI emits palette references as ANSI colour codes so the terminal's
	// own palette applies.
	ModeANSI Mode = iota
	// ModeTrueColor looks palette references up in a Palette and emits RGB.
	ModeTrueColor
)

func (m Mode) String() string {
	switch m {
	case ModeTrueColor:
		return "truecolor"
	default:
		return "ansi"
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ansi":
		return ModeANSI, nil
	case "truecolor", "24bit":
		return ModeTrueColor, nil
	default:
		return ModeANSI, fmt.Errorf("unknown color mode %q", s)
	}
}

// Palette is a 16-colour ANSI palette.
type Palette [PaletteSize]colorful.Color

// xterm defaults
var DefaultPalette = Palette{
	mustHex("#000000"), mustHex("#cd0000"), mustHex("#00cd00"), mustHex("#cdcd00"),
	mustHex("#0000ee"), mustHex("#cd00cd"), mustHex("#00cdcd"), mustHex("#e5e5e5"),
	mustHex("#7f7f7f"), mustHex("#ff0000"), mustHex("#00ff00"), mustHex("#ffff00"),
	mustHex("#5c5cff"), mustHex("#ff00ff"), mustHex("#00ffff"), mustHex("#ffffff"),
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WithOverrides returns a copy of p with entries replaced. Keys are decimal
// indexes, values are #RRGGBB.
func (p Palette) WithOverrides(overrides map[string]string) (Palette, error) {
	out := p
	for key, value := range overrides {
		i, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || i < 0 || i >= PaletteSize {
			return p, fmt.Errorf("palette index %q out of range 0-%d", key, PaletteSize-1)
		}

		c, err := colorful.Hex(strings.TrimSpace(value))
		if err != nil {
			return p, fmt.Errorf("palette entry %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}

// Resolve maps c to a true colour. Literal colours with partial alpha are
// composited over the palette background (entry 0).
func (c Color) Resolve(p Palette) (colorful.Color, bool) {
	if !c.defined {
		return colorful.Color{}, false
	}

	if i, ok := c.ANSIIndex(); ok {
		return p[i], true
	}

	fg := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	if c.A == 0xff {
		return fg, true
	}

	return p[0].BlendRgb(fg, float64(c.A)/255.0).Clamped(), true
}

// Hex is the #rrggbb form of c under palette p, or "" when undefined.
func (c Color) Hex(p Palette) string {
	rgb, ok := c.Resolve(p)
	if !ok {
		return ""
	}
	return rgb.Hex()
}

// Terminal converts c into a lipgloss colour.
func (c Color) Terminal(mode Mode, p Palette) lipgloss.TerminalColor {
	if !c.defined {
		return lipgloss.NoColor{}
	}

	if i, ok := c.ANSIIndex(); ok && mode == ModeANSI {
		return lipgloss.ANSIColor(uint(i))
	}

	return lipgloss.Color(c.Hex(p))
}
