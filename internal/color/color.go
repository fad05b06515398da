// Package color decodes theme colour values.
//
// Theme colours are written as #RRGGBBAA. An alpha byte of 00 is a sentinel:
// the value is not a true colour but a reference into a 16-entry ANSI palette,
// with the index carried in the red channel. Parse is the only place that
// sentinel is interpreted and Color.Terminal is the only place a Color becomes
// something renderable.
package color

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var ErrValueEncoding = errors.New("invalid color encoding")

// ValueEncodingError reports a colour string that is not #RRGGBB or #RRGGBBAA,
// or an ANSI sentinel whose index is outside the palette.
type ValueEncodingError struct {
	Value  string
	Reason string
}

func (e *ValueEncodingError) Error() string {
	return fmt.Sprintf("invalid color %q: %s", e.Value, e.Reason)
}

func (e *ValueEncodingError) Is(target error) bool {
	return target == ErrValueEncoding
}

// number of entries in an ANSI palette
const PaletteSize = 16

// ansiAlpha marks a colour as an ANSI palette reference
const ansiAlpha = 0x00

// Color is a decoded theme colour. The zero value is undefined (transparent).
type Color struct {
	R, G, B, A uint8
	defined    bool
}

// Undefined returns a colour that renders as nothing.
func Undefined() Color {
	return Color{}
}

// ANSI returns a sentinel colour referring to palette index i.
func ANSI(i int) Color {
	return Color{R: uint8(i & 0x0f), A: ansiAlpha, defined: true}
}

// RGBA returns a literal colour.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a, defined: true}
}

// Parse decodes a theme colour string.
func Parse(s string) (Color, error) {
	raw := strings.TrimSpace(s)
	if !strings.HasPrefix(raw, "#") {
		return Undefined(), &ValueEncodingError{Value: s, Reason: "missing leading '#'"}
	}

	digits := raw[1:]
	if len(digits) != 6 && len(digits) != 8 {
		return Undefined(), &ValueEncodingError{Value: s, Reason: "expected 6 or 8 hex digits"}
	}

	b, err := hex.DecodeString(digits)
	if err != nil {
		return Undefined(), &ValueEncodingError{Value: s, Reason: "not hexadecimal"}
	}

	// #RRGGBB is opaque
	if len(b) == 3 {
		return RGBA(b[0], b[1], b[2], 0xff), nil
	}

	c := RGBA(b[0], b[1], b[2], b[3])
	if c.A == ansiAlpha && int(c.R) >= PaletteSize {
		return Undefined(), &ValueEncodingError{
			Value:  s,
			Reason: fmt.Sprintf("ansi index %#02x outside palette", c.R),
		}
	}

	return c, nil
}

// MustParse is Parse for constants known to be valid.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) Defined() bool {
	return c.defined
}

// IsANSI reports whether c is a palette reference rather than a true colour.
func (c Color) IsANSI() bool {
	return c.defined && c.A == ansiAlpha
}

// ANSIIndex returns the palette index of a sentinel colour.
func (c Color) ANSIIndex() (int, bool) {
	if !c.IsANSI() {
		return 0, false
	}
	return int(c.R), true
}

// String renders c the way it appears in a theme file.
func (c Color) String() string {
	if !c.defined {
		return ""
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// Describe is a short human label: "ansi 04" for sentinels, the hex otherwise.
func (c Color) Describe() string {
	switch {
	case !c.defined:
		return "none"
	case c.IsANSI():
		return fmt.Sprintf("ansi %02d", c.R)
	default:
		return c.String()
	}
}
