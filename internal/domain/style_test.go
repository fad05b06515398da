package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFontStyle(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        FontStyle
		wantUnknown []string
	}{
		{name: "empty", input: "", want: 0},
		{name: "underline", input: "underline", want: FontUnderline},
		{name: "set", input: "bold  italic", want: FontBold | FontItalic},
		{name: "case folded", input: "Underline", want: FontUnderline},
		{name: "unknown word", input: "underline blink", want: FontUnderline, wantUnknown: []string{"blink"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, unknown := ParseFontStyle(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantUnknown, unknown)
		})
	}
}

func TestFontStyle_String(t *testing.T) {
	assert.Equal(t, "", FontStyle(0).String())
	assert.Equal(t, "underline", FontUnderline.String())
	assert.Equal(t, "bold italic strikethrough", (FontStrikethrough | FontBold | FontItalic).String())
	assert.True(t, (FontBold | FontUnderline).Has(FontUnderline))
	assert.False(t, FontBold.Has(FontItalic))
}

func TestStyleRule_Label(t *testing.T) {
	assert.Equal(t, "Number", StyleRule{Name: "Number", Scope: "constant.numeric"}.Label())
	assert.Equal(t, "error", StyleRule{Scope: "error"}.Label())
	assert.Equal(t, "default", StyleRule{Default: true}.Label())
}

func TestStyleRule_SampleScope(t *testing.T) {
	assert.Equal(t, "string.quoted", StyleRule{Scope: "string.quoted, punctuation.definition.string.begin"}.SampleScope())
	assert.Equal(t, "source.http http.requestheaders support.variable.http",
		StyleRule{Scope: " source.http http.requestheaders support.variable.http"}.SampleScope())
	assert.Equal(t, "", StyleRule{Default: true}.SampleScope())
}

func TestDiagnostic(t *testing.T) {
	cause := errors.New("boom")
	d := Diagnostic{RuleIndex: 3, RuleName: "Tag", Field: "foreground", Err: cause}

	assert.Equal(t, "rule 3 (Tag) foreground: boom", d.Error())
	assert.ErrorIs(t, d, cause)

	d.RuleName = ""
	assert.Equal(t, "rule 3 foreground: boom", d.Error())
}

func TestStoredTheme_Validate(t *testing.T) {
	tests := []struct {
		name    string
		theme   StoredTheme
		wantErr bool
	}{
		{name: "valid", theme: StoredTheme{Name: "solarized-dark", Source: []byte("x")}},
		{name: "empty name", theme: StoredTheme{Name: " ", Source: []byte("x")}, wantErr: true},
		{name: "uppercase", theme: StoredTheme{Name: "Solarized", Source: []byte("x")}, wantErr: true},
		{name: "spaces", theme: StoredTheme{Name: "my theme", Source: []byte("x")}, wantErr: true},
		{name: "no source", theme: StoredTheme{Name: "empty"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.theme.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
