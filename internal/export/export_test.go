package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"scopetheme/internal/color"
	"scopetheme/internal/theme"
)

func loadTheme(t *testing.T) *theme.Resolver {
	t.Helper()
	r, err := theme.NewManager(nil).Get(context.Background(), "ansi")
	require.NoError(t, err)
	return r
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	got, err := ParseFormat("MD")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, got)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	data := Build(loadTheme(t), color.DefaultPalette)

	assert.Equal(t, "ansi", data.Name)
	assert.Equal(t, "#07000000", data.Default.Foreground)
	assert.Equal(t, "#e5e5e5", data.Default.Hex)
	require.Len(t, data.Rules, 14)

	errRule := data.Rules[13]
	assert.Equal(t, "error", errRule.Scope)
	assert.Equal(t, "underline", errRule.FontStyle)
	assert.Equal(t, "#cd0000", errRule.Hex)
}

func TestWriteVSCode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, loadTheme(t), color.DefaultPalette))

	var got VSCodeTheme
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "dark", got.Type)
	assert.Equal(t, "#e5e5e5", got.Colors["editor.foreground"])
	require.Len(t, got.TokenColors, 14)

	str := got.TokenColors[2]
	assert.Equal(t, []string{
		"string.quoted",
		"punctuation.definition.string.begin",
		"punctuation.definition.string.end",
	}, str.Scope)
	assert.Equal(t, "#cdcd00", str.Settings.Foreground)
}

func TestWriteVSCode_LightTheme(t *testing.T) {
	r, err := theme.NewManager(nil).Get(context.Background(), "ansi-light")
	require.NoError(t, err)

	assert.Equal(t, "light", BuildVSCode(r, color.DefaultPalette).Type)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, loadTheme(t), color.DefaultPalette))

	var got ThemeExport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "ansi", got.Name)
	assert.Len(t, got.Rules, 14)
	assert.Equal(t, "keyword.control.http", got.Rules[10].Scope)
	assert.Equal(t, "#02000000", got.Rules[10].Foreground)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteYAML_WriteError(t *testing.T) {
	err := WriteYAML(failingWriter{}, loadTheme(t), color.DefaultPalette)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatMarkdown, loadTheme(t), color.DefaultPalette))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# ansi\n"))
	assert.Contains(t, out, "| 14 | Error | `error` | `#01000000` #cd0000 | underline |")
	// header, separator and one line per rule
	assert.Equal(t, 16, strings.Count(out, "\n|"))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, loadTheme(t), color.DefaultPalette))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 16) // header, default, 14 rules

	assert.Equal(t, "Index", records[0][0])
	assert.Equal(t, "#07000000", records[1][3])
	assert.Equal(t, "constant.numeric", records[2][2])
}

func TestBuildChroma(t *testing.T) {
	style, err := BuildChroma(loadTheme(t), color.DefaultPalette)
	require.NoError(t, err)

	assert.Equal(t, "ansi", style.Name)
	assert.Equal(t, "#cd0000", style.Get(chroma.Error).Colour.String())
	assert.Equal(t, chroma.Yes, style.Get(chroma.Error).Underline)
	assert.Equal(t, "#00cd00", style.Get(chroma.KeywordReserved).Colour.String())
	assert.Equal(t, "#0000ee", style.Get(chroma.LiteralNumber).Colour.String())
}

func TestWriteChroma(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatChroma, loadTheme(t), color.DefaultPalette))

	out := buf.String()
	assert.Contains(t, out, `<style name="ansi">`)
	assert.Contains(t, out, "#cd0000")
}
