package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"

	"scopetheme/internal/color"
	"scopetheme/internal/domain"
	"scopetheme/internal/theme"
)

// scope queried for each chroma token type
var chromaScopes = map[chroma.TokenType]string{
	chroma.Keyword:             "keyword",
	chroma.KeywordConstant:     "const.language.http",
	chroma.KeywordReserved:     "keyword.control.http",
	chroma.KeywordType:         "keyword.other.http",
	chroma.NameTag:             "entity.name.tag",
	chroma.NameAttribute:       "entity.other.attribute-name",
	chroma.NameVariable:        "source.http http.requestheaders support.variable.http",
	chroma.NameConstant:        "constant",
	chroma.NameException:       "keyword.reason.http",
	chroma.NameProperty:        "keyword.other.name.jsonkv",
	chroma.LiteralNumber:       "constant.numeric",
	chroma.LiteralString:       "string.quoted",
	chroma.LiteralStringDouble: "string.quoted.double",
	chroma.CommentPreproc:      "meta.tag.sgml",
	chroma.Error:               "error",
}

// BuildChroma resolves a representative scope per chroma token type and
// assembles a chroma style. Token types whose scope falls back to the
// default are left to inherit from Text.
func BuildChroma(r *theme.Resolver, p color.Palette) (*chroma.Style, error) {
	def := r.Default()

	entries := chroma.StyleEntries{
		chroma.Text: styleEntry(def, p),
	}
	if bg := def.Background.Hex(p); bg != "" {
		entries[chroma.Background] = "bg:" + bg
	}

	for tt, scope := range chromaScopes {
		resolved := r.Resolve(scope)
		if resolved.IsDefault() {
			continue
		}
		entries[tt] = styleEntry(resolved, p)
	}

	style, err := chroma.NewStyle(r.Name(), entries)
	if err != nil {
		return nil, fmt.Errorf("failed to build chroma style: %w", err)
	}
	return style, nil
}

func styleEntry(s domain.ResolvedStyle, p color.Palette) string {
	parts := make([]string, 0, 4)
	if fg := s.Foreground.Hex(p); fg != "" {
		parts = append(parts, fg)
	}
	if s.FontStyle.Has(domain.FontBold) {
		parts = append(parts, "bold")
	}
	if s.FontStyle.Has(domain.FontItalic) {
		parts = append(parts, "italic")
	}
	if s.FontStyle.Has(domain.FontUnderline) {
		parts = append(parts, "underline")
	}
	return strings.Join(parts, " ")
}

// WriteChroma writes the theme as a chroma XML style.
func WriteChroma(w io.Writer, r *theme.Resolver, p color.Palette) error {
	style, err := BuildChroma(r, p)
	if err != nil {
		return err
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(style); err != nil {
		return fmt.Errorf("failed to encode chroma style: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	return nil
}
