package display

import (
	"strings"

	"scopetheme/internal/color"
	"scopetheme/internal/theme"
)

// Segment is a run of text and the scope stack a highlighter would assign it.
type Segment struct {
	Text  string
	Scope string
}

// HTTPSample is a short request/response exchange labelled with the scopes an
// HTTP client's highlighter produces.
var HTTPSample = []Segment{
	{"GET", "source.http keyword.control.http"},
	{" /api/items ", "source.http"},
	{"HTTP/1.1", "source.http keyword.other.http"},
	{"\n", ""},
	{"Accept", "source.http http.requestheaders support.variable.http"},
	{": ", "source.http http.requestheaders punctuation.separator.http"},
	{"application/json", "source.http http.requestheaders string.other.http"},
	{"\n\n", ""},
	{"HTTP/1.1", "source.http keyword.other.http"},
	{" ", "source.http"},
	{"200", "source.http constant.numeric.http"},
	{" ", "source.http"},
	{"OK", "source.http keyword.reason.http"},
	{"\n\n", ""},
	{"{", "source.json punctuation.section.dictionary.begin.json"},
	{"\n  ", ""},
	{`"id"`, "source.json keyword.other.name.jsonkv"},
	{": ", "source.json punctuation.separator.dictionary.key-value.json"},
	{"42", "source.json constant.numeric.json"},
	{",\n  ", ""},
	{`"name"`, "source.json keyword.other.name.jsonkv"},
	{": ", "source.json punctuation.separator.dictionary.key-value.json"},
	{`"widget"`, "source.json string.quoted.double.json"},
	{",\n  ", ""},
	{`"active"`, "source.json keyword.other.name.jsonkv"},
	{": ", "source.json punctuation.separator.dictionary.key-value.json"},
	{"true", "source.json constant.language.json"},
	{"\n}", "source.json punctuation.section.dictionary.end.json"},
	{"\n\n", ""},
	{"<!DOCTYPE html>", "text.html meta.tag.sgml entity.name.tag.doctype"},
	{"\n", ""},
	{"<", "text.html punctuation.definition.tag.begin.html"},
	{"div", "text.html entity.name.tag.html"},
	{" ", "text.html"},
	{"class", "text.html entity.other.attribute-name.html"},
	{"=", "text.html"},
	{`"card"`, "text.html string.quoted.double.html"},
	{">", "text.html punctuation.definition.tag.end.html"},
	{"\n\n", ""},
	{"error: connection refused", "error"},
}

// RenderSegments styles each segment with its resolved scope.
func RenderSegments(r *theme.Resolver, segments []Segment, mode color.Mode, p color.Palette) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.Scope == "" {
			b.WriteString(seg.Text)
			continue
		}
		style := theme.NewStyle(r.Resolve(seg.Scope), mode, p)
		// render line by line so styling never spans a newline
		lines := strings.Split(seg.Text, "\n")
		for i, line := range lines {
			if i > 0 {
				b.WriteString("\n")
			}
			if line != "" {
				b.WriteString(style.Render(line))
			}
		}
	}
	return b.String()
}
