package theme

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scopetheme/internal/color"
	"scopetheme/internal/domain"
	"scopetheme/internal/selector"
)

func loadBuiltin(t *testing.T, name string) *Resolver {
	t.Helper()

	data, err := BuiltinSource(name)
	require.NoError(t, err)

	r, err := Parse(name, data)
	require.NoError(t, err)
	return r
}

func ruleSet(rules ...domain.StyleRule) *domain.RuleSet {
	all := append([]domain.StyleRule{{Default: true, Foreground: color.ANSI(7)}}, rules...)
	return &domain.RuleSet{Name: "test", Rules: all}
}

func scoped(scope string, idx int) domain.StyleRule {
	return domain.StyleRule{Name: scope, Scope: scope, Foreground: color.ANSI(idx)}
}

func ansiIndex(t *testing.T, s domain.ResolvedStyle) int {
	t.Helper()
	idx, ok := s.Foreground.ANSIIndex()
	require.True(t, ok, "foreground %s is not an ansi reference", s.Foreground)
	return idx
}

func TestResolve_DocumentedSelectors(t *testing.T) {
	r := loadBuiltin(t, "ansi")

	tests := []struct {
		selector  string
		wantName  string
		wantIndex int
		wantFont  domain.FontStyle
	}{
		{selector: "constant.numeric", wantName: "Number", wantIndex: 4},
		{selector: "constant", wantName: "Constant", wantIndex: 5},
		{selector: "string.quoted, punctuation.definition.string.begin, punctuation.definition.string.end", wantName: "String", wantIndex: 3},
		{selector: "meta.tag.sgml, entity.name.tag.doctype", wantName: "Doctype", wantIndex: 8},
		{selector: "entity.name.tag", wantName: "Tag", wantIndex: 4},
		{selector: "entity.other.attribute-name", wantName: "Attribute name", wantIndex: 6},
		{selector: "source.http http.requestheaders support.variable.http", wantName: "HTTP header name", wantIndex: 6},
		{selector: "source.http http.requestheaders string.other.http", wantName: "HTTP header value", wantIndex: 15},
		{selector: "constant.numeric.http, keyword.other.http", wantName: "HTTP version and status", wantIndex: 4},
		{selector: "keyword.reason.http", wantName: "HTTP reason", wantIndex: 6},
		{selector: "keyword.control.http", wantName: "HTTP method", wantIndex: 2},
		{selector: "const.language.http", wantName: "HTTP constant", wantIndex: 5},
		{selector: "keyword.other.name.jsonkv", wantName: "JSON key", wantIndex: 4},
		{selector: "error", wantName: "Error", wantIndex: 1, wantFont: domain.FontUnderline},
	}

	require.Len(t, r.Rules(), len(tests))

	for _, tt := range tests {
		// a comma selector is queried once per alternative
		for _, alt := range strings.Split(tt.selector, ",") {
			query := strings.TrimSpace(alt)
			t.Run(query, func(t *testing.T) {
				got := r.Resolve(query)
				require.False(t, got.IsDefault(), "fell back to default")
				assert.Equal(t, tt.wantName, got.RuleName)
				assert.Equal(t, tt.selector, got.Selector)
				assert.Equal(t, tt.wantIndex, ansiIndex(t, got))
				assert.Equal(t, tt.wantFont, got.FontStyle)
			})
		}
	}
}

func TestResolve_KnownValues(t *testing.T) {
	r := loadBuiltin(t, "ansi")

	assert.Equal(t, 4, ansiIndex(t, r.Resolve("constant.numeric")))
	assert.Equal(t, 2, ansiIndex(t, r.Resolve("keyword.control.http")))

	unknown := r.Resolve("totally.unknown.scope")
	assert.True(t, unknown.IsDefault())
	assert.Equal(t, 7, ansiIndex(t, unknown))
	assert.Equal(t, r.Default(), unknown)
}

func TestResolve_DescendantScopes(t *testing.T) {
	r := loadBuiltin(t, "ansi")

	t.Run("more specific child scope", func(t *testing.T) {
		got := r.Resolve("constant.numeric.integer.json")
		assert.Equal(t, "Number", got.RuleName)
	})

	t.Run("http status prefers the http rule", func(t *testing.T) {
		got := r.Resolve("constant.numeric.http")
		assert.Equal(t, "HTTP version and status", got.RuleName)
	})

	t.Run("stack resolves innermost scope", func(t *testing.T) {
		got := r.ResolveStack([]string{"source.http", "keyword.control.http"})
		assert.Equal(t, "HTTP method", got.RuleName)
	})

	t.Run("unstyled inner scope inherits from its parent", func(t *testing.T) {
		got := r.ResolveStack([]string{"source.http", "http.requestheaders", "support.variable.http", "punctuation.separator.http"})
		assert.Equal(t, "HTTP header name", got.RuleName)
	})

	t.Run("header value outside request headers", func(t *testing.T) {
		got := r.Resolve("source.http string.other.http")
		assert.True(t, got.IsDefault())
	})

	t.Run("empty path", func(t *testing.T) {
		assert.True(t, r.Resolve("").IsDefault())
		assert.True(t, r.ResolveStack(nil).IsDefault())
	})
}

func TestResolve_DefaultIffNoPrefix(t *testing.T) {
	r := loadBuiltin(t, "ansi")

	queries := []string{
		"constant", "constant.numeric", "constant.character.escape", "string", "string.quoted.double.json",
		"punctuation.definition.string.begin.json", "punctuation.separator", "entity", "entity.name",
		"entity.name.tag.html", "keyword", "keyword.other", "keyword.other.http", "error.http", "errors",
		"meta.tag", "const.language", "const.language.http.x", "comment.line", "variable.other",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			stack := selector.ParseStack(q)
			anyMatch := false
			for _, rule := range r.Rules() {
				sel, err := selector.Parse(rule.Scope)
				require.NoError(t, err)
				if _, ok := sel.Match(stack); ok {
					anyMatch = true
				}
			}
			assert.Equal(t, !anyMatch, r.Resolve(q).IsDefault())
		})
	}
}

func TestResolve_Specificity(t *testing.T) {
	// the broader rule comes last so order cannot explain the result
	r, err := Load(ruleSet(
		scoped("keyword.control.http", 2),
		scoped("keyword.control", 3),
		scoped("keyword", 4),
	))
	require.NoError(t, err)

	assert.Equal(t, 2, ansiIndex(t, r.Resolve("keyword.control.http.get")))
	assert.Equal(t, 3, ansiIndex(t, r.Resolve("keyword.control.flow")))
	assert.Equal(t, 4, ansiIndex(t, r.Resolve("keyword.operator")))
}

func TestResolve_TieBreakLaterWins(t *testing.T) {
	t.Run("identical selectors", func(t *testing.T) {
		r, err := Load(ruleSet(scoped("string", 1), scoped("string", 2)))
		require.NoError(t, err)

		got := r.Resolve("string.quoted")
		assert.Equal(t, 2, ansiIndex(t, got))
		assert.Equal(t, 2, got.RuleIndex)
	})

	t.Run("equal specificity through alternation", func(t *testing.T) {
		r, err := Load(ruleSet(scoped("string.quoted", 1), scoped("comment.line, string.quoted", 5)))
		require.NoError(t, err)
		assert.Equal(t, 5, ansiIndex(t, r.Resolve("string.quoted.double")))
	})

	t.Run("earlier wins when more specific", func(t *testing.T) {
		r, err := Load(ruleSet(scoped("string.quoted", 1), scoped("string", 2)))
		require.NoError(t, err)
		assert.Equal(t, 1, ansiIndex(t, r.Resolve("string.quoted.double")))
	})
}

func TestResolve_DescendantBeatsBareLeaf(t *testing.T) {
	r, err := Load(ruleSet(
		scoped("source.http string.other.http", 3),
		scoped("string.other.http", 4),
	))
	require.NoError(t, err)

	assert.Equal(t, 3, ansiIndex(t, r.Resolve("source.http string.other.http")))
	assert.Equal(t, 4, ansiIndex(t, r.Resolve("source.json string.other.http")))
}

func TestResolve_UndefinedForegroundFallsBack(t *testing.T) {
	rule := domain.StyleRule{Name: "broken", Scope: "invalid", FontStyle: domain.FontBold}
	r, err := Load(ruleSet(rule))
	require.NoError(t, err)

	got := r.Resolve("invalid.illegal")
	assert.Equal(t, "broken", got.RuleName)
	assert.Equal(t, 7, ansiIndex(t, got))
	assert.Equal(t, domain.FontBold, got.FontStyle)
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		rs       *domain.RuleSet
		wantRule int
	}{
		{name: "nil", rs: nil, wantRule: -1},
		{
			name:     "two defaults",
			rs:       ruleSet(scoped("a", 1), domain.StyleRule{Default: true}),
			wantRule: 2,
		},
		{
			name:     "no default",
			rs:       &domain.RuleSet{Rules: []domain.StyleRule{scoped("a", 1)}},
			wantRule: -1,
		},
		{
			name:     "empty selector",
			rs:       ruleSet(scoped("a", 1), domain.StyleRule{Name: "blank", Scope: "  "}),
			wantRule: 2,
		},
		{
			name:     "unparseable selector",
			rs:       ruleSet(scoped("a..b", 1)),
			wantRule: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Load(tt.rs)
			require.Error(t, err)
			assert.Nil(t, r)
			assert.ErrorIs(t, err, ErrMalformedTheme)

			var mt *MalformedThemeError
			require.True(t, errors.As(err, &mt))
			assert.Equal(t, tt.wantRule, mt.Rule)
		})
	}
}

func TestLoad_BlankAlternativeIsDiagnostic(t *testing.T) {
	r, err := Load(ruleSet(domain.StyleRule{Name: "Source", Scope: "source, ", Foreground: color.ANSI(3)}))
	require.NoError(t, err)

	diags := r.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, 1, diags[0].RuleIndex)
	assert.Equal(t, "scope", diags[0].Field)

	assert.Equal(t, 3, ansiIndex(t, r.Resolve("source.http")))
}

func TestResolve_EmptySegmentsIgnored(t *testing.T) {
	r := loadBuiltin(t, "ansi")

	got := r.Resolve("constant..numeric")
	assert.Equal(t, "Number", got.RuleName)
	assert.Equal(t, 4, ansiIndex(t, got))

	assert.True(t, r.Resolve(" . .. ").IsDefault())
}

func TestLoad_DoesNotAliasInput(t *testing.T) {
	rs := ruleSet(scoped("string", 1))
	r, err := Load(rs)
	require.NoError(t, err)

	rs.Rules[1].Foreground = color.ANSI(9)
	rs.Diagnostics = append(rs.Diagnostics, domain.Diagnostic{})

	assert.Equal(t, 1, ansiIndex(t, r.Resolve("string")))
	assert.Empty(t, r.Diagnostics())

	rules := r.Rules()
	rules[0].Name = "changed"
	assert.Equal(t, "string", r.Rules()[0].Name)
}

func TestResolve_Concurrent(t *testing.T) {
	r := loadBuiltin(t, "ansi")

	queries := map[string]string{
		"keyword.control.http":        "HTTP method",
		"constant.numeric.http":       "HTTP version and status",
		"keyword.other.name.jsonkv":   "JSON key",
		"entity.other.attribute-name": "Attribute name",
		"totally.unknown.scope":       "",
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64*len(queries))
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for q, want := range queries {
				if got := r.Resolve(q).RuleName; got != want {
					errs <- q + ": got " + got
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
}
