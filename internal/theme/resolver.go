package theme

import (
	"fmt"
	"strings"

	"scopetheme/internal/domain"
	"scopetheme/internal/selector"
)

type compiledRule struct {
	rule domain.StyleRule
	sel  selector.Selector
}

// Resolver maps scopes to styles for one theme. It is immutable after Load
// and safe for concurrent use.
type Resolver struct {
	name        string
	uuid        string
	author      string
	def         domain.StyleRule
	rules       []compiledRule
	byHead      map[string][]int
	diagnostics []domain.Diagnostic
}

// Load validates a rule set and compiles its selectors.
func Load(rs *domain.RuleSet) (*Resolver, error) {
	if rs == nil {
		return nil, malformed("", -1, "no rule set", nil)
	}

	r := &Resolver{
		name:        rs.Name,
		uuid:        rs.UUID,
		author:      rs.Author,
		rules:       make([]compiledRule, 0, len(rs.Rules)),
		byHead:      make(map[string][]int),
		diagnostics: append([]domain.Diagnostic(nil), rs.Diagnostics...),
	}

	defaultAt := -1
	for i, rule := range rs.Rules {
		// source order is the tie-break key
		rule.Index = i

		if rule.Default {
			if defaultAt >= 0 {
				return nil, malformed(rs.Name, i, fmt.Sprintf("duplicate default rule (first at %d)", defaultAt), nil)
			}
			defaultAt = i
			r.def = rule
			continue
		}

		if strings.TrimSpace(rule.Scope) == "" {
			return nil, malformed(rs.Name, i, "empty selector", nil)
		}

		sel, err := selector.Parse(rule.Scope)
		if err != nil {
			return nil, malformed(rs.Name, i, "invalid selector", err)
		}
		if n := sel.BlankAlternatives(); n > 0 {
			r.diagnostics = append(r.diagnostics, domain.Diagnostic{
				RuleIndex: i,
				RuleName:  rule.Name,
				Field:     "scope",
				Err:       fmt.Errorf("%d empty selector alternative(s) ignored", n),
			})
		}

		pos := len(r.rules)
		r.rules = append(r.rules, compiledRule{rule: rule, sel: sel})
		for _, head := range sel.LeafHeads() {
			r.byHead[head] = append(r.byHead[head], pos)
		}
	}

	if defaultAt < 0 {
		return nil, malformed(rs.Name, -1, "no default rule", nil)
	}

	return r, nil
}

func (r *Resolver) Name() string {
	return r.name
}

func (r *Resolver) UUID() string {
	return r.uuid
}

func (r *Resolver) Author() string {
	return r.author
}

// Diagnostics returns the non-fatal problems recorded while loading.
func (r *Resolver) Diagnostics() []domain.Diagnostic {
	return append([]domain.Diagnostic(nil), r.diagnostics...)
}

// DefaultRule returns the theme-wide fallback rule.
func (r *Resolver) DefaultRule() domain.StyleRule {
	return r.def
}

// Rules returns the scoped rules in source order.
func (r *Resolver) Rules() []domain.StyleRule {
	rules := make([]domain.StyleRule, len(r.rules))
	for i, cr := range r.rules {
		rules[i] = cr.rule
	}
	return rules
}

// Default returns the style applied when nothing matches.
func (r *Resolver) Default() domain.ResolvedStyle {
	return domain.ResolvedStyle{
		Foreground: r.def.Foreground,
		Background: r.def.Background,
		FontStyle:  r.def.FontStyle,
		RuleIndex:  -1,
	}
}

// Resolve resolves a scope path. Space-separated scopes form a stack,
// outermost first.
func (r *Resolver) Resolve(scopePath string) domain.ResolvedStyle {
	return r.resolve(selector.ParseStack(scopePath))
}

// ResolveStack resolves an explicit scope stack, outermost first.
func (r *Resolver) ResolveStack(stack []string) domain.ResolvedStyle {
	return r.resolve(selector.NewStack(stack))
}

// When nothing matches the innermost scope, the enclosing scope is tried, so
// text nested in an unstyled scope inherits its parent's style.
func (r *Resolver) resolve(stack selector.Stack) domain.ResolvedStyle {
	for depth := len(stack); depth > 0; depth-- {
		if cr, ok := r.best(stack[:depth]); ok {
			return r.styleOf(cr.rule)
		}
	}
	return r.Default()
}

func (r *Resolver) best(stack selector.Stack) (compiledRule, bool) {
	var (
		winner   compiledRule
		bestSpec selector.Specificity
		found    bool
	)

	head := stack[len(stack)-1][0]
	// candidates are in source order, so >= lets a later rule take a tie
	for _, pos := range r.byHead[head] {
		cr := r.rules[pos]
		spec, ok := cr.sel.Match(stack)
		if !ok {
			continue
		}
		if !found || spec.Compare(bestSpec) >= 0 {
			winner, bestSpec, found = cr, spec, true
		}
	}

	return winner, found
}

func (r *Resolver) styleOf(rule domain.StyleRule) domain.ResolvedStyle {
	style := domain.ResolvedStyle{
		Foreground: rule.Foreground,
		Background: rule.Background,
		FontStyle:  rule.FontStyle,
		RuleIndex:  rule.Index,
		RuleName:   rule.Name,
		Selector:   rule.Scope,
	}
	if !style.Foreground.Defined() {
		style.Foreground = r.def.Foreground
	}
	if !style.Background.Defined() {
		style.Background = r.def.Background
	}
	return style
}
