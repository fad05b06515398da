// Package selector parses and matches scope selectors.
//
// A selector is a comma-separated list of alternatives. Each alternative is a
// space-separated descendant chain of scope paths, outermost first. A path
// matches a scope when it is equal to the scope or a dot-segment prefix of it.
package selector

import (
	"fmt"
	"strings"
)

// Path is one dot-separated scope name, split into segments.
type Path []string

func (p Path) String() string {
	return strings.Join(p, ".")
}

// Prefixes reports whether p is a dot-segment prefix of (or equal to) scope.
func (p Path) Prefixes(scope Path) bool {
	if len(p) > len(scope) {
		return false
	}
	for i, seg := range p {
		if scope[i] != seg {
			return false
		}
	}
	return true
}

// Chain is a descendant chain of paths, outermost first.
type Chain []Path

func (c Chain) leaf() Path {
	return c[len(c)-1]
}

// Selector is a parsed scope selector.
type Selector struct {
	raw          string
	alternatives []Chain
	blank        int
}

// Parse parses a selector string. Blank alternatives ("source, ") are
// skipped and counted; a selector with nothing else is an error.
func Parse(raw string) (Selector, error) {
	if strings.TrimSpace(raw) == "" {
		return Selector{}, fmt.Errorf("empty selector")
	}

	parts := strings.Split(raw, ",")
	alts := make([]Chain, 0, len(parts))
	blank := 0
	for i, part := range parts {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			blank++
			continue
		}

		chain := make(Chain, 0, len(fields))
		for _, field := range fields {
			path, err := parsePath(field)
			if err != nil {
				return Selector{}, fmt.Errorf("alternative %d: %w", i+1, err)
			}
			chain = append(chain, path)
		}
		alts = append(alts, chain)
	}

	if len(alts) == 0 {
		return Selector{}, fmt.Errorf("selector %q has no alternatives", raw)
	}

	return Selector{raw: raw, alternatives: alts, blank: blank}, nil
}

// BlankAlternatives reports how many empty alternatives Parse skipped.
func (s Selector) BlankAlternatives() int {
	return s.blank
}

func parsePath(s string) (Path, error) {
	segs := strings.Split(s, ".")
	for _, seg := range segs {
		if seg == "" {
			return nil, fmt.Errorf("scope %q has an empty segment", s)
		}
	}
	return Path(segs), nil
}

// String returns the selector as written.
func (s Selector) String() string {
	return s.raw
}

// Alternatives returns the comma-separated alternatives in source order.
func (s Selector) Alternatives() []Chain {
	return s.alternatives
}

// LeafHeads returns the first segment of each alternative's innermost path.
// A stack can only match the selector if its innermost scope starts with one
// of these.
func (s Selector) LeafHeads() []string {
	seen := make(map[string]bool, len(s.alternatives))
	heads := make([]string, 0, len(s.alternatives))
	for _, alt := range s.alternatives {
		head := alt.leaf()[0]
		if !seen[head] {
			seen[head] = true
			heads = append(heads, head)
		}
	}
	return heads
}

// Match reports whether the selector matches stack, and with what specificity.
// The innermost path of an alternative must match the innermost scope of the
// stack; ancestor paths must match earlier scopes in order.
func (s Selector) Match(stack Stack) (Specificity, bool) {
	var (
		best  Specificity
		found bool
	)
	for _, alt := range s.alternatives {
		spec, ok := alt.match(stack)
		if !ok {
			continue
		}
		if !found || spec.Compare(best) > 0 {
			best = spec
			found = true
		}
	}
	return best, found
}

func (c Chain) match(stack Stack) (Specificity, bool) {
	if len(stack) == 0 || len(c) > len(stack) {
		return Specificity{}, false
	}

	leaf := c.leaf()
	if !leaf.Prefixes(stack[len(stack)-1]) {
		return Specificity{}, false
	}

	spec := Specificity{Leaf: len(leaf), Depth: len(c)}

	// greedy from the inside out is enough to decide a subsequence match
	pos := len(stack) - 2
	for i := len(c) - 2; i >= 0; i-- {
		for pos >= 0 && !c[i].Prefixes(stack[pos]) {
			pos--
		}
		if pos < 0 {
			return Specificity{}, false
		}
		spec.Ancestors += len(c[i])
		pos--
	}

	return spec, true
}

// Stack is a scope stack split into paths, outermost first.
type Stack []Path

// NewStack splits scope names into a Stack. Empty segments are dropped, so
// "constant..numeric" is constant.numeric, and names left empty are skipped.
func NewStack(scopes []string) Stack {
	stack := make(Stack, 0, len(scopes))
	for _, scope := range scopes {
		var path Path
		for _, seg := range strings.Split(strings.TrimSpace(scope), ".") {
			if seg != "" {
				path = append(path, seg)
			}
		}
		if len(path) == 0 {
			continue
		}
		stack = append(stack, path)
	}
	return stack
}

// ParseStack splits a space-separated scope path ("source.http keyword.control.http").
func ParseStack(scopePath string) Stack {
	return NewStack(strings.Fields(scopePath))
}

func (s Stack) String() string {
	names := make([]string, len(s))
	for i, p := range s {
		names[i] = p.String()
	}
	return strings.Join(names, " ")
}

// Specificity ranks a match. Fields compare in declaration order.
type Specificity struct {
	// segments in the innermost path
	Leaf int
	// segments across all ancestor paths
	Ancestors int
	// number of paths in the chain
	Depth int
}

// Compare returns -1, 0 or 1 as s is less, equally or more specific than o.
func (s Specificity) Compare(o Specificity) int {
	switch {
	case s.Leaf != o.Leaf:
		return sign(s.Leaf - o.Leaf)
	case s.Ancestors != o.Ancestors:
		return sign(s.Ancestors - o.Ancestors)
	default:
		return sign(s.Depth - o.Depth)
	}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
