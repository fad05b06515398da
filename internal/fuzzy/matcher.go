// Package fuzzy scores loose matches of a typed pattern against scope
// selectors and rule names, e.g. "kwhttp" against "keyword.control.http".
package fuzzy

import (
	"sort"
	"strings"
)

type MatchResult struct {
	Text  string
	Score int
	Index int
}

// Match scores pattern against text from 0 (no match) to 100 (exact).
func Match(pattern, text string) int {
	if pattern == "" || text == "" {
		return 0
	}

	p := []rune(strings.ToLower(pattern))
	s := []rune(strings.ToLower(text))

	if string(p) == string(s) {
		return 100
	}
	if len(p) > len(s) {
		return 0
	}

	positions := subsequence(p, s)
	if positions == nil {
		return 0
	}

	return clamp(score(p, s, positions), 0, 100)
}

// MatchMany scores every text and returns those at or above threshold, best
// first. Equal scores keep input order.
func MatchMany(pattern string, texts []string, threshold int) []MatchResult {
	results := make([]MatchResult, 0, len(texts))

	for i, text := range texts {
		if sc := Match(pattern, text); sc >= threshold {
			results = append(results, MatchResult{Text: text, Score: sc, Index: i})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// leftmost positions of p inside s, or nil
func subsequence(p, s []rune) []int {
	positions := make([]int, 0, len(p))
	pi := 0
	for si := 0; si < len(s) && pi < len(p); si++ {
		if p[pi] == s[si] {
			positions = append(positions, si)
			pi++
		}
	}
	if pi < len(p) {
		return nil
	}
	return positions
}

func score(p, s []rune, positions []int) int {
	pLen, sLen := float64(len(p)), float64(len(s))

	sc := 50.0 + (pLen/sLen)*25.0

	if positions[0] == 0 {
		sc += 12.0
	}

	run := longestRun(positions)
	runBonus := float64(run) / pLen * 20.0
	switch {
	case len(p) < 3:
		runBonus *= 0.6
	case len(p) < 5:
		runBonus *= 0.8
	}
	sc += runBonus

	if scattered := len(p) - run; scattered > 0 {
		sc -= float64(scattered) * 4.0
		if run == 1 {
			sc -= 10.0
		}
	}

	sc += (1.0 - mean(positions)/sLen) * 10.0

	// scope segments start after '.', so "kch" hits keyword.control.http
	// at three boundaries
	if boundaryRatio(s, positions) >= 0.3 {
		sc += 8.0
	}
	if segmentPrefix(p, s) {
		sc += 10.0
	}

	if positions[0] == 0 && run == len(p) {
		switch {
		case pLen/sLen >= 0.5:
			sc += 10.0
		default:
			sc += 5.0
		}
	}

	rate := 0.5
	switch {
	case len(p) < 3:
		rate = 1.0
	case len(p) < 5:
		rate = 0.7
	}
	sc -= (sLen - pLen) * rate

	return int(sc)
}

func longestRun(positions []int) int {
	best, cur := 1, 1
	for i := 1; i < len(positions); i++ {
		if positions[i] == positions[i-1]+1 {
			cur++
			if cur > best {
				best = cur
			}
		} else {
			cur = 1
		}
	}
	return best
}

func mean(positions []int) float64 {
	sum := 0
	for _, pos := range positions {
		sum += pos
	}
	return float64(sum) / float64(len(positions))
}

func isBoundary(r rune) bool {
	switch r {
	case '.', ' ', ',', '-', '_', '/':
		return true
	}
	return false
}

func boundaryRatio(s []rune, positions []int) float64 {
	hits := 0
	for _, pos := range positions {
		if pos == 0 || isBoundary(s[pos-1]) {
			hits++
		}
	}
	return float64(hits) / float64(len(positions))
}

// reports whether p occurs contiguously at the start of some segment of s
func segmentPrefix(p, s []rune) bool {
	for i := range s {
		if i != 0 && !isBoundary(s[i-1]) {
			continue
		}
		if i+len(p) <= len(s) && string(s[i:i+len(p)]) == string(p) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
