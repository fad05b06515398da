package fuzzy

import (
	"testing"
)

func TestExactMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
	}{
		{name: "exact scope", pattern: "keyword.control.http", text: "keyword.control.http"},
		{name: "mixed case", pattern: "Error", text: "error"},
		{name: "rule name with spaces", pattern: "http method", text: "HTTP method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if score := Match(tt.pattern, tt.text); score != 100 {
				t.Errorf("Match(%q, %q) = %d, want 100", tt.pattern, tt.text, score)
			}
		})
	}
}

func TestNoMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
	}{
		{name: "empty pattern", pattern: "", text: "constant"},
		{name: "empty text", pattern: "constant", text: ""},
		{name: "pattern longer than text", pattern: "constant.numeric", text: "constant"},
		{name: "characters out of order", pattern: "ptth", text: "keyword.control.http"},
		{name: "missing character", pattern: "jsonz", text: "keyword.other.name.jsonkv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if score := Match(tt.pattern, tt.text); score != 0 {
				t.Errorf("Match(%q, %q) = %d, want 0", tt.pattern, tt.text, score)
			}
		})
	}
}

func TestPartialMatch(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		text     string
		minScore int
	}{
		{name: "leading segment", pattern: "keyword", text: "keyword.control", minScore: 90},
		{name: "inner segment", pattern: "control", text: "keyword.control", minScore: 70},
		{name: "trailing segment", pattern: "numeric", text: "constant.numeric", minScore: 60},
		{name: "segment initials", pattern: "kch", text: "keyword.control.http", minScore: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := Match(tt.pattern, tt.text)
			if score < tt.minScore || score > 100 {
				t.Errorf("Match(%q, %q) = %d, want in [%d, 100]", tt.pattern, tt.text, score, tt.minScore)
			}
		})
	}
}

func TestPrefixBeatsInnerSegment(t *testing.T) {
	prefix := Match("keyword", "keyword.control")
	inner := Match("control", "keyword.control")

	if prefix <= inner {
		t.Errorf("prefix score %d should beat inner segment score %d", prefix, inner)
	}
}

func TestContiguousBeatsScattered(t *testing.T) {
	contiguous := Match("http", "keyword.control.http")
	scattered := Match("http", "heavy.tint.top.plain")

	if contiguous <= scattered {
		t.Errorf("contiguous score %d should beat scattered score %d", contiguous, scattered)
	}
}

func TestMatchMany(t *testing.T) {
	texts := []string{
		"constant.numeric",
		"string.quoted",
		"constant",
		"keyword.other.name.jsonkv",
		"const.language.http",
	}

	results := MatchMany("const", texts, 40)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3: %+v", len(results), results)
	}

	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted: %+v", results)
		}
	}

	for _, r := range results {
		if texts[r.Index] != r.Text {
			t.Errorf("result index %d points at %q, want %q", r.Index, texts[r.Index], r.Text)
		}
	}

	if got := MatchMany("zzz", texts, 0); len(got) != len(texts) {
		t.Errorf("threshold 0 should keep every text, got %d", len(got))
	}

	if got := MatchMany("zzz", texts, 1); len(got) != 0 {
		t.Errorf("expected no matches, got %+v", got)
	}
}
