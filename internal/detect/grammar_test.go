package detect

import "testing"

func TestGrammarCheckerFlagsArticleErrors(t *testing.T) {
	g := HeuristicGrammarChecker{}

	tests := []struct {
		text string
		want int
	}{
		{"returns a error when parsing fails", 1},
		{"an simple helper for parsing", 1},
		{"processes the the input list", 1},
		{"returns an error when parsing fails", 0},
		{"a simple helper for parsing", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := g.Issues(tt.text); got != tt.want {
			t.Errorf("Issues(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestGrammarCheckerCountsMultipleIssues(t *testing.T) {
	g := HeuristicGrammarChecker{}
	text := "this is a error and an simple case with the the result"
	if got := g.Issues(text); got < 3 {
		t.Errorf("Issues = %d, want at least 3", got)
	}
}

func TestNopGrammarChecker(t *testing.T) {
	var g NopGrammarChecker
	if g.Issues("a error an simple the the") != 0 {
		t.Error("nop checker must report zero issues")
	}
}
