package detect

import (
	"fmt"
	"strings"

	"aidetect/internal/profile"
	"aidetect/internal/source"
)

// commentAnalyzer scores documentation habits. Machine-generated code tends
// to document everything uniformly, keep a high comment-to-code density, and
// occasionally slip on article grammar in the prose.
type commentAnalyzer struct {
	grammar GrammarChecker
}

func (commentAnalyzer) Category() Category { return CategoryComment }

const (
	docstringRatioHigh     = 0.8
	docstringRatioModerate = 0.5
	commentDensityHigh     = 0.4
	commentDensityModerate = 0.2
)

func (a commentAnalyzer) Analyze(u *source.Unit) []Finding {
	var findings []Finding

	ratio, functions, degraded := docstringRatio(u)
	if functions >= 2 {
		switch {
		case ratio >= docstringRatioHigh:
			findings = append(findings, Finding{
				Category:    CategoryComment,
				Score:       10,
				Explanation: fmt.Sprintf("%.0f%% of functions carry a docstring; exhaustive documentation is typical of generated code", ratio*100),
				Degraded:    degraded,
			})
		case ratio >= docstringRatioModerate:
			findings = append(findings, Finding{
				Category:    CategoryComment,
				Score:       6,
				Explanation: fmt.Sprintf("%.0f%% of functions carry a docstring", ratio*100),
				Degraded:    degraded,
			})
		}
	}

	if nonBlank := u.NonBlankLines(); nonBlank > 0 {
		commentLines := countCommentLines(u)
		density := float64(commentLines) / float64(nonBlank)
		switch {
		case density >= commentDensityHigh:
			findings = append(findings, Finding{
				Category:    CategoryComment,
				Score:       6,
				Explanation: fmt.Sprintf("comments on %.0f%% of non-blank lines, well above typical hand-written density", density*100),
			})
		case density >= commentDensityModerate:
			findings = append(findings, Finding{
				Category:    CategoryComment,
				Score:       3,
				Explanation: fmt.Sprintf("comments on %.0f%% of non-blank lines", density*100),
			})
		}
	}

	if issues := a.grammarIssues(u); issues > 0 {
		score := 6
		if issues >= 3 {
			score = 15
		}
		findings = append(findings, Finding{
			Category:    CategoryComment,
			Score:       score,
			Explanation: fmt.Sprintf("%d grammar anomalies in comment prose", issues),
		})
	}

	return findings
}

// docstringRatio reports the fraction of functions with attached
// documentation. The structural view gives exact counts; otherwise function
// declaration lines are matched lexically and the following or preceding
// line is inspected, which is reported as degraded.
func docstringRatio(u *source.Unit) (ratio float64, functions int, degraded bool) {
	if u.Structure != nil {
		total := len(u.Structure.Functions)
		if total == 0 {
			return 0, 0, false
		}
		documented := 0
		for _, f := range u.Structure.Functions {
			if f.HasDocstring {
				documented++
			}
		}
		return float64(documented) / float64(total), total, false
	}

	commentLine := make(map[int]bool)
	for _, t := range u.CommentTokens() {
		commentLine[t.Line] = true
	}
	docstringStart := make(map[int]bool)
	if u.Profile.Docstring == profile.DocstringTripleQuote {
		for _, t := range u.Tokens {
			if t.Kind == source.TokenString {
				docstringStart[t.Line] = true
			}
		}
	}

	documented := 0
	for i, line := range u.Lines {
		if !u.Profile.MatchesFunction(line) {
			continue
		}
		functions++
		lineNo := i + 1
		if commentLine[lineNo-1] || docstringStart[lineNo+1] {
			documented++
		}
	}
	if functions == 0 {
		return 0, 0, true
	}
	return float64(documented) / float64(functions), functions, true
}

func countCommentLines(u *source.Unit) int {
	lines := make(map[int]bool)
	for _, t := range u.CommentTokens() {
		span := strings.Count(t.Text, "\n") + 1
		for i := 0; i < span; i++ {
			lines[t.Line+i] = true
		}
	}
	return len(lines)
}

func (a commentAnalyzer) grammarIssues(u *source.Unit) int {
	if a.grammar == nil {
		return 0
	}
	var b strings.Builder
	for _, t := range u.CommentTokens() {
		b.WriteString(t.Text)
		b.WriteString("\n")
	}
	if u.Structure != nil {
		for _, f := range u.Structure.Functions {
			if f.HasDocstring {
				b.WriteString(f.Docstring)
				b.WriteString("\n")
			}
		}
	}
	return a.grammar.Issues(b.String())
}
