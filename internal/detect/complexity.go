package detect

import (
	"fmt"
	"strings"

	"aidetect/internal/source"
)

// complexityAnalyzer scores control-flow shape. Generated code skews toward
// either long flat sequences or deeply nested conditionals; moderate
// complexity with moderate nesting is the human norm.
type complexityAnalyzer struct{}

func (complexityAnalyzer) Category() Category { return CategoryComplexity }

const (
	cyclomaticHigh   = 10
	cyclomaticMedium = 5
	nestingHigh      = 5
	nestingMedium    = 3
	branchesMany     = 20
)

func (complexityAnalyzer) Analyze(u *source.Unit) []Finding {
	decisions, boolOps, nesting, degraded := complexityCounts(u)
	cyclomatic := 1 + decisions + boolOps

	var findings []Finding

	switch {
	case cyclomatic > cyclomaticHigh:
		findings = append(findings, Finding{
			Category:    CategoryComplexity,
			Score:       4,
			Explanation: fmt.Sprintf("cyclomatic complexity %d across the file", cyclomatic),
			Degraded:    degraded,
		})
	case cyclomatic > cyclomaticMedium:
		findings = append(findings, Finding{
			Category:    CategoryComplexity,
			Score:       2,
			Explanation: fmt.Sprintf("cyclomatic complexity %d across the file", cyclomatic),
			Degraded:    degraded,
		})
	}

	switch {
	case nesting >= nestingHigh:
		findings = append(findings, Finding{
			Category:    CategoryComplexity,
			Score:       4,
			Explanation: fmt.Sprintf("control flow nests %d levels deep", nesting),
			Degraded:    degraded,
		})
	case nesting >= nestingMedium:
		findings = append(findings, Finding{
			Category:    CategoryComplexity,
			Score:       2,
			Explanation: fmt.Sprintf("control flow nests %d levels deep", nesting),
			Degraded:    degraded,
		})
	}

	if decisions > branchesMany {
		findings = append(findings, Finding{
			Category:    CategoryComplexity,
			Score:       2,
			Explanation: fmt.Sprintf("%d branch points in a single file", decisions),
			Degraded:    degraded,
		})
	}

	return findings
}

// complexityCounts reads the structural view when present. The lexical
// fallback counts decision keywords and short-circuit operators from the
// token stream and estimates nesting from indentation depth.
func complexityCounts(u *source.Unit) (decisions, boolOps, nesting int, degraded bool) {
	if u.Structure != nil {
		st := u.Structure
		return st.Decisions, st.BoolOps, st.MaxNesting, false
	}

	for _, t := range u.Tokens {
		switch t.Kind {
		case source.TokenKeyword:
			if u.Profile.IsDecisionKeyword(t.Text) {
				decisions++
			} else if u.Profile.IsBoolOperator(t.Text) {
				boolOps++
			}
		case source.TokenOperator:
			for _, op := range []string{"&&", "||"} {
				if u.Profile.IsBoolOperator(op) {
					boolOps += strings.Count(t.Text, op)
				}
			}
		}
	}

	return decisions, boolOps, indentDepth(u), true
}

// indentDepth estimates nesting as the deepest indentation level seen,
// measured in profile indent widths (tabs count as one level each).
func indentDepth(u *source.Unit) int {
	width := u.Profile.IndentWidth
	max := 0
	for _, line := range u.Lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		depth := 0
		spaces := 0
		for _, c := range line {
			if c == '\t' {
				depth++
			} else if c == ' ' {
				spaces++
			} else {
				break
			}
		}
		depth += spaces / width
		if depth > max {
			max = depth
		}
	}
	return max
}
