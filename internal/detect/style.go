package detect

import (
	"fmt"
	"strings"

	"aidetect/internal/source"
)

// styleAnalyzer scores micro-formatting. Perfectly uniform operator spacing
// and a spotless formatter-clean file are weak generation signals; humans
// running gofmt or black produce the same texture, so scores stay small.
type styleAnalyzer struct{}

func (styleAnalyzer) Category() Category { return CategoryStyle }

const (
	minOpsForSpacing    = 10
	minLinesForStyle    = 15
	spacingPerfect      = 1.0
	spacingNearlyUnison = 0.95
)

func (styleAnalyzer) Analyze(u *source.Unit) []Finding {
	if u.NonBlankLines() < minLinesForStyle {
		return nil
	}

	var findings []Finding

	if ratio, ops := operatorSpacing(u); ops >= minOpsForSpacing {
		switch {
		case ratio >= spacingPerfect:
			findings = append(findings, Finding{
				Category:    CategoryStyle,
				Score:       4,
				Explanation: fmt.Sprintf("all %d measured operators share identical spacing", ops),
			})
		case ratio >= spacingNearlyUnison:
			findings = append(findings, Finding{
				Category:    CategoryStyle,
				Score:       2,
				Explanation: fmt.Sprintf("operator spacing is %.0f%% uniform", ratio*100),
			})
		}
	}

	if formatterClean(u) {
		findings = append(findings, Finding{
			Category:    CategoryStyle,
			Score:       4,
			Explanation: "file is formatter-clean: no trailing whitespace, no mixed indentation, no stacked blank lines",
		})
	}

	return findings
}

// operatorSpacing measures assignment and comparison operators in the raw
// lines and reports how uniformly they are spaced. The dominant convention
// (spaced or unspaced) over the total measured gives the ratio.
func operatorSpacing(u *source.Unit) (float64, int) {
	spaced, unspaced := 0, 0
	for _, line := range u.Lines {
		for _, idx := range operatorPositions(line) {
			before := idx > 0 && line[idx-1] == ' '
			afterPos := idx + 1
			for afterPos < len(line) && strings.IndexByte("=<>!+-*/", line[afterPos]) >= 0 {
				afterPos++
			}
			after := afterPos < len(line) && line[afterPos] == ' '
			if before && after {
				spaced++
			} else {
				unspaced++
			}
		}
	}
	total := spaced + unspaced
	if total == 0 {
		return 0, 0
	}
	dominant := spaced
	if unspaced > dominant {
		dominant = unspaced
	}
	return float64(dominant) / float64(total), total
}

// operatorPositions finds starts of binary operator runs outside obvious
// string context. Comment text can contain operators; the noise is tolerable
// at this score weight.
func operatorPositions(line string) []int {
	var out []int
	inString := byte(0)
	for i := 0; i < len(line); i++ {
		c := line[i]
		if inString != 0 {
			if c == '\\' {
				i++
			} else if c == inString {
				inString = 0
			}
			continue
		}
		if c == '"' || c == '\'' || c == '`' {
			inString = c
			continue
		}
		if strings.IndexByte("=<>", c) >= 0 {
			if i > 0 && strings.IndexByte("=<>!+-*/%&|^", line[i-1]) >= 0 {
				continue
			}
			out = append(out, i)
			for i+1 < len(line) && strings.IndexByte("=<>", line[i+1]) >= 0 {
				i++
			}
		}
	}
	return out
}

// formatterClean reports whether the file shows zero hand-editing residue:
// no trailing whitespace, no tab/space indentation mix, no runs of more than
// one blank line.
func formatterClean(u *source.Unit) bool {
	sawTabs, sawSpaces := false, false
	blanks := 0
	for _, line := range u.Lines {
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks > 1 {
				return false
			}
			if line != "" {
				return false
			}
			continue
		}
		blanks = 0
		if strings.TrimRight(line, " \t") != line {
			return false
		}
		if strings.HasPrefix(line, "\t") {
			sawTabs = true
		} else if strings.HasPrefix(line, " ") {
			sawSpaces = true
		}
	}
	return !(sawTabs && sawSpaces)
}
