package detect

import (
	"fmt"
	"math"
	"strings"

	"aidetect/internal/source"
)

// structureAnalyzer scores layout regularity. Generated output is metronomic
// about indentation, line length, and blank-line placement in a way human
// editing sessions rarely are.
//
// These are weak signals on their own; a formatter produces the same
// regularity. The category cap keeps them from dominating.
type structureAnalyzer struct{}

func (structureAnalyzer) Category() Category { return CategoryStructure }

const (
	minLinesForStructure    = 15
	indentConsistencyHigh   = 0.98
	indentConsistencyMedium = 0.9
	longLineAvg             = 100.0
	longLineMax             = 120
	uniformLineStddev       = 8.0
	minBlankLinesForRhythm  = 4
)

func (structureAnalyzer) Analyze(u *source.Unit) []Finding {
	if u.NonBlankLines() < minLinesForStructure {
		return nil
	}

	var findings []Finding

	if ratio, measured := indentConsistency(u); measured {
		switch {
		case ratio >= indentConsistencyHigh:
			findings = append(findings, Finding{
				Category:    CategoryStructure,
				Score:       4,
				Explanation: fmt.Sprintf("indentation is %.0f%% consistent with a %d-space grid", ratio*100, u.Profile.IndentWidth),
			})
		case ratio >= indentConsistencyMedium:
			findings = append(findings, Finding{
				Category:    CategoryStructure,
				Score:       2,
				Explanation: fmt.Sprintf("indentation is %.0f%% consistent with a %d-space grid", ratio*100, u.Profile.IndentWidth),
			})
		}
	}

	if f, ok := lineLengthFinding(u); ok {
		findings = append(findings, f)
	}

	if f, ok := blankLineRhythm(u); ok {
		findings = append(findings, f)
	}

	return findings
}

// indentConsistency reports the fraction of indented lines whose leading
// spaces are a multiple of the profile's indent width. Tab-indented files
// are not measured; tabs are always on-grid.
func indentConsistency(u *source.Unit) (float64, bool) {
	width := u.Profile.IndentWidth
	indented, onGrid := 0, 0
	for _, line := range u.Lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "\t") {
			return 0, false
		}
		spaces := 0
		for spaces < len(line) && line[spaces] == ' ' {
			spaces++
		}
		if spaces == 0 {
			continue
		}
		indented++
		if spaces%width == 0 {
			onGrid++
		}
	}
	if indented < 5 {
		return 0, false
	}
	return float64(onGrid) / float64(indented), true
}

func lineLengthFinding(u *source.Unit) (Finding, bool) {
	var lengths []float64
	maxLen := 0
	for _, line := range u.Lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line)
		lengths = append(lengths, float64(n))
		if n > maxLen {
			maxLen = n
		}
	}
	if len(lengths) == 0 {
		return Finding{}, false
	}

	mean, stddev := meanStddev(lengths)

	score := 0
	var reasons []string
	if mean > longLineAvg {
		score += 2
		reasons = append(reasons, fmt.Sprintf("average line length %.0f", mean))
	}
	if maxLen > longLineMax {
		score++
		reasons = append(reasons, fmt.Sprintf("longest line %d characters", maxLen))
	}
	if stddev < uniformLineStddev {
		score += 3
		reasons = append(reasons, fmt.Sprintf("line lengths unusually uniform (stddev %.1f)", stddev))
	}
	if score == 0 {
		return Finding{}, false
	}
	if score > 3 {
		score = 3
	}
	return Finding{
		Category:    CategoryStructure,
		Score:       score,
		Explanation: strings.Join(reasons, "; "),
	}, true
}

// blankLineRhythm measures the spacing between blank lines. Evenly spaced
// separators read like templated output.
func blankLineRhythm(u *source.Unit) (Finding, bool) {
	var blanks []int
	for i, line := range u.Lines {
		if strings.TrimSpace(line) == "" {
			blanks = append(blanks, i)
		}
	}
	if len(blanks) < minBlankLinesForRhythm {
		return Finding{}, false
	}

	gaps := make([]float64, 0, len(blanks)-1)
	for i := 1; i < len(blanks); i++ {
		gaps = append(gaps, float64(blanks[i]-blanks[i-1]))
	}
	_, stddev := meanStddev(gaps)

	switch {
	case stddev < 1.0:
		return Finding{
			Category:    CategoryStructure,
			Score:       4,
			Explanation: "blank lines are evenly spaced throughout the file",
		}, true
	case stddev < 2.0:
		return Finding{
			Category:    CategoryStructure,
			Score:       2,
			Explanation: "blank line placement is highly regular",
		}, true
	}
	return Finding{}, false
}

func meanStddev(values []float64) (mean, stddev float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(len(values))
	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	return mean, math.Sqrt(variance / float64(len(values)))
}
