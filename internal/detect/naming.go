package detect

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"aidetect/internal/source"
)

// namingAnalyzer scores identifier choice. Generated code leans on generic
// placeholder names (temp, data, result) and produces unusually uniform name
// lengths.
type namingAnalyzer struct{}

func (namingAnalyzer) Category() Category { return CategoryNaming }

var genericNameRe = regexp.MustCompile(`^(?i)(temp|tmp|data|result|res|value|val|item|count|num|var|foo|bar|baz|obj|arr|lst|str|out|ret)\d*$`)

const (
	genericRatioHigh     = 0.5
	genericRatioModerate = 0.3
	genericRatioLow      = 0.15
	minIdentsForSpread   = 8
	uniformLengthStddev  = 1.5
	shortAvgLength       = 3.0
)

func (namingAnalyzer) Analyze(u *source.Unit) []Finding {
	names, degraded := collectNames(u)
	if len(names) < 3 {
		return nil
	}

	var findings []Finding

	generic := 0
	for _, n := range names {
		if isGenericName(n.name, n.loopContext) {
			generic++
		}
	}
	ratio := float64(generic) / float64(len(names))
	switch {
	case ratio >= genericRatioHigh:
		findings = append(findings, Finding{
			Category:    CategoryNaming,
			Score:       16,
			Explanation: fmt.Sprintf("%d of %d identifiers are generic placeholders (temp, data, result, ...)", generic, len(names)),
			Degraded:    degraded,
		})
	case ratio >= genericRatioModerate:
		findings = append(findings, Finding{
			Category:    CategoryNaming,
			Score:       10,
			Explanation: fmt.Sprintf("%d of %d identifiers are generic placeholders", generic, len(names)),
			Degraded:    degraded,
		})
	case ratio >= genericRatioLow:
		findings = append(findings, Finding{
			Category:    CategoryNaming,
			Score:       5,
			Explanation: fmt.Sprintf("%d of %d identifiers are generic placeholders", generic, len(names)),
			Degraded:    degraded,
		})
	}

	if len(names) >= minIdentsForSpread {
		mean, stddev := lengthSpread(names)
		if stddev < uniformLengthStddev {
			findings = append(findings, Finding{
				Category:    CategoryNaming,
				Score:       4,
				Explanation: fmt.Sprintf("identifier lengths are unusually uniform (stddev %.1f)", stddev),
				Degraded:    degraded,
			})
		}
		if mean < shortAvgLength {
			findings = append(findings, Finding{
				Category:    CategoryNaming,
				Score:       4,
				Explanation: fmt.Sprintf("average identifier length %.1f characters", mean),
				Degraded:    degraded,
			})
		}
	}

	return findings
}

type namedIdent struct {
	name        string
	loopContext bool
}

// collectNames gathers declared identifiers. The structural view records
// declarations precisely; the lexical fallback takes identifiers appearing
// left of an assignment operator, which misses some and is marked degraded.
func collectNames(u *source.Unit) ([]namedIdent, bool) {
	if u.Structure != nil {
		seen := make(map[string]bool)
		var out []namedIdent
		for _, id := range u.Structure.Identifiers {
			if seen[id.Name] {
				continue
			}
			seen[id.Name] = true
			out = append(out, namedIdent{
				name:        id.Name,
				loopContext: lineHasLoop(u, id.Line),
			})
		}
		return out, false
	}

	seen := make(map[string]bool)
	var out []namedIdent
	var prev *source.Token
	for i := range u.Tokens {
		t := &u.Tokens[i]
		if t.Kind == source.TokenOperator && strings.HasSuffix(t.Text, "=") &&
			t.Text != "==" && t.Text != "!=" && t.Text != "<=" && t.Text != ">=" &&
			prev != nil && prev.Kind == source.TokenIdent && !seen[prev.Text] {
			seen[prev.Text] = true
			out = append(out, namedIdent{
				name:        prev.Text,
				loopContext: lineHasLoop(u, prev.Line),
			})
		}
		prev = t
	}
	return out, true
}

func lineHasLoop(u *source.Unit, lineNo int) bool {
	if lineNo < 1 || lineNo > len(u.Lines) {
		return false
	}
	line := u.Lines[lineNo-1]
	for _, kw := range []string{"for", "while", "foreach"} {
		if containsWord(line, kw) {
			return true
		}
	}
	return false
}

func containsWord(line, word string) bool {
	idx := strings.Index(line, word)
	for idx >= 0 {
		before := idx == 0 || !isWordByte(line[idx-1])
		after := idx+len(word) >= len(line) || !isWordByte(line[idx+len(word)])
		if before && after {
			return true
		}
		next := strings.Index(line[idx+1:], word)
		if next < 0 {
			return false
		}
		idx += 1 + next
	}
	return false
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// isGenericName flags placeholder names. Single letters count as generic
// except as loop counters, where i and j are the convention.
func isGenericName(name string, loopContext bool) bool {
	if len(name) == 1 {
		return !loopContext
	}
	return genericNameRe.MatchString(name)
}

func lengthSpread(names []namedIdent) (mean, stddev float64) {
	sum := 0.0
	for _, n := range names {
		sum += float64(len(n.name))
	}
	mean = sum / float64(len(names))
	variance := 0.0
	for _, n := range names {
		d := float64(len(n.name)) - mean
		variance += d * d
	}
	return mean, math.Sqrt(variance / float64(len(names)))
}
