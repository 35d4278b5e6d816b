package detect

import (
	"regexp"
	"strings"
)

// GrammarChecker examines prose in comments for writing anomalies. A single
// issue count is returned; the comment analyzer maps counts to scores.
type GrammarChecker interface {
	Issues(text string) int
}

// HeuristicGrammarChecker spots a handful of mechanical writing errors that
// generated comment prose tends to contain. It is deliberately conservative;
// a false positive here inflates the strongest-weighted comment signal.
type HeuristicGrammarChecker struct{}

var grammarRules = []*regexp.Regexp{
	// "a" before a vowel sound; "u" is skipped for words like "a user"
	regexp.MustCompile(`(?i)\ba\s+[aeio]\w`),
	// "an" before a consonant sound
	regexp.MustCompile(`(?i)\ban\s+[bcdfgjklmnpqstvwxyz]\w`),
	// agreement slips like "is processing are"
	regexp.MustCompile(`(?i)\b(is|was)\s+\w+ing\s+(are|were)\b`),
}

var wordRe = regexp.MustCompile(`[A-Za-z]+`)

// doubledWords counts immediate word repetitions ("the the"). RE2 has no
// backreferences, so this is a plain scan over the word list.
func doubledWords(text string) int {
	words := wordRe.FindAllString(strings.ToLower(text), -1)
	count := 0
	for i := 1; i < len(words); i++ {
		if words[i] == words[i-1] {
			count++
		}
	}
	return count
}

// Issues counts rule hits across the text. Non-prose comments (shebangs,
// pragmas, commented-out code) rarely trip these rules, so no pre-filtering
// is applied.
func (HeuristicGrammarChecker) Issues(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	count := doubledWords(text)
	for _, rule := range grammarRules {
		count += len(rule.FindAllString(text, -1))
	}
	return count
}

// NopGrammarChecker reports no issues; used when prose checking is disabled.
type NopGrammarChecker struct{}

func (NopGrammarChecker) Issues(string) int { return 0 }
