// Package detect scores source text for signals of machine generation. Six
// category analyzers each emit findings with bounded scores; the aggregator
// clamps per-category totals and maps the sum to a 0-100 percentage with a
// fixed classification threshold.
//
// Analysis is deterministic and never fails: malformed or unrecognized input
// lowers confidence instead of producing an error.
package detect

import "aidetect/internal/source"

// Category names one analyzer's concern.
type Category string

const (
	CategoryComment    Category = "comment"
	CategoryNaming     Category = "naming"
	CategorySemantic   Category = "semantic"
	CategoryStructure  Category = "structure"
	CategoryComplexity Category = "complexity"
	CategoryStyle      Category = "style"
)

// categoryOrder fixes the reporting order regardless of analyzer completion
// order.
var categoryOrder = []Category{
	CategoryComment,
	CategoryNaming,
	CategorySemantic,
	CategoryStructure,
	CategoryComplexity,
	CategoryStyle,
}

// categoryCaps bound how much any one category can contribute. Text-level
// signals (comments, naming, semantic patterns) discriminate far better than
// formatting signals, which also fire on formatter-cleaned human code.
var categoryCaps = map[Category]int{
	CategoryComment:    20,
	CategoryNaming:     20,
	CategorySemantic:   20,
	CategoryStructure:  8,
	CategoryComplexity: 8,
	CategoryStyle:      8,
}

// TheoreticalMax is the sum of all category caps; percentages are computed
// against it.
const TheoreticalMax = 84

// ClassificationThreshold is the percentage at or above which a file is
// reported as likely machine generated.
const ClassificationThreshold = 30

// Confidence qualifies how much of the analysis pipeline ran.
type Confidence string

const (
	// ConfidenceFull means the language was recognized and the structural
	// view was produced
	ConfidenceFull Confidence = "full"
	// ConfidenceDegraded means analysis fell back to lexical or text-level
	// techniques
	ConfidenceDegraded Confidence = "degraded"
)

// Finding is one scored observation from an analyzer.
type Finding struct {
	Category    Category `json:"category"`
	Score       int      `json:"score"`
	Explanation string   `json:"explanation"`
	// Degraded marks findings produced by a fallback technique
	Degraded bool `json:"degraded,omitempty"`
}

// Request is one analysis input.
type Request struct {
	// Code is the source text to score
	Code string
	// Language is an optional explicit language hint
	Language string
	// Filename is an optional name whose extension aids language resolution
	Filename string
}

// AnalysisResult is the complete outcome for one source unit.
type AnalysisResult struct {
	Findings    []Finding  `json:"findings"`
	Percentage  int        `json:"percentage"`
	AIGenerated bool       `json:"ai_generated"`
	Summary     string     `json:"summary"`
	Fingerprint string     `json:"fingerprint"`
	Confidence  Confidence `json:"confidence"`
	Language    string     `json:"language"`
	Filename    string     `json:"filename,omitempty"`
}

// analyzer is one category pass over a parsed unit. Implementations are pure
// functions of the unit and safe to run concurrently.
type analyzer interface {
	Category() Category
	Analyze(u *source.Unit) []Finding
}
