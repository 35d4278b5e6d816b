package detect

import (
	"aidetect/internal/source"
)

// semanticAnalyzer matches the raw text against the embedded catalog of
// stereotyped fragments. Each matched family scores once; the category cap
// bounds the total.
type semanticAnalyzer struct{}

func (semanticAnalyzer) Category() Category { return CategorySemantic }

func (semanticAnalyzer) Analyze(u *source.Unit) []Finding {
	var findings []Finding
	for _, family := range loadCatalog().Families {
		if !family.appliesTo(u.Profile.ID) {
			continue
		}
		if family.matches(u.Raw) >= family.MinMatches {
			findings = append(findings, Finding{
				Category:    CategorySemantic,
				Score:       family.Score,
				Explanation: family.Description,
			})
		}
	}
	return findings
}
