package detect

import (
	"fmt"
	"sort"
	"strings"
)

// aggregate folds analyzer findings into the final result. Per-category
// totals are clamped to their caps, the clamped sum is mapped to a 0-100
// percentage of the theoretical maximum, and the fixed threshold decides
// the classification.
func aggregate(findings []Finding, confidence Confidence) (pct int, generated bool, ordered []Finding, summary string) {
	byCategory := make(map[Category][]Finding)
	for _, f := range findings {
		byCategory[f.Category] = append(byCategory[f.Category], f)
	}

	total := 0
	for _, cat := range categoryOrder {
		group := byCategory[cat]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Score > group[j].Score
		})
		ordered = append(ordered, group...)

		catTotal := 0
		for _, f := range group {
			catTotal += f.Score
		}
		if limit := categoryCaps[cat]; catTotal > limit {
			catTotal = limit
		}
		total += catTotal
	}

	pct = total * 100 / TheoreticalMax
	if pct > 100 {
		pct = 100
	}
	generated = pct >= ClassificationThreshold

	summary = buildSummary(pct, generated, ordered, confidence)
	return pct, generated, ordered, summary
}

// buildSummary renders a short human-readable verdict with the strongest
// findings first.
func buildSummary(pct int, generated bool, ordered []Finding, confidence Confidence) string {
	var b strings.Builder

	switch {
	case generated:
		fmt.Fprintf(&b, "Likely machine generated (%d%%).", pct)
	case pct > 0:
		fmt.Fprintf(&b, "Likely human written (%d%%).", pct)
	default:
		b.WriteString("No generation signals found (0%).")
	}

	top := make([]Finding, len(ordered))
	copy(top, ordered)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Score > top[j].Score
	})
	if len(top) > 5 {
		top = top[:5]
	}
	for _, f := range top {
		b.WriteString(" ")
		b.WriteString(strings.TrimRight(f.Explanation, "."))
		b.WriteString(".")
	}

	if confidence == ConfidenceDegraded {
		b.WriteString(" Analysis ran in degraded mode; structural signals were unavailable.")
	}
	return b.String()
}
