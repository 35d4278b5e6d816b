package detect

import (
	"math/rand"
	"strings"
	"testing"
)

func TestAggregateClampsPerCategory(t *testing.T) {
	findings := []Finding{
		{Category: CategoryComment, Score: 15, Explanation: "a"},
		{Category: CategoryComment, Score: 10, Explanation: "b"},
		{Category: CategoryComment, Score: 10, Explanation: "c"},
	}
	pct, _, _, _ := aggregate(findings, ConfidenceFull)

	// 35 raw clamps to the 20 comment cap: 20*100/84 = 23.
	if pct != 23 {
		t.Errorf("pct = %d, want 23 after clamping", pct)
	}
}

func TestAggregateThresholdBoundary(t *testing.T) {
	// 25 clamped points is 29%, one below the threshold.
	below := []Finding{
		{Category: CategoryComment, Score: 20, Explanation: "a"},
		{Category: CategoryStructure, Score: 5, Explanation: "b"},
	}
	pct, generated, _, _ := aggregate(below, ConfidenceFull)
	if pct != 29 || generated {
		t.Errorf("25 points: pct=%d generated=%v, want 29/false", pct, generated)
	}

	// 26 clamped points is 30%, exactly at the threshold.
	at := []Finding{
		{Category: CategoryComment, Score: 20, Explanation: "a"},
		{Category: CategoryStructure, Score: 6, Explanation: "b"},
	}
	pct, generated, _, _ = aggregate(at, ConfidenceFull)
	if pct != 30 || !generated {
		t.Errorf("26 points: pct=%d generated=%v, want 30/true", pct, generated)
	}
}

func TestAggregateMonotonic(t *testing.T) {
	base := []Finding{
		{Category: CategoryNaming, Score: 10, Explanation: "a"},
	}
	pctBase, _, _, _ := aggregate(base, ConfidenceFull)

	more := append([]Finding{
		{Category: CategoryComplexity, Score: 4, Explanation: "b"},
	}, base...)
	pctMore, _, _, _ := aggregate(more, ConfidenceFull)

	if pctMore < pctBase {
		t.Errorf("adding a finding lowered the percentage: %d -> %d", pctBase, pctMore)
	}
}

func TestAggregateFullHouseIsHundredPercent(t *testing.T) {
	var findings []Finding
	for cat, limit := range categoryCaps {
		findings = append(findings, Finding{Category: cat, Score: limit + 5, Explanation: string(cat)})
	}
	pct, generated, _, _ := aggregate(findings, ConfidenceFull)
	if pct != 100 || !generated {
		t.Errorf("all caps hit: pct=%d generated=%v", pct, generated)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	findings := []Finding{
		{Category: CategoryComment, Score: 10, Explanation: "docs"},
		{Category: CategoryNaming, Score: 16, Explanation: "names"},
		{Category: CategorySemantic, Score: 8, Explanation: "patterns"},
		{Category: CategoryStructure, Score: 4, Explanation: "layout"},
		{Category: CategoryStyle, Score: 2, Explanation: "spacing"},
	}
	wantPct, wantGen, wantOrdered, wantSummary := aggregate(findings, ConfidenceFull)

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 10; trial++ {
		shuffled := make([]Finding, len(findings))
		copy(shuffled, findings)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		pct, gen, ordered, summary := aggregate(shuffled, ConfidenceFull)
		if pct != wantPct || gen != wantGen || summary != wantSummary {
			t.Fatalf("trial %d: result changed with input order", trial)
		}
		for i := range ordered {
			if ordered[i] != wantOrdered[i] {
				t.Fatalf("trial %d: finding order changed with input order", trial)
			}
		}
	}
}

func TestAggregateFindingsGroupedByCategory(t *testing.T) {
	findings := []Finding{
		{Category: CategoryStyle, Score: 2, Explanation: "spacing"},
		{Category: CategoryComment, Score: 10, Explanation: "docs"},
		{Category: CategoryComment, Score: 6, Explanation: "density"},
	}
	_, _, ordered, _ := aggregate(findings, ConfidenceFull)

	if len(ordered) != 3 {
		t.Fatalf("len = %d", len(ordered))
	}
	if ordered[0].Category != CategoryComment || ordered[2].Category != CategoryStyle {
		t.Error("findings should be grouped in fixed category order")
	}
	if ordered[0].Score < ordered[1].Score {
		t.Error("within a category, higher scores come first")
	}
}

func TestSummaryMentionsDegradedMode(t *testing.T) {
	_, _, _, summary := aggregate(nil, ConfidenceDegraded)
	if !strings.Contains(summary, "degraded") {
		t.Errorf("summary = %q, want degraded caveat", summary)
	}

	_, _, _, summary = aggregate(nil, ConfidenceFull)
	if strings.Contains(summary, "degraded") {
		t.Error("full-confidence summary must not mention degraded mode")
	}
}
