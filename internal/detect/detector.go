package detect

import (
	"context"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"aidetect/internal/profile"
	"aidetect/internal/source"
)

// Detector runs the full analysis pipeline. It is stateless apart from the
// grammar checker and safe for concurrent use.
type Detector struct {
	analyzers []analyzer

	// Concurrency bounds AnalyzeMany's parallelism. Zero means one
	// worker per CPU.
	Concurrency int
}

// NewDetector wires the six category analyzers. A nil grammar checker
// disables comment prose checking.
func NewDetector(grammar GrammarChecker) *Detector {
	if grammar == nil {
		grammar = NopGrammarChecker{}
	}
	return &Detector{
		analyzers: []analyzer{
			commentAnalyzer{grammar: grammar},
			namingAnalyzer{},
			semanticAnalyzer{},
			structureAnalyzer{},
			complexityAnalyzer{},
			styleAnalyzer{},
		},
	}
}

// Analyze scores one source unit. It never returns an error: empty input
// yields a zero result, unknown languages and parse failures degrade
// confidence instead of failing.
func (d *Detector) Analyze(ctx context.Context, req Request) *AnalysisResult {
	p := profile.Resolve(req.Language, req.Filename)

	result := &AnalysisResult{
		Fingerprint: Fingerprint(req.Code),
		Language:    p.Name,
		Filename:    req.Filename,
		Confidence:  ConfidenceFull,
	}

	if strings.TrimSpace(req.Code) == "" {
		result.Summary = "No generation signals found (0%). Input is empty."
		if p.Generic {
			result.Confidence = ConfidenceDegraded
		}
		return result
	}

	u := source.Parse(ctx, req.Code, p)
	if u.Degraded() {
		result.Confidence = ConfidenceDegraded
	}

	perAnalyzer := make([][]Finding, len(d.analyzers))
	var wg sync.WaitGroup
	for i, a := range d.analyzers {
		wg.Add(1)
		go func(i int, a analyzer) {
			defer wg.Done()
			perAnalyzer[i] = a.Analyze(u)
		}(i, a)
	}
	wg.Wait()

	var findings []Finding
	for _, fs := range perAnalyzer {
		findings = append(findings, fs...)
	}

	result.Percentage, result.AIGenerated, result.Findings, result.Summary =
		aggregate(findings, result.Confidence)
	return result
}

// AnalyzeMany scores a batch concurrently. Results keep request order. The
// context cancels remaining work; partially built results are discarded on
// cancellation.
func (d *Detector) AnalyzeMany(ctx context.Context, reqs []Request) ([]*AnalysisResult, error) {
	results := make([]*AnalysisResult, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.batchLimit())
	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = d.Analyze(ctx, req)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (d *Detector) batchLimit() int {
	if d.Concurrency > 0 {
		return d.Concurrency
	}
	return runtime.NumCPU()
}
