// Package engine coordinates detection with the result cache and analysis
// history. Identical concurrent requests are collapsed so the analyzers run
// once per distinct input.
package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"aidetect/internal/detect"
	"aidetect/internal/storage"
)

// Analyzer is the detection core the engine drives.
type Analyzer interface {
	Analyze(ctx context.Context, req detect.Request) *detect.AnalysisResult
	AnalyzeMany(ctx context.Context, reqs []detect.Request) ([]*detect.AnalysisResult, error)
}

// Store is the persistence surface the engine uses. A nil store disables
// caching and history without changing analysis behavior.
type Store interface {
	GetResult(ctx context.Context, key string) (*detect.AnalysisResult, error)
	PutResult(ctx context.Context, key string, res *detect.AnalysisResult, ttl time.Duration) error
	InsertAnalysis(ctx context.Context, res *detect.AnalysisResult, sizeBytes int) (string, error)
}

var _ Store = (*storage.DB)(nil)

// Engine is safe for concurrent use.
type Engine struct {
	detector Analyzer
	store    Store
	cacheTTL time.Duration
	group    singleflight.Group
	log      zerolog.Logger
}

// New builds an engine. store may be nil.
func New(detector Analyzer, store Store, cacheTTL time.Duration, log zerolog.Logger) *Engine {
	return &Engine{
		detector: detector,
		store:    store,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// Analyze scores one request, serving repeats from the cache. Every call is
// recorded in history, cache hits included. Cache and history failures are
// logged and never fail the analysis.
func (e *Engine) Analyze(ctx context.Context, req detect.Request) (*detect.AnalysisResult, error) {
	// The result depends on the resolved language as well as the text, so
	// the language hint is part of the key while the fingerprint stays
	// content-only.
	key := req.Language + ":" + detect.Fingerprint(req.Code)

	v, err, shared := e.group.Do(key, func() (interface{}, error) {
		if e.store != nil {
			if cached, err := e.store.GetResult(ctx, key); err != nil {
				e.log.Warn().Err(err).Msg("cache read failed")
			} else if cached != nil {
				cached.Filename = req.Filename
				return cached, nil
			}
		}

		res := e.detector.Analyze(ctx, req)

		if e.store != nil {
			if err := e.store.PutResult(ctx, key, res, e.cacheTTL); err != nil {
				e.log.Warn().Err(err).Msg("cache write failed")
			}
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	res := v.(*detect.AnalysisResult)
	if shared {
		e.log.Debug().Str("fingerprint", res.Fingerprint).Msg("collapsed duplicate analysis")
	}

	e.record(ctx, res, len(req.Code))
	return res, nil
}

// AnalyzeMany scores a batch and records each entry in history. Batch
// entries bypass the singleflight group; the detector already bounds its
// own parallelism.
func (e *Engine) AnalyzeMany(ctx context.Context, reqs []detect.Request) ([]*detect.AnalysisResult, error) {
	results, err := e.detector.AnalyzeMany(ctx, reqs)
	if err != nil {
		return nil, err
	}
	for i, res := range results {
		e.record(ctx, res, len(reqs[i].Code))
	}
	return results, nil
}

func (e *Engine) record(ctx context.Context, res *detect.AnalysisResult, sizeBytes int) {
	if e.store == nil {
		return
	}
	if _, err := e.store.InsertAnalysis(ctx, res, sizeBytes); err != nil {
		e.log.Warn().Err(err).Msg("history insert failed")
	}
}
