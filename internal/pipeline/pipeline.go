// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the four stages of a download in sequence:
// term enumeration, source search, detail enrichment, and corpus
// persistence. Everything is single-threaded; the only pauses are the
// fixed courtesy delays between requests.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/patent-corpus/internal/corpus"
	"github.com/pdiddy/patent-corpus/internal/enrich"
	"github.com/pdiddy/patent-corpus/internal/httputil"
	"github.com/pdiddy/patent-corpus/internal/search"
	"github.com/pdiddy/patent-corpus/pkg/types"
)

// engineSearcher is the search-engine adapter surface the pipeline uses.
type engineSearcher interface {
	Name() string
	Search(ctx context.Context, term string, cfg types.SearchConfig) ([]types.Candidate, error)
}

// govSearcher is the government-database adapter surface: free-text
// terms plus classification-code queries.
type govSearcher interface {
	Name() string
	Search(ctx context.Context, term string, cfg types.SearchConfig) ([]types.Candidate, error)
	SearchClassification(ctx context.Context, code string, cfg types.SearchConfig) ([]types.Candidate, error)
}

// detailFetcher is the enrichment surface.
type detailFetcher interface {
	FetchDetails(ctx context.Context, number string, cfg types.DetailConfig) (types.EnrichedFields, bool)
}

// Result summarizes a completed run.
type Result struct {
	Candidates int
	Duplicates int
	Enriched   int
	Persisted  int
	Failed     int
	Summary    corpus.Summary
}

// Pipeline owns the per-run state: configuration, log writer, and the
// stage clients. Construct one per run; there are no process-wide
// singletons.
type Pipeline struct {
	cfg types.PipelineConfig
	log io.Writer

	// Stage seams, built from config when nil.
	engine  engineSearcher
	gov     govSearcher
	fetcher detailFetcher
}

// New returns a pipeline for one run.
func New(cfg types.PipelineConfig, log io.Writer) *Pipeline {
	if log == nil {
		log = io.Discard
	}
	return &Pipeline{cfg: cfg, log: log}
}

// Run executes the full download. Individual term searches, detail
// fetches, and per-representation writes fail locally with a log line;
// the run always reaches Finalize. The only fatal error is an unusable
// output directory.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	fmt.Fprintln(p.log, "starting patent corpus download")

	set, duplicates := p.collectCandidates(ctx)
	fmt.Fprintf(p.log, "found %d unique patents\n", set.Len())

	sink, err := corpus.NewSink(p.cfg.Sink, p.log)
	if err != nil {
		return Result{}, err
	}
	defer sink.Close()

	result := Result{Candidates: set.Len(), Duplicates: duplicates}

	fetcher := p.fetcher
	if fetcher == nil {
		fetcher = &enrich.Fetcher{
			Client: httputil.NewClient(p.cfg.Detail.HTTPConfig),
			Log:    p.log,
		}
	}

	numbers := set.Numbers()
	for i, number := range numbers {
		if i > 0 && p.cfg.Detail.Delay > 0 {
			time.Sleep(p.cfg.Detail.Delay)
		}
		fmt.Fprintf(p.log, "processing patent %d/%d: %s\n", i+1, len(numbers), number)

		cand, _ := set.Get(number)
		rec := types.FromCandidate(cand)

		if fields, ok := fetcher.FetchDetails(ctx, number, p.cfg.Detail); ok {
			rec.Merge(fields)
			result.Enriched++
		}

		if err := sink.Persist(rec); err != nil {
			fmt.Fprintf(p.log, "error: persisting %s: %v\n", number, err)
			result.Failed++
			continue
		}
		result.Persisted++

		if (i+1)%10 == 0 {
			fmt.Fprintf(p.log, "progress: %d/%d patents processed\n", i+1, len(numbers))
		}
	}

	summary, err := sink.Finalize(p.cfg.Terms, p.cfg.Classifications)
	if err != nil {
		fmt.Fprintf(p.log, "error: finalizing report: %v\n", err)
	}
	result.Summary = summary

	fmt.Fprintf(p.log, "download complete: %d patents saved to %s\n",
		result.Persisted, p.cfg.Sink.OutputDir)
	return result, nil
}

// collectCandidates drives both adapters over the vocabulary in
// enumeration order: the search engine over every term, then the
// government database over the leading terms and the classification
// codes. Duplicate numbers keep their first-seen slot.
func (p *Pipeline) collectCandidates(ctx context.Context) (*search.CandidateSet, int) {
	engine := p.engine
	gov := p.gov
	if engine == nil || gov == nil {
		client := httputil.NewClient(p.cfg.Search.HTTPConfig)
		if engine == nil {
			engine = &search.GooglePatentsAdapter{Client: client, Log: p.log}
		}
		if gov == nil {
			gov = &search.USPTOAdapter{Client: client}
		}
	}

	set := search.NewCandidateSet()
	cfg := p.cfg.Search
	duplicates := 0

	for i, term := range p.cfg.Terms {
		if i > 0 && cfg.Delay > 0 {
			time.Sleep(cfg.Delay)
		}
		duplicates += p.searchInto(set, engine.Name(), term, func() ([]types.Candidate, error) {
			return engine.Search(ctx, term, cfg)
		})
	}

	govTerms := p.cfg.Terms
	if cfg.GovTermLimit > 0 && len(govTerms) > cfg.GovTermLimit {
		govTerms = govTerms[:cfg.GovTermLimit]
	}
	for i, term := range govTerms {
		if i > 0 && cfg.GovDelay > 0 {
			time.Sleep(cfg.GovDelay)
		}
		duplicates += p.searchInto(set, gov.Name(), term, func() ([]types.Candidate, error) {
			return gov.Search(ctx, term, cfg)
		})
	}
	for _, code := range p.cfg.Classifications {
		if cfg.GovDelay > 0 {
			time.Sleep(cfg.GovDelay)
		}
		duplicates += p.searchInto(set, gov.Name(), code, func() ([]types.Candidate, error) {
			return gov.SearchClassification(ctx, code, cfg)
		})
	}

	return set, duplicates
}

// searchInto runs one search call and folds its results into the set,
// returning the number of duplicates discarded. A failed search term
// must not abort the run: errors stop here with a log line and an
// empty contribution.
func (p *Pipeline) searchInto(set *search.CandidateSet, adapter, term string, do func() ([]types.Candidate, error)) int {
	fmt.Fprintf(p.log, "searching %s for: %s\n", adapter, term)
	candidates, err := do()
	if err != nil {
		fmt.Fprintf(p.log, "warning: %s search for %q failed: %v\n", adapter, term, err)
		return 0
	}
	discarded := set.AddAll(candidates)
	fmt.Fprintf(p.log, "found %d patents for %q (%d duplicates discarded)\n",
		len(candidates), term, discarded)
	return discarded
}
