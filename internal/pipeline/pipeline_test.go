// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/patent-corpus/pkg/types"
)

// --- stage fakes ---

type fakeEngine struct {
	byTerm map[string][]types.Candidate
	calls  []string
}

func (f *fakeEngine) Name() string { return "fake-engine" }

func (f *fakeEngine) Search(_ context.Context, term string, _ types.SearchConfig) ([]types.Candidate, error) {
	f.calls = append(f.calls, term)
	return f.byTerm[term], nil
}

type failingGov struct{ calls int }

func (f *failingGov) Name() string { return "fake-gov" }

func (f *failingGov) Search(context.Context, string, types.SearchConfig) ([]types.Candidate, error) {
	f.calls++
	return nil, fmt.Errorf("connection refused")
}

func (f *failingGov) SearchClassification(context.Context, string, types.SearchConfig) ([]types.Candidate, error) {
	f.calls++
	return nil, fmt.Errorf("connection refused")
}

type fakeFetcher struct {
	fields map[string]types.EnrichedFields
}

func (f *fakeFetcher) FetchDetails(_ context.Context, number string, _ types.DetailConfig) (types.EnrichedFields, bool) {
	e, ok := f.fields[number]
	return e, ok
}

func testPipelineCfg(t *testing.T, terms []string) types.PipelineConfig {
	t.Helper()
	cfg := types.DefaultPipelineConfig()
	cfg.Terms = terms
	cfg.Classifications = []string{"A61K31/05"}
	cfg.Search.Delay = 0
	cfg.Search.GovDelay = 0
	cfg.Detail.Delay = 0
	cfg.Sink.OutputDir = t.TempDir()
	cfg.Sink.Catalog = false
	return cfg
}

// Two terms return the same patent number with different titles: the
// first occurrence wins the slot, enrichment adds the abstract, and the
// summary counts exactly one patent.
func TestRunDedupAndMerge(t *testing.T) {
	cfg := testPipelineCfg(t, []string{"cannabis", "hemp"})

	p := New(cfg, io.Discard)
	p.engine = &fakeEngine{byTerm: map[string][]types.Candidate{
		"cannabis": {{Number: "US123", Title: "Cannabis Extract", Source: types.SourceGooglePatents}},
		"hemp":     {{Number: "US123", Title: "Hemp Fiber", Source: types.SourceGooglePatents}},
	}}
	p.gov = &failingGov{}
	p.fetcher = &fakeFetcher{fields: map[string]types.EnrichedFields{
		"US123": {Abstract: "An extract of cannabis sativa."},
	}}

	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Candidates != 1 {
		t.Errorf("Candidates = %d, want 1", result.Candidates)
	}
	if result.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", result.Duplicates)
	}
	if result.Enriched != 1 || result.Persisted != 1 || result.Failed != 0 {
		t.Errorf("result = %+v", result)
	}
	if result.Summary.TotalPatents != 1 {
		t.Errorf("Summary.TotalPatents = %d, want 1", result.Summary.TotalPatents)
	}

	data, err := os.ReadFile(filepath.Join(cfg.Sink.OutputDir, "cannabis_patent_US123.json"))
	if err != nil {
		t.Fatalf("snapshot missing: %v", err)
	}
	var snap struct {
		Title    string `json:"title"`
		Abstract string `json:"abstract"`
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Title != "Cannabis Extract" {
		t.Errorf("Title = %q, want the first occurrence", snap.Title)
	}
	if snap.Abstract != "An extract of cannabis sativa." {
		t.Errorf("Abstract = %q, want the enrichment", snap.Abstract)
	}
}

// A source that fails on every request only costs its own results; the
// run still persists what the other source found and reaches Finalize.
func TestRunSurvivesFailingSource(t *testing.T) {
	cfg := testPipelineCfg(t, []string{"cannabis"})

	var log strings.Builder
	gov := &failingGov{}
	p := New(cfg, &log)
	p.engine = &fakeEngine{byTerm: map[string][]types.Candidate{
		"cannabis": {{Number: "US123", Title: "Cannabis Extract", Source: types.SourceGooglePatents}},
	}}
	p.gov = gov
	p.fetcher = &fakeFetcher{}

	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Persisted != 1 {
		t.Errorf("Persisted = %d, want 1", result.Persisted)
	}
	// One term plus one classification code went to the gov adapter.
	if gov.calls != 2 {
		t.Errorf("gov calls = %d, want 2", gov.calls)
	}
	if !strings.Contains(log.String(), "fake-gov search") {
		t.Errorf("log = %q, want the failed searches reported", log.String())
	}
	if _, err := os.Stat(filepath.Join(cfg.Sink.OutputDir, "download_summary.json")); err != nil {
		t.Errorf("summary missing: %v", err)
	}
}

// An absent detail page keeps the candidate fields.
func TestRunEnrichmentAbsent(t *testing.T) {
	cfg := testPipelineCfg(t, []string{"cannabis"})

	p := New(cfg, io.Discard)
	p.engine = &fakeEngine{byTerm: map[string][]types.Candidate{
		"cannabis": {{Number: "US123", Title: "Cannabis Extract", Abstract: "snippet", Source: types.SourceGooglePatents}},
	}}
	p.gov = &failingGov{}
	p.fetcher = &fakeFetcher{} // knows no patents

	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Enriched != 0 || result.Persisted != 1 {
		t.Errorf("result = %+v", result)
	}

	data, err := os.ReadFile(filepath.Join(cfg.Sink.OutputDir, "cannabis_patent_US123.json"))
	if err != nil {
		t.Fatal(err)
	}
	var snap struct {
		Title    string `json:"title"`
		Abstract string `json:"abstract"`
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Title != "Cannabis Extract" || snap.Abstract != "snippet" {
		t.Errorf("snapshot = %+v, want candidate fields preserved", snap)
	}
}

// The gov term limit caps how much of the vocabulary reaches the
// government database.
func TestRunGovTermLimit(t *testing.T) {
	cfg := testPipelineCfg(t, []string{"a", "b", "c", "d"})
	cfg.Search.GovTermLimit = 2
	cfg.Classifications = nil

	gov := &failingGov{}
	p := New(cfg, io.Discard)
	p.engine = &fakeEngine{byTerm: map[string][]types.Candidate{}}
	p.gov = gov
	p.fetcher = &fakeFetcher{}

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if gov.calls != 2 {
		t.Errorf("gov calls = %d, want 2", gov.calls)
	}
}

// An unusable output directory is the one fatal error.
func TestRunFatalOutputDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := testPipelineCfg(t, []string{"cannabis"})
	cfg.Sink.OutputDir = filepath.Join(blocker, "corpus")

	p := New(cfg, io.Discard)
	p.engine = &fakeEngine{byTerm: map[string][]types.Candidate{}}
	p.gov = &failingGov{}
	p.fetcher = &fakeFetcher{}

	if _, err := p.Run(context.Background()); err == nil {
		t.Fatal("expected error for unusable output directory")
	}
}
