// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries patent sources and accumulates deduplicated
// candidate records for the enrichment stage.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/patent-corpus/pkg/types"
)

// Adapter searches a single patent source. Each adapter encapsulates one
// source's query construction and result extraction rules.
type Adapter interface {
	Name() string
	Source() types.Source
	Search(ctx context.Context, term string, cfg types.SearchConfig) ([]types.Candidate, error)
}

// CandidateSet is the dedup map from normalized patent number to the
// best-known candidate. The first occurrence of a number wins the slot;
// later occurrences from subsequent searches are discarded, not merged.
// Search-result metadata from a later duplicate find is assumed inferior
// to the eventual detail fetch, so it is not worth reconciling.
type CandidateSet struct {
	order    []string
	byNumber map[string]types.Candidate
}

// NewCandidateSet returns an empty candidate set.
func NewCandidateSet() *CandidateSet {
	return &CandidateSet{byNumber: make(map[string]types.Candidate)}
}

// Add inserts a candidate unless its number normalizes to empty or its
// normalized form is already present. Punctuation variants of the same
// number ("US123" and "US-123") occupy one slot. It reports whether the
// candidate took a new slot.
func (s *CandidateSet) Add(c types.Candidate) bool {
	key := types.NormalizeID(c.Number)
	if key == "" {
		return false
	}
	if _, ok := s.byNumber[key]; ok {
		return false
	}
	s.byNumber[key] = c
	s.order = append(s.order, c.Number)
	return true
}

// AddAll inserts each candidate in order and returns the number of
// duplicates discarded.
func (s *CandidateSet) AddAll(candidates []types.Candidate) int {
	discarded := 0
	for _, c := range candidates {
		if !s.Add(c) {
			discarded++
		}
	}
	return discarded
}

// Len returns the number of distinct candidates.
func (s *CandidateSet) Len() int { return len(s.order) }

// Numbers returns the patent numbers, as first seen, in insertion order.
func (s *CandidateSet) Numbers() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Get returns the candidate for a number, in any punctuation variant.
func (s *CandidateSet) Get(number string) (types.Candidate, bool) {
	c, ok := s.byNumber[types.NormalizeID(number)]
	return c, ok
}

// FormatTable writes candidates as a human-readable table to w.
func FormatTable(set *CandidateSet, w io.Writer) {
	if set.Len() == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-16s  %-60s  %s\n", "Rank", "Number", "Title", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, num := range set.Numbers() {
		c, _ := set.Get(num)
		title := c.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-16s  %-60s  %s\n", i+1, c.Number, title, c.Source)
	}
	fmt.Fprintf(w, "\n%d distinct patents\n", set.Len())
}

// FormatJSON writes candidates as indented JSON to w, in insertion order.
func FormatJSON(set *CandidateSet, w io.Writer) error {
	candidates := make([]types.Candidate, 0, set.Len())
	for _, num := range set.Numbers() {
		c, _ := set.Get(num)
		candidates = append(candidates, c)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(candidates)
}
