// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the patent-corpus pipeline.
package types

import (
	"strings"
	"time"
	"unicode"
)

// Source identifies which adapter produced a record.
type Source string

const (
	SourceGooglePatents Source = "Google Patents"
	SourceUSPTO         Source = "USPTO PatFT"
)

// Candidate is a partial patent record returned by a search adapter,
// prior to detail enrichment. Only Number and Title are guaranteed.
type Candidate struct {
	// Number is the source-assigned patent/publication number (e.g. "US9095554B2").
	Number string `json:"patent_number" yaml:"patent_number"`

	// Title is the patent title as shown in the search results.
	Title string `json:"title" yaml:"title"`

	// Abstract is the result snippet, when the source exposes one.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// SourceURL is the page the result links to.
	SourceURL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Source identifies the adapter that found this candidate.
	Source Source `json:"source" yaml:"source"`
}

// EnrichedFields holds the fields extracted from a patent detail page.
// Zero-valued fields mean the page did not expose them; the merge step
// never lets an absent field erase candidate data.
type EnrichedFields struct {
	Title       string            `json:"title,omitempty"`
	Abstract    string            `json:"abstract,omitempty"`
	Description string            `json:"description,omitempty"`
	Inventors   []string          `json:"inventors,omitempty"`
	Assignees   []string          `json:"assignees,omitempty"`
	Claims      []string          `json:"claims,omitempty"`
	Dates       map[string]string `json:"dates,omitempty"`
	SourceURL   string            `json:"url,omitempty"`
}

// PatentRecord is the unified record shape persisted by the corpus sink.
type PatentRecord struct {
	// Number is the natural key. Normalize it with NormalizeID before
	// using it as a storage-path component.
	Number string `json:"patent_number" yaml:"patent_number"`

	// Free-text fields marshal even when empty: downstream consumers of
	// the snapshot always see every field.
	Title       string `json:"title" yaml:"title"`
	Abstract    string `json:"abstract" yaml:"abstract"`
	Description string `json:"description" yaml:"description"`

	// Inventors and Assignees preserve source order; the order carries
	// no meaning. Claims order is significant: claim numbering derives
	// from position.
	Inventors []string `json:"inventors" yaml:"inventors"`
	Assignees []string `json:"assignees" yaml:"assignees"`
	Claims    []string `json:"claims" yaml:"claims"`

	// Dates maps a date kind ("publication", "filing", ...) to an ISO
	// date string. Sparse: only kinds present on the source page appear.
	Dates map[string]string `json:"dates" yaml:"dates"`

	Source    Source `json:"source" yaml:"source"`
	SourceURL string `json:"url" yaml:"url"`

	// DownloadTimestamp is set once at persistence time, never mutated.
	DownloadTimestamp time.Time `json:"download_timestamp" yaml:"download_timestamp"`
}

// FromCandidate builds a PatentRecord carrying only search-stage fields.
func FromCandidate(c Candidate) PatentRecord {
	return PatentRecord{
		Number:    c.Number,
		Title:     c.Title,
		Abstract:  c.Abstract,
		Source:    c.Source,
		SourceURL: c.SourceURL,
	}
}

// Merge applies enrichment on top of the record: present enrichment
// fields override, absent ones preserve the existing value.
func (r *PatentRecord) Merge(e EnrichedFields) {
	if e.Title != "" {
		r.Title = e.Title
	}
	if e.Abstract != "" {
		r.Abstract = e.Abstract
	}
	if e.Description != "" {
		r.Description = e.Description
	}
	if len(e.Inventors) > 0 {
		r.Inventors = e.Inventors
	}
	if len(e.Assignees) > 0 {
		r.Assignees = e.Assignees
	}
	if len(e.Claims) > 0 {
		r.Claims = e.Claims
	}
	if len(e.Dates) > 0 {
		if r.Dates == nil {
			r.Dates = make(map[string]string, len(e.Dates))
		}
		for kind, date := range e.Dates {
			r.Dates[kind] = date
		}
	}
	if e.SourceURL != "" {
		r.SourceURL = e.SourceURL
	}
}

// NormalizeID strips every non-alphanumeric rune from a patent number so
// it is safe as a storage-path component. Idempotent: normalizing twice
// equals normalizing once.
func NormalizeID(number string) string {
	var b strings.Builder
	for _, r := range number {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
