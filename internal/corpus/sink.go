// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus persists enriched patent records in redundant output
// formats and builds the end-of-run report.
package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/patent-corpus/pkg/types"
)

const separator = "================================================================================"

// placeholder marks absent free-text fields in the flattened rendering,
// so downstream consumers always see the field.
const placeholder = "N/A"

// Sink writes each record to three representations (JSON snapshot,
// flattened text, corpus JSONL line) and tracks the in-run manifest of
// successfully persisted identifiers.
type Sink struct {
	cfg     types.SinkConfig
	log     io.Writer
	catalog *Catalog

	manifest   []string
	inManifest map[string]bool
}

// NewSink creates the output directory and opens the optional catalog.
// Failure to create the directory is fatal: no output sink is usable
// without it. Failure to open the catalog is only a warning.
func NewSink(cfg types.SinkConfig, log io.Writer) (*Sink, error) {
	if log == nil {
		log = io.Discard
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}

	s := &Sink{
		cfg:        cfg,
		log:        log,
		inManifest: make(map[string]bool),
	}

	if cfg.Catalog {
		catalog, err := OpenCatalog(cfg.OutputDir)
		if err != nil {
			fmt.Fprintf(log, "warning: catalog unavailable: %v\n", err)
		} else {
			s.catalog = catalog
		}
	}
	return s, nil
}

// Close releases the catalog connection, if any.
func (s *Sink) Close() error {
	if s.catalog == nil {
		return nil
	}
	return s.catalog.Close()
}

// Manifest returns the successfully persisted patent numbers in
// persistence order.
func (s *Sink) Manifest() []string {
	out := make([]string, len(s.manifest))
	copy(out, s.manifest)
	return out
}

// Persist writes the record to all three representations. A failure in
// one representation does not prevent attempting the others; each is
// logged individually. The identifier enters the manifest when at least
// one representation succeeded. Persist returns an error only when
// every representation failed.
func (s *Sink) Persist(rec types.PatentRecord) error {
	id := types.NormalizeID(rec.Number)
	if id == "" {
		return fmt.Errorf("patent number %q normalizes to empty", rec.Number)
	}

	// Set once, at persistence time.
	rec.DownloadTimestamp = time.Now()

	succeeded := 0
	for _, write := range []struct {
		kind string
		fn   func(types.PatentRecord, string) error
	}{
		{"json snapshot", s.writeSnapshot},
		{"text rendering", s.writeText},
		{"corpus line", s.appendCorpusLine},
	} {
		if err := write.fn(rec, id); err != nil {
			fmt.Fprintf(s.log, "error: %s for %s: %v\n", write.kind, rec.Number, err)
			continue
		}
		succeeded++
	}

	if succeeded == 0 {
		return fmt.Errorf("all representations failed for %s", rec.Number)
	}

	if !s.inManifest[rec.Number] {
		s.inManifest[rec.Number] = true
		s.manifest = append(s.manifest, rec.Number)
	}

	// Best-effort fourth representation.
	if s.catalog != nil {
		if err := s.catalog.Upsert(rec); err != nil {
			fmt.Fprintf(s.log, "warning: catalog upsert for %s: %v\n", rec.Number, err)
		}
	}

	fmt.Fprintf(s.log, "saved patent %s to corpus\n", rec.Number)
	return nil
}

// snapshot is the JSON representation: the full record plus the fixed
// training marker.
type snapshot struct {
	types.PatentRecord
	ProcessedForTraining bool `json:"processed_for_training"`
}

func (s *Sink) writeSnapshot(rec types.PatentRecord, id string) error {
	data, err := json.MarshalIndent(snapshot{PatentRecord: rec, ProcessedForTraining: true}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	return os.WriteFile(s.snapshotPath(id), append(data, '\n'), 0o644)
}

func (s *Sink) snapshotPath(id string) string {
	return filepath.Join(s.cfg.OutputDir, s.cfg.FilePrefix+"_"+id+".json")
}

// writeText renders the flattened training text. The field order,
// section headers, and separators are literal: downstream tooling
// parses this layout.
func (s *Sink) writeText(rec types.PatentRecord, id string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "PATENT NUMBER: %s\n", rec.Number)
	fmt.Fprintf(&b, "TITLE: %s\n", orPlaceholder(rec.Title))
	fmt.Fprintf(&b, "SOURCE: %s\n", orPlaceholder(string(rec.Source)))
	b.WriteString(separator + "\n")
	b.WriteString("ABSTRACT:\n")
	b.WriteString(orPlaceholder(rec.Abstract) + "\n\n")

	if len(rec.Inventors) > 0 {
		b.WriteString("INVENTORS:\n")
		for _, inv := range rec.Inventors {
			fmt.Fprintf(&b, "- %s\n", inv)
		}
		b.WriteString("\n")
	}
	if len(rec.Assignees) > 0 {
		b.WriteString("ASSIGNEES:\n")
		for _, as := range rec.Assignees {
			fmt.Fprintf(&b, "- %s\n", as)
		}
		b.WriteString("\n")
	}

	b.WriteString(separator + "\n")
	b.WriteString("DESCRIPTION:\n")
	b.WriteString(orPlaceholder(rec.Description) + "\n\n")

	if len(rec.Claims) > 0 {
		b.WriteString(separator + "\n")
		b.WriteString("CLAIMS:\n")
		for i, claim := range rec.Claims {
			fmt.Fprintf(&b, "Claim %d: %s\n\n", i+1, claim)
		}
	}

	path := filepath.Join(s.cfg.OutputDir, s.cfg.FilePrefix+"_"+id+".txt")
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// corpusEntry is one line of the shared JSONL corpus.
type corpusEntry struct {
	Text     string         `json:"text"`
	Metadata corpusMetadata `json:"metadata"`
}

type corpusMetadata struct {
	PatentNumber string `json:"patent_number"`
	Title        string `json:"title"`
	Source       string `json:"source"`
	Type         string `json:"type"`
}

// appendCorpusLine appends one self-contained JSON object to the shared
// corpus file. The whole line, newline included, goes through a single
// write so a crash mid-run never leaves a partial line that breaks
// line-based re-parsing of what was already written.
func (s *Sink) appendCorpusLine(rec types.PatentRecord, _ string) error {
	entry := corpusEntry{
		Text: fmt.Sprintf("Patent %s: %s. %s %s", rec.Number, rec.Title, rec.Abstract, rec.Description),
		Metadata: corpusMetadata{
			PatentNumber: rec.Number,
			Title:        rec.Title,
			Source:       string(rec.Source),
			Type:         s.cfg.FilePrefix,
		},
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling corpus entry: %w", err)
	}
	line = append(line, '\n')

	path := filepath.Join(s.cfg.OutputDir, s.cfg.FilePrefix+"s_corpus.jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening corpus file: %w", err)
	}
	_, writeErr := f.Write(line)
	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("appending corpus line: %w", writeErr)
	}
	return closeErr
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}
