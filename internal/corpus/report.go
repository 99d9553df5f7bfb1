// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/patent-corpus/pkg/types"
)

// Summary is the end-of-run report written to download_summary.json.
type Summary struct {
	DownloadDate        string     `json:"download_date"`
	TotalPatents        int        `json:"total_patents"`
	SearchTermsUsed     []string   `json:"search_terms_used"`
	ClassificationCodes []string   `json:"classification_codes"`
	OutputDirectory     string     `json:"output_directory"`
	DownloadedPatents   []string   `json:"downloaded_patents"`
	FilesCreated        FileCounts `json:"files_created"`
}

// FileCounts tallies the output files present in the output directory.
type FileCounts struct {
	JSONFiles  int    `json:"json_files"`
	TextFiles  int    `json:"text_files"`
	CorpusFile string `json:"corpus_file"`
}

// csvHeader is the fixed index header row.
var csvHeader = []string{"Patent Number", "Title", "Source", "Download Date"}

// Finalize writes the summary document and the CSV index from the
// manifest. Index rows are derived by re-reading each manifest entry's
// snapshot; an entry whose snapshot cannot be re-read (a prior persist
// failure) is skipped, not fatal.
func (s *Sink) Finalize(terms, classifications []string) (Summary, error) {
	summary := Summary{
		DownloadDate:        time.Now().Format(time.RFC3339),
		TotalPatents:        len(s.manifest),
		SearchTermsUsed:     terms,
		ClassificationCodes: classifications,
		OutputDirectory:     s.cfg.OutputDir,
		DownloadedPatents:   s.Manifest(),
		FilesCreated: FileCounts{
			JSONFiles:  countGlob(s.cfg.OutputDir, "*.json"),
			TextFiles:  countGlob(s.cfg.OutputDir, "*.txt"),
			CorpusFile: s.cfg.FilePrefix + "s_corpus.jsonl",
		},
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return summary, fmt.Errorf("marshaling summary: %w", err)
	}
	summaryPath := filepath.Join(s.cfg.OutputDir, "download_summary.json")
	if err := os.WriteFile(summaryPath, append(data, '\n'), 0o644); err != nil {
		fmt.Fprintf(s.log, "error: writing summary: %v\n", err)
	}

	if err := s.writeIndex(s.manifest); err != nil {
		fmt.Fprintf(s.log, "error: writing index: %v\n", err)
	}

	fmt.Fprintf(s.log, "created summary report: %d patents downloaded\n", len(s.manifest))
	return summary, nil
}

// writeIndex writes {prefix}s_index.csv with one row per readable
// snapshot among the given patent numbers.
func (s *Sink) writeIndex(numbers []string) error {
	path := filepath.Join(s.cfg.OutputDir, s.cfg.FilePrefix+"s_index.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating index file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing index header: %w", err)
	}

	for _, number := range numbers {
		snap, err := s.readSnapshot(types.NormalizeID(number))
		if err != nil {
			fmt.Fprintf(s.log, "warning: index row for %s skipped: %v\n", number, err)
			continue
		}
		row := []string{
			snap.Number,
			orPlaceholder(snap.Title),
			orPlaceholder(string(snap.Source)),
			snap.DownloadTimestamp.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing index row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// readSnapshot re-reads a persisted snapshot by normalized identifier.
func (s *Sink) readSnapshot(id string) (snapshot, error) {
	data, err := os.ReadFile(s.snapshotPath(id))
	if err != nil {
		return snapshot{}, err
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return snapshot{}, fmt.Errorf("parsing snapshot: %w", err)
	}
	return snap, nil
}

// RebuildIndex regenerates the CSV index from every snapshot present in
// the output directory, for recovering an index after an interrupted
// run. Returns the number of rows written.
func RebuildIndex(cfg types.SinkConfig, log io.Writer) (int, error) {
	if log == nil {
		log = io.Discard
	}
	s := &Sink{cfg: cfg, log: log}

	pattern := filepath.Join(cfg.OutputDir, cfg.FilePrefix+"_*.json")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return 0, fmt.Errorf("scanning snapshots: %w", err)
	}

	var numbers []string
	for _, path := range matches {
		snap, err := readSnapshotFile(path)
		if err != nil {
			fmt.Fprintf(log, "warning: skipping %s: %v\n", filepath.Base(path), err)
			continue
		}
		if snap.Number != "" {
			numbers = append(numbers, snap.Number)
		}
	}

	if err := s.writeIndex(numbers); err != nil {
		return 0, err
	}
	return len(numbers), nil
}

func readSnapshotFile(path string) (snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return snapshot{}, err
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return snapshot{}, fmt.Errorf("parsing snapshot: %w", err)
	}
	return snap, nil
}

func countGlob(dir, pattern string) int {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return 0
	}
	return len(matches)
}
