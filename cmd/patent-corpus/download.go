package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/patent-corpus/internal/pipeline"
	"github.com/pdiddy/patent-corpus/internal/search"
)

const defaultLogFile = "patent_download.log"

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Run the full download pipeline",
	Long: `Download searches both sources for every term in the vocabulary,
deduplicates the results by patent number, fetches each patent's detail
page, and persists every record to the corpus output directory in three
formats. It finishes by writing a summary report and a CSV index.

Individual failures (a term's search, a detail fetch, one output file)
are logged and skipped; the run always produces a summary reflecting
whatever subset of work succeeded.`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().String("output-dir", "", "corpus output directory (default data/corpus)")
	downloadCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	downloadCmd.Flags().Duration("search-delay", 0, "pause after each search-engine request (default 2s)")
	downloadCmd.Flags().Duration("gov-delay", 0, "pause after each government-database request (default 3s)")
	downloadCmd.Flags().Duration("detail-delay", 0, "pause after each detail fetch (default 1s)")
	downloadCmd.Flags().Int("max-results", 0, "max results per term per source (default 20)")
	downloadCmd.Flags().String("terms-file", "", "YAML file overriding the built-in vocabulary")
	downloadCmd.Flags().String("log-file", defaultLogFile, "log file (progress also goes to stderr)")
	downloadCmd.Flags().Bool("no-catalog", false, "disable the SQLite catalog")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg := loadPipelineConfig()

	if v, _ := cmd.Flags().GetString("output-dir"); v != "" {
		cfg.Sink.OutputDir = v
	}
	if v, _ := cmd.Flags().GetDuration("timeout"); v > 0 {
		cfg.Search.Timeout = v
		cfg.Detail.Timeout = v
	}
	if v, _ := cmd.Flags().GetDuration("search-delay"); v > 0 {
		cfg.Search.Delay = v
	}
	if v, _ := cmd.Flags().GetDuration("gov-delay"); v > 0 {
		cfg.Search.GovDelay = v
	}
	if v, _ := cmd.Flags().GetDuration("detail-delay"); v > 0 {
		cfg.Detail.Delay = v
	}
	if v, _ := cmd.Flags().GetInt("max-results"); v > 0 {
		cfg.Search.MaxResults = v
	}
	if noCatalog, _ := cmd.Flags().GetBool("no-catalog"); noCatalog {
		cfg.Sink.Catalog = false
	}

	if path, _ := cmd.Flags().GetString("terms-file"); path != "" {
		tf, err := search.LoadTermFile(path)
		if err != nil {
			return err
		}
		search.ApplyTermFile(&cfg, tf)
	}

	log, closeLog := openLog(cmd)
	defer closeLog()

	result, err := pipeline.New(cfg, log).Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "\n%d candidates, %d duplicates discarded, %d enriched, %d persisted, %d failed\n",
		result.Candidates+result.Duplicates, result.Duplicates, result.Enriched, result.Persisted, result.Failed)
	return nil
}

// openLog returns a writer that duplicates progress to stderr and the
// log file. An unopenable log file degrades to stderr-only with a
// warning; the log stream is informational, never fatal.
func openLog(cmd *cobra.Command) (io.Writer, func()) {
	path, _ := cmd.Flags().GetString("log-file")
	if path == "" {
		return os.Stderr, func() {}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v\n", path, err)
		return os.Stderr, func() {}
	}
	return io.MultiWriter(os.Stderr, f), func() { f.Close() }
}
