package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/patent-corpus/internal/httputil"
	"github.com/pdiddy/patent-corpus/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [terms...]",
	Short: "Run the search phase only and print the candidates",
	Long: `Search queries the patent sources for the given terms (or the built-in
vocabulary when none are given) and prints the deduplicated candidate
records without fetching details or writing the corpus.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("source", "all", "source to query: google, uspto, or all")
	searchCmd.Flags().Int("max-results", 0, "max results per term per source (default 20)")
	searchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	searchCmd.Flags().Bool("json", false, "output candidates as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := loadPipelineConfig()
	if v, _ := cmd.Flags().GetInt("max-results"); v > 0 {
		cfg.Search.MaxResults = v
	}
	if v, _ := cmd.Flags().GetDuration("timeout"); v > 0 {
		cfg.Search.Timeout = v
	}

	terms := args
	if len(terms) == 0 {
		terms = cfg.Terms
	}

	source, _ := cmd.Flags().GetString("source")
	client := httputil.NewClient(cfg.Search.HTTPConfig)

	var adapters []search.Adapter
	switch source {
	case "google":
		adapters = []search.Adapter{&search.GooglePatentsAdapter{Client: client, Log: os.Stderr}}
	case "uspto":
		adapters = []search.Adapter{&search.USPTOAdapter{Client: client}}
	case "all":
		adapters = []search.Adapter{
			&search.GooglePatentsAdapter{Client: client, Log: os.Stderr},
			&search.USPTOAdapter{Client: client},
		}
	default:
		return fmt.Errorf("unknown source %q: use google, uspto, or all", source)
	}

	ctx := context.Background()
	set := search.NewCandidateSet()

	for _, adapter := range adapters {
		for i, term := range terms {
			if i > 0 && cfg.Search.Delay > 0 {
				time.Sleep(cfg.Search.Delay)
			}
			candidates, err := adapter.Search(ctx, term, cfg.Search)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: %s search for %q failed: %v\n", adapter.Name(), term, err)
				continue
			}
			set.AddAll(candidates)
		}
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return search.FormatJSON(set, os.Stdout)
	}
	search.FormatTable(set, os.Stdout)
	return nil
}
