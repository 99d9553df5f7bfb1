// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/pdiddy/patent-corpus/pkg/types"
)

// googlePatentsBase is the Google Patents search endpoint. Declared as a
// var so tests can substitute an httptest server.
var googlePatentsBase = "https://patents.google.com/"

// patentPathPattern extracts the patent number from a result link
// (e.g. "/patent/US9095554B2/en" -> "US9095554B2").
var patentPathPattern = regexp.MustCompile(`/patent/([^/]+)`)

// GooglePatentsAdapter queries the Google Patents web interface with a
// free-text query and extracts candidates from the result markup.
type GooglePatentsAdapter struct {
	Client *resty.Client

	// Log receives per-item warnings. Defaults to io.Discard.
	Log io.Writer
}

// Name returns the adapter identifier.
func (a *GooglePatentsAdapter) Name() string { return "google-patents" }

// Source returns the source tag stamped on candidates.
func (a *GooglePatentsAdapter) Source() types.Source { return types.SourceGooglePatents }

// Search issues one free-text query and parses the result page. A
// transport failure or non-success status is returned as an error; the
// caller logs it and continues with the next term.
func (a *GooglePatentsAdapter) Search(ctx context.Context, term string, cfg types.SearchConfig) ([]types.Candidate, error) {
	resp, err := a.Client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":       term,
			"country": "US",
			"type":    "PATENT",
		}).
		Get(googlePatentsBase)
	if err != nil {
		return nil, fmt.Errorf("Google Patents request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("Google Patents returned HTTP %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parsing Google Patents response: %w", err)
	}

	candidates := a.parseResults(doc)

	// Cap after parsing, preserving the source's relevance ordering.
	if cfg.MaxResults > 0 && len(candidates) > cfg.MaxResults {
		candidates = candidates[:cfg.MaxResults]
	}
	return candidates, nil
}

// parseResults extracts candidates from "article.result" nodes. A result
// item missing its link or number is skipped with a warning; one
// malformed item is never fatal to the whole response.
func (a *GooglePatentsAdapter) parseResults(doc *goquery.Document) []types.Candidate {
	var candidates []types.Candidate

	doc.Find("article.result").Each(func(i int, item *goquery.Selection) {
		href, ok := item.Find("h3 a").Attr("href")
		if !ok {
			a.warnf("result item %d: missing patent link, skipping\n", i)
			return
		}
		m := patentPathPattern.FindStringSubmatch(href)
		if m == nil {
			a.warnf("result item %d: no patent number in %q, skipping\n", i, href)
			return
		}

		candidates = append(candidates, types.Candidate{
			Number:    m[1],
			Title:     strings.TrimSpace(item.Find("h3").Text()),
			Abstract:  strings.TrimSpace(item.Find("div.snippet").Text()),
			SourceURL: "https://patents.google.com" + href,
			Source:    a.Source(),
		})
	})
	return candidates
}

func (a *GooglePatentsAdapter) warnf(format string, args ...any) {
	w := a.Log
	if w == nil {
		w = io.Discard
	}
	fmt.Fprintf(w, "warning: "+format, args...)
}
