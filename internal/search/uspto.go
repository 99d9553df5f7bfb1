// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/pdiddy/patent-corpus/pkg/types"
)

// usptoBase is the USPTO PatFT query endpoint. Declared as a var so
// tests can substitute an httptest server.
var usptoBase = "https://patft.uspto.gov/netacgi/nph-Parser"

// usptoNumberPattern extracts the patent number from a result link's
// s1 parameter.
var usptoNumberPattern = regexp.MustCompile(`s1=(\d+)`)

// PatFT field codes for structured queries.
const (
	usptoFieldAbstract       = "ABST"
	usptoFieldClassification = "CCL"
)

// USPTOAdapter queries the USPTO PatFT web interface with a structured
// field query and extracts candidates from the result links.
type USPTOAdapter struct {
	Client *resty.Client
}

// Name returns the adapter identifier.
func (a *USPTOAdapter) Name() string { return "uspto-patft" }

// Source returns the source tag stamped on candidates.
func (a *USPTOAdapter) Source() types.Source { return types.SourceUSPTO }

// Search queries PatFT for the term against patent abstracts.
func (a *USPTOAdapter) Search(ctx context.Context, term string, cfg types.SearchConfig) ([]types.Candidate, error) {
	return a.searchField(ctx, term, usptoFieldAbstract, cfg)
}

// SearchClassification queries PatFT for a CPC classification code.
func (a *USPTOAdapter) SearchClassification(ctx context.Context, code string, cfg types.SearchConfig) ([]types.Candidate, error) {
	return a.searchField(ctx, code, usptoFieldClassification, cfg)
}

func (a *USPTOAdapter) searchField(ctx context.Context, term, field string, cfg types.SearchConfig) ([]types.Candidate, error) {
	resp, err := a.Client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"Sect1":  "PTO2",
			"Sect2":  "HITOFF",
			"p":      "1",
			"u":      "/netahtml/PTO/search-bool.html",
			"r":      "0",
			"f":      "S",
			"l":      "50",
			"TERM1":  term,
			"FIELD1": field,
			"co1":    "AND",
			"d":      "PTXT",
		}).
		Get(usptoBase)
	if err != nil {
		return nil, fmt.Errorf("USPTO PatFT request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("USPTO PatFT returned HTTP %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parsing USPTO PatFT response: %w", err)
	}

	candidates := a.parseResults(doc)

	if cfg.MaxResults > 0 && len(candidates) > cfg.MaxResults {
		candidates = candidates[:cfg.MaxResults]
	}
	return candidates, nil
}

// parseResults extracts candidates from the hit-list links. PatFT marks
// per-patent links with Sect1=PTO1 and carries the number in s1; links
// without a parseable number are not patent hits and are ignored.
func (a *USPTOAdapter) parseResults(doc *goquery.Document) []types.Candidate {
	var candidates []types.Candidate

	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if !strings.Contains(href, "/netacgi/nph-Parser") || !strings.Contains(href, "Sect1=PTO1") {
			return
		}
		m := usptoNumberPattern.FindStringSubmatch(href)
		if m == nil {
			return
		}

		candidates = append(candidates, types.Candidate{
			Number:    m[1],
			Title:     strings.TrimSpace(link.Text()),
			SourceURL: "https://patft.uspto.gov" + href,
			Source:    a.Source(),
		})
	})
	return candidates
}

var _ Adapter = (*USPTOAdapter)(nil)
var _ Adapter = (*GooglePatentsAdapter)(nil)
