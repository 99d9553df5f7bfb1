// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich fetches patent detail pages and merges the extracted
// fields into candidate records.
package enrich

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/pdiddy/patent-corpus/pkg/types"
)

// googleDetailBase is the Google Patents detail page base URL. Declared
// as a var so tests can substitute an httptest server.
var googleDetailBase = "https://patents.google.com/patent/"

// Fetcher retrieves per-identifier detail pages.
type Fetcher struct {
	Client *resty.Client

	// Log receives warnings. Defaults to io.Discard.
	Log io.Writer
}

// FetchDetails fetches the detail page for a patent number and extracts
// the enrichment fields. The ok result is false when the page could not
// be fetched or parsed at all; the caller logs and keeps the candidate
// as-is. Field extraction is independent per field: a page without a
// claims section still yields title, abstract, and the rest.
func (f *Fetcher) FetchDetails(ctx context.Context, number string, cfg types.DetailConfig) (types.EnrichedFields, bool) {
	pageURL := googleDetailBase + number

	resp, err := f.Client.R().
		SetContext(ctx).
		Get(pageURL)
	if err != nil {
		f.warnf("detail fetch for %s: %v\n", number, err)
		return types.EnrichedFields{}, false
	}
	if resp.StatusCode() != http.StatusOK {
		f.warnf("detail fetch for %s: HTTP %d\n", number, resp.StatusCode())
		return types.EnrichedFields{}, false
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		f.warnf("detail fetch for %s: parsing page: %v\n", number, err)
		return types.EnrichedFields{}, false
	}

	return extractFields(doc, pageURL), true
}

// extractFields runs the per-field extractors. Each selector is an
// independent lookup; a missing section leaves that field zero-valued
// without affecting the others.
func extractFields(doc *goquery.Document, pageURL string) types.EnrichedFields {
	e := types.EnrichedFields{SourceURL: pageURL}

	e.Title = strings.TrimSpace(doc.Find("span[itemprop=title]").First().Text())
	e.Abstract = strings.TrimSpace(doc.Find("div.abstract").First().Text())
	e.Description = strings.TrimSpace(doc.Find("section[itemprop=description]").First().Text())

	doc.Find("dd[itemprop=inventor]").Each(func(_ int, s *goquery.Selection) {
		if name := strings.TrimSpace(s.Text()); name != "" {
			e.Inventors = append(e.Inventors, name)
		}
	})
	doc.Find("dd[itemprop=assignee]").Each(func(_ int, s *goquery.Selection) {
		if name := strings.TrimSpace(s.Text()); name != "" {
			e.Assignees = append(e.Assignees, name)
		}
	})

	// Every typed date on the page is captured under its raw kind label
	// ("publicationDate", "filingDate", priority kinds, and any kind the
	// page may add later).
	doc.Find("time[itemprop]").Each(func(_ int, s *goquery.Selection) {
		kind, _ := s.Attr("itemprop")
		value, _ := s.Attr("datetime")
		if kind != "" && value != "" {
			if e.Dates == nil {
				e.Dates = make(map[string]string)
			}
			e.Dates[kind] = value
		}
	})

	// Claims in document order: numbering derives from position.
	doc.Find("section[itemprop=claims] div.claim").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			e.Claims = append(e.Claims, text)
		}
	})

	return e
}

func (f *Fetcher) warnf(format string, args ...any) {
	w := f.Log
	if w == nil {
		w = io.Discard
	}
	fmt.Fprintf(w, "warning: "+format, args...)
}
