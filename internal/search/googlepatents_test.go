// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"

	"github.com/pdiddy/patent-corpus/pkg/types"
)

const sampleGoogleResultsHTML = `<html><body>
<article class="result">
  <h3><a href="/patent/US9095554B2/en">Cannabis extract formulation</a></h3>
  <div class="snippet">A formulation comprising a cannabis extract.</div>
</article>
<article class="result">
  <h3><a href="/patent/US10123456B1/en">Hemp fiber processing</a></h3>
</article>
<article class="result">
  <h3><span>malformed item without a link</span></h3>
</article>
<article class="result">
  <h3><a href="/patent/US7654321B2/en">Cannabinoid delivery system</a></h3>
  <div class="snippet">Delivery of cannabinoids via transdermal patch.</div>
</article>
</body></html>`

func googleTestServer(t *testing.T, statusCode int, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func swapGoogleBase(t *testing.T, url string) {
	t.Helper()
	old := googlePatentsBase
	googlePatentsBase = url
	t.Cleanup(func() { googlePatentsBase = old })
}

func testSearchCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: "test-agent"},
		MaxResults: 20,
	}
}

func TestGooglePatentsSearch(t *testing.T) {
	ts := googleTestServer(t, http.StatusOK, sampleGoogleResultsHTML)
	swapGoogleBase(t, ts.URL)

	var warnings strings.Builder
	a := &GooglePatentsAdapter{Client: resty.New(), Log: &warnings}

	candidates, err := a.Search(context.Background(), "cannabis", testSearchCfg())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(candidates) != 3 {
		t.Fatalf("len(candidates) = %d, want 3 (malformed item skipped)", len(candidates))
	}

	c := candidates[0]
	if c.Number != "US9095554B2" {
		t.Errorf("Number = %q, want US9095554B2", c.Number)
	}
	if c.Title != "Cannabis extract formulation" {
		t.Errorf("Title = %q", c.Title)
	}
	if c.Abstract != "A formulation comprising a cannabis extract." {
		t.Errorf("Abstract = %q", c.Abstract)
	}
	if c.Source != types.SourceGooglePatents {
		t.Errorf("Source = %q", c.Source)
	}
	if c.SourceURL != "https://patents.google.com/patent/US9095554B2/en" {
		t.Errorf("SourceURL = %q", c.SourceURL)
	}

	// The snippet-less result still parses; only the link-less one is skipped.
	if candidates[1].Abstract != "" {
		t.Errorf("candidates[1].Abstract = %q, want empty", candidates[1].Abstract)
	}
	if !strings.Contains(warnings.String(), "skipping") {
		t.Errorf("expected a skip warning, got %q", warnings.String())
	}
}

// The cap applies after parsing so relevance order is preserved.
func TestGooglePatentsSearchMaxResults(t *testing.T) {
	ts := googleTestServer(t, http.StatusOK, sampleGoogleResultsHTML)
	swapGoogleBase(t, ts.URL)

	a := &GooglePatentsAdapter{Client: resty.New()}
	cfg := testSearchCfg()
	cfg.MaxResults = 2

	candidates, err := a.Search(context.Background(), "cannabis", cfg)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("len(candidates) = %d, want 2", len(candidates))
	}
	if candidates[0].Number != "US9095554B2" || candidates[1].Number != "US10123456B1" {
		t.Errorf("cap changed ordering: %v", candidates)
	}
}

func TestGooglePatentsSearchHTTPError(t *testing.T) {
	ts := googleTestServer(t, http.StatusServiceUnavailable, "down")
	swapGoogleBase(t, ts.URL)

	a := &GooglePatentsAdapter{Client: resty.New()}
	_, err := a.Search(context.Background(), "cannabis", testSearchCfg())
	if err == nil {
		t.Fatal("expected error on HTTP 503")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("err = %v, want status in message", err)
	}
}

func TestGooglePatentsSearchSendsQuery(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, "<html></html>")
	}))
	t.Cleanup(ts.Close)
	swapGoogleBase(t, ts.URL)

	a := &GooglePatentsAdapter{Client: resty.New()}
	if _, err := a.Search(context.Background(), "cannabis oil", testSearchCfg()); err != nil {
		t.Fatalf("Search: %v", err)
	}

	for _, want := range []string{"q=cannabis+oil", "country=US", "type=PATENT"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}
