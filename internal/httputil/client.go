// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"github.com/go-resty/resty/v2"

	"github.com/pdiddy/patent-corpus/pkg/types"
)

// NewClient builds a resty client with the shared header set and the
// fixed per-request timeout. Both sources serve browser-oriented HTML,
// so the headers mirror what a browser sends. A request timeout is
// treated identically to any other fetch failure by callers: skip and
// continue.
func NewClient(cfg types.HTTPConfig) *resty.Client {
	client := resty.New()
	client.SetHeader("User-Agent", cfg.UserAgent)
	client.SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	client.SetHeader("Accept-Language", "en-US,en;q=0.5")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return client
}
