// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources integrates the external NASA data APIs. Each backend knows
// how to build one outbound query, decode one vendor JSON shape, and emit
// normalized records. Backends never decide retry or aggregation policy; the
// fan-out coordinator owns timeouts and failure handling.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pdiddy/bioengine/pkg/types"
)

// Adapter searches a single external API. Each backend implements this
// interface per the Strategy pattern.
type Adapter interface {
	Name() types.Source
	Fetch(ctx context.Context, query string, limit int) ([]types.Record, error)
}

// DefaultAdapters constructs the four production backends against the
// configured endpoints, sharing one HTTP client.
func DefaultAdapters(client *http.Client, cfg types.SourcesConfig) []Adapter {
	return []Adapter{
		&OSDRBackend{Client: client, BaseURL: cfg.OSDRMainURL, UserAgent: cfg.UserAgent, Delay: cfg.RateLimitDelay},
		&OpenDataBackend{Client: client, BaseURL: cfg.OpenDataURL, UserAgent: cfg.UserAgent, Delay: cfg.RateLimitDelay},
		&NTRSBackend{Client: client, BaseURL: cfg.NTRSURL, UserAgent: cfg.UserAgent, Delay: cfg.RateLimitDelay},
		&NSLSLBackend{Client: client, BaseURL: cfg.NSLSLURL, UserAgent: cfg.UserAgent, Delay: cfg.RateLimitDelay},
	}
}

// getJSON performs a GET against rawURL and decodes the body into a generic
// tree. Vendor payloads stay untyped until the normalizer maps them; no
// vendor shape leaks past this package.
func getJSON(ctx context.Context, client *http.Client, userAgent, rawURL string, name types.Source) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", name.DisplayName(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s returned HTTP %d", name.DisplayName(), resp.StatusCode)
	}

	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", name.DisplayName(), err)
	}
	return data, nil
}

// itemList returns the first present list under keys, keeping only items that
// are JSON objects. Unparseable items are skipped, never fatal.
func itemList(data map[string]any, keys ...string) []map[string]any {
	for _, k := range keys {
		raw, ok := data[k].([]any)
		if !ok {
			continue
		}
		var out []map[string]any
		for _, item := range raw {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

// reportItems handles the two shapes the NTRS index serves: a flat "results"
// list, or an Elasticsearch hits wrapper with the record under "_source".
func reportItems(data map[string]any) []map[string]any {
	if out := itemList(data, "results"); out != nil {
		return out
	}

	hits, ok := data["hits"].(map[string]any)
	if !ok {
		return nil
	}
	inner, ok := hits["hits"].([]any)
	if !ok {
		return nil
	}
	var out []map[string]any
	for _, item := range inner {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if src, ok := m["_source"].(map[string]any); ok {
			out = append(out, src)
		} else {
			out = append(out, m)
		}
	}
	return out
}

// clampLimit applies the source's own maximum to the caller's soft cap.
func clampLimit(limit, fallback, max int) int {
	if limit <= 0 {
		limit = fallback
	}
	if limit > max {
		return max
	}
	return limit
}

// pause applies the rate-limit courtesy delay after a successful call.
func pause(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
