// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate fans a search query out to the external source adapters,
// joins their outcomes without letting one failure abort the others, caches
// aggregate responses, and merges external results with the local corpus
// into a single ranked list.
package aggregate

import (
	"context"
	"crypto/md5"
	"fmt"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/bioengine/internal/sources"
	"github.com/pdiddy/bioengine/pkg/types"
)

// probeTimeout bounds each connectivity check independently of the
// configured fetch timeout.
const probeTimeout = 10 * time.Second

// Aggregator coordinates the external source adapters. It is constructed
// explicitly and injected into handlers; it owns the result cache and the
// shared timeout policy.
type Aggregator struct {
	adapters []sources.Adapter
	cache    *gocache.Cache
	cfg      types.SourcesConfig
	log      *logrus.Logger
}

// New builds an Aggregator over the given adapters. Cached responses expire
// after cfg.CacheTTL; there is no size bound beyond TTL eviction.
func New(adapters []sources.Adapter, cfg types.SourcesConfig, log *logrus.Logger) *Aggregator {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	if log == nil {
		log = logrus.New()
	}
	return &Aggregator{
		adapters: adapters,
		cache:    gocache.New(ttl, ttl),
		cfg:      cfg,
		log:      log,
	}
}

// outcome is one adapter's slot in a fan-out. Slots are joined only after
// every adapter finishes, so no locking is needed around them.
type outcome struct {
	source  types.Source
	records []types.Record
	err     error
}

// Fetch runs the query against all adapters concurrently and returns the
// joined response. A cached response within the TTL is returned unchanged.
// Individual adapter failures become entries in Errors; they never cancel
// sibling adapters. If every adapter fails the response simply has no
// records, which is not an error for the caller.
func (a *Aggregator) Fetch(ctx context.Context, query string, limit int) types.AggregateResponse {
	if limit <= 0 {
		limit = a.cfg.MaxResults
	}

	key := cacheKey(query, limit)
	if cached, ok := a.cache.Get(key); ok {
		a.log.WithField("query", query).Debug("returning cached aggregate response")
		return cached.(types.AggregateResponse)
	}

	slots := make([]outcome, len(a.adapters))
	var wg sync.WaitGroup
	for i, ad := range a.adapters {
		wg.Add(1)
		go func(i int, ad sources.Adapter) {
			defer wg.Done()
			callCtx := ctx
			if a.cfg.Timeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
				defer cancel()
			}
			records, err := ad.Fetch(callCtx, query, limit)
			slots[i] = outcome{source: ad.Name(), records: records, err: err}
		}(i, ad)
	}
	wg.Wait()

	resp := types.AggregateResponse{
		Records:        make([]types.Record, 0),
		SourcesQueried: make([]types.Source, 0, len(slots)),
		Errors:         make([]string, 0),
	}
	for _, o := range slots {
		if o.err != nil {
			msg := fmt.Sprintf("%s: %v", o.source, o.err)
			resp.Errors = append(resp.Errors, msg)
			a.log.WithField("source", o.source).Warnf("source fetch failed: %v", o.err)
			continue
		}
		resp.SourcesQueried = append(resp.SourcesQueried, o.source)
		resp.Records = append(resp.Records, o.records...)
	}
	resp.ExternalCount = len(resp.Records)

	a.cache.Set(key, resp, gocache.DefaultExpiration)

	a.log.WithFields(logrus.Fields{
		"query":   query,
		"records": resp.ExternalCount,
		"sources": len(resp.SourcesQueried),
	}).Info("aggregate fetch complete")
	return resp
}

// Probe checks each source for basic connectivity with a one-result query.
func (a *Aggregator) Probe(ctx context.Context) map[string]types.ProbeResult {
	results := make(map[string]types.ProbeResult, len(a.adapters))
	for _, ad := range a.adapters {
		callCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		_, err := ad.Fetch(callCtx, "microgravity", 1)
		cancel()
		if err != nil {
			results[string(ad.Name())] = types.ProbeResult{Status: "error", Message: err.Error()}
			continue
		}
		results[string(ad.Name())] = types.ProbeResult{Status: "success", Message: "API accessible"}
	}
	return results
}

// cacheKey content-addresses a request by its normalized query and limit.
func cacheKey(query string, limit int) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	return fmt.Sprintf("%x", md5.Sum(fmt.Appendf(nil, "%s_%d", normalized, limit)))
}
