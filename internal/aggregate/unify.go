// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"crypto/md5"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/bioengine/pkg/types"
)

// minDedupTitleLen is the minimum title length for a title to act as a dedup
// key. Shorter titles are too ambiguous to identify a record, so records
// carrying them bypass deduplication entirely and all survive.
const minDedupTitleLen = 10

// dedupHashLen truncates the title hash; 16 hex chars is plenty at this scale.
const dedupHashLen = 16

// Unify merges external records with local corpus records into one ranked
// list. External records keep their normalized scores; local records are
// forced to the local prior. Records are never mutated beyond the
// external/local tagging: the sort and truncate are the only ordering
// authority, and truncation happens after sorting so a better-ranked record
// from a later source can displace an earlier one.
func Unify(external types.AggregateResponse, local []types.Record, maxResults int) types.UnifiedResult {
	merged := make([]types.Record, 0, len(external.Records)+len(local))
	for _, r := range external.Records {
		r.IsExternal = true
		merged = append(merged, r)
	}
	for _, r := range local {
		r.IsExternal = false
		r.Source = types.SourceLocal
		r.RelevanceScore = types.LocalRelevance
		merged = append(merged, r)
	}

	merged = deduplicate(merged)

	// Pre-parse dates once; the comparator runs O(n log n) times.
	dates := make([]time.Time, len(merged))
	for i, r := range merged {
		dates[i] = ParseDate(r.Date)
	}
	order := make([]int, len(merged))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if merged[a].RelevanceScore != merged[b].RelevanceScore {
			return merged[a].RelevanceScore > merged[b].RelevanceScore
		}
		return dates[a].After(dates[b])
	})

	ranked := make([]types.Record, len(order))
	for i, idx := range order {
		ranked[i] = merged[idx]
	}

	if maxResults > 0 && len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}

	localCount := 0
	for _, r := range ranked {
		if !r.IsExternal {
			localCount++
		}
	}

	return types.UnifiedResult{
		Count:        len(ranked),
		Results:      ranked,
		NASASources:  external.SourcesQueried,
		LocalSources: localCount,
		Errors:       external.Errors,
	}
}

// deduplicate drops records whose title hash was already seen, keeping the
// first-inserted record. Titles at or below minDedupTitleLen never register
// a hash, so short-titled records are all kept.
func deduplicate(records []types.Record) []types.Record {
	seen := make(map[string]bool, len(records))
	unique := make([]types.Record, 0, len(records))
	for _, r := range records {
		title := strings.TrimSpace(strings.ToLower(r.Title))
		if len(title) > minDedupTitleLen {
			key := titleHash(title)
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		unique = append(unique, r)
	}
	return unique
}

func titleHash(normalizedTitle string) string {
	sum := fmt.Sprintf("%x", md5.Sum([]byte(normalizedTitle)))
	return sum[:dedupHashLen]
}

// dateLayouts are tried in order against the value truncated to layout
// length; the first match wins.
var dateLayouts = []string{
	"2006-01-02",
	"2006",
	"01/02/2006",
	"2006-01-02T15:04:05",
}

// ParseDate parses the free-form date strings sources report. Unparseable or
// absent dates return the zero time, which ranks last among descending-date
// ties; parsing never fails a request.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		v := s
		if len(v) > len(layout) {
			v = v[:len(layout)]
		}
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
