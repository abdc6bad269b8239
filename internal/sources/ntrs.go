// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pdiddy/bioengine/pkg/types"
)

// NTRSBackend queries the NASA Technical Reports Server search API.
type NTRSBackend struct {
	Client    *http.Client
	BaseURL   string
	UserAgent string
	Delay     time.Duration
}

// Name returns the backend identifier.
func (b *NTRSBackend) Name() types.Source { return types.SourceTechReports }

// Fetch queries NTRS and returns normalized publication records. NTRS serves
// either a flat result list or an Elasticsearch hits wrapper depending on
// deployment; both are handled. The index caps a page at 100 records.
func (b *NTRSBackend) Fetch(ctx context.Context, query string, limit int) ([]types.Record, error) {
	params := url.Values{
		"q":    {query},
		"size": {strconv.Itoa(clampLimit(limit, 20, 100))},
		"sort": {"_score desc, publication_date desc"},
	}

	data, err := getJSON(ctx, b.Client, b.UserAgent, b.BaseURL+"?"+params.Encode(), b.Name())
	if err != nil {
		return nil, err
	}

	publications := reportItems(data)
	records := make([]types.Record, 0, len(publications))
	for _, pub := range publications {
		records = append(records, NormalizeReport(pub))
	}

	pause(b.Delay)
	return records, nil
}
