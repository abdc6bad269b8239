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

// NSLSLBackend queries the NASA Space Life Sciences Library. The library is
// served from the same backing index as NTRS, so responses share the report
// shapes; this backend is a second view with its own query parameters and
// normalization.
type NSLSLBackend struct {
	Client    *http.Client
	BaseURL   string
	UserAgent string
	Delay     time.Duration
}

// Name returns the backend identifier.
func (b *NSLSLBackend) Name() types.Source { return types.SourceExperiments }

// Fetch queries NSLSL and returns normalized experiment records. The library
// caps a page at 50 documents.
func (b *NSLSLBackend) Fetch(ctx context.Context, query string, limit int) ([]types.Record, error) {
	params := url.Values{
		"q":        {query},
		"format":   {"json"},
		"limit":    {strconv.Itoa(clampLimit(limit, 20, 50))},
		"category": {"space-life-sciences"},
	}

	data, err := getJSON(ctx, b.Client, b.UserAgent, b.BaseURL+"?"+params.Encode(), b.Name())
	if err != nil {
		return nil, err
	}

	experiments := reportItems(data)
	if experiments == nil {
		experiments = itemList(data, "documents")
	}

	records := make([]types.Record, 0, len(experiments))
	for _, exp := range experiments {
		records = append(records, NormalizeExperiment(exp))
	}

	pause(b.Delay)
	return records, nil
}
