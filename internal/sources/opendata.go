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

// OpenDataBackend queries the NASA Open Data Portal through its CKAN
// package_search API.
type OpenDataBackend struct {
	Client    *http.Client
	BaseURL   string
	UserAgent string
	Delay     time.Duration
}

// Name returns the backend identifier.
func (b *OpenDataBackend) Name() types.Source { return types.SourceOSDROpenData }

// Fetch queries the CKAN API and returns normalized dataset records. The
// query is widened with the osdr/biodata tags so space-biology datasets rank
// ahead of unrelated portal content. CKAN caps rows at 100.
func (b *OpenDataBackend) Fetch(ctx context.Context, query string, limit int) ([]types.Record, error) {
	params := url.Values{
		"q":    {"tags:osdr OR tags:biodata OR " + query},
		"rows": {strconv.Itoa(clampLimit(limit, 20, 100))},
		"sort": {"metadata_modified desc"},
	}

	data, err := getJSON(ctx, b.Client, b.UserAgent, b.BaseURL+"?"+params.Encode(), b.Name())
	if err != nil {
		return nil, err
	}

	// CKAN wraps the page in {"result": {"results": [...]}}.
	var datasets []map[string]any
	if result, ok := data["result"].(map[string]any); ok {
		datasets = itemList(result, "results")
	}

	records := make([]types.Record, 0, len(datasets))
	for _, dataset := range datasets {
		records = append(records, NormalizeDataset(dataset))
	}

	pause(b.Delay)
	return records, nil
}
