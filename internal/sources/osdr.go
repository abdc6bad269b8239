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

// OSDRBackend queries the NASA OSDR study repository.
type OSDRBackend struct {
	Client    *http.Client
	BaseURL   string
	UserAgent string
	Delay     time.Duration
}

// Name returns the backend identifier.
func (b *OSDRBackend) Name() types.Source { return types.SourceOSDRMain }

// Fetch queries the OSDR search endpoint and returns normalized study records.
// The repository caps a single page at 50 studies.
func (b *OSDRBackend) Fetch(ctx context.Context, query string, limit int) ([]types.Record, error) {
	params := url.Values{
		"q":           {query},
		"data_source": {"cgene,alsda,esa"},
		"data_type":   {"study"},
		"size":        {strconv.Itoa(clampLimit(limit, 20, 50))},
		"from":        {"0"},
	}

	data, err := getJSON(ctx, b.Client, b.UserAgent, b.BaseURL+"?"+params.Encode(), b.Name())
	if err != nil {
		return nil, err
	}

	// Older deployments nest the page under "studies"; newer ones use "results".
	studies := itemList(data, "studies", "results")
	records := make([]types.Record, 0, len(studies))
	for _, study := range studies {
		records = append(records, NormalizeStudy(study))
	}

	pause(b.Delay)
	return records, nil
}
