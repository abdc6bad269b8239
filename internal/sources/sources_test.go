// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bioengine/pkg/types"
)

func jsonServer(t *testing.T, body string, capture *http.Request) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			*capture = *r
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOSDRBackendFetch(t *testing.T) {
	var got http.Request
	srv := jsonServer(t, `{
		"studies": [
			{"accession": "OSD-37", "title": "Rodent Research 1"},
			{"accession": "OSD-48", "title": "Plant Habitat"},
			"not-an-object"
		]
	}`, &got)

	b := &OSDRBackend{Client: srv.Client(), BaseURL: srv.URL, UserAgent: "test/1.0"}
	records, err := b.Fetch(context.Background(), "microgravity", 5)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "OSD-37", records[0].ID)
	assert.Equal(t, types.SourceOSDRMain, records[0].Source)

	q := got.URL.Query()
	assert.Equal(t, "microgravity", q.Get("q"))
	assert.Equal(t, "cgene,alsda,esa", q.Get("data_source"))
	assert.Equal(t, "study", q.Get("data_type"))
	assert.Equal(t, "5", q.Get("size"))
}

func TestOSDRBackendFetchResultsAlias(t *testing.T) {
	srv := jsonServer(t, `{"results": [{"id": "GLDS-1", "title": "Study"}]}`, nil)

	b := &OSDRBackend{Client: srv.Client(), BaseURL: srv.URL}
	records, err := b.Fetch(context.Background(), "q", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "GLDS-1", records[0].ID)
}

func TestOSDRBackendClampsLimit(t *testing.T) {
	var got http.Request
	srv := jsonServer(t, `{"studies": []}`, &got)
	b := &OSDRBackend{Client: srv.Client(), BaseURL: srv.URL}

	_, err := b.Fetch(context.Background(), "q", 500)
	require.NoError(t, err)
	assert.Equal(t, "50", got.URL.Query().Get("size"))

	_, err = b.Fetch(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.Equal(t, "20", got.URL.Query().Get("size"))
}

func TestOSDRBackendHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	b := &OSDRBackend{Client: srv.Client(), BaseURL: srv.URL}
	_, err := b.Fetch(context.Background(), "q", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NASA OSDR returned HTTP 502")
}

func TestOpenDataBackendFetch(t *testing.T) {
	var got http.Request
	srv := jsonServer(t, `{
		"result": {
			"results": [
				{"id": "d1", "name": "gene-lab", "title": "GeneLab Dataset"}
			]
		}
	}`, &got)

	b := &OpenDataBackend{Client: srv.Client(), BaseURL: srv.URL}
	records, err := b.Fetch(context.Background(), "microgravity", 10)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "d1", records[0].ID)
	assert.Equal(t, types.SourceOSDROpenData, records[0].Source)

	q := got.URL.Query()
	assert.Equal(t, "tags:osdr OR tags:biodata OR microgravity", q.Get("q"))
	assert.Equal(t, "10", q.Get("rows"))
	assert.Equal(t, "metadata_modified desc", q.Get("sort"))
}

func TestOpenDataBackendMissingWrapper(t *testing.T) {
	srv := jsonServer(t, `{"success": true}`, nil)
	b := &OpenDataBackend{Client: srv.Client(), BaseURL: srv.URL}

	records, err := b.Fetch(context.Background(), "q", 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNTRSBackendFlatResults(t *testing.T) {
	srv := jsonServer(t, `{
		"results": [
			{"id": "20240001", "title": "Report A"},
			{"id": "20240002", "title": "Report B"}
		]
	}`, nil)

	b := &NTRSBackend{Client: srv.Client(), BaseURL: srv.URL}
	records, err := b.Fetch(context.Background(), "radiation", 10)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, types.SourceTechReports, records[0].Source)
	assert.Equal(t, "https://ntrs.nasa.gov/citations/20240001", records[0].Link)
}

func TestNTRSBackendHitsWrapper(t *testing.T) {
	srv := jsonServer(t, `{
		"hits": {
			"hits": [
				{"_source": {"id": "20240009", "title": "Wrapped Report"}},
				{"id": "20240010", "title": "Bare Hit"}
			]
		}
	}`, nil)

	b := &NTRSBackend{Client: srv.Client(), BaseURL: srv.URL}
	records, err := b.Fetch(context.Background(), "q", 10)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "20240009", records[0].ID)
	assert.Equal(t, "20240010", records[1].ID)
}

func TestNSLSLBackendDocumentsFallback(t *testing.T) {
	var got http.Request
	srv := jsonServer(t, `{
		"documents": [
			{"experiment_id": "EXP-1", "title": "Habitat Study"}
		]
	}`, &got)

	b := &NSLSLBackend{Client: srv.Client(), BaseURL: srv.URL}
	records, err := b.Fetch(context.Background(), "plants", 10)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "EXP-1", records[0].ID)
	assert.Equal(t, types.SourceExperiments, records[0].Source)

	q := got.URL.Query()
	assert.Equal(t, "plants", q.Get("q"))
	assert.Equal(t, "json", q.Get("format"))
	assert.Equal(t, "space-life-sciences", q.Get("category"))
}

func TestGetJSONMalformedBody(t *testing.T) {
	srv := jsonServer(t, `{"studies": [`, nil)
	b := &OSDRBackend{Client: srv.Client(), BaseURL: srv.URL}

	_, err := b.Fetch(context.Background(), "q", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing NASA OSDR response")
}

func TestDefaultAdapters(t *testing.T) {
	adapters := DefaultAdapters(http.DefaultClient, types.SourcesConfig{})
	require.Len(t, adapters, 4)

	names := make([]types.Source, 0, len(adapters))
	for _, a := range adapters {
		names = append(names, a.Name())
	}
	assert.Equal(t, types.ExternalSources, names)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 20, clampLimit(0, 20, 50))
	assert.Equal(t, 20, clampLimit(-3, 20, 50))
	assert.Equal(t, 5, clampLimit(5, 20, 50))
	assert.Equal(t, 50, clampLimit(120, 20, 50))
}
