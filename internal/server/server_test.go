// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bioengine/internal/aggregate"
	"github.com/pdiddy/bioengine/internal/corpus"
	"github.com/pdiddy/bioengine/internal/graph"
	"github.com/pdiddy/bioengine/internal/sources"
	"github.com/pdiddy/bioengine/pkg/types"
)

type fakeAdapter struct {
	name    types.Source
	records []types.Record
}

func (f *fakeAdapter) Name() types.Source { return f.name }

func (f *fakeAdapter) Fetch(ctx context.Context, query string, limit int) ([]types.Record, error) {
	return f.records, nil
}

func newTestServer(t *testing.T, apiKey string) *Server {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	corpusStore, err := corpus.NewStore(types.CorpusConfig{}, log)
	require.NoError(t, err)
	t.Cleanup(func() { corpusStore.Close() })

	articles := filepath.Join(t.TempDir(), "articles.csv")
	require.NoError(t, os.WriteFile(articles, []byte(
		"Title,Link,Description\n"+
			"Microgravity effects on Arabidopsis,https://example.com/a1,Root growth study\n"), 0o644))
	require.NoError(t, corpusStore.LoadCSV(context.Background(), articles, ""))

	graphStore := graph.NewStore(context.Background(), types.GraphConfig{
		URI:        "bolt://127.0.0.1:1",
		MaxRetries: 1,
		RetryDelay: 1,
	}, log)
	t.Cleanup(func() { graphStore.Close(context.Background()) })

	agg := aggregate.New([]sources.Adapter{
		&fakeAdapter{
			name: types.SourceOSDRMain,
			records: []types.Record{{
				ID:             "OSD-37",
				Title:          "Rodent Research muscle atrophy study",
				Source:         types.SourceOSDRMain,
				RelevanceScore: 0.8,
				IsExternal:     true,
			}},
		},
	}, types.SourcesConfig{}, log)

	return New(types.ServerConfig{APIKey: apiKey}, log, agg, corpusStore, graphStore)
}

func doRequest(t *testing.T, s *Server, method, target, apiKey string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "")
	w := doRequest(t, s, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, true, body["corpus_loaded"])
	assert.Equal(t, true, body["graph_mock"])
}

func TestSearchRequiresAPIKey(t *testing.T) {
	s := newTestServer(t, "sekrit")

	w := doRequest(t, s, http.MethodGet, "/api/search?q=microgravity", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, s, http.MethodGet, "/api/search?q=microgravity", "wrong", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, s, http.MethodGet, "/api/search?q=microgravity", "sekrit", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Graph exploration stays open.
	w = doRequest(t, s, http.MethodGet, "/api/graph", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSearchUnified(t *testing.T) {
	s := newTestServer(t, "")
	w := doRequest(t, s, http.MethodGet, "/api/search?query=microgravity&limit=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result types.UnifiedResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	assert.Equal(t, 2, result.Count)
	assert.Equal(t, 1, result.LocalSources)
	assert.Equal(t, []types.Source{types.SourceOSDRMain}, result.NASASources)
	// External prior 0.8 outranks the local 0.7.
	assert.Equal(t, "OSD-37", result.Results[0].ID)
	assert.Equal(t, types.SourceLocal, result.Results[1].Source)
}

func TestSearchExternalDisabled(t *testing.T) {
	s := newTestServer(t, "")
	w := doRequest(t, s, http.MethodGet, "/api/search?query=microgravity&include_nasa_apis=false", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result types.UnifiedResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, 1, result.LocalSources)
	assert.Empty(t, result.NASASources)
}

func TestSearchLocalOnlyRoute(t *testing.T) {
	s := newTestServer(t, "")
	w := doRequest(t, s, http.MethodGet, "/api/search/csv?q=arabidopsis", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count   int            `json:"count"`
		Results []types.Record `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Results, 1)
	assert.Equal(t, types.SourceLocal, body.Results[0].Source)
}

func TestCorpusStatsRoute(t *testing.T) {
	s := newTestServer(t, "")
	w := doRequest(t, s, http.MethodGet, "/api/search/csv/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats corpus.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.True(t, stats.Loaded)
	assert.Equal(t, 1, stats.TotalArticles)
}

func TestExternalSearchRoute(t *testing.T) {
	s := newTestServer(t, "")

	w := doRequest(t, s, http.MethodGet, "/api/search/nasa/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, s, http.MethodGet, "/api/search/nasa/search?query=muscle", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.AggregateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.ExternalCount)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "OSD-37", resp.Records[0].ID)
}

func TestProbeRoute(t *testing.T) {
	s := newTestServer(t, "")
	w := doRequest(t, s, http.MethodGet, "/api/search/nasa/test", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status    string                       `json:"status"`
		APIs      map[string]types.ProbeResult `json:"apis"`
		Timestamp string                       `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "completed", body.Status)
	assert.Equal(t, "success", body.APIs["osdr_main"].Status)
	assert.NotEmpty(t, body.Timestamp)
}

func TestGraphRoutes(t *testing.T) {
	s := newTestServer(t, "")

	w := doRequest(t, s, http.MethodGet, "/api/graph", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var g types.Graph
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &g))
	assert.Len(t, g.Nodes, 5)

	w = doRequest(t, s, http.MethodGet, "/api/graph/node/pub_123", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail types.NodeDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Publication", detail.Type)

	w = doRequest(t, s, http.MethodGet, "/api/graph/node/no_such_node", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, s, http.MethodGet, "/api/graph/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, s, http.MethodGet, "/api/graph/search?query=arabidopsis", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCompareMockModeUnavailable(t *testing.T) {
	s := newTestServer(t, "")

	body, _ := json.Marshal(map[string]string{"publication_id1": "pub_123", "publication_id2": "pub_456"})
	w := doRequest(t, s, http.MethodPost, "/api/compare", "", body)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doRequest(t, s, http.MethodPost, "/api/compare", "", []byte(`{"publication_id1": "only-one"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngestValidation(t *testing.T) {
	s := newTestServer(t, "")

	w := doRequest(t, s, http.MethodPost, "/api/ingest", "", []byte(`not json`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, s, http.MethodPost, "/api/ingest", "", []byte(`{"title": "No id"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Valid payload, but the graph is in mock mode.
	body, _ := json.Marshal(types.PublicationCreate{ID: "p1", Title: "T"})
	w = doRequest(t, s, http.MethodPost, "/api/ingest", "", body)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
