// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/pdiddy/bioengine/internal/aggregate"
	"github.com/pdiddy/bioengine/internal/graph"
	"github.com/pdiddy/bioengine/pkg/types"
)

const defaultSearchLimit = 10

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":        "healthy",
		"service":       "bioengine",
		"corpus_loaded": s.corpus != nil && s.corpus.Loaded(),
		"graph_mock":    s.graph != nil && s.graph.Mock(),
	})
}

// handleSearch is the unified endpoint: local corpus plus the external
// adapters, deduplicated and ranked. External sources are skipped when
// disabled by parameter or when the query is empty.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := queryParam(r, "query", "q")
	limit := intParam(r, "limit", defaultSearchLimit)
	includeExternal := boolParam(r, true, "include_external", "include_nasa_apis")

	local, err := s.corpus.Search(r.Context(), q, limit)
	if err != nil {
		s.log.Warnf("corpus search failed: %v", err)
		local = []types.Record{}
	}

	var ext types.AggregateResponse
	if includeExternal && q != "" {
		// External sources share the result budget with the corpus.
		extLimit := limit / 2
		if extLimit < 1 {
			extLimit = 1
		}
		ext = s.agg.Fetch(r.Context(), q, extLimit)
	}

	respondJSON(w, http.StatusOK, aggregate.Unify(ext, local, limit))
}

func (s *Server) handleSearchLocal(w http.ResponseWriter, r *http.Request) {
	q := queryParam(r, "query", "q")
	limit := intParam(r, "limit", defaultSearchLimit)

	results, err := s.corpus.Search(r.Context(), q, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "corpus search failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"count":   len(results),
		"results": results,
	})
}

func (s *Server) handleCorpusStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.corpus.Stats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "corpus stats failed")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleSearchExternal(w http.ResponseWriter, r *http.Request) {
	q := queryParam(r, "query", "q")
	if q == "" {
		respondError(w, http.StatusBadRequest, "missing query parameter")
		return
	}
	limit := intParam(r, "limit", defaultSearchLimit)
	respondJSON(w, http.StatusOK, s.agg.Fetch(r.Context(), q, limit))
}

func (s *Server) handleProbe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "completed",
		"apis":      s.agg.Probe(r.Context()),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.graph.FullGraph(r.Context()))
}

func (s *Server) handleNodeDetails(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")
	detail, err := s.graph.NodeDetails(r.Context(), nodeID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "node lookup failed")
		return
	}
	if detail == nil {
		respondError(w, http.StatusNotFound, "node not found")
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (s *Server) handleGraphSearch(w http.ResponseWriter, r *http.Request) {
	q := queryParam(r, "query", "q")
	if q == "" {
		respondError(w, http.StatusBadRequest, "missing query parameter")
		return
	}
	pubs, err := s.graph.SearchPublications(r.Context(), q)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "graph search failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"count":   len(pubs),
		"results": pubs,
	})
}

type compareRequest struct {
	Pub1 string `json:"publication_id1"`
	Pub2 string `json:"publication_id2"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Pub1 == "" || req.Pub2 == "" {
		respondError(w, http.StatusBadRequest, "publication_id1 and publication_id2 are required")
		return
	}

	cmp, err := s.graph.Compare(r.Context(), req.Pub1, req.Pub2)
	if errors.Is(err, graph.ErrUnavailable) {
		respondError(w, http.StatusServiceUnavailable, "graph service unavailable")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "comparison failed")
		return
	}
	if cmp == nil {
		respondError(w, http.StatusNotFound, "publication not found")
		return
	}
	respondJSON(w, http.StatusOK, cmp)
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var pub types.PublicationCreate
	if err := json.NewDecoder(r.Body).Decode(&pub); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if pub.ID == "" || pub.Title == "" {
		respondError(w, http.StatusBadRequest, "id and title are required")
		return
	}

	id, err := s.graph.CreatePublication(r.Context(), pub)
	if errors.Is(err, graph.ErrUnavailable) {
		respondError(w, http.StatusServiceUnavailable, "graph service unavailable")
		return
	}
	if err != nil {
		s.log.Warnf("publication ingest failed: %v", err)
		respondError(w, http.StatusInternalServerError, "ingest failed")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"id":     id,
		"status": "created",
	})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// queryParam returns the first present name's trimmed value.
func queryParam(r *http.Request, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(r.URL.Query().Get(name)); v != "" {
			return v
		}
	}
	return ""
}

func intParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// boolParam checks each name in order and parses the first present value.
func boolParam(r *http.Request, fallback bool, names ...string) bool {
	for _, name := range names {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fallback
		}
		return v
	}
	return fallback
}
