// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the aggregation pipeline, local corpus, and
// knowledge graph over HTTP. Search routes require an API key when one is
// configured; health and graph exploration stay open.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/bioengine/internal/aggregate"
	"github.com/pdiddy/bioengine/internal/corpus"
	"github.com/pdiddy/bioengine/internal/graph"
	"github.com/pdiddy/bioengine/pkg/types"
)

// Server wires the HTTP routes to the backing stores.
type Server struct {
	cfg    types.ServerConfig
	log    *logrus.Logger
	agg    *aggregate.Aggregator
	corpus *corpus.Store
	graph  *graph.Store
}

// New builds a server over the given stores. Any store may be nil in tests;
// the corresponding routes then return errors rather than panicking.
func New(cfg types.ServerConfig, log *logrus.Logger, agg *aggregate.Aggregator, corpusStore *corpus.Store, graphStore *graph.Store) *Server {
	if log == nil {
		log = logrus.New()
	}
	return &Server{cfg: cfg, log: log, agg: agg, corpus: corpusStore, graph: graphStore}
}

// Handler returns the assembled route tree.
func (s *Server) Handler() http.Handler {
	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-API-Key"},
		MaxAge:         300,
	})

	r := chi.NewRouter()
	r.Use(c.Handler)
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/search", func(r chi.Router) {
			r.Use(s.requireAPIKey)
			r.Get("/", s.handleSearch)
			r.Get("/csv", s.handleSearchLocal)
			r.Get("/csv/stats", s.handleCorpusStats)
			r.Get("/nasa/search", s.handleSearchExternal)
			r.Get("/nasa/test", s.handleProbe)
		})

		r.Get("/graph", s.handleGraph)
		r.Get("/graph/node/{nodeID}", s.handleNodeDetails)
		r.Get("/graph/search", s.handleGraphSearch)
		r.Post("/compare", s.handleCompare)
		r.Post("/ingest", s.handleIngest)
	})

	return r
}
