// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures for the bioengine pipeline:
// the canonical record schema that all source adapters normalize into, the
// aggregate and unified response envelopes, the property-graph models, and the
// configuration structs.
package types

// Source identifies one data provider feeding the search pipeline.
type Source string

const (
	// SourceOSDRMain is the NASA OSDR study repository.
	SourceOSDRMain Source = "osdr_main"
	// SourceOSDROpenData is the NASA Open Data Portal (CKAN).
	SourceOSDROpenData Source = "osdr_open_data"
	// SourceTechReports is the NASA Technical Reports Server.
	SourceTechReports Source = "tech_reports"
	// SourceExperiments is the NSLSL experiments view, served via the NTRS index.
	SourceExperiments Source = "experiments"
	// SourceLocal is the locally loaded CSV corpus.
	SourceLocal Source = "local"
)

// ExternalSources lists the sources the fan-out coordinator queries, in the
// order their outcomes are reported.
var ExternalSources = []Source{SourceOSDRMain, SourceOSDROpenData, SourceTechReports, SourceExperiments}

// DisplayName returns the human-readable provider name shown to the frontend.
func (s Source) DisplayName() string {
	switch s {
	case SourceOSDRMain:
		return "NASA OSDR"
	case SourceOSDROpenData:
		return "NASA Open Data Portal"
	case SourceTechReports:
		return "NASA NTRS"
	case SourceExperiments:
		return "NASA NSLSL (via NTRS)"
	case SourceLocal:
		return "Local Database"
	}
	return string(s)
}

// LocalRelevance is the fixed relevance prior assigned to corpus records.
// External adapters assign their own priors during normalization.
const LocalRelevance = 0.7

// Record is the canonical unit flowing through the search pipeline. Records
// are immutable once normalized: the unifier filters, sorts, and truncates but
// never rewrites fields. Optional fields serialize as empty strings or empty
// lists rather than being omitted, for frontend stability.
type Record struct {
	// ID is the source-scoped identifier; unique only within a source.
	ID string `json:"id"`

	// Title is required for ranking and deduplication.
	Title string `json:"title"`

	Abstract string   `json:"abstract"`
	Authors  []string `json:"authors"`

	// Date is the free-form date string as the source reported it. It is
	// parsed lazily for ranking and never mutated in place.
	Date string `json:"date"`

	Keywords []string `json:"keywords"`

	// Link is the canonical URL for the record.
	Link string `json:"link"`

	Source Source `json:"source"`

	// Type is the display category (e.g. "Research Papers", "OSDR Data").
	Type string `json:"type"`

	// RelevanceScore is a fixed per-source prior in [0,1], not a computed
	// text-similarity score.
	RelevanceScore float64 `json:"relevance_score"`

	IsExternal bool `json:"is_external"`
}

// AggregateResponse holds the joined outcome of one fan-out over the external
// sources. Per-source failures land in Errors and never discard sibling
// results; an all-failed fan-out is a valid response with empty Records.
type AggregateResponse struct {
	Records        []Record `json:"records"`
	SourcesQueried []Source `json:"sources_queried"`
	Errors         []string `json:"errors"`
	ExternalCount  int      `json:"external_count"`
	LocalCount     int      `json:"local_count"`
}

// UnifiedResult is the wire shape of a merged external+local search.
type UnifiedResult struct {
	Count        int      `json:"count"`
	Results      []Record `json:"results"`
	NASASources  []Source `json:"nasa_sources"`
	LocalSources int      `json:"local_sources"`
	Errors       []string `json:"errors"`
}

// ProbeResult reports one source's connectivity check.
type ProbeResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
