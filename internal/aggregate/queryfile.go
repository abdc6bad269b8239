// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bioengine/pkg/types"
)

// UnifiedOutput pairs a unified search result with the query that produced
// it, for display and for saving to disk.
type UnifiedOutput struct {
	Query           string
	Limit           int
	IncludeExternal bool
	Result          types.UnifiedResult
}

// QueryFile is the on-disk representation of a search and its results. A
// search can be saved to a file and reviewed later without re-querying APIs.
type QueryFile struct {
	Query   QueryParams    `yaml:"query"`
	Results []types.Record `yaml:"results"`
	Summary QuerySummary   `yaml:"summary"`
}

// QueryParams stores the query parameters in a serializable form.
type QueryParams struct {
	Text            string `yaml:"text"`
	Limit           int    `yaml:"limit"`
	IncludeExternal bool   `yaml:"include_external"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total          int            `yaml:"total"`
	LocalSources   int            `yaml:"local_sources"`
	SourcesQueried []types.Source `yaml:"sources_queried,omitempty"`
	Errors         []string       `yaml:"errors,omitempty"`
	Timestamp      time.Time      `yaml:"timestamp"`
}

// WriteQueryFile saves a search and its results to a YAML file.
func WriteQueryFile(path string, out UnifiedOutput) error {
	qf := QueryFile{
		Query: QueryParams{
			Text:            out.Query,
			Limit:           out.Limit,
			IncludeExternal: out.IncludeExternal,
		},
		Results: out.Result.Results,
		Summary: QuerySummary{
			Total:          out.Result.Count,
			LocalSources:   out.Result.LocalSources,
			SourcesQueried: out.Result.NASASources,
			Errors:         out.Result.Errors,
			Timestamp:      time.Now(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}
