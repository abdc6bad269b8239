// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/bioengine/pkg/types"
)

func TestNormalizeStudy(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want types.Record
	}{
		{
			name: "full study with accession",
			raw: map[string]any{
				"accession":              "OSD-37",
				"title":                  "Rodent Research 1",
				"study_description":      "Muscle atrophy in mice",
				"principal_investigator": "Smith, J.",
				"date_created":           "2015-06-01",
				"factors":                []any{"spaceflight", "microgravity"},
			},
			want: types.Record{
				ID:             "OSD-37",
				Title:          "Rodent Research 1",
				Abstract:       "Muscle atrophy in mice",
				Authors:        []string{"Smith, J."},
				Date:           "2015-06-01",
				Keywords:       []string{"spaceflight", "microgravity"},
				Link:           "https://osdr.nasa.gov/bio/repo/data/studies/OSD-37",
				Source:         types.SourceOSDRMain,
				Type:           "OSDR Data",
				RelevanceScore: 0.8,
				IsExternal:     true,
			},
		},
		{
			name: "falls through id aliases",
			raw:  map[string]any{"id": "GLDS-120", "title": "Plant growth"},
			want: types.Record{
				ID:             "GLDS-120",
				Title:          "Plant growth",
				Authors:        []string{},
				Keywords:       []string{},
				Link:           "https://osdr.nasa.gov/bio/repo/data/studies/GLDS-120",
				Source:         types.SourceOSDRMain,
				Type:           "OSDR Data",
				RelevanceScore: 0.8,
				IsExternal:     true,
			},
		},
		{
			name: "missing id gets placeholder link",
			raw:  map[string]any{"title": "Untracked study"},
			want: types.Record{
				Title:          "Untracked study",
				Authors:        []string{},
				Keywords:       []string{},
				Link:           "#",
				Source:         types.SourceOSDRMain,
				Type:           "OSDR Data",
				RelevanceScore: 0.8,
				IsExternal:     true,
			},
		},
		{
			name: "numeric id is stringified",
			raw:  map[string]any{"id": float64(42), "title": "Numbered"},
			want: types.Record{
				ID:             "42",
				Title:          "Numbered",
				Authors:        []string{},
				Keywords:       []string{},
				Link:           "https://osdr.nasa.gov/bio/repo/data/studies/42",
				Source:         types.SourceOSDRMain,
				Type:           "OSDR Data",
				RelevanceScore: 0.8,
				IsExternal:     true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeStudy(tt.raw))
		})
	}
}

func TestNormalizeDataset(t *testing.T) {
	rec := NormalizeDataset(map[string]any{
		"id":                "abc-123",
		"name":              "gene-lab-rr1",
		"title":             "GeneLab RR-1 Dataset",
		"notes":             "Transcriptomics from RR-1",
		"author":            "GeneLab",
		"metadata_modified": "2024-03-01T12:00:00",
		"tags": []any{
			map[string]any{"display_name": "osdr", "name": "osdr"},
			map[string]any{"name": "biodata"},
			"spaceflight",
		},
	})

	assert.Equal(t, "abc-123", rec.ID)
	assert.Equal(t, "https://data.nasa.gov/dataset/gene-lab-rr1", rec.Link)
	assert.Equal(t, []string{"osdr", "biodata", "spaceflight"}, rec.Keywords)
	assert.Equal(t, types.SourceOSDROpenData, rec.Source)
	assert.Equal(t, "NASA Dataset", rec.Type)
	assert.InDelta(t, 0.85, rec.RelevanceScore, 1e-9)
	assert.True(t, rec.IsExternal)
}

func TestNormalizeDatasetLinkFallsBackToID(t *testing.T) {
	rec := NormalizeDataset(map[string]any{"id": "xyz-9"})
	assert.Equal(t, "https://data.nasa.gov/dataset/xyz-9", rec.Link)

	rec = NormalizeDataset(map[string]any{"title": "No identifiers"})
	assert.Equal(t, "#", rec.Link)
}

func TestNormalizeReport(t *testing.T) {
	rec := NormalizeReport(map[string]any{
		"id":               "20240001234",
		"title":            "Radiation Shielding Advances",
		"abstract":         "Shielding materials for deep space",
		"authors":          []any{"Lee, K.", "Park, S."},
		"publication_date": "2024-01-15",
		"keywords":         []any{"radiation", "shielding"},
	})

	assert.Equal(t, "https://ntrs.nasa.gov/citations/20240001234", rec.Link)
	assert.Equal(t, []string{"Lee, K.", "Park, S."}, rec.Authors)
	assert.Equal(t, types.SourceTechReports, rec.Source)
	assert.Equal(t, "Research Papers", rec.Type)
	assert.InDelta(t, 0.85, rec.RelevanceScore, 1e-9)
}

func TestNormalizeExperiment(t *testing.T) {
	rec := NormalizeExperiment(map[string]any{
		"experiment_id":          "NSLSL-881",
		"experiment_name":        "Plant Habitat-02",
		"objective":              "Radish growth on ISS",
		"principal_investigator": "Doe, A.",
		"start_date":             "2020-11-01",
		"research_areas":         []any{"plant biology"},
	})

	assert.Equal(t, "NSLSL-881", rec.ID)
	assert.Equal(t, "Plant Habitat-02", rec.Title)
	assert.Equal(t, "Radish growth on ISS", rec.Abstract)
	assert.Equal(t, "https://ntrs.nasa.gov/citations/NSLSL-881", rec.Link)
	assert.Equal(t, types.SourceExperiments, rec.Source)
	assert.Equal(t, "Space Life Sciences", rec.Type)
	assert.InDelta(t, 0.9, rec.RelevanceScore, 1e-9)
}

func TestCoerceList(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{name: "nil becomes empty", in: nil, want: []string{}},
		{name: "scalar becomes single element", in: "Smith, J.", want: []string{"Smith, J."}},
		{name: "list keeps elements", in: []any{"a", "b"}, want: []string{"a", "b"}},
		{name: "falsy entries dropped", in: []any{"a", "", nil, false, float64(0), "b"}, want: []string{"a", "b"}},
		{name: "numbers stringified", in: []any{float64(3), float64(2.5)}, want: []string{"3", "2.5"}},
		{name: "empty string scalar", in: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coerceList(tt.in))
		})
	}
}

func TestStringFieldProbesAliasesInOrder(t *testing.T) {
	m := map[string]any{"accession": "", "id": "GLDS-1", "study_id": "ignored"}
	assert.Equal(t, "GLDS-1", stringField(m, "accession", "id", "study_id"))
	assert.Equal(t, "", stringField(m, "missing"))
}

func TestStringifyNestedStructures(t *testing.T) {
	// Objects and nested lists have no scalar rendering.
	assert.Equal(t, "", stringify(map[string]any{"a": 1}))
	assert.Equal(t, "", stringify([]any{"x"}))
	assert.Equal(t, "true", stringify(true))
	assert.Equal(t, "trimmed", stringify("  trimmed  "))
}
