// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"strings"

	"github.com/pdiddy/bioengine/pkg/types"
)

// Mock fixtures served when the graph service is unreachable. They keep the
// exploration endpoints demonstrable in local development without a running
// graph database.

func mockGraph() types.Graph {
	return types.Graph{
		Nodes: []types.Node{
			{ID: "pub_123", Label: "Effects of Microgravity on Arabidopsis Root Growth", Type: "Publication",
				Description: "Study of plant growth in space conditions"},
			{ID: "org_arabidopsis", Label: "Arabidopsis thaliana", Type: "Organism",
				Description: "Model plant organism"},
			{ID: "assay_rna_seq", Label: "RNA Sequencing", Type: "Assay",
				Description: "Transcriptome analysis"},
			{ID: "phenotype_root_growth", Label: "Root Growth Alteration", Type: "Phenotype",
				Description: "Changes in root development"},
			{ID: "mission_iss", Label: "ISS Expedition 45", Type: "Mission",
				Description: "International Space Station mission"},
		},
		Edges: []types.Edge{
			{Source: "pub_123", Target: "org_arabidopsis", Type: "STUDIES"},
			{Source: "pub_123", Target: "assay_rna_seq", Type: "USES"},
			{Source: "pub_123", Target: "phenotype_root_growth", Type: "OBSERVES"},
			{Source: "pub_123", Target: "mission_iss", Type: "PART_OF"},
		},
	}
}

func mockNodeDetails(nodeID string) *types.NodeDetail {
	if nodeID == "pub_123" {
		return &types.NodeDetail{
			Type: "Publication",
			Details: map[string]any{
				"id":         "pub_123",
				"title":      "Effects of Microgravity on Arabidopsis Root Growth",
				"authors":    []string{"Smith, J.", "Doe, A."},
				"year":       2023,
				"url":        "https://example.com/pub123",
				"abstract":   "Study of plant growth in space conditions",
				"organisms":  []string{"Arabidopsis thaliana"},
				"assays":     []string{"RNA Sequencing"},
				"phenotypes": []string{"Root Growth Alteration"},
				"missions":   []string{"ISS Expedition 45"},
			},
		}
	}

	entities := map[string]struct{ label, name string }{
		"org_arabidopsis":       {"Organism", "Arabidopsis thaliana"},
		"assay_rna_seq":         {"Assay", "RNA Sequencing"},
		"phenotype_root_growth": {"Phenotype", "Root Growth Alteration"},
		"mission_iss":           {"Mission", "ISS Expedition 45"},
	}
	e, ok := entities[nodeID]
	if !ok {
		if label, name, cut := strings.Cut(nodeID, "_"); cut && validEntityLabels[label] {
			e = struct{ label, name string }{label, name}
		} else {
			return nil
		}
	}
	return &types.NodeDetail{
		Type: e.label,
		Details: map[string]any{
			"name": e.name,
			"publications": []map[string]any{
				{"id": "pub_123", "title": "Effects of Microgravity on Arabidopsis Root Growth", "year": 2023},
			},
		},
	}
}

func mockSearchResults() []types.Publication {
	return []types.Publication{
		{
			ID:       "pub_123",
			Title:    "Effects of Microgravity on Arabidopsis Root Growth",
			Year:     2023,
			URL:      "https://example.com/pub123",
			Abstract: "Study of plant growth in space conditions",
		},
	}
}
