// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PublicationCreate carries a publication and its related entities for
// ingestion into the property graph. Related entity lists become MERGE'd
// nodes linked to the publication.
type PublicationCreate struct {
	ID         string   `json:"id" yaml:"id"`
	Title      string   `json:"title" yaml:"title"`
	Authors    []string `json:"authors" yaml:"authors"`
	Year       int      `json:"year" yaml:"year"`
	URL        string   `json:"url" yaml:"url"`
	Abstract   string   `json:"abstract" yaml:"abstract"`
	Organisms  []string `json:"organisms" yaml:"organisms"`
	Assays     []string `json:"assays" yaml:"assays"`
	Phenotypes []string `json:"phenotypes" yaml:"phenotypes"`
	Missions   []string `json:"missions" yaml:"missions"`
}

// Publication is a publication node as returned by graph queries.
type Publication struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Authors  []string `json:"authors,omitempty"`
	Year     int      `json:"year"`
	URL      string   `json:"url"`
	Abstract string   `json:"abstract"`
}

// Node is one vertex of the exploration graph. Label and Description are
// truncated for display.
type Node struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Edge is one directed relationship between two nodes.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// Graph is the full exploration graph response.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NodeDetail describes a single node: a publication with its related
// entities, or an entity with the publications that reference it.
type NodeDetail struct {
	Type    string         `json:"type"`
	Details map[string]any `json:"details"`
}

// ComparisonSide holds one publication's identity and the entities unique to
// it relative to the other side of a comparison.
type ComparisonSide struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Year             int      `json:"year"`
	UniqueOrganisms  []string `json:"unique_organisms"`
	UniqueAssays     []string `json:"unique_assays"`
	UniquePhenotypes []string `json:"unique_phenotypes"`
	UniqueMissions   []string `json:"unique_missions"`
}

// CommonEntities lists the entities two publications share.
type CommonEntities struct {
	Organisms  []string `json:"organisms"`
	Assays     []string `json:"assays"`
	Phenotypes []string `json:"phenotypes"`
	Missions   []string `json:"missions"`
}

// Comparison is the result of comparing two publications.
type Comparison struct {
	Publication1 ComparisonSide `json:"publication1"`
	Publication2 ComparisonSide `json:"publication2"`
	Common       CommonEntities `json:"common"`
}
