// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph talks to the property-graph service holding publications and
// their related entities (organisms, assays, phenotypes, missions). When the
// graph service is unreachable the store falls back to mock mode: reads serve
// a small fixture dataset and writes fail with ErrUnavailable. The search
// pipeline does not depend on this package.
package graph

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/bioengine/pkg/types"
)

// ErrUnavailable is returned for operations that need a live graph service
// while the store is in mock mode.
var ErrUnavailable = errors.New("graph service unavailable")

const (
	nodeLimit = 200
	edgeLimit = 500

	labelTruncate       = 50
	descriptionTruncate = 100
)

// Store wraps the graph driver connection.
type Store struct {
	driver neo4j.DriverWithContext
	mock   bool
	log    *logrus.Logger
}

// NewStore connects to the graph service, retrying a few times before
// falling back to mock mode. It never fails: an unreachable graph degrades
// the graph endpoints, not the process.
func NewStore(ctx context.Context, cfg types.GraphConfig, log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.New()
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = 5 * time.Second
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
		if err == nil {
			if err = driver.VerifyConnectivity(ctx); err == nil {
				log.WithField("uri", cfg.URI).Info("connected to graph service")
				return &Store{driver: driver, log: log}
			}
			driver.Close(ctx)
		}
		log.Warnf("graph connection attempt %d/%d failed: %v", attempt, maxRetries, err)

		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				attempt = maxRetries
			case <-time.After(retryDelay):
			}
		}
	}

	log.Warn("graph service unreachable, using mock mode")
	return &Store{mock: true, log: log}
}

// Mock reports whether the store is serving fixture data.
func (s *Store) Mock() bool { return s.mock }

// Close releases the driver connection.
func (s *Store) Close(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}
	return s.driver.Close(ctx)
}

// relatedEntity maps a publication list field to its node label and
// relationship type.
var relatedEntities = []struct {
	label string
	rel   string
}{
	{"Organism", "STUDIES"},
	{"Assay", "USES"},
	{"Phenotype", "OBSERVES"},
	{"Mission", "PART_OF"},
}

// CreatePublication creates a publication node and MERGEs its related
// entities, linking them in one transaction. Returns the publication id.
func (s *Store) CreatePublication(ctx context.Context, pub types.PublicationCreate) (string, error) {
	if s.mock {
		return "", ErrUnavailable
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	out, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			`CREATE (p:Publication {
				id: $id, title: $title, authors: $authors,
				year: $year, url: $url, abstract: $abstract
			})
			RETURN p.id AS id`,
			map[string]any{
				"id":       pub.ID,
				"title":    pub.Title,
				"authors":  pub.Authors,
				"year":     pub.Year,
				"url":      pub.URL,
				"abstract": pub.Abstract,
			})
		if err != nil {
			return nil, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		pubID := asString(value(rec, "id"))

		lists := [][]string{pub.Organisms, pub.Assays, pub.Phenotypes, pub.Missions}
		for i, re := range relatedEntities {
			for _, name := range lists[i] {
				if name == "" {
					continue
				}
				query := fmt.Sprintf(
					`MERGE (e:%s {name: $name})
					 WITH e
					 MATCH (p:Publication {id: $pub_id})
					 CREATE (p)-[:%s]->(e)`, re.label, re.rel)
				if _, err := tx.Run(ctx, query, map[string]any{"name": name, "pub_id": pubID}); err != nil {
					return nil, err
				}
			}
		}
		return pubID, nil
	})
	if err != nil {
		return "", fmt.Errorf("creating publication: %w", err)
	}
	return out.(string), nil
}

// FullGraph returns the exploration graph, capped for display. On query
// failure it degrades to the mock dataset rather than erroring.
func (s *Store) FullGraph(ctx context.Context) types.Graph {
	if s.mock {
		return mockGraph()
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			`MATCH (n)
			 RETURN elementId(n) AS internal_id,
			        coalesce(n.id, n.name) AS node_id,
			        coalesce(n.title, n.name, 'Unknown') AS label,
			        labels(n)[0] AS type,
			        coalesce(n.description, n.abstract, '') AS description
			 LIMIT `+fmt.Sprint(nodeLimit),
			nil)
		if err != nil {
			return nil, err
		}

		g := types.Graph{Nodes: []types.Node{}, Edges: []types.Edge{}}
		idMapping := make(map[string]string)
		present := make(map[string]bool)
		for res.Next(ctx) {
			rec := res.Record()
			internalID := asString(value(rec, "internal_id"))
			nodeID := asString(value(rec, "node_id"))
			if nodeID == "" {
				nodeID = "node_" + internalID
			}
			g.Nodes = append(g.Nodes, types.Node{
				ID:          nodeID,
				Label:       truncate(asString(value(rec, "label")), labelTruncate),
				Type:        asString(value(rec, "type")),
				Description: truncate(asString(value(rec, "description")), descriptionTruncate),
			})
			idMapping[internalID] = nodeID
			present[nodeID] = true
		}
		if err := res.Err(); err != nil {
			return nil, err
		}

		res, err = tx.Run(ctx,
			`MATCH (a)-[r]->(b)
			 RETURN elementId(a) AS source_internal, elementId(b) AS target_internal, type(r) AS rel_type
			 LIMIT `+fmt.Sprint(edgeLimit),
			nil)
		if err != nil {
			return nil, err
		}
		for res.Next(ctx) {
			rec := res.Record()
			source := idMapping[asString(value(rec, "source_internal"))]
			target := idMapping[asString(value(rec, "target_internal"))]
			if source == "" || target == "" || !present[source] || !present[target] {
				continue
			}
			g.Edges = append(g.Edges, types.Edge{
				Source: source,
				Target: target,
				Type:   asString(value(rec, "rel_type")),
			})
		}
		return g, res.Err()
	})
	if err != nil {
		s.log.Warnf("graph query failed, serving mock data: %v", err)
		return mockGraph()
	}
	return out.(types.Graph)
}

// validEntityLabels guards the label interpolated into entity detail queries;
// node ids arrive from the client as "Type_Name".
var validEntityLabels = map[string]bool{
	"Organism":  true,
	"Assay":     true,
	"Phenotype": true,
	"Mission":   true,
}

// NodeDetails returns details for one node: a publication with its related
// entity lists, or an entity with the publications referencing it. Returns
// nil when the node does not exist.
func (s *Store) NodeDetails(ctx context.Context, nodeID string) (*types.NodeDetail, error) {
	if s.mock {
		return mockNodeDetails(nodeID), nil
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		detail, err := publicationDetails(ctx, tx, nodeID)
		if err != nil || detail != nil {
			return detail, err
		}
		return entityDetails(ctx, tx, nodeID)
	})
	if err != nil {
		return nil, fmt.Errorf("fetching node details: %w", err)
	}
	if out == nil {
		return nil, nil
	}
	return out.(*types.NodeDetail), nil
}

func publicationDetails(ctx context.Context, tx neo4j.ManagedTransaction, nodeID string) (*types.NodeDetail, error) {
	res, err := tx.Run(ctx,
		`MATCH (p:Publication {id: $node_id})
		 RETURN p.id AS id, p.title AS title, p.authors AS authors,
		        p.year AS year, p.url AS url, p.abstract AS abstract`,
		map[string]any{"node_id": nodeID})
	if err != nil {
		return nil, err
	}
	records, err := res.Collect(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	rec := records[0]

	details := map[string]any{
		"id":       asString(value(rec, "id")),
		"title":    asString(value(rec, "title")),
		"authors":  asStringList(value(rec, "authors")),
		"year":     asInt(value(rec, "year")),
		"url":      asString(value(rec, "url")),
		"abstract": asString(value(rec, "abstract")),
	}

	for i, re := range relatedEntities {
		field := []string{"organisms", "assays", "phenotypes", "missions"}[i]
		res, err := tx.Run(ctx, fmt.Sprintf(
			`MATCH (p:Publication {id: $node_id})-[:%s]->(e:%s)
			 RETURN collect(e.name) AS names`, re.rel, re.label),
			map[string]any{"node_id": nodeID})
		if err != nil {
			return nil, err
		}
		row, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		details[field] = asStringList(value(row, "names"))
	}

	return &types.NodeDetail{Type: "Publication", Details: details}, nil
}

func entityDetails(ctx context.Context, tx neo4j.ManagedTransaction, nodeID string) (*types.NodeDetail, error) {
	// Entity ids are "Type_Name" (e.g. "Organism_Arabidopsis").
	label, name, ok := strings.Cut(nodeID, "_")
	if !ok || !validEntityLabels[label] {
		return nil, nil
	}

	res, err := tx.Run(ctx, fmt.Sprintf(
		`MATCH (p:Publication)-[r]->(n:%s {name: $name})
		 RETURN n.name AS name, collect(p {.id, .title, .year}) AS publications`, label),
		map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	records, err := res.Collect(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	rec := records[0]

	pubs := []map[string]any{}
	if raw, ok := value(rec, "publications").([]any); ok {
		for _, item := range raw {
			if m, ok := item.(map[string]any); ok {
				pubs = append(pubs, m)
			}
		}
	}
	if len(pubs) == 0 {
		return nil, nil
	}

	return &types.NodeDetail{
		Type: label,
		Details: map[string]any{
			"name":         asString(value(rec, "name")),
			"publications": pubs,
		},
	}, nil
}

// SearchPublications returns publications whose title, abstract, or linked
// entity names contain the query, case-insensitively, deduplicated by id.
func (s *Store) SearchPublications(ctx context.Context, query string) ([]types.Publication, error) {
	if s.mock {
		return mockSearchResults(), nil
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			`MATCH (p:Publication)
			 WHERE toLower(p.title) CONTAINS $q OR toLower(p.abstract) CONTAINS $q
			 RETURN p.id AS id, p.title AS title, p.year AS year, p.url AS url, p.abstract AS abstract
			 LIMIT 50
			 UNION
			 MATCH (p:Publication)-[]->(e)
			 WHERE toLower(e.name) CONTAINS $q
			 RETURN p.id AS id, p.title AS title, p.year AS year, p.url AS url, p.abstract AS abstract
			 LIMIT 50`,
			map[string]any{"q": strings.ToLower(query)})
		if err != nil {
			return nil, err
		}

		seen := make(map[string]bool)
		pubs := []types.Publication{}
		for res.Next(ctx) {
			rec := res.Record()
			id := asString(value(rec, "id"))
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			pubs = append(pubs, types.Publication{
				ID:       id,
				Title:    asString(value(rec, "title")),
				Year:     asInt(value(rec, "year")),
				URL:      asString(value(rec, "url")),
				Abstract: asString(value(rec, "abstract")),
			})
		}
		return pubs, res.Err()
	})
	if err != nil {
		s.log.Warnf("publication search failed, serving mock data: %v", err)
		return mockSearchResults(), nil
	}
	return out.([]types.Publication), nil
}

// Compare returns the common and unique related entities of two
// publications. Returns nil when either publication does not exist.
func (s *Store) Compare(ctx context.Context, id1, id2 string) (*types.Comparison, error) {
	if s.mock {
		return nil, ErrUnavailable
	}

	d1, err := s.NodeDetails(ctx, id1)
	if err != nil {
		return nil, err
	}
	d2, err := s.NodeDetails(ctx, id2)
	if err != nil {
		return nil, err
	}
	if d1 == nil || d2 == nil || d1.Type != "Publication" || d2.Type != "Publication" {
		return nil, nil
	}

	side := func(d *types.NodeDetail, other *types.NodeDetail) types.ComparisonSide {
		return types.ComparisonSide{
			ID:               asString(d.Details["id"]),
			Title:            asString(d.Details["title"]),
			Year:             asInt(d.Details["year"]),
			UniqueOrganisms:  difference(detailList(d, "organisms"), detailList(other, "organisms")),
			UniqueAssays:     difference(detailList(d, "assays"), detailList(other, "assays")),
			UniquePhenotypes: difference(detailList(d, "phenotypes"), detailList(other, "phenotypes")),
			UniqueMissions:   difference(detailList(d, "missions"), detailList(other, "missions")),
		}
	}

	return &types.Comparison{
		Publication1: side(d1, d2),
		Publication2: side(d2, d1),
		Common: types.CommonEntities{
			Organisms:  intersect(detailList(d1, "organisms"), detailList(d2, "organisms")),
			Assays:     intersect(detailList(d1, "assays"), detailList(d2, "assays")),
			Phenotypes: intersect(detailList(d1, "phenotypes"), detailList(d2, "phenotypes")),
			Missions:   intersect(detailList(d1, "missions"), detailList(d2, "missions")),
		},
	}, nil
}

func detailList(d *types.NodeDetail, key string) []string {
	if l, ok := d.Details[key].([]string); ok {
		return l
	}
	return nil
}

// intersect returns the sorted elements present in both lists.
func intersect(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, v := range b {
		inB[v] = true
	}
	out := []string{}
	for _, v := range a {
		if inB[v] {
			out = append(out, v)
			inB[v] = false
		}
	}
	sort.Strings(out)
	return out
}

// difference returns the sorted elements of a not present in b.
func difference(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, v := range b {
		inB[v] = true
	}
	seen := make(map[string]bool, len(a))
	out := []string{}
	for _, v := range a {
		if !inB[v] && !seen[v] {
			out = append(out, v)
			seen[v] = true
		}
	}
	sort.Strings(out)
	return out
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// value fetches a named field from a driver record, nil when absent.
func value(rec *neo4j.Record, key string) any {
	v, _ := rec.Get(key)
	return v
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func asInt(v any) int {
	switch t := v.(type) {
	case int64:
		return int(t)
	case int:
		return t
	case float64:
		return int(t)
	}
	return 0
}

func asStringList(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}
