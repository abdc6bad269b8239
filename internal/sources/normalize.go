// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/bioengine/pkg/types"
)

// Fixed per-source relevance priors. These are static priors assigned at
// normalization time, not computed text-similarity scores.
const (
	scoreOSDR        = 0.8
	scoreOpenData    = 0.85
	scoreTechReports = 0.85
	scoreExperiments = 0.9
)

// NormalizeStudy maps an OSDR study repository item to the canonical record.
func NormalizeStudy(raw map[string]any) types.Record {
	id := stringField(raw, "accession", "id", "study_id")
	link := "#"
	if id != "" {
		link = "https://osdr.nasa.gov/bio/repo/data/studies/" + id
	}
	return types.Record{
		ID:             id,
		Title:          stringField(raw, "title", "name"),
		Abstract:       stringField(raw, "description", "study_description", "summary"),
		Authors:        listField(raw, "principal_investigator", "pi"),
		Date:           stringField(raw, "date_created", "submission_date", "date"),
		Keywords:       listField(raw, "factors", "keywords"),
		Link:           link,
		Source:         types.SourceOSDRMain,
		Type:           "OSDR Data",
		RelevanceScore: scoreOSDR,
		IsExternal:     true,
	}
}

// NormalizeDataset maps a NASA Open Data Portal CKAN package to the canonical
// record. CKAN tags arrive as a list of tag objects or plain strings.
func NormalizeDataset(raw map[string]any) types.Record {
	id := stringField(raw, "id", "name")
	link := "#"
	if id != "" {
		slug := stringField(raw, "name")
		if slug == "" {
			slug = id
		}
		link = "https://data.nasa.gov/dataset/" + slug
	}
	return types.Record{
		ID:             id,
		Title:          stringField(raw, "title", "name"),
		Abstract:       stringField(raw, "notes", "description"),
		Authors:        listField(raw, "author", "maintainer"),
		Date:           stringField(raw, "metadata_modified", "metadata_created"),
		Keywords:       tagNames(raw["tags"]),
		Link:           link,
		Source:         types.SourceOSDROpenData,
		Type:           "NASA Dataset",
		RelevanceScore: scoreOpenData,
		IsExternal:     true,
	}
}

// NormalizeReport maps an NTRS publication to the canonical record.
func NormalizeReport(raw map[string]any) types.Record {
	id := stringField(raw, "id", "ntrs_id", "recordId")
	return types.Record{
		ID:             id,
		Title:          stringField(raw, "title", "documentTitle"),
		Abstract:       stringField(raw, "abstract", "description", "summary"),
		Authors:        listField(raw, "authors", "creator"),
		Date:           stringField(raw, "publication_date", "publicationDate", "date"),
		Keywords:       listField(raw, "keywords", "subject_terms", "subjectTerms"),
		Link:           citationLink(id),
		Source:         types.SourceTechReports,
		Type:           "Research Papers",
		RelevanceScore: scoreTechReports,
		IsExternal:     true,
	}
}

// NormalizeExperiment maps an NSLSL experiment record to the canonical
// record. The experiments view is served from the same index as NTRS, so the
// shapes overlap; only the alias order and display category differ.
func NormalizeExperiment(raw map[string]any) types.Record {
	id := stringField(raw, "experiment_id", "id", "recordId")
	return types.Record{
		ID:             id,
		Title:          stringField(raw, "title", "experiment_name", "documentTitle"),
		Abstract:       stringField(raw, "description", "objective", "abstract"),
		Authors:        listField(raw, "principal_investigator", "creator"),
		Date:           stringField(raw, "start_date", "date", "publicationDate"),
		Keywords:       listField(raw, "research_areas", "subjectTerms"),
		Link:           citationLink(id),
		Source:         types.SourceExperiments,
		Type:           "Space Life Sciences",
		RelevanceScore: scoreExperiments,
		IsExternal:     true,
	}
}

func citationLink(id string) string {
	if id == "" {
		return "#"
	}
	return "https://ntrs.nasa.gov/citations/" + id
}

// stringField probes the ordered key aliases and returns the first present
// non-empty value, stringified.
func stringField(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s := stringify(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// listField probes the ordered key aliases and returns the first alias that
// coerces to a non-empty list.
func listField(m map[string]any, keys ...string) []string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if l := coerceList(v); len(l) > 0 {
				return l
			}
		}
	}
	return []string{}
}

// coerceList applies the list coercion policy: nil becomes empty, a scalar
// becomes a single-element list, a list keeps its stringified elements with
// falsy entries dropped.
func coerceList(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if falsy(item) {
				continue
			}
			if s := stringify(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := stringify(v); s != "" {
			return []string{s}
		}
		return []string{}
	}
}

// tagNames flattens a CKAN tag list: each entry is either a tag object with
// display_name/name or a plain string.
func tagNames(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return coerceList(v)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			if s := stringField(m, "display_name", "name"); s != "" {
				out = append(out, s)
			}
			continue
		}
		if s := stringify(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func falsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	}
	return false
}

// stringify renders a decoded JSON scalar as a trimmed string. Objects and
// nested lists have no scalar rendering and map to "".
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatFloat(t, 'f', 0, 64)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	}
	return ""
}
