// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bioengine/pkg/types"
)

func TestQueryFileRoundTrip(t *testing.T) {
	out := UnifiedOutput{
		Query:           "microgravity",
		Limit:           10,
		IncludeExternal: true,
		Result: types.UnifiedResult{
			Count: 1,
			Results: []types.Record{{
				Title:          "Rodent Research muscle atrophy study",
				Source:         types.SourceOSDRMain,
				RelevanceScore: 0.8,
				Authors:        []string{"Smith, J."},
				Keywords:       []string{},
				IsExternal:     true,
			}},
			NASASources:  []types.Source{types.SourceOSDRMain},
			LocalSources: 0,
			Errors:       []string{"tech_reports: down"},
		},
	}

	path := filepath.Join(t.TempDir(), "query.yaml")
	require.NoError(t, WriteQueryFile(path, out))

	qf, err := ReadQueryFile(path)
	require.NoError(t, err)

	assert.Equal(t, "microgravity", qf.Query.Text)
	assert.Equal(t, 10, qf.Query.Limit)
	assert.True(t, qf.Query.IncludeExternal)
	require.Len(t, qf.Results, 1)
	assert.Equal(t, out.Result.Results[0].Title, qf.Results[0].Title)
	assert.Equal(t, 1, qf.Summary.Total)
	assert.Equal(t, []types.Source{types.SourceOSDRMain}, qf.Summary.SourcesQueried)
	assert.False(t, qf.Summary.Timestamp.IsZero())
}

func TestReadQueryFileMissing(t *testing.T) {
	_, err := ReadQueryFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(UnifiedOutput{}, &buf)
	assert.Contains(t, buf.String(), "No results found.")

	buf.Reset()
	FormatTable(UnifiedOutput{Result: types.UnifiedResult{
		Count: 1,
		Results: []types.Record{{
			Title:          "Microgravity effects on Arabidopsis",
			RelevanceScore: 0.8,
			Date:           "2014-08-01",
			Source:         types.SourceOSDRMain,
		}},
		Errors: []string{"experiments: timeout"},
	}}, &buf)

	out := buf.String()
	assert.Contains(t, out, "Microgravity effects on Arabidopsis")
	assert.Contains(t, out, "NASA OSDR")
	assert.Contains(t, out, "warning: experiments: timeout")
}
