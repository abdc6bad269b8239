// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// FormatTable writes a unified result as a human-readable table to w.
func FormatTable(out UnifiedOutput, w io.Writer) {
	if len(out.Result.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-6s  %-10s  %s\n",
		"Rank", "Title", "Score", "Date", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, r := range out.Result.Results {
		title := r.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		date := r.Date
		if len(date) > 10 {
			date = date[:10]
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-6.2f  %-10s  %s\n",
			i+1, title, r.RelevanceScore, date, r.Source.DisplayName())
	}

	fmt.Fprintf(w, "\n%d results (%d local)", out.Result.Count, out.Result.LocalSources)
	if len(out.Result.Errors) > 0 {
		fmt.Fprintf(w, ", %d source error(s)", len(out.Result.Errors))
	}
	fmt.Fprintln(w)
	for _, e := range out.Result.Errors {
		fmt.Fprintf(w, "warning: %s\n", e)
	}
}

// FormatJSON writes a unified result as indented JSON to w.
func FormatJSON(out UnifiedOutput, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Result)
}
