// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/bioengine/internal/aggregate"
	"github.com/pdiddy/bioengine/internal/corpus"
	"github.com/pdiddy/bioengine/internal/sources"
	"github.com/pdiddy/bioengine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a unified search from the terminal",
	Long: `Search runs one unified query against the local corpus and NASA's public
APIs, printing the deduplicated, ranked results. Results can be saved to a
YAML file for later review with --save.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("query", "", "search query (required)")
	searchCmd.Flags().Int("limit", 10, "maximum number of results to return")
	searchCmd.Flags().Bool("external", true, "query the external NASA APIs")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("save", "", "save results to a YAML file at this path")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	if query == "" {
		return fmt.Errorf("provide a search query with --query")
	}
	limit, _ := cmd.Flags().GetInt("limit")
	external, _ := cmd.Flags().GetBool("external")
	asJSON, _ := cmd.Flags().GetBool("json")
	savePath, _ := cmd.Flags().GetString("save")

	cfg := loadConfig()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	corpusStore, err := corpus.NewStore(cfg.Corpus, log)
	if err != nil {
		return err
	}
	defer corpusStore.Close()
	if err := corpusStore.LoadCSV(cmd.Context(), cfg.Corpus.ArticlesCSV, cfg.Corpus.TaskBookCSV); err != nil {
		fmt.Fprintf(os.Stderr, "warning: corpus unavailable: %v\n", err)
	}

	local, err := corpusStore.Search(cmd.Context(), query, limit)
	if err != nil {
		return err
	}

	var ext types.AggregateResponse
	if external {
		client := &http.Client{Timeout: cfg.Sources.Timeout}
		agg := aggregate.New(sources.DefaultAdapters(client, cfg.Sources), cfg.Sources, log)

		extLimit := limit / 2
		if extLimit < 1 {
			extLimit = 1
		}
		ext = agg.Fetch(cmd.Context(), query, extLimit)
	}

	out := aggregate.UnifiedOutput{
		Query:           query,
		Limit:           limit,
		IncludeExternal: external,
		Result:          aggregate.Unify(ext, local, limit),
	}

	if savePath != "" {
		if err := aggregate.WriteQueryFile(savePath, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved results to %s\n", savePath)
	}

	if asJSON {
		return aggregate.FormatJSON(out, os.Stdout)
	}
	aggregate.FormatTable(out, os.Stdout)
	return nil
}
