// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bioengine/internal/graph"
	"github.com/pdiddy/bioengine/pkg/types"
)

var seedCmd = &cobra.Command{
	Use:   "seed [file]",
	Short: "Load publications into the knowledge graph",
	Long: `Seed reads a YAML file of publications and creates them in the knowledge
graph, along with their related organisms, assays, phenotypes, and missions.
Requires a reachable graph service.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}

	var pubs []types.PublicationCreate
	if err := yaml.Unmarshal(data, &pubs); err != nil {
		return fmt.Errorf("parsing seed file: %w", err)
	}
	if len(pubs) == 0 {
		return fmt.Errorf("seed file contains no publications")
	}

	cfg := loadConfig()

	log := logrus.New()
	log.SetOutput(os.Stderr)

	store := graph.NewStore(cmd.Context(), cfg.Graph, log)
	defer store.Close(cmd.Context())
	if store.Mock() {
		return fmt.Errorf("graph service unreachable at %s", cfg.Graph.URI)
	}

	created := 0
	for _, pub := range pubs {
		id, err := store.CreatePublication(cmd.Context(), pub)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", pub.ID, err)
			continue
		}
		fmt.Printf("created %s\n", id)
		created++
	}

	if created == 0 {
		return fmt.Errorf("no publications could be created")
	}
	fmt.Printf("%d of %d publications created\n", created, len(pubs))
	return nil
}
