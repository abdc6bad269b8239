// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/bioengine/internal/aggregate"
	"github.com/pdiddy/bioengine/internal/corpus"
	"github.com/pdiddy/bioengine/internal/graph"
	"github.com/pdiddy/bioengine/internal/server"
	"github.com/pdiddy/bioengine/internal/sources"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the aggregation backend HTTP server",
	Long: `Serve starts the HTTP backend: unified search over the local corpus and
NASA's public APIs, corpus statistics, and knowledge-graph exploration. The
corpus is loaded from CSV at startup; a missing corpus or unreachable graph
service degrades those routes, it does not stop the server.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8000)")
	serveCmd.Flags().Bool("verbose", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	corpusStore, err := corpus.NewStore(cfg.Corpus, log)
	if err != nil {
		return err
	}
	defer corpusStore.Close()
	if err := corpusStore.LoadCSV(cmd.Context(), cfg.Corpus.ArticlesCSV, cfg.Corpus.TaskBookCSV); err != nil {
		log.Warnf("corpus unavailable, local search will return no results: %v", err)
	}

	graphStore := graph.NewStore(cmd.Context(), cfg.Graph, log)
	defer graphStore.Close(context.Background())

	client := &http.Client{Timeout: cfg.Sources.Timeout}
	agg := aggregate.New(sources.DefaultAdapters(client, cfg.Sources), cfg.Sources, log)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(cfg.Server, log, agg, corpusStore, graphStore).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("bioengine listening")
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
