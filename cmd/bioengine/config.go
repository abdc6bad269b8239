// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/bioengine/pkg/types"
)

const defaultUserAgent = "bioengine/0.1"

func init() {
	viper.SetDefault("server.addr", ":8000")
	viper.SetDefault("server.allowed_origins", []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	})

	viper.SetDefault("sources.timeout", 15*time.Second)
	viper.SetDefault("sources.user_agent", defaultUserAgent)
	viper.SetDefault("sources.osdr_main_url", "https://osdr.nasa.gov/bio/repo/search")
	viper.SetDefault("sources.open_data_url", "https://data.nasa.gov/api/3/action/package_search")
	viper.SetDefault("sources.ntrs_url", "https://ntrs.nasa.gov/api/search")
	viper.SetDefault("sources.nslsl_url", "https://public.ksc.nasa.gov/nslsl/api/search")
	viper.SetDefault("sources.rate_limit_delay", 500*time.Millisecond)
	viper.SetDefault("sources.cache_ttl", time.Hour)
	viper.SetDefault("sources.max_results", 20)

	viper.SetDefault("corpus.articles_csv", "data/publications.csv")
	viper.SetDefault("corpus.taskbook_csv", "data/taskbook.csv")
	viper.SetDefault("corpus.db_path", ":memory:")

	viper.SetDefault("graph.uri", "bolt://localhost:7687")
	viper.SetDefault("graph.user", "neo4j")
	viper.SetDefault("graph.max_retries", 3)
	viper.SetDefault("graph.retry_delay", 5*time.Second)
}

// loadConfig assembles the runtime configuration from viper, with secrets
// filling credentials the config file leaves empty.
func loadConfig() types.Config {
	return types.Config{
		Server: types.ServerConfig{
			Addr:           viper.GetString("server.addr"),
			APIKey:         secretDefault("api-key", viper.GetString("server.api_key")),
			AllowedOrigins: viper.GetStringSlice("server.allowed_origins"),
		},
		Sources: types.SourcesConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("sources.timeout"),
				UserAgent: viper.GetString("sources.user_agent"),
			},
			OSDRMainURL:    viper.GetString("sources.osdr_main_url"),
			OpenDataURL:    viper.GetString("sources.open_data_url"),
			NTRSURL:        viper.GetString("sources.ntrs_url"),
			NSLSLURL:       viper.GetString("sources.nslsl_url"),
			RateLimitDelay: viper.GetDuration("sources.rate_limit_delay"),
			CacheTTL:       viper.GetDuration("sources.cache_ttl"),
			MaxResults:     viper.GetInt("sources.max_results"),
		},
		Corpus: types.CorpusConfig{
			ArticlesCSV: viper.GetString("corpus.articles_csv"),
			TaskBookCSV: viper.GetString("corpus.taskbook_csv"),
			DBPath:      viper.GetString("corpus.db_path"),
		},
		Graph: types.GraphConfig{
			URI:        viper.GetString("graph.uri"),
			User:       viper.GetString("graph.user"),
			Password:   secretDefault("neo4j-password", viper.GetString("graph.password")),
			MaxRetries: viper.GetInt("graph.max_retries"),
			RetryDelay: viper.GetDuration("graph.retry_delay"),
		},
	}
}
