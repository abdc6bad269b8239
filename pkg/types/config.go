package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network requests.
type HTTPConfig struct {
	// Timeout is the per-call HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with outbound requests
	// (e.g. "bioengine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SourcesConfig holds settings for the external source adapters and the
// fan-out coordinator.
type SourcesConfig struct {
	HTTPConfig `yaml:",inline"`

	// OSDRMainURL is the OSDR study repository search endpoint.
	OSDRMainURL string `json:"osdr_main_url" yaml:"osdr_main_url"`

	// OpenDataURL is the NASA Open Data Portal CKAN package_search endpoint.
	OpenDataURL string `json:"open_data_url" yaml:"open_data_url"`

	// NTRSURL is the Technical Reports Server search endpoint.
	NTRSURL string `json:"ntrs_url" yaml:"ntrs_url"`

	// NSLSLURL is the Space Life Sciences Library search endpoint.
	NSLSLURL string `json:"nslsl_url" yaml:"nslsl_url"`

	// RateLimitDelay is the courtesy pause after each outbound call (default 500ms).
	RateLimitDelay time.Duration `json:"rate_limit_delay" yaml:"rate_limit_delay"`

	// CacheTTL is the freshness window for cached aggregate responses (default 1h).
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`

	// MaxResults is the default per-source result cap when the caller does
	// not supply a limit (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// CorpusConfig holds settings for the local CSV corpus.
type CorpusConfig struct {
	// ArticlesCSV is the path to the publications corpus file.
	ArticlesCSV string `json:"articles_csv" yaml:"articles_csv"`

	// TaskBookCSV is the path to the Task Book projects corpus file.
	TaskBookCSV string `json:"taskbook_csv" yaml:"taskbook_csv"`

	// DBPath is the SQLite database location; ":memory:" keeps the corpus
	// entirely in process memory (the default).
	DBPath string `json:"db_path" yaml:"db_path"`
}

// GraphConfig holds the property-graph connection settings.
type GraphConfig struct {
	// URI is the Bolt endpoint (e.g. "bolt://localhost:7687").
	URI string `json:"uri" yaml:"uri"`

	User     string `json:"user" yaml:"user"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	// MaxRetries is the number of connection attempts before falling back
	// to mock mode (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// RetryDelay is the wait between connection attempts (default 5s).
	RetryDelay time.Duration `json:"retry_delay" yaml:"retry_delay"`
}

// ServerConfig holds the HTTP surface settings.
type ServerConfig struct {
	// Addr is the listen address (default ":8000").
	Addr string `json:"addr" yaml:"addr"`

	// APIKey protects the search routes via the x-api-key header. Empty
	// disables the check.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// AllowedOrigins lists the frontend origins permitted by CORS.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// Config groups all component configurations.
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Sources SourcesConfig `json:"sources" yaml:"sources"`
	Corpus  CorpusConfig  `json:"corpus" yaml:"corpus"`
	Graph   GraphConfig   `json:"graph" yaml:"graph"`
}
