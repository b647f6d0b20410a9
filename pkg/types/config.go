// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "target-screener/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// LiteratureConfig holds settings for the literature fetch stage.
type LiteratureConfig struct {
	HTTPConfig `yaml:",inline"`

	// PageSize is the number of records requested per page. Europe PMC caps
	// this at 1000; values outside (0, 1000] are clamped.
	PageSize int `json:"page_size" yaml:"page_size"`

	// MaxRetries bounds retry attempts per page request (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Workers bounds concurrent page fetches (default 4). Requests beyond
	// the bound block until a slot frees.
	Workers int `json:"workers" yaml:"workers"`

	// RequestsPerSecond is the client-side rate limit toward the API
	// (default 5).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// Email is sent with requests for polite-pool access, when set.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// LexiconConfig holds settings for the reference lexicon.
type LexiconConfig struct {
	// Path is the lexicon YAML file loaded once at startup.
	Path string `json:"path" yaml:"path"`
}

// LinkerConfig holds settings for the accession-linking stage.
type LinkerConfig struct {
	HTTPConfig `yaml:",inline"`

	// CachePath is the SQLite file backing the symbol→accession cache
	// (default "cache/accessions.db"; ":memory:" for an ephemeral cache).
	CachePath string `json:"cache_path" yaml:"cache_path"`

	// MaxRetries bounds retry attempts per lookup (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Workers bounds concurrent symbol lookups (default 4).
	Workers int `json:"workers" yaml:"workers"`

	// RequestsPerSecond is the client-side rate limit toward the API
	// (default 5).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// APIKey is an optional protein-database API key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// PipelineConfig groups all stage configurations for a screening run.
type PipelineConfig struct {
	Literature LiteratureConfig `json:"literature" yaml:"literature"`
	Lexicon    LexiconConfig    `json:"lexicon" yaml:"lexicon"`
	Linker     LinkerConfig     `json:"linker" yaml:"linker"`
}
