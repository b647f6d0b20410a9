// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/target-screener/internal/secrets"
	"github.com/pdiddy/target-screener/pkg/types"
)

func init() {
	viper.SetDefault("http.timeout", "30s")
	viper.SetDefault("http.user_agent", "target-screener/"+version)

	viper.SetDefault("literature.page_size", 100)
	viper.SetDefault("literature.max_retries", 3)
	viper.SetDefault("literature.workers", 4)
	viper.SetDefault("literature.requests_per_second", 5.0)

	viper.SetDefault("lexicon.path", "data/lexicon.yaml")

	viper.SetDefault("linker.cache_path", "cache/accessions.db")
	viper.SetDefault("linker.max_retries", 3)
	viper.SetDefault("linker.workers", 4)
	viper.SetDefault("linker.requests_per_second", 5.0)
}

// pipelineConfig assembles stage configuration from the config file,
// environment, and loaded secrets.
func pipelineConfig() types.PipelineConfig {
	httpCfg := types.HTTPConfig{
		Timeout:   viper.GetDuration("http.timeout"),
		UserAgent: viper.GetString("http.user_agent"),
	}
	if httpCfg.Timeout <= 0 {
		httpCfg.Timeout = 30 * time.Second
	}

	email := viper.GetString("literature.email")
	if email == "" {
		email = secrets.Get(loadedSecrets, "epmc-email", "TARGET_SCREENER_EPMC_EMAIL")
	}
	apiKey := viper.GetString("linker.api_key")
	if apiKey == "" {
		apiKey = secrets.Get(loadedSecrets, "uniprot-api-key", "TARGET_SCREENER_UNIPROT_API_KEY")
	}

	return types.PipelineConfig{
		Literature: types.LiteratureConfig{
			HTTPConfig:        httpCfg,
			PageSize:          viper.GetInt("literature.page_size"),
			MaxRetries:        viper.GetInt("literature.max_retries"),
			Workers:           viper.GetInt("literature.workers"),
			RequestsPerSecond: viper.GetFloat64("literature.requests_per_second"),
			Email:             email,
		},
		Lexicon: types.LexiconConfig{
			Path: viper.GetString("lexicon.path"),
		},
		Linker: types.LinkerConfig{
			HTTPConfig:        httpCfg,
			CachePath:         viper.GetString("linker.cache_path"),
			MaxRetries:        viper.GetInt("linker.max_retries"),
			Workers:           viper.GetInt("linker.workers"),
			RequestsPerSecond: viper.GetFloat64("linker.requests_per_second"),
			APIKey:            apiKey,
		},
	}
}
