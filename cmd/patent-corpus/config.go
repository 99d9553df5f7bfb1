package main

import (
	"github.com/spf13/viper"

	"github.com/pdiddy/patent-corpus/pkg/types"
)

// loadPipelineConfig builds the run configuration: built-in defaults
// overlaid with any values from the viper config file / environment.
// Flag overrides are applied afterwards by the individual commands.
func loadPipelineConfig() types.PipelineConfig {
	cfg := types.DefaultPipelineConfig()

	if v := viper.GetDuration("search.timeout"); v > 0 {
		cfg.Search.Timeout = v
	}
	if v := viper.GetString("search.user_agent"); v != "" {
		cfg.Search.UserAgent = v
	}
	if v := viper.GetInt("search.max_results"); v > 0 {
		cfg.Search.MaxResults = v
	}
	if v := viper.GetDuration("search.delay"); v > 0 {
		cfg.Search.Delay = v
	}
	if v := viper.GetDuration("search.gov_delay"); v > 0 {
		cfg.Search.GovDelay = v
	}
	if v := viper.GetInt("search.gov_term_limit"); v > 0 {
		cfg.Search.GovTermLimit = v
	}

	if v := viper.GetDuration("detail.timeout"); v > 0 {
		cfg.Detail.Timeout = v
	}
	if v := viper.GetString("detail.user_agent"); v != "" {
		cfg.Detail.UserAgent = v
	}
	if v := viper.GetDuration("detail.delay"); v > 0 {
		cfg.Detail.Delay = v
	}

	if v := viper.GetString("sink.output_dir"); v != "" {
		cfg.Sink.OutputDir = v
	}
	if v := viper.GetString("sink.file_prefix"); v != "" {
		cfg.Sink.FilePrefix = v
	}
	if viper.IsSet("sink.catalog") {
		cfg.Sink.Catalog = viper.GetBool("sink.catalog")
	}

	if v := viper.GetStringSlice("terms"); len(v) > 0 {
		cfg.Terms = v
	}
	if v := viper.GetStringSlice("classifications"); len(v) > 0 {
		cfg.Classifications = v
	}

	return cfg
}
