package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/casegrade/internal/recognize"
	"github.com/pdiddy/casegrade/internal/secrets"
	"github.com/pdiddy/casegrade/internal/table"
	"github.com/pdiddy/casegrade/pkg/types"
)

// setDefaults registers every configuration key so that environment
// variables are seen by Unmarshal even when no config file sets them.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("env_file", ".env")

	v.SetDefault("extraction.input", "")
	v.SetDefault("extraction.output", "features.csv")
	v.SetDefault("extraction.text_column", table.DefaultTextColumn)
	v.SetDefault("extraction.keywords_file", "")
	v.SetDefault("extraction.workers", 1)

	v.SetDefault("grading.input", "features.csv")
	v.SetDefault("grading.output", "grades.csv")

	v.SetDefault("recognizer.kind", string(types.RecognizerNone))
	v.SetDefault("recognizer.url", "")
	v.SetDefault("recognizer.api_key", "")
	v.SetDefault("recognizer.timeout", 30*time.Second)
	v.SetDefault("recognizer.user_agent", "")
	v.SetDefault("recognizer.max_retries", 3)
	v.SetDefault("recognizer.dictionary", "")
	v.SetDefault("recognizer.max_compound_tokens", recognize.DefaultMaxCompoundTokens)

	v.SetDefault("cache.kind", string(types.CacheNone))
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.ttl", 24*time.Hour)

	v.SetDefault("store.db", "")
	v.SetDefault("metrics.textfile", "")
}

// bindFlags binds the named flags of cmd to configuration keys. Commands
// share keys, so binding happens for the command being run rather than at
// init time.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for flag, key := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			return fmt.Errorf("unknown flag %q", flag)
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// loadConfig decodes the merged file, environment and flag settings.
func loadConfig() (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	if cfg.Recognizer.APIKey == "" {
		cfg.Recognizer.APIKey = loadedSecrets.Get(secrets.NERAPIKey)
	}
	if cfg.Recognizer.UserAgent == "" {
		cfg.Recognizer.UserAgent = "casegrade/" + version
	}
	if cfg.Extraction.Workers <= 0 {
		cfg.Extraction.Workers = 1
	}
	return cfg, nil
}

var extractionFlags = map[string]string{
	"input":               "extraction.input",
	"output":              "extraction.output",
	"text-column":         "extraction.text_column",
	"keywords":            "extraction.keywords_file",
	"workers":             "extraction.workers",
	"recognizer":          "recognizer.kind",
	"ner-url":             "recognizer.url",
	"dictionary":          "recognizer.dictionary",
	"max-compound-tokens": "recognizer.max_compound_tokens",
	"cache":               "cache.kind",
	"redis-addr":          "cache.redis_addr",
}

// addExtractionFlags registers the flags shared by extract and run.
func addExtractionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "case-study table (.csv or .tsv) with a narrative column")
	cmd.Flags().StringP("output", "o", "features.csv", "feature table to write")
	cmd.Flags().String("text-column", table.DefaultTextColumn, "header of the narrative column")
	cmd.Flags().String("keywords", "", "YAML file replacing the built-in keyword sets")
	cmd.Flags().IntP("workers", "w", 1, "records extracted concurrently")
	cmd.Flags().String("recognizer", string(types.RecognizerNone), "entity recognizer: none, dictionary, http")
	cmd.Flags().String("ner-url", "", "NER service endpoint for the http recognizer")
	cmd.Flags().String("dictionary", "", "term dictionary YAML for the dictionary recognizer")
	cmd.Flags().Int("max-compound-tokens", recognize.DefaultMaxCompoundTokens, "longest word run looked up by the dictionary recognizer")
	cmd.Flags().String("cache", string(types.CacheNone), "recognizer cache: none, local, redis")
	cmd.Flags().String("redis-addr", "", "redis address for the redis cache")
}
