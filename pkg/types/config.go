package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that call a
// network service.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "casegrade/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// RecognizerKind selects the entity recogniser implementation.
type RecognizerKind string

const (
	RecognizerNone       RecognizerKind = "none"
	RecognizerDictionary RecognizerKind = "dictionary"
	RecognizerHTTP       RecognizerKind = "http"
)

// RecognizerConfig holds settings for the entity recogniser.
type RecognizerConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Kind selects none, dictionary, or http.
	Kind RecognizerKind `json:"kind" yaml:"kind" mapstructure:"kind"`

	// URL is the NER service endpoint for the http recogniser.
	URL string `json:"url" yaml:"url" mapstructure:"url"`

	// APIKey is sent as a bearer token to the NER service when set.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// MaxRetries is the number of retries on 429/503 responses (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// Dictionary is the YAML term dictionary for the dictionary recogniser.
	Dictionary string `json:"dictionary" yaml:"dictionary" mapstructure:"dictionary"`

	// MaxCompoundTokens is the longest run of words looked up as one term (default 4).
	MaxCompoundTokens int `json:"max_compound_tokens" yaml:"max_compound_tokens" mapstructure:"max_compound_tokens"`
}

// CacheKind selects the recogniser lookup cache.
type CacheKind string

const (
	CacheNone  CacheKind = "none"
	CacheLocal CacheKind = "local"
	CacheRedis CacheKind = "redis"
)

// CacheConfig holds settings for the recogniser lookup cache.
type CacheConfig struct {
	Kind      CacheKind     `json:"kind" yaml:"kind" mapstructure:"kind"`
	RedisAddr string        `json:"redis_addr" yaml:"redis_addr" mapstructure:"redis_addr"`
	TTL       time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`
}

// ExtractionConfig holds settings for the feature extraction stage.
type ExtractionConfig struct {
	// InputPath is the CSV/TSV file holding the case narratives.
	InputPath string `json:"input" yaml:"input" mapstructure:"input"`

	// OutputPath is the feature table CSV written by extraction.
	OutputPath string `json:"output" yaml:"output" mapstructure:"output"`

	// TextColumn is the header of the narrative column (default "Case Study").
	TextColumn string `json:"text_column" yaml:"text_column" mapstructure:"text_column"`

	// KeywordsFile optionally replaces the built-in keyword sets.
	KeywordsFile string `json:"keywords_file" yaml:"keywords_file" mapstructure:"keywords_file"`

	// Workers bounds concurrent record extraction (default 1).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// GradingConfig holds settings for the grading stage.
type GradingConfig struct {
	// InputPath is the feature table CSV read by grading.
	InputPath string `json:"input" yaml:"input" mapstructure:"input"`

	// OutputPath is the grade table CSV.
	OutputPath string `json:"output" yaml:"output" mapstructure:"output"`
}

// StoreConfig holds settings for run persistence.
type StoreConfig struct {
	// DBPath is the SQLite database file. Empty disables persistence.
	DBPath string `json:"db" yaml:"db" mapstructure:"db"`
}

// MetricsConfig holds settings for batch metrics.
type MetricsConfig struct {
	// Textfile is the prometheus textfile written at the end of a run.
	Textfile string `json:"textfile" yaml:"textfile" mapstructure:"textfile"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	LogLevel   string           `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction" mapstructure:"extraction"`
	Grading    GradingConfig    `json:"grading" yaml:"grading" mapstructure:"grading"`
	Recognizer RecognizerConfig `json:"recognizer" yaml:"recognizer" mapstructure:"recognizer"`
	Cache      CacheConfig      `json:"cache" yaml:"cache" mapstructure:"cache"`
	Store      StoreConfig      `json:"store" yaml:"store" mapstructure:"store"`
	Metrics    MetricsConfig    `json:"metrics" yaml:"metrics" mapstructure:"metrics"`
}
