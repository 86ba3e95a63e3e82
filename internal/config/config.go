package config

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/codesim/internal/constants"
	"github.com/spf13/viper"
)

// Supported values for [moss] granularity.
const (
	GranularityFile      = "file"
	GranularityDirectory = "directory"
)

// Config represents the main configuration structure
type Config struct {
	// NGram holds n-gram Jaccard settings
	NGram NGramConfig `mapstructure:"ngram" yaml:"ngram" toml:"ngram"`

	// Limits bounds work done per run
	Limits LimitsConfig `mapstructure:"limits" yaml:"limits" toml:"limits"`

	// Matrix holds settings for all-pairs runs
	Matrix MatrixConfig `mapstructure:"matrix" yaml:"matrix" toml:"matrix"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" toml:"output"`

	// Moss holds similarity-service options
	Moss MossConfig `mapstructure:"moss" yaml:"moss" toml:"moss"`
}

// NGramConfig holds configuration for the n-gram metric
type NGramConfig struct {
	// Size is the window length n
	Size int `mapstructure:"size" yaml:"size" toml:"size"`
}

// LimitsConfig holds resource limits
type LimitsConfig struct {
	// MaxTokens rejects snippets with more tokens; 0 disables the check
	MaxTokens int `mapstructure:"max_tokens" yaml:"max_tokens" toml:"max_tokens"`

	// MaxWorkers bounds concurrent pair scoring; 0 means one per CPU
	MaxWorkers int `mapstructure:"max_workers" yaml:"max_workers" toml:"max_workers"`

	// TimeoutSeconds bounds a whole run; 0 disables the timeout
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
}

// MatrixConfig holds configuration for matrix runs
type MatrixConfig struct {
	IncludePatterns    []string `mapstructure:"include_patterns" yaml:"include_patterns" toml:"include_patterns"`
	ExcludePatterns    []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns" toml:"exclude_patterns"`
	Recursive          bool     `mapstructure:"recursive" yaml:"recursive" toml:"recursive"`
	PrefilterThreshold float64  `mapstructure:"prefilter_threshold" yaml:"prefilter_threshold" toml:"prefilter_threshold"`
	MinScore           float64  `mapstructure:"min_score" yaml:"min_score" toml:"min_score"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv
	Format string `mapstructure:"format" yaml:"format" toml:"format"`
}

// MossConfig holds the similarity-service submission options
type MossConfig struct {
	Server         string `mapstructure:"server" yaml:"server" toml:"server"`
	Port           int    `mapstructure:"port" yaml:"port" toml:"port"`
	Language       string `mapstructure:"language" yaml:"language" toml:"language"`
	MaxMatches     int    `mapstructure:"max_matches" yaml:"max_matches" toml:"max_matches"`
	ShowCount      int    `mapstructure:"show_count" yaml:"show_count" toml:"show_count"`
	Granularity    string `mapstructure:"granularity" yaml:"granularity" toml:"granularity"`
	ExcludeMatches bool   `mapstructure:"exclude_matches" yaml:"exclude_matches" toml:"exclude_matches"`
	Comment        string `mapstructure:"comment" yaml:"comment" toml:"comment"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		NGram: NGramConfig{
			Size: constants.DefaultNGramSize,
		},
		Limits: LimitsConfig{
			MaxTokens:      constants.DefaultMaxTokens,
			MaxWorkers:     constants.DefaultMaxWorkers,
			TimeoutSeconds: constants.DefaultTimeoutSeconds,
		},
		Matrix: MatrixConfig{
			IncludePatterns:    []string{"**/*.py"},
			ExcludePatterns:    []string{},
			Recursive:          true,
			PrefilterThreshold: constants.DefaultPrefilterThreshold,
			MinScore:           constants.DefaultMinScore,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Moss: MossConfig{
			Server:      constants.DefaultMossServer,
			Port:        constants.DefaultMossPort,
			Language:    constants.DefaultMossLanguage,
			MaxMatches:  constants.DefaultMossMaxMatches,
			ShowCount:   constants.DefaultMossShowCount,
			Granularity: GranularityFile,
		},
	}
}

// LoadConfig loads configuration from an explicit file in any format viper
// understands (TOML, YAML, JSON). Environment variables prefixed with
// CODESIM_ override file values, e.g. CODESIM_NGRAM_SIZE=4.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix("codesim")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// bindEnvKeys registers every key so that Unmarshal sees environment
// overrides even when the file does not mention the key.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"ngram.size",
		"limits.max_tokens", "limits.max_workers", "limits.timeout_seconds",
		"matrix.recursive", "matrix.prefilter_threshold", "matrix.min_score",
		"output.format",
		"moss.server", "moss.port", "moss.language", "moss.max_matches",
		"moss.show_count", "moss.granularity", "moss.exclude_matches", "moss.comment",
	} {
		_ = v.BindEnv(key)
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.NGram.Size < 1 {
		return fmt.Errorf("ngram.size must be >= 1, got %d", c.NGram.Size)
	}

	if c.Limits.MaxTokens < 0 {
		return fmt.Errorf("limits.max_tokens must be >= 0, got %d", c.Limits.MaxTokens)
	}
	if c.Limits.MaxWorkers < 0 {
		return fmt.Errorf("limits.max_workers must be >= 0, got %d", c.Limits.MaxWorkers)
	}
	if c.Limits.TimeoutSeconds < 0 {
		return fmt.Errorf("limits.timeout_seconds must be >= 0, got %d", c.Limits.TimeoutSeconds)
	}

	if c.Matrix.PrefilterThreshold < 0 || c.Matrix.PrefilterThreshold > 1 {
		return fmt.Errorf("matrix.prefilter_threshold must be between 0.0 and 1.0, got %.2f", c.Matrix.PrefilterThreshold)
	}
	if c.Matrix.MinScore < 0 || c.Matrix.MinScore > 1 {
		return fmt.Errorf("matrix.min_score must be between 0.0 and 1.0, got %.2f", c.Matrix.MinScore)
	}

	switch c.Output.Format {
	case "text", "json", "yaml", "csv":
	default:
		return fmt.Errorf("output.format must be one of text, json, yaml, csv, got %q", c.Output.Format)
	}

	return c.validateMossConfig()
}

func (c *Config) validateMossConfig() error {
	m := c.Moss
	if m.Server == "" {
		return fmt.Errorf("moss.server cannot be empty")
	}
	if m.Port <= 0 || m.Port > 65535 {
		return fmt.Errorf("moss.port must be between 1 and 65535, got %d", m.Port)
	}
	if m.MaxMatches < 1 {
		return fmt.Errorf("moss.max_matches must be >= 1, got %d", m.MaxMatches)
	}
	if m.ShowCount < 1 {
		return fmt.Errorf("moss.show_count must be >= 1, got %d", m.ShowCount)
	}
	if m.Granularity != GranularityFile && m.Granularity != GranularityDirectory {
		return fmt.Errorf("moss.granularity must be %q or %q, got %q", GranularityFile, GranularityDirectory, m.Granularity)
	}
	return nil
}

// Directory reports whether submissions are grouped by directory.
func (m MossConfig) Directory() bool {
	return m.Granularity == GranularityDirectory
}
