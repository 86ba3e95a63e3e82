package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the dedicated configuration file searched for by the loader.
const ConfigFileName = ".codesim.toml"

// CodesimTomlConfig mirrors the sections of .codesim.toml and of the
// [tool.codesim] table in pyproject.toml. Pointer fields distinguish an
// unset key from an explicit zero value.
type CodesimTomlConfig struct {
	NGram  TomlNGramConfig  `toml:"ngram"`
	Limits TomlLimitsConfig `toml:"limits"`
	Matrix TomlMatrixConfig `toml:"matrix"`
	Output TomlOutputConfig `toml:"output"`
	Moss   TomlMossConfig   `toml:"moss"`
}

type TomlNGramConfig struct {
	Size *int `toml:"size"`
}

type TomlLimitsConfig struct {
	MaxTokens      *int `toml:"max_tokens"`
	MaxWorkers     *int `toml:"max_workers"`
	TimeoutSeconds *int `toml:"timeout_seconds"`
}

type TomlMatrixConfig struct {
	IncludePatterns    []string `toml:"include_patterns"`
	ExcludePatterns    []string `toml:"exclude_patterns"`
	Recursive          *bool    `toml:"recursive"`
	PrefilterThreshold *float64 `toml:"prefilter_threshold"`
	MinScore           *float64 `toml:"min_score"`
}

type TomlOutputConfig struct {
	Format string `toml:"format"`
}

type TomlMossConfig struct {
	Server         string  `toml:"server"`
	Port           *int    `toml:"port"`
	Language       string  `toml:"language"`
	MaxMatches     *int    `toml:"max_matches"`
	ShowCount      *int    `toml:"show_count"`
	Granularity    string  `toml:"granularity"`
	ExcludeMatches *bool   `toml:"exclude_matches"`
	Comment        *string `toml:"comment"`
}

// TomlConfigLoader handles TOML-only configuration loading
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig loads configuration with ruff-like priority:
// 1. .codesim.toml (dedicated config file)
// 2. pyproject.toml (with [tool.codesim] section)
// 3. defaults
//
// Both files are searched for from startDir upwards. A file that exists but
// cannot be parsed or fails validation is an error.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, error) {
	if path, err := findUpwards(startDir, ConfigFileName); err == nil {
		return l.LoadFile(path)
	}

	if path, err := findPyprojectToml(startDir); err == nil {
		config, found, err := loadPyprojectFile(path)
		if err != nil {
			return nil, err
		}
		if found {
			return config, nil
		}
	}

	return DefaultConfig(), nil
}

// LoadFile reads a single .codesim.toml file and merges it over defaults.
func (l *TomlConfigLoader) LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fileConfig CodesimTomlConfig
	if err := toml.Unmarshal(data, &fileConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	config := DefaultConfig()
	mergeTomlConfig(config, &fileConfig)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return config, nil
}

// FindConfigFile returns the path of the configuration file that LoadConfig
// would use for startDir, or "" when defaults apply.
func (l *TomlConfigLoader) FindConfigFile(startDir string) string {
	if path, err := findUpwards(startDir, ConfigFileName); err == nil {
		return path
	}
	if path, err := findPyprojectToml(startDir); err == nil {
		if _, found, err := loadPyprojectFile(path); err == nil && found {
			return path
		}
	}
	return ""
}

// findUpwards walks up the directory tree to find name
func findUpwards(startDir, name string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		dir = startDir
	}
	for {
		configPath := filepath.Join(dir, name)
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

// mergeTomlConfig applies every key present in the file over defaults
func mergeTomlConfig(defaults *Config, file *CodesimTomlConfig) {
	if file.NGram.Size != nil {
		defaults.NGram.Size = *file.NGram.Size
	}

	if file.Limits.MaxTokens != nil {
		defaults.Limits.MaxTokens = *file.Limits.MaxTokens
	}
	if file.Limits.MaxWorkers != nil {
		defaults.Limits.MaxWorkers = *file.Limits.MaxWorkers
	}
	if file.Limits.TimeoutSeconds != nil {
		defaults.Limits.TimeoutSeconds = *file.Limits.TimeoutSeconds
	}

	if len(file.Matrix.IncludePatterns) > 0 {
		defaults.Matrix.IncludePatterns = file.Matrix.IncludePatterns
	}
	if file.Matrix.ExcludePatterns != nil {
		defaults.Matrix.ExcludePatterns = file.Matrix.ExcludePatterns
	}
	if file.Matrix.Recursive != nil {
		defaults.Matrix.Recursive = *file.Matrix.Recursive
	}
	if file.Matrix.PrefilterThreshold != nil {
		defaults.Matrix.PrefilterThreshold = *file.Matrix.PrefilterThreshold
	}
	if file.Matrix.MinScore != nil {
		defaults.Matrix.MinScore = *file.Matrix.MinScore
	}

	if file.Output.Format != "" {
		defaults.Output.Format = file.Output.Format
	}

	if file.Moss.Server != "" {
		defaults.Moss.Server = file.Moss.Server
	}
	if file.Moss.Port != nil {
		defaults.Moss.Port = *file.Moss.Port
	}
	if file.Moss.Language != "" {
		defaults.Moss.Language = file.Moss.Language
	}
	if file.Moss.MaxMatches != nil {
		defaults.Moss.MaxMatches = *file.Moss.MaxMatches
	}
	if file.Moss.ShowCount != nil {
		defaults.Moss.ShowCount = *file.Moss.ShowCount
	}
	if file.Moss.Granularity != "" {
		defaults.Moss.Granularity = file.Moss.Granularity
	}
	if file.Moss.ExcludeMatches != nil {
		defaults.Moss.ExcludeMatches = *file.Moss.ExcludeMatches
	}
	if file.Moss.Comment != nil {
		defaults.Moss.Comment = *file.Moss.Comment
	}
}
