package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Load resolves the effective configuration. An explicit configPath is read
// through viper; otherwise .codesim.toml and pyproject.toml are searched for
// from startDir upwards, falling back to defaults.
func Load(configPath, startDir string) (*Config, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configPath, err)
		}
		if filepath.Base(configPath) == "pyproject.toml" {
			config, _, err := loadPyprojectFile(configPath)
			return config, err
		}
		return LoadConfig(configPath)
	}

	if startDir == "" {
		startDir = "."
	}
	return NewTomlConfigLoader().LoadConfig(startDir)
}

// ConfigTemplate is the commented .codesim.toml written by `codesim init`.
const ConfigTemplate = `# codesim configuration

[ngram]
# Window length for the n-gram Jaccard score
size = 3

[limits]
# Reject snippets with more tokens than this (0 disables the check)
max_tokens = 20000
# Concurrent pair scoring in matrix runs (0 = one per CPU)
max_workers = 0
# Abort a run after this many seconds (0 disables the timeout)
timeout_seconds = 300

[matrix]
include_patterns = ["**/*.py"]
exclude_patterns = []
recursive = true
# Skip full scoring for pairs whose MinHash estimate is below this
prefilter_threshold = 0.0
# Only report pairs scoring at least this on either metric
min_score = 0.0

[output]
# text, json, yaml or csv
format = "text"

[moss]
server = "moss.stanford.edu"
port = 7690
language = "c"
max_matches = 10
show_count = 250
# "file" or "directory"
granularity = "file"
exclude_matches = false
comment = ""
`

// WriteTemplate writes ConfigTemplate to path, refusing to overwrite unless force is set.
func WriteTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.WriteFile(path, []byte(ConfigTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
