package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// PyprojectToml represents the parts of pyproject.toml read by codesim
type PyprojectToml struct {
	Tool ToolConfig `toml:"tool"`
}

// ToolConfig represents the [tool] section
type ToolConfig struct {
	Codesim *CodesimTomlConfig `toml:"codesim"`
}

// LoadPyprojectConfig loads configuration from the nearest pyproject.toml.
// Defaults are returned when there is no pyproject.toml or it has no
// [tool.codesim] table.
func LoadPyprojectConfig(startDir string) (*Config, error) {
	configPath, err := findPyprojectToml(startDir)
	if err != nil {
		return DefaultConfig(), nil
	}

	config, _, err := loadPyprojectFile(configPath)
	return config, err
}

// loadPyprojectFile parses path and reports whether it had a [tool.codesim] table
func loadPyprojectFile(path string) (*Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var pyproject PyprojectToml
	if err := toml.Unmarshal(data, &pyproject); err != nil {
		return nil, false, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	config := DefaultConfig()
	if pyproject.Tool.Codesim == nil {
		return config, false, nil
	}

	mergeTomlConfig(config, pyproject.Tool.Codesim)
	if err := config.Validate(); err != nil {
		return nil, true, fmt.Errorf("invalid [tool.codesim] configuration in %s: %w", path, err)
	}
	return config, true, nil
}

// findPyprojectToml walks up the directory tree to find pyproject.toml
func findPyprojectToml(startDir string) (string, error) {
	return findUpwards(startDir, "pyproject.toml")
}
