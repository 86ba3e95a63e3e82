package service

import (
	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/config"
)

// ConfigurationLoaderImpl resolves configuration files into requests
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// Load returns the effective configuration for configPath, or the one
// discovered from startDir when configPath is empty.
func (c *ConfigurationLoaderImpl) Load(configPath, startDir string) (*config.Config, error) {
	cfg, err := config.Load(configPath, startDir)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}
	return cfg, nil
}

// CompareRequestFrom builds a compare request from configuration
func (c *ConfigurationLoaderImpl) CompareRequestFrom(cfg *config.Config) (*domain.CompareRequest, error) {
	format, err := domain.ParseOutputFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return &domain.CompareRequest{
		NGramSize:      cfg.NGram.Size,
		MaxTokens:      cfg.Limits.MaxTokens,
		TimeoutSeconds: cfg.Limits.TimeoutSeconds,
		OutputFormat:   format,
	}, nil
}

// MatrixRequestFrom builds a matrix request from configuration
func (c *ConfigurationLoaderImpl) MatrixRequestFrom(cfg *config.Config) (*domain.MatrixRequest, error) {
	format, err := domain.ParseOutputFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return &domain.MatrixRequest{
		Recursive:          cfg.Matrix.Recursive,
		IncludePatterns:    cfg.Matrix.IncludePatterns,
		ExcludePatterns:    cfg.Matrix.ExcludePatterns,
		NGramSize:          cfg.NGram.Size,
		MaxTokens:          cfg.Limits.MaxTokens,
		MaxWorkers:         cfg.Limits.MaxWorkers,
		TimeoutSeconds:     cfg.Limits.TimeoutSeconds,
		PrefilterThreshold: cfg.Matrix.PrefilterThreshold,
		MinScore:           cfg.Matrix.MinScore,
		OutputFormat:       format,
	}, nil
}

// SubmitRequestFrom builds a submit request from configuration. The user id
// is not part of the configuration and must be set by the caller.
func (c *ConfigurationLoaderImpl) SubmitRequestFrom(cfg *config.Config) (*domain.SubmitRequest, error) {
	format, err := domain.ParseOutputFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return &domain.SubmitRequest{
		Server:         cfg.Moss.Server,
		Port:           cfg.Moss.Port,
		Language:       cfg.Moss.Language,
		MaxMatches:     cfg.Moss.MaxMatches,
		ShowCount:      cfg.Moss.ShowCount,
		Directory:      cfg.Moss.Directory(),
		ExcludeMatches: cfg.Moss.ExcludeMatches,
		Comment:        cfg.Moss.Comment,
		TimeoutSeconds: cfg.Limits.TimeoutSeconds,
		OutputFormat:   format,
	}, nil
}

// OutputFormatFrom returns the configured output format
func (c *ConfigurationLoaderImpl) OutputFormatFrom(cfg *config.Config) (domain.OutputFormat, error) {
	return domain.ParseOutputFormat(cfg.Output.Format)
}

// FindDefaultConfigFile returns the configuration file discovered from startDir, if any
func (c *ConfigurationLoaderImpl) FindDefaultConfigFile(startDir string) string {
	return config.NewTomlConfigLoader().FindConfigFile(startDir)
}

// CreateConfigTemplate writes a commented configuration file
func (c *ConfigurationLoaderImpl) CreateConfigTemplate(path string, force bool) error {
	if err := config.WriteTemplate(path, force); err != nil {
		return domain.NewOutputError("failed to create configuration file", err)
	}
	return nil
}
