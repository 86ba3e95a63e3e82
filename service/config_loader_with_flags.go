package service

import (
	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/config"
)

// ConfigurationLoaderWithFlags merges configuration with command-line
// values, letting only explicitly set flags win.
type ConfigurationLoaderWithFlags struct {
	loader      *ConfigurationLoaderImpl
	flagTracker *config.FlagTracker
}

// NewConfigurationLoaderWithFlags creates a loader that consults tracker
func NewConfigurationLoaderWithFlags(tracker *config.FlagTracker) *ConfigurationLoaderWithFlags {
	if tracker == nil {
		tracker = config.NewFlagTracker()
	}
	return &ConfigurationLoaderWithFlags{
		loader:      NewConfigurationLoader(),
		flagTracker: tracker,
	}
}

// Load returns the effective configuration
func (c *ConfigurationLoaderWithFlags) Load(configPath, startDir string) (*config.Config, error) {
	return c.loader.Load(configPath, startDir)
}

func (c *ConfigurationLoaderWithFlags) formatFlagSet() bool {
	return c.flagTracker.WasSet("json") || c.flagTracker.WasSet("yaml") || c.flagTracker.WasSet("csv")
}

func (c *ConfigurationLoaderWithFlags) mergeFormat(base, override domain.OutputFormat) domain.OutputFormat {
	if c.formatFlagSet() && override != "" {
		return override
	}
	return base
}

// LoadCompareRequest resolves configuration and applies override on top
func (c *ConfigurationLoaderWithFlags) LoadCompareRequest(configPath, startDir string, override *domain.CompareRequest) (*domain.CompareRequest, error) {
	cfg, err := c.Load(configPath, startDir)
	if err != nil {
		return nil, err
	}
	base, err := c.loader.CompareRequestFrom(cfg)
	if err != nil {
		return nil, err
	}

	merged := *base
	merged.A = override.A
	merged.B = override.B
	merged.ConfigPath = configPath
	merged.OutputWriter = override.OutputWriter
	merged.OutputPath = override.OutputPath
	merged.OutputFormat = c.mergeFormat(merged.OutputFormat, override.OutputFormat)
	merged.NGramSize = c.flagTracker.MergeInt(merged.NGramSize, override.NGramSize, "ngram")
	merged.MaxTokens = c.flagTracker.MergeInt(merged.MaxTokens, override.MaxTokens, "max-tokens")
	merged.TimeoutSeconds = c.flagTracker.MergeInt(merged.TimeoutSeconds, override.TimeoutSeconds, "timeout")
	return &merged, nil
}

// LoadMatrixRequest resolves configuration and applies override on top
func (c *ConfigurationLoaderWithFlags) LoadMatrixRequest(configPath, startDir string, override *domain.MatrixRequest) (*domain.MatrixRequest, error) {
	cfg, err := c.Load(configPath, startDir)
	if err != nil {
		return nil, err
	}
	base, err := c.loader.MatrixRequestFrom(cfg)
	if err != nil {
		return nil, err
	}

	merged := *base
	merged.Paths = override.Paths
	merged.ConfigPath = configPath
	merged.OutputWriter = override.OutputWriter
	merged.OutputPath = override.OutputPath
	merged.ShowProgress = override.ShowProgress
	merged.OutputFormat = c.mergeFormat(merged.OutputFormat, override.OutputFormat)
	if c.flagTracker.WasSet("no-recursive") {
		merged.Recursive = override.Recursive
	}
	merged.IncludePatterns = c.flagTracker.MergeStringSlice(merged.IncludePatterns, override.IncludePatterns, "include")
	merged.ExcludePatterns = c.flagTracker.MergeStringSlice(merged.ExcludePatterns, override.ExcludePatterns, "exclude")
	merged.NGramSize = c.flagTracker.MergeInt(merged.NGramSize, override.NGramSize, "ngram")
	merged.MaxTokens = c.flagTracker.MergeInt(merged.MaxTokens, override.MaxTokens, "max-tokens")
	merged.MaxWorkers = c.flagTracker.MergeInt(merged.MaxWorkers, override.MaxWorkers, "workers")
	merged.TimeoutSeconds = c.flagTracker.MergeInt(merged.TimeoutSeconds, override.TimeoutSeconds, "timeout")
	merged.PrefilterThreshold = c.flagTracker.MergeFloat64(merged.PrefilterThreshold, override.PrefilterThreshold, "prefilter")
	merged.MinScore = c.flagTracker.MergeFloat64(merged.MinScore, override.MinScore, "min-score")
	return &merged, nil
}

// LoadSubmitRequest resolves configuration and applies override on top
func (c *ConfigurationLoaderWithFlags) LoadSubmitRequest(configPath, startDir string, override *domain.SubmitRequest) (*domain.SubmitRequest, error) {
	cfg, err := c.Load(configPath, startDir)
	if err != nil {
		return nil, err
	}
	base, err := c.loader.SubmitRequestFrom(cfg)
	if err != nil {
		return nil, err
	}

	merged := *base
	merged.Snippets = override.Snippets
	merged.UserID = override.UserID
	merged.OutputWriter = override.OutputWriter
	merged.OutputPath = override.OutputPath
	merged.OutputFormat = c.mergeFormat(merged.OutputFormat, override.OutputFormat)
	merged.Server = c.flagTracker.MergeString(merged.Server, override.Server, "server")
	merged.Port = c.flagTracker.MergeInt(merged.Port, override.Port, "port")
	merged.Language = c.flagTracker.MergeString(merged.Language, override.Language, "language")
	merged.MaxMatches = c.flagTracker.MergeInt(merged.MaxMatches, override.MaxMatches, "max-matches")
	merged.ShowCount = c.flagTracker.MergeInt(merged.ShowCount, override.ShowCount, "show")
	merged.Directory = c.flagTracker.MergeBool(merged.Directory, override.Directory, "directory")
	merged.ExcludeMatches = c.flagTracker.MergeBool(merged.ExcludeMatches, override.ExcludeMatches, "exclude-matches")
	merged.Comment = c.flagTracker.MergeString(merged.Comment, override.Comment, "comment")
	merged.TimeoutSeconds = c.flagTracker.MergeInt(merged.TimeoutSeconds, override.TimeoutSeconds, "timeout")
	return &merged, nil
}

// LoadOutputFormat resolves only the output format, for commands without
// tunable settings
func (c *ConfigurationLoaderWithFlags) LoadOutputFormat(configPath, startDir string, override domain.OutputFormat) (domain.OutputFormat, error) {
	cfg, err := c.Load(configPath, startDir)
	if err != nil {
		return "", err
	}
	base, err := c.loader.OutputFormatFrom(cfg)
	if err != nil {
		return "", err
	}
	return c.mergeFormat(base, override), nil
}
