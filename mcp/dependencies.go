package mcp

import (
	"github.com/ludo-technologies/codesim/app"
	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/config"
	"github.com/ludo-technologies/codesim/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	fileReader domain.FileReader
	config     *config.Config
	configPath string
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Dependencies{
		fileReader: service.NewFileReader(),
		config:     cfg,
		configPath: configPath,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty when discovery was used).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// BuildCompareUseCase assembles a fresh CompareUseCase with injected dependencies.
func (d *Dependencies) BuildCompareUseCase() (*app.CompareUseCase, error) {
	return app.NewCompareUseCaseBuilder().
		WithService(service.NewSimilarityService()).
		WithFileReader(d.fileReader).
		WithFormatter(service.NewCompareFormatter()).
		Build()
}

// NormalizeService returns the service behind normalize_snippet and tokenize_snippet.
func (d *Dependencies) NormalizeService() domain.NormalizeService {
	return service.NewNormalizeService()
}
