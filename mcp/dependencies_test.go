package mcp

import (
	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/config"
)

func NewTestDependencies(fr domain.FileReader, cfg *config.Config, path string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Dependencies{
		fileReader: fr,
		config:     cfg,
		configPath: path,
	}
}
