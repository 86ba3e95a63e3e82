package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ludo-technologies/codesim/internal/config"
	"github.com/ludo-technologies/codesim/internal/logger"
	"github.com/ludo-technologies/codesim/internal/version"
	"github.com/ludo-technologies/codesim/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
)

const serverName = "codesim"

func main() {
	configPath := flag.String("config", "", "Configuration file path")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	// MCP uses stdout for JSON-RPC
	logger.InitWithWriter(os.Stderr, *logLevel, false)
	config.LoadEnv()

	cfg, err := config.Load(*configPath, ".")
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		os.Exit(1)
	}

	server := mcpserver.NewMCPServer(
		serverName,
		version.Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	mcp.RegisterTools(server, mcp.NewHandlerSet(mcp.NewDependencies(cfg, *configPath)))

	log.Info().
		Str("version", version.Version).
		Strs("tools", []string{"compare_snippets", "normalize_snippet", "tokenize_snippet"}).
		Msg("server ready, waiting for MCP client connection")

	// blocks until the client disconnects
	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
