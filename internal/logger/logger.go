// Package logger configures the process-wide zerolog logger. Diagnostics
// always go to stderr so that stdout stays reserved for reports and, in the
// MCP server, for JSON-RPC traffic.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init installs a console logger on stderr at the given level. Unknown
// levels fall back to info.
func Init(level string) {
	InitWithWriter(os.Stderr, level, true)
}

// InitWithWriter installs a logger writing to w. When console is false the
// output is line-delimited JSON.
func InitWithWriter(w io.Writer, level string, console bool) {
	zerolog.SetGlobalLevel(ParseLevel(level))
	zerolog.TimeFieldFormat = time.RFC3339

	out := w
	if console {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// LevelFor returns the level selected by the common --verbose and --quiet
// flags.
func LevelFor(verbose, quiet bool) string {
	switch {
	case verbose:
		return "debug"
	case quiet:
		return "error"
	default:
		return "warn"
	}
}
