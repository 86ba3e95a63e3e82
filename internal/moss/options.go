// Package moss implements a client for the MOSS software-similarity
// service. The wire protocol is line based: a registration line, option
// lines, a language negotiation, framed file uploads and a final query whose
// reply is the report URL.
package moss

import (
	"fmt"

	"github.com/ludo-technologies/codesim/internal/constants"
)

// Languages lists the language tags the service accepts.
var Languages = []string{
	"c", "cc", "java", "ml", "pascal", "ada", "lisp", "scheme", "haskell",
	"fortran", "ascii", "vhdl", "verilog", "perl", "matlab", "python", "mips",
	"prolog", "spice", "vb", "csharp", "modula2", "a8086", "javascript", "plsql",
}

// IsSupportedLanguage reports whether tag is one of Languages.
func IsSupportedLanguage(tag string) bool {
	for _, l := range Languages {
		if l == tag {
			return true
		}
	}
	return false
}

// Options are the per-submission settings sent before any file.
type Options struct {
	Language   string
	MaxMatches int
	ShowCount  int

	// Directory groups uploads by directory. It is the granularity setting
	// ("directory" vs "file") and goes on the wire as "directory 1" or
	// "directory 0".
	Directory bool

	// ExcludeMatches is sent as "X 1" or "X 0".
	ExcludeMatches bool

	Comment string
}

// DefaultOptions returns the service defaults.
func DefaultOptions() Options {
	return Options{
		Language:   constants.DefaultMossLanguage,
		MaxMatches: constants.DefaultMossMaxMatches,
		ShowCount:  constants.DefaultMossShowCount,
	}
}

// Validate checks the options before a connection is opened.
func (o Options) Validate() error {
	if !IsSupportedLanguage(o.Language) {
		return fmt.Errorf("unsupported language %q", o.Language)
	}
	if o.MaxMatches < 1 {
		return fmt.Errorf("max matches must be >= 1, got %d", o.MaxMatches)
	}
	if o.ShowCount < 1 {
		return fmt.Errorf("show count must be >= 1, got %d", o.ShowCount)
	}
	return nil
}

func boolFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}
