package lexer

import (
	"regexp"
	"strings"
)

var lineCommentRegex = regexp.MustCompile(`#.*`)

var tripleQuotes = []string{`"""`, `'''`}

// StripComments removes line comments and triple-quoted blocks (docstrings)
// from source code and trims surrounding whitespace.
//
// The scan is purely lexical: a '#' or a triple-quote sequence that appears
// inside an ordinary string literal is treated as comment syntax as well, so
// such literals can be cut short. Inputs that rely on these sequences inside
// strings are not guaranteed to survive stripping intact.
func StripComments(code string) string {
	code = lineCommentRegex.ReplaceAllString(code, "")
	code = stripTripleQuoted(code)
	return strings.TrimSpace(code)
}

// stripTripleQuoted removes every """...""" and '''...''' span. The leftmost
// opening delimiter wins and is closed by the next identical delimiter. An
// opening delimiter without a partner is kept and scanning resumes one byte
// later.
func stripTripleQuoted(code string) string {
	var b strings.Builder
	b.Grow(len(code))

	rest := code
	for {
		start, delim := indexTripleQuote(rest)
		if start < 0 {
			b.WriteString(rest)
			break
		}

		end := strings.Index(rest[start+len(delim):], delim)
		if end < 0 {
			b.WriteString(rest[:start+1])
			rest = rest[start+1:]
			continue
		}

		b.WriteString(rest[:start])
		rest = rest[start+len(delim)+end+len(delim):]
	}

	return b.String()
}

// indexTripleQuote returns the position of the leftmost triple-quote
// delimiter in s and which delimiter it is.
func indexTripleQuote(s string) (int, string) {
	best := -1
	bestDelim := ""
	for _, delim := range tripleQuotes {
		if idx := strings.Index(s, delim); idx >= 0 && (best < 0 || idx < best) {
			best = idx
			bestDelim = delim
		}
	}
	return best, bestDelim
}
