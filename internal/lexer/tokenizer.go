// Package lexer implements the language-agnostic front end of the similarity
// engine: comment stripping and a lenient, regexp driven tokenizer.
package lexer

import "regexp"

// tokenRegex lists alternatives in priority order. Go's regexp uses
// leftmost-first alternation, so multi-character operators must precede the
// single-character punctuation and dotted quads must precede decimals.
var tokenRegex = regexp.MustCompile(
	`===|==|!=|<=|>=|\+\+|--|\+=|-=|\*=|/=|&&|\|\||::|->|=>|<<|>>` +
		`|[A-Za-z_][\p{L}\p{N}_]*` +
		`|\d+\.\d+\.\d+\.\d+|\d+\.\d+|\d+` +
		`|[()\[\]{};,.<>+\-*/%=&|^!~?:]`,
)

// Tokenize strips comments from code and splits the remainder into tokens.
// Characters outside the grammar are skipped without error.
func Tokenize(code string) []string {
	return TokenizeStripped(StripComments(code))
}

// TokenizeStripped tokenizes code that has already been comment-stripped.
func TokenizeStripped(code string) []string {
	matches := tokenRegex.FindAllString(code, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}
