package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "empty",
			source: "",
			want:   []string{},
		},
		{
			name:   "assignment",
			source: "x = y + 1",
			want:   []string{"x", "=", "y", "+", "1"},
		},
		{
			name:   "multi-character operators preferred",
			source: "a==b a!=b a<=b a>=b i++ j-- k+=1 p->q r=>s x<<1 y>>2 ns::f u&&v w||z",
			want: []string{
				"a", "==", "b", "a", "!=", "b", "a", "<=", "b", "a", ">=", "b",
				"i", "++", "j", "--", "k", "+=", "1", "p", "->", "q", "r", "=>", "s",
				"x", "<<", "1", "y", ">>", "2", "ns", "::", "f", "u", "&&", "v", "w", "||", "z",
			},
		},
		{
			name:   "strict equality is one token",
			source: "a === b",
			want:   []string{"a", "===", "b"},
		},
		{
			name:   "numeric literals",
			source: "192.168.0.1 3.14 42",
			want:   []string{"192.168.0.1", "3.14", "42"},
		},
		{
			name:   "identifiers with underscores and digits",
			source: "_private var2 __init__",
			want:   []string{"_private", "var2", "__init__"},
		},
		{
			name:   "unrecognized characters skipped",
			source: "a @ b $ c ` d \" e '",
			want:   []string{"a", "b", "c", "d", "e"},
		},
		{
			name:   "comments stripped before tokenizing",
			source: "x = 1 # comment\n\"\"\"doc\"\"\"\ny = 2",
			want:   []string{"x", "=", "1", "y", "=", "2"},
		},
		{
			name:   "c++ template punctuation",
			source: "vector<int>& arr",
			want:   []string{"vector", "<", "int", ">", "&", "arr"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.source))
		})
	}
}

func TestTokenize_Deterministic(t *testing.T) {
	source := "def f(a, b):\n    return a ** b // 2"
	first := Tokenize(source)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Tokenize(source))
	}
}

func TestTokenizeStripped_DoesNotStrip(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, TokenizeStripped("a # b"))
	assert.Equal(t, []string{"a"}, Tokenize("a # b"))
}
