package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeService_Normalize(t *testing.T) {
	svc := NewNormalizeService()

	resp, err := svc.Normalize(context.Background(), domain.Snippet{
		Name: "add.py",
		Code: "def add(a, b):\n    total = a + b  # sum\n    return total\n",
	})
	require.NoError(t, err)

	assert.Equal(t, "add.py", resp.Name)
	assert.Equal(t, "def <FUNC>(<VAR>, <VAR>):\n    <VAR> = <VAR> + <VAR>\n    return <VAR>", resp.Code)
	assert.Equal(t, []string{"a", "b", "total"}, resp.Variables)
	assert.Equal(t, []string{"add"}, resp.Functions)
	assert.Empty(t, resp.Classes)
	assert.Equal(t, []string{"def", "<", "FUNC", ">", "("}, resp.Tokens[:5])
}

func TestNormalizeService_ParseError(t *testing.T) {
	svc := NewNormalizeService()

	_, err := svc.Normalize(context.Background(), domain.Snippet{Name: "broken.py", Code: "def broken(:\n"})
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeParseError))
	assert.Contains(t, err.Error(), "broken.py")
}

func TestNormalizeService_Tokenize(t *testing.T) {
	svc := NewNormalizeService()

	resp := svc.Tokenize(domain.Snippet{Name: "s.py", Code: "x = 1  # one\n\"\"\"two\"\"\"\nx += 2"})
	assert.Equal(t, "s.py", resp.Name)
	assert.Equal(t, []string{"x", "=", "1", "x", "+=", "2"}, resp.Tokens)
	assert.Equal(t, 6, resp.Count)

	empty := svc.Tokenize(domain.Snippet{Name: "empty", Code: ""})
	assert.Equal(t, 0, empty.Count)
	assert.Empty(t, empty.Tokens)
}

func TestNormalizeFormatter(t *testing.T) {
	f := NewNormalizeFormatter()
	normalized := &domain.NormalizeResponse{
		Name:      "a.py",
		Code:      "<VAR> = 1",
		Variables: []string{"x"},
		Functions: []string{"f"},
		Classes:   []string{},
	}

	var buf bytes.Buffer
	require.NoError(t, f.WriteNormalized(normalized, domain.OutputFormatText, &buf))
	assert.Equal(t, "<VAR> = 1\n", buf.String())

	buf.Reset()
	require.NoError(t, f.WriteNormalized(normalized, domain.OutputFormatCSV, &buf))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"role", "name"}, {"variable", "x"}, {"function", "f"}}, records)

	buf.Reset()
	require.NoError(t, f.WriteNormalized(normalized, domain.OutputFormatJSON, &buf))
	assert.Contains(t, buf.String(), `"code": "<VAR> = 1"`)

	tokens := &domain.TokensResponse{Name: "a.py", Count: 2, Tokens: []string{"x", "="}}
	buf.Reset()
	require.NoError(t, f.WriteTokens(tokens, domain.OutputFormatText, &buf))
	assert.Equal(t, "x\n=\n", buf.String())

	buf.Reset()
	require.NoError(t, f.WriteTokens(tokens, domain.OutputFormatYAML, &buf))
	assert.Contains(t, buf.String(), "count: 2")

	err = f.WriteTokens(tokens, domain.OutputFormat("html"), &buf)
	assert.True(t, domain.HasCode(err, domain.ErrCodeUnsupportedFormat))
}
