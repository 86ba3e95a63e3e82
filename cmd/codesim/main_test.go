package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/config"
	"github.com/ludo-technologies/codesim/internal/constants"
	"github.com/ludo-technologies/codesim/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	stackFile = "def push(stack, item):\n    stack.append(item)\n    return len(stack)\n"
	pileFile  = "def add(pile, thing):\n    pile.append(thing)\n    return len(pile)\n"
)

func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--quiet"}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFiles(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stack.py"), []byte(stackFile), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pile.py"), []byte(pileFile), 0o644))
	return dir
}

func TestCompareCommand_JSON(t *testing.T) {
	dir := writeFiles(t)

	stdout, _, err := executeCommand(t, "compare", "--json", filepath.Join(dir, "stack.py"), filepath.Join(dir, "pile.py"))
	require.NoError(t, err)

	var resp domain.CompareResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, 1.0, resp.Scores.NGramJaccard)
	assert.Equal(t, 3, resp.Scores.NGramSize)
	assert.Greater(t, resp.Scores.Subsequence, 0.5)
}

func TestCompareCommand_ConfigAndFlags(t *testing.T) {
	dir := writeFiles(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte("[ngram]\nsize = 5\n\n[output]\nformat = \"json\"\n"), 0o644))

	stdout, _, err := executeCommand(t, "compare", filepath.Join(dir, "stack.py"), filepath.Join(dir, "pile.py"))
	require.NoError(t, err)
	assert.Contains(t, stdout, `"ngram_size": 5`, "configured size and format apply")

	stdout, _, err = executeCommand(t, "compare", "--ngram", "2", "--yaml", filepath.Join(dir, "stack.py"), filepath.Join(dir, "pile.py"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "ngram_size: 2", "explicit flags win")
}

func TestCompareCommand_OutputFile(t *testing.T) {
	dir := writeFiles(t)
	outPath := filepath.Join(dir, "reports", "compare.csv")

	stdout, stderr, err := executeCommand(t, "compare", "--csv", "-o", outPath, filepath.Join(dir, "stack.py"), filepath.Join(dir, "pile.py"))
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "CSV report generated")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "snippet_a,snippet_b,subsequence"))
}

func TestCompareCommand_Errors(t *testing.T) {
	dir := writeFiles(t)

	_, _, err := executeCommand(t, "compare", filepath.Join(dir, "stack.py"))
	assert.Error(t, err, "two files are required")

	_, _, err = executeCommand(t, "compare", "--json", "--csv", filepath.Join(dir, "stack.py"), filepath.Join(dir, "pile.py"))
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidInput))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.py"), []byte("def broken(:\n"), 0o644))
	_, _, err = executeCommand(t, "compare", filepath.Join(dir, "stack.py"), filepath.Join(dir, "broken.py"))
	assert.True(t, domain.HasCode(err, domain.ErrCodeParseError))
}

func TestMatrixCommand(t *testing.T) {
	dir := writeFiles(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "loop.py"), []byte("for i in range(3):\n    print(i)\n"), 0o644))

	stdout, _, err := executeCommand(t, "matrix", "--no-progress", "--json", "--workers", "2", dir)
	require.NoError(t, err)

	var resp domain.MatrixResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, 3, resp.Statistics.FilesAnalyzed)
	assert.Equal(t, 3, resp.Statistics.PairsTotal)
	assert.NotEmpty(t, resp.RunID)
}

func TestNormalizeAndTokensCommands(t *testing.T) {
	dir := writeFiles(t)

	stdout, _, err := executeCommand(t, "normalize", filepath.Join(dir, "pile.py"))
	require.NoError(t, err)
	assert.Equal(t, "def <FUNC>(<VAR>, <VAR>):\n    <VAR>.<VAR>(<VAR>)\n    return len(<VAR>)\n", stdout)

	stdout, _, err = executeCommand(t, "tokens", filepath.Join(dir, "pile.py"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "def\nadd\n(\npile\n"))
}

func TestSubmitCommand_RequiresUserID(t *testing.T) {
	t.Setenv(constants.EnvEnvironment, constants.EnvProduction)
	t.Setenv(constants.EnvMossUserID, "")
	dir := writeFiles(t)

	_, _, err := executeCommand(t, "submit", dir)
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeConfigError))
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.ConfigFileName)

	stdout, _, err := executeCommand(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration file created")

	_, _, err = executeCommand(t, "init", "--config", path)
	assert.True(t, domain.HasCode(err, domain.ErrCodeOutputError))

	_, _, err = executeCommand(t, "init", "--config", path, "--force")
	assert.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version.Short()+"\n", stdout)

	stdout, _, err = executeCommand(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"version"`)
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, domain.NewConfigError("MOSS_USER_ID must be set", nil))
	assert.Contains(t, buf.String(), "Error: Configuration file or settings error")
	assert.Contains(t, buf.String(), "MOSS_USER_ID must be set")
	assert.Contains(t, buf.String(), "Suggestions:")

	buf.Reset()
	printError(&buf, errors.New("mystery"))
	assert.Contains(t, buf.String(), "Error: mystery")
}
