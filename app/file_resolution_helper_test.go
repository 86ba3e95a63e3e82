package app

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFilePaths_FilesKeepOrder(t *testing.T) {
	dir := writeSnippets(t, map[string]string{"b.py": pileSnippet, "a.py": stackSnippet})
	paths := []string{filepath.Join(dir, "b.py"), filepath.Join(dir, "a.py")}

	files, err := ResolveFilePaths(service.NewFileReader(), paths, true, []string{"**/*.py"}, nil)
	require.NoError(t, err)
	assert.Equal(t, paths, files)
}

func TestResolveFilePaths_ExpandsDirectories(t *testing.T) {
	dir := writeSnippets(t, map[string]string{
		"a.py":       stackSnippet,
		"sub/b.py":   pileSnippet,
		"sub/c.java": "class C {}",
	})

	files, err := ResolveFilePaths(service.NewFileReader(), []string{dir}, true, []string{"**/*.py"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.py"), filepath.Join(dir, "sub", "b.py")}, files)
}

func TestResolveFilePaths_MissingPath(t *testing.T) {
	_, err := ResolveFilePaths(service.NewFileReader(), []string{filepath.Join(t.TempDir(), "nope")}, true, nil, nil)
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeFileNotFound))
}

func TestKeepDomainError(t *testing.T) {
	wrap := func(err error) error { return domain.NewAnalysisError("wrapped", err) }

	parseErr := domain.NewParseError("a.py", nil)
	assert.Equal(t, parseErr, keepDomainError(parseErr, wrap))

	plain := errors.New("plain")
	wrapped := keepDomainError(plain, wrap)
	assert.True(t, domain.HasCode(wrapped, domain.ErrCodeAnalysisError))
	assert.ErrorIs(t, wrapped, plain)
}
