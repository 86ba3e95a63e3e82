package app

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/stretchr/testify/require"
)

const (
	stackSnippet = `def push(stack, item):
    stack.append(item)
    return len(stack)
`
	pileSnippet = `def add(pile, thing):
    pile.append(thing)
    return len(pile)
`
	loopSnippet = `total = 0
for i in range(10):
    total += i
print(total)
`
)

// mockReportWriter records calls and writes into a buffer instead of a file
type mockReportWriter struct {
	called     bool
	lastPath   string
	lastFormat domain.OutputFormat
	buf        bytes.Buffer
	err        error
}

func (mw *mockReportWriter) Write(writer io.Writer, outputPath string, format domain.OutputFormat, writeFunc func(io.Writer) error) error {
	mw.called = true
	mw.lastPath = outputPath
	mw.lastFormat = format
	if err := writeFunc(&mw.buf); err != nil {
		return err
	}
	return mw.err
}

func writeSnippets(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}
