package service

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatResolver_Determine(t *testing.T) {
	resolver := NewOutputFormatResolver()

	tests := []struct {
		name            string
		json, yaml, csv bool
		fallback        string
		wantFormat      domain.OutputFormat
		wantExt         string
		wantErr         bool
	}{
		{name: "default text", wantFormat: domain.OutputFormatText, wantExt: "txt"},
		{name: "json flag", json: true, wantFormat: domain.OutputFormatJSON, wantExt: "json"},
		{name: "yaml flag", yaml: true, wantFormat: domain.OutputFormatYAML, wantExt: "yaml"},
		{name: "csv flag", csv: true, wantFormat: domain.OutputFormatCSV, wantExt: "csv"},
		{name: "configured fallback", fallback: "json", wantFormat: domain.OutputFormatJSON, wantExt: "json"},
		{name: "flag beats fallback", csv: true, fallback: "json", wantFormat: domain.OutputFormatCSV, wantExt: "csv"},
		{name: "two flags", json: true, yaml: true, wantErr: true},
		{name: "bad fallback", fallback: "html", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, ext, err := resolver.Determine(tt.json, tt.yaml, tt.csv, tt.fallback)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, format)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestFileOutputWriter(t *testing.T) {
	t.Run("writer", func(t *testing.T) {
		var out, status bytes.Buffer
		w := NewFileOutputWriter(&status)
		err := w.Write(&out, "", domain.OutputFormatText, func(w io.Writer) error {
			_, err := io.WriteString(w, "hello")
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, "hello", out.String())
		assert.Empty(t, status.String())
	})

	t.Run("file", func(t *testing.T) {
		var status bytes.Buffer
		path := filepath.Join(t.TempDir(), "reports", "out.json")
		w := NewFileOutputWriter(&status)
		err := w.Write(nil, path, domain.OutputFormatJSON, func(w io.Writer) error {
			_, err := io.WriteString(w, "{}")
			return err
		})
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))
		assert.Contains(t, status.String(), "JSON report generated: ")
	})

	t.Run("write failure", func(t *testing.T) {
		w := NewFileOutputWriter(io.Discard)
		err := w.Write(io.Discard, "", domain.OutputFormatText, func(io.Writer) error {
			return errors.New("boom")
		})
		assert.True(t, domain.HasCode(err, domain.ErrCodeOutputError))
	})
}
