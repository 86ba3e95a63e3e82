package domain

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestDecodeSource(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"string", "x = 1", "x = 1"},
		{"bytes", []byte("x = 1"), "x = 1"},
		{"invalid utf8 dropped", []byte("a\xffb\xfe"), "ab"},
		{"reader", strings.NewReader("def f(): pass"), "def f(): pass"},
		{"reader with invalid utf8", bytes.NewReader([]byte("\xc3x")), "x"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeSource(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeSource_Errors(t *testing.T) {
	for _, value := range []interface{}{nil, 42, 3.14, []string{"x"}} {
		_, err := DecodeSource(value)
		require.Error(t, err)
		assert.True(t, HasCode(err, ErrCodeInputType), "value %v", value)
	}

	_, err := DecodeSource(failingReader{})
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidInput, ErrorCode(err))
}
