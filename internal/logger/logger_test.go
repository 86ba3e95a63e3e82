package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{" warn ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestInitWithWriter(t *testing.T) {
	defer Init("info")

	var buf bytes.Buffer
	InitWithWriter(&buf, "warn", false)

	log.Info().Msg("hidden")
	log.Warn().Str("file", "a.py").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"message":"shown"`)
	assert.Contains(t, out, `"file":"a.py"`)
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, "debug", LevelFor(true, false))
	assert.Equal(t, "debug", LevelFor(true, true))
	assert.Equal(t, "error", LevelFor(false, true))
	assert.Equal(t, "warn", LevelFor(false, false))
}
