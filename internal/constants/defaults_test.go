package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	t.Run("engine defaults are usable", func(t *testing.T) {
		assert.GreaterOrEqual(t, DefaultNGramSize, 1)
		assert.Greater(t, DefaultMaxTokens, 0)
		assert.GreaterOrEqual(t, DefaultMaxWorkers, 0)
	})

	t.Run("thresholds are within valid range", func(t *testing.T) {
		for name, v := range map[string]float64{
			"prefilter": DefaultPrefilterThreshold,
			"min score": DefaultMinScore,
		} {
			assert.GreaterOrEqual(t, v, 0.0, name)
			assert.LessOrEqual(t, v, 1.0, name)
		}
	})

	t.Run("LSH bands fit in a signature", func(t *testing.T) {
		assert.LessOrEqual(t, DefaultLSHBands*DefaultLSHRows, DefaultMinHashFunctions)
	})

	t.Run("similarity service", func(t *testing.T) {
		assert.Equal(t, "moss.stanford.edu", DefaultMossServer)
		assert.Equal(t, 7690, DefaultMossPort)
		assert.Equal(t, 10, DefaultMossMaxMatches)
		assert.Equal(t, 250, DefaultMossShowCount)
	})
}
