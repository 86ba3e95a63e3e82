package version_test

import (
	"runtime"
	"strings"
	"testing"

	"github.com/ludo-technologies/codesim/internal/version"
	"github.com/stretchr/testify/assert"
)

func TestShort(t *testing.T) {
	assert.NotEmpty(t, version.Short())
	assert.Equal(t, version.Version, version.Short())
}

func TestInfoFormat(t *testing.T) {
	lines := strings.Split(version.Info(), "\n")
	expectedPrefixes := []string{"codesim ", "Commit:", "Built:", "Go:", "OS/Arch:"}

	assert.Len(t, lines, len(expectedPrefixes))
	for i, prefix := range expectedPrefixes {
		assert.True(t, strings.HasPrefix(lines[i], prefix), "line %d: %q", i+1, lines[i])
	}
	assert.Contains(t, lines[4], runtime.GOOS+"/"+runtime.GOARCH)
}

func TestGet(t *testing.T) {
	original := version.Version
	version.Version = "v1.2.3"
	defer func() { version.Version = original }()

	info := version.Get()
	assert.Equal(t, "v1.2.3", info.Version)
	assert.Equal(t, runtime.Version(), info.Go)
	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, runtime.GOARCH, info.Arch)
}
