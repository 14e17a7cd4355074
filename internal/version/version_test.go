package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	oldCommit, oldTime := GitCommit, BuildTime
	t.Cleanup(func() { GitCommit, BuildTime = oldCommit, oldTime })

	GitCommit, BuildTime = "unknown", "unknown"
	assert.Equal(t, "gopmm v"+Version, String())

	GitCommit, BuildTime = "abc123", "2026-01-02"
	assert.Equal(t, "gopmm v"+Version+" (abc123) built 2026-01-02", String())
}
