package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestString(t *testing.T) {
	info := BuildInfo{
		Version:   "v0.2.0",
		BuildDate: "2025-05-01T00:00:00Z",
		GitCommit: "0123456789abcdef",
		GoVersion: "go1.24.2",
		Platform:  "linux/amd64",
	}
	assert.Equal(t, "awsmods version v0.2.0 (commit 0123456, built 2025-05-01T00:00:00Z, go1.24.2 linux/amd64)", info.String())
}
