package cli

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withVersion(t *testing.T, v string) {
	t.Helper()
	original := version
	version = v
	t.Cleanup(func() {
		version = original
		versionShort = false
	})
}

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
	assert.NotNil(t, versionCmd.Flags().Lookup("short"))
}

func TestVersionCmd_PrintsBuildDetails(t *testing.T) {
	withVersion(t, "1.4.0")

	out, err := execute("version")

	require.NoError(t, err)
	assert.Contains(t, out, "geosearch version 1.4.0")
	assert.Contains(t, out, "mcp 0.1.0")
	assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
}

func TestVersionCmd_Short(t *testing.T) {
	withVersion(t, "1.4.0")

	out, err := execute("version", "--short")

	require.NoError(t, err)
	assert.Equal(t, "1.4.0\n", out)
}

func TestVersionCmd_DevByDefault(t *testing.T) {
	withVersion(t, "dev")

	out, err := execute("version")

	require.NoError(t, err)
	assert.Contains(t, out, "geosearch version dev")
}
