package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaths(t *testing.T) {
	base := t.TempDir()
	abs := filepath.Join(t.TempDir(), "elsewhere")

	paths, err := ResolvePaths(PathsConfig{
		ExecutableDir: base,
		DataDir:       "datasets",
		LogsDir:       abs,
	})
	require.NoError(t, err)

	assert.Equal(t, base, paths.ExecutableDir)
	assert.Equal(t, filepath.Join(base, "datasets"), paths.DataDir)
	assert.Equal(t, filepath.Join(base, DefaultWebDir), paths.WebDir)
	assert.Equal(t, abs, paths.LogsDir)
	assert.Equal(t, filepath.Join(abs, "app.log"), paths.GetLogPath("app.log"))
}

func TestResolvePaths_ExecutableDir(t *testing.T) {
	paths, err := ResolvePaths(PathsConfig{})
	require.NoError(t, err)

	exeDir, err := GetExecutableDir()
	require.NoError(t, err)
	assert.Equal(t, exeDir, paths.ExecutableDir)
	assert.True(t, filepath.IsAbs(paths.DataDir))
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	paths, err := ResolvePaths(PathsConfig{ExecutableDir: base})
	require.NoError(t, err)

	require.NoError(t, paths.EnsureDirectories())

	for _, dir := range []string{paths.DataDir, paths.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	assert.False(t, FileExists(paths.WebDir))
}
