package editorconfig

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_MissingFileFallsBackToDefault returns Default() without
// creating anything on disk.
func TestLoad_MissingFileFallsBackToDefault(t *testing.T) {
	chdirTemp(t)

	p, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), p)

	_, statErr := os.Stat(EditorConfigPath)
	assert.True(t, os.IsNotExist(statErr))
}

// TestSaveLoad_RoundTrip persists and restores preferences.
func TestSaveLoad_RoundTrip(t *testing.T) {
	chdirTemp(t)

	want := EditorPrefs{
		ShowFPS:        true,
		GridVisible:    false,
		ShowHints:      true,
		UniformScaling: true,
		ScenePath:      "projects/bench.yaml",
	}
	require.NoError(t, Save(want))

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// TestLoad_InvalidJSONFallsBackToDefault ignores a corrupt config file.
func TestLoad_InvalidJSONFallsBackToDefault(t *testing.T) {
	chdirTemp(t)

	require.NoError(t, os.MkdirAll("config", 0755))
	require.NoError(t, os.WriteFile(EditorConfigPath, []byte("{not json"), 0644))

	p, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
