package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PAGEKIT_TEST_A=from-file\nPAGEKIT_TEST_B=from-file\n"), 0o600))

	t.Setenv("ENV_PATH", "")
	t.Setenv("PAGEKIT_TEST_A", "")
	require.NoError(t, os.Unsetenv("PAGEKIT_TEST_A"))
	t.Setenv("PAGEKIT_TEST_B", "from-process")

	require.NoError(t, LoadDotEnv("local", path))

	assert.Equal(t, "from-file", os.Getenv("PAGEKIT_TEST_A"))
	assert.Equal(t, "from-process", os.Getenv("PAGEKIT_TEST_B"))
}

func TestLoadDotEnv_EnvPathOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.env")
	require.NoError(t, os.WriteFile(path, []byte("PAGEKIT_TEST_C=custom\n"), 0o600))

	t.Setenv("ENV_PATH", path)
	t.Setenv("PAGEKIT_TEST_C", "")
	require.NoError(t, os.Unsetenv("PAGEKIT_TEST_C"))

	require.NoError(t, LoadDotEnv("local", "does-not-exist.env"))
	assert.Equal(t, "custom", os.Getenv("PAGEKIT_TEST_C"))
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	t.Setenv("ENV_PATH", "")

	assert.Error(t, LoadDotEnv("local", filepath.Join(t.TempDir(), "missing.env")))
	assert.NoError(t, LoadDotEnv("production", filepath.Join(t.TempDir(), "missing.env")))
}
