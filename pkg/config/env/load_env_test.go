package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv_FromEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NEWS_TEST_KEY=loaded\n"), 0o600))
	t.Setenv("ENV_PATH", path)
	t.Setenv("NEWS_TEST_KEY", "")
	require.NoError(t, os.Unsetenv("NEWS_TEST_KEY"))

	err := LoadDotEnv("local", "does-not-exist/.env")

	require.NoError(t, err)
	assert.Equal(t, "loaded", os.Getenv("NEWS_TEST_KEY"))
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	t.Setenv("ENV_PATH", filepath.Join(t.TempDir(), "missing.env"))

	assert.Error(t, LoadDotEnv("local", ""))
	assert.NoError(t, LoadDotEnv("production", ""))
}

func TestTypedGetters(t *testing.T) {
	t.Setenv("T_INT", "7")
	t.Setenv("T_BAD_INT", "seven")
	t.Setenv("T_FLOAT", "0.5")
	t.Setenv("T_DUR", "45s")
	t.Setenv("T_BOOL", "true")

	assert.Equal(t, 7, Int("T_INT", 1))
	assert.Equal(t, 1, Int("T_BAD_INT", 1))
	assert.Equal(t, 3, Int("T_UNSET_INT", 3))
	assert.Equal(t, 0.5, Float("T_FLOAT", 2))
	assert.Equal(t, 45*time.Second, Duration("T_DUR", time.Second))
	assert.Equal(t, "fallback", String("T_UNSET_STR", "fallback"))
	assert.True(t, Bool("T_BOOL"))
}
