package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mazerunner/meta"
)

func chdir(t *testing.T, dir string) {
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir()) // no .env here

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, meta.GRID_SIZE, cfg.GridSize)
	require.Equal(t, meta.WIN_COVERAGE, cfg.WinCoverage)
	require.Equal(t, 500*time.Millisecond, cfg.ThinkBudget)
	require.Equal(t, "127.0.0.1:8080", cfg.Addr())
	require.Equal(t, meta.PROTECTED_RADIUS, cfg.Rules().ProtectedRadius)
	require.Equal(t, 1, cfg.Workers)
}

func TestLoadOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GRID_SIZE", "12")
	t.Setenv("WIN_COVERAGE", "0.5")
	t.Setenv("THINK_BUDGET", "2s")
	t.Setenv("SEED", "42")

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, 12, cfg.Rules().Size)
	require.Equal(t, 0.5, cfg.Rules().WinCoverage)
	require.Equal(t, 2*time.Second, cfg.ThinkBudget)
	require.Equal(t, uint64(42), cfg.Seed)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("REST_PORT=9090\nLOG_LEVEL=debug\n"), 0o644))
	for _, key := range []string{"REST_PORT", "LOG_LEVEL"} {
		t.Setenv(key, "") // restored after the test
		os.Unsetenv(key)
	}

	cfg, err := Load(path)

	require.NoError(t, err)
	require.Equal(t, 9090, cfg.RESTPort)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadInvalid(t *testing.T) {
	chdir(t, t.TempDir())

	t.Run("not a number", func(t *testing.T) {
		t.Setenv("GRID_SIZE", "big")

		_, err := Load()

		require.ErrorContains(t, err, "GRID_SIZE")
	})

	t.Run("out of range", func(t *testing.T) {
		t.Setenv("WIN_COVERAGE", "1.5")

		_, err := Load()

		require.ErrorContains(t, err, "WIN_COVERAGE")
	})

	t.Run("grid above the cap", func(t *testing.T) {
		t.Setenv("GRID_SIZE", "1500")

		_, err := Load()

		require.ErrorContains(t, err, "size must be at most")
	})

	t.Run("no workers", func(t *testing.T) {
		t.Setenv("WORKERS", "0")

		_, err := Load()

		require.ErrorContains(t, err, "WORKERS")
	})
}
