package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/mastermind/internal/mastermind"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	c, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "dev", c.Env)
	assert.Equal(t, ":8080", c.HTTP.Addr)
	assert.Equal(t, 4, c.Solver.Length)
	assert.Equal(t, mastermind.StrategyMinimax, c.Solver.Strategy)
	assert.True(t, c.Solver.UseBook)
	assert.Equal(t, 7*24*time.Hour, c.Redis.BookTTL)
	assert.Equal(t, 30*time.Minute, c.Solver.SessionTTL)
}

func TestLoadFromEnv_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SOLVER_LENGTH=5\nSOLVER_STRATEGY=i\n"), 0o600))
	t.Setenv("ENV_FILE", path)
	t.Cleanup(func() {
		_ = os.Unsetenv("SOLVER_LENGTH")
		_ = os.Unsetenv("SOLVER_STRATEGY")
	})

	c, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 5, c.Solver.Length)
	assert.Equal(t, mastermind.StrategyFiltered, c.Solver.Strategy)
}

func TestLoadFromEnv_Rejects(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{name: "length", env: map[string]string{"SOLVER_LENGTH": "7"}},
		{name: "strategy", env: map[string]string{"SOLVER_STRATEGY": "random"}},
		{name: "log format", env: map[string]string{"LOG_FORMAT": "xml"}},
		{name: "log level", env: map[string]string{"LOG_LEVEL": "trace"}},
		{name: "default secret in prod", env: map[string]string{"APP_ENV": "prod"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := LoadFromEnv()
			require.Error(t, err)
		})
	}
}
