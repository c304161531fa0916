package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dbvalidate/pkg/config"
	"github.com/dmitrymomot/dbvalidate/pkg/datasource"
)

type testConfig struct {
	Name    string        `env:"CFGTEST_NAME" envDefault:"default_value"`
	Port    int           `env:"CFGTEST_PORT" envDefault:"42"`
	Timeout time.Duration `env:"CFGTEST_TIMEOUT" envDefault:"1s"`
}

type requiredConfig struct {
	Required string `env:"CFGTEST_REQUIRED,required"`
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// unsetAfter removes variables a .env file put into the process environment.
func unsetAfter(t *testing.T, keys ...string) {
	t.Cleanup(func() {
		for _, k := range keys {
			_ = os.Unsetenv(k)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("reads environment variables", func(t *testing.T) {
		t.Setenv("CFGTEST_NAME", "test_value")
		t.Setenv("CFGTEST_PORT", "100")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "test_value", cfg.Name)
		assert.Equal(t, 100, cfg.Port)
		assert.Equal(t, time.Second, cfg.Timeout)
	})

	t.Run("uses defaults", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "default_value", cfg.Name)
		assert.Equal(t, 42, cfg.Port)
	})

	t.Run("missing required value", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *testConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})

	t.Run("reads explicit env files", func(t *testing.T) {
		path := writeEnvFile(t, "CFGTEST_NAME=from_file\nCFGTEST_TIMEOUT=250ms\n")
		unsetAfter(t, "CFGTEST_NAME", "CFGTEST_TIMEOUT")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg, config.WithEnvFiles(path)))
		assert.Equal(t, "from_file", cfg.Name)
		assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	})

	t.Run("process environment wins over env files", func(t *testing.T) {
		t.Setenv("CFGTEST_PORT", "8080")
		path := writeEnvFile(t, "CFGTEST_PORT=9090\n")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg, config.WithEnvFiles(path)))
		assert.Equal(t, 8080, cfg.Port)
	})

	t.Run("missing explicit env file", func(t *testing.T) {
		var cfg testConfig
		err := config.Load(&cfg, config.WithEnvFiles(filepath.Join(t.TempDir(), "nope.env")))
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	})

	t.Run("prefix", func(t *testing.T) {
		t.Setenv("APP_CFGTEST_NAME", "prefixed")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg, config.WithPrefix("APP_")))
		assert.Equal(t, "prefixed", cfg.Name)
	})
}

func TestLoad_DatasourceConfig(t *testing.T) {
	t.Setenv("DB_DSN", "file:test.db")
	t.Setenv("DB_MAX_OPEN_CONNS", "4")

	var cfg datasource.Config
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "sqlite", cfg.Driver)
	assert.Equal(t, "file:test.db", cfg.DSN)
	assert.Equal(t, "primary", cfg.ConnectionName)
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on error", func(t *testing.T) {
		var cfg requiredConfig
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})

	t.Run("fills the value", func(t *testing.T) {
		t.Setenv("CFGTEST_REQUIRED", "set")
		var cfg requiredConfig
		assert.NotPanics(t, func() { config.MustLoad(&cfg) })
		assert.Equal(t, "set", cfg.Required)
	})
}
