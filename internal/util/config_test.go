package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		config, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.json"))
		require.NoError(t, err)
		require.Equal(t, DefaultConfig(), *config)
		require.Equal(t, 5*time.Minute, config.CacheTtl())
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"port":8080,"cacheTtlSeconds":60}`), 0o600))

		config, err := LoadConfigFile(path)
		require.NoError(t, err)
		require.Equal(t, 8080, config.Port)
		require.Equal(t, time.Minute, config.CacheTtl())
		require.Equal(t, "https://api.binance.com", config.BinanceBaseUrl)
	})

	t.Run("env wins over file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"port":8080}`), 0o600))
		t.Setenv("PORTFOLIO_PORT", "9000")
		t.Setenv("PORTFOLIO_STORE_PATH", "/tmp/x.db")

		config, err := LoadConfigFile(path)
		require.NoError(t, err)
		require.Equal(t, 9000, config.Port)
		require.Equal(t, "/tmp/x.db", config.StorePath)
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{`), 0o600))

		_, err := LoadConfigFile(path)
		require.Error(t, err)
	})

	t.Run("non-positive durations are rejected", func(t *testing.T) {
		for _, body := range []string{
			`{"refreshIntervalSeconds":0}`,
			`{"cacheTtlSeconds":-5}`,
			`{"httpTimeoutSeconds":0}`,
			`{"port":0}`,
		} {
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

			_, err := LoadConfigFile(path)
			require.Error(t, err, body)
		}
	})
}
