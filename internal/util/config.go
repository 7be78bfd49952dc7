package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port                   int    `json:"port"`
	StorePath              string `json:"storePath"`
	BinanceBaseUrl         string `json:"binanceBaseUrl"`
	MultiversxBaseUrl      string `json:"multiversxBaseUrl"`
	HttpTimeoutSeconds     int    `json:"httpTimeoutSeconds"`
	CacheTtlSeconds        int    `json:"cacheTtlSeconds"`
	RefreshIntervalSeconds int    `json:"refreshIntervalSeconds"`
}

func DefaultConfig() Config {
	return Config{
		Port:                   3009,
		StorePath:              "data/portfolio.db",
		BinanceBaseUrl:         "https://api.binance.com",
		MultiversxBaseUrl:      "https://api.multiversx.com",
		HttpTimeoutSeconds:     10,
		CacheTtlSeconds:        300,
		RefreshIntervalSeconds: 60,
	}
}

func (c Config) HttpTimeout() time.Duration {
	return time.Duration(c.HttpTimeoutSeconds) * time.Second
}

func (c Config) CacheTtl() time.Duration {
	return time.Duration(c.CacheTtlSeconds) * time.Second
}

func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

func configFile() string {
	switch os.Getenv("PORTFOLIO_ENV") {
	case "dev":
		return "config-dev.json"
	case "test":
		return "config-test.json"
	default:
		return "config.json"
	}
}

func LoadConfig() (*Config, error) {
	return LoadConfigFile(configFile())
}

// LoadConfigFile overlays the file at path on top of DefaultConfig. A missing
// file is not an error. PORTFOLIO_PORT and PORTFOLIO_STORE_PATH win over
// both.
func LoadConfigFile(path string) (*Config, error) {
	config := DefaultConfig()

	f, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	if err == nil {
		if err := json.Unmarshal(f, &config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if port := os.Getenv("PORTFOLIO_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORTFOLIO_PORT %q: %w", port, err)
		}
		config.Port = p
	}
	if storePath := os.Getenv("PORTFOLIO_STORE_PATH"); storePath != "" {
		config.StorePath = storePath
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &config, nil
}

// Validate rejects ports and durations that cannot be used as-is. A zero
// interval would make the refresh ticker panic and a zero TTL would disable
// the cache.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	durations := []struct {
		name  string
		value int
	}{
		{"httpTimeoutSeconds", c.HttpTimeoutSeconds},
		{"cacheTtlSeconds", c.CacheTtlSeconds},
		{"refreshIntervalSeconds", c.RefreshIntervalSeconds},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", d.name, d.value)
		}
	}
	return nil
}
