// Package riskcfg loads engine and server configuration from
// environment variables and an optional YAML file via viper, the
// pack's idiomatic config-loading layer.
package riskcfg

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every parameter the engine's CLI and server need: risk
// figures, Monte-Carlo controls, and external service locations.
type Config struct {
	Alpha      float64       `mapstructure:"alpha"`
	Paths      int           `mapstructure:"paths"`
	Seed       int64         `mapstructure:"seed"`
	Threads    int           `mapstructure:"threads"`
	HorizonDay float64       `mapstructure:"horizon_days"`

	DatabaseURL string `mapstructure:"database_url"`
	RedisURL    string `mapstructure:"redis_url"`

	ListenAddr string        `mapstructure:"listen_addr"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
}

// Defaults mirrors the CLI defaults from the original engine's main:
// alpha=0.99, paths=200000, seed=123456789, horizon=1 trading day.
func Defaults() Config {
	return Config{
		Alpha:      0.99,
		Paths:      200000,
		Seed:       123456789,
		Threads:    0,
		HorizonDay: 1.0,
		ListenAddr: ":8080",
		CacheTTL:   30 * time.Second,
	}
}

// Load builds a *viper.Viper bound to environment variables under the
// RISK_ prefix (e.g. RISK_ALPHA, RISK_DATABASE_URL) and, if configPath
// is non-empty, an optional YAML file, then unmarshals into Config.
// Environment variables take precedence over the file, and the file
// over Defaults. Command-line flags are not consulted.
func Load(configPath string) (Config, error) {
	v := viper.New()

	defaults := Defaults()
	v.SetDefault("alpha", defaults.Alpha)
	v.SetDefault("paths", defaults.Paths)
	v.SetDefault("seed", defaults.Seed)
	v.SetDefault("threads", defaults.Threads)
	v.SetDefault("horizon_days", defaults.HorizonDay)
	v.SetDefault("listen_addr", defaults.ListenAddr)
	v.SetDefault("cache_ttl", defaults.CacheTTL)
	v.SetDefault("database_url", defaults.DatabaseURL)
	v.SetDefault("redis_url", defaults.RedisURL)

	v.SetEnvPrefix("risk")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
