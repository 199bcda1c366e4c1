// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

// Package config loads process configuration from a YAML file and
// command-line flags, flags taking precedence.
package config

import (
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Config is the karmaloom process configuration.
type Config struct {
	// DatabaseURL is the PostgreSQL connection string. Falls back to the
	// DATABASE_URL environment variable when unset.
	DatabaseURL string `koanf:"database_url"`

	// MetricsAddr is the observability listen address; empty disables the
	// metrics endpoint.
	MetricsAddr string `koanf:"metrics_addr"`

	Log LogConfig `koanf:"log"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	// Format is "json" or "text".
	Format string `koanf:"format"`
	// Level is "debug", "info", "warn", or "error".
	Level string `koanf:"level"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		MetricsAddr: "127.0.0.1:9100",
		Log: LogConfig{
			Format: "json",
			Level:  "info",
		},
	}
}

// flagKeys maps CLI flag names to their configuration keys.
var flagKeys = map[string]string{
	"database-url": "database_url",
	"metrics-addr": "metrics_addr",
	"log-format":   "log.format",
	"log-level":    "log.level",
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (skipped when path is empty), then flags.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").With("path", path).Wrap(err)
		}
	}

	if flags != nil {
		// Only explicitly set flags participate, so flag defaults never
		// clobber file or built-in values.
		provider := posflag.ProviderWithValue(flags, ".", k, func(key, value string) (string, any) {
			mapped, ok := flagKeys[key]
			if !ok {
				return "", nil
			}
			if f := flags.Lookup(key); f == nil || !f.Changed {
				return "", nil
			}
			return mapped, value
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	cfg := Defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_DECODE_FAILED").Wrap(err)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	return &cfg, nil
}
