// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karmaloom/karmaloom/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "karmaloom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("database-url", "", "")
	flags.String("metrics-addr", "", "")
	flags.String("log-format", "", "")
	flags.String("log-level", "", "")
	return flags
}

func TestLoad(t *testing.T) {
	t.Run("defaults apply without file or flags", func(t *testing.T) {
		cfg, err := config.Load("", nil)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:9100", cfg.MetricsAddr)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfig(t, "database_url: postgres://localhost/karmaloom\nlog:\n  format: text\n")
		cfg, err := config.Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "postgres://localhost/karmaloom", cfg.DatabaseURL)
		assert.Equal(t, "text", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level, "unset keys keep defaults")
	})

	t.Run("flags override file", func(t *testing.T) {
		path := writeConfig(t, "log:\n  level: debug\n  format: text\n")
		flags := newFlags()
		require.NoError(t, flags.Parse([]string{"--log-level=error"}))

		cfg, err := config.Load(path, flags)
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.Log.Level)
		assert.Equal(t, "text", cfg.Log.Format, "unchanged flags do not clobber the file")
	})

	t.Run("flag defaults do not clobber built-in defaults", func(t *testing.T) {
		flags := newFlags()
		require.NoError(t, flags.Parse(nil))

		cfg, err := config.Load("", flags)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:9100", cfg.MetricsAddr)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := config.Load("/nonexistent/karmaloom.yaml", nil)
		require.Error(t, err)
	})

	t.Run("environment fallback for database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://env/karmaloom")
		cfg, err := config.Load("", nil)
		require.NoError(t, err)
		assert.Equal(t, "postgres://env/karmaloom", cfg.DatabaseURL)
	})
}
