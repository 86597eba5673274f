/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memstore_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/memstore"
)

// clearEnv unsets the memstore variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{memstore.EnvMetadataFile, memstore.EnvLogLevel, memstore.EnvLogFormat} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)
		cfg, err := memstore.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Empty(t, cfg.MetadataFile)

		_, _, err = cfg.LoadRegistry()
		assert.Error(t, err)
	})

	t.Run("env file", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		meta := filepath.Join(dir, "meta.yaml")
		require.NoError(t, os.WriteFile(meta, []byte(libraryYAML), 0o600))
		envFile := filepath.Join(dir, "test.env")
		env := "MEMSTORE_METADATA_FILE=" + meta + "\nMEMSTORE_LOG_LEVEL=debug\nMEMSTORE_LOG_FORMAT=JSON\n"
		require.NoError(t, os.WriteFile(envFile, []byte(env), 0o600))

		cfg, err := memstore.LoadConfig(envFile)
		require.NoError(t, err)
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.NotNil(t, cfg.Logger())

		reg, d, err := cfg.LoadRegistry()
		require.NoError(t, err)
		assert.Equal(t, []string{"Books", "Shelves"}, reg.EntitySetNames())
		assert.Len(t, d.Data["Shelves"], 2)
	})

	t.Run("environment wins", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(memstore.EnvLogLevel, "warn")
		cfg, err := memstore.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	})

	t.Run("invalid values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(memstore.EnvLogFormat, "xml")
		_, err := memstore.LoadConfig()
		assert.Error(t, err)

		t.Setenv(memstore.EnvLogFormat, "text")
		t.Setenv(memstore.EnvLogLevel, "loud")
		_, err = memstore.LoadConfig()
		assert.Error(t, err)

		_, err = memstore.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
		assert.Error(t, err)
	})
}
