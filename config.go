/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memstore

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/suparena/memstore/registry"
)

// Environment variables read by LoadConfig.
const (
	EnvMetadataFile = "MEMSTORE_METADATA_FILE"
	EnvLogLevel     = "MEMSTORE_LOG_LEVEL"
	EnvLogFormat    = "MEMSTORE_LOG_FORMAT"
)

// Config holds process-level settings for tools built on memstore.
type Config struct {
	// MetadataFile is the path of a YAML descriptor declaring entity sets.
	MetadataFile string
	// LogLevel is the minimum level logged.
	LogLevel slog.Level
	// LogFormat is "text", "json" or "none".
	LogFormat string
}

// LoadConfig loads the given .env files, or ./.env if present, and reads
// the MEMSTORE_* variables. Variables already set in the environment win.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if len(envFiles) > 0 || !stderrors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading env files: %w", err)
		}
	}

	cfg := Config{
		MetadataFile: os.Getenv(EnvMetadataFile),
		LogLevel:     slog.LevelInfo,
		LogFormat:    "text",
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	switch cfg.LogFormat {
	case "text", "json", "none":
	default:
		return Config{}, fmt.Errorf("%s: unknown format %q", EnvLogFormat, cfg.LogFormat)
	}
	return cfg, nil
}

// Logger builds the logger described by the configuration.
func (c Config) Logger() *Logger {
	switch c.LogFormat {
	case "json":
		return NewJSONLogger(c.LogLevel)
	case "none":
		return NoopLogger()
	default:
		return NewTextLogger(c.LogLevel)
	}
}

// LoadRegistry builds a registry from the configured metadata file and
// returns the parsed descriptor alongside it for its fixture data.
func (c Config) LoadRegistry() (*registry.Registry, *registry.Descriptor, error) {
	if c.MetadataFile == "" {
		return nil, nil, fmt.Errorf("no metadata file configured (set %s)", EnvMetadataFile)
	}
	d, err := registry.LoadDescriptor(c.MetadataFile)
	if err != nil {
		return nil, nil, err
	}
	reg := registry.New()
	if err := d.Apply(reg); err != nil {
		return nil, nil, err
	}
	return reg, d, nil
}
