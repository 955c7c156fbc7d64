// Package config loads hostbind's optional TOML configuration file.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the resolved configuration. Zero-valued sections mean defaults.
type Config struct {
	Log     LogConfig
	Runtime RuntimeConfig
	Store   StoreConfig
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level string
}

// RuntimeConfig controls the foreign runtime.
type RuntimeConfig struct {
	// TraceRefCounts logs every incref/decref at debug level.
	TraceRefCounts bool
}

// StoreConfig controls result persistence.
type StoreConfig struct {
	// Path is the conformance results database. Empty disables persistence.
	Path string
}

type fileConfig struct {
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
	Runtime struct {
		TraceRefCounts bool `toml:"trace_refcounts"`
	} `toml:"runtime"`
	Store struct {
		Path string `toml:"path"`
	} `toml:"store"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path on top of Default. Keys absent from the file keep their
// default values; unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(raw.Log.Level))
	}
	if meta.IsDefined("runtime", "trace_refcounts") {
		cfg.Runtime.TraceRefCounts = raw.Runtime.TraceRefCounts
	}
	if meta.IsDefined("store", "path") {
		cfg.Store.Path = strings.TrimSpace(raw.Store.Path)
	}

	if _, err := cfg.SlogLevel(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SlogLevel maps Log.Level to a slog level.
func (c Config) SlogLevel() (slog.Level, error) {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.Log.Level)
	}
}
