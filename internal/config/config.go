// Package config loads kutils settings from the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvLogLevel  = "KU_LOG_LEVEL"
	EnvLogFormat = "KU_LOG_FORMAT"
)

// Config holds process-wide settings.
type Config struct {
	LogLevel  string // debug, info, warn, error
	LogFormat string // console or json
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{LogLevel: "info", LogFormat: "console"}
}

// Load reads envFile (if present) into the environment without overriding
// variables that are already set, then builds a Config from it.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	return FromEnv(os.Getenv), nil
}

// FromEnv builds a Config using lookup for variable values.
func FromEnv(lookup func(string) string) Config {
	cfg := Default()
	if v := strings.ToLower(strings.TrimSpace(lookup(EnvLogLevel))); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.ToLower(strings.TrimSpace(lookup(EnvLogFormat))); v != "" {
		cfg.LogFormat = v
	}
	return cfg
}
