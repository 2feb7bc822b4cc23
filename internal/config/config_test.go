package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestFromEnvDefaults(t *testing.T) {
	is := is.New(t)
	cfg := FromEnv(func(string) string { return "" })
	is.Equal(cfg, Default())
}

func TestFromEnv(t *testing.T) {
	is := is.New(t)
	env := map[string]string{EnvLogLevel: " DEBUG ", EnvLogFormat: "json"}
	cfg := FromEnv(func(k string) string { return env[k] })
	is.Equal(cfg.LogLevel, "debug")
	is.Equal(cfg.LogFormat, "json")
}

func TestLoadEnvFile(t *testing.T) {
	is := is.New(t)
	t.Setenv(EnvLogLevel, "")
	os.Unsetenv(EnvLogLevel)
	t.Setenv(EnvLogFormat, "console") // already set, file must not override

	path := filepath.Join(t.TempDir(), ".env")
	is.NoErr(os.WriteFile(path, []byte("KU_LOG_LEVEL=warn\nKU_LOG_FORMAT=json\n"), 0o644))

	cfg, err := Load(path)
	is.NoErr(err)
	is.Equal(cfg.LogLevel, "warn")
	is.Equal(cfg.LogFormat, "console")
}

func TestLoadMissingEnvFile(t *testing.T) {
	is := is.New(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	is.NoErr(err)
}
