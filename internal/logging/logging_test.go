package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestParseLevel(t *testing.T) {
	is := is.New(t)
	is.Equal(ParseLevel("debug"), slog.LevelDebug)
	is.Equal(ParseLevel("warning"), slog.LevelWarn)
	is.Equal(ParseLevel("error"), slog.LevelError)
	is.Equal(ParseLevel("bogus"), slog.LevelInfo)
}

func TestNewFormats(t *testing.T) {
	is := is.New(t)

	var jsonBuf, textBuf bytes.Buffer
	New(&jsonBuf, "info", "json").Info("hello")
	New(&textBuf, "info", "console").Info("hello")

	is.True(strings.HasPrefix(jsonBuf.String(), "{"))
	is.True(strings.Contains(textBuf.String(), "msg=hello"))
}

func TestNewLevelFilters(t *testing.T) {
	is := is.New(t)

	var buf bytes.Buffer
	logger := New(&buf, "error", "console")
	logger.Warn("dropped")
	is.Equal(buf.Len(), 0)
}
