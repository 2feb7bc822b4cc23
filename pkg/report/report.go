// Package report routes transform failures to a diagnostic sink.
package report

import (
	"context"
	"errors"
	"log/slog"

	"github.com/chriscow/kutils/pkg/table"
)

// Reporter receives every error a command produces.
type Reporter interface {
	Report(op string, err error)
}

// SlogReporter logs errors at error level with their table context.
type SlogReporter struct {
	logger *slog.Logger
}

// NewSlog returns a Reporter writing to logger.
func NewSlog(logger *slog.Logger) *SlogReporter {
	return &SlogReporter{logger: logger}
}

func (r *SlogReporter) Report(op string, err error) {
	if err == nil {
		return
	}
	attrs := []slog.Attr{slog.String("op", op)}
	var terr *table.Error
	if errors.As(err, &terr) {
		attrs = append(attrs, terr.LogAttrs()...)
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	r.logger.LogAttrs(context.Background(), slog.LevelError, op+" failed", attrs...)
}

// Recorder keeps reported errors in memory. Tests use it in place of a logger.
type Recorder struct {
	Ops    []string
	Errors []error
}

func (r *Recorder) Report(op string, err error) {
	if err == nil {
		return
	}
	r.Ops = append(r.Ops, op)
	r.Errors = append(r.Errors, err)
}
