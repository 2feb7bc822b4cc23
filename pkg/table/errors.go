package table

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Error kinds shared by every transform. Callers classify failures with
// errors.Is against these values.
var (
	// ErrIO indicates a declared path could not be opened, read or written.
	ErrIO = errors.New("i/o error")

	// ErrSchema indicates a row does not have the expected column count or shape.
	ErrSchema = errors.New("schema error")

	// ErrMalformedRow indicates a row is missing required fields.
	ErrMalformedRow = errors.New("malformed row")

	// ErrNotAnInteger indicates a field that must hold an integer code does not.
	ErrNotAnInteger = errors.New("not an integer")

	// ErrUnknownCode indicates an integer code has no entry in the symbol table.
	ErrUnknownCode = errors.New("unknown code")

	// ErrNotFound indicates an input file does not exist.
	ErrNotFound = errors.New("not found")

	// ErrIncompatibleTables indicates two symbol tables disagree.
	ErrIncompatibleTables = errors.New("incompatible tables")

	// ErrInvalidArgument indicates a caller passed an unusable parameter.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Error carries the diagnostic context for a failed transform: where the
// offending input came from and what token caused it.
type Error struct {
	Kind   error  // one of the Err* sentinels
	Source string // file name or stream label
	Line   int    // 1-based line number, 0 if unknown
	Field  int    // 1-based field position, 0 if not field-specific
	Token  string // offending text
	Msg    string
	Err    error // underlying cause, may be nil
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Source != "" {
		b.WriteString(e.Source)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.Error())
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Field > 0 {
		fmt.Fprintf(&b, " (field %d)", e.Field)
	}
	if e.Token != "" {
		fmt.Fprintf(&b, " %q", e.Token)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind and the underlying cause to errors.Is.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// LogAttrs returns the diagnostic context as structured log attributes.
func (e *Error) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{slog.String("kind", e.Kind.Error())}
	if e.Source != "" {
		attrs = append(attrs, slog.String("source", e.Source))
	}
	if e.Line > 0 {
		attrs = append(attrs, slog.Int("line", e.Line))
	}
	if e.Field > 0 {
		attrs = append(attrs, slog.Int("field", e.Field))
	}
	if e.Token != "" {
		attrs = append(attrs, slog.String("token", e.Token))
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("cause", e.Err.Error()))
	}
	return attrs
}

// RowError builds an Error of the given kind located at row r of t.
func RowError(kind error, t Table, r Row, msg string) *Error {
	return &Error{Kind: kind, Source: t.Source, Line: r.Line, Msg: msg}
}
