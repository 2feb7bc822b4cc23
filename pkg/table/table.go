// Package table provides the row-oriented text table shared by every kutils
// transform: one row per line, fields separated by runs of whitespace.
package table

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds a single input line. spk2utt rows for large corpora can
// list tens of thousands of utterances.
const maxLineSize = 16 * 1024 * 1024

// Row is one line of a table. Fields[0] is conventionally the key.
type Row struct {
	Fields []string
	Line   int // 1-based line number in Source, 0 for synthesized rows
}

// Key returns the first field, or "" for an empty row.
func (r Row) Key() string {
	if len(r.Fields) == 0 {
		return ""
	}
	return r.Fields[0]
}

// String joins the fields with a single space.
func (r Row) String() string {
	return strings.Join(r.Fields, " ")
}

// Table is an ordered sequence of rows read from (or destined for) Source.
type Table struct {
	Source string
	Rows   []Row
}

// New builds a table from literal field slices. Line numbers are assigned
// in order starting at 1.
func New(source string, rows ...[]string) Table {
	t := Table{Source: source, Rows: make([]Row, 0, len(rows))}
	for i, fields := range rows {
		t.Rows = append(t.Rows, Row{Fields: fields, Line: i + 1})
	}
	return t
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Fields returns the rows as plain field slices.
func (t Table) Fields() [][]string {
	out := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Fields
	}
	return out
}

// Lines returns each row space-joined.
func (t Table) Lines() []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.String()
	}
	return out
}

// Append adds a row with the given fields.
func (t *Table) Append(fields []string, line int) {
	t.Rows = append(t.Rows, Row{Fields: fields, Line: line})
}

// Parse reads a table from r. Blank lines are kept as empty rows so that
// callers can decide whether they are acceptable.
func Parse(r io.Reader, source string) (Table, error) {
	t := Table{Source: source}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		t.Rows = append(t.Rows, Row{
			Fields: strings.Fields(scanner.Text()),
			Line:   lineNum,
		})
	}

	if err := scanner.Err(); err != nil {
		return Table{}, &Error{Kind: ErrIO, Source: source, Line: lineNum + 1, Msg: "read failed", Err: err}
	}
	return t, nil
}

// Write emits t to w, one row per line, fields joined by a single space and
// terminated by "\n" regardless of platform.
func Write(w io.Writer, t Table) error {
	bw := bufio.NewWriter(w)
	for _, r := range t.Rows {
		for i, f := range r.Fields {
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(f)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("write row %d: %w", r.Line, err)
		}
	}
	return bw.Flush()
}
