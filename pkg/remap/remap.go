// Package remap replaces integer codes in a range of fields with the symbols
// a two-column symbol table assigns them.
package remap

import (
	"strconv"

	"github.com/chriscow/kutils/pkg/table"
)

// Open marks an unbounded end of a field range.
const Open = -1

// SymbolMap maps integer codes to symbols.
type SymbolMap map[int64]string

// Symbol returns the symbol for code.
func (m SymbolMap) Symbol(code int64) (string, bool) {
	s, ok := m[code]
	return s, ok
}

// LoadSymbolMap builds a code->symbol map from rows of the form
// "<symbol> <code>". Every row must have exactly two fields and the code must
// be a non-negative integer literal. When several rows share a code the last
// one wins.
func LoadSymbolMap(symbols table.Table) (SymbolMap, error) {
	m := make(SymbolMap, symbols.Len())
	for _, r := range symbols.Rows {
		if len(r.Fields) != 2 {
			return nil, table.RowError(table.ErrSchema, symbols, r, "expected 2 columns")
		}
		code, ok := parseCode(r.Fields[1])
		if !ok {
			e := table.RowError(table.ErrSchema, symbols, r, "code must be a non-negative integer")
			e.Field, e.Token = 2, r.Fields[1]
			return nil, e
		}
		m[code] = r.Fields[0]
	}
	return m, nil
}

func parseCode(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	return v, err == nil
}

// Range is a zero-based inclusive field range. Begin or End may be Open.
type Range struct {
	Begin, End int
}

// NewRange normalizes a pair of bounds: when both are set and reversed they
// are swapped.
func NewRange(begin, end int) Range {
	if begin >= 0 && end >= 0 && begin > end {
		begin, end = end, begin
	}
	return Range{Begin: begin, End: end}
}

// Contains reports whether zero-based field index i falls inside the range.
func (r Range) Contains(i int) bool {
	if r.Begin >= 0 && i < r.Begin {
		return false
	}
	if r.End >= 0 && i > r.End {
		return false
	}
	return true
}

// Remap replaces each field of input that falls inside [fieldBegin, fieldEnd]
// with its symbol. Fields outside the range pass through unchanged.
func Remap(symbols, input table.Table, fieldBegin, fieldEnd int) (table.Table, error) {
	m, err := LoadSymbolMap(symbols)
	if err != nil {
		return table.Table{}, err
	}
	return m.Apply(input, NewRange(fieldBegin, fieldEnd))
}

// Apply remaps input with m over rng.
func (m SymbolMap) Apply(input table.Table, rng Range) (table.Table, error) {
	out := table.Table{Source: input.Source, Rows: make([]table.Row, 0, input.Len())}
	for _, r := range input.Rows {
		fields := make([]string, len(r.Fields))
		for i, tok := range r.Fields {
			if !rng.Contains(i) {
				fields[i] = tok
				continue
			}
			code, err := strconv.ParseInt(tok, 10, 64)
			if err != nil {
				e := table.RowError(table.ErrNotAnInteger, input, r, "")
				e.Field, e.Token = i+1, tok
				return table.Table{}, e
			}
			sym, ok := m.Symbol(code)
			if !ok {
				e := table.RowError(table.ErrUnknownCode, input, r, "")
				e.Field, e.Token = i+1, tok
				return table.Table{}, e
			}
			fields[i] = sym
		}
		out.Append(fields, r.Line)
	}
	return out, nil
}
