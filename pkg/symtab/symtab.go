// Package symtab compares symbol tables.
package symtab

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chriscow/kutils/pkg/table"
)

// Entry is one symbol/value pair.
type Entry struct {
	Symbol string
	Value  string
}

// Mapping is a sorted, key-unique list of symbol table entries.
type Mapping []Entry

// IsDisambig reports whether sym is a disambiguation symbol.
func IsDisambig(sym string) bool {
	return strings.Contains(sym, "#")
}

// BuildMapping collects the rows of t into a Mapping sorted by symbol,
// skipping disambiguation symbols. Every row must have exactly two fields.
// When a symbol repeats, its last value wins.
func BuildMapping(t table.Table) (Mapping, error) {
	values := make(map[string]string, t.Len())
	for _, r := range t.Rows {
		if len(r.Fields) != 2 {
			return nil, table.RowError(table.ErrSchema, t, r, "expected 2 columns")
		}
		if IsDisambig(r.Fields[0]) {
			continue
		}
		values[r.Fields[0]] = r.Fields[1]
	}

	m := make(Mapping, 0, len(values))
	for sym, val := range values {
		m = append(m, Entry{Symbol: sym, Value: val})
	}
	sort.Slice(m, func(i, j int) bool { return m[i].Symbol < m[j].Symbol })
	return m, nil
}

// Diff returns the first symbol at which a and b disagree, and false when
// they are equal.
func Diff(a, b Mapping) (string, bool) {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i].Symbol != b[i].Symbol {
			return min(a[i].Symbol, b[i].Symbol), true
		}
		if a[i].Value != b[i].Value {
			return a[i].Symbol, true
		}
	}
	switch {
	case len(a) > n:
		return a[n].Symbol, true
	case len(b) > n:
		return b[n].Symbol, true
	}
	return "", false
}

// Checker verifies that two symbol table files agree on every ordinary
// symbol.
type Checker struct {
	Store *table.Store
}

// CheckCompatible loads the tables at pathA and pathB and fails with
// table.ErrIncompatibleTables unless they map the same symbols to the same
// values, ignoring disambiguation symbols.
func (c *Checker) CheckCompatible(pathA, pathB string) error {
	for _, p := range []string{pathA, pathB} {
		if !c.Store.Exists(p) {
			return &table.Error{Kind: table.ErrNotFound, Source: p, Msg: "no such file"}
		}
	}

	a, err := c.load(pathA)
	if err != nil {
		return err
	}
	b, err := c.load(pathB)
	if err != nil {
		return err
	}

	if sym, differ := Diff(a, b); differ {
		return &table.Error{
			Kind:  table.ErrIncompatibleTables,
			Msg:   fmt.Sprintf("%s and %s differ", pathA, pathB),
			Token: sym,
		}
	}
	return nil
}

func (c *Checker) load(path string) (Mapping, error) {
	t, err := c.Store.Load(path)
	if err != nil {
		return nil, err
	}
	return BuildMapping(t)
}
