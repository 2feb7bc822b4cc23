// Package filter selects or excludes table rows by key membership.
package filter

import (
	"fmt"

	"github.com/chriscow/kutils/pkg/table"
)

// KeySet is the set of first-field values of a reference table.
type KeySet map[string]struct{}

// Keys builds a KeySet from field 0 of every row of ids. An empty row fails
// with table.ErrMalformedRow.
func Keys(ids table.Table) (KeySet, error) {
	set := make(KeySet, ids.Len())
	for _, r := range ids.Rows {
		if len(r.Fields) == 0 {
			return nil, table.RowError(table.ErrMalformedRow, ids, r, "empty line in id list")
		}
		set[r.Fields[0]] = struct{}{}
	}
	return set, nil
}

// Contains reports whether key is in the set.
func (s KeySet) Contains(key string) bool {
	_, ok := s[key]
	return ok
}

// Filter keeps the rows of input whose field (zero-based) is in the key set
// of ids, or, with exclude, the rows whose field is not. Row order is kept.
func Filter(ids, input table.Table, exclude bool, field int) (table.Table, error) {
	if field < 0 {
		return table.Table{}, &table.Error{Kind: table.ErrInvalidArgument, Msg: fmt.Sprintf("field index %d is negative", field)}
	}

	keys, err := Keys(ids)
	if err != nil {
		return table.Table{}, err
	}

	out := table.Table{Source: input.Source}
	for _, r := range input.Rows {
		if len(r.Fields) <= field {
			return table.Table{}, table.RowError(table.ErrMalformedRow, input, r,
				fmt.Sprintf("need at least %d fields, got %d", field+1, len(r.Fields)))
		}
		if keys.Contains(r.Fields[field]) != exclude {
			out.Rows = append(out.Rows, r)
		}
	}
	return out, nil
}
