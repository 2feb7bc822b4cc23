// Package grouping converts between grouped tables (one row per group listing
// its members, e.g. spk2utt) and flat tables (one row per member naming its
// group, e.g. utt2spk).
package grouping

import (
	"github.com/chriscow/kutils/pkg/table"
)

// GroupedToFlat expands each row [g, m1, m2, ...] into rows [m1, g], [m2, g], ...
// Rows are emitted group by group, members in order. Every row needs a group
// and at least one member.
func GroupedToFlat(grouped table.Table) (table.Table, error) {
	out := table.Table{Source: grouped.Source}
	for _, r := range grouped.Rows {
		if len(r.Fields) < 2 {
			return table.Table{}, table.RowError(table.ErrSchema, grouped, r, "expected at least 2 columns")
		}
		group := r.Fields[0]
		for _, member := range r.Fields[1:] {
			out.Append([]string{member, group}, r.Line)
		}
	}
	return out, nil
}

// FlatToGrouped collects rows [member, group] into one row per group.
// Groups appear in the order they are first seen, members in the order
// encountered.
func FlatToGrouped(flat table.Table) (table.Table, error) {
	index := make(map[string]int)
	out := table.Table{Source: flat.Source}
	for _, r := range flat.Rows {
		if len(r.Fields) != 2 {
			return table.Table{}, table.RowError(table.ErrSchema, flat, r, "expected 2 columns")
		}
		member, group := r.Fields[0], r.Fields[1]
		i, ok := index[group]
		if !ok {
			i = len(out.Rows)
			index[group] = i
			out.Append([]string{group}, r.Line)
		}
		out.Rows[i].Fields = append(out.Rows[i].Fields, member)
	}
	return out, nil
}
