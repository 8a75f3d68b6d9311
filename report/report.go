// Package report computes per-column completeness of a table.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/invertedv/parcels"
)

// Completeness is the fraction of a column's rows that hold a real value.
type Completeness struct {
	Column   string
	Fraction float64
}

// Report returns completeness for every column of df, most complete first. Ties keep column order.
//
// A value counts as missing if it is the type's missing value or, in a numeric column, equals the
// category sentinel -1. df is not modified.
func Report(df *parcels.DF) []Completeness {
	total := df.RowCount()

	out := make([]Completeness, 0, df.ColumnCount())
	for _, col := range df.Columns() {
		frac := 0.0
		if total > 0 {
			frac = float64(total-missing(col)) / float64(total)
		}

		out = append(out, Completeness{Column: col.Name(), Fraction: frac})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Fraction > out[j].Fraction })

	return out
}

// Print writes one "column: fraction" line per entry.
func Print(w io.Writer, rows []Completeness) error {
	for _, r := range rows {
		if _, e := fmt.Fprintf(w, "%s: %v\n", r.Column, r.Fraction); e != nil {
			return e
		}
	}

	return nil
}

func missing(col *parcels.Col) int {
	cnt := 0
	for ind := 0; ind < col.Len(); ind++ {
		if col.IsMissing(ind) {
			cnt++
			continue
		}

		if col.DataType().IsNumeric() && col.ElementFloat(ind) == parcels.Missing {
			cnt++
		}
	}

	return cnt
}
