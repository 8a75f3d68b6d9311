package parcels

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

// FromRecords builds a DF from text cells. records is row-major; every row must have len(names) cells.
//
// Columns named in textCols are kept as DTstring. Every other column gets the first type all of its
// present cells parse as: DTint, DTfloat, DTdate, DTstring. An integer column with any missing cell is
// read as DTfloat, and a column with no present cells is an all-NaN DTfloat.
func FromRecords(names []string, records [][]string, textCols ...string) (*DF, error) {
	for ind, rec := range records {
		if len(rec) != len(names) {
			return nil, errors.Wrapf(ErrSchema, "row %d has %d fields, expected %d", ind, len(rec), len(names))
		}
	}

	var cols []*Col
	for c, name := range names {
		cells := make([]string, len(records))
		for r, rec := range records {
			cells[r] = rec[c]
		}

		var (
			v *Vector
			e error
		)
		if has(name, textCols) {
			v = textVector(cells)
		} else if v, e = inferVector(cells); e != nil {
			return nil, errors.Wrapf(e, "column %s", name)
		}

		var col *Col
		if col, e = NewCol(v, v.VectorType(), ColName(name)); e != nil {
			return nil, e
		}

		cols = append(cols, col)
	}

	return NewDF(cols...)
}

func textVector(cells []string) *Vector {
	x := make([]string, len(cells))
	for ind, cell := range cells {
		if !IsMissingToken(cell) {
			x[ind] = cell
		}
	}

	return &Vector{dt: DTstring, data: x}
}

func inferVector(cells []string) (*Vector, error) {
	var (
		present    []string
		anyMissing bool
	)

	for _, cell := range cells {
		if IsMissingToken(cell) {
			anyMissing = true
			continue
		}

		present = append(present, cell)
	}

	switch {
	case len(present) == 0:
		return MakeVector(DTfloat, len(cells)), nil
	case allParse(present, func(s string) bool { _, ok := parseInt(s); return ok }) && !anyMissing:
		x := make([]int, len(cells))
		for ind, cell := range cells {
			x[ind], _ = parseInt(cell)
		}
		return &Vector{dt: DTint, data: x}, nil
	case allParse(present, func(s string) bool { _, ok := parseFloat(s); return ok }):
		x := make([]float64, len(cells))
		for ind, cell := range cells {
			if IsMissingToken(cell) {
				x[ind] = math.NaN()
				continue
			}
			x[ind], _ = parseFloat(cell)
		}
		return &Vector{dt: DTfloat, data: x}, nil
	case allParse(present, func(s string) bool { _, e := ParseDate(s); return e == nil }):
		x := make([]time.Time, len(cells))
		for ind, cell := range cells {
			if !IsMissingToken(cell) {
				x[ind], _ = ParseDate(cell)
			}
		}
		return &Vector{dt: DTdate, data: x}, nil
	default:
		return textVector(cells), nil
	}
}

func allParse(cells []string, ok func(s string) bool) bool {
	for _, cell := range cells {
		if !ok(cell) {
			return false
		}
	}

	return true
}
