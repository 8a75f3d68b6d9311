package features

import (
	"github.com/pkg/errors"

	"github.com/invertedv/parcels"
)

// Join left-joins right onto left on key. right's key values must be unique; left's may repeat.
// The result has left's columns followed by right's non-key columns. Left rows with no match get the
// missing value in every right column.
//
// Right DTint columns are always returned as DTfloat, whether or not a row went unmatched, so the
// schema of the result does not depend on which keys happen to be in left. They stay float64: integer
// properties such as latitude x 1e6 and assessed values exceed the 2^24 float32 can hold exactly.
func Join(left, right *parcels.DF, key string) (*parcels.DF, error) {
	lk, rk := left.Column(key), right.Column(key)
	if lk == nil || rk == nil {
		return nil, errors.Wrapf(parcels.ErrConfig, "join key %s missing", key)
	}

	var (
		lkeys, rkeys []int
		e            error
	)
	if lkeys, e = lk.AsInt(); e != nil {
		return nil, errors.Wrapf(e, "left key %s", key)
	}

	if rkeys, e = rk.AsInt(); e != nil {
		return nil, errors.Wrapf(e, "right key %s", key)
	}

	index := make(map[int]int, len(rkeys))
	for row, k := range rkeys {
		if _, dup := index[k]; dup {
			return nil, errors.Wrapf(parcels.ErrSchema, "duplicate %s %d in right table", key, k)
		}

		index[k] = row
	}

	rows := make([]int, len(lkeys))
	for ind, k := range lkeys {
		row, ok := index[k]
		if !ok {
			row = -1
		}

		rows[ind] = row
	}

	out := left.Copy()
	for _, col := range right.Columns() {
		if col.Name() == key {
			continue
		}

		src := col.Vector
		if col.DataType() == parcels.DTint {
			x, _ := col.AsFloat()
			if src, e = parcels.NewVector(x, parcels.DTfloat); e != nil {
				return nil, e
			}
		}

		var (
			v  *parcels.Vector
			cx *parcels.Col
		)
		if v, e = src.Take(rows); e != nil {
			return nil, errors.Wrapf(e, "column %s", col.Name())
		}

		if cx, e = parcels.NewCol(v, v.VectorType(), parcels.ColName(col.Name())); e != nil {
			return nil, e
		}

		if e = out.AppendColumn(cx); e != nil {
			return nil, e
		}
	}

	return out, nil
}
