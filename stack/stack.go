// Package stack blends two prediction tables into a final forecast.
package stack

import (
	"math"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"

	"github.com/invertedv/parcels"
)

const (
	// KeyColumn is the parcel identifier column of prediction files.
	KeyColumn = "ParcelId"
	// Weight is the default weight of the ensembled predictions.
	Weight = 0.7
)

// Periods are the default forecast period columns.
var Periods = []string{"201610", "201611", "201612", "201710", "201711", "201712"}

// Predictions holds one prediction per period per key.
type Predictions struct {
	key     string
	periods []string
	keys    []int
	values  [][]float64 // values[period][row]
}

func New(key string, periods []string, keys []int, values [][]float64) (*Predictions, error) {
	if len(values) != len(periods) {
		return nil, errors.Wrapf(parcels.ErrSchema, "%d periods, %d value columns", len(periods), len(values))
	}

	p := &Predictions{key: key, periods: append([]string(nil), periods...), keys: append([]int(nil), keys...)}
	for ind, v := range values {
		if len(v) != len(keys) {
			return nil, errors.Wrapf(parcels.ErrSchema, "period %s has %d values for %d keys", periods[ind], len(v), len(keys))
		}

		p.values = append(p.values, append([]float64(nil), v...))
	}

	return p, nil
}

// FromDF reads the key column and the period columns of df.
func FromDF(df *parcels.DF, key string, periods []string) (*Predictions, error) {
	kc := df.Column(key)
	if kc == nil {
		return nil, errors.Wrapf(parcels.ErrConfig, "no key column %s", key)
	}

	var (
		keys []int
		e    error
	)
	if keys, e = kc.AsInt(); e != nil {
		return nil, errors.Wrapf(e, "key column %s", key)
	}

	values := make([][]float64, len(periods))
	for ind, period := range periods {
		col := df.Column(period)
		if col == nil {
			return nil, errors.Wrapf(parcels.ErrConfig, "no period column %s", period)
		}

		if values[ind], e = col.AsFloat(); e != nil {
			return nil, errors.Wrapf(e, "period column %s", period)
		}
	}

	return New(key, periods, keys, values)
}

// ***************** Methods *****************

func (p *Predictions) Keys() []int {
	return append([]int(nil), p.keys...)
}

func (p *Predictions) Periods() []string {
	return append([]string(nil), p.periods...)
}

// Value returns the prediction for period index per at row.
func (p *Predictions) Value(per, row int) float64 {
	return p.values[per][row]
}

// DF returns the predictions as a table with the key column first.
func (p *Predictions) DF() (*parcels.DF, error) {
	var (
		col *parcels.Col
		e   error
	)
	if col, e = parcels.NewCol(p.Keys(), parcels.DTint, parcels.ColName(p.key)); e != nil {
		return nil, e
	}

	cols := []*parcels.Col{col}
	for ind, period := range p.periods {
		if col, e = parcels.NewCol(append([]float64(nil), p.values[ind]...), parcels.DTfloat, parcels.ColName(period)); e != nil {
			return nil, e
		}

		cols = append(cols, col)
	}

	return parcels.NewDF(cols...)
}

// Blend returns w*ensembled + (1-w)*single cell by cell, in ensembled's key order. Both tables must
// have the same ordered periods and the same set of unique keys.
func Blend(ensembled, single *Predictions, w float64) (*Predictions, error) {
	if math.IsNaN(w) || w < 0 || w > 1 {
		return nil, errors.Wrapf(parcels.ErrConfig, "blend weight %v not in [0,1]", w)
	}

	if len(ensembled.periods) != len(single.periods) {
		return nil, errors.Wrapf(parcels.ErrKeyMismatch, "period columns differ: %v vs %v", ensembled.periods, single.periods)
	}

	for ind, period := range ensembled.periods {
		if single.periods[ind] != period {
			return nil, errors.Wrapf(parcels.ErrKeyMismatch, "period columns differ: %v vs %v", ensembled.periods, single.periods)
		}
	}

	var (
		index map[int]int
		e     error
	)
	if _, e = rowIndex(ensembled); e != nil {
		return nil, e
	}

	if index, e = rowIndex(single); e != nil {
		return nil, e
	}

	ek, sk := mapset.NewSet[int](ensembled.keys...), mapset.NewSet[int](single.keys...)
	if !ek.Equal(sk) {
		onlyE, onlyS := ek.Difference(sk), sk.Difference(ek)
		return nil, errors.Wrapf(parcels.ErrKeyMismatch, "%d keys only in ensembled, %d only in single",
			onlyE.Cardinality(), onlyS.Cardinality())
	}

	values := make([][]float64, len(ensembled.periods))
	for per := range values {
		values[per] = make([]float64, len(ensembled.keys))
		for row, key := range ensembled.keys {
			values[per][row] = w*ensembled.values[per][row] + (1-w)*single.values[per][index[key]]
		}
	}

	return New(ensembled.key, ensembled.periods, ensembled.keys, values)
}

func rowIndex(p *Predictions) (map[int]int, error) {
	index := make(map[int]int, len(p.keys))
	for row, key := range p.keys {
		if _, dup := index[key]; dup {
			return nil, errors.Wrapf(parcels.ErrKeyMismatch, "key %d appears more than once", key)
		}

		index[key] = row
	}

	return index, nil
}

// ***************** Files *****************

func Load(fileName, key string, periods []string) (*Predictions, error) {
	f, _ := parcels.NewFiles()

	var (
		df *parcels.DF
		e  error
	)
	if df, e = f.Load(fileName); e != nil {
		return nil, e
	}

	return FromDF(df, key, periods)
}

func Save(fileName string, p *Predictions) error {
	var (
		df *parcels.DF
		e  error
	)
	if df, e = p.DF(); e != nil {
		return e
	}

	f, _ := parcels.NewFiles()

	return f.Save(fileName, df)
}
