package calendar

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/invertedv/parcels"
)

// Lookup is a read-only table from a calendar unit value to an aggregate.
type Lookup struct {
	name string
	keys []int
	vals []float64
}

// NewLookup copies keys and vals, sorted by key. Keys must be unique.
func NewLookup(name string, keys []int, vals []float64) (*Lookup, error) {
	if len(keys) != len(vals) {
		return nil, errors.Wrapf(parcels.ErrSchema, "lookup %s: %d keys, %d values", name, len(keys), len(vals))
	}

	order := make([]int, len(keys))
	for ind := range order {
		order[ind] = ind
	}
	sort.SliceStable(order, func(i, j int) bool { return keys[order[i]] < keys[order[j]] })

	lk := &Lookup{name: name, keys: make([]int, len(keys)), vals: make([]float64, len(vals))}
	for ind, pos := range order {
		lk.keys[ind], lk.vals[ind] = keys[pos], vals[pos]
		if ind > 0 && lk.keys[ind] == lk.keys[ind-1] {
			return nil, errors.Wrapf(parcels.ErrSchema, "lookup %s: duplicate key %d", name, lk.keys[ind])
		}
	}

	return lk, nil
}

func (l *Lookup) Name() string {
	return l.name
}

func (l *Lookup) Len() int {
	return len(l.keys)
}

func (l *Lookup) Keys() []int {
	return append([]int(nil), l.keys...)
}

func (l *Lookup) Get(key int) (float64, bool) {
	pos := sort.SearchInts(l.keys, key)
	if pos < len(l.keys) && l.keys[pos] == key {
		return l.vals[pos], true
	}

	return 0, false
}

// ***************** Persistence *****************

const keyColumn = "key"

var fileNames = map[string]string{YearColumn: "year.csv", MonthColumn: "month.csv", QuarterColumn: "quarter.csv"}

// DF returns the lookup as a two-column table: key and the aggregate named after the lookup.
func (l *Lookup) DF() (*parcels.DF, error) {
	var (
		kc, vc *parcels.Col
		e      error
	)
	if kc, e = parcels.NewCol(l.Keys(), parcels.DTint, parcels.ColName(keyColumn)); e != nil {
		return nil, e
	}

	if vc, e = parcels.NewCol(append([]float64(nil), l.vals...), parcels.DTfloat, parcels.ColName(l.name)); e != nil {
		return nil, e
	}

	return parcels.NewDF(kc, vc)
}

// LookupFromDF is the inverse of Lookup.DF.
func LookupFromDF(name string, df *parcels.DF) (*Lookup, error) {
	kc, vc := df.Column(keyColumn), df.Column(name)
	if kc == nil || vc == nil {
		return nil, errors.Wrapf(parcels.ErrConfig, "lookup %s needs columns %s and %s", name, keyColumn, name)
	}

	var (
		keys []int
		vals []float64
		e    error
	)
	if keys, e = kc.AsInt(); e != nil {
		return nil, e
	}

	if vals, e = vc.AsFloat(); e != nil {
		return nil, e
	}

	return NewLookup(name, keys, vals)
}

// Save writes the three tables to dir as CSV. Values are written at full precision, so Load returns
// bit-identical tables.
func Save(dir string, aggs *Aggregates) error {
	if e := os.MkdirAll(dir, 0o755); e != nil {
		return e
	}

	f, _ := parcels.NewFiles()
	for _, lk := range aggs.lookups() {
		var (
			df *parcels.DF
			e  error
		)
		if df, e = lk.DF(); e != nil {
			return e
		}

		if e = f.Save(filepath.Join(dir, fileNames[lk.Name()]), df); e != nil {
			return e
		}
	}

	return nil
}

// Load reads tables written by Save.
func Load(dir string) (*Aggregates, error) {
	f, _ := parcels.NewFiles()

	load := func(name string) (*Lookup, error) {
		df, e := f.Load(filepath.Join(dir, fileNames[name]))
		if e != nil {
			return nil, e
		}

		return LookupFromDF(name, df)
	}

	var (
		aggs = &Aggregates{}
		e    error
	)
	if aggs.Year, e = load(YearColumn); e != nil {
		return nil, e
	}

	if aggs.Month, e = load(MonthColumn); e != nil {
		return nil, e
	}

	if aggs.Quarter, e = load(QuarterColumn); e != nil {
		return nil, e
	}

	return aggs, nil
}
