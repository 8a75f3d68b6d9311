// Package calendar builds datetime aggregate features: the median target per year, month and quarter of
// the transaction date, computed from training rows only and joined onto any table with a transaction
// date.
package calendar

import (
	"math"
	"sort"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/invertedv/parcels"
	"github.com/invertedv/parcels/catalog"
)

// Names of the aggregate feature columns.
const (
	YearColumn    = "logerror_year"
	MonthColumn   = "logerror_month"
	QuarterColumn = "logerror_quarter"
)

// Derive returns the calendar fields of a transaction date. quarter is ceil(month/3).
func Derive(date time.Time) (year, month, quarter int) {
	year, month = date.Year(), int(date.Month())
	quarter = (month + 2) / 3

	return year, month, quarter
}

// Aggregates are the three lookup tables built from one training set.
type Aggregates struct {
	Year    *Lookup
	Month   *Lookup
	Quarter *Lookup
}

func (a *Aggregates) lookups() []*Lookup {
	return []*Lookup{a.Year, a.Month, a.Quarter}
}

// Build groups the training rows by year, month and quarter of catalog.TransactionDate and takes the
// median of catalog.LogError in each group. Rows with a missing target are skipped. train is not
// modified. Pass training rows only: any row given here leaks its target into every table joined later.
func Build(train *parcels.DF) (*Aggregates, error) {
	var (
		dates []time.Time
		e     error
	)
	if dates, e = Dates(train); e != nil {
		return nil, e
	}

	target := train.Column(catalog.LogError)
	if target == nil {
		return nil, errors.Wrapf(parcels.ErrConfig, "training set has no %s column", catalog.LogError)
	}

	var y []float64
	if y, e = target.AsFloat(); e != nil {
		return nil, errors.Wrapf(e, "column %s", catalog.LogError)
	}

	years, months, quarters := map[int][]float64{}, map[int][]float64{}, map[int][]float64{}
	for ind, dt := range dates {
		if math.IsNaN(y[ind]) {
			continue
		}

		yr, mon, qtr := Derive(dt)
		years[yr] = append(years[yr], y[ind])
		months[mon] = append(months[mon], y[ind])
		quarters[qtr] = append(quarters[qtr], y[ind])
	}

	aggs := &Aggregates{}
	if aggs.Year, e = medians(YearColumn, years); e != nil {
		return nil, e
	}

	if aggs.Month, e = medians(MonthColumn, months); e != nil {
		return nil, e
	}

	if aggs.Quarter, e = medians(QuarterColumn, quarters); e != nil {
		return nil, e
	}

	return aggs, nil
}

// Attach returns a copy of df with the three aggregate columns appended and catalog.TransactionDate
// removed. A row whose calendar key is not in a lookup table gets NaN, never a default.
func Attach(df *parcels.DF, aggs *Aggregates) (*parcels.DF, error) {
	if aggs == nil || aggs.Year == nil || aggs.Month == nil || aggs.Quarter == nil {
		return nil, errors.Wrap(parcels.ErrConfig, "incomplete aggregate tables")
	}

	var (
		dates []time.Time
		e     error
	)
	if dates, e = Dates(df); e != nil {
		return nil, e
	}

	lks := aggs.lookups()
	vals := make([][]float64, len(lks))
	for ind := range vals {
		vals[ind] = make([]float64, len(dates))
	}

	for row, dt := range dates {
		yr, mon, qtr := Derive(dt)
		for ind, key := range []int{yr, mon, qtr} {
			v, ok := lks[ind].Get(key)
			if !ok {
				v = math.NaN()
			}

			vals[ind][row] = v
		}
	}

	out := df.Copy()
	out.DropIfPresent(catalog.TransactionDate)
	for ind, lk := range lks {
		var col *parcels.Col
		if col, e = parcels.NewCol(vals[ind], parcels.DTfloat, parcels.ColName(lk.Name())); e != nil {
			return nil, e
		}

		if e = out.AppendColumn(col); e != nil {
			return nil, e
		}
	}

	return out, nil
}

// Dates returns catalog.TransactionDate as dates. A DTstring column is parsed with parcels.DateFormats.
// A missing column, a missing value or an unparseable value is parcels.ErrDate.
func Dates(df *parcels.DF) ([]time.Time, error) {
	col := df.Column(catalog.TransactionDate)
	if col == nil {
		return nil, errors.Wrapf(parcels.ErrDate, "no %s column", catalog.TransactionDate)
	}

	var dates []time.Time
	switch col.DataType() {
	case parcels.DTdate:
		dates, _ = col.AsDate()
	case parcels.DTstring:
		strs, _ := col.AsString()
		dates = make([]time.Time, len(strs))
		for ind, s := range strs {
			var e error
			if dates[ind], e = parcels.ParseDate(s); e != nil {
				return nil, errors.Wrapf(e, "row %d", ind)
			}
		}
	default:
		return nil, errors.Wrapf(parcels.ErrDate, "column %s is %s", catalog.TransactionDate, col.DataType())
	}

	for ind, dt := range dates {
		if dt.IsZero() {
			return nil, errors.Wrapf(parcels.ErrDate, "row %d: missing %s", ind, catalog.TransactionDate)
		}
	}

	return dates, nil
}

func medians(name string, groups map[int][]float64) (*Lookup, error) {
	keys := make([]int, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Ints(keys)

	vals := make([]float64, len(keys))
	for ind, key := range keys {
		vals[ind] = median(groups[key])
	}

	return NewLookup(name, keys, vals)
}

// median sorts a copy of x, so the result does not depend on row order.
func median(x []float64) float64 {
	xs := append([]float64(nil), x...)
	sort.Float64s(xs)

	n := len(xs)
	if n%2 == 1 {
		return xs[n/2]
	}

	return stat.Mean(xs[n/2-1:n/2+1], nil)
}
