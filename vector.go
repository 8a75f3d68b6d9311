package parcels

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

// Missing is the reserved DTcategory code for an absent value. Real codes are always >= 0.
const Missing = -1

// Vector holds the data of a column. The slice type is fixed by dt:
//
//	DTfloat    []float64   NaN is missing
//	DTfloat32  []float32   NaN is missing
//	DTint      []int       never missing
//	DTcategory []int       Missing (-1) is missing
//	DTstring   []string    "" is missing
//	DTdate     []time.Time zero time is missing
type Vector struct {
	dt DataTypes

	data any
}

func NewVector(data any, dt DataTypes) (*Vector, error) {
	ok := false
	switch dt {
	case DTfloat:
		_, ok = data.([]float64)
	case DTfloat32:
		_, ok = data.([]float32)
	case DTint, DTcategory:
		_, ok = data.([]int)
	case DTstring:
		_, ok = data.([]string)
	case DTdate:
		_, ok = data.([]time.Time)
	}

	if !ok {
		return nil, errors.Wrapf(ErrSchema, "cannot make vector of type %s from %T", dt, data)
	}

	return &Vector{dt: dt, data: data}, nil
}

// MakeVector returns a vector of length n filled with the missing value of dt (zero for DTint).
func MakeVector(dt DataTypes, n int) *Vector {
	switch dt {
	case DTfloat:
		x := make([]float64, n)
		for ind := range x {
			x[ind] = math.NaN()
		}
		return &Vector{dt: dt, data: x}
	case DTfloat32:
		x := make([]float32, n)
		for ind := range x {
			x[ind] = float32(math.NaN())
		}
		return &Vector{dt: dt, data: x}
	case DTint:
		return &Vector{dt: dt, data: make([]int, n)}
	case DTcategory:
		x := make([]int, n)
		for ind := range x {
			x[ind] = Missing
		}
		return &Vector{dt: dt, data: x}
	case DTstring:
		return &Vector{dt: dt, data: make([]string, n)}
	case DTdate:
		return &Vector{dt: dt, data: make([]time.Time, n)}
	default:
		panic(errors.Errorf("cannot make Vector with data type %s", dt))
	}
}

func (v *Vector) VectorType() DataTypes {
	return v.dt
}

func (v *Vector) AsAny() any {
	return v.data
}

func (v *Vector) Len() int {
	switch x := v.data.(type) {
	case []float64:
		return len(x)
	case []float32:
		return len(x)
	case []int:
		return len(x)
	case []string:
		return len(x)
	case []time.Time:
		return len(x)
	}

	return 0
}

func (v *Vector) Copy() *Vector {
	var data any
	switch x := v.data.(type) {
	case []float64:
		data = append([]float64(nil), x...)
	case []float32:
		data = append([]float32(nil), x...)
	case []int:
		data = append([]int(nil), x...)
	case []string:
		data = append([]string(nil), x...)
	case []time.Time:
		data = append([]time.Time(nil), x...)
	}

	return &Vector{dt: v.dt, data: data}
}

// IsMissing reports whether the element at indx holds the missing value of its type.
func (v *Vector) IsMissing(indx int) bool {
	switch x := v.data.(type) {
	case []float64:
		return math.IsNaN(x[indx])
	case []float32:
		return math.IsNaN(float64(x[indx]))
	case []int:
		return v.dt == DTcategory && x[indx] < 0
	case []string:
		return x[indx] == ""
	case []time.Time:
		return x[indx].IsZero()
	}

	return false
}

// ElementFloat returns the element at indx as a float64. Missing values, including the category
// sentinel, come back as NaN.
func (v *Vector) ElementFloat(indx int) float64 {
	if v.IsMissing(indx) {
		return math.NaN()
	}

	switch x := v.data.(type) {
	case []float64:
		return x[indx]
	case []float32:
		return float64(x[indx])
	case []int:
		return float64(x[indx])
	}

	return math.NaN()
}

// AsFloat returns the numeric vector as []float64 with missing values as NaN.
// A DTfloat vector is returned without copying.
func (v *Vector) AsFloat() ([]float64, error) {
	if x, ok := v.data.([]float64); ok {
		return x, nil
	}

	if !v.dt.IsNumeric() {
		return nil, errors.Wrapf(ErrSchema, "cannot convert %s to float", v.dt)
	}

	xOut := make([]float64, v.Len())
	for ind := range xOut {
		xOut[ind] = v.ElementFloat(ind)
	}

	return xOut, nil
}

// AsInt returns the vector as []int. Float values must be whole and present.
func (v *Vector) AsInt() ([]int, error) {
	if x, ok := v.data.([]int); ok {
		return x, nil
	}

	if !v.dt.IsNumeric() {
		return nil, errors.Wrapf(ErrSchema, "cannot convert %s to int", v.dt)
	}

	xOut := make([]int, v.Len())
	for ind := range xOut {
		f := v.ElementFloat(ind)
		if math.IsNaN(f) || f != math.Trunc(f) {
			return nil, errors.Wrapf(ErrSchema, "value at row %d is not an integer", ind)
		}

		xOut[ind] = int(f)
	}

	return xOut, nil
}

func (v *Vector) AsString() ([]string, error) {
	if x, ok := v.data.([]string); ok {
		return x, nil
	}

	return nil, errors.Wrapf(ErrSchema, "vector is %s, not DTstring", v.dt)
}

func (v *Vector) AsDate() ([]time.Time, error) {
	if x, ok := v.data.([]time.Time); ok {
		return x, nil
	}

	return nil, errors.Wrapf(ErrSchema, "vector is %s, not DTdate", v.dt)
}

// Take gathers elements by index; -1 yields the missing value. DTint has no missing value, so -1 is an
// error there.
func (v *Vector) Take(rows []int) (*Vector, error) {
	out := MakeVector(v.dt, len(rows))
	for ind, row := range rows {
		if row < 0 {
			if v.dt == DTint {
				return nil, errors.Wrap(ErrSchema, "DTint vector cannot hold a missing value")
			}

			continue
		}

		switch x := v.data.(type) {
		case []float64:
			out.data.([]float64)[ind] = x[row]
		case []float32:
			out.data.([]float32)[ind] = x[row]
		case []int:
			out.data.([]int)[ind] = x[row]
		case []string:
			out.data.([]string)[ind] = x[row]
		case []time.Time:
			out.data.([]time.Time)[ind] = x[row]
		}
	}

	return out, nil
}
