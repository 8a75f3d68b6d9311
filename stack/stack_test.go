package stack

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invertedv/parcels"
)

func preds(t *testing.T, periods []string, keys []int, values ...[]float64) *Predictions {
	p, e := New(KeyColumn, periods, keys, values)
	require.NoError(t, e)

	return p
}

func TestBlend(t *testing.T) {
	ens := preds(t, []string{"201610"}, []int{1}, []float64{10})
	single := preds(t, []string{"201610"}, []int{1}, []float64{20})

	out, e := Blend(ens, single, 0.7)
	require.NoError(t, e)
	assert.Equal(t, []int{1}, out.Keys())
	assert.InDelta(t, 13.0, out.Value(0, 0), 1e-9)
}

func TestBlendKeyOrder(t *testing.T) {
	periods := []string{"201610", "201611"}
	ens := preds(t, periods, []int{3, 1, 2}, []float64{3, 1, 2}, []float64{30, 10, 20})
	single := preds(t, periods, []int{1, 2, 3}, []float64{0, 0, 0}, []float64{0, 0, 0})

	out, e := Blend(ens, single, 0.5)
	require.NoError(t, e)
	assert.Equal(t, []int{3, 1, 2}, out.Keys())
	assert.Equal(t, 1.5, out.Value(0, 0))
	assert.Equal(t, 5.0, out.Value(1, 1))
}

func TestBlendErrors(t *testing.T) {
	p1 := []string{"201610"}
	tests := []struct {
		name   string
		ens    *Predictions
		single *Predictions
		w      float64
		kind   error
	}{
		{"weight", preds(t, p1, []int{1}, []float64{1}), preds(t, p1, []int{1}, []float64{1}), 1.5, parcels.ErrConfig},
		{"nan weight", preds(t, p1, []int{1}, []float64{1}), preds(t, p1, []int{1}, []float64{1}), math.NaN(), parcels.ErrConfig},
		{"key only in one", preds(t, p1, []int{1, 2}, []float64{1, 2}), preds(t, p1, []int{1, 3}, []float64{1, 3}), 0.7, parcels.ErrKeyMismatch},
		{"extra key", preds(t, p1, []int{1}, []float64{1}), preds(t, p1, []int{1, 2}, []float64{1, 2}), 0.7, parcels.ErrKeyMismatch},
		{"duplicate key", preds(t, p1, []int{1, 1}, []float64{1, 2}), preds(t, p1, []int{1}, []float64{1}), 0.7, parcels.ErrKeyMismatch},
		{"periods", preds(t, p1, []int{1}, []float64{1}), preds(t, []string{"201611"}, []int{1}, []float64{1}), 0.7, parcels.ErrKeyMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, e := Blend(tt.ens, tt.single, tt.w)
			assert.True(t, errors.Is(e, tt.kind), e)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	vals := make([][]float64, len(Periods))
	for ind := range vals {
		vals[ind] = []float64{0.01 * float64(ind), -0.0123456789}
	}

	p := preds(t, Periods, []int{10711738, 10711755}, vals...)
	fn := filepath.Join(t.TempDir(), "stack.csv")
	require.NoError(t, Save(fn, p))

	back, e := Load(fn, KeyColumn, Periods)
	require.NoError(t, e)
	assert.Equal(t, p.Keys(), back.Keys())
	for per := range Periods {
		for row := range p.Keys() {
			assert.Equal(t, p.Value(per, row), back.Value(per, row))
		}
	}

	_, e = Load(fn, KeyColumn, []string{"201801"})
	assert.True(t, errors.Is(e, parcels.ErrConfig))
}
