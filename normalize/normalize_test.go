package normalize

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invertedv/parcels"
)

func col(t *testing.T, name string, data any, dt parcels.DataTypes) *parcels.Col {
	c, e := parcels.NewCol(data, dt, parcels.ColName(name))
	require.NoError(t, e)

	return c
}

func props(t *testing.T) *parcels.DF {
	nan := math.NaN()
	df, e := parcels.NewDF(
		col(t, "parcelid", []int{1, 2, 3, 4}, parcels.DTint),
		col(t, "spa_flag", []string{"true", "", "Y", "0"}, parcels.DTstring),
		col(t, "cooling_id", []float64{3, nan, 5, 13}, parcels.DTfloat),
		col(t, "lot_sqft", []float64{1000.5, nan, 2000, 3000}, parcels.DTfloat),
		col(t, "zoning_description", []string{"LAR1", "", "LCA2", "LAR3"}, parcels.DTstring),
	)
	require.NoError(t, e)

	return df
}

func TestNormalize(t *testing.T) {
	cfg := Config{Flags: []string{"spa_flag"}, Categoricals: []string{"cooling_id"}}
	in := props(t)
	out, e := Normalize(in, cfg)
	require.NoError(t, e)

	assert.Equal(t, []parcels.DataTypes{parcels.DTint, parcels.DTfloat, parcels.DTcategory, parcels.DTfloat32, parcels.DTstring},
		out.ColumnTypes())

	flag, _ := out.Column("spa_flag").AsFloat()
	assert.Equal(t, 1.0, flag[0])
	assert.True(t, math.IsNaN(flag[1]))
	assert.Equal(t, 1.0, flag[2])
	assert.Equal(t, 0.0, flag[3])

	codes, _ := out.Column("cooling_id").AsInt()
	assert.Equal(t, []int{0, parcels.Missing, 2, 10}, codes)

	lot := out.Column("lot_sqft").AsAny().([]float32)
	assert.Equal(t, float32(1000.5), lot[0])
	assert.True(t, math.IsNaN(float64(lot[1])))

	// input untouched
	assert.Equal(t, parcels.DTstring, in.Column("spa_flag").DataType())
	assert.Equal(t, parcels.DTfloat, in.Column("lot_sqft").DataType())
}

func TestNormalizeDeterministic(t *testing.T) {
	cfg := Config{Flags: []string{"spa_flag"}, Categoricals: []string{"cooling_id"}}

	var outs []string
	for range 2 {
		out, e := Normalize(props(t), cfg)
		require.NoError(t, e)

		f, _ := parcels.NewFiles()
		var buf bytes.Buffer
		require.NoError(t, f.Write(&buf, out))
		outs = append(outs, buf.String())
	}

	assert.Equal(t, outs[0], outs[1])
}

func TestCoerceFlagRejectsUnknownTokens(t *testing.T) {
	for _, tok := range []string{"True", "yes", "N", "false"} {
		_, e := CoerceFlag(col(t, "fireplace_flag", []string{"true", tok}, parcels.DTstring))
		assert.True(t, errors.Is(e, parcels.ErrFlagToken), tok)
	}
}

func TestCoerceFlagNumeric(t *testing.T) {
	c, e := CoerceFlag(col(t, "tax_overdue_flag", []int{0, 1}, parcels.DTint))
	require.NoError(t, e)
	assert.Equal(t, parcels.DTfloat, c.DataType())
	assert.Equal(t, []float64{0, 1}, c.AsAny())
}

func TestRecode(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		in   *parcels.Col
		exp  []int
	}{
		{"float", col(t, "x", []float64{7, nan, 9, 7}, parcels.DTfloat), []int{0, -1, 2, 0}},
		{"int", col(t, "x", []int{6037, 6059, 6111}, parcels.DTint), []int{0, 22, 74}},
		{"all missing", col(t, "x", []float64{nan, nan}, parcels.DTfloat), []int{-1, -1}},
		{"already coded", col(t, "x", []int{2, -1, 3}, parcels.DTcategory), []int{0, -1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, e := Recode(tt.in)
			require.NoError(t, e)
			assert.Equal(t, parcels.DTcategory, out.DataType())
			assert.Equal(t, tt.exp, out.AsAny())

			minPresent := math.MaxInt
			for _, code := range out.AsAny().([]int) {
				assert.GreaterOrEqual(t, code, -1)
				if code >= 0 && code < minPresent {
					minPresent = code
				}
			}
			if minPresent != math.MaxInt {
				assert.Equal(t, 0, minPresent)
			}
		})
	}
}

func TestRecodeRejectsText(t *testing.T) {
	_, e := Recode(col(t, "x", []string{"a"}, parcels.DTstring))
	assert.True(t, errors.Is(e, parcels.ErrConfig))
}

func TestValidate(t *testing.T) {
	df := props(t)

	e := Config{Flags: []string{"no_such_flag"}}.Validate(df)
	assert.True(t, errors.Is(e, parcels.ErrConfig))

	e = Config{Categoricals: []string{"no_such_id"}}.Validate(df)
	assert.True(t, errors.Is(e, parcels.ErrConfig))

	e = Config{Flags: []string{"spa_flag"}, Categoricals: []string{"spa_flag"}}.Validate(df)
	assert.True(t, errors.Is(e, parcels.ErrConfig))

	_, e = Normalize(df, Default)
	assert.True(t, errors.Is(e, parcels.ErrConfig))
}
