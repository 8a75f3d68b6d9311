// Package normalize brings raw property columns to the numeric representation the model consumes.
//
// Three column-scoped steps run in one pass:
//   - flag columns: the tokens "true" and "Y" become 1, numeric tokens keep their value, missing stays
//     missing, and the column becomes DTfloat. Any other token is ErrFlagToken.
//   - categorical columns: codes are shifted so the smallest present code is 0, missing becomes -1 and
//     the column becomes DTcategory.
//   - every other DTfloat column is narrowed to DTfloat32.
//
// The output depends only on the input table, so the same properties table gives bit-identical
// feature columns for training and for inference.
package normalize

import (
	"math"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"

	"github.com/invertedv/parcels"
)

// TruthyTokens map to 1 in flag columns.
var TruthyTokens = []string{"true", "Y"}

// Config names the columns each step applies to. Names are canonical (post-catalog).
type Config struct {
	Flags        []string
	Categoricals []string
}

// Default is the configuration for the properties catalog.
var Default = Config{
	Flags: []string{"spa_flag", "fireplace_flag", "tax_overdue_flag"},
	Categoricals: []string{"cooling_id", "architecture_style_id", "framing_id", "quality_id", "heating_id",
		"county_id", "construction_id", "fips", "landuse_type_id"},
}

// Validate checks that every configured column is in df and that no column is configured twice.
func (c Config) Validate(df *parcels.DF) error {
	flags, cats := mapset.NewSet[string](c.Flags...), mapset.NewSet[string](c.Categoricals...)
	if both := flags.Intersect(cats); both.Cardinality() > 0 {
		return errors.Wrapf(parcels.ErrConfig, "columns configured as both flag and categorical: %v", both.ToSlice())
	}

	for _, name := range append(append([]string{}, c.Flags...), c.Categoricals...) {
		if !df.Has(name) {
			return errors.Wrapf(parcels.ErrConfig, "configured column %s not in input", name)
		}
	}

	return nil
}

// Normalize returns a new DF with all three steps applied. df is not modified.
func Normalize(df *parcels.DF, cfg Config) (*parcels.DF, error) {
	if e := cfg.Validate(df); e != nil {
		return nil, e
	}

	flags, cats := mapset.NewSet[string](cfg.Flags...), mapset.NewSet[string](cfg.Categoricals...)

	out := df.Copy()
	for _, col := range df.Columns() {
		var (
			cx *parcels.Col
			e  error
		)

		switch {
		case flags.Contains(col.Name()):
			cx, e = CoerceFlag(col)
		case cats.Contains(col.Name()):
			cx, e = Recode(col)
		case col.DataType() == parcels.DTfloat:
			cx, e = Narrow(col)
		default:
			continue
		}

		if e != nil {
			return nil, e
		}

		if e = out.Replace(cx); e != nil {
			return nil, e
		}
	}

	return out, nil
}

// CoerceFlag converts a flag column to DTfloat.
func CoerceFlag(col *parcels.Col) (*parcels.Col, error) {
	if col.DataType() != parcels.DTstring {
		if !col.DataType().IsNumeric() {
			return nil, errors.Wrapf(parcels.ErrFlagToken, "flag column %s has type %s", col.Name(), col.DataType())
		}

		x, e := col.AsFloat()
		if e != nil {
			return nil, e
		}

		return parcels.NewCol(append([]float64(nil), x...), parcels.DTfloat, parcels.ColName(col.Name()))
	}

	truthy := mapset.NewSet[string](TruthyTokens...)

	strs, _ := col.AsString()
	x := make([]float64, len(strs))
	for ind, s := range strs {
		if parcels.IsMissingToken(s) {
			x[ind] = math.NaN()
			continue
		}

		if truthy.Contains(strings.TrimSpace(s)) {
			x[ind] = 1
			continue
		}

		f, e := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if e != nil || math.IsInf(f, 0) {
			return nil, errors.Wrapf(parcels.ErrFlagToken, "column %s row %d: %q", col.Name(), ind, s)
		}

		x[ind] = f
	}

	return parcels.NewCol(x, parcels.DTfloat, parcels.ColName(col.Name()))
}

// Recode shifts a numeric column so its smallest present code is 0 and marks missing values with
// parcels.Missing. A column with no present values is all Missing.
func Recode(col *parcels.Col) (*parcels.Col, error) {
	if !col.DataType().IsNumeric() {
		return nil, errors.Wrapf(parcels.ErrConfig, "categorical column %s is %s, not numeric", col.Name(), col.DataType())
	}

	minVal := math.Inf(1)
	for ind := 0; ind < col.Len(); ind++ {
		if f := col.ElementFloat(ind); !math.IsNaN(f) && f < minVal {
			minVal = f
		}
	}

	codes := make([]int, col.Len())
	for ind := range codes {
		f := col.ElementFloat(ind)
		if math.IsNaN(f) {
			codes[ind] = parcels.Missing
			continue
		}

		codes[ind] = int(f - minVal)
		// shifted codes must never be read as the missing sentinel
		if codes[ind] < 0 {
			return nil, errors.Wrapf(parcels.ErrSchema, "column %s row %d: shifted code %d is negative", col.Name(), ind, codes[ind])
		}
	}

	return parcels.NewCol(codes, parcels.DTcategory, parcels.ColName(col.Name()))
}

// Narrow converts a DTfloat column to DTfloat32. Other types are returned unchanged.
func Narrow(col *parcels.Col) (*parcels.Col, error) {
	x, ok := col.AsAny().([]float64)
	if !ok {
		return col, nil
	}

	x32 := make([]float32, len(x))
	for ind, f := range x {
		x32[ind] = float32(f)
	}

	return parcels.NewCol(x32, parcels.DTfloat32, parcels.ColName(col.Name()))
}
