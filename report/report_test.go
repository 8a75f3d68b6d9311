package report

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invertedv/parcels"
)

func TestReport(t *testing.T) {
	nan := math.NaN()
	mixed, e := parcels.NewCol([]float64{1, nan, 3, nan, -1, 6, 7, 8, 9, 10}, parcels.DTfloat, parcels.ColName("mixed"))
	require.NoError(t, e)
	full, e := parcels.NewCol([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, parcels.DTint, parcels.ColName("full"))
	require.NoError(t, e)
	cat, e := parcels.NewCol([]int{0, -1, -1, -1, -1, 2, 3, 0, 1, 0}, parcels.DTcategory, parcels.ColName("cat"))
	require.NoError(t, e)
	txt, e := parcels.NewCol([]string{"a", "", "c", "d", "e", "f", "g", "h", "i", "j"}, parcels.DTstring, parcels.ColName("txt"))
	require.NoError(t, e)

	df, e := parcels.NewDF(mixed, cat, txt, full)
	require.NoError(t, e)

	rows := Report(df)
	require.Len(t, rows, 4)

	assert.Equal(t, "full", rows[0].Column)
	assert.Equal(t, 1.0, rows[0].Fraction)
	assert.Equal(t, "txt", rows[1].Column)
	assert.InDelta(t, 0.9, rows[1].Fraction, 1e-12)
	assert.Equal(t, "mixed", rows[2].Column)
	assert.InDelta(t, 0.7, rows[2].Fraction, 1e-12)
	assert.Equal(t, "cat", rows[3].Column)
	assert.InDelta(t, 0.6, rows[3].Fraction, 1e-12)

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, rows[:1]))
	assert.Equal(t, "full: 1\n", buf.String())

	// input untouched
	assert.Equal(t, []string{"mixed", "cat", "txt", "full"}, df.ColumnNames())
}
