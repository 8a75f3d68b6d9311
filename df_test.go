package parcels

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCol(t *testing.T, name string, data any, dt DataTypes) *Col {
	col, e := NewCol(data, dt, ColName(name))
	require.NoError(t, e)

	return col
}

func testDF(t *testing.T) *DF {
	df, e := NewDF(
		mustCol(t, "id", []int{1, 2, 3}, DTint),
		mustCol(t, "x", []float64{1.5, math.NaN(), 3}, DTfloat),
		mustCol(t, "c", []int{0, Missing, 2}, DTcategory),
		mustCol(t, "s", []string{"a", "", "c"}, DTstring),
	)
	require.NoError(t, e)

	return df
}

func TestDTFromString(t *testing.T) {
	for dt := DTunknown; dt <= MaxDT; dt++ {
		assert.Equal(t, dt, DTFromString(dt.String()))
	}

	assert.Equal(t, DTunknown, DTFromString("DTnope"))
}

func TestNewDF(t *testing.T) {
	df := testDF(t)
	assert.Equal(t, 3, df.RowCount())
	assert.Equal(t, 4, df.ColumnCount())
	assert.Equal(t, []string{"id", "x", "c", "s"}, df.ColumnNames())
	assert.Equal(t, []DataTypes{DTint, DTfloat, DTcategory, DTstring}, df.ColumnTypes())

	_, e := NewDF(mustCol(t, "a", []int{1}, DTint), mustCol(t, "a", []int{2}, DTint))
	assert.True(t, errors.Is(e, ErrSchema))

	_, e = NewDF(mustCol(t, "a", []int{1}, DTint), mustCol(t, "b", []int{2, 3}, DTint))
	assert.True(t, errors.Is(e, ErrSchema))

	_, e = NewCol([]int{1}, DTfloat, ColName("a"))
	assert.True(t, errors.Is(e, ErrSchema))

	_, e = NewCol([]int{1}, DTint, ColName("bad name"))
	assert.True(t, errors.Is(e, ErrSchema))
}

func TestDropColumns(t *testing.T) {
	df := testDF(t)

	e := df.DropColumns("x", "nope")
	assert.True(t, errors.Is(e, ErrSchema))
	assert.Equal(t, 4, df.ColumnCount())

	dropped := df.DropIfPresent("x", "nope", "s")
	assert.Equal(t, []string{"x", "s"}, dropped)
	assert.Equal(t, []string{"id", "c"}, df.ColumnNames())

	assert.Empty(t, df.DropIfPresent("x", "s"))
	assert.Equal(t, []string{"id", "c"}, df.ColumnNames())
}

func TestCopyAndReplace(t *testing.T) {
	df := testDF(t)
	cp := df.Copy()

	require.NoError(t, cp.Replace(mustCol(t, "x", []float64{0, 0, 0}, DTfloat)))
	x, _ := df.Column("x").AsFloat()
	assert.Equal(t, 1.5, x[0])

	e := cp.Replace(mustCol(t, "zz", []float64{0, 0, 0}, DTfloat))
	assert.True(t, errors.Is(e, ErrSchema))

	kept, e := df.KeepColumns("s", "id")
	require.NoError(t, e)
	assert.Equal(t, []string{"s", "id"}, kept.ColumnNames())
}

func TestTake(t *testing.T) {
	df := testDF(t)
	sub, e := df.KeepColumns("x", "c", "s")
	require.NoError(t, e)

	out, e := sub.Take([]int{2, -1, 0})
	require.NoError(t, e)

	x, _ := out.Column("x").AsFloat()
	assert.Equal(t, 3.0, x[0])
	assert.True(t, math.IsNaN(x[1]))
	assert.Equal(t, []int{2, Missing, 0}, out.Column("c").AsAny())
	assert.Equal(t, []string{"c", "", "a"}, out.Column("s").AsAny())

	_, e = df.Take([]int{-1})
	assert.True(t, errors.Is(e, ErrSchema))
}

func TestSameSchema(t *testing.T) {
	a, b := testDF(t), testDF(t)
	assert.NoError(t, a.SameSchema(b))

	require.NoError(t, b.Replace(mustCol(t, "x", []float32{1, 2, 3}, DTfloat32)))
	assert.True(t, errors.Is(a.SameSchema(b), ErrSchema))
}

func TestVector(t *testing.T) {
	v := MakeVector(DTcategory, 2)
	assert.True(t, v.IsMissing(0))
	assert.True(t, math.IsNaN(v.ElementFloat(1)))

	d := MakeVector(DTdate, 1)
	assert.True(t, d.IsMissing(0))

	f, e := NewVector([]float64{2, 3.5}, DTfloat)
	require.NoError(t, e)
	_, e = f.AsInt()
	assert.Error(t, e)

	i, e := NewVector([]float64{2, 3}, DTfloat)
	require.NoError(t, e)
	ints, e := i.AsInt()
	require.NoError(t, e)
	assert.Equal(t, []int{2, 3}, ints)

	cp := i.Copy()
	cp.AsAny().([]float64)[0] = 99
	assert.Equal(t, 2.0, i.ElementFloat(0))
}

func TestFromRecords(t *testing.T) {
	names := []string{"id", "cnt", "flag", "when", "txt", "empty"}
	records := [][]string{
		{"1", "3", "true", "2016-01-01", "a", ""},
		{"2", "", "", "2016-02-01", "b", "NA"},
		{"3", "4", "Y", "", "7", ""},
	}

	df, e := FromRecords(names, records, "flag")
	require.NoError(t, e)
	assert.Equal(t, []DataTypes{DTint, DTfloat, DTstring, DTdate, DTstring, DTfloat}, df.ColumnTypes())

	when, _ := df.Column("when").AsDate()
	assert.Equal(t, time.Date(2016, 2, 1, 0, 0, 0, 0, time.UTC), when[1])
	assert.True(t, when[2].IsZero())

	flag, _ := df.Column("flag").AsString()
	assert.Equal(t, []string{"true", "", "Y"}, flag)

	_, e = FromRecords(names, [][]string{{"1"}})
	assert.True(t, errors.Is(e, ErrSchema))
}

func TestParseDate(t *testing.T) {
	dt, e := ParseDate("2016-07-01")
	require.NoError(t, e)
	assert.Equal(t, time.July, dt.Month())

	_, e = ParseDate("July 1st")
	assert.True(t, errors.Is(e, ErrDate))
}

func TestNewDialect(t *testing.T) {
	d, e := NewDialect("ClickHouse", nil)
	require.NoError(t, e)
	assert.Equal(t, "clickhouse", d.DialectName())

	_, e = NewDialect("mysql", nil)
	assert.True(t, errors.Is(e, ErrConfig))
}
