package features

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invertedv/parcels"
	"github.com/invertedv/parcels/calendar"
	"github.com/invertedv/parcels/catalog"
	"github.com/invertedv/parcels/normalize"
)

const rawProps = `parcelid,bedroomcnt,hashottuborspa,airconditioningtypeid,propertyzoningdesc,propertycountylandusecode,unitcnt,extra
10,3,true,1,LAR1,0100,1,x
11,2,,13,,0101,2,y
12,4,true,,LCA2,010C,1,z
`

const rawTrain = `parcelid,transactiondate,logerror
10,2016-01-15,0.02
11,2016-02-03,-0.01
10,2016-06-30,0.05
`

var testCatalog = catalog.MustNew(
	catalog.Entry{Raw: "parcelid", Name: "parcelid"},
	catalog.Entry{Raw: "bedroomcnt", Name: "bedroom_cnt"},
	catalog.Entry{Raw: "hashottuborspa", Name: "spa_flag"},
	catalog.Entry{Raw: "airconditioningtypeid", Name: "cooling_id"},
	catalog.Entry{Raw: "propertyzoningdesc", Name: "zoning_description"},
	catalog.Entry{Raw: "propertycountylandusecode", Name: "county_landuse_code"},
	catalog.Entry{Raw: "unitcnt", Name: "unit_cnt"},
)

func load(t *testing.T, csv string, text ...string) *parcels.DF {
	f, e := parcels.NewFiles(parcels.FileTextFields(text...))
	require.NoError(t, e)
	df, e := f.Read(strings.NewReader(csv))
	require.NoError(t, e)

	return df
}

func assembler(t *testing.T, opts ...Opt) *Assembler {
	opts = append([]Opt{WithCatalog(testCatalog),
		WithNormalize(normalize.Config{Flags: []string{"spa_flag"}, Categoricals: []string{"cooling_id"}})}, opts...)
	a, e := NewAssembler(opts...)
	require.NoError(t, e)

	return a
}

func TestTrainingAndInference(t *testing.T) {
	a := assembler(t)
	props, e := a.Properties(load(t, rawProps, catalog.TextColumns...))
	require.NoError(t, e)
	assert.False(t, props.Has("extra"))

	train := load(t, rawTrain)
	aggs, e := calendar.Build(train)
	require.NoError(t, e)

	tr, e := a.Training(props, train, aggs)
	require.NoError(t, e)

	assert.Equal(t, []string{"bedroom_cnt", "spa_flag", "cooling_id", "unit_cnt",
		calendar.YearColumn, calendar.MonthColumn, calendar.QuarterColumn}, tr.Features.ColumnNames())
	assert.Equal(t, []float64{0.02, -0.01, 0.05}, tr.Label)
	assert.Equal(t, []int{10, 11, 10}, tr.ParcelID)

	// one-to-many: parcel 10 appears twice with the same properties
	beds := tr.Features.Column("bedroom_cnt").AsAny().([]float64)
	assert.Equal(t, []float64{3, 2, 3}, beds)

	frame, e := InferenceFrame(props, time.Date(2016, 10, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, e)

	inf, e := a.Inference(props, frame, aggs)
	require.NoError(t, e)
	assert.Nil(t, inf.Label)
	assert.Equal(t, []int{10, 11, 12}, inf.ParcelID)
	assert.NoError(t, CheckSchema(tr, inf))

	// October was never seen in training
	mon, _ := inf.Features.Column(calendar.MonthColumn).AsFloat()
	for _, v := range mon {
		assert.True(t, math.IsNaN(v))
	}

	yr, _ := inf.Features.Column(calendar.YearColumn).AsFloat()
	assert.InDelta(t, 0.02, yr[0], 1e-12)
}

func TestDropSparse(t *testing.T) {
	a := assembler(t, WithDropSparse(true))
	assert.Contains(t, a.Dropped(), "framing_id")
	assert.Contains(t, a.Dropped(), "fireplace_flag")

	b := assembler(t)
	assert.NotContains(t, b.Dropped(), "framing_id")
}

func TestDropFeaturesIdempotent(t *testing.T) {
	df := load(t, rawProps)
	drop := []string{"parcelid", "logerror", "propertyzoningdesc", "not_there"}

	once := DropFeatures(df, drop...)
	twice := DropFeatures(once, drop...)

	assert.Equal(t, once.ColumnNames(), twice.ColumnNames())
	assert.NoError(t, once.SameSchema(twice))
	assert.NotContains(t, once.ColumnNames(), "parcelid")
	assert.Contains(t, df.ColumnNames(), "parcelid")
}

func TestJoin(t *testing.T) {
	left := load(t, "parcelid,a\n1,x\n2,y\n9,z\n1,w\n", "a")
	right := load(t, "parcelid,n,f,s\n1,5,0.5,p\n2,6,,q\n", "s")

	out, e := Join(left, right, "parcelid")
	require.NoError(t, e)
	assert.Equal(t, []string{"parcelid", "a", "n", "f", "s"}, out.ColumnNames())

	// DTint is promoted so the unmatched row can be missing
	assert.Equal(t, parcels.DTfloat, out.Column("n").DataType())
	n, _ := out.Column("n").AsFloat()
	assert.Equal(t, 5.0, n[0])
	assert.True(t, math.IsNaN(n[2]))
	assert.Equal(t, 5.0, n[3])

	s, _ := out.Column("s").AsString()
	assert.Equal(t, []string{"p", "q", "", "p"}, s)
}

func TestJoinKeepsLargeIntegers(t *testing.T) {
	// 34144442 has no exact float32 representation
	left := load(t, "parcelid\n1\n")
	right := load(t, "parcelid,latitude\n1,34144442\n")

	out, e := Join(left, right, "parcelid")
	require.NoError(t, e)
	assert.Equal(t, parcels.DTfloat, out.Column("latitude").DataType())

	lat, _ := out.Column("latitude").AsFloat()
	assert.Equal(t, 34144442.0, lat[0])
}

func TestJoinDuplicateRightKey(t *testing.T) {
	left := load(t, "parcelid,a\n1,x\n", "a")
	right := load(t, "parcelid,n\n1,5\n1,6\n")

	_, e := Join(left, right, "parcelid")
	assert.True(t, errors.Is(e, parcels.ErrSchema))
}

func TestTrainingNeedsTarget(t *testing.T) {
	a := assembler(t)
	props, e := a.Properties(load(t, rawProps, catalog.TextColumns...))
	require.NoError(t, e)

	frame := load(t, "parcelid,transactiondate\n10,2016-01-01\n")
	_, e = a.Training(props, frame, nil)
	assert.True(t, errors.Is(e, parcels.ErrConfig))
}
