// Package features assembles the model feature table from properties, transactions and the datetime
// aggregates.
package features

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/invertedv/parcels"
	"github.com/invertedv/parcels/calendar"
	"github.com/invertedv/parcels/catalog"
	"github.com/invertedv/parcels/normalize"
)

var (
	// NotFeatures are key and target columns.
	NotFeatures = []string{catalog.ParcelID, catalog.LogError}
	// Unusable are free-text columns that cannot be used directly.
	Unusable = []string{"county_landuse_code", "zoning_description"}
	// Sparse are columns with many missing values. They are kept unless the Assembler drops them.
	Sparse = []string{"framing_id", "construction_id", "deck_id", "pool_unk_1", "architecture_style_id",
		"story_id", "perimeter_area", "pool_total_size", "basement_sqft", "storage_sqft", "fireplace_flag"}
)

// Table is an assembled feature table. Rows line up with ParcelID and, for training, Label.
type Table struct {
	Features *parcels.DF
	Label    []float64
	ParcelID []int
}

// DropFeatures returns a copy of df without the named columns. Names not in df are ignored, so applying
// it twice is the same as applying it once.
func DropFeatures(df *parcels.DF, drop ...string) *parcels.DF {
	out := df.Copy()
	out.DropIfPresent(drop...)

	return out
}

// Assembler builds training and inference tables with one configuration, so both share a schema.
type Assembler struct {
	catalog    *catalog.Catalog
	normalize  normalize.Config
	drop       []string
	dropSparse bool

	logger *zap.SugaredLogger
}

type Opt func(a *Assembler) error

func NewAssembler(opts ...Opt) (*Assembler, error) {
	a := &Assembler{
		catalog:   catalog.Properties,
		normalize: normalize.Default,
		drop:      append(append([]string{}, NotFeatures...), Unusable...),
		logger:    zap.NewNop().Sugar(),
	}

	for _, opt := range opts {
		if e := opt(a); e != nil {
			return nil, e
		}
	}

	if a.dropSparse {
		a.drop = append(a.drop, Sparse...)
	}

	return a, nil
}

// ***************** Setters *****************

func WithCatalog(c *catalog.Catalog) Opt {
	return func(a *Assembler) error {
		if c == nil {
			return errors.Wrap(parcels.ErrConfig, "nil catalog")
		}

		a.catalog = c
		return nil
	}
}

func WithNormalize(cfg normalize.Config) Opt {
	return func(a *Assembler) error {
		a.normalize = cfg
		return nil
	}
}

// WithDropSparse drops the Sparse columns as well.
func WithDropSparse(drop bool) Opt {
	return func(a *Assembler) error {
		a.dropSparse = drop
		return nil
	}
}

// WithDrop adds columns to drop from the feature table.
func WithDrop(cols ...string) Opt {
	return func(a *Assembler) error {
		a.drop = append(a.drop, cols...)
		return nil
	}
}

func WithLogger(logger *zap.SugaredLogger) Opt {
	return func(a *Assembler) error {
		if logger != nil {
			a.logger = logger
		}
		return nil
	}
}

// ***************** Methods *****************

// Dropped returns the columns removed from every feature table.
func (a *Assembler) Dropped() []string {
	return append([]string(nil), a.drop...)
}

// Properties renames and normalizes a raw properties table.
func (a *Assembler) Properties(raw *parcels.DF) (*parcels.DF, error) {
	start := time.Now()

	var (
		props *parcels.DF
		e     error
	)
	if props, e = a.catalog.Apply(raw); e != nil {
		return nil, e
	}

	if props, e = normalize.Normalize(props, a.normalize); e != nil {
		return nil, e
	}

	a.logger.Infow("properties normalized", "rows", props.RowCount(), "columns", props.ColumnCount(),
		"dropped", raw.ColumnCount()-props.ColumnCount(), "elapsed", time.Since(start))

	return props, nil
}

// Training builds the training table from normalized properties, training transactions and aggregates
// built from those same transactions.
func (a *Assembler) Training(props, train *parcels.DF, aggs *calendar.Aggregates) (*Table, error) {
	if !train.Has(catalog.LogError) {
		return nil, errors.Wrapf(parcels.ErrConfig, "training set has no %s column", catalog.LogError)
	}

	return a.assemble("training", props, train, aggs, catalog.ParcelID, catalog.TransactionDate, catalog.LogError)
}

// Inference builds a scoring table. Any target column in trans is ignored.
func (a *Assembler) Inference(props, trans *parcels.DF, aggs *calendar.Aggregates) (*Table, error) {
	return a.assemble("inference", props, trans, aggs, catalog.ParcelID, catalog.TransactionDate)
}

func (a *Assembler) assemble(stage string, props, trans *parcels.DF, aggs *calendar.Aggregates, keep ...string) (*Table, error) {
	start := time.Now()

	var (
		tx, joined *parcels.DF
		e          error
	)
	if tx, e = trans.KeepColumns(keep...); e != nil {
		return nil, errors.Wrapf(parcels.ErrConfig, "%s transactions: %v", stage, e)
	}

	if joined, e = Join(tx, props, catalog.ParcelID); e != nil {
		return nil, e
	}

	if joined, e = calendar.Attach(joined, aggs); e != nil {
		return nil, e
	}

	tbl := &Table{}
	ids, _ := joined.Column(catalog.ParcelID).AsInt()
	tbl.ParcelID = append([]int(nil), ids...)

	if y := joined.Column(catalog.LogError); y != nil {
		var label []float64
		if label, e = y.AsFloat(); e != nil {
			return nil, e
		}

		tbl.Label = append([]float64(nil), label...)
	}

	tbl.Features = DropFeatures(joined, a.drop...)

	a.logger.Infow("feature table assembled", "stage", stage, "rows", tbl.Features.RowCount(),
		"columns", tbl.Features.ColumnCount(), "elapsed", time.Since(start))

	return tbl, nil
}

// CheckSchema verifies that a training and an inference table have the same feature columns and types.
func CheckSchema(train, inference *Table) error {
	return train.Features.SameSchema(inference.Features)
}

// InferenceFrame builds one transaction per parcel in props, dated date.
func InferenceFrame(props *parcels.DF, date time.Time) (*parcels.DF, error) {
	pc := props.Column(catalog.ParcelID)
	if pc == nil {
		return nil, errors.Wrapf(parcels.ErrConfig, "properties have no %s column", catalog.ParcelID)
	}

	var (
		ids []int
		e   error
	)
	if ids, e = pc.AsInt(); e != nil {
		return nil, e
	}

	dates := make([]time.Time, len(ids))
	for ind := range dates {
		dates[ind] = date
	}

	var idc, dc *parcels.Col
	if idc, e = parcels.NewCol(append([]int(nil), ids...), parcels.DTint, parcels.ColName(catalog.ParcelID)); e != nil {
		return nil, e
	}

	if dc, e = parcels.NewCol(dates, parcels.DTdate, parcels.ColName(catalog.TransactionDate)); e != nil {
		return nil, e
	}

	return parcels.NewDF(idc, dc)
}
