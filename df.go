package parcels

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// DataTypes are the types of data that the package supports
type DataTypes uint8

// values of DataTypes
const (
	DTunknown DataTypes = 0 + iota
	DTstring
	DTfloat
	DTfloat32
	DTint
	DTcategory
	DTdate
)

// MaxDT is the max value of DataTypes type
const MaxDT = DTdate

var dtNames = []string{"DTunknown", "DTstring", "DTfloat", "DTfloat32", "DTint", "DTcategory", "DTdate"}

func (dt DataTypes) String() string {
	if dt > MaxDT {
		return fmt.Sprintf("DataTypes(%d)", dt)
	}

	return dtNames[dt]
}

// IsNumeric is true for the float, int and category types.
func (dt DataTypes) IsNumeric() bool {
	return dt == DTfloat || dt == DTfloat32 || dt == DTint || dt == DTcategory
}

func DTFromString(nm string) DataTypes {
	pos := position(nm, dtNames)
	if pos < 0 {
		return DTunknown
	}

	return DataTypes(uint8(pos))
}

// DF is an ordered set of equal-length columns with unique names.
//
// Columns are treated as immutable once added: operations that change a column's content build a new
// *Col and swap it in with Replace. Copy is therefore cheap and safe to hand between pipeline stages.
type DF struct {
	cols []*Col
}

func NewDF(cols ...*Col) (*DF, error) {
	if cols == nil {
		return nil, errors.Wrap(ErrSchema, "no columns in NewDF")
	}

	df := &DF{}
	for _, col := range cols {
		if e := df.AppendColumn(col); e != nil {
			return nil, e
		}
	}

	return df, nil
}

// ***************** Methods *****************

func (df *DF) RowCount() int {
	if len(df.cols) == 0 {
		return 0
	}

	return df.cols[0].Len()
}

func (df *DF) ColumnCount() int {
	return len(df.cols)
}

func (df *DF) ColumnNames() []string {
	names := make([]string, 0, len(df.cols))
	for _, col := range df.cols {
		names = append(names, col.Name())
	}

	return names
}

func (df *DF) ColumnTypes() []DataTypes {
	dts := make([]DataTypes, 0, len(df.cols))
	for _, col := range df.cols {
		dts = append(dts, col.DataType())
	}

	return dts
}

// Column returns the named column, or nil if there is none.
func (df *DF) Column(colName string) *Col {
	if pos := df.index(colName); pos >= 0 {
		return df.cols[pos]
	}

	return nil
}

func (df *DF) Has(colName string) bool {
	return df.index(colName) >= 0
}

// Columns returns the columns in order. The slice is a copy.
func (df *DF) Columns() []*Col {
	out := make([]*Col, len(df.cols))
	copy(out, df.cols)

	return out
}

func (df *DF) AppendColumn(col *Col) error {
	if col == nil {
		return errors.Wrap(ErrSchema, "nil column in AppendColumn")
	}

	if df.Has(col.Name()) {
		return errors.Wrapf(ErrSchema, "duplicate column name: %s", col.Name())
	}

	if len(df.cols) > 0 && col.Len() != df.RowCount() {
		return errors.Wrapf(ErrSchema, "length mismatch: df - %d, append col %s - %d", df.RowCount(), col.Name(), col.Len())
	}

	df.cols = append(df.cols, col)

	return nil
}

// Replace swaps in col for the existing column of the same name, keeping its position.
func (df *DF) Replace(col *Col) error {
	pos := df.index(col.Name())
	if pos < 0 {
		return errors.Wrapf(ErrSchema, "column %s not found", col.Name())
	}

	if col.Len() != df.RowCount() {
		return errors.Wrapf(ErrSchema, "length mismatch: df - %d, replace col %s - %d", df.RowCount(), col.Name(), col.Len())
	}

	df.cols[pos] = col

	return nil
}

// DropColumns removes the named columns. Any absent name is an error and nothing is dropped.
func (df *DF) DropColumns(colNames ...string) error {
	for _, cName := range colNames {
		if !df.Has(cName) {
			return errors.Wrapf(ErrSchema, "column %s not found", cName)
		}
	}

	df.DropIfPresent(colNames...)

	return nil
}

// DropIfPresent removes the intersection of colNames with the columns of df and returns the names it
// removed, in df order. Absent names are ignored.
func (df *DF) DropIfPresent(colNames ...string) []string {
	var (
		kept    []*Col
		dropped []string
	)

	for _, col := range df.cols {
		if has(col.Name(), colNames) {
			dropped = append(dropped, col.Name())
			continue
		}

		kept = append(kept, col)
	}

	df.cols = kept

	return dropped
}

// KeepColumns returns a new DF holding only colNames, in that order.
func (df *DF) KeepColumns(colNames ...string) (*DF, error) {
	var cols []*Col
	for _, cName := range colNames {
		col := df.Column(cName)
		if col == nil {
			return nil, errors.Wrapf(ErrSchema, "column %s not found", cName)
		}

		cols = append(cols, col)
	}

	return NewDF(cols...)
}

// Copy returns a new DF with the same columns. The column data is shared.
func (df *DF) Copy() *DF {
	return &DF{cols: df.Columns()}
}

// Take gathers rows by index into a new DF. An index of -1 yields the missing value of each column;
// DTint columns cannot hold a missing value and fail in that case.
func (df *DF) Take(rows []int) (*DF, error) {
	out := &DF{}
	for _, col := range df.cols {
		var (
			v *Vector
			e error
		)
		if v, e = col.Take(rows); e != nil {
			return nil, errors.Wrapf(e, "column %s", col.Name())
		}

		if e = out.AppendColumn(&Col{Vector: v, name: col.Name()}); e != nil {
			return nil, e
		}
	}

	return out, nil
}

// SameSchema checks that other has the same column names and types, in the same order.
func (df *DF) SameSchema(other *DF) error {
	if df.ColumnCount() != other.ColumnCount() {
		return errors.Wrapf(ErrSchema, "column count differs: %d vs %d", df.ColumnCount(), other.ColumnCount())
	}

	for ind, col := range df.cols {
		oc := other.cols[ind]
		if col.Name() != oc.Name() || col.DataType() != oc.DataType() {
			return errors.Wrapf(ErrSchema, "column %d differs: %s %s vs %s %s",
				ind, col.Name(), col.DataType(), oc.Name(), oc.DataType())
		}
	}

	return nil
}

func (df *DF) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("rows: %d\n", df.RowCount()))
	for _, col := range df.cols {
		sb.WriteString(fmt.Sprintf("%s: %s\n", col.Name(), col.DataType()))
	}

	return sb.String()
}

func (df *DF) index(colName string) int {
	for ind, col := range df.cols {
		if col.Name() == colName {
			return ind
		}
	}

	return -1
}
