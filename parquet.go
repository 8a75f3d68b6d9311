package parcels

import (
	"io"
	"math"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"
)

const parquetBatch = 4096

// WriteParquet writes df as a single parquet row group stream. Category codes are written as required
// INT32 so the -1 sentinel reaches the model unchanged; every other column is optional and missing
// values are written as nulls.
func WriteParquet(w io.Writer, df *DF) error {
	group := parquet.Group{}
	for _, col := range df.Columns() {
		var node parquet.Node
		switch col.DataType() {
		case DTfloat:
			node = parquet.Optional(parquet.Leaf(parquet.DoubleType))
		case DTfloat32:
			node = parquet.Optional(parquet.Leaf(parquet.FloatType))
		case DTint:
			node = parquet.Optional(parquet.Int(64))
		case DTcategory:
			node = parquet.Int(32)
		case DTstring, DTdate:
			node = parquet.Optional(parquet.String())
		default:
			return errors.Wrapf(ErrSchema, "no parquet type for column %s (%s)", col.Name(), col.DataType())
		}

		group[col.Name()] = node
	}

	schema := parquet.NewSchema("features", group)
	writer := parquet.NewWriter(w, schema)

	// the schema orders leaves by name
	fields := schema.Fields()
	order := make([]*Col, len(fields))
	for ind, fld := range fields {
		order[ind] = df.Column(fld.Name())
	}

	rows := make([]parquet.Row, 0, parquetBatch)
	for r := 0; r < df.RowCount(); r++ {
		row := make(parquet.Row, len(order))
		for c, col := range order {
			row[c] = parquetValue(col, r, c)
		}

		rows = append(rows, row)
		if len(rows) == parquetBatch {
			if _, e := writer.WriteRows(rows); e != nil {
				return e
			}
			rows = rows[:0]
		}
	}

	if len(rows) > 0 {
		if _, e := writer.WriteRows(rows); e != nil {
			return e
		}
	}

	return writer.Close()
}

func parquetValue(col *Col, row, colIndex int) parquet.Value {
	switch x := col.AsAny().(type) {
	case []float64:
		if math.IsNaN(x[row]) {
			return parquet.Value{}.Level(0, 0, colIndex)
		}
		return parquet.DoubleValue(x[row]).Level(0, 1, colIndex)
	case []float32:
		if math.IsNaN(float64(x[row])) {
			return parquet.Value{}.Level(0, 0, colIndex)
		}
		return parquet.FloatValue(x[row]).Level(0, 1, colIndex)
	case []int:
		if col.DataType() == DTcategory {
			return parquet.Int32Value(int32(x[row])).Level(0, 0, colIndex)
		}
		return parquet.Int64Value(int64(x[row])).Level(0, 1, colIndex)
	case []string:
		if x[row] == "" {
			return parquet.Value{}.Level(0, 0, colIndex)
		}
		return parquet.ByteArrayValue([]byte(x[row])).Level(0, 1, colIndex)
	case []time.Time:
		if x[row].IsZero() {
			return parquet.Value{}.Level(0, 0, colIndex)
		}
		return parquet.ByteArrayValue([]byte(x[row].Format(DateFormat))).Level(0, 1, colIndex)
	}

	return parquet.Value{}.Level(0, 0, colIndex)
}
