package parcels

import (
	"fmt"

	"github.com/pkg/errors"
)

// Col is a named Vector.
type Col struct {
	*Vector

	name string
}

// ColOpt configures a Col in NewCol.
type ColOpt func(c *Col) error

func NewCol(data any, dt DataTypes, opts ...ColOpt) (*Col, error) {
	var (
		v *Vector
		e error
	)

	if vx, ok := data.(*Vector); ok {
		v = vx
	} else if v, e = NewVector(data, dt); e != nil {
		return nil, e
	}

	col := &Col{Vector: v}
	for _, opt := range opts {
		if e := opt(col); e != nil {
			return nil, e
		}
	}

	if col.name == "" {
		return nil, errors.Wrap(ErrSchema, "column has no name")
	}

	return col, nil
}

// ***************** Setters *****************

func ColName(name string) ColOpt {
	return func(c *Col) error {
		if c == nil {
			return fmt.Errorf("nil column to ColName")
		}

		if !validName(name) {
			return errors.Wrapf(ErrSchema, "invalid column name: %q", name)
		}

		c.name = name

		return nil
	}
}

// ***************** Methods *****************

func (c *Col) Name() string {
	return c.name
}

func (c *Col) DataType() DataTypes {
	return c.VectorType()
}

// Renamed returns a new Col with the same data under newName.
func (c *Col) Renamed(newName string) (*Col, error) {
	return NewCol(c.Vector, c.DataType(), ColName(newName))
}

// MissingCount is the number of elements holding their type's missing value.
func (c *Col) MissingCount() int {
	cnt := 0
	for ind := 0; ind < c.Len(); ind++ {
		if c.IsMissing(ind) {
			cnt++
		}
	}

	return cnt
}

func (c *Col) String() string {
	return fmt.Sprintf("column: %s\ntype: %s\nrows: %d\nmissing: %d\n", c.Name(), c.DataType(), c.Len(), c.MissingCount())
}
