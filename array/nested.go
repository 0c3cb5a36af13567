package array

import (
	"github.com/hexbee-net/errors"
)

// List is a variable-length list array. Offsets holds Len()+1 positions into
// Values; the i-th list spans Values[Offsets[i]:Offsets[i+1]].
type List struct {
	Offsets  []int32
	Validity []bool
	Values   Array
}

func NewList(offsets []int32, validity []bool, values Array) *List {
	return &List{Offsets: offsets, Validity: validity, Values: values}
}

func (a *List) Len() int {
	if len(a.Offsets) == 0 {
		return 0
	}

	return len(a.Offsets) - 1
}

func (a *List) IsNull(i int) bool { return isNull(a.Validity, i) }
func (a *List) NullCount() int    { return nullCount(a.Validity) }

// ValueRange returns the [start, end) range of the i-th list in Values.
func (a *List) ValueRange(i int) (int, int) {
	return int(a.Offsets[i]), int(a.Offsets[i+1])
}

func (a *List) Slice(i, j int) Array {
	return &List{
		Offsets:  a.Offsets[i : j+1 : j+1],
		Validity: sliceValidity(a.Validity, i, j),
		Values:   a.Values,
	}
}

func (a *List) Validate() error {
	if a.Values == nil || (len(a.Offsets) == 0 && a.Values.Len() != 0) {
		return errors.WithStack(errInvalidOffsets)
	}

	for i := 1; i < len(a.Offsets); i++ {
		if a.Offsets[i] < a.Offsets[i-1] {
			return errors.WithFields(
				errors.WithStack(errInvalidOffsets),
				errors.Fields{
					"index": i,
				})
		}
	}

	if len(a.Offsets) > 0 && (a.Offsets[0] < 0 || int(a.Offsets[len(a.Offsets)-1]) > a.Values.Len()) {
		return errors.WithFields(
			errors.WithStack(errInvalidOffsets),
			errors.Fields{
				"first":  a.Offsets[0],
				"last":   a.Offsets[len(a.Offsets)-1],
				"values": a.Values.Len(),
			})
	}

	if err := checkValidity(a.Validity, a.Len()); err != nil {
		return err
	}

	return a.Values.Validate()
}

// Struct groups child arrays of the same length.
type Struct struct {
	Length   int
	Validity []bool
	Fields   []Array
}

func NewStruct(length int, validity []bool, fields ...Array) *Struct {
	return &Struct{Length: length, Validity: validity, Fields: fields}
}

func (a *Struct) Len() int          { return a.Length }
func (a *Struct) IsNull(i int) bool { return isNull(a.Validity, i) }
func (a *Struct) NullCount() int    { return nullCount(a.Validity) }

func (a *Struct) Slice(i, j int) Array {
	fields := make([]Array, len(a.Fields))
	for k, f := range a.Fields {
		fields[k] = f.Slice(i, j)
	}

	return &Struct{Length: j - i, Validity: sliceValidity(a.Validity, i, j), Fields: fields}
}

func (a *Struct) Validate() error {
	if err := checkValidity(a.Validity, a.Length); err != nil {
		return err
	}

	for i, f := range a.Fields {
		if f.Len() != a.Length {
			return errors.WithFields(
				errors.WithStack(errLengthMismatch),
				errors.Fields{
					"field":    i,
					"expected": a.Length,
					"actual":   f.Len(),
				})
		}

		if err := f.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Chunk is a batch of top-level columns sharing one row count.
type Chunk struct {
	columns []Array
	rows    int
}

// NewChunk checks that every column has the same length.
func NewChunk(columns ...Array) (*Chunk, error) {
	c := &Chunk{columns: columns}

	for i, col := range columns {
		if i == 0 {
			c.rows = col.Len()
			continue
		}

		if col.Len() != c.rows {
			return nil, errors.WithFields(
				errors.WithStack(errLengthMismatch),
				errors.Fields{
					"column":   i,
					"expected": c.rows,
					"actual":   col.Len(),
				})
		}
	}

	return c, nil
}

func (c *Chunk) Rows() int {
	return c.rows
}

func (c *Chunk) NumColumns() int {
	return len(c.columns)
}

func (c *Chunk) Columns() []Array {
	return c.columns
}

func (c *Chunk) Column(i int) Array {
	return c.columns[i]
}

// Slice returns the [i, j) rows of every column.
func (c *Chunk) Slice(i, j int) *Chunk {
	columns := make([]Array, len(c.columns))
	for k, col := range c.columns {
		columns[k] = col.Slice(i, j)
	}

	return &Chunk{columns: columns, rows: j - i}
}
