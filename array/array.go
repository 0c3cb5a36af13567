// Package array holds in-memory columnar data: typed primitive arrays with an
// optional validity mask, lists, structs and the chunks that group them.
//
// A nil Validity means every slot is valid. Null slots still occupy a slot in
// the values slice; their content is ignored by Equal.
package array

import (
	"fmt"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/types"
)

const (
	errLengthMismatch = errors.Error("length mismatch")
	errInvalidOffsets = errors.Error("invalid list offsets")
	errInvalidType    = errors.Error("invalid values type")
	errCountMismatch  = errors.Error("non-null count mismatch")
)

// Array is a column of values.
type Array interface {
	Len() int
	IsNull(i int) bool
	NullCount() int
	// Slice returns the [i, j) sub-array, sharing memory with the receiver.
	Slice(i, j int) Array
	Validate() error
}

// Primitive is an array of leaf values of one physical type.
type Primitive interface {
	Array

	PhysicalType() types.Type
	Mask() []bool
	// NonNullValues returns the values of the valid slots as a typed slice.
	NonNullValues() interface{}
}

func isNull(validity []bool, i int) bool {
	return validity != nil && !validity[i]
}

func nullCount(validity []bool) int {
	n := 0

	for _, v := range validity {
		if !v {
			n++
		}
	}

	return n
}

func sliceValidity(validity []bool, i, j int) []bool {
	if validity == nil {
		return nil
	}

	return validity[i:j:j]
}

func checkValidity(validity []bool, n int) error {
	if validity != nil && len(validity) != n {
		return errors.WithFields(
			errors.WithStack(errLengthMismatch),
			errors.Fields{
				"validity": len(validity),
				"length":   n,
			})
	}

	return nil
}

// Boolean /////////////////////////////

type Boolean struct {
	Values   []bool
	Validity []bool
}

func NewBoolean(values []bool, validity []bool) *Boolean {
	return &Boolean{Values: values, Validity: validity}
}

func (a *Boolean) Len() int                 { return len(a.Values) }
func (a *Boolean) IsNull(i int) bool        { return isNull(a.Validity, i) }
func (a *Boolean) NullCount() int           { return nullCount(a.Validity) }
func (a *Boolean) Mask() []bool             { return a.Validity }
func (a *Boolean) PhysicalType() types.Type { return types.Boolean }
func (a *Boolean) Validate() error          { return checkValidity(a.Validity, len(a.Values)) }

func (a *Boolean) Slice(i, j int) Array {
	return &Boolean{Values: a.Values[i:j:j], Validity: sliceValidity(a.Validity, i, j)}
}

func (a *Boolean) NonNullValues() interface{} {
	if a.Validity == nil {
		return a.Values
	}

	res := make([]bool, 0, len(a.Values))
	for i, v := range a.Values {
		if a.Validity[i] {
			res = append(res, v)
		}
	}

	return res
}

// Int32 /////////////////////////////

type Int32 struct {
	Values   []int32
	Validity []bool
}

func NewInt32(values []int32, validity []bool) *Int32 {
	return &Int32{Values: values, Validity: validity}
}

func (a *Int32) Len() int                 { return len(a.Values) }
func (a *Int32) IsNull(i int) bool        { return isNull(a.Validity, i) }
func (a *Int32) NullCount() int           { return nullCount(a.Validity) }
func (a *Int32) Mask() []bool             { return a.Validity }
func (a *Int32) PhysicalType() types.Type { return types.Int32 }
func (a *Int32) Validate() error          { return checkValidity(a.Validity, len(a.Values)) }

func (a *Int32) Slice(i, j int) Array {
	return &Int32{Values: a.Values[i:j:j], Validity: sliceValidity(a.Validity, i, j)}
}

func (a *Int32) NonNullValues() interface{} {
	if a.Validity == nil {
		return a.Values
	}

	res := make([]int32, 0, len(a.Values))
	for i, v := range a.Values {
		if a.Validity[i] {
			res = append(res, v)
		}
	}

	return res
}

// Int64 /////////////////////////////

type Int64 struct {
	Values   []int64
	Validity []bool
}

func NewInt64(values []int64, validity []bool) *Int64 {
	return &Int64{Values: values, Validity: validity}
}

func (a *Int64) Len() int                 { return len(a.Values) }
func (a *Int64) IsNull(i int) bool        { return isNull(a.Validity, i) }
func (a *Int64) NullCount() int           { return nullCount(a.Validity) }
func (a *Int64) Mask() []bool             { return a.Validity }
func (a *Int64) PhysicalType() types.Type { return types.Int64 }
func (a *Int64) Validate() error          { return checkValidity(a.Validity, len(a.Values)) }

func (a *Int64) Slice(i, j int) Array {
	return &Int64{Values: a.Values[i:j:j], Validity: sliceValidity(a.Validity, i, j)}
}

func (a *Int64) NonNullValues() interface{} {
	if a.Validity == nil {
		return a.Values
	}

	res := make([]int64, 0, len(a.Values))
	for i, v := range a.Values {
		if a.Validity[i] {
			res = append(res, v)
		}
	}

	return res
}

// Float32 /////////////////////////////

type Float32 struct {
	Values   []float32
	Validity []bool
}

func NewFloat32(values []float32, validity []bool) *Float32 {
	return &Float32{Values: values, Validity: validity}
}

func (a *Float32) Len() int                 { return len(a.Values) }
func (a *Float32) IsNull(i int) bool        { return isNull(a.Validity, i) }
func (a *Float32) NullCount() int           { return nullCount(a.Validity) }
func (a *Float32) Mask() []bool             { return a.Validity }
func (a *Float32) PhysicalType() types.Type { return types.Float }
func (a *Float32) Validate() error          { return checkValidity(a.Validity, len(a.Values)) }

func (a *Float32) Slice(i, j int) Array {
	return &Float32{Values: a.Values[i:j:j], Validity: sliceValidity(a.Validity, i, j)}
}

func (a *Float32) NonNullValues() interface{} {
	if a.Validity == nil {
		return a.Values
	}

	res := make([]float32, 0, len(a.Values))
	for i, v := range a.Values {
		if a.Validity[i] {
			res = append(res, v)
		}
	}

	return res
}

// Float64 /////////////////////////////

type Float64 struct {
	Values   []float64
	Validity []bool
}

func NewFloat64(values []float64, validity []bool) *Float64 {
	return &Float64{Values: values, Validity: validity}
}

func (a *Float64) Len() int                 { return len(a.Values) }
func (a *Float64) IsNull(i int) bool        { return isNull(a.Validity, i) }
func (a *Float64) NullCount() int           { return nullCount(a.Validity) }
func (a *Float64) Mask() []bool             { return a.Validity }
func (a *Float64) PhysicalType() types.Type { return types.Double }
func (a *Float64) Validate() error          { return checkValidity(a.Validity, len(a.Values)) }

func (a *Float64) Slice(i, j int) Array {
	return &Float64{Values: a.Values[i:j:j], Validity: sliceValidity(a.Validity, i, j)}
}

func (a *Float64) NonNullValues() interface{} {
	if a.Validity == nil {
		return a.Values
	}

	res := make([]float64, 0, len(a.Values))
	for i, v := range a.Values {
		if a.Validity[i] {
			res = append(res, v)
		}
	}

	return res
}

// Binary /////////////////////////////

// Binary holds byte strings; it backs both binary and string columns.
type Binary struct {
	Values   [][]byte
	Validity []bool
}

func NewBinary(values [][]byte, validity []bool) *Binary {
	return &Binary{Values: values, Validity: validity}
}

// NewString builds a Binary array from strings.
func NewString(values []string, validity []bool) *Binary {
	res := make([][]byte, len(values))
	for i, v := range values {
		res[i] = []byte(v)
	}

	return &Binary{Values: res, Validity: validity}
}

func (a *Binary) Len() int                 { return len(a.Values) }
func (a *Binary) IsNull(i int) bool        { return isNull(a.Validity, i) }
func (a *Binary) NullCount() int           { return nullCount(a.Validity) }
func (a *Binary) Mask() []bool             { return a.Validity }
func (a *Binary) PhysicalType() types.Type { return types.ByteArray }
func (a *Binary) Validate() error          { return checkValidity(a.Validity, len(a.Values)) }

func (a *Binary) Slice(i, j int) Array {
	return &Binary{Values: a.Values[i:j:j], Validity: sliceValidity(a.Validity, i, j)}
}

func (a *Binary) NonNullValues() interface{} {
	if a.Validity == nil {
		return a.Values
	}

	res := make([][]byte, 0, len(a.Values))
	for i, v := range a.Values {
		if a.Validity[i] {
			res = append(res, v)
		}
	}

	return res
}

// FromValues builds a primitive array of physical type t with the given
// validity, spreading the non-null values over the valid slots. values must
// hold exactly one entry per valid slot.
func FromValues(t types.Type, values interface{}, validity []bool) (Primitive, error) {
	switch t {
	case types.Boolean:
		v, ok := values.([]bool)
		if !ok {
			return nil, invalidValues(t, values)
		}

		res, err := spreadBool(v, validity)

		return &Boolean{Values: res, Validity: validity}, err
	case types.Int32:
		v, ok := values.([]int32)
		if !ok {
			return nil, invalidValues(t, values)
		}

		res, err := spreadInt32(v, validity)

		return &Int32{Values: res, Validity: validity}, err
	case types.Int64:
		v, ok := values.([]int64)
		if !ok {
			return nil, invalidValues(t, values)
		}

		res, err := spreadInt64(v, validity)

		return &Int64{Values: res, Validity: validity}, err
	case types.Float:
		v, ok := values.([]float32)
		if !ok {
			return nil, invalidValues(t, values)
		}

		res, err := spreadFloat32(v, validity)

		return &Float32{Values: res, Validity: validity}, err
	case types.Double:
		v, ok := values.([]float64)
		if !ok {
			return nil, invalidValues(t, values)
		}

		res, err := spreadFloat64(v, validity)

		return &Float64{Values: res, Validity: validity}, err
	case types.ByteArray:
		v, ok := values.([][]byte)
		if !ok {
			return nil, invalidValues(t, values)
		}

		res, err := spreadBinary(v, validity)

		return &Binary{Values: res, Validity: validity}, err
	}

	return nil, invalidValues(t, values)
}

func invalidValues(t types.Type, values interface{}) error {
	return errors.WithFields(
		errors.WithStack(errInvalidType),
		errors.Fields{
			"type":   t.String(),
			"values": fmt.Sprintf("%T", values),
		})
}

func checkSpread(n int, validity []bool) error {
	if validity == nil {
		return nil
	}

	if valid := len(validity) - nullCount(validity); valid != n {
		return errors.WithFields(
			errors.WithStack(errCountMismatch),
			errors.Fields{
				"expected": valid,
				"actual":   n,
			})
	}

	return nil
}

func spreadBool(values []bool, validity []bool) ([]bool, error) {
	if err := checkSpread(len(values), validity); err != nil || validity == nil {
		return values, err
	}

	res := make([]bool, len(validity))

	j := 0
	for i, ok := range validity {
		if ok {
			res[i] = values[j]
			j++
		}
	}

	return res, nil
}

func spreadInt32(values []int32, validity []bool) ([]int32, error) {
	if err := checkSpread(len(values), validity); err != nil || validity == nil {
		return values, err
	}

	res := make([]int32, len(validity))

	j := 0
	for i, ok := range validity {
		if ok {
			res[i] = values[j]
			j++
		}
	}

	return res, nil
}

func spreadInt64(values []int64, validity []bool) ([]int64, error) {
	if err := checkSpread(len(values), validity); err != nil || validity == nil {
		return values, err
	}

	res := make([]int64, len(validity))

	j := 0
	for i, ok := range validity {
		if ok {
			res[i] = values[j]
			j++
		}
	}

	return res, nil
}

func spreadFloat32(values []float32, validity []bool) ([]float32, error) {
	if err := checkSpread(len(values), validity); err != nil || validity == nil {
		return values, err
	}

	res := make([]float32, len(validity))

	j := 0
	for i, ok := range validity {
		if ok {
			res[i] = values[j]
			j++
		}
	}

	return res, nil
}

func spreadFloat64(values []float64, validity []bool) ([]float64, error) {
	if err := checkSpread(len(values), validity); err != nil || validity == nil {
		return values, err
	}

	res := make([]float64, len(validity))

	j := 0
	for i, ok := range validity {
		if ok {
			res[i] = values[j]
			j++
		}
	}

	return res, nil
}

func spreadBinary(values [][]byte, validity []bool) ([][]byte, error) {
	if err := checkSpread(len(values), validity); err != nil || validity == nil {
		return values, err
	}

	res := make([][]byte, len(validity))

	j := 0
	for i, ok := range validity {
		if ok {
			res[i] = values[j]
			j++
		}
	}

	return res, nil
}
