package churon

import (
	"fmt"
	"math"

	"github.com/mrchypark/churon/engine"
)

// ElementType enumerates the element types a HostValue can carry.
// This is the closed host-side set: the marshaller only ever operates over
// these statically-known cases.
type ElementType int

// Host element types.
const (
	Float32 ElementType = iota + 1
	Float64
	Int32
	Int64
	Bool
	Text
)

// String returns the canonical lowercase name of the element type.
func (t ElementType) String() string {
	switch t {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Bool:
		return "bool"
	case Text:
		return "text"
	default:
		return fmt.Sprintf("ElementType(%d)", int(t))
	}
}

// HostValue is an n-dimensional numeric or textual buffer with an explicit
// shape, stored flat in row-major (outermost-dimension-first) order.
//
// A HostValue is immutable after construction. Values passed to Run are never
// retained past the call; values returned from Run are owned by the caller.
type HostValue struct {
	elem  ElementType
	shape []int64

	f32   []float32
	f64   []float64
	i32   []int32
	i64   []int64
	bools []bool
	text  []string
}

// NamedValue pairs an input name with its value. Slices of NamedValue keep
// caller-supplied ordering and can represent the duplicate-name mistakes a
// plain map cannot, so validation can report them.
type NamedValue struct {
	Name  string
	Value *HostValue
}

// elementCount returns the element count implied by shape, or an error if any
// dimension is negative. A zero-length shape describes a scalar.
func elementCount(shape []int64) (int64, error) {
	n := int64(1)
	for _, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("negative dimension %d in shape %v", d, shape)
		}
		if d > 0 && n > math.MaxInt64/d {
			return 0, fmt.Errorf("element count overflows for shape %v", shape)
		}
		n *= d
	}
	return n, nil
}

func checkShape(dataLen int, shape []int64) error {
	n, err := elementCount(shape)
	if err != nil {
		return &Error{Kind: KindShapeMismatch, Actual: append([]int64(nil), shape...), Msg: err.Error()}
	}
	if int64(dataLen) != n {
		return &Error{
			Kind:   KindShapeMismatch,
			Actual: append([]int64(nil), shape...),
			Msg:    fmt.Sprintf("shape implies %d elements, data has %d", n, dataLen),
		}
	}
	return nil
}

// Float32Value creates a float32 HostValue from flat row-major data.
func Float32Value(data []float32, shape []int64) (*HostValue, error) {
	if err := checkShape(len(data), shape); err != nil {
		return nil, err
	}
	return &HostValue{elem: Float32, shape: append([]int64(nil), shape...), f32: append([]float32(nil), data...)}, nil
}

// Float64Value creates a float64 HostValue from flat row-major data.
func Float64Value(data []float64, shape []int64) (*HostValue, error) {
	if err := checkShape(len(data), shape); err != nil {
		return nil, err
	}
	return &HostValue{elem: Float64, shape: append([]int64(nil), shape...), f64: append([]float64(nil), data...)}, nil
}

// Int32Value creates an int32 HostValue from flat row-major data.
func Int32Value(data []int32, shape []int64) (*HostValue, error) {
	if err := checkShape(len(data), shape); err != nil {
		return nil, err
	}
	return &HostValue{elem: Int32, shape: append([]int64(nil), shape...), i32: append([]int32(nil), data...)}, nil
}

// Int64Value creates an int64 HostValue from flat row-major data.
func Int64Value(data []int64, shape []int64) (*HostValue, error) {
	if err := checkShape(len(data), shape); err != nil {
		return nil, err
	}
	return &HostValue{elem: Int64, shape: append([]int64(nil), shape...), i64: append([]int64(nil), data...)}, nil
}

// BoolValue creates a bool HostValue from flat row-major data.
func BoolValue(data []bool, shape []int64) (*HostValue, error) {
	if err := checkShape(len(data), shape); err != nil {
		return nil, err
	}
	return &HostValue{elem: Bool, shape: append([]int64(nil), shape...), bools: append([]bool(nil), data...)}, nil
}

// TextValue creates a text HostValue from flat row-major data.
func TextValue(data []string, shape []int64) (*HostValue, error) {
	if err := checkShape(len(data), shape); err != nil {
		return nil, err
	}
	return &HostValue{elem: Text, shape: append([]int64(nil), shape...), text: append([]string(nil), data...)}, nil
}

// Float32Matrix creates a 2-D float32 HostValue from rows, flattening them in
// row-major order. All rows must have the same length.
func Float32Matrix(rows [][]float32) (*HostValue, error) {
	flat, shape, err := flattenRows(rows)
	if err != nil {
		return nil, err
	}
	return Float32Value(flat, shape)
}

// Float64Matrix creates a 2-D float64 HostValue from rows, flattening them in
// row-major order. All rows must have the same length.
func Float64Matrix(rows [][]float64) (*HostValue, error) {
	flat, shape, err := flattenRows(rows)
	if err != nil {
		return nil, err
	}
	return Float64Value(flat, shape)
}

// Int64Matrix creates a 2-D int64 HostValue from rows, flattening them in
// row-major order. All rows must have the same length.
func Int64Matrix(rows [][]int64) (*HostValue, error) {
	flat, shape, err := flattenRows(rows)
	if err != nil {
		return nil, err
	}
	return Int64Value(flat, shape)
}

func flattenRows[T any](rows [][]T) ([]T, []int64, error) {
	if len(rows) == 0 {
		return nil, []int64{0, 0}, nil
	}
	width := len(rows[0])
	flat := make([]T, 0, len(rows)*width)
	for i, row := range rows {
		if len(row) != width {
			return nil, nil, &Error{
				Kind: KindShapeMismatch,
				Msg:  fmt.Sprintf("ragged rows: row 0 has %d elements, row %d has %d", width, i, len(row)),
			}
		}
		flat = append(flat, row...)
	}
	return flat, []int64{int64(len(rows)), int64(width)}, nil
}

// ValueFromAny converts a dynamically-typed Go value into a HostValue.
// This is the partial host-to-engine half of the type mapping: only flat
// numeric/text/bool slices and 2-D numeric slices-of-slices are accepted;
// anything else is rejected with TypeMismatch before any engine call.
func ValueFromAny(v any) (*HostValue, error) {
	switch x := v.(type) {
	case *HostValue:
		return x, nil
	case []float32:
		return Float32Value(x, []int64{int64(len(x))})
	case []float64:
		return Float64Value(x, []int64{int64(len(x))})
	case []int32:
		return Int32Value(x, []int64{int64(len(x))})
	case []int64:
		return Int64Value(x, []int64{int64(len(x))})
	case []bool:
		return BoolValue(x, []int64{int64(len(x))})
	case []string:
		return TextValue(x, []int64{int64(len(x))})
	case [][]float32:
		return Float32Matrix(x)
	case [][]float64:
		return Float64Matrix(x)
	case [][]int64:
		return Int64Matrix(x)
	default:
		return nil, &Error{
			Kind: KindTypeMismatch,
			Msg:  fmt.Sprintf("no engine mapping for host type %T", v),
		}
	}
}

// ElementType returns the element type tag.
func (v *HostValue) ElementType() ElementType { return v.elem }

// Shape returns a copy of the row-major shape.
func (v *HostValue) Shape() []int64 { return append([]int64(nil), v.shape...) }

// Len returns the number of elements.
func (v *HostValue) Len() int {
	switch v.elem {
	case Float32:
		return len(v.f32)
	case Float64:
		return len(v.f64)
	case Int32:
		return len(v.i32)
	case Int64:
		return len(v.i64)
	case Bool:
		return len(v.bools)
	case Text:
		return len(v.text)
	default:
		return 0
	}
}

// Float32s returns the flat data when the element type is Float32.
func (v *HostValue) Float32s() ([]float32, bool) { return v.f32, v.elem == Float32 }

// Float64s returns the flat data when the element type is Float64.
func (v *HostValue) Float64s() ([]float64, bool) { return v.f64, v.elem == Float64 }

// Int32s returns the flat data when the element type is Int32.
func (v *HostValue) Int32s() ([]int32, bool) { return v.i32, v.elem == Int32 }

// Int64s returns the flat data when the element type is Int64.
func (v *HostValue) Int64s() ([]int64, bool) { return v.i64, v.elem == Int64 }

// Bools returns the flat data when the element type is Bool.
func (v *HostValue) Bools() ([]bool, bool) { return v.bools, v.elem == Bool }

// Texts returns the flat data when the element type is Text.
func (v *HostValue) Texts() ([]string, bool) { return v.text, v.elem == Text }

// tensor builds the engine representation of the value under the given name.
// The backing slices are shared, not copied: the engine boundary must not
// retain them past the call.
func (v *HostValue) tensor(name string) engine.Tensor {
	t := engine.Tensor{
		Name:     name,
		DataType: v.elem.dataType(),
		Shape:    append([]int64(nil), v.shape...),
	}
	switch v.elem {
	case Float32:
		t.Data = v.f32
	case Float64:
		t.Data = v.f64
	case Int32:
		t.Data = v.i32
	case Int64:
		t.Data = v.i64
	case Bool:
		t.Data = v.bools
	case Text:
		t.Strings = v.text
	}
	return t
}
