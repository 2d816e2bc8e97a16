package churon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat32Value(t *testing.T) {
	v, err := Float32Value([]float32{1, 2, 3, 4, 5, 6}, []int64{2, 3})
	require.NoError(t, err)
	assert.Equal(t, Float32, v.ElementType())
	assert.Equal(t, []int64{2, 3}, v.Shape())
	assert.Equal(t, 6, v.Len())

	data, ok := v.Float32s()
	assert.True(t, ok)
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, data)

	_, ok = v.Int64s()
	assert.False(t, ok)
}

func TestValueShapeMismatch(t *testing.T) {
	_, err := Float32Value([]float32{1, 2, 3}, []int64{2, 2})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindShapeMismatch))

	_, err = Int64Value([]int64{1}, []int64{-1})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindShapeMismatch), "negative dimension must be rejected")
}

func TestValueShapeOverflow(t *testing.T) {
	// 2^32 * 2^32 wraps to 0 in int64; without an overflow check the empty
	// data slice would satisfy the wrapped element count.
	_, err := Float32Value(nil, []int64{1 << 32, 1 << 32})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindShapeMismatch))
	assert.Contains(t, err.Error(), "overflows")
}

func TestScalarValue(t *testing.T) {
	v, err := Float64Value([]float64{3.14}, nil)
	require.NoError(t, err)
	assert.Empty(t, v.Shape())
	assert.Equal(t, 1, v.Len())
}

func TestValueCopiesData(t *testing.T) {
	data := []float32{1, 2, 3}
	v, err := Float32Value(data, []int64{3})
	require.NoError(t, err)

	data[0] = 99
	got, _ := v.Float32s()
	assert.Equal(t, float32(1), got[0])
}

func TestFloat32MatrixRowMajor(t *testing.T) {
	v, err := Float32Matrix([][]float32{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, v.Shape())

	data, _ := v.Float32s()
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, data, "rows must flatten outermost-first")
}

func TestMatrixRaggedRows(t *testing.T) {
	_, err := Float64Matrix([][]float64{{1, 2}, {3}})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindShapeMismatch))
	assert.Contains(t, err.Error(), "ragged")
}

func TestMatrixEmpty(t *testing.T) {
	v, err := Int64Matrix(nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 0}, v.Shape())
	assert.Equal(t, 0, v.Len())
}

func TestTextValue(t *testing.T) {
	v, err := TextValue([]string{"a", "b"}, []int64{2})
	require.NoError(t, err)
	assert.Equal(t, Text, v.ElementType())
	texts, ok := v.Texts()
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, texts)
}

func TestValueFromAny(t *testing.T) {
	tests := []struct {
		name  string
		input any
		elem  ElementType
		shape []int64
	}{
		{"float32 slice", []float32{1, 2}, Float32, []int64{2}},
		{"float64 slice", []float64{1, 2, 3}, Float64, []int64{3}},
		{"int32 slice", []int32{1}, Int32, []int64{1}},
		{"int64 slice", []int64{1, 2}, Int64, []int64{2}},
		{"bool slice", []bool{true}, Bool, []int64{1}},
		{"string slice", []string{"a"}, Text, []int64{1}},
		{"float32 matrix", [][]float32{{1, 2}, {3, 4}}, Float32, []int64{2, 2}},
		{"float64 matrix", [][]float64{{1}, {2}}, Float64, []int64{2, 1}},
		{"int64 matrix", [][]int64{{1, 2, 3}}, Int64, []int64{1, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ValueFromAny(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.elem, v.ElementType())
			assert.Equal(t, tt.shape, v.Shape())
		})
	}
}

func TestValueFromAnyPassthrough(t *testing.T) {
	orig, err := Float32Value([]float32{1}, []int64{1})
	require.NoError(t, err)
	v, err := ValueFromAny(orig)
	require.NoError(t, err)
	assert.Same(t, orig, v)
}

func TestValueFromAnyRejected(t *testing.T) {
	for _, input := range []any{42, "text", []complex64{1}, map[string]int{}, struct{}{}, [][]string{{"a"}}} {
		_, err := ValueFromAny(input)
		require.Error(t, err, "input %T must be rejected", input)
		assert.True(t, IsKind(err, KindTypeMismatch), "input %T must fail with a type error", input)
	}
}
