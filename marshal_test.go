package churon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrchypark/churon/engine"
)

func TestToNativeDescriptorOrder(t *testing.T) {
	a := mustValue(t, []float32{1}, []int64{1})
	b := mustValue(t, []float32{2}, []int64{1})

	batch, err := toNative(
		map[string]*HostValue{"b": b, "a": a},
		descriptors("a", "b"),
	)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, "a", batch[0].Name, "batch must follow descriptor order, not map order")
	assert.Equal(t, "b", batch[1].Name)
	assert.Equal(t, []float32{1}, batch[0].Data)
}

func TestToNativeRankMismatch(t *testing.T) {
	v := mustValue(t, []float32{1, 2}, []int64{2})
	ds := []engine.Descriptor{{Name: "x", Shape: []int64{1, 2}, DataType: engine.TypeFloat32}}

	_, err := toNative(map[string]*HostValue{"x": v}, ds)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindShapeMismatch))
	assert.Contains(t, err.Error(), "rank")
}

func TestToNativeDynamicDim(t *testing.T) {
	v := mustValue(t, []float32{1, 2, 3, 4}, []int64{4, 1})
	ds := []engine.Descriptor{{Name: "x", Shape: []int64{engine.DynamicDim, 1}, DataType: engine.TypeFloat32}}

	batch, err := toNative(map[string]*HostValue{"x": v}, ds)
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 1}, batch[0].Shape)
}

func TestFromNativeWidening(t *testing.T) {
	tests := []struct {
		name   string
		tensor engine.Tensor
		elem   ElementType
		check  func(t *testing.T, v *HostValue)
	}{
		{
			name:   "int8 widens to int32",
			tensor: engine.Tensor{Name: "o", DataType: engine.TypeInt8, Shape: []int64{2}, Data: []int8{-1, 127}},
			elem:   Int32,
			check: func(t *testing.T, v *HostValue) {
				data, _ := v.Int32s()
				assert.Equal(t, []int32{-1, 127}, data)
			},
		},
		{
			name:   "uint16 widens to int32",
			tensor: engine.Tensor{Name: "o", DataType: engine.TypeUint16, Shape: []int64{1}, Data: []uint16{65535}},
			elem:   Int32,
			check: func(t *testing.T, v *HostValue) {
				data, _ := v.Int32s()
				assert.Equal(t, []int32{65535}, data)
			},
		},
		{
			name:   "uint32 widens to int64",
			tensor: engine.Tensor{Name: "o", DataType: engine.TypeUint32, Shape: []int64{1}, Data: []uint32{4294967295}},
			elem:   Int64,
			check: func(t *testing.T, v *HostValue) {
				data, _ := v.Int64s()
				assert.Equal(t, []int64{4294967295}, data)
			},
		},
		{
			name:   "bool passes through",
			tensor: engine.Tensor{Name: "o", DataType: engine.TypeBool, Shape: []int64{2}, Data: []bool{true, false}},
			elem:   Bool,
			check: func(t *testing.T, v *HostValue) {
				data, _ := v.Bools()
				assert.Equal(t, []bool{true, false}, data)
			},
		},
		{
			name:   "string passes through",
			tensor: engine.Tensor{Name: "o", DataType: engine.TypeString, Shape: []int64{1}, Strings: []string{"hi"}},
			elem:   Text,
			check: func(t *testing.T, v *HostValue) {
				data, _ := v.Texts()
				assert.Equal(t, []string{"hi"}, data)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputs, err := fromNative([]engine.Tensor{tt.tensor})
			require.NoError(t, err)
			v := outputs["o"]
			require.NotNil(t, v)
			assert.Equal(t, tt.elem, v.ElementType())
			tt.check(t, v)
		})
	}
}

func TestFromNativeFloat16(t *testing.T) {
	outputs, err := fromNative([]engine.Tensor{{
		Name:     "o",
		DataType: engine.TypeFloat16,
		Shape:    []int64{3},
		Data:     []engine.Float16{engine.NewFloat16(1.5), engine.NewFloat16(-2), engine.NewFloat16(0)},
	}})
	require.NoError(t, err)
	data, ok := outputs["o"].Float32s()
	require.True(t, ok)
	assert.Equal(t, []float32{1.5, -2, 0}, data)
}

func TestFromNativeBFloat16(t *testing.T) {
	outputs, err := fromNative([]engine.Tensor{{
		Name:     "o",
		DataType: engine.TypeBFloat16,
		Shape:    []int64{2},
		Data:     []engine.BFloat16{engine.NewBFloat16(1), engine.NewBFloat16(-0.5)},
	}})
	require.NoError(t, err)
	data, ok := outputs["o"].Float32s()
	require.True(t, ok)
	assert.Equal(t, []float32{1, -0.5}, data)
}

func TestFromNativeComplexRejected(t *testing.T) {
	_, err := fromNative([]engine.Tensor{{
		Name:     "o",
		DataType: engine.TypeComplex64,
		Shape:    []int64{1},
	}})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTypeMismatch))
	assert.Equal(t, []string{"o"}, ImplicatedNames(err))
}

func TestRoundTripThroughTensor(t *testing.T) {
	v := mustValue(t, []float32{1, 2, 3, 4}, []int64{2, 2})
	tensor := v.tensor("x")
	assert.Equal(t, engine.TypeFloat32, tensor.DataType)
	assert.Equal(t, int64(4), tensor.ElementCount())

	outputs, err := fromNative([]engine.Tensor{tensor})
	require.NoError(t, err)
	back := outputs["x"]
	assert.Equal(t, v.Shape(), back.Shape())
	got, _ := back.Float32s()
	want, _ := v.Float32s()
	assert.Equal(t, want, got)
}

func TestHostTypeMapping(t *testing.T) {
	tests := []struct {
		dt   engine.DataType
		elem ElementType
		ok   bool
	}{
		{engine.TypeFloat32, Float32, true},
		{engine.TypeFloat16, Float32, true},
		{engine.TypeBFloat16, Float32, true},
		{engine.TypeFloat64, Float64, true},
		{engine.TypeInt8, Int32, true},
		{engine.TypeUint8, Int32, true},
		{engine.TypeInt16, Int32, true},
		{engine.TypeUint16, Int32, true},
		{engine.TypeInt32, Int32, true},
		{engine.TypeUint32, Int64, true},
		{engine.TypeInt64, Int64, true},
		{engine.TypeUint64, Int64, true},
		{engine.TypeBool, Bool, true},
		{engine.TypeString, Text, true},
		{engine.TypeComplex64, 0, false},
		{engine.TypeComplex128, 0, false},
		{engine.TypeUndefined, 0, false},
	}
	for _, tt := range tests {
		elem, ok := hostType(tt.dt)
		assert.Equal(t, tt.ok, ok, "mapping presence for %s", tt.dt)
		if tt.ok {
			assert.Equal(t, tt.elem, elem, "mapping target for %s", tt.dt)
		}
	}
}
