package ort

import (
	"fmt"
	"unsafe"

	"github.com/mrchypark/churon/engine"
	"github.com/mrchypark/churon/ort/internal/api"
)

// createValue builds an OrtValue from a tensor. Numeric tensors wrap the Go
// slice's backing array without copying, so the tensor must be kept alive
// until the value is released. String tensors are allocated and filled by the
// runtime.
func (rt *ortRuntime) createValue(t engine.Tensor) (api.OrtValue, error) {
	if t.DataType == engine.TypeString {
		return rt.createStringValue(t)
	}

	data, size, err := tensorBuffer(t)
	if err != nil {
		return 0, err
	}

	shape, shapeLen := shapeArgs(t.Shape)
	var value api.OrtValue
	err = rt.statusError(rt.funcs.CreateTensorWithDataAsOrtValue(
		rt.memInfo, data, size, shape, shapeLen,
		api.ONNXTensorElementDataType(t.DataType), &value,
	))
	if err != nil {
		return 0, err
	}
	return value, nil
}

func (rt *ortRuntime) createStringValue(t engine.Tensor) (api.OrtValue, error) {
	shape, shapeLen := shapeArgs(t.Shape)
	var value api.OrtValue
	err := rt.statusError(rt.funcs.CreateTensorAsOrtValue(
		rt.alloc, shape, shapeLen,
		api.ONNXTensorElementDataType(engine.TypeString), &value,
	))
	if err != nil {
		return 0, err
	}

	// FillStringTensor takes an array of NUL-terminated C strings.
	buffers := make([][]byte, len(t.Strings))
	pointers := make([]*byte, len(t.Strings))
	for i, s := range t.Strings {
		buffers[i] = cString(s)
		pointers[i] = &buffers[i][0]
	}
	var p **byte
	if len(pointers) > 0 {
		p = &pointers[0]
	}
	if err := rt.statusError(rt.funcs.FillStringTensor(value, p, uintptr(len(pointers)))); err != nil {
		rt.funcs.ReleaseValue(value)
		return 0, err
	}
	return value, nil
}

// readValue copies an OrtValue's contents into a tensor owned by Go.
func (rt *ortRuntime) readValue(name string, value api.OrtValue) (engine.Tensor, error) {
	var info api.OrtTensorTypeAndShapeInfo
	if err := rt.statusError(rt.funcs.GetTensorTypeAndShape(value, &info)); err != nil {
		return engine.Tensor{}, err
	}
	defer rt.funcs.ReleaseTensorTypeAndShapeInfo(info)

	var elemType api.ONNXTensorElementDataType
	if err := rt.statusError(rt.funcs.GetTensorElementType(info, &elemType)); err != nil {
		return engine.Tensor{}, err
	}

	var dimCount uintptr
	if err := rt.statusError(rt.funcs.GetDimensionsCount(info, &dimCount)); err != nil {
		return engine.Tensor{}, err
	}
	shape := make([]int64, dimCount)
	if dimCount > 0 {
		if err := rt.statusError(rt.funcs.GetDimensions(info, &shape[0], dimCount)); err != nil {
			return engine.Tensor{}, err
		}
	}

	var count uintptr
	if err := rt.statusError(rt.funcs.GetTensorShapeElementCount(info, &count)); err != nil {
		return engine.Tensor{}, err
	}

	t := engine.Tensor{
		Name:     name,
		DataType: engine.DataType(elemType),
		Shape:    shape,
	}

	if t.DataType == engine.TypeString {
		strings, err := rt.readStringData(value, int(count))
		if err != nil {
			return engine.Tensor{}, err
		}
		t.Strings = strings
		return t, nil
	}

	data, err := rt.readNumericData(value, t.DataType, int(count))
	if err != nil {
		return engine.Tensor{}, err
	}
	t.Data = data
	return t, nil
}

func (rt *ortRuntime) readNumericData(value api.OrtValue, dt engine.DataType, count int) (any, error) {
	var raw unsafe.Pointer
	if err := rt.statusError(rt.funcs.GetTensorMutableData(value, &raw)); err != nil {
		return nil, err
	}

	switch dt {
	case engine.TypeFloat32:
		return copySlice[float32](raw, count), nil
	case engine.TypeFloat64:
		return copySlice[float64](raw, count), nil
	case engine.TypeInt8:
		return copySlice[int8](raw, count), nil
	case engine.TypeInt16:
		return copySlice[int16](raw, count), nil
	case engine.TypeInt32:
		return copySlice[int32](raw, count), nil
	case engine.TypeInt64:
		return copySlice[int64](raw, count), nil
	case engine.TypeUint8:
		return copySlice[uint8](raw, count), nil
	case engine.TypeUint16:
		return copySlice[uint16](raw, count), nil
	case engine.TypeUint32:
		return copySlice[uint32](raw, count), nil
	case engine.TypeUint64:
		return copySlice[uint64](raw, count), nil
	case engine.TypeBool:
		return copySlice[bool](raw, count), nil
	case engine.TypeFloat16:
		return copySlice[engine.Float16](raw, count), nil
	case engine.TypeBFloat16:
		return copySlice[engine.BFloat16](raw, count), nil
	default:
		return nil, fmt.Errorf("unsupported output element type %s", dt)
	}
}

func (rt *ortRuntime) readStringData(value api.OrtValue, count int) ([]string, error) {
	var dataLen uintptr
	if err := rt.statusError(rt.funcs.GetStringTensorDataLength(value, &dataLen)); err != nil {
		return nil, err
	}

	data := make([]byte, dataLen)
	offsets := make([]uintptr, count)
	var dataPtr unsafe.Pointer
	if dataLen > 0 {
		dataPtr = unsafe.Pointer(&data[0])
	}
	var offsetsPtr *uintptr
	if count > 0 {
		offsetsPtr = &offsets[0]
	}
	err := rt.statusError(rt.funcs.GetStringTensorContent(
		value, dataPtr, dataLen, offsetsPtr, uintptr(count),
	))
	if err != nil {
		return nil, err
	}

	out := make([]string, count)
	for i := range offsets {
		end := dataLen
		if i+1 < count {
			end = offsets[i+1]
		}
		out[i] = string(data[offsets[i]:end])
	}
	return out, nil
}

func copySlice[T any](raw unsafe.Pointer, count int) []T {
	out := make([]T, count)
	if count > 0 && raw != nil {
		copy(out, unsafe.Slice((*T)(raw), count))
	}
	return out
}

// tensorBuffer returns the pointer and byte size of a numeric tensor's data.
func tensorBuffer(t engine.Tensor) (unsafe.Pointer, uintptr, error) {
	switch d := t.Data.(type) {
	case []float32:
		return slicePointer(d), uintptr(len(d)) * 4, nil
	case []float64:
		return slicePointer(d), uintptr(len(d)) * 8, nil
	case []int8:
		return slicePointer(d), uintptr(len(d)), nil
	case []int16:
		return slicePointer(d), uintptr(len(d)) * 2, nil
	case []int32:
		return slicePointer(d), uintptr(len(d)) * 4, nil
	case []int64:
		return slicePointer(d), uintptr(len(d)) * 8, nil
	case []uint8:
		return slicePointer(d), uintptr(len(d)), nil
	case []uint16:
		return slicePointer(d), uintptr(len(d)) * 2, nil
	case []uint32:
		return slicePointer(d), uintptr(len(d)) * 4, nil
	case []uint64:
		return slicePointer(d), uintptr(len(d)) * 8, nil
	case []bool:
		return slicePointer(d), uintptr(len(d)), nil
	case []engine.Float16:
		return slicePointer(d), uintptr(len(d)) * 2, nil
	case []engine.BFloat16:
		return slicePointer(d), uintptr(len(d)) * 2, nil
	case nil:
		return nil, 0, fmt.Errorf("tensor %q has no data", t.Name)
	default:
		return nil, 0, fmt.Errorf("unsupported tensor data type %T", t.Data)
	}
}

func slicePointer[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Pointer(&s[0])
}

func shapeArgs(shape []int64) (*int64, uintptr) {
	if len(shape) == 0 {
		return nil, 0
	}
	return &shape[0], uintptr(len(shape))
}
