package churon

import (
	"fmt"

	"github.com/mrchypark/churon/engine"
)

// toNative converts validated inputs into the engine's tensor batch, ordered
// by the model's input descriptors. The batch construction is atomic: if any
// entry fails, no partial batch is returned.
//
// Element type and shape come from the HostValue itself, never from the
// descriptor, whose shape may contain dynamic dimensions. The flat backing
// data is already row-major, so ordering is preserved by construction.
func toNative(inputs map[string]*HostValue, descriptors []engine.Descriptor) ([]engine.Tensor, error) {
	batch := make([]engine.Tensor, 0, len(inputs))
	for _, d := range descriptors {
		v, ok := inputs[d.Name]
		if !ok {
			// Semantic validation runs first; an absent name here means it
			// was skipped, which is a caller error.
			return nil, &Error{
				Kind:  KindMissingRequiredInput,
				Names: []string{d.Name},
				Msg:   "required model input not supplied",
			}
		}
		if err := checkShapeAgainstDescriptor(d, v); err != nil {
			return nil, err
		}
		batch = append(batch, v.tensor(d.Name))
	}
	return batch, nil
}

// checkShapeAgainstDescriptor verifies rank compatibility: same number of
// dimensions, with every statically-declared dimension matching exactly and
// dynamic dimensions accepting any size.
func checkShapeAgainstDescriptor(d engine.Descriptor, v *HostValue) error {
	shape := v.shape
	if len(shape) != len(d.Shape) {
		return &Error{
			Kind:     KindShapeMismatch,
			Names:    []string{d.Name},
			Expected: append([]int64(nil), d.Shape...),
			Actual:   append([]int64(nil), shape...),
			Msg:      fmt.Sprintf("rank %d does not match declared rank %d", len(shape), len(d.Shape)),
		}
	}
	for i, declared := range d.Shape {
		if declared == engine.DynamicDim {
			continue
		}
		if shape[i] != declared {
			return &Error{
				Kind:     KindShapeMismatch,
				Names:    []string{d.Name},
				Expected: append([]int64(nil), d.Shape...),
				Actual:   append([]int64(nil), shape...),
				Msg:      fmt.Sprintf("dimension %d is %d, declared %d", i, shape[i], declared),
			}
		}
	}
	return nil
}

// fromNative converts the engine's output batch back into host values, taking
// shape and element type from the actual tensors. This is the total
// engine-to-host half of the type mapping: narrow integers widen to Int32,
// unsigned 32/64-bit widen to Int64, and 16-bit floats convert to Float32.
// Complex element types are the one exception with no host representation.
func fromNative(outputs []engine.Tensor) (map[string]*HostValue, error) {
	result := make(map[string]*HostValue, len(outputs))
	for _, t := range outputs {
		v, err := hostValueFromTensor(t)
		if err != nil {
			return nil, err
		}
		result[t.Name] = v
	}
	return result, nil
}

func hostValueFromTensor(t engine.Tensor) (*HostValue, error) {
	shape := append([]int64(nil), t.Shape...)

	switch t.DataType {
	case engine.TypeFloat32:
		return Float32Value(tensorData[float32](t), shape)
	case engine.TypeFloat64:
		return Float64Value(tensorData[float64](t), shape)
	case engine.TypeFloat16:
		src := tensorData[engine.Float16](t)
		data := make([]float32, len(src))
		for i, h := range src {
			data[i] = h.Float32()
		}
		return Float32Value(data, shape)
	case engine.TypeBFloat16:
		src := tensorData[engine.BFloat16](t)
		data := make([]float32, len(src))
		for i, h := range src {
			data[i] = h.Float32()
		}
		return Float32Value(data, shape)
	case engine.TypeInt32:
		return Int32Value(tensorData[int32](t), shape)
	case engine.TypeInt8:
		return Int32Value(widen[int8, int32](t), shape)
	case engine.TypeInt16:
		return Int32Value(widen[int16, int32](t), shape)
	case engine.TypeUint8:
		return Int32Value(widen[uint8, int32](t), shape)
	case engine.TypeUint16:
		return Int32Value(widen[uint16, int32](t), shape)
	case engine.TypeInt64:
		return Int64Value(tensorData[int64](t), shape)
	case engine.TypeUint32:
		return Int64Value(widen[uint32, int64](t), shape)
	case engine.TypeUint64:
		return Int64Value(widen[uint64, int64](t), shape)
	case engine.TypeBool:
		return BoolValue(tensorData[bool](t), shape)
	case engine.TypeString:
		return TextValue(t.Strings, shape)
	default:
		return nil, &Error{
			Kind:  KindTypeMismatch,
			Names: []string{t.Name},
			Msg:   fmt.Sprintf("engine type %s has no host representation", t.DataType),
		}
	}
}

func tensorData[T any](t engine.Tensor) []T {
	data, _ := t.Data.([]T)
	return data
}

type integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

func widen[S integer, D integer](t engine.Tensor) []D {
	src := tensorData[S](t)
	dst := make([]D, len(src))
	for i, x := range src {
		dst[i] = D(x)
	}
	return dst
}
