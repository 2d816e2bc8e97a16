package churon

import "github.com/mrchypark/churon/engine"

// The type mapping table between host element types and the engine's element
// type enumeration.
//
// Host-to-engine is a direct injection: every host kind has exactly one
// engine target. Engine-to-host is total over the types the engine can emit
// through tensors (complex excepted, see fromNative): narrow integer widths
// widen to Int32, the unsigned 32/64-bit widths widen to Int64, and the
// 16-bit float formats convert exactly to Float32. Widening keeps integer
// round-trips exact for every magnitude representable in the source width.

// dataType returns the engine element type a host value of this type is
// marshalled as.
func (t ElementType) dataType() engine.DataType {
	switch t {
	case Float32:
		return engine.TypeFloat32
	case Float64:
		return engine.TypeFloat64
	case Int32:
		return engine.TypeInt32
	case Int64:
		return engine.TypeInt64
	case Bool:
		return engine.TypeBool
	case Text:
		return engine.TypeString
	default:
		return engine.TypeUndefined
	}
}

// hostType returns the host element type an engine tensor of the given type
// is unmarshalled into, and whether a mapping exists.
func hostType(dt engine.DataType) (ElementType, bool) {
	switch dt {
	case engine.TypeFloat32, engine.TypeFloat16, engine.TypeBFloat16:
		return Float32, true
	case engine.TypeFloat64:
		return Float64, true
	case engine.TypeInt8, engine.TypeInt16, engine.TypeInt32,
		engine.TypeUint8, engine.TypeUint16:
		return Int32, true
	case engine.TypeInt64, engine.TypeUint32, engine.TypeUint64:
		return Int64, true
	case engine.TypeBool:
		return Bool, true
	case engine.TypeString:
		return Text, true
	default:
		return 0, false
	}
}

// isIntegral reports whether the engine type holds integer elements, which is
// what decides the NaN/Infinity validation warning.
func isIntegral(dt engine.DataType) bool {
	switch dt {
	case engine.TypeInt8, engine.TypeInt16, engine.TypeInt32, engine.TypeInt64,
		engine.TypeUint8, engine.TypeUint16, engine.TypeUint32, engine.TypeUint64:
		return true
	default:
		return false
	}
}
