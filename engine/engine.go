// Package engine defines the contract between churon's marshalling core and
// the inference engine that actually loads and executes model graphs.
//
// The core never depends on how an engine is implemented; it only consumes
// this interface. The production implementation lives in the ort package and
// bridges to the ONNX Runtime shared library. Tests substitute in-process
// fakes.
package engine

import "context"

// DataType enumerates tensor element types using the ONNX Runtime encoding.
type DataType int32

// Tensor element data types.
const (
	TypeUndefined  DataType = 0
	TypeFloat32    DataType = 1
	TypeUint8      DataType = 2
	TypeInt8       DataType = 3
	TypeUint16     DataType = 4
	TypeInt16      DataType = 5
	TypeInt32      DataType = 6
	TypeInt64      DataType = 7
	TypeString     DataType = 8
	TypeBool       DataType = 9
	TypeFloat16    DataType = 10
	TypeFloat64    DataType = 11
	TypeUint32     DataType = 12
	TypeUint64     DataType = 13
	TypeComplex64  DataType = 14
	TypeComplex128 DataType = 15
	TypeBFloat16   DataType = 16
)

// String returns the canonical lowercase name of the data type.
func (t DataType) String() string {
	switch t {
	case TypeFloat32:
		return "float32"
	case TypeUint8:
		return "uint8"
	case TypeInt8:
		return "int8"
	case TypeUint16:
		return "uint16"
	case TypeInt16:
		return "int16"
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeFloat16:
		return "float16"
	case TypeFloat64:
		return "float64"
	case TypeUint32:
		return "uint32"
	case TypeUint64:
		return "uint64"
	case TypeComplex64:
		return "complex64"
	case TypeComplex128:
		return "complex128"
	case TypeBFloat16:
		return "bfloat16"
	default:
		return "undefined"
	}
}

// DynamicDim is the sentinel for a dimension whose size is not fixed by the
// model graph. Engines report it in descriptor shapes; concrete tensors never
// contain it.
const DynamicDim int64 = -1

// Descriptor describes one input or output slot of a loaded graph.
// It is a plain immutable record and holds no engine resources.
type Descriptor struct {
	Name     string
	Shape    []int64 // may contain DynamicDim entries
	DataType DataType
}

// Clone returns a deep copy so callers can hand descriptors out without
// aliasing the session's cached metadata.
func (d Descriptor) Clone() Descriptor {
	c := d
	c.Shape = append([]int64(nil), d.Shape...)
	return c
}

// Tensor is the flattened, row-major representation handed across the engine
// boundary. For numeric and bool element types Data holds the matching flat
// Go slice ([]float32, []float64, []int8, []int16, []int32, []int64, []uint8,
// []uint16, []uint32, []uint64, []bool, []Float16, []BFloat16). For
// TypeString the elements are in Strings and Data is nil.
type Tensor struct {
	Name     string
	DataType DataType
	Shape    []int64
	Data     any
	Strings  []string
}

// ElementCount returns the number of elements implied by the shape.
// A zero-length shape describes a scalar (one element).
func (t Tensor) ElementCount() int64 {
	n := int64(1)
	for _, d := range t.Shape {
		n *= d
	}
	return n
}

// Engine opens model graphs. Implementations must not mutate the model file.
type Engine interface {
	// Open loads the graph at path and prepares it for execution. The
	// providers are engine-level provider names in fallback-priority order;
	// the engine may select a strict subset of them.
	Open(path string, providers []string) (Session, error)
}

// Session is a loaded, ready-to-execute model graph.
//
// A Session is not required to be safe for concurrent Run calls; callers
// must serialize access (the churon core does this with a handle-level lock).
type Session interface {
	// InputDescriptors returns metadata for every declared input.
	// It never fails for an open session.
	InputDescriptors() []Descriptor

	// OutputDescriptors returns metadata for every declared output.
	OutputDescriptors() []Descriptor

	// Run executes the graph. Inputs must be supplied in the order of
	// InputDescriptors; outputs come back in the order of OutputDescriptors
	// with type and shape reflecting the actual result tensors.
	// Cancelling ctx requests cooperative termination of an in-flight run.
	Run(ctx context.Context, inputs []Tensor) ([]Tensor, error)

	// ActiveProviders reports the providers the engine actually selected,
	// which may be a strict subset of those requested at Open.
	ActiveProviders() []string

	// Close releases the native resources owned by the session.
	// It is safe to call multiple times.
	Close() error
}

// Metadata describes a loaded model. All fields are optional in the ONNX
// format and may be empty.
type Metadata struct {
	ProducerName string
	GraphName    string
	Domain       string
	Description  string
	Version      int64
	Custom       map[string]string
}

// MetadataProvider is an optional capability of a Session.
type MetadataProvider interface {
	Metadata() (*Metadata, error)
}
