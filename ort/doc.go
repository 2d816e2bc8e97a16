// Package ort implements the engine contract on top of the ONNX Runtime
// shared library, loaded at run time via purego. No cgo is involved: the
// OrtApi function-pointer table is resolved from OrtGetApiBase and each entry
// is registered as a Go function.
//
// The library, environment, and default allocator are process-global and
// cached per library path; sessions are created and released individually.
package ort
