// Package churon exposes ONNX Runtime inference to Go with ergonomic
// validation, marshalling, and error reporting.
//
// The package converts named host arrays into the engine's native tensors,
// invokes inference, and converts the results back. Inputs are validated in
// two phases before the engine is ever called: a structural phase (names
// present and unique, values non-nil and convertible) and a semantic phase
// (supplied names against the model's declared input set). Failures at
// either phase are reported from churon's closed error taxonomy with the
// offending input names attached, instead of the engine's opaque diagnostic
// strings.
//
// The inference engine itself is an external collaborator reached through
// the engine.Engine contract; the production implementation in the ort
// package bridges to the ONNX Runtime shared library via purego.
package churon
