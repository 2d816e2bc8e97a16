package ort

import (
	"fmt"

	"github.com/mrchypark/churon/ort/internal/api"
)

// RuntimeError is an error returned by the ONNX Runtime C API, carrying the
// runtime's error code and diagnostic message.
type RuntimeError struct {
	Code    int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("onnxruntime: %s (%s)", e.Message, errorCodeName(e.Code))
}

func errorCodeName(code int) string {
	switch api.OrtErrorCode(code) {
	case 0:
		return "OK"
	case 1:
		return "FAIL"
	case 2:
		return "INVALID_ARGUMENT"
	case 3:
		return "NO_SUCHFILE"
	case 4:
		return "NO_MODEL"
	case 5:
		return "ENGINE_ERROR"
	case 6:
		return "RUNTIME_EXCEPTION"
	case 7:
		return "INVALID_PROTOBUF"
	case 8:
		return "MODEL_LOADED"
	case 9:
		return "NOT_IMPLEMENTED"
	case 10:
		return "INVALID_GRAPH"
	case 11:
		return "EP_FAIL"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", code)
	}
}
