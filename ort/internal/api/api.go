// Package api registers the subset of the ONNX Runtime C API that the ort
// package calls. Function pointers are resolved once from the OrtApi vtable
// returned by OrtGetApiBase and cached for the life of the process.
package api

import "unsafe"

// OrtStatus is an opaque pointer to an ONNX Runtime status object.
type OrtStatus uintptr

// OrtEnv is an opaque pointer to an ONNX Runtime environment.
type OrtEnv uintptr

// OrtSession is an opaque pointer to an ONNX Runtime inference session.
type OrtSession uintptr

// OrtSessionOptions is an opaque pointer to ONNX Runtime session options.
type OrtSessionOptions uintptr

// OrtValue is an opaque pointer to an ONNX Runtime value (typically a tensor).
type OrtValue uintptr

// OrtAllocator is an opaque pointer to an ONNX Runtime memory allocator.
type OrtAllocator uintptr

// OrtMemoryInfo is an opaque pointer to ONNX Runtime memory information.
type OrtMemoryInfo uintptr

// OrtTensorTypeAndShapeInfo is an opaque pointer to tensor type and shape information.
type OrtTensorTypeAndShapeInfo uintptr

// OrtRunOptions is an opaque pointer to ONNX Runtime run options.
type OrtRunOptions uintptr

// OrtModelMetadata is an opaque pointer to ONNX Runtime model metadata.
type OrtModelMetadata uintptr

// OrtTypeInfo is an opaque pointer to ONNX Runtime type information.
type OrtTypeInfo uintptr

// OrtErrorCode represents error codes returned by the ONNX Runtime C API.
type OrtErrorCode int32

// OrtLoggingLevel represents logging verbosity levels for ONNX Runtime.
type OrtLoggingLevel int32

// ONNXType represents the type of an ONNX value.
type ONNXType int32

// ONNXTypeTensor identifies a tensor value.
const ONNXTypeTensor ONNXType = 1

// ONNXTensorElementDataType represents the data type of tensor elements.
type ONNXTensorElementDataType int32

// OrtAllocatorType represents memory allocator types.
type OrtAllocatorType int32

// OrtMemType represents memory types for allocations.
type OrtMemType int32

// APIBase mirrors the OrtApiBase struct returned by OrtGetApiBase.
type APIBase struct {
	GetAPI           uintptr
	GetVersionString uintptr
}

// apiTable mirrors the leading portion of the OrtApi function-pointer table,
// in C declaration order, through the ORT 1.4 additions. Entries the binding
// does not call are still declared so the offsets of the ones it does call
// line up with the shared library's layout.
type apiTable struct {
	// since 1.0
	CreateStatus                             uintptr
	GetErrorCode                             uintptr
	GetErrorMessage                          uintptr
	CreateEnv                                uintptr
	CreateEnvWithCustomLogger                uintptr
	EnableTelemetryEvents                    uintptr
	DisableTelemetryEvents                   uintptr
	CreateSession                            uintptr
	CreateSessionFromArray                   uintptr
	Run                                      uintptr
	CreateSessionOptions                     uintptr
	SetOptimizedModelFilePath                uintptr
	CloneSessionOptions                      uintptr
	SetSessionExecutionMode                  uintptr
	EnableProfiling                          uintptr
	DisableProfiling                         uintptr
	EnableMemPattern                         uintptr
	DisableMemPattern                        uintptr
	EnableCpuMemArena                        uintptr
	DisableCpuMemArena                       uintptr
	SetSessionLogId                          uintptr
	SetSessionLogVerbosityLevel              uintptr
	SetSessionLogSeverityLevel               uintptr
	SetSessionGraphOptimizationLevel         uintptr
	SetIntraOpNumThreads                     uintptr
	SetInterOpNumThreads                     uintptr
	CreateCustomOpDomain                     uintptr
	CustomOpDomainAdd                        uintptr
	AddCustomOpDomain                        uintptr
	RegisterCustomOpsLibrary                 uintptr
	SessionGetInputCount                     uintptr
	SessionGetOutputCount                    uintptr
	SessionGetOverridableInitializerCount    uintptr
	SessionGetInputTypeInfo                  uintptr
	SessionGetOutputTypeInfo                 uintptr
	SessionGetOverridableInitializerTypeInfo uintptr
	SessionGetInputName                      uintptr
	SessionGetOutputName                     uintptr
	SessionGetOverridableInitializerName     uintptr
	CreateRunOptions                         uintptr
	RunOptionsSetRunLogVerbosityLevel        uintptr
	RunOptionsSetRunLogSeverityLevel         uintptr
	RunOptionsSetRunTag                      uintptr
	RunOptionsGetRunLogVerbosityLevel        uintptr
	RunOptionsGetRunLogSeverityLevel         uintptr
	RunOptionsGetRunTag                      uintptr
	RunOptionsSetTerminate                   uintptr
	RunOptionsUnsetTerminate                 uintptr
	CreateTensorAsOrtValue                   uintptr
	CreateTensorWithDataAsOrtValue           uintptr
	IsTensor                                 uintptr
	GetTensorMutableData                     uintptr
	FillStringTensor                         uintptr
	GetStringTensorDataLength                uintptr
	GetStringTensorContent                   uintptr
	CastTypeInfoToTensorInfo                 uintptr
	GetOnnxTypeFromTypeInfo                  uintptr
	CreateTensorTypeAndShapeInfo             uintptr
	SetTensorElementType                     uintptr
	SetDimensions                            uintptr
	GetTensorElementType                     uintptr
	GetDimensionsCount                       uintptr
	GetDimensions                            uintptr
	GetSymbolicDimensions                    uintptr
	GetTensorShapeElementCount               uintptr
	GetTensorTypeAndShape                    uintptr
	GetTypeInfo                              uintptr
	GetValueType                             uintptr
	CreateMemoryInfo                         uintptr
	CreateCpuMemoryInfo                      uintptr
	CompareMemoryInfo                        uintptr
	MemoryInfoGetName                        uintptr
	MemoryInfoGetId                          uintptr
	MemoryInfoGetMemType                     uintptr
	MemoryInfoGetType                        uintptr
	AllocatorAlloc                           uintptr
	AllocatorFree                            uintptr
	AllocatorGetInfo                         uintptr
	GetAllocatorWithDefaultOptions           uintptr
	AddFreeDimensionOverride                 uintptr
	GetValue                                 uintptr
	GetValueCount                            uintptr
	CreateValue                              uintptr
	CreateOpaqueValue                        uintptr
	GetOpaqueValue                           uintptr
	KernelInfoGetAttributeFloat              uintptr
	KernelInfoGetAttributeInt64              uintptr
	KernelInfoGetAttributeString             uintptr
	KernelContextGetInputCount               uintptr
	KernelContextGetOutputCount              uintptr
	KernelContextGetInput                    uintptr
	KernelContextGetOutput                   uintptr
	ReleaseEnv                               uintptr
	ReleaseStatus                            uintptr
	ReleaseMemoryInfo                        uintptr
	ReleaseSession                           uintptr
	ReleaseValue                             uintptr
	ReleaseRunOptions                        uintptr
	ReleaseTypeInfo                          uintptr
	ReleaseTensorTypeAndShapeInfo            uintptr
	ReleaseSessionOptions                    uintptr
	ReleaseCustomOpDomain                    uintptr

	// since 1.1
	GetDenotationFromTypeInfo            uintptr
	CastTypeInfoToMapTypeInfo            uintptr
	CastTypeInfoToSequenceTypeInfo       uintptr
	GetMapKeyType                        uintptr
	GetMapValueType                      uintptr
	GetSequenceElementType               uintptr
	ReleaseMapTypeInfo                   uintptr
	ReleaseSequenceTypeInfo              uintptr
	SessionEndProfiling                  uintptr
	SessionGetModelMetadata              uintptr
	ModelMetadataGetProducerName         uintptr
	ModelMetadataGetGraphName            uintptr
	ModelMetadataGetDomain               uintptr
	ModelMetadataGetDescription          uintptr
	ModelMetadataLookupCustomMetadataMap uintptr
	ModelMetadataGetVersion              uintptr
	ReleaseModelMetadata                 uintptr

	// since 1.2
	CreateEnvWithGlobalThreadPools        uintptr
	DisablePerSessionThreads              uintptr
	CreateThreadingOptions                uintptr
	ReleaseThreadingOptions               uintptr
	ModelMetadataGetCustomMetadataMapKeys uintptr
	AddFreeDimensionOverrideByName        uintptr

	// since 1.3
	GetAvailableProviders     uintptr
	ReleaseAvailableProviders uintptr

	// since 1.4
	GetStringTensorElementLength uintptr
	GetStringTensorElement       uintptr
	FillStringTensorElement      uintptr
	AddSessionConfigEntry        uintptr
}

// Funcs holds cached, registered function pointers for the C API entries the
// binding calls.
type Funcs struct {
	getErrorCode    func(OrtStatus) OrtErrorCode
	getErrorMessage func(OrtStatus) unsafe.Pointer
	releaseStatus   func(OrtStatus)

	createEnv  func(OrtLoggingLevel, *byte, *OrtEnv) OrtStatus
	releaseEnv func(OrtEnv)

	getAllocatorWithDefaultOptions func(*OrtAllocator) OrtStatus
	allocatorFree                  func(OrtAllocator, unsafe.Pointer)
	createCpuMemoryInfo            func(OrtAllocatorType, OrtMemType, *OrtMemoryInfo) OrtStatus
	releaseMemoryInfo              func(OrtMemoryInfo)

	createSessionOptions             func(*OrtSessionOptions) OrtStatus
	setIntraOpNumThreads             func(OrtSessionOptions, int32) OrtStatus
	setInterOpNumThreads             func(OrtSessionOptions, int32) OrtStatus
	setSessionGraphOptimizationLevel func(OrtSessionOptions, int32) OrtStatus
	releaseSessionOptions            func(OrtSessionOptions)

	createSession            func(OrtEnv, *byte, OrtSessionOptions, *OrtSession) OrtStatus
	sessionGetInputCount     func(OrtSession, *uintptr) OrtStatus
	sessionGetOutputCount    func(OrtSession, *uintptr) OrtStatus
	sessionGetInputName      func(OrtSession, uintptr, OrtAllocator, **byte) OrtStatus
	sessionGetOutputName     func(OrtSession, uintptr, OrtAllocator, **byte) OrtStatus
	sessionGetInputTypeInfo  func(OrtSession, uintptr, *OrtTypeInfo) OrtStatus
	sessionGetOutputTypeInfo func(OrtSession, uintptr, *OrtTypeInfo) OrtStatus
	run                      func(OrtSession, OrtRunOptions, **byte, *OrtValue, uintptr, **byte, uintptr, *OrtValue) OrtStatus
	releaseSession           func(OrtSession)

	createRunOptions       func(*OrtRunOptions) OrtStatus
	runOptionsSetTerminate func(OrtRunOptions) OrtStatus
	releaseRunOptions      func(OrtRunOptions)

	createTensorAsOrtValue         func(OrtAllocator, *int64, uintptr, ONNXTensorElementDataType, *OrtValue) OrtStatus
	createTensorWithDataAsOrtValue func(OrtMemoryInfo, unsafe.Pointer, uintptr, *int64, uintptr, ONNXTensorElementDataType, *OrtValue) OrtStatus
	getTensorMutableData           func(OrtValue, *unsafe.Pointer) OrtStatus
	getTensorTypeAndShape          func(OrtValue, *OrtTensorTypeAndShapeInfo) OrtStatus
	getTensorElementType           func(OrtTensorTypeAndShapeInfo, *ONNXTensorElementDataType) OrtStatus
	getDimensionsCount             func(OrtTensorTypeAndShapeInfo, *uintptr) OrtStatus
	getDimensions                  func(OrtTensorTypeAndShapeInfo, *int64, uintptr) OrtStatus
	getTensorShapeElementCount     func(OrtTensorTypeAndShapeInfo, *uintptr) OrtStatus
	releaseValue                   func(OrtValue)
	releaseTensorTypeAndShapeInfo  func(OrtTensorTypeAndShapeInfo)

	castTypeInfoToTensorInfo func(OrtTypeInfo, *OrtTensorTypeAndShapeInfo) OrtStatus
	getOnnxTypeFromTypeInfo  func(OrtTypeInfo, *ONNXType) OrtStatus
	releaseTypeInfo          func(OrtTypeInfo)

	fillStringTensor          func(OrtValue, **byte, uintptr) OrtStatus
	getStringTensorDataLength func(OrtValue, *uintptr) OrtStatus
	getStringTensorContent    func(OrtValue, unsafe.Pointer, uintptr, *uintptr, uintptr) OrtStatus

	sessionGetModelMetadata               func(OrtSession, *OrtModelMetadata) OrtStatus
	modelMetadataGetProducerName          func(OrtModelMetadata, OrtAllocator, **byte) OrtStatus
	modelMetadataGetGraphName             func(OrtModelMetadata, OrtAllocator, **byte) OrtStatus
	modelMetadataGetDomain                func(OrtModelMetadata, OrtAllocator, **byte) OrtStatus
	modelMetadataGetDescription           func(OrtModelMetadata, OrtAllocator, **byte) OrtStatus
	modelMetadataLookupCustomMetadataMap  func(OrtModelMetadata, OrtAllocator, *byte, **byte) OrtStatus
	modelMetadataGetVersion               func(OrtModelMetadata, *int64) OrtStatus
	modelMetadataGetCustomMetadataMapKeys func(OrtModelMetadata, OrtAllocator, ***byte, *int64) OrtStatus
	releaseModelMetadata                  func(OrtModelMetadata)

	getAvailableProviders     func(***byte, *int32) OrtStatus
	releaseAvailableProviders func(**byte, int32) OrtStatus
}
