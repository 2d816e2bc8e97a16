package api

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

// Version is the ORT API version requested from OrtGetApiBase::GetApi. The
// vtable layout declared here is stable for any runtime at or above this
// version because entries are only ever appended.
const Version = 4

// New resolves the OrtApi vtable from the loaded library handle and registers
// the entries the binding calls.
func New(handle uintptr) (*Funcs, error) {
	var getAPIBase func() *APIBase
	purego.RegisterLibFunc(&getAPIBase, handle, "OrtGetApiBase")

	base := getAPIBase()
	if base == nil {
		return nil, fmt.Errorf("OrtGetApiBase returned nil")
	}

	var getAPI func(uint32) unsafe.Pointer
	purego.RegisterFunc(&getAPI, base.GetAPI)

	raw := getAPI(Version)
	if raw == nil {
		return nil, fmt.Errorf("onnxruntime library does not provide API version %d", Version)
	}
	table := (*apiTable)(raw)

	f := &Funcs{}
	purego.RegisterFunc(&f.getErrorCode, table.GetErrorCode)
	purego.RegisterFunc(&f.getErrorMessage, table.GetErrorMessage)
	purego.RegisterFunc(&f.releaseStatus, table.ReleaseStatus)

	purego.RegisterFunc(&f.createEnv, table.CreateEnv)
	purego.RegisterFunc(&f.releaseEnv, table.ReleaseEnv)

	purego.RegisterFunc(&f.getAllocatorWithDefaultOptions, table.GetAllocatorWithDefaultOptions)
	purego.RegisterFunc(&f.allocatorFree, table.AllocatorFree)
	purego.RegisterFunc(&f.createCpuMemoryInfo, table.CreateCpuMemoryInfo)
	purego.RegisterFunc(&f.releaseMemoryInfo, table.ReleaseMemoryInfo)

	purego.RegisterFunc(&f.createSessionOptions, table.CreateSessionOptions)
	purego.RegisterFunc(&f.setIntraOpNumThreads, table.SetIntraOpNumThreads)
	purego.RegisterFunc(&f.setInterOpNumThreads, table.SetInterOpNumThreads)
	purego.RegisterFunc(&f.setSessionGraphOptimizationLevel, table.SetSessionGraphOptimizationLevel)
	purego.RegisterFunc(&f.releaseSessionOptions, table.ReleaseSessionOptions)

	purego.RegisterFunc(&f.createSession, table.CreateSession)
	purego.RegisterFunc(&f.sessionGetInputCount, table.SessionGetInputCount)
	purego.RegisterFunc(&f.sessionGetOutputCount, table.SessionGetOutputCount)
	purego.RegisterFunc(&f.sessionGetInputName, table.SessionGetInputName)
	purego.RegisterFunc(&f.sessionGetOutputName, table.SessionGetOutputName)
	purego.RegisterFunc(&f.sessionGetInputTypeInfo, table.SessionGetInputTypeInfo)
	purego.RegisterFunc(&f.sessionGetOutputTypeInfo, table.SessionGetOutputTypeInfo)
	purego.RegisterFunc(&f.run, table.Run)
	purego.RegisterFunc(&f.releaseSession, table.ReleaseSession)

	purego.RegisterFunc(&f.createRunOptions, table.CreateRunOptions)
	purego.RegisterFunc(&f.runOptionsSetTerminate, table.RunOptionsSetTerminate)
	purego.RegisterFunc(&f.releaseRunOptions, table.ReleaseRunOptions)

	purego.RegisterFunc(&f.createTensorAsOrtValue, table.CreateTensorAsOrtValue)
	purego.RegisterFunc(&f.createTensorWithDataAsOrtValue, table.CreateTensorWithDataAsOrtValue)
	purego.RegisterFunc(&f.getTensorMutableData, table.GetTensorMutableData)
	purego.RegisterFunc(&f.getTensorTypeAndShape, table.GetTensorTypeAndShape)
	purego.RegisterFunc(&f.getTensorElementType, table.GetTensorElementType)
	purego.RegisterFunc(&f.getDimensionsCount, table.GetDimensionsCount)
	purego.RegisterFunc(&f.getDimensions, table.GetDimensions)
	purego.RegisterFunc(&f.getTensorShapeElementCount, table.GetTensorShapeElementCount)
	purego.RegisterFunc(&f.releaseValue, table.ReleaseValue)
	purego.RegisterFunc(&f.releaseTensorTypeAndShapeInfo, table.ReleaseTensorTypeAndShapeInfo)

	purego.RegisterFunc(&f.castTypeInfoToTensorInfo, table.CastTypeInfoToTensorInfo)
	purego.RegisterFunc(&f.getOnnxTypeFromTypeInfo, table.GetOnnxTypeFromTypeInfo)
	purego.RegisterFunc(&f.releaseTypeInfo, table.ReleaseTypeInfo)

	purego.RegisterFunc(&f.fillStringTensor, table.FillStringTensor)
	purego.RegisterFunc(&f.getStringTensorDataLength, table.GetStringTensorDataLength)
	purego.RegisterFunc(&f.getStringTensorContent, table.GetStringTensorContent)

	purego.RegisterFunc(&f.sessionGetModelMetadata, table.SessionGetModelMetadata)
	purego.RegisterFunc(&f.modelMetadataGetProducerName, table.ModelMetadataGetProducerName)
	purego.RegisterFunc(&f.modelMetadataGetGraphName, table.ModelMetadataGetGraphName)
	purego.RegisterFunc(&f.modelMetadataGetDomain, table.ModelMetadataGetDomain)
	purego.RegisterFunc(&f.modelMetadataGetDescription, table.ModelMetadataGetDescription)
	purego.RegisterFunc(&f.modelMetadataLookupCustomMetadataMap, table.ModelMetadataLookupCustomMetadataMap)
	purego.RegisterFunc(&f.modelMetadataGetVersion, table.ModelMetadataGetVersion)
	purego.RegisterFunc(&f.modelMetadataGetCustomMetadataMapKeys, table.ModelMetadataGetCustomMetadataMapKeys)
	purego.RegisterFunc(&f.releaseModelMetadata, table.ReleaseModelMetadata)

	purego.RegisterFunc(&f.getAvailableProviders, table.GetAvailableProviders)
	purego.RegisterFunc(&f.releaseAvailableProviders, table.ReleaseAvailableProviders)

	return f, nil
}

func (f *Funcs) GetErrorCode(status OrtStatus) OrtErrorCode { return f.getErrorCode(status) }

func (f *Funcs) GetErrorMessage(status OrtStatus) unsafe.Pointer { return f.getErrorMessage(status) }

func (f *Funcs) ReleaseStatus(status OrtStatus) { f.releaseStatus(status) }

func (f *Funcs) CreateEnv(level OrtLoggingLevel, logID *byte, env *OrtEnv) OrtStatus {
	return f.createEnv(level, logID, env)
}

func (f *Funcs) ReleaseEnv(env OrtEnv) { f.releaseEnv(env) }

func (f *Funcs) GetAllocatorWithDefaultOptions(allocator *OrtAllocator) OrtStatus {
	return f.getAllocatorWithDefaultOptions(allocator)
}

func (f *Funcs) AllocatorFree(allocator OrtAllocator, p unsafe.Pointer) {
	f.allocatorFree(allocator, p)
}

func (f *Funcs) CreateCpuMemoryInfo(allocatorType OrtAllocatorType, memType OrtMemType, info *OrtMemoryInfo) OrtStatus {
	return f.createCpuMemoryInfo(allocatorType, memType, info)
}

func (f *Funcs) ReleaseMemoryInfo(info OrtMemoryInfo) { f.releaseMemoryInfo(info) }

func (f *Funcs) CreateSessionOptions(options *OrtSessionOptions) OrtStatus {
	return f.createSessionOptions(options)
}

func (f *Funcs) SetIntraOpNumThreads(options OrtSessionOptions, n int32) OrtStatus {
	return f.setIntraOpNumThreads(options, n)
}

func (f *Funcs) SetInterOpNumThreads(options OrtSessionOptions, n int32) OrtStatus {
	return f.setInterOpNumThreads(options, n)
}

func (f *Funcs) SetSessionGraphOptimizationLevel(options OrtSessionOptions, level int32) OrtStatus {
	return f.setSessionGraphOptimizationLevel(options, level)
}

func (f *Funcs) ReleaseSessionOptions(options OrtSessionOptions) { f.releaseSessionOptions(options) }

func (f *Funcs) CreateSession(env OrtEnv, modelPath *byte, options OrtSessionOptions, session *OrtSession) OrtStatus {
	return f.createSession(env, modelPath, options, session)
}

func (f *Funcs) SessionGetInputCount(session OrtSession, count *uintptr) OrtStatus {
	return f.sessionGetInputCount(session, count)
}

func (f *Funcs) SessionGetOutputCount(session OrtSession, count *uintptr) OrtStatus {
	return f.sessionGetOutputCount(session, count)
}

func (f *Funcs) SessionGetInputName(session OrtSession, index uintptr, allocator OrtAllocator, name **byte) OrtStatus {
	return f.sessionGetInputName(session, index, allocator, name)
}

func (f *Funcs) SessionGetOutputName(session OrtSession, index uintptr, allocator OrtAllocator, name **byte) OrtStatus {
	return f.sessionGetOutputName(session, index, allocator, name)
}

func (f *Funcs) SessionGetInputTypeInfo(session OrtSession, index uintptr, info *OrtTypeInfo) OrtStatus {
	return f.sessionGetInputTypeInfo(session, index, info)
}

func (f *Funcs) SessionGetOutputTypeInfo(session OrtSession, index uintptr, info *OrtTypeInfo) OrtStatus {
	return f.sessionGetOutputTypeInfo(session, index, info)
}

func (f *Funcs) Run(session OrtSession, options OrtRunOptions, inputNames **byte, inputs *OrtValue, inputCount uintptr, outputNames **byte, outputCount uintptr, outputs *OrtValue) OrtStatus {
	return f.run(session, options, inputNames, inputs, inputCount, outputNames, outputCount, outputs)
}

func (f *Funcs) ReleaseSession(session OrtSession) { f.releaseSession(session) }

func (f *Funcs) CreateRunOptions(options *OrtRunOptions) OrtStatus {
	return f.createRunOptions(options)
}

func (f *Funcs) RunOptionsSetTerminate(options OrtRunOptions) OrtStatus {
	return f.runOptionsSetTerminate(options)
}

func (f *Funcs) ReleaseRunOptions(options OrtRunOptions) { f.releaseRunOptions(options) }

func (f *Funcs) CreateTensorAsOrtValue(allocator OrtAllocator, shape *int64, shapeLen uintptr, dataType ONNXTensorElementDataType, value *OrtValue) OrtStatus {
	return f.createTensorAsOrtValue(allocator, shape, shapeLen, dataType, value)
}

func (f *Funcs) CreateTensorWithDataAsOrtValue(info OrtMemoryInfo, data unsafe.Pointer, dataLen uintptr, shape *int64, shapeLen uintptr, dataType ONNXTensorElementDataType, value *OrtValue) OrtStatus {
	return f.createTensorWithDataAsOrtValue(info, data, dataLen, shape, shapeLen, dataType, value)
}

func (f *Funcs) GetTensorMutableData(value OrtValue, data *unsafe.Pointer) OrtStatus {
	return f.getTensorMutableData(value, data)
}

func (f *Funcs) GetTensorTypeAndShape(value OrtValue, info *OrtTensorTypeAndShapeInfo) OrtStatus {
	return f.getTensorTypeAndShape(value, info)
}

func (f *Funcs) GetTensorElementType(info OrtTensorTypeAndShapeInfo, dataType *ONNXTensorElementDataType) OrtStatus {
	return f.getTensorElementType(info, dataType)
}

func (f *Funcs) GetDimensionsCount(info OrtTensorTypeAndShapeInfo, count *uintptr) OrtStatus {
	return f.getDimensionsCount(info, count)
}

func (f *Funcs) GetDimensions(info OrtTensorTypeAndShapeInfo, dims *int64, count uintptr) OrtStatus {
	return f.getDimensions(info, dims, count)
}

func (f *Funcs) GetTensorShapeElementCount(info OrtTensorTypeAndShapeInfo, count *uintptr) OrtStatus {
	return f.getTensorShapeElementCount(info, count)
}

func (f *Funcs) ReleaseValue(value OrtValue) { f.releaseValue(value) }

func (f *Funcs) ReleaseTensorTypeAndShapeInfo(info OrtTensorTypeAndShapeInfo) {
	f.releaseTensorTypeAndShapeInfo(info)
}

func (f *Funcs) CastTypeInfoToTensorInfo(info OrtTypeInfo, tensorInfo *OrtTensorTypeAndShapeInfo) OrtStatus {
	return f.castTypeInfoToTensorInfo(info, tensorInfo)
}

func (f *Funcs) GetOnnxTypeFromTypeInfo(info OrtTypeInfo, onnxType *ONNXType) OrtStatus {
	return f.getOnnxTypeFromTypeInfo(info, onnxType)
}

func (f *Funcs) ReleaseTypeInfo(info OrtTypeInfo) { f.releaseTypeInfo(info) }

func (f *Funcs) FillStringTensor(value OrtValue, strings **byte, count uintptr) OrtStatus {
	return f.fillStringTensor(value, strings, count)
}

func (f *Funcs) GetStringTensorDataLength(value OrtValue, length *uintptr) OrtStatus {
	return f.getStringTensorDataLength(value, length)
}

func (f *Funcs) GetStringTensorContent(value OrtValue, data unsafe.Pointer, dataLen uintptr, offsets *uintptr, offsetsLen uintptr) OrtStatus {
	return f.getStringTensorContent(value, data, dataLen, offsets, offsetsLen)
}

func (f *Funcs) SessionGetModelMetadata(session OrtSession, metadata *OrtModelMetadata) OrtStatus {
	return f.sessionGetModelMetadata(session, metadata)
}

func (f *Funcs) ModelMetadataGetProducerName(metadata OrtModelMetadata, allocator OrtAllocator, value **byte) OrtStatus {
	return f.modelMetadataGetProducerName(metadata, allocator, value)
}

func (f *Funcs) ModelMetadataGetGraphName(metadata OrtModelMetadata, allocator OrtAllocator, value **byte) OrtStatus {
	return f.modelMetadataGetGraphName(metadata, allocator, value)
}

func (f *Funcs) ModelMetadataGetDomain(metadata OrtModelMetadata, allocator OrtAllocator, value **byte) OrtStatus {
	return f.modelMetadataGetDomain(metadata, allocator, value)
}

func (f *Funcs) ModelMetadataGetDescription(metadata OrtModelMetadata, allocator OrtAllocator, value **byte) OrtStatus {
	return f.modelMetadataGetDescription(metadata, allocator, value)
}

func (f *Funcs) ModelMetadataLookupCustomMetadataMap(metadata OrtModelMetadata, allocator OrtAllocator, key *byte, value **byte) OrtStatus {
	return f.modelMetadataLookupCustomMetadataMap(metadata, allocator, key, value)
}

func (f *Funcs) ModelMetadataGetVersion(metadata OrtModelMetadata, version *int64) OrtStatus {
	return f.modelMetadataGetVersion(metadata, version)
}

func (f *Funcs) ModelMetadataGetCustomMetadataMapKeys(metadata OrtModelMetadata, allocator OrtAllocator, keys ***byte, count *int64) OrtStatus {
	return f.modelMetadataGetCustomMetadataMapKeys(metadata, allocator, keys, count)
}

func (f *Funcs) ReleaseModelMetadata(metadata OrtModelMetadata) { f.releaseModelMetadata(metadata) }

func (f *Funcs) GetAvailableProviders(providers ***byte, count *int32) OrtStatus {
	return f.getAvailableProviders(providers, count)
}

func (f *Funcs) ReleaseAvailableProviders(providers **byte, count int32) OrtStatus {
	return f.releaseAvailableProviders(providers, count)
}
