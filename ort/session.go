package ort

import (
	"context"
	"runtime"
	"sync"
	"unsafe"

	"github.com/mrchypark/churon/engine"
	"github.com/mrchypark/churon/ort/internal/api"
)

// session wraps a native OrtSession. It satisfies engine.Session; callers are
// expected to serialize Run calls, and Close only guards against double
// release.
type session struct {
	rt        *ortRuntime
	handle    api.OrtSession
	providers []string

	inputs  []engine.Descriptor
	outputs []engine.Descriptor

	// C string name arrays passed to every Run, built once at open.
	inputNameBufs  [][]byte
	outputNameBufs [][]byte
	inputNamePtrs  []*byte
	outputNamePtrs []*byte

	mu     sync.Mutex
	closed bool
}

func (rt *ortRuntime) newSession(handle api.OrtSession, providers []string) (*session, error) {
	s := &session{rt: rt, handle: handle, providers: providers}

	inputs, err := rt.collectDescriptors(handle,
		rt.funcs.SessionGetInputCount, rt.funcs.SessionGetInputName, rt.funcs.SessionGetInputTypeInfo)
	if err != nil {
		rt.funcs.ReleaseSession(handle)
		return nil, err
	}
	outputs, err := rt.collectDescriptors(handle,
		rt.funcs.SessionGetOutputCount, rt.funcs.SessionGetOutputName, rt.funcs.SessionGetOutputTypeInfo)
	if err != nil {
		rt.funcs.ReleaseSession(handle)
		return nil, err
	}
	s.inputs = inputs
	s.outputs = outputs

	for _, d := range inputs {
		buf := cString(d.Name)
		s.inputNameBufs = append(s.inputNameBufs, buf)
		s.inputNamePtrs = append(s.inputNamePtrs, &buf[0])
	}
	for _, d := range outputs {
		buf := cString(d.Name)
		s.outputNameBufs = append(s.outputNameBufs, buf)
		s.outputNamePtrs = append(s.outputNamePtrs, &buf[0])
	}
	return s, nil
}

func (rt *ortRuntime) collectDescriptors(
	handle api.OrtSession,
	getCount func(api.OrtSession, *uintptr) api.OrtStatus,
	getName func(api.OrtSession, uintptr, api.OrtAllocator, **byte) api.OrtStatus,
	getTypeInfo func(api.OrtSession, uintptr, *api.OrtTypeInfo) api.OrtStatus,
) ([]engine.Descriptor, error) {
	var count uintptr
	if err := rt.statusError(getCount(handle, &count)); err != nil {
		return nil, err
	}

	descriptors := make([]engine.Descriptor, 0, count)
	for i := uintptr(0); i < count; i++ {
		var namePtr *byte
		if err := rt.statusError(getName(handle, i, rt.alloc, &namePtr)); err != nil {
			return nil, err
		}
		name := cStringToString(pointer(namePtr))
		rt.freeString(namePtr)

		var typeInfo api.OrtTypeInfo
		if err := rt.statusError(getTypeInfo(handle, i, &typeInfo)); err != nil {
			return nil, err
		}
		d, err := rt.tensorDescriptor(name, typeInfo)
		rt.funcs.ReleaseTypeInfo(typeInfo)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

func (rt *ortRuntime) tensorDescriptor(name string, typeInfo api.OrtTypeInfo) (engine.Descriptor, error) {
	d := engine.Descriptor{Name: name}

	var onnxType api.ONNXType
	if err := rt.statusError(rt.funcs.GetOnnxTypeFromTypeInfo(typeInfo, &onnxType)); err != nil {
		return d, err
	}
	if onnxType != api.ONNXTypeTensor {
		// Non-tensor slots (sequences, maps) keep the undefined element type;
		// validation rejects attempts to feed them.
		return d, nil
	}

	// The tensor info obtained by casting is owned by the type info and must
	// not be released separately.
	var info api.OrtTensorTypeAndShapeInfo
	if err := rt.statusError(rt.funcs.CastTypeInfoToTensorInfo(typeInfo, &info)); err != nil {
		return d, err
	}

	var elemType api.ONNXTensorElementDataType
	if err := rt.statusError(rt.funcs.GetTensorElementType(info, &elemType)); err != nil {
		return d, err
	}
	d.DataType = engine.DataType(elemType)

	var dimCount uintptr
	if err := rt.statusError(rt.funcs.GetDimensionsCount(info, &dimCount)); err != nil {
		return d, err
	}
	if dimCount > 0 {
		d.Shape = make([]int64, dimCount)
		if err := rt.statusError(rt.funcs.GetDimensions(info, &d.Shape[0], dimCount)); err != nil {
			return d, err
		}
	}
	return d, nil
}

func (s *session) InputDescriptors() []engine.Descriptor  { return s.inputs }
func (s *session) OutputDescriptors() []engine.Descriptor { return s.outputs }
func (s *session) ActiveProviders() []string              { return s.providers }

// Run executes the graph. Cancelling ctx flags the in-flight run for
// cooperative termination via the runtime's run options; the native call
// still returns before Run does.
func (s *session) Run(ctx context.Context, inputs []engine.Tensor) ([]engine.Tensor, error) {
	var runOptions api.OrtRunOptions
	if err := s.rt.statusError(s.rt.funcs.CreateRunOptions(&runOptions)); err != nil {
		return nil, err
	}
	defer s.rt.funcs.ReleaseRunOptions(runOptions)

	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			s.rt.funcs.RunOptionsSetTerminate(runOptions)
		case <-watchDone:
		}
	}()

	inputValues := make([]api.OrtValue, 0, len(inputs))
	release := func() {
		for _, v := range inputValues {
			s.rt.funcs.ReleaseValue(v)
		}
	}
	for _, t := range inputs {
		v, err := s.rt.createValue(t)
		if err != nil {
			release()
			return nil, err
		}
		inputValues = append(inputValues, v)
	}
	defer release()

	outputValues := make([]api.OrtValue, len(s.outputs))

	var inputValuesPtr, outputValuesPtr *api.OrtValue
	var inputNamesPtr, outputNamesPtr **byte
	if len(inputValues) > 0 {
		inputValuesPtr = &inputValues[0]
		inputNamesPtr = &s.inputNamePtrs[0]
	}
	if len(outputValues) > 0 {
		outputValuesPtr = &outputValues[0]
		outputNamesPtr = &s.outputNamePtrs[0]
	}

	err := s.rt.statusError(s.rt.funcs.Run(
		s.handle, runOptions,
		inputNamesPtr, inputValuesPtr, uintptr(len(inputValues)),
		outputNamesPtr, uintptr(len(outputValues)), outputValuesPtr,
	))
	runtime.KeepAlive(inputs)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	outputs := make([]engine.Tensor, 0, len(outputValues))
	for i, v := range outputValues {
		t, err := s.rt.readValue(s.outputs[i].Name, v)
		s.rt.funcs.ReleaseValue(v)
		if err != nil {
			for _, rest := range outputValues[i+1:] {
				s.rt.funcs.ReleaseValue(rest)
			}
			return nil, err
		}
		outputs = append(outputs, t)
	}
	return outputs, nil
}

// Metadata reads the model's metadata from the native session.
func (s *session) Metadata() (*engine.Metadata, error) {
	rt := s.rt
	var handle api.OrtModelMetadata
	if err := rt.statusError(rt.funcs.SessionGetModelMetadata(s.handle, &handle)); err != nil {
		return nil, err
	}
	defer rt.funcs.ReleaseModelMetadata(handle)

	md := &engine.Metadata{}
	for _, field := range []struct {
		get func(api.OrtModelMetadata, api.OrtAllocator, **byte) api.OrtStatus
		dst *string
	}{
		{rt.funcs.ModelMetadataGetProducerName, &md.ProducerName},
		{rt.funcs.ModelMetadataGetGraphName, &md.GraphName},
		{rt.funcs.ModelMetadataGetDomain, &md.Domain},
		{rt.funcs.ModelMetadataGetDescription, &md.Description},
	} {
		var p *byte
		if err := rt.statusError(field.get(handle, rt.alloc, &p)); err != nil {
			return nil, err
		}
		*field.dst = cStringToString(pointer(p))
		rt.freeString(p)
	}

	if err := rt.statusError(rt.funcs.ModelMetadataGetVersion(handle, &md.Version)); err != nil {
		return nil, err
	}

	var keys **byte
	var keyCount int64
	if err := rt.statusError(rt.funcs.ModelMetadataGetCustomMetadataMapKeys(handle, rt.alloc, &keys, &keyCount)); err != nil {
		return nil, err
	}
	if keyCount > 0 {
		md.Custom = make(map[string]string, keyCount)
		keyPtrs := pointerSlice(keys, int(keyCount))
		for _, kp := range keyPtrs {
			key := cStringToString(pointer(kp))
			keyBuf := cString(key)
			var vp *byte
			if err := rt.statusError(rt.funcs.ModelMetadataLookupCustomMetadataMap(handle, rt.alloc, &keyBuf[0], &vp)); err != nil {
				return nil, err
			}
			md.Custom[key] = cStringToString(pointer(vp))
			rt.freeString(vp)
			rt.freeString(kp)
		}
		rt.funcs.AllocatorFree(rt.alloc, unsafe.Pointer(keys))
	}
	return md, nil
}

// Close releases the native session. Safe to call multiple times.
func (s *session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.rt.funcs.ReleaseSession(s.handle)
	return nil
}
