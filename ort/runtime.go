package ort

import (
	"fmt"
	"sync"

	"github.com/mrchypark/churon/ort/internal/api"
)

// ortRuntime holds the loaded ONNX Runtime library and process-wide objects: the
// API function table, the environment, the default allocator, and CPU memory
// info. Loading a shared library is irreversible under purego, so runtimes are
// cached per library path and never unloaded.
type ortRuntime struct {
	handle  uintptr
	funcs   *api.Funcs
	env     api.OrtEnv
	alloc   api.OrtAllocator
	memInfo api.OrtMemoryInfo
}

var (
	runtimeMu    sync.Mutex
	runtimeCache = map[string]*ortRuntime{}
)

// getRuntime loads (or returns the cached) runtime for the library at path.
// An empty path loads the platform default library name via the system search
// path.
func getRuntime(path string) (*ortRuntime, error) {
	if path == "" {
		path = defaultLibraryName()
	}

	runtimeMu.Lock()
	defer runtimeMu.Unlock()
	if rt, ok := runtimeCache[path]; ok {
		return rt, nil
	}

	handle, err := openLibrary(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load onnxruntime library %q: %w", path, err)
	}

	funcs, err := api.New(handle)
	if err != nil {
		return nil, err
	}

	rt := &ortRuntime{handle: handle, funcs: funcs}

	var env api.OrtEnv
	logID := cString("churon")
	if err := rt.statusError(funcs.CreateEnv(loggingLevelWarning, &logID[0], &env)); err != nil {
		return nil, err
	}
	rt.env = env

	var alloc api.OrtAllocator
	if err := rt.statusError(funcs.GetAllocatorWithDefaultOptions(&alloc)); err != nil {
		funcs.ReleaseEnv(env)
		return nil, err
	}
	rt.alloc = alloc

	var memInfo api.OrtMemoryInfo
	if err := rt.statusError(funcs.CreateCpuMemoryInfo(allocatorTypeArena, memTypeDefault, &memInfo)); err != nil {
		funcs.ReleaseEnv(env)
		return nil, err
	}
	rt.memInfo = memInfo

	runtimeCache[path] = rt
	return rt, nil
}

const (
	loggingLevelWarning api.OrtLoggingLevel = 2

	allocatorTypeArena api.OrtAllocatorType = 1
	memTypeDefault     api.OrtMemType       = 0
)

// statusError converts a non-nil OrtStatus into a *RuntimeError and releases
// the status object.
func (rt *ortRuntime) statusError(status api.OrtStatus) error {
	if status == 0 {
		return nil
	}
	code := rt.funcs.GetErrorCode(status)
	msg := cStringToString(rt.funcs.GetErrorMessage(status))
	rt.funcs.ReleaseStatus(status)
	return &RuntimeError{Code: int(code), Message: msg}
}

// freeString releases a C string that was allocated by the runtime's default
// allocator.
func (rt *ortRuntime) freeString(p *byte) {
	if p != nil {
		rt.funcs.AllocatorFree(rt.alloc, pointer(p))
	}
}

// availableProviders returns the provider names compiled into the loaded
// library, e.g. "CPUExecutionProvider".
func (rt *ortRuntime) availableProviders() ([]string, error) {
	var names **byte
	var count int32
	if err := rt.statusError(rt.funcs.GetAvailableProviders(&names, &count)); err != nil {
		return nil, err
	}
	defer rt.funcs.ReleaseAvailableProviders(names, count)

	out := make([]string, 0, count)
	for _, p := range pointerSlice(names, int(count)) {
		out = append(out, cStringToString(pointer(p)))
	}
	return out, nil
}
