package ort

import (
	"fmt"

	"github.com/ebitengine/purego"

	"github.com/mrchypark/churon/engine"
	"github.com/mrchypark/churon/ort/internal/api"
)

// Config configures the ONNX Runtime engine.
type Config struct {
	// LibraryPath is the path to the onnxruntime shared library. Empty means
	// the platform default name resolved via the system search path.
	LibraryPath string

	// IntraOpNumThreads and InterOpNumThreads set the session thread pools.
	// Zero keeps the runtime default.
	IntraOpNumThreads int
	InterOpNumThreads int

	// GraphOptimization selects the graph optimization level.
	// The zero value keeps the runtime default.
	GraphOptimization GraphOptimizationLevel
}

// GraphOptimizationLevel selects the graph optimization tier applied when a
// session is created.
type GraphOptimizationLevel int

// Optimization tiers. GraphOptDefault leaves the runtime's own default in
// place; the others map to the corresponding ORT level codes.
const (
	GraphOptDefault GraphOptimizationLevel = iota
	GraphOptDisabled
	GraphOptBasic
	GraphOptExtended
	GraphOptAll
)

// ortCode returns the C API level code, or false for GraphOptDefault.
func (l GraphOptimizationLevel) ortCode() (int32, bool) {
	switch l {
	case GraphOptDisabled:
		return 0, true
	case GraphOptBasic:
		return 1, true
	case GraphOptExtended:
		return 2, true
	case GraphOptAll:
		return 99, true
	default:
		return 0, false
	}
}

// Engine is the production engine.Engine backed by the ONNX Runtime shared
// library via purego. The library is loaded lazily on the first Open.
type Engine struct {
	cfg Config
}

// NewEngine returns an Engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// cpuProvider is always compiled into the runtime and needs no registration.
const cpuProvider = "CPUExecutionProvider"

// providerAppendSymbols maps provider names to the exported C symbols that
// register them on session options. These symbols predate the vtable-based
// registration API and are only present in builds that include the provider,
// so each is resolved dynamically before use.
var providerAppendSymbols = map[string]string{
	"CUDAExecutionProvider":     "OrtSessionOptionsAppendExecutionProvider_CUDA",
	"TensorrtExecutionProvider": "OrtSessionOptionsAppendExecutionProvider_Tensorrt",
	"DnnlExecutionProvider":     "OrtSessionOptionsAppendExecutionProvider_Dnnl",
	"DmlExecutionProvider":      "OrtSessionOptionsAppendExecutionProvider_DML",
	"CoreMLExecutionProvider":   "OrtSessionOptionsAppendExecutionProvider_CoreML",
}

// Open loads the model at path. Requested providers that the loaded library
// does not include are skipped; registration failures for included providers
// are reported. CPU always remains the final fallback.
func (e *Engine) Open(path string, providers []string) (engine.Session, error) {
	rt, err := getRuntime(e.cfg.LibraryPath)
	if err != nil {
		return nil, err
	}

	var options api.OrtSessionOptions
	if err := rt.statusError(rt.funcs.CreateSessionOptions(&options)); err != nil {
		return nil, err
	}
	defer rt.funcs.ReleaseSessionOptions(options)

	if e.cfg.IntraOpNumThreads > 0 {
		if err := rt.statusError(rt.funcs.SetIntraOpNumThreads(options, int32(e.cfg.IntraOpNumThreads))); err != nil {
			return nil, err
		}
	}
	if e.cfg.InterOpNumThreads > 0 {
		if err := rt.statusError(rt.funcs.SetInterOpNumThreads(options, int32(e.cfg.InterOpNumThreads))); err != nil {
			return nil, err
		}
	}
	if code, ok := e.cfg.GraphOptimization.ortCode(); ok {
		if err := rt.statusError(rt.funcs.SetSessionGraphOptimizationLevel(options, code)); err != nil {
			return nil, err
		}
	}

	active, err := rt.appendProviders(options, providers)
	if err != nil {
		return nil, err
	}

	modelPath := cString(path)
	var handle api.OrtSession
	if err := rt.statusError(rt.funcs.CreateSession(rt.env, &modelPath[0], options, &handle)); err != nil {
		return nil, err
	}
	return rt.newSession(handle, active)
}

// appendProviders registers the requested providers on the session options in
// priority order and returns the names that were actually selected. Providers
// absent from the loaded library are silently skipped; CPU is appended last
// when requested (or by default) since the runtime always falls back to it.
func (rt *ortRuntime) appendProviders(options api.OrtSessionOptions, requested []string) ([]string, error) {
	available, err := rt.availableProviders()
	if err != nil {
		return nil, err
	}
	availableSet := make(map[string]bool, len(available))
	for _, name := range available {
		availableSet[name] = true
	}

	var active []string
	for _, name := range requested {
		if name == cpuProvider {
			active = append(active, cpuProvider)
			continue
		}
		if !availableSet[name] {
			continue
		}
		symbol, ok := providerAppendSymbols[name]
		if !ok {
			return nil, fmt.Errorf("no registration entry point for provider %s", name)
		}
		addr, err := lookupSymbol(rt.handle, symbol)
		if err != nil || addr == 0 {
			continue
		}
		status, _, _ := purego.SyscallN(addr, uintptr(options), 0)
		if err := rt.statusError(api.OrtStatus(status)); err != nil {
			return nil, fmt.Errorf("failed to register provider %s: %w", name, err)
		}
		active = append(active, name)
	}
	if len(active) == 0 {
		active = []string{cpuProvider}
	}
	return active, nil
}
