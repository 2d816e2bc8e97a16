package churon

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/mrchypark/churon/engine"
	"github.com/mrchypark/churon/ort"
)

// GraphOptimizationLevel selects the engine's graph optimization tier.
type GraphOptimizationLevel int

// Graph optimization tiers, from none to everything the engine offers.
// The engine default (all optimizations) applies when no level is set.
const (
	GraphOptDisabled GraphOptimizationLevel = iota + 1
	GraphOptBasic
	GraphOptExtended
	GraphOptAll
)

// TensorDescriptor describes one input or output slot of a loaded model.
type TensorDescriptor = engine.Descriptor

// Session is a loaded, ready-to-execute model. It owns the underlying engine
// session exclusively and releases it deterministically in Close.
//
// Run calls against one Session are serialized by a handle-level lock: the
// underlying engine session is not assumed safe for unsynchronized concurrent
// execution. Open separate Sessions (or use SessionPool) for parallelism.
type Session struct {
	mu     sync.Mutex
	eng    engine.Session
	closed bool

	path    string
	inputs  []engine.Descriptor
	outputs []engine.Descriptor
	hooks   []Hook
}

type sessionConfig struct {
	providers   []Provider
	eng         engine.Engine
	libraryPath string
	intraOp     int
	interOp     int
	optLevel    GraphOptimizationLevel
	hooks       []Hook
}

// Option configures Open.
type Option func(*sessionConfig)

// WithProviders requests execution providers in fallback-priority order.
// The default is CPU only.
func WithProviders(providers ...Provider) Option {
	return func(c *sessionConfig) { c.providers = providers }
}

// WithEngine substitutes the engine implementation. Intended for tests and
// alternative backends; the default is the ONNX Runtime bridge.
func WithEngine(e engine.Engine) Option {
	return func(c *sessionConfig) { c.eng = e }
}

// WithLibraryPath sets the path to the ONNX Runtime shared library.
// Discovery (from the environment or elsewhere) is the caller's concern;
// the core never reads process state implicitly.
func WithLibraryPath(path string) Option {
	return func(c *sessionConfig) { c.libraryPath = path }
}

// WithThreads sets the engine's intra-op and inter-op thread counts.
// Zero keeps the engine default.
func WithThreads(intraOp, interOp int) Option {
	return func(c *sessionConfig) {
		c.intraOp = intraOp
		c.interOp = interOp
	}
}

// WithGraphOptimization sets the engine's graph optimization level.
// Unset keeps the engine default (all optimizations).
func WithGraphOptimization(level GraphOptimizationLevel) Option {
	return func(c *sessionConfig) { c.optLevel = level }
}

// WithHooks attaches observability hooks called around every Run.
func WithHooks(hooks ...Hook) Option {
	return func(c *sessionConfig) { c.hooks = append(c.hooks, hooks...) }
}

// Open loads the model at path and prepares it for inference.
//
// Provider identifiers are validated against the supported set before the
// model file is touched; an unknown identifier fails with InvalidProvider
// and no load is attempted. Load failures are reported as ModelLoadError
// with the engine's diagnostic preserved.
func Open(path string, opts ...Option) (*Session, error) {
	cfg := &sessionConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	providerNames, err := normalizeProviders(cfg.providers)
	if err != nil {
		return nil, err
	}

	eng := cfg.eng
	if eng == nil {
		eng = ort.NewEngine(ort.Config{
			LibraryPath:       cfg.libraryPath,
			IntraOpNumThreads: cfg.intraOp,
			InterOpNumThreads: cfg.interOp,
			GraphOptimization: ortOptLevel(cfg.optLevel),
		})
	}

	es, err := eng.Open(path, providerNames)
	if err != nil {
		return nil, &Error{Kind: KindModelLoad, Path: path, Err: err}
	}

	s := &Session{
		eng:   es,
		path:  path,
		hooks: cfg.hooks,
	}
	for _, d := range es.InputDescriptors() {
		s.inputs = append(s.inputs, d.Clone())
	}
	for _, d := range es.OutputDescriptors() {
		s.outputs = append(s.outputs, d.Clone())
	}
	// Safety net for sessions dropped without Close; engine Close is
	// idempotent, so an explicit Close beforehand is harmless.
	runtime.AddCleanup(s, func(es engine.Session) { es.Close() }, es)
	return s, nil
}

// ortOptLevel maps the optimization tier to the engine's level code;
// zero (unset) maps to the engine-default sentinel.
func ortOptLevel(level GraphOptimizationLevel) ort.GraphOptimizationLevel {
	switch level {
	case GraphOptDisabled:
		return ort.GraphOptDisabled
	case GraphOptBasic:
		return ort.GraphOptBasic
	case GraphOptExtended:
		return ort.GraphOptExtended
	case GraphOptAll:
		return ort.GraphOptAll
	default:
		return ort.GraphOptDefault
	}
}

// Run executes the model with the provided named inputs and returns the
// named outputs. Inputs are validated structurally and against the model's
// declared input set before the engine is invoked; validation failures never
// reach the engine. The call blocks until the engine returns; cancelling ctx
// requests cooperative termination.
func (s *Session) Run(ctx context.Context, inputs map[string]*HostValue) (map[string]*HostValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run(ctx, inputs)
}

// RunValues is Run for an ordered entry list. Unlike a map, the list can
// carry the empty and duplicate names a caller may construct by mistake;
// those are rejected before any engine interaction.
func (s *Session) RunValues(ctx context.Context, values []NamedValue) (map[string]*HostValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(values) == 0 {
		return nil, &Error{Kind: KindEmptyInput, Msg: "no input entries supplied"}
	}
	inputs, err := collectNamed(values)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, inputs)
}

func (s *Session) run(ctx context.Context, inputs map[string]*HostValue) (map[string]*HostValue, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}

	warnings, err := validateStructural(inputs)
	if err != nil {
		return nil, err
	}
	if err := validateSemantic(inputs, s.inputs); err != nil {
		return nil, err
	}
	warnings = append(warnings, integralTargetWarnings(inputs, s.inputs)...)

	batch, err := toNative(inputs, s.inputs)
	if err != nil {
		return nil, err
	}

	info := &RunInfo{
		InputNames: sortedNames(inputs),
		Warnings:   warnings,
	}
	for _, h := range s.hooks {
		h.BeforeRun(info)
	}

	start := time.Now()
	nativeOutputs, err := s.eng.Run(ctx, batch)
	info.Duration = time.Since(start)

	if err != nil {
		// The engine rejected the batch or failed mid-execution. Re-check
		// the declared input set so a descriptor-level mismatch surfaces as
		// a structured error instead of an opaque diagnostic.
		if verr := validateSemantic(inputs, s.eng.InputDescriptors()); verr != nil {
			err = verr
		} else {
			err = &Error{Kind: KindInference, Err: err}
		}
		info.Error = err
		for _, h := range s.hooks {
			h.AfterRun(info)
		}
		return nil, err
	}

	outputs, err := fromNative(nativeOutputs)
	if err != nil {
		info.Error = err
		for _, h := range s.hooks {
			h.AfterRun(info)
		}
		return nil, err
	}

	info.OutputNames = make([]string, 0, len(outputs))
	for _, d := range s.outputs {
		if _, ok := outputs[d.Name]; ok {
			info.OutputNames = append(info.OutputNames, d.Name)
		}
	}
	for _, h := range s.hooks {
		h.AfterRun(info)
	}
	return outputs, nil
}

// ValidateInputs runs the structural and semantic validation phases without
// invoking the engine, returning any non-fatal warnings.
func (s *Session) ValidateInputs(inputs map[string]*HostValue) ([]Warning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}

	warnings, err := validateStructural(inputs)
	if err != nil {
		return warnings, err
	}
	if err := validateSemantic(inputs, s.inputs); err != nil {
		return warnings, err
	}
	return append(warnings, integralTargetWarnings(inputs, s.inputs)...), nil
}

// InputInfo returns descriptors for every declared model input.
func (s *Session) InputInfo() []TensorDescriptor {
	return cloneDescriptors(s.inputs)
}

// OutputInfo returns descriptors for every declared model output.
func (s *Session) OutputInfo() []TensorDescriptor {
	return cloneDescriptors(s.outputs)
}

func cloneDescriptors(ds []engine.Descriptor) []TensorDescriptor {
	out := make([]TensorDescriptor, len(ds))
	for i, d := range ds {
		out[i] = d.Clone()
	}
	return out
}

// ActiveProviders reports the providers the engine actually selected, which
// may be a strict subset of those requested at Open.
func (s *Session) ActiveProviders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	return append([]string(nil), s.eng.ActiveProviders()...)
}

// ModelPath returns the path the session was opened from.
func (s *Session) ModelPath() string { return s.path }

// Metadata returns the model's metadata when the engine exposes it, or nil
// otherwise.
func (s *Session) Metadata() (*engine.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	if mp, ok := s.eng.(engine.MetadataProvider); ok {
		return mp.Metadata()
	}
	return nil, nil
}

// Close releases the underlying engine session. It is safe to call multiple
// times.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.eng.Close()
}
