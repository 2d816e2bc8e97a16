package churon

import "time"

// Hook provides callbacks around inference execution for observability.
// Implement this interface to add metrics, logging, or tracing.
type Hook interface {
	// BeforeRun is called after validation, before inference starts.
	BeforeRun(info *RunInfo)

	// AfterRun is called after inference completes (or fails).
	// Duration, Error, and OutputNames are populated.
	AfterRun(info *RunInfo)
}

// RunInfo describes one inference execution. Fields are progressively
// populated: InputNames and Warnings are set before Run, Duration, Error and
// OutputNames after.
type RunInfo struct {
	InputNames  []string
	OutputNames []string
	Warnings    []Warning
	Duration    time.Duration
	Error       error
}

type hookFunc struct {
	fn func(*RunInfo)
}

func (h *hookFunc) BeforeRun(_ *RunInfo)   {}
func (h *hookFunc) AfterRun(info *RunInfo) { h.fn(info) }

// AfterRunHook creates a Hook that calls fn after every inference.
// This is a convenience for the common case where you only need AfterRun.
func AfterRunHook(fn func(*RunInfo)) Hook {
	return &hookFunc{fn: fn}
}
