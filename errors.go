package churon

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSessionClosed is returned when an operation is attempted on a closed session.
var ErrSessionClosed = errors.New("session is closed")

// Kind classifies a failure into churon's closed error taxonomy.
// Every error the package produces belongs to exactly one kind, regardless of
// which layer detected it.
type Kind int

// Failure kinds.
const (
	// KindModelLoad: the model path is missing, unreadable, or not a valid graph.
	KindModelLoad Kind = iota + 1
	// KindInvalidProvider: a requested provider is not in the supported set.
	KindInvalidProvider
	// KindEmptyInput: the caller supplied zero input entries.
	KindEmptyInput
	// KindUnnamedInput: one or more entries lack a usable name.
	KindUnnamedInput
	// KindDuplicateName: two entries share a name.
	KindDuplicateName
	// KindMissingRequiredInput: a required model input was not supplied.
	KindMissingRequiredInput
	// KindUnexpectedInput: a supplied name is not declared by the model.
	KindUnexpectedInput
	// KindTypeMismatch: a host value's type has no valid engine mapping.
	KindTypeMismatch
	// KindShapeMismatch: an array's rank or dimensions conflict with the descriptor.
	KindShapeMismatch
	// KindInference: the engine itself failed during execution.
	KindInference
)

// String returns a stable human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindModelLoad:
		return "ModelLoadError"
	case KindInvalidProvider:
		return "InvalidProvider"
	case KindEmptyInput:
		return "EmptyInputError"
	case KindUnnamedInput:
		return "UnnamedInputError"
	case KindDuplicateName:
		return "DuplicateNameError"
	case KindMissingRequiredInput:
		return "MissingRequiredInput"
	case KindUnexpectedInput:
		return "UnexpectedInput"
	case KindTypeMismatch:
		return "TypeMismatch"
	case KindShapeMismatch:
		return "ShapeMismatch"
	case KindInference:
		return "InferenceError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the structured error type for every failure churon reports.
//
// Names lists the input names implicated in the failure, when any. For shape
// errors Expected and Actual carry the conflicting shapes. Err holds the
// wrapped cause; for engine failures the engine's diagnostic text is preserved
// verbatim there.
type Error struct {
	Kind     Kind
	Names    []string
	Expected []int64
	Actual   []int64
	Path     string
	Msg      string
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if len(e.Names) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(e.Names, ", "))
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " (%s)", e.Path)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Kind == KindShapeMismatch {
		fmt.Fprintf(&b, ": expected shape %v, got %v", e.Expected, e.Actual)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As chains.
func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether any error in err's tree (including errors joined
// with errors.Join) is a churon Error of the given kind.
func IsKind(err error, kind Kind) bool {
	found := false
	walkErrors(err, func(e *Error) bool {
		if e.Kind == kind {
			found = true
			return false
		}
		return true
	})
	return found
}

// KindOf returns the kind of the first churon Error found in err's tree,
// or zero if none is present.
func KindOf(err error) Kind {
	var kind Kind
	walkErrors(err, func(e *Error) bool {
		kind = e.Kind
		return false
	})
	return kind
}

// ImplicatedNames collects the input names implicated across every churon
// Error in err's tree, preserving first-seen order.
func ImplicatedNames(err error) []string {
	var names []string
	seen := make(map[string]struct{})
	walkErrors(err, func(e *Error) bool {
		for _, n := range e.Names {
			if _, ok := seen[n]; !ok {
				seen[n] = struct{}{}
				names = append(names, n)
			}
		}
		return true
	})
	return names
}

// walkErrors visits every *Error in err's tree until fn returns false.
func walkErrors(err error, fn func(*Error) bool) bool {
	if err == nil {
		return true
	}
	if e, ok := err.(*Error); ok {
		if !fn(e) {
			return false
		}
	}
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range u.Unwrap() {
			if !walkErrors(inner, fn) {
				return false
			}
		}
	case interface{ Unwrap() error }:
		return walkErrors(u.Unwrap(), fn)
	}
	return true
}
