package churon

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/mrchypark/churon/engine"
)

// Warning is a non-fatal finding from input validation. Some models
// legitimately accept NaN or infinite values, so their presence is reported
// rather than rejected.
type Warning struct {
	Name    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("input %q: %s", w.Name, w.Message)
}

// collectNamed converts caller-supplied entries into a map, detecting the
// construction mistakes a plain map cannot carry: empty and duplicate names.
// These are caller errors independent of any model, so they are reported
// before descriptors are even consulted.
func collectNamed(values []NamedValue) (map[string]*HostValue, error) {
	var errs []error
	seen := make(map[string]struct{}, len(values))
	var dups []string
	var unnamed int
	inputs := make(map[string]*HostValue, len(values))

	for _, nv := range values {
		if nv.Name == "" {
			unnamed++
			continue
		}
		if _, ok := seen[nv.Name]; ok {
			dups = append(dups, nv.Name)
			continue
		}
		seen[nv.Name] = struct{}{}
		inputs[nv.Name] = nv.Value
	}

	if unnamed > 0 {
		errs = append(errs, &Error{
			Kind: KindUnnamedInput,
			Msg:  fmt.Sprintf("%d entries have no name", unnamed),
		})
	}
	if len(dups) > 0 {
		errs = append(errs, &Error{
			Kind:  KindDuplicateName,
			Names: dups,
			Msg:   "duplicate input names",
		})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return inputs, nil
}

// validateStructural is the pure, engine-independent phase: every entry must
// have a non-empty name and a non-nil value of a convertible kind. NaN and
// ±Inf in floating-point data produce warnings, not rejections.
func validateStructural(inputs map[string]*HostValue) ([]Warning, error) {
	if len(inputs) == 0 {
		return nil, &Error{Kind: KindEmptyInput, Msg: "no input entries supplied"}
	}

	var errs []error
	var warnings []Warning

	for _, name := range sortedNames(inputs) {
		v := inputs[name]
		if name == "" {
			errs = append(errs, &Error{Kind: KindUnnamedInput, Msg: "entry with empty name"})
			continue
		}
		if v == nil {
			errs = append(errs, &Error{
				Kind:  KindTypeMismatch,
				Names: []string{name},
				Msg:   "nil value",
			})
			continue
		}
		if v.elem.dataType() == engine.TypeUndefined {
			errs = append(errs, &Error{
				Kind:  KindTypeMismatch,
				Names: []string{name},
				Msg:   fmt.Sprintf("element type %s has no engine mapping", v.elem),
			})
			continue
		}
		if w, ok := nonFiniteWarning(name, v); ok {
			warnings = append(warnings, w)
		}
	}

	if len(errs) > 0 {
		return warnings, errors.Join(errs...)
	}
	return warnings, nil
}

// nonFiniteWarning scans floating-point data for NaN/±Inf.
func nonFiniteWarning(name string, v *HostValue) (Warning, bool) {
	var nans, infs int
	switch v.elem {
	case Float32:
		for _, f := range v.f32 {
			f64 := float64(f)
			if math.IsNaN(f64) {
				nans++
			} else if math.IsInf(f64, 0) {
				infs++
			}
		}
	case Float64:
		for _, f := range v.f64 {
			if math.IsNaN(f) {
				nans++
			} else if math.IsInf(f, 0) {
				infs++
			}
		}
	default:
		return Warning{}, false
	}
	if nans == 0 && infs == 0 {
		return Warning{}, false
	}
	return Warning{
		Name:    name,
		Message: fmt.Sprintf("contains %d NaN and %d infinite values", nans, infs),
	}, true
}

// validateSemantic is the descriptor-aware phase: every supplied name must be
// declared by the model, and every required input must be supplied. The two
// mismatch directions are distinct kinds and are joined when both occur, so
// the caller sees the full picture in one error.
//
// All declared inputs are treated as required; inputs satisfiable by a
// default appear to the engine as overridable initializers, not as graph
// inputs, so they never reach this set.
func validateSemantic(inputs map[string]*HostValue, descriptors []engine.Descriptor) error {
	declared := make(map[string]struct{}, len(descriptors))
	for _, d := range descriptors {
		declared[d.Name] = struct{}{}
	}

	var missing, unexpected []string
	for _, d := range descriptors {
		if _, ok := inputs[d.Name]; !ok {
			missing = append(missing, d.Name)
		}
	}
	for _, name := range sortedNames(inputs) {
		if _, ok := declared[name]; !ok {
			unexpected = append(unexpected, name)
		}
	}

	var errs []error
	if len(missing) > 0 {
		errs = append(errs, &Error{
			Kind:  KindMissingRequiredInput,
			Names: missing,
			Msg:   "required model inputs not supplied",
		})
	}
	if len(unexpected) > 0 {
		errs = append(errs, &Error{
			Kind:  KindUnexpectedInput,
			Names: unexpected,
			Msg:   "names not declared by the model",
		})
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// integralTargetWarnings flags float inputs bound for strictly integral
// descriptor slots that contain NaN/Inf, which the engine would otherwise
// truncate silently.
func integralTargetWarnings(inputs map[string]*HostValue, descriptors []engine.Descriptor) []Warning {
	byName := make(map[string]engine.Descriptor, len(descriptors))
	for _, d := range descriptors {
		byName[d.Name] = d
	}
	var warnings []Warning
	for _, name := range sortedNames(inputs) {
		v := inputs[name]
		if v == nil {
			continue
		}
		d, ok := byName[name]
		if !ok || !isIntegral(d.DataType) {
			continue
		}
		if w, found := nonFiniteWarning(name, v); found {
			w.Message = fmt.Sprintf("%s bound for integral input type %s", w.Message, d.DataType)
			warnings = append(warnings, w)
		}
	}
	return warnings
}

func sortedNames(inputs map[string]*HostValue) []string {
	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
