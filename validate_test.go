package churon

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrchypark/churon/engine"
)

func mustValue(t *testing.T, data []float32, shape []int64) *HostValue {
	t.Helper()
	v, err := Float32Value(data, shape)
	require.NoError(t, err)
	return v
}

func TestCollectNamed(t *testing.T) {
	a := mustValue(t, []float32{1}, []int64{1})
	b := mustValue(t, []float32{2}, []int64{1})

	inputs, err := collectNamed([]NamedValue{{Name: "a", Value: a}, {Name: "b", Value: b}})
	require.NoError(t, err)
	assert.Len(t, inputs, 2)
	assert.Same(t, a, inputs["a"])
}

func TestCollectNamedDuplicates(t *testing.T) {
	v := mustValue(t, []float32{1}, []int64{1})
	_, err := collectNamed([]NamedValue{
		{Name: "a", Value: v},
		{Name: "a", Value: v},
		{Name: "b", Value: v},
		{Name: "b", Value: v},
	})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindDuplicateName))
	assert.Equal(t, []string{"a", "b"}, ImplicatedNames(err))
}

func TestCollectNamedUnnamedAndDuplicateJoined(t *testing.T) {
	v := mustValue(t, []float32{1}, []int64{1})
	_, err := collectNamed([]NamedValue{
		{Name: "", Value: v},
		{Name: "a", Value: v},
		{Name: "a", Value: v},
	})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindUnnamedInput))
	assert.True(t, IsKind(err, KindDuplicateName))
}

func TestValidateStructuralEmpty(t *testing.T) {
	_, err := validateStructural(nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindEmptyInput))

	_, err = validateStructural(map[string]*HostValue{})
	assert.True(t, IsKind(err, KindEmptyInput))
}

func TestValidateStructuralNilValue(t *testing.T) {
	_, err := validateStructural(map[string]*HostValue{"x": nil})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTypeMismatch))
	assert.Equal(t, []string{"x"}, ImplicatedNames(err))
}

func TestValidateStructuralNonFiniteWarnings(t *testing.T) {
	v := mustValue(t, []float32{float32(math.NaN()), float32(math.Inf(1)), 1}, []int64{3})
	warnings, err := validateStructural(map[string]*HostValue{"x": v})
	require.NoError(t, err, "NaN and Inf warn, not fail")
	require.Len(t, warnings, 1)
	assert.Equal(t, "x", warnings[0].Name)
	assert.Contains(t, warnings[0].Message, "1 NaN")
	assert.Contains(t, warnings[0].Message, "1 infinite")
}

func TestValidateStructuralFloat64Warnings(t *testing.T) {
	v, err := Float64Value([]float64{math.Inf(-1), 2}, []int64{2})
	require.NoError(t, err)
	warnings, verr := validateStructural(map[string]*HostValue{"x": v})
	require.NoError(t, verr)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "1 infinite")
}

func descriptors(names ...string) []engine.Descriptor {
	ds := make([]engine.Descriptor, len(names))
	for i, n := range names {
		ds[i] = engine.Descriptor{Name: n, Shape: []int64{1}, DataType: engine.TypeFloat32}
	}
	return ds
}

func TestValidateSemanticExactMatch(t *testing.T) {
	v := mustValue(t, []float32{1}, []int64{1})
	err := validateSemantic(map[string]*HostValue{"a": v, "b": v}, descriptors("a", "b"))
	assert.NoError(t, err)
}

func TestValidateSemanticMissing(t *testing.T) {
	v := mustValue(t, []float32{1}, []int64{1})
	err := validateSemantic(map[string]*HostValue{"a": v}, descriptors("a", "b"))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindMissingRequiredInput))
	assert.False(t, IsKind(err, KindUnexpectedInput))
	assert.Equal(t, []string{"b"}, ImplicatedNames(err))
}

func TestValidateSemanticUnexpected(t *testing.T) {
	v := mustValue(t, []float32{1}, []int64{1})
	err := validateSemantic(map[string]*HostValue{"a": v, "z": v}, descriptors("a"))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindUnexpectedInput))
	assert.False(t, IsKind(err, KindMissingRequiredInput))
	assert.Equal(t, []string{"z"}, ImplicatedNames(err))
}

func TestValidateSemanticBothDirectionsJoined(t *testing.T) {
	v := mustValue(t, []float32{1}, []int64{1})
	err := validateSemantic(map[string]*HostValue{"z": v}, descriptors("a"))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindMissingRequiredInput))
	assert.True(t, IsKind(err, KindUnexpectedInput))
	assert.ElementsMatch(t, []string{"a", "z"}, ImplicatedNames(err))
}

func TestIntegralTargetWarnings(t *testing.T) {
	v := mustValue(t, []float32{float32(math.NaN())}, []int64{1})
	ds := []engine.Descriptor{{Name: "idx", Shape: []int64{1}, DataType: engine.TypeInt64}}

	warnings := integralTargetWarnings(map[string]*HostValue{"idx": v}, ds)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "integral input type int64")

	// Same value bound for a float slot is not flagged here.
	warnings = integralTargetWarnings(map[string]*HostValue{"idx": v}, descriptors("idx"))
	assert.Empty(t, warnings)
}
