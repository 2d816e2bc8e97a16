package churon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProvider(t *testing.T) {
	tests := []struct {
		input string
		want  Provider
	}{
		{"cpu", ProviderCPU},
		{"CUDA", ProviderCUDA},
		{" tensorrt ", ProviderTensorRT},
		{"DirectML", ProviderDirectML},
		{"onednn", ProviderOneDNN},
		{"coreml", ProviderCoreML},
	}
	for _, tt := range tests {
		p, err := ParseProvider(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, p)
	}
}

func TestParseProviderUnknown(t *testing.T) {
	for _, input := range []string{"", "gpu", "openvino", "cuda11"} {
		_, err := ParseProvider(input)
		require.Error(t, err, "input %q", input)
		assert.True(t, IsKind(err, KindInvalidProvider))
		assert.Contains(t, err.Error(), "cpu, cuda, tensorrt, directml, onednn, coreml")
	}
}

func TestNormalizeProvidersDefault(t *testing.T) {
	names, err := normalizeProviders(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"CPUExecutionProvider"}, names)
}

func TestNormalizeProvidersOrderAndDedup(t *testing.T) {
	names, err := normalizeProviders([]Provider{ProviderCUDA, ProviderCPU, ProviderCUDA})
	require.NoError(t, err)
	assert.Equal(t, []string{"CUDAExecutionProvider", "CPUExecutionProvider"}, names)
}

func TestNormalizeProvidersUnknown(t *testing.T) {
	_, err := normalizeProviders([]Provider{ProviderCPU, Provider("rocm")})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidProvider))
}
