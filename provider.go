package churon

import (
	"fmt"
	"strings"
)

// Provider identifies an execution backend the engine may dispatch to.
// The set is closed; unknown identifiers are rejected before the model file
// is touched.
type Provider string

// Supported execution providers.
const (
	ProviderCPU      Provider = "cpu"
	ProviderCUDA     Provider = "cuda"
	ProviderTensorRT Provider = "tensorrt"
	ProviderDirectML Provider = "directml"
	ProviderOneDNN   Provider = "onednn"
	ProviderCoreML   Provider = "coreml"
)

// supportedProviders is the closed set, in the order error messages list it.
var supportedProviders = []Provider{
	ProviderCPU,
	ProviderCUDA,
	ProviderTensorRT,
	ProviderDirectML,
	ProviderOneDNN,
	ProviderCoreML,
}

// engineProviderNames maps churon identifiers to the engine-level provider
// names the ONNX Runtime reports and accepts.
var engineProviderNames = map[Provider]string{
	ProviderCPU:      "CPUExecutionProvider",
	ProviderCUDA:     "CUDAExecutionProvider",
	ProviderTensorRT: "TensorrtExecutionProvider",
	ProviderDirectML: "DmlExecutionProvider",
	ProviderOneDNN:   "DnnlExecutionProvider",
	ProviderCoreML:   "CoreMLExecutionProvider",
}

// ParseProvider validates a provider identifier string.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := engineProviderNames[p]; !ok {
		return "", invalidProviderError(s)
	}
	return p, nil
}

func invalidProviderError(s string) error {
	names := make([]string, len(supportedProviders))
	for i, p := range supportedProviders {
		names[i] = string(p)
	}
	return &Error{
		Kind: KindInvalidProvider,
		Msg:  fmt.Sprintf("unknown provider %q, supported: %s", s, strings.Join(names, ", ")),
	}
}

// normalizeProviders validates the requested set and translates it to engine
// provider names, preserving the caller's fallback order. An empty request
// defaults to CPU.
func normalizeProviders(providers []Provider) ([]string, error) {
	if len(providers) == 0 {
		providers = []Provider{ProviderCPU}
	}
	names := make([]string, 0, len(providers))
	seen := make(map[Provider]struct{}, len(providers))
	for _, p := range providers {
		name, ok := engineProviderNames[p]
		if !ok {
			return nil, invalidProviderError(string(p))
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}
