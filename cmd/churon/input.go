package main

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/mrchypark/churon"
)

// inputFileDoc is the YAML document format accepted by the run subcommand.
type inputFileDoc struct {
	Inputs []inputEntry `yaml:"inputs"`
}

type inputEntry struct {
	Name  string    `yaml:"name"`
	Dtype string    `yaml:"dtype"`
	Shape []int64   `yaml:"shape"`
	Data  yaml.Node `yaml:"data"`
}

// parseInputs decodes the YAML input document into named values. Names are
// passed through as-is, including empty and duplicate ones, so the session's
// validation reports them instead of the parser.
func parseInputs(raw []byte) ([]churon.NamedValue, error) {
	var doc inputFileDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse input file: %w", err)
	}

	values := make([]churon.NamedValue, 0, len(doc.Inputs))
	for i, entry := range doc.Inputs {
		v, err := entryValue(entry)
		if err != nil {
			return nil, fmt.Errorf("input %d (%q): %w", i, entry.Name, err)
		}
		values = append(values, churon.NamedValue{Name: entry.Name, Value: v})
	}
	return values, nil
}

func entryValue(entry inputEntry) (*churon.HostValue, error) {
	switch entry.Dtype {
	case "float32":
		return decodeValue(entry, churon.Float32Value)
	case "float64", "":
		return decodeValue(entry, churon.Float64Value)
	case "int32":
		return decodeValue(entry, churon.Int32Value)
	case "int64":
		return decodeValue(entry, churon.Int64Value)
	case "bool":
		return decodeValue(entry, churon.BoolValue)
	case "string":
		return decodeValue(entry, churon.TextValue)
	default:
		return nil, fmt.Errorf("unknown dtype %q", entry.Dtype)
	}
}

func decodeValue[T any](entry inputEntry, build func([]T, []int64) (*churon.HostValue, error)) (*churon.HostValue, error) {
	var data []T
	if err := entry.Data.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode data: %w", err)
	}
	shape := entry.Shape
	if shape == nil {
		shape = []int64{int64(len(data))}
	}
	return build(data, shape)
}

// printOutputs writes the result tensors as a YAML document, sorted by name
// for stable output.
func printOutputs(out io.Writer, outputs map[string]*churon.HostValue) error {
	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	sort.Strings(names)

	type outputEntry struct {
		Name  string  `yaml:"name"`
		Dtype string  `yaml:"dtype"`
		Shape []int64 `yaml:"shape"`
		Data  any     `yaml:"data"`
	}
	doc := struct {
		Outputs []outputEntry `yaml:"outputs"`
	}{}

	for _, name := range names {
		v := outputs[name]
		entry := outputEntry{
			Name:  name,
			Dtype: v.ElementType().String(),
			Shape: v.Shape(),
		}
		switch v.ElementType() {
		case churon.Float32:
			entry.Data, _ = v.Float32s()
		case churon.Float64:
			entry.Data, _ = v.Float64s()
		case churon.Int32:
			entry.Data, _ = v.Int32s()
		case churon.Int64:
			entry.Data, _ = v.Int64s()
		case churon.Bool:
			entry.Data, _ = v.Bools()
		case churon.Text:
			entry.Data, _ = v.Texts()
		}
		doc.Outputs = append(doc.Outputs, entry)
	}

	enc := yaml.NewEncoder(out)
	defer enc.Close()
	return enc.Encode(doc)
}
