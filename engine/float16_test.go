package engine

import (
	"math"
	"testing"
)

func TestFloat16RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		want  float32
	}{
		{"zero", 0, 0},
		{"negative zero", float32(math.Copysign(0, -1)), float32(math.Copysign(0, -1))},
		{"one", 1.0, 1.0},
		{"negative one", -1.0, -1.0},
		{"half", 0.5, 0.5},
		{"two", 2.0, 2.0},
		{"small normal", 0.00006103515625, 0.00006103515625}, // smallest normal fp16
		{"max fp16", 65504, 65504},
		{"negative max", -65504, -65504},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f16 := NewFloat16(tt.input)
			got := f16.Float32()
			if got != tt.want {
				t.Errorf("Float16 roundtrip(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloat16Overflow(t *testing.T) {
	f16 := NewFloat16(100000)
	if got := f16.Float32(); !math.IsInf(float64(got), 1) {
		t.Errorf("Float16 overflow: expected +Inf, got %v", got)
	}

	f16neg := NewFloat16(-100000)
	if got := f16neg.Float32(); !math.IsInf(float64(got), -1) {
		t.Errorf("Float16 negative overflow: expected -Inf, got %v", got)
	}
}

func TestFloat16Underflow(t *testing.T) {
	f16 := NewFloat16(1e-20)
	if got := f16.Float32(); got != 0 {
		t.Errorf("Float16 underflow: expected 0, got %v", got)
	}
}

func TestFloat16SpecialValues(t *testing.T) {
	inf := NewFloat16(float32(math.Inf(1)))
	if got := inf.Float32(); !math.IsInf(float64(got), 1) {
		t.Errorf("expected +Inf, got %v", got)
	}

	negInf := NewFloat16(float32(math.Inf(-1)))
	if got := negInf.Float32(); !math.IsInf(float64(got), -1) {
		t.Errorf("expected -Inf, got %v", got)
	}

	nan := NewFloat16(float32(math.NaN()))
	if got := nan.Float32(); !math.IsNaN(float64(got)) {
		t.Errorf("expected NaN, got %v", got)
	}
}

func TestBFloat16RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input float32
	}{
		{"zero", 0},
		{"one", 1.0},
		{"negative one", -1.0},
		{"two", 2.0},
		{"large", 3.3895314e38},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bf := NewBFloat16(tt.input)
			if got := bf.Float32(); got != tt.input {
				t.Errorf("BFloat16 roundtrip(%v) = %v", tt.input, got)
			}
		})
	}
}

func TestDataTypeString(t *testing.T) {
	tests := []struct {
		dt   DataType
		want string
	}{
		{TypeFloat32, "float32"},
		{TypeFloat64, "float64"},
		{TypeInt64, "int64"},
		{TypeString, "string"},
		{TypeBool, "bool"},
		{TypeBFloat16, "bfloat16"},
		{DataType(99), "undefined"},
	}
	for _, tt := range tests {
		if got := tt.dt.String(); got != tt.want {
			t.Errorf("DataType(%d).String() = %q, want %q", tt.dt, got, tt.want)
		}
	}
}

func TestTensorElementCount(t *testing.T) {
	tr := Tensor{Shape: []int64{2, 3, 4}}
	if got := tr.ElementCount(); got != 24 {
		t.Errorf("ElementCount() = %d, want 24", got)
	}

	scalar := Tensor{}
	if got := scalar.ElementCount(); got != 1 {
		t.Errorf("scalar ElementCount() = %d, want 1", got)
	}
}
