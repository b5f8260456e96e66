package llm

import (
	"context"
	"testing"
)

func TestClampTemperature(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"negative", -0.5, 0},
		{"zero", 0, 0},
		{"in range", 0.7, 0.7},
		{"upper bound", 1, 1},
		{"above range", 2.5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampTemperature(tt.in); got != tt.want {
				t.Errorf("ClampTemperature(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGeneratorFunc(t *testing.T) {
	var gotReq Request
	gen := GeneratorFunc(func(_ context.Context, req Request, onDelta func(string)) (string, error) {
		gotReq = req
		if onDelta != nil {
			onDelta("hello")
		}
		return "hello", nil
	})

	var deltas []string
	out, err := gen.Generate(context.Background(), Request{Prompt: "p", MaxTokens: 8, Temperature: 0.2}, func(d string) {
		deltas = append(deltas, d)
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out != "hello" {
		t.Errorf("Generate() = %q, want %q", out, "hello")
	}
	if gotReq.Prompt != "p" || gotReq.MaxTokens != 8 {
		t.Errorf("request passed through = %+v", gotReq)
	}
	if len(deltas) != 1 || deltas[0] != "hello" {
		t.Errorf("deltas = %v, want [hello]", deltas)
	}
}
