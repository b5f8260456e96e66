// Package llm defines the text-generation capability the daemon consumes.
//
// The daemon never talks to a model directly; everything that produces prose
// (summaries, follow-up emails) goes through a Generator. The production
// implementation lives in internal/runner and streams from the model runner
// process; tests substitute scripted generators.
package llm

import "context"

// Request carries one generation call. Prompt is the fully assembled prompt
// text, including any transcript or summary payload.
type Request struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Generator produces text for a request. When onDelta is non-nil the
// implementation streams: each new fragment is passed to onDelta as it
// arrives, in order, from the goroutine running Generate. The returned string
// is always the complete generated text with retransmitted overlap collapsed,
// so callers may rely on it whether or not they streamed.
type Generator interface {
	Generate(ctx context.Context, req Request, onDelta func(string)) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, req Request, onDelta func(string)) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request, onDelta func(string)) (string, error) {
	return f(ctx, req, onDelta)
}

// ClampTemperature bounds a sampling temperature to the range the runner
// accepts. Callers pass through user-supplied values, which arrive as
// arbitrary floats.
func ClampTemperature(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
