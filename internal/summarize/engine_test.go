package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	apperrors "github.com/lecternhq/lectern/backend/daemon/internal/errors"
	"github.com/lecternhq/lectern/backend/daemon/internal/llm"
	"github.com/lecternhq/lectern/backend/daemon/pkg/pb"
)

// scriptedGenerator records every request and answers via fn.
type scriptedGenerator struct {
	calls []llm.Request
	fn    func(call int, req llm.Request, onDelta func(string)) (string, error)
}

func (g *scriptedGenerator) Generate(_ context.Context, req llm.Request, onDelta func(string)) (string, error) {
	g.calls = append(g.calls, req)
	return g.fn(len(g.calls)-1, req, onDelta)
}

const fiveSentences = "First. Second. Third. Fourth. Fifth."

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(parts, " ")
}

func TestSummarizeShortCircuit(t *testing.T) {
	gen := &scriptedGenerator{fn: func(int, llm.Request, func(string)) (string, error) {
		t.Fatal("model invoked for short transcript")
		return "", nil
	}}
	e := NewEngine(gen, Config{MinWords: 20})

	var progress []string
	res, err := e.Summarize(context.Background(), words(10), Options{
		OnProgress: func(msg string) { progress = append(progress, msg) },
	})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if !res.Skipped {
		t.Error("Skipped = false, want true")
	}
	if res.Summary != ShortTranscriptSummary {
		t.Errorf("Summary = %q, want %q", res.Summary, ShortTranscriptSummary)
	}
	if len(progress) != 1 || !strings.Contains(progress[0], "transcript too short (10 words)") {
		t.Errorf("progress = %v, want short-transcript notice", progress)
	}
	if len(gen.calls) != 0 {
		t.Errorf("generator calls = %d, want 0", len(gen.calls))
	}
}

func TestSummarizeDirect(t *testing.T) {
	text := words(30)
	gen := &scriptedGenerator{fn: func(call int, req llm.Request, onDelta func(string)) (string, error) {
		// Stream cumulative fragments; the engine must reconcile them.
		for _, frag := range []string{"First.", "First. Second.", "First. Second. Third. Fourth. Fifth."} {
			onDelta(frag)
		}
		return fiveSentences, nil
	}}
	e := NewEngine(gen, Config{MinWords: 20, ChunkWords: 800})

	var deltas []string
	res, err := e.Summarize(context.Background(), text, Options{
		OnDelta: func(d string) { deltas = append(deltas, d) },
	})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if len(gen.calls) != 1 {
		t.Fatalf("generator calls = %d, want 1", len(gen.calls))
	}
	req := gen.calls[0]
	if !strings.Contains(req.Prompt, "Transcript:\n"+text) {
		t.Error("prompt does not embed the transcript")
	}
	if !strings.HasSuffix(req.Prompt, "Summary:\n") {
		t.Errorf("prompt does not end with the summary cue: %q", req.Prompt[len(req.Prompt)-20:])
	}
	if req.MaxTokens != 512 {
		t.Errorf("MaxTokens = %d, want 512", req.MaxTokens)
	}
	if req.Temperature != 0.2 {
		t.Errorf("Temperature = %v, want 0.2", req.Temperature)
	}
	if res.Summary != fiveSentences {
		t.Errorf("Summary = %q, want %q", res.Summary, fiveSentences)
	}
	if res.Chunks != 1 || res.Passes != 0 {
		t.Errorf("Chunks, Passes = %d, %d, want 1, 0", res.Chunks, res.Passes)
	}
	wantDeltas := []string{"First.", " Second.", " Third. Fourth. Fifth."}
	if len(deltas) != len(wantDeltas) {
		t.Fatalf("deltas = %q, want %q", deltas, wantDeltas)
	}
	for i := range deltas {
		if deltas[i] != wantDeltas[i] {
			t.Errorf("deltas[%d] = %q, want %q", i, deltas[i], wantDeltas[i])
		}
	}
}

func TestSummarizeHierarchical(t *testing.T) {
	text := words(12)
	gen := &scriptedGenerator{fn: func(call int, req llm.Request, onDelta func(string)) (string, error) {
		if strings.HasPrefix(req.Prompt, combinePrompt) {
			if onDelta != nil {
				onDelta(fiveSentences)
			}
			return fiveSentences, nil
		}
		return fmt.Sprintf("Part %d.", call+1), nil
	}}
	e := NewEngine(gen, Config{MinWords: 5})

	var progress []string
	res, err := e.Summarize(context.Background(), text, Options{
		ChunkWords: 5,
		OnProgress: func(msg string) { progress = append(progress, msg) },
	})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if res.Chunks != 3 {
		t.Errorf("Chunks = %d, want 3", res.Chunks)
	}
	if res.Passes != 1 {
		t.Errorf("Passes = %d, want 1", res.Passes)
	}
	// Three chunk calls plus one combine call.
	if len(gen.calls) != 4 {
		t.Fatalf("generator calls = %d, want 4", len(gen.calls))
	}
	if !strings.Contains(gen.calls[0].Prompt, "part 1 of 3") {
		t.Errorf("first chunk prompt lacks position tag: %q", gen.calls[0].Prompt)
	}
	if !strings.Contains(gen.calls[2].Prompt, "part 3 of 3") {
		t.Errorf("last chunk prompt lacks position tag: %q", gen.calls[2].Prompt)
	}
	combine := gen.calls[3]
	if !strings.HasPrefix(combine.Prompt, combinePrompt) {
		t.Error("final call does not use the combine prompt")
	}
	for i := 1; i <= 3; i++ {
		if !strings.Contains(combine.Prompt, fmt.Sprintf("Part %d.", i)) {
			t.Errorf("combine prompt missing chunk summary %d", i)
		}
	}
	var sawChunkProgress bool
	for _, msg := range progress {
		if strings.Contains(msg, "summarizing chunk 2/3") {
			sawChunkProgress = true
		}
	}
	if !sawChunkProgress {
		t.Errorf("progress = %v, want chunk progress messages", progress)
	}
}

func TestSummarizeCombinePassBound(t *testing.T) {
	// Every call answers with more words than the combine budget can take,
	// so reduction can never converge and must fail loudly.
	big := words(1200)
	gen := &scriptedGenerator{fn: func(int, llm.Request, func(string)) (string, error) {
		return big, nil
	}}
	e := NewEngine(gen, Config{MinWords: 5, MaxCombinePasses: 2})

	_, err := e.Summarize(context.Background(), words(12), Options{ChunkWords: 5})
	if err == nil {
		t.Fatal("Summarize() error = nil, want combine-pass failure")
	}
	if !apperrors.IsCode(err, pb.ErrorCode_LLM_CONTEXT_TOO_LONG) {
		t.Errorf("error code = %v, want LLM_CONTEXT_TOO_LONG", err)
	}
}

func TestSummarizeRegeneratesShortSummary(t *testing.T) {
	text := words(30)
	gen := &scriptedGenerator{fn: func(call int, req llm.Request, onDelta func(string)) (string, error) {
		if call == 0 {
			return "Too short.", nil
		}
		return fiveSentences, nil
	}}
	e := NewEngine(gen, Config{MinWords: 20})

	res, err := e.Summarize(context.Background(), text, Options{})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if len(gen.calls) != 2 {
		t.Fatalf("generator calls = %d, want 2", len(gen.calls))
	}
	if !strings.Contains(gen.calls[1].Prompt, "rewrite it so the summary paragraph contains 5-7 sentences") {
		t.Error("regeneration call does not use the expanded prompt")
	}
	if res.Summary != fiveSentences {
		t.Errorf("Summary = %q, want regenerated text %q", res.Summary, fiveSentences)
	}
}

func TestSummarizeKeepsOriginalWhenRegenerationFails(t *testing.T) {
	gen := &scriptedGenerator{fn: func(call int, req llm.Request, onDelta func(string)) (string, error) {
		if call == 0 {
			return "Too short.", nil
		}
		return "", errors.New("model crashed")
	}}
	e := NewEngine(gen, Config{MinWords: 20})

	var progress []string
	res, err := e.Summarize(context.Background(), words(30), Options{
		OnProgress: func(msg string) { progress = append(progress, msg) },
	})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if res.Summary != "Too short." {
		t.Errorf("Summary = %q, want original despite failed regeneration", res.Summary)
	}
	var sawFailure bool
	for _, msg := range progress {
		if strings.Contains(msg, "summary extension failed") {
			sawFailure = true
		}
	}
	if !sawFailure {
		t.Errorf("progress = %v, want extension-failure notice", progress)
	}
}

func TestSummarizeCleansActionItems(t *testing.T) {
	gen := &scriptedGenerator{fn: func(int, llm.Request, func(string)) (string, error) {
		return fiveSentences + "\nAction Items: none.", nil
	}}
	e := NewEngine(gen, Config{MinWords: 20})

	res, err := e.Summarize(context.Background(), words(30), Options{})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if res.Summary != fiveSentences {
		t.Errorf("Summary = %q, want action-items section stripped", res.Summary)
	}
}

func TestSummarizeModelError(t *testing.T) {
	gen := &scriptedGenerator{fn: func(int, llm.Request, func(string)) (string, error) {
		return "", errors.New("generation failed")
	}}
	e := NewEngine(gen, Config{MinWords: 20})

	if _, err := e.Summarize(context.Background(), words(30), Options{}); err == nil {
		t.Fatal("Summarize() error = nil, want model error")
	}
}
