// Package summarize turns transcripts into word-budgeted summaries.
//
// Short transcripts go through one direct model call. Longer ones are
// reduced hierarchically: word-count chunks are summarized independently,
// the partial summaries are concatenated, and combine passes re-summarize
// the concatenation until it fits a single call. Every call is bounded by
// the context-window budget so the runner never truncates input silently.
package summarize

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/lecternhq/lectern/backend/daemon/internal/errors"
	"github.com/lecternhq/lectern/backend/daemon/internal/llm"
	"github.com/lecternhq/lectern/backend/daemon/pkg/pb"
)

// ShortTranscriptSummary is returned verbatim when the input is below the
// minimum word floor. No model call is made on that path.
const ShortTranscriptSummary = "Not enough content to summarize.\nAction Items: none."

// Config carries the summarization policy. Zero values are filled from
// defaults by NewEngine.
type Config struct {
	Budget             Budget
	ChunkWords         int
	SummaryMaxTokens   int
	SummaryTemperature float64
	FollowupMaxTokens  int
	MinWords           int
	MinSentences       int
	MaxCombinePasses   int
}

func (c Config) withDefaults() Config {
	if c.Budget.NCtx == 0 {
		c.Budget.NCtx = 2048
	}
	if c.Budget.ReservedTokens == 0 {
		c.Budget.ReservedTokens = 512
	}
	if c.Budget.SafetyMarginTokens == 0 {
		c.Budget.SafetyMarginTokens = 64
	}
	if c.Budget.TokensPerWord == 0 {
		c.Budget.TokensPerWord = 1.3
	}
	if c.Budget.FloorWords == 0 {
		c.Budget.FloorWords = 256
	}
	if c.ChunkWords == 0 {
		c.ChunkWords = 800
	}
	if c.SummaryMaxTokens == 0 {
		c.SummaryMaxTokens = 512
	}
	if c.SummaryTemperature == 0 {
		c.SummaryTemperature = 0.2
	}
	if c.FollowupMaxTokens == 0 {
		c.FollowupMaxTokens = 320
	}
	if c.MinWords == 0 {
		c.MinWords = 20
	}
	if c.MinSentences == 0 {
		c.MinSentences = 5
	}
	if c.MaxCombinePasses == 0 {
		c.MaxCombinePasses = 6
	}
	return c
}

// Options adjusts one Summarize call. Callbacks may be nil; OnDelta, when
// set, receives reconciled streaming deltas for the final summary only.
type Options struct {
	// ChunkWords overrides the configured chunk size when positive. It is
	// still capped by the context-window budget.
	ChunkWords int
	OnProgress func(msg string)
	OnDelta    func(delta string)
}

// Result describes one completed summarization.
type Result struct {
	Summary string
	// Chunks is the number of first-pass chunks; 1 for a direct call.
	Chunks int
	// Passes counts combine rounds; 0 for a direct call.
	Passes int
	// Skipped is set when the minimum-content policy answered without
	// invoking the model.
	Skipped bool
}

// Engine reduces transcripts through a Generator. Safe for sequential use;
// callers serialize access to the underlying model themselves.
type Engine struct {
	gen llm.Generator
	cfg Config
}

func NewEngine(gen llm.Generator, cfg Config) *Engine {
	return &Engine{gen: gen, cfg: cfg.withDefaults()}
}

// stage records the input of the last generation round so a regeneration
// pass can rerun it with the expanded prompt.
type stage struct {
	prompt string
	label  string
	text   string
}

// Summarize reduces text to a summary. Model errors abort the call; the
// caller decides how to surface them.
func (e *Engine) Summarize(ctx context.Context, text string, opts Options) (Result, error) {
	words := strings.Fields(text)
	if len(words) < e.cfg.MinWords {
		e.progress(opts, fmt.Sprintf("transcript too short (%d words); skipping summary", len(words)))
		return Result{Summary: ShortTranscriptSummary, Chunks: 0, Skipped: true}, nil
	}

	chunkWords := e.cfg.ChunkWords
	if opts.ChunkWords > 0 {
		chunkWords = opts.ChunkWords
	}
	if budget := e.cfg.Budget.MaxInputWords(defaultPrompt); chunkWords > budget {
		chunkWords = budget
	}

	var (
		res     Result
		summary string
		last    stage
		err     error
	)
	if len(words) <= chunkWords {
		e.progress(opts, "summarizing transcript")
		last = stage{prompt: defaultPrompt, label: transcriptLabel, text: text}
		summary, err = e.generate(ctx, last, e.cfg.SummaryMaxTokens, opts.OnDelta)
		if err != nil {
			return Result{}, err
		}
		res.Chunks = 1
	} else {
		summary, last, res, err = e.reduce(ctx, words, chunkWords, opts)
		if err != nil {
			return Result{}, err
		}
	}

	if CountSentences(summary) < e.cfg.MinSentences {
		e.progress(opts, "regenerating summary to reach 5-7 sentences")
		expanded := stage{prompt: last.prompt + expansionSuffix, label: last.label, text: last.text}
		regen, regenErr := e.generate(ctx, expanded, e.cfg.SummaryMaxTokens, nil)
		if regenErr != nil {
			e.progress(opts, fmt.Sprintf("summary extension failed: %v", regenErr))
		} else if regen != "" {
			summary = regen
		}
	}

	res.Summary = CleanActionItems(summary)
	return res, nil
}

// reduce performs the hierarchical path: chunk the transcript, summarize
// each chunk, then combine. When the concatenated partials still exceed the
// combine budget they are re-chunked and reduced again, up to
// MaxCombinePasses rounds.
func (e *Engine) reduce(ctx context.Context, words []string, chunkWords int, opts Options) (string, stage, Result, error) {
	var res Result
	chunks := splitWords(words, chunkWords)
	res.Chunks = len(chunks)

	partials := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		e.progress(opts, fmt.Sprintf("summarizing chunk %d/%d", i+1, len(chunks)))
		part, err := e.generate(ctx, stage{
			prompt: fmt.Sprintf(chunkPromptFormat, i+1, len(chunks)),
			label:  transcriptLabel,
			text:   chunk,
		}, e.cfg.SummaryMaxTokens, nil)
		if err != nil {
			return "", stage{}, res, err
		}
		partials = append(partials, part)
	}

	combined := strings.Join(partials, "\n\n")
	budget := e.cfg.Budget.MaxInputWords(combinePrompt)
	for pass := 1; ; pass++ {
		if pass > e.cfg.MaxCombinePasses {
			return "", stage{}, res, apperrors.Newf(pb.ErrorCode_LLM_CONTEXT_TOO_LONG,
				"summary did not fit the context budget after %d combine passes", e.cfg.MaxCombinePasses)
		}
		if countWords(combined) <= budget {
			e.progress(opts, "combining chunk summaries")
			last := stage{prompt: combinePrompt, label: partialsLabel, text: combined}
			summary, err := e.generate(ctx, last, e.cfg.SummaryMaxTokens, opts.OnDelta)
			if err != nil {
				return "", stage{}, res, err
			}
			res.Passes = pass
			return summary, last, res, nil
		}

		e.progress(opts, fmt.Sprintf("combine pass %d: reducing %d words", pass, countWords(combined)))
		rechunked := splitWords(strings.Fields(combined), budget)
		next := make([]string, 0, len(rechunked))
		for i, chunk := range rechunked {
			part, err := e.generate(ctx, stage{
				prompt: fmt.Sprintf(chunkPromptFormat, i+1, len(rechunked)),
				label:  partialsLabel,
				text:   chunk,
			}, e.cfg.SummaryMaxTokens, nil)
			if err != nil {
				return "", stage{}, res, err
			}
			next = append(next, part)
		}
		combined = strings.Join(next, "\n\n")
	}
}

// generate runs one model call. When onDelta is set, raw stream fragments
// are reconciled through an Accumulator so the sink sees each character
// exactly once.
func (e *Engine) generate(ctx context.Context, s stage, maxTokens int, onDelta func(string)) (string, error) {
	req := llm.Request{
		Prompt:      buildPrompt(s.prompt, s.label, s.text),
		MaxTokens:   maxTokens,
		Temperature: e.cfg.SummaryTemperature,
	}
	if onDelta == nil {
		out, err := e.gen.Generate(ctx, req, nil)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(out), nil
	}
	acc := NewAccumulator()
	out, err := e.gen.Generate(ctx, req, func(fragment string) {
		if delta := acc.Add(fragment); delta != "" {
			onDelta(delta)
		}
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (e *Engine) progress(opts Options, msg string) {
	if opts.OnProgress != nil {
		opts.OnProgress(msg)
	}
}

func countWords(text string) int {
	return len(strings.Fields(text))
}
