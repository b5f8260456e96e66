package summarize

import "strings"

// Budget converts a model context window into a word allowance for one call.
// Token counts are estimates; the safety margin absorbs the slop so a call
// never lands close enough to n_ctx for the runner to truncate input.
type Budget struct {
	// NCtx is the model context window in tokens.
	NCtx int
	// ReservedTokens is held back for the generated output.
	ReservedTokens int
	// SafetyMarginTokens absorbs tokenizer estimation error.
	SafetyMarginTokens int
	// TokensPerWord is the estimated token cost of one input word.
	TokensPerWord float64
	// FloorWords is the minimum allowance returned even when the window
	// is small; below this, chunking degenerates into noise.
	FloorWords int
}

// promptCharsPerToken is the estimation rate for prompt overhead. Four
// characters per token tracks English text closely enough for budgeting.
const promptCharsPerToken = 4

// MaxInputWords returns the largest input word count that fits one call
// alongside the given instruction prompt.
func (b Budget) MaxInputWords(prompt string) int {
	promptTokens := (len(prompt) + promptCharsPerToken - 1) / promptCharsPerToken
	avail := b.NCtx - b.ReservedTokens - promptTokens - b.SafetyMarginTokens
	words := b.FloorWords
	if avail > 0 && b.TokensPerWord > 0 {
		words = int(float64(avail) / b.TokensPerWord)
	}
	if words < b.FloorWords {
		return b.FloorWords
	}
	return words
}

// splitWords slices words into contiguous chunks of at most chunkWords,
// preserving order. No semantic splitting: plain word-count windows.
func splitWords(words []string, chunkWords int) []string {
	if chunkWords < 1 {
		chunkWords = 1
	}
	chunks := make([]string, 0, (len(words)+chunkWords-1)/chunkWords)
	for start := 0; start < len(words); start += chunkWords {
		end := start + chunkWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}
