package summarize

import (
	"strings"
	"testing"
)

func TestMaxInputWords(t *testing.T) {
	b := Budget{
		NCtx:               2048,
		ReservedTokens:     512,
		SafetyMarginTokens: 64,
		TokensPerWord:      1.3,
		FloorWords:         256,
	}

	// 400 prompt chars estimate to 100 tokens, leaving
	// 2048-512-100-64 = 1372 tokens, or 1055 words at 1.3 tokens/word.
	prompt := strings.Repeat("x", 400)
	if got, want := b.MaxInputWords(prompt), 1055; got != want {
		t.Errorf("MaxInputWords() = %d, want %d", got, want)
	}
}

func TestMaxInputWordsFloor(t *testing.T) {
	b := Budget{
		NCtx:               512,
		ReservedTokens:     512,
		SafetyMarginTokens: 64,
		TokensPerWord:      1.3,
		FloorWords:         256,
	}

	if got := b.MaxInputWords("prompt"); got != 256 {
		t.Errorf("MaxInputWords() below window = %d, want floor 256", got)
	}
}

func TestSplitWords(t *testing.T) {
	words := strings.Fields("a b c d e f g h i j")

	chunks := splitWords(words, 4)
	if len(chunks) != 3 {
		t.Fatalf("len(chunks) = %d, want 3", len(chunks))
	}
	want := []string{"a b c d", "e f g h", "i j"}
	for i, c := range chunks {
		if c != want[i] {
			t.Errorf("chunks[%d] = %q, want %q", i, c, want[i])
		}
	}
}

func TestSplitWordsBudgetNeverExceeded(t *testing.T) {
	words := strings.Fields(strings.Repeat("word ", 103))
	for _, chunk := range splitWords(words, 10) {
		if n := len(strings.Fields(chunk)); n > 10 {
			t.Errorf("chunk word count = %d, want <= 10", n)
		}
	}
}

func TestSplitWordsReassembly(t *testing.T) {
	text := "one two three four five six seven"
	chunks := splitWords(strings.Fields(text), 3)

	if got := strings.Join(chunks, " "); got != text {
		t.Errorf("reassembled chunks = %q, want %q", got, text)
	}
}

func TestSplitWordsEmpty(t *testing.T) {
	if chunks := splitWords(nil, 5); len(chunks) != 0 {
		t.Errorf("splitWords(nil) = %v, want empty", chunks)
	}
}
