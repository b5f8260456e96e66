package summarize

import (
	"context"
	"strings"
	"testing"

	"github.com/lecternhq/lectern/backend/daemon/internal/llm"
)

func TestFollowupEmailPromptAssembly(t *testing.T) {
	gen := &scriptedGenerator{fn: func(int, llm.Request, func(string)) (string, error) {
		return "Subject: Great session\n\nHi Alex, nice work today.", nil
	}}
	e := NewEngine(gen, Config{})

	out, err := e.FollowupEmail(context.Background(), FollowupParams{
		Summary:      "We reviewed fractions.",
		StudentName:  "Alex",
		Instructions: "Mention the homework.",
		MaxTokens:    64,
		Temperature:  0.7,
	})
	if err != nil {
		t.Fatalf("FollowupEmail() error = %v", err)
	}
	if out != "Subject: Great session\n\nHi Alex, nice work today." {
		t.Errorf("FollowupEmail() = %q", out)
	}

	req := gen.calls[0]
	if !strings.Contains(req.Prompt, "\nStudent name: Alex\n") {
		t.Error("prompt missing student name line")
	}
	if !strings.Contains(req.Prompt, "Additional instructions:\nMention the homework.") {
		t.Error("prompt missing instructions block")
	}
	if !strings.Contains(req.Prompt, "Summary:\nWe reviewed fractions.") {
		t.Error("prompt missing summary payload")
	}
	if !strings.HasSuffix(req.Prompt, "Email:\n") {
		t.Error("prompt does not end with the email cue")
	}
	if req.MaxTokens != 64 {
		t.Errorf("MaxTokens = %d, want 64", req.MaxTokens)
	}
}

func TestFollowupEmailOmitsEmptyOptionalLines(t *testing.T) {
	gen := &scriptedGenerator{fn: func(int, llm.Request, func(string)) (string, error) {
		return "Subject: Hello\n\nBody.", nil
	}}
	e := NewEngine(gen, Config{})

	if _, err := e.FollowupEmail(context.Background(), FollowupParams{Summary: "S."}); err != nil {
		t.Fatalf("FollowupEmail() error = %v", err)
	}
	req := gen.calls[0]
	if strings.Contains(req.Prompt, "Student name:") {
		t.Error("prompt has a student-name line without a name")
	}
	if strings.Contains(req.Prompt, "Additional instructions:") {
		t.Error("prompt has an instructions block without instructions")
	}
}

func TestFollowupEmailDefaults(t *testing.T) {
	gen := &scriptedGenerator{fn: func(int, llm.Request, func(string)) (string, error) {
		return "Subject: Hello\n\nBody.", nil
	}}
	e := NewEngine(gen, Config{FollowupMaxTokens: 320})

	if _, err := e.FollowupEmail(context.Background(), FollowupParams{Summary: "S.", Temperature: 2.0}); err != nil {
		t.Fatalf("FollowupEmail() error = %v", err)
	}
	req := gen.calls[0]
	if req.MaxTokens != 320 {
		t.Errorf("MaxTokens = %d, want configured default 320", req.MaxTokens)
	}
	if req.Temperature != 1 {
		t.Errorf("Temperature = %v, want clamped 1", req.Temperature)
	}
}

func TestCleanFollowupEmail(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "trims whitespace",
			in:   "  Subject: Hi\n\nBody.  \n",
			want: "Subject: Hi\n\nBody.",
		},
		{
			name: "strips trailing notes block",
			in:   "Subject: Hi\n\nBody.\nNotes: generated by a model",
			want: "Subject: Hi\n\nBody.",
		},
		{
			name: "strips additional notes block",
			in:   "Subject: Hi\n\nBody.\n Additional Notes: remember to edit\nmore lines",
			want: "Subject: Hi\n\nBody.",
		},
		{
			name: "keeps clean email",
			in:   "Subject: Hi\n\nBody with no extras.",
			want: "Subject: Hi\n\nBody with no extras.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanFollowupEmail(tt.in); got != tt.want {
				t.Errorf("CleanFollowupEmail() = %q, want %q", got, tt.want)
			}
		})
	}
}
