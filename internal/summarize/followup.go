package summarize

import (
	"context"
	"regexp"
	"strings"

	"github.com/lecternhq/lectern/backend/daemon/internal/llm"
)

// followupNotesRe strips a trailing "Notes:" or "Additional notes:" block.
// Models bolt these on despite the prompt forbidding meta commentary.
var followupNotesRe = regexp.MustCompile(`(?is)\n\s*(?:notes?|additional notes?)\s*:\s*.*$`)

// FollowupParams describes one follow-up email request. Summary is
// required; everything else is optional.
type FollowupParams struct {
	Summary      string
	StudentName  string
	Instructions string
	// MaxTokens falls back to the configured default when < 1.
	MaxTokens int
	// Temperature is clamped to [0, 1] before the call.
	Temperature float64
}

// FollowupEmail drafts a follow-up email from a session summary. The
// result is cleaned of trailing notes blocks and surrounding whitespace.
func (e *Engine) FollowupEmail(ctx context.Context, p FollowupParams) (string, error) {
	prompt := followupPrompt
	if p.StudentName != "" {
		prompt += "\nStudent name: " + p.StudentName + "\n"
	}
	if instr := strings.TrimSpace(p.Instructions); instr != "" {
		prompt += "\nAdditional instructions:\n" + instr + "\n"
	}

	maxTokens := p.MaxTokens
	if maxTokens < 1 {
		maxTokens = e.cfg.FollowupMaxTokens
	}
	out, err := e.gen.Generate(ctx, llm.Request{
		Prompt:      prompt + "\nSummary:\n" + p.Summary + "\n\nEmail:\n",
		MaxTokens:   maxTokens,
		Temperature: llm.ClampTemperature(p.Temperature),
	}, nil)
	if err != nil {
		return "", err
	}
	return CleanFollowupEmail(out), nil
}

// CleanFollowupEmail trims the generated email and removes any trailing
// notes block.
func CleanFollowupEmail(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = followupNotesRe.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}
