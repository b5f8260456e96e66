package summarize

import (
	"regexp"
	"strings"
)

// ActionItemsMarker introduces the task section the summary prompt asks for.
const ActionItemsMarker = "Action Items:"

// sentenceRe splits prose into sentences on terminal punctuation. Trailing
// runs of punctuation stay attached to the preceding sentence.
var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]*`)

// noneClaimRe matches a section whose entire content is a "none" claim.
var noneClaimRe = regexp.MustCompile(`(?i)^\s*none[.!]?\s*$`)

// actionVerbs are stems that mark a task as actionable. Matched
// case-insensitively against each bullet entry.
var actionVerbs = []string{
	"follow", "send", "email", "schedule", "book", "review", "prepare",
	"practice", "complete", "finish", "submit", "read", "write", "draft",
	"share", "update", "check", "confirm", "revise", "study", "sign",
	"register", "upload", "bring", "contact", "reach out",
}

// dateRefRe matches explicit time references that make a task actionable
// even without a recognized verb stem.
var dateRefRe = regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday|` +
	`tomorrow|today|tonight|next (week|month|session|class)|by \d|\d{1,2}(:\d{2})?\s?(am|pm)|` +
	`january|february|march|april|may|june|july|august|september|october|november|december)\b`)

// summaryBody returns the prose before the action-items section.
func summaryBody(text string) string {
	if idx := strings.Index(text, ActionItemsMarker); idx != -1 {
		return text[:idx]
	}
	return text
}

// CountSentences counts sentences in the summary paragraph, ignoring any
// action-items section. Used to decide whether a regeneration pass is
// needed to reach the prompt's 5-7 sentence target.
func CountSentences(text string) int {
	body := strings.TrimSpace(summaryBody(text))
	if body == "" {
		return 0
	}
	n := 0
	for _, m := range sentenceRe.FindAllString(body, -1) {
		if strings.TrimSpace(m) != "" {
			n++
		}
	}
	return n
}

// CleanActionItems drops an action-items section that carries no real
// tasks: either the model explicitly claimed "none", or no entry matches
// an action verb or a date reference. The summary paragraph itself is
// never touched.
func CleanActionItems(text string) string {
	idx := strings.Index(text, ActionItemsMarker)
	if idx == -1 {
		return text
	}
	section := text[idx+len(ActionItemsMarker):]
	if noneClaimRe.MatchString(section) || !hasActionableEntry(section) {
		return strings.TrimRight(text[:idx], " \t\n")
	}
	return text
}

// hasActionableEntry reports whether any entry in the section looks like a
// real task. Bullet lines are checked individually; a section without
// bullets is checked as one entry.
func hasActionableEntry(section string) bool {
	entries := bulletEntries(section)
	if len(entries) == 0 {
		entry := strings.TrimSpace(section)
		if entry == "" {
			return false
		}
		entries = []string{entry}
	}
	for _, entry := range entries {
		if isActionable(entry) {
			return true
		}
	}
	return false
}

func bulletEntries(section string) []string {
	var entries []string
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "-"); ok {
			entries = append(entries, strings.TrimSpace(rest))
		} else if rest, ok := strings.CutPrefix(line, "*"); ok {
			entries = append(entries, strings.TrimSpace(rest))
		}
	}
	return entries
}

func isActionable(entry string) bool {
	if entry == "" {
		return false
	}
	lower := strings.ToLower(entry)
	for _, verb := range actionVerbs {
		if strings.Contains(lower, verb) {
			return true
		}
	}
	return dateRefRe.MatchString(entry)
}
