package summarize

// Prompt text is part of the observable product: the UI renders whatever the
// model returns, so the instructions about sentence counts, bullet format,
// and the Action Items section are load-bearing. Change with care.

const defaultPrompt = "You are an assistant that summarizes meeting transcripts.\n" +
	"Produce a concise summary in 5-7 sentences, grounding every sentence in the transcript text.\n" +
	"For summary, it should be a clean looking paragraph, no weird punctuation or line breaks.\n" +
	"After the summary, include an 'Action Items:' section only when the transcript clearly supports them.\n" +
	"Limit the section to at most five tasks, each introduced with a bullet point that starts with '-' and stays on its own line.\n" +
	"Only report a task if it is directly supported by something that happened in the transcript or summary; if no real follow-up is required, write 'Action Items: none.'\n" +
	"When you do list actions, mention the topic or person from the transcript that justifies that task so it is clearly traceable.\n"

const expansionSuffix = "\nIf the paragraph still has fewer than five sentences, rewrite it so the summary paragraph contains 5-7 sentences, " +
	"adding more detail from the transcript while keeping the Action Items section as instructed."

// chunkPromptFormat summarizes one positional slice of a longer transcript.
// The part tag keeps partial summaries traceable back to their source chunk.
const chunkPromptFormat = "You are an assistant that summarizes one part of a longer meeting transcript.\n" +
	"This is part %d of %d. Summarize only what this part covers, in 3-5 sentences, grounding every sentence in the text.\n" +
	"Write a clean paragraph with no weird punctuation or line breaks.\n" +
	"Do not include an 'Action Items:' section; that is added after all parts are combined.\n"

const combinePrompt = "You are an assistant that combines partial summaries of one meeting into a single summary.\n" +
	"The partial summaries below cover consecutive parts of the same meeting, in order.\n" +
	"Produce a concise summary in 5-7 sentences, grounding every sentence in the partial summaries.\n" +
	"For summary, it should be a clean looking paragraph, no weird punctuation or line breaks.\n" +
	"After the summary, include an 'Action Items:' section only when the partial summaries clearly support them.\n" +
	"Limit the section to at most five tasks, each introduced with a bullet point that starts with '-' and stays on its own line.\n" +
	"Only report a task if it is directly supported by the partial summaries; if no real follow-up is required, write 'Action Items: none.'\n"

const followupPrompt = "You are an assistant that drafts a warm, professional follow-up email after a student support session.\n" +
	"Use the summary below as the only source of truth.\n" +
	"Write in a warm, supportive tone.\n" +
	"If a student name is provided, use it exactly once in the greeting and do not invent any other names.\n" +
	"If no student name is supplied, do not introduce or refer to any proper names; stay name-agnostic and use a generic greeting (e.g., 'Hello').\n" +
	"Include a Subject line, then a blank line, then the email body.\n" +
	"If the summary includes action items, include them under an 'Action items:' section.\n" +
	"Do not add extra notes, disclaimers, or meta commentary.\n" +
	"Keep it concise and clear.\n"

const (
	transcriptLabel = "Transcript"
	partialsLabel   = "Partial summaries"
)

// buildPrompt assembles the full generation prompt. The trailing "Summary:"
// line cues a base completion model into answer position.
func buildPrompt(instructions, label, text string) string {
	return instructions + "\n\n" + label + ":\n" + text + "\n\nSummary:\n"
}
