// Package protocol implements the newline-delimited JSON control surface:
// commands in on stdin, events out on stdout.
package protocol

// Command names accepted on the input stream
const (
	CmdStart         = "start"
	CmdStop          = "stop"
	CmdPause         = "pause"
	CmdResume        = "resume"
	CmdShutdown      = "shutdown"
	CmdSummarize     = "summarize"
	CmdFollowupEmail = "followup_email"
	CmdLoadModel     = "load_model"
	CmdTranscribe    = "transcribe"
	CmdDevices       = "devices"
)

// Event names emitted on the output stream
const (
	EventReady         = "ready"
	EventStarted       = "started"
	EventPaused        = "paused"
	EventResumed       = "resumed"
	EventProgress      = "progress"
	EventPartial       = "partial"
	EventDone          = "done"
	EventSummaryStart  = "summary_start"
	EventSummaryDelta  = "summary_delta"
	EventLoaded        = "loaded"
	EventError         = "error"
	EventFollowupDone  = "followup_done"
	EventFollowupError = "followup_error"
	EventDevices       = "devices"
)

// Model kinds for the load_model command
const (
	ModelKindASR = "asr"
	ModelKindLLM = "llm"
)

// Line limits for the input scanner
const (
	// Initial scanner buffer; grows on demand up to MaxLineBytes.
	initialLineBytes = 64 * 1024

	// Inline summarize text can carry a whole transcript on one line.
	MaxLineBytes = 8 * 1024 * 1024
)
