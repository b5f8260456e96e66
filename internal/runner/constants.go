package runner

import "time"

// Model kinds accepted by LoadModel. The runner hosts one model per kind
// and loading a new path displaces the old one.
const (
	KindASR = "asr"
	KindLLM = "llm"
)

const (
	// DefaultKeepaliveTime is how often to ping an idle connection.
	DefaultKeepaliveTime = 10 * time.Second
	// DefaultKeepaliveTimeout is how long to wait for a ping ack.
	DefaultKeepaliveTimeout = 3 * time.Second
	// DefaultHealthCheckInterval is how often connectivity is polled.
	DefaultHealthCheckInterval = 5 * time.Second
	// DefaultScoreTimeout caps one DetectSpeech call. The capture loop
	// waits on this path, so it must stay well under real time.
	DefaultScoreTimeout = 200 * time.Millisecond
	// DefaultTranscribeTimeout caps one Transcribe call.
	DefaultTranscribeTimeout = 60 * time.Second
)
