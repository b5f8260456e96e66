// Package metrics exposes the daemon's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every instrument the daemon records. Construct with New;
// a nil registerer yields working but unregistered instruments, so code
// paths record unconditionally whether or not the endpoint is enabled.
type Metrics struct {
	// Capture and segmentation
	FramesCaptured      prometheus.Counter
	UtterancesFinalized prometheus.Counter
	UtterancesDiscarded prometheus.Counter
	QueueDepth          prometheus.Gauge

	// Transcription
	TranscriptionsOK      prometheus.Counter
	TranscriptionsFailed  prometheus.Counter
	TranscriptionDuration prometheus.Histogram

	// Summarization
	SummaryPasses prometheus.Counter
	SummaryDeltas prometheus.Counter

	// Control surfaces
	WSClients prometheus.Gauge
	Commands  *prometheus.CounterVec
}

// New builds the instrument set, registering on reg when non-nil.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		FramesCaptured: f.NewCounter(prometheus.CounterOpts{
			Name: "lecternd_frames_captured_total",
			Help: "Audio frames read from the input device",
		}),
		UtterancesFinalized: f.NewCounter(prometheus.CounterOpts{
			Name: "lecternd_utterances_finalized_total",
			Help: "Utterances closed by the segmenter and queued for transcription",
		}),
		UtterancesDiscarded: f.NewCounter(prometheus.CounterOpts{
			Name: "lecternd_utterances_discarded_total",
			Help: "Utterances dropped for falling below the minimum duration",
		}),
		QueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: "lecternd_transcription_queue_depth",
			Help: "Utterances waiting for the transcription worker",
		}),
		TranscriptionsOK: f.NewCounter(prometheus.CounterOpts{
			Name: "lecternd_transcriptions_ok_total",
			Help: "Utterance transcriptions that produced text",
		}),
		TranscriptionsFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "lecternd_transcriptions_failed_total",
			Help: "Utterance transcriptions that errored and were skipped",
		}),
		TranscriptionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "lecternd_transcription_duration_seconds",
			Help:    "Wall time per utterance transcription",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~2 minutes
		}),
		SummaryPasses: f.NewCounter(prometheus.CounterOpts{
			Name: "lecternd_summary_passes_total",
			Help: "Combine passes executed across all summarize requests",
		}),
		SummaryDeltas: f.NewCounter(prometheus.CounterOpts{
			Name: "lecternd_summary_deltas_total",
			Help: "Streaming summary deltas emitted to clients",
		}),
		WSClients: f.NewGauge(prometheus.GaugeOpts{
			Name: "lecternd_websocket_clients",
			Help: "Currently connected websocket clients",
		}),
		Commands: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lecternd_commands_total",
			Help: "Control commands received, by command name",
		}, []string{"cmd"}),
	}
}

// RecordTranscription records one worker attempt and its wall time.
func (m *Metrics) RecordTranscription(ok bool, seconds float64) {
	if ok {
		m.TranscriptionsOK.Inc()
	} else {
		m.TranscriptionsFailed.Inc()
	}
	m.TranscriptionDuration.Observe(seconds)
}

// RecordCommand counts one received command by name.
func (m *Metrics) RecordCommand(cmd string) {
	m.Commands.WithLabelValues(cmd).Inc()
}
