// Package session drives one recording: the capture loop, utterance
// segmentation, the continuous WAV sink, and the transcription pipeline
// for a single start/stop cycle.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lecternhq/lectern/backend/daemon/internal/capture"
	apperrors "github.com/lecternhq/lectern/backend/daemon/internal/errors"
	"github.com/lecternhq/lectern/backend/daemon/internal/metrics"
	"github.com/lecternhq/lectern/backend/daemon/internal/pipeline"
	"github.com/lecternhq/lectern/backend/daemon/internal/protocol"
	"github.com/lecternhq/lectern/backend/daemon/internal/segment"
	"github.com/lecternhq/lectern/backend/daemon/internal/vad"
	"github.com/lecternhq/lectern/backend/daemon/internal/wavio"
	"github.com/lecternhq/lectern/backend/daemon/pkg/pb"
)

// Config carries the per-session paths, stream geometry, and shutdown
// bounds.
type Config struct {
	AudioPath      string
	TranscriptPath string
	SampleRate     int
	Segmenter      segment.Params
	DrainTimeout   time.Duration
	WorkerJoin     time.Duration
}

// Session owns one recording. Construct with New, launch with Start; the
// capture loop runs until Stop, context cancellation, or a device error,
// then finalizes exactly once and closes Done.
type Session struct {
	id     string
	cfg    Config
	src    capture.Source
	scorer vad.Scorer
	sink   *wavio.Writer
	pipe   *pipeline.Pipeline
	seg    *segment.Segmenter
	emit   func(protocol.Event)
	mx     *metrics.Metrics

	cancel  context.CancelFunc
	pauseCh chan bool
	doneCh  chan struct{}

	mu          sync.Mutex
	startedAt   time.Time
	paused      bool
	pausedAt    time.Time
	pausedTotal time.Duration

	// Capture-goroutine state, untouched elsewhere.
	queued     bool
	sinkFailed bool
}

// New opens the WAV sink and wires the segmenter and pipeline. The frame
// source is the caller's: on error the caller still owns closing it. emit
// receives every event the session produces; mx may be nil.
func New(cfg Config, src capture.Source, scorer vad.Scorer, tr pipeline.Transcriber, emit func(protocol.Event), mx *metrics.Metrics) (*Session, error) {
	if emit == nil {
		emit = func(protocol.Event) {}
	}
	if mx == nil {
		mx = metrics.New(nil)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.AudioPath), 0o755); err != nil {
		return nil, apperrors.Wrapf(err, pb.ErrorCode_AUDIO_SINK_OPEN_FAILED,
			"create recording directory for %s", cfg.AudioPath)
	}
	sink, err := wavio.Create(cfg.AudioPath, cfg.SampleRate)
	if err != nil {
		return nil, apperrors.Wrapf(err, pb.ErrorCode_AUDIO_SINK_OPEN_FAILED,
			"open recording %s", cfg.AudioPath)
	}

	s := &Session{
		id:      uuid.NewString(),
		cfg:     cfg,
		src:     src,
		scorer:  scorer,
		sink:    sink,
		emit:    emit,
		mx:      mx,
		pauseCh: make(chan bool, 1),
		doneCh:  make(chan struct{}),
	}
	s.pipe = pipeline.New(tr, cfg.SampleRate, func(seq int, text string) {
		s.emit(protocol.Event{Event: protocol.EventPartial, Text: text, Seq: seq})
		s.mx.QueueDepth.Set(float64(s.pipe.Len()))
	})
	s.seg = segment.New(cfg.Segmenter, func(samples []int16) {
		s.queued = true
		s.pipe.Enqueue(samples)
		s.mx.QueueDepth.Set(float64(s.pipe.Len()))
	})
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// StartedAt reports when Start was called.
func (s *Session) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt
}

// AudioPath is the WAV recording destination.
func (s *Session) AudioPath() string { return s.cfg.AudioPath }

// TranscriptPath is the transcript destination.
func (s *Session) TranscriptPath() string { return s.cfg.TranscriptPath }

// Transcript returns the text accumulated so far.
func (s *Session) Transcript() string { return s.pipe.Transcript() }

// Done is closed after the session finalizes. The owner watches it to
// release the active-session slot.
func (s *Session) Done() <-chan struct{} { return s.doneCh }

// Start launches the pipeline worker and the capture loop. ctx bounds
// both: cancelling it stops the session the same way Stop does. The
// pipeline keeps ctx rather than the loop's derived context so draining
// after Stop still transcribes the queued utterances.
func (s *Session) Start(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.mu.Lock()
	s.startedAt = time.Now()
	s.mu.Unlock()

	// Fresh model state per session; stale recurrent state bleeds
	// probabilities across recordings.
	if err := s.scorer.Reset(loopCtx); err != nil {
		slog.Debug("vad reset at session start failed", slog.Any("error", err))
	}

	s.pipe.Start(ctx)
	go s.run(loopCtx)

	slog.Info("session started",
		slog.String("id", s.id),
		slog.String("audio", s.cfg.AudioPath),
		slog.String("transcript", s.cfg.TranscriptPath))
}

// Pause suspends capture. The loop applies it between frames: the device
// stream stops, the segmenter and scorer reset, and elapsed accounting
// freezes. No-op when already paused.
func (s *Session) Pause() { s.requestPause(true) }

// Resume restarts capture after Pause. No-op when not paused.
func (s *Session) Resume() { s.requestPause(false) }

func (s *Session) requestPause(want bool) {
	select {
	case s.pauseCh <- want:
	case <-s.doneCh:
	}
}

// Stop cancels the capture loop and blocks until the session finalizes.
// The wait is bounded: drain and worker-join inside finalize carry their
// own timeouts, and a grace period on top covers a wedged device read.
func (s *Session) Stop() {
	s.cancel()
	grace := s.cfg.DrainTimeout + s.cfg.WorkerJoin + 3*time.Second
	select {
	case <-s.doneCh:
	case <-time.After(grace):
		slog.Warn("session did not finalize within grace period",
			slog.String("id", s.id),
			slog.Duration("grace", grace))
	}
}

// Elapsed reports wall time since Start minus time spent paused.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.startedAt.IsZero() {
		return 0
	}
	total := time.Since(s.startedAt) - s.pausedTotal
	if s.paused {
		total -= time.Since(s.pausedAt)
	}
	if total < 0 {
		total = 0
	}
	return total
}

func (s *Session) isPaused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// run is the capture loop: read a frame, record it, score it, push it
// through the segmenter. Pause and cancellation are observed between
// frames, never mid-frame.
func (s *Session) run(ctx context.Context) {
	defer close(s.doneCh)
	defer s.finalize()

	var lastTick time.Duration

	for {
		select {
		case <-ctx.Done():
			return
		case want := <-s.pauseCh:
			s.applyPause(ctx, want)
			continue
		default:
		}

		if s.isPaused() {
			select {
			case <-ctx.Done():
				return
			case want := <-s.pauseCh:
				s.applyPause(ctx, want)
			}
			continue
		}

		frame, err := s.src.Read()
		if err != nil {
			slog.Error("audio read failed, stopping session",
				slog.String("id", s.id),
				slog.Any("error", err))
			s.emit(protocol.ErrorEvent(fmt.Sprintf("audio read failed: %v", err)))
			return
		}

		s.mx.FramesCaptured.Inc()

		// Raw audio is recorded regardless of speech state. A failing
		// sink truncates the recording but never stops transcription.
		if err := s.sink.WriteFrame(frame); err != nil && !s.sinkFailed {
			s.sinkFailed = true
			slog.Warn("recording write failed, WAV will be truncated",
				slog.String("path", s.cfg.AudioPath),
				slog.Any("error", err))
		}

		prob, err := s.scorer.Score(ctx, frame, s.cfg.SampleRate)
		if err != nil {
			// Treat the frame as silence and keep capturing.
			prob = 0
		}

		s.queued = false
		if action := s.seg.Push(frame, prob); action == segment.ActionFinalized {
			if s.queued {
				s.mx.UtterancesFinalized.Inc()
			} else {
				s.mx.UtterancesDiscarded.Inc()
			}
		}

		if el := s.Elapsed(); el-lastTick >= time.Second {
			lastTick = el
			s.emit(protocol.Event{Event: protocol.EventProgress, Secs: float64(int(el.Seconds()))})
		}
	}
}

func (s *Session) applyPause(ctx context.Context, want bool) {
	s.mu.Lock()
	changed := s.paused != want
	if changed {
		s.paused = want
		if want {
			s.pausedAt = time.Now()
		} else {
			s.pausedTotal += time.Since(s.pausedAt)
			s.pausedAt = time.Time{}
		}
	}
	s.mu.Unlock()
	if !changed {
		return
	}

	if want {
		if err := s.src.Pause(); err != nil {
			slog.Warn("pause audio source", slog.Any("error", err))
		}
		// Speech spanning the pause boundary is dropped with the model
		// state rather than stitched across the gap.
		s.seg.Reset()
		if err := s.scorer.Reset(ctx); err != nil {
			slog.Debug("vad reset on pause failed", slog.Any("error", err))
		}
		s.emit(protocol.Event{Event: protocol.EventPaused})
		slog.Info("session paused", slog.String("id", s.id))
	} else {
		if err := s.src.Resume(); err != nil {
			slog.Warn("resume audio source", slog.Any("error", err))
		}
		s.emit(protocol.Event{Event: protocol.EventResumed})
		slog.Info("session resumed", slog.String("id", s.id))
	}
}

// finalize runs exactly once, on every loop exit path: flush the open
// utterance, release the device and recording, drain the transcription
// queue within its bound, persist the transcript, and emit done.
func (s *Session) finalize() {
	s.seg.Flush()
	if s.queued {
		s.mx.UtterancesFinalized.Inc()
		s.queued = false
	}

	if err := s.src.Close(); err != nil {
		slog.Warn("close audio source", slog.Any("error", err))
	}
	if err := s.sink.Close(); err != nil {
		slog.Warn("close recording", slog.String("path", s.cfg.AudioPath), slog.Any("error", err))
	}

	if err := s.pipe.Drain(s.cfg.DrainTimeout); err != nil {
		slog.Warn("transcription queue drain timed out, keeping partial transcript",
			slog.Any("error", err))
	}
	if !s.pipe.Wait(s.cfg.WorkerJoin) {
		slog.Warn("transcription worker did not exit within grace period")
	}
	s.mx.QueueDepth.Set(0)

	text := s.pipe.Transcript()
	if err := writeTranscript(s.cfg.TranscriptPath, text); err != nil {
		slog.Warn("failed to write transcript",
			slog.String("path", s.cfg.TranscriptPath),
			slog.Any("error", err))
	}

	s.emit(protocol.Event{
		Event: protocol.EventDone,
		Out:   s.cfg.TranscriptPath,
		Text:  text,
		Secs:  s.Elapsed().Seconds(),
	})
	slog.Info("session finalized",
		slog.String("id", s.id),
		slog.Duration("elapsed", s.Elapsed()),
		slog.Int("transcript_bytes", len(text)))
}

func writeTranscript(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create transcript directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}
