package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	apperrors "github.com/lecternhq/lectern/backend/daemon/internal/errors"
	"github.com/lecternhq/lectern/backend/daemon/internal/protocol"
	"github.com/lecternhq/lectern/backend/daemon/internal/segment"
	"github.com/lecternhq/lectern/backend/daemon/internal/wavio"
	"github.com/lecternhq/lectern/backend/daemon/pkg/pb"
)

const frameLen = 4

// scriptedSource plays a fixed frame script, then silence at a gentle
// cadence. With err set, Read fails once the script is exhausted.
type scriptedSource struct {
	mu      sync.Mutex
	frames  [][]int16
	err     error
	pauses  int
	resumes int
	closes  int
}

func (s *scriptedSource) Read() ([]int16, error) {
	s.mu.Lock()
	if len(s.frames) > 0 {
		f := s.frames[0]
		s.frames = s.frames[1:]
		s.mu.Unlock()
		return f, nil
	}
	err := s.err
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	time.Sleep(time.Millisecond)
	return make([]int16, frameLen), nil
}

func (s *scriptedSource) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pauses++
	return nil
}

func (s *scriptedSource) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumes++
	return nil
}

func (s *scriptedSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return nil
}

func (s *scriptedSource) counts() (pauses, resumes, closes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pauses, s.resumes, s.closes
}

// thresholdScorer scores any frame whose first sample is positive as
// certain speech.
type thresholdScorer struct {
	mu     sync.Mutex
	resets int
}

func (f *thresholdScorer) Score(_ context.Context, samples []int16, _ int) (float64, error) {
	if len(samples) > 0 && samples[0] > 0 {
		return 1, nil
	}
	return 0, nil
}

func (f *thresholdScorer) Reset(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	return nil
}

func (f *thresholdScorer) resetCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resets
}

type staticTranscriber struct{ text string }

func (s *staticTranscriber) Transcribe(context.Context, []int16, int) (string, error) {
	return s.text, nil
}

type eventLog struct {
	mu     sync.Mutex
	events []protocol.Event
}

func (l *eventLog) add(ev protocol.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) count(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, ev := range l.events {
		if ev.Event == name {
			n++
		}
	}
	return n
}

func (l *eventLog) find(name string) (protocol.Event, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, ev := range l.events {
		if ev.Event == name {
			return ev, true
		}
	}
	return protocol.Event{}, false
}

func (l *eventLog) wait(t *testing.T, name string) protocol.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if ev, ok := l.find(name); ok {
			return ev
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("event %q not observed within 2s", name)
	return protocol.Event{}
}

func speech(n int) [][]int16 {
	frames := make([][]int16, n)
	for i := range frames {
		f := make([]int16, frameLen)
		for j := range f {
			f[j] = 1000
		}
		frames[i] = f
	}
	return frames
}

func silence(n int) [][]int16 {
	frames := make([][]int16, n)
	for i := range frames {
		frames[i] = make([]int16, frameLen)
	}
	return frames
}

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		AudioPath:      filepath.Join(dir, "audio.wav"),
		TranscriptPath: filepath.Join(dir, "transcript.txt"),
		SampleRate:     16000,
		Segmenter: segment.Params{
			Threshold:           0.5,
			PrePadFrames:        1,
			PostPadFrames:       1,
			MinSilenceFrames:    2,
			MinSpeechFrames:     2,
			MinUtteranceSamples: 1,
		},
		DrainTimeout: 2 * time.Second,
		WorkerJoin:   time.Second,
	}
}

func TestSessionRecordsAndTranscribes(t *testing.T) {
	src := &scriptedSource{frames: append(speech(4), silence(3)...)}
	scorer := &thresholdScorer{}
	log := &eventLog{}

	s, err := New(testConfig(t), src, scorer, &staticTranscriber{text: "first utterance"}, log.add, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s.Start(context.Background())

	partial := log.wait(t, protocol.EventPartial)
	if partial.Text != "first utterance" || partial.Seq != 1 {
		t.Errorf("partial = %+v, want text %q seq 1", partial, "first utterance")
	}

	s.Stop()
	done := log.wait(t, protocol.EventDone)
	if done.Out != s.TranscriptPath() {
		t.Errorf("done.Out = %q, want transcript path %q", done.Out, s.TranscriptPath())
	}
	if done.Text != "first utterance" {
		t.Errorf("done.Text = %q, want %q", done.Text, "first utterance")
	}

	written, err := os.ReadFile(s.TranscriptPath())
	if err != nil {
		t.Fatalf("transcript not written: %v", err)
	}
	if string(written) != "first utterance" {
		t.Errorf("transcript file = %q, want %q", written, "first utterance")
	}

	wav, err := os.ReadFile(s.AudioPath())
	if err != nil {
		t.Fatalf("recording not written: %v", err)
	}
	samples, rate, err := wavio.Decode(wav)
	if err != nil {
		t.Fatalf("recording does not decode: %v", err)
	}
	if rate != 16000 {
		t.Errorf("recording rate = %d, want 16000", rate)
	}
	if len(samples) < 7*frameLen {
		t.Errorf("recording has %d samples, want at least the %d scripted", len(samples), 7*frameLen)
	}

	if _, _, closes := src.counts(); closes != 1 {
		t.Errorf("source closed %d times, want 1", closes)
	}
	select {
	case <-s.Done():
	default:
		t.Error("Done() not closed after Stop")
	}
}

func TestSessionPauseResume(t *testing.T) {
	src := &scriptedSource{}
	scorer := &thresholdScorer{}
	log := &eventLog{}

	s, err := New(testConfig(t), src, scorer, &staticTranscriber{}, log.add, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s.Start(context.Background())

	startResets := scorer.resetCount()
	if startResets < 1 {
		t.Errorf("scorer resets at start = %d, want at least 1", startResets)
	}

	s.Pause()
	log.wait(t, protocol.EventPaused)
	if pauses, _, _ := src.counts(); pauses != 1 {
		t.Errorf("source pauses = %d, want 1", pauses)
	}
	if got := scorer.resetCount(); got != startResets+1 {
		t.Errorf("scorer resets after pause = %d, want %d", got, startResets+1)
	}

	// Pausing a paused session changes nothing.
	s.Pause()
	time.Sleep(20 * time.Millisecond)
	if pauses, _, _ := src.counts(); pauses != 1 {
		t.Errorf("source pauses after duplicate Pause = %d, want 1", pauses)
	}
	if n := log.count(protocol.EventPaused); n != 1 {
		t.Errorf("paused events = %d, want 1", n)
	}

	s.Resume()
	log.wait(t, protocol.EventResumed)
	if _, resumes, _ := src.counts(); resumes != 1 {
		t.Errorf("source resumes = %d, want 1", resumes)
	}

	s.Stop()
	log.wait(t, protocol.EventDone)
}

func TestPausedTimeExcludedFromElapsed(t *testing.T) {
	src := &scriptedSource{}
	log := &eventLog{}

	s, err := New(testConfig(t), src, &thresholdScorer{}, &staticTranscriber{}, log.add, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	start := time.Now()
	s.Start(context.Background())

	time.Sleep(30 * time.Millisecond)
	s.Pause()
	log.wait(t, protocol.EventPaused)

	frozen := s.Elapsed()
	time.Sleep(80 * time.Millisecond)
	if growth := s.Elapsed() - frozen; growth > 20*time.Millisecond {
		t.Errorf("elapsed grew %v while paused, want frozen", growth)
	}

	s.Resume()
	log.wait(t, protocol.EventResumed)

	wall := time.Since(start)
	if el := s.Elapsed(); el > wall-50*time.Millisecond {
		t.Errorf("Elapsed() = %v with wall %v, want paused time excluded", el, wall)
	}

	s.Stop()
}

func TestReadErrorFinalizesSession(t *testing.T) {
	// Speech never followed by silence: the open utterance must be
	// flushed by the failure path, not lost.
	src := &scriptedSource{frames: speech(4), err: errors.New("device unplugged")}
	log := &eventLog{}

	s, err := New(testConfig(t), src, &thresholdScorer{}, &staticTranscriber{text: "kept words"}, log.add, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s.Start(context.Background())

	errEv := log.wait(t, protocol.EventError)
	if want := "audio read failed: device unplugged"; errEv.Msg != want {
		t.Errorf("error msg = %q, want %q", errEv.Msg, want)
	}

	done := log.wait(t, protocol.EventDone)
	if done.Text != "kept words" {
		t.Errorf("done.Text = %q, want flushed utterance %q", done.Text, "kept words")
	}
	if _, err := os.Stat(s.TranscriptPath()); err != nil {
		t.Errorf("transcript not written after read error: %v", err)
	}
}

func TestNewFailsWhenSinkUnopenable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(t)
	cfg.AudioPath = filepath.Join(blocker, "audio.wav") // parent is a file

	_, err := New(cfg, &scriptedSource{}, &thresholdScorer{}, &staticTranscriber{}, nil, nil)
	if err == nil {
		t.Fatal("New() = nil error with unopenable sink path")
	}
	if !apperrors.IsCode(err, pb.ErrorCode_AUDIO_SINK_OPEN_FAILED) {
		t.Errorf("error = %v, want AUDIO_SINK_OPEN_FAILED", err)
	}
}

func TestStopIdempotent(t *testing.T) {
	src := &scriptedSource{}
	log := &eventLog{}

	s, err := New(testConfig(t), src, &thresholdScorer{}, &staticTranscriber{}, log.add, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s.Start(context.Background())

	s.Stop()
	s.Stop() // second stop returns immediately

	if n := log.count(protocol.EventDone); n != 1 {
		t.Errorf("done events = %d, want exactly 1", n)
	}

	// Control calls after the loop exited must not hang.
	s.Pause()
	s.Resume()
}
