// Package daemon dispatches control commands to recording sessions, the
// transcription registry and the summarization engine. Commands arrive
// from stdin, the WebSocket server and the drop-directory watcher through
// one channel; a single goroutine owns every state transition, so command
// handling needs no locking beyond the model mutex.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/lecternhq/lectern/backend/daemon/internal/capture"
	"github.com/lecternhq/lectern/backend/daemon/internal/config"
	"github.com/lecternhq/lectern/backend/daemon/internal/history"
	"github.com/lecternhq/lectern/backend/daemon/internal/metrics"
	"github.com/lecternhq/lectern/backend/daemon/internal/pipeline"
	"github.com/lecternhq/lectern/backend/daemon/internal/protocol"
	"github.com/lecternhq/lectern/backend/daemon/internal/segment"
	"github.com/lecternhq/lectern/backend/daemon/internal/server"
	"github.com/lecternhq/lectern/backend/daemon/internal/session"
	"github.com/lecternhq/lectern/backend/daemon/internal/summarize"
	"github.com/lecternhq/lectern/backend/daemon/internal/syncx"
	"github.com/lecternhq/lectern/backend/daemon/internal/trace"
	"github.com/lecternhq/lectern/backend/daemon/internal/vad"
	"github.com/lecternhq/lectern/backend/daemon/internal/wavio"
)

// commandBacklog bounds commands queued from auxiliary sources while a
// handler is busy. Stdin applies backpressure instead; Submit drops.
const commandBacklog = 64

// ModelLoader swaps model weights on the runner.
type ModelLoader interface {
	LoadModel(ctx context.Context, path, kind string) (string, error)
}

// Deps carries the daemon's collaborators. Config, Out, Scorer,
// Transcriber, Engine and Loader are required; the rest default to
// disabled or to the real implementation.
type Deps struct {
	Config      *config.Config
	Out         *protocol.Writer
	Scorer      vad.Scorer
	Transcriber pipeline.Transcriber
	Engine      *summarize.Engine
	Loader      ModelLoader

	Hub     *server.Hub    // event mirror, may be nil
	Metrics *metrics.Metrics
	History *history.Store // session archive, may be nil

	// Devices and Open default to the portaudio implementations.
	Devices func() ([]capture.Device, error)
	Open    func(capture.Options) (capture.Source, error)
}

// Daemon is the command dispatcher.
type Daemon struct {
	cfg     *config.Config
	out     *protocol.Writer
	hub     *server.Hub
	mx      *metrics.Metrics
	hist    *history.Store
	scorer  vad.Scorer
	tr      pipeline.Transcriber
	engine  *summarize.Engine
	loader  ModelLoader
	devices func() ([]capture.Device, error)
	open    func(capture.Options) (capture.Source, error)

	cmds   chan protocol.Command
	active syncx.Slot[*session.Session]

	// modelMu serializes generation, model loads and file transcription:
	// at most one heavyweight model call runs process-wide. Session
	// pipelines stay outside it so live capture keeps transcribing while
	// a summary is generated.
	modelMu sync.Mutex
}

// New validates deps and builds the dispatcher.
func New(deps Deps) (*Daemon, error) {
	switch {
	case deps.Config == nil:
		return nil, fmt.Errorf("daemon: config is required")
	case deps.Out == nil:
		return nil, fmt.Errorf("daemon: output writer is required")
	case deps.Scorer == nil:
		return nil, fmt.Errorf("daemon: vad scorer is required")
	case deps.Transcriber == nil:
		return nil, fmt.Errorf("daemon: transcriber is required")
	case deps.Engine == nil:
		return nil, fmt.Errorf("daemon: summarize engine is required")
	case deps.Loader == nil:
		return nil, fmt.Errorf("daemon: model loader is required")
	}

	mx := deps.Metrics
	if mx == nil {
		mx = metrics.New(nil)
	}
	devices := deps.Devices
	if devices == nil {
		devices = capture.List
	}
	open := deps.Open
	if open == nil {
		open = func(o capture.Options) (capture.Source, error) { return capture.Open(o) }
	}

	return &Daemon{
		cfg:     deps.Config,
		out:     deps.Out,
		hub:     deps.Hub,
		mx:      mx,
		hist:    deps.History,
		scorer:  deps.Scorer,
		tr:      &meteredTranscriber{tr: deps.Transcriber, mx: mx},
		engine:  deps.Engine,
		loader:  deps.Loader,
		devices: devices,
		open:    open,
		cmds:    make(chan protocol.Command, commandBacklog),
	}, nil
}

// Submit queues a command from an auxiliary source. Never blocks: when the
// dispatcher is saturated the command is dropped with an error event rather
// than stalling a WebSocket pump or the watcher.
func (d *Daemon) Submit(cmd protocol.Command) {
	select {
	case d.cmds <- cmd:
	default:
		slog.Warn("command queue full, dropping command", "cmd", cmd.Cmd)
		d.emit(protocol.ErrorEvent(fmt.Sprintf("command queue full, dropped %s", cmd.Cmd)))
	}
}

// Run reads commands from in until shutdown. It emits ready once the
// dispatcher is accepting commands and always stops the active session
// before returning, whether shutdown came as a command, as end of input
// or through ctx.
func (d *Daemon) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.emit(protocol.Event{Event: protocol.EventReady})
	slog.Info("daemon ready")

	go d.readLoop(ctx, in)

	for {
		select {
		case <-ctx.Done():
			slog.Info("shutdown signal received")
			d.stopActive()
			return nil
		case cmd := <-d.cmds:
			if d.dispatch(ctx, cmd) {
				d.stopActive()
				return nil
			}
		}
	}
}

// readLoop decodes stdin line by line. Malformed lines become error events
// and reading continues; end of input shuts the daemon down the same way a
// shutdown command does.
func (d *Daemon) readLoop(ctx context.Context, in io.Reader) {
	r := protocol.NewReader(in)
	for {
		cmd, err := r.Next()
		if err != nil {
			var perr *protocol.ParseError
			switch {
			case errors.As(err, &perr):
				d.emit(protocol.Event{Event: protocol.EventError, Msg: perr.Error(), Raw: perr.Raw})
				continue
			case errors.Is(err, io.EOF):
				slog.Info("input stream closed")
			default:
				slog.Error("input stream failed", "error", err)
			}
			select {
			case d.cmds <- protocol.Command{Cmd: protocol.CmdShutdown}:
			case <-ctx.Done():
			}
			return
		}

		select {
		case d.cmds <- cmd:
		case <-ctx.Done():
			return
		}
	}
}

var knownCmds = map[string]bool{
	protocol.CmdStart:         true,
	protocol.CmdStop:          true,
	protocol.CmdPause:         true,
	protocol.CmdResume:        true,
	protocol.CmdShutdown:      true,
	protocol.CmdSummarize:     true,
	protocol.CmdFollowupEmail: true,
	protocol.CmdLoadModel:     true,
	protocol.CmdTranscribe:    true,
	protocol.CmdDevices:       true,
}

// dispatch runs one command to completion and reports whether it requested
// shutdown.
func (d *Daemon) dispatch(ctx context.Context, cmd protocol.Command) bool {
	name := cmd.Cmd
	if !knownCmds[name] {
		// Arbitrary command names would blow up label cardinality.
		name = "unknown"
	}
	d.mx.RecordCommand(name)

	ctx, span := trace.StartSpan(ctx, "handle_"+name)
	defer span.End()
	trace.Logger(ctx).Debug("command received", "cmd", cmd.Cmd)

	switch cmd.Cmd {
	case protocol.CmdStart:
		d.handleStart(cmd)
	case protocol.CmdStop:
		if !d.stopActive() {
			d.emit(protocol.ErrorEvent("no active session"))
		}
	case protocol.CmdPause:
		d.active.With(func(s *session.Session) { s.Pause() })
	case protocol.CmdResume:
		d.active.With(func(s *session.Session) { s.Resume() })
	case protocol.CmdShutdown:
		trace.Logger(ctx).Info("shutdown requested")
		return true
	case protocol.CmdSummarize:
		d.handleSummarize(ctx, cmd)
	case protocol.CmdFollowupEmail:
		d.handleFollowup(ctx, cmd)
	case protocol.CmdLoadModel:
		d.handleLoadModel(ctx, cmd)
	case protocol.CmdTranscribe:
		d.handleTranscribe(ctx, cmd)
	case protocol.CmdDevices:
		d.handleDevices()
	default:
		d.emit(protocol.ErrorEvent(fmt.Sprintf("unknown cmd: %s", cmd.Cmd)))
	}
	return false
}

func (d *Daemon) handleStart(cmd protocol.Command) {
	if cmd.Out == "" {
		d.emit(protocol.ErrorEvent("missing out path"))
		return
	}
	if d.active.Occupied() {
		d.emit(protocol.ErrorEvent("session already running"))
		return
	}

	transcriptOut := cmd.TranscriptOut
	if transcriptOut == "" {
		transcriptOut = filepath.Join(filepath.Dir(cmd.Out), "transcript.txt")
	}

	src, err := d.open(capture.Options{
		SampleRate:      d.cfg.Audio.SampleRate,
		FrameSamples:    d.cfg.Audio.FrameSamples,
		DeviceIndex:     cmd.DeviceIndex,
		DeviceName:      d.cfg.Audio.Device,
		System:          cmd.System || d.cfg.Audio.Loopback,
		ExcludedDevices: d.cfg.Audio.ExcludedDevices,
	})
	if err != nil {
		d.emit(protocol.ErrorEvent(fmt.Sprintf("failed to open input stream: %v", err)))
		return
	}

	seg := d.cfg.Segmenter
	sess, err := session.New(session.Config{
		AudioPath:      cmd.Out,
		TranscriptPath: transcriptOut,
		SampleRate:     d.cfg.Audio.SampleRate,
		Segmenter: segment.DeriveParams(
			d.cfg.Audio.SampleRate, d.cfg.Audio.FrameSamples,
			seg.Threshold, seg.MinSilenceMs, seg.MinSpeechMs, seg.PrePadMs, seg.PostPadMs),
		DrainTimeout: d.cfg.Pipeline.DrainTimeout(),
		WorkerJoin:   d.cfg.Pipeline.WorkerJoin(),
	}, src, d.scorer, d.tr, d.emit, d.mx)
	if err != nil {
		_ = src.Close()
		d.emit(protocol.ErrorEvent(fmt.Sprintf("failed to start session: %v", err)))
		return
	}

	if !d.active.Put(sess) {
		sess.Stop()
		d.emit(protocol.ErrorEvent("session already running"))
		return
	}

	// The session must outlive dispatch cancellation long enough to drain
	// its transcription queue; Stop bounds the wait instead of the context.
	sess.Start(context.Background())
	d.emit(protocol.Event{Event: protocol.EventStarted, Out: cmd.Out, TranscriptOut: transcriptOut})
	go d.reap(sess)
}

// reap waits for the session to finalize, releases the single-session slot
// and archives the result.
func (d *Daemon) reap(s *session.Session) {
	<-s.Done()
	d.active.Clear(s, func(a, b *session.Session) bool { return a == b })

	if d.hist == nil {
		return
	}
	rec := history.Record{
		ID:             s.ID(),
		StartedAt:      s.StartedAt(),
		EndedAt:        time.Now(),
		AudioPath:      s.AudioPath(),
		TranscriptPath: s.TranscriptPath(),
		Transcript:     s.Transcript(),
		DurationSecs:   s.Elapsed().Seconds(),
	}
	if err := d.hist.Add(rec); err != nil {
		slog.Warn("failed to archive session", "session", s.ID(), "error", err)
	}
}

// stopActive stops the running session, blocking until it finalizes.
// Reports whether there was one.
func (d *Daemon) stopActive() bool {
	s, ok := d.active.Peek()
	if !ok {
		return false
	}
	s.Stop()
	return true
}

func (d *Daemon) handleSummarize(ctx context.Context, cmd protocol.Command) {
	var text string
	switch {
	case cmd.File != "":
		data, err := os.ReadFile(cmd.File)
		if err != nil {
			d.emit(protocol.Event{Event: protocol.EventError,
				Msg: fmt.Sprintf("transcript not found: %s", cmd.File), Out: cmd.Out, Context: cmd.Context})
			return
		}
		text = string(data)
	case cmd.Text != "":
		text = cmd.Text
	default:
		d.emit(protocol.ErrorEvent("missing file/text in summarize command"))
		return
	}

	d.modelMu.Lock()
	defer d.modelMu.Unlock()

	d.emit(protocol.Event{Event: protocol.EventSummaryStart, Out: cmd.Out, Context: cmd.Context})

	start := time.Now()
	res, err := d.engine.Summarize(ctx, text, summarize.Options{
		ChunkWords: cmd.ChunkWords,
		OnProgress: func(msg string) {
			d.emit(protocol.Event{Event: protocol.EventProgress, Msg: msg, Context: cmd.Context})
		},
		OnDelta: func(delta string) {
			d.mx.SummaryDeltas.Inc()
			d.emit(protocol.Event{Event: protocol.EventSummaryDelta, Text: delta, Out: cmd.Out, Context: cmd.Context})
		},
	})
	if err != nil {
		d.emit(protocol.Event{Event: protocol.EventError,
			Msg: fmt.Sprintf("summarization error: %v", err), Out: cmd.Out, Context: cmd.Context})
		return
	}
	d.mx.SummaryPasses.Add(float64(res.Passes))

	if cmd.Out != "" {
		if err := writeOut(cmd.Out, res.Summary); err != nil {
			d.emit(protocol.Event{Event: protocol.EventError,
				Msg: fmt.Sprintf("failed to write summary: %v", err), Out: cmd.Out, Context: cmd.Context})
			return
		}
	}

	if cmd.File != "" && d.hist != nil {
		if _, err := d.hist.AttachSummary(cmd.File, res.Summary); err != nil {
			slog.Warn("failed to attach summary to history", "file", cmd.File, "error", err)
		}
	}

	d.emit(protocol.Event{Event: protocol.EventDone,
		Out: cmd.Out, Text: res.Summary, Secs: time.Since(start).Seconds(), Context: cmd.Context})
}

func (d *Daemon) handleFollowup(ctx context.Context, cmd protocol.Command) {
	summary := cmd.Summary
	if summary == "" {
		summary = cmd.Text
	}
	if summary == "" {
		d.emit(protocol.Event{Event: protocol.EventFollowupError,
			Msg: "missing summary in followup_email command", ID: cmd.ID})
		return
	}

	temperature := d.cfg.Summarize.FollowupTemperature
	if cmd.Temperature != nil {
		temperature = *cmd.Temperature
	}
	maxTokens := 0 // engine default
	if cmd.MaxTokens != nil && *cmd.MaxTokens > 0 {
		maxTokens = *cmd.MaxTokens
	}

	d.modelMu.Lock()
	defer d.modelMu.Unlock()

	start := time.Now()
	email, err := d.engine.FollowupEmail(ctx, summarize.FollowupParams{
		Summary:      summary,
		StudentName:  cmd.StudentName,
		Instructions: cmd.Instructions,
		MaxTokens:    maxTokens,
		Temperature:  temperature,
	})
	if err != nil {
		d.emit(protocol.Event{Event: protocol.EventFollowupError,
			Msg: fmt.Sprintf("follow-up error: %v", err), ID: cmd.ID})
		return
	}
	d.emit(protocol.Event{Event: protocol.EventFollowupDone,
		Text: email, Secs: time.Since(start).Seconds(), ID: cmd.ID})
}

func (d *Daemon) handleLoadModel(ctx context.Context, cmd protocol.Command) {
	path := cmd.ModelPath
	if path == "" {
		path = cmd.Model
	}
	if path == "" {
		d.emit(protocol.ErrorEvent("missing model_path in load_model command"))
		return
	}
	kind := cmd.Kind
	if kind == "" {
		kind = protocol.ModelKindLLM
	}

	d.modelMu.Lock()
	defer d.modelMu.Unlock()

	d.emit(protocol.Event{Event: protocol.EventProgress, Msg: fmt.Sprintf("loading model %s", path)})
	model, err := d.loader.LoadModel(ctx, path, kind)
	if err != nil {
		d.emit(protocol.ErrorEvent(fmt.Sprintf("failed to load model: %v", err)))
		return
	}
	d.emit(protocol.Event{Event: protocol.EventLoaded, Model: model})
}

func (d *Daemon) handleTranscribe(ctx context.Context, cmd protocol.Command) {
	wav := cmd.WAV
	if wav == "" {
		wav = cmd.File
	}
	if wav == "" || cmd.Out == "" {
		d.emit(protocol.ErrorEvent("missing wav/out in transcribe command"))
		return
	}
	if _, err := os.Stat(wav); err != nil {
		d.emit(protocol.Event{Event: protocol.EventError,
			Msg: fmt.Sprintf("wav not found: %s", wav), Out: cmd.Out})
		return
	}

	d.modelMu.Lock()
	defer d.modelMu.Unlock()

	d.emit(protocol.Event{Event: protocol.EventProgress, Msg: fmt.Sprintf("transcribing %s", wav)})

	start := time.Now()
	text, err := d.transcribeFile(ctx, wav)
	if err != nil {
		d.emit(protocol.Event{Event: protocol.EventError,
			Msg: fmt.Sprintf("transcription error: %v", err), Out: cmd.Out})
		return
	}
	if err := writeOut(cmd.Out, text); err != nil {
		d.emit(protocol.Event{Event: protocol.EventError,
			Msg: fmt.Sprintf("failed to write out: %v", err), Out: cmd.Out})
		return
	}
	d.emit(protocol.Event{Event: protocol.EventDone,
		Out: cmd.Out, Text: text, Secs: time.Since(start).Seconds()})
}

func (d *Daemon) transcribeFile(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	samples, rate, err := wavio.Decode(data)
	if err != nil {
		return "", err
	}
	text, err := d.tr.Transcribe(ctx, samples, rate)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (d *Daemon) handleDevices() {
	devs, err := d.devices()
	if err != nil {
		d.emit(protocol.ErrorEvent(fmt.Sprintf("failed to enumerate devices: %v", err)))
		return
	}
	infos := make([]protocol.DeviceInfo, 0, len(devs))
	for _, dev := range devs {
		infos = append(infos, protocol.DeviceInfo{
			Index:             dev.Index,
			Name:              dev.Name,
			MaxInputChannels:  dev.MaxInputChannels,
			MaxOutputChannels: dev.MaxOutputChannels,
			IsLoopback:        dev.IsLoopback,
		})
	}
	d.emit(protocol.Event{Event: protocol.EventDevices, Devices: infos})
}

// emit writes ev to stdout and mirrors it to the hub. Session goroutines
// and handlers share this path; the Writer serializes lines.
func (d *Daemon) emit(ev protocol.Event) {
	if err := d.out.Emit(ev); err != nil {
		slog.Error("event write failed", "event", ev.Event, "error", err)
	}
	if d.hub != nil {
		d.hub.Publish(ev)
	}
}

func writeOut(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

// meteredTranscriber records outcome counters and wall time around every
// transcription, both utterance and file.
type meteredTranscriber struct {
	tr pipeline.Transcriber
	mx *metrics.Metrics
}

func (m *meteredTranscriber) Transcribe(ctx context.Context, samples []int16, sampleRate int) (string, error) {
	start := time.Now()
	text, err := m.tr.Transcribe(ctx, samples, sampleRate)
	m.mx.RecordTranscription(err == nil, time.Since(start).Seconds())
	return text, err
}
