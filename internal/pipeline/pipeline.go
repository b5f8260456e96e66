// Package pipeline runs per-session transcription: an unbounded FIFO
// queue feeding exactly one worker, so capture never waits and output
// order matches utterance order.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	apperrors "github.com/lecternhq/lectern/backend/daemon/internal/errors"
	"github.com/lecternhq/lectern/backend/daemon/pkg/pb"
)

// Transcriber converts one utterance to text.
type Transcriber interface {
	Transcribe(ctx context.Context, samples []int16, sampleRate int) (string, error)
}

// PartialFunc receives each non-empty transcription in order. seq is
// 1-based position in the transcript.
type PartialFunc func(seq int, text string)

// Pipeline owns the queue, the worker, and the ordered transcript parts
// for one session.
type Pipeline struct {
	tr         Transcriber
	sampleRate int
	onPartial  PartialFunc

	mu       sync.Mutex
	cond     *sync.Cond
	queue    [][]int16 // nil entry is the drain sentinel
	draining bool
	parts    []string

	sentinelCh chan struct{} // closed when the worker consumes the sentinel
	doneCh     chan struct{} // closed when the worker returns
}

// New builds a pipeline. Call Start before enqueueing.
func New(tr Transcriber, sampleRate int, onPartial PartialFunc) *Pipeline {
	p := &Pipeline{
		tr:         tr,
		sampleRate: sampleRate,
		onPartial:  onPartial,
		sentinelCh: make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Start launches the worker. ctx bounds the transcription calls; the
// worker itself exits only by consuming the drain sentinel, which every
// session exit path enqueues.
func (p *Pipeline) Start(ctx context.Context) {
	go p.worker(ctx)
}

// Enqueue appends one utterance. It never blocks: the queue grows
// without bound rather than ever stalling the capture loop. Utterances
// arriving after Drain are dropped.
func (p *Pipeline) Enqueue(samples []int16) {
	if len(samples) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.draining {
		slog.Warn("utterance after drain, dropped", slog.Int("samples", len(samples)))
		return
	}
	p.queue = append(p.queue, samples)
	p.cond.Signal()
}

// Len reports queued utterances not yet picked up by the worker.
func (p *Pipeline) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, item := range p.queue {
		if item != nil {
			n++
		}
	}
	return n
}

// Drain enqueues the sentinel behind all pending work and waits up to
// timeout for the worker to consume it. On timeout the accumulated
// transcript is still valid; the caller finalizes with what it has.
func (p *Pipeline) Drain(timeout time.Duration) error {
	p.mu.Lock()
	if !p.draining {
		p.draining = true
		p.queue = append(p.queue, nil)
		p.cond.Signal()
	}
	p.mu.Unlock()

	select {
	case <-p.sentinelCh:
		return nil
	case <-time.After(timeout):
		return apperrors.Newf(pb.ErrorCode_SESSION_DRAIN_TIMEOUT,
			"transcription queue did not drain within %s", timeout)
	}
}

// Wait blocks up to grace for the worker goroutine to return. Reports
// whether it did.
func (p *Pipeline) Wait(grace time.Duration) bool {
	select {
	case <-p.doneCh:
		return true
	case <-time.After(grace):
		return false
	}
}

// Parts returns a snapshot of the ordered transcript parts.
func (p *Pipeline) Parts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.parts))
	copy(out, p.parts)
	return out
}

// Transcript joins the parts accumulated so far with newlines.
func (p *Pipeline) Transcript() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return strings.Join(p.parts, "\n")
}

func (p *Pipeline) worker(ctx context.Context) {
	defer close(p.doneCh)
	for {
		p.mu.Lock()
		for len(p.queue) == 0 {
			p.cond.Wait()
		}
		item := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		if item == nil {
			close(p.sentinelCh)
			return
		}

		text, err := p.tr.Transcribe(ctx, item, p.sampleRate)
		if err != nil {
			// Per-utterance failures never abort the session.
			slog.Warn("utterance transcription failed, skipped",
				slog.Int("samples", len(item)),
				slog.Any("error", err))
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		p.mu.Lock()
		p.parts = append(p.parts, text)
		seq := len(p.parts)
		p.mu.Unlock()

		if p.onPartial != nil {
			p.onPartial(seq, text)
		}
	}
}
