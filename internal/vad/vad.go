// Package vad defines the frame-scoring interface the segmenter consumes
// and an energy-based scorer used when the neural model is unreachable.
package vad

import (
	"context"
	"log/slog"
	"math"
)

// Scorer estimates the probability that one frame contains speech.
// Reset clears any cross-frame model state; the session calls it at
// start and after every pause.
type Scorer interface {
	Score(ctx context.Context, samples []int16, sampleRate int) (float64, error)
	Reset(ctx context.Context) error
}

const (
	// RMS level treated as probability 1.0. Normal speech peaks well
	// below full scale, so full-scale normalization would flatten
	// everything to near zero.
	energyFullScale = 10000.0

	// Weight of the previous score in the smoothed result.
	energySmoothing = 0.1
)

// EnergyScorer scores frames by smoothed RMS energy. It is a crude
// stand-in for the neural scorer: good enough to keep segmentation
// running through a runner outage, not good enough to replace it.
type EnergyScorer struct {
	last   float64
	primed bool
}

// NewEnergyScorer returns a scorer with no history.
func NewEnergyScorer() *EnergyScorer {
	return &EnergyScorer{}
}

// Score computes the smoothed, normalized RMS of the frame.
func (e *EnergyScorer) Score(_ context.Context, samples []int16, _ int) (float64, error) {
	if len(samples) == 0 {
		return 0, nil
	}
	var energy float64
	for _, s := range samples {
		energy += float64(s) * float64(s)
	}
	rms := math.Sqrt(energy / float64(len(samples)))

	p := rms / energyFullScale
	if p > 1 {
		p = 1
	}
	if e.primed {
		p = (1-energySmoothing)*p + energySmoothing*e.last
	}
	e.last = p
	e.primed = true
	return p, nil
}

// Reset drops the smoothing history.
func (e *EnergyScorer) Reset(context.Context) error {
	e.last = 0
	e.primed = false
	return nil
}

// Failover tries the primary scorer and falls back per frame on error.
// The primary's own circuit breaker makes failed calls cheap, so there
// is no switching state here.
type Failover struct {
	primary  Scorer
	fallback Scorer
}

// NewFailover wires a primary scorer with a fallback.
func NewFailover(primary, fallback Scorer) *Failover {
	return &Failover{primary: primary, fallback: fallback}
}

// Score returns the primary's estimate, or the fallback's when the
// primary errors.
func (f *Failover) Score(ctx context.Context, samples []int16, sampleRate int) (float64, error) {
	p, err := f.primary.Score(ctx, samples, sampleRate)
	if err == nil {
		return p, nil
	}
	slog.Debug("primary scorer failed, using energy fallback", slog.Any("error", err))
	return f.fallback.Score(ctx, samples, sampleRate)
}

// Reset resets both scorers. A primary reset failure is reported after
// the fallback is reset, so local state never stays stale.
func (f *Failover) Reset(ctx context.Context) error {
	err := f.primary.Reset(ctx)
	if ferr := f.fallback.Reset(ctx); ferr != nil && err == nil {
		err = ferr
	}
	return err
}
