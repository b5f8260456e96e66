package runner

import (
	"context"

	"github.com/lecternhq/lectern/backend/daemon/internal/asr"
	"github.com/lecternhq/lectern/backend/daemon/internal/vad"
)

// Scorer returns a vad.Scorer view of the client for the segmenter path.
func (c *Client) Scorer() vad.Scorer {
	return &scorer{c: c}
}

type scorer struct{ c *Client }

func (s *scorer) Score(ctx context.Context, samples []int16, sampleRate int) (float64, error) {
	return s.c.Score(ctx, samples, sampleRate)
}

func (s *scorer) Reset(ctx context.Context) error {
	return s.c.ResetVAD(ctx)
}

// Backend returns an asr.Backend view of the client for the transcription
// registry.
func (c *Client) Backend() asr.Backend {
	return &backend{c: c}
}

type backend struct{ c *Client }

func (b *backend) Name() string { return "runner" }

func (b *backend) Transcribe(ctx context.Context, samples []int16, sampleRate int) (string, error) {
	return b.c.Transcribe(ctx, samples, sampleRate)
}
