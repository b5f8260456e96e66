// Package asr routes utterance audio to speech-to-text backends.
//
// The registry holds named backends and a primary/fallback pair. Session
// pipelines transcribe through the registry, so a dead model runner degrades
// to the HTTP service instead of dropping utterances.
package asr

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	apperrors "github.com/lecternhq/lectern/backend/daemon/internal/errors"
	"github.com/lecternhq/lectern/backend/daemon/pkg/pb"
)

// Backend transcribes one utterance of PCM16 audio. Implementations must be
// safe for concurrent use; the registry does not serialize calls.
type Backend interface {
	Name() string
	Transcribe(ctx context.Context, samples []int16, sampleRate int) (string, error)
}

// Registry is a named collection of backends with a primary/fallback pair.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Backend
	primary  string
	fallback string
}

func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]Backend)}
}

// Register adds a backend under its own name. The first registered backend
// becomes the primary until SetPrimary overrides it.
func (r *Registry) Register(b Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[b.Name()] = b
	if r.primary == "" {
		r.primary = b.Name()
	}
}

// SetPrimary selects the backend tried first.
func (r *Registry) SetPrimary(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.backends[name]; !ok {
		return apperrors.Newf(pb.ErrorCode_CONFIG_INVALID, "unknown transcription backend %q", name)
	}
	r.primary = name
	return nil
}

// SetFallback selects the backend tried when the primary fails.
func (r *Registry) SetFallback(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.backends[name]; !ok {
		return apperrors.Newf(pb.ErrorCode_CONFIG_INVALID, "unknown transcription backend %q", name)
	}
	r.fallback = name
	return nil
}

// Names returns the registered backend names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) pair() (primary, fallback Backend) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.backends[r.primary], r.backends[r.fallback]
}

// Transcribe tries the primary backend, then the fallback. Satisfies the
// transcription pipeline's Transcriber interface.
func (r *Registry) Transcribe(ctx context.Context, samples []int16, sampleRate int) (string, error) {
	primary, fallback := r.pair()
	if primary == nil {
		return "", apperrors.New(pb.ErrorCode_CONFIG_MISSING, "no transcription backend registered")
	}

	text, err := primary.Transcribe(ctx, samples, sampleRate)
	if err == nil {
		return text, nil
	}
	if fallback == nil || fallback == primary {
		return "", apperrors.Wrapf(err, pb.ErrorCode_ASR_TRANSCRIPTION_FAILED,
			"backend %s failed", primary.Name())
	}

	slog.Warn("primary transcription backend failed, trying fallback",
		"primary", primary.Name(),
		"fallback", fallback.Name(),
		"error", err)
	text, fbErr := fallback.Transcribe(ctx, samples, sampleRate)
	if fbErr != nil {
		return "", apperrors.Wrapf(fbErr, pb.ErrorCode_ASR_TRANSCRIPTION_FAILED,
			"backend %s failed after %s: %v", fallback.Name(), primary.Name(), err)
	}
	return text, nil
}
