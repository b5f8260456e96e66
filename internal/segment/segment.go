// Package segment turns per-frame speech probabilities into padded
// utterances using hysteresis thresholds.
package segment

import "log/slog"

// Action reports what one pushed frame did to the segmenter state.
type Action int

const (
	// ActionNone: frame absorbed without a state change worth reporting.
	ActionNone Action = iota
	// ActionStarted: enough consecutive speech arrived to open an utterance.
	ActionStarted
	// ActionExtended: the open utterance grew by one frame.
	ActionExtended
	// ActionFinalized: a full silence run closed the utterance.
	ActionFinalized
)

func (a Action) String() string {
	switch a {
	case ActionStarted:
		return "started"
	case ActionExtended:
		return "extended"
	case ActionFinalized:
		return "finalized"
	default:
		return "none"
	}
}

// Params are the frame-count thresholds driving the state machine.
// Derive from millisecond settings with DeriveParams.
type Params struct {
	Threshold           float64
	PrePadFrames        int
	PostPadFrames       int
	MinSilenceFrames    int
	MinSpeechFrames     int
	MinUtteranceSamples int
}

// DeriveParams converts millisecond thresholds into frame counts for the
// given stream geometry. Counts truncate toward zero; the speech and
// silence runs are clamped to at least one frame.
func DeriveParams(sampleRate, frameSamples int, threshold float64, minSilenceMs, minSpeechMs, prePadMs, postPadMs int) Params {
	chunkMs := float64(frameSamples) / float64(sampleRate) * 1000.0
	frames := func(ms int) int {
		if chunkMs <= 0 {
			return 0
		}
		return int(float64(ms) / chunkMs)
	}
	clamp0 := func(n int) int {
		if n < 0 {
			return 0
		}
		return n
	}
	clamp1 := func(n int) int {
		if n < 1 {
			return 1
		}
		return n
	}
	return Params{
		Threshold:           threshold,
		PrePadFrames:        clamp0(frames(prePadMs)),
		PostPadFrames:       clamp0(frames(postPadMs)),
		MinSilenceFrames:    clamp1(frames(minSilenceMs)),
		MinSpeechFrames:     clamp1(frames(minSpeechMs)),
		MinUtteranceSamples: int(float64(minSpeechMs) / 1000.0 * float64(sampleRate)),
	}
}

// Segmenter is the per-session utterance state machine. Not safe for
// concurrent use: exactly one capture loop drives it.
type Segmenter struct {
	p           Params
	onUtterance func(samples []int16)

	pre       [][]int16 // ring of recent idle frames, oldest first
	silence   [][]int16 // candidate trailing-silence run
	utterance [][]int16 // open utterance frames
	speechRun int
	speaking  bool
}

// New builds a segmenter that hands each finalized utterance meeting the
// minimum-sample policy to onUtterance as one flat sample slice.
func New(p Params, onUtterance func(samples []int16)) *Segmenter {
	return &Segmenter{p: p, onUtterance: onUtterance}
}

// Speaking reports whether an utterance is currently open.
func (s *Segmenter) Speaking() bool { return s.speaking }

// Push consumes one frame and its speech probability. Frames must not be
// mutated by the caller afterwards; the segmenter keeps references until
// the utterance closes.
func (s *Segmenter) Push(frame []int16, prob float64) Action {
	if !s.speaking {
		s.pushPre(frame)
		if prob >= s.p.Threshold {
			s.speechRun++
		} else {
			s.speechRun = 0
		}
		if s.speechRun >= s.p.MinSpeechFrames {
			s.speaking = true
			s.utterance = append(s.utterance[:0], s.pre...)
			s.pre = s.pre[:0]
			s.silence = s.silence[:0]
			return ActionStarted
		}
		return ActionNone
	}

	if prob >= s.p.Threshold {
		// Speech resumed before the silence run completed: the gap
		// belongs inside the utterance.
		if len(s.silence) > 0 {
			s.utterance = append(s.utterance, s.silence...)
			s.silence = s.silence[:0]
		}
		s.utterance = append(s.utterance, frame)
		return ActionExtended
	}

	s.silence = append(s.silence, frame)
	if len(s.silence) < s.p.MinSilenceFrames {
		return ActionNone
	}

	s.appendPostPad()
	s.finalize()

	// Reseed the pre-roll from the tail of the silence run so context
	// carries across the utterance boundary. A short run reseeds with
	// whatever it has.
	s.pre = s.pre[:0]
	if s.p.PrePadFrames > 0 {
		tail := s.silence
		if len(tail) > s.p.PrePadFrames {
			tail = tail[len(tail)-s.p.PrePadFrames:]
		}
		s.pre = append(s.pre, tail...)
	}
	s.silence = s.silence[:0]
	s.utterance = s.utterance[:0]
	s.speaking = false
	s.speechRun = 0
	return ActionFinalized
}

// Flush closes any open utterance at session stop: pending trailing
// silence contributes post padding, then the utterance is finalized
// under the same minimum-sample policy.
func (s *Segmenter) Flush() {
	if len(s.silence) > 0 && len(s.utterance) > 0 {
		s.appendPostPad()
	}
	s.finalize()
	s.Reset()
}

// Reset clears all state. Called on pause: partial speech spanning a
// pause boundary is dropped, not recovered.
func (s *Segmenter) Reset() {
	s.pre = s.pre[:0]
	s.silence = s.silence[:0]
	s.utterance = s.utterance[:0]
	s.speechRun = 0
	s.speaking = false
}

// pushPre appends to the pre-roll ring, dropping the oldest frame when
// full. The ring keeps at least one frame even with zero pre padding so
// the onset frame itself always reaches the utterance.
func (s *Segmenter) pushPre(frame []int16) {
	capacity := s.p.PrePadFrames
	if capacity < 1 {
		capacity = 1
	}
	s.pre = append(s.pre, frame)
	if len(s.pre) > capacity {
		copy(s.pre, s.pre[1:])
		s.pre = s.pre[:len(s.pre)-1]
	}
}

func (s *Segmenter) appendPostPad() {
	if s.p.PostPadFrames <= 0 {
		return
	}
	n := s.p.PostPadFrames
	if n > len(s.silence) {
		n = len(s.silence)
	}
	s.utterance = append(s.utterance, s.silence[:n]...)
}

// finalize flattens the open utterance and hands it on when it meets the
// minimum-sample policy. Shorter utterances are VAD blips and dropped.
func (s *Segmenter) finalize() {
	if len(s.utterance) == 0 {
		return
	}
	total := 0
	for _, f := range s.utterance {
		total += len(f)
	}
	if total < s.p.MinUtteranceSamples {
		slog.Debug("utterance below minimum, dropped",
			slog.Int("samples", total),
			slog.Int("min_samples", s.p.MinUtteranceSamples))
		return
	}
	flat := make([]int16, 0, total)
	for _, f := range s.utterance {
		flat = append(flat, f...)
	}
	if s.onUtterance != nil {
		s.onUtterance(flat)
	}
}
