package segment

import "testing"

const frameLen = 4

// frame builds a frame whose samples all carry the marker value, so
// utterance content can be checked frame by frame.
func frame(marker int16) []int16 {
	f := make([]int16, frameLen)
	for i := range f {
		f[i] = marker
	}
	return f
}

// flat concatenates marker frames into the expected utterance samples.
func flat(markers ...int16) []int16 {
	out := make([]int16, 0, len(markers)*frameLen)
	for _, m := range markers {
		out = append(out, frame(m)...)
	}
	return out
}

func sampleEqual(a, b []int16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// collect returns a segmenter plus a pointer to the utterances it emits.
func collect(p Params) (*Segmenter, *[][]int16) {
	var got [][]int16
	s := New(p, func(samples []int16) {
		got = append(got, samples)
	})
	return s, &got
}

func testParams() Params {
	return Params{
		Threshold:        0.5,
		PrePadFrames:     2,
		PostPadFrames:    2,
		MinSilenceFrames: 3,
		MinSpeechFrames:  2,
	}
}

func TestOnsetSeedsFromPreRoll(t *testing.T) {
	s, got := collect(testParams())

	// Idle noise fills the ring; only the last PrePadFrames survive.
	if a := s.Push(frame(1), 0.1); a != ActionNone {
		t.Errorf("idle silence = %v, want none", a)
	}
	s.Push(frame(2), 0.1)

	if a := s.Push(frame(3), 0.9); a != ActionNone {
		t.Errorf("first speech frame = %v, want none before run completes", a)
	}
	if a := s.Push(frame(4), 0.9); a != ActionStarted {
		t.Errorf("second speech frame = %v, want started", a)
	}
	if !s.Speaking() {
		t.Error("Speaking() = false after onset")
	}

	// Close with a full silence run.
	s.Push(frame(5), 0.9)
	s.Push(frame(6), 0.2)
	s.Push(frame(7), 0.2)
	if a := s.Push(frame(8), 0.2); a != ActionFinalized {
		t.Errorf("final silence frame = %v, want finalized", a)
	}
	if s.Speaking() {
		t.Error("Speaking() = true after finalization")
	}

	if len(*got) != 1 {
		t.Fatalf("got %d utterances, want 1", len(*got))
	}
	// Pre-roll 3,4 (ring capacity 2 includes the onset frame), speech 5,
	// then the first PostPadFrames of the silence run 6,7.
	want := flat(3, 4, 5, 6, 7)
	if !sampleEqual((*got)[0], want) {
		t.Errorf("utterance samples = %v, want %v", (*got)[0], want)
	}
}

func TestSpeechRunResetsOnInterruption(t *testing.T) {
	p := testParams()
	p.MinSpeechFrames = 3
	s, got := collect(p)

	s.Push(frame(1), 0.9)
	s.Push(frame(2), 0.9)
	if a := s.Push(frame(3), 0.1); a != ActionNone {
		t.Errorf("interrupting silence = %v, want none", a)
	}
	s.Push(frame(4), 0.9)
	if a := s.Push(frame(5), 0.9); a == ActionStarted {
		t.Error("onset after interrupted run, want full consecutive run required")
	}
	if a := s.Push(frame(6), 0.9); a != ActionStarted {
		t.Errorf("third consecutive speech frame = %v, want started", a)
	}
	if len(*got) != 0 {
		t.Errorf("emitted %d utterances during onset, want 0", len(*got))
	}
}

func TestInnerSilenceJoinsUtterance(t *testing.T) {
	p := testParams()
	p.MinSpeechFrames = 1
	p.PrePadFrames = 0
	s, got := collect(p)

	s.Push(frame(1), 0.9) // started, utterance [1]
	s.Push(frame(2), 0.2) // candidate silence
	s.Push(frame(3), 0.2) // still below MinSilenceFrames
	if a := s.Push(frame(4), 0.9); a != ActionExtended {
		t.Errorf("speech after short gap = %v, want extended", a)
	}

	s.Push(frame(5), 0.2)
	s.Push(frame(6), 0.2)
	s.Push(frame(7), 0.2)

	if len(*got) != 1 {
		t.Fatalf("got %d utterances, want 1", len(*got))
	}
	// Gap frames 2,3 flush into the utterance when speech resumes at 4;
	// post padding adds 5,6.
	want := flat(1, 2, 3, 4, 5, 6)
	if !sampleEqual((*got)[0], want) {
		t.Errorf("utterance samples = %v, want %v", (*got)[0], want)
	}
}

func TestShortUtteranceDropped(t *testing.T) {
	p := testParams()
	p.MinSpeechFrames = 1
	p.PrePadFrames = 0
	p.PostPadFrames = 0
	p.MinUtteranceSamples = 3 * frameLen
	s, got := collect(p)

	s.Push(frame(1), 0.9) // one speech frame only
	s.Push(frame(2), 0.1)
	s.Push(frame(3), 0.1)
	if a := s.Push(frame(4), 0.1); a != ActionFinalized {
		t.Errorf("closing silence = %v, want finalized even when dropped", a)
	}

	if len(*got) != 0 {
		t.Errorf("short utterance was enqueued, want dropped")
	}
	if s.Speaking() {
		t.Error("Speaking() = true after drop")
	}
}

func TestReseedCarriesSilenceTail(t *testing.T) {
	p := testParams()
	p.MinSpeechFrames = 1
	s, got := collect(p)

	// First utterance: onset at 1, silence 2,3,4 closes it.
	s.Push(frame(1), 0.9)
	s.Push(frame(2), 0.2)
	s.Push(frame(3), 0.2)
	s.Push(frame(4), 0.2)

	// Immediate second onset: the pre-roll was reseeded with the tail of
	// the silence run (3,4); appending the onset frame evicts 3, so the
	// next utterance opens with the carried frame 4.
	if a := s.Push(frame(5), 0.9); a != ActionStarted {
		t.Fatalf("second onset = %v, want started", a)
	}
	s.Push(frame(6), 0.2)
	s.Push(frame(7), 0.2)
	s.Push(frame(8), 0.2)

	if len(*got) != 2 {
		t.Fatalf("got %d utterances, want 2", len(*got))
	}
	want := flat(4, 5, 6, 7)
	if !sampleEqual((*got)[1], want) {
		t.Errorf("second utterance = %v, want %v (reseeded tail + onset + post pad)", (*got)[1], want)
	}
}

func TestReseedShrinksWhenSilenceRunIsShort(t *testing.T) {
	// Pre padding wider than the silence run: the reseed takes whatever
	// the run has rather than erroring or padding with zeros.
	p := Params{
		Threshold:        0.5,
		PrePadFrames:     5,
		PostPadFrames:    0,
		MinSilenceFrames: 2,
		MinSpeechFrames:  1,
	}
	s, got := collect(p)

	s.Push(frame(1), 0.9)
	s.Push(frame(2), 0.2)
	s.Push(frame(3), 0.2) // closes: run of 2 < PrePadFrames

	if a := s.Push(frame(4), 0.9); a != ActionStarted {
		t.Fatalf("onset after shrunk reseed = %v, want started", a)
	}
	s.Push(frame(5), 0.2)
	s.Push(frame(6), 0.2)

	if len(*got) != 2 {
		t.Fatalf("got %d utterances, want 2", len(*got))
	}
	want := flat(2, 3, 4)
	if !sampleEqual((*got)[1], want) {
		t.Errorf("second utterance = %v, want %v", (*got)[1], want)
	}
}

func TestZeroPrePadKeepsOnsetFrame(t *testing.T) {
	p := testParams()
	p.PrePadFrames = 0
	p.PostPadFrames = 0
	p.MinSpeechFrames = 1
	s, got := collect(p)

	s.Push(frame(1), 0.1)
	s.Push(frame(2), 0.9)
	s.Push(frame(3), 0.1)
	s.Push(frame(4), 0.1)
	s.Push(frame(5), 0.1)

	if len(*got) != 1 {
		t.Fatalf("got %d utterances, want 1", len(*got))
	}
	// The ring holds one frame even with zero padding, so the onset
	// frame itself is never lost.
	if !sampleEqual((*got)[0], flat(2)) {
		t.Errorf("utterance = %v, want onset frame only", (*got)[0])
	}
}

func TestFlushFinalizesOpenUtterance(t *testing.T) {
	p := testParams()
	p.MinSpeechFrames = 1
	p.PrePadFrames = 0
	s, got := collect(p)

	s.Push(frame(1), 0.9)
	s.Push(frame(2), 0.9)
	s.Push(frame(3), 0.2) // partial silence run, below MinSilenceFrames

	s.Flush()

	if len(*got) != 1 {
		t.Fatalf("got %d utterances after flush, want 1", len(*got))
	}
	// The pending silence frame becomes post padding.
	want := flat(1, 2, 3)
	if !sampleEqual((*got)[0], want) {
		t.Errorf("flushed utterance = %v, want %v", (*got)[0], want)
	}
	if s.Speaking() {
		t.Error("Speaking() = true after flush")
	}
}

func TestFlushWithNothingOpenEmitsNothing(t *testing.T) {
	s, got := collect(testParams())
	s.Push(frame(1), 0.1)
	s.Flush()
	if len(*got) != 0 {
		t.Errorf("flush of idle segmenter emitted %d utterances", len(*got))
	}
}

func TestFlushAppliesMinimumPolicy(t *testing.T) {
	p := testParams()
	p.MinSpeechFrames = 1
	p.PrePadFrames = 0
	p.MinUtteranceSamples = 10 * frameLen
	s, got := collect(p)

	s.Push(frame(1), 0.9)
	s.Flush()

	if len(*got) != 0 {
		t.Error("flush enqueued an utterance below the minimum policy")
	}
}

func TestResetDiscardsOpenUtterance(t *testing.T) {
	p := testParams()
	p.MinSpeechFrames = 1
	s, got := collect(p)

	s.Push(frame(1), 0.9)
	s.Push(frame(2), 0.9)
	if !s.Speaking() {
		t.Fatal("expected open utterance before reset")
	}

	s.Reset()

	if s.Speaking() {
		t.Error("Speaking() = true after reset")
	}
	// The dropped speech must not leak into later utterances.
	s.Push(frame(3), 0.2)
	s.Push(frame(4), 0.2)
	s.Push(frame(5), 0.2)
	if len(*got) != 0 {
		t.Errorf("reset leaked %d utterances", len(*got))
	}
}

func TestDeriveParams(t *testing.T) {
	p := DeriveParams(16000, 512, 0.5, 600, 200, 200, 200)

	if p.PrePadFrames != 6 {
		t.Errorf("PrePadFrames = %d, want 6", p.PrePadFrames)
	}
	if p.PostPadFrames != 6 {
		t.Errorf("PostPadFrames = %d, want 6", p.PostPadFrames)
	}
	if p.MinSilenceFrames != 18 {
		t.Errorf("MinSilenceFrames = %d, want 18", p.MinSilenceFrames)
	}
	if p.MinSpeechFrames != 6 {
		t.Errorf("MinSpeechFrames = %d, want 6", p.MinSpeechFrames)
	}
	if p.MinUtteranceSamples != 3200 {
		t.Errorf("MinUtteranceSamples = %d, want 3200", p.MinUtteranceSamples)
	}
}

func TestDeriveParamsClamps(t *testing.T) {
	// Sub-frame durations clamp: runs to one frame, padding to zero.
	p := DeriveParams(16000, 512, 0.5, 1, 1, 0, 0)

	if p.MinSilenceFrames != 1 {
		t.Errorf("MinSilenceFrames = %d, want clamp to 1", p.MinSilenceFrames)
	}
	if p.MinSpeechFrames != 1 {
		t.Errorf("MinSpeechFrames = %d, want clamp to 1", p.MinSpeechFrames)
	}
	if p.PrePadFrames != 0 || p.PostPadFrames != 0 {
		t.Errorf("padding = %d/%d, want 0/0", p.PrePadFrames, p.PostPadFrames)
	}
}
