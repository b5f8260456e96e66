// Package capture opens audio input devices and delivers fixed-size
// PCM-16 frames to the session loop.
package capture

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gordonklaus/portaudio"

	apperrors "github.com/lecternhq/lectern/backend/daemon/internal/errors"
	"github.com/lecternhq/lectern/backend/daemon/pkg/pb"
)

// Source delivers one frame of mono samples per Read. Pause stops the
// hardware stream so a paused session consumes no device time; Resume
// restarts it.
type Source interface {
	Read() ([]int16, error)
	Pause() error
	Resume() error
	Close() error
}

// Options selects the device and frame geometry for Open.
type Options struct {
	SampleRate      int
	FrameSamples    int
	DeviceIndex     *int     // explicit device, nil for automatic
	DeviceName      string   // name substring match, case-insensitive
	System          bool     // capture system output via a loopback device
	ExcludedDevices []string // name substrings to skip during automatic pick
}

// PortAudioSource reads frames from a portaudio input stream.
type PortAudioSource struct {
	stream   *portaudio.Stream
	buf      []int16
	channels int
	frame    []int16
	name     string
	closed   bool
}

// Open initializes portaudio and opens the selected input device. The
// matching Terminate happens in Close; portaudio reference-counts the
// pair so concurrent sources are safe.
func Open(opts Options) (*PortAudioSource, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, apperrors.Wrap(err, pb.ErrorCode_AUDIO_DEVICE_OPEN_FAILED, "initialize audio host")
	}

	dev, err := selectDevice(opts)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}

	// Loopback devices are commonly stereo-only; open them as stereo and
	// downmix. Plain microphones open mono.
	channels := 1
	if opts.System && dev.MaxInputChannels >= 2 {
		channels = 2
	}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: channels,
			Latency:  dev.DefaultLowInputLatency,
		},
		SampleRate:      float64(opts.SampleRate),
		FramesPerBuffer: opts.FrameSamples,
	}

	buf := make([]int16, opts.FrameSamples*channels)
	stream, err := portaudio.OpenStream(params, buf)
	if err != nil {
		portaudio.Terminate()
		return nil, apperrors.Wrapf(err, pb.ErrorCode_AUDIO_DEVICE_OPEN_FAILED,
			"open input stream on %s", dev.Name)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, apperrors.Wrapf(err, pb.ErrorCode_AUDIO_DEVICE_OPEN_FAILED,
			"start input stream on %s", dev.Name)
	}

	slog.Info("opened audio input",
		slog.String("device", dev.Name),
		slog.Int("channels", channels),
		slog.Int("sample_rate", opts.SampleRate),
		slog.Int("frame_samples", opts.FrameSamples))

	return &PortAudioSource{
		stream:   stream,
		buf:      buf,
		channels: channels,
		frame:    make([]int16, opts.FrameSamples),
		name:     dev.Name,
	}, nil
}

// Name reports the opened device name.
func (s *PortAudioSource) Name() string { return s.name }

// Read blocks for one hardware frame and returns it downmixed to mono.
// Input overflow is not fatal: the overlapped data is simply gone, which
// matters less than keeping the capture loop alive.
func (s *PortAudioSource) Read() ([]int16, error) {
	if err := s.stream.Read(); err != nil {
		if errors.Is(err, portaudio.InputOverflowed) {
			slog.Debug("input overflow, frame dropped", slog.String("device", s.name))
		} else {
			return nil, fmt.Errorf("read frame from %s: %w", s.name, err)
		}
	}
	if s.channels == 1 {
		copy(s.frame, s.buf)
	} else {
		Downmix(s.buf, s.channels, s.frame)
	}
	out := make([]int16, len(s.frame))
	copy(out, s.frame)
	return out, nil
}

// Pause stops the hardware stream.
func (s *PortAudioSource) Pause() error {
	if err := s.stream.Stop(); err != nil {
		return fmt.Errorf("pause stream on %s: %w", s.name, err)
	}
	return nil
}

// Resume restarts the hardware stream after Pause.
func (s *PortAudioSource) Resume() error {
	if err := s.stream.Start(); err != nil {
		return fmt.Errorf("resume stream on %s: %w", s.name, err)
	}
	return nil
}

// Close stops and releases the stream and drops the portaudio reference.
func (s *PortAudioSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	_ = s.stream.Stop()
	err := s.stream.Close()
	_ = portaudio.Terminate()
	if err != nil {
		return fmt.Errorf("close stream on %s: %w", s.name, err)
	}
	return nil
}

// Downmix averages interleaved multi-channel samples into dst, one value
// per frame. dst length decides how many frames are consumed.
func Downmix(interleaved []int16, channels int, dst []int16) {
	if channels <= 1 {
		copy(dst, interleaved)
		return
	}
	for i := range dst {
		base := i * channels
		if base+channels > len(interleaved) {
			dst[i] = 0
			continue
		}
		var sum int32
		for c := 0; c < channels; c++ {
			sum += int32(interleaved[base+c])
		}
		dst[i] = int16(sum / int32(channels))
	}
}
