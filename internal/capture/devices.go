package capture

import (
	"strings"

	"github.com/gordonklaus/portaudio"

	apperrors "github.com/lecternhq/lectern/backend/daemon/internal/errors"
	"github.com/lecternhq/lectern/backend/daemon/pkg/pb"
)

// Device describes one audio device for the devices event.
type Device struct {
	Index             int
	Name              string
	MaxInputChannels  int
	MaxOutputChannels int
	IsLoopback        bool
}

// loopbackMarkers identify virtual devices that mirror system output.
var loopbackMarkers = []string{"blackhole", "loopback", "monitor", "soundflower", "vb-cable"}

// List enumerates every audio device. Slice position in the portaudio
// device table is the index callers pass back as device_index.
func List() ([]Device, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, apperrors.Wrap(err, pb.ErrorCode_AUDIO_DEVICE_OPEN_FAILED, "initialize audio host")
	}
	defer portaudio.Terminate()

	infos, err := portaudio.Devices()
	if err != nil {
		return nil, apperrors.Wrap(err, pb.ErrorCode_AUDIO_DEVICE_OPEN_FAILED, "enumerate devices")
	}

	devices := make([]Device, 0, len(infos))
	for i, info := range infos {
		devices = append(devices, Device{
			Index:             i,
			Name:              info.Name,
			MaxInputChannels:  info.MaxInputChannels,
			MaxOutputChannels: info.MaxOutputChannels,
			IsLoopback:        IsLoopbackName(info.Name),
		})
	}
	return devices, nil
}

// IsLoopbackName reports whether a device name marks a system-output mirror.
func IsLoopbackName(name string) bool {
	for _, marker := range loopbackMarkers {
		if containsFold(name, marker) {
			return true
		}
	}
	return false
}

// selectDevice resolves the Options to a concrete portaudio device:
// explicit index first, then a name match, then a loopback match for
// system capture, then the host default input.
func selectDevice(opts Options) (*portaudio.DeviceInfo, error) {
	infos, err := portaudio.Devices()
	if err != nil {
		return nil, apperrors.Wrap(err, pb.ErrorCode_AUDIO_DEVICE_OPEN_FAILED, "enumerate devices")
	}

	if opts.DeviceIndex != nil {
		i := *opts.DeviceIndex
		if i < 0 || i >= len(infos) {
			return nil, apperrors.Newf(pb.ErrorCode_AUDIO_DEVICE_OPEN_FAILED,
				"device index %d out of range (have %d devices)", i, len(infos))
		}
		if infos[i].MaxInputChannels < 1 {
			return nil, apperrors.Newf(pb.ErrorCode_AUDIO_DEVICE_OPEN_FAILED,
				"device %s has no input channels", infos[i].Name)
		}
		return infos[i], nil
	}

	if opts.DeviceName != "" {
		for _, info := range infos {
			if info.MaxInputChannels >= 1 && containsFold(info.Name, opts.DeviceName) {
				return info, nil
			}
		}
		return nil, apperrors.Newf(pb.ErrorCode_AUDIO_DEVICE_OPEN_FAILED,
			"no input device matching %q", opts.DeviceName)
	}

	if opts.System {
		if dev := pickLoopback(infos, opts.ExcludedDevices); dev != nil {
			return dev, nil
		}
		return nil, apperrors.New(pb.ErrorCode_AUDIO_DEVICE_OPEN_FAILED,
			"no loopback device found for system capture")
	}

	dev, err := portaudio.DefaultInputDevice()
	if err != nil {
		return nil, apperrors.Wrap(err, pb.ErrorCode_AUDIO_DEVICE_OPEN_FAILED, "no default input device")
	}
	return dev, nil
}

// pickLoopback returns the first input-capable loopback device that is
// not excluded, or nil.
func pickLoopback(infos []*portaudio.DeviceInfo, excluded []string) *portaudio.DeviceInfo {
	for _, info := range infos {
		if info.MaxInputChannels < 1 {
			continue
		}
		if isExcluded(info.Name, excluded) {
			continue
		}
		if IsLoopbackName(info.Name) {
			return info
		}
	}
	return nil
}

func isExcluded(name string, excluded []string) bool {
	for _, ex := range excluded {
		if ex != "" && containsFold(name, ex) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
