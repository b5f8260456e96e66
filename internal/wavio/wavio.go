// Package wavio reads and writes 16-bit PCM WAV, including a streaming
// writer for the continuous session recording.
package wavio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"
)

const (
	headerBytes   = 44
	bitsPerSample = 16
)

// header is the canonical 44-byte PCM WAV header.
type header struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // file size - 8
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32 // SampleRate * NumChannels * BitsPerSample / 8
	BlockAlign    uint16 // NumChannels * BitsPerSample / 8
	BitsPerSample uint16
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32
}

func newHeader(sampleRate int, dataSize uint32) header {
	const channels = 1
	return header{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   channels,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate) * channels * bitsPerSample / 8,
		BlockAlign:    channels * bitsPerSample / 8,
		BitsPerSample: bitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}
}

// Encode renders mono PCM-16 samples as a complete WAV file.
func Encode(samples []int16, sampleRate int) ([]byte, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("cannot encode empty audio")
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	buf := bytes.NewBuffer(make([]byte, 0, headerBytes+len(samples)*2))
	if err := binary.Write(buf, binary.LittleEndian, newHeader(sampleRate, uint32(len(samples)*2))); err != nil {
		return nil, fmt.Errorf("write WAV header: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, samples); err != nil {
		return nil, fmt.Errorf("write audio data: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode extracts mono PCM-16 samples and the sample rate from WAV data.
// Stereo input is downmixed by averaging; other channel counts and bit
// depths are rejected. Chunks other than fmt and data are skipped, so
// files with LIST or other metadata chunks still decode.
func Decode(data []byte) ([]int16, int, error) {
	if len(data) < headerBytes {
		return nil, 0, fmt.Errorf("WAV data too short: need at least %d bytes, got %d", headerBytes, len(data))
	}
	if string(data[0:4]) != "RIFF" {
		return nil, 0, fmt.Errorf("invalid WAV file: missing RIFF header")
	}
	if string(data[8:12]) != "WAVE" {
		return nil, 0, fmt.Errorf("invalid WAV file: missing WAVE format")
	}

	var (
		channels   uint16
		rate       uint32
		bits       uint16
		haveFmt    bool
		sampleData []byte
	)

	// Walk the chunk list after the 12-byte RIFF preamble.
	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		if size < 0 || body+size > len(data) {
			return nil, 0, fmt.Errorf("invalid WAV file: %s chunk overruns data", id)
		}
		switch id {
		case "fmt ":
			if size < 16 {
				return nil, 0, fmt.Errorf("invalid WAV file: fmt chunk too short")
			}
			format := binary.LittleEndian.Uint16(data[body : body+2])
			if format != 1 {
				return nil, 0, fmt.Errorf("unsupported audio format %d (only PCM)", format)
			}
			channels = binary.LittleEndian.Uint16(data[body+2 : body+4])
			rate = binary.LittleEndian.Uint32(data[body+4 : body+8])
			bits = binary.LittleEndian.Uint16(data[body+14 : body+16])
			haveFmt = true
		case "data":
			sampleData = data[body : body+size]
		}
		// Chunks are word-aligned.
		pos = body + size + size%2
	}

	if !haveFmt {
		return nil, 0, fmt.Errorf("invalid WAV file: missing fmt chunk")
	}
	if sampleData == nil {
		return nil, 0, fmt.Errorf("invalid WAV file: missing data chunk")
	}
	if bits != bitsPerSample {
		return nil, 0, fmt.Errorf("unsupported bit depth %d (only 16-bit)", bits)
	}
	if channels != 1 && channels != 2 {
		return nil, 0, fmt.Errorf("unsupported channel count %d (mono or stereo)", channels)
	}
	if len(sampleData) == 0 {
		return nil, 0, fmt.Errorf("no audio data found")
	}

	raw := make([]int16, len(sampleData)/2)
	if err := binary.Read(bytes.NewReader(sampleData), binary.LittleEndian, raw); err != nil {
		return nil, 0, fmt.Errorf("read audio samples: %w", err)
	}

	if channels == 2 {
		mono := make([]int16, len(raw)/2)
		for i := range mono {
			mono[i] = int16((int32(raw[2*i]) + int32(raw[2*i+1])) / 2)
		}
		raw = mono
	}
	return raw, int(rate), nil
}

// Duration reports the play time of encoded WAV data.
func Duration(data []byte) (time.Duration, error) {
	samples, rate, err := Decode(data)
	if err != nil {
		return 0, err
	}
	return time.Duration(float64(len(samples)) / float64(rate) * float64(time.Second)), nil
}

// Writer streams mono PCM-16 frames to a seekable sink, writing a
// provisional header up front and patching the size fields on Close.
// The session sink stays valid on disk even if the process dies: only
// the two size fields are stale.
type Writer struct {
	ws         io.WriteSeeker
	closer     io.Closer
	sampleRate int
	dataBytes  uint32
}

// NewWriter writes the provisional header to ws and returns a streaming
// writer. The caller keeps ownership of ws.
func NewWriter(ws io.WriteSeeker, sampleRate int) (*Writer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if err := binary.Write(ws, binary.LittleEndian, newHeader(sampleRate, 0)); err != nil {
		return nil, fmt.Errorf("write WAV header: %w", err)
	}
	return &Writer{ws: ws, sampleRate: sampleRate}, nil
}

// Create opens path for writing and returns a Writer that owns the file.
func Create(path string, sampleRate int) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	w, err := NewWriter(f, sampleRate)
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	w.closer = f
	return w, nil
}

// WriteFrame appends one frame of samples.
func (w *Writer) WriteFrame(samples []int16) error {
	if len(samples) == 0 {
		return nil
	}
	if err := binary.Write(w.ws, binary.LittleEndian, samples); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	w.dataBytes += uint32(len(samples) * 2)
	return nil
}

// Samples reports how many samples have been written.
func (w *Writer) Samples() int {
	return int(w.dataBytes / 2)
}

// Duration reports the recorded play time so far.
func (w *Writer) Duration() time.Duration {
	return time.Duration(float64(w.Samples()) / float64(w.sampleRate) * float64(time.Second))
}

// Close patches the header size fields and closes the underlying file
// when the Writer owns it.
func (w *Writer) Close() error {
	if _, err := w.ws.Seek(4, io.SeekStart); err != nil {
		return fmt.Errorf("seek to chunk size: %w", err)
	}
	if err := binary.Write(w.ws, binary.LittleEndian, 36+w.dataBytes); err != nil {
		return fmt.Errorf("patch chunk size: %w", err)
	}
	if _, err := w.ws.Seek(40, io.SeekStart); err != nil {
		return fmt.Errorf("seek to data size: %w", err)
	}
	if err := binary.Write(w.ws, binary.LittleEndian, w.dataBytes); err != nil {
		return fmt.Errorf("patch data size: %w", err)
	}
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}
