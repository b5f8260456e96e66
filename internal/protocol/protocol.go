package protocol

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
)

// Command is one control request. Fields beyond Cmd are populated per
// command; absent fields stay at their zero values.
type Command struct {
	Cmd string `json:"cmd"`

	// start
	Out           string `json:"out,omitempty"`
	TranscriptOut string `json:"transcript_out,omitempty"`
	DeviceIndex   *int   `json:"device_index,omitempty"`
	System        bool   `json:"system,omitempty"`

	// summarize / transcribe
	File       string `json:"file,omitempty"`
	Text       string `json:"text,omitempty"`
	WAV        string `json:"wav,omitempty"`
	ChunkWords int    `json:"chunk_words,omitempty"`

	// Context is an opaque correlation value echoed back verbatim on every
	// event the command produces. Clients may send any JSON value.
	Context json.RawMessage `json:"context,omitempty"`

	// followup_email
	Summary      string   `json:"summary,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	StudentName  string   `json:"student_name,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	MaxTokens    *int     `json:"max_tokens,omitempty"`
	ID           string   `json:"id,omitempty"`

	// load_model
	ModelPath string `json:"model_path,omitempty"`
	Model     string `json:"model,omitempty"`
	Kind      string `json:"kind,omitempty"`
}

// Event is one output line. Only the fields relevant to the event name are
// set; everything else is omitted from the wire.
type Event struct {
	Event string `json:"event"`

	Msg           string          `json:"msg,omitempty"`
	Out           string          `json:"out,omitempty"`
	TranscriptOut string          `json:"transcript_out,omitempty"`
	Text          string          `json:"text,omitempty"`
	Model         string          `json:"model,omitempty"`
	Secs          float64         `json:"secs,omitempty"`
	Seq           int             `json:"seq,omitempty"`
	ID            string          `json:"id,omitempty"`
	Context       json.RawMessage `json:"context,omitempty"`
	Raw           string          `json:"raw,omitempty"`
	Percent       *float64        `json:"percent,omitempty"`
	EtaSecs       *float64        `json:"eta_secs,omitempty"`

	Devices []DeviceInfo `json:"devices,omitempty"`
}

// DeviceInfo describes one audio device in a devices event.
type DeviceInfo struct {
	Index             int    `json:"index"`
	Name              string `json:"name"`
	MaxInputChannels  int    `json:"maxInputChannels"`
	MaxOutputChannels int    `json:"maxOutputChannels"`
	IsLoopback        bool   `json:"isLoopback"`
}

// ErrorEvent builds a plain error event.
func ErrorEvent(msg string) Event {
	return Event{Event: EventError, Msg: msg}
}

// ParseError reports a line that could not be decoded as a command. The
// dispatcher reports it as an error event and keeps reading.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid json: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// bareWord matches a line that is a single command word rather than JSON.
var bareWord = regexp.MustCompile(`^[A-Za-z_]+$`)

// Reader decodes commands line by line.
type Reader struct {
	s *bufio.Scanner
}

// NewReader wraps r with a line scanner sized for inline transcript text.
func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, initialLineBytes), MaxLineBytes)
	return &Reader{s: s}
}

// Next returns the next command. Blank lines are skipped. A bare word such
// as "stop" is accepted as a command name. A malformed JSON line returns a
// *ParseError; io.EOF signals the end of the stream.
func (r *Reader) Next() (Command, error) {
	for r.s.Scan() {
		line := strings.TrimSpace(r.s.Text())
		if line == "" {
			continue
		}
		if bareWord.MatchString(line) {
			return Command{Cmd: strings.ToLower(line)}, nil
		}
		var cmd Command
		if err := json.Unmarshal([]byte(line), &cmd); err != nil {
			return Command{}, &ParseError{Raw: line, Err: err}
		}
		return cmd, nil
	}
	if err := r.s.Err(); err != nil {
		return Command{}, err
	}
	return Command{}, io.EOF
}

// Writer emits events one per line, flushing after every event. Safe for
// concurrent use: the capture goroutine, the pipeline worker, and the
// command dispatcher all write through the same Writer.
type Writer struct {
	mu sync.Mutex
	w  *bufio.Writer
}

// NewWriter wraps w for line-buffered event emission.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Emit writes one event line. Consumers depend on per-line flushing, so
// any buffering error surfaces here rather than at some later write.
func (w *Writer) Emit(ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", ev.Event, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.w.Write(data); err != nil {
		return fmt.Errorf("write event %s: %w", ev.Event, err)
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write event %s: %w", ev.Event, err)
	}
	return w.w.Flush()
}
