package asr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/lecternhq/lectern/backend/daemon/internal/errors"
	"github.com/lecternhq/lectern/backend/daemon/internal/resilience"
	"github.com/lecternhq/lectern/backend/daemon/internal/wavio"
	"github.com/lecternhq/lectern/backend/daemon/pkg/pb"
)

// HTTPConfig configures the HTTP transcription backend.
type HTTPConfig struct {
	URL      string
	APIKey   string // optional, sent as Bearer
	Language string
	Timeout  time.Duration // default 60s
	// MaxConcurrent caps in-flight uploads; default 2.
	MaxConcurrent int
}

// HTTPBackend posts utterance audio as a WAV upload to a transcription
// service. Transient failures (network, 5xx) retry with backoff; 4xx
// responses fail immediately.
type HTTPBackend struct {
	cfg    HTTPConfig
	client *http.Client
	sem    chan struct{}
	retry  resilience.RetryConfig
}

// transcribeResponse mirrors the JSON shape returned by the service.
type transcribeResponse struct {
	Text string `json:"text"`
}

func NewHTTP(cfg HTTPConfig) *HTTPBackend {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 2
	}
	return &HTTPBackend{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		sem:    make(chan struct{}, cfg.MaxConcurrent),
		retry:  resilience.UploadRetryConfig(),
	}
}

func (b *HTTPBackend) Name() string {
	return "http"
}

// Transcribe encodes samples as WAV and uploads them. Blocks while the
// concurrency limit is saturated, honoring context cancellation.
func (b *HTTPBackend) Transcribe(ctx context.Context, samples []int16, sampleRate int) (string, error) {
	select {
	case b.sem <- struct{}{}:
		defer func() { <-b.sem }()
	case <-ctx.Done():
		return "", ctx.Err()
	}

	wav, err := wavio.Encode(samples, sampleRate)
	if err != nil {
		return "", apperrors.Wrap(err, pb.ErrorCode_ASR_TRANSCRIPTION_FAILED, "encode wav upload")
	}
	return resilience.RetryValue(ctx, b.retry, func() (string, error) {
		return b.post(ctx, wav, sampleRate)
	})
}

// post performs a single multipart upload.
func (b *HTTPBackend) post(ctx context.Context, wav []byte, sampleRate int) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "utterance.wav")
	if err != nil {
		return "", resilience.Permanent(fmt.Errorf("create form file: %w", err))
	}
	if _, err := part.Write(wav); err != nil {
		return "", resilience.Permanent(fmt.Errorf("write audio data: %w", err))
	}
	_ = writer.WriteField("sample_rate", strconv.Itoa(sampleRate))
	if b.cfg.Language != "" {
		_ = writer.WriteField("language", b.cfg.Language)
	}
	if err := writer.Close(); err != nil {
		return "", resilience.Permanent(fmt.Errorf("finish multipart body: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.cfg.URL, &buf)
	if err != nil {
		return "", resilience.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if b.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+b.cfg.APIKey)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode >= 500 {
		return "", fmt.Errorf("server error %d: %s", resp.StatusCode, truncate(body, 200))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", resilience.Permanent(fmt.Errorf("http %d: %s", resp.StatusCode, truncate(body, 200)))
	}

	var parsed transcribeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", resilience.Permanent(fmt.Errorf("decode response: %w", err))
	}
	return parsed.Text, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
