package asr

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lecternhq/lectern/backend/daemon/internal/resilience"
	"github.com/lecternhq/lectern/backend/daemon/internal/wavio"
)

// fastRetry keeps upload retries snappy in tests.
func fastRetry() resilience.RetryConfig {
	return resilience.RetryConfig{
		MaxRetries:   3,
		BaseDelay:    time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		JitterFactor: 0.1,
		IsRetryable:  resilience.IsRetryable,
	}
}

func TestHTTPBackendTranscribe(t *testing.T) {
	var gotAuth, gotLanguage, gotSampleRate string
	var gotWav []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm() error = %v", err)
		}
		gotLanguage = r.FormValue("language")
		gotSampleRate = r.FormValue("sample_rate")
		file, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile() error = %v", err)
		} else {
			gotWav, _ = io.ReadAll(file)
			file.Close()
		}
		w.Write([]byte(`{"text":" hello there "}`))
	}))
	defer srv.Close()

	b := NewHTTP(HTTPConfig{URL: srv.URL, APIKey: "secret", Language: "en"})
	b.retry = fastRetry()

	samples := []int16{100, -100, 200, -200}
	text, err := b.Transcribe(context.Background(), samples, 16000)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if text != " hello there " {
		t.Errorf("Transcribe() = %q, want service text verbatim", text)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q, want Bearer secret", gotAuth)
	}
	if gotLanguage != "en" {
		t.Errorf("language field = %q, want en", gotLanguage)
	}
	if gotSampleRate != "16000" {
		t.Errorf("sample_rate field = %q, want 16000", gotSampleRate)
	}

	decoded, rate, err := wavio.Decode(gotWav)
	if err != nil {
		t.Fatalf("uploaded payload is not valid WAV: %v", err)
	}
	if rate != 16000 || len(decoded) != len(samples) {
		t.Errorf("uploaded wav = %d samples at %d Hz, want %d at 16000", len(decoded), rate, len(samples))
	}
}

func TestHTTPBackendRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "model loading", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"text":"second try"}`))
	}))
	defer srv.Close()

	b := NewHTTP(HTTPConfig{URL: srv.URL})
	b.retry = fastRetry()

	text, err := b.Transcribe(context.Background(), []int16{1, 2}, 16000)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if text != "second try" {
		t.Errorf("Transcribe() = %q, want %q", text, "second try")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("requests = %d, want 2", got)
	}
}

func TestHTTPBackendClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad audio", http.StatusBadRequest)
	}))
	defer srv.Close()

	b := NewHTTP(HTTPConfig{URL: srv.URL})
	b.retry = fastRetry()

	if _, err := b.Transcribe(context.Background(), []int16{1, 2}, 16000); err == nil {
		t.Fatal("Transcribe() error = nil, want http 400 failure")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("requests = %d, want 1 (no retry on 4xx)", got)
	}
}

func TestHTTPBackendHonorsContextWhileQueued(t *testing.T) {
	b := NewHTTP(HTTPConfig{URL: "http://unused", MaxConcurrent: 1})
	b.retry = fastRetry()

	// Saturate the semaphore, then a second call must give up on cancel.
	b.sem <- struct{}{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := b.Transcribe(ctx, []int16{1}, 16000); err != context.Canceled {
		t.Errorf("Transcribe() error = %v, want context.Canceled", err)
	}
}
