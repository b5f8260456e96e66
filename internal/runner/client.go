// Package runner is the gRPC client for the model-runner sidecar that hosts
// the VAD, transcription and generation models.
//
// The real-time scoring path and the heavyweight model path get separate
// circuit breakers: a dead runner must fail scoring within milliseconds so
// capture degrades to the energy fallback, while transcription and
// generation retry with backoff before giving up.
package runner

import (
	"context"
	"encoding/binary"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"

	apperrors "github.com/lecternhq/lectern/backend/daemon/internal/errors"
	"github.com/lecternhq/lectern/backend/daemon/internal/llm"
	"github.com/lecternhq/lectern/backend/daemon/internal/resilience"
	"github.com/lecternhq/lectern/backend/daemon/internal/summarize"
	"github.com/lecternhq/lectern/backend/daemon/internal/trace"
	"github.com/lecternhq/lectern/backend/daemon/pkg/pb"
)

// Config holds connection settings. Zero fields take defaults.
type Config struct {
	Addr                string
	KeepaliveTime       time.Duration
	KeepaliveTimeout    time.Duration
	HealthCheckInterval time.Duration
	ScoreTimeout        time.Duration
	TranscribeTimeout   time.Duration
}

// DefaultConfig returns standard client settings.
func DefaultConfig() Config {
	return Config{
		Addr:                "localhost:50051",
		KeepaliveTime:       DefaultKeepaliveTime,
		KeepaliveTimeout:    DefaultKeepaliveTimeout,
		HealthCheckInterval: DefaultHealthCheckInterval,
		ScoreTimeout:        DefaultScoreTimeout,
		TranscribeTimeout:   DefaultTranscribeTimeout,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Addr == "" {
		c.Addr = def.Addr
	}
	if c.KeepaliveTime <= 0 {
		c.KeepaliveTime = def.KeepaliveTime
	}
	if c.KeepaliveTimeout <= 0 {
		c.KeepaliveTimeout = def.KeepaliveTimeout
	}
	if c.HealthCheckInterval <= 0 {
		c.HealthCheckInterval = def.HealthCheckInterval
	}
	if c.ScoreTimeout <= 0 {
		c.ScoreTimeout = def.ScoreTimeout
	}
	if c.TranscribeTimeout <= 0 {
		c.TranscribeTimeout = def.TranscribeTimeout
	}
	return c
}

// Client wraps the runner service stubs. Safe for concurrent use.
type Client struct {
	cfg  Config
	conn *grpc.ClientConn
	vad  pb.VadServiceClient
	asr  pb.TranscriptionServiceClient
	gen  pb.GenerationServiceClient

	scoreBreaker *resilience.Breaker
	modelBreaker *resilience.Breaker
	retry        resilience.RetryConfig

	healthy    atomic.Bool
	stopHealth context.CancelFunc
	healthDone chan struct{}
}

// New creates a client for the runner at cfg.Addr. The connection is lazy;
// a runner that is down at startup only surfaces when the first call fails.
func New(cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()
	conn, err := grpc.NewClient(cfg.Addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                cfg.KeepaliveTime,
			Timeout:             cfg.KeepaliveTimeout,
			PermitWithoutStream: true,
		}),
		grpc.WithUnaryInterceptor(trace.UnaryClientInterceptor()),
		grpc.WithStreamInterceptor(trace.StreamClientInterceptor()),
	)
	if err != nil {
		return nil, apperrors.Wrapf(err, pb.ErrorCode_UNAVAILABLE, "dial runner %s", cfg.Addr)
	}

	c := &Client{
		cfg:  cfg,
		conn: conn,
		vad:  pb.NewVadServiceClient(conn),
		asr:  pb.NewTranscriptionServiceClient(conn),
		gen:  pb.NewGenerationServiceClient(conn),
		scoreBreaker: resilience.NewBreaker(resilience.ScoringBreakerConfig()).
			WithHook(breakerLog("vad scoring")),
		modelBreaker: resilience.NewBreaker(resilience.DefaultBreakerConfig()).
			WithHook(breakerLog("model calls")),
		retry:      resilience.DefaultRetryConfig(),
		healthDone: make(chan struct{}),
	}
	c.healthy.Store(true)

	ctx, cancel := context.WithCancel(context.Background())
	c.stopHealth = cancel
	go c.watchHealth(ctx)
	return c, nil
}

func breakerLog(path string) func(from, to resilience.State) {
	return func(from, to resilience.State) {
		slog.Warn("runner circuit breaker transition", "path", path, "from", from.String(), "to", to.String())
	}
}

// Close stops the health watcher and closes the connection.
func (c *Client) Close() error {
	c.stopHealth()
	<-c.healthDone
	return c.conn.Close()
}

// Healthy reports the last observed connectivity. Informational only;
// callers still handle per-call errors.
func (c *Client) Healthy() bool {
	return c.healthy.Load()
}

func (c *Client) watchHealth(ctx context.Context) {
	defer close(c.healthDone)
	ticker := time.NewTicker(c.cfg.HealthCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			state := c.conn.GetState()
			ok := state != connectivity.TransientFailure && state != connectivity.Shutdown
			if !ok {
				c.conn.Connect()
			}
			if prev := c.healthy.Swap(ok); prev != ok {
				if ok {
					slog.Info("model runner reachable", "state", state.String())
				} else {
					slog.Warn("model runner unreachable", "addr", c.cfg.Addr, "state", state.String())
				}
			}
		}
	}
}

// Score runs VAD on one PCM frame. Fails fast through the scoring breaker;
// callers layer an energy fallback on top.
func (c *Client) Score(ctx context.Context, samples []int16, sampleRate int) (float64, error) {
	return resilience.Call(c.scoreBreaker, func() (float64, error) {
		callCtx, cancel := context.WithTimeout(ctx, c.cfg.ScoreTimeout)
		defer cancel()
		resp, err := c.vad.DetectSpeech(callCtx, &pb.VadRequest{
			AudioChunk: pcmBytes(samples),
			SampleRate: int32(sampleRate),
		})
		if err != nil {
			return 0, apperrors.Wrap(err, pb.ErrorCode_AUDIO_VAD_FAILED, "detect speech")
		}
		return float64(resp.SpeechProbability), nil
	})
}

// ResetVAD clears the VAD model's recurrent state.
func (c *Client) ResetVAD(ctx context.Context) error {
	_, err := c.vad.ResetState(ctx, &pb.ResetStateRequest{})
	if err != nil {
		return apperrors.Wrap(err, pb.ErrorCode_AUDIO_VAD_FAILED, "reset vad state")
	}
	return nil
}

// Transcribe converts one utterance to text, retrying transient failures.
func (c *Client) Transcribe(ctx context.Context, samples []int16, sampleRate int) (string, error) {
	return resilience.Call(c.modelBreaker, func() (string, error) {
		// Raw transport errors drive retry classification; wrapping
		// happens only once the retries are spent.
		text, err := resilience.RetryValue(ctx, c.retry, func() (string, error) {
			callCtx, cancel := context.WithTimeout(ctx, c.cfg.TranscribeTimeout)
			defer cancel()
			resp, err := c.asr.Transcribe(callCtx, &pb.TranscribeRequest{
				AudioData:  pcmBytes(samples),
				SampleRate: int32(sampleRate),
			})
			if err != nil {
				return "", err
			}
			return resp.Text, nil
		})
		if err != nil {
			return "", apperrors.Wrap(err, pb.ErrorCode_ASR_TRANSCRIPTION_FAILED, "transcribe utterance")
		}
		return text, nil
	})
}

// LoadModel swaps the model for the given kind and returns the path the
// runner reports as loaded.
func (c *Client) LoadModel(ctx context.Context, path, kind string) (string, error) {
	req := &pb.LoadModelRequest{Path: path, Kind: kind}
	var (
		resp *pb.LoadModelResponse
		err  error
	)
	switch kind {
	case KindASR:
		resp, err = c.asr.LoadModel(ctx, req)
	case KindLLM:
		resp, err = c.gen.LoadModel(ctx, req)
	default:
		return "", apperrors.Newf(pb.ErrorCode_INVALID_ARGUMENT, "unknown model kind %q", kind)
	}
	if err != nil {
		return "", apperrors.Wrapf(err, loadFailureCode(kind), "load %s model", kind)
	}
	if !resp.Success {
		return "", apperrors.Newf(loadFailureCode(kind), "runner rejected model %s", path)
	}
	return resp.Model, nil
}

func loadFailureCode(kind string) pb.ErrorCode {
	if kind == KindASR {
		return pb.ErrorCode_ASR_MODEL_LOAD_FAILED
	}
	return pb.ErrorCode_LLM_MODEL_LOAD_FAILED
}

// Generate streams a completion. Fragments are forwarded to onDelta as they
// arrive; the returned string is the overlap-collapsed full text, so callers
// get a consistent result whether the runner streams deltas or cumulative
// snapshots. Implements the llm.Generator interface.
func (c *Client) Generate(ctx context.Context, req llm.Request, onDelta func(string)) (string, error) {
	return resilience.Call(c.modelBreaker, func() (string, error) {
		stream, err := c.gen.Generate(ctx, &pb.GenerateRequest{
			Prompt:      req.Prompt,
			MaxTokens:   int32(req.MaxTokens),
			Temperature: float32(req.Temperature),
		})
		if err != nil {
			return "", apperrors.Wrap(err, pb.ErrorCode_LLM_GENERATION_FAILED, "start generation")
		}

		acc := summarize.NewAccumulator()
		for {
			chunk, err := stream.Recv()
			if err == io.EOF {
				break
			}
			if err != nil {
				return "", apperrors.Wrap(err, pb.ErrorCode_LLM_GENERATION_FAILED, "generation stream")
			}
			if chunk.Content != "" {
				acc.Add(chunk.Content)
				if onDelta != nil {
					onDelta(chunk.Content)
				}
			}
			if chunk.Done {
				break
			}
		}
		return acc.Text(), nil
	})
}

// pcmBytes serializes samples as little-endian 16-bit PCM, the encoding the
// runner expects on the wire.
func pcmBytes(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}
