// Package config handles daemon configuration: compiled defaults overlaid
// with an optional YAML file, then LECTERN_* environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete daemon configuration.
type Config struct {
	Audio     AudioConfig     `yaml:"audio"`
	Segmenter SegmenterConfig `yaml:"segmenter"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Summarize SummarizeConfig `yaml:"summarize"`
	Runner    RunnerConfig    `yaml:"runner"`
	ASR       ASRConfig       `yaml:"asr"`
	Server    ServerConfig    `yaml:"server"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	History   HistoryConfig   `yaml:"history"`
	Watch     WatchConfig     `yaml:"watch"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// AudioConfig describes the capture stream. Input is always downmixed to
// mono before segmentation regardless of the device channel count.
type AudioConfig struct {
	SampleRate      int      `yaml:"sample_rate"`
	Channels        int      `yaml:"channels"`
	FrameSamples    int      `yaml:"frame_samples"`
	Device          string   `yaml:"device"`
	Loopback        bool     `yaml:"loopback"`
	ExcludedDevices []string `yaml:"excluded_devices"`
}

// SegmenterConfig holds the hysteresis thresholds for utterance detection.
// Durations are milliseconds; frame counts are derived from the audio config.
type SegmenterConfig struct {
	Threshold    float64 `yaml:"threshold"`
	MinSilenceMs int     `yaml:"min_silence_ms"`
	MinSpeechMs  int     `yaml:"min_speech_ms"`
	PrePadMs     int     `yaml:"pre_pad_ms"`
	PostPadMs    int     `yaml:"post_pad_ms"`
}

// PipelineConfig bounds transcription queue shutdown.
type PipelineConfig struct {
	DrainTimeoutSecs int `yaml:"drain_timeout_secs"`
	WorkerJoinSecs   int `yaml:"worker_join_secs"`
}

// SummarizeConfig holds the word-budget and generation knobs.
type SummarizeConfig struct {
	NCtx                int     `yaml:"n_ctx"`
	ChunkWords          int     `yaml:"chunk_words"`
	SummaryMaxTokens    int     `yaml:"summary_max_tokens"`
	SummaryTemperature  float64 `yaml:"summary_temperature"`
	FollowupMaxTokens   int     `yaml:"followup_max_tokens"`
	FollowupTemperature float64 `yaml:"followup_temperature"`
	MinWords            int     `yaml:"min_words"`
	MinSentences        int     `yaml:"min_sentences"`
	MaxCombinePasses    int     `yaml:"max_combine_passes"`
	BudgetFloorWords    int     `yaml:"budget_floor_words"`
	ReservedTokens      int     `yaml:"reserved_tokens"`
	SafetyMarginTokens  int     `yaml:"safety_margin_tokens"`
	TokensPerWord       float64 `yaml:"tokens_per_word"`
}

// RunnerConfig points at the model runner gRPC service.
type RunnerConfig struct {
	Addr string `yaml:"addr"`
}

// ASRConfig describes the HTTP transcription fallback. An empty URL
// disables the HTTP backend and transcription goes through the runner only.
type ASRConfig struct {
	URL         string `yaml:"url"`
	TimeoutSecs int    `yaml:"timeout_secs"`
	Language    string `yaml:"language"`
}

// ServerConfig controls the WebSocket mirror of the event stream.
type ServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// HistoryConfig controls the SQLite session archive.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// WatchConfig controls the drop-directory watcher for file transcription.
type WatchConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Dir      string `yaml:"dir"`
	SettleMs int    `yaml:"settle_ms"`
}

// LoggingConfig controls the slog handler. Logs always go to stderr:
// stdout carries the newline-delimited event stream.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Audio: AudioConfig{
			SampleRate:      16000,
			Channels:        1,
			FrameSamples:    512,
			ExcludedDevices: []string{"iphone", "teams"},
		},
		Segmenter: SegmenterConfig{
			Threshold:    0.5,
			MinSilenceMs: 600,
			MinSpeechMs:  200,
			PrePadMs:     200,
			PostPadMs:    200,
		},
		Pipeline: PipelineConfig{
			DrainTimeoutSecs: 30,
			WorkerJoinSecs:   2,
		},
		Summarize: SummarizeConfig{
			NCtx:                2048,
			ChunkWords:          800,
			SummaryMaxTokens:    512,
			SummaryTemperature:  0.2,
			FollowupMaxTokens:   320,
			FollowupTemperature: 0.7,
			MinWords:            20,
			MinSentences:        5,
			MaxCombinePasses:    6,
			BudgetFloorWords:    256,
			ReservedTokens:      512,
			SafetyMarginTokens:  64,
			TokensPerWord:       1.3,
		},
		Runner: RunnerConfig{
			Addr: "localhost:50051",
		},
		ASR: ASRConfig{
			TimeoutSecs: 120,
		},
		Server: ServerConfig{
			Addr: ":8700",
		},
		Metrics: MetricsConfig{
			Addr: ":9100",
		},
		History: HistoryConfig{
			Path: "lectern-history.db",
		},
		Watch: WatchConfig{
			SettleMs: 500,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (skipped when path is empty), then environment overrides. The result
// is validated before return.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Audio.SampleRate = getEnvInt("LECTERN_SAMPLE_RATE", c.Audio.SampleRate)
	c.Audio.FrameSamples = getEnvInt("LECTERN_FRAME_SAMPLES", c.Audio.FrameSamples)
	c.Audio.Device = getEnv("LECTERN_AUDIO_DEVICE", c.Audio.Device)
	c.Audio.Loopback = getEnvBool("LECTERN_LOOPBACK", c.Audio.Loopback)
	c.Audio.ExcludedDevices = getEnvList("LECTERN_EXCLUDED_DEVICES", c.Audio.ExcludedDevices)
	c.Segmenter.Threshold = getEnvFloat("LECTERN_VAD_THRESHOLD", c.Segmenter.Threshold)
	c.Segmenter.MinSilenceMs = getEnvInt("LECTERN_MIN_SILENCE_MS", c.Segmenter.MinSilenceMs)
	c.Segmenter.MinSpeechMs = getEnvInt("LECTERN_MIN_SPEECH_MS", c.Segmenter.MinSpeechMs)
	c.Runner.Addr = getEnv("LECTERN_RUNNER_ADDR", c.Runner.Addr)
	c.ASR.URL = getEnv("LECTERN_ASR_URL", c.ASR.URL)
	c.Server.Addr = getEnv("LECTERN_SERVER_ADDR", c.Server.Addr)
	c.Metrics.Addr = getEnv("LECTERN_METRICS_ADDR", c.Metrics.Addr)
	c.History.Path = getEnv("LECTERN_HISTORY_PATH", c.History.Path)
	c.Watch.Dir = getEnv("LECTERN_WATCH_DIR", c.Watch.Dir)
	c.Logging.Level = getEnv("LECTERN_LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnv("LECTERN_LOG_FORMAT", c.Logging.Format)
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Audio.Validate(); err != nil {
		return fmt.Errorf("audio config: %w", err)
	}
	if err := c.Segmenter.Validate(); err != nil {
		return fmt.Errorf("segmenter config: %w", err)
	}
	if err := c.Pipeline.Validate(); err != nil {
		return fmt.Errorf("pipeline config: %w", err)
	}
	if err := c.Summarize.Validate(); err != nil {
		return fmt.Errorf("summarize config: %w", err)
	}
	if err := c.Runner.Validate(); err != nil {
		return fmt.Errorf("runner config: %w", err)
	}
	if err := c.ASR.Validate(); err != nil {
		return fmt.Errorf("asr config: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics config: %w", err)
	}
	if err := c.History.Validate(); err != nil {
		return fmt.Errorf("history config: %w", err)
	}
	if err := c.Watch.Validate(); err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	return nil
}

func (a *AudioConfig) Validate() error {
	if a.SampleRate < 8000 || a.SampleRate > 48000 {
		return fmt.Errorf("sample_rate must be between 8000 and 48000 Hz, got %d", a.SampleRate)
	}
	if a.Channels < 1 {
		return fmt.Errorf("channels must be at least 1, got %d", a.Channels)
	}
	if a.FrameSamples < 64 || a.FrameSamples > 8192 {
		return fmt.Errorf("frame_samples must be between 64 and 8192, got %d", a.FrameSamples)
	}
	return nil
}

func (s *SegmenterConfig) Validate() error {
	if s.Threshold < 0 || s.Threshold > 1 {
		return fmt.Errorf("threshold must be between 0 and 1, got %f", s.Threshold)
	}
	if s.MinSilenceMs < 1 {
		return fmt.Errorf("min_silence_ms must be positive, got %d", s.MinSilenceMs)
	}
	if s.MinSpeechMs < 1 {
		return fmt.Errorf("min_speech_ms must be positive, got %d", s.MinSpeechMs)
	}
	if s.PrePadMs < 0 {
		return fmt.Errorf("pre_pad_ms cannot be negative, got %d", s.PrePadMs)
	}
	if s.PostPadMs < 0 {
		return fmt.Errorf("post_pad_ms cannot be negative, got %d", s.PostPadMs)
	}
	return nil
}

func (p *PipelineConfig) Validate() error {
	if p.DrainTimeoutSecs < 1 {
		return fmt.Errorf("drain_timeout_secs must be at least 1, got %d", p.DrainTimeoutSecs)
	}
	if p.WorkerJoinSecs < 0 {
		return fmt.Errorf("worker_join_secs cannot be negative, got %d", p.WorkerJoinSecs)
	}
	return nil
}

func (s *SummarizeConfig) Validate() error {
	if s.NCtx < 512 {
		return fmt.Errorf("n_ctx must be at least 512, got %d", s.NCtx)
	}
	if s.ChunkWords < 1 {
		return fmt.Errorf("chunk_words must be positive, got %d", s.ChunkWords)
	}
	if s.SummaryMaxTokens < 1 || s.FollowupMaxTokens < 1 {
		return fmt.Errorf("max tokens must be positive, got summary=%d followup=%d",
			s.SummaryMaxTokens, s.FollowupMaxTokens)
	}
	if s.SummaryTemperature < 0 || s.SummaryTemperature > 2 {
		return fmt.Errorf("summary_temperature must be between 0 and 2, got %f", s.SummaryTemperature)
	}
	if s.FollowupTemperature < 0 || s.FollowupTemperature > 2 {
		return fmt.Errorf("followup_temperature must be between 0 and 2, got %f", s.FollowupTemperature)
	}
	if s.MinWords < 0 {
		return fmt.Errorf("min_words cannot be negative, got %d", s.MinWords)
	}
	if s.MinSentences < 1 {
		return fmt.Errorf("min_sentences must be at least 1, got %d", s.MinSentences)
	}
	if s.MaxCombinePasses < 1 {
		return fmt.Errorf("max_combine_passes must be at least 1, got %d", s.MaxCombinePasses)
	}
	if s.BudgetFloorWords < 1 {
		return fmt.Errorf("budget_floor_words must be positive, got %d", s.BudgetFloorWords)
	}
	if s.ReservedTokens < 0 || s.SafetyMarginTokens < 0 {
		return fmt.Errorf("token reserves cannot be negative, got reserved=%d safety=%d",
			s.ReservedTokens, s.SafetyMarginTokens)
	}
	if s.TokensPerWord <= 0 {
		return fmt.Errorf("tokens_per_word must be positive, got %f", s.TokensPerWord)
	}
	return nil
}

func (r *RunnerConfig) Validate() error {
	if r.Addr == "" {
		return fmt.Errorf("addr cannot be empty")
	}
	return nil
}

func (a *ASRConfig) Validate() error {
	if a.URL != "" && a.TimeoutSecs < 1 {
		return fmt.Errorf("timeout_secs must be at least 1 when url is set, got %d", a.TimeoutSecs)
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Enabled && s.Addr == "" {
		return fmt.Errorf("addr cannot be empty when server is enabled")
	}
	return nil
}

func (m *MetricsConfig) Validate() error {
	if m.Enabled && m.Addr == "" {
		return fmt.Errorf("addr cannot be empty when metrics is enabled")
	}
	return nil
}

func (h *HistoryConfig) Validate() error {
	if h.Enabled && h.Path == "" {
		return fmt.Errorf("path cannot be empty when history is enabled")
	}
	return nil
}

func (w *WatchConfig) Validate() error {
	if w.Enabled && w.Dir == "" {
		return fmt.Errorf("dir cannot be empty when watch is enabled")
	}
	if w.SettleMs < 0 {
		return fmt.Errorf("settle_ms cannot be negative, got %d", w.SettleMs)
	}
	return nil
}

func (l *LoggingConfig) Validate() error {
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	switch l.Format {
	case "json", "text":
	default:
		return fmt.Errorf("format must be 'json' or 'text', got %q", l.Format)
	}
	return nil
}

// MinSilence returns the silence threshold as a duration.
func (s *SegmenterConfig) MinSilence() time.Duration {
	return time.Duration(s.MinSilenceMs) * time.Millisecond
}

// MinSpeech returns the speech threshold as a duration.
func (s *SegmenterConfig) MinSpeech() time.Duration {
	return time.Duration(s.MinSpeechMs) * time.Millisecond
}

// DrainTimeout returns the queue drain bound as a duration.
func (p *PipelineConfig) DrainTimeout() time.Duration {
	return time.Duration(p.DrainTimeoutSecs) * time.Second
}

// WorkerJoin returns the worker shutdown grace as a duration.
func (p *PipelineConfig) WorkerJoin() time.Duration {
	return time.Duration(p.WorkerJoinSecs) * time.Second
}

// Timeout returns the HTTP transcription deadline as a duration.
func (a *ASRConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSecs) * time.Second
}

// Settle returns the watcher stability window as a duration.
func (w *WatchConfig) Settle() time.Duration {
	return time.Duration(w.SettleMs) * time.Millisecond
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true" || v == "1"
	}
	return def
}

func getEnvList(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if t := strings.TrimSpace(p); t != "" {
				result = append(result, t)
			}
		}
		return result
	}
	return def
}
