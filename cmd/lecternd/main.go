// lecternd - captures tutoring-session audio, transcribes it, and answers
// summarize/follow-up commands over newline-delimited JSON on stdin/stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lecternhq/lectern/backend/daemon/internal/asr"
	"github.com/lecternhq/lectern/backend/daemon/internal/config"
	"github.com/lecternhq/lectern/backend/daemon/internal/daemon"
	"github.com/lecternhq/lectern/backend/daemon/internal/history"
	"github.com/lecternhq/lectern/backend/daemon/internal/metrics"
	"github.com/lecternhq/lectern/backend/daemon/internal/protocol"
	"github.com/lecternhq/lectern/backend/daemon/internal/runner"
	"github.com/lecternhq/lectern/backend/daemon/internal/server"
	"github.com/lecternhq/lectern/backend/daemon/internal/summarize"
	"github.com/lecternhq/lectern/backend/daemon/internal/trace"
	"github.com/lecternhq/lectern/backend/daemon/internal/vad"
	"github.com/lecternhq/lectern/backend/daemon/internal/watch"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lecternd: %v\n", err)
		os.Exit(1)
	}
	initLogger(cfg.Logging)

	slog.Info("lecternd starting",
		slog.String("runner", cfg.Runner.Addr),
		slog.Int("sample_rate", cfg.Audio.SampleRate),
		slog.Bool("loopback", cfg.Audio.Loopback))

	// Connect to the model runner sidecar
	client, err := runner.New(runner.Config{Addr: cfg.Runner.Addr})
	if err != nil {
		slog.Error("failed to connect to model runner", "addr", cfg.Runner.Addr, "error", err)
		os.Exit(1)
	}
	defer func() { _ = client.Close() }()

	// Transcription: runner first, HTTP service as fallback when configured
	registry := asr.NewRegistry()
	registry.Register(client.Backend())
	if cfg.ASR.URL != "" {
		registry.Register(asr.NewHTTP(asr.HTTPConfig{
			URL:      cfg.ASR.URL,
			Language: cfg.ASR.Language,
			Timeout:  cfg.ASR.Timeout(),
		}))
		if err := registry.SetFallback("http"); err != nil {
			slog.Warn("http transcription fallback not available", "error", err)
		}
	}

	engine := summarize.NewEngine(client, summarize.Config{
		Budget: summarize.Budget{
			NCtx:               cfg.Summarize.NCtx,
			ReservedTokens:     cfg.Summarize.ReservedTokens,
			SafetyMarginTokens: cfg.Summarize.SafetyMarginTokens,
			TokensPerWord:      cfg.Summarize.TokensPerWord,
			FloorWords:         cfg.Summarize.BudgetFloorWords,
		},
		ChunkWords:         cfg.Summarize.ChunkWords,
		SummaryMaxTokens:   cfg.Summarize.SummaryMaxTokens,
		SummaryTemperature: cfg.Summarize.SummaryTemperature,
		FollowupMaxTokens:  cfg.Summarize.FollowupMaxTokens,
		MinWords:           cfg.Summarize.MinWords,
		MinSentences:       cfg.Summarize.MinSentences,
		MaxCombinePasses:   cfg.Summarize.MaxCombinePasses,
	})

	mx := metrics.New(nil)
	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		mx = metrics.New(reg)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		metricsSrv = &http.Server{
			Addr:         cfg.Metrics.Addr,
			Handler:      trace.Middleware(mux),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		go func() {
			slog.Info("metrics endpoint listening", "addr", cfg.Metrics.Addr)
			if err := metricsSrv.ListenAndServe(); err != http.ErrServerClosed {
				slog.Error("metrics server error", "error", err)
			}
		}()
	}

	var hist *history.Store
	if cfg.History.Enabled {
		hist, err = history.Open(cfg.History.Path)
		if err != nil {
			// The archive is auxiliary; the capture surface still works.
			slog.Warn("history store unavailable", "path", cfg.History.Path, "error", err)
			hist = nil
		} else {
			defer func() { _ = hist.Close() }()
		}
	}

	var hub *server.Hub
	if cfg.Server.Enabled {
		hub = server.NewHub()
	}

	d, err := daemon.New(daemon.Deps{
		Config:      cfg,
		Out:         protocol.NewWriter(os.Stdout),
		Scorer:      vad.NewFailover(client.Scorer(), vad.NewEnergyScorer()),
		Transcriber: registry,
		Engine:      engine,
		Loader:      client,
		Hub:         hub,
		Metrics:     mx,
		History:     hist,
	})
	if err != nil {
		slog.Error("failed to build daemon", "error", err)
		os.Exit(1)
	}

	var wsSrv *http.Server
	if cfg.Server.Enabled {
		srv := server.New(hub, d.Submit, hist, mx)
		wsSrv = &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      srv.Handler(),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		go func() {
			slog.Info("websocket mirror listening", "addr", cfg.Server.Addr)
			if err := wsSrv.ListenAndServe(); err != http.ErrServerClosed {
				slog.Error("websocket server error", "error", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var watcher *watch.Watcher
	if cfg.Watch.Enabled {
		watcher, err = watch.New(cfg.Watch.Dir, cfg.Watch.Settle(), d.Submit)
		if err != nil {
			slog.Warn("drop-directory watcher unavailable", "dir", cfg.Watch.Dir, "error", err)
		} else {
			go watcher.Run(ctx)
		}
	}

	if err := d.Run(ctx, os.Stdin); err != nil {
		slog.Error("daemon error", "error", err)
	}

	slog.Info("shutting down...")

	if wsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := wsSrv.Shutdown(shutdownCtx); err != nil {
			slog.Error("websocket shutdown error", "error", err)
		}
		cancel()
	}
	if hub != nil {
		// Shutdown does not touch hijacked connections; closing the hub ends
		// every write pump, which closes the sockets.
		hub.Close()
	}
	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics shutdown error", "error", err)
		}
		cancel()
	}
	if watcher != nil {
		_ = watcher.Close()
	}

	slog.Info("shutdown complete")
}

// initLogger configures the default slog handler. Output always goes to
// stderr; stdout carries the event stream.
func initLogger(cfg config.LoggingConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
