// Package watch turns a drop directory into a transcription inbox: WAV
// files appearing there are submitted as transcribe commands once their
// size stops changing.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lecternhq/lectern/backend/daemon/internal/protocol"
)

const defaultSettle = 500 * time.Millisecond

// Watcher monitors one directory. submit receives exactly one transcribe
// command per dropped WAV file, after the file settles.
type Watcher struct {
	dir    string
	settle time.Duration
	submit func(protocol.Command)
	fw     *fsnotify.Watcher

	mu   sync.Mutex
	seen map[string]bool
}

// New starts watching dir. settle is how long a file's size must hold
// still before it counts as fully written.
func New(dir string, settle time.Duration, submit func(protocol.Command)) (*Watcher, error) {
	if settle <= 0 {
		settle = defaultSettle
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create directory watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{
		dir:    dir,
		settle: settle,
		submit: submit,
		fw:     fw,
		seen:   make(map[string]bool),
	}, nil
}

// Run consumes filesystem events until ctx is cancelled or the watcher
// is closed. Files already present at startup are picked up too.
func (w *Watcher) Run(ctx context.Context) {
	slog.Info("watching drop directory", slog.String("dir", w.dir))
	w.scanExisting(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			w.track(ctx, ev.Name)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			slog.Warn("directory watcher error", slog.Any("error", err))
		}
	}
}

// Close stops the underlying watcher, which also unblocks Run.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

func (w *Watcher) scanExisting(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		slog.Warn("initial scan of drop directory failed", slog.Any("error", err))
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		w.track(ctx, filepath.Join(w.dir, entry.Name()))
	}
}

// track registers path for settling exactly once. Non-WAV files are
// ignored.
func (w *Watcher) track(ctx context.Context, path string) {
	if !strings.EqualFold(filepath.Ext(path), ".wav") {
		return
	}
	w.mu.Lock()
	if w.seen[path] {
		w.mu.Unlock()
		return
	}
	w.seen[path] = true
	w.mu.Unlock()

	go w.awaitStable(ctx, path)
}

func (w *Watcher) forget(path string) {
	w.mu.Lock()
	delete(w.seen, path)
	w.mu.Unlock()
}

// awaitStable polls the file size at the settle interval and submits
// once two consecutive reads agree on a non-empty size.
func (w *Watcher) awaitStable(ctx context.Context, path string) {
	ticker := time.NewTicker(w.settle)
	defer ticker.Stop()

	var lastSize int64 = -1
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			info, err := os.Stat(path)
			if err != nil {
				// Vanished before settling; a later drop may retry.
				w.forget(path)
				return
			}
			size := info.Size()
			if size > 0 && size == lastSize {
				out := strings.TrimSuffix(path, filepath.Ext(path)) + ".txt"
				slog.Info("dropped file settled, submitting transcription",
					slog.String("wav", path),
					slog.Int64("bytes", size))
				w.submit(protocol.Command{Cmd: protocol.CmdTranscribe, WAV: path, Out: out})
				return
			}
			lastSize = size
		}
	}
}
