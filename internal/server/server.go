// Package server exposes the daemon's event stream and command intake over
// WebSocket, plus a small JSON API for session history. Every event the
// daemon writes to stdout is also published to the hub; connected clients
// receive the same NDJSON objects and may submit the same commands.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/lecternhq/lectern/backend/daemon/internal/history"
	"github.com/lecternhq/lectern/backend/daemon/internal/metrics"
	"github.com/lecternhq/lectern/backend/daemon/internal/protocol"
	"github.com/lecternhq/lectern/backend/daemon/internal/trace"
)

// Hub fans events out to subscribers. Publish never blocks: a subscriber
// whose buffer is full is dropped instead.
type Hub struct {
	mu   sync.Mutex
	subs map[chan protocol.Event]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan protocol.Event]struct{})}
}

// Subscribe registers a new subscriber. The returned cancel removes it and
// closes the channel; calling cancel more than once is safe.
func (h *Hub) Subscribe() (<-chan protocol.Event, func()) {
	ch := make(chan protocol.Event, SubscriberBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// Publish delivers ev to every subscriber that has room. Subscribers whose
// buffer is full are unsubscribed and their channel closed; the capture and
// dispatch goroutines must never stall on a slow WebSocket client.
func (h *Hub) Publish(ev protocol.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
			delete(h.subs, ch)
			close(ch)
		}
	}
}

// Count reports the number of active subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close drops every subscriber. Called on shutdown so clients see the
// stream end rather than a silent stall.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}

// rateLimiter tracks message timestamps using a sliding window.
type rateLimiter struct {
	timestamps []time.Time
	mu         sync.Mutex
}

// allow checks if a message is allowed and records the timestamp if so.
func (r *rateLimiter) allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-RateLimitWindow)

	// Prune old timestamps
	valid := r.timestamps[:0]
	for _, t := range r.timestamps {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	r.timestamps = valid

	if len(r.timestamps) >= RateLimitMessages {
		return false
	}

	r.timestamps = append(r.timestamps, now)
	return true
}

// Server handles WebSocket connections and the history API.
type Server struct {
	hub    *Hub
	submit func(protocol.Command)
	hist   *history.Store
	mx     *metrics.Metrics
}

// New creates a server publishing from hub and forwarding client commands
// through submit. hist may be nil, disabling the history endpoint; mx may
// be nil, disabling metric registration.
func New(hub *Hub, submit func(protocol.Command), hist *history.Store, mx *metrics.Metrics) *Server {
	if submit == nil {
		submit = func(protocol.Command) {}
	}
	if mx == nil {
		mx = metrics.New(nil)
	}
	return &Server{hub: hub, submit: submit, hist: hist, mx: mx}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// WebSocket endpoint
	mux.HandleFunc("/ws", s.handleWebSocket)

	// REST API
	if s.hist != nil {
		mux.HandleFunc("GET /api/history", s.handleHistory)
	}

	// Apply middleware: trace -> CORS
	return corsMiddleware(trace.Middleware(mux))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("websocket accept error", "error", err)
		return
	}
	defer func() { _ = conn.Close(websocket.StatusNormalClosure, "") }()

	s.mx.WSClients.Inc()
	defer s.mx.WSClients.Dec()

	events, cancel := s.hub.Subscribe()
	defer cancel()

	// Get trace context from HTTP upgrade request
	baseCtx := r.Context()
	log := trace.Logger(baseCtx)
	log.Info("websocket connected", "remote", r.RemoteAddr)

	// Write pump. Exits when the subscription closes, either through the
	// deferred cancel or because the hub dropped this client for falling
	// behind; closing the conn then unblocks the read loop below.
	go func() {
		for ev := range events {
			ctx, cancelWrite := context.WithTimeout(context.Background(), WriteTimeout)
			err := wsjson.Write(ctx, conn, ev)
			cancelWrite()
			if err != nil {
				return
			}
		}
		_ = conn.Close(websocket.StatusGoingAway, "event stream closed")
	}()

	rl := &rateLimiter{}
	for {
		var cmd protocol.Command
		if err := wsjson.Read(baseCtx, conn, &cmd); err != nil {
			log.Debug("websocket read error", "error", err)
			return
		}

		if !rl.allow() {
			log.Warn("rate limit exceeded", "remote", r.RemoteAddr)
			_ = wsjson.Write(baseCtx, conn, protocol.ErrorEvent("rate limit exceeded"))
			continue
		}

		s.submit(cmd)
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	n := 20
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid n", http.StatusBadRequest)
			return
		}
		n = parsed
	}
	if n > HistoryLimitMax {
		n = HistoryLimitMax
	}

	recs, err := s.hist.Recent(n)
	if err != nil {
		trace.Logger(r.Context()).Error("history query failed", "error", err)
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []history.Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(recs)
}
