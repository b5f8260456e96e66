// Package server mirrors daemon events over WebSocket
package server

import "time"

// Server configuration constants
const (
	// Per-connection command rate limiting
	RateLimitMessages = 30          // Max commands per connection per window
	RateLimitWindow   = time.Second // Sliding window duration

	// Events buffered per subscriber. A subscriber that falls this far
	// behind is dropped so the event path never blocks on a client.
	SubscriberBuffer = 64

	// Bound on one broadcast write to one client
	WriteTimeout = 5 * time.Second

	// Row cap for the history endpoint
	HistoryLimitMax = 100
)
