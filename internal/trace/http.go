// Package trace - HTTP middleware for the metrics and WebSocket listeners.
package trace

import "net/http"

// Middleware extracts or creates a trace context for each HTTP request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tc := Context{
			TraceID:      r.Header.Get(TraceIDKey),
			ParentSpanID: r.Header.Get(SpanIDKey),
			SpanID:       newSpanID(),
		}
		if tc.TraceID == "" {
			tc.TraceID = newTraceID()
		}
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), tc)))
	})
}
