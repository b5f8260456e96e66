package trace

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewContextIDs(t *testing.T) {
	tc := New()
	if len(tc.TraceID) != 32 {
		t.Errorf("trace ID should be 32 chars, got %d", len(tc.TraceID))
	}
	if len(tc.SpanID) != 16 {
		t.Errorf("span ID should be 16 chars, got %d", len(tc.SpanID))
	}
	if tc.ParentSpanID != "" {
		t.Error("new context should not have a parent span ID")
	}
}

func TestIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := newTraceID()
		if seen[id] {
			t.Error("generated duplicate trace ID")
		}
		seen[id] = true
	}
}

func TestNewChild(t *testing.T) {
	parent := New()
	child := NewChild(parent)

	if child.TraceID != parent.TraceID {
		t.Error("child should inherit trace ID")
	}
	if child.SpanID == parent.SpanID {
		t.Error("child should have a new span ID")
	}
	if child.ParentSpanID != parent.SpanID {
		t.Error("child's parent should be parent's span ID")
	}
}

func TestContextRoundTrip(t *testing.T) {
	tc := New()
	ctx := WithContext(context.Background(), tc)

	got, ok := FromContext(ctx)
	if !ok {
		t.Fatal("FromContext should find injected context")
	}
	if got.TraceID != tc.TraceID || got.SpanID != tc.SpanID {
		t.Errorf("FromContext = %+v, want %+v", got, tc)
	}

	if _, ok := FromContext(context.Background()); ok {
		t.Error("FromContext on empty context should report false")
	}
}

func TestStartSpanChains(t *testing.T) {
	ctx, root := StartSpan(context.Background(), "command")
	_, child := StartSpan(ctx, "runner_call")

	if child.Ctx.TraceID != root.Ctx.TraceID {
		t.Error("child span should share the root trace ID")
	}
	if child.Ctx.ParentSpanID != root.Ctx.SpanID {
		t.Error("child span's parent should be the root span")
	}

	root.End()
	if root.Duration() <= 0 {
		t.Error("ended span should report a positive duration")
	}
}

func TestSpanOpenDuration(t *testing.T) {
	_, s := StartSpan(context.Background(), "open")
	if s.Duration() != 0 {
		t.Errorf("open span duration = %v, want 0", s.Duration())
	}
}

func TestMiddleware(t *testing.T) {
	var got Context
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set(TraceIDKey, "0123456789abcdef0123456789abcdef")
	req.Header.Set(SpanIDKey, "0123456789abcdef")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got.TraceID != "0123456789abcdef0123456789abcdef" {
		t.Errorf("TraceID = %q, want propagated header value", got.TraceID)
	}
	if got.ParentSpanID != "0123456789abcdef" {
		t.Errorf("ParentSpanID = %q, want caller span", got.ParentSpanID)
	}

	// No headers: a fresh trace is minted.
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if len(got.TraceID) != 32 {
		t.Errorf("minted TraceID length = %d, want 32", len(got.TraceID))
	}
}
