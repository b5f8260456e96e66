// Package trace - gRPC interceptors propagating trace IDs to the model runner.
package trace

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// UnaryClientInterceptor injects trace context into outgoing unary calls.
func UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		return invoker(outgoing(ctx), method, req, reply, cc, opts...)
	}
}

// StreamClientInterceptor injects trace context into outgoing streams.
func StreamClientInterceptor() grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		return streamer(outgoing(ctx), desc, cc, method, opts...)
	}
}

// outgoing copies the trace identifiers from ctx into gRPC metadata,
// minting a fresh context when none is present.
func outgoing(ctx context.Context) context.Context {
	tc, ok := FromContext(ctx)
	if !ok {
		tc = New()
		ctx = WithContext(ctx, tc)
	}

	md, ok := metadata.FromOutgoingContext(ctx)
	if !ok {
		md = metadata.New(nil)
	} else {
		md = md.Copy()
	}

	md.Set(TraceIDKey, tc.TraceID)
	md.Set(SpanIDKey, tc.SpanID)
	if tc.ParentSpanID != "" {
		md.Set(ParentSpanIDKey, tc.ParentSpanID)
	}

	return metadata.NewOutgoingContext(ctx, md)
}
