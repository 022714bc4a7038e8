package api

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const requestIDKey contextKey = "api_request_id"

// WithRequestID attaches a request id to the context. The client sends it as
// X-Request-ID so client events and server logs can be correlated.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFrom returns the request id on ctx, or a fresh one.
func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v
	}
	return uuid.NewString()
}
