package predictionguard

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

const (
	contextKeyRequestID  contextKey = "predictionguard_request_id"
	contextKeyCapability contextKey = "predictionguard_capability"
	contextKeyStartTime  contextKey = "predictionguard_start_time"
)

// WithRequestID adds a request ID to the context.
//
// The client sends it as the X-Request-Id header, which lets a request be
// traced through the service's logs.
//
// Example:
//
//	ctx = predictionguard.WithRequestID(ctx, "req-123")
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, id)
}

// RequestIDFromContext retrieves the request ID from the context.
//
// Returns an empty string if no request ID is found.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// WithGeneratedRequestID adds a random UUID request ID to the context.
func WithGeneratedRequestID(ctx context.Context) context.Context {
	return WithRequestID(ctx, uuid.NewString())
}

// ensureRequestID returns ctx unchanged if it already carries a request ID,
// otherwise a child context with a generated one.
func ensureRequestID(ctx context.Context) context.Context {
	if RequestIDFromContext(ctx) != "" {
		return ctx
	}
	return WithGeneratedRequestID(ctx)
}

// WithCapability adds the capability name (e.g. "chat", "rerank") to the context.
func WithCapability(ctx context.Context, capability string) context.Context {
	return context.WithValue(ctx, contextKeyCapability, capability)
}

// CapabilityFromContext retrieves the capability name from the context.
//
// Returns an empty string if none is set.
func CapabilityFromContext(ctx context.Context) string {
	if c, ok := ctx.Value(contextKeyCapability).(string); ok {
		return c
	}
	return ""
}

// WithStartTime adds the request start time to the context.
func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, contextKeyStartTime, t)
}

// StartTimeFromContext retrieves the start time from the context.
//
// Returns the zero time if no start time is found.
func StartTimeFromContext(ctx context.Context) time.Time {
	if t, ok := ctx.Value(contextKeyStartTime).(time.Time); ok {
		return t
	}
	return time.Time{}
}
