// Package callback provides lifecycle hooks for Prediction Guard requests.
//
// Hooks run before a request is sent, after it succeeds, after it fails, and
// for every increment of a streamed chat. They are the attachment point for
// logging, auditing and metrics (see the metrics package).
//
// All callbacks must be safe for concurrent calls. The Registry copies its
// callback lists under a read lock before running them.
package callback

import (
	"context"
	"time"
)

// BeforeRequestCallback is called before a request is sent.
//
// Returning an error aborts the request: nothing is sent, the failure
// callbacks run, and the error is returned to the caller wrapped.
//
// Example:
//
//	func audit(ctx context.Context, e *callback.BeforeRequestEvent) error {
//	    log.Printf("%s %s", e.Capability, e.Model)
//	    return nil
//	}
type BeforeRequestCallback func(ctx context.Context, event *BeforeRequestEvent) error

// SuccessCallback is called after a request completes with a decoded
// response. It cannot fail the request.
type SuccessCallback func(ctx context.Context, event *SuccessEvent)

// FailureCallback is called after a request fails. It cannot change the
// error returned to the caller.
type FailureCallback func(ctx context.Context, event *FailureEvent)

// StreamCallback is called for every content increment of a streamed chat,
// before the increment is handed to the caller.
type StreamCallback func(ctx context.Context, event *StreamEvent)

// BeforeRequestEvent contains data for before-request callbacks.
type BeforeRequestEvent struct {
	// RequestID is sent to the service as X-Request-Id.
	RequestID string

	// Capability names the endpoint family, e.g. "chat", "embedding", "pii".
	Capability string

	// Model is the requested model, empty for endpoints that take none.
	Model string

	// Request is the request body about to be encoded, e.g.
	// predictionguard.EmbeddingRequest. Nil for GET requests.
	Request any

	StartTime time.Time
}

// SuccessEvent contains data for success callbacks.
type SuccessEvent struct {
	RequestID  string
	Capability string
	Model      string
	Request    any

	// Response is the decoded response, e.g. *predictionguard.ChatResponse.
	// For streams it is the final frame, which may be nil.
	Response any

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// FailureEvent contains data for failure callbacks.
type FailureEvent struct {
	RequestID  string
	Capability string
	Model      string
	Request    any

	// Error is the error returned to the caller.
	Error error

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// StreamEvent is emitted once per content increment.
type StreamEvent struct {
	RequestID  string
	Capability string
	Model      string

	// Content is the increment text as delivered to the caller.
	Content string

	// Index is the zero-based position of this increment in the stream.
	Index int

	Timestamp time.Time
}
