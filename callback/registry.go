package callback

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Registry holds the registered callbacks.
//
// Callbacks run sequentially in registration order. Panics are recovered:
// for before-request callbacks they become errors, for the informational
// kinds they are logged and skipped.
//
// Safe for concurrent use.
//
// Example:
//
//	registry := callback.NewRegistry()
//	registry.RegisterSuccess(func(ctx context.Context, e *callback.SuccessEvent) {
//	    log.Printf("%s took %s", e.Capability, e.Duration)
//	})
type Registry struct {
	mu            sync.RWMutex
	beforeRequest []BeforeRequestCallback
	success       []SuccessCallback
	failure       []FailureCallback
	stream        []StreamCallback
	logger        *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{logger: zap.NewNop()}
}

// SetLogger sets the logger used to report recovered panics.
func (r *Registry) SetLogger(l *zap.Logger) {
	if l == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = l
}

// RegisterBeforeRequest registers a before-request callback. Nil is ignored.
func (r *Registry) RegisterBeforeRequest(cb BeforeRequestCallback) {
	if cb == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.beforeRequest = append(r.beforeRequest, cb)
}

// RegisterSuccess registers a success callback. Nil is ignored.
func (r *Registry) RegisterSuccess(cb SuccessCallback) {
	if cb == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success = append(r.success, cb)
}

// RegisterFailure registers a failure callback. Nil is ignored.
func (r *Registry) RegisterFailure(cb FailureCallback) {
	if cb == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure = append(r.failure, cb)
}

// RegisterStream registers a stream callback. Nil is ignored.
func (r *Registry) RegisterStream(cb StreamCallback) {
	if cb == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stream = append(r.stream, cb)
}

// snapshot copies a callback list under the read lock.
func snapshot[T any](r *Registry, list *[]T) ([]T, *zap.Logger) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, len(*list))
	copy(out, *list)
	return out, r.logger
}

// ExecuteBeforeRequest runs every before-request callback.
//
// All callbacks run even if one fails; their errors are joined. They run
// whether or not ctx is done, so every later success or failure event has
// a matching before-request event.
func (r *Registry) ExecuteBeforeRequest(ctx context.Context, event *BeforeRequestEvent) error {
	callbacks, _ := snapshot(r, &r.beforeRequest)

	var errs []error
	for _, cb := range callbacks {
		if err := runGuarded(func() error { return cb(ctx, event) }); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ExecuteSuccess runs every success callback.
//
// Like failure callbacks, they run even when ctx has been cancelled after
// the call completed.
func (r *Registry) ExecuteSuccess(ctx context.Context, event *SuccessEvent) {
	callbacks, logger := snapshot(r, &r.success)
	for _, cb := range callbacks {
		logPanic(logger, "success", runGuarded(func() error { cb(ctx, event); return nil }))
	}
}

// ExecuteFailure runs every failure callback.
//
// Failure callbacks run even when ctx is already cancelled, since
// cancellation is a common cause of failure.
func (r *Registry) ExecuteFailure(ctx context.Context, event *FailureEvent) {
	callbacks, logger := snapshot(r, &r.failure)
	for _, cb := range callbacks {
		logPanic(logger, "failure", runGuarded(func() error { cb(ctx, event); return nil }))
	}
}

// ExecuteStream runs every stream callback.
func (r *Registry) ExecuteStream(ctx context.Context, event *StreamEvent) {
	callbacks, logger := snapshot(r, &r.stream)
	for _, cb := range callbacks {
		if ctx.Err() != nil {
			return
		}
		logPanic(logger, "stream", runGuarded(func() error { cb(ctx, event); return nil }))
	}
}

// HasStream reports whether any stream callbacks are registered.
func (r *Registry) HasStream() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.stream) > 0
}

func runGuarded(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("callback panic: %v", p)
		}
	}()
	return fn()
}

func logPanic(logger *zap.Logger, kind string, err error) {
	if err != nil {
		logger.Warn("callback recovered", zap.String("kind", kind), zap.Error(err))
	}
}
