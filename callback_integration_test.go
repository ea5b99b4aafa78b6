package predictionguard

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/predictionguard/go-client/callback"
	"github.com/predictionguard/go-client/internal/testutil"
)

func TestClient_BeforeRequestCallback(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Handle("POST /completions", http.StatusOK, testutil.CompletionResponse)

	var got *callback.BeforeRequestEvent
	registry := callback.NewRegistry()
	registry.RegisterBeforeRequest(func(ctx context.Context, event *callback.BeforeRequestEvent) error {
		got = event
		return nil
	})

	client := newTestClient(t, srv, WithCallbacks(registry))
	_, err := client.Completion(context.Background(), NewCompletionRequest(ModelNeuralChat7B, "Hello"))
	if err != nil {
		t.Fatalf("Completion() error = %v", err)
	}

	if got == nil {
		t.Fatal("before-request callback was not called")
	}
	if got.Capability != "completion" {
		t.Errorf("Capability = %q, want completion", got.Capability)
	}
	if got.Model != "Neural-Chat-7B" {
		t.Errorf("Model = %q, want Neural-Chat-7B", got.Model)
	}
	if got.RequestID == "" {
		t.Error("RequestID should not be empty")
	}
	if sent := srv.LastRequest(t).Header.Get("X-Request-Id"); sent != got.RequestID {
		t.Errorf("X-Request-Id = %q, want %q", sent, got.RequestID)
	}
	if _, ok := got.Request.(CompletionRequest); !ok {
		t.Errorf("Request type = %T, want CompletionRequest", got.Request)
	}
}

func TestClient_BeforeRequestCallbackCanAbort(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Handle("POST /toxicity", http.StatusOK, testutil.ToxicityResponse)

	blocked := errors.New("request blocked by callback")
	var failures atomic.Int32

	registry := callback.NewRegistry()
	registry.RegisterBeforeRequest(func(ctx context.Context, event *callback.BeforeRequestEvent) error {
		return blocked
	})
	registry.RegisterFailure(func(ctx context.Context, event *callback.FailureEvent) {
		failures.Add(1)
	})

	client := newTestClient(t, srv, WithCallbacks(registry))
	_, err := client.Toxicity(context.Background(), NewToxicityRequest("hello"))

	if !errors.Is(err, blocked) {
		t.Fatalf("Toxicity() error = %v, want %v", err, blocked)
	}
	if n := len(srv.Requests()); n != 0 {
		t.Errorf("server received %d requests, want 0", n)
	}
	if failures.Load() != 1 {
		t.Errorf("failure callbacks = %d, want 1 for an aborted request", failures.Load())
	}
}

func TestClient_SuccessCallback(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Handle("POST /chat/completions", http.StatusOK, testutil.ChatResponse)

	var got *callback.SuccessEvent
	registry := callback.NewRegistry()
	registry.RegisterSuccess(func(ctx context.Context, event *callback.SuccessEvent) {
		got = event
	})

	client := newTestClient(t, srv, WithCallbacks(registry))
	resp, err := client.Chat(context.Background(),
		NewChatRequest[Message](ModelNeuralChat7B).AddMessage(NewMessage(RoleUser, "Hello")))
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if got == nil {
		t.Fatal("success callback was not called")
	}
	if got.Response != resp {
		t.Errorf("Response = %v, want the returned response", got.Response)
	}
	if got.Capability != "chat" {
		t.Errorf("Capability = %q, want chat", got.Capability)
	}
	if got.Duration < 0 || got.EndTime.Before(got.StartTime) {
		t.Errorf("bad timing: start %v end %v duration %v", got.StartTime, got.EndTime, got.Duration)
	}
}

func TestClient_FailureCallback(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Handle("POST /embeddings", http.StatusBadRequest, testutil.ErrorResponse("input is required"))

	var got *callback.FailureEvent
	var successes atomic.Int32
	registry := callback.NewRegistry()
	registry.RegisterFailure(func(ctx context.Context, event *callback.FailureEvent) {
		got = event
	})
	registry.RegisterSuccess(func(ctx context.Context, event *callback.SuccessEvent) {
		successes.Add(1)
	})

	client := newTestClient(t, srv, WithCallbacks(registry))
	_, err := client.Embedding(context.Background(), NewEmbeddingRequest(ModelMultilingualE5LargeInstruct))
	if err == nil {
		t.Fatal("expected error from api")
	}

	if got == nil {
		t.Fatal("failure callback was not called")
	}
	if got.Error != err {
		t.Errorf("Error = %v, want %v", got.Error, err)
	}
	var apiErr *APIError
	if !errors.As(got.Error, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("Error = %v, want APIError with status 400", got.Error)
	}
	if successes.Load() != 0 {
		t.Error("success callbacks should not run on failure")
	}
}

func TestClient_StreamFailureCallback(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.HandleFunc("POST /chat/completions", testutil.SSEHandler(
		testutil.DeltaFrame("a"),
		testutil.DataFrame("{not json"),
	))

	var streamed atomic.Int32
	var failure *callback.FailureEvent
	registry := callback.NewRegistry()
	registry.RegisterStream(func(ctx context.Context, event *callback.StreamEvent) {
		streamed.Add(1)
	})
	registry.RegisterFailure(func(ctx context.Context, event *callback.FailureEvent) {
		failure = event
	})

	client := newTestClient(t, srv, WithCallbacks(registry))
	_, err := client.ChatEvents(context.Background(),
		NewChatRequest[Message](ModelHermes3Llama318B).AddMessage(NewMessage(RoleUser, "Hi")),
		func(string) {})

	var decodeErr *StreamDecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("ChatEvents() error = %v, want StreamDecodeError", err)
	}
	if streamed.Load() != 1 {
		t.Errorf("stream callbacks = %d, want 1", streamed.Load())
	}
	if failure == nil || failure.Capability != "chat_stream" {
		t.Errorf("failure event = %+v, want chat_stream failure", failure)
	}
}

func TestClient_CallbacksBalancedWhenCancelledDuringBeforeRequest(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Handle("POST /toxicity", http.StatusOK, testutil.ToxicityResponse)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var before, successes, failures atomic.Int32
	registry := callback.NewRegistry()
	registry.RegisterBeforeRequest(func(context.Context, *callback.BeforeRequestEvent) error {
		cancel()
		return nil
	})
	registry.RegisterBeforeRequest(func(context.Context, *callback.BeforeRequestEvent) error {
		before.Add(1)
		return nil
	})
	registry.RegisterSuccess(func(context.Context, *callback.SuccessEvent) { successes.Add(1) })
	registry.RegisterFailure(func(context.Context, *callback.FailureEvent) { failures.Add(1) })

	client := newTestClient(t, srv, WithCallbacks(registry))
	_, err := client.Toxicity(ctx, NewToxicityRequest("text"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Toxicity() error = %v, want context.Canceled", err)
	}

	if before.Load() != 1 {
		t.Errorf("before-request calls = %d, want 1", before.Load())
	}
	if got := successes.Load() + failures.Load(); got != before.Load() {
		t.Errorf("completion events = %d, want %d", got, before.Load())
	}
}
