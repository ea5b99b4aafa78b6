package testutil

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// SSE frame builders. Each returns one complete event including the blank
// line that terminates it.

// DataFrame returns an event carrying payload as its data.
func DataFrame(payload string) string {
	return "data: " + payload + "\n\n"
}

// CommentFrame returns a comment line, as sent for keep-alives.
func CommentFrame(text string) string {
	return ": " + text + "\n\n"
}

// DoneFrame returns the [DONE] marker event.
func DoneFrame() string {
	return DataFrame("[DONE]")
}

// DeltaFrame returns a chat event frame carrying one content increment.
func DeltaFrame(content string) string {
	return DataFrame(fmt.Sprintf(
		`{"id":"chat-1","object":"chat.completion.chunk","created":1717000000,"model":"Hermes-3-Llama-3.1-8B","choices":[{"index":0,"logprobs":0,"delta":{"content":%q}}]}`,
		content))
}

// StopFrame returns a chat event frame with finish_reason "stop".
func StopFrame(generated string) string {
	return DataFrame(fmt.Sprintf(
		`{"id":"chat-1","object":"chat.completion.chunk","created":1717000000,"model":"Hermes-3-Llama-3.1-8B","choices":[{"index":0,"logprobs":0,"generated_text":%q,"finish_reason":"stop","delta":{}}]}`,
		generated))
}

// HeartbeatFrame returns a chat event frame with no choices.
func HeartbeatFrame() string {
	return DataFrame(`{"id":"chat-1","object":"chat.completion.chunk","created":1717000000,"model":"Hermes-3-Llama-3.1-8B","choices":[]}`)
}

// SSEHandler writes frames as a text/event-stream, flushing after each,
// then ends the response.
func SSEHandler(frames ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)

		flusher, _ := w.(http.Flusher)
		for _, f := range frames {
			if r.Context().Err() != nil {
				return
			}
			io.WriteString(w, f)
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}

// JoinFrames concatenates frames into a single event-stream body.
func JoinFrames(frames ...string) string {
	return strings.Join(frames, "")
}
