package predictionguard

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/predictionguard/go-client/callback"
)

// StreamStop is sent on the channel passed to ChatEventsAsync after the
// last increment.
const StreamStop = "STOP"

const (
	streamDoneMarker  = "[DONE]"
	finishReasonStop  = "stop"
	streamCapability  = "chat_stream"
	eventStreamAccept = "text/event-stream"
)

// stopGrace bounds how long StreamStop waits for a reader once ctx is done.
const stopGrace = 2 * time.Second

// ErrStreamClosed is returned by Recv after Close has been called on a
// stream that had not finished.
var ErrStreamClosed = errors.New("predictionguard: stream closed")

// ChatEventDelta is the text increment carried by one streamed frame.
type ChatEventDelta struct {
	Content string `json:"content"`
}

// ChatEventChoice is one choice of a streamed frame.
type ChatEventChoice struct {
	Index         int             `json:"index"`
	GeneratedText string          `json:"generated_text,omitempty"`
	Logprobs      float64         `json:"logprobs"`
	FinishReason  string          `json:"finish_reason,omitempty"`
	Delta         *ChatEventDelta `json:"delta,omitempty"`
}

// ChatEvent is one frame of a streamed chat completion.
type ChatEvent struct {
	ID      string            `json:"id"`
	Object  string            `json:"object"`
	Created Timestamp         `json:"created"`
	Model   Model             `json:"model"`
	Choices []ChatEventChoice `json:"choices"`
}

// First returns the first choice, if any.
func (e *ChatEvent) First() (ChatEventChoice, bool) {
	return first(e.Choices)
}

// ChatStream is an open streamed chat completion.
//
// Recv returns text increments in the order the server sent them and
// io.EOF once the server finishes. A stream is single-use: after it ends,
// every Recv returns the same terminal error.
//
// Not safe for concurrent use; one goroutine should call Recv.
type ChatStream struct {
	ctx    context.Context
	client *Client
	call   *activeCall
	body   io.ReadCloser
	events *sseReader

	final *ChatEvent
	index int
	err   error
}

// ChatEventStream opens a streamed chat completion.
//
// Streaming is forced on and output screening is dropped, since the service
// does not support it on streams. The connection has no overall deadline;
// cancel ctx or call Close to abandon it.
//
// Example:
//
//	stream, err := client.ChatEventStream(ctx, req)
//	if err != nil {
//	    return err
//	}
//	defer stream.Close()
//
//	for {
//	    text, err := stream.Recv()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Print(text)
//	}
func (c *Client) ChatEventStream(ctx context.Context, req ChatRequest[Message]) (*ChatStream, error) {
	req.Stream = true
	req.Output = nil

	ctx, cl, err := c.begin(ctx, streamCapability, req.Model.String(), req)
	if err != nil {
		return nil, err
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, ChatPath, req)
	if err != nil {
		c.finish(ctx, cl, nil, err)
		return nil, err
	}
	httpReq.Header.Set("Accept", eventStreamAccept)

	resp, err := c.open(ctx, c.streamClient, httpReq)
	if err != nil {
		c.finish(ctx, cl, nil, err)
		return nil, err
	}

	return &ChatStream{
		ctx:    ctx,
		client: c,
		call:   cl,
		body:   resp.Body,
		events: newSSEReader(resp.Body),
	}, nil
}

// Recv returns the next text increment.
//
// It returns io.EOF when the server ends the stream, either with a frame
// whose finish reason is "stop" (see Final), a [DONE] marker, or by closing
// the connection. A malformed frame returns a *StreamDecodeError and any
// other read failure an *APIError; both end the stream.
func (s *ChatStream) Recv() (string, error) {
	if s.err != nil {
		return "", s.err
	}

	for {
		if err := s.ctx.Err(); err != nil {
			return "", s.fail(err)
		}

		data, err := s.events.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", s.end(nil)
			}
			if ctxErr := s.ctx.Err(); ctxErr != nil {
				return "", s.fail(ctxErr)
			}
			return "", s.fail(NewAPIError(fmt.Sprintf("error reading stream: %v", err), 0, err))
		}

		if data == streamDoneMarker {
			return "", s.end(nil)
		}

		var event ChatEvent
		if err := json.Unmarshal([]byte(data), &event); err != nil {
			return "", s.fail(NewStreamDecodeError(data, err))
		}

		choice, ok := event.First()
		if !ok {
			// heartbeat
			continue
		}
		if choice.FinishReason == finishReasonStop {
			return "", s.end(&event)
		}

		var text string
		if choice.Delta != nil {
			text = choice.Delta.Content
		}
		s.emit(text)
		return text, nil
	}
}

// Final returns the frame that carried the "stop" finish reason, or nil if
// the stream ended another way or has not ended yet.
func (s *ChatStream) Final() *ChatEvent {
	return s.final
}

// Close releases the connection. Closing a finished stream is a no-op.
func (s *ChatStream) Close() error {
	if s.err != nil {
		return nil
	}
	s.fail(ErrStreamClosed)
	return nil
}

func (s *ChatStream) emit(text string) {
	c := s.client
	if c.callbacks != nil {
		c.callbacks.ExecuteStream(s.ctx, &callback.StreamEvent{
			RequestID:  RequestIDFromContext(s.ctx),
			Capability: s.call.capability,
			Model:      s.call.model,
			Content:    text,
			Index:      s.index,
			Timestamp:  time.Now(),
		})
	}
	s.index++
}

// end finishes the stream normally.
func (s *ChatStream) end(final *ChatEvent) error {
	s.final = final
	s.err = io.EOF
	s.body.Close()

	s.client.logger.Debug("stream finished",
		zap.String("request_id", RequestIDFromContext(s.ctx)),
		zap.Int("increments", s.index),
		zap.Bool("final_frame", final != nil))
	s.client.finish(s.ctx, s.call, final, nil)
	return io.EOF
}

// fail finishes the stream with err.
func (s *ChatStream) fail(err error) error {
	s.err = err
	s.body.Close()
	s.client.finish(s.ctx, s.call, nil, err)
	return err
}

// ChatEvents streams a chat completion, calling handler inline with each
// text increment in order. It returns the final frame, or nil if the
// server ended the stream without one.
//
// A slow handler stalls the stream; increments are never buffered beyond
// one frame. Increments already handed to handler are not retracted if the
// stream later fails.
func (c *Client) ChatEvents(ctx context.Context, req ChatRequest[Message], handler func(string)) (*ChatEvent, error) {
	stream, err := c.ChatEventStream(ctx, req)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	for {
		text, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return stream.Final(), nil
		}
		if err != nil {
			return nil, err
		}
		handler(text)
	}
}

// ChatEventsAsync streams a chat completion into ch.
//
// Every increment is sent in order, followed by exactly one StreamStop,
// whatever way the stream ends (including failure to connect). The
// channel is not closed.
//
// Once ctx is cancelled, increments not yet sent are dropped, but
// StreamStop is still handed to a consumer that keeps reading for up to
// two seconds. A consumer that stops reading should cancel ctx to release
// the producer.
//
// Example:
//
//	ch := make(chan string, 16)
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(func() error {
//	    _, err := client.ChatEventsAsync(ctx, req, ch)
//	    return err
//	})
//	g.Go(func() error {
//	    for text := range ch {
//	        if text == predictionguard.StreamStop {
//	            return nil
//	        }
//	        fmt.Print(text)
//	    }
//	    return nil
//	})
//	err := g.Wait()
func (c *Client) ChatEventsAsync(ctx context.Context, req ChatRequest[Message], ch chan<- string) (*ChatEvent, error) {
	defer c.deliverStop(ctx, ch)

	stream, err := c.ChatEventStream(ctx, req)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	for {
		text, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return stream.Final(), nil
		}
		if err != nil {
			return nil, err
		}
		// On cancellation the next Recv reports ctx.Err().
		c.deliver(ctx, ch, text)
	}
}

// deliver sends text on ch unless ctx is cancelled first. A free slot in
// ch always wins over cancellation.
func (c *Client) deliver(ctx context.Context, ch chan<- string, text string) {
	select {
	case ch <- text:
		return
	default:
	}

	select {
	case ch <- text:
	case <-ctx.Done():
		c.logger.Warn("stream increment dropped",
			zap.String("request_id", RequestIDFromContext(ctx)),
			zap.Error(ctx.Err()))
	}
}

// deliverStop sends StreamStop on ch. If ctx is done it keeps trying for
// stopGrace before giving up.
func (c *Client) deliverStop(ctx context.Context, ch chan<- string) {
	select {
	case ch <- StreamStop:
		return
	case <-ctx.Done():
	}

	timer := time.NewTimer(stopGrace)
	defer timer.Stop()

	select {
	case ch <- StreamStop:
	case <-timer.C:
		c.logger.Warn("stream stop dropped",
			zap.String("request_id", RequestIDFromContext(ctx)),
			zap.Duration("grace", stopGrace),
			zap.Error(ctx.Err()))
	}
}

// sseReader splits a server-sent event stream into event payloads.
type sseReader struct {
	r *bufio.Reader
}

func newSSEReader(r io.Reader) *sseReader {
	return &sseReader{r: bufio.NewReader(r)}
}

// next returns the data of the next event. Comment lines and events
// without data are skipped. Multiple data lines are joined with "\n".
// At end of input a pending event is still returned, then io.EOF.
func (s *sseReader) next() (string, error) {
	var (
		data    strings.Builder
		hasData bool
	)

	for {
		line, err := s.r.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			if errors.Is(err, io.EOF) && hasData {
				return data.String(), nil
			}
			return "", err
		}
		line = strings.TrimRight(line, "\r\n")

		if line == "" {
			if hasData {
				return data.String(), nil
			}
			if err != nil {
				return "", err
			}
			continue
		}

		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		if field != "data" {
			continue
		}
		if hasData {
			data.WriteByte('\n')
		}
		data.WriteString(value)
		hasData = true
	}
}
