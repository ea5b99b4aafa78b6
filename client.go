package predictionguard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/predictionguard/go-client/callback"
)

const userAgentPrefix = "Prediction Guard Go Client"

// Client handles connectivity to the Prediction Guard API.
//
// A Client is immutable after construction and safe for concurrent use
// from multiple goroutines. Every call runs independently; the only shared
// resource is the underlying connection pool.
//
// Example:
//
//	cfg, err := predictionguard.LoadConfig(".env")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := predictionguard.NewClient(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	resp, err := client.Chat(ctx, predictionguard.NewChatRequest[predictionguard.Message](predictionguard.ModelHermes2ProLlama38B).
//	    AddMessage(predictionguard.NewMessage(predictionguard.RoleUser, "Hello!")))
type Client struct {
	baseURL    string
	headers    http.Header
	httpClient HTTPClient
	// streamClient has no overall deadline; event streams run until the
	// server finishes or ctx is cancelled.
	streamClient HTTPClient
	logger       *zap.Logger
	callbacks    *callback.Registry
}

// NewClient creates a client for the given configuration.
//
// Returns a *ConfigError if the key is missing or cannot be sent as a
// header value, or if the URL is not an http(s) URL.
func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &clientOptions{
		logger:    zap.NewNop(),
		userAgent: fmt.Sprintf("%s v%s", userAgentPrefix, Version),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	headers := make(http.Header)
	headers.Set("x-api-key", cfg.APIKey)
	headers.Set("Authorization", "Bearer "+cfg.APIKey)
	headers.Set("User-Agent", o.userAgent)

	c := &Client{
		baseURL:   cfg.URL,
		headers:   headers,
		logger:    o.logger.Named("predictionguard"),
		callbacks: o.callbacks,
	}

	if o.httpClient != nil {
		c.httpClient = o.httpClient
		c.streamClient = o.httpClient
	} else {
		transport := newTransport(cfg)
		c.httpClient = &http.Client{Transport: transport, Timeout: cfg.Timeout}
		c.streamClient = &http.Client{Transport: transport}
	}

	return c, nil
}

// newTransport builds a transport applying the connect timeout and, as a
// response-header timeout, the read timeout.
func newTransport(cfg Config) *http.Transport {
	dialer := &net.Dialer{
		Timeout:   cfg.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}

	t := http.DefaultTransport.(*http.Transport).Clone()
	t.DialContext = dialer.DialContext
	t.TLSHandshakeTimeout = cfg.ConnectTimeout
	t.ResponseHeaderTimeout = cfg.ReadTimeout
	return t
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health calls the health endpoint and returns its plain-text body.
func (c *Client) Health(ctx context.Context) (string, error) {
	ctx, cl, err := c.begin(ctx, "health", "", nil)
	if err != nil {
		return "", err
	}

	body, err := c.roundTrip(ctx, http.MethodGet, "/", nil)
	if err != nil {
		c.finish(ctx, cl, nil, err)
		return "", err
	}

	text := string(body)
	c.finish(ctx, cl, text, nil)
	return text, nil
}

// activeCall tracks one request for callbacks and logging.
type activeCall struct {
	capability string
	model      string
	request    any
	start      time.Time
}

// begin annotates ctx and runs the before-request callbacks. A callback
// error aborts the call after running the failure callbacks; a ctx that is
// already done aborts it before anything runs.
func (c *Client) begin(ctx context.Context, capability, model string, req any) (context.Context, *activeCall, error) {
	if err := ctx.Err(); err != nil {
		return ctx, nil, err
	}

	ctx = ensureRequestID(ctx)
	start := time.Now()
	ctx = WithCapability(ctx, capability)
	ctx = WithStartTime(ctx, start)

	cl := &activeCall{capability: capability, model: model, request: req, start: start}

	if c.callbacks != nil {
		event := &callback.BeforeRequestEvent{
			RequestID:  RequestIDFromContext(ctx),
			Capability: capability,
			Model:      model,
			Request:    req,
			StartTime:  start,
		}
		if err := c.callbacks.ExecuteBeforeRequest(ctx, event); err != nil {
			err = fmt.Errorf("before-request callback failed: %w", err)
			c.finish(ctx, cl, nil, err)
			return ctx, nil, err
		}
	}

	return ctx, cl, nil
}

// finish runs the success or failure callbacks for a completed call.
func (c *Client) finish(ctx context.Context, cl *activeCall, resp any, err error) {
	end := time.Now()
	duration := end.Sub(cl.start)

	if err != nil {
		c.logger.Error("request failed",
			zap.String("capability", cl.capability),
			zap.String("request_id", RequestIDFromContext(ctx)),
			zap.Duration("elapsed", duration),
			zap.Error(err))
	} else {
		c.logger.Debug("request completed",
			zap.String("capability", cl.capability),
			zap.String("request_id", RequestIDFromContext(ctx)),
			zap.Duration("elapsed", duration))
	}

	if c.callbacks == nil {
		return
	}

	if err != nil {
		c.callbacks.ExecuteFailure(ctx, &callback.FailureEvent{
			RequestID:  RequestIDFromContext(ctx),
			Capability: cl.capability,
			Model:      cl.model,
			Request:    cl.request,
			Error:      err,
			StartTime:  cl.start,
			EndTime:    end,
			Duration:   duration,
		})
		return
	}

	c.callbacks.ExecuteSuccess(ctx, &callback.SuccessEvent{
		RequestID:  RequestIDFromContext(ctx),
		Capability: cl.capability,
		Model:      cl.model,
		Request:    cl.request,
		Response:   resp,
		StartTime:  cl.start,
		EndTime:    end,
		Duration:   duration,
	})
}

// newRequest builds an HTTP request carrying the static headers and, for a
// non-nil payload, its JSON encoding.
func (c *Client) newRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header = c.headers.Clone()
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-Id", id)
	}

	return req, nil
}

// open sends the request and returns the response if the status is 200.
// Any other status is converted into an *APIError and the body is closed.
func (c *Client) open(ctx context.Context, hc HTTPClient, req *http.Request) (*http.Response, error) {
	capability := CapabilityFromContext(ctx)

	c.logger.Debug("sending request",
		zap.String("capability", capability),
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.String("request_id", RequestIDFromContext(ctx)))

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", capability, err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, NewAPIError("error reading error response", resp.StatusCode, readErr)
		}
		return nil, ParseAPIError(resp.StatusCode, body)
	}

	return resp, nil
}

// roundTrip performs a non-streaming request and returns the 200 body.
func (c *Client) roundTrip(ctx context.Context, method, path string, payload any) ([]byte, error) {
	req, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.open(ctx, c.httpClient, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", CapabilityFromContext(ctx), err)
	}
	return body, nil
}

// doJSON runs one request/response exchange for a capability and decodes
// the 200 body into T.
func doJSON[T any](ctx context.Context, c *Client, capability, method, path string, payload any, model string) (*T, error) {
	ctx, cl, err := c.begin(ctx, capability, model, payload)
	if err != nil {
		return nil, err
	}

	body, err := c.roundTrip(ctx, method, path, payload)
	if err != nil {
		c.finish(ctx, cl, nil, err)
		return nil, err
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		decodeErr := NewDecodeError(fmt.Sprintf("error decoding %s response", capability), body, err)
		c.finish(ctx, cl, nil, decodeErr)
		return nil, decodeErr
	}

	c.finish(ctx, cl, &out, nil)
	return &out, nil
}

// listModels fetches the model names served at a capability path.
func (c *Client) listModels(ctx context.Context, capability, path string) ([]string, error) {
	out, err := doJSON[[]string](ctx, c, capability, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	return *out, nil
}
