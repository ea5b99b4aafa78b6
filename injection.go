package predictionguard

import (
	"context"
	"net/http"
)

// InjectionPath is the path of the prompt injection endpoint.
const InjectionPath = "/injection"

// InjectionRequest asks whether a prompt is an injection attempt.
type InjectionRequest struct {
	Prompt string `json:"prompt"`
	Detect bool   `json:"detect"`
}

// NewInjectionRequest creates an injection request.
func NewInjectionRequest(prompt string, detect bool) InjectionRequest {
	return InjectionRequest{Prompt: prompt, Detect: detect}
}

// InjectionCheck is the probability that the prompt is an injection.
type InjectionCheck struct {
	Probability float64 `json:"probability"`
	Index       int     `json:"index"`
	Status      string  `json:"status"`
}

// InjectionResponse is returned from the injection endpoint.
type InjectionResponse struct {
	ID      string           `json:"id"`
	Object  string           `json:"object"`
	Created Timestamp        `json:"created"`
	Checks  []InjectionCheck `json:"checks"`
}

// First returns the first check, if any.
func (r *InjectionResponse) First() (InjectionCheck, bool) {
	return first(r.Checks)
}

// Injection checks a prompt for injection attempts.
func (c *Client) Injection(ctx context.Context, req InjectionRequest) (*InjectionResponse, error) {
	return doJSON[InjectionResponse](ctx, c, "injection", http.MethodPost, InjectionPath, req, "")
}
