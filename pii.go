package predictionguard

import (
	"context"
	"net/http"
)

// PIIPath is the path of the PII endpoint. The service spells it in
// upper case.
const PIIPath = "/PII"

// ReplaceMethod selects how detected PII is replaced.
type ReplaceMethod string

// Replacement methods.
const (
	ReplaceRandom   ReplaceMethod = "random"
	ReplaceMask     ReplaceMethod = "mask"
	ReplaceCategory ReplaceMethod = "category"
	ReplaceFake     ReplaceMethod = "fake"
)

// PIIRequest is the body of a PII request.
type PIIRequest struct {
	Prompt        string        `json:"prompt"`
	Replace       bool          `json:"replace"`
	ReplaceMethod ReplaceMethod `json:"replace_method"`
}

// NewPIIRequest creates a PII request. With replace set, the response
// carries the prompt with PII substituted using method.
func NewPIIRequest(prompt string, replace bool, method ReplaceMethod) PIIRequest {
	return PIIRequest{Prompt: prompt, Replace: replace, ReplaceMethod: method}
}

// PIICheck carries the rewritten prompt.
type PIICheck struct {
	NewPrompt string `json:"new_prompt"`
	Index     int    `json:"index"`
	Status    string `json:"status"`
}

// PIIResponse is returned from the PII endpoint.
type PIIResponse struct {
	ID      string     `json:"id"`
	Object  string     `json:"object"`
	Created Timestamp  `json:"created"`
	Checks  []PIICheck `json:"checks"`
}

// First returns the first check, if any.
func (r *PIIResponse) First() (PIICheck, bool) {
	return first(r.Checks)
}

// PII detects, and optionally replaces, personal information in a prompt.
//
// Example:
//
//	resp, err := client.PII(ctx, predictionguard.NewPIIRequest(
//	    "My email is joe@gmail.com and my number is 270-123-4567",
//	    true, predictionguard.ReplaceMask))
func (c *Client) PII(ctx context.Context, req PIIRequest) (*PIIResponse, error) {
	return doJSON[PIIResponse](ctx, c, "pii", http.MethodPost, PIIPath, req, "")
}
