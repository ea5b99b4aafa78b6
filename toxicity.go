package predictionguard

import (
	"context"
	"net/http"
)

// ToxicityPath is the path of the toxicity endpoint.
const ToxicityPath = "/toxicity"

// ToxicityRequest is the body of a toxicity request.
type ToxicityRequest struct {
	Text string `json:"text"`
}

// NewToxicityRequest creates a toxicity request.
func NewToxicityRequest(text string) ToxicityRequest {
	return ToxicityRequest{Text: text}
}

// ToxicityCheck is one toxicity score in [0, 1].
type ToxicityCheck struct {
	Score  float64 `json:"score"`
	Index  int     `json:"index"`
	Status string  `json:"status"`
}

// ToxicityResponse is returned from the toxicity endpoint.
type ToxicityResponse struct {
	ID      string          `json:"id"`
	Object  string          `json:"object"`
	Created Timestamp       `json:"created"`
	Checks  []ToxicityCheck `json:"checks"`
}

// First returns the first check, if any.
func (r *ToxicityResponse) First() (ToxicityCheck, bool) {
	return first(r.Checks)
}

// Toxicity scores text for toxic content.
func (c *Client) Toxicity(ctx context.Context, req ToxicityRequest) (*ToxicityResponse, error) {
	return doJSON[ToxicityResponse](ctx, c, "toxicity", http.MethodPost, ToxicityPath, req, "")
}
