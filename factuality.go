package predictionguard

import (
	"context"
	"net/http"
)

// FactualityPath is the path of the factuality endpoint.
const FactualityPath = "/factuality"

// FactualityRequest asks how well text is supported by a reference.
type FactualityRequest struct {
	Reference string `json:"reference"`
	Text      string `json:"text"`
}

// NewFactualityRequest creates a factuality request.
func NewFactualityRequest(reference, text string) FactualityRequest {
	return FactualityRequest{Reference: reference, Text: text}
}

// FactualityCheck is one factuality score in [0, 1]; higher is more factual.
type FactualityCheck struct {
	Score  float64 `json:"score"`
	Index  int     `json:"index"`
	Status string  `json:"status"`
}

// FactualityResponse is returned from the factuality endpoint.
type FactualityResponse struct {
	ID      string            `json:"id"`
	Object  string            `json:"object"`
	Created Timestamp         `json:"created"`
	Checks  []FactualityCheck `json:"checks"`
}

// First returns the first check, if any.
func (r *FactualityResponse) First() (FactualityCheck, bool) {
	return first(r.Checks)
}

// Factuality scores text against a reference.
func (c *Client) Factuality(ctx context.Context, req FactualityRequest) (*FactualityResponse, error) {
	return doJSON[FactualityResponse](ctx, c, "factuality", http.MethodPost, FactualityPath, req, "")
}
