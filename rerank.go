package predictionguard

import (
	"context"
	"net/http"
	"slices"
)

// RerankPath is the path of the rerank endpoint.
const RerankPath = "/rerank"

// RerankRequest is the body of a rerank request.
type RerankRequest struct {
	Model           Model    `json:"model"`
	Query           string   `json:"query"`
	Documents       []string `json:"documents"`
	ReturnDocuments bool     `json:"return_documents"`
}

// NewRerankRequest creates a rerank request. With returnDocuments set, each
// result carries the document text alongside its score.
func NewRerankRequest(model Model, query string, documents []string, returnDocuments bool) RerankRequest {
	return RerankRequest{
		Model:           model,
		Query:           query,
		Documents:       slices.Clone(documents),
		ReturnDocuments: returnDocuments,
	}
}

// RerankResult is the score of one document. Index refers to the position
// in the request's Documents.
type RerankResult struct {
	Index          int     `json:"index"`
	RelevanceScore float64 `json:"relevance_score"`
	Text           string  `json:"text"`
}

// RerankResponse is returned from the rerank endpoint. Results are ordered
// by decreasing relevance.
type RerankResponse struct {
	ID      string         `json:"id"`
	Object  string         `json:"object"`
	Created Timestamp      `json:"created"`
	Model   Model          `json:"model"`
	Results []RerankResult `json:"results"`
}

// First returns the most relevant result, if any.
func (r *RerankResponse) First() (RerankResult, bool) {
	return first(r.Results)
}

// Rerank orders documents by relevance to a query.
//
// Example:
//
//	resp, err := client.Rerank(ctx, predictionguard.NewRerankRequest(
//	    predictionguard.ModelBgeRerankerV2M3,
//	    "What is Deep Learning?",
//	    []string{"Deep Learning is pizza.", "Deep Learning is not pizza."},
//	    true,
//	))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range resp.Results {
//	    fmt.Printf("%d %.4f %s\n", r.Index, r.RelevanceScore, r.Text)
//	}
func (c *Client) Rerank(ctx context.Context, req RerankRequest) (*RerankResponse, error) {
	return doJSON[RerankResponse](ctx, c, "rerank", http.MethodPost, RerankPath, req, req.Model.String())
}
