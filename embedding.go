package predictionguard

import (
	"context"
	"net/http"
	"slices"
)

// EmbeddingPath is the path of the embeddings endpoint.
const EmbeddingPath = "/embeddings"

// TruncateDirection selects which end of an over-long input is cut.
type TruncateDirection string

// Truncation directions.
const (
	TruncateRight TruncateDirection = "Right"
	TruncateLeft  TruncateDirection = "Left"
)

// EmbeddingInput is one item to embed: text, a base64 image, or both.
type EmbeddingInput struct {
	Text  string `json:"text,omitempty"`
	Image string `json:"image,omitempty"`
}

// EmbeddingRequest is the body of an embeddings request.
type EmbeddingRequest struct {
	Model             Model              `json:"model"`
	Input             []EmbeddingInput   `json:"input"`
	Truncate          *bool              `json:"truncate,omitempty"`
	TruncateDirection *TruncateDirection `json:"truncate_direction,omitempty"`
}

// NewEmbeddingRequest creates an embeddings request for the given inputs.
//
// Example:
//
//	img := client.EncodeImageBestEffort(ctx, imageURL)
//	req := predictionguard.NewEmbeddingRequest(predictionguard.ModelBridgetowerLargeItmMlmItc,
//	    predictionguard.EmbeddingInput{Text: "Tell me a joke.", Image: img})
func NewEmbeddingRequest(model Model, inputs ...EmbeddingInput) EmbeddingRequest {
	return EmbeddingRequest{
		Model: model,
		Input: slices.Clone(inputs),
	}
}

// AddInput appends an input. Either value may be empty.
func (r EmbeddingRequest) AddInput(text, image string) EmbeddingRequest {
	r.Input = append(slices.Clip(r.Input), EmbeddingInput{Text: text, Image: image})
	return r
}

// AddInputs appends several inputs.
func (r EmbeddingRequest) AddInputs(inputs ...EmbeddingInput) EmbeddingRequest {
	r.Input = append(slices.Clip(r.Input), inputs...)
	return r
}

// WithTruncate enables truncation in the given direction.
func (r EmbeddingRequest) WithTruncate(direction TruncateDirection) EmbeddingRequest {
	truncate := true
	r.Truncate = &truncate
	r.TruncateDirection = &direction
	return r
}

// EmbeddingData is the embedding of one input.
type EmbeddingData struct {
	Index     int       `json:"index"`
	Object    string    `json:"object"`
	Status    string    `json:"status"`
	Embedding []float64 `json:"embedding"`
}

// EmbeddingResponse is returned from the embeddings endpoint.
type EmbeddingResponse struct {
	ID      string          `json:"id"`
	Object  string          `json:"object"`
	Created Timestamp       `json:"created"`
	Model   Model           `json:"model"`
	Data    []EmbeddingData `json:"data"`
}

// First returns the first embedding, if any.
func (r *EmbeddingResponse) First() (EmbeddingData, bool) {
	return first(r.Data)
}

// Embedding generates embeddings for text and/or images.
func (c *Client) Embedding(ctx context.Context, req EmbeddingRequest) (*EmbeddingResponse, error) {
	return doJSON[EmbeddingResponse](ctx, c, "embedding", http.MethodPost, EmbeddingPath, req, req.Model.String())
}

// ListEmbeddingModels returns the models available for embeddings.
func (c *Client) ListEmbeddingModels(ctx context.Context) ([]string, error) {
	return c.listModels(ctx, "embedding", EmbeddingPath)
}
