package predictionguard

import (
	"context"
	"net/http"
)

// CompletionPath is the path of the text completion endpoint.
const CompletionPath = "/completions"

// CompletionRequest is the body of a text completion request.
//
// Like ChatRequest it is a value type whose With methods return copies.
type CompletionRequest struct {
	Model       Model          `json:"model"`
	Prompt      string         `json:"prompt"`
	MaxTokens   int            `json:"max_tokens"`
	Temperature float64        `json:"temperature"`
	TopP        *float64       `json:"top_p,omitempty"`
	TopK        *int           `json:"top_k,omitempty"`
	Input       *RequestInput  `json:"input,omitempty"`
	Output      *RequestOutput `json:"output,omitempty"`
}

// NewCompletionRequest creates a completion request with max_tokens 100
// and temperature 0.
func NewCompletionRequest(model Model, prompt string) CompletionRequest {
	return CompletionRequest{
		Model:       model,
		Prompt:      prompt,
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	}
}

// WithMaxTokens sets the maximum number of generated tokens.
func (r CompletionRequest) WithMaxTokens(n int) CompletionRequest {
	r.MaxTokens = n
	return r
}

// WithTemperature sets the sampling temperature.
func (r CompletionRequest) WithTemperature(t float64) CompletionRequest {
	r.Temperature = t
	return r
}

// WithTopP sets nucleus sampling.
func (r CompletionRequest) WithTopP(p float64) CompletionRequest {
	r.TopP = &p
	return r
}

// WithTopK sets top-k sampling.
func (r CompletionRequest) WithTopK(k int) CompletionRequest {
	r.TopK = &k
	return r
}

// WithInput enables input screening. A nil pii keeps earlier PII settings.
func (r CompletionRequest) WithInput(blockPromptInjection bool, pii *PIIOption) CompletionRequest {
	r.Input = mergeInput(r.Input, blockPromptInjection, pii)
	return r
}

// WithOutput enables output screening.
func (r CompletionRequest) WithOutput(checkFactuality, checkToxicity bool) CompletionRequest {
	r.Output = &RequestOutput{Factuality: checkFactuality, Toxicity: checkToxicity}
	return r
}

// CompletionChoice is one generated text.
type CompletionChoice struct {
	Text   string `json:"text"`
	Index  int    `json:"index"`
	Status string `json:"status"`
	Model  Model  `json:"model"`
}

// CompletionResponse is returned from the completions endpoint.
type CompletionResponse struct {
	ID      string             `json:"id"`
	Object  string             `json:"object"`
	Created Timestamp          `json:"created"`
	Choices []CompletionChoice `json:"choices"`
}

// First returns the first choice, if any.
func (r *CompletionResponse) First() (CompletionChoice, bool) {
	return first(r.Choices)
}

// Completion generates text for a prompt.
//
// Example:
//
//	resp, err := client.Completion(ctx,
//	    predictionguard.NewCompletionRequest(predictionguard.ModelNeuralChat7B, "Will I lose my hair"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if choice, ok := resp.First(); ok {
//	    fmt.Println(choice.Text)
//	}
func (c *Client) Completion(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	return doJSON[CompletionResponse](ctx, c, "completion", http.MethodPost, CompletionPath, req, req.Model.String())
}

// ListCompletionModels returns the models available for completion.
func (c *Client) ListCompletionModels(ctx context.Context) ([]string, error) {
	return c.listModels(ctx, "completion", CompletionPath)
}
