package predictionguard

import (
	"context"
	"net/http"
)

// TokenizePath is the path of the tokenize endpoint.
const TokenizePath = "/tokenize"

// TokenizeRequest is the body of a tokenize request.
type TokenizeRequest struct {
	Model Model  `json:"model"`
	Input string `json:"input"`
}

// NewTokenizeRequest creates a tokenize request.
func NewTokenizeRequest(model Model, input string) TokenizeRequest {
	return TokenizeRequest{Model: model, Input: input}
}

// Token is one token of the input with its byte offsets.
type Token struct {
	ID    int    `json:"id"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// TokenizeResponse is returned from the tokenize endpoint.
type TokenizeResponse struct {
	ID      string    `json:"id"`
	Object  string    `json:"object"`
	Created Timestamp `json:"created"`
	Model   Model     `json:"model"`
	Tokens  []Token   `json:"tokens"`
}

// Tokenize splits input into the model's tokens.
func (c *Client) Tokenize(ctx context.Context, req TokenizeRequest) (*TokenizeResponse, error) {
	return doJSON[TokenizeResponse](ctx, c, "tokenize", http.MethodPost, TokenizePath, req, req.Model.String())
}
