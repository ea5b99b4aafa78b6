package predictionguard

import (
	"context"
	"fmt"
	"net/http"
	"slices"
)

// ChatPath is the path of the chat completions endpoint.
const ChatPath = "/chat/completions"

const (
	defaultMaxTokens   = 100
	defaultTemperature = 0.0
)

// Message is a text chat message.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`

	// Output carries the service's output screening result on responses.
	Output string `json:"output,omitempty"`
}

// NewMessage creates a text message.
func NewMessage(role Role, text string) Message {
	return Message{Role: role, Content: text}
}

// VisionMessage is a chat message carrying an image followed by a prompt.
type VisionMessage struct {
	Role    Role          `json:"role"`
	Content []ContentPart `json:"content"`
}

// NewVisionMessage creates a message whose content is an image_url part
// followed by a text part. imageURI is normally a base64 data URI.
func NewVisionMessage(role Role, text, imageURI string) VisionMessage {
	return VisionMessage{
		Role: role,
		Content: []ContentPart{
			{Type: contentTypeImageURL, ImageURL: &ImageURL{URL: imageURI}},
			{Type: contentTypeText, Text: text},
		},
	}
}

// ImageDataURI builds a data URI such as "data:image/jpeg;base64,<data>"
// from an already base64-encoded image.
func ImageDataURI(mimeType, b64 string) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, b64)
}

// ChatMessage is the set of message types a chat request can carry.
type ChatMessage interface {
	Message | VisionMessage
}

// ChatRequest is the body of a chat completion request.
//
// It is a value type: every With/Add method returns an updated copy and
// leaves the receiver untouched, so a base request can be reused.
//
// Example:
//
//	req := predictionguard.NewChatRequest[predictionguard.Message](predictionguard.ModelNeuralChat7B).
//	    AddMessage(predictionguard.NewMessage(predictionguard.RoleSystem, "Be brief.")).
//	    AddMessage(predictionguard.NewMessage(predictionguard.RoleUser, "How do I make tea?")).
//	    WithMaxTokens(200).
//	    WithInput(true, nil)
type ChatRequest[M ChatMessage] struct {
	Model       Model          `json:"model"`
	Messages    []M            `json:"messages"`
	MaxTokens   int            `json:"max_tokens"`
	Temperature float64        `json:"temperature"`
	TopP        *float64       `json:"top_p,omitempty"`
	TopK        *int           `json:"top_k,omitempty"`
	Input       *RequestInput  `json:"input,omitempty"`
	Output      *RequestOutput `json:"output,omitempty"`
	Stream      bool           `json:"stream"`
}

// NewChatRequest creates a chat request with max_tokens 100, temperature 0
// and streaming off.
func NewChatRequest[M ChatMessage](model Model) ChatRequest[M] {
	return ChatRequest[M]{
		Model:       model,
		Messages:    []M{},
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	}
}

// AddMessage appends a message.
func (r ChatRequest[M]) AddMessage(m M) ChatRequest[M] {
	r.Messages = append(slices.Clip(r.Messages), m)
	return r
}

// WithMaxTokens sets the maximum number of generated tokens.
func (r ChatRequest[M]) WithMaxTokens(n int) ChatRequest[M] {
	r.MaxTokens = n
	return r
}

// WithTemperature sets the sampling temperature.
func (r ChatRequest[M]) WithTemperature(t float64) ChatRequest[M] {
	r.Temperature = t
	return r
}

// WithTopP sets nucleus sampling.
func (r ChatRequest[M]) WithTopP(p float64) ChatRequest[M] {
	r.TopP = &p
	return r
}

// WithTopK sets top-k sampling.
func (r ChatRequest[M]) WithTopK(k int) ChatRequest[M] {
	r.TopK = &k
	return r
}

// WithInput enables input screening. A nil pii keeps any PII settings from
// an earlier call.
func (r ChatRequest[M]) WithInput(blockPromptInjection bool, pii *PIIOption) ChatRequest[M] {
	r.Input = mergeInput(r.Input, blockPromptInjection, pii)
	return r
}

// WithOutput enables output screening. Output screening is not available on
// streamed requests and is dropped by the streaming methods.
func (r ChatRequest[M]) WithOutput(checkFactuality, checkToxicity bool) ChatRequest[M] {
	r.Output = &RequestOutput{Factuality: checkFactuality, Toxicity: checkToxicity}
	return r
}

// ChatChoice is one generated message.
type ChatChoice struct {
	Index   int     `json:"index"`
	Message Message `json:"message"`
	Status  string  `json:"status"`
}

// ChatResponse is returned from the chat completions endpoint.
type ChatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created Timestamp    `json:"created"`
	Model   Model        `json:"model"`
	Choices []ChatChoice `json:"choices"`
}

// First returns the first choice, if any.
func (r *ChatResponse) First() (ChatChoice, bool) {
	return first(r.Choices)
}

// Chat sends a text chat completion request.
func (c *Client) Chat(ctx context.Context, req ChatRequest[Message]) (*ChatResponse, error) {
	req.Stream = false
	return doJSON[ChatResponse](ctx, c, "chat", http.MethodPost, ChatPath, req, req.Model.String())
}

// ChatVision sends a chat completion request whose messages carry images.
func (c *Client) ChatVision(ctx context.Context, req ChatRequest[VisionMessage]) (*ChatResponse, error) {
	req.Stream = false
	return doJSON[ChatResponse](ctx, c, "chat_vision", http.MethodPost, ChatPath, req, req.Model.String())
}

// ListChatModels returns the models available for chat.
func (c *Client) ListChatModels(ctx context.Context) ([]string, error) {
	return c.listModels(ctx, "chat", ChatPath)
}
