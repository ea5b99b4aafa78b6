// Package types contains the model metadata returned by the models endpoint.
//
// It has no dependencies so that tools can describe models without pulling
// in the client.
package types

// Capability names a model capability as used to filter /models/{capability}.
type Capability string

// Capabilities understood by the models endpoint.
const (
	CapabilityChatCompletion     Capability = "chat-completion"
	CapabilityChatWithImage      Capability = "chat-with-image"
	CapabilityCompletion         Capability = "completion"
	CapabilityEmbedding          Capability = "embedding"
	CapabilityEmbeddingWithImage Capability = "embedding-with-image"
	CapabilityTokenize           Capability = "tokenize"
)

// AllCapabilities lists the known capabilities in display order.
var AllCapabilities = []Capability{
	CapabilityChatCompletion,
	CapabilityChatWithImage,
	CapabilityCompletion,
	CapabilityEmbedding,
	CapabilityEmbeddingWithImage,
	CapabilityTokenize,
}

// ModelInfo describes one model served by Prediction Guard.
//
// Treat as immutable once returned.
type ModelInfo struct {
	ID               string       `json:"id" yaml:"id"`
	Object           string       `json:"object" yaml:"object"`
	Created          string       `json:"created" yaml:"created"`
	OwnedBy          string       `json:"owned_by" yaml:"owned_by"`
	Description      string       `json:"description" yaml:"description"`
	MaxContextLength int          `json:"max_context_length" yaml:"max_context_length"`
	PromptFormat     string       `json:"prompt_format" yaml:"prompt_format"`
	Capabilities     Capabilities `json:"capabilities" yaml:"capabilities"`
}

// Capabilities reports which endpoints accept a model.
type Capabilities struct {
	ChatCompletion     bool `json:"chat_completion" yaml:"chat_completion"`
	ChatWithImage      bool `json:"chat_with_image" yaml:"chat_with_image"`
	Completion         bool `json:"completion" yaml:"completion"`
	Embedding          bool `json:"embedding" yaml:"embedding"`
	EmbeddingWithImage bool `json:"embedding_with_image" yaml:"embedding_with_image"`
	Tokenize           bool `json:"tokenize" yaml:"tokenize"`
}

// Supports reports whether c includes capability. Unknown capabilities
// report false.
func (c Capabilities) Supports(capability Capability) bool {
	switch capability {
	case CapabilityChatCompletion:
		return c.ChatCompletion
	case CapabilityChatWithImage:
		return c.ChatWithImage
	case CapabilityCompletion:
		return c.Completion
	case CapabilityEmbedding:
		return c.Embedding
	case CapabilityEmbeddingWithImage:
		return c.EmbeddingWithImage
	case CapabilityTokenize:
		return c.Tokenize
	default:
		return false
	}
}

// List returns the capabilities set in c, in AllCapabilities order.
func (c Capabilities) List() []Capability {
	var out []Capability
	for _, capability := range AllCapabilities {
		if c.Supports(capability) {
			out = append(out, capability)
		}
	}
	return out
}
