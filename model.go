package predictionguard

import "slices"

// Model identifies a model served by Prediction Guard.
//
// The value is the exact wire string. The constants below cover the models
// known to this client; any other string is still a valid Model and is sent
// and received unchanged, so models added on the server side need no client
// release.
type Model string

// Known models.
const (
	ModelNeuralChat7B                Model = "Neural-Chat-7B"
	ModelNeuralChat7BV33             Model = "neural-chat-7b-v3-3"
	ModelHermes2ProLlama38B          Model = "Hermes-2-Pro-Llama-3-8B"
	ModelHermes2ProMistral7B         Model = "Hermes-2-Pro-Mistral-7B"
	ModelHermes3Llama3170B           Model = "Hermes-3-Llama-3.1-70B"
	ModelHermes3Llama318B            Model = "Hermes-3-Llama-3.1-8B"
	ModelDeepseekCoder67BInstruct    Model = "deepseek-coder-6.7b-instruct"
	ModelLlava157BHF                 Model = "llava-1.5-7b-hf"
	ModelLlavaV16Mistral7BHF         Model = "llava-v1.6-mistral-7b-hf"
	ModelBridgetowerLargeItmMlmItc   Model = "bridgetower-large-itm-mlm-itc"
	ModelMultilingualE5LargeInstruct Model = "multilingual-e5-large-instruct"
	ModelBgeRerankerV2M3             Model = "bge-reranker-v2-m3"
)

// allModels lists the models this client ships constants for, in
// declaration order.
var allModels = []Model{
	ModelNeuralChat7B,
	ModelNeuralChat7BV33,
	ModelHermes2ProLlama38B,
	ModelHermes2ProMistral7B,
	ModelHermes3Llama3170B,
	ModelHermes3Llama318B,
	ModelDeepseekCoder67BInstruct,
	ModelLlava157BHF,
	ModelLlavaV16Mistral7BHF,
	ModelBridgetowerLargeItmMlmItc,
	ModelMultilingualE5LargeInstruct,
	ModelBgeRerankerV2M3,
}

var knownModels = func() map[Model]struct{} {
	m := make(map[Model]struct{}, len(allModels))
	for _, model := range allModels {
		m[model] = struct{}{}
	}
	return m
}()

// ParseModel maps a wire string to a Model. It never fails: unknown names
// are returned as-is and report IsKnown() == false.
func ParseModel(s string) Model {
	return Model(s)
}

// String returns the wire string.
func (m Model) String() string {
	return string(m)
}

// IsKnown reports whether m is one of the models this client has a
// constant for.
func (m Model) IsKnown() bool {
	_, ok := knownModels[m]
	return ok
}

// KnownModels returns the models this client has constants for, always in
// the same order. The slice is a copy.
func KnownModels() []Model {
	return slices.Clone(allModels)
}
