// Package testutil provides fixtures and fake servers for tests of the
// Prediction Guard client.
package testutil

// Response bodies captured from the live API.
const (
	CompletionResponse = `{"id":"cmpl-6vw7vNwttbxjc86kikp9pGJqFcOaL","object":"text_completion","created":1716926174,"choices":[{"text":"if I continue to drink tea?\n\nDespite many claims and theories, there is no strong link between tea and hair loss.","index":0,"status":"success","model":"Neural-Chat-7B"}]}`

	ChatResponse = `{"id":"chat-i9UtWgZWWRoKrtoaH7uAj8ZOe41u7","object":"chat_completion","created":1716927031,"model":"Neural-Chat-7B","choices":[{"index":0,"message":{"role":"assistant","content":"I believe it is essential to acknowledge the complexity of the world and the many emotions that come with it.","output":null},"status":"success"}]}`

	ChatVisionResponse = `{"id":"chat-VxaC7FbS6ms2Tc3YCj7XsLi94qPkr","object":"chat_completion","created":1717212805,"model":"llava-1.5-7b-hf","choices":[{"index":0,"message":{"role":"assistant","content":"?\n\nThe man is wearing a hat and glasses.","output":null},"status":"success"}]}`

	FactualityResponse = `{"checks":[{"score":0.7879658937454224,"index":0,"status":"success"}],"created":1716927393,"id":"fact-XpxRmrc1pUsgkMQRDrWKXHGTfkGdG","object":"factuality_check"}`

	InjectionResponse = `{"checks":[{"probability":0.5,"index":0,"status":"success"}],"created":"1716927842","id":"injection-k7yi24csvD3gqVB1ul4niKfJpoSL8rDr","object":"injection_check"}`

	PIIResponse = `{ "id": "pii-sqq812J5VlXRxp6Fpu3PXkV33rOJnwTv", "object": "pii_check", "created": "1716928267", "checks": [{ "new_prompt": "My email is oyo@yukmt.fjw", "index": 0, "status": "success" }]}`

	ToxicityResponse = `{"checks":[{"score":0.7072361707687378,"index":0,"status":"success"}],"created":1716928765,"id":"toxi-T9KOKkKxBBXEHVoDkzoC0uYNpTbvx","object":"toxicity_check"}`

	TranslateResponse = `{"translations":[{"score":0.5008216500282288,"translation":"La lluvia en España se queda principalmente en la llanura","model":"deepl","status":"success"},{"score":0.5381202101707458,"translation":"La lluvia en España permanece principalmente en la llanura","model":"google","status":"success"},{"score":0.4843788146972656,"translation":"La lluvia en España se queda principalmente en la llanura.","model":"nous_hermes_llama2","status":"success"}],"best_translation":"La lluvia en España permanece principalmente en la llanura","best_score":0.5381202101707458,"best_translation_model":"google","created":1716930759,"id":"translation-8df720f17ab344a08b56a473fc63fd8b","object":"translation"}`

	RerankResponse = `{"id": "rerank-03bd66c1-77b5-4f3f-b72b-27c6ed263f9c", "object": "list", "created": 1732203527, "model": "bge-reranker-v2-m3", "results": [{"index": 1, "relevance_score": 0.05051767,"text": "Deeplearning is not pizza."},{"index": 0, "relevance_score": 0.019531239,"text": "Deeplearning is pizza"}]}`

	TokenizeResponse = `{"id":"token-5ddaba0c-9576-4b50-88f7-4136da728e09","object":"tokens","created":1731701048,"model":"neural-chat-7b-v3-3","tokens":[{"id":1,"start":0,"end":0,"text":""},{"id":15259,"start":0,"end":0,"text":"Tell"},{"id":528,"start":4,"end":0,"text":" me"},{"id":264,"start":7,"end":0,"text":" a"},{"id":13015,"start":9,"end":0,"text":" joke"},{"id":28723,"start": 14,"end":0,"text":"."}]}`

	EmbeddingResponse = `{ "id": "emb-DMC7M45FkuwJ9ihyP23RKrC6hUXwg", "object": "embedding_batch", "created": 1717015553, "model": "bridgetower-large-itm-mlm-itc", "data": [{"status": "success","index": 0,"object": "embedding",
  "embedding": [0.028302032500505447, 0.05134811252355576, 0.03137784078717232, -0.012536941096186638, 0.014198179356753826]}]}`

	ModelsResponse = `{"object":"list","data":[{"id":"Hermes-3-Llama-3.1-8B","object":"model","created":"2024-10-31T00:00:00Z","owned_by":"NousResearch","description":"Generally good for chat","max_context_length":20480,"prompt_format":"chatml","capabilities":{"chat_completion":true,"chat_with_image":false,"completion":true,"embedding":false,"embedding_with_image":false,"tokenize":true}}]}`

	ModelListResponse = `["Hermes-3-Llama-3.1-8B","neural-chat-7b-v3-3","deepseek-coder-6.7b-instruct"]`
)

// ErrorResponse returns an error envelope as sent by the API.
func ErrorResponse(message string) string {
	return `{"error":"` + message + `"}`
}
