package predictionguard

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/predictionguard/go-client/internal/testutil"
	"github.com/predictionguard/go-client/types"
)

func decodeBody(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(body, &m))
	return m
}

func TestClient_Completion(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Handle("POST /completions", http.StatusOK, testutil.CompletionResponse)
	c := newTestClient(t, srv)

	req := NewCompletionRequest(ModelNeuralChat7B, "Will I lose my hair").
		WithMaxTokens(1000).
		WithTemperature(0.1).
		WithTopP(0.1).
		WithTopK(50).
		WithInput(true, &PIIOption{Mode: "replace", Method: ReplaceRandom}).
		WithOutput(false, true)

	resp, err := c.Completion(context.Background(), req)
	require.NoError(t, err)

	choice, ok := resp.First()
	require.True(t, ok)
	assert.Equal(t, "cmpl-6vw7vNwttbxjc86kikp9pGJqFcOaL", resp.ID)
	assert.Equal(t, Timestamp(1716926174), resp.Created)
	assert.Equal(t, ModelNeuralChat7B, choice.Model)
	assert.Contains(t, choice.Text, "hair loss")

	body := decodeBody(t, srv.LastRequest(t).Body)
	assert.Equal(t, "Neural-Chat-7B", body["model"])
	assert.Equal(t, "Will I lose my hair", body["prompt"])
	assert.EqualValues(t, 1000, body["max_tokens"])
	assert.EqualValues(t, 50, body["top_k"])
	assert.Equal(t, map[string]any{
		"block_prompt_injection": true,
		"pii":                    "replace",
		"pii_replace_method":     "random",
	}, body["input"])
	assert.Equal(t, map[string]any{"factuality": false, "toxicity": true}, body["output"])
}

func TestCompletionRequest_Defaults(t *testing.T) {
	b, err := json.Marshal(NewCompletionRequest(ModelNeuralChat7B, "hi"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"model":"Neural-Chat-7B","prompt":"hi","max_tokens":100,"temperature":0}`, string(b))
}

func TestClient_Embedding(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Handle("POST /embeddings", http.StatusOK, testutil.EmbeddingResponse)
	c := newTestClient(t, srv)

	req := NewEmbeddingRequest(ModelBridgetowerLargeItmMlmItc).
		AddInput("Tell me a joke.", "aW1n").
		WithTruncate(TruncateLeft)

	resp, err := c.Embedding(context.Background(), req)
	require.NoError(t, err)

	data, ok := resp.First()
	require.True(t, ok)
	assert.Len(t, data.Embedding, 5)
	assert.InDelta(t, 0.028302032500505447, data.Embedding[0], 1e-12)
	assert.Equal(t, ModelBridgetowerLargeItmMlmItc, resp.Model)

	assert.JSONEq(t,
		`{"model":"bridgetower-large-itm-mlm-itc","input":[{"text":"Tell me a joke.","image":"aW1n"}],"truncate":true,"truncate_direction":"Left"}`,
		string(srv.LastRequest(t).Body))
}

func TestEmbeddingRequest_Builders(t *testing.T) {
	base := NewEmbeddingRequest(ModelMultilingualE5LargeInstruct, EmbeddingInput{Text: "a"})
	left := base.AddInput("left", "")
	right := base.AddInput("right", "")

	assert.Len(t, base.Input, 1)
	assert.Equal(t, "left", left.Input[1].Text)
	assert.Equal(t, "right", right.Input[1].Text)

	more := base.AddInputs(EmbeddingInput{Text: "b"}, EmbeddingInput{Image: "img"})
	assert.Len(t, more.Input, 3)

	b, err := json.Marshal(base)
	require.NoError(t, err)
	assert.JSONEq(t, `{"model":"multilingual-e5-large-instruct","input":[{"text":"a"}]}`, string(b))
}

func TestClient_Factuality(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Handle("POST /factuality", http.StatusOK, testutil.FactualityResponse)
	c := newTestClient(t, srv)

	resp, err := c.Factuality(context.Background(),
		NewFactualityRequest("The President shall receive a Salary.", "The president gets paid."))
	require.NoError(t, err)

	check, ok := resp.First()
	require.True(t, ok)
	assert.InDelta(t, 0.7879658937454224, check.Score, 1e-12)
	assert.Equal(t, "success", check.Status)

	assert.Equal(t, map[string]any{
		"reference": "The President shall receive a Salary.",
		"text":      "The president gets paid.",
	}, decodeBody(t, srv.LastRequest(t).Body))
}

func TestClient_Injection(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Handle("POST /injection", http.StatusOK, testutil.InjectionResponse)
	c := newTestClient(t, srv)

	resp, err := c.Injection(context.Background(),
		NewInjectionRequest("A short poem may be a stylistic choice.", true))
	require.NoError(t, err)

	// created arrives as a string on this endpoint
	assert.Equal(t, Timestamp(1716927842), resp.Created)
	check, ok := resp.First()
	require.True(t, ok)
	assert.Equal(t, 0.5, check.Probability)

	assert.Equal(t, true, decodeBody(t, srv.LastRequest(t).Body)["detect"])
}

func TestClient_PII(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Handle("POST /PII", http.StatusOK, testutil.PIIResponse)
	c := newTestClient(t, srv)

	resp, err := c.PII(context.Background(),
		NewPIIRequest("My email is joe@gmail.com", true, ReplaceRandom))
	require.NoError(t, err)

	assert.Equal(t, Timestamp(1716928267), resp.Created)
	check, ok := resp.First()
	require.True(t, ok)
	assert.Equal(t, "My email is oyo@yukmt.fjw", check.NewPrompt)

	req := srv.LastRequest(t)
	assert.Equal(t, "/PII", req.Path)
	assert.Equal(t, map[string]any{
		"prompt":         "My email is joe@gmail.com",
		"replace":        true,
		"replace_method": "random",
	}, decodeBody(t, req.Body))
}

func TestClient_Toxicity(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Handle("POST /toxicity", http.StatusOK, testutil.ToxicityResponse)
	c := newTestClient(t, srv)

	resp, err := c.Toxicity(context.Background(), NewToxicityRequest("Every flight I have is late."))
	require.NoError(t, err)

	check, ok := resp.First()
	require.True(t, ok)
	assert.InDelta(t, 0.7072361707687378, check.Score, 1e-12)
	assert.Equal(t, "toxi-T9KOKkKxBBXEHVoDkzoC0uYNpTbvx", resp.ID)
}

func TestClient_Translate(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Handle("POST /translate", http.StatusOK, testutil.TranslateResponse)
	c := newTestClient(t, srv)

	resp, err := c.Translate(context.Background(),
		NewTranslateRequest("The rain in Spain stays mainly in the plain", LanguageEnglish, LanguageSpanish, true))
	require.NoError(t, err)

	assert.Equal(t, "google", resp.BestTranslationModel)
	assert.Equal(t, "La lluvia en España permanece principalmente en la llanura", resp.BestTranslation)
	assert.Len(t, resp.Translations, 3)

	assert.Equal(t, map[string]any{
		"text":                   "The rain in Spain stays mainly in the plain",
		"source_lang":            "eng",
		"target_lang":            "spa",
		"use_third_party_engine": true,
	}, decodeBody(t, srv.LastRequest(t).Body))
}

func TestClient_Translate_UnknownLanguagePassesThrough(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Handle("POST /translate", http.StatusOK, testutil.TranslateResponse)
	c := newTestClient(t, srv)

	_, err := c.Translate(context.Background(),
		NewTranslateRequest("hello", LanguageEnglish, ParseLanguage("xyz"), false))
	require.NoError(t, err)
	assert.Equal(t, "xyz", decodeBody(t, srv.LastRequest(t).Body)["target_lang"])
}

func TestClient_Rerank(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Handle("POST /rerank", http.StatusOK, testutil.RerankResponse)
	c := newTestClient(t, srv)

	docs := []string{"Deeplearning is pizza", "Deeplearning is not pizza."}
	req := NewRerankRequest(ModelBgeRerankerV2M3, "What is Deep Learning?", docs, true)
	docs[0] = "mutated"

	resp, err := c.Rerank(context.Background(), req)
	require.NoError(t, err)

	top, ok := resp.First()
	require.True(t, ok)
	assert.Equal(t, 1, top.Index)
	assert.Equal(t, "Deeplearning is not pizza.", top.Text)
	assert.Len(t, resp.Results, 2)

	body := decodeBody(t, srv.LastRequest(t).Body)
	assert.Equal(t, []any{"Deeplearning is pizza", "Deeplearning is not pizza."}, body["documents"])
	assert.Equal(t, true, body["return_documents"])
}

func TestClient_Tokenize(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Handle("POST /tokenize", http.StatusOK, testutil.TokenizeResponse)
	c := newTestClient(t, srv)

	resp, err := c.Tokenize(context.Background(), NewTokenizeRequest(ModelNeuralChat7BV33, "Tell me a joke."))
	require.NoError(t, err)

	require.Len(t, resp.Tokens, 6)
	assert.Equal(t, Token{ID: 15259, Start: 0, End: 0, Text: "Tell"}, resp.Tokens[1])
	assert.Equal(t, ModelNeuralChat7BV33, resp.Model)

	assert.Equal(t, map[string]any{
		"model": "neural-chat-7b-v3-3",
		"input": "Tell me a joke.",
	}, decodeBody(t, srv.LastRequest(t).Body))
}

func TestClient_Models(t *testing.T) {
	tests := []struct {
		name       string
		capability types.Capability
		wantPath   string
	}{
		{name: "all", wantPath: "/models"},
		{name: "by capability", capability: types.CapabilityChatCompletion, wantPath: "/models/chat-completion"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testutil.NewServer(t)
			srv.Handle("GET "+tt.wantPath, http.StatusOK, testutil.ModelsResponse)
			c := newTestClient(t, srv)

			resp, err := c.Models(context.Background(), tt.capability)
			require.NoError(t, err)

			require.Len(t, resp.Data, 1)
			m := resp.Data[0]
			assert.Equal(t, "Hermes-3-Llama-3.1-8B", m.ID)
			assert.Equal(t, 20480, m.MaxContextLength)
			assert.True(t, m.Capabilities.Supports(types.CapabilityTokenize))
			assert.False(t, m.Capabilities.Supports(types.CapabilityEmbedding))

			req := srv.LastRequest(t)
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Empty(t, req.Body)
		})
	}
}

func TestClient_ListModelsEndpoints(t *testing.T) {
	tests := []struct {
		name string
		path string
		call func(*Client, context.Context) ([]string, error)
	}{
		{name: "chat", path: ChatPath, call: (*Client).ListChatModels},
		{name: "completion", path: CompletionPath, call: (*Client).ListCompletionModels},
		{name: "embedding", path: EmbeddingPath, call: (*Client).ListEmbeddingModels},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testutil.NewServer(t)
			srv.Handle("GET "+tt.path, http.StatusOK, testutil.ModelListResponse)
			c := newTestClient(t, srv)

			names, err := tt.call(c, context.Background())
			require.NoError(t, err)
			assert.Equal(t, []string{"Hermes-3-Llama-3.1-8B", "neural-chat-7b-v3-3", "deepseek-coder-6.7b-instruct"}, names)
		})
	}
}

func TestClient_EndpointErrors(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Handle("POST /factuality", http.StatusUnauthorized, testutil.ErrorResponse("api understands the request but refuses to authorize it"))
	c := newTestClient(t, srv)

	resp, err := c.Factuality(context.Background(), NewFactualityRequest("a", "b"))
	assert.Nil(t, resp)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "api understands the request but refuses to authorize it", apiErr.Message)
}
