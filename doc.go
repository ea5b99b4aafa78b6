// Package predictionguard is a Go client for the Prediction Guard API.
//
// It covers chat completion (text, vision and streamed), text completion,
// embeddings, factuality, prompt injection, PII, toxicity, translation,
// rerank, tokenize and model listing. Each call encodes a request as JSON,
// sends it to the configured endpoint and decodes the response; a non-200
// status is returned as an *APIError.
//
// Basic usage:
//
//	cfg, err := predictionguard.LoadConfig(".env")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := predictionguard.NewClient(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	req := predictionguard.NewChatRequest[predictionguard.Message](predictionguard.ModelHermes3Llama318B).
//	    AddMessage(predictionguard.NewMessage(predictionguard.RoleUser, "How do you feel about the world in general?"))
//
//	resp, err := client.Chat(ctx, req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if choice, ok := resp.First(); ok {
//	    fmt.Println(choice.Message.Content)
//	}
//
// The client does not retry, rate limit or cache. Callers that need those
// policies wrap the client.
package predictionguard
