package predictionguard

import (
	"context"
	"net/http"
	"net/url"

	"github.com/predictionguard/go-client/types"
)

// ModelsPath is the path of the models endpoint.
const ModelsPath = "/models"

// ModelsResponse is returned from the models endpoint.
type ModelsResponse struct {
	Object string            `json:"object"`
	Data   []types.ModelInfo `json:"data"`
}

// Models lists the models served by Prediction Guard. A non-empty
// capability restricts the list to models supporting it.
//
// Example:
//
//	resp, err := client.Models(ctx, types.CapabilityEmbedding)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, m := range resp.Data {
//	    fmt.Println(m.ID, m.MaxContextLength)
//	}
func (c *Client) Models(ctx context.Context, capability types.Capability) (*ModelsResponse, error) {
	path := ModelsPath
	if capability != "" {
		path += "/" + url.PathEscape(string(capability))
	}
	return doJSON[ModelsResponse](ctx, c, "models", http.MethodGet, path, nil, "")
}
