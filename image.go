package predictionguard

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// EncodeImage downloads the image at url and returns it base64-encoded,
// ready for EmbeddingInput.Image or ImageDataURI.
//
// The download is a plain GET through the client's HTTP client; the API
// key is not sent.
func (c *Client) EncodeImage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create image request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", NewAPIError(fmt.Sprintf("failed to download image: %s", resp.Status), resp.StatusCode, nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	return base64.StdEncoding.EncodeToString(data), nil
}

// EncodeImageBestEffort is EncodeImage for call sites where the image is
// optional: any failure is logged at warn level and "" is returned, which
// request builders treat as no image.
func (c *Client) EncodeImageBestEffort(ctx context.Context, url string) string {
	img, err := c.EncodeImage(ctx, url)
	if err != nil {
		c.logger.Warn("image unavailable, continuing without it",
			zap.String("url", url),
			zap.Error(err))
		return ""
	}
	return img
}
