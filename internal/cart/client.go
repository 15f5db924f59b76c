package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"subscription-widget/internal/logger"

	"go.uber.org/zap"
)

// Client talks to the platform's AJAX cart endpoints on the storefront
// origin.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Add posts the payload to /cart/add.js and returns the raw platform
// response for event subscribers.
func (c *Client) Add(ctx context.Context, payload Payload) (json.RawMessage, error) {
	log := logger.FromCtx(ctx)

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		log.Error("failed to marshal cart payload", zap.Error(err))
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/cart/add.js", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("cart add request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("cart add returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("cart add error: status %d", resp.StatusCode)
	}

	return json.RawMessage(bodyBytes), nil
}

// Current fetches the live cart from /cart.js.
func (c *Client) Current(ctx context.Context) (*State, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/cart.js", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.FromCtx(ctx).Warn("cart fetch failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cart fetch error: status %d", resp.StatusCode)
	}

	var state State
	if err := json.Unmarshal(bodyBytes, &state); err != nil {
		return nil, err
	}
	return &state, nil
}
