// Package cdn fetches merchant widget configuration from the Loop CDN. All
// payloads are cache-friendly static JSON keyed by shop domain and widget id.
package cdn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"subscription-widget/internal/bundle"
	"subscription-widget/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Fetch budget per client. The widget rerenders aggressively on variant
// changes; the limiter keeps a render loop from hammering the CDN.
const (
	fetchLimit = rate.Limit(10)
	fetchBurst = 30
)

type Client struct {
	baseURL    string
	shopDomain string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(baseURL, shopDomain string) *Client {
	return &Client{
		baseURL:    baseURL,
		shopDomain: shopDomain,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: rate.NewLimiter(fetchLimit, fetchBurst),
	}
}

func (c *Client) shopURL(path string) string {
	return fmt.Sprintf("%s/%s%s", c.baseURL, c.shopDomain, path)
}

// Store fetches the merchant store configuration.
func (c *Client) Store(ctx context.Context) (*StoreConfig, error) {
	var cfg StoreConfig
	if err := c.getJSON(ctx, c.shopURL("/store.json"), &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return &cfg, nil
}

// Preferences fetches the per-widget preference list.
func (c *Client) Preferences(ctx context.Context, widgetID string) ([]KeyValue, error) {
	var prefs []KeyValue
	url := c.shopURL(fmt.Sprintf("/widgets/%s/preferences.json", widgetID))
	if err := c.getJSON(ctx, url, &prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// Styles fetches the raw widget stylesheet.
func (c *Client) Styles(ctx context.Context, widgetID string) (string, error) {
	url := c.shopURL(fmt.Sprintf("/widgets/%s/styles.css", widgetID))

	body, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Texts fetches the widget text list. When the shopper locale differs from
// the store default it tries the localized file first and falls back to the
// default-locale file; only a failure of the fallback is an error.
func (c *Client) Texts(ctx context.Context, widgetID, locale, storeDefaultLocale string) ([]KeyValue, error) {
	defaultURL := c.shopURL(fmt.Sprintf("/widgets/%s/texts.json", widgetID))

	if locale != "" && storeDefaultLocale != "" && locale != storeDefaultLocale {
		localizedURL := c.shopURL(fmt.Sprintf("/widgets/%s/texts-%s.json", widgetID, locale))
		texts, err := c.fetchTexts(ctx, localizedURL)
		if err == nil {
			return texts, nil
		}
		logger.FromCtx(ctx).Warn("falling back to non-localized texts",
			zap.String("locale", locale),
			zap.Error(err),
		)
	}

	return c.fetchTexts(ctx, defaultURL)
}

func (c *Client) fetchTexts(ctx context.Context, url string) ([]KeyValue, error) {
	var texts []KeyValue
	if err := c.getJSON(ctx, url, &texts); err != nil {
		return nil, err
	}
	if len(texts) == 0 {
		return nil, ErrEmptyTexts
	}
	return texts, nil
}

// PresetBundle fetches the preset bundle composition for a bundle product.
func (c *Client) PresetBundle(ctx context.Context, productID int64) (*bundle.Data, error) {
	var data bundle.Data
	url := c.shopURL(fmt.Sprintf("/presetBundles/%d.json", productID))
	if err := c.getJSON(ctx, url, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed decoding %s: %w", url, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if !c.limiter.Allow() {
		return nil, ErrRateLimited
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.FromCtx(ctx).Warn("CDN request failed", zap.String("url", url), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read CDN response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.FromCtx(ctx).Warn("CDN returned non-success status",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("cdn error: status %d for %s", resp.StatusCode, url)
	}

	return body, nil
}
