// Package api talks to the privileged subscription backend: the endpoints
// published in the store config that need the store auth token, as opposed to
// the anonymous CDN payloads.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"context"
	"subscription-widget/internal/bundle"
	"subscription-widget/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type Client struct {
	endpoints  Endpoints
	authToken  string
	httpClient *http.Client
}

// ----------------- Constructor -----------------

func NewClient(endpoints Endpoints, authToken string) *Client {
	if authToken == "" {
		logger.L().Warn("store auth token is empty")
	} else {
		warnIfExpired(authToken)
	}

	return &Client{
		endpoints: endpoints,
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// warnIfExpired decodes the token claims without verifying the signature.
// The token is validated server-side; this only surfaces a stale CDN cache.
func warnIfExpired(token string) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		logger.L().Warn("store auth token is not a parseable JWT", zap.Error(err))
		return
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	if exp.Before(time.Now()) {
		logger.L().Warn("store auth token is expired", zap.Time("expired_at", exp.Time))
	}
}

// ----------------- PrepaidPlans -----------------

// PrepaidPlans fetches billing cadence for the given selling plans, keyed by
// plan id.
func (c *Client) PrepaidPlans(ctx context.Context, planIDs []int64) (map[int64]PrepaidPlanInfo, error) {
	if len(planIDs) == 0 {
		return map[int64]PrepaidPlanInfo{}, nil
	}

	ids := make([]string, 0, len(planIDs))
	for _, id := range planIDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}
	url := fmt.Sprintf("%s?shopifyIds=%s", c.endpoints.PrepaidSellingPlans, strings.Join(ids, ","))

	var res prepaidPlansResponse
	if err := c.do(ctx, http.MethodGet, url, nil, &res); err != nil {
		return nil, err
	}

	plans := make(map[int64]PrepaidPlanInfo, len(res.Data.SellingPlans))
	for key, info := range res.Data.SellingPlans {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			logger.FromCtx(ctx).Warn("skipping non-numeric selling plan id", zap.String("id", key))
			continue
		}
		plans[id] = info
	}
	return plans, nil
}

// ----------------- CountryEligiblePlans -----------------

// CountryEligiblePlans returns the subset of planIDs sellable in the shopper
// country.
func (c *Client) CountryEligiblePlans(ctx context.Context, planIDs []int64, countryCode string) ([]int64, error) {
	body := countryFilterRequest{
		SellingPlanShopifyIDs: planIDs,
		CountryCode:           countryCode,
	}

	var res countryFilterResponse
	if err := c.do(ctx, http.MethodPost, c.endpoints.SellingPlanCountryFilter, body, &res); err != nil {
		return nil, err
	}
	return res.Data.FilteredSellingPlanShopifyIDs, nil
}

// ----------------- CreateBundleTransaction -----------------

func (c *Client) CreateBundleTransaction(ctx context.Context, req bundle.TransactionRequest) (string, error) {
	var res bundleTransactionResponse
	if err := c.do(ctx, http.MethodPost, c.endpoints.BundleTransaction, req, &res); err != nil {
		return "", err
	}
	return res.Data.TransactionID, nil
}

// ----------------- Transport -----------------

func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	log := logger.FromCtx(ctx).With(zap.String("url", url))

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			log.Error("failed to marshal API request", zap.Error(err))
			return err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		log.Error("failed building request", zap.Error(err))
		return err
	}

	req.Header.Add("Authorization", "Bearer "+c.authToken)
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("API request failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return fmt.Errorf("failed to read API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("API returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		log.Error("failed decoding API response", zap.Error(err))
		return err
	}
	return nil
}
