// Package fxrates fetches live currency conversion rates from the
// exchangerate-api.com latest-rates endpoint.
package fxrates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// latestResponse mirrors the v4/latest/{CUR} payload. Only the rates map is used.
type latestResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Client calls the public latest-rates API. One HTTP round trip per lookup;
// callers that need caching layer it above this.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client against the given base URL, e.g.
// "https://api.exchangerate-api.com/v4/latest".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetRate fetches the conversion rate from one currency into another.
func (c *Client) GetRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	rates, err := c.GetLatestRates(ctx, from)
	if err != nil {
		return decimal.Zero, err
	}
	rate, ok := rates[strings.ToUpper(to)]
	if !ok {
		return decimal.Zero, fmt.Errorf("no %s rate in response for base %s", to, from)
	}
	return rate, nil
}

// GetLatestRates fetches the full rate table for a base currency.
func (c *Client) GetLatestRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, strings.ToUpper(base))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate lookup for %s failed: %w", base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate lookup for %s returned status %d", base, resp.StatusCode)
	}

	var payload latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode rate response for %s: %w", base, err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("empty rate table for %s", base)
	}

	rates := make(map[string]decimal.Decimal, len(payload.Rates))
	for code, rate := range payload.Rates {
		rates[strings.ToUpper(code)] = decimal.NewFromFloat(rate)
	}
	return rates, nil
}

// ConvertToGBP converts an amount from the given currency into GBP.
// GBP input is returned unchanged without a network call.
func (c *Client) ConvertToGBP(ctx context.Context, amount decimal.Decimal, fromCurrency string) (decimal.Decimal, error) {
	from := strings.ToUpper(strings.TrimSpace(fromCurrency))
	if from == "" || from == "GBP" {
		return amount, nil
	}
	rate, err := c.GetRate(ctx, from, "GBP")
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}
