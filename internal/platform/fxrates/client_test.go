package fxrates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToGBP_GBPShortCircuit(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	amount := decimal.NewFromInt(1250)

	got, err := client.ConvertToGBP(context.Background(), amount, "GBP")

	require.NoError(t, err)
	assert.True(t, got.Equal(amount))
	assert.False(t, called, "GBP conversion must not hit the rate API")
}

func TestConvertToGBP_NonGBP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/USD", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"USD","date":"2025-06-02","rates":{"GBP":0.8,"EUR":0.92}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	got, err := client.ConvertToGBP(context.Background(), decimal.NewFromInt(100), "usd")

	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(80)), "expected 80, got %s", got)
}

func TestConvertToGBP_MissingGBPRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"base":"SAR","rates":{"EUR":0.24}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	_, err := client.ConvertToGBP(context.Background(), decimal.NewFromInt(100), "SAR")
	assert.Error(t, err)
}

func TestGetLatestRates_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	_, err := client.GetLatestRates(context.Background(), "EUR")
	assert.Error(t, err)
}
