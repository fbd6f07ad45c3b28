package client

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStocks(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stocks/", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("size"))
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{
			"items": [
				{"symbol": "AAPL", "name": "Apple Inc.", "cusipId": "037833100", "smartContractAddress": "0x1111", "numberOfTokens": "50000"},
				{"symbol": "MSFT", "name": "Microsoft Corp.", "cusipId": "594918104", "smartContractAddress": "0x2222", "numberOfTokens": "30000"}
			],
			"total": 2
		}`))
	}))

	stocks, err := c.Stocks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth, "the catalogue is public")
	require.Len(t, stocks, 2)

	apple := stocks["AAPL"]
	assert.Equal(t, "Apple Inc.", apple.Name)
	assert.Equal(t, "037833100", apple.CUSIP)
	assert.Equal(t, "0x1111", apple.ContractAddress)
	assert.True(t, apple.TokensInCirculation.Equal(decimal.NewFromInt(50000)))
}

func TestMarketPrices(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stocks-prices/", r.URL.Path)
		assert.Equal(t, "Token token-1", r.Header.Get("Authorization"))
		w.Write([]byte(`{
			"items": [
				{"symbol": "AAPL", "price": {"price": "190.05", "timestamp": "2026-08-28T14:30:00.123456", "percentageChange": "1.2"}}
			],
			"total": 1
		}`))
	}))
	c.Session().SetToken("token-1")

	prices, err := c.MarketPrices(context.Background())
	require.NoError(t, err)
	require.Len(t, prices, 1)

	quote := prices["AAPL"]
	assert.Equal(t, "AAPL", quote.Symbol)
	assert.True(t, quote.LastPrice.Equal(decimal.RequireFromString("190.05")))
	assert.True(t, quote.PercentageChange.Equal(decimal.RequireFromString("1.2")))
	assert.Equal(t, time.Date(2026, 8, 28, 14, 30, 0, 123456000, time.UTC), quote.Timestamp)
}

func TestPricesStreamAccessToken(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/prices-stream-access-token/", r.URL.Path)
		w.Write([]byte(`{"pricesStreamAccessToken": "stream-token"}`))
	}))
	c.Session().SetToken("token-1")

	token, err := c.PricesStreamAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stream-token", token)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{
			name: "naive ISO is UTC",
			in:   "2026-08-28T14:30:00.123456",
			want: time.Date(2026, 8, 28, 14, 30, 0, 123456000, time.UTC),
		},
		{
			name: "explicit offset converted",
			in:   "2026-08-28T16:30:00+02:00",
			want: time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC),
		},
		{
			name: "no fraction",
			in:   "2026-08-28T14:30:00",
			want: time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC),
		},
		{name: "garbage", in: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimestamp(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}
