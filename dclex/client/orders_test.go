package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dclex/dclex-go/dclex/types"
)

func TestCreateLimitOrder(t *testing.T) {
	var got struct {
		path string
		body map[string]any
	}
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got.body))
		w.Write([]byte(`{"orderId": 321}`))
	}))
	c.Session().SetToken("token-1")

	cancellation := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	orderID, err := c.CreateLimitOrder(context.Background(), types.SideBuy, "AAPL", 5, decimal.RequireFromString("189.90"), &cancellation)
	require.NoError(t, err)
	assert.Equal(t, int64(321), orderID)

	assert.Equal(t, "/orders/limit/buy/", got.path)
	assert.Equal(t, "5", got.body["amount"], "quantity must be a decimal string")
	assert.Equal(t, "AAPL", got.body["stockSymbol"])
	assert.Equal(t, "189.9", got.body["priceLimit"])
	assert.Equal(t, "2026-09-30", got.body["dateOfCancellation"])
}

func TestCreateLimitOrderGoodUntilCancelled(t *testing.T) {
	var body map[string]any
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/limit/sell/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"orderId": 9}`))
	}))
	c.Session().SetToken("token-1")

	_, err := c.CreateLimitOrder(context.Background(), types.SideSell, "MSFT", 2, decimal.NewFromInt(400), nil)
	require.NoError(t, err)
	_, present := body["dateOfCancellation"]
	assert.False(t, present, "omitted cancellation date must not be sent")
}

func TestCreateLimitOrderInsufficientFunds(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errorCode": "INSUFFICIENT_FUNDS"}`))
	}))
	c.Session().SetToken("token-1")

	_, err := c.CreateLimitOrder(context.Background(), types.SideBuy, "AAPL", 1000, decimal.NewFromInt(200), nil)
	assert.ErrorIs(t, err, ErrNotEnoughFunds)
}

func TestCreateSellMarketOrder(t *testing.T) {
	var body map[string]any
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/market/sell/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"orderId": 55}`))
	}))
	c.Session().SetToken("token-1")

	orderID, err := c.CreateSellMarketOrder(context.Background(), "NVDA", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(55), orderID)
	assert.Equal(t, "3", body["amount"])
	assert.Equal(t, "NVDA", body["stockSymbol"])
}

func TestCancelOrder(t *testing.T) {
	var got struct {
		method string
		path   string
	}
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	c.Session().SetToken("token-1")

	require.NoError(t, c.CancelOrder(context.Background(), 321))
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, "/open-orders/321/", got.path)
}

func TestOrder(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/17/", r.URL.Path)
		w.Write([]byte(`{
			"id": 17,
			"actionType": "BUY",
			"type": "LIMIT",
			"stockSymbol": "AAPL",
			"quantity": "5",
			"price": "189.90",
			"status": "EXECUTED",
			"dateOfCancellation": "2026-09-30"
		}`))
	}))
	c.Session().SetToken("token-1")

	order, err := c.Order(context.Background(), 17)
	require.NoError(t, err)
	assert.Equal(t, int64(17), order.ID)
	assert.Equal(t, types.SideBuy, order.Side)
	assert.Equal(t, types.OrderTypeLimit, order.Type)
	assert.Equal(t, "AAPL", order.Symbol)
	assert.Equal(t, int64(5), order.Quantity)
	require.NotNil(t, order.Price)
	assert.True(t, order.Price.Equal(decimal.RequireFromString("189.90")))
	assert.Equal(t, types.OrderExecuted, order.Status)
	require.NotNil(t, order.DateOfCancellation)
	assert.Equal(t, time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC), order.DateOfCancellation.UTC())
}

func TestOpenOrdersAggregatesPages(t *testing.T) {
	const total = 250
	var requests []string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.RawQuery)

		pageNum := 1
		fmt.Sscanf(r.URL.Query().Get("page"), "%d", &pageNum)

		start := (pageNum - 1) * DefaultPageSize
		items := make([]map[string]any, 0, DefaultPageSize)
		for i := start; i < start+DefaultPageSize && i < total; i++ {
			items = append(items, map[string]any{
				"id":                 i,
				"actionType":         "SELL",
				"type":               "MARKET",
				"stockSymbol":        "AAPL",
				"quantity":           "1",
				"price":              nil,
				"status":             "PENDING",
				"dateOfCancellation": nil,
			})
		}
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"items": items, "total": total}))
	}))
	c.Session().SetToken("token-1")

	orders, err := c.OpenOrders(context.Background())
	require.NoError(t, err)

	require.Len(t, requests, 3, "250 items at size 100 is exactly three pages")
	require.Len(t, orders, total)
	for i, order := range orders {
		require.Equal(t, int64(i), order.ID, "aggregated order must match backend order")
		require.Nil(t, order.Price, "unfilled market orders carry no price")
		require.Nil(t, order.DateOfCancellation)
	}
}
