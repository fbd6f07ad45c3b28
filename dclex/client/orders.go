package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dclex/dclex-go/dclex/types"
)

// orderWire is a backend order record as serialized on the wire. Numeric
// quantities arrive as decimal strings even when integral.
type orderWire struct {
	ID                 int64            `json:"id"`
	ActionType         string           `json:"actionType"`
	Type               string           `json:"type"`
	StockSymbol        string           `json:"stockSymbol"`
	Quantity           decimal.Decimal  `json:"quantity"`
	Price              *decimal.Decimal `json:"price"`
	Status             string           `json:"status"`
	DateOfCancellation *string          `json:"dateOfCancellation"`
}

func (w orderWire) toOrder() (types.Order, error) {
	cancellation, err := parseOptionalDate(w.DateOfCancellation)
	if err != nil {
		return types.Order{}, decodeError(err, "order record")
	}
	return types.Order{
		ID:                 w.ID,
		Side:               types.OrderSide(w.ActionType),
		Type:               types.OrderType(w.Type),
		Symbol:             w.StockSymbol,
		Quantity:           w.Quantity.IntPart(),
		Price:              w.Price,
		Status:             types.OrderStatus(w.Status),
		DateOfCancellation: cancellation,
	}, nil
}

// CreateLimitOrder places a limit order and returns the backend order id.
// An omitted cancellation date means good until cancelled.
func (c *Client) CreateLimitOrder(ctx context.Context, side types.OrderSide, symbol string, quantity int64, priceLimit decimal.Decimal, dateOfCancellation *time.Time) (int64, error) {
	body := map[string]any{
		"amount":      decimal.NewFromInt(quantity).String(),
		"stockSymbol": symbol,
		"priceLimit":  priceLimit.String(),
	}
	if dateOfCancellation != nil {
		body["dateOfCancellation"] = dateOfCancellation.Format(dateLayout)
	}

	var out struct {
		OrderID int64 `json:"orderId"`
	}
	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: endpointLimitOrder + strings.ToLower(string(side)) + "/",
		body:     body,
		authed:   true,
		out:      &out,
	})
	if err != nil {
		return 0, err
	}
	return out.OrderID, nil
}

// CreateSellMarketOrder places a market sell order and returns the backend
// order id. The backend only supports the sell side for market orders.
func (c *Client) CreateSellMarketOrder(ctx context.Context, symbol string, quantity int64) (int64, error) {
	var out struct {
		OrderID int64 `json:"orderId"`
	}
	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: endpointMarketSellOrder,
		body: map[string]any{
			"amount":      decimal.NewFromInt(quantity).String(),
			"stockSymbol": symbol,
		},
		authed: true,
		out:    &out,
	})
	if err != nil {
		return 0, err
	}
	return out.OrderID, nil
}

// CancelOrder cancels an open order by id.
func (c *Client) CancelOrder(ctx context.Context, orderID int64) error {
	return c.do(ctx, call{
		method:   http.MethodDelete,
		endpoint: fmt.Sprintf("%s%d/", endpointOpenOrders, orderID),
		authed:   true,
	})
}

// Order fetches a single order by id, open or closed.
func (c *Client) Order(ctx context.Context, orderID int64) (types.Order, error) {
	var out orderWire
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: fmt.Sprintf("%s%d/", endpointOrders, orderID),
		authed:   true,
		out:      &out,
	})
	if err != nil {
		return types.Order{}, err
	}
	return out.toOrder()
}

// OpenOrders lists every open order, walking all pages in order.
func (c *Client) OpenOrders(ctx context.Context) ([]types.Order, error) {
	return c.listOrders(ctx, endpointOpenOrders)
}

// ClosedOrders lists every executed or canceled order, walking all pages
// in order.
func (c *Client) ClosedOrders(ctx context.Context) ([]types.Order, error) {
	return c.listOrders(ctx, endpointClosedOrders)
}

func (c *Client) listOrders(ctx context.Context, endpoint string) ([]types.Order, error) {
	wires, err := collectPages(DefaultPage, DefaultPageSize, func(pageNum, size int) (page[orderWire], error) {
		var out page[orderWire]
		err := c.do(ctx, call{
			method:   http.MethodGet,
			endpoint: endpoint,
			query:    pageQuery(pageNum, size),
			authed:   true,
			out:      &out,
		})
		return out, err
	})
	if err != nil {
		return nil, err
	}

	orders := make([]types.Order, 0, len(wires))
	for _, w := range wires {
		order, err := w.toOrder()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func pageQuery(pageNum, size int) map[string]string {
	return map[string]string{
		"page": fmt.Sprintf("%d", pageNum),
		"size": fmt.Sprintf("%d", size),
	}
}
