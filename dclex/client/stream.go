package client

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/r3labs/sse/v2"
	"github.com/shopspring/decimal"

	"github.com/dclex/dclex-go/dclex/types"
)

type priceTickWire struct {
	Symbol           string          `json:"symbol"`
	Price            decimal.Decimal `json:"price"`
	Timestamp        string          `json:"timestamp"`
	PercentageChange decimal.Decimal `json:"percentageChange"`
}

// PricesStream subscribes to the server-sent price feed and delivers one
// Price per tick until ctx is cancelled or the stream drops. The prices
// channel is closed on exit; a non-cancellation failure is delivered on
// the error channel before it closes. Malformed ticks are logged and
// skipped rather than killing the stream.
func (c *Client) PricesStream(ctx context.Context, accessToken string) (<-chan types.Price, <-chan error) {
	prices := make(chan types.Price)
	errs := make(chan error, 1)

	streamURL := c.BaseURL() + endpointPricesStream + "?token=" + url.QueryEscape(accessToken)
	stream := sse.NewClient(streamURL)

	go func() {
		defer close(prices)
		defer close(errs)

		err := stream.SubscribeRawWithContext(ctx, func(msg *sse.Event) {
			if len(msg.Data) == 0 {
				return
			}
			var tick priceTickWire
			if err := json.Unmarshal(msg.Data, &tick); err != nil {
				c.log.WithError(err).Warn("skipping malformed price tick")
				return
			}
			ts, err := parseTimestamp(tick.Timestamp)
			if err != nil {
				c.log.WithError(err).Warn("skipping price tick with bad timestamp")
				return
			}
			select {
			case prices <- types.Price{
				Symbol:           tick.Symbol,
				LastPrice:        tick.Price,
				Timestamp:        ts,
				PercentageChange: tick.PercentageChange,
			}:
			case <-ctx.Done():
			}
		})
		if err != nil && ctx.Err() == nil {
			errs <- &TransportError{Err: err}
		}
	}()

	return prices, errs
}
