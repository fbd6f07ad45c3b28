package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/dclex/dclex-go/dclex/types"
)

// Stocks fetches the public catalogue of listed tokenized equities keyed
// by symbol. No login required.
func (c *Client) Stocks(ctx context.Context) (map[string]types.Stock, error) {
	var out struct {
		Items []struct {
			Symbol               string          `json:"symbol"`
			Name                 string          `json:"name"`
			CusipID              string          `json:"cusipId"`
			SmartContractAddress string          `json:"smartContractAddress"`
			NumberOfTokens       decimal.Decimal `json:"numberOfTokens"`
		} `json:"items"`
	}
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: endpointStocks,
		query:    map[string]string{"size": strconv.Itoa(catalogueSize)},
		out:      &out,
	})
	if err != nil {
		return nil, err
	}

	stocks := make(map[string]types.Stock, len(out.Items))
	for _, item := range out.Items {
		stocks[item.Symbol] = types.Stock{
			Symbol:              item.Symbol,
			Name:                item.Name,
			CUSIP:               item.CusipID,
			ContractAddress:     item.SmartContractAddress,
			TokensInCirculation: item.NumberOfTokens,
		}
	}
	return stocks, nil
}

// MarketPrices fetches the latest quote for every listed symbol.
func (c *Client) MarketPrices(ctx context.Context) (map[string]types.Price, error) {
	var out struct {
		Items []struct {
			Symbol string `json:"symbol"`
			Price  struct {
				Price            decimal.Decimal `json:"price"`
				Timestamp        string          `json:"timestamp"`
				PercentageChange decimal.Decimal `json:"percentageChange"`
			} `json:"price"`
		} `json:"items"`
	}
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: endpointStockPrices,
		query:    map[string]string{"size": strconv.Itoa(catalogueSize)},
		authed:   true,
		out:      &out,
	})
	if err != nil {
		return nil, err
	}

	prices := make(map[string]types.Price, len(out.Items))
	for _, item := range out.Items {
		ts, err := parseTimestamp(item.Price.Timestamp)
		if err != nil {
			return nil, decodeError(err, "price quote")
		}
		prices[item.Symbol] = types.Price{
			Symbol:           item.Symbol,
			LastPrice:        item.Price.Price,
			Timestamp:        ts,
			PercentageChange: item.Price.PercentageChange,
		}
	}
	return prices, nil
}

// PricesStreamAccessToken fetches a short-lived token granting access to
// the live price stream.
func (c *Client) PricesStreamAccessToken(ctx context.Context) (string, error) {
	var out struct {
		PricesStreamAccessToken string `json:"pricesStreamAccessToken"`
	}
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: endpointPricesStreamAccessToken,
		authed:   true,
		out:      &out,
	})
	if err != nil {
		return "", err
	}
	return out.PricesStreamAccessToken, nil
}
