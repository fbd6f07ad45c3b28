package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/dclex/dclex-go/dclex/types"
)

type transferWire struct {
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	Symbol        string          `json:"symbol"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
}

// PendingTransfers lists in-flight deposits and withdrawals, walking all
// pages in order.
func (c *Client) PendingTransfers(ctx context.Context) ([]types.Transfer, error) {
	return c.listTransfers(ctx, endpointPendingTransfers)
}

// ClosedTransfers lists settled and rejected transfers, walking all pages
// in order.
func (c *Client) ClosedTransfers(ctx context.Context) ([]types.Transfer, error) {
	return c.listTransfers(ctx, endpointClosedTransfers)
}

func (c *Client) listTransfers(ctx context.Context, endpoint string) ([]types.Transfer, error) {
	wires, err := collectPages(DefaultPage, DefaultPageSize, func(pageNum, size int) (page[transferWire], error) {
		var out page[transferWire]
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

	transfers := make([]types.Transfer, 0, len(wires))
	for _, w := range wires {
		transfers = append(transfers, types.Transfer{
			TransactionID: w.TransactionID,
			Amount:        w.Amount,
			Symbol:        w.Symbol,
			Type:          types.TransactionType(w.Type),
			Status:        types.TransferStatus(w.Status),
		})
	}
	return transfers, nil
}

// Distributions lists corporate-action payouts, walking all pages in
// order. Distribution batches are large and rare, so the page size is
// bigger than for transfers.
func (c *Client) Distributions(ctx context.Context) ([]types.Distribution, error) {
	wires, err := collectPages(DefaultPage, DefaultDistributionsPageSize, func(pageNum, size int) (page[transferWire], error) {
		var out page[transferWire]
		err := c.do(ctx, call{
			method:   http.MethodGet,
			endpoint: endpointDistributions,
			query:    pageQuery(pageNum, size),
			authed:   true,
			out:      &out,
		})
		return out, err
	})
	if err != nil {
		return nil, err
	}

	distributions := make([]types.Distribution, 0, len(wires))
	for _, w := range wires {
		distributions = append(distributions, types.Distribution{
			TransactionID: w.TransactionID,
			Amount:        w.Amount,
			Symbol:        w.Symbol,
			Status:        types.TransferStatus(w.Status),
		})
	}
	return distributions, nil
}

// ClaimableWithdrawals lists withdrawal requests whose backend
// authorization signature is ready for on-chain redemption. Not paginated.
func (c *Client) ClaimableWithdrawals(ctx context.Context) ([]types.ClaimableWithdrawal, error) {
	var out struct {
		Items []struct {
			WithdrawalID int64           `json:"withdrawalId"`
			Amount       decimal.Decimal `json:"amount"`
			AssetType    string          `json:"assetType"`
		} `json:"items"`
	}
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: endpointClaimableWithdrawals,
		authed:   true,
		out:      &out,
	})
	if err != nil {
		return nil, err
	}

	withdrawals := make([]types.ClaimableWithdrawal, 0, len(out.Items))
	for _, item := range out.Items {
		withdrawals = append(withdrawals, types.ClaimableWithdrawal{
			WithdrawalID: item.WithdrawalID,
			Amount:       item.Amount,
			AssetType:    item.AssetType,
		})
	}
	return withdrawals, nil
}

// InitializeUSDCWithdrawal registers a settlement-currency withdrawal
// request and returns the withdrawal id. The id doubles as the contract
// nonce when the withdrawal is later claimed on-chain.
func (c *Client) InitializeUSDCWithdrawal(ctx context.Context, amount decimal.Decimal) (int64, error) {
	var out struct {
		WithdrawalID int64 `json:"withdrawalId"`
	}
	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: endpointInitUSDCWithdraw,
		body:     map[string]any{"amount": amount.String()},
		authed:   true,
		out:      &out,
	})
	if err != nil {
		return 0, err
	}
	return out.WithdrawalID, nil
}

// InitializeStockWithdrawal registers a stock-token withdrawal request for
// a whole number of shares and returns the withdrawal id.
func (c *Client) InitializeStockWithdrawal(ctx context.Context, quantity int64, symbol string) (int64, error) {
	var out struct {
		WithdrawalID int64 `json:"withdrawalId"`
	}
	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: endpointInitStockWithdraw,
		body: map[string]any{
			"amount":    decimal.NewFromInt(quantity).String(),
			"assetType": symbol,
		},
		authed: true,
		out:    &out,
	})
	if err != nil {
		return 0, err
	}
	return out.WithdrawalID, nil
}

// WithdrawSignature fetches the backend authorization signature for an
// initialized withdrawal.
func (c *Client) WithdrawSignature(ctx context.Context, withdrawalID int64) (string, error) {
	var out struct {
		Signature string `json:"signature"`
	}
	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: fmt.Sprintf("%s%d/", endpointWithdrawSignature, withdrawalID),
		body:     struct{}{},
		authed:   true,
		out:      &out,
	})
	if err != nil {
		return "", err
	}
	return out.Signature, nil
}

// DigitalIdentitySignature fetches the backend authorization for minting
// the account's digital identity token.
func (c *Client) DigitalIdentitySignature(ctx context.Context) (types.DigitalIdentitySignature, error) {
	var out struct {
		Signature   string `json:"signature"`
		Nonce       string `json:"nonce"`
		Nationality string `json:"nationality"`
	}
	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: endpointIdentitySignature,
		body:     struct{}{},
		authed:   true,
		out:      &out,
	})
	if err != nil {
		return types.DigitalIdentitySignature{}, err
	}
	return types.DigitalIdentitySignature{
		Signature:   out.Signature,
		Nonce:       out.Nonce,
		Nationality: out.Nationality,
	}, nil
}

// DepositStocksSignature fetches the backend authorization for burning
// stock tokens back into the custodial ledger.
func (c *Client) DepositStocksSignature(ctx context.Context, quantity int64, symbol string) (types.DepositStocksSignature, error) {
	var out struct {
		Signature string `json:"signature"`
		Nonce     string `json:"nonce"`
	}
	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: endpointDepositStocksSignature,
		body: map[string]any{
			"amount": decimal.NewFromInt(quantity).String(),
			"symbol": symbol,
		},
		authed: true,
		out:    &out,
	})
	if err != nil {
		return types.DepositStocksSignature{}, err
	}
	return types.DepositStocksSignature{
		Signature: out.Signature,
		Nonce:     out.Nonce,
	}, nil
}
