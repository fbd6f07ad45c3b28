package client

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/dclex/dclex-go/dclex/types"
)

// Nonce fetches a single-use SIWE login nonce. Unauthenticated.
func (c *Client) Nonce(ctx context.Context) (string, error) {
	var out struct {
		Nonce string `json:"nonce"`
	}
	err := c.do(ctx, call{method: http.MethodGet, endpoint: endpointNonce, out: &out})
	if err != nil {
		return "", err
	}
	return out.Nonce, nil
}

// VerifySIWE submits the signed login message. The message must be byte
// identical to what the wallet signed; any discrepancy surfaces as
// ErrSignatureVerification. On success the returned token is installed
// into the session.
func (c *Client) VerifySIWE(ctx context.Context, message, signature, nonce string) error {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: endpointVerify,
		form: map[string]string{
			"message":   message,
			"signature": signature,
			"nonce":     nonce,
		},
		out: &out,
	})
	if err != nil {
		return err
	}
	c.session.SetToken(out.Token)
	c.log.Debug("session established")
	return nil
}

// Logout invalidates the token server-side and clears it locally no matter
// what the server says. Calling it while already logged out is a no-op.
func (c *Client) Logout(ctx context.Context) error {
	if !c.session.LoggedIn() {
		return nil
	}
	defer c.session.Clear()

	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: endpointLogout,
		body:     struct{}{},
		authed:   true,
	})
	if errors.Is(err, ErrNotLoggedIn) {
		// Token already invalid server-side; local state is cleared either way.
		return nil
	}
	return err
}

// AccountStatus fetches the verification state of the account.
func (c *Client) AccountStatus(ctx context.Context) (types.AccountStatus, error) {
	var out struct {
		Status string `json:"status"`
	}
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: endpointVerificationStatus,
		authed:   true,
		out:      &out,
	})
	if err != nil {
		return "", err
	}
	return types.AccountStatus(out.Status), nil
}

type positionWire struct {
	Symbol                string          `json:"symbol"`
	Name                  string          `json:"name"`
	TotalOwned            decimal.Decimal `json:"totalOwned"`
	AvailableToSell       decimal.Decimal `json:"availableToSell"`
	AveragePurchasePrice  decimal.Decimal `json:"averagePurchasePrice"`
	LastMarketPrice       decimal.Decimal `json:"lastMarketPrice"`
	ProfitLoss            decimal.Decimal `json:"profitLoss"`
	ProfitLossPercentage  decimal.Decimal `json:"profitLossPercentage"`
	IsOffboarded          bool            `json:"isOffboarded"`
	MultiplierNumerator   int64           `json:"multiplierNumerator"`
	MultiplierDenominator int64           `json:"multiplierDenominator"`
}

// Portfolio fetches the balance snapshot. The backend recomputes it on
// every call; nothing is cached client-side.
func (c *Client) Portfolio(ctx context.Context) (*types.Portfolio, error) {
	var out struct {
		Balance struct {
			Available  decimal.Decimal `json:"available"`
			Equity     decimal.Decimal `json:"equity"`
			Funds      decimal.Decimal `json:"funds"`
			ProfitLoss decimal.Decimal `json:"profitLoss"`
			TotalValue decimal.Decimal `json:"totalValue"`
		} `json:"balance"`
		Stocks []positionWire `json:"stocks"`
	}
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: endpointPortfolio,
		authed:   true,
		out:      &out,
	})
	if err != nil {
		return nil, err
	}

	portfolio := &types.Portfolio{
		Available:  out.Balance.Available,
		Total:      out.Balance.Funds,
		Equity:     out.Balance.Equity,
		ProfitLoss: out.Balance.ProfitLoss,
		TotalValue: out.Balance.TotalValue,
		Positions:  make([]types.Position, 0, len(out.Stocks)),
	}
	for _, p := range out.Stocks {
		portfolio.Positions = append(portfolio.Positions, types.Position{
			Symbol:                p.Symbol,
			Name:                  p.Name,
			TotalOwned:            p.TotalOwned,
			AvailableToSell:       p.AvailableToSell,
			AveragePurchasePrice:  p.AveragePurchasePrice,
			LastMarketPrice:       p.LastMarketPrice,
			ProfitLoss:            p.ProfitLoss,
			ProfitLossPercentage:  p.ProfitLossPercentage,
			IsOffboarded:          p.IsOffboarded,
			MultiplierNumerator:   p.MultiplierNumerator,
			MultiplierDenominator: p.MultiplierDenominator,
		})
	}
	return portfolio, nil
}
