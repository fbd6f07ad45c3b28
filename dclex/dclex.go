// Package dclex is the high-level entry point of the SDK. It ties the
// typed REST client, the signing wallet and the on-chain settlement engine
// into the workflows a trading integration actually runs: SIWE login,
// deposits and withdrawals, identity claiming, order management and market
// data.
package dclex

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/dclex/dclex-go/dclex/chain"
	"github.com/dclex/dclex-go/dclex/client"
	"github.com/dclex/dclex-go/dclex/signing"
	"github.com/dclex/dclex-go/dclex/types"
	"github.com/dclex/dclex-go/pkg/logger"
)

// SIWE login challenge constants. The statement is part of the signed
// bytes, so it must match the backend's expectation verbatim.
const (
	siweDomain    = "app.stg.dclex.com"
	siweURI       = "http://app.stg.dclex.com"
	siweVersion   = "1"
	siweStatement = "By signing this message you confirm that you have completely" +
		" read and understand DCLEX's terms of service including all policies" +
		" and disclosures and that you agree with each part of them."
)

// DefaultBaseURL is the DCLEX staging REST backend.
const DefaultBaseURL = "https://api.stg.dclex.com"

// Dclex is the session facade. A value is bound to one wallet and one
// backend session; it remembers the last account status it observed so
// precondition checks do not cost a round trip per settlement call.
type Dclex struct {
	client *client.Client
	wallet *signing.Wallet
	engine *chain.Engine
	chain  types.Chain
	log    *logrus.Entry

	// now is swapped in tests to make SIWE messages deterministic.
	now func() time.Time

	mu           sync.Mutex
	cachedStatus types.AccountStatus
}

// Option configures a Dclex value at construction time.
type Option func(*settings)

type settings struct {
	baseURL string
	chain   types.Chain
}

// WithBaseURL points the facade at a different REST backend.
func WithBaseURL(baseURL string) Option {
	return func(s *settings) { s.baseURL = baseURL }
}

// WithChain selects the blockchain network. Defaults to Sepolia.
func WithChain(c types.Chain) Option {
	return func(s *settings) { s.chain = c }
}

// New builds a facade around a hex-encoded private key and an Ethereum RPC
// endpoint.
func New(privateKeyHex, rpcURL string, opts ...Option) (*Dclex, error) {
	wallet, err := signing.NewWallet(privateKeyHex)
	if err != nil {
		return nil, err
	}
	return newDclex(wallet, rpcURL, opts...)
}

// NewFromMnemonic builds a facade from a BIP-39 mnemonic, deriving the
// account at the given index of the standard Ethereum path.
func NewFromMnemonic(mnemonic string, index uint32, rpcURL string, opts ...Option) (*Dclex, error) {
	wallet, err := signing.NewWalletFromMnemonic(mnemonic, index)
	if err != nil {
		return nil, err
	}
	return newDclex(wallet, rpcURL, opts...)
}

func newDclex(wallet *signing.Wallet, rpcURL string, opts ...Option) (*Dclex, error) {
	cfg := settings{
		baseURL: DefaultBaseURL,
		chain:   types.ChainSepolia,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	engine, err := chain.NewEngine(rpcURL, cfg.chain, wallet)
	if err != nil {
		return nil, err
	}

	return &Dclex{
		client: client.NewClient(cfg.baseURL),
		wallet: wallet,
		engine: engine,
		chain:  cfg.chain,
		log:    logger.WithComponent("dclex"),
		now:    time.Now,
	}, nil
}

// Login runs the SIWE handshake: fetch a nonce, render the canonical
// challenge, sign it with the wallet and exchange the signature for a
// session token.
func (d *Dclex) Login(ctx context.Context) error {
	nonce, err := d.client.Nonce(ctx)
	if err != nil {
		return err
	}

	message := signing.SIWEMessage{
		Domain:    siweDomain,
		Address:   d.wallet.Address().Hex(),
		Statement: siweStatement,
		URI:       siweURI,
		Version:   siweVersion,
		ChainID:   int(d.chain),
		Nonce:     nonce,
		IssuedAt:  d.now(),
	}.String()

	signature, err := d.wallet.SignMessage(message)
	if err != nil {
		return err
	}

	if err := d.client.VerifySIWE(ctx, message, signature, nonce); err != nil {
		return err
	}
	d.invalidateStatus()
	d.log.WithField("address", d.wallet.Address().Hex()).Info("logged in")
	return nil
}

// Logout drops the session. Safe to call when already logged out.
func (d *Dclex) Logout(ctx context.Context) error {
	d.invalidateStatus()
	return d.client.Logout(ctx)
}

// LoggedIn probes the backend with the current token. A stale or missing
// token reports false rather than an error.
func (d *Dclex) LoggedIn(ctx context.Context) (bool, error) {
	_, err := d.AccountStatus(ctx)
	if errors.Is(err, ErrNotLoggedIn) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AccountStatus fetches the verification state from the backend and
// refreshes the cached copy the precondition checks use.
func (d *Dclex) AccountStatus(ctx context.Context) (types.AccountStatus, error) {
	status, err := d.client.AccountStatus(ctx)
	if err != nil {
		return "", err
	}
	d.mu.Lock()
	d.cachedStatus = status
	d.mu.Unlock()
	return status, nil
}

// ClaimDigitalIdentity mints the on-chain identity token for a verified
// account and returns the transaction hash. Repeating the claim after the
// mint settles fails with ErrIdentityAlreadyClaimed.
func (d *Dclex) ClaimDigitalIdentity(ctx context.Context) (string, error) {
	status, err := d.accountStatus(ctx)
	if err != nil {
		return "", err
	}
	if status == types.AccountDIDMinted {
		return "", ErrIdentityAlreadyClaimed
	}
	if status != types.AccountVerified {
		return "", ErrAccountNotVerified
	}

	authorization, err := d.client.DigitalIdentitySignature(ctx)
	if err != nil {
		return "", err
	}
	hash, err := d.engine.MintDigitalIdentity(ctx, authorization)
	if err != nil {
		return "", err
	}
	// The mint settles asynchronously, so the cached status is stale now.
	d.invalidateStatus()
	return hash, nil
}

// DepositUSDC transfers settlement currency from the wallet into the
// exchange vault and returns the transaction hash. The custodial balance
// updates once the backend observes the transfer.
func (d *Dclex) DepositUSDC(ctx context.Context, amount decimal.Decimal) (string, error) {
	if err := d.requireStatus(ctx, types.AccountVerified, types.AccountDIDMinted); err != nil {
		return "", err
	}
	return d.engine.DepositUSDC(ctx, amount)
}

// RequestUSDCWithdrawal registers a settlement-currency withdrawal and
// returns its id for a later ClaimWithdrawal.
func (d *Dclex) RequestUSDCWithdrawal(ctx context.Context, amount decimal.Decimal) (int64, error) {
	if err := d.requireStatus(ctx, types.AccountVerified, types.AccountDIDMinted); err != nil {
		return 0, err
	}
	return d.client.InitializeUSDCWithdrawal(ctx, amount)
}

// WithdrawUSDC runs the full withdrawal in one call: request, fetch the
// authorization signature, redeem on-chain. Returns the transaction hash.
func (d *Dclex) WithdrawUSDC(ctx context.Context, amount decimal.Decimal) (string, error) {
	withdrawalID, err := d.RequestUSDCWithdrawal(ctx, amount)
	if err != nil {
		return "", err
	}
	signature, err := d.client.WithdrawSignature(ctx, withdrawalID)
	if err != nil {
		return "", err
	}
	return d.engine.WithdrawUSDC(ctx, amount, withdrawalID, signature)
}

// DepositStockToken burns wallet-held stock tokens back into the custodial
// ledger and returns the transaction hash. Requires the minted identity.
func (d *Dclex) DepositStockToken(ctx context.Context, symbol string, quantity int64) (string, error) {
	if err := d.requireStatus(ctx, types.AccountDIDMinted); err != nil {
		return "", err
	}
	authorization, err := d.client.DepositStocksSignature(ctx, quantity, symbol)
	if err != nil {
		return "", err
	}
	return d.engine.DepositStockTokens(ctx, symbol, quantity, authorization)
}

// RequestStockWithdrawal registers a stock-token withdrawal and returns
// its id for a later ClaimWithdrawal. Requires the minted identity.
func (d *Dclex) RequestStockWithdrawal(ctx context.Context, symbol string, quantity int64) (int64, error) {
	if err := d.requireStatus(ctx, types.AccountDIDMinted); err != nil {
		return 0, err
	}
	return d.client.InitializeStockWithdrawal(ctx, quantity, symbol)
}

// WithdrawStockToken runs the full stock withdrawal in one call and
// returns the transaction hash.
func (d *Dclex) WithdrawStockToken(ctx context.Context, symbol string, quantity int64) (string, error) {
	withdrawalID, err := d.RequestStockWithdrawal(ctx, symbol, quantity)
	if err != nil {
		return "", err
	}
	signature, err := d.client.WithdrawSignature(ctx, withdrawalID)
	if err != nil {
		return "", err
	}
	return d.engine.WithdrawStockTokens(ctx, symbol, quantity, withdrawalID, signature)
}

// ClaimableWithdrawals lists withdrawal requests ready for on-chain
// redemption.
func (d *Dclex) ClaimableWithdrawals(ctx context.Context) ([]types.ClaimableWithdrawal, error) {
	return d.client.ClaimableWithdrawals(ctx)
}

// ClaimWithdrawal redeems one previously requested withdrawal on-chain and
// returns the transaction hash. The id must match exactly one claimable
// withdrawal: no match is ErrWithdrawalNotFound, more than one is
// ErrInconsistentState.
func (d *Dclex) ClaimWithdrawal(ctx context.Context, withdrawalID int64) (string, error) {
	claimable, err := d.client.ClaimableWithdrawals(ctx)
	if err != nil {
		return "", err
	}

	var matches []types.ClaimableWithdrawal
	for _, w := range claimable {
		if w.WithdrawalID == withdrawalID {
			matches = append(matches, w)
		}
	}
	switch {
	case len(matches) == 0:
		return "", ErrWithdrawalNotFound
	case len(matches) > 1:
		return "", errors.Wrapf(ErrInconsistentState, "withdrawal id %d listed %d times", withdrawalID, len(matches))
	}

	signature, err := d.client.WithdrawSignature(ctx, withdrawalID)
	if err != nil {
		return "", err
	}

	withdrawal := matches[0]
	if withdrawal.AssetType == types.AssetTypeUSDC {
		return d.engine.WithdrawUSDC(ctx, withdrawal.Amount, withdrawalID, signature)
	}
	return d.engine.WithdrawStockTokens(ctx, withdrawal.AssetType, withdrawal.Amount.IntPart(), withdrawalID, signature)
}

// Portfolio fetches the custodial balance snapshot.
func (d *Dclex) Portfolio(ctx context.Context) (*types.Portfolio, error) {
	return d.client.Portfolio(ctx)
}

// USDCAvailableBalance is the settlement currency free for trading.
func (d *Dclex) USDCAvailableBalance(ctx context.Context) (decimal.Decimal, error) {
	portfolio, err := d.client.Portfolio(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return portfolio.Available, nil
}

// USDCTotalBalance is the full custodial balance including amounts locked
// by open orders.
func (d *Dclex) USDCTotalBalance(ctx context.Context) (decimal.Decimal, error) {
	portfolio, err := d.client.Portfolio(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return portfolio.Total, nil
}

// StockAvailableBalance is the position in a symbol that is free to sell.
// An absent position is zero, not an error.
func (d *Dclex) StockAvailableBalance(ctx context.Context, symbol string) (decimal.Decimal, error) {
	portfolio, err := d.client.Portfolio(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	for _, position := range portfolio.Positions {
		if position.Symbol == symbol {
			return position.AvailableToSell, nil
		}
	}
	return decimal.Zero, nil
}

// StockTotalBalance is the total held position in a symbol including
// amounts locked by open orders. An absent position is zero, not an error.
func (d *Dclex) StockTotalBalance(ctx context.Context, symbol string) (decimal.Decimal, error) {
	portfolio, err := d.client.Portfolio(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	for _, position := range portfolio.Positions {
		if position.Symbol == symbol {
			return position.TotalOwned, nil
		}
	}
	return decimal.Zero, nil
}

// CreateLimitOrder places a limit order and returns its id. A nil
// dateOfCancellation means good until cancelled.
func (d *Dclex) CreateLimitOrder(ctx context.Context, side types.OrderSide, symbol string, quantity int64, priceLimit decimal.Decimal, dateOfCancellation *time.Time) (int64, error) {
	return d.client.CreateLimitOrder(ctx, side, symbol, quantity, priceLimit, dateOfCancellation)
}

// CreateSellMarketOrder places a market sell order and returns its id.
func (d *Dclex) CreateSellMarketOrder(ctx context.Context, symbol string, quantity int64) (int64, error) {
	return d.client.CreateSellMarketOrder(ctx, symbol, quantity)
}

// CancelOrder cancels an open order by id.
func (d *Dclex) CancelOrder(ctx context.Context, orderID int64) error {
	return d.client.CancelOrder(ctx, orderID)
}

// Order fetches a single order by id, open or closed.
func (d *Dclex) Order(ctx context.Context, orderID int64) (types.Order, error) {
	return d.client.Order(ctx, orderID)
}

// OpenOrders lists all open orders.
func (d *Dclex) OpenOrders(ctx context.Context) ([]types.Order, error) {
	return d.client.OpenOrders(ctx)
}

// ClosedOrders lists all executed and canceled orders.
func (d *Dclex) ClosedOrders(ctx context.Context) ([]types.Order, error) {
	return d.client.ClosedOrders(ctx)
}

// PendingTransfers lists in-flight deposits and withdrawals.
func (d *Dclex) PendingTransfers(ctx context.Context) ([]types.Transfer, error) {
	return d.client.PendingTransfers(ctx)
}

// ClosedTransfers lists settled and rejected transfers.
func (d *Dclex) ClosedTransfers(ctx context.Context) ([]types.Transfer, error) {
	return d.client.ClosedTransfers(ctx)
}

// Distributions lists corporate-action payouts.
func (d *Dclex) Distributions(ctx context.Context) ([]types.Distribution, error) {
	return d.client.Distributions(ctx)
}

// Stocks fetches the public catalogue of listed equities keyed by symbol.
func (d *Dclex) Stocks(ctx context.Context) (map[string]types.Stock, error) {
	return d.client.Stocks(ctx)
}

// MarketPrices fetches the latest quote per symbol. The price endpoints
// are gated on verification, so a backend authorization failure surfaces
// as ErrAccountNotVerified.
func (d *Dclex) MarketPrices(ctx context.Context) (map[string]types.Price, error) {
	prices, err := d.client.MarketPrices(ctx)
	if errors.Is(err, ErrNotAuthorized) {
		return nil, ErrAccountNotVerified
	}
	return prices, err
}

// PricesStream obtains a stream access token and subscribes to the live
// price feed. The returned channels follow the client.PricesStream
// contract.
func (d *Dclex) PricesStream(ctx context.Context) (<-chan types.Price, <-chan error, error) {
	token, err := d.client.PricesStreamAccessToken(ctx)
	if err != nil {
		return nil, nil, err
	}
	prices, errs := d.client.PricesStream(ctx, token)
	return prices, errs, nil
}

// accountStatus returns the cached status when one is known, fetching it
// otherwise. Settlement preconditions tolerate the cache being stale; the
// backend re-validates every request anyway.
func (d *Dclex) accountStatus(ctx context.Context) (types.AccountStatus, error) {
	d.mu.Lock()
	cached := d.cachedStatus
	d.mu.Unlock()
	if cached != "" {
		return cached, nil
	}
	return d.AccountStatus(ctx)
}

// requireStatus fails with ErrAccountNotVerified unless the account is in
// one of the allowed states.
func (d *Dclex) requireStatus(ctx context.Context, allowed ...types.AccountStatus) error {
	status, err := d.accountStatus(ctx)
	if err != nil {
		return err
	}
	for _, s := range allowed {
		if status == s {
			return nil
		}
	}
	return ErrAccountNotVerified
}

func (d *Dclex) invalidateStatus() {
	d.mu.Lock()
	d.cachedStatus = ""
	d.mu.Unlock()
}
