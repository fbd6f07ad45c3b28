// Package chain builds, signs and broadcasts the on-chain side of the
// settlement workflow: direct deposits, authorization-signature redemption
// for withdrawals, and the one-time identity mint.
package chain

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/dclex/dclex-go/dclex/signing"
	"github.com/dclex/dclex-go/dclex/types"
	"github.com/dclex/dclex-go/pkg/logger"
)

// Backend is the slice of the Ethereum RPC surface the engine needs.
// *ethclient.Client satisfies it.
type Backend interface {
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error
}

// Engine executes contract calls on behalf of one wallet. Every call goes
// through the same final step: resolve gas price and pending nonce, sign
// with the wallet, broadcast, return the transaction hash.
type Engine struct {
	eth       Backend
	wallet    *signing.Wallet
	contracts *ContractConfig
	chainID   *big.Int

	usdcABI     abi.ABI
	vaultABI    abi.ABI
	identityABI abi.ABI
	factoryABI  abi.ABI

	log *logrus.Entry
}

// NewEngine dials the RPC endpoint and prepares the engine for the given
// chain.
func NewEngine(rpcURL string, chainID types.Chain, wallet *signing.Wallet) (*Engine, error) {
	eth, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC node: %w", err)
	}
	return NewEngineWithBackend(eth, chainID, wallet)
}

// NewEngineWithBackend builds an engine on an existing backend. Used by
// tests to substitute a fake RPC surface.
func NewEngineWithBackend(eth Backend, chainID types.Chain, wallet *signing.Wallet) (*Engine, error) {
	contracts, err := GetContractConfig(chainID)
	if err != nil {
		return nil, err
	}

	usdcABI, err := abi.JSON(strings.NewReader(ERC20ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ERC20 ABI: %w", err)
	}
	vaultABI, err := abi.JSON(strings.NewReader(VaultABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse vault ABI: %w", err)
	}
	identityABI, err := abi.JSON(strings.NewReader(DigitalIdentityABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse digital identity ABI: %w", err)
	}
	factoryABI, err := abi.JSON(strings.NewReader(FactoryABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse factory ABI: %w", err)
	}

	return &Engine{
		eth:         eth,
		wallet:      wallet,
		contracts:   contracts,
		chainID:     big.NewInt(int64(chainID)),
		usdcABI:     usdcABI,
		vaultABI:    vaultABI,
		identityABI: identityABI,
		factoryABI:  factoryABI,
		log:         logger.WithComponent("chain"),
	}, nil
}

// DepositUSDC transfers settlement currency from the wallet straight into
// the vault. No backend authorization is involved.
func (e *Engine) DepositUSDC(ctx context.Context, amount decimal.Decimal) (string, error) {
	data, err := e.usdcABI.Pack("transfer",
		common.HexToAddress(e.contracts.Vault),
		usdcUnits(amount),
	)
	if err != nil {
		return "", fmt.Errorf("failed to pack transfer call: %w", err)
	}
	return e.send(ctx, common.HexToAddress(e.contracts.USDC), data)
}

// WithdrawUSDC redeems a backend withdrawal authorization against the
// vault. The withdrawal id doubles as the contract-level nonce the
// authorization signature commits to; it is unrelated to the transaction
// nonce.
func (e *Engine) WithdrawUSDC(ctx context.Context, amount decimal.Decimal, withdrawalID int64, signature string) (string, error) {
	sig, err := decodeHex(signature)
	if err != nil {
		return "", fmt.Errorf("invalid withdrawal signature: %w", err)
	}
	request := struct {
		Token   common.Address
		Account common.Address
		To      common.Address
		Amount  *big.Int
		Nonce   *big.Int
	}{
		Token:   common.HexToAddress(e.contracts.USDC),
		Account: common.HexToAddress(e.contracts.Vault),
		To:      e.wallet.Address(),
		Amount:  usdcUnits(amount),
		Nonce:   big.NewInt(withdrawalID),
	}
	data, err := e.vaultABI.Pack("withdraw", request, sig)
	if err != nil {
		return "", fmt.Errorf("failed to pack withdraw call: %w", err)
	}
	return e.send(ctx, common.HexToAddress(e.contracts.Vault), data)
}

// MintDigitalIdentity mints the non-transferable identity token using the
// backend-issued authorization.
func (e *Engine) MintDigitalIdentity(ctx context.Context, authorization types.DigitalIdentitySignature) (string, error) {
	sig, err := decodeHex(authorization.Signature)
	if err != nil {
		return "", fmt.Errorf("invalid identity signature: %w", err)
	}
	nonce, err := decodeHexInt(authorization.Nonce)
	if err != nil {
		return "", fmt.Errorf("invalid identity nonce: %w", err)
	}
	nationality, err := decodeHex(authorization.Nationality)
	if err != nil {
		return "", fmt.Errorf("invalid nationality data: %w", err)
	}
	request := struct {
		Account common.Address
		Nonce   *big.Int
		IsPro   uint8
		Data    []byte
	}{
		Account: e.wallet.Address(),
		Nonce:   nonce,
		IsPro:   blockchainFalse,
		Data:    nationality,
	}
	data, err := e.identityABI.Pack("mint", request, sig)
	if err != nil {
		return "", fmt.Errorf("failed to pack mint call: %w", err)
	}
	return e.send(ctx, common.HexToAddress(e.contracts.DigitalIdentity), data)
}

// DepositStockTokens burns wallet-held stock tokens into the custodial
// ledger using the backend-issued authorization.
func (e *Engine) DepositStockTokens(ctx context.Context, symbol string, amount int64, authorization types.DepositStocksSignature) (string, error) {
	sig, err := decodeHex(authorization.Signature)
	if err != nil {
		return "", fmt.Errorf("invalid deposit signature: %w", err)
	}
	nonce, err := decodeHexInt(authorization.Nonce)
	if err != nil {
		return "", fmt.Errorf("invalid deposit nonce: %w", err)
	}
	data, err := e.factoryABI.Pack("burnStocks", stockRequest{
		Symbol:  symbol,
		Amount:  stockUnits(amount),
		Account: e.wallet.Address(),
		Nonce:   nonce,
	}, sig)
	if err != nil {
		return "", fmt.Errorf("failed to pack burnStocks call: %w", err)
	}
	return e.send(ctx, common.HexToAddress(e.contracts.Factory), data)
}

// WithdrawStockTokens mints custodied stock back into the wallet, redeeming
// a backend withdrawal authorization keyed by the withdrawal id.
func (e *Engine) WithdrawStockTokens(ctx context.Context, symbol string, amount int64, withdrawalID int64, signature string) (string, error) {
	sig, err := decodeHex(signature)
	if err != nil {
		return "", fmt.Errorf("invalid withdrawal signature: %w", err)
	}
	data, err := e.factoryABI.Pack("mintStocks", stockRequest{
		Symbol:  symbol,
		Amount:  stockUnits(amount),
		Account: e.wallet.Address(),
		Nonce:   big.NewInt(withdrawalID),
	}, sig)
	if err != nil {
		return "", fmt.Errorf("failed to pack mintStocks call: %w", err)
	}
	return e.send(ctx, common.HexToAddress(e.contracts.Factory), data)
}

type stockRequest struct {
	Symbol  string
	Amount  *big.Int
	Account common.Address
	Nonce   *big.Int
}

// send is the shared final step of every settlement call.
func (e *Engine) send(ctx context.Context, to common.Address, data []byte) (string, error) {
	from := e.wallet.Address()

	nonce, err := e.eth.PendingNonceAt(ctx, from)
	if err != nil {
		return "", fmt.Errorf("failed to fetch transaction nonce: %w", err)
	}
	gasPrice, err := e.eth.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch gas price: %w", err)
	}
	gasLimit, err := e.eth.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Data:  data,
		Value: big.NewInt(0),
	})
	if err != nil {
		return "", fmt.Errorf("failed to estimate gas: %w", err)
	}

	tx := ethtypes.NewTransaction(nonce, to, big.NewInt(0), gasLimit, gasPrice, data)
	signedTx, err := e.wallet.SignTx(tx, e.chainID)
	if err != nil {
		return "", err
	}
	if err := e.eth.SendTransaction(ctx, signedTx); err != nil {
		return "", fmt.Errorf("failed to broadcast transaction: %w", err)
	}

	hash := signedTx.Hash().Hex()
	e.log.WithFields(logrus.Fields{
		"to":   to.Hex(),
		"hash": hash,
	}).Debug("transaction broadcast")
	return hash, nil
}

// usdcUnits scales a decimal settlement amount to 10^6 integer units.
func usdcUnits(amount decimal.Decimal) *big.Int {
	return amount.Shift(USDCDecimals).BigInt()
}

// stockUnits scales a whole-share amount to 10^18 integer units.
func stockUnits(amount int64) *big.Int {
	exp := new(big.Int).Exp(big.NewInt(10), big.NewInt(StockTokenDecimals), nil)
	return new(big.Int).Mul(big.NewInt(amount), exp)
}

func decodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}

func decodeHexInt(s string) (*big.Int, error) {
	b, err := decodeHex(s)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}
