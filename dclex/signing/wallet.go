// Package signing owns the Ethereum key material: it signs SIWE login
// messages and settlement transactions. It never talks to the network.
package signing

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
)

// Wallet holds a secp256k1 private key and derives a stable checksummed
// address from it. Malformed key material fails at construction time, not
// per call.
type Wallet struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
}

// NewWallet creates a wallet from a hex-encoded private key, with or
// without a 0x prefix.
func NewWallet(privateKeyHex string) (*Wallet, error) {
	privateKeyHex = strings.TrimSpace(privateKeyHex)
	if privateKeyHex == "" {
		return nil, fmt.Errorf("private key is empty")
	}
	privateKeyHex = strings.TrimPrefix(privateKeyHex, "0x")

	keyBytes, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid private key format: %w", err)
	}
	privateKey, err := crypto.ToECDSA(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return newWallet(privateKey), nil
}

// NewWalletFromMnemonic derives a wallet from a BIP-39 mnemonic at the
// standard Ethereum path m/44'/60'/0'/0/{index}.
func NewWalletFromMnemonic(mnemonic string, index uint32) (*Wallet, error) {
	hd, err := hdwallet.NewFromMnemonic(strings.TrimSpace(mnemonic))
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}
	path, err := hdwallet.ParseDerivationPath(fmt.Sprintf("m/44'/60'/0'/0/%d", index))
	if err != nil {
		return nil, fmt.Errorf("invalid derivation path: %w", err)
	}
	account, err := hd.Derive(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to derive account: %w", err)
	}
	privateKey, err := hd.PrivateKey(account)
	if err != nil {
		return nil, fmt.Errorf("failed to extract private key: %w", err)
	}
	return newWallet(privateKey), nil
}

func newWallet(privateKey *ecdsa.PrivateKey) *Wallet {
	return &Wallet{
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(privateKey.PublicKey),
	}
}

// Address returns the EIP-55 checksummed address of the wallet.
func (w *Wallet) Address() common.Address {
	return w.address
}

// SignMessage signs a text message with the personal-message scheme
// (EIP-191 prefix) and returns the 0x-prefixed 65-byte signature with the
// recovery id adjusted to 27/28.
func (w *Wallet) SignMessage(message string) (string, error) {
	hash := accounts.TextHash([]byte(message))
	signature, err := crypto.Sign(hash, w.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign message: %w", err)
	}
	signature[64] += 27
	return "0x" + hex.EncodeToString(signature), nil
}

// SignTx signs a transaction with the EIP-155 signer for the given chain.
func (w *Wallet) SignTx(tx *ethtypes.Transaction, chainID *big.Int) (*ethtypes.Transaction, error) {
	signedTx, err := ethtypes.SignTx(tx, ethtypes.NewEIP155Signer(chainID), w.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return signedTx, nil
}
