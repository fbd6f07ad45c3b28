package chain

import (
	"fmt"

	"github.com/dclex/dclex-go/dclex/types"
)

// ContractConfig holds the addresses of the DCLEX contract suite on one
// network.
type ContractConfig struct {
	USDC            string // settlement currency token
	Vault           string // custodial vault holding deposited USDC
	DigitalIdentity string // non-transferable KYC identity token
	Factory         string // stock token mint/burn factory
}

const (
	// USDCDecimals on-chain settlement currency precision
	USDCDecimals = 6

	// StockTokenDecimals on-chain stock token precision
	StockTokenDecimals = 18

	// blockchainFalse is the contract suite's encoding of boolean false in
	// uint8 flag fields (1 = true, 2 = false).
	blockchainFalse = 2
)

// SepoliaContracts addresses of the staging deployment on Sepolia
var SepoliaContracts = ContractConfig{
	USDC:            "0xd3AA652C5b750F8195B46E185Bad5C9965bB37ea",
	Vault:           "0x9171338754ac82cdE212Dadc924bfB8F2432E008",
	DigitalIdentity: "0xc9B2a2e25116865286b13859053eBa163C62dace",
	Factory:         "0x520677edeCbd1A716846F5167bbA4ad5fCD781B7",
}

// GetContractConfig returns the contract suite for a chain id.
func GetContractConfig(chainID types.Chain) (*ContractConfig, error) {
	switch chainID {
	case types.ChainSepolia:
		return &SepoliaContracts, nil
	default:
		return nil, fmt.Errorf("unsupported chain id: %d", chainID)
	}
}

// Minimal ABI fragments for the contract functions the SDK invokes. The
// contracts themselves are opaque; only these entry points matter here.

// ERC20ABI transfer entry point of the settlement currency token
const ERC20ABI = `[
	{
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"name": "transfer",
		"outputs": [{"name": "", "type": "bool"}],
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`

// VaultABI withdraw entry point redeeming a backend authorization
const VaultABI = `[
	{
		"inputs": [
			{
				"name": "request",
				"type": "tuple",
				"components": [
					{"name": "token", "type": "address"},
					{"name": "account", "type": "address"},
					{"name": "to", "type": "address"},
					{"name": "amount", "type": "uint256"},
					{"name": "nonce", "type": "uint256"}
				]
			},
			{"name": "signature", "type": "bytes"}
		],
		"name": "withdraw",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`

// DigitalIdentityABI mint entry point for the identity token
const DigitalIdentityABI = `[
	{
		"inputs": [
			{
				"name": "request",
				"type": "tuple",
				"components": [
					{"name": "account", "type": "address"},
					{"name": "nonce", "type": "uint256"},
					{"name": "isPro", "type": "uint8"},
					{"name": "data", "type": "bytes"}
				]
			},
			{"name": "signature", "type": "bytes"}
		],
		"name": "mint",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`

// FactoryABI stock token burn (deposit) and mint (withdraw) entry points
const FactoryABI = `[
	{
		"inputs": [
			{
				"name": "request",
				"type": "tuple",
				"components": [
					{"name": "symbol", "type": "string"},
					{"name": "amount", "type": "uint256"},
					{"name": "account", "type": "address"},
					{"name": "nonce", "type": "uint256"}
				]
			},
			{"name": "signature", "type": "bytes"}
		],
		"name": "burnStocks",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [
			{
				"name": "request",
				"type": "tuple",
				"components": [
					{"name": "symbol", "type": "string"},
					{"name": "amount", "type": "uint256"},
					{"name": "account", "type": "address"},
					{"name": "nonce", "type": "uint256"}
				]
			},
			{"name": "signature", "type": "bytes"}
		],
		"name": "mintStocks",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`
