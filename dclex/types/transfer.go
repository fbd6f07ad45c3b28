package types

import "github.com/shopspring/decimal"

// Transfer is a historical ledger entry for a deposit or withdrawal.
type Transfer struct {
	TransactionID string
	Amount        decimal.Decimal
	Symbol        string
	Type          TransactionType
	Status        TransferStatus
}

// Distribution is a corporate-action-driven asset transfer (for example a
// dividend). It is listed like a transfer but sourced differently.
type Distribution struct {
	TransactionID string
	Amount        decimal.Decimal
	Symbol        string
	Status        TransferStatus
}

// ClaimableWithdrawal is a withdrawal request that has an outstanding
// backend authorization signature awaiting on-chain redemption.
type ClaimableWithdrawal struct {
	WithdrawalID int64
	Amount       decimal.Decimal
	// AssetType is AssetTypeUSDC or a stock symbol.
	AssetType string
}

// DigitalIdentitySignature authorizes minting the identity token.
// Nonce and Nationality are hex-encoded byte strings issued by the backend.
type DigitalIdentitySignature struct {
	Signature   string
	Nonce       string
	Nationality string
}

// DepositStocksSignature authorizes burning stock tokens into the
// custodial ledger. Nonce is a 0x-prefixed hex string.
type DepositStocksSignature struct {
	Signature string
	Nonce     string
}
