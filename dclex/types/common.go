package types

// AccountStatus is the KYC verification state of an account. The backend
// reports it as a string; VERIFIED_MINTED means the digital identity token
// has been minted on-chain.
type AccountStatus string

const (
	AccountNotVerified AccountStatus = "NOT_VERIFIED"
	AccountRejected    AccountStatus = "REJECTED"
	AccountPending     AccountStatus = "PENDING"
	AccountVerified    AccountStatus = "VERIFIED"
	AccountDIDMinted   AccountStatus = "VERIFIED_MINTED"
)

// OrderSide order direction
type OrderSide string

const (
	SideBuy  OrderSide = "BUY"
	SideSell OrderSide = "SELL"
)

// OrderType order kind
type OrderType string

const (
	OrderTypeLimit  OrderType = "LIMIT"
	OrderTypeMarket OrderType = "MARKET"
)

// OrderStatus lifecycle state of an order
type OrderStatus string

const (
	OrderPending  OrderStatus = "PENDING"
	OrderExecuted OrderStatus = "EXECUTED"
	OrderCanceled OrderStatus = "CANCELED"
)

// TransactionType direction of a ledger transfer
type TransactionType string

const (
	TransactionDeposit    TransactionType = "DEPOSIT"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
)

// TransferStatus state of a historical transfer
type TransferStatus string

const (
	TransferPending   TransferStatus = "PENDING"
	TransferClaimable TransferStatus = "CLAIMABLE"
	TransferRejected  TransferStatus = "REJECTED"
	TransferDone      TransferStatus = "DONE"
)

// AssetTypeUSDC is the asset type string used by withdrawal endpoints for
// the settlement currency. Any other asset type is a stock symbol.
const AssetTypeUSDC = "USDC"

// Chain identifies the blockchain network
type Chain int

const (
	ChainMainnet Chain = 1
	ChainSepolia Chain = 11155111
)
