package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock is a catalogue entry for a tokenized equity.
type Stock struct {
	Symbol              string
	Name                string
	CUSIP               string
	ContractAddress     string
	TokensInCirculation decimal.Decimal
}

// Price is a point-in-time quote for one symbol.
type Price struct {
	Symbol           string
	LastPrice        decimal.Decimal
	Timestamp        time.Time
	PercentageChange decimal.Decimal
}

// Position is a held equity token inside a portfolio snapshot.
type Position struct {
	Symbol                string
	Name                  string
	TotalOwned            decimal.Decimal
	AvailableToSell       decimal.Decimal
	AveragePurchasePrice  decimal.Decimal
	LastMarketPrice       decimal.Decimal
	ProfitLoss            decimal.Decimal
	ProfitLossPercentage  decimal.Decimal
	IsOffboarded          bool
	MultiplierNumerator   int64
	MultiplierDenominator int64
}

// Portfolio is a read-only snapshot of account balances, recomputed by the
// backend on every fetch. Available is the settlement currency free for
// trading; Total is the full ledger balance including amounts locked by
// open orders.
type Portfolio struct {
	Available  decimal.Decimal
	Total      decimal.Decimal
	Equity     decimal.Decimal
	ProfitLoss decimal.Decimal
	TotalValue decimal.Decimal
	Positions  []Position
}
