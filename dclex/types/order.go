package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a backend order record. Price is nil for market orders that
// have not filled yet; DateOfCancellation is nil for good-until-cancelled
// limit orders and always nil for market orders.
type Order struct {
	ID                 int64
	Side               OrderSide
	Type               OrderType
	Symbol             string
	Quantity           int64
	Price              *decimal.Decimal
	Status             OrderStatus
	DateOfCancellation *time.Time
}
