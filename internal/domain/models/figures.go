package models

import "github.com/shopspring/decimal"

// Price is a per-share quote for an asset, always denominated in the
// asset's native currency regardless of the order's currency.
type Price struct {
	Value    decimal.Decimal
	Currency Currency
}

// Position is the investor's holding of an asset as of a date.
type Position struct {
	Shares decimal.Decimal
}

// ExchangeRate is a multiplier: an amount in the source currency times
// Value yields the equivalent amount in the target currency.
type ExchangeRate struct {
	Value decimal.Decimal
}

// Figures is the fully resolved settlement triple for an order, in the
// asset's native currency. Invariant: Amount == Price.Value * Shares
// (within the fixed-point precision used by the factory).
type Figures struct {
	Amount decimal.Decimal
	Price  Price
	Shares decimal.Decimal
}
