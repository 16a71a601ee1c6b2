package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is an ISO-4217 style currency code (e.g. "GBP", "USD").
type Currency string

// TradeOrderType distinguishes buys from sells at the fund level.
type TradeOrderType string

const (
	// Subscription is an order to acquire shares in a hedge-fund asset.
	Subscription TradeOrderType = "SUBSCRIPTION"
	// Redemption is an order to dispose of shares; it is bounded by the
	// investor's current holding.
	Redemption TradeOrderType = "REDEMPTION"
)

// OrderStatus tracks the order through the pricing pipeline.
type OrderStatus string

const (
	StatusPending OrderStatus = "PENDING" // submitted, figures not yet computed
	StatusPriced  OrderStatus = "PRICED"  // figures computed and stored
	StatusFailed  OrderStatus = "FAILED"  // a business rule rejected the order
)

// Asset identifies a tradable hedge-fund instrument. Currency is the
// native currency in which the asset's prices are quoted.
type Asset struct {
	ID       string
	Currency Currency
}

// FundOfFund is the investor entity (FOHF) on whose behalf an order is placed.
type FundOfFund struct {
	ID   string
	Name string
}

// QuantityKind selects the populated variant of a QuantitySpec.
type QuantityKind int

const (
	quantityUnset QuantityKind = iota
	QuantityAmount
	QuantityShares
	QuantityPercentage
)

// QuantitySpec says how much of an asset an order is for. It is a tagged
// union: exactly one of amount (monetary, in the order's currency), shares
// (unit count) or percentage (0-100 of the current holding) is carried.
// The zero value is unset and is rejected by the figures factory.
type QuantitySpec struct {
	kind  QuantityKind
	value decimal.Decimal
}

// Amount builds a monetary quantity in the order's currency.
func Amount(v decimal.Decimal) QuantitySpec {
	return QuantitySpec{kind: QuantityAmount, value: v}
}

// Shares builds a unit-count quantity.
func Shares(v decimal.Decimal) QuantitySpec {
	return QuantitySpec{kind: QuantityShares, value: v}
}

// Percentage builds a percentage-of-holding quantity (0-100).
func Percentage(v decimal.Decimal) QuantitySpec {
	return QuantitySpec{kind: QuantityPercentage, value: v}
}

// Kind reports the populated variant; the zero value reports neither of
// the exported kinds.
func (q QuantitySpec) Kind() QuantityKind { return q.kind }

// Value returns the raw decimal carried by the populated variant.
func (q QuantitySpec) Value() decimal.Decimal { return q.value }

// IsSet reports whether any variant is populated.
func (q QuantitySpec) IsSet() bool { return q.kind != quantityUnset }

// TradeOrder is a single subscription or redemption request against a
// hedge-fund asset. Currency is the denomination chosen by the investor
// for this order and may differ from the asset's native currency.
type TradeOrder struct {
	ID        string
	CompanyID string
	Fohf      FundOfFund
	Asset     Asset
	Currency  Currency
	Quantity  QuantitySpec
	Type      TradeOrderType
	Status    OrderStatus
	TradeDate time.Time // date the order is priced/valued against
	ValueDate time.Time // settlement date
}
